package config

import (
	"github.com/conbuild/conbuild/internal/core/domain"
	"github.com/conbuild/conbuild/internal/core/ports"
)

var _ ports.OptionValidator = (*RuleValidator)(nil)

// RuleValidator implements ports.OptionValidator over the fixed rules schema.
type RuleValidator struct{}

// NewValidator creates a new RuleValidator.
func NewValidator() *RuleValidator {
	return &RuleValidator{}
}

// Validate implements ports.OptionValidator.
func (v *RuleValidator) Validate(cfg *domain.BuildConfig) *domain.ValidationResult {
	return Validate(cfg)
}
