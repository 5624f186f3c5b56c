package ports

import "github.com/conbuild/conbuild/internal/core/domain"

// OptionValidator checks a configuration against the fixed validation schema.
//
//go:generate go run go.uber.org/mock/mockgen -source=validator.go -destination=mocks/mock_validator.go -package=mocks
type OptionValidator interface {
	// Validate returns all findings for cfg. Warnings are advisory; error
	// findings make the configuration unusable.
	Validate(cfg *domain.BuildConfig) *domain.ValidationResult
}
