package domain

// Severity classifies a validation finding.
type Severity string

const (
	// SeverityWarning marks a finding that is logged but does not stop the build.
	SeverityWarning Severity = "warning"
	// SeverityError marks a finding that aborts the build.
	SeverityError Severity = "error"
)

// Finding is a single result produced by the option validation rules.
type Finding struct {
	Rule     string
	Severity Severity
	Message  string
}

// ValidationResult collects the findings of a validation pass over a
// BuildConfig.
type ValidationResult struct {
	Findings []Finding
}

// Errors returns the fatal findings.
func (r *ValidationResult) Errors() []Finding {
	return r.filter(SeverityError)
}

// Warnings returns the non-fatal findings.
func (r *ValidationResult) Warnings() []Finding {
	return r.filter(SeverityWarning)
}

// OK reports whether the configuration passed validation without fatal
// findings.
func (r *ValidationResult) OK() bool {
	return len(r.Errors()) == 0
}

func (r *ValidationResult) filter(sev Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}
