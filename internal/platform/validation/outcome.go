// Package validation defines the result shapes shared by every validation
// primitive in the reception core: the business rules engine, the workflow
// transition guard, and the orchestrator all report through an Outcome.
package validation

// Outcome is the universal validation result. Valid must always equal
// len(Errors) == 0; use the mutators rather than assigning fields directly
// so the invariant holds by construction.
type Outcome struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// OK returns a passing outcome.
func OK() Outcome {
	return Outcome{Valid: true}
}

// Invalid returns a failing outcome carrying the given errors.
func Invalid(errs ...string) Outcome {
	o := Outcome{Valid: true}
	for _, e := range errs {
		o.AddError(e)
	}
	return o
}

// AddError records a validation error and marks the outcome invalid.
func (o *Outcome) AddError(msg string) {
	o.Errors = append(o.Errors, msg)
	o.Valid = false
}

// AddWarning records an advisory warning. Warnings never affect validity.
func (o *Outcome) AddWarning(msg string) {
	o.Warnings = append(o.Warnings, msg)
}

// Merge folds another outcome into this one. Validity is the AND of both.
func (o *Outcome) Merge(other Outcome) {
	o.Errors = append(o.Errors, other.Errors...)
	o.Warnings = append(o.Warnings, other.Warnings...)
	if len(o.Errors) > 0 {
		o.Valid = false
	}
}

// CheckResult is the per-condition result returned by single guard checks.
type CheckResult struct {
	Pass    bool   `json:"pass"`
	Message string `json:"message,omitempty"`
}

// Passed returns a passing check.
func Passed() CheckResult {
	return CheckResult{Pass: true}
}

// Failed returns a failing check with a reason.
func Failed(msg string) CheckResult {
	return CheckResult{Pass: false, Message: msg}
}
