package model

// ValidationStatus is the overall verdict for one document's metadata.
type ValidationStatus string

const (
	StatusOK         ValidationStatus = "ok"
	StatusWarning    ValidationStatus = "warning"
	StatusUnreliable ValidationStatus = "unreliable"
	StatusError      ValidationStatus = "error"
)

// ValidationResult carries the verdict, the tagged warning messages
// ("L1: ...", "L2: ..."), and the penalty-adjusted score in [0,1].
//
// It is produced once per document by single-document validation and then
// mutated in place by the batch pass, which may append warnings and raise
// the status but never lowers it.
type ValidationResult struct {
	Status   ValidationStatus `json:"status"`
	Warnings []string         `json:"warnings"`
	Score    float64          `json:"score"`
}

// Warn appends a warning message.
func (r *ValidationResult) Warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// RaiseToWarning upgrades an "ok" result to "warning". Results already at
// warning, unreliable, or error are left untouched.
func (r *ValidationResult) RaiseToWarning() {
	if r.Status == StatusOK {
		r.Status = StatusWarning
	}
}
