package triage

import "time"

// DocumentStatus is the final classification of one input document.
// Every document in a batch maps to exactly one status; nothing is
// silently dropped.
type DocumentStatus string

const (
	// StatusAccepted indicates the document produced a new record.
	StatusAccepted DocumentStatus = "accepted"

	// StatusDuplicate indicates the document's title collided with a known
	// record and was skipped. This is a normal outcome, not an error.
	StatusDuplicate DocumentStatus = "duplicate"

	// StatusParseError indicates the document failed intake validation and
	// halted the batch.
	StatusParseError DocumentStatus = "parse_error"

	// StatusSkipped indicates the document parsed successfully but was not
	// processed because another document halted the batch. It only appears
	// in reports of halted runs.
	StatusSkipped DocumentStatus = "skipped"
)

// IsValid returns true if the status is valid.
func (s DocumentStatus) IsValid() bool {
	switch s {
	case StatusAccepted, StatusDuplicate, StatusParseError, StatusSkipped:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s DocumentStatus) String() string {
	return string(s)
}

// DocumentOutcome records what happened to one input document.
type DocumentOutcome struct {
	// Path is the input document.
	Path string `json:"path"`

	// Status is the final classification.
	Status DocumentStatus `json:"status"`

	// Title is the parsed finding title (empty on parse failure).
	Title string `json:"title,omitempty"`

	// CollidedWith names the existing title a duplicate collided with.
	CollidedWith string `json:"collided_with,omitempty"`

	// Error describes the parse failure (empty otherwise).
	Error string `json:"error,omitempty"`

	// Warnings carries consistency notes recorded during intake.
	Warnings []string `json:"warnings,omitempty"`
}

// RunReport summarizes one batch run for the caller.
type RunReport struct {
	// RunID uniquely identifies the run.
	RunID string `json:"run_id"`

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Strict records whether strict mode was in effect.
	Strict bool `json:"strict"`

	// Inputs is the number of documents enumerated.
	Inputs int `json:"inputs"`

	// Accepted, Duplicates, and Failures count the per-document outcomes.
	Accepted   int `json:"accepted"`
	Duplicates int `json:"duplicates"`
	Failures   int `json:"failures"`

	// TotalRecords is the size of the merged, ranked record set written to
	// the artifact (zero when the batch halted before writing).
	TotalRecords int `json:"total_records"`

	// ArtifactPath is the output artifact location (empty when no write
	// occurred).
	ArtifactPath string `json:"artifact_path,omitempty"`

	// Outcomes holds one entry per input document, in processing order.
	Outcomes []DocumentOutcome `json:"outcomes"`
}

// Succeeded returns true if validation passed and the artifact was written.
func (r *RunReport) Succeeded() bool {
	return r.Failures == 0 && r.ArtifactPath != ""
}

// FailedDocuments returns the paths of documents that failed to parse.
func (r *RunReport) FailedDocuments() []string {
	var failed []string
	for _, outcome := range r.Outcomes {
		if outcome.Status == StatusParseError {
			failed = append(failed, outcome.Path)
		}
	}
	return failed
}
