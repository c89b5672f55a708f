package finding

import (
	"fmt"
	"strings"
)

// Record represents one triaged security issue accepted into the tracked set.
type Record struct {
	// Title is the unique human-readable identifier of the finding,
	// derived from the source document's first heading with markup stripped.
	Title string `json:"title"`

	// Score is the supplied risk score on the 1-10 scale. Scores are
	// declared by the triage author, never computed by the engine.
	Score int `json:"score"`

	// Severity is the band derived from Score. It is recomputed whenever a
	// record is created or loaded and is never taken verbatim from input.
	Severity Severity `json:"severity"`

	// ResourceType is the category derived from the title prefix via the
	// configured CategoryMap.
	ResourceType string `json:"resource_type"`

	// BusinessImpact is a single-sentence, single-line impact statement.
	BusinessImpact string `json:"business_impact"`

	// SourcePath is the path of the document the record was parsed from.
	// It provides traceability and a stable tie-break key.
	SourcePath string `json:"source_path"`

	// Warnings holds non-fatal consistency notes recorded during intake,
	// such as a declared severity label disagreeing with the score band.
	Warnings []string `json:"warnings,omitempty"`
}

// NewRecord creates a Record with the severity band derived from the score.
// Returns an error if the score is outside the accepted range.
func NewRecord(title string, score int, resourceType, businessImpact, sourcePath string) (Record, error) {
	severity, err := SeverityForScore(score)
	if err != nil {
		return Record{}, err
	}
	return Record{
		Title:          title,
		Score:          score,
		Severity:       severity,
		ResourceType:   resourceType,
		BusinessImpact: businessImpact,
		SourcePath:     sourcePath,
	}, nil
}

// Validate checks that the record satisfies all at-rest invariants.
func (r *Record) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.Contains(r.Title, "_") {
		return fmt.Errorf("title must not contain underscores: %q", r.Title)
	}
	if !ValidScore(r.Score) {
		return fmt.Errorf("score must be between %d and %d, got %d", MinScore, MaxScore, r.Score)
	}
	expected, err := SeverityForScore(r.Score)
	if err != nil {
		return err
	}
	if r.Severity != expected {
		return fmt.Errorf("severity %q inconsistent with score %d (expected %q)", r.Severity, r.Score, expected)
	}
	if strings.TrimSpace(r.ResourceType) == "" {
		return fmt.Errorf("resource type is required")
	}
	if strings.TrimSpace(r.BusinessImpact) == "" {
		return fmt.Errorf("business impact is required")
	}
	if strings.ContainsAny(r.BusinessImpact, "\r\n") {
		return fmt.Errorf("business impact must be a single line")
	}
	if strings.TrimSpace(r.SourcePath) == "" {
		return fmt.Errorf("source path is required")
	}
	return nil
}

// AddWarning records a non-fatal consistency note on the record if it is not
// already present.
func (r *Record) AddWarning(warning string) {
	for _, existing := range r.Warnings {
		if existing == warning {
			return
		}
	}
	r.Warnings = append(r.Warnings, warning)
}
