package finding

import (
	"fmt"
	"strings"
)

// Severity represents the severity band of a triaged finding.
type Severity string

const (
	// SeverityCritical covers risk scores 8-10.
	// Examples: public data exposure, unauthenticated administrative access
	SeverityCritical Severity = "critical"

	// SeverityHigh covers risk scores 6-7.
	// Examples: overly broad role assignments, missing encryption in transit
	SeverityHigh Severity = "high"

	// SeverityMedium covers risk scores 4-5.
	// Examples: missing diagnostic logging, weak rotation policies
	SeverityMedium Severity = "medium"

	// SeverityLow covers risk scores 1-3.
	// Examples: informational hardening gaps, deprecated-but-unused features
	SeverityLow Severity = "low"
)

// Score bounds accepted by the engine. A document declaring a score outside
// this range fails intake validation.
const (
	MinScore = 1
	MaxScore = 10
)

// severityRanks maps severity bands to numeric ranks for ordering.
// Higher ranks order before lower ranks in the priority comparator.
var severityRanks = map[Severity]int{
	SeverityCritical: 4,
	SeverityHigh:     3,
	SeverityMedium:   2,
	SeverityLow:      1,
}

// IsValid returns true if the severity band is valid.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	default:
		return false
	}
}

// Rank returns the numeric rank associated with the severity band.
// Returns 0 for invalid bands.
func (s Severity) Rank() int {
	if rank, ok := severityRanks[s]; ok {
		return rank
	}
	return 0
}

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// DisplayName returns a human-readable display name for the severity band.
// This is the form written into the report artifact.
func (s Severity) DisplayName() string {
	switch s {
	case SeverityCritical:
		return "Critical"
	case SeverityHigh:
		return "High"
	case SeverityMedium:
		return "Medium"
	case SeverityLow:
		return "Low"
	default:
		return string(s)
	}
}

// ValidScore returns true if the score lies within the accepted range.
func ValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}

// SeverityForScore derives the severity band from a risk score using the
// fixed bands: 8-10 critical, 6-7 high, 4-5 medium, 1-3 low.
// Severity is always derived from the score, never trusted from input, so
// stored and displayed severity cannot drift from the score.
// Returns an error for scores outside the accepted range.
func SeverityForScore(score int) (Severity, error) {
	switch {
	case score >= 8 && score <= 10:
		return SeverityCritical, nil
	case score >= 6 && score <= 7:
		return SeverityHigh, nil
	case score >= 4 && score <= 5:
		return SeverityMedium, nil
	case score >= 1 && score <= 3:
		return SeverityLow, nil
	default:
		return "", fmt.Errorf("score %d outside accepted range %d-%d", score, MinScore, MaxScore)
	}
}

// ParseSeverity parses a string into a Severity value, case-insensitively.
// Returns an error if the string is not a valid severity band.
func ParseSeverity(s string) (Severity, error) {
	severity := Severity(strings.ToLower(strings.TrimSpace(s)))
	if !severity.IsValid() {
		return "", fmt.Errorf("invalid severity: %s", s)
	}
	return severity, nil
}

// CompareSeverity compares two severity bands by rank.
// Returns:
//   - negative if s1 < s2
//   - zero if s1 == s2
//   - positive if s1 > s2
func CompareSeverity(s1, s2 Severity) int {
	return s1.Rank() - s2.Rank()
}

// AllSeverities returns all valid severity bands in order from critical to low.
func AllSeverities() []Severity {
	return []Severity{
		SeverityCritical,
		SeverityHigh,
		SeverityMedium,
		SeverityLow,
	}
}
