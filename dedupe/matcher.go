// Package dedupe decides whether a candidate finding title already exists
// in the tracked record set.
//
// Matching is exact after normalization: titles are case-folded, punctuation
// and markup glyphs are replaced by spaces, and whitespace is collapsed, so
// "AZ-001 Unprotected Storage Account" and "az-001: unprotected storage
// account" collide. There is no fuzzy or similarity matching; classification
// depends only on the seeded title set and the candidates checked so far,
// never on time or randomness.
package dedupe

import (
	"strings"
	"unicode"
)

// Outcome is the duplicate-matcher classification for one candidate title.
type Outcome string

const (
	// OutcomeNew indicates the title was not previously known.
	OutcomeNew Outcome = "new"

	// OutcomeDuplicate indicates the title collides with a known one.
	OutcomeDuplicate Outcome = "duplicate"
)

// IsValid returns true if the outcome is valid.
func (o Outcome) IsValid() bool {
	switch o {
	case OutcomeNew, OutcomeDuplicate:
		return true
	default:
		return false
	}
}

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	return string(o)
}

// Normalize reduces a title to its canonical comparison form: case-folded,
// punctuation and markup glyphs replaced by spaces, whitespace collapsed
// and trimmed.
func Normalize(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Matcher tracks the set of known titles for one batch run: the titles
// loaded from the existing artifact plus every candidate accepted so far.
type Matcher struct {
	// known maps normalized titles to the original form they were first
	// seen under, so duplicate reports can name the colliding title.
	known map[string]string
}

// NewMatcher creates a matcher seeded with the already-known titles,
// typically those loaded from the existing artifact.
func NewMatcher(existing []string) *Matcher {
	m := &Matcher{known: make(map[string]string, len(existing))}
	for _, title := range existing {
		key := Normalize(title)
		if _, ok := m.known[key]; !ok {
			m.known[key] = title
		}
	}
	return m
}

// Check classifies a candidate title. On OutcomeDuplicate the second return
// value names the known title it collided with. On OutcomeNew the candidate
// joins the known set, so later candidates in the same batch are checked
// against it as well.
func (m *Matcher) Check(title string) (Outcome, string) {
	key := Normalize(title)
	if existing, ok := m.known[key]; ok {
		return OutcomeDuplicate, existing
	}
	m.known[key] = title
	return OutcomeNew, ""
}

// Len returns the number of distinct known titles.
func (m *Matcher) Len() int {
	return len(m.known)
}
