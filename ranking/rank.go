// Package ranking orders the accepted record set by risk and assigns dense
// sequential priorities.
//
// The comparator applies four keys in order: score descending, severity rank
// descending, resource type ascending, title ascending. Title uniqueness
// across the record set makes this a total order, so no two distinct records
// compare equal. Priorities are positional and transient: every run
// reassigns 1..N with no gaps, regardless of what a previous run assigned.
package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Reedboot/triage-saurus/finding"
)

// RankedRecord is a finding record annotated with its 1-based priority.
type RankedRecord struct {
	// Priority is the dense rank of the record within its RankedSet,
	// starting at 1 for the most urgent finding.
	Priority int `json:"priority"`

	finding.Record
}

// RankedSet is the ordered projection of the full record set. It is
// recomputed on every run and never persisted as its own entity.
type RankedSet []RankedRecord

// Compare orders two records by the risk comparator:
//
//  1. score, descending (higher score is more urgent)
//  2. severity rank, descending (only decisive if severity was overridden)
//  3. resource type, ascending alphabetical
//  4. title, ascending alphabetical
//
// The source path breaks any remaining tie so the order stays stable even
// if the title-uniqueness invariant is violated upstream.
// Returns a negative value when a ranks before b.
func Compare(a, b finding.Record) int {
	if a.Score != b.Score {
		return b.Score - a.Score
	}
	if c := finding.CompareSeverity(b.Severity, a.Severity); c != 0 {
		return c
	}
	if c := strings.Compare(a.ResourceType, b.ResourceType); c != 0 {
		return c
	}
	if c := strings.Compare(a.Title, b.Title); c != 0 {
		return c
	}
	return strings.Compare(a.SourcePath, b.SourcePath)
}

// Rank sorts the given records by the risk comparator and assigns dense
// 1-based priorities in a single stable pass. The input slice is not
// modified.
func Rank(records []finding.Record) RankedSet {
	ordered := make([]finding.Record, len(records))
	copy(ordered, records)

	sort.SliceStable(ordered, func(i, j int) bool {
		return Compare(ordered[i], ordered[j]) < 0
	})

	set := make(RankedSet, len(ordered))
	for i, rec := range ordered {
		set[i] = RankedRecord{Priority: i + 1, Record: rec}
	}
	return set
}

// Records returns the plain record sequence in priority order.
func (s RankedSet) Records() []finding.Record {
	records := make([]finding.Record, len(s))
	for i, r := range s {
		records[i] = r.Record
	}
	return records
}

// Validate checks that priorities are dense, 1-based, and consistent with
// the comparator. A failure indicates a logic bug, not bad input.
func (s RankedSet) Validate() error {
	for i, r := range s {
		if r.Priority != i+1 {
			return fmt.Errorf("priority at position %d is %d, want %d", i, r.Priority, i+1)
		}
		if i > 0 && Compare(s[i-1].Record, r.Record) >= 0 {
			return fmt.Errorf("records at priorities %d and %d are out of order", i, i+1)
		}
	}
	return nil
}
