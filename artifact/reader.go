package artifact

import (
	"fmt"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/Reedboot/triage-saurus/finding"
)

// Read loads the existing artifact back into records, supplying the
// pre-existing set a new batch merges into.
//
// A missing file is not an error: first runs start from an empty set.
// Severity is re-derived from the Risk Score column on load rather than
// trusted from the Overall Severity column, so a hand-edited artifact
// cannot smuggle a drifted severity back into the record set.
func Read(path string) ([]finding.Record, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open existing artifact %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: missing sheet %q", ErrMalformedArtifact, path, SheetName)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	if err := checkHeader(rows[0]); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedArtifact, path, err)
	}

	records := make([]finding.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := recordFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: row %d: %v", ErrMalformedArtifact, path, i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Titles returns the title of every record, preserving order.
func Titles(records []finding.Record) []string {
	titles := make([]string, len(records))
	for i, rec := range records {
		titles[i] = rec.Title
	}
	return titles
}

func checkHeader(header []string) error {
	if len(header) != len(Columns) {
		return fmt.Errorf("header has %d columns, expected %d", len(header), len(Columns))
	}
	for i, want := range Columns {
		if header[i] != want {
			return fmt.Errorf("header column %d is %q, expected %q", i+1, header[i], want)
		}
	}
	return nil
}

func recordFromRow(row []string) (finding.Record, error) {
	// GetRows trims trailing empty cells; pad so indexing is uniform.
	cells := make([]string, len(Columns))
	copy(cells, row)

	score, err := strconv.Atoi(cells[3])
	if err != nil {
		return finding.Record{}, fmt.Errorf("unparseable risk score %q", cells[3])
	}

	rec, err := finding.NewRecord(cells[2], score, cells[1], cells[5], cells[6])
	if err != nil {
		return finding.Record{}, err
	}
	if err := rec.Validate(); err != nil {
		return finding.Record{}, err
	}
	return rec, nil
}
