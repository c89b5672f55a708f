package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/Reedboot/triage-saurus/ranking"
)

// Column widths tuned for the executive report; Business Impact gets the
// most room.
var columnWidths = map[string]float64{
	"A": 9,  // Priority
	"B": 16, // Resource Type
	"C": 44, // Issue
	"D": 11, // Risk Score
	"E": 16, // Overall Severity
	"F": 64, // Business Impact
	"G": 36, // File Reference
}

// Write atomically replaces the report artifact at path with a full render
// of the ranked set.
//
// The workbook is staged into a temporary file in the destination directory,
// verified against the record count, and only then renamed over the final
// path. On any failure the previous artifact is left untouched, so an
// aborted run can never be observed as a half-written report. A row-count
// mismatch after staging returns an error wrapping ErrRowCountMismatch.
func Write(path string, set ranking.RankedSet) error {
	f, err := render(set)
	if err != nil {
		return fmt.Errorf("failed to render artifact: %w", err)
	}
	defer f.Close()

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".triage-*.xlsx")
	if err != nil {
		return fmt.Errorf("failed to stage artifact in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to stage artifact: %w", err)
	}

	if err := f.SaveAs(tmpPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write staged artifact: %w", err)
	}

	if err := verifyRowCount(tmpPath, len(set)); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to swap artifact into place: %w", err)
	}
	return nil
}

// render builds the in-memory workbook: one header row with bold cells,
// frozen panes, and column filters, followed by one row per ranked record.
func render(set ranking.RankedSet) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SheetName, "A1", "G1", bold); err != nil {
		return nil, err
	}

	// Freeze the header row so it stays visible on scroll.
	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, err
	}

	if err := f.AutoFilter(SheetName, "A1:G1", nil); err != nil {
		return nil, err
	}

	for col, width := range columnWidths {
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return nil, err
		}
	}

	for i, rec := range set {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			rec.Priority,
			rec.ResourceType,
			rec.Title,
			rec.Score,
			rec.Severity.DisplayName(),
			rec.BusinessImpact,
			rec.SourcePath,
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// verifyRowCount re-opens the staged workbook and checks that the body row
// count equals the record count.
func verifyRowCount(path string, want int) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("failed to verify staged artifact: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return fmt.Errorf("failed to verify staged artifact: %w", err)
	}

	got := len(rows) - 1 // exclude the header row
	if got < 0 {
		got = 0
	}
	if got != want {
		return fmt.Errorf("%w: artifact has %d body rows, expected %d", ErrRowCountMismatch, got, want)
	}
	return nil
}
