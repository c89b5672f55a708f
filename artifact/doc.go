// Package artifact persists the ranked finding report as an XLSX workbook
// and loads it back as the existing-record source for the next run.
//
// The artifact has seven fixed columns (Priority, Resource Type, Issue,
// Risk Score, Overall Severity, Business Impact, File Reference), a single
// bold header row frozen on scroll, and column filters on the header.
//
// Every run regenerates the artifact from scratch: Write stages the
// workbook into a temporary file next to the destination, verifies that the
// body row count equals the record count, and atomically renames it over
// the final path. There is no incremental append, so the persisted report
// can never mix stale and fresh priority numbers, and an aborted run leaves
// the previous artifact intact.
package artifact
