package triage_test

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	triage "github.com/Reedboot/triage-saurus"
)

// Helper to create an engine without logging.
func newQuietEngine(opts ...triage.Option) (*triage.Engine, error) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return triage.New(append([]triage.Option{triage.WithLogger(logger)}, opts...)...)
}

// ExampleEngine_Run demonstrates one batch over an intake directory.
func ExampleEngine_Run() {
	intake, err := os.MkdirTemp("", "triage-intake-")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(intake)

	doc := `# Unprotected Storage Account AZ-001

**Risk Score:** 9/10
**Overall Severity:** Critical

## Business Impact
Public blob access exposes customer data to anonymous download.
`
	if err := os.WriteFile(filepath.Join(intake, "storage.md"), []byte(doc), 0o644); err != nil {
		log.Fatal(err)
	}

	engine, err := newQuietEngine()
	if err != nil {
		log.Fatal(err)
	}

	report, err := engine.Run(context.Background(), triage.RunConfig{
		InputDirs:          []string{intake},
		OutputArtifactPath: filepath.Join(intake, "findings.xlsx"),
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("accepted %d of %d documents, %d records ranked\n",
		report.Accepted, report.Inputs, report.TotalRecords)

	// Output: accepted 1 of 1 documents, 1 records ranked
}
