package triage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/Reedboot/triage-saurus/artifact"
	"github.com/Reedboot/triage-saurus/dedupe"
	"github.com/Reedboot/triage-saurus/finding"
	"github.com/Reedboot/triage-saurus/intake"
	"github.com/Reedboot/triage-saurus/ranking"
)

// instrumentationName identifies the engine's tracer and meter.
const instrumentationName = "github.com/Reedboot/triage-saurus"

// Document extensions accepted from the intake directories. Anything else
// (artifacts, config files, editor droppings) is ignored.
var documentExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
}

// RunConfig describes one batch run.
type RunConfig struct {
	// InputDirs are the directories holding finding documents, one
	// document per file.
	InputDirs []string

	// ExistingArtifactPath is the artifact supplying the pre-existing
	// record set. Empty or missing means an empty existing set.
	ExistingArtifactPath string

	// OutputArtifactPath is where the rebuilt artifact is written.
	OutputArtifactPath string

	// StrictMode escalates severity/score mismatches from warnings to
	// hard failures that halt the batch.
	StrictMode bool
}

// Validate checks the run configuration.
func (c *RunConfig) Validate() error {
	if len(c.InputDirs) == 0 {
		return fmt.Errorf("at least one input directory is required")
	}
	for _, dir := range c.InputDirs {
		if strings.TrimSpace(dir) == "" {
			return fmt.Errorf("input directory must not be empty")
		}
	}
	if strings.TrimSpace(c.OutputArtifactPath) == "" {
		return fmt.Errorf("output artifact path is required")
	}
	return nil
}

// Engine drives the triage pipeline: enumerate, parse, dedupe, rank, write.
// An Engine holds no state between runs beyond its configuration; the
// persisted artifact and the title set are recomputed fresh each run.
type Engine struct {
	logger     *slog.Logger
	tracer     trace.Tracer
	parser     *intake.Parser
	categories *finding.CategoryMap

	acceptedCounter  metric.Int64Counter
	duplicateCounter metric.Int64Counter
	failureCounter   metric.Int64Counter
}

// New creates a new triage engine.
//
// Example:
//
//	engine, err := triage.New(
//	    triage.WithLogger(logger),
//	    triage.WithCategoryMap(categories),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := engine.Run(ctx, triage.RunConfig{
//	    InputDirs:          []string{"intake"},
//	    OutputArtifactPath: "findings.xlsx",
//	})
func New(opts ...Option) (*Engine, error) {
	cfg := &engineConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
	if cfg.tracer == nil {
		cfg.tracer = otel.Tracer(instrumentationName)
	}
	if cfg.meter == nil {
		cfg.meter = otel.Meter(instrumentationName)
	}
	if cfg.categories == nil {
		cfg.categories = finding.DefaultCategoryMap()
	}
	if err := cfg.categories.Validate(); err != nil {
		return nil, newError("New", KindValidation, err)
	}

	e := &Engine{
		logger:     cfg.logger,
		tracer:     cfg.tracer,
		parser:     intake.NewParser(cfg.categories),
		categories: cfg.categories,
	}

	var err error
	if e.acceptedCounter, err = cfg.meter.Int64Counter("triage.records.accepted",
		metric.WithDescription("New finding records accepted into the tracked set")); err != nil {
		return nil, newError("New", KindInternal, err)
	}
	if e.duplicateCounter, err = cfg.meter.Int64Counter("triage.records.duplicates",
		metric.WithDescription("Intake documents skipped as duplicate titles")); err != nil {
		return nil, newError("New", KindInternal, err)
	}
	if e.failureCounter, err = cfg.meter.Int64Counter("triage.documents.failed",
		metric.WithDescription("Intake documents that failed validation")); err != nil {
		return nil, newError("New", KindInternal, err)
	}

	return e, nil
}

// Run executes one full batch: every document in the input directories is
// parsed, candidates are deduplicated against the existing artifact and
// each other, the merged set is ranked, and the artifact is atomically
// rebuilt.
//
// Validation is all-or-nothing: if any document fails to parse (or, in
// strict mode, carries a severity mismatch), the batch halts before any
// write and the returned report names every failing document. The returned
// RunReport is non-nil whenever enumeration succeeded, including on
// validation failure, so callers can always present per-document outcomes.
func (e *Engine) Run(ctx context.Context, cfg RunConfig) (*RunReport, error) {
	const op = "Engine.Run"

	if err := cfg.Validate(); err != nil {
		return nil, newError(op, KindValidation, err)
	}

	ctx, span := e.tracer.Start(ctx, "triage.run",
		trace.WithAttributes(attribute.Bool("triage.strict", cfg.StrictMode)))
	defer span.End()

	report := &RunReport{
		RunID:     uuid.New().String(),
		StartedAt: time.Now(),
		Strict:    cfg.StrictMode,
	}

	paths, err := listDocuments(ctx, e.tracer, cfg.InputDirs)
	if err != nil {
		return nil, newError(op, KindIO, err)
	}
	if len(paths) == 0 {
		return nil, newError(op, KindValidation, ErrNoInputs).
			withContext(map[string]any{"input_dirs": cfg.InputDirs})
	}
	report.Inputs = len(paths)

	candidates, hadParseFailure, hadStrictFailure := e.parseAll(ctx, cfg, paths, report)
	if hadParseFailure || hadStrictFailure {
		// Documents that parsed cleanly never reach dedupe once the batch
		// halts; report them as skipped rather than accepted.
		for i := range report.Outcomes {
			if report.Outcomes[i].Status == StatusAccepted {
				report.Outcomes[i].Status = StatusSkipped
			}
		}
		e.failureCounter.Add(ctx, int64(report.Failures))
		report.FinishedAt = time.Now()
		e.logger.Error("batch halted before write",
			"run_id", report.RunID,
			"failures", report.Failures,
			"documents", report.FailedDocuments())

		kind, sentinel := KindParse, ErrBatchValidation
		if !hadParseFailure {
			kind, sentinel = KindConsistency, ErrStrictConsistency
		}
		return report, newError(op, kind, sentinel).
			withContext(map[string]any{"failed_documents": report.FailedDocuments()})
	}

	existing, err := e.loadExisting(ctx, cfg.ExistingArtifactPath)
	if err != nil {
		return nil, newError(op, KindIO, err)
	}

	newRecords := e.dedupeCandidates(ctx, existing, candidates, report)

	_, rankSpan := e.tracer.Start(ctx, "triage.rank")
	set := ranking.Rank(append(existing, newRecords...))
	rankSpan.SetAttributes(attribute.Int("triage.records", len(set)))
	rankSpan.End()

	_, writeSpan := e.tracer.Start(ctx, "triage.write")
	err = artifact.Write(cfg.OutputArtifactPath, set)
	writeSpan.End()
	if err != nil {
		if errors.Is(err, artifact.ErrRowCountMismatch) {
			return report, newError(op, KindInternal, fmt.Errorf("%w: %v", ErrRowCountMismatch, err))
		}
		return report, newError(op, KindIO, fmt.Errorf("%w: %v", ErrArtifactWrite, err))
	}

	report.TotalRecords = len(set)
	report.ArtifactPath = cfg.OutputArtifactPath
	report.FinishedAt = time.Now()

	e.acceptedCounter.Add(ctx, int64(report.Accepted))
	e.duplicateCounter.Add(ctx, int64(report.Duplicates))

	e.logger.Info("batch complete",
		"run_id", report.RunID,
		"inputs", report.Inputs,
		"accepted", report.Accepted,
		"duplicates", report.Duplicates,
		"total_records", report.TotalRecords,
		"artifact", report.ArtifactPath)

	return report, nil
}

// parseAll runs intake over every document, recording one outcome per path.
// Accepted candidates keep their enumeration order, which is the sorted
// path order, so later stages are enumeration-order independent.
func (e *Engine) parseAll(ctx context.Context, cfg RunConfig, paths []string, report *RunReport) (candidates []finding.Record, hadParse, hadStrict bool) {
	_, span := e.tracer.Start(ctx, "triage.parse",
		trace.WithAttributes(attribute.Int("triage.documents", len(paths))))
	defer span.End()

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			report.Failures++
			hadParse = true
			report.Outcomes = append(report.Outcomes, DocumentOutcome{
				Path:   path,
				Status: StatusParseError,
				Error:  err.Error(),
			})
			continue
		}

		rec, err := e.parser.Parse(path, string(data))
		if err != nil {
			report.Failures++
			hadParse = true
			report.Outcomes = append(report.Outcomes, DocumentOutcome{
				Path:   path,
				Status: StatusParseError,
				Error:  err.Error(),
			})
			e.logger.Warn("document failed intake", "path", path, "error", err)
			continue
		}

		if cfg.StrictMode && len(rec.Warnings) > 0 {
			report.Failures++
			hadStrict = true
			report.Outcomes = append(report.Outcomes, DocumentOutcome{
				Path:     path,
				Status:   StatusParseError,
				Title:    rec.Title,
				Error:    ErrStrictConsistency.Error(),
				Warnings: rec.Warnings,
			})
			e.logger.Warn("strict mode rejected document", "path", path, "warnings", rec.Warnings)
			continue
		}

		candidates = append(candidates, rec)
		report.Outcomes = append(report.Outcomes, DocumentOutcome{
			Path:     path,
			Status:   StatusAccepted, // provisional; dedupe may reclassify
			Title:    rec.Title,
			Warnings: rec.Warnings,
		})
	}
	return candidates, hadParse, hadStrict
}

// loadExisting reads the pre-existing record set from the artifact.
func (e *Engine) loadExisting(ctx context.Context, path string) ([]finding.Record, error) {
	if path == "" {
		return nil, nil
	}
	_, span := e.tracer.Start(ctx, "triage.load_existing")
	defer span.End()

	existing, err := artifact.Read(path)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("triage.existing_records", len(existing)))
	return existing, nil
}

// dedupeCandidates classifies candidates against the existing titles plus
// every candidate accepted earlier in the same batch, updating the
// provisional outcomes in the report.
func (e *Engine) dedupeCandidates(ctx context.Context, existing []finding.Record, candidates []finding.Record, report *RunReport) []finding.Record {
	_, span := e.tracer.Start(ctx, "triage.dedupe")
	defer span.End()

	matcher := dedupe.NewMatcher(artifact.Titles(existing))

	outcomeByPath := make(map[string]*DocumentOutcome, len(report.Outcomes))
	for i := range report.Outcomes {
		outcomeByPath[report.Outcomes[i].Path] = &report.Outcomes[i]
	}

	var accepted []finding.Record
	for _, rec := range candidates {
		outcome := outcomeByPath[rec.SourcePath]
		verdict, collidedWith := matcher.Check(rec.Title)
		if verdict == dedupe.OutcomeDuplicate {
			report.Duplicates++
			outcome.Status = StatusDuplicate
			outcome.CollidedWith = collidedWith
			e.logger.Info("duplicate title skipped",
				"path", rec.SourcePath, "title", rec.Title, "collided_with", collidedWith)
			continue
		}
		report.Accepted++
		accepted = append(accepted, rec)
	}
	return accepted
}

// listDocuments enumerates finding documents across the input directories
// and sorts them by path, so processing order never depends on file system
// enumeration order.
func listDocuments(ctx context.Context, tracer trace.Tracer, dirs []string) ([]string, error) {
	_, span := tracer.Start(ctx, "triage.enumerate")
	defer span.End()

	var paths []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read input directory: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			if !documentExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
				continue
			}
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	span.SetAttributes(attribute.Int("triage.documents", len(paths)))
	return paths, nil
}
