package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	triage "github.com/Reedboot/triage-saurus"
	"github.com/Reedboot/triage-saurus/finding"
)

var (
	artifactPath   string
	existingPath   string
	categoriesPath string
	strictMode     bool
	debugMode      bool
)

var runCmd = &cobra.Command{
	Use:          "run [intake-dir...]",
	Short:        "Parse finding documents, drop duplicates, and rebuild the ranked artifact",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logConfig := zap.NewProductionConfig()
		if debugMode {
			logConfig = zap.NewDevelopmentConfig()
		}
		logConfig.Encoding = "console"
		rawLogger, err := logConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		defer rawLogger.Sync()
		logger := rawLogger.Sugar()

		opts := []triage.Option{triage.WithLogger(engineLogger())}
		if categoriesPath != "" {
			categories, err := finding.LoadCategoryMap(categoriesPath)
			if err != nil {
				return fmt.Errorf("failed to load category rules: %w", err)
			}
			opts = append(opts, triage.WithCategoryMap(categories))
		}

		engine, err := triage.New(opts...)
		if err != nil {
			return err
		}

		if existingPath == "" {
			existingPath = artifactPath
		}
		logger.Infow("starting batch",
			"intake_dirs", args,
			"artifact", artifactPath,
			"strict", strictMode)

		report, err := engine.Run(context.Background(), triage.RunConfig{
			InputDirs:            args,
			ExistingArtifactPath: existingPath,
			OutputArtifactPath:   artifactPath,
			StrictMode:           strictMode,
		})
		if report != nil {
			printOutcomes(logger, report)
		}
		if err != nil {
			if report != nil && errors.Is(err, triage.ErrBatchValidation) {
				logger.Errorw("batch halted, artifact untouched",
					"failed_documents", report.FailedDocuments())
			}
			return err
		}

		logger.Infow("batch complete",
			"run_id", report.RunID,
			"accepted", report.Accepted,
			"duplicates", report.Duplicates,
			"total_records", report.TotalRecords,
			"artifact", report.ArtifactPath)
		return nil
	},
}

// printOutcomes lists the per-document verdicts in processing order.
func printOutcomes(logger *zap.SugaredLogger, report *triage.RunReport) {
	for _, outcome := range report.Outcomes {
		switch outcome.Status {
		case triage.StatusAccepted:
			logger.Infow("accepted", "path", outcome.Path, "title", outcome.Title)
			for _, warning := range outcome.Warnings {
				logger.Warnw("consistency warning", "path", outcome.Path, "warning", warning)
			}
		case triage.StatusDuplicate:
			logger.Infow("duplicate skipped",
				"path", outcome.Path,
				"title", outcome.Title,
				"collided_with", outcome.CollidedWith)
		case triage.StatusParseError:
			logger.Errorw("rejected", "path", outcome.Path, "error", outcome.Error)
		case triage.StatusSkipped:
			logger.Warnw("skipped, batch halted", "path", outcome.Path)
		}
	}
}

// engineLogger returns the slog logger handed to the engine. The CLI owns
// the console output; engine logs only surface with --debug.
func engineLogger() *slog.Logger {
	if debugMode {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func init() {
	runCmd.Flags().StringVarP(&artifactPath, "artifact", "a", "findings.xlsx", "output artifact path")
	runCmd.Flags().StringVar(&existingPath, "existing", "", "existing artifact to dedupe against (defaults to --artifact)")
	runCmd.Flags().StringVar(&categoriesPath, "categories", "", "YAML file with resource-type classification rules")
	runCmd.Flags().BoolVar(&strictMode, "strict", false, "treat severity/score mismatches as failures")
	runCmd.Flags().BoolVar(&debugMode, "debug", false, "enable debug logging")
	rootCmd.AddCommand(runCmd)
}
