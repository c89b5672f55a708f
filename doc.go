// Package triage turns a folder of loosely structured security-finding
// documents into a deterministic, deduplicated, ranked report.
//
// The engine is the data-transformation core of a human-in-the-loop triage
// workflow: an external, LLM-driven orchestration layer authors the finding
// documents and consumes the report artifact; this package only knows the
// record schema those documents carry and the artifact format the workflow
// expects back.
//
// # Pipeline
//
// A run is a single-threaded, synchronous batch over a bounded document
// set:
//
//   - intake parses each document into a finding.Record or a typed parse
//     error
//   - dedupe classifies candidate titles against the existing record set
//     and the batch itself
//   - ranking orders the merged set by the four-key risk comparator and
//     assigns dense 1-based priorities
//   - artifact atomically rebuilds the XLSX report
//
// Validation is all-or-nothing: a single hard parse failure halts the batch
// before any write, so the persisted artifact never mixes stale and fresh
// priorities.
//
// # Usage
//
//	engine, err := triage.New(triage.WithLogger(logger))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	report, err := engine.Run(ctx, triage.RunConfig{
//		InputDirs:            []string{"intake"},
//		ExistingArtifactPath: "findings.xlsx",
//		OutputArtifactPath:   "findings.xlsx",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("accepted %d, skipped %d duplicates\n", report.Accepted, report.Duplicates)
//
// # Determinism
//
// For a fixed input set and existing artifact, every run produces the same
// classifications and the same priority assignment: inputs are processed in
// sorted path order, duplicate matching is exact after normalization, and
// the comparator is a total order over distinct titles. Running twice with
// no input changes accepts zero new records.
package triage
