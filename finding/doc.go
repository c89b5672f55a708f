// Package finding provides the record model for triaged security findings.
//
// A Record captures one accepted finding: its unique title, the supplied
// 1-10 risk score, the severity band derived from that score, the
// resource-type category derived from the title prefix, a one-sentence
// business-impact statement, and the path of the source document.
//
// # Severity Derivation
//
// Severity is a derived fact, not a stored one. SeverityForScore applies the
// fixed bands (8-10 critical, 6-7 high, 4-5 medium, 1-3 low) and is re-run
// whenever a record is created or loaded back from the artifact, so a stored
// severity can never silently drift from its score.
//
// # Resource Categorization
//
// CategoryMap maps title prefixes to resource-type categories, with a
// catch-all default. The built-in table can be replaced by a YAML rules file
// via LoadCategoryMap.
//
// Example usage:
//
//	rec, err := finding.NewRecord(
//		"Unprotected Storage Account",
//		7,
//		categories.Classify("Unprotected Storage Account"),
//		"Customer documents are readable by unauthenticated clients.",
//		"intake/storage-account.md",
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := rec.Validate(); err != nil {
//		log.Fatal(err)
//	}
package finding
