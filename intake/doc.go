// Package intake parses semi-structured finding documents into records.
//
// A finding document is free text with a small amount of structure: the
// first non-empty line is the title, somewhere in the body a canonical score
// declaration of the form `<label>: <N>/10` supplies the risk score, and the
// document may optionally carry a severity label and a "Business Impact"
// section. The grammar for these lines is a small table of compiled regular
// expressions so each rule is independently testable.
//
// Parse is a pure function over document text. It returns either a complete
// finding.Record or a *ParseError wrapping one of the typed sentinel errors
// (ErrEmptyDocument, ErrMissingTitle, ErrMissingScore, ErrScoreOutOfRange,
// ErrMalformedSeverityLine, ErrMissingImpact).
//
// A severity label that parses cleanly but disagrees with the band derived
// from the score is deliberately not a parse failure: the mismatch is
// recorded as a warning on the record, and the batch orchestrator decides
// whether strict mode escalates it.
package intake
