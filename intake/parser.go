package intake

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/Reedboot/triage-saurus/finding"
)

// Line grammar for the semi-structured finding documents. The patterns are
// compiled once and shared; Parse itself holds no mutable state.
var (
	// scoreLineRe matches the canonical score declaration `<label>: <N>/10`
	// where the label contains the word "score" (e.g. "Risk Score: 7/10",
	// "**Score:** 9/10").
	scoreLineRe = regexp.MustCompile(`(?i)^[^:]*\bscore\b[^:]*:\s*\**\s*(-?\d+)\s*/\s*10\b`)

	// severityLabelRe detects a line that declares a severity, with or
	// without a parseable value.
	severityLabelRe = regexp.MustCompile(`(?i)^\s*[-*>]*\s*\**\s*(?:overall\s+)?severity\**\s*:`)

	// severityLineRe extracts the declared severity value.
	severityLineRe = regexp.MustCompile(`(?i)^\s*[-*>]*\s*\**\s*(?:overall\s+)?severity\**\s*:\s*\**\s*([A-Za-z]+)`)

	// impactHeadingRe matches the business-impact section marker, either as
	// a heading or as an inline `Business Impact: ...` declaration.
	impactHeadingRe = regexp.MustCompile(`(?i)^\s*(?:#{1,6}\s*)?\**\s*business\s+impact\**\s*:?\s*(.*)$`)

	// headingRe matches any markdown heading, used to find section ends.
	headingRe = regexp.MustCompile(`^\s*#{1,6}\s`)
)

// Parser extracts structured finding records from document text.
// Parsing is a pure function over the text; the parser carries only the
// immutable category table used to derive resource types.
type Parser struct {
	categories *finding.CategoryMap
}

// NewParser creates a parser using the given category table.
// A nil table falls back to finding.DefaultCategoryMap.
func NewParser(categories *finding.CategoryMap) *Parser {
	if categories == nil {
		categories = finding.DefaultCategoryMap()
	}
	return &Parser{categories: categories}
}

// Parse extracts a finding.Record from one document's raw text.
// On failure it returns a *ParseError wrapping one of the package's
// sentinel errors. A declared severity that disagrees with the band derived
// from the score is not a failure here; it is recorded as a warning on the
// record and escalated by the caller in strict mode.
func (p *Parser) Parse(sourcePath, text string) (finding.Record, error) {
	lines := strings.Split(text, "\n")

	nonEmpty := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			nonEmpty = append(nonEmpty, line)
		}
	}
	if len(nonEmpty) == 0 {
		return finding.Record{}, newParseError(sourcePath, ErrEmptyDocument, "")
	}

	title := cleanTitle(nonEmpty[0])
	if title == "" {
		return finding.Record{}, newParseError(sourcePath, ErrMissingTitle, "")
	}

	score, err := p.extractScore(sourcePath, lines)
	if err != nil {
		return finding.Record{}, err
	}

	declared, declaredOK, err := p.extractSeverity(sourcePath, lines)
	if err != nil {
		return finding.Record{}, err
	}

	impact := p.extractImpact(lines, nonEmpty)
	if impact == "" {
		return finding.Record{}, newParseError(sourcePath, ErrMissingImpact, "")
	}

	record, err := finding.NewRecord(title, score, p.categories.Classify(title), impact, sourcePath)
	if err != nil {
		// Score range is checked in extractScore; reaching this indicates
		// a bug in the grammar rather than bad input.
		return finding.Record{}, newParseError(sourcePath, ErrScoreOutOfRange, err.Error())
	}

	if declaredOK && declared != record.Severity {
		record.AddWarning(fmt.Sprintf(
			"declared severity %q disagrees with severity %q derived from score %d",
			declared.DisplayName(), record.Severity.DisplayName(), record.Score))
	}

	return record, nil
}

// extractScore finds the canonical score declaration line and parses it.
func (p *Parser) extractScore(sourcePath string, lines []string) (int, error) {
	for _, line := range lines {
		m := scoreLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		score, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, newParseError(sourcePath, ErrMissingScore, fmt.Sprintf("unparseable score %q", m[1]))
		}
		if !finding.ValidScore(score) {
			return 0, newParseError(sourcePath, ErrScoreOutOfRange,
				fmt.Sprintf("declared %d/10, accepted range is %d-%d", score, finding.MinScore, finding.MaxScore))
		}
		return score, nil
	}
	return 0, newParseError(sourcePath, ErrMissingScore, "")
}

// extractSeverity looks for an optional severity declaration.
// Returns the declared band and whether one was present.
func (p *Parser) extractSeverity(sourcePath string, lines []string) (finding.Severity, bool, error) {
	for _, line := range lines {
		if !severityLabelRe.MatchString(line) {
			continue
		}
		m := severityLineRe.FindStringSubmatch(line)
		if m == nil {
			return "", false, newParseError(sourcePath, ErrMalformedSeverityLine, strings.TrimSpace(line))
		}
		severity, err := finding.ParseSeverity(m[1])
		if err != nil {
			return "", false, newParseError(sourcePath, ErrMalformedSeverityLine, strings.TrimSpace(line))
		}
		return severity, true, nil
	}
	return "", false, nil
}

// extractImpact returns the one-sentence business impact.
// It prefers the designated "Business Impact" section; when absent it falls
// back to the first prose line after the title that is not a score or
// severity declaration.
func (p *Parser) extractImpact(lines, nonEmpty []string) string {
	for i, line := range lines {
		m := impactHeadingRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		inline := stripInlineMarkup(m[1])
		if inline != "" {
			return firstSentence(inline)
		}
		var block []string
		for _, next := range lines[i+1:] {
			trimmed := strings.TrimSpace(next)
			if trimmed == "" {
				if len(block) > 0 {
					break
				}
				continue
			}
			if headingRe.MatchString(next) || scoreLineRe.MatchString(next) || severityLabelRe.MatchString(next) {
				break
			}
			block = append(block, trimmed)
		}
		if len(block) > 0 {
			return firstSentence(stripInlineMarkup(strings.Join(block, " ")))
		}
	}

	// Fallback: second non-empty line onward, skipping declaration lines.
	for _, line := range nonEmpty[1:] {
		if scoreLineRe.MatchString(line) || severityLabelRe.MatchString(line) || headingRe.MatchString(line) {
			continue
		}
		if s := firstSentence(stripInlineMarkup(line)); s != "" {
			return s
		}
	}
	return ""
}

// cleanTitle normalizes the first heading of a document into a stored title:
// heading markup and a leading marker glyph are stripped, underscores are
// normalized to spaces, and interior whitespace is collapsed.
func cleanTitle(line string) string {
	t := strings.TrimSpace(line)
	t = strings.TrimLeft(t, "#")
	t = stripLeadingGlyph(t)
	t = strings.TrimRight(t, "*_` \t")
	t = strings.ReplaceAll(t, "_", " ")
	return strings.Join(strings.Fields(t), " ")
}

// stripLeadingGlyph drops leading runes up to the first letter or digit.
// This removes bullet markers, emphasis markup, and emoji (including their
// variation selectors) in one pass.
func stripLeadingGlyph(s string) string {
	for i, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return s[i:]
		}
	}
	return ""
}

// stripInlineMarkup removes emphasis glyphs and collapses whitespace.
func stripInlineMarkup(s string) string {
	s = strings.NewReplacer("**", "", "`", "", "*", "").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// firstSentence cuts the text at the first sentence boundary: a '.', '!' or
// '?' followed by whitespace or end of text. Text without a boundary is
// returned whole.
func firstSentence(s string) string {
	s = strings.TrimSpace(s)
	for i, r := range s {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 == len(s) {
			return s
		}
		if next := s[i+1]; next == ' ' || next == '\t' {
			return s[:i+1]
		}
	}
	return s
}
