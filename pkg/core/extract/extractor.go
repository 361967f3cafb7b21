// Package extract implements the two-tier fact extractor for quarterly
// filings. Tier 1 runs priority-ordered label patterns over the flattened
// filing text; tier 2 scans structured tables and may override tier-1
// results under the conflict rules documented on Extract.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"filing_harvest/pkg/core/document"
)

// FinancialFacts is the extractor output for one filing.
// NetIncome and WeightedAvgShares are nil when no label matched.
// PreferredDividends is always present: issuers without preferred equity
// simply report nothing, so absence means 0.0, not missing.
type FinancialFacts struct {
	NetIncome          *float64 `json:"net_income"`
	PreferredDividends float64  `json:"preferred_dividends"`
	WeightedAvgShares  *float64 `json:"weighted_avg_shares"`
}

// =============================================================================
// TIER 1 - FREE-TEXT LABEL PATTERNS
// =============================================================================

// Each fact carries an ordered strategy list, most specific label first.
// The first pattern whose first occurrence parses as a number wins; a
// non-parseable numeral disqualifies the whole pattern and the next one
// is tried. Labels may be followed by a currency symbol or an opening
// parenthesis. Note: parentheses mark negatives in financial statements,
// but the captured numeral is deliberately taken unsigned, matching the
// magnitude-based override rule in tier 2. Known edge case for losses.
var (
	netIncomePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Net\s+income[:\s]+[\$\(]?([\d,]+(?:\.\d+)?)`),
		regexp.MustCompile(`(?i)Net\s+earnings[:\s]+[\$\(]?([\d,]+(?:\.\d+)?)`),
		regexp.MustCompile(`(?i)Net\s+income\s+\(loss\)[:\s]+[\$\(]?([\d,]+(?:\.\d+)?)`),
	}

	preferredDividendPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Preferred\s+stock\s+dividends[:\s]+[\$\(]?([\d,]+(?:\.\d+)?)`),
		regexp.MustCompile(`(?i)Dividends\s+on\s+preferred\s+stock[:\s]+[\$\(]?([\d,]+(?:\.\d+)?)`),
	}

	sharesPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Weighted[-\s]+average\s+common\s+shares\s+outstanding[:\s]+([\d,]+(?:\.\d+)?)`),
		regexp.MustCompile(`(?i)Weighted[-\s]+average\s+shares\s+outstanding[:\s]+([\d,]+(?:\.\d+)?)`),
		regexp.MustCompile(`(?i)Average\s+shares\s+outstanding[:\s]+([\d,]+(?:\.\d+)?)`),
	}
)

// cellNumeral matches the first numeral in a table cell, optionally led by
// a dollar sign or an opening parenthesis.
var cellNumeral = regexp.MustCompile(`[\$\(]?([\d,]+(?:\.\d+)?)`)

// bareNumeral matches a numeral with no currency prefix, for share counts.
var bareNumeral = regexp.MustCompile(`([\d,]+(?:\.\d+)?)`)

// sharesTableFloor rejects table candidates that are too small to be a
// share count (percentages, page numbers, per-share figures).
const sharesTableFloor = 1000

// Extractor pulls the three facts out of a FilingDocument.
// It is stateless; a single instance is safe for concurrent use.
type Extractor struct{}

// NewExtractor creates a new fact extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract runs both tiers over the document and returns a best-effort
// record. It never fails: a fact with no match is nil (dividends default
// to 0.0), and malformed numerals are skipped, never propagated.
//
// Conflict rules between tiers:
//   - net income: a table value replaces the held value only when no value
//     is held yet or its magnitude is larger (summary rows repeat the
//     headline total; per-share and percentage figures are smaller).
//   - shares: any table candidate above the floor replaces the held value,
//     last qualifying cell in table order wins.
func (e *Extractor) Extract(doc *document.FilingDocument) FinancialFacts {
	var facts FinancialFacts

	if doc == nil {
		return facts
	}

	// Tier 1: free-text pass.
	facts.NetIncome = firstPatternMatch(doc.RawText, netIncomePatterns)
	facts.WeightedAvgShares = firstPatternMatch(doc.RawText, sharesPatterns)
	dividends := firstPatternMatch(doc.RawText, preferredDividendPatterns)

	// Tier 2: structured table pass.
	for _, table := range doc.Tables {
		for _, row := range table.Rows {
			e.scanRow(row, &facts)
		}
	}

	if dividends != nil {
		facts.PreferredDividends = *dividends
	}
	// else: stays 0.0, the domain default.

	return facts
}

// firstPatternMatch tries each pattern in priority order and returns the
// parsed value of the first occurrence of the first pattern that both
// matches and parses.
func firstPatternMatch(text string, patterns []*regexp.Regexp) *float64 {
	for _, p := range patterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v, ok := parseNumeral(m[1]); ok {
			return &v
		}
		// Matched but did not parse: the pattern does not count, move on.
	}
	return nil
}

// scanRow classifies one table row and applies the tier-2 override rules.
func (e *Extractor) scanRow(cells []string, facts *FinancialFacts) {
	rowText := strings.ToLower(strings.Join(cells, " "))

	if strings.Contains(rowText, "net income") || strings.Contains(rowText, "net earnings") {
		for _, cell := range cells {
			m := cellNumeral.FindStringSubmatch(cell)
			if m == nil {
				continue
			}
			v, ok := parseNumeral(m[1])
			if !ok {
				continue
			}
			if facts.NetIncome == nil || abs(v) > abs(*facts.NetIncome) {
				val := v
				facts.NetIncome = &val
			}
		}
	}

	if strings.Contains(rowText, "weighted average") && strings.Contains(rowText, "shares") {
		for _, cell := range cells {
			m := bareNumeral.FindStringSubmatch(cell)
			if m == nil {
				continue
			}
			v, ok := parseNumeral(m[1])
			if !ok {
				continue
			}
			if v > sharesTableFloor {
				val := v
				facts.WeightedAvgShares = &val
			}
		}
	}
}

// parseNumeral strips grouping commas and parses a decimal.
func parseNumeral(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
