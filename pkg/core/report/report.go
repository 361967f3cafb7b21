// Package report renders a harvest batch as a Markdown summary table,
// optionally converted to HTML.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"filing_harvest/pkg/models"
)

// md renders pipe tables, which the summary relies on.
var md = goldmark.New(goldmark.WithExtensions(extension.Table))

// RenderMarkdown produces the batch summary as a Markdown document.
func RenderMarkdown(ticker string, records []models.FilingRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s 10-Q Fact Harvest\n\n", ticker)
	fmt.Fprintf(&b, "%d filings processed.\n\n", len(records))

	b.WriteString("| Filing Date | Net Income | Preferred Dividends | Weighted Avg Shares | Close Price |\n")
	b.WriteString("|---|---|---|---|---|\n")

	for _, r := range records {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			r.FilingDate,
			cell(r.Facts.NetIncome),
			fmt.Sprintf("%.2f", r.Facts.PreferredDividends),
			cell(r.Facts.WeightedAvgShares),
			cell(r.ClosePrice),
		)
	}

	return b.String()
}

// RenderHTML converts the Markdown summary to HTML.
func RenderHTML(ticker string, records []models.FilingRecord) (string, error) {
	source := RenderMarkdown(ticker, records)

	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return buf.String(), nil
}

// cell renders an optional value, using an em dash for missing facts the
// way financial statements do.
func cell(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%.2f", *v)
}
