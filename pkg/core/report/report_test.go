package report

import (
	"strings"
	"testing"

	"filing_harvest/pkg/core/extract"
	"filing_harvest/pkg/models"
)

func fp(v float64) *float64 { return &v }

func sampleBatch() []models.FilingRecord {
	return []models.FilingRecord{
		{
			FilingDate: "2024-01-02",
			Facts: extract.FinancialFacts{
				NetIncome:         fp(1234),
				WeightedAvgShares: fp(10500000000),
			},
			ClosePrice: fp(185.64),
		},
		{FilingDate: "2024-04-02"}, // nothing extracted
	}
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown("AMZN", sampleBatch())

	for _, want := range []string{
		"# AMZN 10-Q Fact Harvest",
		"2 filings processed.",
		"| 2024-01-02 | 1234.00 | 0.00 | 10500000000.00 | 185.64 |",
		"| 2024-04-02 | — | 0.00 | — | — |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q\ngot:\n%s", want, out)
		}
	}
}

func TestRenderHTML(t *testing.T) {
	out, err := RenderHTML("AMZN", sampleBatch())
	if err != nil {
		t.Fatalf("RenderHTML returned error: %v", err)
	}
	if !strings.Contains(out, "<table>") {
		t.Errorf("pipe table was not rendered as an HTML table:\n%s", out)
	}
	if !strings.Contains(out, "<td>185.64</td>") {
		t.Errorf("close price cell missing from HTML:\n%s", out)
	}
}
