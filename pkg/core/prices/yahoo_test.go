package prices

import (
	"testing"
)

// Trimmed v8 chart payload: three trading days, the middle one halted
// (null close). Timestamps are 2024-01-02, 2024-01-03, 2024-01-04 UTC.
const chartFixture = `{
  "chart": {
    "result": [
      {
        "timestamp": [1704153600, 1704240000, 1704326400],
        "indicators": {
          "quote": [
            {"close": [185.64, null, 181.91]}
          ]
        }
      }
    ],
    "error": null
  }
}`

func TestParseChart(t *testing.T) {
	series, err := parseChart([]byte(chartFixture), "AMZN")
	if err != nil {
		t.Fatalf("parseChart returned error: %v", err)
	}

	if len(series) != 2 {
		t.Fatalf("series length = %d, want 2 (null close skipped)", len(series))
	}
	if series[0].Close != 185.64 {
		t.Errorf("first close = %v, want 185.64", series[0].Close)
	}
	if series[1].Close != 181.91 {
		t.Errorf("second close = %v, want 181.91", series[1].Close)
	}
	if got := series[0].Date.Format("2006-01-02"); got != "2024-01-02" {
		t.Errorf("first date = %s, want 2024-01-02", got)
	}
	if !series[0].Date.Before(series[1].Date) {
		t.Errorf("series not ascending: %v then %v", series[0].Date, series[1].Date)
	}
}

func TestParseChart_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"Malformed JSON", `{"chart": [broken`},
		{"API error", `{"chart": {"result": null, "error": {"code": "Not Found"}}}`},
		{"Empty result", `{"chart": {"result": [], "error": null}}`},
		{"No quote data", `{"chart": {"result": [{"timestamp": [], "indicators": {"quote": []}}], "error": null}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseChart([]byte(tc.body), "AMZN"); err == nil {
				t.Errorf("expected error for %s", tc.name)
			}
		})
	}
}
