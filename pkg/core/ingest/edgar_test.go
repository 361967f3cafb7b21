package ingest

import (
	"testing"
)

func fixtureInfo() *SECCompanyInfo {
	return &SECCompanyInfo{
		CIK:  "1018724",
		Name: "AMAZON COM INC",
		Filings: SECFilings{Recent: SECRecentFilings{
			AccessionNumber: []string{
				"0001018724-24-000161",
				"0001018724-24-000083",
				"0001018724-24-000008",
				"0001018724-23-000110",
			},
			FilingDate:      []string{"2024-11-01", "2024-08-02", "2024-02-02", "2023-10-27"},
			ReportDate:      []string{"2024-09-30", "2024-06-30", "2023-12-31", "2023-09-30"},
			Form:            []string{"10-Q", "10-Q", "10-K", "10-Q"},
			PrimaryDocument: []string{"amzn-20240930.htm", "amzn-20240630.htm", "amzn-20231231.htm", "amzn-20230930.htm"},
		}},
	}
}

func TestTenQFilings(t *testing.T) {
	client := NewEDGARClient()

	t.Run("Filters to 10-Q, newest first", func(t *testing.T) {
		filings := client.TenQFilings(fixtureInfo(), 0)
		if len(filings) != 3 {
			t.Fatalf("filings = %d, want 3 (10-K excluded)", len(filings))
		}
		if filings[0].FilingDate != "2024-11-01" || filings[2].FilingDate != "2023-10-27" {
			t.Errorf("order wrong: %s .. %s", filings[0].FilingDate, filings[2].FilingDate)
		}
		for _, f := range filings {
			if f.FormType != "10-Q" {
				t.Errorf("non-10-Q slipped through: %s", f.FormType)
			}
		}
	})

	t.Run("Limit caps the result", func(t *testing.T) {
		filings := client.TenQFilings(fixtureInfo(), 2)
		if len(filings) != 2 {
			t.Errorf("filings = %d, want 2", len(filings))
		}
	})

	t.Run("Archives URL drops accession dashes", func(t *testing.T) {
		filings := client.TenQFilings(fixtureInfo(), 1)
		want := "https://www.sec.gov/Archives/edgar/data/1018724/000101872424000161/amzn-20240930.htm"
		if filings[0].URL != want {
			t.Errorf("URL = %s\nwant %s", filings[0].URL, want)
		}
	})
}
