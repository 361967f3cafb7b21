// Package ingest provides SEC EDGAR API integration for locating and
// fetching quarterly filings.
// API Documentation: https://www.sec.gov/developer
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"filing_harvest/pkg/core/utils"
)

const (
	// SEC EDGAR API endpoints
	SECSubmissionsURL = "https://data.sec.gov/submissions/CIK%s.json"
	SECFilingURL      = "https://www.sec.gov/Archives/edgar/data/%s/%s"
	SECTickerMapURL   = "https://www.sec.gov/files/company_tickers.json"

	// Required User-Agent per SEC guidelines
	UserAgent = "FilingHarvest/1.0 (contact@example.com)"
)

// =============================================================================
// SEC EDGAR DATA TYPES
// =============================================================================

// SECCompanyInfo represents the top-level company submission response.
type SECCompanyInfo struct {
	CIK     string     `json:"cik"`
	Name    string     `json:"name"`
	Tickers []string   `json:"tickers"`
	Filings SECFilings `json:"filings"`
}

// SECFilings contains recent filing lists.
type SECFilings struct {
	Recent SECRecentFilings `json:"recent"`
}

// SECRecentFilings holds arrays of filing attributes (parallel arrays).
type SECRecentFilings struct {
	AccessionNumber []string `json:"accessionNumber"` // e.g., "0001018724-24-000083"
	FilingDate      []string `json:"filingDate"`      // e.g., "2024-08-02"
	ReportDate      []string `json:"reportDate"`      // Fiscal period end
	Form            []string `json:"form"`            // "10-K", "10-Q", "8-K"
	PrimaryDocument []string `json:"primaryDocument"` // filename
}

// Filing represents a single SEC filing (denormalized from parallel arrays).
// FilingDate stays a string on purpose: a malformed date must flow through
// to alignment as a per-record failure, not break listing.
type Filing struct {
	AccessionNumber string `json:"accession_number"`
	FilingDate      string `json:"filing_date"`
	ReportDate      string `json:"report_date"`
	FormType        string `json:"form_type"`
	PrimaryDocument string `json:"primary_document"`
	URL             string `json:"url"` // Constructed download URL
}

// =============================================================================
// SEC EDGAR CLIENT
// =============================================================================

// EDGARClient handles SEC EDGAR API requests.
type EDGARClient struct {
	httpClient *http.Client
}

// NewEDGARClient creates a new SEC EDGAR API client.
func NewEDGARClient() *EDGARClient {
	return &EDGARClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchCompanyInfo retrieves company submission data from SEC EDGAR.
//
// CIK should be zero-padded to 10 digits (e.g., "0001018724" for Amazon).
// If not padded, this function will pad it automatically.
func (c *EDGARClient) FetchCompanyInfo(ctx context.Context, cik string) (*SECCompanyInfo, error) {
	cik = fmt.Sprintf("%010s", strings.TrimLeft(cik, "0"))

	body, err := c.get(ctx, fmt.Sprintf(SECSubmissionsURL, cik), "application/json")
	if err != nil {
		return nil, err
	}

	var info SECCompanyInfo
	if err := json.Unmarshal(body, &info); err != nil {
		// EDGAR payloads are occasionally served truncated or with stray
		// bytes by intermediaries; run the tolerant parse chain before
		// giving up.
		if _, terr := utils.TolerantParse(string(body), &info); terr != nil {
			return nil, fmt.Errorf("failed to parse SEC response: %w", err)
		}
	}

	return &info, nil
}

// TenQFilings extracts the most recent 10-Q filings, newest first.
// limit caps the result (0 = no limit).
func (c *EDGARClient) TenQFilings(info *SECCompanyInfo, limit int) []Filing {
	recent := info.Filings.Recent
	filings := make([]Filing, 0)

	for i := range recent.AccessionNumber {
		if recent.Form[i] != "10-Q" {
			continue
		}

		// Format: https://www.sec.gov/Archives/edgar/data/{cik}/{accession-no-dashes}/{document}
		accessionNoDashes := strings.ReplaceAll(recent.AccessionNumber[i], "-", "")
		downloadURL := fmt.Sprintf(SECFilingURL, info.CIK, accessionNoDashes+"/"+recent.PrimaryDocument[i])

		filings = append(filings, Filing{
			AccessionNumber: recent.AccessionNumber[i],
			FilingDate:      recent.FilingDate[i],
			ReportDate:      recent.ReportDate[i],
			FormType:        recent.Form[i],
			PrimaryDocument: recent.PrimaryDocument[i],
			URL:             downloadURL,
		})

		if limit > 0 && len(filings) >= limit {
			break
		}
	}

	return filings
}

// FetchDocumentHTML downloads a filing document from SEC Archives.
func (c *EDGARClient) FetchDocumentHTML(ctx context.Context, url string) (string, error) {
	body, err := c.get(ctx, url, "text/html")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// get issues a GET with the SEC-required headers and returns the body.
func (c *EDGARClient) get(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", accept)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("SEC request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("SEC returned status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// =============================================================================
// CONVENIENCE FUNCTIONS
// =============================================================================

// LookupCIKByTicker finds the CIK for a given ticker symbol using the SEC
// ticker -> CIK mapping file.
func (c *EDGARClient) LookupCIKByTicker(ctx context.Context, ticker string) (string, error) {
	body, err := c.get(ctx, SECTickerMapURL, "application/json")
	if err != nil {
		return "", fmt.Errorf("failed to fetch ticker mapping: %w", err)
	}

	// Response structure: { "0": {"cik_str": 1018724, "ticker": "AMZN", "title": "..."}, ... }
	var mapping map[string]struct {
		CIK    int    `json:"cik_str"`
		Ticker string `json:"ticker"`
		Title  string `json:"title"`
	}

	if err := json.Unmarshal(body, &mapping); err != nil {
		if _, terr := utils.TolerantParse(string(body), &mapping); terr != nil {
			return "", fmt.Errorf("failed to parse ticker mapping: %w", err)
		}
	}

	ticker = strings.ToUpper(ticker)
	for _, entry := range mapping {
		if entry.Ticker == ticker {
			return fmt.Sprintf("%010d", entry.CIK), nil
		}
	}

	return "", fmt.Errorf("ticker %s not found in SEC database", ticker)
}

// RecentTenQs fetches the most recent 10-Q filings for a ticker.
func (c *EDGARClient) RecentTenQs(ctx context.Context, ticker string, limit int) ([]Filing, string, error) {
	cik, err := c.LookupCIKByTicker(ctx, ticker)
	if err != nil {
		return nil, "", err
	}

	info, err := c.FetchCompanyInfo(ctx, cik)
	if err != nil {
		return nil, "", err
	}

	filings := c.TenQFilings(info, limit)
	if len(filings) == 0 {
		return nil, cik, fmt.Errorf("no 10-Q filings found for %s", ticker)
	}

	return filings, cik, nil
}
