// Package prices fetches daily closing price history from the Yahoo
// Finance chart API.
package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"filing_harvest/pkg/core/align"
)

const chartURL = "https://query1.finance.yahoo.com/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d"

// Client retrieves daily price history for a ticker.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new Yahoo Finance price client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// chartResponse mirrors the subset of the v8 chart payload we consume.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}

// DailyHistory retrieves daily closes for symbol between start and end,
// ascending and deduplicated by date. Halted days arrive as null closes
// and are skipped.
func (c *Client) DailyHistory(ctx context.Context, symbol string, start, end time.Time) (align.Series, error) {
	url := fmt.Sprintf(chartURL, symbol, start.Unix(), end.Unix())
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return parseChart(body, symbol)
}

// parseChart decodes a chart payload into a price series.
func parseChart(body []byte, symbol string) (align.Series, error) {
	var yahooResp chartResponse
	if err := json.Unmarshal(body, &yahooResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if yahooResp.Chart.Error != nil {
		return nil, fmt.Errorf("Yahoo API error: %v", yahooResp.Chart.Error)
	}
	if len(yahooResp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no results for symbol: %s", symbol)
	}

	result := yahooResp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote data for symbol: %s", symbol)
	}
	closes := result.Indicators.Quote[0].Close

	points := make([]align.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		points = append(points, align.PricePoint{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *closes[i],
		})
	}

	return align.NewSeries(points), nil
}
