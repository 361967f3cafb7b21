package pipeline

import (
	"context"
	"fmt"
	"time"

	"filing_harvest/pkg/core/align"
	"filing_harvest/pkg/core/document"
	"filing_harvest/pkg/core/extract"
	"filing_harvest/pkg/core/ingest"
	"filing_harvest/pkg/models"
)

// FilingLister locates recent 10-Q filings for a ticker.
// Implementations: live SEC EDGAR, test fixtures.
type FilingLister interface {
	RecentTenQs(ctx context.Context, ticker string, limit int) ([]ingest.Filing, string, error)
}

// DocumentFetcher retrieves and flattens one filing document.
// Implementations may fetch from SEC Archives or a local cache.
type DocumentFetcher interface {
	FetchDocument(ctx context.Context, filing ingest.Filing) (*document.FilingDocument, error)
}

// PriceSource supplies a daily close series for a symbol and date range.
type PriceSource interface {
	DailyHistory(ctx context.Context, symbol string, start, end time.Time) (align.Series, error)
}

// RecordSink accepts the final ordered batch. Each run replaces prior
// output in full.
type RecordSink interface {
	WriteAll(records []models.FilingRecord) error
}

// Config controls one harvest run.
type Config struct {
	Ticker     string
	MaxFilings int
}

// Orchestrator manages the end-to-end flow:
// list filings -> fetch+extract per filing -> align batch to prices -> persist.
type Orchestrator struct {
	lister    FilingLister
	fetcher   DocumentFetcher
	prices    PriceSource
	sink      RecordSink
	extractor *extract.Extractor
}

// NewOrchestrator creates an orchestrator with all collaborators injected.
// It holds no session state: every filing is fetched through the passed-in
// capability, one call per filing.
func NewOrchestrator(lister FilingLister, fetcher DocumentFetcher, prices PriceSource, sink RecordSink) *Orchestrator {
	return &Orchestrator{
		lister:    lister,
		fetcher:   fetcher,
		prices:    prices,
		sink:      sink,
		extractor: extract.NewExtractor(),
	}
}

// Run executes the full harvest for cfg.Ticker and returns the batch.
// A filing that cannot be fetched is skipped with a warning; extraction
// and alignment failures degrade to null fields, never abort the batch.
func (o *Orchestrator) Run(ctx context.Context, cfg Config) ([]models.FilingRecord, error) {
	fmt.Printf("Starting harvest for %s...\n", cfg.Ticker)
	start := time.Now()

	// 1. Locate filings.
	filings, cik, err := o.lister.RecentTenQs(ctx, cfg.Ticker, cfg.MaxFilings)
	if err != nil {
		return nil, fmt.Errorf("failed to list filings: %w", err)
	}
	fmt.Printf("Found %d 10-Q filings (CIK %s)\n", len(filings), cik)

	// 2. Extraction loop. Each filing is independent; a failure only
	// costs that record.
	records := make([]models.FilingRecord, 0, len(filings))
	for _, filing := range filings {
		fmt.Printf("Extracting %s (filed %s)...\n", filing.AccessionNumber, filing.FilingDate)

		doc, err := o.fetcher.FetchDocument(ctx, filing)
		if err != nil {
			fmt.Printf("Warning: failed to fetch %s: %v. Skipping.\n", filing.AccessionNumber, err)
			continue
		}

		facts := o.extractor.Extract(doc)
		records = append(records, models.FilingRecord{
			Ticker:          cfg.Ticker,
			CIK:             cik,
			AccessionNumber: filing.AccessionNumber,
			FilingDate:      filing.FilingDate,
			DocumentURL:     filing.URL,
			Facts:           facts,
		})
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no filings extracted for %s", cfg.Ticker)
	}

	// 3. Price alignment over the whole batch.
	series, err := o.fetchSeries(ctx, cfg.Ticker, records)
	if err != nil {
		fmt.Printf("Warning: price fetch failed: %v. Close prices left empty.\n", err)
	}
	AlignBatch(records, series)

	// 4. Persist, replacing any previous run.
	if err := o.sink.WriteAll(records); err != nil {
		return records, fmt.Errorf("persistence failed: %w", err)
	}

	fmt.Printf("Harvest completed for %s in %v\n", cfg.Ticker, time.Since(start))
	return records, nil
}

// AlignBatch sets ClosePrice on each record from the series. Safe with a
// nil/empty series and with unparseable filing dates: those records keep
// a nil close price.
func AlignBatch(records []models.FilingRecord, series align.Series) {
	for i := range records {
		records[i].ClosePrice = align.ClosingPriceForDate(records[i].FilingDate, series)
	}
}

// fetchSeries requests a close series wide enough to cover every filing
// date in the batch, with margin for weekends and holidays on both ends.
func (o *Orchestrator) fetchSeries(ctx context.Context, ticker string, records []models.FilingRecord) (align.Series, error) {
	var earliest, latest time.Time
	for _, r := range records {
		d, err := time.Parse("2006-01-02", r.FilingDate)
		if err != nil {
			continue
		}
		if earliest.IsZero() || d.Before(earliest) {
			earliest = d
		}
		if latest.IsZero() || d.After(latest) {
			latest = d
		}
	}

	if earliest.IsZero() {
		// No parseable dates at all; a trailing two-year window still
		// lets the backward fallback do something useful.
		latest = time.Now()
		earliest = latest.AddDate(-2, 0, 0)
	}

	return o.prices.DailyHistory(ctx, ticker, earliest.AddDate(0, 0, -7), latest.AddDate(0, 0, 7))
}
