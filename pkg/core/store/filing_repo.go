package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"filing_harvest/pkg/models"
)

// FilingRepo persists harvest batches to Postgres.
//
// Schema assumption (managed elsewhere):
//
//	CREATE TABLE IF NOT EXISTS filing_facts (
//	  accession_number TEXT PRIMARY KEY,
//	  ticker TEXT,
//	  cik TEXT,
//	  filing_date TEXT,
//	  document_url TEXT,
//	  net_income DOUBLE PRECISION,
//	  preferred_dividends DOUBLE PRECISION,
//	  weighted_avg_shares DOUBLE PRECISION,
//	  close_price DOUBLE PRECISION,
//	  run_id UUID,
//	  updated_at TIMESTAMPTZ
//	);
type FilingRepo struct{}

// NewFilingRepo creates a new repository instance.
func NewFilingRepo() *FilingRepo {
	return &FilingRepo{}
}

// WriteAll replaces the ticker's rows with the new batch inside one
// transaction, mirroring the CSV sink's overwrite semantics. Every row of
// a run shares a run_id for traceability.
func (r *FilingRepo) WriteAll(ctx context.Context, ticker string, records []models.FilingRecord) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM filing_facts WHERE ticker = $1`, ticker); err != nil {
		return fmt.Errorf("failed to clear previous run: %w", err)
	}

	runID := uuid.New().String()
	now := time.Now()

	query := `
		INSERT INTO filing_facts (
			accession_number, ticker, cik, filing_date, document_url,
			net_income, preferred_dividends, weighted_avg_shares, close_price,
			run_id, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	for _, rec := range records {
		_, err := tx.Exec(ctx, query,
			rec.AccessionNumber, rec.Ticker, rec.CIK, rec.FilingDate, rec.DocumentURL,
			rec.Facts.NetIncome, rec.Facts.PreferredDividends, rec.Facts.WeightedAvgShares,
			rec.ClosePrice, runID, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert %s: %w", rec.AccessionNumber, err)
		}
	}

	return tx.Commit(ctx)
}
