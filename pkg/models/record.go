package models

import (
	"filing_harvest/pkg/core/extract"
)

// FilingRecord is one row of the final dataset: a filing identity, the
// extracted facts, and the aligned closing price. FilingDate is the raw
// EDGAR string; alignment parses it per-record so one bad date only
// blanks that record's price.
type FilingRecord struct {
	Ticker          string                 `json:"ticker"`
	CIK             string                 `json:"cik"`
	AccessionNumber string                 `json:"accession_number"`
	FilingDate      string                 `json:"filing_date"`
	DocumentURL     string                 `json:"document_url"`
	Facts           extract.FinancialFacts `json:"facts"`
	ClosePrice      *float64               `json:"close_price"`
}
