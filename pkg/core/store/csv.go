package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"filing_harvest/pkg/models"
)

// CSVSink persists a harvest batch to a flat CSV file.
// Each run fully replaces the file: the batch is the dataset, not a log.
type CSVSink struct {
	Path string
}

// NewCSVSink creates a sink writing to path.
func NewCSVSink(path string) *CSVSink {
	return &CSVSink{Path: path}
}

var csvHeader = []string{
	"filing_date",
	"document_url",
	"net_income",
	"preferred_dividends",
	"weighted_avg_shares",
	"close_price",
}

// WriteAll writes the full batch, overwriting any previous run's output.
func (s *CSVSink) WriteAll(records []models.FilingRecord) error {
	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", s.Path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.FilingDate,
			r.DocumentURL,
			formatOptional(r.Facts.NetIncome),
			strconv.FormatFloat(r.Facts.PreferredDividends, 'f', -1, 64),
			formatOptional(r.Facts.WeightedAvgShares),
			formatOptional(r.ClosePrice),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write record %s: %w", r.AccessionNumber, err)
		}
	}

	w.Flush()
	return w.Error()
}

// formatOptional renders a missing value as an empty field.
func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
