// Package align joins filing dates to daily closing prices.
// Filings land on any calendar date; markets only trade on some of them,
// so the join resolves to the nearest trading day, preferring the first
// close struck on or after the filing date.
package align

import (
	"sort"
	"time"
)

// PricePoint is one trading day's close.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// Series is a daily price series: ascending by date, one point per date.
type Series []PricePoint

// NewSeries builds a Series from unordered points, sorting ascending and
// keeping the last close seen for a duplicated date.
func NewSeries(points []PricePoint) Series {
	byDate := make(map[time.Time]float64, len(points))
	for _, p := range points {
		byDate[dateOnly(p.Date)] = p.Close
	}

	s := make(Series, 0, len(byDate))
	for d, c := range byDate {
		s = append(s, PricePoint{Date: d, Close: c})
	}
	sort.Slice(s, func(i, j int) bool { return s[i].Date.Before(s[j].Date) })
	return s
}

// ClosingPriceFor returns the close for the filing date, or the nearest
// trading day: exact match first, then the first series date on or after
// the filing date, then the last series date on or before it. Returns nil
// only when the series is empty.
//
// Forward-first is intentional: the market reaction to a filing is best
// approximated by the first price struck on or after its effective date.
// Backward is the fallback for a series that does not extend that far.
func ClosingPriceFor(filingDate time.Time, series Series) *float64 {
	if len(series) == 0 {
		return nil
	}

	d := dateOnly(filingDate)

	// sort.Search gives the first index with date >= d. That covers both
	// the exact-match and forward cases in one probe.
	i := sort.Search(len(series), func(i int) bool {
		return !series[i].Date.Before(d)
	})
	if i < len(series) {
		close := series[i].Close
		return &close
	}

	// Every series date is earlier than the filing date: previous trading day.
	close := series[len(series)-1].Close
	return &close
}

// ClosingPriceForDate parses a filing date string ("2006-01-02") and
// aligns it. An unparseable date yields nil rather than an error so one
// bad record never aborts a batch.
func ClosingPriceForDate(filingDate string, series Series) *float64 {
	d, err := time.Parse("2006-01-02", filingDate)
	if err != nil {
		return nil
	}
	return ClosingPriceFor(d, series)
}

// Span returns the first and last dates of the series.
func (s Series) Span() (time.Time, time.Time) {
	if len(s) == 0 {
		return time.Time{}, time.Time{}
	}
	return s[0].Date, s[len(s)-1].Date
}

// dateOnly truncates a timestamp to its calendar date in UTC.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
