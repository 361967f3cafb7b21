// Package document converts rendered SEC filing HTML into a flat,
// extraction-friendly representation: the full visible text plus every
// table as a matrix of cell strings, in document order.
package document

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FilingDocument is the input shape the extractor works on.
// RawText contains all table cell content, up to whitespace: cells
// collapse internal runs (including line breaks in wrapped cells) while
// RawText keeps line structure, so the containment holds after
// normalizing both sides the same way.
type FilingDocument struct {
	RawText string
	Tables  []Table
}

// Table is an ordered sequence of rows; each row a sequence of cell strings.
// A table is never nil but may contain zero data rows.
type Table struct {
	Rows [][]string
}

var (
	multiSpace = regexp.MustCompile(`[ \t]+`)
	anySpace   = regexp.MustCompile(`\s+`)
)

// Flatten parses filing HTML and produces a FilingDocument.
// Script/style content is dropped before text extraction so the raw text
// matches what a reader of the rendered filing would see.
func Flatten(html string) (*FilingDocument, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	doc.Find("script, style").Remove()

	fd := &FilingDocument{}

	// Phase 1: collect every table as a cell matrix, in document order.
	doc.Find("table").Each(func(i int, table *goquery.Selection) {
		t := Table{}
		table.Find("tr").Each(func(j int, row *goquery.Selection) {
			var cells []string
			row.Find("td, th").Each(func(k int, cell *goquery.Selection) {
				cells = append(cells, normalizeCell(cell.Text()))
			})
			if len(cells) > 0 {
				t.Rows = append(t.Rows, cells)
			}
		})
		fd.Tables = append(fd.Tables, t)
	})

	// Phase 2: flatten the whole body to text. goquery's Text() walks all
	// text nodes, so every table cell's content also appears in RawText
	// (modulo whitespace normalization, see FilingDocument).
	body := doc.Find("body")
	if body.Length() > 0 {
		fd.RawText = normalizeText(body.Text())
	} else {
		fd.RawText = normalizeText(doc.Text())
	}

	return fd, nil
}

// FromText wraps already-flattened plain text as a FilingDocument with no
// table structure. Used for .txt filings and in tests.
func FromText(text string) *FilingDocument {
	return &FilingDocument{RawText: text}
}

// normalizeCell trims a cell and collapses internal whitespace runs,
// including line breaks inside wrapped cells.
func normalizeCell(s string) string {
	return strings.TrimSpace(anySpace.ReplaceAllString(s, " "))
}

// normalizeText collapses horizontal whitespace per line but keeps line
// breaks, since the free-text patterns tolerate variable whitespace anyway.
func normalizeText(s string) string {
	lines := strings.Split(s, "\n")
	var b strings.Builder
	for _, line := range lines {
		line = strings.TrimSpace(multiSpace.ReplaceAllString(line, " "))
		if line == "" {
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
