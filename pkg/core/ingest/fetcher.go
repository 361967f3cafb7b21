// This file implements the pipeline.DocumentFetcher interface for live
// SEC data, with an optional on-disk HTML cache keyed by accession number.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"filing_harvest/pkg/core/document"
)

// SECDocumentFetcher fetches a filing document from SEC Archives and
// flattens it into a FilingDocument.
type SECDocumentFetcher struct {
	client   *EDGARClient
	cacheDir string // Optional local cache directory
}

// NewSECDocumentFetcher creates a new document fetcher for live SEC data.
// If cacheDir is non-empty, fetched HTML is cached locally.
func NewSECDocumentFetcher(cacheDir string) *SECDocumentFetcher {
	return &SECDocumentFetcher{
		client:   NewEDGARClient(),
		cacheDir: cacheDir,
	}
}

// FetchDocument implements pipeline.DocumentFetcher.
// The filing's primary document HTML is downloaded (or read from cache)
// and flattened to text plus table matrices.
func (f *SECDocumentFetcher) FetchDocument(ctx context.Context, filing Filing) (*document.FilingDocument, error) {
	html, err := f.fetchHTML(ctx, filing)
	if err != nil {
		return nil, err
	}

	doc, err := document.Flatten(html)
	if err != nil {
		return nil, fmt.Errorf("failed to flatten %s: %w", filing.AccessionNumber, err)
	}
	return doc, nil
}

func (f *SECDocumentFetcher) fetchHTML(ctx context.Context, filing Filing) (string, error) {
	cachePath := ""
	if f.cacheDir != "" {
		key := strings.ReplaceAll(filing.AccessionNumber, "-", "") + ".html"
		cachePath = filepath.Join(f.cacheDir, "filings", key)
		// Tiny cached bodies are error pages, not filings.
		if content, err := os.ReadFile(cachePath); err == nil && len(content) > 2048 {
			return string(content), nil
		}
	}

	html, err := f.client.FetchDocumentHTML(ctx, filing.URL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch filing document: %w", err)
	}

	if cachePath != "" {
		// Best effort: a failed cache write only costs a re-download,
		// but an unwritable cache dir should be visible.
		if err := writeCache(cachePath, []byte(html)); err != nil {
			fmt.Printf("Warning: failed to cache %s: %v\n", filing.AccessionNumber, err)
		}
	}

	return html, nil
}

// writeCache stores fetched HTML at path, creating parent directories.
func writeCache(path string, html []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, html, 0644)
}
