// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves the arXiv search results page and the
// reference-time page, substituting bundled sample pages when a fetch
// fails and the offline fallback policy allows it.
package fetch

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// ErrNetwork marks a connection failure or non-success HTTP status.
var ErrNetwork = errors.New("network error")

// SampleSearchPage is the bundled offline substitute for the search
// results page.
//
//go:embed fixtures/sample_search.html
var SampleSearchPage []byte

// SampleLocaltimePage is the bundled offline substitute for the
// reference-time page.
//
//go:embed fixtures/sample_localtime.html
var SampleLocaltimePage []byte

// Fetcher issues the pipeline's GET requests. The zero value is not
// usable; construct with New.
type Fetcher struct {
	client *http.Client
	cfg    types.FetchConfig
	dryRun bool
	warn   io.Writer
}

// New returns a Fetcher using client for all requests. Warnings about
// fallback substitution are written to warn.
func New(client *http.Client, cfg types.FetchConfig, dryRun bool, warn io.Writer) *Fetcher {
	return &Fetcher{client: client, cfg: cfg, dryRun: dryRun, warn: warn}
}

// SearchPage fetches the search results page at searchURL. The second
// return value reports whether the bundled sample was substituted.
func (f *Fetcher) SearchPage(ctx context.Context, searchURL string) ([]byte, bool, error) {
	body, err := f.get(ctx, searchURL)
	if err == nil {
		return body, false, nil
	}
	if !f.cfg.Fallback.Enabled(f.dryRun) {
		return nil, false, fmt.Errorf("fetching search page: %w", err)
	}
	fmt.Fprintf(f.warn, "warning: search fetch failed (%v); using bundled sample page\n", err)
	return SampleSearchPage, true, nil
}

// ReferenceTimePage fetches the configured reference-time page. The second
// return value reports whether the bundled sample was substituted.
func (f *Fetcher) ReferenceTimePage(ctx context.Context) ([]byte, bool, error) {
	body, err := f.get(ctx, f.cfg.TimeURL)
	if err == nil {
		return body, false, nil
	}
	if !f.cfg.Fallback.Enabled(f.dryRun) {
		return nil, false, fmt.Errorf("fetching reference time: %w", err)
	}
	fmt.Fprintf(f.warn, "warning: reference time fetch failed (%v); using bundled sample page\n", err)
	return SampleLocaltimePage, true, nil
}

// get performs a checked GET: transport errors and non-2xx statuses both
// wrap ErrNetwork.
func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: GET %s returned HTTP %d", ErrNetwork, url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %v", ErrNetwork, err)
	}
	return body, nil
}
