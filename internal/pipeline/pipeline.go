// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the digest end to end: fetch, parse, filter,
// format, deliver. Execution is strictly sequential with no feedback loop;
// the run either completes or fails with the first fatal error.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/arxiv-digest/internal/deliver"
	"github.com/pdiddy/arxiv-digest/internal/digestfile"
	"github.com/pdiddy/arxiv-digest/internal/fetch"
	"github.com/pdiddy/arxiv-digest/internal/format"
	"github.com/pdiddy/arxiv-digest/internal/parse"
	"github.com/pdiddy/arxiv-digest/internal/query"
	"github.com/pdiddy/arxiv-digest/internal/window"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// ErrConfig marks a missing or invalid configuration value, detected
// before any network activity.
var ErrConfig = errors.New("configuration error")

// Summary reports what one run did.
type Summary struct {
	// Found counts papers parsed from the search page.
	Found int

	// Kept counts papers surviving the window filter.
	Kept int

	// Sent counts papers in the delivered digest (after the top-send cap).
	Sent int

	// PageTotal is the result count the search page reported, when stated.
	PageTotal int

	// Substituted reports whether any bundled sample page replaced a
	// failed fetch.
	Substituted bool

	// ReferenceTime is the externally fetched "now" used for filtering.
	ReferenceTime time.Time
}

// Run executes the pipeline with cfg. The digest goes to stdout in a dry
// run; warnings and skip notices go to stderr. The returned Summary is
// valid only when err is nil.
func Run(ctx context.Context, cfg types.Config, client *http.Client, stdout, stderr io.Writer) (Summary, error) {
	// Configuration problems must surface before any fetch work begins.
	if !cfg.Delivery.DryRun && cfg.Delivery.WebhookURL == "" {
		return Summary{}, fmt.Errorf("%w: WEBHOOK_URL is required unless running with --dry-run", ErrConfig)
	}

	q := query.Build(cfg.Query)
	searchURL := query.SearchURL(cfg.Fetch.SearchURL, q, cfg.Query.ResultSize, cfg.Query.Order, cfg.Query.HideAbstracts)

	fetcher := fetch.New(client, cfg.Fetch, cfg.Delivery.DryRun, stderr)

	searchHTML, subSearch, err := fetcher.SearchPage(ctx, searchURL)
	if err != nil {
		return Summary{}, err
	}
	timeHTML, subTime, err := fetcher.ReferenceTimePage(ctx)
	if err != nil {
		return Summary{}, err
	}

	ref, err := parse.ReferenceTime(timeHTML)
	if err != nil {
		return Summary{}, err
	}
	papers, pageTotal, err := parse.SearchResults(searchHTML, stderr)
	if err != nil {
		return Summary{}, err
	}

	kept := window.Filter(papers, ref, cfg.Window)
	message := format.Digest(kept, cfg.Delivery.TopSend, cfg.Query.HideAbstracts)

	sent := kept
	if cfg.Delivery.TopSend > 0 && len(sent) > cfg.Delivery.TopSend {
		sent = sent[:cfg.Delivery.TopSend]
	}

	if cfg.Delivery.DryRun {
		deliver.Print(stdout, message)
	} else if err := deliver.Send(ctx, client, cfg.Delivery.WebhookURL, message); err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Found:         len(papers),
		Kept:          len(kept),
		Sent:          len(sent),
		PageTotal:     pageTotal,
		Substituted:   subSearch || subTime,
		ReferenceTime: ref,
	}

	if cfg.OutPath != "" {
		rs := digestfile.RunSummary{
			Found:         summary.Found,
			Kept:          summary.Kept,
			Sent:          summary.Sent,
			Substituted:   summary.Substituted,
			ReferenceTime: summary.ReferenceTime,
		}
		if err := digestfile.Write(cfg.OutPath, cfg, rs, sent); err != nil {
			return Summary{}, err
		}
	}

	return summary, nil
}
