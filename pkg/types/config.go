// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// FallbackMode controls when the fetcher substitutes bundled sample pages
// for live HTTP responses.
type FallbackMode string

const (
	// FallbackAlways substitutes samples on any fetch failure.
	FallbackAlways FallbackMode = "always"

	// FallbackNever propagates fetch failures as fatal errors.
	FallbackNever FallbackMode = "never"

	// FallbackDryRunOnly substitutes samples only while dry-running.
	FallbackDryRunOnly FallbackMode = "dry-run-only"
)

// ParseFallbackMode maps the OFFLINE_FALLBACK setting ("1", "0", "auto",
// or a mode name) to a FallbackMode.
func ParseFallbackMode(s string) (FallbackMode, error) {
	switch s {
	case "1", "true", "yes", "always":
		return FallbackAlways, nil
	case "0", "false", "no", "never":
		return FallbackNever, nil
	case "", "auto", "dry-run-only":
		return FallbackDryRunOnly, nil
	}
	return "", fmt.Errorf("invalid offline fallback mode %q (want 1, 0, or auto)", s)
}

// Enabled reports whether fallback substitution applies for the given
// execution mode.
func (m FallbackMode) Enabled(dryRun bool) bool {
	switch m {
	case FallbackAlways:
		return true
	case FallbackDryRunOnly:
		return dryRun
	}
	return false
}

// QueryConfig holds the search query parameters. Built once at startup and
// read-only thereafter.
type QueryConfig struct {
	// Keywords are free-text terms combined with OR.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// Classes are arXiv category codes (e.g. "hep-ex") conjoined with the
	// keyword block as an OR-group of classification: terms.
	Classes []string `json:"classes" yaml:"classes"`

	// RequirePhysicsGroup prepends classification:physics so cross-listed
	// categories outside the physics group are excluded by the query itself.
	RequirePhysicsGroup bool `json:"require_physics_group" yaml:"require_physics_group"`

	// ResultSize is the page size requested from the search endpoint.
	ResultSize int `json:"result_size" yaml:"result_size"`

	// Order is the search ordering parameter (default "-announced_date_first").
	Order string `json:"order" yaml:"order"`

	// HideAbstracts requests the abstract-free listing and omits abstracts
	// from the digest.
	HideAbstracts bool `json:"hide_abstracts" yaml:"hide_abstracts"`
}

// WindowConfig holds the recency cutoff for the window filter.
type WindowConfig struct {
	// TodayOnly keeps only papers announced on the reference time's
	// calendar date in Timezone.
	TodayOnly bool `json:"today_only" yaml:"today_only"`

	// Days is the trailing window size for rolling mode. Days == 0 with
	// TodayOnly disabled makes the filter a no-op.
	Days int `json:"days" yaml:"days"`

	// Timezone names the zone used to resolve "today" (default
	// America/New_York, the arXiv announcement timezone).
	Timezone string `json:"timezone" yaml:"timezone"`
}

// HTTPConfig holds shared HTTP settings.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with outbound requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds the fetcher endpoints and fallback policy.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// SearchURL is the arXiv search endpoint base (default
	// "https://arxiv.org/search/").
	SearchURL string `json:"search_url" yaml:"search_url"`

	// TimeURL is the reference-time page (default
	// "https://arxiv.org/localtime").
	TimeURL string `json:"time_url" yaml:"time_url"`

	// Fallback selects when bundled sample pages substitute failed fetches.
	Fallback FallbackMode `json:"fallback" yaml:"fallback"`
}

// DeliveryConfig holds the webhook destination and message shaping.
type DeliveryConfig struct {
	// WebhookURL is the chat webhook endpoint. Required unless DryRun.
	WebhookURL string `json:"webhook_url,omitempty" yaml:"webhook_url,omitempty"`

	// DryRun prints the digest to stdout instead of POSTing it.
	DryRun bool `json:"dry_run" yaml:"dry_run"`

	// TopSend caps the number of papers in the digest; 0 means unlimited.
	TopSend int `json:"top_send" yaml:"top_send"`
}

// Config groups all pipeline settings. Constructed exactly once from the
// environment and CLI flags, then passed explicitly into each stage.
type Config struct {
	Query    QueryConfig    `json:"query" yaml:"query"`
	Window   WindowConfig   `json:"window" yaml:"window"`
	Fetch    FetchConfig    `json:"fetch" yaml:"fetch"`
	Delivery DeliveryConfig `json:"delivery" yaml:"delivery"`

	// OutPath, when set, writes a YAML run report after a successful run.
	OutPath string `json:"out_path,omitempty" yaml:"out_path,omitempty"`
}
