// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query assembles the arXiv search query string and URL from the
// configured keywords and classification filters.
package query

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

var classSplit = regexp.MustCompile(`[,\s]+`)

// NormalizeClasses turns a raw class list ("hep-ex, hep-ph") into
// deduplicated classification: terms, preserving first-seen order. Tokens
// already carrying the classification: prefix are kept as-is.
func NormalizeClasses(raw string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, tok := range classSplit.Split(raw, -1) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if !strings.HasPrefix(tok, "classification:") {
			tok = "classification:" + tok
		}
		if seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}

// Build combines the keyword terms (OR) with an OR-group of
// classification terms (AND between the two blocks). With no classes the
// query is the keyword block alone. RequirePhysicsGroup prepends
// classification:physics; this is purely a query-construction rule and the
// pipeline does not post-filter cross-listed results, so it relies on the
// search backend honoring the syntax.
func Build(cfg types.QueryConfig) string {
	kwBlock := "(" + strings.Join(cfg.Keywords, " OR ") + ")"

	var classes []string
	if cfg.RequirePhysicsGroup {
		classes = append(classes, "classification:physics")
	}
	classes = append(classes, NormalizeClasses(strings.Join(cfg.Classes, ","))...)
	if len(classes) == 0 {
		return kwBlock
	}

	clsBlock := classes[0]
	if len(classes) > 1 {
		clsBlock = "(" + strings.Join(classes, " OR ") + ")"
	}
	return kwBlock + " AND " + clsBlock
}

// SearchURL builds the GET URL for the search endpoint. Parameters are
// emitted in a fixed order so the URL is deterministic.
func SearchURL(base, q string, size int, order string, hideAbs bool) string {
	abstracts := "show"
	if hideAbs {
		abstracts = "hide"
	}
	params := [][2]string{
		{"query", q},
		{"searchtype", "all"},
		{"abstracts", abstracts},
		{"order", order},
		{"size", fmt.Sprintf("%d", size)},
	}
	pairs := make([]string, len(params))
	for i, kv := range params {
		pairs[i] = kv[0] + "=" + url.QueryEscape(kv[1])
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + strings.Join(pairs, "&")
}
