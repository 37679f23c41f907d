// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package window filters papers to the configured announcement recency
// window, using an externally fetched reference time as "now".
package window

import (
	"time"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// Filter keeps the papers whose announcement date falls inside the window
// and preserves their relative order.
//
// In today-only mode a paper survives when its announcement date equals the
// reference time's calendar date in cfg.Timezone. In rolling mode the
// bounds are [ref - cfg.Days, ref], inclusive at day granularity.
//
// Days == 0 with TodayOnly disabled is an explicit no-op: every paper
// passes. This special case is intentional, not an off-by-one.
func Filter(papers []types.Paper, ref time.Time, cfg types.WindowConfig) []types.Paper {
	if !cfg.TodayOnly && cfg.Days == 0 {
		return papers
	}

	var keep func(types.Paper) bool
	if cfg.TodayOnly {
		refY, refM, refD := ref.In(location(cfg.Timezone)).Date()
		keep = func(p types.Paper) bool {
			y, m, d := p.Announced.Date()
			return y == refY && m == refM && d == refD
		}
	} else {
		upper := dateOf(ref.UTC())
		lower := upper.AddDate(0, 0, -cfg.Days)
		keep = func(p types.Paper) bool {
			d := dateOf(p.Announced)
			return !d.Before(lower) && !d.After(upper)
		}
	}

	var out []types.Paper
	for _, p := range papers {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// location resolves the configured timezone, falling back to UTC for an
// empty or unknown name.
func location(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
