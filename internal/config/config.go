// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config builds the single immutable pipeline configuration.
//
// The environment is read exactly once, here, into a types.Config value
// that the caller passes explicitly into each stage. No stage reads
// process-wide state on its own.
package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// Environment variable bindings, keyed by viper config key. The names
// match the scheduled-job environment contract.
var envBindings = map[string]string{
	"query.keywords":              "ARXIV_QUERY",
	"query.classes":               "ARXIV_CLASSES",
	"query.require_physics_group": "REQUIRE_PHYSICS_GROUP",
	"query.result_size":           "RESULT_SIZE",
	"query.order":                 "ORDER",
	"query.hide_abstracts":        "HIDE_ABSTRACTS",
	"window.days":                 "ANNOUNCEMENT_WINDOW_DAYS",
	"window.today_only":           "TODAY_ONLY",
	"window.timezone":             "ANNOUNCE_TIMEZONE",
	"fetch.search_url":            "SEARCH_URL",
	"fetch.time_url":              "TIME_URL",
	"fetch.fallback":              "OFFLINE_FALLBACK",
	"fetch.timeout":               "HTTP_TIMEOUT",
	"fetch.user_agent":            "USER_AGENT",
	"delivery.webhook_url":        "WEBHOOK_URL",
	"delivery.dry_run":            "DRY_RUN",
	"delivery.top_send":           "TOP_SEND",
}

var orSplit = regexp.MustCompile(`\s+OR\s+`)

func setDefaults(v *viper.Viper) {
	v.SetDefault("query.keywords", "dark matter OR neutrino OR TPC OR xenon OR argon OR WIMP OR CEvNS")
	v.SetDefault("query.classes", "hep-th,hep-ex,hep-ph,nucl-ex,physics.ins-det")
	v.SetDefault("query.require_physics_group", "1")
	v.SetDefault("query.result_size", 200)
	v.SetDefault("query.order", "-announced_date_first")
	v.SetDefault("query.hide_abstracts", "0")

	v.SetDefault("window.days", 0)
	v.SetDefault("window.today_only", "1")
	v.SetDefault("window.timezone", "America/New_York")

	v.SetDefault("fetch.search_url", "https://arxiv.org/search/")
	v.SetDefault("fetch.time_url", "https://arxiv.org/localtime")
	v.SetDefault("fetch.fallback", "auto")
	v.SetDefault("fetch.timeout", "40s")
	v.SetDefault("fetch.user_agent", "arxiv-digest/0.1 (classification-search bot)")

	v.SetDefault("delivery.webhook_url", "")
	v.SetDefault("delivery.dry_run", "0")
	v.SetDefault("delivery.top_send", 10)
}

// Load assembles the pipeline configuration from defaults, an optional
// YAML config file, and the environment. The webhook URL falls back to the
// "webhook-url" entry of secrets when the environment leaves it unset.
func Load(cfgFile string, secrets map[string]string) (types.Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return types.Config{}, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return types.Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	fallback, err := types.ParseFallbackMode(v.GetString("fetch.fallback"))
	if err != nil {
		return types.Config{}, err
	}

	days := v.GetInt("window.days")
	if days < 0 {
		return types.Config{}, fmt.Errorf("ANNOUNCEMENT_WINDOW_DAYS must be >= 0, got %d", days)
	}
	// A rolling window replaces today-only mode.
	todayOnly := parseBool(v.GetString("window.today_only")) && days == 0

	size := v.GetInt("query.result_size")
	if size <= 0 {
		return types.Config{}, fmt.Errorf("RESULT_SIZE must be > 0, got %d", size)
	}

	webhook := v.GetString("delivery.webhook_url")
	if webhook == "" {
		webhook = secrets["webhook-url"]
	}

	cfg := types.Config{
		Query: types.QueryConfig{
			Keywords:            splitKeywords(v.GetString("query.keywords")),
			Classes:             splitClasses(v.GetString("query.classes")),
			RequirePhysicsGroup: parseBool(v.GetString("query.require_physics_group")),
			ResultSize:          size,
			Order:               v.GetString("query.order"),
			HideAbstracts:       parseBool(v.GetString("query.hide_abstracts")),
		},
		Window: types.WindowConfig{
			TodayOnly: todayOnly,
			Days:      days,
			Timezone:  v.GetString("window.timezone"),
		},
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("fetch.timeout"),
				UserAgent: v.GetString("fetch.user_agent"),
			},
			SearchURL: v.GetString("fetch.search_url"),
			TimeURL:   v.GetString("fetch.time_url"),
			Fallback:  fallback,
		},
		Delivery: types.DeliveryConfig{
			WebhookURL: webhook,
			DryRun:     parseBool(v.GetString("delivery.dry_run")),
			TopSend:    v.GetInt("delivery.top_send"),
		},
	}

	if len(cfg.Query.Keywords) == 0 {
		return types.Config{}, fmt.Errorf("ARXIV_QUERY must contain at least one keyword term")
	}
	return cfg, nil
}

// parseBool accepts the scheduled-job convention: "1", "true", "yes"
// (case-insensitive) are true, everything else is false.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// splitKeywords breaks an "a OR b OR c" keyword string into terms.
func splitKeywords(raw string) []string {
	var out []string
	for _, term := range orSplit.Split(raw, -1) {
		if term = strings.TrimSpace(term); term != "" {
			out = append(out, term)
		}
	}
	return out
}

// splitClasses breaks a comma/space-separated class list into codes.
func splitClasses(raw string) []string {
	var out []string
	for _, tok := range regexp.MustCompile(`[,\s]+`).Split(raw, -1) {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}
