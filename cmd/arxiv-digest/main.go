// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxiv-digest CLI.
//
// arxiv-digest fetches recently announced arXiv papers matching a
// keyword/classification query, filters them to a recency window, and
// posts a digest to a chat webhook. It is designed to run as a scheduled
// job, one process per keyword set.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-digest/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds values loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the arxiv-digest CLI.
var rootCmd = &cobra.Command{
	Use:   "arxiv-digest",
	Short: "Post a digest of recent arXiv papers to a chat webhook",
	Long: `arxiv-digest queries the arXiv search page for papers matching configured
keywords and classifications, keeps the ones announced inside the recency
window, and delivers a formatted digest to a chat webhook (or prints it
with --dry-run).

Configuration comes from the environment (ARXIV_QUERY, ARXIV_CLASSES,
WEBHOOK_URL, ...), an optional YAML config file, and CLI flags. The
webhook URL may also live in .secrets/webhook-url.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML config file (optional)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
