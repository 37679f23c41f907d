// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-digest/internal/config"
	"github.com/pdiddy/arxiv-digest/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, filter, and deliver the digest once",
	Long: `Run executes the pipeline once: fetch the arXiv search page and the
reference-time page, parse them, keep the papers announced inside the
configured window, and deliver the digest to the webhook. With --dry-run
the digest is printed to stdout and no POST is made.`,
	RunE: runDigest,
}

func init() {
	runCmd.Flags().Bool("dry-run", false, "print the digest instead of posting it")
	runCmd.Flags().Int("top", 0, "override the number of papers to send (TOP_SEND)")
	runCmd.Flags().String("out", "", "write a YAML run report to this path")

	rootCmd.AddCommand(runCmd)
}

func runDigest(cmd *cobra.Command, args []string) error {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")

	cfg, err := config.Load(cfgFile, loadedSecrets)
	if err != nil {
		return err
	}

	// CLI flags override the environment only when set explicitly.
	if cmd.Flags().Changed("dry-run") {
		cfg.Delivery.DryRun, _ = cmd.Flags().GetBool("dry-run")
	}
	if cmd.Flags().Changed("top") {
		cfg.Delivery.TopSend, _ = cmd.Flags().GetInt("top")
	}
	if cmd.Flags().Changed("out") {
		cfg.OutPath, _ = cmd.Flags().GetString("out")
	}

	client := &http.Client{Timeout: cfg.Fetch.Timeout}

	summary, err := pipeline.Run(cmd.Context(), cfg, client, os.Stdout, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Found %d papers (%d kept in window); sent %d.\n",
		summary.Found, summary.Kept, summary.Sent)
	if summary.Substituted {
		fmt.Fprintln(os.Stderr, "Note: offline sample pages were substituted for failed fetches.")
	}
	return nil
}
