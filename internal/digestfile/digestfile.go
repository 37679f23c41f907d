// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package digestfile saves a run report to a YAML file. The report records
// the query that ran, the window that filtered it, and the papers that
// made the digest, so a scheduled run leaves an inspectable artifact.
package digestfile

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// DigestFile is the on-disk representation of one pipeline run.
type DigestFile struct {
	Query   QueryParams   `yaml:"query"`
	Window  WindowParams  `yaml:"window"`
	Summary RunSummary    `yaml:"summary"`
	Papers  []types.Paper `yaml:"papers"`
}

// QueryParams stores the query parameters in a serializable form.
type QueryParams struct {
	Keywords            []string `yaml:"keywords,omitempty"`
	Classes             []string `yaml:"classes,omitempty"`
	RequirePhysicsGroup bool     `yaml:"require_physics_group"`
	Order               string   `yaml:"order,omitempty"`
	ResultSize          int      `yaml:"result_size"`
}

// WindowParams stores the window configuration that filtered the results.
type WindowParams struct {
	TodayOnly bool   `yaml:"today_only"`
	Days      int    `yaml:"days"`
	Timezone  string `yaml:"timezone,omitempty"`
}

// RunSummary stores result statistics and the reference time used as "now".
type RunSummary struct {
	Found         int       `yaml:"found"`
	Kept          int       `yaml:"kept"`
	Sent          int       `yaml:"sent"`
	Substituted   bool      `yaml:"substituted"`
	ReferenceTime time.Time `yaml:"reference_time"`
	Timestamp     time.Time `yaml:"timestamp"`
}

// Write saves the run report to path.
func Write(path string, cfg types.Config, summary RunSummary, papers []types.Paper) error {
	df := DigestFile{
		Query: QueryParams{
			Keywords:            cfg.Query.Keywords,
			Classes:             cfg.Query.Classes,
			RequirePhysicsGroup: cfg.Query.RequirePhysicsGroup,
			Order:               cfg.Query.Order,
			ResultSize:          cfg.Query.ResultSize,
		},
		Window: WindowParams{
			TodayOnly: cfg.Window.TodayOnly,
			Days:      cfg.Window.Days,
			Timezone:  cfg.Window.Timezone,
		},
		Summary: summary,
		Papers:  papers,
	}
	if df.Summary.Timestamp.IsZero() {
		df.Summary.Timestamp = time.Now().UTC()
	}

	data, err := yaml.Marshal(&df)
	if err != nil {
		return fmt.Errorf("encoding digest file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing digest file %s: %w", path, err)
	}
	return nil
}

// Read loads a previously written run report.
func Read(path string) (DigestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DigestFile{}, fmt.Errorf("reading digest file %s: %w", path, err)
	}
	var df DigestFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return DigestFile{}, fmt.Errorf("decoding digest file %s: %w", path, err)
	}
	return df, nil
}
