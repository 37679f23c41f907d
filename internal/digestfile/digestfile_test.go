// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digestfile

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "digest.yaml")

	cfg := types.Config{
		Query: types.QueryConfig{
			Keywords:            []string{"dark matter", "neutrino"},
			Classes:             []string{"hep-ex"},
			RequirePhysicsGroup: true,
			ResultSize:          200,
			Order:               "-announced_date_first",
		},
		Window: types.WindowConfig{Days: 7, Timezone: "America/New_York"},
	}
	summary := RunSummary{
		Found:         5,
		Kept:          2,
		Sent:          2,
		ReferenceTime: time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC),
	}
	papers := []types.Paper{
		{
			Identifier: "2310.12345",
			Title:      "Sample detection of dark matter",
			Authors:    []string{"A. Researcher"},
			Announced:  time.Date(2023, 10, 31, 0, 0, 0, 0, time.UTC),
			Categories: []string{"hep-ph"},
			AbsURL:     "https://arxiv.org/abs/2310.12345",
			PDFURL:     "https://arxiv.org/pdf/2310.12345",
		},
		{
			Identifier: "2310.11111",
			Title:      "Detector calibration update",
			Announced:  time.Date(2023, 10, 30, 0, 0, 0, 0, time.UTC),
			AbsURL:     "https://arxiv.org/abs/2310.11111",
			PDFURL:     "https://arxiv.org/pdf/2310.11111",
		},
	}

	require.NoError(t, Write(path, cfg, summary, papers))

	got, err := Read(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Query.Keywords, got.Query.Keywords)
	assert.Equal(t, cfg.Query.Classes, got.Query.Classes)
	assert.True(t, got.Query.RequirePhysicsGroup)
	assert.Equal(t, 7, got.Window.Days)
	assert.Equal(t, 5, got.Summary.Found)
	assert.True(t, got.Summary.ReferenceTime.Equal(summary.ReferenceTime))
	assert.False(t, got.Summary.Timestamp.IsZero(), "a write timestamp is recorded")
	require.Len(t, got.Papers, 2)
	assert.Equal(t, papers[0].Identifier, got.Papers[0].Identifier)
	assert.Equal(t, papers[0].Title, got.Papers[0].Title)
	assert.True(t, got.Papers[1].Announced.Equal(papers[1].Announced))
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
