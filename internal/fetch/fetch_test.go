// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

func newFetcher(ts *httptest.Server, mode types.FallbackMode, dryRun bool, warn *bytes.Buffer) *Fetcher {
	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{UserAgent: "arxiv-digest/test"},
		TimeURL:    ts.URL + "/localtime",
		Fallback:   mode,
	}
	return New(ts.Client(), cfg, dryRun, warn)
}

func TestSearchPageSuccess(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<html>ok</html>"))
	}))
	defer ts.Close()

	f := newFetcher(ts, types.FallbackNever, false, &bytes.Buffer{})
	body, substituted, err := f.SearchPage(context.Background(), ts.URL+"/search/")
	require.NoError(t, err)
	assert.False(t, substituted)
	assert.Equal(t, "<html>ok</html>", string(body))
	assert.Equal(t, "arxiv-digest/test", gotUA)
}

func TestSearchPageErrorStatusIsNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	f := newFetcher(ts, types.FallbackNever, false, &bytes.Buffer{})
	_, _, err := f.SearchPage(context.Background(), ts.URL)
	require.ErrorIs(t, err, ErrNetwork)
}

func TestSearchPageFallbackAlways(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	var warn bytes.Buffer
	f := newFetcher(ts, types.FallbackAlways, false, &warn)
	body, substituted, err := f.SearchPage(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.True(t, substituted)
	assert.Equal(t, SampleSearchPage, body)
	assert.Contains(t, warn.String(), "warning")
}

func TestSearchPageFallbackDryRunOnly(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	// Not dry-running: auto mode must propagate the failure.
	f := newFetcher(ts, types.FallbackDryRunOnly, false, &bytes.Buffer{})
	_, _, err := f.SearchPage(context.Background(), ts.URL)
	require.ErrorIs(t, err, ErrNetwork)

	// Dry-running: auto mode substitutes the sample.
	var warn bytes.Buffer
	f = newFetcher(ts, types.FallbackDryRunOnly, true, &warn)
	body, substituted, err := f.SearchPage(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.True(t, substituted)
	assert.Equal(t, SampleSearchPage, body)
}

func TestReferenceTimePage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/localtime" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("2024-01-02T03:04:05Z"))
	}))
	defer ts.Close()

	f := newFetcher(ts, types.FallbackNever, false, &bytes.Buffer{})
	body, substituted, err := f.ReferenceTimePage(context.Background())
	require.NoError(t, err)
	assert.False(t, substituted)
	assert.Equal(t, "2024-01-02T03:04:05Z", string(body))
}

func TestReferenceTimePageFallback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	var warn bytes.Buffer
	f := newFetcher(ts, types.FallbackAlways, false, &warn)
	body, substituted, err := f.ReferenceTimePage(context.Background())
	require.NoError(t, err)
	assert.True(t, substituted)
	assert.Equal(t, SampleLocaltimePage, body)
}

func TestSamplePagesEmbedded(t *testing.T) {
	assert.NotEmpty(t, SampleSearchPage)
	assert.NotEmpty(t, SampleLocaltimePage)
}

func TestParseFallbackMode(t *testing.T) {
	tests := []struct {
		in      string
		want    types.FallbackMode
		wantErr bool
	}{
		{"1", types.FallbackAlways, false},
		{"true", types.FallbackAlways, false},
		{"0", types.FallbackNever, false},
		{"auto", types.FallbackDryRunOnly, false},
		{"", types.FallbackDryRunOnly, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		got, err := types.ParseFallbackMode(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}
