// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"reflect"
	"testing"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

func TestNormalizeClasses(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "comma separated",
			raw:  "hep-ex, hep-ph",
			want: []string{"classification:hep-ex", "classification:hep-ph"},
		},
		{
			name: "mixed separators and duplicates",
			raw:  "hep-ex hep-ph,hep-ex",
			want: []string{"classification:hep-ex", "classification:hep-ph"},
		},
		{
			name: "already prefixed",
			raw:  "classification:nucl-ex",
			want: []string{"classification:nucl-ex"},
		},
		{
			name: "empty",
			raw:  "",
			want: nil,
		},
		{
			name: "whitespace only",
			raw:  " ,  ",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeClasses(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeClasses(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name string
		cfg  types.QueryConfig
		want string
	}{
		{
			name: "keywords only",
			cfg: types.QueryConfig{
				Keywords: []string{"dark matter", "neutrino"},
			},
			want: "(dark matter OR neutrino)",
		},
		{
			name: "single class",
			cfg: types.QueryConfig{
				Keywords: []string{"xenon"},
				Classes:  []string{"hep-ex"},
			},
			want: "(xenon) AND classification:hep-ex",
		},
		{
			name: "multiple classes",
			cfg: types.QueryConfig{
				Keywords: []string{"WIMP"},
				Classes:  []string{"hep-ex", "hep-ph"},
			},
			want: "(WIMP) AND (classification:hep-ex OR classification:hep-ph)",
		},
		{
			name: "physics group restriction",
			cfg: types.QueryConfig{
				Keywords:            []string{"argon"},
				Classes:             []string{"hep-ex"},
				RequirePhysicsGroup: true,
			},
			want: "(argon) AND (classification:physics OR classification:hep-ex)",
		},
		{
			name: "physics group with no classes still adds the group term",
			cfg: types.QueryConfig{
				Keywords:            []string{"argon"},
				RequirePhysicsGroup: true,
			},
			want: "(argon) AND classification:physics",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(tt.cfg)
			if got != tt.want {
				t.Errorf("Build() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSearchURL(t *testing.T) {
	got := SearchURL("https://arxiv.org/search/", "(xenon) AND classification:hep-ex", 200, "-announced_date_first", false)
	want := "https://arxiv.org/search/?query=%28xenon%29+AND+classification%3Ahep-ex&searchtype=all&abstracts=show&order=-announced_date_first&size=200"
	if got != want {
		t.Errorf("SearchURL() = %q, want %q", got, want)
	}
}

func TestSearchURLHideAbstracts(t *testing.T) {
	got := SearchURL("https://arxiv.org/search/", "q", 50, "-announced_date_first", true)
	want := "https://arxiv.org/search/?query=q&searchtype=all&abstracts=hide&order=-announced_date_first&size=50"
	if got != want {
		t.Errorf("SearchURL() = %q, want %q", got, want)
	}
}
