// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the arxiv-digest pipeline.
package types

import "time"

// Paper represents one arXiv entry extracted from the search results page.
// A Paper is immutable once the parser has produced it: the filter and
// formatter only read it, and nothing is persisted across runs.
type Paper struct {
	// Identifier is the arXiv ID (e.g. "2310.12345"), never empty.
	Identifier string `json:"identifier" yaml:"identifier"`

	// Title is the paper title, never empty.
	Title string `json:"title" yaml:"title"`

	// Authors lists the author names in page order.
	Authors []string `json:"authors" yaml:"authors"`

	// Announced is the announcement date at day granularity (midnight UTC).
	Announced time.Time `json:"announced" yaml:"announced"`

	// Categories holds the classification codes shown for the entry.
	// The first element is the primary category.
	Categories []string `json:"categories" yaml:"categories"`

	// Abstract is the abstract text. Empty when the page hides abstracts.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// AbsURL is the abstract-page URL.
	AbsURL string `json:"abs_url" yaml:"abs_url"`

	// PDFURL is the PDF URL, derived from AbsURL when the page lists none.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`
}

// PrimaryCategory returns the first listed category, or "" when the entry
// carried no classification tags.
func (p Paper) PrimaryCategory() string {
	if len(p.Categories) == 0 {
		return ""
	}
	return p.Categories[0]
}
