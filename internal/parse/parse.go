// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse extracts structured paper records from the arXiv search
// results page and a reference timestamp from the localtime page.
//
// Field extraction is best-effort per entry: a missing abstract yields an
// empty abstract, while a missing identifier or announcement date causes
// that single entry to be skipped with a warning. A page with no
// recognizable reference timestamp is a fatal parse error.
package parse

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// ErrParse marks a structurally unreadable page.
var ErrParse = errors.New("parse error")

const arxivBase = "https://arxiv.org"

var (
	wsRe = regexp.MustCompile(`\s+`)

	// Matches "announced on October 31, 2023", "Submitted 28 October, 2025"
	// and similar phrasings on the result item's date line.
	dateRe = regexp.MustCompile(`(?:announced|[Ss]ubmitted)\s+(?:on\s+)?((?:[A-Za-z]{3,9}\s+\d{1,2},\s+\d{4})|(?:\d{1,2}\s+[A-Za-z]{3,9},?\s+\d{4}))`)

	totalRe = regexp.MustCompile(`of\s+([\d,]+)\s+results`)

	// ISO-ish timestamp with optional zone offset, as shown on the
	// localtime page.
	timeRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}(?:[+-]\d{2}:?\d{2}|Z)?`)
)

var announcedLayouts = []string{
	"January 2, 2006",
	"2 January, 2006",
	"2 January 2006",
}

// SearchResults walks the search results markup and returns one Paper per
// parseable entry, in page order, together with the page's reported result
// total (0 when the page does not state one). Skipped entries are logged to w.
func SearchResults(html []byte, w io.Writer) ([]types.Paper, int, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: reading search page: %v", ErrParse, err)
	}

	total := pageTotal(doc)

	var papers []types.Paper
	doc.Find("li.arxiv-result").Each(func(i int, s *goquery.Selection) {
		p, reason := paperItem(s)
		if reason != "" {
			fmt.Fprintf(w, "warning: skipping result %d: %s\n", i+1, reason)
			return
		}
		papers = append(papers, p)
	})

	return papers, total, nil
}

// pageTotal extracts the "of N results" count from the page heading.
func pageTotal(doc *goquery.Document) int {
	total := 0
	doc.Find("#main-container h1, h1.title, h1").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := cleanText(s.Text())
		if m := totalRe.FindStringSubmatch(text); len(m) > 1 {
			n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
			if err == nil {
				total = n
				return false
			}
		}
		return true
	})
	return total
}

// paperItem extracts one Paper from a li.arxiv-result selection. A
// non-empty reason means the entry must be skipped.
func paperItem(s *goquery.Selection) (types.Paper, string) {
	var p types.Paper

	s.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if strings.Contains(href, "/abs/") && p.AbsURL == "" {
			p.AbsURL = absolutize(href)
		}
		if strings.Contains(href, "/pdf/") && p.PDFURL == "" {
			p.PDFURL = absolutize(href)
		}
		return p.AbsURL == "" || p.PDFURL == ""
	})
	p.Identifier = idFromURL(p.AbsURL)
	if p.Identifier == "" {
		return p, "no identifier"
	}
	if p.PDFURL == "" {
		p.PDFURL = strings.Replace(p.AbsURL, "/abs/", "/pdf/", 1)
	}

	p.Title = cleanText(s.Find("p.title").Text())
	if p.Title == "" {
		return p, fmt.Sprintf("entry %s has no title", p.Identifier)
	}

	d, ok := announcedDate(s)
	if !ok {
		return p, fmt.Sprintf("entry %s has no announcement date", p.Identifier)
	}
	p.Announced = d

	if authors := s.Find("p.authors"); authors.Length() > 0 {
		text := strings.TrimPrefix(strings.TrimSpace(authors.Text()), "Authors:")
		for _, name := range strings.Split(cleanText(text), ",") {
			if name = strings.TrimSpace(name); name != "" {
				p.Authors = append(p.Authors, name)
			}
		}
	}

	s.Find("span.tag").Each(func(_ int, tag *goquery.Selection) {
		if cat := strings.TrimSpace(tag.Text()); cat != "" {
			p.Categories = append(p.Categories, cat)
		}
	})

	p.Abstract = abstract(s)
	return p, ""
}

// announcedDate pulls the announcement date from the entry's date line.
func announcedDate(s *goquery.Selection) (time.Time, bool) {
	var dateText string
	s.Find("p.is-size-7").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		t := cleanText(p.Text())
		if strings.Contains(t, "announced") || strings.Contains(t, "Submitted") {
			dateText = t
			return false
		}
		return true
	})

	m := dateRe.FindStringSubmatch(dateText)
	if len(m) < 2 {
		return time.Time{}, false
	}
	for _, layout := range announcedLayouts {
		if t, err := time.Parse(layout, m[1]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// abstract returns the entry's abstract text, preferring the full variant.
// Missing abstracts (hidden listings) are not an error.
func abstract(s *goquery.Selection) string {
	node := s.Find("span.abstract-full").First()
	if node.Length() == 0 {
		node = s.Find("p.abstract").First()
	}
	if node.Length() == 0 {
		node = s.Find("span.abstract-short").First()
	}
	if node.Length() == 0 {
		return ""
	}
	txt := cleanText(node.Text())
	txt = strings.TrimSpace(strings.TrimPrefix(txt, "Abstract:"))
	for _, suffix := range []string{"Show less", "△ Less", "▽ More"} {
		txt = strings.TrimSpace(strings.TrimSuffix(txt, suffix))
	}
	return txt
}

// ReferenceTime extracts the single timestamp from the localtime page.
func ReferenceTime(html []byte) (time.Time, error) {
	m := timeRe.FindString(string(html))
	if m == "" {
		return time.Time{}, fmt.Errorf("%w: no recognizable timestamp on reference page", ErrParse)
	}

	m = strings.Replace(m, " ", "T", 1)
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05-0700", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, m); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparseable timestamp %q on reference page", ErrParse, m)
}

func cleanText(text string) string {
	return strings.TrimSpace(wsRe.ReplaceAllString(text, " "))
}

func absolutize(href string) string {
	if href == "" || strings.HasPrefix(href, "http") {
		return href
	}
	return arxivBase + href
}

// idFromURL pulls the arXiv ID from an abstract URL
// (e.g. "https://arxiv.org/abs/2310.12345v2" → "2310.12345").
func idFromURL(absURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(absURL, prefix)
	if idx < 0 {
		return ""
	}
	id := absURL[idx+len(prefix):]

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}
