// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package format renders filtered papers into the human-readable digest
// message delivered to the webhook (or printed in a dry run).
package format

import (
	"fmt"
	"strings"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

const (
	// EmptyMessage is returned for an empty record set. Delivery still
	// happens, so subscribers can tell a quiet day from a broken run.
	EmptyMessage = "No arXiv papers matched the query in the current announcement window."

	// maxAbstractRunes keeps individual messages compact.
	maxAbstractRunes = 700

	// maxAuthors caps the rendered author list; the remainder collapses
	// to "et al.".
	maxAuthors = 8
)

// Digest renders at most limit papers (limit <= 0 means unlimited) as a
// numbered markdown list, preserving input order. Abstracts are omitted
// when hideAbstracts is set or the paper carries none.
func Digest(papers []types.Paper, limit int, hideAbstracts bool) string {
	if len(papers) == 0 {
		return EmptyMessage
	}
	if limit > 0 && len(papers) > limit {
		papers = papers[:limit]
	}

	var b strings.Builder
	for i, p := range papers {
		if i > 0 {
			b.WriteString("\n\n")
		}
		writeEntry(&b, i+1, p, hideAbstracts)
	}
	return b.String()
}

func writeEntry(b *strings.Builder, n int, p types.Paper, hideAbstract bool) {
	fmt.Fprintf(b, "**%d. %s**\n", n, p.Title)

	meta := []string{"Authors: " + authorList(p.Authors)}
	if !p.Announced.IsZero() {
		meta = append(meta, "Date: "+p.Announced.Format("2006-01-02"))
	}
	if cat := p.PrimaryCategory(); cat != "" {
		meta = append(meta, "Category: `"+cat+"`")
	}
	b.WriteString(strings.Join(meta, "  |  "))

	if abs := strings.TrimSpace(p.Abstract); abs != "" && !hideAbstract {
		b.WriteString("\n\n")
		b.WriteString(truncate(abs, maxAbstractRunes))
	}

	var links []string
	if p.AbsURL != "" {
		links = append(links, fmt.Sprintf("[abs](%s)", p.AbsURL))
	}
	if p.PDFURL != "" {
		links = append(links, fmt.Sprintf("[pdf](%s)", p.PDFURL))
	}
	if len(links) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(links, "  |  "))
	}
}

// authorList joins author names, collapsing long lists to "et al.".
func authorList(authors []string) string {
	if len(authors) == 0 {
		return "(unknown)"
	}
	if len(authors) > maxAuthors {
		return strings.Join(authors[:maxAuthors], ", ") + ", et al."
	}
	return strings.Join(authors, ", ")
}

// truncate cuts s to at most n runes, appending an ellipsis when cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + " …"
}
