// Package render turns extraction results into tables for people to read.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/hyperifyio/gocompare/internal/extract"
)

// EmptyMessage replaces the table body when nothing could be extracted.
const EmptyMessage = "Unable to parse comparison data. Please try again."

// Table is everything a renderer needs.
type Table struct {
	NameA  string
	NameB  string
	Result extract.Result
}

// Renderer writes a Table in one output format.
type Renderer interface {
	Render(w io.Writer, t Table) error
}

// Formats lists the accepted format names in help order.
var Formats = []string{"markdown", "html", "pdf", "term", "json", "yaml"}

// For returns the renderer for a format name.
func For(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "markdown", "md":
		return Markdown{}, nil
	case "html":
		return HTML{}, nil
	case "pdf":
		return PDF{}, nil
	case "term", "terminal", "text":
		return Terminal{}, nil
	case "json":
		return JSON{}, nil
	case "yaml", "yml":
		return YAML{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

// Extension returns the file extension, with dot, for a format name.
func Extension(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "html":
		return ".html"
	case "pdf":
		return ".pdf"
	case "term", "terminal", "text":
		return ".txt"
	case "json":
		return ".json"
	case "yaml", "yml":
		return ".yaml"
	default:
		return ".md"
	}
}

// Headers returns the comparison column headers.
func (t Table) Headers() []string {
	return []string{"Category", nameOr(t.NameA, "Company A"), nameOr(t.NameB, "Company B")}
}

// Cells returns comparison rows as string slices.
func (t Table) Cells() [][]string {
	out := make([][]string, 0, len(t.Result.Rows))
	for _, r := range t.Result.Rows {
		out = append(out, []string{r.Category, r.ValueA, r.ValueB})
	}
	return out
}

// sectionMode reports whether the result holds sections rather than rows.
func (t Table) sectionMode() bool {
	return t.Result.Mode == extract.ModeSections
}

var fieldHeaders = []string{"Label", "Value"}

func fieldCells(s extract.Section) [][]string {
	out := make([][]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		out = append(out, []string{f.Label, f.Value})
	}
	return out
}

func nameOr(s, fallback string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return fallback
}
