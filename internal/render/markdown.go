package render

import (
	"io"
	"strings"
)

// Markdown renders GitHub-flavored Markdown tables.
type Markdown struct{}

func (Markdown) Render(w io.Writer, t Table) error {
	var sb strings.Builder
	if t.sectionMode() {
		if len(t.Result.Sections) == 0 {
			sb.WriteString(EmptyMessage + "\n")
		}
		for i, s := range t.Result.Sections {
			if i > 0 {
				sb.WriteString("\n")
			}
			if s.Title != "" {
				sb.WriteString("## " + s.Title + "\n\n")
			}
			writeMarkdownTable(&sb, fieldHeaders, fieldCells(s))
		}
	} else {
		cells := t.Cells()
		if len(cells) == 0 {
			cells = [][]string{{EmptyMessage, "", ""}}
		}
		writeMarkdownTable(&sb, t.Headers(), cells)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeMarkdownTable(sb *strings.Builder, headers []string, rows [][]string) {
	writeMarkdownRow(sb, headers)
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	writeMarkdownRow(sb, sep)
	for _, r := range rows {
		writeMarkdownRow(sb, r)
	}
}

func writeMarkdownRow(sb *strings.Builder, cells []string) {
	sb.WriteString("|")
	for _, c := range cells {
		sb.WriteString(" ")
		sb.WriteString(escapeCell(c))
		sb.WriteString(" |")
	}
	sb.WriteString("\n")
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ")

func escapeCell(s string) string {
	return cellEscaper.Replace(strings.TrimSpace(s))
}
