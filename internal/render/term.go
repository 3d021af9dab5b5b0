package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	termHeaderStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	termCategoryStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	termCellStyle     = lipgloss.NewStyle().Padding(0, 1)
	termBorderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	termTitleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	termMutedStyle    = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
)

// Terminal renders rounded-border tables for a console. Width, when
// positive, caps the table width and wraps cells.
type Terminal struct {
	Width int
}

func (r Terminal) Render(w io.Writer, t Table) error {
	if t.sectionMode() {
		if len(t.Result.Sections) == 0 {
			_, err := fmt.Fprintln(w, termMutedStyle.Render(EmptyMessage))
			return err
		}
		for _, s := range t.Result.Sections {
			if s.Title != "" {
				if _, err := fmt.Fprintln(w, termTitleStyle.Render(s.Title)); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(w, r.table(fieldHeaders, fieldCells(s)).Render()); err != nil {
				return err
			}
		}
		return nil
	}
	cells := t.Cells()
	if len(cells) == 0 {
		cells = [][]string{{termMutedStyle.Render(EmptyMessage), "", ""}}
	}
	_, err := fmt.Fprintln(w, r.table(t.Headers(), cells).Render())
	return err
}

func (r Terminal) table(headers []string, rows [][]string) *table.Table {
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(termBorderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return termHeaderStyle
			case col == 0:
				return termCategoryStyle
			default:
				return termCellStyle
			}
		})
	if r.Width > 0 {
		tbl = tbl.Width(r.Width)
	}
	return tbl
}
