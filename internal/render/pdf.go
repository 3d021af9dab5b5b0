package render

import (
	"io"

	"github.com/jung-kurt/gofpdf"
)

// PDF renders an A4 landscape document with wrapped table cells.
type PDF struct{}

const (
	pdfLineHeight = 5.0
	pdfPadding    = 1.5
)

func (PDF) Render(w io.Writer, t Table) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Comparison Results", true)
	pdf.SetAutoPageBreak(false, 12)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Comparison Results", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	full := pageW - left - right

	if t.sectionMode() {
		if len(t.Result.Sections) == 0 {
			pdfMessage(pdf, tr, full)
		}
		widths := []float64{full * 0.3, full * 0.7}
		for _, s := range t.Result.Sections {
			if s.Title != "" {
				pdf.SetFont("Helvetica", "B", 12)
				pdf.CellFormat(0, 8, tr(s.Title), "", 1, "L", false, 0, "")
			}
			pdfRow(pdf, tr, widths, fieldHeaders, true)
			for _, c := range fieldCells(s) {
				pdfRow(pdf, tr, widths, c, false)
			}
			pdf.Ln(4)
		}
	} else {
		widths := []float64{full * 0.24, full * 0.38, full * 0.38}
		pdfRow(pdf, tr, widths, t.Headers(), true)
		cells := t.Cells()
		if len(cells) == 0 {
			pdfMessage(pdf, tr, full)
		}
		for _, c := range cells {
			pdfRow(pdf, tr, widths, c, false)
		}
	}
	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

// pdfRow draws one bordered row, growing it to fit the tallest wrapped cell
// and moving to a new page when it would cross the bottom margin.
func pdfRow(pdf *gofpdf.Fpdf, tr func(string) string, widths []float64, cells []string, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, 10)

	wrapped := make([][][]byte, len(cells))
	lines := 1
	for i, c := range cells {
		wrapped[i] = pdf.SplitLines([]byte(tr(c)), widths[i]-2*pdfPadding)
		if n := len(wrapped[i]); n > lines {
			lines = n
		}
	}
	h := float64(lines)*pdfLineHeight + 2*pdfPadding

	_, pageH := pdf.GetPageSize()
	left, _, _, bottom := pdf.GetMargins()
	if pdf.GetY()+h > pageH-bottom {
		pdf.AddPage()
		pdf.SetFont("Helvetica", style, 10)
	}

	x, y := left, pdf.GetY()
	for i := range cells {
		rectStyle := "D"
		if header {
			pdf.SetFillColor(230, 230, 230)
			rectStyle = "FD"
		}
		pdf.Rect(x, y, widths[i], h, rectStyle)
		for j, ln := range wrapped[i] {
			pdf.SetXY(x+pdfPadding, y+pdfPadding+float64(j)*pdfLineHeight)
			pdf.CellFormat(widths[i]-2*pdfPadding, pdfLineHeight, string(ln), "", 0, "L", false, 0, "")
		}
		x += widths[i]
	}
	pdf.SetXY(left, y+h)
}

func pdfMessage(pdf *gofpdf.Fpdf, tr func(string) string, width float64) {
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(width, 10, tr(EmptyMessage), "1", 1, "C", false, 0, "")
}
