package report

import (
	"fmt"
	"io"
	"os"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfLine   = 6.0 // row height, mm
	pdfMargin = 10.0
)

// WritePDF renders the report as a Letter-size PDF to w. The content
// matches WriteText; every table gets a shaded header row. Text is
// converted to cp1252 for the core fonts, so accented names survive.
func (r *Report) WritePDF(w io.Writer) error {
	if r.Solution == nil {
		return ErrNoSolution
	}
	return r.render().Output(w)
}

// pdfDoc pairs the document with the UTF-8 to cp1252 translator every
// string must pass through.
type pdfDoc struct {
	*gofpdf.Fpdf
	tr func(string) string
}

func (r *Report) render() *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	doc := pdfDoc{Fpdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	if r.Title != "" {
		pdf.SetTitle(r.Title, true)
	}
	pdf.SetCreator("paxflow", true)
	pdf.AddPage()

	if r.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		doc.line(10, r.Title)
	}
	pdf.SetFont("Arial", "", 10)
	doc.line(pdfLine, r.Summary())
	pdf.Cell(0, pdfLine, doc.tr(r.saturation()))
	pdf.Ln(pdfLine * 1.5)

	if r.ShowFlights {
		doc.table(r.flightTable())
	}
	if r.Cut != nil {
		doc.heading(fmt.Sprintf("Minimum cut: %s seats on %d flights", num(r.Cut.Capacity), len(r.Cut.Edges)))
		doc.table(r.cutTable())
	}
	if r.Critical != nil {
		t := r.criticalTable()
		if len(t.rows) == 0 {
			doc.heading("No single flight lowers the maximum")
		} else {
			doc.heading(fmt.Sprintf("Critical flights: %d", len(t.rows)))
			doc.table(t)
		}
	}

	return pdf
}

// SavePDF writes the PDF rendering of r to path.
func (r *Report) SavePDF(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if err := r.WritePDF(f); err != nil {
		f.Close()
		return fmt.Errorf("report: %s: %w", path, err)
	}
	return f.Close()
}

func (d pdfDoc) line(h float64, text string) {
	d.Cell(0, h, d.tr(text))
	d.Ln(h)
}

func (d pdfDoc) heading(text string) {
	d.SetFont("Arial", "B", 11)
	d.line(pdfLine, text)
	d.SetFont("Arial", "", 10)
}

// table lays t out across the page width, each column sized to its
// widest cell.
func (d pdfDoc) table(t table) {
	header := make([]string, len(t.header))
	for i, h := range t.header {
		header[i] = d.tr(h)
	}
	rows := make([][]string, len(t.rows))
	for r, row := range t.rows {
		rows[r] = make([]string, len(row))
		for i, c := range row {
			rows[r][i] = d.tr(c)
		}
	}

	widths := make([]float64, len(header))
	for i, h := range header {
		widths[i] = d.GetStringWidth(h)
	}
	for _, row := range rows {
		for i, c := range row {
			if w := d.GetStringWidth(c); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		widths[i] += 4
	}

	align := func(i int) string {
		if i < len(t.right) && t.right[i] {
			return "R"
		}
		return "L"
	}

	d.SetFillColor(220, 220, 220)
	d.SetFont("Arial", "B", 10)
	for i, h := range header {
		d.CellFormat(widths[i], pdfLine, h, "1", 0, align(i), true, 0, "")
	}
	d.Ln(-1)
	d.SetFont("Arial", "", 10)
	for _, row := range rows {
		for i, c := range row {
			d.CellFormat(widths[i], pdfLine, c, "1", 0, align(i), false, 0, "")
		}
		d.Ln(-1)
	}
	d.Ln(pdfLine / 2)
}
