package report

import (
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"

	"github.com/rshade/accountdesk/internal/account"
	"github.com/rshade/accountdesk/internal/engine"
)

const (
	pdfFont       = "Helvetica"
	pdfRowHeight  = 7.0
	pdfPageWidth  = 277.0 // A4 landscape minus default margins
	pdfTitleSize  = 16
	pdfHeadSize   = 12
	pdfTableSize  = 10
	pdfHeaderFill = 220
)

// RenderPDF writes the current page of both level tables as a PDF document.
func RenderPDF(w io.Writer, view engine.View, cols []account.Column, title string) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.SetCreator("accountdesk", true)
	pdf.AddPage()

	pdf.SetFont(pdfFont, "B", pdfTitleSize)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(12)

	colWidth := pdfPageWidth
	if len(cols) > 0 {
		colWidth = pdfPageWidth / float64(len(cols))
	}

	for _, level := range Levels() {
		pdf.SetFont(pdfFont, "B", pdfHeadSize)
		pdf.Cell(0, 8, tr(LevelHeading(view, level)))
		pdf.Ln(9)

		pdf.SetFont(pdfFont, "B", pdfTableSize)
		pdf.SetFillColor(pdfHeaderFill, pdfHeaderFill, pdfHeaderFill)
		for _, col := range cols {
			pdf.CellFormat(colWidth, pdfRowHeight, tr(col.Label), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont(pdfFont, "", pdfTableSize)
		rows := view.PageOf(level)
		if len(rows) == 0 {
			pdf.CellFormat(colWidth*float64(len(cols)), pdfRowHeight, "(no accounts)", "1", 0, "C", false, 0, "")
			pdf.Ln(-1)
		}
		for _, acc := range rows {
			for _, col := range cols {
				pdf.CellFormat(colWidth, pdfRowHeight, tr(CellValue(acc, col)), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(6)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	return nil
}
