package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
)

const (
	pdfPageWidth  = 210 // A4 width in mm
	pdfMargin     = 10  // Margin in mm
	pdfLineHeight = 5   // Line height in mm
	pdfFontSize   = 10
)

// pdfColumns are the widths in mm of the segment table columns.
var pdfColumns = []float64{30, 50, 40, 40}

// generatePDF writes the reports to outputPath, one section per input.
func generatePDF(reports []InputReport, outputPath string, logger *zap.Logger) error {
	logger.Debug("Generating PDF report", zap.String("path", outputPath), zap.Int("inputs", len(reports)))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()
	textWidth := float64(pdfPageWidth - 2*pdfMargin)

	for _, r := range reports {
		pdf.SetFont("Helvetica", "B", pdfFontSize+2)
		pdf.SetTextColor(0, 0, 0)
		pdf.MultiCell(textWidth, pdfLineHeight+1, r.Input, "", "L", false)
		pdf.Ln(pdfLineHeight / 2)

		if r.Err != nil {
			pdf.SetFont("Helvetica", "", pdfFontSize)
			pdf.SetTextColor(200, 0, 0)
			pdf.MultiCell(textWidth, pdfLineHeight, fmt.Sprintf("Error: %v", r.Err), "", "L", false)
			pdf.Ln(pdfLineHeight)
			continue
		}

		res := r.Result
		p := res.Projection
		pdf.SetFont("Helvetica", "", pdfFontSize)
		lines := fmt.Sprintf("Files: %s, total %s\nSearch: minimal %s holding %.0f%% of %s\nInterval: %s, %s files, span %s\n%s",
			humanize.Comma(int64(p.Total)), humanize.IBytes(uint64(p.TotalBytes)),
			res.Config.Objective, res.Config.MajorityCoeff*100, massNoun(res.Config.Mass),
			p.Interval, humanize.Comma(int64(p.Count)), humanize.IBytes(uint64(p.Span())),
			answer(res))
		pdf.MultiCell(textWidth, pdfLineHeight, lines, "", "L", false)
		pdf.Ln(pdfLineHeight / 2)

		pdf.SetFont("Helvetica", "B", pdfFontSize)
		for i, h := range []string{"Segment", "Positions", "Files", "Share"} {
			pdf.CellFormat(pdfColumns[i], pdfLineHeight+1, h, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Courier", "", pdfFontSize)
		for _, s := range p.Segments {
			cells := []string{
				string(s.Kind),
				s.Interval.String(),
				humanize.Comma(int64(s.Count)),
				fmt.Sprintf("%.2f%%", s.Mass*100),
			}
			for i, c := range cells {
				pdf.CellFormat(pdfColumns[i], pdfLineHeight+1, c, "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(pdfLineHeight)
	}

	summary := summarize(reports)
	pdf.SetFont("Helvetica", "B", pdfFontSize+1)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(textWidth, pdfLineHeight, "--- Summary ---", "", "L", false)
	pdf.Ln(pdfLineHeight / 2)
	pdf.SetFont("Helvetica", "", pdfFontSize)
	summaryString := fmt.Sprintf("Inputs analyzed: %d\nTotal files: %d\nTotal size: %d bytes",
		summary.TotalInputs-summary.FailedInputs, summary.TotalFiles, summary.TotalSize)
	if summary.FailedInputs > 0 {
		summaryString += fmt.Sprintf("\nInputs failed: %d", summary.FailedInputs)
	}
	pdf.MultiCell(textWidth, pdfLineHeight, summaryString, "", "L", false)

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("failed to save PDF to %s: %w", outputPath, err)
	}
	logger.Info("Saved PDF report", zap.String("path", outputPath))
	return nil
}
