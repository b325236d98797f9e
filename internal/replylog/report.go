package replylog

import (
	"fmt"
	"path/filepath"

	"github.com/go-pdf/fpdf"
)

// ReportFileName is the PDF document WriteReport produces next to the
// log file.
const ReportFileName = "email_log_summary.pdf"

// ReportPath returns the path the report document is written to.
func (w *Writer) ReportPath() string {
	return filepath.Join(w.dir, ReportFileName)
}

// WriteReport summarizes the log and renders the summary as a PDF:
// title, total replies, urgent total, then the per-category breakdown
// in display order. It returns the path of the written document.
func (w *Writer) WriteReport() (string, error) {
	summary, err := w.Summarize()
	if err != nil {
		return "", err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "Email Log Summary", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 8,
		fmt.Sprintf("Total logged replies: %d", summary.Total),
		"", 1, "", false, 0, "")
	pdf.CellFormat(0, 8,
		fmt.Sprintf("Urgent emails: %d", summary.Urgent),
		"", 1, "", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Category breakdown:", "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 11)

	for _, label := range summary.CategoryOrder() {
		pdf.CellFormat(0, 7,
			fmt.Sprintf("%s: %d", label, summary.PerCategory[label]),
			"", 1, "", false, 0, "")
	}

	path := w.ReportPath()
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("writing report %s: %w", path, err)
	}

	return path, nil
}
