package export

import (
	"fmt"
	"io"
	"time"

	"qc-laptop/models"

	"github.com/go-pdf/fpdf"
)

const (
	pageMargin = 15.0
	rowHeight  = 6.0
	pageBottom = 297.0 - 20.0
)

var pdfColumns = []struct {
	Header string
	Width  float64
}{
	{"Serial Number", 40},
	{"Model", 45},
	{"Status", 30},
	{"QC Officer", 40},
	{"Tanggal", 25},
}

func clip(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-2]) + ".."
}

// WritePDF menulis laporan QC ke w. printedAt dicetak di bagian bawah.
func WritePDF(w io.Writer, data *models.ReportData, loc *time.Location, printedAt time.Time) error {
	if loc == nil {
		loc = time.UTC
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "LAPORAN QUALITY CONTROL LAPTOP", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	period := fmt.Sprintf("Periode: %s - %s", data.StartDate.In(loc).Format(displayDate), data.EndDate.In(loc).Format(displayDate))
	pdf.CellFormat(0, 7, period, "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "RINGKASAN", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{
		fmt.Sprintf("Total QC: %d", data.Summary.Total),
		fmt.Sprintf("Lulus QC: %d", data.Summary.Passed),
		fmt.Sprintf("Perlu Perbaikan: %d", data.Summary.NeedsRepair),
		fmt.Sprintf("Dalam Perbaikan: %d", data.Summary.InRepair),
	} {
		pdf.CellFormat(0, rowHeight, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(8)

	if len(data.Records) > 0 {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 8, "DETAIL QC RECORDS", "", 1, "L", false, 0, "")

		tableHeader := func() {
			pdf.SetFont("Helvetica", "B", 9)
			pdf.SetFillColor(0x44, 0x72, 0xC4)
			pdf.SetTextColor(255, 255, 255)
			for _, c := range pdfColumns {
				pdf.CellFormat(c.Width, rowHeight+1, c.Header, "1", 0, "L", true, 0, "")
			}
			pdf.Ln(-1)
			pdf.SetTextColor(0, 0, 0)
			pdf.SetFont("Helvetica", "", 9)
		}
		tableHeader()

		for _, rec := range data.Records {
			if pdf.GetY()+rowHeight > pageBottom {
				pdf.AddPage()
				tableHeader()
			}
			cells := []string{
				clip(rec.SerialNumber, 22),
				clip(orDash(rec.Model), 26),
				rec.Status.Label(),
				clip(orDash(rec.QCOfficer), 22),
				formatDate(rec.QCDate, loc),
			}
			for i, c := range pdfColumns {
				pdf.CellFormat(c.Width, rowHeight, tr(cells[i]), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, "Dicetak pada: "+printedAt.In(loc).Format("02/01/2006 15:04"), "", 1, "R", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
