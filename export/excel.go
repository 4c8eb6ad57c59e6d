package export

import (
	"fmt"
	"io"
	"time"

	"qc-laptop/models"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Ringkasan"
	detailSheet  = "Detail QC"
	headerColor  = "4472C4"
	displayDate  = "02/01/2006"
)

var detailColumns = []struct {
	Header string
	Width  float64
}{
	{"No", 5},
	{"Serial Number", 20},
	{"Model", 20},
	{"Brand", 15},
	{"Status", 18},
	{"QC Officer", 20},
	{"Tanggal QC", 15},
	{"Catatan", 30},
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func formatDate(t *time.Time, loc *time.Location) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.In(loc).Format(displayDate)
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// WriteExcel menulis laporan QC ke w dalam format xlsx.
func WriteExcel(w io.Writer, data *models.ReportData, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(detailSheet); err != nil {
		return err
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerColor}},
		Border: border,
	})
	if err != nil {
		return err
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{Border: border})
	if err != nil {
		return err
	}

	// Ringkasan
	summaryRows := []struct {
		Label string
		Count int64
	}{
		{"Total QC", data.Summary.Total},
		{"Lulus QC", data.Summary.Passed},
		{"Perlu Perbaikan", data.Summary.NeedsRepair},
		{"Dalam Perbaikan", data.Summary.InRepair},
	}
	f.SetCellValue(summarySheet, "A1", "Kategori")
	f.SetCellValue(summarySheet, "B1", "Jumlah")
	for i, r := range summaryRows {
		f.SetCellValue(summarySheet, cell(1, i+2), r.Label)
		f.SetCellValue(summarySheet, cell(2, i+2), r.Count)
	}
	f.SetColWidth(summarySheet, "A", "A", 25)
	f.SetColWidth(summarySheet, "B", "B", 15)
	f.SetCellStyle(summarySheet, "A1", "B1", headerStyle)
	f.SetCellStyle(summarySheet, "A2", cell(2, len(summaryRows)+1), bodyStyle)

	// Detail QC
	for i, c := range detailColumns {
		f.SetCellValue(detailSheet, cell(i+1, 1), c.Header)
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(detailSheet, col, col, c.Width)
	}
	for i, rec := range data.Records {
		row := i + 2
		values := []interface{}{
			i + 1,
			rec.SerialNumber,
			orDash(rec.Model),
			orDash(rec.Brand),
			rec.Status.Label(),
			orDash(rec.QCOfficer),
			formatDate(rec.QCDate, loc),
			orDash(rec.Notes),
		}
		for j, v := range values {
			f.SetCellValue(detailSheet, cell(j+1, row), v)
		}
	}
	lastCol := len(detailColumns)
	f.SetCellStyle(detailSheet, "A1", cell(lastCol, 1), headerStyle)
	if len(data.Records) > 0 {
		f.SetCellStyle(detailSheet, "A2", cell(lastCol, len(data.Records)+1), bodyStyle)
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write excel: %w", err)
	}
	return nil
}
