package export

import (
	"bytes"
	"testing"
	"time"

	"qc-laptop/models"
	"qc-laptop/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() *models.ReportData {
	model := "ThinkPad X1"
	brand := "Lenovo"
	officer := "Budi"
	notes := "Port USB kiri mati"
	qcDate := time.Date(2024, 5, 2, 3, 0, 0, 0, time.UTC)
	return &models.ReportData{
		StartDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
		Summary:   models.ReportSummary{Total: 3, Passed: 1, NeedsRepair: 1, InRepair: 1},
		Records: []models.ReportRecord{
			{SerialNumber: "SN-001", Model: &model, Brand: &brand, Status: types.LaptopNeedsRepair, Notes: &notes, QCDate: &qcDate, QCOfficer: &officer},
			{SerialNumber: "SN-002", Status: types.LaptopPending},
		},
	}
}

func TestWriteExcel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExcel(&buf, sampleReport(), time.UTC))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Ringkasan", "Detail QC"}, f.GetSheetList())

	v, _ := f.GetCellValue("Ringkasan", "A2")
	assert.Equal(t, "Total QC", v)
	v, _ = f.GetCellValue("Ringkasan", "B2")
	assert.Equal(t, "3", v)
	v, _ = f.GetCellValue("Ringkasan", "A5")
	assert.Equal(t, "Dalam Perbaikan", v)

	rows, err := f.GetRows("Detail QC")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"No", "Serial Number", "Model", "Brand", "Status", "QC Officer", "Tanggal QC", "Catatan"}, rows[0])
	assert.Equal(t, []string{"1", "SN-001", "ThinkPad X1", "Lenovo", "Perlu Perbaikan", "Budi", "02/05/2024", "Port USB kiri mati"}, rows[1])
	assert.Equal(t, []string{"2", "SN-002", "-", "-", "Pending", "-", "-", "-"}, rows[2])
}

func TestWriteExcelNoRecords(t *testing.T) {
	data := sampleReport()
	data.Records = nil

	var buf bytes.Buffer
	require.NoError(t, WriteExcel(&buf, data, time.UTC))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Detail QC")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWritePDF(t *testing.T) {
	data := sampleReport()
	for i := 0; i < 80; i++ {
		data.Records = append(data.Records, models.ReportRecord{SerialNumber: "SN-BULK", Status: types.LaptopPassedQC})
	}

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, data, time.UTC, time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)))

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Greater(t, len(out), 1000)
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "abcdefgh..", clip("abcdefghijklmnop", 10))
}
