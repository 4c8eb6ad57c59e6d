package services

import (
	"testing"
	"time"

	"qc-laptop/types"
	"qc-laptop/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jakarta = time.FixedZone("WIB", 7*3600)

func utc(month time.Month, day, hour int) time.Time {
	return time.Date(2024, month, day, hour, 0, 0, 0, time.UTC)
}

// seedReportData membuat empat laptop dengan riwayat QC yang berbeda.
func seedReportData(t *testing.T, f *fixture) {
	t.Helper()
	startAt := func(serial string, at time.Time) *StartSessionResult {
		f.qc.now = fixedClock(at)
		return f.start(t, serial)
	}
	submitAt := func(res *StartSessionResult, at time.Time, fail bool) {
		f.qc.now = fixedClock(at)
		status := "pass"
		if fail {
			status = "fail"
		}
		_, err := f.qc.SubmitSession(res.Session.ID, validSubmit(
			SubmittedItem{ID: res.ChecklistItems[0].ID, IsChecked: true, Status: status},
		), f.staff)
		require.NoError(t, err)
	}

	a := startAt("SN-A", utc(5, 10, 2))
	submitAt(a, utc(5, 10, 3), true)
	b := startAt("SN-B", utc(5, 8, 5))
	submitAt(b, utc(5, 8, 6), false)
	startAt("SN-C", utc(4, 30, 9))
	// 20:00 UTC sudah tanggal 10 di Jakarta
	startAt("SN-D", utc(5, 9, 20))
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	seedReportData(t, f)

	reports := NewReportService(f.db, jakarta)
	reports.now = fixedClock(utc(5, 10, 4))

	d, err := reports.Dashboard()
	require.NoError(t, err)

	assert.Equal(t, StatusSummary{TotalLaptops: 4, InQC: 2, PassedQC: 1, NeedsRepair: 1}, d.Summary)
	assert.Equal(t, DayStats{Total: 2, Failed: 1}, d.Today)

	require.Len(t, d.WeeklyTrend, 7)
	assert.Equal(t, "2024-05-04", d.WeeklyTrend[0].Date)
	assert.Equal(t, "2024-05-10", d.WeeklyTrend[6].Date)
	assert.Equal(t, DayStats{Date: "2024-05-08", Total: 1, Passed: 1}, d.WeeklyTrend[4])
	assert.Equal(t, DayStats{Date: "2024-05-09"}, d.WeeklyTrend[5])
	assert.Equal(t, DayStats{Date: "2024-05-10", Total: 2, Failed: 1}, d.WeeklyTrend[6])

	require.Len(t, d.QCByUser, 1)
	assert.Equal(t, f.staff.UserID, d.QCByUser[0].UserID)
	assert.EqualValues(t, 4, d.QCByUser[0].TotalQC)
	assert.EqualValues(t, 1, d.QCByUser[0].Passed)
	assert.EqualValues(t, 1, d.QCByUser[0].Failed)

	assert.Len(t, d.RecentActivities, 6)
}

func TestDashboardEmpty(t *testing.T) {
	f := newFixture(t)
	d, err := NewReportService(f.db, jakarta).Dashboard()
	require.NoError(t, err)
	assert.Zero(t, d.Summary.TotalLaptops)
	assert.Len(t, d.WeeklyTrend, 7)
	assert.Empty(t, d.QCByUser)
}

func TestParseDate(t *testing.T) {
	reports := NewReportService(nil, jakarta)

	got, err := reports.ParseDate("2024-05-08")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, utc(5, 7, 17), *got)

	got, err = reports.ParseDate("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = reports.ParseDate("08/05/2024")
	assert.True(t, utils.IsKind(err, utils.KindValidation))
}

func TestReportData(t *testing.T) {
	f := newFixture(t)
	seedReportData(t, f)
	reports := NewReportService(f.db, jakarta)

	start, err := reports.ParseDate("2024-05-08")
	require.NoError(t, err)
	end, err := reports.ParseDate("2024-05-10")
	require.NoError(t, err)

	data, err := reports.ReportData(start, end)
	require.NoError(t, err)
	assert.EqualValues(t, 3, data.Summary.Total)
	assert.EqualValues(t, 1, data.Summary.Passed)
	assert.EqualValues(t, 1, data.Summary.NeedsRepair)
	assert.EqualValues(t, 0, data.Summary.InRepair)

	require.Len(t, data.Records, 3)
	serials := []string{data.Records[0].SerialNumber, data.Records[1].SerialNumber, data.Records[2].SerialNumber}
	assert.Equal(t, []string{"SN-A", "SN-D", "SN-B"}, serials)
	assert.Equal(t, types.LaptopNeedsRepair, data.Records[0].Status)
	require.NotNil(t, data.Records[0].QCOfficer)
	assert.Equal(t, "Staff", *data.Records[0].QCOfficer)
}

func TestReportDataValidation(t *testing.T) {
	reports := NewReportService(nil, jakarta)
	day := utc(5, 8, 0)
	before := utc(5, 1, 0)

	_, err := reports.ReportData(nil, &day)
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	_, err = reports.ReportData(&day, &before)
	assert.True(t, utils.IsKind(err, utils.KindValidation))
}
