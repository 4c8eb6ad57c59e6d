package services

import (
	"strings"
	"time"

	"qc-laptop/models"
	"qc-laptop/repositories"
	"qc-laptop/types"
	"qc-laptop/utils"

	"gorm.io/gorm"
)

const (
	dateLayout     = "2006-01-02"
	trendDays      = 7
	officerWindow  = 30
	recentActivity = 10
)

type ReportService struct {
	DB       *gorm.DB
	Location *time.Location
	now      clock
}

func NewReportService(db *gorm.DB, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{DB: db, Location: loc, now: utcNow}
}

type StatusSummary struct {
	TotalLaptops int64 `json:"total_laptops"`
	Pending      int64 `json:"pending"`
	InQC         int64 `json:"dalam_qc"`
	PassedQC     int64 `json:"lulus_qc"`
	NeedsRepair  int64 `json:"perlu_perbaikan"`
	InRepair     int64 `json:"dalam_perbaikan"`
}

func (s *StatusSummary) add(status types.LaptopStatus, n int64) {
	switch status {
	case types.LaptopPending:
		s.Pending += n
	case types.LaptopInQC:
		s.InQC += n
	case types.LaptopPassedQC:
		s.PassedQC += n
	case types.LaptopNeedsRepair:
		s.NeedsRepair += n
	case types.LaptopInRepair:
		s.InRepair += n
	}
	s.TotalLaptops += n
}

type DayStats struct {
	Date   string `json:"date,omitempty"`
	Total  int64  `json:"total"`
	Passed int64  `json:"passed"`
	Failed int64  `json:"failed"`
}

func (d *DayStats) add(outcome types.SessionOutcome) {
	d.Total++
	switch outcome {
	case types.OutcomePass:
		d.Passed++
	case types.OutcomeFail:
		d.Failed++
	}
}

type Dashboard struct {
	Summary          StatusSummary               `json:"summary"`
	Today            DayStats                    `json:"today"`
	QCByUser         []repositories.OfficerTally `json:"qc_by_user"`
	WeeklyTrend      []DayStats                  `json:"weekly_trend"`
	RecentActivities []models.HistoryView        `json:"recent_activities"`
}

func (s *ReportService) startOfDay(t time.Time) time.Time {
	local := t.In(s.Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.Location)
}

// Dashboard menghitung statistik; batas hari mengikuti Location.
func (s *ReportService) Dashboard() (*Dashboard, error) {
	repo := repositories.NewReportRepository(s.DB)
	today := s.startOfDay(s.now())

	counts, err := repo.StatusCounts()
	if err != nil {
		return nil, utils.Storage(err)
	}
	var d Dashboard
	for _, c := range counts {
		d.Summary.add(c.Status, c.Count)
	}

	trendStart := today.AddDate(0, 0, -(trendDays - 1))
	stamps, err := repo.SessionsSince(trendStart.UTC())
	if err != nil {
		return nil, utils.Storage(err)
	}
	d.WeeklyTrend = make([]DayStats, trendDays)
	for i := range d.WeeklyTrend {
		d.WeeklyTrend[i].Date = trendStart.AddDate(0, 0, i).Format(dateLayout)
	}
	for _, st := range stamps {
		day := s.startOfDay(st.QCDate)
		idx := int(day.Sub(trendStart).Hours()+0.5) / 24
		if idx < 0 || idx >= trendDays {
			continue
		}
		d.WeeklyTrend[idx].add(st.OverallStatus)
		if day.Equal(today) {
			d.Today.add(st.OverallStatus)
		}
	}

	d.QCByUser, err = repo.OfficerTallies(today.AddDate(0, 0, -officerWindow).UTC())
	if err != nil {
		return nil, utils.Storage(err)
	}

	d.RecentActivities, err = repositories.NewHistoryRepository(s.DB).Recent(recentActivity)
	if err != nil {
		return nil, utils.Storage(err)
	}
	return &d, nil
}

// ParseDate membaca tanggal YYYY-MM-DD di zona waktu laporan dan
// mengembalikannya dalam UTC, sama seperti kolom waktu di database.
// String kosong menghasilkan nil.
func (s *ReportService) ParseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, raw, s.Location)
	if err != nil {
		return nil, utils.Validation("Format tanggal harus YYYY-MM-DD")
	}
	t = t.UTC()
	return &t, nil
}

// DayEnd returns the exclusive upper bound covering the whole given day.
func DayEnd(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	end := t.AddDate(0, 0, 1)
	return &end
}

// ReportData mengumpulkan data laporan untuk laptop yang di-update antara
// startDate dan endDate (inklusif, per hari).
func (s *ReportService) ReportData(startDate, endDate *time.Time) (*models.ReportData, error) {
	if startDate == nil || endDate == nil {
		return nil, utils.Validation("Tanggal awal dan akhir wajib diisi")
	}
	if endDate.Before(*startDate) {
		return nil, utils.Validation("Tanggal akhir harus setelah tanggal awal")
	}
	from := startDate.UTC()
	to := DayEnd(endDate).UTC()

	repo := repositories.NewReportRepository(s.DB)
	summary, err := repo.Summary(from, to)
	if err != nil {
		return nil, utils.Storage(err)
	}
	records, err := repo.Records(from, to)
	if err != nil {
		return nil, utils.Storage(err)
	}
	return &models.ReportData{
		StartDate: *startDate,
		EndDate:   *endDate,
		Summary:   summary,
		Records:   records,
	}, nil
}
