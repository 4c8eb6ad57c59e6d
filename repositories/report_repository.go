package repositories

import (
	"time"

	"qc-laptop/models"
	"qc-laptop/types"

	"gorm.io/gorm"
)

type ReportRepository struct {
	DB *gorm.DB
}

func NewReportRepository(DB *gorm.DB) *ReportRepository {
	return &ReportRepository{DB: DB}
}

type StatusCount struct {
	Status types.LaptopStatus
	Count  int64
}

type OfficerTally struct {
	UserID   types.SnowflakeID `json:"user_id"`
	UserName string            `json:"user_name"`
	TotalQC  int64             `json:"total_qc"`
	Passed   int64             `json:"passed"`
	Failed   int64             `json:"failed"`
}

// SessionStamp adalah data minimum sesi untuk bucket harian.
type SessionStamp struct {
	QCDate        time.Time
	OverallStatus types.SessionOutcome
}

func (r *ReportRepository) StatusCounts() ([]StatusCount, error) {
	var rows []StatusCount
	err := r.DB.Table("laptops").
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

func (r *ReportRepository) SessionsSince(from time.Time) ([]SessionStamp, error) {
	var rows []SessionStamp
	err := r.DB.Table("qc_sessions").
		Select("qc_date, overall_status").
		Where("qc_date >= ?", from).
		Scan(&rows).Error
	return rows, err
}

func (r *ReportRepository) OfficerTallies(from time.Time) ([]OfficerTally, error) {
	rows := []OfficerTally{}
	err := r.DB.Table("qc_sessions AS qr").
		Select(`u.id AS user_id, u.full_name AS user_name, COUNT(qr.id) AS total_qc,
			SUM(CASE WHEN qr.overall_status = ? THEN 1 ELSE 0 END) AS passed,
			SUM(CASE WHEN qr.overall_status = ? THEN 1 ELSE 0 END) AS failed`,
			types.OutcomePass, types.OutcomeFail).
		Joins("JOIN users u ON u.id = qr.qc_user_id").
		Where("qr.qc_date >= ?", from).
		Group("u.id, u.full_name").
		Order("total_qc DESC, u.full_name ASC").
		Scan(&rows).Error
	return rows, err
}

// Summary menghitung laptop yang di-update pada [from, to).
func (r *ReportRepository) Summary(from, to time.Time) (models.ReportSummary, error) {
	var s models.ReportSummary
	err := r.DB.Table("laptops").
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS passed,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS needs_repair,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS in_repair`,
			types.LaptopPassedQC, types.LaptopNeedsRepair, types.LaptopInRepair).
		Where("updated_at >= ? AND updated_at < ?", from, to).
		Scan(&s).Error
	return s, err
}

func (r *ReportRepository) Records(from, to time.Time) ([]models.ReportRecord, error) {
	rows := []models.ReportRecord{}
	err := r.DB.Table("laptops AS l").
		Select("l.serial_number, l.model, l.brand, l.status, qr.notes, qr.qc_date, COALESCE(u.full_name, qr.qc_name) AS qc_officer").
		Joins("LEFT JOIN qc_sessions qr ON qr.laptop_id = l.id").
		Joins("LEFT JOIN users u ON u.id = qr.qc_user_id").
		Where("l.updated_at >= ? AND l.updated_at < ?", from, to).
		Order("qr.qc_date DESC, l.serial_number ASC").
		Scan(&rows).Error
	return rows, err
}
