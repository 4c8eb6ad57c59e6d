package repositories

import (
	"time"

	"qc-laptop/models"
	"qc-laptop/types"
	"qc-laptop/utils"

	"gorm.io/gorm"
)

type HistoryRepository struct {
	DB *gorm.DB
}

func NewHistoryRepository(DB *gorm.DB) *HistoryRepository {
	return &HistoryRepository{DB: DB}
}

type HistoryFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	UserID     types.SnowflakeID
	LaptopID   types.SnowflakeID
	ActionType types.ActionType
}

// Append harus dipanggil dengan tx yang sama dengan perubahan state-nya.
func (r *HistoryRepository) Append(entry *models.HistoryLog) error {
	return r.DB.Create(entry).Error
}

func (r *HistoryRepository) joined() *gorm.DB {
	return r.DB.Table("history_logs AS h").
		Select("h.*, u.full_name AS user_name, u.role AS user_role, l.serial_number").
		Joins("LEFT JOIN users u ON u.id = h.user_id").
		Joins("LEFT JOIN laptops l ON l.id = h.laptop_id")
}

func (r *HistoryRepository) ByLaptop(laptopID types.SnowflakeID, limit, offset int) ([]models.HistoryView, error) {
	rows := []models.HistoryView{}
	err := r.joined().
		Where("h.laptop_id = ?", laptopID).
		Order("h.created_at DESC, h.id DESC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error
	return rows, err
}

func (r *HistoryRepository) Recent(limit int) ([]models.HistoryView, error) {
	rows := []models.HistoryView{}
	err := r.joined().
		Order("h.created_at DESC, h.id DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func applyHistoryFilter(q *gorm.DB, f HistoryFilter) *gorm.DB {
	if f.LaptopID != 0 {
		q = q.Where("h.laptop_id = ?", f.LaptopID)
	}
	if f.UserID != 0 {
		q = q.Where("h.user_id = ?", f.UserID)
	}
	if f.ActionType != "" {
		q = q.Where("h.action_type = ?", f.ActionType)
	}
	if f.StartDate != nil {
		q = q.Where("h.created_at >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("h.created_at < ?", *f.EndDate)
	}
	return q
}

func (r *HistoryRepository) Query(f HistoryFilter, p utils.Paging) ([]models.HistoryView, int64, error) {
	var total int64
	if err := applyHistoryFilter(r.DB.Table("history_logs AS h"), f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := []models.HistoryView{}
	err := applyHistoryFilter(r.joined(), f).
		Order("h.created_at DESC, h.id DESC").
		Offset(p.Offset()).Limit(p.PerPage).
		Scan(&rows).Error
	return rows, total, err
}

func (r *HistoryRepository) DeleteByLaptop(laptopID types.SnowflakeID) error {
	return r.DB.Where("laptop_id = ?", laptopID).Delete(&models.HistoryLog{}).Error
}
