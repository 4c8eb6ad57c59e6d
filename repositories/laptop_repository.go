package repositories

import (
	"strings"
	"time"

	"qc-laptop/models"
	"qc-laptop/types"
	"qc-laptop/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LaptopRepository struct {
	DB *gorm.DB
}

func NewLaptopRepository(DB *gorm.DB) *LaptopRepository {
	return &LaptopRepository{DB: DB}
}

type LaptopFilter struct {
	Query     string
	Status    types.LaptopStatus
	SortBy    string
	SortOrder string
}

// LaptopListItem adalah satu baris list laptop dengan hasil QC terakhir.
type LaptopListItem struct {
	models.Laptop
	LastQCStatus  *types.SessionOutcome `json:"last_qc_status"`
	LastQCDate    *time.Time            `json:"last_qc_date"`
	LastQCOfficer *string               `json:"last_qc_officer"`
}

type lastQCRow struct {
	LaptopID      types.SnowflakeID
	OverallStatus types.SessionOutcome
	QCDate        time.Time
	FullName      *string
}

var laptopSortColumns = map[string]string{
	"serial_number": "serial_number",
	"model":         "model",
	"brand":         "brand",
	"status":        "status",
	"created_at":    "created_at",
	"updated_at":    "updated_at",
}

// SortColumn maps user input onto an ORDER BY clause. Unknown columns fall
// back to created_at DESC; ASC is used only when asked for explicitly.
func SortColumn(sortBy, sortOrder string) string {
	col, ok := laptopSortColumns[sortBy]
	if !ok {
		return "created_at DESC"
	}
	if strings.EqualFold(sortOrder, "asc") {
		return col + " ASC"
	}
	return col + " DESC"
}

// likeEscaper meloloskan wildcard LIKE, dipasangkan dengan ESCAPE '!'.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_", "[", "![")

// likePattern membuat pola substring untuk kolom yang sudah di-LOWER.
func likePattern(q string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(q))) + "%"
}

func (r *LaptopRepository) FindByID(id types.SnowflakeID) (*models.Laptop, error) {
	var laptop models.Laptop
	if err := r.DB.First(&laptop, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &laptop, nil
}

func (r *LaptopRepository) FindBySerial(serial string) (*models.Laptop, error) {
	var laptop models.Laptop
	if err := r.DB.Where("serial_number = ?", serial).First(&laptop).Error; err != nil {
		return nil, err
	}
	return &laptop, nil
}

// FindBySerialLocked membaca versi commit terakhir, termasuk baris yang baru
// di-insert transaksi lain.
func (r *LaptopRepository) FindBySerialLocked(serial string) (*models.Laptop, error) {
	var laptop models.Laptop
	if err := lockRow(r.DB, "UPDATE").Where("serial_number = ?", serial).First(&laptop).Error; err != nil {
		return nil, err
	}
	return &laptop, nil
}

func (r *LaptopRepository) filtered(f LaptopFilter) *gorm.DB {
	q := r.DB.Model(&models.Laptop{})
	if strings.TrimSpace(f.Query) != "" {
		like := likePattern(f.Query)
		q = q.Where("LOWER(serial_number) LIKE ? ESCAPE '!' OR LOWER(COALESCE(model, '')) LIKE ? ESCAPE '!' OR LOWER(COALESCE(brand, '')) LIKE ? ESCAPE '!'", like, like, like)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return q
}

func (r *LaptopRepository) Search(f LaptopFilter, p utils.Paging) ([]LaptopListItem, int64, error) {
	var total int64
	if err := r.filtered(f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var laptops []models.Laptop
	if err := r.filtered(f).Order(SortColumn(f.SortBy, f.SortOrder)).
		Offset(p.Offset()).Limit(p.PerPage).
		Find(&laptops).Error; err != nil {
		return nil, 0, err
	}

	items := make([]LaptopListItem, len(laptops))
	ids := make([]types.SnowflakeID, len(laptops))
	for i, l := range laptops {
		items[i].Laptop = l
		ids[i] = l.ID
	}
	if len(ids) == 0 {
		return items, total, nil
	}

	var sessions []lastQCRow
	if err := r.DB.Table("qc_sessions AS qr").
		Select("qr.laptop_id, qr.overall_status, qr.qc_date, u.full_name").
		Joins("LEFT JOIN users u ON u.id = qr.qc_user_id").
		Where("qr.laptop_id IN ?", ids).
		Order("qr.qc_date DESC, qr.created_at DESC").
		Scan(&sessions).Error; err != nil {
		return nil, 0, err
	}
	seen := make(map[types.SnowflakeID]bool, len(ids))
	index := make(map[types.SnowflakeID]int, len(items))
	for i := range items {
		index[items[i].ID] = i
	}
	for _, s := range sessions {
		if seen[s.LaptopID] {
			continue
		}
		seen[s.LaptopID] = true
		item := &items[index[s.LaptopID]]
		status, date := s.OverallStatus, s.QCDate
		item.LastQCStatus = &status
		item.LastQCDate = &date
		item.LastQCOfficer = s.FullName
	}
	return items, total, nil
}

func (r *LaptopRepository) Create(laptop *models.Laptop) error {
	return r.DB.Create(laptop).Error
}

// InsertIgnore inserts the laptop unless its serial already exists.
// It reports whether a row was written.
func (r *LaptopRepository) InsertIgnore(laptop *models.Laptop) (bool, error) {
	res := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "serial_number"}},
		DoNothing: true,
	}).Create(laptop)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *LaptopRepository) Updates(id types.SnowflakeID, fields map[string]interface{}) error {
	return r.DB.Model(&models.Laptop{}).Where("id = ?", id).Updates(fields).Error
}

func (r *LaptopRepository) SetStatus(id types.SnowflakeID, status types.LaptopStatus, at time.Time) error {
	return r.Updates(id, map[string]interface{}{
		"status":     status,
		"updated_at": at,
	})
}

func (r *LaptopRepository) Delete(id types.SnowflakeID) error {
	return r.DB.Delete(&models.Laptop{}, "id = ?", id).Error
}
