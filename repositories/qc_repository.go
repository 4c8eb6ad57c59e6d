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

type QCRepository struct {
	DB *gorm.DB
}

func NewQCRepository(DB *gorm.DB) *QCRepository {
	return &QCRepository{DB: DB}
}

type QCFilter struct {
	Query     string
	Status    types.SessionOutcome
	StartDate *time.Time
	EndDate   *time.Time
	QCUserID  types.SnowflakeID
}

// QCListItem adalah baris list sesi QC beserta data laptop dan user.
type QCListItem struct {
	ID            types.SnowflakeID    `json:"id"`
	LaptopID      types.SnowflakeID    `json:"laptop_id"`
	SerialNumber  string               `json:"serial_number"`
	Model         *string              `json:"model"`
	Brand         *string              `json:"brand"`
	LaptopStatus  types.LaptopStatus   `json:"laptop_status"`
	QCUserID      types.SnowflakeID    `json:"qc_user_id"`
	QCUserName    *string              `json:"qc_user_name"`
	QCName        string               `json:"qc_name"`
	QCRoom        string               `json:"qc_room"`
	QCLine        string               `json:"qc_line"`
	QCTable       string               `json:"qc_table"`
	OverallStatus types.SessionOutcome `json:"overall_status"`
	QCDate        time.Time            `json:"qc_date"`
	CreatedAt     time.Time            `json:"created_at"`
}

func (r *QCRepository) CreateSession(session *models.QCSession) error {
	return r.DB.Omit(clause.Associations).Create(session).Error
}

func (r *QCRepository) CreateItems(items []models.ChecklistItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.DB.Create(&items).Error
}

func (r *QCRepository) FindSession(id types.SnowflakeID) (*models.QCSession, error) {
	var session models.QCSession
	if err := r.DB.First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// FindSessionForUpdate mengunci baris sesi sampai transaksi selesai.
func (r *QCRepository) FindSessionForUpdate(id types.SnowflakeID) (*models.QCSession, error) {
	var session models.QCSession
	if err := lockRow(r.DB, "UPDATE").First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *QCRepository) SessionsByLaptop(laptopID types.SnowflakeID) ([]models.QCSession, error) {
	var sessions []models.QCSession
	err := r.DB.Where("laptop_id = ?", laptopID).
		Order("qc_date DESC, created_at DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *QCRepository) CountSessionsByLaptop(laptopID types.SnowflakeID) (int64, error) {
	var n int64
	err := r.DB.Model(&models.QCSession{}).Where("laptop_id = ?", laptopID).Count(&n).Error
	return n, err
}

func (r *QCRepository) UpdateSession(id types.SnowflakeID, fields map[string]interface{}) error {
	return r.DB.Model(&models.QCSession{}).Where("id = ?", id).Updates(fields).Error
}

// Items mengembalikan checklist dalam urutan template: hardware lalu software.
func (r *QCRepository) Items(sessionID types.SnowflakeID) ([]models.ChecklistItem, error) {
	var items []models.ChecklistItem
	err := r.DB.Where("qc_session_id = ?", sessionID).
		Order("category ASC, position ASC").
		Find(&items).Error
	return items, err
}

func (r *QCRepository) FindItem(id types.SnowflakeID) (*models.ChecklistItem, error) {
	var item models.ChecklistItem
	if err := r.DB.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *QCRepository) UpdateItem(id types.SnowflakeID, fields map[string]interface{}) error {
	return r.DB.Model(&models.ChecklistItem{}).Where("id = ?", id).Updates(fields).Error
}

// OverwriteSessionItem menimpa item hanya kalau item milik sesi tersebut.
func (r *QCRepository) OverwriteSessionItem(sessionID, itemID types.SnowflakeID, status types.ItemStatus, checked bool, notes string) error {
	return r.DB.Model(&models.ChecklistItem{}).
		Where("id = ? AND qc_session_id = ?", itemID, sessionID).
		Updates(map[string]interface{}{
			"status":     status,
			"is_checked": checked,
			"notes":      notes,
		}).Error
}

func (r *QCRepository) CountFailedItems(sessionID types.SnowflakeID) (int64, error) {
	var n int64
	err := r.DB.Model(&models.ChecklistItem{}).
		Where("qc_session_id = ? AND status = ?", sessionID, types.ItemFail).
		Count(&n).Error
	return n, err
}

// DeleteSession menghapus item, attachment, lalu sesi.
func (r *QCRepository) DeleteSession(id types.SnowflakeID) error {
	if err := r.DB.Where("qc_session_id = ?", id).Delete(&models.ChecklistItem{}).Error; err != nil {
		return err
	}
	if err := r.DB.Where("qc_session_id = ?", id).Delete(&models.Attachment{}).Error; err != nil {
		return err
	}
	return r.DB.Delete(&models.QCSession{}, "id = ?", id).Error
}

func (r *QCRepository) filtered(f QCFilter) *gorm.DB {
	q := r.DB.Table("qc_sessions AS qr").
		Joins("JOIN laptops l ON l.id = qr.laptop_id").
		Joins("LEFT JOIN users u ON u.id = qr.qc_user_id")
	if strings.TrimSpace(f.Query) != "" {
		like := likePattern(f.Query)
		q = q.Where("LOWER(l.serial_number) LIKE ? ESCAPE '!' OR LOWER(COALESCE(l.model, '')) LIKE ? ESCAPE '!' OR LOWER(COALESCE(qr.qc_name, '')) LIKE ? ESCAPE '!'", like, like, like)
	}
	if f.Status != "" {
		q = q.Where("qr.overall_status = ?", f.Status)
	}
	if f.StartDate != nil {
		q = q.Where("qr.qc_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("qr.qc_date < ?", *f.EndDate)
	}
	if f.QCUserID != 0 {
		q = q.Where("qr.qc_user_id = ?", f.QCUserID)
	}
	return q
}

func (r *QCRepository) List(f QCFilter, p utils.Paging) ([]QCListItem, int64, error) {
	var total int64
	if err := r.filtered(f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := []QCListItem{}
	err := r.filtered(f).
		Select(`qr.id, qr.laptop_id, l.serial_number, l.model, l.brand, l.status AS laptop_status,
			qr.qc_user_id, u.full_name AS qc_user_name, qr.qc_name, qr.qc_room, qr.qc_line, qr.qc_table,
			qr.overall_status, qr.qc_date, qr.created_at`).
		Order("qr.qc_date DESC, qr.created_at DESC").
		Offset(p.Offset()).Limit(p.PerPage).
		Scan(&rows).Error
	return rows, total, err
}

func (r *QCRepository) CreateAttachment(a *models.Attachment) error {
	return r.DB.Create(a).Error
}

func (r *QCRepository) Attachments(sessionID types.SnowflakeID) ([]models.Attachment, error) {
	var list []models.Attachment
	err := r.DB.Where("qc_session_id = ?", sessionID).Order("created_at ASC").Find(&list).Error
	return list, err
}

func (r *QCRepository) FindAttachment(id types.SnowflakeID) (*models.Attachment, error) {
	var a models.Attachment
	if err := r.DB.First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *QCRepository) DeleteAttachment(id types.SnowflakeID) error {
	return r.DB.Delete(&models.Attachment{}, "id = ?", id).Error
}

type SessionSummary struct {
	ID            types.SnowflakeID    `json:"id"`
	QCDate        time.Time            `json:"qc_date"`
	OverallStatus types.SessionOutcome `json:"overall_status"`
	Notes         string               `json:"notes"`
	QCName        string               `json:"qc_name"`
	QCOfficer     *string              `json:"qc_officer"`
}

// SessionSummaries lists the sessions of a laptop, newest first.
func (r *QCRepository) SessionSummaries(laptopID types.SnowflakeID) ([]SessionSummary, error) {
	rows := []SessionSummary{}
	err := r.DB.Table("qc_sessions AS qr").
		Select("qr.id, qr.qc_date, qr.overall_status, qr.notes, qr.qc_name, u.full_name AS qc_officer").
		Joins("LEFT JOIN users u ON u.id = qr.qc_user_id").
		Where("qr.laptop_id = ?", laptopID).
		Order("qr.qc_date DESC, qr.created_at DESC").
		Scan(&rows).Error
	return rows, err
}
