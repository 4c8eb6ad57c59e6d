package models

import (
	"qc-laptop/idgen"
	"qc-laptop/types"
	"time"

	"gorm.io/gorm"
)

// QCSession adalah satu kali pemeriksaan QC untuk satu laptop.
type QCSession struct {
	ID            types.SnowflakeID    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	LaptopID      types.SnowflakeID    `json:"laptop_id" gorm:"not null;index"`
	QCUserID      types.SnowflakeID    `json:"qc_user_id" gorm:"index"`
	QCName        string               `json:"qc_name" gorm:"size:100"`
	QCRoom        string               `json:"qc_room" gorm:"size:100"`
	QCLine        string               `json:"qc_line" gorm:"size:50"`
	QCTable       string               `json:"qc_table" gorm:"size:50"`
	Notes         string               `json:"notes" gorm:"type:text"`
	OverallStatus types.SessionOutcome `json:"overall_status" gorm:"size:20;not null;default:pending;index"`
	QCDate        time.Time            `json:"qc_date" gorm:"index"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`

	ChecklistItems []ChecklistItem `json:"checklist_items,omitempty" gorm:"foreignKey:QCSessionID"`
	Attachments    []Attachment    `json:"attachments,omitempty" gorm:"foreignKey:QCSessionID"`
}

func (QCSession) TableName() string { return "qc_sessions" }

func (s *QCSession) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == 0 {
		s.ID = types.SnowflakeID(idgen.GenerateID())
	}
	if s.QCDate.IsZero() {
		s.QCDate = time.Now()
	}
	if s.OverallStatus == "" {
		s.OverallStatus = types.OutcomePending
	}
	return
}

type ChecklistItem struct {
	ID          types.SnowflakeID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	QCSessionID types.SnowflakeID `json:"qc_session_id" gorm:"not null;index"`
	Category    types.Category    `json:"category" gorm:"size:20;not null"`
	ItemName    string            `json:"item_name" gorm:"size:255;not null"`
	Position    int               `json:"position"`
	Status      types.ItemStatus  `json:"status" gorm:"size:20;not null;default:pending"`
	IsChecked   bool              `json:"is_checked" gorm:"not null;default:false"`
	Notes       *string           `json:"notes" gorm:"type:text"`
}

func (ChecklistItem) TableName() string { return "qc_checklist_items" }

func (i *ChecklistItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == 0 {
		i.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return
}

type Attachment struct {
	ID          types.SnowflakeID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	QCSessionID types.SnowflakeID `json:"qc_session_id" gorm:"not null;index"`
	FileName    string            `json:"file_name" gorm:"size:255"`
	FilePath    string            `json:"file_path" gorm:"size:500"`
	FileType    string            `json:"file_type" gorm:"size:100"`
	FileSize    int64             `json:"file_size"`
	Description *string           `json:"description" gorm:"type:text"`
	UploadedBy  types.SnowflakeID `json:"uploaded_by"`
	CreatedAt   time.Time         `json:"created_at"`
}

func (Attachment) TableName() string { return "attachments" }

func (a *Attachment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == 0 {
		a.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return
}
