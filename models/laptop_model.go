package models

import (
	"qc-laptop/idgen"
	"qc-laptop/types"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Laptop struct {
	ID             types.SnowflakeID  `json:"id" gorm:"primaryKey;autoIncrement:false"`
	SerialNumber   string             `json:"serial_number" gorm:"size:100;not null;uniqueIndex:idx_laptops_serial_number"`
	Model          *string            `json:"model" gorm:"size:100"`
	Brand          *string            `json:"brand" gorm:"size:100"`
	Specifications datatypes.JSON     `json:"specifications"`
	Status         types.LaptopStatus `json:"status" gorm:"size:30;not null;default:pending;index"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

func (Laptop) TableName() string { return "laptops" }

func (l *Laptop) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == 0 {
		l.ID = types.SnowflakeID(idgen.GenerateID())
	}
	if l.Status == "" {
		l.Status = types.LaptopPending
	}
	return
}
