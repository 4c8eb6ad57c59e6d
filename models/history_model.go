package models

import (
	"errors"
	"qc-laptop/idgen"
	"qc-laptop/types"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// HistoryLog is append-only; rows disappear only together with their laptop.
type HistoryLog struct {
	ID             types.SnowflakeID   `json:"id" gorm:"primaryKey;autoIncrement:false"`
	LaptopID       *types.SnowflakeID  `json:"laptop_id" gorm:"index"`
	UserID         types.SnowflakeID   `json:"user_id" gorm:"index"`
	Action         string              `json:"action" gorm:"type:text;not null"`
	ActionType     types.ActionType    `json:"action_type" gorm:"size:30;not null;index"`
	PreviousStatus *types.LaptopStatus `json:"previous_status" gorm:"size:30"`
	NewStatus      *types.LaptopStatus `json:"new_status" gorm:"size:30"`
	Details        datatypes.JSON      `json:"details"`
	IPAddress      string              `json:"ip_address" gorm:"size:64"`
	CreatedAt      time.Time           `json:"created_at" gorm:"index"`
}

func (HistoryLog) TableName() string { return "history_logs" }

func (h *HistoryLog) Validate() error {
	if h.Action == "" {
		return errors.New("history action is required")
	}
	if !h.ActionType.Valid() {
		return errors.New("history action type is invalid")
	}
	return nil
}

func (h *HistoryLog) BeforeCreate(tx *gorm.DB) (err error) {
	if h.ID == 0 {
		h.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return h.Validate()
}

// HistoryView is a history row joined with user and laptop names.
type HistoryView struct {
	HistoryLog
	UserName     *string `json:"user_name"`
	UserRole     *string `json:"user_role"`
	SerialNumber *string `json:"serial_number"`
}
