package services

import (
	"encoding/json"
	"time"

	"qc-laptop/models"
	"qc-laptop/repositories"
	"qc-laptop/types"
	"qc-laptop/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

type historyInput struct {
	LaptopID   *types.SnowflakeID
	Action     string
	ActionType types.ActionType
	Previous   *types.LaptopStatus
	New        *types.LaptopStatus
	Details    map[string]interface{}
	At         time.Time
}

// appendHistory menulis satu entry history di dalam tx pemanggil.
func appendHistory(tx *gorm.DB, actor Actor, in historyInput) error {
	details := datatypes.JSON("{}")
	if in.Details != nil {
		raw, err := json.Marshal(in.Details)
		if err != nil {
			return err
		}
		details = raw
	}
	entry := &models.HistoryLog{
		LaptopID:       in.LaptopID,
		UserID:         actor.UserID,
		Action:         in.Action,
		ActionType:     in.ActionType,
		PreviousStatus: in.Previous,
		NewStatus:      in.New,
		Details:        details,
		IPAddress:      actor.IP,
		CreatedAt:      in.At,
	}
	return repositories.NewHistoryRepository(tx).Append(entry)
}

func statusPtr(s types.LaptopStatus) *types.LaptopStatus { return &s }

func idPtr(id types.SnowflakeID) *types.SnowflakeID { return &id }

type HistoryService struct {
	DB *gorm.DB
}

func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{DB: db}
}

// ByLaptop returns entries of one laptop, newest first.
func (s *HistoryService) ByLaptop(laptopID types.SnowflakeID, limit, offset int) ([]models.HistoryView, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := repositories.NewHistoryRepository(s.DB).ByLaptop(laptopID, limit, offset)
	if err != nil {
		return nil, utils.Storage(err)
	}
	return rows, nil
}

type HistoryQuery struct {
	StartDate  *time.Time
	EndDate    *time.Time
	UserID     types.SnowflakeID
	LaptopID   types.SnowflakeID
	ActionType string
}

func (s *HistoryService) Query(q HistoryQuery, p utils.Paging) ([]models.HistoryView, utils.Pagination, error) {
	p = p.Normalize(DefaultHistoryLimit, MaxHistoryLimit)
	filter := repositories.HistoryFilter{
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		UserID:    q.UserID,
		LaptopID:  q.LaptopID,
	}
	if q.ActionType != "" {
		at, err := types.ParseActionType(q.ActionType)
		if err != nil {
			return nil, utils.Pagination{}, utils.Validation(err.Error())
		}
		filter.ActionType = at
	}
	if q.StartDate != nil && q.EndDate != nil && q.EndDate.Before(*q.StartDate) {
		return nil, utils.Pagination{}, utils.Validation("Tanggal akhir harus setelah tanggal awal")
	}

	rows, total, err := repositories.NewHistoryRepository(s.DB).Query(filter, p)
	if err != nil {
		return nil, utils.Pagination{}, utils.Storage(err)
	}
	return rows, utils.BuildPagination(total, p), nil
}
