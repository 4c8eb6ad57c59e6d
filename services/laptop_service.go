package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"qc-laptop/models"
	"qc-laptop/repositories"
	"qc-laptop/types"
	"qc-laptop/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const msgLaptopNotFound = "Laptop tidak ditemukan"

type LaptopService struct {
	DB  *gorm.DB
	now clock
}

func NewLaptopService(db *gorm.DB) *LaptopService {
	return &LaptopService{DB: db, now: utcNow}
}

type LaptopWithSessions struct {
	models.Laptop
	QCHistory []repositories.SessionSummary `json:"qc_history"`
}

// FindBySerial is an exact, case-sensitive lookup.
func (s *LaptopService) FindBySerial(serial string) (*LaptopWithSessions, error) {
	serial = strings.TrimSpace(serial)
	if serial == "" {
		return nil, utils.Validation("Serial number wajib diisi")
	}
	laptop, err := repositories.NewLaptopRepository(s.DB).FindBySerial(serial)
	if err != nil {
		return nil, utils.FromDB(err, msgLaptopNotFound)
	}
	sessions, err := repositories.NewQCRepository(s.DB).SessionSummaries(laptop.ID)
	if err != nil {
		return nil, utils.Storage(err)
	}
	return &LaptopWithSessions{Laptop: *laptop, QCHistory: sessions}, nil
}

type LaptopQuery struct {
	Search    string
	Status    string
	SortBy    string
	SortOrder string
}

func (s *LaptopService) Search(q LaptopQuery, p utils.Paging) ([]repositories.LaptopListItem, utils.Pagination, error) {
	p = p.Normalize(20, 100)
	filter := repositories.LaptopFilter{
		Query:     q.Search,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	}
	if q.Status != "" {
		st, err := types.ParseLaptopStatus(q.Status)
		if err != nil {
			return nil, utils.Pagination{}, utils.Validation(err.Error())
		}
		filter.Status = st
	}

	rows, total, err := repositories.NewLaptopRepository(s.DB).Search(filter, p)
	if err != nil {
		return nil, utils.Pagination{}, utils.Storage(err)
	}
	return rows, utils.BuildPagination(total, p), nil
}

type LaptopDetail struct {
	models.Laptop
	QCRecords []repositories.SessionSummary `json:"qc_records"`
	History   []models.HistoryView          `json:"history"`
}

func (s *LaptopService) Detail(id types.SnowflakeID) (*LaptopDetail, error) {
	laptop, err := repositories.NewLaptopRepository(s.DB).FindByID(id)
	if err != nil {
		return nil, utils.FromDB(err, msgLaptopNotFound)
	}
	sessions, err := repositories.NewQCRepository(s.DB).SessionSummaries(id)
	if err != nil {
		return nil, utils.Storage(err)
	}
	history, err := repositories.NewHistoryRepository(s.DB).ByLaptop(id, DefaultHistoryLimit, 0)
	if err != nil {
		return nil, utils.Storage(err)
	}
	return &LaptopDetail{Laptop: *laptop, QCRecords: sessions, History: history}, nil
}

type RegisterLaptopInput struct {
	SerialNumber   string          `json:"serial_number"`
	Model          string          `json:"model"`
	Brand          string          `json:"brand"`
	Specifications json.RawMessage `json:"specifications"`
}

func specsJSON(raw json.RawMessage) (datatypes.JSON, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if !json.Valid(trimmed) {
		return nil, utils.Validation("Specifications harus berupa JSON")
	}
	return datatypes.JSON(trimmed), nil
}

// Register mendaftarkan laptop baru dengan status pending.
func (s *LaptopService) Register(in RegisterLaptopInput, actor Actor) (*models.Laptop, error) {
	serial := strings.TrimSpace(in.SerialNumber)
	if serial == "" {
		return nil, utils.Validation("Serial number wajib diisi")
	}
	specs, err := specsJSON(in.Specifications)
	if err != nil {
		return nil, err
	}

	laptop := &models.Laptop{
		SerialNumber:   serial,
		Model:          optional(in.Model),
		Brand:          optional(in.Brand),
		Specifications: specs,
		Status:         types.LaptopPending,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		now := s.now()
		laptop.CreatedAt, laptop.UpdatedAt = now, now
		if err := repositories.NewLaptopRepository(tx).Create(laptop); err != nil {
			return err
		}
		return appendHistory(tx, actor, historyInput{
			LaptopID:   idPtr(laptop.ID),
			Action:     fmt.Sprintf("Laptop baru didaftarkan: %s", serial),
			ActionType: types.ActionStatusChange,
			New:        statusPtr(types.LaptopPending),
			Details: map[string]interface{}{
				"serial_number": serial,
				"model":         laptop.Model,
				"brand":         laptop.Brand,
			},
			At: now,
		})
	})
	if err != nil {
		if utils.IsKind(utils.FromDB(err, ""), utils.KindConflict) {
			return nil, utils.Conflict("Serial number sudah terdaftar")
		}
		return nil, utils.FromDB(err, msgLaptopNotFound)
	}
	return laptop, nil
}

// LaptopUpdate merges into the stored laptop; nil fields are left alone.
type LaptopUpdate struct {
	SerialNumber   *string         `json:"serial_number"`
	Model          *string         `json:"model"`
	Brand          *string         `json:"brand"`
	Specifications json.RawMessage `json:"specifications"`
	Status         *string         `json:"status"`
}

func derefOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

func (s *LaptopService) Update(id types.SnowflakeID, in LaptopUpdate, actor Actor) (*models.Laptop, error) {
	var newStatus *types.LaptopStatus
	if in.Status != nil && *in.Status != "" {
		st, err := types.ParseLaptopStatus(*in.Status)
		if err != nil {
			return nil, utils.Validation(err.Error())
		}
		newStatus = &st
	}
	specs, err := specsJSON(in.Specifications)
	if err != nil {
		return nil, err
	}

	var updated *models.Laptop
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		laptops := repositories.NewLaptopRepository(tx)
		now := s.now()

		current, err := laptops.FindByID(id)
		if err != nil {
			return err
		}

		fields := map[string]interface{}{}
		var changes []string

		if in.SerialNumber != nil {
			serial := strings.TrimSpace(*in.SerialNumber)
			if serial != "" && serial != current.SerialNumber {
				fields["serial_number"] = serial
				changes = append(changes, fmt.Sprintf("SN: %s → %s", current.SerialNumber, serial))
			}
		}
		if in.Model != nil && *in.Model != "" && *in.Model != derefOr(current.Model, "") {
			fields["model"] = *in.Model
			changes = append(changes, fmt.Sprintf("Model: %s → %s", derefOr(current.Model, "-"), *in.Model))
		}
		if in.Brand != nil && *in.Brand != "" && *in.Brand != derefOr(current.Brand, "") {
			fields["brand"] = *in.Brand
			changes = append(changes, fmt.Sprintf("Brand: %s → %s", derefOr(current.Brand, "-"), *in.Brand))
		}
		if specs != nil {
			fields["specifications"] = specs
		}
		if newStatus != nil && *newStatus != current.Status {
			fields["status"] = *newStatus
			changes = append(changes, fmt.Sprintf("Status: %s → %s", current.Status, *newStatus))
		}

		if len(fields) == 0 {
			updated = current
			return nil
		}
		fields["updated_at"] = now
		if err := laptops.Updates(id, fields); err != nil {
			return err
		}

		if len(changes) > 0 {
			after := current.Status
			if newStatus != nil {
				after = *newStatus
			}
			if err := appendHistory(tx, actor, historyInput{
				LaptopID:   idPtr(id),
				Action:     "Data laptop diubah: " + strings.Join(changes, ", "),
				ActionType: types.ActionStatusChange,
				Previous:   statusPtr(current.Status),
				New:        statusPtr(after),
				Details: map[string]interface{}{
					"old": map[string]interface{}{
						"serial_number": current.SerialNumber,
						"model":         current.Model,
						"brand":         current.Brand,
					},
					"new": map[string]interface{}{
						"serial_number": in.SerialNumber,
						"model":         in.Model,
						"brand":         in.Brand,
					},
				},
				At: now,
			}); err != nil {
				return err
			}
		}

		updated, err = laptops.FindByID(id)
		return err
	})
	if err != nil {
		if utils.IsKind(utils.FromDB(err, ""), utils.KindConflict) {
			return nil, utils.Conflict("Serial number sudah digunakan laptop lain")
		}
		return nil, utils.FromDB(err, msgLaptopNotFound)
	}
	return updated, nil
}
