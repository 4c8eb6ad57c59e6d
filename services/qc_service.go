package services

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"qc-laptop/models"
	"qc-laptop/notification"
	"qc-laptop/repositories"
	"qc-laptop/storage"
	"qc-laptop/types"
	"qc-laptop/utils"

	"gorm.io/gorm"
)

type AttachmentStore interface {
	Save(originalName, contentType string, r io.Reader) (storage.StoredFile, error)
	Remove(path string) error
}

type QCService struct {
	DB       *gorm.DB
	Store    AttachmentStore
	Notifier notification.Notifier
	MaxFiles int
	now      clock
}

func NewQCService(db *gorm.DB, store AttachmentStore, notifier notification.Notifier, maxFiles int) *QCService {
	if notifier == nil {
		notifier = notification.NopNotifier{}
	}
	return &QCService{DB: db, Store: store, Notifier: notifier, MaxFiles: maxFiles, now: utcNow}
}

const (
	msgSessionNotFound = "QC record tidak ditemukan"
	msgItemNotFound    = "Checklist item tidak ditemukan"
)

type StartSessionInput struct {
	SerialNumber string `json:"serial_number"`
	Model        string `json:"model"`
	Brand        string `json:"brand"`
}

type StartSessionResult struct {
	Laptop         models.Laptop          `json:"laptop"`
	Session        models.QCSession       `json:"qc_record"`
	ChecklistItems []models.ChecklistItem `json:"checklist_items"`
	IsNewLaptop    bool                   `json:"is_new_laptop"`
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// StartSession membuka sesi QC baru. Serial yang belum dikenal langsung
// didaftarkan dengan status dalam_qc.
func (s *QCService) StartSession(in StartSessionInput, actor Actor) (*StartSessionResult, error) {
	serial := strings.TrimSpace(in.SerialNumber)
	if serial == "" {
		return nil, utils.Validation("Serial number wajib diisi")
	}

	var result StartSessionResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		laptops := repositories.NewLaptopRepository(tx)
		qc := repositories.NewQCRepository(tx)
		now := s.now()

		var previous *types.LaptopStatus
		laptop, err := laptops.FindBySerial(serial)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			candidate := &models.Laptop{
				SerialNumber: serial,
				Model:        optional(in.Model),
				Brand:        optional(in.Brand),
				Status:       types.LaptopInQC,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			inserted, err := laptops.InsertIgnore(candidate)
			if err != nil {
				return err
			}
			// transaksi lain bisa saja menang; baca ulang versi yang tersimpan
			laptop, err = laptops.FindBySerialLocked(serial)
			if err != nil {
				return err
			}
			result.IsNewLaptop = inserted
			if !inserted {
				previous = statusPtr(laptop.Status)
			}
		case err != nil:
			return err
		default:
			previous = statusPtr(laptop.Status)
		}

		if !result.IsNewLaptop {
			if err := laptops.SetStatus(laptop.ID, types.LaptopInQC, now); err != nil {
				return err
			}
			laptop.Status = types.LaptopInQC
			laptop.UpdatedAt = now
		}

		session := &models.QCSession{
			LaptopID:      laptop.ID,
			QCUserID:      actor.UserID,
			OverallStatus: types.OutcomePending,
			QCDate:        now,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := qc.CreateSession(session); err != nil {
			return err
		}

		items := SeedChecklist(session.ID)
		if err := qc.CreateItems(items); err != nil {
			return err
		}

		if err := appendHistory(tx, actor, historyInput{
			LaptopID:   idPtr(laptop.ID),
			Action:     fmt.Sprintf("QC dimulai oleh %s", actor.Name),
			ActionType: types.ActionQCStart,
			Previous:   previous,
			New:        statusPtr(types.LaptopInQC),
			Details: map[string]interface{}{
				"qc_record_id":  session.ID,
				"is_new_laptop": result.IsNewLaptop,
			},
			At: now,
		}); err != nil {
			return err
		}

		result.Laptop = *laptop
		result.Session = *session
		result.ChecklistItems = items
		return nil
	})
	if err != nil {
		return nil, utils.FromDB(err, "Laptop tidak ditemukan")
	}
	return &result, nil
}

// ItemUpdate is a partial update; nil fields keep their stored value.
type ItemUpdate struct {
	IsChecked *bool   `json:"is_checked"`
	Status    *string `json:"status"`
	Notes     *string `json:"notes"`
}

func (s *QCService) UpdateChecklistItem(itemID types.SnowflakeID, in ItemUpdate) (*models.ChecklistItem, error) {
	fields := map[string]interface{}{}
	if in.IsChecked != nil {
		fields["is_checked"] = *in.IsChecked
	}
	if in.Status != nil {
		st, err := types.ParseItemStatus(*in.Status)
		if err != nil {
			return nil, utils.Validation(err.Error())
		}
		fields["status"] = st
	}
	if in.Notes != nil {
		fields["notes"] = *in.Notes
	}

	var item *models.ChecklistItem
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		qc := repositories.NewQCRepository(tx)
		if _, err := qc.FindItem(itemID); err != nil {
			return err
		}
		if len(fields) > 0 {
			if err := qc.UpdateItem(itemID, fields); err != nil {
				return err
			}
		}
		var err error
		item, err = qc.FindItem(itemID)
		return err
	})
	if err != nil {
		return nil, utils.FromDB(err, msgItemNotFound)
	}
	return item, nil
}

type SubmittedItem struct {
	ID        types.SnowflakeID `json:"id"`
	IsChecked bool              `json:"is_checked"`
	Status    string            `json:"status"`
	Notes     string            `json:"notes"`
}

type SubmitInput struct {
	OfficerName    string          `json:"qc_name"`
	Room           string          `json:"qc_room"`
	Line           string          `json:"qc_line"`
	Table          string          `json:"qc_table"`
	Notes          string          `json:"notes"`
	ChecklistItems []SubmittedItem `json:"checklist_items"`
}

type SubmitResult struct {
	OverallStatus types.SessionOutcome `json:"overall_status"`
	LaptopStatus  types.LaptopStatus   `json:"laptop_status"`
	HasFailures   bool                 `json:"has_failures"`
	IsEdit        bool                 `json:"is_edit"`
}

// officerFields adalah salinan field petugas yang sudah di-trim.
type officerFields struct {
	Name  string `json:"qc_name" validate:"required,max=100"`
	Room  string `json:"qc_room" validate:"required,max=100"`
	Line  string `json:"qc_line" validate:"required,max=50"`
	Table string `json:"qc_table" validate:"required,max=50"`
}

func (in SubmitInput) officer() officerFields {
	return officerFields{
		Name:  strings.TrimSpace(in.OfficerName),
		Room:  strings.TrimSpace(in.Room),
		Line:  strings.TrimSpace(in.Line),
		Table: strings.TrimSpace(in.Table),
	}
}

func (in SubmitInput) validate() (map[types.SnowflakeID]types.ItemStatus, error) {
	if err := utils.ValidateStruct(in.officer()); err != nil {
		var appErr *utils.AppError
		if errors.As(err, &appErr) && len(appErr.Fields) > 0 {
			return nil, utils.ValidationFields("Nama, Ruangan, Line, dan Meja wajib diisi", appErr.Fields)
		}
		return nil, err
	}

	statuses := make(map[types.SnowflakeID]types.ItemStatus, len(in.ChecklistItems))
	for _, item := range in.ChecklistItems {
		st, err := types.ParseItemStatus(item.Status)
		if err != nil {
			return nil, utils.Validation(err.Error())
		}
		statuses[item.ID] = st
	}
	return statuses, nil
}

// SubmitSession menyimpan hasil QC. Sesi yang sudah pass/fail boleh
// di-submit ulang; hasilnya dicatat sebagai qc_edit.
func (s *QCService) SubmitSession(sessionID types.SnowflakeID, in SubmitInput, actor Actor) (*SubmitResult, error) {
	statuses, err := in.validate()
	if err != nil {
		return nil, err
	}

	var (
		result SubmitResult
		notice *notification.RepairNotice
	)
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		qc := repositories.NewQCRepository(tx)
		laptops := repositories.NewLaptopRepository(tx)
		now := s.now()

		session, err := qc.FindSessionForUpdate(sessionID)
		if err != nil {
			return err
		}
		laptop, err := laptops.FindByID(session.LaptopID)
		if err != nil {
			return err
		}

		for _, item := range in.ChecklistItems {
			if item.ID == 0 {
				continue
			}
			if err := qc.OverwriteSessionItem(sessionID, item.ID, statuses[item.ID], item.IsChecked, item.Notes); err != nil {
				return err
			}
		}

		failed, err := qc.CountFailedItems(sessionID)
		if err != nil {
			return err
		}

		overall := types.OutcomePass
		if failed > 0 {
			overall = types.OutcomeFail
		}
		laptopStatus := overall.LaptopStatus()
		isEdit := session.OverallStatus.Terminal()

		o := in.officer()
		officer, room, line, table := o.Name, o.Room, o.Line, o.Table

		if err := qc.UpdateSession(sessionID, map[string]interface{}{
			"qc_name":        officer,
			"qc_room":        room,
			"qc_line":        line,
			"qc_table":       table,
			"notes":          in.Notes,
			"overall_status": overall,
			"updated_at":     now,
		}); err != nil {
			return err
		}
		if err := laptops.SetStatus(laptop.ID, laptopStatus, now); err != nil {
			return err
		}

		actionType, verb := types.ActionQCComplete, "selesai"
		if isEdit {
			actionType, verb = types.ActionQCEdit, "diedit"
		}
		label := "LULUS"
		if overall == types.OutcomeFail {
			label = "PERLU PERBAIKAN"
		}
		if err := appendHistory(tx, actor, historyInput{
			LaptopID:   idPtr(laptop.ID),
			Action:     fmt.Sprintf("QC %s - %s", verb, label),
			ActionType: actionType,
			Previous:   statusPtr(laptop.Status),
			New:        statusPtr(laptopStatus),
			Details: map[string]interface{}{
				"qc_record_id":       sessionID,
				"overall_status":     overall,
				"failed_items_count": failed,
				"qc_name":            officer,
				"qc_room":            room,
				"qc_line":            line,
				"qc_table":           table,
			},
			At: now,
		}); err != nil {
			return err
		}

		result = SubmitResult{
			OverallStatus: overall,
			LaptopStatus:  laptopStatus,
			HasFailures:   failed > 0,
			IsEdit:        isEdit,
		}

		if laptopStatus == types.LaptopNeedsRepair {
			n, err := repairNotice(qc, laptop, sessionID, officer, room, line, table, in.Notes, now)
			if err != nil {
				return err
			}
			notice = n
		}
		return nil
	})
	if err != nil {
		return nil, utils.FromDB(err, msgSessionNotFound)
	}

	if notice != nil {
		if err := s.Notifier.NotifyRepair(*notice); err != nil {
			log.Println("Gagal mengirim notifikasi perbaikan:", err)
		}
	}
	return &result, nil
}

func repairNotice(qc *repositories.QCRepository, laptop *models.Laptop, sessionID types.SnowflakeID,
	officer, room, line, table, notes string, at time.Time) (*notification.RepairNotice, error) {
	items, err := qc.Items(sessionID)
	if err != nil {
		return nil, err
	}
	var failed []string
	for _, it := range items {
		if it.Status == types.ItemFail {
			failed = append(failed, it.ItemName)
		}
	}
	n := &notification.RepairNotice{
		SerialNumber: laptop.SerialNumber,
		OfficerName:  officer,
		Room:         room,
		Line:         line,
		Table:        table,
		Notes:        notes,
		FailedItems:  failed,
		At:           at,
	}
	if laptop.Model != nil {
		n.Model = *laptop.Model
	}
	if laptop.Brand != nil {
		n.Brand = *laptop.Brand
	}
	return n, nil
}

// DeleteSession menghapus sesi beserta item dan attachment-nya. Kalau itu
// sesi terakhir, laptop dan history-nya ikut dihapus.
func (s *QCService) DeleteSession(sessionID types.SnowflakeID, actor Actor) error {
	if !actor.IsLeader() {
		return utils.Forbidden("Hanya leader yang dapat menghapus QC record")
	}

	var blobs []string
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		qc := repositories.NewQCRepository(tx)

		session, err := qc.FindSessionForUpdate(sessionID)
		if err != nil {
			return err
		}
		attachments, err := qc.Attachments(sessionID)
		if err != nil {
			return err
		}
		for _, a := range attachments {
			blobs = append(blobs, a.FilePath)
		}

		if err := qc.DeleteSession(sessionID); err != nil {
			return err
		}

		remaining, err := qc.CountSessionsByLaptop(session.LaptopID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			if err := repositories.NewHistoryRepository(tx).DeleteByLaptop(session.LaptopID); err != nil {
				return err
			}
			if err := repositories.NewLaptopRepository(tx).Delete(session.LaptopID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return utils.FromDB(err, msgSessionNotFound)
	}

	s.removeBlobs(blobs)
	return nil
}

func (s *QCService) removeBlobs(paths []string) {
	if s.Store == nil {
		return
	}
	for _, p := range paths {
		if err := s.Store.Remove(p); err != nil {
			log.Printf("Gagal menghapus file %s: %v", p, err)
		}
	}
}

type SessionDetail struct {
	models.QCSession
	SerialNumber   string                 `json:"serial_number"`
	Model          *string                `json:"model"`
	Brand          *string                `json:"brand"`
	LaptopStatus   types.LaptopStatus     `json:"laptop_status"`
	QCOfficer      *string                `json:"qc_officer"`
	ChecklistItems []models.ChecklistItem `json:"checklist_items"`
	Attachments    []models.Attachment    `json:"attachments"`
}

// GetSession dipakai untuk halaman detail dan form edit.
func (s *QCService) GetSession(sessionID types.SnowflakeID) (*SessionDetail, error) {
	qc := repositories.NewQCRepository(s.DB)

	session, err := qc.FindSession(sessionID)
	if err != nil {
		return nil, utils.FromDB(err, msgSessionNotFound)
	}
	laptop, err := repositories.NewLaptopRepository(s.DB).FindByID(session.LaptopID)
	if err != nil {
		return nil, utils.FromDB(err, msgSessionNotFound)
	}
	items, err := qc.Items(sessionID)
	if err != nil {
		return nil, utils.Storage(err)
	}
	attachments, err := qc.Attachments(sessionID)
	if err != nil {
		return nil, utils.Storage(err)
	}

	detail := &SessionDetail{
		QCSession:      *session,
		SerialNumber:   laptop.SerialNumber,
		Model:          laptop.Model,
		Brand:          laptop.Brand,
		LaptopStatus:   laptop.Status,
		ChecklistItems: items,
		Attachments:    attachments,
	}
	if user, err := repositories.NewUserRepository(s.DB).GetByID(session.QCUserID); err == nil {
		detail.QCOfficer = &user.FullName
	}
	return detail, nil
}

type SessionQuery struct {
	Search    string
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
	QCUserID  types.SnowflakeID
}

func (s *QCService) ListSessions(q SessionQuery, p utils.Paging) ([]repositories.QCListItem, utils.Pagination, error) {
	p = p.Normalize(20, 100)
	filter := repositories.QCFilter{
		Query:     q.Search,
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		QCUserID:  q.QCUserID,
	}
	if q.Status != "" {
		st, err := types.ParseSessionOutcome(q.Status)
		if err != nil {
			return nil, utils.Pagination{}, utils.Validation(err.Error())
		}
		filter.Status = st
	}

	rows, total, err := repositories.NewQCRepository(s.DB).List(filter, p)
	if err != nil {
		return nil, utils.Pagination{}, utils.Storage(err)
	}
	return rows, utils.BuildPagination(total, p), nil
}

// UploadAttachments menyimpan foto lalu mencatatnya ke sesi. File yang
// sudah tersimpan dihapus lagi kalau ada langkah yang gagal.
func (s *QCService) UploadAttachments(sessionID types.SnowflakeID, files []*multipart.FileHeader, description string, actor Actor) ([]models.Attachment, error) {
	if len(files) == 0 {
		return nil, utils.Validation("Tidak ada file yang diupload")
	}
	if s.MaxFiles > 0 && len(files) > s.MaxFiles {
		return nil, utils.Validation(fmt.Sprintf("Maksimal %d file per upload", s.MaxFiles))
	}
	for _, fh := range files {
		if !storage.AllowedType(fh.Header.Get("Content-Type")) {
			return nil, utils.Validation(storage.ErrUnsupportedType.Error())
		}
	}

	if _, err := repositories.NewQCRepository(s.DB).FindSession(sessionID); err != nil {
		return nil, utils.FromDB(err, msgSessionNotFound)
	}

	var stored []storage.StoredFile
	cleanup := func() {
		paths := make([]string, len(stored))
		for i, f := range stored {
			paths[i] = f.Path
		}
		s.removeBlobs(paths)
	}

	for _, fh := range files {
		f, err := s.saveFile(fh)
		if err != nil {
			cleanup()
			if errors.Is(err, storage.ErrTooLarge) || errors.Is(err, storage.ErrUnsupportedType) {
				return nil, utils.Validation(err.Error())
			}
			return nil, utils.Storage(err)
		}
		stored = append(stored, f)
	}

	attachments := make([]models.Attachment, 0, len(stored))
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		qc := repositories.NewQCRepository(tx)
		now := s.now()
		for _, f := range stored {
			a := models.Attachment{
				QCSessionID: sessionID,
				FileName:    f.Name,
				FilePath:    f.Path,
				FileType:    f.ContentType,
				FileSize:    f.Size,
				Description: optional(description),
				UploadedBy:  actor.UserID,
				CreatedAt:   now,
			}
			if err := qc.CreateAttachment(&a); err != nil {
				return err
			}
			attachments = append(attachments, a)
		}
		return nil
	})
	if err != nil {
		cleanup()
		return nil, utils.FromDB(err, msgSessionNotFound)
	}
	return attachments, nil
}

func (s *QCService) saveFile(fh *multipart.FileHeader) (storage.StoredFile, error) {
	src, err := fh.Open()
	if err != nil {
		return storage.StoredFile{}, err
	}
	defer src.Close()
	return s.Store.Save(fh.Filename, fh.Header.Get("Content-Type"), src)
}

func (s *QCService) DeleteAttachment(attachmentID types.SnowflakeID) error {
	var path string
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		qc := repositories.NewQCRepository(tx)
		a, err := qc.FindAttachment(attachmentID)
		if err != nil {
			return err
		}
		path = a.FilePath
		return qc.DeleteAttachment(attachmentID)
	})
	if err != nil {
		return utils.FromDB(err, "Attachment tidak ditemukan")
	}
	s.removeBlobs([]string{path})
	return nil
}
