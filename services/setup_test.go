package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"qc-laptop/config"
	"qc-laptop/database"
	"qc-laptop/migration"
	"qc-laptop/models"
	"qc-laptop/notification"
	"qc-laptop/repositories"
	"qc-laptop/storage"
	"qc-laptop/types"
	"qc-laptop/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB membuka SQLite in-memory yang terpisah per test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open(config.DatabaseConfig{
		Driver: "sqlite",
		Name:   fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	})
	require.NoError(t, err)
	require.NoError(t, migration.Migrate(db))
	t.Cleanup(func() { database.Close(db) })
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string, role types.Role) *models.User {
	t.Helper()
	hash, err := utils.HashPassword(username + "123")
	require.NoError(t, err)
	u := &models.User{
		Username: username,
		Password: hash,
		FullName: strings.ToUpper(username[:1]) + username[1:],
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, repositories.NewUserRepository(db).Create(u))
	return u
}

func actorOf(u *models.User) Actor {
	return Actor{UserID: u.ID, Name: u.FullName, Role: u.Role, IP: "127.0.0.1"}
}

type recordingNotifier struct {
	notices []notification.RepairNotice
}

func (r *recordingNotifier) NotifyRepair(n notification.RepairNotice) error {
	r.notices = append(r.notices, n)
	return nil
}

type fixture struct {
	db       *gorm.DB
	qc       *QCService
	laptops  *LaptopService
	history  *HistoryService
	notifier *recordingNotifier
	leader   Actor
	staff    Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	notifier := &recordingNotifier{}
	store := storage.NewLocalStore(t.TempDir(), 1<<20)
	return &fixture{
		db:       db,
		qc:       NewQCService(db, store, notifier, 2),
		laptops:  NewLaptopService(db),
		history:  NewHistoryService(db),
		notifier: notifier,
		leader:   actorOf(createUser(t, db, "leader", types.RoleLeader)),
		staff:    actorOf(createUser(t, db, "staff", types.RoleStaff)),
	}
}

func (f *fixture) start(t *testing.T, serial string) *StartSessionResult {
	t.Helper()
	res, err := f.qc.StartSession(StartSessionInput{SerialNumber: serial, Model: "ThinkPad X1", Brand: "Lenovo"}, f.staff)
	require.NoError(t, err)
	return res
}

func validSubmit(items ...SubmittedItem) SubmitInput {
	return SubmitInput{
		OfficerName:    "Budi",
		Room:           "R1",
		Line:           "L2",
		Table:          "T3",
		Notes:          "ok",
		ChecklistItems: items,
	}
}

func (f *fixture) historyOf(t *testing.T, laptopID types.SnowflakeID) []models.HistoryView {
	t.Helper()
	rows, err := f.history.ByLaptop(laptopID, 0, 0)
	require.NoError(t, err)
	return rows
}

func fixedClock(t time.Time) clock {
	return func() time.Time { return t }
}
