package migration

import (
	"qc-laptop/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Laptop{},
		&models.QCSession{},
		&models.ChecklistItem{},
		&models.Attachment{},
		&models.HistoryLog{},
	)
}
