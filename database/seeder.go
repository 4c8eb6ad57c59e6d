package database

import (
	"errors"
	"log"

	"qc-laptop/models"
	"qc-laptop/types"
	"qc-laptop/utils"

	"gorm.io/gorm"
)

type demoUser struct {
	Username string
	Password string
	FullName string
	Role     types.Role
	Email    string
}

var demoUsers = []demoUser{
	{Username: "leader", Password: "leader123", FullName: "QC Leader", Role: types.RoleLeader, Email: "leader@qc.local"},
	{Username: "staff", Password: "staff123", FullName: "QC Staff", Role: types.RoleStaff, Email: "staff@qc.local"},
}

// SeedDemoUsers membuat user demo, atau me-reset password dan role kalau sudah ada.
func SeedDemoUsers(db *gorm.DB) error {
	for _, du := range demoUsers {
		hash, err := utils.HashPassword(du.Password)
		if err != nil {
			return err
		}
		email := du.Email

		var existing models.User
		err = db.Where("username = ?", du.Username).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user := models.User{
				Username: du.Username,
				Password: hash,
				FullName: du.FullName,
				Role:     du.Role,
				Email:    &email,
				IsActive: true,
			}
			if err := db.Create(&user).Error; err != nil {
				return err
			}
			log.Println("Insert user:", du.Username)
		case err != nil:
			return err
		default:
			if err := db.Model(&existing).Updates(map[string]interface{}{
				"password":  hash,
				"role":      du.Role,
				"full_name": du.FullName,
				"is_active": true,
			}).Error; err != nil {
				return err
			}
			log.Println("Refresh user:", du.Username)
		}
	}
	return nil
}
