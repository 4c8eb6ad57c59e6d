package models

import (
	"qc-laptop/idgen"
	"qc-laptop/types"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        types.SnowflakeID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Username  string            `json:"username" gorm:"size:50;not null;uniqueIndex"`
	Password  string            `json:"-" gorm:"size:255;not null"`
	FullName  string            `json:"full_name" gorm:"size:100;not null"`
	Role      types.Role        `json:"role" gorm:"size:20;not null"`
	Email     *string           `json:"email" gorm:"size:100"`
	IsActive  bool              `json:"is_active" gorm:"not null;default:true"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == 0 {
		u.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return
}
