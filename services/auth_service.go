package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"qc-laptop/models"
	"qc-laptop/repositories"
	"qc-laptop/types"
	"qc-laptop/utils"

	"gorm.io/gorm"
)

type AuthService struct {
	DB     *gorm.DB
	Tokens *TokenManager
	now    clock
}

func NewAuthService(db *gorm.DB, tokens *TokenManager) *AuthService {
	return &AuthService{DB: db, Tokens: tokens, now: utcNow}
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

const msgBadCredentials = "Username atau password salah"

func (s *AuthService) Login(in LoginInput, ip string) (*LoginResult, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, utils.Validation("Username dan password wajib diisi")
	}

	user, err := repositories.NewUserRepository(s.DB).GetByUsername(username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.Unauthorized(msgBadCredentials)
	}
	if err != nil {
		return nil, utils.Storage(err)
	}
	if !user.IsActive || utils.CheckPassword(in.Password, user.Password) != nil {
		return nil, utils.Unauthorized(msgBadCredentials)
	}

	token, exp, err := s.Tokens.Generate(user)
	if err != nil {
		return nil, utils.Storage(err)
	}

	actor := Actor{UserID: user.ID, Name: user.FullName, Role: user.Role, IP: ip}
	if err := appendHistory(s.DB, actor, historyInput{
		Action:     fmt.Sprintf("User %s logged in", user.Username),
		ActionType: types.ActionStatusChange,
		Details:    map[string]interface{}{"action": "login"},
		At:         s.now(),
	}); err != nil {
		return nil, utils.Storage(err)
	}

	return &LoginResult{Token: token, ExpiresAt: exp, User: user}, nil
}

func (s *AuthService) Me(actor Actor) (*models.User, error) {
	user, err := repositories.NewUserRepository(s.DB).GetByID(actor.UserID)
	if err != nil {
		return nil, utils.FromDB(err, msgUserNotFound)
	}
	return user, nil
}

func (s *AuthService) Logout(actor Actor, username string) error {
	err := appendHistory(s.DB, actor, historyInput{
		Action:     fmt.Sprintf("User %s logged out", username),
		ActionType: types.ActionStatusChange,
		Details:    map[string]interface{}{"action": "logout"},
		At:         s.now(),
	})
	if err != nil {
		return utils.Storage(err)
	}
	return nil
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (s *AuthService) ChangePassword(actor Actor, in ChangePasswordInput) error {
	if in.CurrentPassword == "" || in.NewPassword == "" {
		return utils.Validation("Password lama dan baru wajib diisi")
	}
	if len(in.NewPassword) < utils.MinPasswordLength {
		return utils.Validation("Password baru minimal 6 karakter")
	}

	return utils.FromDB(s.DB.Transaction(func(tx *gorm.DB) error {
		users := repositories.NewUserRepository(tx)
		user, err := users.GetByID(actor.UserID)
		if err != nil {
			return err
		}
		if utils.CheckPassword(in.CurrentPassword, user.Password) != nil {
			return utils.Unauthorized("Password lama salah")
		}
		hash, err := utils.HashPassword(in.NewPassword)
		if err != nil {
			return err
		}
		return users.Updates(user.ID, map[string]interface{}{
			"password":   hash,
			"updated_at": s.now(),
		})
	}), msgUserNotFound)
}
