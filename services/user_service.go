package services

import (
	"strings"

	"qc-laptop/models"
	"qc-laptop/repositories"
	"qc-laptop/types"
	"qc-laptop/utils"

	"gorm.io/gorm"
)

const msgUserNotFound = "User tidak ditemukan"

type UserService struct {
	DB  *gorm.DB
	now clock
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db, now: utcNow}
}

func (s *UserService) GetAllUsers() ([]models.User, error) {
	users, err := repositories.NewUserRepository(s.DB).GetAll()
	if err != nil {
		return nil, utils.Storage(err)
	}
	return users, nil
}

func (s *UserService) GetUserByID(id types.SnowflakeID) (*models.User, error) {
	user, err := repositories.NewUserRepository(s.DB).GetByID(id)
	if err != nil {
		return nil, utils.FromDB(err, msgUserNotFound)
	}
	return user, nil
}

func (s *UserService) ActiveByRole(raw string) ([]models.User, error) {
	role, err := types.ParseRole(raw)
	if err != nil {
		return nil, utils.Validation("Role tidak valid")
	}
	users, err := repositories.NewUserRepository(s.DB).ActiveByRole(role)
	if err != nil {
		return nil, utils.Storage(err)
	}
	return users, nil
}

type CreateUserInput struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required,max=100"`
	Role     string `json:"role" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
}

func (s *UserService) CreateUser(in CreateUserInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.FullName = strings.TrimSpace(in.FullName)
	if in.Username == "" || in.Password == "" || in.FullName == "" || in.Role == "" {
		return nil, utils.Validation("Username, password, nama lengkap, dan role wajib diisi")
	}
	role, err := types.ParseRole(in.Role)
	if err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, utils.Storage(err)
	}
	now := s.now()
	user := &models.User{
		Username:  in.Username,
		Password:  hash,
		FullName:  in.FullName,
		Role:      role,
		Email:     optional(in.Email),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repositories.NewUserRepository(s.DB).Create(user); err != nil {
		if utils.IsKind(utils.FromDB(err, ""), utils.KindConflict) {
			return nil, utils.Conflict("Username sudah digunakan")
		}
		return nil, utils.Storage(err)
	}
	return user, nil
}

type UpdateUserInput struct {
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
	Email    *string `json:"email"`
	IsActive *bool   `json:"is_active"`
}

func (s *UserService) UpdateUser(id types.SnowflakeID, in UpdateUserInput) (*models.User, error) {
	fields := map[string]interface{}{}
	if in.FullName != nil && strings.TrimSpace(*in.FullName) != "" {
		fields["full_name"] = strings.TrimSpace(*in.FullName)
	}
	if in.Role != nil && *in.Role != "" {
		role, err := types.ParseRole(*in.Role)
		if err != nil {
			return nil, utils.Validation(err.Error())
		}
		fields["role"] = role
	}
	if in.Email != nil {
		fields["email"] = optional(*in.Email)
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}

	var user *models.User
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		users := repositories.NewUserRepository(tx)
		if _, err := users.GetByID(id); err != nil {
			return err
		}
		if len(fields) > 0 {
			fields["updated_at"] = s.now()
			if err := users.Updates(id, fields); err != nil {
				return err
			}
		}
		var err error
		user, err = users.GetByID(id)
		return err
	})
	if err != nil {
		return nil, utils.FromDB(err, msgUserNotFound)
	}
	return user, nil
}

func (s *UserService) ResetPassword(id types.SnowflakeID, newPassword string) error {
	if len(newPassword) < utils.MinPasswordLength {
		return utils.Validation("Password baru minimal 6 karakter")
	}
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return utils.Storage(err)
	}
	return utils.FromDB(s.DB.Transaction(func(tx *gorm.DB) error {
		users := repositories.NewUserRepository(tx)
		if _, err := users.GetByID(id); err != nil {
			return err
		}
		return users.Updates(id, map[string]interface{}{"password": hash, "updated_at": s.now()})
	}), msgUserNotFound)
}

// Deactivate menonaktifkan user; akun sendiri tidak bisa dinonaktifkan.
func (s *UserService) Deactivate(id types.SnowflakeID, actor Actor) error {
	if id == actor.UserID {
		return utils.Validation("Tidak dapat menghapus akun sendiri")
	}
	return utils.FromDB(s.DB.Transaction(func(tx *gorm.DB) error {
		users := repositories.NewUserRepository(tx)
		if _, err := users.GetByID(id); err != nil {
			return err
		}
		return users.Updates(id, map[string]interface{}{"is_active": false, "updated_at": s.now()})
	}), msgUserNotFound)
}
