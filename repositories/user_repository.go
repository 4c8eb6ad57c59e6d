package repositories

import (
	"qc-laptop/models"
	"qc-laptop/types"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(DB *gorm.DB) *UserRepository {
	return &UserRepository{DB: DB}
}

// Create user
func (r *UserRepository) Create(user *models.User) error {
	return r.DB.Create(user).Error
}

// Get user by ID
func (r *UserRepository) GetByID(id types.SnowflakeID) (*models.User, error) {
	var user models.User
	if err := r.DB.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Get all users
func (r *UserRepository) GetAll() ([]models.User, error) {
	users := []models.User{}
	err := r.DB.Order("full_name ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) ActiveByRole(role types.Role) ([]models.User, error) {
	users := []models.User{}
	err := r.DB.Where("role = ? AND is_active = ?", role, true).Order("full_name ASC").Find(&users).Error
	return users, err
}

// Update user
func (r *UserRepository) Updates(id types.SnowflakeID, fields map[string]interface{}) error {
	return r.DB.Model(&models.User{}).Where("id = ?", id).Updates(fields).Error
}
