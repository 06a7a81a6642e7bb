package repository

import (
	"errors"
	"time"

	"bora/internal/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *models.User) error
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindByCPF(cpf string) (*models.User, error)
	Update(user *models.User) error
	UpdateAvatar(id, avatar string) error
	Deactivate(id string, at time.Time) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Find* return (nil, nil) when no row matches so callers can decide between
// NotFound and Conflict without inspecting gorm errors.
func (r *userRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByCPF(cpf string) (*models.User, error) {
	var user models.User
	err := r.db.Where("cpf = ?", cpf).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) UpdateAvatar(id, avatar string) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("avatar", avatar).Error
}

func (r *userRepository) Deactivate(id string, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("deleted_at", at).Error
}
