package repository

import (
	"errors"

	"bora/internal/models"

	"gorm.io/gorm"
)

type PreferenceRepository interface {
	ListByUser(userID string) ([]models.Preference, error)
	FindByUserAndType(userID, typeID string) (*models.Preference, error)
	Create(preference *models.Preference) error
}

type preferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db}
}

func (r *preferenceRepository) ListByUser(userID string) ([]models.Preference, error) {
	var preferences []models.Preference
	err := r.db.Preload("Type").Where("user_id = ?", userID).Find(&preferences).Error
	return preferences, err
}

func (r *preferenceRepository) FindByUserAndType(userID, typeID string) (*models.Preference, error) {
	var preference models.Preference
	err := r.db.Where("user_id = ? AND type_id = ?", userID, typeID).First(&preference).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &preference, nil
}

func (r *preferenceRepository) Create(preference *models.Preference) error {
	return r.db.Create(preference).Error
}
