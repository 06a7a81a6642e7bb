package repository

import (
	"errors"

	"bora/internal/models"

	"gorm.io/gorm"
)

type ActivityTypeRepository interface {
	FindAll() ([]models.ActivityType, error)
	FindByID(id string) (*models.ActivityType, error)
	Create(activityType *models.ActivityType) error
}

type activityTypeRepository struct {
	db *gorm.DB
}

func NewActivityTypeRepository(db *gorm.DB) ActivityTypeRepository {
	return &activityTypeRepository{db}
}

func (r *activityTypeRepository) FindAll() ([]models.ActivityType, error) {
	var types []models.ActivityType
	err := r.db.Order("name ASC").Find(&types).Error
	return types, err
}

func (r *activityTypeRepository) FindByID(id string) (*models.ActivityType, error) {
	var activityType models.ActivityType
	err := r.db.Where("id = ?", id).First(&activityType).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &activityType, nil
}

func (r *activityTypeRepository) Create(activityType *models.ActivityType) error {
	return r.db.Create(activityType).Error
}
