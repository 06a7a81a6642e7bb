package repository

import (
	"errors"

	"bora/internal/models"

	"gorm.io/gorm"
)

type AchievementRepository interface {
	FindByName(name string) (*models.Achievement, error)
	Create(achievement *models.Achievement) error
	FindGrant(userID, achievementID string) (*models.UserAchievement, error)
	Grant(grant *models.UserAchievement) error
	ListGrantsByUser(userID string) ([]models.UserAchievement, error)
}

type achievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &achievementRepository{db}
}

func (r *achievementRepository) FindByName(name string) (*models.Achievement, error) {
	var achievement models.Achievement
	err := r.db.Where("name = ?", name).First(&achievement).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &achievement, nil
}

func (r *achievementRepository) Create(achievement *models.Achievement) error {
	return r.db.Create(achievement).Error
}

func (r *achievementRepository) FindGrant(userID, achievementID string) (*models.UserAchievement, error) {
	var grant models.UserAchievement
	err := r.db.Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		First(&grant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &grant, nil
}

func (r *achievementRepository) Grant(grant *models.UserAchievement) error {
	return r.db.Create(grant).Error
}

func (r *achievementRepository) ListGrantsByUser(userID string) ([]models.UserAchievement, error) {
	var grants []models.UserAchievement
	err := r.db.Preload("Achievement").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&grants).Error
	return grants, err
}
