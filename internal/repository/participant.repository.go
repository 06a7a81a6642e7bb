package repository

import (
	"errors"
	"time"

	"bora/internal/models"

	"gorm.io/gorm"
)

type ParticipantRepository interface {
	Create(participant *models.ActivityParticipant) error
	FindByActivityAndUser(activityID, userID string) (*models.ActivityParticipant, error)
	SetApproved(id string, approved bool) error
	Confirm(id string, at time.Time) error
	Delete(id string) error
	ListByActivity(activityID string) ([]models.ActivityParticipant, error)
	CountByActivity(activityID string) (int64, error)
	CountConfirmedByUser(userID string) (int64, error)
}

type participantRepository struct {
	db *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &participantRepository{db}
}

func (r *participantRepository) Create(participant *models.ActivityParticipant) error {
	return r.db.Create(participant).Error
}

func (r *participantRepository) FindByActivityAndUser(activityID, userID string) (*models.ActivityParticipant, error) {
	var participant models.ActivityParticipant
	err := r.db.Where("activity_id = ? AND user_id = ?", activityID, userID).
		First(&participant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *participantRepository) SetApproved(id string, approved bool) error {
	return r.db.Model(&models.ActivityParticipant{}).
		Where("id = ?", id).Update("approved", approved).Error
}

func (r *participantRepository) Confirm(id string, at time.Time) error {
	return r.db.Model(&models.ActivityParticipant{}).
		Where("id = ?", id).Update("confirmed_at", at).Error
}

func (r *participantRepository) Delete(id string) error {
	return r.db.Delete(&models.ActivityParticipant{}, "id = ?", id).Error
}

func (r *participantRepository) ListByActivity(activityID string) ([]models.ActivityParticipant, error) {
	var participants []models.ActivityParticipant
	err := r.db.Preload("User").
		Where("activity_id = ?", activityID).
		Order("created_at ASC").
		Find(&participants).Error
	return participants, err
}

func (r *participantRepository) CountByActivity(activityID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.ActivityParticipant{}).
		Where("activity_id = ?", activityID).Count(&count).Error
	return count, err
}

func (r *participantRepository) CountConfirmedByUser(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.ActivityParticipant{}).
		Where("user_id = ? AND confirmed_at IS NOT NULL", userID).Count(&count).Error
	return count, err
}
