package repository

import (
	"errors"
	"fmt"
	"time"

	"bora/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ActivityFilter narrows and orders activity listings. OrderBy must already be
// a column name vetted by the caller; TypeIDs empty means all types.
type ActivityFilter struct {
	TypeIDs []string
	OrderBy string
	Order   string
	Offset  int
	Limit   int
}

type ActivityRepository interface {
	Create(activity *models.Activity) error
	// FindByID loads the activity with type, creator and address regardless
	// of soft-deletion; callers decide whether a deleted row is visible.
	FindByID(id string) (*models.Activity, error)
	Update(activity *models.Activity) error
	UpdateAddress(activityID string, latitude, longitude float64) error
	Conclude(id string, at time.Time) error
	SoftDelete(id string, at time.Time) error
	CountByCreator(creatorID string) (int64, error)
	CountConcludedByCreator(creatorID string) (int64, error)
	ListOpen(filter ActivityFilter) ([]models.Activity, error)
	CountOpen(typeIDs []string) (int64, error)
	ListByCreator(creatorID string, offset, limit int) ([]models.Activity, error)
	CountVisibleByCreator(creatorID string) (int64, error)
	ListParticipating(userID string, offset, limit int) ([]models.Activity, error)
	CountParticipating(userID string) (int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db}
}

func (r *activityRepository) Create(activity *models.Activity) error {
	// gorm persists the has-one address in the same insert batch, which
	// keeps activity and address creation atomic.
	return r.db.Create(activity).Error
}

func (r *activityRepository) FindByID(id string) (*models.Activity, error) {
	var activity models.Activity
	err := r.db.Preload("Type").Preload("Creator").Preload("Address").
		Where("id = ?", id).First(&activity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *activityRepository) Update(activity *models.Activity) error {
	return r.db.Omit(clause.Associations).Save(activity).Error
}

func (r *activityRepository) UpdateAddress(activityID string, latitude, longitude float64) error {
	return r.db.Model(&models.ActivityAddress{}).
		Where("activity_id = ?", activityID).
		Updates(map[string]interface{}{"latitude": latitude, "longitude": longitude}).Error
}

func (r *activityRepository) Conclude(id string, at time.Time) error {
	return r.db.Model(&models.Activity{}).Where("id = ?", id).Update("completed_at", at).Error
}

func (r *activityRepository) SoftDelete(id string, at time.Time) error {
	return r.db.Model(&models.Activity{}).Where("id = ?", id).Update("deleted_at", at).Error
}

func (r *activityRepository) CountByCreator(creatorID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Activity{}).Where("creator_id = ?", creatorID).Count(&count).Error
	return count, err
}

func (r *activityRepository) CountConcludedByCreator(creatorID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Activity{}).
		Where("creator_id = ? AND completed_at IS NOT NULL", creatorID).
		Count(&count).Error
	return count, err
}

func (r *activityRepository) openQuery(typeIDs []string) *gorm.DB {
	query := r.db.Model(&models.Activity{}).
		Where("deleted_at IS NULL AND completed_at IS NULL")
	if len(typeIDs) > 0 {
		query = query.Where("type_id IN ?", typeIDs)
	}
	return query
}

func (r *activityRepository) ListOpen(filter ActivityFilter) ([]models.Activity, error) {
	query := r.openQuery(filter.TypeIDs).
		Preload("Type").Preload("Creator").Preload("Address")
	if filter.OrderBy != "" {
		query = query.Order(fmt.Sprintf("%s %s", filter.OrderBy, filter.Order))
	}
	if filter.Limit > 0 {
		query = query.Offset(filter.Offset).Limit(filter.Limit)
	}
	var activities []models.Activity
	err := query.Find(&activities).Error
	return activities, err
}

func (r *activityRepository) CountOpen(typeIDs []string) (int64, error) {
	var count int64
	err := r.openQuery(typeIDs).Count(&count).Error
	return count, err
}

func (r *activityRepository) ListByCreator(creatorID string, offset, limit int) ([]models.Activity, error) {
	query := r.db.Model(&models.Activity{}).
		Preload("Type").Preload("Creator").Preload("Address").
		Where("creator_id = ? AND deleted_at IS NULL", creatorID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Offset(offset).Limit(limit)
	}
	var activities []models.Activity
	err := query.Find(&activities).Error
	return activities, err
}

func (r *activityRepository) CountVisibleByCreator(creatorID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Activity{}).
		Where("creator_id = ? AND deleted_at IS NULL", creatorID).
		Count(&count).Error
	return count, err
}

func (r *activityRepository) participatingQuery(userID string) *gorm.DB {
	return r.db.Model(&models.Activity{}).
		Joins("JOIN activity_participants ON activity_participants.activity_id = activities.id").
		Where("activity_participants.user_id = ? AND activities.deleted_at IS NULL", userID)
}

func (r *activityRepository) ListParticipating(userID string, offset, limit int) ([]models.Activity, error) {
	query := r.participatingQuery(userID).
		Preload("Type").Preload("Creator").Preload("Address").
		Order("activities.created_at DESC")
	if limit > 0 {
		query = query.Offset(offset).Limit(limit)
	}
	var activities []models.Activity
	err := query.Find(&activities).Error
	return activities, err
}

func (r *activityRepository) CountParticipating(userID string) (int64, error) {
	var count int64
	err := r.participatingQuery(userID).Count(&count).Error
	return count, err
}
