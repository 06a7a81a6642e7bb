package services

import (
	"errors"
	"time"

	"bora/internal/apperr"
	"bora/internal/events"
	"bora/internal/models"
	"bora/internal/repository"
	"bora/internal/storage"
	"bora/internal/utils"

	"gorm.io/gorm"
)

// SubscriptionStatus is the caller-facing view of a participant row.
type SubscriptionStatus string

const (
	StatusNotSubscribed SubscriptionStatus = "NOT_SUBSCRIBED"
	StatusPending       SubscriptionStatus = "PENDING"
	StatusApproved      SubscriptionStatus = "APPROVED"
)

// StatusOf derives the three-state subscription status from a participant
// row, or its absence.
func StatusOf(participant *models.ActivityParticipant) SubscriptionStatus {
	switch {
	case participant == nil:
		return StatusNotSubscribed
	case participant.Approved:
		return StatusApproved
	default:
		return StatusPending
	}
}

type CreateActivityInput struct {
	Title         string
	Description   string
	TypeID        string
	Latitude      float64
	Longitude     float64
	ScheduledDate time.Time
	Private       bool
}

// UpdateActivityInput carries a partial update; nil fields are left untouched.
type UpdateActivityInput struct {
	Title         *string
	Description   *string
	TypeID        *string
	Latitude      *float64
	Longitude     *float64
	ScheduledDate *time.Time
	Private       *bool
}

// ParticipationService owns the activity and participant lifecycle.
type ParticipationService struct {
	store    repository.Store
	progress *ProgressService
	images   storage.ImageStorage
	events   events.Publisher
}

func NewParticipationService(
	store repository.Store,
	progress *ProgressService,
	images storage.ImageStorage,
	publisher events.Publisher,
) *ParticipationService {
	return &ParticipationService{
		store:    store,
		progress: progress,
		images:   images,
		events:   publisher,
	}
}

// resolveImage validates and stores an optional upload, falling back to the
// default activity image.
func (s *ParticipationService) resolveImage(upload *storage.Upload, fallback string) (string, error) {
	if upload == nil {
		return fallback, nil
	}
	if !storage.IsAllowedImageType(upload.ContentType) {
		return "", apperr.Validation("image must be a PNG or JPEG file")
	}
	return s.images.UploadImage(upload)
}

// CreateActivity persists a new activity with its address and confirmation
// code, granting the first-creation achievement when applicable.
func (s *ParticipationService) CreateActivity(creatorID string, in CreateActivityInput, image *storage.Upload) (*models.Activity, error) {
	imageURL, err := s.resolveImage(image, s.images.DefaultActivityImage())
	if err != nil {
		return nil, err
	}

	activity := &models.Activity{
		Title:            in.Title,
		Description:      in.Description,
		TypeID:           in.TypeID,
		Image:            imageURL,
		ConfirmationCode: utils.GenerateConfirmationCode(),
		ScheduledDate:    in.ScheduledDate,
		Private:          in.Private,
		CreatorID:        creatorID,
		Address: &models.ActivityAddress{
			Latitude:  in.Latitude,
			Longitude: in.Longitude,
		},
	}

	if err := s.store.Activities().Create(activity); err != nil {
		return nil, err
	}

	created, err := s.store.Activities().CountByCreator(creatorID)
	if err != nil {
		return nil, err
	}
	if created == 1 {
		if err := s.progress.Grant(creatorID, AchievementFirstCreation); err != nil {
			return nil, err
		}
	}

	return s.store.Activities().FindByID(activity.ID)
}

// UpdateActivity applies a partial update; only the creator may edit.
func (s *ParticipationService) UpdateActivity(activityID, callerID string, in UpdateActivityInput, image *storage.Upload) (*models.Activity, error) {
	activity, err := s.store.Activities().FindByID(activityID)
	if err != nil {
		return nil, err
	}
	if activity == nil || activity.IsDeleted() {
		return nil, apperr.NotFound("activity not found")
	}
	if !IsCreator(activity, callerID) {
		return nil, apperr.Forbidden("only the creator can edit this activity")
	}

	if image != nil {
		url, err := s.resolveImage(image, "")
		if err != nil {
			return nil, err
		}
		activity.Image = url
	}
	if in.Title != nil {
		activity.Title = *in.Title
	}
	if in.Description != nil {
		activity.Description = *in.Description
	}
	if in.TypeID != nil {
		activity.TypeID = *in.TypeID
	}
	if in.ScheduledDate != nil {
		activity.ScheduledDate = *in.ScheduledDate
	}
	if in.Private != nil {
		activity.Private = *in.Private
	}

	if err := s.store.Activities().Update(activity); err != nil {
		return nil, err
	}

	if in.Latitude != nil && in.Longitude != nil {
		if err := s.store.Activities().UpdateAddress(activityID, *in.Latitude, *in.Longitude); err != nil {
			return nil, err
		}
	}

	return s.store.Activities().FindByID(activityID)
}

// Subscribe registers the caller as a participant. Public activities approve
// immediately; private ones wait for the creator.
func (s *ParticipationService) Subscribe(activityID, userID string) (*models.ActivityParticipant, SubscriptionStatus, error) {
	activity, err := s.store.Activities().FindByID(activityID)
	if err != nil {
		return nil, "", err
	}
	if activity == nil || activity.IsDeleted() {
		return nil, "", apperr.NotFound("activity not found")
	}
	if IsCreator(activity, userID) {
		return nil, "", apperr.Forbidden("the creator cannot subscribe to their own activity")
	}
	if activity.IsConcluded() {
		return nil, "", apperr.Forbidden("this activity has already been concluded")
	}

	existing, err := s.store.Participants().FindByActivityAndUser(activityID, userID)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", apperr.Conflict("you have already subscribed to this activity")
	}

	participant := &models.ActivityParticipant{
		ActivityID: activityID,
		UserID:     userID,
		Approved:   !activity.Private,
	}
	if err := s.store.Participants().Create(participant); err != nil {
		// Two concurrent subscriptions can both pass the existence check;
		// the unique index turns the loser into the same Conflict.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apperr.Conflict("you have already subscribed to this activity")
		}
		return nil, "", err
	}

	return participant, StatusOf(participant), nil
}

// ApproveParticipant lets the creator approve or deny a pending subscription.
// Re-approving an approved participant is rejected; denial is a free update.
func (s *ParticipationService) ApproveParticipant(activityID, callerID, participantUserID string, approved bool) error {
	activity, err := s.store.Activities().FindByID(activityID)
	if err != nil {
		return err
	}
	if activity == nil || activity.IsDeleted() {
		return apperr.NotFound("activity not found")
	}
	if !IsCreator(activity, callerID) {
		return apperr.Forbidden("only the creator can approve participants")
	}

	participant, err := s.store.Participants().FindByActivityAndUser(activityID, participantUserID)
	if err != nil {
		return err
	}
	if participant == nil {
		return apperr.NotFound("participant not found")
	}
	if approved && !IsApprovable(participant) {
		return apperr.BadRequest("participant is already approved")
	}

	return s.store.Participants().SetApproved(participant.ID, approved)
}

// CheckIn confirms attendance with the shared code and triggers the XP and
// achievement side effects. The compound mutation (confirm + two XP updates +
// grants) runs in one transaction so a failure never leaves the participant
// confirmed without the awards.
func (s *ParticipationService) CheckIn(activityID, userID, confirmationCode string) error {
	activity, err := s.store.Activities().FindByID(activityID)
	if err != nil {
		return err
	}
	if activity == nil || activity.IsDeleted() {
		return apperr.NotFound("activity not found")
	}
	if activity.IsConcluded() {
		return apperr.Forbidden("this activity has already been concluded")
	}

	participant, err := s.store.Participants().FindByActivityAndUser(activityID, userID)
	if err != nil {
		return err
	}
	if participant == nil {
		return apperr.NotFound("participant not found")
	}
	if !participant.Approved {
		return apperr.Forbidden("your subscription has not been approved")
	}
	if participant.IsConfirmed() {
		return apperr.Conflict("you have already confirmed your attendance")
	}
	if activity.ConfirmationCode != confirmationCode {
		return apperr.BadRequest("invalid confirmation code")
	}

	err = s.store.WithinTransaction(func(tx repository.Store) error {
		if err := tx.Participants().Confirm(participant.ID, time.Now()); err != nil {
			return err
		}

		progress := s.progress.withStore(tx)
		award := progress.CheckInXP()

		attendee, err := progress.AddExperience(userID, award)
		if err != nil {
			return err
		}
		if _, err := progress.AddExperience(activity.CreatorID, award); err != nil {
			return err
		}

		confirmed, err := tx.Participants().CountConfirmedByUser(userID)
		if err != nil {
			return err
		}
		if confirmed == 1 {
			if err := progress.Grant(userID, AchievementFirstCheckIn); err != nil {
				return err
			}
		}
		if attendee.Level >= 5 {
			if err := progress.Grant(userID, AchievementLevel5Reached); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.events.Publish(events.Event{
		Name:   events.EventCheckIn,
		UserID: userID,
		Data:   map[string]interface{}{"activityId": activityID},
	})

	return nil
}

// Unsubscribe removes the caller's participation. Confirmed attendance is
// permanent and blocks leaving.
func (s *ParticipationService) Unsubscribe(activityID, userID string) error {
	activity, err := s.store.Activities().FindByID(activityID)
	if err != nil {
		return err
	}
	if activity == nil || activity.IsDeleted() {
		return apperr.NotFound("activity not found")
	}

	participant, err := s.store.Participants().FindByActivityAndUser(activityID, userID)
	if err != nil {
		return err
	}
	if participant == nil {
		return apperr.BadRequest("you are not subscribed to this activity")
	}
	if participant.IsConfirmed() {
		return apperr.BadRequest("attendance already confirmed, subscription cannot be cancelled")
	}

	return s.store.Participants().Delete(participant.ID)
}

// Conclude marks the activity as done and may grant the creator's
// first-conclusion achievement.
func (s *ParticipationService) Conclude(activityID, callerID string) error {
	activity, err := s.store.Activities().FindByID(activityID)
	if err != nil {
		return err
	}
	if activity == nil || activity.IsDeleted() {
		return apperr.NotFound("activity not found")
	}
	if !IsCreator(activity, callerID) {
		return apperr.Forbidden("only the creator can conclude this activity")
	}
	if activity.IsConcluded() {
		return apperr.Forbidden("this activity has already been concluded")
	}

	if err := s.store.Activities().Conclude(activityID, time.Now()); err != nil {
		return err
	}

	concluded, err := s.store.Activities().CountConcludedByCreator(callerID)
	if err != nil {
		return err
	}
	if concluded == 1 {
		return s.progress.Grant(callerID, AchievementFirstConclusion)
	}
	return nil
}

// Delete soft-deletes the activity; it disappears from every consumer-facing
// read but stays in storage for audit.
func (s *ParticipationService) Delete(activityID, callerID string) error {
	activity, err := s.store.Activities().FindByID(activityID)
	if err != nil {
		return err
	}
	if activity == nil || activity.IsDeleted() {
		return apperr.NotFound("activity not found")
	}
	if !IsCreator(activity, callerID) {
		return apperr.Forbidden("only the creator can delete this activity")
	}

	return s.store.Activities().SoftDelete(activityID, time.Now())
}
