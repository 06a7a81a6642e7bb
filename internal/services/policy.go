package services

import (
	"bora/internal/models"
)

// Authorization predicates shared by the participation and progress services.
// They are pure checks over already-loaded entities; the services sequence
// them in a fixed order (activity existence, then authorization, then
// sub-entity existence, then state conflicts) so error precedence is stable.

// IsCreator reports whether the user owns the activity.
func IsCreator(activity *models.Activity, userID string) bool {
	return activity.CreatorID == userID
}

// IsActive reports whether the account may act.
func IsActive(user *models.User) bool {
	return user.IsActive()
}

// IsOpenForSubscription reports whether the user may subscribe: the activity
// is neither deleted nor concluded, and the user is not its creator.
func IsOpenForSubscription(activity *models.Activity, userID string) bool {
	return !activity.IsDeleted() && !activity.IsConcluded() && !IsCreator(activity, userID)
}

// IsApprovable reports whether a pending participant can still be approved.
func IsApprovable(participant *models.ActivityParticipant) bool {
	return !participant.Approved
}
