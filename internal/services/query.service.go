package services

import (
	"math"
	"time"

	"bora/internal/apperr"
	"bora/internal/cache"
	"bora/internal/models"
	"bora/internal/repository"
)

const activityTypesCacheKey = "activity-types"

var orderableColumns = map[string]string{
	"createdAt":     "created_at",
	"scheduledDate": "scheduled_date",
	"title":         "title",
}

type ListParams struct {
	TypeID   string
	OrderBy  string
	Order    string
	Page     int
	PageSize int
}

type CreatorSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// ActivitySummary is an activity annotated for one caller: denormalized type
// and creator, participant count and the caller's subscription status. The
// confirmation code is only exposed to the creator.
type ActivitySummary struct {
	ID                     string                  `json:"id"`
	Title                  string                  `json:"title"`
	Description            string                  `json:"description"`
	TypeID                 string                  `json:"typeId"`
	TypeName               string                  `json:"typeName"`
	Image                  string                  `json:"image"`
	Address                *models.ActivityAddress `json:"address,omitempty"`
	ScheduledDate          time.Time               `json:"scheduledDate"`
	Private                bool                    `json:"private"`
	Creator                CreatorSummary          `json:"creator"`
	ParticipantCount       int64                   `json:"participantCount"`
	UserSubscriptionStatus SubscriptionStatus      `json:"userSubscriptionStatus,omitempty"`
	ConfirmationCode       string                  `json:"confirmationCode,omitempty"`
	CompletedAt            *time.Time              `json:"completedAt"`
	CreatedAt              time.Time               `json:"createdAt"`
}

// ActivityPage is the offset-pagination envelope.
type ActivityPage struct {
	Page            int               `json:"page"`
	PageSize        int               `json:"pageSize"`
	TotalActivities int64             `json:"totalActivities"`
	TotalPages      int               `json:"totalPages"`
	Previous        *int              `json:"previous"`
	Next            *int              `json:"next"`
	Activities      []ActivitySummary `json:"activities"`
}

// RosterEntry flattens a participant row with the user's display data.
type RosterEntry struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Name        string     `json:"name"`
	Avatar      string     `json:"avatar"`
	Approved    bool       `json:"approved"`
	ConfirmedAt *time.Time `json:"confirmedAt"`
}

// ActivityQueryService is the read-only projection layer over activities.
type ActivityQueryService struct {
	store repository.Store
	cache cache.Cache
}

// NewActivityQueryService builds the query layer; cache may be nil.
func NewActivityQueryService(store repository.Store, c cache.Cache) *ActivityQueryService {
	return &ActivityQueryService{store: store, cache: c}
}

// Types lists the seeded activity types, served from cache when possible.
func (s *ActivityQueryService) Types() ([]models.ActivityType, error) {
	if s.cache != nil {
		var cached []models.ActivityType
		if ok, err := s.cache.GetJSON(activityTypesCacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}

	types, err := s.store.ActivityTypes().FindAll()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		// Reference data changes only on reseeding; a short TTL is enough.
		_ = s.cache.SetJSON(activityTypesCacheKey, types, time.Hour)
	}
	return types, nil
}

func resolveOrder(orderBy, order string) (string, string, error) {
	if orderBy == "" {
		return "", "", nil
	}
	column, ok := orderableColumns[orderBy]
	if !ok {
		return "", "", apperr.Validation("orderBy must be one of createdAt, scheduledDate, title")
	}
	switch order {
	case "", "desc", "DESC":
		return column, "desc", nil
	case "asc", "ASC":
		return column, "asc", nil
	default:
		return "", "", apperr.Validation("order must be asc or desc")
	}
}

// typeFilter resolves the type scope: an explicit filter wins; otherwise the
// caller's preferred types, falling back to all types when none are set.
func (s *ActivityQueryService) typeFilter(callerID, typeID string) ([]string, error) {
	if typeID != "" {
		return []string{typeID}, nil
	}
	preferences, err := s.store.Preferences().ListByUser(callerID)
	if err != nil {
		return nil, err
	}
	typeIDs := make([]string, 0, len(preferences))
	for _, preference := range preferences {
		typeIDs = append(typeIDs, preference.TypeID)
	}
	return typeIDs, nil
}

func (s *ActivityQueryService) annotate(activity *models.Activity, callerID string) (ActivitySummary, error) {
	summary := ActivitySummary{
		ID:            activity.ID,
		Title:         activity.Title,
		Description:   activity.Description,
		TypeID:        activity.TypeID,
		TypeName:      activity.Type.Name,
		Image:         activity.Image,
		Address:       activity.Address,
		ScheduledDate: activity.ScheduledDate,
		Private:       activity.Private,
		Creator: CreatorSummary{
			ID:     activity.Creator.ID,
			Name:   activity.Creator.Name,
			Avatar: activity.Creator.Avatar,
		},
		CompletedAt: activity.CompletedAt,
		CreatedAt:   activity.CreatedAt,
	}

	count, err := s.store.Participants().CountByActivity(activity.ID)
	if err != nil {
		return summary, err
	}
	summary.ParticipantCount = count

	if IsCreator(activity, callerID) {
		// The creator sees the code instead of a subscription status.
		summary.ConfirmationCode = activity.ConfirmationCode
		return summary, nil
	}

	participant, err := s.store.Participants().FindByActivityAndUser(activity.ID, callerID)
	if err != nil {
		return summary, err
	}
	summary.UserSubscriptionStatus = StatusOf(participant)
	return summary, nil
}

func (s *ActivityQueryService) annotateAll(activities []models.Activity, callerID string) ([]ActivitySummary, error) {
	summaries := make([]ActivitySummary, 0, len(activities))
	for i := range activities {
		summary, err := s.annotate(&activities[i], callerID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func paginate(page, pageSize int, total int64, activities []ActivitySummary) *ActivityPage {
	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))
	result := &ActivityPage{
		Page:            page,
		PageSize:        pageSize,
		TotalActivities: total,
		TotalPages:      totalPages,
		Activities:      activities,
	}
	if page > 1 {
		previous := page - 1
		result.Previous = &previous
	}
	if page < totalPages {
		next := page + 1
		result.Next = &next
	}
	return result
}

func normalizePaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return page, pageSize
}

// List returns the open-activity feed scoped to the caller's preferences.
func (s *ActivityQueryService) List(callerID string, params ListParams) (*ActivityPage, error) {
	column, direction, err := resolveOrder(params.OrderBy, params.Order)
	if err != nil {
		return nil, err
	}
	typeIDs, err := s.typeFilter(callerID, params.TypeID)
	if err != nil {
		return nil, err
	}
	page, pageSize := normalizePaging(params.Page, params.PageSize)

	total, err := s.store.Activities().CountOpen(typeIDs)
	if err != nil {
		return nil, err
	}

	activities, err := s.store.Activities().ListOpen(repository.ActivityFilter{
		TypeIDs: typeIDs,
		OrderBy: column,
		Order:   direction,
		Offset:  page*pageSize - pageSize,
		Limit:   pageSize,
	})
	if err != nil {
		return nil, err
	}

	summaries, err := s.annotateAll(activities, callerID)
	if err != nil {
		return nil, err
	}
	return paginate(page, pageSize, total, summaries), nil
}

// ListAll returns the unpaginated feed with the same scoping rules.
func (s *ActivityQueryService) ListAll(callerID string, typeID, orderBy, order string) ([]ActivitySummary, error) {
	column, direction, err := resolveOrder(orderBy, order)
	if err != nil {
		return nil, err
	}
	typeIDs, err := s.typeFilter(callerID, typeID)
	if err != nil {
		return nil, err
	}

	activities, err := s.store.Activities().ListOpen(repository.ActivityFilter{
		TypeIDs: typeIDs,
		OrderBy: column,
		Order:   direction,
	})
	if err != nil {
		return nil, err
	}
	return s.annotateAll(activities, callerID)
}

// ListCreatedBy pages through the activities a user owns.
func (s *ActivityQueryService) ListCreatedBy(userID string, page, pageSize int) (*ActivityPage, error) {
	page, pageSize = normalizePaging(page, pageSize)

	total, err := s.store.Activities().CountVisibleByCreator(userID)
	if err != nil {
		return nil, err
	}
	activities, err := s.store.Activities().ListByCreator(userID, page*pageSize-pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	summaries, err := s.annotateAll(activities, userID)
	if err != nil {
		return nil, err
	}
	return paginate(page, pageSize, total, summaries), nil
}

func (s *ActivityQueryService) ListAllCreatedBy(userID string) ([]ActivitySummary, error) {
	activities, err := s.store.Activities().ListByCreator(userID, 0, 0)
	if err != nil {
		return nil, err
	}
	return s.annotateAll(activities, userID)
}

// ListParticipating pages through the activities the user subscribed to.
func (s *ActivityQueryService) ListParticipating(userID string, page, pageSize int) (*ActivityPage, error) {
	page, pageSize = normalizePaging(page, pageSize)

	total, err := s.store.Activities().CountParticipating(userID)
	if err != nil {
		return nil, err
	}
	activities, err := s.store.Activities().ListParticipating(userID, page*pageSize-pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	summaries, err := s.annotateAll(activities, userID)
	if err != nil {
		return nil, err
	}
	return paginate(page, pageSize, total, summaries), nil
}

func (s *ActivityQueryService) ListAllParticipating(userID string) ([]ActivitySummary, error) {
	activities, err := s.store.Activities().ListParticipating(userID, 0, 0)
	if err != nil {
		return nil, err
	}
	return s.annotateAll(activities, userID)
}

// Roster lists an activity's participants with their display data.
func (s *ActivityQueryService) Roster(activityID string) ([]RosterEntry, error) {
	activity, err := s.store.Activities().FindByID(activityID)
	if err != nil {
		return nil, err
	}
	if activity == nil || activity.IsDeleted() {
		return nil, apperr.NotFound("activity not found")
	}

	participants, err := s.store.Participants().ListByActivity(activityID)
	if err != nil {
		return nil, err
	}

	roster := make([]RosterEntry, 0, len(participants))
	for _, participant := range participants {
		roster = append(roster, RosterEntry{
			ID:          participant.ID,
			UserID:      participant.UserID,
			Name:        participant.User.Name,
			Avatar:      participant.User.Avatar,
			Approved:    participant.Approved,
			ConfirmedAt: participant.ConfirmedAt,
		})
	}
	return roster, nil
}
