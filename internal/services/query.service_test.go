package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bora/internal/apperr"
	"bora/internal/mocks"
	"bora/internal/models"
	"bora/internal/repository"
)

// fakeCache is an in-memory stand-in for the redis client.
type fakeCache struct {
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (c *fakeCache) GetJSON(key string, target interface{}) (bool, error) {
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, target)
}

func (c *fakeCache) SetJSON(key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *fakeCache) Delete(key string) error {
	delete(c.entries, key)
	return nil
}

func TestResolveOrder(t *testing.T) {
	tests := []struct {
		name           string
		orderBy        string
		order          string
		expectedColumn string
		expectedDir    string
		wantErr        bool
	}{
		{"empty means repository default", "", "", "", "", false},
		{"createdAt maps to snake case", "createdAt", "asc", "created_at", "asc", false},
		{"scheduledDate defaults to desc", "scheduledDate", "", "scheduled_date", "desc", false},
		{"title uppercase direction", "title", "DESC", "title", "desc", false},
		{"unknown column", "participantCount", "asc", "", "", true},
		{"unknown direction", "title", "sideways", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			column, direction, err := resolveOrder(tt.orderBy, tt.order)
			if tt.wantErr {
				assert.True(t, apperr.Is(err, apperr.KindValidation))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedColumn, column)
			assert.Equal(t, tt.expectedDir, direction)
		})
	}
}

func TestPaginateEnvelope(t *testing.T) {
	summaries := make([]ActivitySummary, 10)

	page := paginate(2, 10, 25, summaries)

	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.PageSize)
	assert.Equal(t, int64(25), page.TotalActivities)
	assert.Equal(t, 3, page.TotalPages)
	if assert.NotNil(t, page.Previous) {
		assert.Equal(t, 1, *page.Previous)
	}
	if assert.NotNil(t, page.Next) {
		assert.Equal(t, 3, *page.Next)
	}
}

func TestPaginateBoundaryPages(t *testing.T) {
	first := paginate(1, 10, 25, nil)
	assert.Nil(t, first.Previous)
	assert.NotNil(t, first.Next)

	last := paginate(3, 10, 25, nil)
	assert.NotNil(t, last.Previous)
	assert.Nil(t, last.Next)

	empty := paginate(1, 10, 0, nil)
	assert.Equal(t, 0, empty.TotalPages)
	assert.Nil(t, empty.Previous)
	assert.Nil(t, empty.Next)
}

func TestNormalizePaging(t *testing.T) {
	page, pageSize := normalizePaging(0, -5)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, pageSize)

	page, pageSize = normalizePaging(3, 25)
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, pageSize)
}

func TestTypesServedFromCache(t *testing.T) {
	store := new(mocks.MockStore)
	cached := newFakeCache()
	_ = cached.SetJSON(activityTypesCacheKey, []models.ActivityType{{ID: "type-1", Name: "Esportes"}}, time.Hour)

	service := NewActivityQueryService(store, cached)
	types, err := service.Types()

	assert.NoError(t, err)
	assert.Len(t, types, 1)
	store.TypeRepo.AssertNotCalled(t, "FindAll")
}

func TestTypesFillCacheOnMiss(t *testing.T) {
	store := new(mocks.MockStore)
	store.TypeRepo.On("FindAll").Return([]models.ActivityType{{ID: "type-1", Name: "Esportes"}}, nil)
	cached := newFakeCache()

	service := NewActivityQueryService(store, cached)
	types, err := service.Types()

	assert.NoError(t, err)
	assert.Len(t, types, 1)
	_, ok := cached.entries[activityTypesCacheKey]
	assert.True(t, ok)
}

func TestTypesWorkWithoutCache(t *testing.T) {
	store := new(mocks.MockStore)
	store.TypeRepo.On("FindAll").Return([]models.ActivityType{{ID: "type-1"}}, nil)

	service := NewActivityQueryService(store, nil)
	types, err := service.Types()

	assert.NoError(t, err)
	assert.Len(t, types, 1)
}

func feedActivity() models.Activity {
	return models.Activity{
		ID:               "act-1",
		Title:            "Pelada de quinta",
		TypeID:           "type-1",
		Type:             models.ActivityType{ID: "type-1", Name: "Esportes"},
		ConfirmationCode: "123",
		CreatorID:        "creator-1",
		Creator:          models.User{ID: "creator-1", Name: "Ana"},
	}
}

func TestListExplicitTypeBypassesPreferences(t *testing.T) {
	store := new(mocks.MockStore)
	store.ActivityRepo.On("CountOpen", []string{"type-1"}).Return(int64(1), nil)
	store.ActivityRepo.On("ListOpen", repository.ActivityFilter{
		TypeIDs: []string{"type-1"},
		Offset:  0,
		Limit:   10,
	}).Return([]models.Activity{feedActivity()}, nil)
	store.ParticipantRepo.On("CountByActivity", "act-1").Return(int64(4), nil)
	store.ParticipantRepo.On("FindByActivityAndUser", "act-1", "user-1").Return(nil, nil)

	service := NewActivityQueryService(store, nil)
	page, err := service.List("user-1", ListParams{TypeID: "type-1", Page: 1, PageSize: 10})

	assert.NoError(t, err)
	assert.Len(t, page.Activities, 1)
	assert.Equal(t, int64(4), page.Activities[0].ParticipantCount)
	assert.Equal(t, StatusNotSubscribed, page.Activities[0].UserSubscriptionStatus)
	assert.Empty(t, page.Activities[0].ConfirmationCode)
	store.PreferenceRepo.AssertNotCalled(t, "ListByUser", mock.Anything)
}

func TestListFallsBackToPreferences(t *testing.T) {
	store := new(mocks.MockStore)
	store.PreferenceRepo.On("ListByUser", "user-1").
		Return([]models.Preference{{UserID: "user-1", TypeID: "type-1"}}, nil)
	store.ActivityRepo.On("CountOpen", []string{"type-1"}).Return(int64(0), nil)
	store.ActivityRepo.On("ListOpen", mock.Anything).Return([]models.Activity{}, nil)

	service := NewActivityQueryService(store, nil)
	page, err := service.List("user-1", ListParams{Page: 1, PageSize: 10})

	assert.NoError(t, err)
	assert.Empty(t, page.Activities)
	store.AssertExpectations(t)
}

func TestCreatorSeesConfirmationCode(t *testing.T) {
	store := new(mocks.MockStore)
	store.ActivityRepo.On("CountVisibleByCreator", "creator-1").Return(int64(1), nil)
	store.ActivityRepo.On("ListByCreator", "creator-1", 0, 10).Return([]models.Activity{feedActivity()}, nil)
	store.ParticipantRepo.On("CountByActivity", "act-1").Return(int64(0), nil)

	service := NewActivityQueryService(store, nil)
	page, err := service.ListCreatedBy("creator-1", 1, 10)

	assert.NoError(t, err)
	assert.Equal(t, "123", page.Activities[0].ConfirmationCode)
	assert.Empty(t, page.Activities[0].UserSubscriptionStatus)
	store.ParticipantRepo.AssertNotCalled(t, "FindByActivityAndUser", mock.Anything, mock.Anything)
}

func TestListParticipatingAnnotatesStatus(t *testing.T) {
	store := new(mocks.MockStore)
	store.ActivityRepo.On("CountParticipating", "user-1").Return(int64(1), nil)
	store.ActivityRepo.On("ListParticipating", "user-1", 0, 10).Return([]models.Activity{feedActivity()}, nil)
	store.ParticipantRepo.On("CountByActivity", "act-1").Return(int64(2), nil)
	store.ParticipantRepo.On("FindByActivityAndUser", "act-1", "user-1").
		Return(&models.ActivityParticipant{ID: "part-1", Approved: true}, nil)

	service := NewActivityQueryService(store, nil)
	page, err := service.ListParticipating("user-1", 1, 10)

	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, page.Activities[0].UserSubscriptionStatus)
}

func TestRosterOfDeletedActivity(t *testing.T) {
	store := new(mocks.MockStore)
	deletedAt := time.Now()
	activity := feedActivity()
	activity.DeletedAt = &deletedAt
	store.ActivityRepo.On("FindByID", "act-1").Return(&activity, nil)

	service := NewActivityQueryService(store, nil)
	_, err := service.Roster("act-1")

	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestRosterFlattensUsers(t *testing.T) {
	store := new(mocks.MockStore)
	activity := feedActivity()
	store.ActivityRepo.On("FindByID", "act-1").Return(&activity, nil)
	store.ParticipantRepo.On("ListByActivity", "act-1").Return([]models.ActivityParticipant{
		{
			ID:       "part-1",
			UserID:   "user-1",
			Approved: true,
			User:     models.User{ID: "user-1", Name: "Bruno", Avatar: "avatar.jpg"},
		},
	}, nil)

	service := NewActivityQueryService(store, nil)
	roster, err := service.Roster("act-1")

	assert.NoError(t, err)
	if assert.Len(t, roster, 1) {
		assert.Equal(t, "Bruno", roster[0].Name)
		assert.Equal(t, "avatar.jpg", roster[0].Avatar)
		assert.True(t, roster[0].Approved)
	}
}

func TestStatusOf(t *testing.T) {
	confirmedAt := time.Now()

	assert.Equal(t, StatusNotSubscribed, StatusOf(nil))
	assert.Equal(t, StatusPending, StatusOf(&models.ActivityParticipant{}))
	assert.Equal(t, StatusApproved, StatusOf(&models.ActivityParticipant{Approved: true}))
	assert.Equal(t, StatusApproved, StatusOf(&models.ActivityParticipant{Approved: true, ConfirmedAt: &confirmedAt}))
}
