package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"bora/internal/apperr"
	"bora/internal/events"
	"bora/internal/mocks"
	"bora/internal/models"
)

func newProgressService(store *mocks.MockStore) *ProgressService {
	return NewProgressService(store, events.NoopPublisher{}, ProgressConfig{CheckInXP: 100, MaxXPPerLevel: 500})
}

func TestAddExperienceLevelArithmetic(t *testing.T) {
	tests := []struct {
		name          string
		startXP       int
		startLevel    int
		delta         int
		expectedXP    int
		expectedLevel int
	}{
		{"crossing the cap keeps the remainder", 450, 3, 100, 50, 4},
		{"landing on the cap resets to zero", 450, 3, 50, 0, 4},
		{"staying under the cap accumulates", 450, 3, 30, 480, 3},
		{"fresh user accumulates from zero", 0, 1, 100, 100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mocks.MockStore)
			user := &models.User{ID: "user-1", XP: tt.startXP, Level: tt.startLevel}
			store.UserRepo.On("FindByID", "user-1").Return(user, nil)
			store.UserRepo.On("Update", mock.Anything).Return(nil)

			service := newProgressService(store)
			updated, err := service.AddExperience("user-1", tt.delta)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedXP, updated.XP)
			assert.Equal(t, tt.expectedLevel, updated.Level)
			store.AssertExpectations(t)
		})
	}
}

func TestAddExperienceUnknownUser(t *testing.T) {
	store := new(mocks.MockStore)
	store.UserRepo.On("FindByID", "missing").Return(nil, nil)

	service := newProgressService(store)
	_, err := service.AddExperience("missing", 100)

	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestAddExperienceDeactivatedUser(t *testing.T) {
	store := new(mocks.MockStore)
	deactivatedAt := time.Now()
	user := &models.User{ID: "user-1", DeletedAt: &deactivatedAt}
	store.UserRepo.On("FindByID", "user-1").Return(user, nil)

	service := newProgressService(store)
	_, err := service.AddExperience("user-1", 100)

	assert.True(t, apperr.Is(err, apperr.KindForbidden))
}

func TestGrantAwardsOnce(t *testing.T) {
	store := new(mocks.MockStore)
	achievement := &models.Achievement{ID: "ach-1", Name: "Pioneiro"}
	store.AchievementRepo.On("FindByName", "Pioneiro").Return(achievement, nil)
	store.AchievementRepo.On("FindGrant", "user-1", "ach-1").Return(nil, nil)
	store.AchievementRepo.On("Grant", mock.Anything).Return(nil)

	service := newProgressService(store)
	err := service.Grant("user-1", AchievementFirstCheckIn)

	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestGrantSkipsExistingGrant(t *testing.T) {
	store := new(mocks.MockStore)
	achievement := &models.Achievement{ID: "ach-1", Name: "Pioneiro"}
	existing := &models.UserAchievement{UserID: "user-1", AchievementID: "ach-1"}
	store.AchievementRepo.On("FindByName", "Pioneiro").Return(achievement, nil)
	store.AchievementRepo.On("FindGrant", "user-1", "ach-1").Return(existing, nil)

	service := newProgressService(store)
	err := service.Grant("user-1", AchievementFirstCheckIn)

	assert.NoError(t, err)
	store.AchievementRepo.AssertNotCalled(t, "Grant", mock.Anything)
}

func TestGrantSwallowsConcurrentDuplicate(t *testing.T) {
	store := new(mocks.MockStore)
	achievement := &models.Achievement{ID: "ach-1", Name: "Explorador"}
	store.AchievementRepo.On("FindByName", "Explorador").Return(achievement, nil)
	store.AchievementRepo.On("FindGrant", "user-1", "ach-1").Return(nil, nil)
	store.AchievementRepo.On("Grant", mock.Anything).Return(gorm.ErrDuplicatedKey)

	service := newProgressService(store)
	err := service.Grant("user-1", AchievementLevel5Reached)

	assert.NoError(t, err)
}

func TestGrantUnseededAchievementIsNoop(t *testing.T) {
	store := new(mocks.MockStore)
	store.AchievementRepo.On("FindByName", "Ambicioso").Return(nil, nil)

	service := newProgressService(store)
	err := service.Grant("user-1", AchievementFirstConclusion)

	assert.NoError(t, err)
	store.AchievementRepo.AssertNotCalled(t, "Grant", mock.Anything)
}

func TestLoadProgressConfigDefaults(t *testing.T) {
	t.Setenv("CHECKIN_XP", "")
	t.Setenv("MAX_XP_PER_LEVEL", "")

	cfg := LoadProgressConfig()

	assert.Equal(t, 100, cfg.CheckInXP)
	assert.Equal(t, 500, cfg.MaxXPPerLevel)
}

func TestLoadProgressConfigFromEnvironment(t *testing.T) {
	t.Setenv("CHECKIN_XP", "250")
	t.Setenv("MAX_XP_PER_LEVEL", "1000")

	cfg := LoadProgressConfig()

	assert.Equal(t, 250, cfg.CheckInXP)
	assert.Equal(t, 1000, cfg.MaxXPPerLevel)
}
