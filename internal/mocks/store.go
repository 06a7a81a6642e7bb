package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"

	"bora/internal/models"
	"bora/internal/repository"
	"bora/internal/storage"
)

// Shared MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByCPF(cpf string) (*models.User, error) {
	args := m.Called(cpf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateAvatar(id, avatar string) error {
	args := m.Called(id, avatar)
	return args.Error(0)
}

func (m *MockUserRepository) Deactivate(id string, at time.Time) error {
	args := m.Called(id, at)
	return args.Error(0)
}

// Shared MockActivityRepository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(activity *models.Activity) error {
	args := m.Called(activity)
	return args.Error(0)
}

func (m *MockActivityRepository) FindByID(id string) (*models.Activity, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Activity), args.Error(1)
}

func (m *MockActivityRepository) Update(activity *models.Activity) error {
	args := m.Called(activity)
	return args.Error(0)
}

func (m *MockActivityRepository) UpdateAddress(activityID string, latitude, longitude float64) error {
	args := m.Called(activityID, latitude, longitude)
	return args.Error(0)
}

func (m *MockActivityRepository) Conclude(id string, at time.Time) error {
	args := m.Called(id, at)
	return args.Error(0)
}

func (m *MockActivityRepository) SoftDelete(id string, at time.Time) error {
	args := m.Called(id, at)
	return args.Error(0)
}

func (m *MockActivityRepository) CountByCreator(creatorID string) (int64, error) {
	args := m.Called(creatorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockActivityRepository) CountConcludedByCreator(creatorID string) (int64, error) {
	args := m.Called(creatorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockActivityRepository) ListOpen(filter repository.ActivityFilter) ([]models.Activity, error) {
	args := m.Called(filter)
	return args.Get(0).([]models.Activity), args.Error(1)
}

func (m *MockActivityRepository) CountOpen(typeIDs []string) (int64, error) {
	args := m.Called(typeIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockActivityRepository) ListByCreator(creatorID string, offset, limit int) ([]models.Activity, error) {
	args := m.Called(creatorID, offset, limit)
	return args.Get(0).([]models.Activity), args.Error(1)
}

func (m *MockActivityRepository) CountVisibleByCreator(creatorID string) (int64, error) {
	args := m.Called(creatorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockActivityRepository) ListParticipating(userID string, offset, limit int) ([]models.Activity, error) {
	args := m.Called(userID, offset, limit)
	return args.Get(0).([]models.Activity), args.Error(1)
}

func (m *MockActivityRepository) CountParticipating(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

// Shared MockParticipantRepository
type MockParticipantRepository struct {
	mock.Mock
}

func (m *MockParticipantRepository) Create(participant *models.ActivityParticipant) error {
	args := m.Called(participant)
	return args.Error(0)
}

func (m *MockParticipantRepository) FindByActivityAndUser(activityID, userID string) (*models.ActivityParticipant, error) {
	args := m.Called(activityID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ActivityParticipant), args.Error(1)
}

func (m *MockParticipantRepository) SetApproved(id string, approved bool) error {
	args := m.Called(id, approved)
	return args.Error(0)
}

func (m *MockParticipantRepository) Confirm(id string, at time.Time) error {
	args := m.Called(id, at)
	return args.Error(0)
}

func (m *MockParticipantRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockParticipantRepository) ListByActivity(activityID string) ([]models.ActivityParticipant, error) {
	args := m.Called(activityID)
	return args.Get(0).([]models.ActivityParticipant), args.Error(1)
}

func (m *MockParticipantRepository) CountByActivity(activityID string) (int64, error) {
	args := m.Called(activityID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockParticipantRepository) CountConfirmedByUser(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

// Shared MockActivityTypeRepository
type MockActivityTypeRepository struct {
	mock.Mock
}

func (m *MockActivityTypeRepository) FindAll() ([]models.ActivityType, error) {
	args := m.Called()
	return args.Get(0).([]models.ActivityType), args.Error(1)
}

func (m *MockActivityTypeRepository) FindByID(id string) (*models.ActivityType, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ActivityType), args.Error(1)
}

func (m *MockActivityTypeRepository) Create(activityType *models.ActivityType) error {
	args := m.Called(activityType)
	return args.Error(0)
}

// Shared MockPreferenceRepository
type MockPreferenceRepository struct {
	mock.Mock
}

func (m *MockPreferenceRepository) ListByUser(userID string) ([]models.Preference, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Preference), args.Error(1)
}

func (m *MockPreferenceRepository) FindByUserAndType(userID, typeID string) (*models.Preference, error) {
	args := m.Called(userID, typeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Preference), args.Error(1)
}

func (m *MockPreferenceRepository) Create(preference *models.Preference) error {
	args := m.Called(preference)
	return args.Error(0)
}

// Shared MockAchievementRepository
type MockAchievementRepository struct {
	mock.Mock
}

func (m *MockAchievementRepository) FindByName(name string) (*models.Achievement, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Achievement), args.Error(1)
}

func (m *MockAchievementRepository) Create(achievement *models.Achievement) error {
	args := m.Called(achievement)
	return args.Error(0)
}

func (m *MockAchievementRepository) FindGrant(userID, achievementID string) (*models.UserAchievement, error) {
	args := m.Called(userID, achievementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserAchievement), args.Error(1)
}

func (m *MockAchievementRepository) Grant(grant *models.UserAchievement) error {
	args := m.Called(grant)
	return args.Error(0)
}

func (m *MockAchievementRepository) ListGrantsByUser(userID string) ([]models.UserAchievement, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.UserAchievement), args.Error(1)
}

// MockStore aggregates the repository mocks. WithinTransaction runs the
// callback against the same store, so expectations set on the repositories
// cover transactional code paths too.
type MockStore struct {
	UserRepo        MockUserRepository
	ActivityRepo    MockActivityRepository
	ParticipantRepo MockParticipantRepository
	TypeRepo        MockActivityTypeRepository
	PreferenceRepo  MockPreferenceRepository
	AchievementRepo MockAchievementRepository
}

func (m *MockStore) Users() repository.UserRepository                 { return &m.UserRepo }
func (m *MockStore) Activities() repository.ActivityRepository        { return &m.ActivityRepo }
func (m *MockStore) Participants() repository.ParticipantRepository   { return &m.ParticipantRepo }
func (m *MockStore) ActivityTypes() repository.ActivityTypeRepository { return &m.TypeRepo }
func (m *MockStore) Preferences() repository.PreferenceRepository     { return &m.PreferenceRepo }
func (m *MockStore) Achievements() repository.AchievementRepository   { return &m.AchievementRepo }

func (m *MockStore) WithinTransaction(fn func(repository.Store) error) error {
	return fn(m)
}

func (m *MockStore) AssertExpectations(t mock.TestingT) {
	m.UserRepo.AssertExpectations(t)
	m.ActivityRepo.AssertExpectations(t)
	m.ParticipantRepo.AssertExpectations(t)
	m.TypeRepo.AssertExpectations(t)
	m.PreferenceRepo.AssertExpectations(t)
	m.AchievementRepo.AssertExpectations(t)
}

// MockImageStorage satisfies storage.ImageStorage without touching S3.
type MockImageStorage struct {
	mock.Mock
}

func (m *MockImageStorage) UploadImage(upload *storage.Upload) (string, error) {
	args := m.Called(upload)
	return args.String(0), args.Error(1)
}

func (m *MockImageStorage) DefaultActivityImage() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockImageStorage) DefaultAvatarImage() string {
	args := m.Called()
	return args.String(0)
}
