package services

import (
	"errors"
	"os"
	"strconv"

	"bora/internal/apperr"
	"bora/internal/events"
	"bora/internal/models"
	"bora/internal/repository"

	"gorm.io/gorm"
)

// AchievementKey enumerates the grantable badges. Keys are resolved to the
// seeded achievement names internally so business logic never depends on
// display text scattered through call sites.
type AchievementKey int

const (
	AchievementFirstCheckIn AchievementKey = iota
	AchievementFirstCreation
	AchievementFirstConclusion
	AchievementLevel5Reached
)

func (k AchievementKey) name() string {
	switch k {
	case AchievementFirstCheckIn:
		return "Pioneiro"
	case AchievementFirstCreation:
		return "Criador iniciante"
	case AchievementFirstConclusion:
		return "Ambicioso"
	case AchievementLevel5Reached:
		return "Explorador"
	default:
		return ""
	}
}

type ProgressConfig struct {
	CheckInXP     int
	MaxXPPerLevel int
}

// LoadProgressConfig reads the XP tuning from the environment with the
// documented fallbacks (100 XP per check-in, 500 XP per level).
func LoadProgressConfig() ProgressConfig {
	cfg := ProgressConfig{CheckInXP: 100, MaxXPPerLevel: 500}
	if v, err := strconv.Atoi(os.Getenv("CHECKIN_XP")); err == nil && v > 0 {
		cfg.CheckInXP = v
	}
	if v, err := strconv.Atoi(os.Getenv("MAX_XP_PER_LEVEL")); err == nil && v > 0 {
		cfg.MaxXPPerLevel = v
	}
	return cfg
}

// ProgressService owns XP accrual, level arithmetic and achievement granting.
type ProgressService struct {
	store  repository.Store
	events events.Publisher
	config ProgressConfig
}

func NewProgressService(store repository.Store, publisher events.Publisher, config ProgressConfig) *ProgressService {
	if config.CheckInXP <= 0 {
		config.CheckInXP = 100
	}
	if config.MaxXPPerLevel <= 0 {
		config.MaxXPPerLevel = 500
	}
	return &ProgressService{store: store, events: publisher, config: config}
}

// CheckInXP is the fixed award granted to both sides of a check-in.
func (s *ProgressService) CheckInXP() int {
	return s.config.CheckInXP
}

// withStore rebinds the service to a transaction-scoped store.
func (s *ProgressService) withStore(store repository.Store) *ProgressService {
	clone := *s
	clone.store = store
	return &clone
}

// AddExperience applies an XP delta to the user. Crossing the per-level cap
// increments the level by exactly one and keeps the remainder; landing on the
// cap exactly resets XP to zero. This mirrors the fixed small-award model:
// a single call never advances more than one level.
func (s *ProgressService) AddExperience(userID string, delta int) (*models.User, error) {
	user, err := s.store.Users().FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	if !IsActive(user) {
		return nil, apperr.Forbidden("this account was deactivated and cannot be used")
	}

	cap := s.config.MaxXPPerLevel
	total := user.XP + delta
	leveledUp := false
	switch {
	case total > cap:
		user.Level++
		user.XP = total % cap
		leveledUp = true
	case total == cap:
		user.Level++
		user.XP = 0
		leveledUp = true
	default:
		user.XP = total
	}

	if err := s.store.Users().Update(user); err != nil {
		return nil, err
	}

	s.events.Publish(events.Event{
		Name:   events.EventXPAwarded,
		UserID: user.ID,
		Data:   map[string]interface{}{"delta": delta, "xp": user.XP, "level": user.Level},
	})
	if leveledUp {
		s.events.Publish(events.Event{
			Name:   events.EventLevelUp,
			UserID: user.ID,
			Data:   map[string]interface{}{"level": user.Level},
		})
	}

	return user, nil
}

// Grant awards the badge once. A missing achievement row (unseeded database)
// is a no-op; a concurrent duplicate insert is swallowed because the unique
// index already guarantees the at-most-once invariant.
func (s *ProgressService) Grant(userID string, key AchievementKey) error {
	achievement, err := s.store.Achievements().FindByName(key.name())
	if err != nil {
		return err
	}
	if achievement == nil {
		return nil
	}

	existing, err := s.store.Achievements().FindGrant(userID, achievement.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	grant := &models.UserAchievement{UserID: userID, AchievementID: achievement.ID}
	if err := s.store.Achievements().Grant(grant); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}

	s.events.Publish(events.Event{
		Name:   events.EventAchievementGranted,
		UserID: userID,
		Data:   map[string]interface{}{"achievement": achievement.Name},
	})

	return nil
}
