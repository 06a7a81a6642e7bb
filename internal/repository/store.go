package repository

import (
	"gorm.io/gorm"
)

// Store bundles the per-entity repositories behind one constructor so services
// receive their whole data-access surface as a single injected dependency.
// WithinTransaction yields a Store bound to one database transaction, used by
// the multi-entity check-in sequence.
type Store interface {
	Users() UserRepository
	Activities() ActivityRepository
	Participants() ParticipantRepository
	ActivityTypes() ActivityTypeRepository
	Preferences() PreferenceRepository
	Achievements() AchievementRepository
	WithinTransaction(fn func(Store) error) error
}

type gormStore struct {
	db           *gorm.DB
	users        UserRepository
	activities   ActivityRepository
	participants ParticipantRepository
	types        ActivityTypeRepository
	preferences  PreferenceRepository
	achievements AchievementRepository
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{
		db:           db,
		users:        NewUserRepository(db),
		activities:   NewActivityRepository(db),
		participants: NewParticipantRepository(db),
		types:        NewActivityTypeRepository(db),
		preferences:  NewPreferenceRepository(db),
		achievements: NewAchievementRepository(db),
	}
}

func (s *gormStore) Users() UserRepository                 { return s.users }
func (s *gormStore) Activities() ActivityRepository        { return s.activities }
func (s *gormStore) Participants() ParticipantRepository   { return s.participants }
func (s *gormStore) ActivityTypes() ActivityTypeRepository { return s.types }
func (s *gormStore) Preferences() PreferenceRepository     { return s.preferences }
func (s *gormStore) Achievements() AchievementRepository   { return s.achievements }

func (s *gormStore) WithinTransaction(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
