package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Achievement is seeded reference data. Name is the lookup key used by the
// progress service when granting.
type Achievement struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string `gorm:"uniqueIndex" json:"name"`
	Criterion string `json:"criterion"`
}

func (a *Achievement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// UserAchievement records a grant. The composite unique index guarantees a
// badge is never granted twice to the same user, even when two grants race.
type UserAchievement struct {
	ID            string      `gorm:"type:uuid;primaryKey" json:"-"`
	UserID        string      `gorm:"type:uuid;uniqueIndex:idx_user_achievements_user_achievement" json:"userId"`
	AchievementID string      `gorm:"type:uuid;uniqueIndex:idx_user_achievements_user_achievement" json:"achievementId"`
	Achievement   Achievement `gorm:"foreignKey:AchievementID" json:"-"`
	CreatedAt     time.Time   `json:"grantedAt"`
}

func (ua *UserAchievement) BeforeCreate(tx *gorm.DB) error {
	if ua.ID == "" {
		ua.ID = uuid.NewString()
	}
	return nil
}
