package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityParticipant joins a user to an activity. The composite unique index
// backs the at-most-one-subscription invariant even under concurrent inserts.
type ActivityParticipant struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	ActivityID  string     `gorm:"type:uuid;uniqueIndex:idx_participants_activity_user" json:"activityId"`
	UserID      string     `gorm:"type:uuid;uniqueIndex:idx_participants_activity_user" json:"userId"`
	User        User       `gorm:"foreignKey:UserID" json:"-"`
	Approved    bool       `json:"approved"`
	ConfirmedAt *time.Time `json:"confirmedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func (p *ActivityParticipant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// IsConfirmed reports whether the participant already checked in.
func (p *ActivityParticipant) IsConfirmed() bool {
	return p.ConfirmedAt != nil
}
