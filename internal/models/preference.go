package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Preference links a user to an activity type they want to see first.
type Preference struct {
	ID     string       `gorm:"type:uuid;primaryKey" json:"-"`
	UserID string       `gorm:"type:uuid;uniqueIndex:idx_preferences_user_type" json:"userId"`
	TypeID string       `gorm:"type:uuid;uniqueIndex:idx_preferences_user_type" json:"typeId"`
	Type   ActivityType `gorm:"foreignKey:TypeID" json:"-"`
}

func (p *Preference) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
