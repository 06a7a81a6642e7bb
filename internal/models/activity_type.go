package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityType is seeded reference data.
type ActivityType struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

func (t *ActivityType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
