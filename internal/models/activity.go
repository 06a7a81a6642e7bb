package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Activity struct {
	ID               string           `gorm:"type:uuid;primaryKey" json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	TypeID           string           `gorm:"type:uuid" json:"typeId"`
	Type             ActivityType     `gorm:"foreignKey:TypeID" json:"-"`
	Image            string           `json:"image"`
	ConfirmationCode string           `json:"-"`
	ScheduledDate    time.Time        `json:"scheduledDate"`
	Private          bool             `json:"private"`
	CreatorID        string           `gorm:"type:uuid" json:"creatorId"`
	Creator          User             `gorm:"foreignKey:CreatorID" json:"-"`
	Address          *ActivityAddress `json:"address,omitempty"`
	CompletedAt      *time.Time       `json:"completedAt"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"-"`
	// DeletedAt is the soft-delete marker. Consumer-facing reads treat a
	// deleted activity as not found; the row itself is kept for audit.
	DeletedAt *time.Time `json:"-"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// IsDeleted reports whether the activity was soft-deleted.
func (a *Activity) IsDeleted() bool {
	return a.DeletedAt != nil
}

// IsConcluded reports whether the creator already marked the activity as done.
func (a *Activity) IsConcluded() bool {
	return a.CompletedAt != nil
}

// ActivityAddress is the meeting point, created atomically with its activity.
type ActivityAddress struct {
	ID         string  `gorm:"type:uuid;primaryKey" json:"-"`
	ActivityID string  `gorm:"type:uuid;uniqueIndex" json:"-"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

func (a *ActivityAddress) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
