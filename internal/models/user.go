package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        string     `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string     `json:"name"`
	Email     string     `gorm:"uniqueIndex" json:"email"`
	CPF       string     `gorm:"column:cpf;uniqueIndex" json:"cpf"`
	Password  string     `json:"-"`
	Avatar    string     `json:"avatar"`
	XP        int        `gorm:"column:xp;default:0" json:"xp"`
	Level     int        `gorm:"default:1" json:"level"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"-"`
	// DeletedAt marks the account as deactivated. It is checked explicitly
	// instead of using gorm's soft delete so that deactivated users can
	// still be loaded and reported as Forbidden rather than vanish.
	DeletedAt *time.Time `json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// IsActive reports whether the account may be used.
func (u *User) IsActive() bool {
	return u.DeletedAt == nil
}
