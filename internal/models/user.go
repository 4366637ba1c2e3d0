package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is any person on the platform: admin, trainer, or learner.
type User struct {
	ID          string            `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string            `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password    string            `gorm:"size:255;not null" json:"-"`
	Name        string            `gorm:"size:255;not null" json:"name"`
	Role        string            `gorm:"size:20;not null;index" json:"role"`
	Avatar      string            `gorm:"size:512" json:"avatar,omitempty"`
	ProfileData datatypes.JSONMap `json:"profileData,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// BeforeCreate assigns a UUID when none was provided.
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
