package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Course type discriminators.
const (
	CourseTypeInClass   = "in-class"
	CourseTypeVirtual   = "virtual"
	CourseTypeELearning = "elearning"
)

// E-learning course lifecycle states.
const (
	CourseStatusDraft     = "draft"
	CourseStatusPublished = "published"
	CourseStatusArchived  = "archived"
)

// Course is a unit of training content. Only e-learning courses carry a
// lifecycle status and modules.
type Course struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	Duration      int       `gorm:"not null" json:"duration"`
	Category      string    `gorm:"size:100;not null;index" json:"category"`
	CourseType    string    `gorm:"size:20;not null;index" json:"courseType"`
	Status        *string   `gorm:"size:20" json:"status,omitempty"`
	ZoomMeetingID string    `gorm:"size:100" json:"zoomMeetingId,omitempty"`
	ZoomLink      string    `gorm:"size:512" json:"zoomLink,omitempty"`
	CreatedBy     string    `gorm:"type:uuid;not null" json:"createdBy"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (c *Course) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
