package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Module content types.
const (
	ContentTypeVideo    = "video"
	ContentTypeDocument = "document"
	ContentTypeScorm    = "scorm"
	ContentTypeQuiz     = "quiz"
)

// CourseModule is one ordered content unit inside an e-learning course.
type CourseModule struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID     string    `gorm:"type:uuid;not null;index" json:"courseId"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description,omitempty"`
	ContentType  string    `gorm:"size:20;not null" json:"contentType"`
	ContentURL   string    `gorm:"size:512" json:"contentUrl,omitempty"`
	ScormVersion string    `gorm:"size:10" json:"scormVersion,omitempty"`
	Duration     int       `gorm:"not null" json:"duration"`
	SortOrder    int       `gorm:"not null" json:"sortOrder"`
	IsRequired   bool      `gorm:"not null;default:false" json:"isRequired"`
	CreatedAt    time.Time `json:"created_at"`
}

func (m *CourseModule) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
