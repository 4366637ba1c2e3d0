package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Schedule kinds.
const (
	ScheduleTypeSingle   = "single"
	ScheduleTypeMultiDay = "multi-day"
	ScheduleTypeBatch    = "batch"
)

// Schedule lifecycle states.
const (
	ScheduleStatusUpcoming  = "upcoming"
	ScheduleStatusOngoing   = "ongoing"
	ScheduleStatusCompleted = "completed"
	ScheduleStatusCancelled = "cancelled"
)

// Session delivery modes.
const (
	SessionModeVirtual    = "virtual"
	SessionModeFaceToFace = "face-to-face"
)

// DefaultMaxLearners caps enrollment when the creator does not set one.
const DefaultMaxLearners = 20

// Schedule is a planned delivery of a course by a trainer. Dates are stored
// as ISO calendar dates and times as HH:MM wall-clock strings, matching the
// values clients submit.
type Schedule struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID      string    `gorm:"type:uuid;not null;index" json:"courseId"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	ScheduleType  string    `gorm:"size:20;not null" json:"scheduleType"`
	StartDate     string    `gorm:"size:10;not null;index" json:"startDate"`
	EndDate       string    `gorm:"size:10;not null" json:"endDate"`
	StartTime     string    `gorm:"size:5;not null" json:"startTime"`
	EndTime       string    `gorm:"size:5;not null" json:"endTime"`
	TrainerID     string    `gorm:"type:uuid;not null;index" json:"trainerId"`
	Location      string    `gorm:"size:255" json:"location,omitempty"`
	MaxLearners   int       `gorm:"not null" json:"maxLearners"`
	Status        string    `gorm:"size:20;not null" json:"status"`
	SessionMode   string    `gorm:"size:20;not null" json:"sessionMode"`
	ZoomLink      string    `gorm:"size:512" json:"zoomLink,omitempty"`
	ZoomMeetingID string    `gorm:"size:100" json:"zoomMeetingId,omitempty"`
	BatchNumber   *int      `json:"batchNumber,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (s *Schedule) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// ScheduleDay is one dated session of a multi-day schedule.
type ScheduleDay struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	ScheduleID string `gorm:"type:uuid;not null;index" json:"scheduleId"`
	Date       string `gorm:"size:10;not null" json:"date"`
	StartTime  string `gorm:"size:5;not null" json:"startTime"`
	EndTime    string `gorm:"size:5;not null" json:"endTime"`
}

func (d *ScheduleDay) BeforeCreate(*gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// ScheduleGroup links a learner group to a schedule.
type ScheduleGroup struct {
	ScheduleID string `gorm:"type:uuid;primaryKey" json:"scheduleId"`
	GroupID    string `gorm:"type:uuid;primaryKey" json:"groupId"`
}
