package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enrollment states.
const (
	EnrollmentStatusActive    = "active"
	EnrollmentStatusCompleted = "completed"
	EnrollmentStatusDropped   = "dropped"
)

// Enrollment ties a learner to a schedule. The unique index backstops the
// duplicate check performed inside the enroll transaction.
type Enrollment struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	ScheduleID string    `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_schedule_learner" json:"scheduleId"`
	LearnerID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_schedule_learner" json:"learnerId"`
	EnrolledAt time.Time `json:"enrolledAt"`
	Status     string    `gorm:"size:20;not null" json:"status"`
}

func (e *Enrollment) BeforeCreate(*gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
