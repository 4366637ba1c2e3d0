package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attendance states.
const (
	AttendanceStatusPresent = "present"
	AttendanceStatusAbsent  = "absent"
	AttendanceStatusLate    = "late"
	AttendanceStatusExcused = "excused"
)

// Attendance records one learner's presence on one schedule date. Marking
// the same (schedule, learner, date) again overwrites the existing row.
type Attendance struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	ScheduleID string    `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_schedule_learner_date" json:"scheduleId"`
	LearnerID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_schedule_learner_date" json:"learnerId"`
	Date       string    `gorm:"size:10;not null;uniqueIndex:idx_attendance_schedule_learner_date" json:"date"`
	Status     string    `gorm:"size:20;not null" json:"status"`
	MarkedBy   string    `gorm:"type:uuid;not null" json:"markedBy"`
	MarkedAt   time.Time `json:"markedAt"`
	Notes      string    `gorm:"type:text" json:"notes,omitempty"`
}

func (a *Attendance) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
