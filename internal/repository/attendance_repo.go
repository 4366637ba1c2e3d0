package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/talenta-go-api/internal/models"
)

// AttendanceFilter narrows attendance listings. LearnerID doubles as the
// policy scope for learners reading their own rows.
type AttendanceFilter struct {
	ScheduleID string
	Date       string
	LearnerID  string
}

// AttendanceListItem is an attendance row joined with learner info.
type AttendanceListItem struct {
	models.Attendance
	LearnerName string `json:"learnerName"`
}

// AttendanceRepository provides access to attendance records.
type AttendanceRepository interface {
	List(ctx context.Context, filter AttendanceFilter) ([]AttendanceListItem, error)
	Mark(ctx context.Context, record models.Attendance) (models.Attendance, bool, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository constructs an attendance repository.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) List(ctx context.Context, filter AttendanceFilter) ([]AttendanceListItem, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Attendance{}).
		Select("attendances.*, users.name AS learner_name").
		Joins("JOIN users ON users.id = attendances.learner_id").
		Where("attendances.schedule_id = ?", filter.ScheduleID)

	if filter.Date != "" {
		query = query.Where("attendances.date = ?", filter.Date)
	}
	if filter.LearnerID != "" {
		query = query.Where("attendances.learner_id = ?", filter.LearnerID)
	}

	var items []AttendanceListItem
	if err := query.Order("attendances.date DESC, users.name").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Mark creates the row for (schedule, learner, date) or overwrites the
// existing one, inside a single transaction. The second return value is
// true when a new row was created.
func (r *attendanceRepository) Mark(ctx context.Context, record models.Attendance) (models.Attendance, bool, error) {
	var (
		saved   models.Attendance
		created bool
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Attendance
		err := tx.First(&existing, "schedule_id = ? AND learner_id = ? AND date = ?",
			record.ScheduleID, record.LearnerID, record.Date).Error
		switch {
		case err == nil:
			updates := map[string]interface{}{
				"status":    record.Status,
				"notes":     record.Notes,
				"marked_by": record.MarkedBy,
				"marked_at": time.Now(),
			}
			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return err
			}
			return tx.First(&saved, "id = ?", existing.ID).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			record.MarkedAt = time.Now()
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
			saved = record
			created = true
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return models.Attendance{}, false, err
	}
	return saved, created, nil
}
