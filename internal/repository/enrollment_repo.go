package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/talenta-go-api/internal/models"
)

// Enrollment write failures detectable only at the store boundary.
var (
	ErrAlreadyEnrolled = errors.New("learner already enrolled")
	ErrScheduleFull    = errors.New("schedule is full")
)

// EnrollmentListItem is an enrollment row joined with learner info.
type EnrollmentListItem struct {
	models.Enrollment
	LearnerName   string `json:"learnerName"`
	LearnerEmail  string `json:"learnerEmail"`
	LearnerAvatar string `json:"learnerAvatar,omitempty"`
}

// EnrollmentRepository provides access to enrollment records.
type EnrollmentRepository interface {
	Enroll(ctx context.Context, scheduleID, learnerID string) (models.Enrollment, error)
	GetByID(ctx context.Context, id string) (models.Enrollment, error)
	GetByScheduleAndLearner(ctx context.Context, scheduleID, learnerID string) (models.Enrollment, error)
	ListBySchedule(ctx context.Context, scheduleID string) ([]EnrollmentListItem, error)
	Delete(ctx context.Context, id string) error
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository constructs an enrollment repository.
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

// Enroll runs the duplicate and capacity checks and the insert inside one
// transaction. Serialising concurrent enrollments against the same schedule
// is delegated to the store's isolation; the unique
// (schedule_id, learner_id) index backstops duplicates either way.
func (r *enrollmentRepository) Enroll(ctx context.Context, scheduleID, learnerID string) (models.Enrollment, error) {
	var enrollment models.Enrollment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var schedule models.Schedule
		if err := tx.First(&schedule, "id = ?", scheduleID).Error; err != nil {
			return err
		}

		var existing int64
		err := tx.Model(&models.Enrollment{}).
			Where("schedule_id = ? AND learner_id = ?", scheduleID, learnerID).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyEnrolled
		}

		var active int64
		err = tx.Model(&models.Enrollment{}).
			Where("schedule_id = ? AND status = ?", scheduleID, models.EnrollmentStatusActive).
			Count(&active).Error
		if err != nil {
			return err
		}
		if active >= int64(schedule.MaxLearners) {
			return ErrScheduleFull
		}

		enrollment = models.Enrollment{
			ScheduleID: scheduleID,
			LearnerID:  learnerID,
			EnrolledAt: time.Now(),
			Status:     models.EnrollmentStatusActive,
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyEnrolled
			}
			return err
		}
		return nil
	})
	if err != nil {
		return models.Enrollment{}, err
	}
	return enrollment, nil
}

func (r *enrollmentRepository) GetByID(ctx context.Context, id string) (models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := r.db.WithContext(ctx).First(&enrollment, "id = ?", id).Error; err != nil {
		return models.Enrollment{}, err
	}
	return enrollment, nil
}

func (r *enrollmentRepository) GetByScheduleAndLearner(ctx context.Context, scheduleID, learnerID string) (models.Enrollment, error) {
	var enrollment models.Enrollment
	err := r.db.WithContext(ctx).
		First(&enrollment, "schedule_id = ? AND learner_id = ?", scheduleID, learnerID).Error
	if err != nil {
		return models.Enrollment{}, err
	}
	return enrollment, nil
}

func (r *enrollmentRepository) ListBySchedule(ctx context.Context, scheduleID string) ([]EnrollmentListItem, error) {
	return listEnrollments(r.db.WithContext(ctx), scheduleID)
}

func (r *enrollmentRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Enrollment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func listEnrollments(db *gorm.DB, scheduleID string) ([]EnrollmentListItem, error) {
	var items []EnrollmentListItem
	err := db.Model(&models.Enrollment{}).
		Select("enrollments.*, users.name AS learner_name, users.email AS learner_email, users.avatar AS learner_avatar").
		Joins("JOIN users ON users.id = enrollments.learner_id").
		Where("enrollments.schedule_id = ?", scheduleID).
		Order("enrollments.enrolled_at").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
