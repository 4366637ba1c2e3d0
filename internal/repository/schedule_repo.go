package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/talenta-go-api/internal/database"
	"github.com/noah-isme/talenta-go-api/internal/models"
	"github.com/noah-isme/talenta-go-api/internal/patch"
)

// ScheduleUpdateFields is the whitelist of columns a partial schedule update
// may touch. The trainer column is separate: reassignment is its own
// admin-only operation and must not ride along in a generic patch.
var ScheduleUpdateFields = patch.Whitelist{
	{Name: "title", Column: "title"},
	{Name: "startDate", Column: "start_date"},
	{Name: "endDate", Column: "end_date"},
	{Name: "startTime", Column: "start_time"},
	{Name: "endTime", Column: "end_time"},
	{Name: "location", Column: "location"},
	{Name: "maxLearners", Column: "max_learners"},
	{Name: "status", Column: "status"},
	{Name: "zoomLink", Column: "zoom_link"},
	{Name: "zoomMeetingId", Column: "zoom_meeting_id"},
	{Name: "batchNumber", Column: "batch_number"},
}

// ScheduleTrainerField extends the whitelist for admin callers who may
// reassign the trainer.
var ScheduleTrainerField = patch.Field{Name: "trainerId", Column: "trainer_id"}

// ScheduleFilter narrows schedule listings. EnrolledLearnerID is the policy
// scope for learners and is ANDed with the caller-supplied filters.
type ScheduleFilter struct {
	CourseID          string
	TrainerID         string
	Status            string
	StartDate         string
	EndDate           string
	EnrolledLearnerID string
}

// ScheduleListItem is a schedule row joined with course and trainer info.
type ScheduleListItem struct {
	models.Schedule
	CourseTitle string `json:"courseTitle"`
	TrainerName string `json:"trainerName"`
}

// ScheduleDetail aggregates a schedule with its child rows.
type ScheduleDetail struct {
	ScheduleListItem
	ScheduleDays []models.ScheduleDay `json:"scheduleDays"`
	GroupIDs     []string             `json:"groupIds"`
	Enrollments  []EnrollmentListItem `json:"enrollments"`
}

// ScheduleRepository provides access to schedule records and their children.
type ScheduleRepository interface {
	List(ctx context.Context, filter ScheduleFilter) ([]ScheduleListItem, error)
	GetByID(ctx context.Context, id string) (models.Schedule, error)
	GetDetail(ctx context.Context, id string) (ScheduleDetail, error)
	Create(ctx context.Context, schedule *models.Schedule, days []models.ScheduleDay, groupIDs []string) error
	Update(ctx context.Context, id string, assignments patch.Assignments, days *[]models.ScheduleDay, groupIDs *[]string) error
	Delete(ctx context.Context, id string) error
}

type scheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository constructs a schedule repository.
func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) List(ctx context.Context, filter ScheduleFilter) ([]ScheduleListItem, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Schedule{}).
		Select("schedules.*, courses.title AS course_title, users.name AS trainer_name").
		Joins("JOIN courses ON courses.id = schedules.course_id").
		Joins("JOIN users ON users.id = schedules.trainer_id")

	if filter.CourseID != "" {
		query = query.Where("schedules.course_id = ?", filter.CourseID)
	}
	if filter.TrainerID != "" {
		query = query.Where("schedules.trainer_id = ?", filter.TrainerID)
	}
	if filter.Status != "" {
		query = query.Where("schedules.status = ?", filter.Status)
	}
	if filter.StartDate != "" {
		query = query.Where("schedules.start_date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		query = query.Where("schedules.end_date <= ?", filter.EndDate)
	}
	if filter.EnrolledLearnerID != "" {
		query = query.Where("schedules.id IN (SELECT schedule_id FROM enrollments WHERE learner_id = ?)", filter.EnrolledLearnerID)
	}

	var items []ScheduleListItem
	if err := query.Order("schedules.start_date DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *scheduleRepository) GetByID(ctx context.Context, id string) (models.Schedule, error) {
	var schedule models.Schedule
	if err := r.db.WithContext(ctx).First(&schedule, "id = ?", id).Error; err != nil {
		return models.Schedule{}, err
	}
	return schedule, nil
}

func (r *scheduleRepository) GetDetail(ctx context.Context, id string) (ScheduleDetail, error) {
	var detail ScheduleDetail
	err := r.db.WithContext(ctx).
		Model(&models.Schedule{}).
		Select("schedules.*, courses.title AS course_title, users.name AS trainer_name").
		Joins("JOIN courses ON courses.id = schedules.course_id").
		Joins("JOIN users ON users.id = schedules.trainer_id").
		Where("schedules.id = ?", id).
		First(&detail.ScheduleListItem).Error
	if err != nil {
		return ScheduleDetail{}, err
	}

	if err := r.db.WithContext(ctx).Where("schedule_id = ?", id).Order("date").Find(&detail.ScheduleDays).Error; err != nil {
		return ScheduleDetail{}, err
	}

	err = r.db.WithContext(ctx).
		Model(&models.ScheduleGroup{}).
		Where("schedule_id = ?", id).
		Pluck("group_id", &detail.GroupIDs).Error
	if err != nil {
		return ScheduleDetail{}, err
	}

	detail.Enrollments, err = listEnrollments(r.db.WithContext(ctx), id)
	if err != nil {
		return ScheduleDetail{}, err
	}

	return detail, nil
}

// Create inserts the schedule with its day rows and group links as one
// atomic unit.
func (r *scheduleRepository) Create(ctx context.Context, schedule *models.Schedule, days []models.ScheduleDay, groupIDs []string) error {
	return database.RunAtomic(ctx, r.db,
		func(tx *gorm.DB) error {
			return tx.Create(schedule).Error
		},
		func(tx *gorm.DB) error {
			return insertScheduleChildren(tx, schedule.ID, days, groupIDs)
		},
	)
}

// Update applies the assignments and, when day rows or group links are
// supplied, replaces them wholesale inside the same transaction. Empty
// assignments are allowed so child rows can be replaced on their own.
func (r *scheduleRepository) Update(ctx context.Context, id string, assignments patch.Assignments, days *[]models.ScheduleDay, groupIDs *[]string) error {
	return database.RunAtomic(ctx, r.db,
		func(tx *gorm.DB) error {
			updates := assignments.Map()
			if len(updates) == 0 {
				var count int64
				if err := tx.Model(&models.Schedule{}).Where("id = ?", id).Count(&count).Error; err != nil {
					return err
				}
				if count == 0 {
					return gorm.ErrRecordNotFound
				}
				return nil
			}

			result := tx.Model(&models.Schedule{}).
				Where("id = ?", id).
				Updates(updates)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			return nil
		},
		func(tx *gorm.DB) error {
			if days == nil {
				return nil
			}
			if err := tx.Delete(&models.ScheduleDay{}, "schedule_id = ?", id).Error; err != nil {
				return err
			}
			return insertScheduleChildren(tx, id, *days, nil)
		},
		func(tx *gorm.DB) error {
			if groupIDs == nil {
				return nil
			}
			if err := tx.Delete(&models.ScheduleGroup{}, "schedule_id = ?", id).Error; err != nil {
				return err
			}
			return insertScheduleChildren(tx, id, nil, *groupIDs)
		},
	)
}

func (r *scheduleRepository) Delete(ctx context.Context, id string) error {
	return database.RunAtomic(ctx, r.db,
		func(tx *gorm.DB) error {
			if err := tx.Delete(&models.ScheduleDay{}, "schedule_id = ?", id).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.ScheduleGroup{}, "schedule_id = ?", id).Error; err != nil {
				return err
			}
			return tx.Delete(&models.Enrollment{}, "schedule_id = ?", id).Error
		},
		func(tx *gorm.DB) error {
			result := tx.Delete(&models.Schedule{}, "id = ?", id)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			return nil
		},
	)
}

func insertScheduleChildren(tx *gorm.DB, scheduleID string, days []models.ScheduleDay, groupIDs []string) error {
	for i := range days {
		days[i].ScheduleID = scheduleID
		if err := tx.Create(&days[i]).Error; err != nil {
			return err
		}
	}
	for _, groupID := range groupIDs {
		link := models.ScheduleGroup{ScheduleID: scheduleID, GroupID: groupID}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}
