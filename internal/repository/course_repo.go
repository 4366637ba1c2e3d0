package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/noah-isme/talenta-go-api/internal/database"
	"github.com/noah-isme/talenta-go-api/internal/models"
	"github.com/noah-isme/talenta-go-api/internal/patch"
)

// ErrCourseHasSchedules blocks deleting a course that schedules still reference.
var ErrCourseHasSchedules = errors.New("course has schedules")

// CourseUpdateFields is the whitelist of columns a partial course update may
// touch. Status changes go through SetStatus, ownership never changes.
var CourseUpdateFields = patch.Whitelist{
	{Name: "title", Column: "title"},
	{Name: "description", Column: "description"},
	{Name: "duration", Column: "duration"},
	{Name: "category", Column: "category"},
	{Name: "zoomMeetingId", Column: "zoom_meeting_id"},
	{Name: "zoomLink", Column: "zoom_link"},
}

// CourseFilter narrows course listings.
type CourseFilter struct {
	CourseType string
	Status     string
	Search     string
}

// CourseRepository provides access to course records.
type CourseRepository interface {
	List(ctx context.Context, filter CourseFilter) ([]models.Course, error)
	GetByID(ctx context.Context, id string) (models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, id string, assignments patch.Assignments) error
	SetStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]string, error)
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository constructs a course repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) List(ctx context.Context, filter CourseFilter) ([]models.Course, error) {
	query := r.db.WithContext(ctx).Model(&models.Course{})

	if filter.CourseType != "" {
		query = query.Where("course_type = ?", filter.CourseType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("(title LIKE ? OR description LIKE ? OR category LIKE ?)", pattern, pattern, pattern)
	}

	var courses []models.Course
	if err := query.Order("created_at DESC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) GetByID(ctx context.Context, id string) (models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).First(&course, "id = ?", id).Error; err != nil {
		return models.Course{}, err
	}
	return course, nil
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) Update(ctx context.Context, id string, assignments patch.Assignments) error {
	result := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Where("id = ?", id).
		Updates(assignments.Map())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *courseRepository) SetStatus(ctx context.Context, id, status string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a course unless any schedule references it. The guard and
// the delete run inside one transaction so a schedule created concurrently
// cannot slip between them.
func (r *courseRepository) Delete(ctx context.Context, id string) error {
	return database.RunAtomic(ctx, r.db,
		func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&models.Schedule{}).Where("course_id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrCourseHasSchedules
			}
			return nil
		},
		func(tx *gorm.DB) error {
			result := tx.Delete(&models.Course{}, "id = ?", id)
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

func (r *courseRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
