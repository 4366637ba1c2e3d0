package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/noah-isme/talenta-go-api/internal/database"
	"github.com/noah-isme/talenta-go-api/internal/models"
	"github.com/noah-isme/talenta-go-api/internal/patch"
)

// ErrModuleOutsideCourse aborts a reorder naming a module that does not
// belong to the course. The whole reorder rolls back.
var ErrModuleOutsideCourse = errors.New("module does not belong to course")

// ModuleUpdateFields is the whitelist of columns a partial module update may
// touch. Sort order changes only through Reorder.
var ModuleUpdateFields = patch.Whitelist{
	{Name: "title", Column: "title"},
	{Name: "description", Column: "description"},
	{Name: "contentType", Column: "content_type"},
	{Name: "contentUrl", Column: "content_url"},
	{Name: "scormVersion", Column: "scorm_version"},
	{Name: "duration", Column: "duration"},
	{Name: "isRequired", Column: "is_required"},
}

// ModuleRepository provides access to course module records.
type ModuleRepository interface {
	ListByCourse(ctx context.Context, courseID string) ([]models.CourseModule, error)
	GetByID(ctx context.Context, courseID, moduleID string) (models.CourseModule, error)
	Create(ctx context.Context, module *models.CourseModule) error
	Update(ctx context.Context, courseID, moduleID string, assignments patch.Assignments) error
	Delete(ctx context.Context, courseID, moduleID string) error
	Reorder(ctx context.Context, courseID string, moduleIDs []string) error
}

type moduleRepository struct {
	db *gorm.DB
}

// NewModuleRepository constructs a course module repository.
func NewModuleRepository(db *gorm.DB) ModuleRepository {
	return &moduleRepository{db: db}
}

func (r *moduleRepository) ListByCourse(ctx context.Context, courseID string) ([]models.CourseModule, error) {
	var modules []models.CourseModule
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("sort_order").
		Find(&modules).Error
	if err != nil {
		return nil, err
	}
	return modules, nil
}

func (r *moduleRepository) GetByID(ctx context.Context, courseID, moduleID string) (models.CourseModule, error) {
	var module models.CourseModule
	err := r.db.WithContext(ctx).
		First(&module, "id = ? AND course_id = ?", moduleID, courseID).Error
	if err != nil {
		return models.CourseModule{}, err
	}
	return module, nil
}

// Create appends the module at the end of the course's current ordering.
func (r *moduleRepository) Create(ctx context.Context, module *models.CourseModule) error {
	return database.RunAtomic(ctx, r.db,
		func(tx *gorm.DB) error {
			var maxOrder int
			err := tx.Model(&models.CourseModule{}).
				Where("course_id = ?", module.CourseID).
				Select("COALESCE(MAX(sort_order), -1)").
				Scan(&maxOrder).Error
			if err != nil {
				return err
			}
			module.SortOrder = maxOrder + 1
			return nil
		},
		func(tx *gorm.DB) error {
			return tx.Create(module).Error
		},
	)
}

func (r *moduleRepository) Update(ctx context.Context, courseID, moduleID string, assignments patch.Assignments) error {
	result := r.db.WithContext(ctx).
		Model(&models.CourseModule{}).
		Where("id = ? AND course_id = ?", moduleID, courseID).
		Updates(assignments.Map())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *moduleRepository) Delete(ctx context.Context, courseID, moduleID string) error {
	result := r.db.WithContext(ctx).
		Delete(&models.CourseModule{}, "id = ? AND course_id = ?", moduleID, courseID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Reorder rewrites each module's position to its index in moduleIDs as one
// atomic unit; a failure partway leaves the previous ordering intact.
func (r *moduleRepository) Reorder(ctx context.Context, courseID string, moduleIDs []string) error {
	steps := make([]database.Step, 0, len(moduleIDs))
	for index, moduleID := range moduleIDs {
		index, moduleID := index, moduleID
		steps = append(steps, func(tx *gorm.DB) error {
			result := tx.Model(&models.CourseModule{}).
				Where("id = ? AND course_id = ?", moduleID, courseID).
				Update("sort_order", index)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w: %s", ErrModuleOutsideCourse, moduleID)
			}
			return nil
		})
	}
	return database.RunAtomic(ctx, r.db, steps...)
}
