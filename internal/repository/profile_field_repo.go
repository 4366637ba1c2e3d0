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

// ErrUnknownProfileField aborts a reorder naming a field that does not exist.
var ErrUnknownProfileField = errors.New("unknown profile field")

// ProfileFieldUpdateFields is the whitelist of columns a partial profile
// field update may touch. The name keys stored profile data and is fixed
// after creation; sort order changes only through Reorder.
var ProfileFieldUpdateFields = patch.Whitelist{
	{Name: "label", Column: "label"},
	{Name: "type", Column: "field_type"},
	{Name: "options", Column: "options"},
	{Name: "required", Column: "is_required"},
	{Name: "visibleTo", Column: "visible_to"},
}

// ProfileFieldRepository provides access to custom profile field definitions.
type ProfileFieldRepository interface {
	List(ctx context.Context) ([]models.CustomProfileField, error)
	GetByID(ctx context.Context, id string) (models.CustomProfileField, error)
	Create(ctx context.Context, field *models.CustomProfileField) error
	Update(ctx context.Context, id string, assignments patch.Assignments) error
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, fieldIDs []string) error
}

type profileFieldRepository struct {
	db *gorm.DB
}

// NewProfileFieldRepository constructs a profile field repository.
func NewProfileFieldRepository(db *gorm.DB) ProfileFieldRepository {
	return &profileFieldRepository{db: db}
}

func (r *profileFieldRepository) List(ctx context.Context) ([]models.CustomProfileField, error) {
	var fields []models.CustomProfileField
	if err := r.db.WithContext(ctx).Order("sort_order").Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

func (r *profileFieldRepository) GetByID(ctx context.Context, id string) (models.CustomProfileField, error) {
	var field models.CustomProfileField
	if err := r.db.WithContext(ctx).First(&field, "id = ?", id).Error; err != nil {
		return models.CustomProfileField{}, err
	}
	return field, nil
}

// Create appends the field at the end of the current ordering.
func (r *profileFieldRepository) Create(ctx context.Context, field *models.CustomProfileField) error {
	return database.RunAtomic(ctx, r.db,
		func(tx *gorm.DB) error {
			var maxOrder int
			err := tx.Model(&models.CustomProfileField{}).
				Select("COALESCE(MAX(sort_order), -1)").
				Scan(&maxOrder).Error
			if err != nil {
				return err
			}
			field.SortOrder = maxOrder + 1
			return nil
		},
		func(tx *gorm.DB) error {
			return tx.Create(field).Error
		},
	)
}

func (r *profileFieldRepository) Update(ctx context.Context, id string, assignments patch.Assignments) error {
	result := r.db.WithContext(ctx).
		Model(&models.CustomProfileField{}).
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

func (r *profileFieldRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.CustomProfileField{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Reorder rewrites each field's position to its index in fieldIDs as one
// atomic unit.
func (r *profileFieldRepository) Reorder(ctx context.Context, fieldIDs []string) error {
	steps := make([]database.Step, 0, len(fieldIDs))
	for index, fieldID := range fieldIDs {
		index, fieldID := index, fieldID
		steps = append(steps, func(tx *gorm.DB) error {
			result := tx.Model(&models.CustomProfileField{}).
				Where("id = ?", fieldID).
				Update("sort_order", index)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w: %s", ErrUnknownProfileField, fieldID)
			}
			return nil
		})
	}
	return database.RunAtomic(ctx, r.db, steps...)
}
