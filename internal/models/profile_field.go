package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Profile field input types.
const (
	FieldTypeText        = "text"
	FieldTypeNumber      = "number"
	FieldTypeDate        = "date"
	FieldTypeSelect      = "select"
	FieldTypeMultiSelect = "multiselect"
	FieldTypeTextarea    = "textarea"
)

// CustomProfileField defines one admin-configured profile attribute.
// Options and VisibleTo are JSON lists; Name keys the values stored in
// users.profile_data.
type CustomProfileField struct {
	ID         string         `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string         `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Label      string         `gorm:"size:255;not null" json:"label"`
	FieldType  string         `gorm:"size:20;not null" json:"fieldType"`
	Options    datatypes.JSON `json:"options,omitempty"`
	IsRequired bool           `gorm:"not null;default:false" json:"isRequired"`
	SortOrder  int            `gorm:"not null" json:"sortOrder"`
	VisibleTo  datatypes.JSON `gorm:"not null" json:"visibleTo"`
	CreatedAt  time.Time      `json:"created_at"`
}

func (f *CustomProfileField) BeforeCreate(*gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
