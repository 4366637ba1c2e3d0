package dto

import "github.com/noah-isme/talenta-go-api/internal/patch"

// ProfileFieldCreateRequest captures the payload for defining a custom
// profile field. Name keys stored profile data and is immutable afterwards.
type ProfileFieldCreateRequest struct {
	Name      string   `json:"name" validate:"required,max=100"`
	Label     string   `json:"label" validate:"required"`
	Type      string   `json:"type" validate:"required,oneof=text number date select multiselect textarea"`
	Options   []string `json:"options"`
	Required  bool     `json:"required"`
	VisibleTo []string `json:"visibleTo" validate:"required,min=1,dive,oneof=admin trainer learner"`
}

// ProfileFieldUpdateRequest captures a partial profile field update.
type ProfileFieldUpdateRequest struct {
	Label     patch.Optional[string]   `json:"label"`
	Type      patch.Optional[string]   `json:"type"`
	Options   patch.Optional[[]string] `json:"options"`
	Required  patch.Optional[bool]     `json:"required"`
	VisibleTo patch.Optional[[]string] `json:"visibleTo"`
}

// ProfileFieldReorderRequest carries the full desired field ordering.
type ProfileFieldReorderRequest struct {
	FieldIDs []string `json:"fieldIds" validate:"required,min=1,dive,required"`
}
