package dto

import (
	"github.com/noah-isme/talenta-go-api/internal/models"
	"github.com/noah-isme/talenta-go-api/internal/patch"
)

// CourseDetailResponse is a course with its ordered modules. Non e-learning
// courses carry no modules.
type CourseDetailResponse struct {
	models.Course
	Modules []models.CourseModule `json:"modules,omitempty"`
}

// CourseCreateRequest captures the payload for creating a course.
type CourseCreateRequest struct {
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description" validate:"required"`
	Duration      int    `json:"duration" validate:"required,gt=0"`
	Category      string `json:"category" validate:"required"`
	CourseType    string `json:"courseType" validate:"required,oneof=in-class virtual elearning"`
	ZoomMeetingID string `json:"zoomMeetingId"`
	ZoomLink      string `json:"zoomLink"`
}

// CourseUpdateRequest captures a partial course update.
type CourseUpdateRequest struct {
	Title         patch.Optional[string] `json:"title"`
	Description   patch.Optional[string] `json:"description"`
	Duration      patch.Optional[int]    `json:"duration"`
	Category      patch.Optional[string] `json:"category"`
	ZoomMeetingID patch.Optional[string] `json:"zoomMeetingId"`
	ZoomLink      patch.Optional[string] `json:"zoomLink"`
}

// ModuleCreateRequest captures the payload for adding a module to a course.
type ModuleCreateRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description"`
	ContentType  string `json:"contentType" validate:"required,oneof=video document scorm quiz"`
	ContentURL   string `json:"contentUrl"`
	ScormVersion string `json:"scormVersion"`
	Duration     int    `json:"duration" validate:"gte=0"`
	IsRequired   bool   `json:"isRequired"`
}

// ModuleUpdateRequest captures a partial module update.
type ModuleUpdateRequest struct {
	Title        patch.Optional[string] `json:"title"`
	Description  patch.Optional[string] `json:"description"`
	ContentType  patch.Optional[string] `json:"contentType"`
	ContentURL   patch.Optional[string] `json:"contentUrl"`
	ScormVersion patch.Optional[string] `json:"scormVersion"`
	Duration     patch.Optional[int]    `json:"duration"`
	IsRequired   patch.Optional[bool]   `json:"isRequired"`
}

// ModuleReorderRequest carries the full desired ordering of a course's modules.
type ModuleReorderRequest struct {
	ModuleIDs []string `json:"moduleIds" validate:"required,min=1,dive,required"`
}
