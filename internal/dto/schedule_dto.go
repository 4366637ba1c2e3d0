package dto

import "github.com/noah-isme/talenta-go-api/internal/patch"

// ScheduleDayRequest is one dated session of a multi-day schedule.
type ScheduleDayRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// ScheduleCreateRequest captures the payload for creating a schedule. The
// wire name of the schedule kind is "type".
type ScheduleCreateRequest struct {
	CourseID      string               `json:"courseId" validate:"required"`
	Title         string               `json:"title" validate:"required"`
	Type          string               `json:"type" validate:"required,oneof=single multi-day batch"`
	StartDate     string               `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate       string               `json:"endDate" validate:"required,datetime=2006-01-02"`
	StartTime     string               `json:"startTime" validate:"required"`
	EndTime       string               `json:"endTime" validate:"required"`
	TrainerID     string               `json:"trainerId"`
	Location      string               `json:"location"`
	MaxLearners   int                  `json:"maxLearners" validate:"gte=0"`
	SessionMode   string               `json:"sessionMode" validate:"required,oneof=virtual face-to-face"`
	ZoomLink      string               `json:"zoomLink"`
	ZoomMeetingID string               `json:"zoomMeetingId"`
	BatchNumber   *int                 `json:"batchNumber"`
	ScheduleDays  []ScheduleDayRequest `json:"scheduleDays" validate:"dive"`
	GroupIDs      []string             `json:"groupIds"`
}

// ScheduleUpdateRequest captures a partial schedule update. ScheduleDays and
// GroupIDs replace their child rows wholesale when present and are left
// untouched when absent.
type ScheduleUpdateRequest struct {
	Title         patch.Optional[string] `json:"title"`
	StartDate     patch.Optional[string] `json:"startDate"`
	EndDate       patch.Optional[string] `json:"endDate"`
	StartTime     patch.Optional[string] `json:"startTime"`
	EndTime       patch.Optional[string] `json:"endTime"`
	Location      patch.Optional[string] `json:"location"`
	MaxLearners   patch.Optional[int]    `json:"maxLearners"`
	Status        patch.Optional[string] `json:"status"`
	ZoomLink      patch.Optional[string] `json:"zoomLink"`
	ZoomMeetingID patch.Optional[string] `json:"zoomMeetingId"`
	BatchNumber   patch.Optional[int]    `json:"batchNumber"`
	TrainerID     patch.Optional[string] `json:"trainerId"`
	ScheduleDays  *[]ScheduleDayRequest  `json:"scheduleDays"`
	GroupIDs      *[]string              `json:"groupIds"`
}

// ScheduleReassignRequest moves a schedule to another trainer.
type ScheduleReassignRequest struct {
	TrainerID string `json:"trainerId" validate:"required"`
}

// EnrollRequest adds a learner to a schedule.
type EnrollRequest struct {
	LearnerID string `json:"learnerId" validate:"required"`
}

// AttendanceMarkRequest records one learner's presence on one schedule date.
type AttendanceMarkRequest struct {
	LearnerID string `json:"learnerId" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Status    string `json:"status" validate:"required,oneof=present absent late excused"`
	Notes     string `json:"notes"`
}
