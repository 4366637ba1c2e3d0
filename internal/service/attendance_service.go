package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/talenta-go-api/internal/dto"
	"github.com/noah-isme/talenta-go-api/internal/models"
	"github.com/noah-isme/talenta-go-api/internal/policy"
	"github.com/noah-isme/talenta-go-api/internal/repository"
)

// ErrLearnerNotEnrolled rejects marking attendance for a learner who is not
// on the schedule's roster.
var ErrLearnerNotEnrolled = errors.New("learner is not enrolled in schedule")

// AttendanceService records and reads per-session presence.
type AttendanceService interface {
	List(ctx context.Context, identity policy.Identity, scheduleID, date string) ([]repository.AttendanceListItem, error)
	Mark(ctx context.Context, identity policy.Identity, scheduleID string, req dto.AttendanceMarkRequest) (models.Attendance, bool, error)
}

type attendanceService struct {
	attendance  repository.AttendanceRepository
	enrollments repository.EnrollmentRepository
	schedules   repository.ScheduleRepository
	engine      *policy.Engine
	validate    *validator.Validate
	logger      zerolog.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(attendance repository.AttendanceRepository, enrollments repository.EnrollmentRepository, schedules repository.ScheduleRepository, engine *policy.Engine, validate *validator.Validate, logger zerolog.Logger) AttendanceService {
	return &attendanceService{
		attendance:  attendance,
		enrollments: enrollments,
		schedules:   schedules,
		engine:      engine,
		validate:    validate,
		logger:      logger.With().Str("component", "attendance_service").Logger(),
	}
}

func (s *attendanceService) List(ctx context.Context, identity policy.Identity, scheduleID, date string) ([]repository.AttendanceListItem, error) {
	decision, err := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceAttendance, Action: policy.ActionList})
	if err != nil {
		return nil, err
	}

	filter := repository.AttendanceFilter{ScheduleID: scheduleID, Date: date}
	if decision.Scope == policy.ScopeOwnRows {
		filter.LearnerID = identity.UserID
	}

	return s.attendance.List(ctx, filter)
}

// Mark records presence for one learner on one date, overwriting any earlier
// mark for the same date. The learner must be on the schedule's roster.
func (s *attendanceService) Mark(ctx context.Context, identity policy.Identity, scheduleID string, req dto.AttendanceMarkRequest) (models.Attendance, bool, error) {
	if _, err := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceAttendance, Action: policy.ActionMark}); err != nil {
		return models.Attendance{}, false, err
	}
	if err := s.validate.Struct(req); err != nil {
		return models.Attendance{}, false, err
	}

	if _, err := s.schedules.GetByID(ctx, scheduleID); err != nil {
		return models.Attendance{}, false, err
	}

	if _, err := s.enrollments.GetByScheduleAndLearner(ctx, scheduleID, req.LearnerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Attendance{}, false, ErrLearnerNotEnrolled
		}
		return models.Attendance{}, false, err
	}

	record := models.Attendance{
		ScheduleID: scheduleID,
		LearnerID:  req.LearnerID,
		Date:       req.Date,
		Status:     req.Status,
		Notes:      req.Notes,
		MarkedBy:   identity.UserID,
	}

	saved, created, err := s.attendance.Mark(ctx, record)
	if err != nil {
		return models.Attendance{}, false, err
	}

	s.logger.Info().
		Str("schedule_id", scheduleID).
		Str("learner_id", req.LearnerID).
		Str("date", req.Date).
		Bool("created", created).
		Msg("attendance marked")
	return saved, created, nil
}
