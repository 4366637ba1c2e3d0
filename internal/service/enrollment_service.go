package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/talenta-go-api/internal/dto"
	"github.com/noah-isme/talenta-go-api/internal/models"
	"github.com/noah-isme/talenta-go-api/internal/policy"
	"github.com/noah-isme/talenta-go-api/internal/repository"
)

// ErrNotALearner rejects enrolling a user who is not a learner.
var ErrNotALearner = errors.New("user is not a learner")

// EnrollmentService manages schedule rosters.
type EnrollmentService interface {
	Enroll(ctx context.Context, identity policy.Identity, scheduleID string, req dto.EnrollRequest) (models.Enrollment, error)
	Unenroll(ctx context.Context, identity policy.Identity, enrollmentID string) error
	ListBySchedule(ctx context.Context, identity policy.Identity, scheduleID string) ([]repository.EnrollmentListItem, error)
}

type enrollmentService struct {
	enrollments repository.EnrollmentRepository
	users       repository.UserRepository
	engine      *policy.Engine
	validate    *validator.Validate
	logger      zerolog.Logger
}

// NewEnrollmentService constructs the enrollment service.
func NewEnrollmentService(enrollments repository.EnrollmentRepository, users repository.UserRepository, engine *policy.Engine, validate *validator.Validate, logger zerolog.Logger) EnrollmentService {
	return &enrollmentService{
		enrollments: enrollments,
		users:       users,
		engine:      engine,
		validate:    validate,
		logger:      logger.With().Str("component", "enrollment_service").Logger(),
	}
}

func (s *enrollmentService) Enroll(ctx context.Context, identity policy.Identity, scheduleID string, req dto.EnrollRequest) (models.Enrollment, error) {
	if _, err := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceEnrollments, Action: policy.ActionEnroll}); err != nil {
		return models.Enrollment{}, err
	}
	if err := s.validate.Struct(req); err != nil {
		return models.Enrollment{}, err
	}

	learner, err := s.users.GetByID(ctx, req.LearnerID)
	if err != nil {
		return models.Enrollment{}, err
	}
	if learner.Role != string(policy.RoleLearner) {
		return models.Enrollment{}, ErrNotALearner
	}

	enrollment, err := s.enrollments.Enroll(ctx, scheduleID, req.LearnerID)
	if err != nil {
		return models.Enrollment{}, err
	}

	s.logger.Info().Str("schedule_id", scheduleID).Str("learner_id", req.LearnerID).Msg("learner enrolled")
	return enrollment, nil
}

func (s *enrollmentService) Unenroll(ctx context.Context, identity policy.Identity, enrollmentID string) error {
	if _, err := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceEnrollments, Action: policy.ActionUnenroll}); err != nil {
		return err
	}

	enrollment, err := s.enrollments.GetByID(ctx, enrollmentID)
	if err != nil {
		return err
	}
	if err := s.enrollments.Delete(ctx, enrollment.ID); err != nil {
		return err
	}

	s.logger.Info().Str("schedule_id", enrollment.ScheduleID).Str("learner_id", enrollment.LearnerID).Msg("learner unenrolled")
	return nil
}

func (s *enrollmentService) ListBySchedule(ctx context.Context, identity policy.Identity, scheduleID string) ([]repository.EnrollmentListItem, error) {
	if _, err := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceSchedules, Action: policy.ActionRead}); err != nil {
		return nil, err
	}
	return s.enrollments.ListBySchedule(ctx, scheduleID)
}
