package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/talenta-go-api/internal/dto"
	"github.com/noah-isme/talenta-go-api/internal/models"
	"github.com/noah-isme/talenta-go-api/internal/patch"
	"github.com/noah-isme/talenta-go-api/internal/policy"
	"github.com/noah-isme/talenta-go-api/internal/repository"
)

// ErrNotATrainer rejects assigning a schedule to a user who is not a trainer.
var ErrNotATrainer = errors.New("assigned user is not a trainer")

// ScheduleService manages course deliveries and who runs them.
type ScheduleService interface {
	List(ctx context.Context, identity policy.Identity, filter repository.ScheduleFilter) ([]repository.ScheduleListItem, error)
	Get(ctx context.Context, identity policy.Identity, id string) (repository.ScheduleDetail, error)
	Create(ctx context.Context, identity policy.Identity, req dto.ScheduleCreateRequest) (models.Schedule, error)
	Update(ctx context.Context, identity policy.Identity, id string, req dto.ScheduleUpdateRequest) (models.Schedule, error)
	Reassign(ctx context.Context, identity policy.Identity, id string, req dto.ScheduleReassignRequest) (models.Schedule, error)
	Delete(ctx context.Context, identity policy.Identity, id string) error
}

type scheduleService struct {
	schedules repository.ScheduleRepository
	courses   repository.CourseRepository
	users     repository.UserRepository
	engine    *policy.Engine
	validate  *validator.Validate
	logger    zerolog.Logger
}

// NewScheduleService constructs the schedule service.
func NewScheduleService(schedules repository.ScheduleRepository, courses repository.CourseRepository, users repository.UserRepository, engine *policy.Engine, validate *validator.Validate, logger zerolog.Logger) ScheduleService {
	return &scheduleService{
		schedules: schedules,
		courses:   courses,
		users:     users,
		engine:    engine,
		validate:  validate,
		logger:    logger.With().Str("component", "schedule_service").Logger(),
	}
}

func (s *scheduleService) List(ctx context.Context, identity policy.Identity, filter repository.ScheduleFilter) ([]repository.ScheduleListItem, error) {
	decision, err := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceSchedules, Action: policy.ActionList})
	if err != nil {
		return nil, err
	}
	if decision.Scope == policy.ScopeOwnEnrollments {
		filter.EnrolledLearnerID = identity.UserID
	}

	return s.schedules.List(ctx, filter)
}

func (s *scheduleService) Get(ctx context.Context, identity policy.Identity, id string) (repository.ScheduleDetail, error) {
	if _, err := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceSchedules, Action: policy.ActionRead}); err != nil {
		return repository.ScheduleDetail{}, err
	}
	return s.schedules.GetDetail(ctx, id)
}

// Create inserts a schedule. Trainers always schedule themselves; only
// admins pick the trainer.
func (s *scheduleService) Create(ctx context.Context, identity policy.Identity, req dto.ScheduleCreateRequest) (models.Schedule, error) {
	if _, err := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceSchedules, Action: policy.ActionCreate}); err != nil {
		return models.Schedule{}, err
	}
	if err := s.validate.Struct(req); err != nil {
		return models.Schedule{}, err
	}

	if _, err := s.courses.GetByID(ctx, req.CourseID); err != nil {
		return models.Schedule{}, err
	}

	trainerID := req.TrainerID
	if identity.Role == policy.RoleTrainer {
		trainerID = identity.UserID
	}
	if err := s.requireTrainer(ctx, trainerID); err != nil {
		return models.Schedule{}, err
	}

	maxLearners := req.MaxLearners
	if maxLearners <= 0 {
		maxLearners = models.DefaultMaxLearners
	}

	schedule := models.Schedule{
		CourseID:      req.CourseID,
		Title:         req.Title,
		ScheduleType:  req.Type,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		TrainerID:     trainerID,
		Location:      req.Location,
		MaxLearners:   maxLearners,
		Status:        models.ScheduleStatusUpcoming,
		SessionMode:   req.SessionMode,
		ZoomLink:      req.ZoomLink,
		ZoomMeetingID: req.ZoomMeetingID,
		BatchNumber:   req.BatchNumber,
	}

	if err := s.schedules.Create(ctx, &schedule, toScheduleDays(req.ScheduleDays), req.GroupIDs); err != nil {
		return models.Schedule{}, err
	}

	s.logger.Info().Str("schedule_id", schedule.ID).Str("trainer_id", trainerID).Msg("schedule created")
	return schedule, nil
}

func (s *scheduleService) Update(ctx context.Context, identity policy.Identity, id string, req dto.ScheduleUpdateRequest) (models.Schedule, error) {
	existing, err := s.schedules.GetByID(ctx, id)
	ownerID := ""
	if err == nil {
		ownerID = existing.TrainerID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Schedule{}, err
	}

	if _, authErr := authorize(s.engine, identity, policy.Descriptor{
		Resource: policy.ResourceSchedules,
		Action:   policy.ActionUpdate,
		TargetID: id,
		OwnerID:  ownerID,
	}); authErr != nil {
		return models.Schedule{}, authErr
	}
	if err != nil {
		return models.Schedule{}, err
	}

	whitelist := repository.ScheduleUpdateFields
	if req.TrainerID.Present {
		// Moving a schedule to another trainer is its own privilege.
		if _, authErr := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceSchedules, Action: policy.ActionReassign}); authErr != nil {
			return models.Schedule{}, authErr
		}
		if err := s.requireTrainer(ctx, req.TrainerID.Value); err != nil {
			return models.Schedule{}, err
		}
		whitelist = append(append(patch.Whitelist{}, whitelist...), repository.ScheduleTrainerField)
	}

	cs := &patch.ChangeSet{}
	if req.Title.Present {
		cs.Set("title", req.Title.Value)
	}
	if req.StartDate.Present {
		cs.Set("startDate", req.StartDate.Value)
	}
	if req.EndDate.Present {
		cs.Set("endDate", req.EndDate.Value)
	}
	if req.StartTime.Present {
		cs.Set("startTime", req.StartTime.Value)
	}
	if req.EndTime.Present {
		cs.Set("endTime", req.EndTime.Value)
	}
	if req.Location.Present {
		cs.Set("location", req.Location.Value)
	}
	if req.MaxLearners.Present {
		cs.Set("maxLearners", req.MaxLearners.Value)
	}
	if req.Status.Present {
		cs.Set("status", req.Status.Value)
	}
	if req.ZoomLink.Present {
		cs.Set("zoomLink", req.ZoomLink.Value)
	}
	if req.ZoomMeetingID.Present {
		cs.Set("zoomMeetingId", req.ZoomMeetingID.Value)
	}
	if req.BatchNumber.Present {
		if req.BatchNumber.Valid {
			cs.Set("batchNumber", req.BatchNumber.Value)
		} else {
			cs.Set("batchNumber", nil)
		}
	}
	if req.TrainerID.Present {
		cs.Set("trainerId", req.TrainerID.Value)
	}

	var days *[]models.ScheduleDay
	if req.ScheduleDays != nil {
		converted := toScheduleDays(*req.ScheduleDays)
		days = &converted
	}

	assignments, err := patch.Build(whitelist, cs)
	if err != nil {
		if errors.Is(err, patch.ErrEmptyChange) && (days != nil || req.GroupIDs != nil) {
			// Child-row-only updates are still updates.
			assignments = patch.Assignments{}
		} else {
			return models.Schedule{}, err
		}
	}

	if err := s.schedules.Update(ctx, id, assignments, days, req.GroupIDs); err != nil {
		return models.Schedule{}, err
	}

	return s.schedules.GetByID(ctx, id)
}

func (s *scheduleService) Reassign(ctx context.Context, identity policy.Identity, id string, req dto.ScheduleReassignRequest) (models.Schedule, error) {
	if _, err := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceSchedules, Action: policy.ActionReassign}); err != nil {
		return models.Schedule{}, err
	}
	if err := s.validate.Struct(req); err != nil {
		return models.Schedule{}, err
	}
	if err := s.requireTrainer(ctx, req.TrainerID); err != nil {
		return models.Schedule{}, err
	}

	cs := &patch.ChangeSet{}
	cs.Set("trainerId", req.TrainerID)
	assignments, err := patch.Build(patch.Whitelist{repository.ScheduleTrainerField}, cs)
	if err != nil {
		return models.Schedule{}, err
	}

	if err := s.schedules.Update(ctx, id, assignments, nil, nil); err != nil {
		return models.Schedule{}, err
	}

	s.logger.Info().Str("schedule_id", id).Str("trainer_id", req.TrainerID).Msg("schedule reassigned")
	return s.schedules.GetByID(ctx, id)
}

func (s *scheduleService) Delete(ctx context.Context, identity policy.Identity, id string) error {
	existing, err := s.schedules.GetByID(ctx, id)
	ownerID := ""
	if err == nil {
		ownerID = existing.TrainerID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if _, authErr := authorize(s.engine, identity, policy.Descriptor{
		Resource: policy.ResourceSchedules,
		Action:   policy.ActionDelete,
		TargetID: id,
		OwnerID:  ownerID,
	}); authErr != nil {
		return authErr
	}
	if err != nil {
		return err
	}

	if err := s.schedules.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("schedule_id", id).Msg("schedule deleted")
	return nil
}

// requireTrainer verifies the user exists and holds the trainer role.
func (s *scheduleService) requireTrainer(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrNotATrainer
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotATrainer
		}
		return err
	}
	if user.Role != string(policy.RoleTrainer) {
		return ErrNotATrainer
	}
	return nil
}

func toScheduleDays(requests []dto.ScheduleDayRequest) []models.ScheduleDay {
	days := make([]models.ScheduleDay, 0, len(requests))
	for _, day := range requests {
		days = append(days, models.ScheduleDay{
			Date:      day.Date,
			StartTime: day.StartTime,
			EndTime:   day.EndTime,
		})
	}
	return days
}
