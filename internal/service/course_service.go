package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/talenta-go-api/internal/dto"
	"github.com/noah-isme/talenta-go-api/internal/models"
	"github.com/noah-isme/talenta-go-api/internal/patch"
	"github.com/noah-isme/talenta-go-api/internal/policy"
	"github.com/noah-isme/talenta-go-api/internal/repository"
)

// ErrCourseNotELearning rejects lifecycle and module operations on course
// types that have neither.
var ErrCourseNotELearning = errors.New("course is not an e-learning course")

// CourseService manages training content and its lifecycle.
type CourseService interface {
	List(ctx context.Context, identity policy.Identity, filter repository.CourseFilter) ([]models.Course, error)
	Get(ctx context.Context, identity policy.Identity, id string) (dto.CourseDetailResponse, error)
	Create(ctx context.Context, identity policy.Identity, req dto.CourseCreateRequest) (models.Course, error)
	Update(ctx context.Context, identity policy.Identity, id string, req dto.CourseUpdateRequest) (models.Course, error)
	Publish(ctx context.Context, identity policy.Identity, id string) error
	Archive(ctx context.Context, identity policy.Identity, id string) error
	Delete(ctx context.Context, identity policy.Identity, id string) error
	Categories(ctx context.Context, identity policy.Identity) ([]string, error)
}

type courseService struct {
	courses  repository.CourseRepository
	modules  repository.ModuleRepository
	cache    *CourseCache
	engine   *policy.Engine
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewCourseService constructs the course service.
func NewCourseService(courses repository.CourseRepository, modules repository.ModuleRepository, cache *CourseCache, engine *policy.Engine, validate *validator.Validate, logger zerolog.Logger) CourseService {
	return &courseService{
		courses:  courses,
		modules:  modules,
		cache:    cache,
		engine:   engine,
		validate: validate,
		logger:   logger.With().Str("component", "course_service").Logger(),
	}
}

func (s *courseService) List(ctx context.Context, identity policy.Identity, filter repository.CourseFilter) ([]models.Course, error) {
	if _, err := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceCourses, Action: policy.ActionList}); err != nil {
		return nil, err
	}
	return s.courses.List(ctx, filter)
}

func (s *courseService) Get(ctx context.Context, identity policy.Identity, id string) (dto.CourseDetailResponse, error) {
	if _, err := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceCourses, Action: policy.ActionRead}); err != nil {
		return dto.CourseDetailResponse{}, err
	}

	if detail, ok := s.cache.Fetch(ctx, id); ok {
		return detail, nil
	}

	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return dto.CourseDetailResponse{}, err
	}

	detail := dto.CourseDetailResponse{Course: course}
	if course.CourseType == models.CourseTypeELearning {
		detail.Modules, err = s.modules.ListByCourse(ctx, id)
		if err != nil {
			return dto.CourseDetailResponse{}, err
		}
	}

	s.cache.Store(ctx, id, detail)
	return detail, nil
}

func (s *courseService) Create(ctx context.Context, identity policy.Identity, req dto.CourseCreateRequest) (models.Course, error) {
	if _, err := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceCourses, Action: policy.ActionCreate}); err != nil {
		return models.Course{}, err
	}
	if err := s.validate.Struct(req); err != nil {
		return models.Course{}, err
	}

	course := models.Course{
		Title:         req.Title,
		Description:   req.Description,
		Duration:      req.Duration,
		Category:      req.Category,
		CourseType:    req.CourseType,
		ZoomMeetingID: req.ZoomMeetingID,
		ZoomLink:      req.ZoomLink,
		CreatedBy:     identity.UserID,
	}
	if req.CourseType == models.CourseTypeELearning {
		status := models.CourseStatusDraft
		course.Status = &status
	}

	if err := s.courses.Create(ctx, &course); err != nil {
		return models.Course{}, err
	}

	s.logger.Info().Str("course_id", course.ID).Str("type", course.CourseType).Msg("course created")
	return course, nil
}

func (s *courseService) Update(ctx context.Context, identity policy.Identity, id string, req dto.CourseUpdateRequest) (models.Course, error) {
	if _, err := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceCourses, Action: policy.ActionUpdate}); err != nil {
		return models.Course{}, err
	}

	cs := &patch.ChangeSet{}
	if req.Title.Present {
		cs.Set("title", req.Title.Value)
	}
	if req.Description.Present {
		cs.Set("description", req.Description.Value)
	}
	if req.Duration.Present {
		cs.Set("duration", req.Duration.Value)
	}
	if req.Category.Present {
		cs.Set("category", req.Category.Value)
	}
	if req.ZoomMeetingID.Present {
		cs.Set("zoomMeetingId", req.ZoomMeetingID.Value)
	}
	if req.ZoomLink.Present {
		cs.Set("zoomLink", req.ZoomLink.Value)
	}

	assignments, err := patch.Build(repository.CourseUpdateFields, cs)
	if err != nil {
		return models.Course{}, err
	}

	if err := s.courses.Update(ctx, id, assignments); err != nil {
		return models.Course{}, err
	}
	s.cache.Invalidate(ctx, id)

	return s.courses.GetByID(ctx, id)
}

func (s *courseService) Publish(ctx context.Context, identity policy.Identity, id string) error {
	return s.transition(ctx, identity, id, policy.ActionPublish, models.CourseStatusPublished)
}

func (s *courseService) Archive(ctx context.Context, identity policy.Identity, id string) error {
	return s.transition(ctx, identity, id, policy.ActionArchive, models.CourseStatusArchived)
}

func (s *courseService) transition(ctx context.Context, identity policy.Identity, id string, action policy.Action, status string) error {
	if _, err := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceCourses, Action: action}); err != nil {
		return err
	}

	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if course.CourseType != models.CourseTypeELearning {
		return ErrCourseNotELearning
	}

	if err := s.courses.SetStatus(ctx, id, status); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, id)

	s.logger.Info().Str("course_id", id).Str("status", status).Msg("course status changed")
	return nil
}

func (s *courseService) Delete(ctx context.Context, identity policy.Identity, id string) error {
	if _, err := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceCourses, Action: policy.ActionDelete}); err != nil {
		return err
	}

	if err := s.courses.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, id)

	s.logger.Info().Str("course_id", id).Msg("course deleted")
	return nil
}

func (s *courseService) Categories(ctx context.Context, identity policy.Identity) ([]string, error) {
	if _, err := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceCourses, Action: policy.ActionList}); err != nil {
		return nil, err
	}
	return s.courses.Categories(ctx)
}
