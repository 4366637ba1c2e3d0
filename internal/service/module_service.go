package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/talenta-go-api/internal/dto"
	"github.com/noah-isme/talenta-go-api/internal/models"
	"github.com/noah-isme/talenta-go-api/internal/patch"
	"github.com/noah-isme/talenta-go-api/internal/policy"
	"github.com/noah-isme/talenta-go-api/internal/repository"
)

// ModuleService manages ordered content units inside e-learning courses.
type ModuleService interface {
	List(ctx context.Context, identity policy.Identity, courseID string) ([]models.CourseModule, error)
	Create(ctx context.Context, identity policy.Identity, courseID string, req dto.ModuleCreateRequest) (models.CourseModule, error)
	Update(ctx context.Context, identity policy.Identity, courseID, moduleID string, req dto.ModuleUpdateRequest) (models.CourseModule, error)
	Delete(ctx context.Context, identity policy.Identity, courseID, moduleID string) error
	Reorder(ctx context.Context, identity policy.Identity, courseID string, req dto.ModuleReorderRequest) ([]models.CourseModule, error)
}

type moduleService struct {
	modules  repository.ModuleRepository
	courses  repository.CourseRepository
	cache    *CourseCache
	engine   *policy.Engine
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewModuleService constructs the course module service.
func NewModuleService(modules repository.ModuleRepository, courses repository.CourseRepository, cache *CourseCache, engine *policy.Engine, validate *validator.Validate, logger zerolog.Logger) ModuleService {
	return &moduleService{
		modules:  modules,
		courses:  courses,
		cache:    cache,
		engine:   engine,
		validate: validate,
		logger:   logger.With().Str("component", "module_service").Logger(),
	}
}

// requireELearning resolves the course and rejects module operations on
// course types that have no modules.
func (s *moduleService) requireELearning(ctx context.Context, courseID string) error {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return err
	}
	if course.CourseType != models.CourseTypeELearning {
		return ErrCourseNotELearning
	}
	return nil
}

func (s *moduleService) List(ctx context.Context, identity policy.Identity, courseID string) ([]models.CourseModule, error) {
	if _, err := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceModules, Action: policy.ActionList}); err != nil {
		return nil, err
	}
	if err := s.requireELearning(ctx, courseID); err != nil {
		return nil, err
	}
	return s.modules.ListByCourse(ctx, courseID)
}

func (s *moduleService) Create(ctx context.Context, identity policy.Identity, courseID string, req dto.ModuleCreateRequest) (models.CourseModule, error) {
	if _, err := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceModules, Action: policy.ActionCreate}); err != nil {
		return models.CourseModule{}, err
	}
	if err := s.validate.Struct(req); err != nil {
		return models.CourseModule{}, err
	}
	if err := s.requireELearning(ctx, courseID); err != nil {
		return models.CourseModule{}, err
	}

	module := models.CourseModule{
		CourseID:     courseID,
		Title:        req.Title,
		Description:  req.Description,
		ContentType:  req.ContentType,
		ContentURL:   req.ContentURL,
		ScormVersion: req.ScormVersion,
		Duration:     req.Duration,
		IsRequired:   req.IsRequired,
	}
	if err := s.modules.Create(ctx, &module); err != nil {
		return models.CourseModule{}, err
	}
	s.cache.Invalidate(ctx, courseID)

	return module, nil
}

func (s *moduleService) Update(ctx context.Context, identity policy.Identity, courseID, moduleID string, req dto.ModuleUpdateRequest) (models.CourseModule, error) {
	if _, err := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceModules, Action: policy.ActionUpdate}); err != nil {
		return models.CourseModule{}, err
	}
	if err := s.requireELearning(ctx, courseID); err != nil {
		return models.CourseModule{}, err
	}

	cs := &patch.ChangeSet{}
	if req.Title.Present {
		cs.Set("title", req.Title.Value)
	}
	if req.Description.Present {
		cs.Set("description", req.Description.Value)
	}
	if req.ContentType.Present {
		cs.Set("contentType", req.ContentType.Value)
	}
	if req.ContentURL.Present {
		cs.Set("contentUrl", req.ContentURL.Value)
	}
	if req.ScormVersion.Present {
		cs.Set("scormVersion", req.ScormVersion.Value)
	}
	if req.Duration.Present {
		cs.Set("duration", req.Duration.Value)
	}
	if req.IsRequired.Present {
		cs.Set("isRequired", req.IsRequired.Value)
	}

	assignments, err := patch.Build(repository.ModuleUpdateFields, cs)
	if err != nil {
		return models.CourseModule{}, err
	}

	if err := s.modules.Update(ctx, courseID, moduleID, assignments); err != nil {
		return models.CourseModule{}, err
	}
	s.cache.Invalidate(ctx, courseID)

	return s.modules.GetByID(ctx, courseID, moduleID)
}

func (s *moduleService) Delete(ctx context.Context, identity policy.Identity, courseID, moduleID string) error {
	if _, err := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceModules, Action: policy.ActionDelete}); err != nil {
		return err
	}
	if err := s.requireELearning(ctx, courseID); err != nil {
		return err
	}

	if err := s.modules.Delete(ctx, courseID, moduleID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, courseID)
	return nil
}

func (s *moduleService) Reorder(ctx context.Context, identity policy.Identity, courseID string, req dto.ModuleReorderRequest) ([]models.CourseModule, error) {
	if _, err := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceModules, Action: policy.ActionReorder}); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	if err := s.requireELearning(ctx, courseID); err != nil {
		return nil, err
	}

	if err := s.modules.Reorder(ctx, courseID, req.ModuleIDs); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, courseID)

	return s.modules.ListByCourse(ctx, courseID)
}
