package service

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/talenta-go-api/internal/dto"
	"github.com/noah-isme/talenta-go-api/internal/models"
	"github.com/noah-isme/talenta-go-api/internal/patch"
	"github.com/noah-isme/talenta-go-api/internal/policy"
	"github.com/noah-isme/talenta-go-api/internal/repository"
)

// Profile field definition failures.
var (
	ErrInvalidFieldName = errors.New("field name must contain only letters, digits and underscores")
	ErrFieldNameTaken   = errors.New("field name already exists")
)

var fieldNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ProfileFieldService manages admin-configured profile field definitions.
type ProfileFieldService interface {
	List(ctx context.Context, identity policy.Identity) ([]models.CustomProfileField, error)
	Get(ctx context.Context, identity policy.Identity, id string) (models.CustomProfileField, error)
	Create(ctx context.Context, identity policy.Identity, req dto.ProfileFieldCreateRequest) (models.CustomProfileField, error)
	Update(ctx context.Context, identity policy.Identity, id string, req dto.ProfileFieldUpdateRequest) (models.CustomProfileField, error)
	Delete(ctx context.Context, identity policy.Identity, id string) error
	Reorder(ctx context.Context, identity policy.Identity, req dto.ProfileFieldReorderRequest) ([]models.CustomProfileField, error)
}

type profileFieldService struct {
	fields   repository.ProfileFieldRepository
	engine   *policy.Engine
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewProfileFieldService constructs the profile field service.
func NewProfileFieldService(fields repository.ProfileFieldRepository, engine *policy.Engine, validate *validator.Validate, logger zerolog.Logger) ProfileFieldService {
	return &profileFieldService{
		fields:   fields,
		engine:   engine,
		validate: validate,
		logger:   logger.With().Str("component", "profile_field_service").Logger(),
	}
}

func (s *profileFieldService) List(ctx context.Context, identity policy.Identity) ([]models.CustomProfileField, error) {
	if _, err := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceProfileFields, Action: policy.ActionList}); err != nil {
		return nil, err
	}
	return s.fields.List(ctx)
}

func (s *profileFieldService) Get(ctx context.Context, identity policy.Identity, id string) (models.CustomProfileField, error) {
	if _, err := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceProfileFields, Action: policy.ActionRead}); err != nil {
		return models.CustomProfileField{}, err
	}
	return s.fields.GetByID(ctx, id)
}

func (s *profileFieldService) Create(ctx context.Context, identity policy.Identity, req dto.ProfileFieldCreateRequest) (models.CustomProfileField, error) {
	if _, err := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceProfileFields, Action: policy.ActionCreate}); err != nil {
		return models.CustomProfileField{}, err
	}
	if err := s.validate.Struct(req); err != nil {
		return models.CustomProfileField{}, err
	}
	if !fieldNamePattern.MatchString(req.Name) {
		return models.CustomProfileField{}, ErrInvalidFieldName
	}

	options, err := json.Marshal(req.Options)
	if err != nil {
		return models.CustomProfileField{}, err
	}
	visibleTo, err := json.Marshal(req.VisibleTo)
	if err != nil {
		return models.CustomProfileField{}, err
	}

	field := models.CustomProfileField{
		Name:       req.Name,
		Label:      req.Label,
		FieldType:  req.Type,
		Options:    datatypes.JSON(options),
		IsRequired: req.Required,
		VisibleTo:  datatypes.JSON(visibleTo),
	}

	if err := s.fields.Create(ctx, &field); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.CustomProfileField{}, ErrFieldNameTaken
		}
		return models.CustomProfileField{}, err
	}

	s.logger.Info().Str("field_id", field.ID).Str("name", field.Name).Msg("profile field created")
	return field, nil
}

func (s *profileFieldService) Update(ctx context.Context, identity policy.Identity, id string, req dto.ProfileFieldUpdateRequest) (models.CustomProfileField, error) {
	if _, err := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceProfileFields, Action: policy.ActionUpdate}); err != nil {
		return models.CustomProfileField{}, err
	}

	cs := &patch.ChangeSet{}
	if req.Label.Present {
		cs.Set("label", req.Label.Value)
	}
	if req.Type.Present {
		cs.Set("type", req.Type.Value)
	}
	if req.Options.Present {
		if err := cs.SetJSON("options", req.Options.Value); err != nil {
			return models.CustomProfileField{}, err
		}
	}
	if req.Required.Present {
		cs.Set("required", req.Required.Value)
	}
	if req.VisibleTo.Present {
		if err := cs.SetJSON("visibleTo", req.VisibleTo.Value); err != nil {
			return models.CustomProfileField{}, err
		}
	}

	assignments, err := patch.Build(repository.ProfileFieldUpdateFields, cs)
	if err != nil {
		return models.CustomProfileField{}, err
	}

	if err := s.fields.Update(ctx, id, assignments); err != nil {
		return models.CustomProfileField{}, err
	}

	return s.fields.GetByID(ctx, id)
}

func (s *profileFieldService) Delete(ctx context.Context, identity policy.Identity, id string) error {
	if _, err := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceProfileFields, Action: policy.ActionDelete}); err != nil {
		return err
	}
	return s.fields.Delete(ctx, id)
}

func (s *profileFieldService) Reorder(ctx context.Context, identity policy.Identity, req dto.ProfileFieldReorderRequest) ([]models.CustomProfileField, error) {
	if _, err := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceProfileFields, Action: policy.ActionReorder}); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	if err := s.fields.Reorder(ctx, req.FieldIDs); err != nil {
		return nil, err
	}
	return s.fields.List(ctx)
}
