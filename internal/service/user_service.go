package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/talenta-go-api/internal/dto"
	"github.com/noah-isme/talenta-go-api/internal/models"
	"github.com/noah-isme/talenta-go-api/internal/patch"
	"github.com/noah-isme/talenta-go-api/internal/policy"
	"github.com/noah-isme/talenta-go-api/internal/repository"
)

// User write failures surfaced to clients.
var (
	ErrEmailInUse        = errors.New("email already in use")
	ErrUnknownProfileKey = errors.New("profile data key is not a defined field")
)

// UserService manages platform accounts and their custom profile data.
type UserService interface {
	List(ctx context.Context, identity policy.Identity, filter repository.UserFilter) ([]dto.UserResponse, error)
	ListTrainers(ctx context.Context, identity policy.Identity) ([]dto.UserResponse, error)
	ListLearners(ctx context.Context, identity policy.Identity) ([]dto.UserResponse, error)
	Get(ctx context.Context, identity policy.Identity, id string) (dto.UserResponse, error)
	Create(ctx context.Context, identity policy.Identity, req dto.UserCreateRequest) (dto.UserResponse, error)
	Update(ctx context.Context, identity policy.Identity, id string, req dto.UserUpdateRequest) (dto.UserResponse, error)
	MergeProfileData(ctx context.Context, identity policy.Identity, id string, req dto.ProfileDataRequest) (dto.UserResponse, error)
	Delete(ctx context.Context, identity policy.Identity, id string) error
}

type userService struct {
	users    repository.UserRepository
	fields   repository.ProfileFieldRepository
	engine   *policy.Engine
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewUserService constructs the user service.
func NewUserService(users repository.UserRepository, fields repository.ProfileFieldRepository, engine *policy.Engine, validate *validator.Validate, logger zerolog.Logger) UserService {
	return &userService{
		users:    users,
		fields:   fields,
		engine:   engine,
		validate: validate,
		logger:   logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) List(ctx context.Context, identity policy.Identity, filter repository.UserFilter) ([]dto.UserResponse, error) {
	if _, err := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceUsers, Action: policy.ActionList}); err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponseSlice(users), nil
}

func (s *userService) ListTrainers(ctx context.Context, identity policy.Identity) ([]dto.UserResponse, error) {
	if _, err := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceUsers, Action: policy.ActionListTrainers}); err != nil {
		return nil, err
	}

	trainers, err := s.users.ListByRole(ctx, string(policy.RoleTrainer))
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponseSlice(trainers), nil
}

func (s *userService) ListLearners(ctx context.Context, identity policy.Identity) ([]dto.UserResponse, error) {
	if _, err := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceUsers, Action: policy.ActionListLearners}); err != nil {
		return nil, err
	}

	learners, err := s.users.ListByRole(ctx, string(policy.RoleLearner))
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponseSlice(learners), nil
}

// Get resolves the target before authorizing so ownership evaluates against
// the real record. A missing target denies with not_found either way.
func (s *userService) Get(ctx context.Context, identity policy.Identity, id string) (dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	ownerID := ""
	if err == nil {
		ownerID = user.ID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.UserResponse{}, err
	}

	if _, authErr := authorize(s.engine, identity, policy.Descriptor{
		Resource: policy.ResourceUsers,
		Action:   policy.ActionRead,
		TargetID: id,
		OwnerID:  ownerID,
	}); authErr != nil {
		return dto.UserResponse{}, authErr
	}
	if err != nil {
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(user), nil
}

func (s *userService) Create(ctx context.Context, identity policy.Identity, req dto.UserCreateRequest) (dto.UserResponse, error) {
	if _, err := authorize(s.engine, identity, policy.Descriptor{Resource: policy.ResourceUsers, Action: policy.ActionCreate}); err != nil {
		return dto.UserResponse{}, err
	}
	if err := s.validate.Struct(req); err != nil {
		return dto.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.UserResponse{}, err
	}

	user := models.User{
		Name:        req.Name,
		Email:       req.Email,
		Password:    string(hash),
		Role:        req.Role,
		Avatar:      req.Avatar,
		ProfileData: datatypes.JSONMap(req.ProfileData),
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.UserResponse{}, ErrEmailInUse
		}
		return dto.UserResponse{}, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user created")
	return dto.NewUserResponse(user), nil
}

func (s *userService) Update(ctx context.Context, identity policy.Identity, id string, req dto.UserUpdateRequest) (dto.UserResponse, error) {
	target, err := s.users.GetByID(ctx, id)
	ownerID := ""
	if err == nil {
		ownerID = target.ID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.UserResponse{}, err
	}

	if _, authErr := authorize(s.engine, identity, policy.Descriptor{
		Resource: policy.ResourceUsers,
		Action:   policy.ActionUpdate,
		TargetID: id,
		OwnerID:  ownerID,
	}); authErr != nil {
		return dto.UserResponse{}, authErr
	}
	if err != nil {
		return dto.UserResponse{}, err
	}

	cs := &patch.ChangeSet{}
	if req.Name.Present {
		cs.Set("name", req.Name.Value)
	}
	if req.Email.Present {
		cs.Set("email", req.Email.Value)
	}
	if req.Avatar.Present {
		cs.Set("avatar", req.Avatar.Value)
	}
	if req.ProfileData.Present {
		if req.ProfileData.Valid {
			cs.Set("profileData", datatypes.JSONMap(req.ProfileData.Value))
		} else {
			cs.Set("profileData", nil)
		}
	}

	assignments, err := patch.Build(repository.UserUpdateFields, cs)
	if err != nil {
		return dto.UserResponse{}, err
	}

	if err := s.users.Update(ctx, id, assignments); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.UserResponse{}, ErrEmailInUse
		}
		return dto.UserResponse{}, err
	}

	updated, err := s.users.GetByID(ctx, id)
	if err != nil {
		return dto.UserResponse{}, err
	}
	return dto.NewUserResponse(updated), nil
}

// MergeProfileData overlays the submitted values onto the user's existing
// profile data. Every key must name a defined custom profile field.
func (s *userService) MergeProfileData(ctx context.Context, identity policy.Identity, id string, req dto.ProfileDataRequest) (dto.UserResponse, error) {
	target, err := s.users.GetByID(ctx, id)
	ownerID := ""
	if err == nil {
		ownerID = target.ID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.UserResponse{}, err
	}

	if _, authErr := authorize(s.engine, identity, policy.Descriptor{
		Resource: policy.ResourceUsers,
		Action:   policy.ActionUpdate,
		TargetID: id,
		OwnerID:  ownerID,
	}); authErr != nil {
		return dto.UserResponse{}, authErr
	}
	if err != nil {
		return dto.UserResponse{}, err
	}
	if err := s.validate.Struct(req); err != nil {
		return dto.UserResponse{}, err
	}

	defined, err := s.fields.List(ctx)
	if err != nil {
		return dto.UserResponse{}, err
	}
	known := make(map[string]struct{}, len(defined))
	for _, field := range defined {
		known[field.Name] = struct{}{}
	}
	for key := range req.ProfileData {
		if _, ok := known[key]; !ok {
			return dto.UserResponse{}, ErrUnknownProfileKey
		}
	}

	merged := datatypes.JSONMap{}
	for key, value := range target.ProfileData {
		merged[key] = value
	}
	for key, value := range req.ProfileData {
		merged[key] = value
	}

	if err := s.users.UpdateProfileData(ctx, id, merged); err != nil {
		return dto.UserResponse{}, err
	}

	updated, err := s.users.GetByID(ctx, id)
	if err != nil {
		return dto.UserResponse{}, err
	}
	return dto.NewUserResponse(updated), nil
}

func (s *userService) Delete(ctx context.Context, identity policy.Identity, id string) error {
	if _, err := authorize(s.engine, identity, policy.Descriptor{
		Resource: policy.ResourceUsers,
		Action:   policy.ActionDelete,
		TargetID: id,
	}); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}
