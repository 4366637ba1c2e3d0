package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/noah-isme/talenta-go-api/internal/dto"
	"github.com/noah-isme/talenta-go-api/internal/policy"
	"github.com/noah-isme/talenta-go-api/internal/repository"
	"github.com/noah-isme/talenta-go-api/internal/token"
)

// Credential failures. Both wrong email and wrong password collapse into
// ErrInvalidCredentials so responses never reveal which part was wrong.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

// AuthService handles login sessions and password rotation.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error)
	Me(ctx context.Context, identity policy.Identity) (dto.UserResponse, error)
	ChangePassword(ctx context.Context, identity policy.Identity, req dto.ChangePasswordRequest) error
}

type authService struct {
	users    repository.UserRepository
	tokens   *token.Service
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewAuthService constructs the auth service.
func NewAuthService(users repository.UserRepository, tokens *token.Service, validate *validator.Validate, logger zerolog.Logger) AuthService {
	return &authService{
		users:    users,
		tokens:   tokens,
		validate: validate,
		logger:   logger.With().Str("component", "auth_service").Logger(),
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return dto.AuthResponse{}, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AuthResponse{}, ErrInvalidCredentials
		}
		return dto.AuthResponse{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		s.logger.Warn().Str("email", req.Email).Msg("login rejected")
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user.ID, user.Email, policy.Role(user.Role))
	if err != nil {
		return dto.AuthResponse{}, err
	}

	return dto.AuthResponse{
		Token: signed,
		User:  dto.NewUserResponse(user),
	}, nil
}

func (s *authService) Me(ctx context.Context, identity policy.Identity) (dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, identity.UserID)
	if err != nil {
		return dto.UserResponse{}, err
	}
	return dto.NewUserResponse(user), nil
}

func (s *authService) ChangePassword(ctx context.Context, identity policy.Identity, req dto.ChangePasswordRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, identity.UserID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)) != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.users.UpdatePassword(ctx, user.ID, string(hash))
}
