package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/talenta-go-api/internal/dto"
	"github.com/noah-isme/talenta-go-api/internal/handler"
	"github.com/noah-isme/talenta-go-api/internal/patch"
	"github.com/noah-isme/talenta-go-api/internal/policy"
	"github.com/noah-isme/talenta-go-api/internal/repository"
	"github.com/noah-isme/talenta-go-api/internal/service"
)

type mockUserService struct {
	lastIdentity policy.Identity
	lastFilter   repository.UserFilter
	lastID       string
	users        []dto.UserResponse
	user         dto.UserResponse
	err          error
}

func (m *mockUserService) List(_ context.Context, identity policy.Identity, filter repository.UserFilter) ([]dto.UserResponse, error) {
	m.lastIdentity = identity
	m.lastFilter = filter
	return m.users, m.err
}

func (m *mockUserService) ListTrainers(_ context.Context, identity policy.Identity) ([]dto.UserResponse, error) {
	m.lastIdentity = identity
	return m.users, m.err
}

func (m *mockUserService) ListLearners(_ context.Context, identity policy.Identity) ([]dto.UserResponse, error) {
	m.lastIdentity = identity
	return m.users, m.err
}

func (m *mockUserService) Get(_ context.Context, identity policy.Identity, id string) (dto.UserResponse, error) {
	m.lastIdentity = identity
	m.lastID = id
	return m.user, m.err
}

func (m *mockUserService) Create(_ context.Context, identity policy.Identity, _ dto.UserCreateRequest) (dto.UserResponse, error) {
	m.lastIdentity = identity
	return m.user, m.err
}

func (m *mockUserService) Update(_ context.Context, identity policy.Identity, id string, _ dto.UserUpdateRequest) (dto.UserResponse, error) {
	m.lastIdentity = identity
	m.lastID = id
	return m.user, m.err
}

func (m *mockUserService) MergeProfileData(_ context.Context, identity policy.Identity, id string, _ dto.ProfileDataRequest) (dto.UserResponse, error) {
	m.lastIdentity = identity
	m.lastID = id
	return m.user, m.err
}

func (m *mockUserService) Delete(_ context.Context, identity policy.Identity, id string) error {
	m.lastIdentity = identity
	m.lastID = id
	return m.err
}

func newUserApp(svc service.UserService, identity policy.Identity) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/users", func(c *fiber.Ctx) error {
		c.Locals("identity", identity)
		return c.Next()
	})
	handler.NewUserHandler(svc, zerolog.New(io.Discard)).Register(group)
	return app
}

func TestUserHandler_ListPassesFilter(t *testing.T) {
	svc := &mockUserService{users: []dto.UserResponse{{ID: "user-1"}}}
	app := newUserApp(svc, policy.Identity{UserID: "admin-1", Role: policy.RoleAdmin})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users?role=trainer&search=ana", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Equal(t, "trainer", svc.lastFilter.Role)
	require.Equal(t, "ana", svc.lastFilter.Search)
	require.Equal(t, "admin-1", svc.lastIdentity.UserID)

	var response struct {
		Success bool               `json:"success"`
		Data    []dto.UserResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Len(t, response.Data, 1)
}

func TestUserHandler_TrainerPickerPath(t *testing.T) {
	svc := &mockUserService{users: []dto.UserResponse{{ID: "trainer-1", Role: "trainer"}}}
	app := newUserApp(svc, policy.Identity{UserID: "learner-1", Role: policy.RoleLearner})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/trainers/list", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Success bool               `json:"success"`
		Data    []dto.UserResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Len(t, response.Data, 1)
	require.Equal(t, "trainer-1", response.Data[0].ID)
}

func TestUserHandler_CreateReturns201(t *testing.T) {
	svc := &mockUserService{user: dto.UserResponse{ID: "user-2", Email: "bob@example.com"}}
	app := newUserApp(svc, policy.Identity{UserID: "admin-1", Role: policy.RoleAdmin})

	body, err := json.Marshal(dto.UserCreateRequest{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "secret123",
		Role:     "learner",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestUserHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		statusCode int
		message    string
	}{
		{name: "forbidden", err: policy.Denied(policy.ReasonNotAuthorized), statusCode: fiber.StatusForbidden, message: "You do not have permission to perform this action"},
		{name: "self delete", err: policy.Denied(policy.ReasonSelfDelete), statusCode: fiber.StatusBadRequest, message: "You cannot delete your own account"},
		{name: "hidden target", err: policy.Denied(policy.ReasonNotFound), statusCode: fiber.StatusNotFound, message: "Resource not found"},
		{name: "missing row", err: gorm.ErrRecordNotFound, statusCode: fiber.StatusNotFound, message: "Resource not found"},
		{name: "empty patch", err: patch.ErrEmptyChange, statusCode: fiber.StatusBadRequest, message: "No fields to update"},
		{name: "email conflict", err: service.ErrEmailInUse, statusCode: fiber.StatusConflict, message: "Email already in use"},
		{name: "generic", err: errors.New("boom"), statusCode: fiber.StatusInternalServerError, message: "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockUserService{err: tc.err}
			app := newUserApp(svc, policy.Identity{UserID: "learner-1", Role: policy.RoleLearner})

			body, err := json.Marshal(map[string]string{"name": "New Name"})
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPut, "/api/v1/users/user-9", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, tc.statusCode, resp.StatusCode)

			var response struct {
				Success bool   `json:"success"`
				Error   string `json:"error"`
			}
			decodeResponse(t, resp, &response)
			require.False(t, response.Success)
			require.Equal(t, tc.message, response.Error)
		})
	}
}

func TestUserHandler_DeleteForwardsID(t *testing.T) {
	svc := &mockUserService{}
	app := newUserApp(svc, policy.Identity{UserID: "admin-1", Role: policy.RoleAdmin})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/users/user-3", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "user-3", svc.lastID)
}
