package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/talenta-go-api/internal/dto"
	"github.com/noah-isme/talenta-go-api/internal/handler"
	"github.com/noah-isme/talenta-go-api/internal/policy"
	"github.com/noah-isme/talenta-go-api/internal/service"
)

type mockAuthService struct {
	lastLogin dto.LoginRequest
	response  dto.AuthResponse
	user      dto.UserResponse
	err       error
}

func (m *mockAuthService) Login(_ context.Context, req dto.LoginRequest) (dto.AuthResponse, error) {
	m.lastLogin = req
	if m.err != nil {
		return dto.AuthResponse{}, m.err
	}
	return m.response, nil
}

func (m *mockAuthService) Me(_ context.Context, _ policy.Identity) (dto.UserResponse, error) {
	if m.err != nil {
		return dto.UserResponse{}, m.err
	}
	return m.user, nil
}

func (m *mockAuthService) ChangePassword(_ context.Context, _ policy.Identity, _ dto.ChangePasswordRequest) error {
	return m.err
}

func newAuthApp(svc service.AuthService, users service.UserService, identity policy.Identity) *fiber.App {
	app := fiber.New()
	protected := func(c *fiber.Ctx) error {
		c.Locals("identity", identity)
		return c.Next()
	}
	handler.NewAuthHandler(svc, users, protected, zerolog.New(io.Discard)).Register(app.Group("/api/v1/auth"))
	return app
}

func TestAuthHandler_LoginSuccess(t *testing.T) {
	svc := &mockAuthService{response: dto.AuthResponse{
		Token: "signed-token",
		User:  dto.UserResponse{ID: "user-1", Email: "alice@example.com", Role: "admin"},
	}}
	app := newAuthApp(svc, &mockUserService{}, policy.Identity{})

	body, err := json.Marshal(dto.LoginRequest{Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Success bool             `json:"success"`
		Data    dto.AuthResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)

	require.True(t, response.Success)
	require.Equal(t, "signed-token", response.Data.Token)
	require.Equal(t, "alice@example.com", svc.lastLogin.Email)
}

func TestAuthHandler_LoginInvalidCredentials(t *testing.T) {
	svc := &mockAuthService{err: service.ErrInvalidCredentials}
	app := newAuthApp(svc, &mockUserService{}, policy.Identity{})

	body, err := json.Marshal(dto.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var response struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	decodeResponse(t, resp, &response)

	require.False(t, response.Success)
	require.Equal(t, "Invalid email or password", response.Error)
}

func TestAuthHandler_RegisterCreatesUser(t *testing.T) {
	users := &mockUserService{user: dto.UserResponse{ID: "user-2", Email: "bob@example.com", Role: "learner"}}
	app := newAuthApp(&mockAuthService{}, users, policy.Identity{UserID: "admin-1", Role: policy.RoleAdmin})

	body, err := json.Marshal(dto.UserCreateRequest{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "secret123",
		Role:     "learner",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, "admin-1", users.lastIdentity.UserID)
}

func TestAuthHandler_RegisterDuplicateEmail(t *testing.T) {
	users := &mockUserService{err: service.ErrEmailInUse}
	app := newAuthApp(&mockAuthService{}, users, policy.Identity{UserID: "admin-1", Role: policy.RoleAdmin})

	body, err := json.Marshal(dto.UserCreateRequest{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "secret123",
		Role:     "learner",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAuthHandler_MeReturnsCurrentUser(t *testing.T) {
	svc := &mockAuthService{user: dto.UserResponse{ID: "user-1", Name: "Alice"}}
	app := newAuthApp(svc, &mockUserService{}, policy.Identity{UserID: "user-1", Role: policy.RoleAdmin})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Success bool             `json:"success"`
		Data    dto.UserResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)

	require.Equal(t, "user-1", response.Data.ID)
}

func TestAuthHandler_ChangePasswordWrongCurrent(t *testing.T) {
	svc := &mockAuthService{err: service.ErrWrongPassword}
	app := newAuthApp(svc, &mockUserService{}, policy.Identity{UserID: "user-1", Role: policy.RoleLearner})

	body, err := json.Marshal(dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "longenough"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/change-password", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(data, target))
}
