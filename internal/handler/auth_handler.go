package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/talenta-go-api/internal/dto"
	"github.com/noah-isme/talenta-go-api/internal/service"
	"github.com/noah-isme/talenta-go-api/internal/utils"
)

// AuthHandler exposes login, registration, session and password endpoints.
type AuthHandler struct {
	service   service.AuthService
	users     service.UserService
	protected fiber.Handler
	logger    zerolog.Logger
}

// NewAuthHandler constructs an auth handler. The protected middleware guards
// the endpoints that need an authenticated caller.
func NewAuthHandler(service service.AuthService, users service.UserService, protected fiber.Handler, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service:   service,
		users:     users,
		protected: protected,
		logger:    logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register wires auth routes.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/login", h.login)
	router.Post("/register", h.protected, h.register)
	router.Get("/me", h.protected, h.me)
	router.Post("/change-password", h.protected, h.changePassword)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := h.service.Login(c.Context(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "login successful", resp)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	var req dto.UserCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.users.Create(c.Context(), identityFromCtx(c), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "user created", user)
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	user, err := h.service.Me(c.Context(), identityFromCtx(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "profile retrieved", user)
}

func (h *AuthHandler) changePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.service.ChangePassword(c.Context(), identityFromCtx(c), req); err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "password changed", nil)
}
