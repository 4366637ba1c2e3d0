package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/talenta-go-api/internal/dto"
	"github.com/noah-isme/talenta-go-api/internal/repository"
	"github.com/noah-isme/talenta-go-api/internal/service"
	"github.com/noah-isme/talenta-go-api/internal/utils"
)

// UserHandler exposes account management endpoints.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler constructs a user handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("component", "user_handler").Logger(),
	}
}

// Register wires user routes.
func (h *UserHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
	router.Get("/trainers/list", h.listTrainers)
	router.Get("/learners/list", h.listLearners)
	router.Post("/", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Put("/:id/profile-data", h.mergeProfileData)
	router.Delete("/:id", h.delete)
}

func (h *UserHandler) list(c *fiber.Ctx) error {
	filter := repository.UserFilter{
		Role:   c.Query("role"),
		Search: c.Query("search"),
	}

	users, err := h.service.List(c.Context(), identityFromCtx(c), filter)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "users retrieved", users)
}

func (h *UserHandler) listTrainers(c *fiber.Ctx) error {
	trainers, err := h.service.ListTrainers(c.Context(), identityFromCtx(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "trainers retrieved", trainers)
}

func (h *UserHandler) listLearners(c *fiber.Ctx) error {
	learners, err := h.service.ListLearners(c.Context(), identityFromCtx(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "learners retrieved", learners)
}

func (h *UserHandler) get(c *fiber.Ctx) error {
	user, err := h.service.Get(c.Context(), identityFromCtx(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "user retrieved", user)
}

func (h *UserHandler) create(c *fiber.Ctx) error {
	var req dto.UserCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.service.Create(c.Context(), identityFromCtx(c), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "user created", user)
}

func (h *UserHandler) update(c *fiber.Ctx) error {
	var req dto.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.service.Update(c.Context(), identityFromCtx(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "user updated", user)
}

func (h *UserHandler) mergeProfileData(c *fiber.Ctx) error {
	var req dto.ProfileDataRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.service.MergeProfileData(c.Context(), identityFromCtx(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "profile data updated", user)
}

func (h *UserHandler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), identityFromCtx(c), c.Params("id")); err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "user deleted", nil)
}
