package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/talenta-go-api/internal/dto"
	"github.com/noah-isme/talenta-go-api/internal/service"
	"github.com/noah-isme/talenta-go-api/internal/utils"
)

// ProfileFieldHandler exposes custom profile field administration endpoints.
type ProfileFieldHandler struct {
	service service.ProfileFieldService
	logger  zerolog.Logger
}

// NewProfileFieldHandler constructs a profile field handler.
func NewProfileFieldHandler(service service.ProfileFieldService, logger zerolog.Logger) *ProfileFieldHandler {
	return &ProfileFieldHandler{
		service: service,
		logger:  logger.With().Str("component", "profile_field_handler").Logger(),
	}
}

// Register wires profile field routes.
func (h *ProfileFieldHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
	router.Post("/", h.create)
	router.Post("/reorder", h.reorder)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *ProfileFieldHandler) get(c *fiber.Ctx) error {
	field, err := h.service.Get(c.Context(), identityFromCtx(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "profile field retrieved", field)
}

func (h *ProfileFieldHandler) list(c *fiber.Ctx) error {
	fields, err := h.service.List(c.Context(), identityFromCtx(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "profile fields retrieved", fields)
}

func (h *ProfileFieldHandler) create(c *fiber.Ctx) error {
	var req dto.ProfileFieldCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	field, err := h.service.Create(c.Context(), identityFromCtx(c), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "profile field created", field)
}

func (h *ProfileFieldHandler) update(c *fiber.Ctx) error {
	var req dto.ProfileFieldUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	field, err := h.service.Update(c.Context(), identityFromCtx(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "profile field updated", field)
}

func (h *ProfileFieldHandler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), identityFromCtx(c), c.Params("id")); err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "profile field deleted", nil)
}

func (h *ProfileFieldHandler) reorder(c *fiber.Ctx) error {
	var req dto.ProfileFieldReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	fields, err := h.service.Reorder(c.Context(), identityFromCtx(c), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "profile fields reordered", fields)
}
