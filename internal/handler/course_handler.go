package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/talenta-go-api/internal/dto"
	"github.com/noah-isme/talenta-go-api/internal/repository"
	"github.com/noah-isme/talenta-go-api/internal/service"
	"github.com/noah-isme/talenta-go-api/internal/utils"
)

// CourseHandler exposes course and course module endpoints.
type CourseHandler struct {
	courses service.CourseService
	modules service.ModuleService
	logger  zerolog.Logger
}

// NewCourseHandler constructs a course handler.
func NewCourseHandler(courses service.CourseService, modules service.ModuleService, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		courses: courses,
		modules: modules,
		logger:  logger.With().Str("component", "course_handler").Logger(),
	}
}

// Register wires course routes, including the module subresource.
func (h *CourseHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
	router.Get("/categories/list", h.categories)
	router.Post("/", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Post("/:id/publish", h.publish)
	router.Post("/:id/archive", h.archive)

	router.Get("/:id/modules", h.listModules)
	router.Post("/:id/modules", h.createModule)
	router.Post("/:id/modules/reorder", h.reorderModules)
	router.Put("/:id/modules/:moduleId", h.updateModule)
	router.Delete("/:id/modules/:moduleId", h.deleteModule)
}

func (h *CourseHandler) list(c *fiber.Ctx) error {
	filter := repository.CourseFilter{
		CourseType: c.Query("courseType"),
		Status:     c.Query("status"),
		Search:     c.Query("search"),
	}

	courses, err := h.courses.List(c.Context(), identityFromCtx(c), filter)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "courses retrieved", courses)
}

func (h *CourseHandler) categories(c *fiber.Ctx) error {
	categories, err := h.courses.Categories(c.Context(), identityFromCtx(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "categories retrieved", categories)
}

func (h *CourseHandler) get(c *fiber.Ctx) error {
	detail, err := h.courses.Get(c.Context(), identityFromCtx(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "course retrieved", detail)
}

func (h *CourseHandler) create(c *fiber.Ctx) error {
	var req dto.CourseCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	course, err := h.courses.Create(c.Context(), identityFromCtx(c), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "course created", course)
}

func (h *CourseHandler) update(c *fiber.Ctx) error {
	var req dto.CourseUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	course, err := h.courses.Update(c.Context(), identityFromCtx(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "course updated", course)
}

func (h *CourseHandler) delete(c *fiber.Ctx) error {
	if err := h.courses.Delete(c.Context(), identityFromCtx(c), c.Params("id")); err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "course deleted", nil)
}

func (h *CourseHandler) publish(c *fiber.Ctx) error {
	if err := h.courses.Publish(c.Context(), identityFromCtx(c), c.Params("id")); err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "course published", nil)
}

func (h *CourseHandler) archive(c *fiber.Ctx) error {
	if err := h.courses.Archive(c.Context(), identityFromCtx(c), c.Params("id")); err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "course archived", nil)
}

func (h *CourseHandler) listModules(c *fiber.Ctx) error {
	modules, err := h.modules.List(c.Context(), identityFromCtx(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "modules retrieved", modules)
}

func (h *CourseHandler) createModule(c *fiber.Ctx) error {
	var req dto.ModuleCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	module, err := h.modules.Create(c.Context(), identityFromCtx(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "module created", module)
}

func (h *CourseHandler) updateModule(c *fiber.Ctx) error {
	var req dto.ModuleUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	module, err := h.modules.Update(c.Context(), identityFromCtx(c), c.Params("id"), c.Params("moduleId"), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "module updated", module)
}

func (h *CourseHandler) deleteModule(c *fiber.Ctx) error {
	if err := h.modules.Delete(c.Context(), identityFromCtx(c), c.Params("id"), c.Params("moduleId")); err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "module deleted", nil)
}

func (h *CourseHandler) reorderModules(c *fiber.Ctx) error {
	var req dto.ModuleReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	modules, err := h.modules.Reorder(c.Context(), identityFromCtx(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "modules reordered", modules)
}
