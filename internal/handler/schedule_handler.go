package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/talenta-go-api/internal/dto"
	"github.com/noah-isme/talenta-go-api/internal/repository"
	"github.com/noah-isme/talenta-go-api/internal/service"
	"github.com/noah-isme/talenta-go-api/internal/utils"
)

// ScheduleHandler exposes schedule, roster and attendance endpoints.
type ScheduleHandler struct {
	schedules   service.ScheduleService
	enrollments service.EnrollmentService
	attendance  service.AttendanceService
	logger      zerolog.Logger
}

// NewScheduleHandler constructs a schedule handler.
func NewScheduleHandler(schedules service.ScheduleService, enrollments service.EnrollmentService, attendance service.AttendanceService, logger zerolog.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		schedules:   schedules,
		enrollments: enrollments,
		attendance:  attendance,
		logger:      logger.With().Str("component", "schedule_handler").Logger(),
	}
}

// Register wires schedule routes.
func (h *ScheduleHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
	router.Post("/", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Put("/:id/reassign", h.reassign)

	router.Post("/:id/enroll", h.enroll)
	router.Delete("/:id/enroll/:enrollmentId", h.unenroll)
	router.Get("/:id/enrollments", h.listEnrollments)

	router.Get("/:id/attendance", h.listAttendance)
	router.Post("/:id/attendance", h.markAttendance)
}

func (h *ScheduleHandler) list(c *fiber.Ctx) error {
	filter := repository.ScheduleFilter{
		CourseID:  c.Query("courseId"),
		TrainerID: c.Query("trainerId"),
		Status:    c.Query("status"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}

	schedules, err := h.schedules.List(c.Context(), identityFromCtx(c), filter)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "schedules retrieved", schedules)
}

func (h *ScheduleHandler) get(c *fiber.Ctx) error {
	detail, err := h.schedules.Get(c.Context(), identityFromCtx(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "schedule retrieved", detail)
}

func (h *ScheduleHandler) create(c *fiber.Ctx) error {
	var req dto.ScheduleCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	schedule, err := h.schedules.Create(c.Context(), identityFromCtx(c), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "schedule created", schedule)
}

func (h *ScheduleHandler) update(c *fiber.Ctx) error {
	var req dto.ScheduleUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	schedule, err := h.schedules.Update(c.Context(), identityFromCtx(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "schedule updated", schedule)
}

func (h *ScheduleHandler) reassign(c *fiber.Ctx) error {
	var req dto.ScheduleReassignRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	schedule, err := h.schedules.Reassign(c.Context(), identityFromCtx(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "schedule reassigned", schedule)
}

func (h *ScheduleHandler) delete(c *fiber.Ctx) error {
	if err := h.schedules.Delete(c.Context(), identityFromCtx(c), c.Params("id")); err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "schedule deleted", nil)
}

func (h *ScheduleHandler) enroll(c *fiber.Ctx) error {
	var req dto.EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	enrollment, err := h.enrollments.Enroll(c.Context(), identityFromCtx(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "learner enrolled", enrollment)
}

func (h *ScheduleHandler) unenroll(c *fiber.Ctx) error {
	if err := h.enrollments.Unenroll(c.Context(), identityFromCtx(c), c.Params("enrollmentId")); err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "learner unenrolled", nil)
}

func (h *ScheduleHandler) listEnrollments(c *fiber.Ctx) error {
	enrollments, err := h.enrollments.ListBySchedule(c.Context(), identityFromCtx(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "enrollments retrieved", enrollments)
}

func (h *ScheduleHandler) listAttendance(c *fiber.Ctx) error {
	records, err := h.attendance.List(c.Context(), identityFromCtx(c), c.Params("id"), c.Query("date"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "attendance retrieved", records)
}

func (h *ScheduleHandler) markAttendance(c *fiber.Ctx) error {
	var req dto.AttendanceMarkRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	record, created, err := h.attendance.Mark(c.Context(), identityFromCtx(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	if created {
		return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "attendance recorded", record)
	}
	return utils.SendSuccess(c, "attendance updated", record)
}
