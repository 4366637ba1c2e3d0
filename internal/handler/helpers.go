package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/talenta-go-api/internal/middleware"
	"github.com/noah-isme/talenta-go-api/internal/patch"
	"github.com/noah-isme/talenta-go-api/internal/policy"
	"github.com/noah-isme/talenta-go-api/internal/repository"
	"github.com/noah-isme/talenta-go-api/internal/service"
	"github.com/noah-isme/talenta-go-api/internal/utils"
)

func identityFromCtx(c *fiber.Ctx) policy.Identity {
	return middleware.IdentityFromCtx(c)
}

// respondError translates service and store errors into transport responses.
// Unrecognised errors become opaque 500s; the detail only goes to the log.
func respondError(c *fiber.Ctx, logger zerolog.Logger, err error) error {
	var denied *policy.DeniedError
	if errors.As(err, &denied) {
		switch denied.Reason {
		case policy.ReasonUnauthenticated:
			return utils.SendError(c, fiber.StatusUnauthorized, "Access token required")
		case policy.ReasonSelfDelete:
			return utils.SendError(c, fiber.StatusBadRequest, "You cannot delete your own account")
		case policy.ReasonNotFound:
			return utils.SendError(c, fiber.StatusNotFound, "Resource not found")
		default:
			return utils.SendError(c, fiber.StatusForbidden, "You do not have permission to perform this action")
		}
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return utils.SendError(c, fiber.StatusBadRequest, validationMessage(validationErrors))
	}

	switch {
	case errors.Is(err, patch.ErrEmptyChange):
		return utils.SendError(c, fiber.StatusBadRequest, "No fields to update")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "Resource not found")
	case errors.Is(err, service.ErrInvalidCredentials):
		return utils.SendError(c, fiber.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrWrongPassword):
		return utils.SendError(c, fiber.StatusBadRequest, "Current password is incorrect")
	case errors.Is(err, service.ErrEmailInUse):
		return utils.SendError(c, fiber.StatusConflict, "Email already in use")
	case errors.Is(err, service.ErrUnknownProfileKey):
		return utils.SendError(c, fiber.StatusBadRequest, "Profile data contains an unknown field")
	case errors.Is(err, service.ErrCourseNotELearning):
		return utils.SendError(c, fiber.StatusBadRequest, "Course is not an e-learning course")
	case errors.Is(err, service.ErrNotATrainer):
		return utils.SendError(c, fiber.StatusBadRequest, "Assigned user must be a trainer")
	case errors.Is(err, service.ErrNotALearner):
		return utils.SendError(c, fiber.StatusBadRequest, "Only learners can be enrolled")
	case errors.Is(err, service.ErrLearnerNotEnrolled):
		return utils.SendError(c, fiber.StatusBadRequest, "Learner is not enrolled in this schedule")
	case errors.Is(err, service.ErrInvalidFieldName):
		return utils.SendError(c, fiber.StatusBadRequest, "Field name may only contain letters, digits and underscores")
	case errors.Is(err, service.ErrFieldNameTaken):
		return utils.SendError(c, fiber.StatusConflict, "Field name already exists")
	case errors.Is(err, repository.ErrAlreadyEnrolled):
		return utils.SendError(c, fiber.StatusConflict, "Learner is already enrolled in this schedule")
	case errors.Is(err, repository.ErrScheduleFull):
		return utils.SendError(c, fiber.StatusBadRequest, "Schedule is full")
	case errors.Is(err, repository.ErrCourseHasSchedules):
		return utils.SendError(c, fiber.StatusBadRequest, "Course has schedules and cannot be deleted")
	case errors.Is(err, repository.ErrModuleOutsideCourse):
		return utils.SendError(c, fiber.StatusBadRequest, "Module does not belong to this course")
	case errors.Is(err, repository.ErrUnknownProfileField):
		return utils.SendError(c, fiber.StatusBadRequest, "Unknown profile field in ordering")
	}

	logger.Error().Err(err).Str("correlation_id", middleware.GetCorrelationID(c)).Msg("request failed")
	return utils.SendError(c, fiber.StatusInternalServerError, "Internal server error")
}

func validationMessage(errs validator.ValidationErrors) string {
	fields := make([]string, 0, len(errs))
	for _, fieldErr := range errs {
		fields = append(fields, fieldErr.Field())
	}
	return "Validation failed for: " + strings.Join(fields, ", ")
}
