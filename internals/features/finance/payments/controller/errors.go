package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	svc "schoolku_backend/internals/features/finance/payments/service"
	helper "schoolku_backend/internals/helpers"
)

// writeServiceError maps fee service errors to the JSON error envelope.
func writeServiceError(c *fiber.Ctx, log *zap.Logger, err error) error {
	if months, ok := svc.ConflictingMonths(err); ok {
		return helper.JsonErrorWithDetails(c, fiber.StatusConflict, err.Error(), fiber.Map{
			"conflicting_months": months,
		})
	}

	switch {
	case errors.Is(err, svc.ErrStudentNotFound),
		errors.Is(err, svc.ErrFeeStructureNotFound),
		errors.Is(err, svc.ErrPaymentNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())

	case errors.Is(err, svc.ErrInvalidMonths):
		return helper.JsonValidationError(c, map[string][]string{"months": {err.Error()}})
	case errors.Is(err, svc.ErrInvalidAmount), errors.Is(err, svc.ErrFractionalAmount):
		return helper.JsonValidationError(c, map[string][]string{"amount": {err.Error()}})

	case errors.Is(err, svc.ErrNothingDue):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, svc.ErrInvalidSignature):
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, svc.ErrGateway):
		log.Warn("gateway error", zap.String("path", c.Path()), zap.Error(err))
		return helper.JsonError(c, fiber.StatusBadGateway, "payment gateway unavailable")
	}

	log.Error("fee request failed", zap.String("path", c.Path()), zap.Error(err))
	return helper.JsonError(c, fiber.StatusInternalServerError, "internal server error")
}
