package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/apperror"
)

// ErrorHandlerMiddleware converts service errors to HTTP responses. The
// workflow's typed errors keep their detail: evidence shortfalls and
// conflicting merchants are listed for the caller.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		var notEligible *apperror.NotEligibleError
		if errors.As(err, &notEligible) {
			details := make([]string, 0, len(notEligible.Shortfalls))
			for _, s := range notEligible.Shortfalls {
				details = append(details, s.String())
			}
			return ctx.Status(fiber.StatusUnprocessableEntity).
				JSON(ErrorResponse(fiber.StatusUnprocessableEntity, notEligible.Reason, details...))
		}

		var conflict *apperror.ConflictError
		if errors.As(err, &conflict) {
			return ctx.Status(fiber.StatusConflict).
				JSON(ErrorResponse(fiber.StatusConflict, "Other merchants are still actively engaged on this lead", conflict.ActiveMerchants...))
		}

		switch {
		case errors.Is(err, apperror.ErrNotFound):
			return ctx.Status(fiber.StatusNotFound).
				JSON(ErrorResponse(fiber.StatusNotFound, err.Error()))
		case errors.Is(err, apperror.ErrNotEligible):
			return ctx.Status(fiber.StatusUnprocessableEntity).
				JSON(ErrorResponse(fiber.StatusUnprocessableEntity, err.Error()))
		case errors.Is(err, apperror.ErrDuplicateApplication),
			errors.Is(err, apperror.ErrAlreadyDecided),
			errors.Is(err, apperror.ErrConflictingActiveMerchants):
			return ctx.Status(fiber.StatusConflict).
				JSON(ErrorResponse(fiber.StatusConflict, err.Error()))
		case errors.Is(err, apperror.ErrMissingReason):
			return ctx.Status(fiber.StatusBadRequest).
				JSON(ErrorResponse(fiber.StatusBadRequest, err.Error()))
		}

		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
	}
}
