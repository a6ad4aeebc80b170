package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors escaping controllers into the
// response envelope. AppError kinds map to stable status codes; anything
// else becomes a 500 without leaking internals.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *AppError
		if errors.As(err, &appErr) {
			status := statusForKind(appErr.Kind)
			return ctx.Status(status).JSON(ErrorResponse(status, appErr.Message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, "internal server error"))
	}
}

func statusForKind(kind ErrorKind) int {
	switch kind {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindRemote:
		return fiber.StatusBadGateway
	case KindStorage:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}
