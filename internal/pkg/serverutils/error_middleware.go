package serverutils

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"docsearch-be/internal/pkg/apperror"
)

// ErrorHandlerMiddleware converts errors escaping a handler into the stable
// {error, detail} JSON body and recovers panics, so a single bad request can
// never take the process down.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = ctx.Status(fiber.StatusInternalServerError).
					JSON(ErrorResponseWithDetail("internal error", fmt.Sprintf("%v", r)))
			}
		}()

		err = ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return ctx.Status(appErr.StatusCode()).
				JSON(ErrorResponseWithDetail(appErr.Label, appErr.Detail))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			// A body past the transport limit is still a client error against
			// the documented 100 MiB cap.
			if fiberErr.Code == fiber.StatusRequestEntityTooLarge {
				return ctx.Status(fiber.StatusBadRequest).
					JSON(ErrorResponse("file too large (max 100 MiB)"))
			}
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponseWithDetail("internal error", err.Error()))
	}
}
