package serverutils

import (
	"github.com/gofiber/fiber/v2"

	"doc-research-fe/internal/pkg/logger"
)

// ErrorHandlerMiddleware keeps the process alive: handler errors and
// panics are logged and turned into a generic failure page.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("server", "panic recovered", map[string]interface{}{
					"panic": r,
					"path":  ctx.Path(),
				})
				err = ctx.Status(fiber.StatusInternalServerError).
					SendString("Something went wrong. Please try again.")
			}
		}()

		if err := ctx.Next(); err != nil {
			log.Error("server", "unhandled request error", map[string]interface{}{
				"error": err.Error(),
				"path":  ctx.Path(),
			})
			return ctx.Status(fiber.StatusInternalServerError).
				SendString("Something went wrong. Please try again.")
		}
		return nil
	}
}
