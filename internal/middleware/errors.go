package middleware

import (
	"errors"

	"worktrack/internal/apperror"
	"worktrack/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// StatusOf maps err to an HTTP status. Fiber's own errors (unknown route,
// bad method) keep their code.
func StatusOf(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return apperror.StatusCode(err)
}

func messageOf(err error) string {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Message
	}
	return apperror.Message(err)
}

// ErrorResponder is the application's fiber ErrorHandler. It renders the
// "error" view with the mapped status.
func ErrorResponder(c *fiber.Ctx, err error) error {
	status := StatusOf(err)
	if status >= fiber.StatusInternalServerError {
		logger.ErrorLogger.Error("Request failed",
			zap.String("request_id", RequestID(c)),
			zap.String("url", c.OriginalURL()),
			zap.Error(err),
		)
	}

	c.Status(status)
	renderErr := c.Render("error", fiber.Map{
		"Status":  status,
		"Message": messageOf(err),
		"User":    CurrentUser(c),
	})
	if renderErr != nil {
		logger.ErrorLogger.Error("Rendering error page failed", zap.Error(renderErr))
		return c.Status(status).SendString(messageOf(err))
	}
	return nil
}
