package middleware

import (
	"fmt"
	"runtime/debug"
	"time"

	"worktrack/internal/apperror"
	"worktrack/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const HeaderRequestID = "X-Request-ID"

func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestID").(string)
	return id
}

// ErrorHandler memberi request id, mencatat setiap request dan mengubah panic
// menjadi error internal yang dirender oleh error handler aplikasi.
func ErrorHandler() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals("requestID", id)
		c.Set(HeaderRequestID, id)

		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				logger.ErrorLogger.Error(fmt.Sprintf("Recovered from panic: %v", r),
					zap.String("request_id", id),
					zap.String("stack", string(debug.Stack())),
				)
				err = apperror.Wrap(apperror.KindInternal, "panic", fmt.Errorf("%v", r))
			}

			status := c.Response().StatusCode()
			if err != nil {
				status = StatusOf(err)
			}
			logger.RequestLogger.Info("Request",
				zap.String("request_id", id),
				zap.String("method", c.Method()),
				zap.String("url", c.OriginalURL()),
				zap.Int("status", status),
				zap.Duration("latency", time.Since(start)),
			)
		}()
		return c.Next()
	}
}
