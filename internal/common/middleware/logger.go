package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"go.uber.org/zap"
)

// ============================================================
// Logger Middleware
// ============================================================

// Logger returns the request-line logging middleware.
func Logger() fiber.Handler {
	return logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path} | Content-Type: ${reqHeader:Content-Type}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	})
}

// SlowRequests logs requests slower than threshold through zap.
func SlowRequests(log *zap.Logger, threshold time.Duration) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if elapsed := time.Since(start); elapsed > threshold {
			log.Warn("slow request",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Duration("elapsed", elapsed),
			)
		}
		return err
	}
}
