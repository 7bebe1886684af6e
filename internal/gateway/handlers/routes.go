package handlers

import (
	"time"

	"room-designer/internal/common/config"
	"room-designer/internal/common/middleware"
	"room-designer/internal/gateway/proxy"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"go.uber.org/zap"
)

// APIPrefix is where the designer API is exposed on the gateway.
const APIPrefix = "/api/v1"

// ============================================================
// API Gateway
// ============================================================

// NewApp builds the gateway: probes plus everything under APIPrefix
// forwarded to the designer service.
func NewApp(cfg *config.Config, upstream *proxy.Proxy, log *zap.Logger) *fiber.App {
	if log == nil {
		log = zap.NewNop()
	}
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "API Gateway",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	if cfg.IsDevelopment() {
		app.Use(middleware.Logger())
	}
	app.Use(middleware.SlowRequests(log, 2*time.Second))
	app.Use(middleware.CORS(cfg.AllowedOrigins))

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", LivenessProbe)
	app.Get("/health/ready", ReadinessProbe(upstream))
	app.Get("/health/startup", StartupProbe)

	// ============================================================
	// API Docs
	// ============================================================

	app.Get("/docs", SwaggerUI)
	app.Get("/docs/openapi.yaml", SwaggerSpec)

	// ============================================================
	// API Routes
	// ============================================================

	api := app.Group(APIPrefix)

	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Room Designer API v1",
			"status":  "ok",
		})
	})
	api.All("/*", upstream.Handler(APIPrefix))

	return app
}
