package app

import (
	"time"

	"room-designer/internal/auth/service"
	"room-designer/internal/common/config"
	"room-designer/internal/common/middleware"
	"room-designer/internal/designer/handlers"
	"room-designer/internal/designer/session"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"go.uber.org/zap"
)

// ============================================================
// Designer Service
// ============================================================

// New builds the designer HTTP app: health probes, login/logout and the
// session-scoped designer routes.
func New(cfg *config.Config, sessions *session.Registry, auth *service.Authenticator, log *zap.Logger) *fiber.App {
	if log == nil {
		log = zap.NewNop()
	}
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Room Designer",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	if cfg.IsDevelopment() {
		app.Use(middleware.Logger())
	}
	app.Use(middleware.SlowRequests(log, time.Second))
	app.Use(middleware.CORS(cfg.AllowedOrigins))

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready", "sessions": sessions.Len()})
	})

	// ============================================================
	// Auth Routes
	// ============================================================

	authHandler := handlers.NewAuthHandler(auth, sessions, log)
	app.Post("/login", authHandler.Login)
	app.Post("/logout", authHandler.Logout)

	// ============================================================
	// Designer Routes
	// ============================================================

	protected := app.Group("", session.RequireSession(sessions))
	protected.Get("/me", authHandler.Me)
	handlers.NewHandler(log).Register(protected)

	return app
}
