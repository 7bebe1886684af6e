package session

import (
	"errors"
	"net/http"

	"room-designer/internal/common/middleware"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

const workspaceKey = "workspace"

// RequireSession resolves the bearer token to a workspace and stores it for
// the handlers behind it.
func RequireSession(reg *Registry) fiber.Handler {
	return func(c fiber.Ctx) error {
		ws, err := reg.Resolve(c.Context(), middleware.BearerToken(c))
		if errors.Is(err, ErrUnknownSession) {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}
		if err != nil {
			reg.log.Error("resolve session", zap.Error(err))
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "session unavailable"})
		}

		c.Locals(workspaceKey, ws)
		return c.Next()
	}
}

// FromContext returns the workspace stored by RequireSession.
func FromContext(c fiber.Ctx) *Workspace {
	ws, _ := c.Locals(workspaceKey).(*Workspace)
	return ws
}
