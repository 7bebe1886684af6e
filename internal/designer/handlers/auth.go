package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"room-designer/internal/auth/models"
	"room-designer/internal/auth/service"
	"room-designer/internal/common/middleware"
	"room-designer/internal/common/validation"
	"room-designer/internal/designer/session"
	"room-designer/internal/designer/store"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// ============================================================
// Auth Handler
// ============================================================

type AuthHandler struct {
	auth     *service.Authenticator
	sessions *session.Registry
	log      *zap.Logger
}

func NewAuthHandler(auth *service.Authenticator, sessions *session.Registry, log *zap.Logger) *AuthHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthHandler{auth: auth, sessions: sessions, log: log}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token   string          `json:"token"`
	User    models.Identity `json:"user"`
	Notices []store.Notice  `json:"notices"`
}

// Login checks credentials and opens a session workspace.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "empty body"})
	}

	var req loginRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if err := validation.Validator().Struct(req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "username and password required"})
	}

	identity, err := h.auth.Authenticate(c.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error":   "invalid credentials",
			"notices": []store.Notice{{Level: store.LevelError, Message: "Invalid username or password", At: time.Now()}},
		})
	}
	if err != nil {
		h.log.Error("authenticate", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "login unavailable"})
	}

	ws, err := h.sessions.Open(c.Context(), identity)
	if err != nil {
		h.log.Error("open session", zap.String("username", identity.Username), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "login unavailable"})
	}

	ws.Notices.Notify(store.Notice{Level: store.LevelSuccess, Message: "Login successful"})
	return c.JSON(loginResponse{
		Token:   ws.Token,
		User:    identity,
		Notices: ws.Notices.Drain(),
	})
}

// Logout tears the session down. Unknown tokens log out successfully too.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	token := middleware.BearerToken(c)
	if token == "" {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	if err := h.sessions.Close(c.Context(), token); err != nil {
		h.log.Error("close session", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "logout failed"})
	}

	return c.JSON(fiber.Map{
		"notices": []store.Notice{{Level: store.LevelInfo, Message: "Logged out successfully", At: time.Now()}},
	})
}

// Me reports who the session belongs to. It must run behind RequireSession.
func (h *AuthHandler) Me(c fiber.Ctx) error {
	ws := session.FromContext(c)
	if ws == nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	return c.JSON(fiber.Map{
		"authenticated": true,
		"user":          ws.Identity,
	})
}
