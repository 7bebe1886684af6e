package handlers

import (
	"room-designer/internal/designer/interaction"
	"room-designer/internal/designer/models"
	"room-designer/internal/designer/session"

	"github.com/gofiber/fiber/v3"
)

type pointRequest struct {
	X *float64 `json:"x" validate:"required"`
	Y *float64 `json:"y" validate:"required"`
}

func (r pointRequest) point() models.Point {
	return models.Point{X: *r.X, Y: *r.Y}
}

// ============================================================
// Pointer Handlers
// ============================================================

// PointerDown resolves a press at screen coordinates.
func (h *Handler) PointerDown(c fiber.Ctx) error {
	return h.run(c, func(ws *session.Workspace) (fiber.Map, error) {
		var req pointRequest
		if err := h.decode(c, &req); err != nil {
			return nil, err
		}
		hit, err := ws.Engine.Press(req.point())
		if err != nil {
			return nil, err
		}
		return fiber.Map{"hit": hit}, nil
	})
}

func (h *Handler) PointerMove(c fiber.Ctx) error {
	return h.run(c, func(ws *session.Workspace) (fiber.Map, error) {
		var req pointRequest
		if err := h.decode(c, &req); err != nil {
			return nil, err
		}
		ws.Pointer.Move(req.point())
		return nil, nil
	})
}

func (h *Handler) PointerUp(c fiber.Ctx) error {
	return h.run(c, func(ws *session.Workspace) (fiber.Map, error) {
		var req pointRequest
		if err := h.decode(c, &req); err != nil {
			return nil, err
		}
		ws.Pointer.Up(req.point())
		return nil, nil
	})
}

// SetViewport records where the room sits on the caller's screen.
func (h *Handler) SetViewport(c fiber.Ctx) error {
	return h.run(c, func(ws *session.Workspace) (fiber.Map, error) {
		var vp interaction.Viewport
		if err := h.decode(c, &vp); err != nil {
			return nil, err
		}
		ws.Engine.SetViewport(vp)
		return fiber.Map{"viewport": vp}, nil
	})
}
