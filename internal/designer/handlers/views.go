package handlers

import (
	"net/http"

	"room-designer/internal/designer/session"
	"room-designer/internal/designer/views"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// ============================================================
// View Handlers
// ============================================================

func (h *Handler) Dashboard(c fiber.Ctx) error {
	return h.view(c, func(ws *session.Workspace) any {
		return views.BuildDashboard(ws.Identity, ws.Store)
	})
}

func (h *Handler) Editor(c fiber.Ctx) error {
	return h.view(c, func(ws *session.Workspace) any {
		return views.BuildEditor(ws.Store, ws.Engine.State(), ws.Engine.Viewport())
	})
}

func (h *Handler) Viewer(c fiber.Ctx) error {
	return h.view(c, func(ws *session.Workspace) any {
		return views.BuildViewer(ws.Store)
	})
}

func (h *Handler) SavedLayouts(c fiber.Ctx) error {
	return h.view(c, func(ws *session.Workspace) any {
		return views.BuildSavedLayouts(ws.Store)
	})
}

// EditorSVG renders the current room as it appears in the 2D editor.
func (h *Handler) EditorSVG(c fiber.Ctx) error {
	ws := session.FromContext(c)
	if ws == nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var (
		svg     string
		hasRoom bool
		err     error
	)
	if doErr := ws.Do(func(ws *session.Workspace) error {
		room, ok := ws.Store.CurrentRoom()
		if !ok {
			return nil
		}
		hasRoom = true
		svg, err = h.renderer.Render(room, ws.Store.SelectedFurnitureID())
		return nil
	}); doErr != nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "session closed"})
	}

	if !hasRoom {
		return c.Status(http.StatusConflict).JSON(fiber.Map{"error": views.NoRoomMessage})
	}
	if err != nil {
		h.log.Error("render svg", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "render failed"})
	}

	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(svg)
}

// view answers with a view model and drains pending notices alongside it.
func (h *Handler) view(c fiber.Ctx, build func(ws *session.Workspace) any) error {
	ws := session.FromContext(c)
	if ws == nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var body fiber.Map
	if err := ws.Do(func(ws *session.Workspace) error {
		body = fiber.Map{"view": build(ws), "notices": ws.Notices.Drain()}
		return nil
	}); err != nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "session closed"})
	}
	return c.JSON(body)
}
