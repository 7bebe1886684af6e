package handlers

import (
	"fmt"

	"room-designer/internal/designer/models"
	"room-designer/internal/designer/session"

	"github.com/gofiber/fiber/v3"
)

type addFurnitureRequest struct {
	Type string  `json:"type" validate:"required"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type rotateRequest struct {
	Direction string `json:"direction" validate:"omitempty,oneof=cw ccw"`
	Degrees   *int   `json:"degrees"`
}

type recolorRequest struct {
	Color string `json:"color" validate:"required,hexcolor"`
}

type selectRequest struct {
	ID *string `json:"id"`
}

// ============================================================
// Furniture Handlers
// ============================================================

func (h *Handler) AddFurniture(c fiber.Ctx) error {
	return h.run(c, func(ws *session.Workspace) (fiber.Map, error) {
		var req addFurnitureRequest
		if err := h.decode(c, &req); err != nil {
			return nil, err
		}
		ft, _ := models.ParseFurnitureType(req.Type)

		f, err := ws.Store.AddFurniture(ft, req.X, req.Y)
		if err != nil {
			return nil, err
		}
		return fiber.Map{"furniture": f}, nil
	})
}

func (h *Handler) UpdateFurniture(c fiber.Ctx) error {
	return h.run(c, func(ws *session.Workspace) (fiber.Map, error) {
		var patch models.FurniturePatch
		if err := h.decode(c, &patch); err != nil {
			return nil, err
		}
		return nil, ws.Store.UpdateFurniture(c.Params("id"), patch)
	})
}

func (h *Handler) RemoveFurniture(c fiber.Ctx) error {
	return h.run(c, func(ws *session.Workspace) (fiber.Map, error) {
		id := c.Params("id")
		if ws.Engine.State().ActiveID == id {
			ws.Engine.Teardown()
		}
		return nil, ws.Store.RemoveFurniture(id)
	})
}

// RotateFurniture turns a piece a quarter either way, or to an exact angle.
func (h *Handler) RotateFurniture(c fiber.Ctx) error {
	return h.run(c, func(ws *session.Workspace) (fiber.Map, error) {
		var req rotateRequest
		if err := h.decode(c, &req); err != nil {
			return nil, err
		}

		id := c.Params("id")
		switch {
		case req.Degrees != nil:
			return nil, ws.Engine.SetRotation(id, *req.Degrees)
		case req.Direction == "cw":
			return nil, ws.Engine.RotateClockwise(id)
		case req.Direction == "ccw":
			return nil, ws.Engine.RotateCounterClockwise(id)
		}
		return nil, fmt.Errorf("%w: direction or degrees required", errBadRequest)
	})
}

// RecolorFurniture applies a palette colour to a piece.
func (h *Handler) RecolorFurniture(c fiber.Ctx) error {
	return h.run(c, func(ws *session.Workspace) (fiber.Map, error) {
		var req recolorRequest
		if err := h.decode(c, &req); err != nil {
			return nil, err
		}
		return nil, ws.Engine.Recolor(c.Params("id"), req.Color)
	})
}

// Select sets or clears the selection; the id is not checked.
func (h *Handler) Select(c fiber.Ctx) error {
	return h.run(c, func(ws *session.Workspace) (fiber.Map, error) {
		var req selectRequest
		if err := h.decode(c, &req); err != nil {
			return nil, err
		}
		if req.ID == nil || *req.ID == "" {
			ws.Engine.ClickBackground()
			return nil, nil
		}
		ws.Store.SetSelectedFurnitureID(*req.ID)
		return nil, nil
	})
}
