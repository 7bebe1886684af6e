package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"room-designer/internal/designer/models"
	"room-designer/internal/designer/session"

	"github.com/gofiber/fiber/v3"
)

// maxImportSize bounds an uploaded room file.
const maxImportSize = 1 << 20

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type createRoomRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// ============================================================
// Room Handlers
// ============================================================

func (h *Handler) CreateRoom(c fiber.Ctx) error {
	return h.run(c, func(ws *session.Workspace) (fiber.Map, error) {
		var req createRoomRequest
		if err := h.decode(c, &req); err != nil {
			return nil, err
		}
		name := strings.TrimSpace(req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: room name required", errBadRequest)
		}

		ws.Engine.Teardown()
		ws.Store.CreateNewRoom(name)
		return nil, nil
	})
}

func (h *Handler) UpdateRoom(c fiber.Ctx) error {
	return h.run(c, func(ws *session.Workspace) (fiber.Map, error) {
		var patch models.RoomPatch
		if err := h.decode(c, &patch); err != nil {
			return nil, err
		}
		return nil, ws.Store.UpdateRoom(patch)
	})
}

func (h *Handler) SaveRoom(c fiber.Ctx) error {
	return h.run(c, func(ws *session.Workspace) (fiber.Map, error) {
		return nil, ws.Store.SaveRoom(c.Context())
	})
}

func (h *Handler) LoadRoom(c fiber.Ctx) error {
	return h.run(c, func(ws *session.Workspace) (fiber.Map, error) {
		if err := ws.Store.LoadRoom(c.Params("id")); err != nil {
			return nil, err
		}
		ws.Engine.Teardown()
		return nil, nil
	})
}

func (h *Handler) DeleteRoom(c fiber.Ctx) error {
	return h.run(c, func(ws *session.Workspace) (fiber.Map, error) {
		id := c.Params("id")
		if room, ok := ws.Store.CurrentRoom(); ok && room.ID == id {
			ws.Engine.Teardown()
		}
		return nil, ws.Store.DeleteRoom(c.Context(), id)
	})
}

// ImportRoom adds an uploaded room JSON file to the saved layouts.
func (h *Handler) ImportRoom(c fiber.Ctx) error {
	return h.run(c, func(ws *session.Workspace) (fiber.Map, error) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("%w: file is required", errBadRequest)
		}
		if fileHeader.Size > maxImportSize {
			return nil, fmt.Errorf("%w: file too large", errBadRequest)
		}

		file, err := fileHeader.Open()
		if err != nil {
			return nil, fmt.Errorf("open upload: %w", err)
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxImportSize))
		if err != nil {
			return nil, fmt.Errorf("read upload: %w", err)
		}

		var room models.Room
		if err := json.Unmarshal(data, &room); err != nil {
			return nil, fmt.Errorf("%w: invalid room json", errBadRequest)
		}
		if err := ws.Store.ImportRoom(c.Context(), room); err != nil {
			return nil, err
		}
		return fiber.Map{"imported": room.ID}, nil
	})
}

// ExportRoom downloads a saved room as JSON.
func (h *Handler) ExportRoom(c fiber.Ctx) error {
	ws := session.FromContext(c)
	if ws == nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var (
		room  models.Room
		found bool
	)
	if err := ws.Do(func(ws *session.Workspace) error {
		room, found = ws.Store.SavedRoom(c.Params("id"))
		return nil
	}); err != nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "session closed"})
	}
	if !found {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "room not found"})
	}

	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename(room)))
	return c.JSON(room)
}

func exportFilename(room models.Room) string {
	name := strings.Trim(unsafeFilename.ReplaceAllString(room.Name, "-"), "-")
	if name == "" {
		name = room.ID
	}
	return name + ".json"
}
