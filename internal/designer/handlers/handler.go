package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"room-designer/internal/common/validation"
	"room-designer/internal/designer/interaction"
	"room-designer/internal/designer/mapper"
	"room-designer/internal/designer/session"
	"room-designer/internal/designer/store"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

var errBadRequest = errors.New("bad request")

// ============================================================
// Designer Handler
// ============================================================

type Handler struct {
	renderer *mapper.Renderer
	validate *validator.Validate
	log      *zap.Logger
}

func NewHandler(log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		renderer: mapper.NewRenderer(),
		validate: validation.Validator(),
		log:      log,
	}
}

// Register mounts the designer routes on r, which must sit behind
// session.RequireSession.
func (h *Handler) Register(r fiber.Router) {
	r.Get("/views/dashboard", h.Dashboard)
	r.Get("/views/editor", h.Editor)
	r.Get("/views/editor/svg", h.EditorSVG)
	r.Get("/views/viewer", h.Viewer)
	r.Get("/views/saved-layouts", h.SavedLayouts)

	r.Post("/rooms", h.CreateRoom)
	r.Patch("/rooms/current", h.UpdateRoom)
	r.Post("/rooms/current/save", h.SaveRoom)
	r.Post("/rooms/import", h.ImportRoom)
	r.Post("/rooms/:id/load", h.LoadRoom)
	r.Delete("/rooms/:id", h.DeleteRoom)
	r.Get("/rooms/:id/export", h.ExportRoom)

	r.Post("/furniture", h.AddFurniture)
	r.Patch("/furniture/:id", h.UpdateFurniture)
	r.Delete("/furniture/:id", h.RemoveFurniture)
	r.Post("/furniture/:id/rotate", h.RotateFurniture)
	r.Post("/furniture/:id/color", h.RecolorFurniture)
	r.Put("/selection", h.Select)

	r.Post("/pointer/down", h.PointerDown)
	r.Post("/pointer/move", h.PointerMove)
	r.Post("/pointer/up", h.PointerUp)
	r.Post("/pointer/viewport", h.SetViewport)
}

// ============================================================
// Helpers
// ============================================================

// run applies fn to the caller's workspace and answers with the resulting
// editor state plus any notices it produced.
func (h *Handler) run(c fiber.Ctx, fn func(ws *session.Workspace) (fiber.Map, error)) error {
	ws := session.FromContext(c)
	if ws == nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var body fiber.Map
	err := ws.Do(func(ws *session.Workspace) error {
		extra, err := fn(ws)
		body = state(ws)
		for k, v := range extra {
			body[k] = v
		}
		return err
	})
	if errors.Is(err, session.ErrClosed) {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "session closed"})
	}
	if err != nil {
		body["error"] = err.Error()
		return c.Status(statusFor(err)).JSON(body)
	}
	return c.JSON(body)
}

func state(ws *session.Workspace) fiber.Map {
	var room any
	if r, ok := ws.Store.CurrentRoom(); ok {
		room = r
	}
	return fiber.Map{
		"room":        room,
		"selectedId":  ws.Store.SelectedFurnitureID(),
		"interaction": ws.Engine.State(),
		"notices":     ws.Notices.Drain(),
	}
}

func statusFor(err error) int {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, errBadRequest), errors.As(err, &verrs):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrUnknownFurnitureType), errors.Is(err, store.ErrInvalidPatch):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrSavedRoomsUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, store.ErrNoCurrentRoom), errors.Is(err, interaction.ErrNoRoom):
		return http.StatusConflict
	case errors.Is(err, store.ErrRoomNotFound), errors.Is(err, interaction.ErrFurnitureNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// decode reads a JSON body into dst and validates it.
func (h *Handler) decode(c fiber.Ctx, dst any) error {
	if len(c.Body()) == 0 {
		return fmt.Errorf("%w: empty body", errBadRequest)
	}
	if err := json.Unmarshal(c.Body(), dst); err != nil {
		return fmt.Errorf("%w: invalid json", errBadRequest)
	}
	if err := h.validate.Struct(dst); err != nil {
		return err
	}
	return nil
}
