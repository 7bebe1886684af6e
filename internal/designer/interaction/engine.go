package interaction

import (
	"errors"
	"fmt"

	"room-designer/internal/designer/models"

	"go.uber.org/zap"
)

var (
	ErrNoRoom            = errors.New("no room is open")
	ErrFurnitureNotFound = errors.New("furniture not found")
)

// Editor is the slice of the layout store the engine drives.
type Editor interface {
	CurrentRoom() (models.Room, bool)
	SelectedFurnitureID() string
	SetSelectedFurnitureID(id string)
	UpdateFurniture(id string, patch models.FurniturePatch) error
}

// ============================================================
// Viewport
// ============================================================

// Viewport places the room on screen; Origin is the screen position of the
// room's top-left corner.
type Viewport struct {
	OriginX float64 `json:"originX"`
	OriginY float64 `json:"originY"`
}

func (v Viewport) ToRoom(screen models.Point) models.Point {
	return models.Point{X: screen.X - v.OriginX, Y: screen.Y - v.OriginY}
}

// ============================================================
// State machine
// ============================================================

type Mode int

const (
	Idle Mode = iota
	Dragging
	Resizing
)

func (m Mode) String() string {
	switch m {
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	default:
		return "idle"
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// State describes the interaction in progress, if any.
type State struct {
	Mode     Mode   `json:"mode"`
	ActiveID string `json:"activeId,omitempty"`
}

// Engine turns pointer input into store mutations. At most one drag or
// resize is active; its move and up listeners are bound on entry and
// unbound on exit. Engine is not safe for concurrent use.
type Engine struct {
	editor   Editor
	bus      *PointerBus
	log      *zap.Logger
	viewport Viewport

	mode     Mode
	activeID string
	offset   models.Point
	unbind   Unbind
}

func NewEngine(editor Editor, bus *PointerBus, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{editor: editor, bus: bus, log: log}
}

func (e *Engine) State() State {
	return State{Mode: e.mode, ActiveID: e.activeID}
}

func (e *Engine) Viewport() Viewport {
	return e.viewport
}

func (e *Engine) SetViewport(v Viewport) {
	e.viewport = v
}

// Press resolves a pointer-down at a screen point and routes it to the
// handle, the body or the background.
func (e *Engine) Press(screen models.Point) (Hit, error) {
	room, ok := e.editor.CurrentRoom()
	if !ok {
		return Hit{}, ErrNoRoom
	}

	hit := HitTest(room, e.editor.SelectedFurnitureID(), e.viewport.ToRoom(screen))
	switch hit.Target {
	case TargetHandle:
		return hit, e.PressHandle(hit.ID, screen)
	case TargetBody:
		return hit, e.PressItem(hit.ID, screen)
	default:
		e.ClickBackground()
		return hit, nil
	}
}

// PressItem selects id and starts dragging it.
func (e *Engine) PressItem(id string, screen models.Point) error {
	f, err := e.lookup(id)
	if err != nil {
		return err
	}

	e.exit()
	e.editor.SetSelectedFurnitureID(id)
	e.offset = e.viewport.ToRoom(screen).Sub(f.TopLeft())
	e.enter(Dragging, id)
	return nil
}

// PressHandle selects id and starts resizing it.
func (e *Engine) PressHandle(id string, _ models.Point) error {
	if _, err := e.lookup(id); err != nil {
		return err
	}

	e.exit()
	e.editor.SetSelectedFurnitureID(id)
	e.enter(Resizing, id)
	return nil
}

func (e *Engine) ClickBackground() {
	e.exit()
	e.editor.SetSelectedFurnitureID("")
}

// Teardown ends any interaction and releases its listeners.
func (e *Engine) Teardown() {
	e.exit()
}

func (e *Engine) enter(mode Mode, id string) {
	e.mode = mode
	e.activeID = id
	e.unbind = e.bus.Bind(Listener{Move: e.onMove, Up: e.onUp})
	e.log.Debug("interaction started", zap.Stringer("mode", mode), zap.String("furniture_id", id))
}

func (e *Engine) exit() {
	if e.unbind != nil {
		e.unbind()
		e.unbind = nil
	}
	if e.mode != Idle {
		e.log.Debug("interaction ended", zap.Stringer("mode", e.mode), zap.String("furniture_id", e.activeID))
	}
	e.mode = Idle
	e.activeID = ""
	e.offset = models.Point{}
}

func (e *Engine) onMove(screen models.Point) {
	p := e.viewport.ToRoom(screen)

	var patch models.FurniturePatch
	switch e.mode {
	case Dragging:
		at := p.Sub(e.offset)
		patch = models.FurniturePatch{X: models.Ptr(at.X), Y: models.Ptr(at.Y)}
	case Resizing:
		f, err := e.lookup(e.activeID)
		if err != nil {
			e.exit()
			return
		}
		size := p.Sub(f.TopLeft())
		patch = models.FurniturePatch{Width: models.Ptr(size.X), Height: models.Ptr(size.Y)}
	default:
		return
	}

	if err := e.editor.UpdateFurniture(e.activeID, patch); err != nil {
		e.log.Warn("pointer move dropped", zap.String("furniture_id", e.activeID), zap.Error(err))
		e.exit()
	}
}

func (e *Engine) onUp(models.Point) {
	e.exit()
}

// ============================================================
// Control actions
// ============================================================

func (e *Engine) RotateClockwise(id string) error {
	return e.rotateBy(id, models.RotationStep)
}

func (e *Engine) RotateCounterClockwise(id string) error {
	return e.rotateBy(id, -models.RotationStep)
}

// SetRotation stores deg, normalised into [0, 360).
func (e *Engine) SetRotation(id string, deg int) error {
	if _, err := e.lookup(id); err != nil {
		return err
	}
	return e.editor.UpdateFurniture(id, models.FurniturePatch{Rotation: models.Ptr(models.NormalizeRotation(deg))})
}

func (e *Engine) Recolor(id, color string) error {
	if _, err := e.lookup(id); err != nil {
		return err
	}
	return e.editor.UpdateFurniture(id, models.FurniturePatch{Color: models.Ptr(color)})
}

func (e *Engine) rotateBy(id string, delta int) error {
	f, err := e.lookup(id)
	if err != nil {
		return err
	}
	return e.SetRotation(id, f.Rotation+delta)
}

func (e *Engine) lookup(id string) (models.Furniture, error) {
	room, ok := e.editor.CurrentRoom()
	if !ok {
		return models.Furniture{}, ErrNoRoom
	}
	f, _, ok := room.FindFurniture(id)
	if !ok {
		return models.Furniture{}, fmt.Errorf("%w: %s", ErrFurnitureNotFound, id)
	}
	return f, nil
}
