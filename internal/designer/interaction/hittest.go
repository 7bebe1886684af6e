package interaction

import (
	"room-designer/internal/designer/models"
)

type Target int

const (
	TargetBackground Target = iota
	TargetBody
	TargetHandle
)

func (t Target) String() string {
	switch t {
	case TargetBody:
		return "body"
	case TargetHandle:
		return "handle"
	default:
		return "background"
	}
}

func (t Target) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Hit is the result of resolving a room-local point against the layout.
type Hit struct {
	Target Target `json:"target"`
	ID     string `json:"id,omitempty"`
}

// HitTest finds what lies under p. The selected piece is drawn above the
// others, so it is tested first; the rest are tested topmost (last) first.
func HitTest(room models.Room, selectedID string, p models.Point) Hit {
	if sel, _, ok := room.FindFurniture(selectedID); ok {
		if sel.OnHandle(p) {
			return Hit{Target: TargetHandle, ID: sel.ID}
		}
		if sel.Contains(p) {
			return Hit{Target: TargetBody, ID: sel.ID}
		}
	}

	for i := len(room.Furniture) - 1; i >= 0; i-- {
		f := room.Furniture[i]
		if f.ID == selectedID {
			continue
		}
		if f.Contains(p) {
			return Hit{Target: TargetBody, ID: f.ID}
		}
	}
	return Hit{Target: TargetBackground}
}
