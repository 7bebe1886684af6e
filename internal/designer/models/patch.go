package models

import "math"

const (
	// MinFurnitureSize is the smallest width or height a piece can be resized to.
	MinFurnitureSize = 30.0
	RotationStep     = 90
)

// NormalizeRotation wraps degrees into [0, 360).
func NormalizeRotation(deg int) int {
	return ((deg % 360) + 360) % 360
}

// ============================================================
// Patches
// ============================================================

// FurniturePatch is a partial update; nil fields are left untouched.
type FurniturePatch struct {
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	Width    *float64 `json:"width,omitempty"`
	Height   *float64 `json:"height,omitempty"`
	Rotation *int     `json:"rotation,omitempty"`
	Color    *string  `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// Apply merges p into f. Position clamps to >= 0, size to >= MinFurnitureSize,
// rotation is normalised.
func (p FurniturePatch) Apply(f Furniture) Furniture {
	if p.X != nil {
		f.X = math.Max(0, *p.X)
	}
	if p.Y != nil {
		f.Y = math.Max(0, *p.Y)
	}
	if p.Width != nil {
		f.Width = math.Max(MinFurnitureSize, *p.Width)
	}
	if p.Height != nil {
		f.Height = math.Max(MinFurnitureSize, *p.Height)
	}
	if p.Rotation != nil {
		f.Rotation = NormalizeRotation(*p.Rotation)
	}
	if p.Color != nil {
		f.Color = *p.Color
	}
	return f
}

func (p FurniturePatch) Empty() bool {
	return p.X == nil && p.Y == nil && p.Width == nil && p.Height == nil && p.Rotation == nil && p.Color == nil
}

// RoomPatch is a partial update of room-level fields.
type RoomPatch struct {
	Name       *string  `json:"name,omitempty" validate:"omitempty,max=100"`
	Width      *float64 `json:"width,omitempty"`
	Height     *float64 `json:"height,omitempty"`
	WallColor  *string  `json:"wallColor,omitempty" validate:"omitempty,hexcolor"`
	FloorColor *string  `json:"floorColor,omitempty" validate:"omitempty,hexcolor"`
}

// Apply merges p into a clone of r. Non-positive extents are ignored.
func (p RoomPatch) Apply(r Room) Room {
	out := r.Clone()
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Width != nil && *p.Width > 0 {
		out.Width = *p.Width
	}
	if p.Height != nil && *p.Height > 0 {
		out.Height = *p.Height
	}
	if p.WallColor != nil {
		out.WallColor = *p.WallColor
	}
	if p.FloorColor != nil {
		out.FloorColor = *p.FloorColor
	}
	return out
}

// Ptr is a helper for building patches.
func Ptr[T any](v T) *T {
	return &v
}
