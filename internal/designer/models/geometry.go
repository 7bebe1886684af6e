package models

import "math"

// HandleSize is the side of the square resize handle at a selected piece's
// bottom-right corner.
const HandleSize = 12.0

// ============================================================
// Geometry
// ============================================================

// Point is a position in room-local pixels, y pointing down.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

func (f Furniture) TopLeft() Point {
	return Point{X: f.X, Y: f.Y}
}

func (f Furniture) Center() Point {
	return Point{X: f.X + f.Width/2, Y: f.Y + f.Height/2}
}

// Corners returns the four corners clockwise from top-left after rotating the
// piece about its center.
func (f Furniture) Corners() []Point {
	return []Point{
		f.World(Point{X: 0, Y: 0}),
		f.World(Point{X: f.Width, Y: 0}),
		f.World(Point{X: f.Width, Y: f.Height}),
		f.World(Point{X: 0, Y: f.Height}),
	}
}

// World maps a point in the piece's unrotated frame back into the room.
func (f Furniture) World(l Point) Point {
	c := f.Center()
	dx := l.X - f.Width/2
	dy := l.Y - f.Height/2
	if f.Rotation != 0 {
		sin, cos := math.Sincos(float64(f.Rotation) * math.Pi / 180)
		dx, dy = dx*cos-dy*sin, dx*sin+dy*cos
	}
	return Point{X: c.X + dx, Y: c.Y + dy}
}

// Local maps a room point into the piece's unrotated frame, with the origin
// at its top-left corner.
func (f Furniture) Local(p Point) Point {
	c := f.Center()
	dx := p.X - c.X
	dy := p.Y - c.Y
	if f.Rotation != 0 {
		sin, cos := math.Sincos(-float64(f.Rotation) * math.Pi / 180)
		dx, dy = dx*cos-dy*sin, dx*sin+dy*cos
	}
	return Point{X: dx + f.Width/2, Y: dy + f.Height/2}
}

// Contains reports whether p falls on the piece, rotation included.
func (f Furniture) Contains(p Point) bool {
	l := f.Local(p)
	return Rect{Width: f.Width, Height: f.Height}.Contains(l.X, l.Y)
}

// Handle is the resize handle in the piece's unrotated frame. It shrinks to
// fit pieces smaller than HandleSize.
func (f Furniture) Handle() Rect {
	size := min(HandleSize, f.Width, f.Height)
	return Rect{X: f.Width - size, Y: f.Height - size, Width: size, Height: size}
}

// HandleCorners returns the handle's corners in the room, clockwise from
// top-left.
func (f Furniture) HandleCorners() []Point {
	h := f.Handle()
	return []Point{
		f.World(Point{X: h.X, Y: h.Y}),
		f.World(Point{X: h.X + h.Width, Y: h.Y}),
		f.World(Point{X: h.X + h.Width, Y: h.Y + h.Height}),
		f.World(Point{X: h.X, Y: h.Y + h.Height}),
	}
}

// OnHandle reports whether p falls on the piece's resize handle.
func (f Furniture) OnHandle(p Point) bool {
	l := f.Local(p)
	return f.Handle().Contains(l.X, l.Y)
}
