package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultRoomWidth  = 500.0
	DefaultRoomHeight = 400.0
	DefaultWallColor  = "#FFFFFF"
	DefaultFloorColor = "#F1F0FB"
)

// NewID returns a random 122-bit identifier.
func NewID() string {
	return uuid.NewString()
}

// CreateFurniture places a default-sized piece of type t at (x, y).
// Color defaults to the first palette entry.
func CreateFurniture(t FurnitureType, x, y float64, color ...string) Furniture {
	c := FurnitureColors[0]
	if len(color) > 0 && color[0] != "" {
		c = color[0]
	}

	size := DefaultFurnitureSizes[t]
	return Furniture{
		ID:       NewID(),
		Type:     t,
		X:        x,
		Y:        y,
		Width:    size.Width,
		Height:   size.Height,
		Rotation: 0,
		Color:    c,
	}
}

// CreateRoom returns an empty room with default extents and colors.
func CreateRoom(name string, now time.Time) Room {
	return Room{
		ID:         NewID(),
		Name:       name,
		Width:      DefaultRoomWidth,
		Height:     DefaultRoomHeight,
		WallColor:  DefaultWallColor,
		FloorColor: DefaultFloorColor,
		Furniture:  []Furniture{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
