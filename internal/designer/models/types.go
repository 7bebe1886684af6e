package models

import (
	"slices"
	"strings"
	"time"
)

// ============================================================
// Furniture
// ============================================================

type FurnitureType string

const (
	Chair     FurnitureType = "chair"
	Sofa      FurnitureType = "sofa"
	Table     FurnitureType = "table"
	Bed       FurnitureType = "bed"
	Cabinet   FurnitureType = "cabinet"
	Desk      FurnitureType = "desk"
	Bookshelf FurnitureType = "bookshelf"
	Rug       FurnitureType = "rug"
)

// FurnitureTypes lists every type in palette order.
var FurnitureTypes = []FurnitureType{Chair, Sofa, Table, Bed, Desk, Cabinet, Bookshelf, Rug}

func (t FurnitureType) Valid() bool {
	_, ok := DefaultFurnitureSizes[t]
	return ok
}

// ParseFurnitureType accepts a type name in any case.
func ParseFurnitureType(s string) (FurnitureType, bool) {
	t := FurnitureType(strings.ToLower(strings.TrimSpace(s)))
	return t, t.Valid()
}

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

var DefaultFurnitureSizes = map[FurnitureType]Size{
	Chair:     {Width: 50, Height: 50},
	Sofa:      {Width: 150, Height: 80},
	Table:     {Width: 100, Height: 60},
	Bed:       {Width: 140, Height: 200},
	Cabinet:   {Width: 80, Height: 40},
	Desk:      {Width: 120, Height: 60},
	Bookshelf: {Width: 90, Height: 30},
	Rug:       {Width: 150, Height: 120},
}

type Furniture struct {
	ID       string        `json:"id" validate:"required"`
	Type     FurnitureType `json:"type" validate:"furniture_type"`
	X        float64       `json:"x"`
	Y        float64       `json:"y"`
	Width    float64       `json:"width" validate:"gt=0"`
	Height   float64       `json:"height" validate:"gt=0"`
	Rotation int           `json:"rotation" validate:"min=0,lt=360"`
	Color    string        `json:"color" validate:"hexcolor"`
}

// ============================================================
// Room
// ============================================================

type Room struct {
	ID         string      `json:"id" validate:"required"`
	Name       string      `json:"name"`
	Width      float64     `json:"width" validate:"gt=0"`
	Height     float64     `json:"height" validate:"gt=0"`
	WallColor  string      `json:"wallColor" validate:"hexcolor"`
	FloorColor string      `json:"floorColor" validate:"hexcolor"`
	Furniture  []Furniture `json:"furniture" validate:"dive"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// Clone returns a deep copy; snapshots handed out never share a backing array.
func (r Room) Clone() Room {
	out := r
	out.Furniture = slices.Clone(r.Furniture)
	if out.Furniture == nil {
		out.Furniture = []Furniture{}
	}
	return out
}

// FindFurniture returns the piece with id and its index.
func (r Room) FindFurniture(id string) (Furniture, int, bool) {
	for i, f := range r.Furniture {
		if f.ID == id {
			return f, i, true
		}
	}
	return Furniture{}, -1, false
}

// ============================================================
// Palettes
// ============================================================

var FurnitureColors = []string{
	"#9b87f5",
	"#7E69AB",
	"#F2FCE2",
	"#FEF7CD",
	"#FEC6A1",
	"#D3E4FD",
	"#F1F0FB",
	"#FFDEE2",
	"#403E43",
	"#1EAEDB",
}

var WallColors = []string{"#FFFFFF", "#F1F0FB", "#E5DEFF", "#FDE1D3", "#FEF7CD"}

var FloorColors = []string{"#F1F0FB", "#FDE1D3", "#D3E4FD", "#F2FCE2", "#FEF7CD"}
