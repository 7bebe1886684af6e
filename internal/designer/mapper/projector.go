package mapper

import (
	"math"

	"room-designer/internal/designer/models"
)

// Reference layout the 3D scale is measured against: a 500x400 px room maps
// to 10x10 world units.
const (
	ReferenceWidth  = 500.0
	ReferenceHeight = 400.0
	WorldSpan       = 10.0
	WallHeight      = 5.0

	defaultFurnitureHeight = 0.5
)

var furnitureHeights = map[models.FurnitureType]float64{
	models.Chair:     0.8,
	models.Sofa:      0.9,
	models.Table:     0.75,
	models.Bed:       0.5,
	models.Cabinet:   1.2,
	models.Desk:      0.75,
	models.Bookshelf: 1.8,
	models.Rug:       0.05,
}

// FurnitureHeight returns the world height of a piece, 0.5 for unknown types.
func FurnitureHeight(t models.FurnitureType) float64 {
	if h, ok := furnitureHeights[t]; ok {
		return h
	}
	return defaultFurnitureHeight
}

// ============================================================
// Scene
// ============================================================

type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Plane is a flat mesh; Width runs along its local X, Height along local Y.
type Plane struct {
	Name     string  `json:"name"`
	Position Vec3    `json:"position"`
	Rotation Vec3    `json:"rotation"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Color    string  `json:"color"`
}

// Box is a furniture solid centered on Position and turned about Y.
type Box struct {
	FurnitureID string               `json:"furnitureId"`
	Type        models.FurnitureType `json:"type"`
	Position    Vec3                 `json:"position"`
	RotationY   float64              `json:"rotationY"`
	Width       float64              `json:"width"`
	Height      float64              `json:"height"`
	Length      float64              `json:"length"`
	Color       string               `json:"color"`
}

type Camera struct {
	Position Vec3    `json:"position"`
	FOV      float64 `json:"fov"`
}

type OrbitControls struct {
	MinDistance   float64 `json:"minDistance"`
	MaxDistance   float64 `json:"maxDistance"`
	MaxPolarAngle float64 `json:"maxPolarAngle"`
	DampingFactor float64 `json:"dampingFactor"`
	EnableDamping bool    `json:"enableDamping"`
}

type Lighting struct {
	AmbientIntensity     float64 `json:"ambientIntensity"`
	DirectionalPosition  Vec3    `json:"directionalPosition"`
	DirectionalIntensity float64 `json:"directionalIntensity"`
}

// Scene is the 3D rendition of a room. The front wall is left open.
type Scene struct {
	RoomID    string        `json:"roomId"`
	Width     float64       `json:"width"`
	Length    float64       `json:"length"`
	Floor     Plane         `json:"floor"`
	Walls     []Plane       `json:"walls"`
	Furniture []Box         `json:"furniture"`
	Camera    Camera        `json:"camera"`
	Controls  OrbitControls `json:"controls"`
	Lighting  Lighting      `json:"lighting"`
}

// DefaultCamera, DefaultControls and DefaultLighting frame the viewer.
var (
	DefaultCamera   = Camera{Position: Vec3{X: 0, Y: 5, Z: 5}, FOV: 60}
	DefaultControls = OrbitControls{
		MinDistance:   2,
		MaxDistance:   20,
		MaxPolarAngle: math.Pi/2 - 0.1,
		DampingFactor: 0.05,
		EnableDamping: true,
	}
	DefaultLighting = Lighting{
		AmbientIntensity:     0.5,
		DirectionalPosition:  Vec3{X: 10, Y: 10, Z: 5},
		DirectionalIntensity: 1,
	}
)

// ============================================================
// Projection
// ============================================================

// Project maps a room into world space. Positions and sizes scale against the
// reference layout, so a room twice as wide is twice as wide in the world.
func Project(room models.Room) Scene {
	w := WorldSpan * room.Width / ReferenceWidth
	l := WorldSpan * room.Height / ReferenceHeight

	scene := Scene{
		RoomID: room.ID,
		Width:  w,
		Length: l,
		Floor: Plane{
			Name:     "floor",
			Rotation: Vec3{X: -math.Pi / 2},
			Width:    w,
			Height:   l,
			Color:    room.FloorColor,
		},
		Walls: []Plane{
			{
				Name:     "back",
				Position: Vec3{Y: WallHeight / 2, Z: -l / 2},
				Width:    w,
				Height:   WallHeight,
				Color:    room.WallColor,
			},
			{
				Name:     "left",
				Position: Vec3{X: -w / 2, Y: WallHeight / 2},
				Rotation: Vec3{Y: math.Pi / 2},
				Width:    l,
				Height:   WallHeight,
				Color:    room.WallColor,
			},
			{
				Name:     "right",
				Position: Vec3{X: w / 2, Y: WallHeight / 2},
				Rotation: Vec3{Y: -math.Pi / 2},
				Width:    l,
				Height:   WallHeight,
				Color:    room.WallColor,
			},
		},
		Furniture: make([]Box, 0, len(room.Furniture)),
		Camera:    DefaultCamera,
		Controls:  DefaultControls,
		Lighting:  DefaultLighting,
	}

	for _, f := range room.Furniture {
		scene.Furniture = append(scene.Furniture, projectFurniture(f, w, l))
	}
	return scene
}

func projectFurniture(f models.Furniture, w, l float64) Box {
	width := f.Width / ReferenceWidth * w
	length := f.Height / ReferenceHeight * l
	height := FurnitureHeight(f.Type)

	x := f.X/ReferenceWidth*w - w/2 + width/2
	z := f.Y/ReferenceHeight*l - l/2 + length/2

	return Box{
		FurnitureID: f.ID,
		Type:        f.Type,
		Position:    Vec3{X: x, Y: height / 2, Z: z},
		RotationY:   float64(f.Rotation) * math.Pi / 180,
		Width:       width,
		Height:      height,
		Length:      length,
		Color:       f.Color,
	}
}
