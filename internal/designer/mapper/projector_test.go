package mapper

import (
	"math"
	"testing"
	"time"

	"room-designer/internal/designer/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roomWith(furniture ...models.Furniture) models.Room {
	room := models.CreateRoom("projection", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	room.Furniture = furniture
	return room
}

func TestProject_Bed(t *testing.T) {
	bed := models.CreateFurniture(models.Bed, 0, 0)
	scene := Project(roomWith(bed))

	require.Len(t, scene.Furniture, 1)
	box := scene.Furniture[0]
	assert.Equal(t, bed.ID, box.FurnitureID)
	assert.InDelta(t, 0.5, box.Height, 1e-9)
	assert.InDelta(t, 2.8, box.Width, 1e-9)
	assert.InDelta(t, 5.0, box.Length, 1e-9)
	assert.InDelta(t, -3.6, box.Position.X, 1e-9)
	assert.InDelta(t, -2.5, box.Position.Z, 1e-9)
	assert.InDelta(t, 0.25, box.Position.Y, 1e-9)
	assert.Equal(t, 0.0, box.RotationY)
}

func TestProject_RoomShell(t *testing.T) {
	room := roomWith()
	room.Width = 1000
	room.Height = 200
	room.WallColor = "#E5DEFF"
	scene := Project(room)

	assert.InDelta(t, 20.0, scene.Width, 1e-9)
	assert.InDelta(t, 5.0, scene.Length, 1e-9)

	assert.Equal(t, Vec3{}, scene.Floor.Position)
	assert.InDelta(t, -math.Pi/2, scene.Floor.Rotation.X, 1e-12)
	assert.Equal(t, "#F1F0FB", scene.Floor.Color)

	require.Len(t, scene.Walls, 3)
	back, left, right := scene.Walls[0], scene.Walls[1], scene.Walls[2]

	assert.Equal(t, Vec3{X: 0, Y: 2.5, Z: -2.5}, back.Position)
	assert.Equal(t, 20.0, back.Width)
	assert.Equal(t, WallHeight, back.Height)

	assert.Equal(t, Vec3{X: -10, Y: 2.5, Z: 0}, left.Position)
	assert.InDelta(t, math.Pi/2, left.Rotation.Y, 1e-12)
	assert.Equal(t, 5.0, left.Width)

	assert.Equal(t, Vec3{X: 10, Y: 2.5, Z: 0}, right.Position)
	assert.InDelta(t, -math.Pi/2, right.Rotation.Y, 1e-12)

	for _, w := range scene.Walls {
		assert.Equal(t, "#E5DEFF", w.Color)
	}
	assert.Empty(t, scene.Furniture)
}

func TestProject_FurnitureHeightsAndRotation(t *testing.T) {
	cases := map[models.FurnitureType]float64{
		models.Chair:     0.8,
		models.Sofa:      0.9,
		models.Table:     0.75,
		models.Bed:       0.5,
		models.Cabinet:   1.2,
		models.Desk:      0.75,
		models.Bookshelf: 1.8,
		models.Rug:       0.05,
		"lamp":           0.5,
	}
	for ft, want := range cases {
		assert.Equal(t, want, FurnitureHeight(ft), string(ft))
	}

	shelf := models.CreateFurniture(models.Bookshelf, 250, 200)
	shelf.Rotation = 90
	box := Project(roomWith(shelf)).Furniture[0]

	assert.InDelta(t, math.Pi/2, box.RotationY, 1e-12)
	assert.InDelta(t, 0.9, box.Position.Y, 1e-9)
	assert.InDelta(t, 0.9, box.Position.X, 1e-9)
	assert.InDelta(t, 0.375, box.Position.Z, 1e-9)
}

func TestProject_Presets(t *testing.T) {
	scene := Project(roomWith())

	assert.Equal(t, Vec3{X: 0, Y: 5, Z: 5}, scene.Camera.Position)
	assert.Equal(t, 60.0, scene.Camera.FOV)
	assert.Equal(t, 2.0, scene.Controls.MinDistance)
	assert.Equal(t, 20.0, scene.Controls.MaxDistance)
	assert.InDelta(t, math.Pi/2-0.1, scene.Controls.MaxPolarAngle, 1e-12)
	assert.Equal(t, 0.5, scene.Lighting.AmbientIntensity)
	assert.Equal(t, Vec3{X: 10, Y: 10, Z: 5}, scene.Lighting.DirectionalPosition)
	assert.Equal(t, 1.0, scene.Lighting.DirectionalIntensity)
}
