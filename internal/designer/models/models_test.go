package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFurniture_DefaultSizes(t *testing.T) {
	seen := map[string]bool{}

	for _, ft := range FurnitureTypes {
		f := CreateFurniture(ft, 12, 34)

		size := DefaultFurnitureSizes[ft]
		assert.Equal(t, size.Width, f.Width, ft)
		assert.Equal(t, size.Height, f.Height, ft)
		assert.Equal(t, 0, f.Rotation)
		assert.Equal(t, 12.0, f.X)
		assert.Equal(t, 34.0, f.Y)
		assert.Equal(t, FurnitureColors[0], f.Color)

		require.NotEmpty(t, f.ID)
		assert.False(t, seen[f.ID], "duplicate id %s", f.ID)
		seen[f.ID] = true
	}
}

func TestCreateFurniture_Color(t *testing.T) {
	f := CreateFurniture(Sofa, 0, 0, "#1EAEDB")
	assert.Equal(t, "#1EAEDB", f.Color)
	assert.Equal(t, 150.0, f.Width)
	assert.Equal(t, 80.0, f.Height)
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		id := NewID()
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
}

func TestCreateRoom_Defaults(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r := CreateRoom("Living room", now)

	assert.Equal(t, "Living room", r.Name)
	assert.Equal(t, 500.0, r.Width)
	assert.Equal(t, 400.0, r.Height)
	assert.Equal(t, "#FFFFFF", r.WallColor)
	assert.Equal(t, "#F1F0FB", r.FloorColor)
	assert.Empty(t, r.Furniture)
	assert.NotNil(t, r.Furniture)
	assert.Equal(t, now, r.CreatedAt)
	assert.Equal(t, now, r.UpdatedAt)
	assert.NoError(t, r.Validate())
}

func TestNormalizeRotation(t *testing.T) {
	cases := map[int]int{
		0:    0,
		90:   90,
		360:  0,
		450:  90,
		-90:  270,
		-360: 0,
		-450: 270,
		719:  359,
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeRotation(in), "rotation %d", in)
	}
}

func TestFurniturePatch_Apply(t *testing.T) {
	f := CreateFurniture(Chair, 10, 10)

	got := FurniturePatch{
		X:        Ptr(-5.0),
		Y:        Ptr(42.5),
		Width:    Ptr(12.0),
		Height:   Ptr(29.9),
		Rotation: Ptr(-90),
	}.Apply(f)

	assert.Equal(t, 0.0, got.X)
	assert.Equal(t, 42.5, got.Y)
	assert.Equal(t, MinFurnitureSize, got.Width)
	assert.Equal(t, MinFurnitureSize, got.Height)
	assert.Equal(t, 270, got.Rotation)
	assert.Equal(t, f.Color, got.Color)
	assert.Equal(t, f.ID, got.ID)

	assert.True(t, FurniturePatch{}.Empty())
	assert.Equal(t, f, FurniturePatch{}.Apply(f))
}

func TestRoomPatch_ApplyDoesNotAlias(t *testing.T) {
	r := CreateRoom("a", time.Now())
	r.Furniture = append(r.Furniture, CreateFurniture(Bed, 0, 0))

	out := RoomPatch{Name: Ptr("b"), Width: Ptr(-1.0), Height: Ptr(800.0)}.Apply(r)
	out.Furniture[0].X = 99

	assert.Equal(t, "b", out.Name)
	assert.Equal(t, 500.0, out.Width)
	assert.Equal(t, 800.0, out.Height)
	assert.Equal(t, 0.0, r.Furniture[0].X)
	assert.Equal(t, "a", r.Name)
}

func TestRoom_Validate(t *testing.T) {
	r := CreateRoom("ok", time.Now())
	r.Furniture = []Furniture{CreateFurniture(Desk, 1, 1)}
	require.NoError(t, r.Validate())

	bad := r.Clone()
	bad.Furniture[0].Type = "lamp"
	assert.Error(t, bad.Validate())

	bad = r.Clone()
	bad.Furniture = append(bad.Furniture, bad.Furniture[0])
	assert.ErrorContains(t, bad.Validate(), "duplicate furniture id")

	bad = r.Clone()
	bad.WallColor = "white"
	assert.Error(t, bad.Validate())

	bad = r.Clone()
	bad.Width = 0
	assert.Error(t, bad.Validate())
}

func TestRoom_FindFurniture(t *testing.T) {
	r := CreateRoom("x", time.Now())
	a := CreateFurniture(Rug, 0, 0)
	b := CreateFurniture(Table, 0, 0)
	r.Furniture = []Furniture{a, b}

	got, idx, ok := r.FindFurniture(b.ID)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, b, got)

	_, idx, ok = r.FindFurniture("missing")
	assert.False(t, ok)
	assert.Equal(t, -1, idx)
}
