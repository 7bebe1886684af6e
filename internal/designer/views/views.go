package views

import (
	"fmt"
	"slices"
	"time"

	authmodels "room-designer/internal/auth/models"
	"room-designer/internal/designer/interaction"
	"room-designer/internal/designer/mapper"
	"room-designer/internal/designer/models"
)

// RecentLimit caps the rooms listed on the dashboard.
const RecentLimit = 6

const NoRoomMessage = "No room selected. Please create or load a room first."

// Source is the read side of the layout store.
type Source interface {
	CurrentRoom() (models.Room, bool)
	SavedRooms() []models.Room
	SelectedFurniture() (models.Furniture, bool)
}

// ============================================================
// View models
// ============================================================

type RoomSummary struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Width          float64   `json:"width"`
	Height         float64   `json:"height"`
	FurnitureCount int       `json:"furnitureCount"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type Dashboard struct {
	Greeting   string              `json:"greeting"`
	User       authmodels.Identity `json:"user"`
	Current    *RoomSummary        `json:"current,omitempty"`
	Recent     []RoomSummary       `json:"recent"`
	SavedCount int                 `json:"savedCount"`
}

type Palettes struct {
	FurnitureTypes  []models.FurnitureType               `json:"furnitureTypes"`
	DefaultSizes    map[models.FurnitureType]models.Size `json:"defaultSizes"`
	FurnitureColors []string                             `json:"furnitureColors"`
	WallColors      []string                             `json:"wallColors"`
	FloorColors     []string                             `json:"floorColors"`
}

type Editor struct {
	Room        *models.Room         `json:"room"`
	Selected    *models.Furniture    `json:"selected"`
	Interaction interaction.State    `json:"interaction"`
	Viewport    interaction.Viewport `json:"viewport"`
	Palettes    Palettes             `json:"palettes"`
	Message     string               `json:"message,omitempty"`
}

type Viewer struct {
	Scene   *mapper.Scene `json:"scene"`
	Message string        `json:"message,omitempty"`
}

type SavedLayouts struct {
	Label string        `json:"label"`
	Rooms []RoomSummary `json:"rooms"`
}

// ============================================================
// Builders
// ============================================================

func BuildDashboard(user authmodels.Identity, src Source) Dashboard {
	name := user.Name
	if name == "" {
		name = "User"
	}

	saved := summaries(src.SavedRooms())
	d := Dashboard{
		Greeting:   "Welcome back, " + name,
		User:       user,
		Recent:     saved[:min(len(saved), RecentLimit)],
		SavedCount: len(saved),
	}
	if room, ok := src.CurrentRoom(); ok {
		s := summarize(room)
		d.Current = &s
	}
	return d
}

func BuildEditor(src Source, state interaction.State, viewport interaction.Viewport) Editor {
	e := Editor{
		Interaction: state,
		Viewport:    viewport,
		Palettes:    palettes(),
	}

	room, ok := src.CurrentRoom()
	if !ok {
		e.Message = NoRoomMessage
		return e
	}
	e.Room = &room
	if f, ok := src.SelectedFurniture(); ok {
		e.Selected = &f
	}
	return e
}

func BuildViewer(src Source) Viewer {
	room, ok := src.CurrentRoom()
	if !ok {
		return Viewer{Message: NoRoomMessage}
	}
	scene := mapper.Project(room)
	return Viewer{Scene: &scene}
}

func BuildSavedLayouts(src Source) SavedLayouts {
	rooms := summaries(src.SavedRooms())

	label := fmt.Sprintf("%d layouts saved", len(rooms))
	if len(rooms) == 1 {
		label = "1 layout saved"
	}
	return SavedLayouts{Label: label, Rooms: rooms}
}

// ============================================================
// Helpers
// ============================================================

// summaries lists rooms newest first.
func summaries(rooms []models.Room) []RoomSummary {
	out := make([]RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, summarize(r))
	}
	slices.SortStableFunc(out, func(a, b RoomSummary) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return out
}

func summarize(r models.Room) RoomSummary {
	return RoomSummary{
		ID:             r.ID,
		Name:           r.Name,
		Width:          r.Width,
		Height:         r.Height,
		FurnitureCount: len(r.Furniture),
		UpdatedAt:      r.UpdatedAt,
	}
}

func palettes() Palettes {
	return Palettes{
		FurnitureTypes:  models.FurnitureTypes,
		DefaultSizes:    models.DefaultFurnitureSizes,
		FurnitureColors: models.FurnitureColors,
		WallColors:      models.WallColors,
		FloorColors:     models.FloorColors,
	}
}
