package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"room-designer/internal/designer/models"

	"go.uber.org/zap"
)

var (
	ErrNoCurrentRoom        = errors.New("no room is open")
	ErrRoomNotFound         = errors.New("room not found")
	ErrUnknownFurnitureType = errors.New("unknown furniture type")
	ErrInvalidPatch         = errors.New("invalid changes")
	// ErrSavedRoomsUnavailable means the stored collection could not be read,
	// so it must not be overwritten.
	ErrSavedRoomsUnavailable = errors.New("saved rooms unavailable")
)

// ============================================================
// Layout State Store
// ============================================================

// Store owns the current room, the saved collection and the selection.
// Every mutation swaps in a new Room value; snapshots handed to callers are
// clones. Store is not safe for concurrent use: a session's workspace
// serialises access to it.
type Store struct {
	archive Archive
	notify  Notifier
	log     *zap.Logger
	now     func() time.Time

	current    *models.Room
	saved      []models.Room
	loaded     bool
	selectedID string
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

func New(archive Archive, notify Notifier, opts ...Option) *Store {
	s := &Store{
		archive: archive,
		notify:  notify,
		log:     zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the saved collection at session start. A corrupt blob is
// reported, cleared and treated as empty, and invalid rooms are skipped with a
// warning. Any other read error leaves the store unloaded: writes to the
// collection retry the read and are refused while it keeps failing.
func (s *Store) Load(ctx context.Context) error {
	rooms, skipped, err := s.archive.Load(ctx)
	if err != nil {
		s.log.Error("load saved rooms", zap.Error(err))
		s.emit(LevelError, "Failed to load saved rooms")
		if !errors.Is(err, ErrCorruptArchive) {
			return fmt.Errorf("%w: %w", ErrSavedRoomsUnavailable, err)
		}
		if clearErr := s.archive.Clear(ctx); clearErr != nil {
			s.log.Error("clear corrupt saved rooms", zap.Error(clearErr))
		}
		rooms = nil
	}

	if len(skipped) > 0 {
		s.log.Warn("skipped invalid saved rooms", zap.Strings("room_ids", skipped))
		s.emit(LevelWarning, fmt.Sprintf("Skipped %d invalid saved room(s)", len(skipped)))
	}
	s.saved = dedupe(rooms)
	s.loaded = true
	return nil
}

// Loaded reports whether the saved collection has been read.
func (s *Store) Loaded() bool {
	return s.loaded
}

// ============================================================
// Readers
// ============================================================

func (s *Store) CurrentRoom() (models.Room, bool) {
	if s.current == nil {
		return models.Room{}, false
	}
	return s.current.Clone(), true
}

func (s *Store) SavedRooms() []models.Room {
	out := make([]models.Room, len(s.saved))
	for i, r := range s.saved {
		out[i] = r.Clone()
	}
	return out
}

func (s *Store) SavedRoom(id string) (models.Room, bool) {
	if i := s.savedIndex(id); i >= 0 {
		return s.saved[i].Clone(), true
	}
	return models.Room{}, false
}

func (s *Store) SelectedFurnitureID() string {
	return s.selectedID
}

// SelectedFurniture resolves the selection; a stale id reads as no selection.
func (s *Store) SelectedFurniture() (models.Furniture, bool) {
	if s.current == nil || s.selectedID == "" {
		return models.Furniture{}, false
	}
	f, _, ok := s.current.FindFurniture(s.selectedID)
	return f, ok
}

// ============================================================
// Room mutations
// ============================================================

func (s *Store) CreateNewRoom(name string) models.Room {
	room := models.CreateRoom(name, s.now())
	s.current = &room
	s.selectedID = ""
	s.emit(LevelSuccess, "Created new room: "+name)
	return room.Clone()
}

func (s *Store) UpdateRoom(patch models.RoomPatch) error {
	if s.current == nil {
		return s.noRoom()
	}
	if err := patch.Validate(); err != nil {
		s.emit(LevelWarning, "Invalid room settings")
		return fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	next := patch.Apply(*s.current)
	s.commit(next)
	return nil
}

// ============================================================
// Furniture mutations
// ============================================================

func (s *Store) AddFurniture(t models.FurnitureType, x, y float64) (models.Furniture, error) {
	if s.current == nil {
		return models.Furniture{}, s.noRoom()
	}
	if !t.Valid() {
		s.emit(LevelWarning, fmt.Sprintf("Unknown furniture type: %s", t))
		return models.Furniture{}, fmt.Errorf("%w: %s", ErrUnknownFurnitureType, t)
	}

	f := models.CreateFurniture(t, x, y)
	next := s.current.Clone()
	next.Furniture = append(next.Furniture, f)
	s.commit(next)
	s.selectedID = f.ID

	s.emit(LevelSuccess, "Added "+string(t))
	return f, nil
}

// UpdateFurniture merges patch into the piece with id. An unknown id changes
// nothing but the room's updatedAt.
func (s *Store) UpdateFurniture(id string, patch models.FurniturePatch) error {
	if s.current == nil {
		return s.noRoom()
	}
	if err := patch.Validate(); err != nil {
		s.emit(LevelWarning, "Invalid furniture settings")
		return fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}

	next := s.current.Clone()
	if _, i, ok := next.FindFurniture(id); ok {
		next.Furniture[i] = patch.Apply(next.Furniture[i])
	}
	s.commit(next)
	return nil
}

func (s *Store) RemoveFurniture(id string) error {
	if s.current == nil {
		return s.noRoom()
	}

	next := s.current.Clone()
	kept := next.Furniture[:0]
	for _, f := range next.Furniture {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	next.Furniture = kept
	s.commit(next)

	if s.selectedID == id {
		s.selectedID = ""
	}
	s.emit(LevelSuccess, "Removed furniture item")
	return nil
}

// SetSelectedFurnitureID sets the selection without checking that id exists.
func (s *Store) SetSelectedFurnitureID(id string) {
	s.selectedID = id
}

// ============================================================
// Saved collection
// ============================================================

// SaveRoom refreshes updatedAt, upserts the current room and writes the whole
// collection. A failed write keeps the in-memory edits.
func (s *Store) SaveRoom(ctx context.Context) error {
	if s.current == nil {
		return s.noRoom()
	}
	if err := s.ensureLoaded(ctx); err != nil {
		s.emit(LevelError, "Failed to save room")
		return fmt.Errorf("save room: %w", err)
	}

	next := s.current.Clone()
	next.UpdatedAt = s.now()
	s.current = &next

	if i := s.savedIndex(next.ID); i >= 0 {
		s.saved[i] = next.Clone()
	} else {
		s.saved = append(s.saved, next.Clone())
	}

	if err := s.archive.Save(ctx, s.saved); err != nil {
		s.log.Error("save room", zap.String("room_id", next.ID), zap.Error(err))
		s.emit(LevelError, "Failed to save room")
		return fmt.Errorf("save room %s: %w", next.ID, err)
	}

	s.emit(LevelSuccess, "Saved room: "+next.Name)
	return nil
}

func (s *Store) LoadRoom(id string) error {
	if !s.loaded {
		s.emit(LevelError, "Saved rooms are unavailable")
		return ErrSavedRoomsUnavailable
	}
	i := s.savedIndex(id)
	if i < 0 {
		s.emit(LevelError, "Could not find room")
		return fmt.Errorf("%w: %s", ErrRoomNotFound, id)
	}

	room := s.saved[i].Clone()
	s.current = &room
	s.selectedID = ""
	s.emit(LevelSuccess, "Loaded room: "+room.Name)
	return nil
}

// DeleteRoom drops id from the collection and closes it if it is open.
func (s *Store) DeleteRoom(ctx context.Context, id string) error {
	if err := s.ensureLoaded(ctx); err != nil {
		s.emit(LevelError, "Failed to delete room")
		return fmt.Errorf("delete room %s: %w", id, err)
	}

	i := s.savedIndex(id)
	isCurrent := s.current != nil && s.current.ID == id
	if i < 0 && !isCurrent {
		s.emit(LevelError, "Could not find room")
		return fmt.Errorf("%w: %s", ErrRoomNotFound, id)
	}

	if isCurrent {
		s.current = nil
		s.selectedID = ""
	}
	if i < 0 {
		s.emit(LevelSuccess, "Room deleted")
		return nil
	}

	s.saved = append(s.saved[:i:i], s.saved[i+1:]...)
	if err := s.archive.Save(ctx, s.saved); err != nil {
		s.log.Error("delete room", zap.String("room_id", id), zap.Error(err))
		s.emit(LevelError, "Failed to delete room")
		return fmt.Errorf("delete room %s: %w", id, err)
	}

	s.emit(LevelSuccess, "Room deleted")
	return nil
}

// ImportRoom upserts an externally supplied room into the collection.
func (s *Store) ImportRoom(ctx context.Context, room models.Room) error {
	if err := room.Validate(); err != nil {
		s.emit(LevelError, "Could not import room")
		return err
	}
	if err := s.ensureLoaded(ctx); err != nil {
		s.emit(LevelError, "Failed to save room")
		return fmt.Errorf("import room %s: %w", room.ID, err)
	}

	room = room.Clone()
	if i := s.savedIndex(room.ID); i >= 0 {
		s.saved[i] = room
	} else {
		s.saved = append(s.saved, room)
	}

	if err := s.archive.Save(ctx, s.saved); err != nil {
		s.log.Error("import room", zap.String("room_id", room.ID), zap.Error(err))
		s.emit(LevelError, "Failed to save room")
		return fmt.Errorf("import room %s: %w", room.ID, err)
	}

	s.emit(LevelSuccess, "Imported room: "+room.Name)
	return nil
}

// ============================================================
// Helpers
// ============================================================

// ensureLoaded retries a failed initial read before the collection is
// overwritten.
func (s *Store) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	return s.Load(ctx)
}

// commit installs next as the current snapshot with a fresh updatedAt.
func (s *Store) commit(next models.Room) {
	next.UpdatedAt = s.now()
	s.current = &next
}

func (s *Store) savedIndex(id string) int {
	for i, r := range s.saved {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) noRoom() error {
	s.emit(LevelWarning, "Please create a room first")
	return ErrNoCurrentRoom
}

func (s *Store) emit(level Level, msg string) {
	if s.notify != nil {
		s.notify.Notify(Notice{Level: level, Message: msg, At: s.now()})
	}
}

// dedupe keeps the last entry per id, at the position of its first occurrence.
func dedupe(rooms []models.Room) []models.Room {
	out := make([]models.Room, 0, len(rooms))
	index := make(map[string]int, len(rooms))
	for _, r := range rooms {
		if i, ok := index[r.ID]; ok {
			out[i] = r
			continue
		}
		index[r.ID] = len(out)
		out = append(out, r)
	}
	return out
}
