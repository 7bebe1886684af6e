package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"room-designer/internal/designer/models"
	"room-designer/internal/storage"
)

// ============================================================
// Saved Room Archive
// ============================================================

// ErrCorruptArchive means the stored collection could not be decoded.
var ErrCorruptArchive = errors.New("saved rooms blob is corrupt")

// Archive persists the saved-room collection as a whole. Load returns the
// valid rooms plus the ids of entries it had to skip.
type Archive interface {
	Load(ctx context.Context) (rooms []models.Room, skipped []string, err error)
	Save(ctx context.Context, rooms []models.Room) error
	Clear(ctx context.Context) error
}

// SavedRoomsKey names the blob that holds username's collection.
func SavedRoomsKey(username string) string {
	return "roomDesignerSavedRooms:" + username
}

// BlobArchive stores the collection as one JSON array under a single key.
type BlobArchive struct {
	blobs storage.BlobStore
	key   string
}

func NewBlobArchive(blobs storage.BlobStore, key string) *BlobArchive {
	return &BlobArchive{blobs: blobs, key: key}
}

// Load fails with ErrCorruptArchive only when the blob is not a JSON array.
// A room that does not decode or validate is skipped on its own.
func (a *BlobArchive) Load(ctx context.Context) ([]models.Room, []string, error) {
	data, ok, err := a.blobs.Get(ctx, a.key)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCorruptArchive, err)
	}

	rooms := make([]models.Room, 0, len(entries))
	var skipped []string
	for i, raw := range entries {
		var r models.Room
		if err := json.Unmarshal(raw, &r); err != nil {
			skipped = append(skipped, fmt.Sprintf("#%d", i))
			continue
		}
		if err := r.Validate(); err != nil {
			if r.ID == "" {
				r.ID = fmt.Sprintf("#%d", i)
			}
			skipped = append(skipped, r.ID)
			continue
		}
		rooms = append(rooms, r)
	}
	return rooms, skipped, nil
}

func (a *BlobArchive) Save(ctx context.Context, rooms []models.Room) error {
	if rooms == nil {
		rooms = []models.Room{}
	}
	data, err := json.Marshal(rooms)
	if err != nil {
		return fmt.Errorf("encode saved rooms: %w", err)
	}
	return a.blobs.Put(ctx, a.key, data)
}

func (a *BlobArchive) Clear(ctx context.Context) error {
	return a.blobs.Delete(ctx, a.key)
}
