package session

import (
	"context"
	"sync"
	"testing"
	"time"

	authmodels "room-designer/internal/auth/models"
	"room-designer/internal/designer/models"
	"room-designer/internal/designer/store"
	"room-designer/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var admin = authmodels.Identity{Username: "admin", Name: "Admin User"}

func TestRegistry_OpenResolveClose(t *testing.T) {
	ctx := context.Background()
	blobs := storage.NewMemory()
	reg := NewRegistry(blobs, nil)

	ws, err := reg.Open(ctx, admin)
	require.NoError(t, err)
	require.NotEmpty(t, ws.Token)
	assert.Equal(t, admin, ws.Identity)
	assert.Equal(t, 1, reg.Len())

	data, ok, err := blobs.Get(ctx, IdentityKey(ws.Token))
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"username":"admin","name":"Admin User"}`, string(data))

	got, err := reg.Resolve(ctx, ws.Token)
	require.NoError(t, err)
	assert.Same(t, ws, got)

	require.NoError(t, reg.Close(ctx, ws.Token))
	assert.Equal(t, 0, reg.Len())
	_, ok, _ = blobs.Get(ctx, IdentityKey(ws.Token))
	assert.False(t, ok)

	_, err = reg.Resolve(ctx, ws.Token)
	assert.ErrorIs(t, err, ErrUnknownSession)
	assert.ErrorIs(t, ws.Do(func(*Workspace) error { return nil }), ErrClosed)
}

func TestRegistry_RestoreAfterRestart(t *testing.T) {
	ctx := context.Background()
	blobs := storage.NewMemory()

	first := NewRegistry(blobs, nil)
	ws, err := first.Open(ctx, admin)
	require.NoError(t, err)
	require.NoError(t, ws.Do(func(w *Workspace) error {
		w.Store.CreateNewRoom("kept")
		return w.Store.SaveRoom(ctx)
	}))
	first.Shutdown()
	assert.Equal(t, 0, first.Len())

	second := NewRegistry(blobs, nil)
	restored, err := second.Resolve(ctx, ws.Token)
	require.NoError(t, err)
	assert.Equal(t, admin, restored.Identity)

	saved := restored.Store.SavedRooms()
	require.Len(t, saved, 1)
	assert.Equal(t, "kept", saved[0].Name)
	_, open := restored.Store.CurrentRoom()
	assert.False(t, open)
}

func TestRegistry_CorruptIdentityDiscarded(t *testing.T) {
	ctx := context.Background()
	blobs := storage.NewMemory()
	reg := NewRegistry(blobs, nil)

	require.NoError(t, blobs.Put(ctx, IdentityKey("bad"), []byte("not json")))
	require.NoError(t, blobs.Put(ctx, IdentityKey("empty"), []byte(`{"name":"No Username"}`)))

	for _, token := range []string{"bad", "empty", "missing", ""} {
		_, err := reg.Resolve(ctx, token)
		assert.ErrorIs(t, err, ErrUnknownSession, token)
	}

	_, ok, _ := blobs.Get(ctx, IdentityKey("bad"))
	assert.False(t, ok)
	_, ok, _ = blobs.Get(ctx, IdentityKey("empty"))
	assert.False(t, ok)
}

func TestRegistry_CorruptSavedRoomsReported(t *testing.T) {
	ctx := context.Background()
	blobs := storage.NewMemory()
	require.NoError(t, blobs.Put(ctx, store.SavedRoomsKey("admin"), []byte(`{"oops"`)))

	ws, err := NewRegistry(blobs, nil).Open(ctx, admin)
	require.NoError(t, err)

	notices := ws.Notices.Drain()
	require.Len(t, notices, 1)
	assert.Equal(t, "Failed to load saved rooms", notices[0].Message)
	assert.Empty(t, ws.Store.SavedRooms())
}

func TestWorkspace_TeardownEndsInteraction(t *testing.T) {
	ctx := context.Background()
	ws, err := NewRegistry(storage.NewMemory(), nil).Open(ctx, admin)
	require.NoError(t, err)

	require.NoError(t, ws.Do(func(w *Workspace) error {
		w.Store.CreateNewRoom("r")
		f, err := w.Store.AddFurniture(models.Chair, 0, 0)
		if err != nil {
			return err
		}
		return w.Engine.PressItem(f.ID, models.Point{X: 5, Y: 5})
	}))
	assert.Equal(t, 1, ws.Pointer.Listeners())

	ws.Teardown()
	ws.Teardown()
	assert.Equal(t, 0, ws.Pointer.Listeners())
}

func TestRegistry_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry(storage.NewMemory(), nil)

	a, err := reg.Open(ctx, admin)
	require.NoError(t, err)
	b, err := reg.Open(ctx, authmodels.Identity{Username: "guest", Name: "Guest"})
	require.NoError(t, err)
	assert.NotEqual(t, a.Token, b.Token)

	a.Store.CreateNewRoom("only a")
	_, ok := b.Store.CurrentRoom()
	assert.False(t, ok)
}

// gatedBlobs holds reads of one key until released.
type gatedBlobs struct {
	*storage.Memory
	key     string
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGatedBlobs(t *testing.T, mem *storage.Memory, key string) *gatedBlobs {
	b := &gatedBlobs{
		Memory:  mem,
		key:     key,
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	t.Cleanup(b.open)
	return b
}

func (b *gatedBlobs) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := b.Memory.Get(ctx, key)
	if key == b.key {
		select {
		case b.entered <- struct{}{}:
		default:
		}
		<-b.release
	}
	return data, ok, err
}

func (b *gatedBlobs) open() {
	b.once.Do(func() { close(b.release) })
}

func TestRegistry_LogoutDuringRestoreWins(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()

	ws, err := NewRegistry(mem, nil).Open(ctx, admin)
	require.NoError(t, err)

	blobs := newGatedBlobs(t, mem, IdentityKey(ws.Token))
	reg := NewRegistry(blobs, nil)

	type result struct {
		ws  *Workspace
		err error
	}
	done := make(chan result, 1)
	go func() {
		got, err := reg.Resolve(ctx, ws.Token)
		done <- result{got, err}
	}()

	<-blobs.entered
	require.NoError(t, reg.Close(ctx, ws.Token))
	blobs.open()

	res := <-done
	assert.ErrorIs(t, res.err, ErrUnknownSession)
	assert.Nil(t, res.ws)
	assert.Equal(t, 0, reg.Len())

	_, err = reg.Resolve(ctx, ws.Token)
	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestRegistry_SlowRestoreDoesNotBlockOthers(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	slow := authmodels.Identity{Username: "slow", Name: "Slow Reader"}

	stale, err := NewRegistry(mem, nil).Open(ctx, slow)
	require.NoError(t, err)

	blobs := newGatedBlobs(t, mem, store.SavedRoomsKey(slow.Username))
	reg := NewRegistry(blobs, nil)
	other, err := reg.Open(ctx, admin)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := reg.Resolve(ctx, stale.Token)
		done <- err
	}()
	<-blobs.entered

	resolved := make(chan *Workspace, 1)
	go func() {
		got, _ := reg.Resolve(ctx, other.Token)
		resolved <- got
	}()
	select {
	case got := <-resolved:
		assert.Same(t, other, got)
	case <-time.After(2 * time.Second):
		t.Fatal("resolve blocked behind a restore")
	}

	blobs.open()
	require.NoError(t, <-done)
	assert.Equal(t, 2, reg.Len())
}
