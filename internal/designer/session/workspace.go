package session

import (
	"context"
	"errors"
	"sync"

	authmodels "room-designer/internal/auth/models"
	"room-designer/internal/designer/interaction"
	"room-designer/internal/designer/store"
	"room-designer/internal/storage"

	"go.uber.org/zap"
)

var ErrClosed = errors.New("session closed")

// ============================================================
// Workspace
// ============================================================

// Workspace is everything one signed-in session works with. Events are
// applied one at a time through Do.
type Workspace struct {
	mu sync.Mutex

	Token    string
	Identity authmodels.Identity
	Store    *store.Store
	Engine   *interaction.Engine
	Pointer  *interaction.PointerBus
	Notices  *store.NoticeLog

	closed bool
}

func newWorkspace(ctx context.Context, token string, identity authmodels.Identity, blobs storage.BlobStore, log *zap.Logger) *Workspace {
	log = log.With(zap.String("username", identity.Username))

	notices := store.NewNoticeLog(log)
	archive := store.NewBlobArchive(blobs, store.SavedRoomsKey(identity.Username))
	st := store.New(archive, notices, store.WithLogger(log))
	if err := st.Load(ctx); err != nil {
		log.Warn("saved rooms unavailable", zap.Error(err))
	}

	bus := interaction.NewPointerBus()
	return &Workspace{
		Token:    token,
		Identity: identity,
		Store:    st,
		Engine:   interaction.NewEngine(st, bus, log),
		Pointer:  bus,
		Notices:  notices,
	}
}

// Do runs fn with the workspace locked. It fails with ErrClosed once the
// session has been torn down.
func (w *Workspace) Do(fn func(w *Workspace) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	return fn(w)
}

// Teardown cancels any drag or resize and marks the workspace closed.
func (w *Workspace) Teardown() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	w.Engine.Teardown()
	w.closed = true
}
