package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	authmodels "room-designer/internal/auth/models"
	"room-designer/internal/common/validation"
	"room-designer/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrUnknownSession = errors.New("unknown session")

// IdentityKey names the blob that remembers who holds token.
func IdentityKey(token string) string {
	return "roomDesignerUser:" + token
}

// ============================================================
// Registry
// ============================================================

// Registry maps session tokens to workspaces. A token whose workspace is not
// in memory is restored from its identity blob. Tokens closed by this process
// are remembered so an in-flight restore cannot bring them back.
type Registry struct {
	mu         sync.Mutex
	blobs      storage.BlobStore
	log        *zap.Logger
	workspaces map[string]*Workspace
	closed     map[string]struct{}
}

func NewRegistry(blobs storage.BlobStore, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		blobs:      blobs,
		log:        log,
		workspaces: make(map[string]*Workspace),
		closed:     make(map[string]struct{}),
	}
}

// Open issues a token for identity, persists the identity and builds the
// workspace.
func (r *Registry) Open(ctx context.Context, identity authmodels.Identity) (*Workspace, error) {
	data, err := json.Marshal(identity)
	if err != nil {
		return nil, fmt.Errorf("encode identity: %w", err)
	}

	token := uuid.NewString()
	if err := r.blobs.Put(ctx, IdentityKey(token), data); err != nil {
		return nil, fmt.Errorf("store identity: %w", err)
	}

	ws := newWorkspace(ctx, token, identity, r.blobs, r.log)

	r.mu.Lock()
	r.workspaces[token] = ws
	r.mu.Unlock()

	r.log.Info("session opened", zap.String("username", identity.Username))
	return ws, nil
}

// Resolve returns the workspace for token, restoring it from storage when
// needed. A corrupt identity blob is deleted and the token treated as unknown.
func (r *Registry) Resolve(ctx context.Context, token string) (*Workspace, error) {
	if token == "" {
		return nil, ErrUnknownSession
	}

	r.mu.Lock()
	ws, ok := r.workspaces[token]
	_, closed := r.closed[token]
	r.mu.Unlock()
	if ok {
		return ws, nil
	}
	if closed {
		return nil, ErrUnknownSession
	}

	identity, err := r.loadIdentity(ctx, token)
	if err != nil {
		return nil, err
	}

	// Reading saved rooms may be slow; other sessions must not wait on it.
	restored := newWorkspace(ctx, token, identity, r.blobs, r.log)

	r.mu.Lock()
	if _, closed := r.closed[token]; closed {
		r.mu.Unlock()
		restored.Teardown()
		return nil, ErrUnknownSession
	}
	if ws, ok := r.workspaces[token]; ok {
		r.mu.Unlock()
		restored.Teardown()
		return ws, nil
	}
	r.workspaces[token] = restored
	r.mu.Unlock()

	r.log.Info("session restored", zap.String("username", identity.Username))
	return restored, nil
}

// Close tears down the workspace for token and forgets its identity.
func (r *Registry) Close(ctx context.Context, token string) error {
	r.mu.Lock()
	ws, ok := r.workspaces[token]
	delete(r.workspaces, token)
	r.closed[token] = struct{}{}
	r.mu.Unlock()

	if ok {
		ws.Teardown()
	}
	if err := r.blobs.Delete(ctx, IdentityKey(token)); err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}
	return nil
}

// Shutdown tears down every workspace but keeps identities so sessions can be
// restored after a restart.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	workspaces := r.workspaces
	r.workspaces = make(map[string]*Workspace)
	r.mu.Unlock()

	for _, ws := range workspaces {
		ws.Teardown()
	}
	r.log.Info("sessions closed", zap.Int("count", len(workspaces)))
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.workspaces)
}

func (r *Registry) loadIdentity(ctx context.Context, token string) (authmodels.Identity, error) {
	key := IdentityKey(token)
	data, ok, err := r.blobs.Get(ctx, key)
	if err != nil {
		return authmodels.Identity{}, fmt.Errorf("read identity: %w", err)
	}
	if !ok {
		return authmodels.Identity{}, ErrUnknownSession
	}

	var identity authmodels.Identity
	err = json.Unmarshal(data, &identity)
	if err == nil {
		err = validation.Validator().Struct(identity)
	}
	if err == nil {
		return identity, nil
	}

	r.log.Warn("discarding corrupt identity", zap.String("key", key), zap.Error(err))
	if err := r.blobs.Delete(ctx, key); err != nil {
		r.log.Error("delete corrupt identity", zap.String("key", key), zap.Error(err))
	}
	return authmodels.Identity{}, ErrUnknownSession
}
