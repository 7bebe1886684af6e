package repository

import (
	"context"
	"path/filepath"
	"testing"

	"room-designer/internal/storage"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := New(db)
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func TestInit_SeedsAdminOnce(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Init(ctx))

	admin, err := repo.GetByUsername(ctx, AdminUsername)
	require.NoError(t, err)
	assert.Equal(t, AdminID, admin.ID)
	assert.Equal(t, AdminName, admin.Name)
	assert.NotEmpty(t, admin.CreatedAt)
	assert.NotEqual(t, AdminPassword, admin.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(AdminPassword)))
}

func TestGetByUsername_Unknown(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreate_DuplicateUsername(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "u-2", "maria", "secret", "Maria"))
	err := repo.Create(ctx, "u-3", "maria", "other", "Maria Again")
	assert.Error(t, err)

	user, err := repo.GetByUsername(ctx, "maria")
	require.NoError(t, err)
	assert.Equal(t, "u-2", user.ID)
	assert.Equal(t, "maria", user.Identity().Username)
}
