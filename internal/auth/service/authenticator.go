package service

import (
	"context"
	"errors"
	"fmt"

	"room-designer/internal/auth/models"
	"room-designer/internal/auth/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// UserLookup finds a user by name.
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// ============================================================
// Authenticator
// ============================================================

type Authenticator struct {
	users UserLookup
	log   *zap.Logger
}

func NewAuthenticator(users UserLookup, log *zap.Logger) *Authenticator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Authenticator{users: users, log: log}
}

// Authenticate checks a username/password pair. Unknown users and wrong
// passwords both yield ErrInvalidCredentials.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (models.Identity, error) {
	user, err := a.users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Identity{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Identity{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		a.log.Info("login rejected", zap.String("username", username))
		return models.Identity{}, ErrInvalidCredentials
	}
	return user.Identity(), nil
}
