package auth

import (
	"context"
	"errors"

	"github.com/jwwisniewski/cashcard-spring-academy/internal/store"
	"github.com/jwwisniewski/cashcard-spring-academy/types"
	"golang.org/x/crypto/bcrypt"
)

// UserSource provides user lookup for the database-backed store.
type UserSource interface {
	GetByUsername(ctx context.Context, username string) (types.User, error)
}

// DBStore resolves credentials against the users table. It lets a
// real user database replace the static set without touching the
// authorization gate.
type DBStore struct {
	users UserSource
}

func NewDBStore(users UserSource) *DBStore {
	return &DBStore{users: users}
}

func (s *DBStore) Authenticate(ctx context.Context, username, password string) (types.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrInvalidCredentials
		}
		return types.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return types.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *DBStore) HasRole(user types.User, role string) bool {
	return hasRole(user, role)
}
