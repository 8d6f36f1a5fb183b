package auth

import (
	"context"
	"fmt"

	"github.com/jwwisniewski/cashcard-spring-academy/types"
	"golang.org/x/crypto/bcrypt"
)

// Seed is a plaintext identity used to build a StaticStore. The
// plaintext never outlives construction.
type Seed struct {
	Username string
	Password string
	Roles    []string
}

// DevUsers returns the fixed development identities. Two hold the
// card-owner role, one deliberately does not.
func DevUsers() []Seed {
	return []Seed{
		{Username: "sarah1", Password: "test123", Roles: []string{RoleCardOwner}},
		{Username: "hank1", Password: "test123", Roles: []string{"non-owner"}},
		{Username: "kumar2", Password: "xyz789", Roles: []string{RoleCardOwner}},
	}
}

// StaticStore is an in-memory, read-only credential store. Passwords
// are hashed with bcrypt at construction and only the hashes are kept.
type StaticStore struct {
	users     map[string]types.User
	dummyHash []byte
}

func NewStaticStore(seeds ...Seed) (*StaticStore, error) {
	users := make(map[string]types.User, len(seeds))
	for _, seed := range seeds {
		if _, exists := users[seed.Username]; exists {
			return nil, fmt.Errorf("duplicate username %q", seed.Username)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %q: %w", seed.Username, err)
		}
		users[seed.Username] = types.User{
			Username:     seed.Username,
			PasswordHash: string(hash),
			Roles:        append([]string(nil), seed.Roles...),
		}
	}

	dummyHash, err := bcrypt.GenerateFromPassword([]byte("edcba54321"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash dummy password: %w", err)
	}

	return &StaticStore{users: users, dummyHash: dummyHash}, nil
}

func (s *StaticStore) Authenticate(ctx context.Context, username, password string) (types.User, error) {
	user, ok := s.users[username]
	if !ok {
		// Burn a compare so unknown usernames take as long as
		// wrong passwords.
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return types.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return types.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *StaticStore) HasRole(user types.User, role string) bool {
	return hasRole(user, role)
}
