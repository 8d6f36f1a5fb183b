package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/jwwisniewski/cashcard-spring-academy/types"
)

// RoleCardOwner is required to reach any cash card endpoint.
const RoleCardOwner = "card-owner"

// ErrInvalidCredentials covers both unknown usernames and wrong
// passwords so callers cannot probe which accounts exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// CredentialStore verifies presented credentials and answers role
// checks. Implementations must be safe for concurrent use.
type CredentialStore interface {
	Authenticate(ctx context.Context, username, password string) (types.User, error)
	HasRole(user types.User, role string) bool
}

func hasRole(user types.User, role string) bool {
	for _, r := range user.Roles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}
