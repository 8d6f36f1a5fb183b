package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/jwwisniewski/cashcard-spring-academy/internal/auth"
)

const basicRealm = `Basic realm="cashcards"`

// RequireCardOwner builds middleware that authenticates the request
// via HTTP Basic credentials and requires the card-owner role.
// Missing or bad credentials yield 401; a valid identity without the
// role yields 403. Nothing past this middleware runs in either case.
func RequireCardOwner(creds auth.CredentialStore) func(http.Handler) http.Handler {
	return requireRole(creds, auth.RoleCardOwner)
}

func requireRole(creds auth.CredentialStore, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				unauthorized(w)
				return
			}

			user, err := creds.Authenticate(r.Context(), username, password)
			if err != nil {
				if errors.Is(err, auth.ErrInvalidCredentials) {
					unauthorized(w)
					return
				}
				writeError(w, http.StatusInternalServerError, "failed to authenticate")
				return
			}

			if !creds.HasRole(user, role) {
				writeError(w, http.StatusForbidden, "forbidden")
				return
			}

			ctx := context.WithValue(r.Context(), contextOwnerKey, user.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", basicRealm)
	writeError(w, http.StatusUnauthorized, "unauthorized")
}
