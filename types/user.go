package types

// User represents an authenticated identity.
// It exists only for credential verification and role checks; the API
// never creates or mutates users.
type User struct {
	// ID is the unique identifier of the user. Zero for identities
	// that come from the static credential set.
	ID int64 `json:"id" db:"id"`

	// Username is the unique login name presented via HTTP Basic
	// authentication. It doubles as the owner key on cash cards.
	Username string `json:"username" db:"username"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// Roles lists the authorization roles granted to the user
	// (e.g., "card-owner").
	Roles []string `json:"roles" db:"roles"`
}
