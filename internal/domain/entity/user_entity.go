package entity

import "time"

// User is the aggregate root for the credential domain.
// Password holds a bcrypt hash and never leaves the credential store;
// API payloads are built from the public fields only.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Password  string    `json:"password_hash"`
	CreatedAt time.Time `json:"created_at"`
}

// Session marks which user is currently authenticated. It copies the
// user's public fields so the credential store is not consulted on
// every request.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Valid reports whether a decoded session carries the fields the rest
// of the system relies on. Corrupt persisted sessions read as absent.
func (s *Session) Valid() bool {
	return s != nil && s.ID != "" && s.UserID != ""
}
