package models

import "time"

// User represents a registered account. Only the bcrypt hash of the
// password is ever stored.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	ModifiedAt   time.Time `json:"modified_at,omitempty"`
}
