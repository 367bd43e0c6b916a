package domain

import "time"

// User is an admin-console account. PasswordHash is a bcrypt hash and never
// leaves the server.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
