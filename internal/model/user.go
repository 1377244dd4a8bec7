package model

import "time"

// User is an account known to the service. Other entities reference users by
// ID only. PasswordHash never leaves the auth path and is excluded from JSON.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
