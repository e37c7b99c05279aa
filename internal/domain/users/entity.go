package users

import "time"

// UserID identifier type
type UserID string

// User is an account that owns analyses. PasswordHash is a bcrypt hash.
type User struct {
	ID           UserID    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
