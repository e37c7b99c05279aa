package users

import "context"

// Repository port for the user store
type Repository interface {
	Save(ctx context.Context, u *User) error
	FindByUsername(ctx context.Context, username string) (*User, error)
}
