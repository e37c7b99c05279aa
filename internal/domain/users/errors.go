package users

import "errors"

var (
	// ErrNotFound indicates the username does not resolve to an account.
	ErrNotFound = errors.New("user not found")
	// ErrAlreadyExists indicates a signup collision on username.
	ErrAlreadyExists = errors.New("username already taken")
)
