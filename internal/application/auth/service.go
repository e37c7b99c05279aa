package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/anjarmara/skinsight/internal/application"
	"github.com/anjarmara/skinsight/internal/domain/users"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrMissingFields      = errors.New("username and password are required")
)

// TokenIssuer abstraction over the JWT manager so the service can be tested
// without signing keys.
type TokenIssuer interface {
	Issue(username string) (string, error)
}

// Service implements signup and login, returning signed tokens directly.
type Service struct {
	Users  users.Repository
	Tokens TokenIssuer
	Clock  application.Clock
}

// Signup creates the account and returns a token for it.
func (s *Service) Signup(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrMissingFields
	}

	if _, err := s.Users.FindByUsername(ctx, username); err == nil {
		return "", users.ErrAlreadyExists
	} else if !errors.Is(err, users.ErrNotFound) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	u := &users.User{
		ID:           users.UserID(uuid.New().String()),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.Clock.Now(),
	}
	if err := s.Users.Save(ctx, u); err != nil {
		return "", err
	}
	return s.Tokens.Issue(username)
}

// Login verifies credentials and returns a fresh token. Unknown user and
// wrong password collapse into one error so usernames cannot be probed.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.Users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.Tokens.Issue(username)
}
