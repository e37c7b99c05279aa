package mysql

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/anjarmara/skinsight/internal/domain/users"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Save(ctx context.Context, u *domain.User) error {
	const q = `
INSERT INTO users (id, username, password_hash, created_at)
VALUES (?,?,?,?);
`
	_, err := r.db.ExecContext(ctx, q, u.ID, u.Username, u.PasswordHash, u.CreatedAt)
	return err
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	const q = `
SELECT id, username, password_hash, created_at
FROM users
WHERE username=? LIMIT 1;
`
	row := r.db.QueryRowContext(ctx, q, username)

	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
