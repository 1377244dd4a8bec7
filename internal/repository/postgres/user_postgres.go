package postgres

import (
	"context"
	"database/sql"

	"noteapi/internal/model"
	"noteapi/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

// Create inserts a new user row and returns the stored record.
func (r *UserPostgres) Create(ctx context.Context, user *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, password_hash, created_at
	`
	row := r.db.QueryRowContext(ctx, q, user.ID, user.Email, user.PasswordHash, user.CreatedAt)
	var out model.User
	if err := row.Scan(&out.ID, &out.Email, &out.PasswordHash, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a user by ID.
func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

// FindByEmail fetches a user by email. The column carries no uniqueness
// constraint; when duplicates exist the first row wins.
func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = $1
		LIMIT 1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, q, email))
}

func (r *UserPostgres) scanOne(row *sql.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
