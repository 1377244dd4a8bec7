package repository

import (
	"context"

	"noteapi/internal/model"
)

// UserRepository defines data access for user accounts.
type UserRepository interface {
	// Create inserts a new user row and returns the stored record.
	Create(ctx context.Context, user *model.User) (*model.User, error)

	// FindByID returns a user by ID, or sql.ErrNoRows if absent.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail returns a user by equality match on the email column.
	// The column is not unique by construction; when duplicates exist the
	// first row returned by the store wins. Returns sql.ErrNoRows on zero
	// matches.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}
