package repository

import (
	"context"

	"noteapi/internal/model"
)

// FolderRepository defines data access for folders. No business logic here,
// strictly persistence operations.
type FolderRepository interface {
	// Create inserts a new folder row and returns the stored record.
	Create(ctx context.Context, folder *model.Folder) (*model.Folder, error)

	// FindByID returns a folder by its ID, or sql.ErrNoRows if absent.
	FindByID(ctx context.Context, id string) (*model.Folder, error)

	// ListByOwner returns all folders owned by the user, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]model.Folder, error)

	// ListSharedWith returns all folders whose shared_with array contains the
	// user, newest first.
	ListSharedWith(ctx context.Context, userID string) ([]model.Folder, error)

	// AddCollaborator appends the user to the folder's shared_with array
	// inside a row-locked transaction. It is a no-op when the user is already
	// present, so the call is idempotent and concurrent grants of different
	// users cannot lose each other's update. Returns sql.ErrNoRows if the
	// folder does not exist.
	AddCollaborator(ctx context.Context, folderID, userID string) error

	// Delete removes a folder row. Deleting an absent folder is not an error.
	Delete(ctx context.Context, id string) error
}
