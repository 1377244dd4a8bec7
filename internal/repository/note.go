package repository

import (
	"context"
	"time"

	"noteapi/internal/model"
)

// NoteRepository defines data access for notes. Every operation is scoped to
// a folder; notes are never addressed globally.
type NoteRepository interface {
	// Create inserts a new note row and returns the stored record.
	Create(ctx context.Context, note *model.Note) (*model.Note, error)

	// FindByID returns a note by folder and note ID, or sql.ErrNoRows.
	FindByID(ctx context.Context, folderID, noteID string) (*model.Note, error)

	// ListByFolder returns the folder's notes ordered by last_edited_at
	// descending.
	ListByFolder(ctx context.Context, folderID string) ([]model.Note, error)

	// Update overwrites exactly title, content and last_edited_at. It returns
	// sql.ErrNoRows when the note does not exist in the folder.
	Update(ctx context.Context, folderID, noteID, title, content string, editedAt time.Time) error

	// Delete removes a note. Deleting an absent note is not an error.
	Delete(ctx context.Context, folderID, noteID string) error

	// DeleteByFolder removes every note in the folder. Used by the cascading
	// folder delete, which runs it before removing the folder row.
	DeleteByFolder(ctx context.Context, folderID string) error
}
