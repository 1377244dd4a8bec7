package repository

import (
	"context"

	"noteapi/internal/model"
)

// AttachmentRepository defines data access for note attachment metadata.
type AttachmentRepository interface {
	// Create inserts a new attachment row and returns the stored record.
	Create(ctx context.Context, att *model.Attachment) (*model.Attachment, error)

	// FindByID returns an attachment by note and attachment ID, or
	// sql.ErrNoRows if absent.
	FindByID(ctx context.Context, noteID, attID string) (*model.Attachment, error)

	// ListByNote returns the note's attachments, newest first.
	ListByNote(ctx context.Context, noteID string) ([]model.Attachment, error)

	// Delete removes an attachment row. Deleting an absent row is not an
	// error.
	Delete(ctx context.Context, id string) error
}
