package postgres

import (
	"context"
	"database/sql"

	"noteapi/internal/model"
	"noteapi/internal/repository"
)

// AttachmentPostgres is a PostgreSQL implementation of
// repository.AttachmentRepository.
type AttachmentPostgres struct {
	db *sql.DB
}

// NewAttachmentPostgres creates a new AttachmentPostgres repository.
func NewAttachmentPostgres(db *sql.DB) *AttachmentPostgres {
	return &AttachmentPostgres{db: db}
}

var _ repository.AttachmentRepository = (*AttachmentPostgres)(nil)

// Create inserts a new attachment row and returns the stored record.
func (r *AttachmentPostgres) Create(ctx context.Context, att *model.Attachment) (*model.Attachment, error) {
	const q = `
		INSERT INTO attachments (id, note_id, filename, storage_path, size, content_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, note_id, filename, storage_path, size, content_type, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		att.ID,
		att.NoteID,
		att.Filename,
		att.StoragePath,
		att.Size,
		att.ContentType,
		att.CreatedAt,
	)
	var out model.Attachment
	if err := row.Scan(&out.ID, &out.NoteID, &out.Filename, &out.StoragePath, &out.Size, &out.ContentType, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches an attachment by note and attachment ID.
func (r *AttachmentPostgres) FindByID(ctx context.Context, noteID, attID string) (*model.Attachment, error) {
	const q = `
		SELECT id, note_id, filename, storage_path, size, content_type, created_at
		FROM attachments
		WHERE note_id = $1 AND id = $2
	`
	var a model.Attachment
	err := r.db.QueryRowContext(ctx, q, noteID, attID).
		Scan(&a.ID, &a.NoteID, &a.Filename, &a.StoragePath, &a.Size, &a.ContentType, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByNote returns the note's attachments, newest first.
func (r *AttachmentPostgres) ListByNote(ctx context.Context, noteID string) ([]model.Attachment, error) {
	const q = `
		SELECT id, note_id, filename, storage_path, size, content_type, created_at
		FROM attachments
		WHERE note_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, noteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	atts := make([]model.Attachment, 0)
	for rows.Next() {
		var a model.Attachment
		if err := rows.Scan(&a.ID, &a.NoteID, &a.Filename, &a.StoragePath, &a.Size, &a.ContentType, &a.CreatedAt); err != nil {
			return nil, err
		}
		atts = append(atts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return atts, nil
}

// Delete removes an attachment row. Absent rows are ignored.
func (r *AttachmentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM attachments WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
