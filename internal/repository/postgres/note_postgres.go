package postgres

import (
	"context"
	"database/sql"
	"time"

	"noteapi/internal/model"
	"noteapi/internal/repository"
)

// NotePostgres is a PostgreSQL implementation of repository.NoteRepository.
type NotePostgres struct {
	db *sql.DB
}

// NewNotePostgres creates a new NotePostgres repository.
func NewNotePostgres(db *sql.DB) *NotePostgres {
	return &NotePostgres{db: db}
}

var _ repository.NoteRepository = (*NotePostgres)(nil)

// Create inserts a new note row and returns the stored record.
func (r *NotePostgres) Create(ctx context.Context, note *model.Note) (*model.Note, error) {
	const q = `
		INSERT INTO notes (id, folder_id, title, content, author_id, last_edited_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, folder_id, title, content, author_id, last_edited_at
	`
	row := r.db.QueryRowContext(ctx, q,
		note.ID,
		note.FolderID,
		note.Title,
		note.Content,
		note.AuthorID,
		note.LastEditedAt,
	)
	var out model.Note
	if err := row.Scan(&out.ID, &out.FolderID, &out.Title, &out.Content, &out.AuthorID, &out.LastEditedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a note by folder and note ID.
func (r *NotePostgres) FindByID(ctx context.Context, folderID, noteID string) (*model.Note, error) {
	const q = `
		SELECT id, folder_id, title, content, author_id, last_edited_at
		FROM notes
		WHERE folder_id = $1 AND id = $2
	`
	var n model.Note
	err := r.db.QueryRowContext(ctx, q, folderID, noteID).
		Scan(&n.ID, &n.FolderID, &n.Title, &n.Content, &n.AuthorID, &n.LastEditedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// ListByFolder returns the folder's notes, most recently edited first.
func (r *NotePostgres) ListByFolder(ctx context.Context, folderID string) ([]model.Note, error) {
	const q = `
		SELECT id, folder_id, title, content, author_id, last_edited_at
		FROM notes
		WHERE folder_id = $1
		ORDER BY last_edited_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, folderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]model.Note, 0)
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.FolderID, &n.Title, &n.Content, &n.AuthorID, &n.LastEditedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

// Update overwrites title, content and last_edited_at. Author and IDs are
// never touched. Returns sql.ErrNoRows when the note is absent.
func (r *NotePostgres) Update(ctx context.Context, folderID, noteID, title, content string, editedAt time.Time) error {
	const q = `
		UPDATE notes
		SET title = $3, content = $4, last_edited_at = $5
		WHERE folder_id = $1 AND id = $2
	`
	res, err := r.db.ExecContext(ctx, q, folderID, noteID, title, content, editedAt)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a note. Absent rows are ignored, so the call is idempotent.
func (r *NotePostgres) Delete(ctx context.Context, folderID, noteID string) error {
	const q = `DELETE FROM notes WHERE folder_id = $1 AND id = $2`
	_, err := r.db.ExecContext(ctx, q, folderID, noteID)
	return err
}

// DeleteByFolder removes every note in the folder.
func (r *NotePostgres) DeleteByFolder(ctx context.Context, folderID string) error {
	const q = `DELETE FROM notes WHERE folder_id = $1`
	_, err := r.db.ExecContext(ctx, q, folderID)
	return err
}
