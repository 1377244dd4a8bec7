package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"noteapi/internal/model"
	"noteapi/internal/repository"
)

// addCollaboratorRetries bounds the retry loop around the share transaction.
// Row locking makes rollbacks rare; deadlocks are still possible when grants
// interleave with the cascading folder delete.
const addCollaboratorRetries = 3

// FolderPostgres is a PostgreSQL implementation of repository.FolderRepository.
type FolderPostgres struct {
	db *sql.DB
}

// NewFolderPostgres creates a new FolderPostgres repository.
func NewFolderPostgres(db *sql.DB) *FolderPostgres {
	return &FolderPostgres{db: db}
}

var _ repository.FolderRepository = (*FolderPostgres)(nil)

// Create inserts a new folder row and returns the stored record.
func (r *FolderPostgres) Create(ctx context.Context, folder *model.Folder) (*model.Folder, error) {
	const q = `
		INSERT INTO folders (id, name, owner_id, shared_with, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, owner_id, shared_with, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		folder.ID,
		folder.Name,
		folder.OwnerID,
		pq.Array(folder.SharedWith),
		folder.CreatedAt,
	)
	return scanFolder(row)
}

// FindByID fetches a single folder by its ID.
func (r *FolderPostgres) FindByID(ctx context.Context, id string) (*model.Folder, error) {
	const q = `
		SELECT id, name, owner_id, shared_with, created_at
		FROM folders
		WHERE id = $1
	`
	return scanFolder(r.db.QueryRowContext(ctx, q, id))
}

// ListByOwner returns the folders owned by the user, newest first.
func (r *FolderPostgres) ListByOwner(ctx context.Context, ownerID string) ([]model.Folder, error) {
	const q = `
		SELECT id, name, owner_id, shared_with, created_at
		FROM folders
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
	`
	return r.queryFolders(ctx, q, ownerID)
}

// ListSharedWith returns the folders shared with the user, newest first.
func (r *FolderPostgres) ListSharedWith(ctx context.Context, userID string) ([]model.Folder, error) {
	const q = `
		SELECT id, name, owner_id, shared_with, created_at
		FROM folders
		WHERE $1 = ANY(shared_with)
		ORDER BY created_at DESC, id DESC
	`
	return r.queryFolders(ctx, q, userID)
}

// AddCollaborator appends the user to shared_with inside a transaction that
// locks the folder row, so concurrent grants serialize and none is lost. The
// transaction is retried when the store rolls it back due to a conflict.
func (r *FolderPostgres) AddCollaborator(ctx context.Context, folderID, userID string) error {
	var err error
	for attempt := 0; attempt < addCollaboratorRetries; attempt++ {
		err = r.addCollaboratorTx(ctx, folderID, userID)
		if err == nil || !isRetryableTxError(err) {
			return err
		}
	}
	return fmt.Errorf("add collaborator: retries exhausted: %w", err)
}

func (r *FolderPostgres) addCollaboratorTx(ctx context.Context, folderID, userID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const qSelect = `SELECT shared_with FROM folders WHERE id = $1 FOR UPDATE`
	var shared []string
	if err := tx.QueryRowContext(ctx, qSelect, folderID).Scan(pq.Array(&shared)); err != nil {
		return err
	}

	for _, id := range shared {
		if id == userID {
			// Already a collaborator; the grant is a no-op.
			return tx.Commit()
		}
	}

	const qUpdate = `UPDATE folders SET shared_with = array_append(shared_with, $2) WHERE id = $1`
	if _, err := tx.ExecContext(ctx, qUpdate, folderID, userID); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a folder row. Absent rows are ignored.
func (r *FolderPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM folders WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

func (r *FolderPostgres) queryFolders(ctx context.Context, q string, arg any) ([]model.Folder, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	folders := make([]model.Folder, 0)
	for rows.Next() {
		var f model.Folder
		var shared []string
		if err := rows.Scan(&f.ID, &f.Name, &f.OwnerID, pq.Array(&shared), &f.CreatedAt); err != nil {
			return nil, err
		}
		f.SharedWith = shared
		folders = append(folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return folders, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFolder(row rowScanner) (*model.Folder, error) {
	var f model.Folder
	var shared []string
	if err := row.Scan(&f.ID, &f.Name, &f.OwnerID, pq.Array(&shared), &f.CreatedAt); err != nil {
		return nil, err
	}
	f.SharedWith = shared
	return &f, nil
}

// isRetryableTxError reports whether the error is a transaction rollback the
// store expects the client to retry (serialization failure, deadlock).
func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgerrcode.IsTransactionRollback(pgErr.Code)
	}
	return false
}
