package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"noteapi/internal/model"
)

func folderColumns() []string {
	return []string{"id", "name", "owner_id", "shared_with", "created_at"}
}

func TestFolderPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFolderPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	folder := &model.Folder{
		ID:         "test-uuid",
		Name:       "Travel",
		OwnerID:    "u1",
		SharedWith: []string{},
		CreatedAt:  now,
	}

	rows := sqlmock.NewRows(folderColumns()).
		AddRow(folder.ID, folder.Name, folder.OwnerID, "{}", folder.CreatedAt)

	mock.ExpectQuery("INSERT INTO folders").
		WithArgs(folder.ID, folder.Name, folder.OwnerID, pq.Array(folder.SharedWith), folder.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, folder)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, folder.ID, result.ID)
	assert.Empty(t, result.SharedWith)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFolderPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFolderPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(folderColumns()).
			AddRow("f1", "Travel", "u1", "{u2,u3}", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM folders WHERE id = ?").
			WithArgs("f1").
			WillReturnRows(rows)

		folder, err := repo.FindByID(ctx, "f1")

		assert.NoError(t, err)
		assert.NotNil(t, folder)
		assert.Equal(t, "f1", folder.ID)
		assert.Equal(t, []string{"u2", "u3"}, folder.SharedWith)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM folders WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		folder, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, folder)
	})
}

func TestFolderPostgres_ListByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFolderPostgres(db)
	ctx := context.Background()

	rows := sqlmock.NewRows(folderColumns()).
		AddRow("f2", "Work", "u1", "{}", time.Now()).
		AddRow("f1", "Travel", "u1", "{u2}", time.Now().Add(-time.Hour))

	mock.ExpectQuery("SELECT (.+) FROM folders WHERE owner_id = (.+) ORDER BY created_at DESC").
		WithArgs("u1").
		WillReturnRows(rows)

	folders, err := repo.ListByOwner(ctx, "u1")

	assert.NoError(t, err)
	assert.Len(t, folders, 2)
	assert.Equal(t, "f2", folders[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFolderPostgres_ListSharedWith(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFolderPostgres(db)
	ctx := context.Background()

	t.Run("none shared", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM folders WHERE (.+) = ANY\\(shared_with\\)").
			WithArgs("u9").
			WillReturnRows(sqlmock.NewRows(folderColumns()))

		folders, err := repo.ListSharedWith(ctx, "u9")

		assert.NoError(t, err)
		assert.NotNil(t, folders)
		assert.Empty(t, folders)
	})

	t.Run("shared", func(t *testing.T) {
		rows := sqlmock.NewRows(folderColumns()).
			AddRow("f1", "Travel", "u1", "{u2}", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM folders WHERE (.+) = ANY\\(shared_with\\)").
			WithArgs("u2").
			WillReturnRows(rows)

		folders, err := repo.ListSharedWith(ctx, "u2")

		assert.NoError(t, err)
		assert.Len(t, folders, 1)
		assert.Equal(t, "u1", folders[0].OwnerID)
	})
}

func TestFolderPostgres_AddCollaborator(t *testing.T) {
	ctx := context.Background()

	t.Run("appends under row lock", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()
		repo := NewFolderPostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT shared_with FROM folders WHERE id = (.+) FOR UPDATE").
			WithArgs("f1").
			WillReturnRows(sqlmock.NewRows([]string{"shared_with"}).AddRow("{u2}"))
		mock.ExpectExec("UPDATE folders SET shared_with = array_append").
			WithArgs("f1", "u3").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.AddCollaborator(ctx, "f1", "u3"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("existing collaborator is a no-op", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()
		repo := NewFolderPostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT shared_with FROM folders WHERE id = (.+) FOR UPDATE").
			WithArgs("f1").
			WillReturnRows(sqlmock.NewRows([]string{"shared_with"}).AddRow("{u2}"))
		mock.ExpectCommit()

		assert.NoError(t, repo.AddCollaborator(ctx, "f1", "u2"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("retries after a deadlock rollback", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()
		repo := NewFolderPostgres(db)

		deadlock := &pgconn.PgError{Code: pgerrcode.DeadlockDetected}

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT shared_with FROM folders WHERE id = (.+) FOR UPDATE").
			WithArgs("f1").
			WillReturnError(deadlock)
		mock.ExpectRollback()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT shared_with FROM folders WHERE id = (.+) FOR UPDATE").
			WithArgs("f1").
			WillReturnRows(sqlmock.NewRows([]string{"shared_with"}).AddRow("{}"))
		mock.ExpectExec("UPDATE folders SET shared_with = array_append").
			WithArgs("f1", "u2").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.AddCollaborator(ctx, "f1", "u2"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing folder is not retried", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()
		repo := NewFolderPostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT shared_with FROM folders WHERE id = (.+) FOR UPDATE").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		err = repo.AddCollaborator(ctx, "missing", "u2")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFolderPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFolderPostgres(db)
	ctx := context.Background()

	t.Run("existing row", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM folders WHERE id = ?").
			WithArgs("f1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, "f1"))
	})

	t.Run("absent row is ignored", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM folders WHERE id = ?").
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.Delete(ctx, "missing"))
	})
}
