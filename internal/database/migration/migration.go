package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  email         TEXT        NOT NULL,
  password_hash TEXT        NOT NULL,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		// Deliberately non-unique: the identity layer enforces email
		// uniqueness, the store does not.
		Name: "create_index_users_email",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_users_email ON users (email);`,
	},
	{
		Name: "create_table_folders",
		SQL: `CREATE TABLE IF NOT EXISTS folders (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name        TEXT        NOT NULL,
  owner_id    UUID        NOT NULL,
  shared_with TEXT[]      NOT NULL DEFAULT '{}',
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_folders_owner_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_folders_owner_id ON folders (owner_id);`,
	},
	{
		Name: "create_index_folders_shared_with",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_folders_shared_with ON folders USING GIN (shared_with);`,
	},
	{
		Name: "create_table_notes",
		SQL: `CREATE TABLE IF NOT EXISTS notes (
  id             UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  folder_id      UUID        NOT NULL REFERENCES folders (id),
  title          TEXT        NOT NULL DEFAULT '',
  content        TEXT        NOT NULL DEFAULT '',
  author_id      UUID        NOT NULL,
  last_edited_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_notes_folder_edited",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_notes_folder_edited ON notes (folder_id, last_edited_at DESC);`,
	},
	{
		Name: "create_table_attachments",
		SQL: `CREATE TABLE IF NOT EXISTS attachments (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  note_id      UUID        NOT NULL REFERENCES notes (id) ON DELETE CASCADE,
  filename     TEXT        NOT NULL,
  storage_path TEXT        NOT NULL UNIQUE,
  size         BIGINT      NOT NULL CHECK (size >= 0),
  content_type TEXT        NOT NULL,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_attachments_note_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_attachments_note_id ON attachments (note_id);`,
	},
}

// EnsureMigrated checks for the folders sentinel table and runs the migration
// steps when it is missing. Every step is idempotent, so a failed run can be
// retried as-is.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	start := time.Now()

	var exists bool
	if err := db.QueryRowContext(ctx, "SELECT to_regclass('public.folders') IS NOT NULL").Scan(&exists); err != nil {
		log.Error("migration sentinel check failed", zap.Error(err))
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}
	if exists {
		log.Info("schema already exists, skipping migration")
		return nil
	}

	log.Info("running migrations", zap.Int("steps", len(steps)))
	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("migration step failed",
				zap.String("step", step.Name),
				zap.Error(err),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.Info("migration step applied",
			zap.String("step", step.Name),
			zap.Duration("took", time.Since(stepStart)),
		)
	}

	log.Info("migrations complete", zap.Duration("took", time.Since(start)))
	return nil
}
