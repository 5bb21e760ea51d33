package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/conris/resept/internal/storage/sqlite/migrations"
)

// Schema version history:
//
//	1 - recipes table with by-updated_at / by-title indexes, meta table
//	2 - notes table with by-updated_at / by-pinned indexes
const targetSchemaVersion = 2

const schemaVersionKey = "schema_version"

// metaSchema bootstraps the meta table that carries the schema version and
// the settings blob. It predates the versioned steps so the runner always
// has somewhere to read the version from.
const metaSchema = `
CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`

type migration struct {
	// Version the database is at after this step has been applied.
	// Steps run when the stored version is below this.
	Version int
	Name    string
	Up      func(ctx context.Context, e migrations.Execer) error
}

var allMigrations = []migration{
	{Version: 1, Name: "recipes store", Up: migrations.CreateRecipesStore},
	{Version: 2, Name: "notes store", Up: migrations.CreateNotesStore},
}

// runMigrations brings the database schema to targetSchemaVersion.
//
// All pending steps are applied in ascending order inside one upgrade
// transaction; the version bump commits together with the steps, so a
// failed upgrade leaves no partial version observable. An already-current
// database is left untouched.
func runMigrations(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, metaSchema); err != nil {
		return fmt.Errorf("failed to create meta table: %w", err)
	}

	stored, err := readSchemaVersion(ctx, db)
	if err != nil {
		return err
	}
	if stored > targetSchemaVersion {
		return fmt.Errorf("database schema version %d is newer than this build supports (%d)", stored, targetSchemaVersion)
	}
	if stored == targetSchemaVersion {
		return nil
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if _, err := conn.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
		return fmt.Errorf("failed to begin upgrade transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_, _ = conn.ExecContext(context.Background(), "ROLLBACK")
		}
	}()

	for _, m := range allMigrations {
		if m.Version <= stored {
			continue
		}
		if err := m.Up(ctx, conn); err != nil {
			return fmt.Errorf("migration v%d (%s): %w", m.Version, m.Name, err)
		}
	}

	if _, err := conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`,
		schemaVersionKey, strconv.Itoa(targetSchemaVersion)); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	if _, err := conn.ExecContext(ctx, "COMMIT"); err != nil {
		return fmt.Errorf("failed to commit upgrade transaction: %w", err)
	}
	committed = true
	return nil
}

func readSchemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	var raw string
	err := db.QueryRowContext(ctx,
		`SELECT value FROM meta WHERE key = ?`, schemaVersionKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	version, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("corrupt schema version %q: %w", raw, err)
	}
	return version, nil
}

// SchemaVersion reports the schema version stored in the database.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	return readSchemaVersion(ctx, s.db)
}
