package migrations

import (
	"context"
	"fmt"
)

// CreateNotesStore introduces the notes table and its secondary indexes.
// The pinned flag is the discriminator index; the compound pinned-first
// display order is built in memory by the caller (see types.SortNotes).
func CreateNotesStore(ctx context.Context, e Execer) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS notes (
			id TEXT PRIMARY KEY,
			pinned INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL,
			data TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notes_updated_at ON notes(updated_at)`,
		`CREATE INDEX IF NOT EXISTS idx_notes_pinned ON notes(pinned)`,
	}
	for _, stmt := range statements {
		if _, err := e.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create notes store: %w", err)
		}
	}
	return nil
}
