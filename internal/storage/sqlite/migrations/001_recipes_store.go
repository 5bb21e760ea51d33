// Package migrations holds the ordered schema migration steps.
//
// Every step is additive and idempotent ("create if absent"): no step
// deletes or transforms existing records, so a step that is re-run after a
// partially failed upgrade is harmless.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

// Execer is the subset of *sql.Conn used by migration steps. Steps run
// inside the single upgrade transaction owned by the runner and must not
// commit or roll back themselves.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// CreateRecipesStore introduces the recipes table and its secondary
// indexes. Hot columns (title, updated_at) are broken out of the record
// JSON so retrieval in either derived order never needs a full scan.
func CreateRecipesStore(ctx context.Context, e Execer) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS recipes (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			chapter TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL,
			data TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_recipes_updated_at ON recipes(updated_at)`,
		`CREATE INDEX IF NOT EXISTS idx_recipes_title ON recipes(title)`,
	}
	for _, stmt := range statements {
		if _, err := e.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create recipes store: %w", err)
		}
	}
	return nil
}
