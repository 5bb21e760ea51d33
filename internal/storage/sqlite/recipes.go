package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/conris/resept/internal/storage"
	"github.com/conris/resept/internal/types"
)

const upsertRecipeSQL = `
INSERT INTO recipes (id, title, chapter, created_at, updated_at, data)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    title = excluded.title,
    chapter = excluded.chapter,
    created_at = excluded.created_at,
    updated_at = excluded.updated_at,
    data = excluded.data`

// PutRecipe inserts or fully replaces the recipe at recipe.ID.
//
// The caller owns the timestamps: UpdatedAt must already be current when
// this is called; the store never stamps it. The single upsert statement is
// atomic, so a failed call leaves the previous record untouched.
func (s *Store) PutRecipe(ctx context.Context, recipe *types.Recipe) error {
	if err := recipe.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	data, err := json.Marshal(recipe)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}
	_, err = s.db.ExecContext(ctx, upsertRecipeSQL,
		recipe.ID, recipe.Title, recipe.Chapter, recipe.CreatedAt, recipe.UpdatedAt, data)
	if err != nil {
		return fmt.Errorf("failed to put recipe %s: %w", recipe.ID, err)
	}
	return nil
}

// PutRecipes upserts every recipe inside one transaction. Either all of
// them become visible together or, on failure, none do. Used by the import
// engine for grouped merges.
func (s *Store) PutRecipes(ctx context.Context, recipes []*types.Recipe) error {
	for _, r := range recipes {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("validation failed for recipe %s: %w", r.ID, err)
		}
	}
	return s.withImmediateTx(ctx, func(conn *sql.Conn) error {
		for _, r := range recipes {
			data, err := json.Marshal(r)
			if err != nil {
				return fmt.Errorf("failed to marshal recipe %s: %w", r.ID, err)
			}
			if _, err := conn.ExecContext(ctx, upsertRecipeSQL,
				r.ID, r.Title, r.Chapter, r.CreatedAt, r.UpdatedAt, data); err != nil {
				return fmt.Errorf("failed to put recipe %s: %w", r.ID, err)
			}
		}
		return nil
	})
}

// GetRecipe retrieves a recipe by its id.
// Returns storage.ErrNotFound if no recipe with that id exists.
func (s *Store) GetRecipe(ctx context.Context, id string) (*types.Recipe, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM recipes WHERE id = ?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe %s: %w", id, err)
	}
	var recipe types.Recipe
	if err := json.Unmarshal(data, &recipe); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe %s: %w", id, err)
	}
	return &recipe, nil
}

// GetAllRecipes returns every recipe ordered by last modification,
// newest first, via the updated_at index.
func (s *Store) GetAllRecipes(ctx context.Context) ([]*types.Recipe, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM recipes ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var recipes []*types.Recipe
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		var recipe types.Recipe
		if err := json.Unmarshal(data, &recipe); err != nil {
			return nil, fmt.Errorf("failed to unmarshal recipe: %w", err)
		}
		recipes = append(recipes, &recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading recipes: %w", err)
	}
	return recipes, nil
}

// DeleteRecipe removes the recipe with the given id. Deleting a
// nonexistent id is a no-op success, not an error. The delete is immediate
// and irreversible; any undo staging is the caller's concern.
func (s *Store) DeleteRecipe(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete recipe %s: %w", id, err)
	}
	return nil
}
