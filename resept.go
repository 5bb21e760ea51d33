// Package resept provides a minimal public API for using the resept store
// programmatically.
//
// The CLI in cmd/resept is the primary consumer. This package exports only
// the types and constructors another Go program needs to read or write the
// same database (for instance a future web frontend).
package resept

import (
	"context"

	"github.com/conris/resept/internal/storage"
	"github.com/conris/resept/internal/storage/sqlite"
	"github.com/conris/resept/internal/types"
)

// Core record types
type (
	Recipe       = types.Recipe
	RecipeTime   = types.RecipeTime
	Ingredient   = types.Ingredient
	Step         = types.Step
	Note         = types.Note
	ShoppingItem = types.ShoppingItem
	Settings     = types.Settings
	Difficulty   = types.Difficulty
)

// Difficulty constants
const (
	DifficultyEasy   = types.DifficultyEasy
	DifficultyMedium = types.DifficultyMedium
	DifficultyHard   = types.DifficultyHard
)

// Storage is the read/write contract of the store.
type Storage = storage.Storage

// ErrNotFound is returned by Get operations for a missing id.
var ErrNotFound = storage.ErrNotFound

// Open opens (creating and migrating if needed) the database at dbPath.
// The caller owns the returned handle and must Close it.
func Open(ctx context.Context, dbPath string) (Storage, error) {
	return sqlite.Open(ctx, dbPath)
}
