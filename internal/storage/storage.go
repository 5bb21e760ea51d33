// Package storage provides shared types for the resept data store.
//
// The concrete storage implementation lives in the sqlite sub-package.
// This package holds the interface and sentinel errors that are referenced
// by both the sqlite implementation and its consumers (cmd/resept, the
// transfer engine).
package storage

import (
	"context"
	"errors"

	"github.com/conris/resept/internal/types"
)

// ErrNotFound is returned when a requested record does not exist in the
// database. A missing id is an expected outcome, not a failure; callers
// distinguish it with errors.Is.
var ErrNotFound = errors.New("not found")

// Storage is the interface satisfied by *sqlite.Store.
// Consumers depend on this interface rather than on the concrete type so
// that alternative implementations (mocks, proxies, etc.) can be
// substituted.
//
// Put operations insert or fully replace the record at its id; the caller
// must have set UpdatedAt before calling (the store never stamps it).
// Delete on a missing id is a successful no-op.
type Storage interface {
	// Recipe CRUD
	PutRecipe(ctx context.Context, recipe *types.Recipe) error
	GetRecipe(ctx context.Context, id string) (*types.Recipe, error)
	GetAllRecipes(ctx context.Context) ([]*types.Recipe, error)
	DeleteRecipe(ctx context.Context, id string) error
	// PutRecipes upserts every recipe inside a single transaction:
	// either all become visible together or none do.
	PutRecipes(ctx context.Context, recipes []*types.Recipe) error

	// Note CRUD
	PutNote(ctx context.Context, note *types.Note) error
	GetNote(ctx context.Context, id string) (*types.Note, error)
	GetAllNotes(ctx context.Context) ([]*types.Note, error)
	DeleteNote(ctx context.Context, id string) error
	PutNotes(ctx context.Context, notes []*types.Note) error

	// Settings (single keyed blob, overwritten wholesale)
	GetSettings(ctx context.Context) (types.Settings, error)
	PutSettings(ctx context.Context, settings types.Settings) error

	// SchemaVersion reports the stored schema version.
	SchemaVersion(ctx context.Context) (int, error)

	// Lifecycle
	Close() error
}
