package sqlite

import (
	"context"
	"testing"

	"github.com/conris/resept/internal/types"
)

// newTestStore creates a Store on a temp-dir database file.
//
// File-based databases are more reliable than in-memory for connection
// pool scenarios, and each test gets its own isolated file.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := t.TempDir() + "/test.db"

	ctx := context.Background()
	store, err := Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	t.Cleanup(func() {
		if cerr := store.Close(); cerr != nil {
			t.Fatalf("Failed to close test database: %v", cerr)
		}
	})

	return store
}

// testRecipe builds a minimal valid recipe with the given id, title and
// updated timestamp.
func testRecipe(id, title string, updatedAt int64) *types.Recipe {
	return &types.Recipe{
		ID:         id,
		Title:      title,
		Chapter:    "Mains",
		Themes:     []string{"weeknight"},
		Servings:   4,
		Time:       types.RecipeTime{Prep: 10, Cook: 20, Total: 30, Unit: types.TimeUnitMinutes},
		Difficulty: types.DifficultyEasy,
		Ingredients: []types.Ingredient{
			{Qty: floatPtr(2), Unit: "dl", Item: "cream"},
			{Qty: nil, Unit: "", Item: "salt"},
		},
		Steps:     []types.Step{{Text: "Simmer.", Timer: 600}},
		CreatedAt: 1,
		UpdatedAt: updatedAt,
	}
}

func testNote(id, text string, pinned bool, updatedAt int64) *types.Note {
	return &types.Note{
		ID:        id,
		Text:      text,
		Pinned:    pinned,
		CreatedAt: 1,
		UpdatedAt: updatedAt,
	}
}

func floatPtr(f float64) *float64 { return &f }
