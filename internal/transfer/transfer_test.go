package transfer

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/conris/resept/internal/storage/sqlite"
	"github.com/conris/resept/internal/types"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(context.Background(), t.TempDir()+"/test.db")
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, store.Close()) })
	return store
}

func recipe(id, title string, updatedAt int64) *types.Recipe {
	return &types.Recipe{
		ID:          id,
		Title:       title,
		Chapter:     "Mains",
		Themes:      []string{},
		Servings:    2,
		Time:        types.RecipeTime{Prep: 5, Cook: 10, Total: 15, Unit: types.TimeUnitMinutes},
		Difficulty:  types.DifficultyMedium,
		Ingredients: []types.Ingredient{},
		Steps:       []types.Step{},
		CreatedAt:   1,
		UpdatedAt:   updatedAt,
	}
}

func note(id, text string, updatedAt int64) *types.Note {
	return &types.Note{ID: id, Text: text, CreatedAt: 1, UpdatedAt: updatedAt}
}

func TestExportEmptyStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc, err := Export(ctx, store)
	require.NoError(t, err)
	require.Equal(t, 2, doc.Version)
	require.NotNil(t, doc.Recipes)
	require.NotNil(t, doc.Notes)
	require.NotNil(t, doc.Settings)

	// Empty collections serialize as [] / {}, never null.
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	require.JSONEq(t, `{"version":2,"recipes":[],"notes":[],"settings":{}}`, string(raw))
}

func TestExportImportIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutRecipe(ctx, recipe("r1", "Soup", 100)))
	require.NoError(t, store.PutRecipe(ctx, recipe("r2", "Cake", 200)))
	require.NoError(t, store.PutNote(ctx, note("n1", "hello", 100)))
	require.NoError(t, store.PutSettings(ctx, types.Settings{"theme": "dark"}))

	doc, err := Export(ctx, store)
	require.NoError(t, err)
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	before, err := Export(ctx, store)
	require.NoError(t, err)

	result, err := Import(ctx, store, raw, Options{})
	require.NoError(t, err)
	require.Equal(t, 0, result.RecipesCreated)
	require.Equal(t, 2, result.RecipesUpdated)
	require.Equal(t, 0, result.NotesCreated)
	require.Equal(t, 1, result.NotesUpdated)

	after, err := Export(ctx, store)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestImportMergesById(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutNote(ctx, note("1", "old", 100)))

	// The imported copy wins unconditionally on an id collision, even with
	// an older timestamp.
	raw, err := json.Marshal(&Document{Version: 2, Notes: []*types.Note{note("1", "new", 50)}})
	require.NoError(t, err)
	result, err := Import(ctx, store, raw, Options{})
	require.NoError(t, err)
	require.Equal(t, 1, result.NotesUpdated)

	got, err := store.GetNote(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, "new", got.Text)

	// Importing a disjoint id leaves existing records untouched.
	raw, err = json.Marshal(&Document{Version: 2, Notes: []*types.Note{note("2", "other", 70)}})
	require.NoError(t, err)
	result, err = Import(ctx, store, raw, Options{})
	require.NoError(t, err)
	require.Equal(t, 1, result.NotesCreated)

	got, err = store.GetNote(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, "new", got.Text)
	got, err = store.GetNote(ctx, "2")
	require.NoError(t, err)
	require.Equal(t, "other", got.Text)
}

func TestImportAcceptsDocumentWithoutNotes(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// An older export has no notes key at all.
	raw := []byte(`{"version":1,"recipes":[],"settings":{}}`)
	result, err := Import(ctx, store, raw, Options{})
	require.NoError(t, err)
	require.Zero(t, result.NotesCreated)

	notes, err := store.GetAllNotes(ctx)
	require.NoError(t, err)
	require.Empty(t, notes)
}

func TestImportIgnoresUnknownTopLevelKeys(t *testing.T) {
	store := newTestStore(t)

	raw := []byte(`{"version":2,"recipes":[],"notes":[],"settings":{},"exportedBy":"resept 1.2","checksum":42}`)
	_, err := Import(context.Background(), store, raw, Options{})
	require.NoError(t, err)
}

func TestImportRejectsMalformedWholesale(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	cases := map[string]string{
		"not json":             `{"recipes": [`,
		"top level not object": `[1,2,3]`,
		"recipes not an array": `{"recipes": {"id": "r1"}}`,
		"notes not an array":   `{"notes": "nope"}`,
		"settings not object":  `{"settings": [1,2]}`,
		"invalid record": `{"recipes":[{"id":"r1","title":"Soup","servings":2,"difficulty":"easy","createdAt":1,"updatedAt":100}],` +
			`"notes":[{"id":"","text":"bad","createdAt":1,"updatedAt":1}]}`,
	}
	for name, raw := range cases {
		_, err := Import(ctx, store, []byte(raw), Options{})
		require.Error(t, err, name)
	}

	// Nothing may have been applied, not even the collections that parsed.
	recipes, err := store.GetAllRecipes(ctx)
	require.NoError(t, err)
	require.Empty(t, recipes)
	notes, err := store.GetAllNotes(ctx)
	require.NoError(t, err)
	require.Empty(t, notes)
}

func TestImportOverwritesSettings(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutSettings(ctx, types.Settings{"theme": "dark", "extra": true}))

	raw := []byte(`{"version":2,"settings":{"theme":"light"}}`)
	result, err := Import(ctx, store, raw, Options{})
	require.NoError(t, err)
	require.True(t, result.SettingsReplaced)

	got, err := store.GetSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, types.Settings{"theme": "light"}, got)

	// A document without settings leaves them alone.
	raw = []byte(`{"version":2,"recipes":[]}`)
	result, err = Import(ctx, store, raw, Options{})
	require.NoError(t, err)
	require.False(t, result.SettingsReplaced)
	got, err = store.GetSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, types.Settings{"theme": "light"}, got)
}

func TestImportDryRun(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutRecipe(ctx, recipe("r1", "Soup", 100)))

	raw, err := json.Marshal(&Document{
		Version:  2,
		Recipes:  []*types.Recipe{recipe("r1", "Changed", 500), recipe("r2", "Cake", 200)},
		Settings: types.Settings{"theme": "dark"},
	})
	require.NoError(t, err)

	result, err := Import(ctx, store, raw, Options{DryRun: true})
	require.NoError(t, err)
	require.Equal(t, 1, result.RecipesCreated)
	require.Equal(t, 1, result.RecipesUpdated)
	require.True(t, result.SettingsReplaced)

	got, err := store.GetRecipe(ctx, "r1")
	require.NoError(t, err)
	require.Equal(t, "Soup", got.Title)
	settings, err := store.GetSettings(ctx)
	require.NoError(t, err)
	require.Empty(t, settings)
}
