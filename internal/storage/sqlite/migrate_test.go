package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/conris/resept/internal/storage/sqlite/migrations"
)

func TestOpenFreshDatabaseAtTargetVersion(t *testing.T) {
	store := newTestStore(t)

	version, err := store.SchemaVersion(context.Background())
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if version != targetSchemaVersion {
		t.Errorf("expected version %d, got %d", targetSchemaVersion, version)
	}
}

func TestReopenIsIdempotent(t *testing.T) {
	dbPath := t.TempDir() + "/test.db"
	ctx := context.Background()

	store, err := Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("first open failed: %v", err)
	}
	if err := store.PutRecipe(ctx, testRecipe("r1", "Soup", 100)); err != nil {
		t.Fatalf("PutRecipe failed: %v", err)
	}
	if err := store.PutNote(ctx, testNote("n1", "hi", false, 100)); err != nil {
		t.Fatalf("PutNote failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	// Opening a database already at the target version performs no
	// migration steps and loses no data.
	store, err = Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	version, err := store.SchemaVersion(ctx)
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if version != targetSchemaVersion {
		t.Errorf("expected version %d after reopen, got %d", targetSchemaVersion, version)
	}

	recipes, err := store.GetAllRecipes(ctx)
	if err != nil {
		t.Fatalf("GetAllRecipes failed: %v", err)
	}
	if len(recipes) != 1 || recipes[0].ID != "r1" {
		t.Errorf("recipes lost across reopen: %+v", recipes)
	}
	notes, err := store.GetAllNotes(ctx)
	if err != nil {
		t.Fatalf("GetAllNotes failed: %v", err)
	}
	if len(notes) != 1 || notes[0].ID != "n1" {
		t.Errorf("notes lost across reopen: %+v", notes)
	}
}

func TestMigrateFromV1(t *testing.T) {
	dbPath := t.TempDir() + "/test.db"
	ctx := context.Background()

	// Hand-build a version 1 database: recipes and meta only, no notes.
	db, err := sql.Open("sqlite3", "file:"+dbPath)
	if err != nil {
		t.Fatalf("raw open failed: %v", err)
	}
	if _, err := db.ExecContext(ctx, metaSchema); err != nil {
		t.Fatalf("meta schema failed: %v", err)
	}
	if err := migrations.CreateRecipesStore(ctx, db); err != nil {
		t.Fatalf("v1 step failed: %v", err)
	}
	if _, err := db.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES (?, '1')`, schemaVersionKey); err != nil {
		t.Fatalf("failed to record v1: %v", err)
	}
	if _, err := db.ExecContext(ctx,
		`INSERT INTO recipes (id, title, chapter, created_at, updated_at, data)
		 VALUES ('r1', 'Soup', 'Mains', 1, 100,
		 '{"id":"r1","title":"Soup","chapter":"Mains","themes":[],"servings":2,"time":{"prep":5,"cook":10,"total":15,"unit":"min"},"difficulty":"easy","ingredients":[],"steps":[],"createdAt":1,"updatedAt":100}')`); err != nil {
		t.Fatalf("failed to seed v1 recipe: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("raw close failed: %v", err)
	}

	store, err := Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("upgrade open failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	version, err := store.SchemaVersion(ctx)
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if version != targetSchemaVersion {
		t.Errorf("expected version %d after upgrade, got %d", targetSchemaVersion, version)
	}

	// Existing data survives; the new collection starts empty.
	recipe, err := store.GetRecipe(ctx, "r1")
	if err != nil {
		t.Fatalf("GetRecipe after upgrade failed: %v", err)
	}
	if recipe.Title != "Soup" {
		t.Errorf("recipe corrupted by upgrade: %+v", recipe)
	}
	notes, err := store.GetAllNotes(ctx)
	if err != nil {
		t.Fatalf("GetAllNotes after upgrade failed: %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("expected empty notes collection, got %d", len(notes))
	}
}

func TestSchemaTooNewFailsOpen(t *testing.T) {
	dbPath := t.TempDir() + "/test.db"
	ctx := context.Background()

	store, err := Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if _, err := store.db.ExecContext(ctx,
		`UPDATE meta SET value = '99' WHERE key = ?`, schemaVersionKey); err != nil {
		t.Fatalf("failed to bump version: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	if _, err := Open(ctx, dbPath); err == nil {
		t.Fatal("expected open of a newer-versioned database to fail")
	}
}
