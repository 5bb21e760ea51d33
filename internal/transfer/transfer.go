// Package transfer implements whole-database export and merge import.
//
// The interchange document is one JSON object:
//
//	{"version": 2, "recipes": [...], "notes": [...], "settings": {...}}
//
// It must stay backward-readable: importers accept documents missing the
// notes collection (older exports) and ignore unknown top-level keys.
package transfer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/conris/resept/internal/debug"
	"github.com/conris/resept/internal/storage"
	"github.com/conris/resept/internal/types"
)

// Document is the export file format.
type Document struct {
	Version  int             `json:"version"`
	Recipes  []*types.Recipe `json:"recipes"`
	Notes    []*types.Note   `json:"notes"`
	Settings types.Settings  `json:"settings"`
}

// Export builds the interchange document from the current store contents:
// the schema version, every recipe, every note, and the settings blob
// (empty object if never set).
//
// This is a pure read. The three sources are read independently, with no
// cross-collection transaction, so the result is a best-effort snapshot.
// Good enough for a single-user backup tool.
func Export(ctx context.Context, store storage.Storage) (*Document, error) {
	version, err := store.SchemaVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema version: %w", err)
	}
	recipes, err := store.GetAllRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipes: %w", err)
	}
	notes, err := store.GetAllNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read notes: %w", err)
	}
	settings, err := store.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	// Keep the document self-describing: absent collections marshal as []
	// and {} rather than null.
	if recipes == nil {
		recipes = []*types.Recipe{}
	}
	if notes == nil {
		notes = []*types.Note{}
	}
	if settings == nil {
		settings = types.Settings{}
	}

	return &Document{
		Version:  version,
		Recipes:  recipes,
		Notes:    notes,
		Settings: settings,
	}, nil
}

// Options contains import configuration
type Options struct {
	DryRun bool // Parse and count changes without applying them
}

// Result contains statistics about the import operation
type Result struct {
	RecipesCreated   int  // New recipes created
	RecipesUpdated   int  // Existing recipes overwritten by the imported copy
	NotesCreated     int  // New notes created
	NotesUpdated     int  // Existing notes overwritten by the imported copy
	SettingsReplaced bool // Settings blob was overwritten
}

// Import merges a document into the store.
//
// Every record present in the document is upserted by its id: records
// sharing an id with an existing record are fully overwritten (the
// imported copy wins unconditionally, no timestamp comparison), and
// existing records absent from the document are left untouched. A settings
// blob, if present, overwrites the current settings wholesale.
//
// The raw document is parsed and shape-checked in full before a single
// write happens; a malformed document fails the whole import without
// partially applying it. Each collection's upserts are applied as one
// grouped transaction; the collections themselves are not atomic with each
// other.
func Import(ctx context.Context, store storage.Storage, raw []byte, opts Options) (*Result, error) {
	doc, err := parseDocument(raw)
	if err != nil {
		return nil, err
	}

	result := &Result{}

	existingRecipes, err := store.GetAllRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read existing recipes: %w", err)
	}
	recipeIDs := make(map[string]bool, len(existingRecipes))
	for _, r := range existingRecipes {
		recipeIDs[r.ID] = true
	}
	for _, r := range doc.Recipes {
		if recipeIDs[r.ID] {
			result.RecipesUpdated++
		} else {
			result.RecipesCreated++
		}
	}

	existingNotes, err := store.GetAllNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read existing notes: %w", err)
	}
	noteIDs := make(map[string]bool, len(existingNotes))
	for _, n := range existingNotes {
		noteIDs[n.ID] = true
	}
	for _, n := range doc.Notes {
		if noteIDs[n.ID] {
			result.NotesUpdated++
		} else {
			result.NotesCreated++
		}
	}
	result.SettingsReplaced = doc.Settings != nil

	if opts.DryRun {
		debug.Logf("transfer: dry run, skipping writes\n")
		return result, nil
	}

	if len(doc.Recipes) > 0 {
		if err := store.PutRecipes(ctx, doc.Recipes); err != nil {
			return nil, fmt.Errorf("failed to import recipes: %w", err)
		}
	}
	if len(doc.Notes) > 0 {
		if err := store.PutNotes(ctx, doc.Notes); err != nil {
			return nil, fmt.Errorf("failed to import notes: %w", err)
		}
	}
	if doc.Settings != nil {
		if err := store.PutSettings(ctx, doc.Settings); err != nil {
			return nil, fmt.Errorf("failed to import settings: %w", err)
		}
	}

	return result, nil
}

// parseDocument validates the top-level shape of an import document:
// recipes and notes must decode as arrays of records when present,
// settings must decode as an object when present. Unknown top-level keys
// are ignored; missing collections are treated as empty. Record fields are
// additionally validated so a bad record cannot poison a grouped write
// halfway through.
func parseDocument(raw []byte) (*Document, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("malformed document: %w", err)
	}

	doc := &Document{}

	if v, ok := present(top, "version"); ok {
		if err := json.Unmarshal(v, &doc.Version); err != nil {
			return nil, fmt.Errorf("malformed document: version must be an integer: %w", err)
		}
	}
	if v, ok := present(top, "recipes"); ok {
		if err := json.Unmarshal(v, &doc.Recipes); err != nil {
			return nil, fmt.Errorf("malformed document: recipes must be an array of recipes: %w", err)
		}
		for _, r := range doc.Recipes {
			if err := r.Validate(); err != nil {
				return nil, fmt.Errorf("malformed document: recipe %s: %w", r.ID, err)
			}
		}
	}
	if v, ok := present(top, "notes"); ok {
		if err := json.Unmarshal(v, &doc.Notes); err != nil {
			return nil, fmt.Errorf("malformed document: notes must be an array of notes: %w", err)
		}
		for _, n := range doc.Notes {
			if err := n.Validate(); err != nil {
				return nil, fmt.Errorf("malformed document: note %s: %w", n.ID, err)
			}
		}
	}
	if v, ok := present(top, "settings"); ok {
		if err := json.Unmarshal(v, &doc.Settings); err != nil {
			return nil, fmt.Errorf("malformed document: settings must be an object: %w", err)
		}
	}

	return doc, nil
}

// present reports whether key carries a usable value. JSON null is treated
// the same as an absent key, matching how older exports omit collections.
func present(top map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	v, ok := top[key]
	if !ok || string(v) == "null" {
		return nil, false
	}
	return v, true
}
