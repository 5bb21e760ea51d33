// Package shopping persists the shopping list as a single JSON blob file.
//
// The list is low-value, easily regenerated data, so it gets a simpler
// contract than the indexed collections: the whole list is read and
// written at once, and a corrupt or missing blob reads as an empty list
// rather than an error.
package shopping

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/conris/resept/internal/debug"
	"github.com/conris/resept/internal/types"
)

// Adapter reads and writes the shopping list blob at a fixed path.
type Adapter struct {
	path     string
	fileLock *flock.Flock
}

// New returns an adapter for the blob at path. The file (and its parent
// directory) is created on first Write.
func New(path string) *Adapter {
	return &Adapter{
		path:     path,
		fileLock: flock.New(path + ".lock"),
	}
}

// Read returns the full ordered item list. A missing file or an
// unparsable blob yields an empty list and no error: the list is cheap to
// rebuild, and surfacing corruption here would just take the feature down
// with it.
func (a *Adapter) Read(ctx context.Context) ([]types.ShoppingItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(a.path)
	if os.IsNotExist(err) {
		return []types.ShoppingItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read shopping list: %w", err)
	}

	var items []types.ShoppingItem
	if err := json.Unmarshal(raw, &items); err != nil {
		debug.Logf("shopping: treating corrupt blob as empty: %v\n", err)
		return []types.ShoppingItem{}, nil
	}
	if items == nil {
		items = []types.ShoppingItem{}
	}
	return items, nil
}

// Write replaces the entire stored list. The blob is written to a temp
// file in the same directory and renamed over the target, so a reader
// never observes a partially written list. A file lock keeps two
// processes from interleaving their temp files.
//
// Ordering is whatever order the caller supplies; the newest-first
// convention is the caller's responsibility.
func (a *Adapter) Write(ctx context.Context, items []types.ShoppingItem) error {
	if items == nil {
		items = []types.ShoppingItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal shopping list: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(a.path), 0o750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	locked, err := a.fileLock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to lock shopping list: %w", err)
	}
	if !locked {
		return fmt.Errorf("shopping list is locked by another process")
	}
	defer func() { _ = a.fileLock.Unlock() }()

	tmp := a.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write shopping list: %w", err)
	}
	if err := os.Rename(tmp, a.path); err != nil {
		return fmt.Errorf("failed to replace shopping list: %w", err)
	}
	return nil
}
