// Package sqlite implements the storage interface using SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	// Import SQLite driver
	sqlite3 "github.com/ncruces/go-sqlite3"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/tetratelabs/wazero"
)

// Store implements the storage.Storage interface using SQLite
type Store struct {
	db     *sql.DB
	dbPath string
	closed atomic.Bool // Tracks whether Close() has been called
}

// setupWASMCache configures WASM compilation caching to reduce SQLite
// startup time. The driver compiles its embedded SQLite wasm module on
// first use (~200ms); caching the compiled artifact under the user cache
// dir cuts subsequent opens to a few milliseconds. Falls back to an
// in-memory cache if the cache directory cannot be created.
func setupWASMCache() {
	var cache wazero.CompilationCache
	if userCache, err := os.UserCacheDir(); err == nil {
		if c, err := wazero.NewCompilationCacheWithDir(filepath.Join(userCache, "resept", "wasm")); err == nil {
			cache = c
		}
	}
	if cache == nil {
		cache = wazero.NewCompilationCache()
	}
	sqlite3.RuntimeConfig = wazero.NewRuntimeConfig().WithCompilationCache(cache)
}

func init() {
	setupWASMCache()
}

// Open creates or opens the database at path and brings its schema to the
// current version.
//
// Open is idempotent: opening a database already at the target version
// applies no migration steps and touches no data. If a migration fails the
// upgrade transaction is rolled back, no version bump is recorded, and
// Open returns the error; the caller may simply retry from scratch.
func Open(ctx context.Context, path string) (*Store, error) {
	// Build connection string with proper URI syntax.
	// For :memory: databases, use shared cache so multiple connections in
	// the pool see the same data.
	var connStr string
	switch {
	case path == ":memory:":
		connStr = "file::memory:?cache=shared&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)"
	case strings.HasPrefix(path, "file:"):
		connStr = path
		if !strings.Contains(path, "_pragma=foreign_keys") {
			connStr += "&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)"
		}
	default:
		// Ensure directory exists for file-based databases
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
		connStr = "file:" + path + "?_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	isInMemory := path == ":memory:" ||
		(strings.HasPrefix(path, "file:") && strings.Contains(path, "mode=memory"))

	// SQLite supports a single writer; the store assumes a single logical
	// writer anyway, so a tiny pool suffices and avoids SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// WAL keeps reads available during writes. Not supported for shared
	// in-memory databases.
	if !isInMemory {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Convert to absolute path for consistency (but keep :memory: and URIs as-is)
	absPath := path
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		absPath, err = filepath.Abs(path)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to get absolute path: %w", err)
		}
	}

	return &Store{db: db, dbPath: absPath}, nil
}

// Close closes the database connection.
// It checkpoints the WAL to ensure all writes are flushed to the main
// database file; without this, writes may be stranded in the WAL between
// CLI invocations.
func (s *Store) Close() error {
	s.closed.Store(true)
	_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	return s.db.Close()
}

// Path returns the path the store was opened with
func (s *Store) Path() string {
	return s.dbPath
}

// IsClosed returns true if Close() has been called on this store
func (s *Store) IsClosed() bool {
	return s.closed.Load()
}

// withImmediateTx runs fn inside a BEGIN IMMEDIATE transaction on a
// dedicated connection. IMMEDIATE acquires the write lock up front so a
// grouped write cannot deadlock against another writer mid-transaction.
//
// We use raw Exec instead of BeginTx because database/sql does not support
// transaction modes in BeginTx, and the driver's BeginTx always uses
// DEFERRED mode.
func (s *Store) withImmediateTx(ctx context.Context, fn func(conn *sql.Conn) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if _, err := conn.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Use context.Background() for ROLLBACK so cleanup happens even if ctx
	// is canceled.
	committed := false
	defer func() {
		if !committed {
			_, _ = conn.ExecContext(context.Background(), "ROLLBACK")
		}
	}()

	if err := fn(conn); err != nil {
		return err
	}

	if _, err := conn.ExecContext(ctx, "COMMIT"); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true
	return nil
}
