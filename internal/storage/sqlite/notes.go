package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/conris/resept/internal/storage"
	"github.com/conris/resept/internal/types"
)

const upsertNoteSQL = `
INSERT INTO notes (id, pinned, created_at, updated_at, data)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    pinned = excluded.pinned,
    created_at = excluded.created_at,
    updated_at = excluded.updated_at,
    data = excluded.data`

// PutNote inserts or fully replaces the note at note.ID. Same contract as
// PutRecipe: the caller stamps UpdatedAt.
func (s *Store) PutNote(ctx context.Context, note *types.Note) error {
	if err := note.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	data, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("failed to marshal note: %w", err)
	}
	_, err = s.db.ExecContext(ctx, upsertNoteSQL,
		note.ID, note.Pinned, note.CreatedAt, note.UpdatedAt, data)
	if err != nil {
		return fmt.Errorf("failed to put note %s: %w", note.ID, err)
	}
	return nil
}

// PutNotes upserts every note inside one transaction.
func (s *Store) PutNotes(ctx context.Context, notes []*types.Note) error {
	for _, n := range notes {
		if err := n.Validate(); err != nil {
			return fmt.Errorf("validation failed for note %s: %w", n.ID, err)
		}
	}
	return s.withImmediateTx(ctx, func(conn *sql.Conn) error {
		for _, n := range notes {
			data, err := json.Marshal(n)
			if err != nil {
				return fmt.Errorf("failed to marshal note %s: %w", n.ID, err)
			}
			if _, err := conn.ExecContext(ctx, upsertNoteSQL,
				n.ID, n.Pinned, n.CreatedAt, n.UpdatedAt, data); err != nil {
				return fmt.Errorf("failed to put note %s: %w", n.ID, err)
			}
		}
		return nil
	})
}

// GetNote retrieves a note by its id.
// Returns storage.ErrNotFound if no note with that id exists.
func (s *Store) GetNote(ctx context.Context, id string) (*types.Note, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM notes WHERE id = ?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note %s: %w", id, err)
	}
	var note types.Note
	if err := json.Unmarshal(data, &note); err != nil {
		return nil, fmt.Errorf("failed to unmarshal note %s: %w", id, err)
	}
	return &note, nil
}

// GetAllNotes returns every note, pinned notes first, most recently
// updated first within each group.
//
// The fetch uses the updated_at index; the pinned-first pass is the
// in-memory transform documented on types.SortNotes.
func (s *Store) GetAllNotes(ctx context.Context) ([]*types.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM notes ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var notes []*types.Note
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		var note types.Note
		if err := json.Unmarshal(data, &note); err != nil {
			return nil, fmt.Errorf("failed to unmarshal note: %w", err)
		}
		notes = append(notes, &note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading notes: %w", err)
	}

	types.SortNotes(notes)
	return notes, nil
}

// DeleteNote removes the note with the given id. Deleting a nonexistent id
// is a no-op success.
func (s *Store) DeleteNote(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete note %s: %w", id, err)
	}
	return nil
}
