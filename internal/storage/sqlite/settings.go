package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/conris/resept/internal/types"
)

const settingsKey = "settings"

// GetSettings returns the user preferences blob, or an empty document if
// settings were never saved. The blob is opaque to the store; unknown keys
// round-trip untouched.
func (s *Store) GetSettings(ctx context.Context) (types.Settings, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM meta WHERE key = ?`, settingsKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return types.Settings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	settings := types.Settings{}
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	return settings, nil
}

// PutSettings overwrites the stored settings wholesale.
func (s *Store) PutSettings(ctx context.Context, settings types.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`,
		settingsKey, string(data)); err != nil {
		return fmt.Errorf("failed to put settings: %w", err)
	}
	return nil
}
