package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// PreferenceBlobs is a string-keyed blob table used for persisted view
// preferences. Implements prefs.BlobStore.
type PreferenceBlobs struct {
	db DBTX
}

// NewPreferenceBlobs creates a preference blob store over db.
func NewPreferenceBlobs(db DBTX) *PreferenceBlobs {
	return &PreferenceBlobs{db: db}
}

// Get reads the blob for key. The second return is false when no blob
// exists.
func (p *PreferenceBlobs) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := p.db.QueryRow(ctx,
		`SELECT value FROM view_preferences WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get preference %q: %w", key, err)
	}
	return value, true, nil
}

// Set upserts the blob for key.
func (p *PreferenceBlobs) Set(ctx context.Context, key, value string) error {
	_, err := p.db.Exec(ctx, `
		INSERT INTO view_preferences (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value)
	if err != nil {
		return fmt.Errorf("set preference %q: %w", key, err)
	}
	return nil
}

// Remove deletes the blob for key. Removing an absent key is not an
// error.
func (p *PreferenceBlobs) Remove(ctx context.Context, key string) error {
	_, err := p.db.Exec(ctx, `DELETE FROM view_preferences WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("remove preference %q: %w", key, err)
	}
	return nil
}
