// Package prefs persists per-user column layouts and reconciles them
// against the live field registry on load, so a layout saved before
// fields were added or removed still restores cleanly.
package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jordanshaw/crmgrid/internal/core"
)

// ErrNotLoaded is returned by Save when the view has not been loaded
// yet. Saving before the first load would clobber the persisted layout
// with defaults.
var ErrNotLoaded = errors.New("view preference not loaded yet")

// BlobStore is the key-value persistence the preference store writes
// through. The Postgres store implements it; tests use an in-memory map.
type BlobStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Store loads and saves column layouts for grid views.
type Store struct {
	blobs BlobStore

	mu     sync.Mutex
	loaded map[string]bool
}

// NewStore creates a preference store backed by blobs.
func NewStore(blobs BlobStore) *Store {
	return &Store{blobs: blobs, loaded: make(map[string]bool)}
}

// Load reads the persisted layout for key and reconciles it against the
// registry. Absent or corrupt data degrades to the default layout
// (built-ins shown, custom fields hidden) and is logged, never returned
// as an error; ids persisted but no longer in the registry are dropped,
// and new registry ids are appended hidden.
func (s *Store) Load(ctx context.Context, key string, registry *core.Registry) core.ColumnLayout {
	defer func() {
		s.mu.Lock()
		s.loaded[key] = true
		s.mu.Unlock()
	}()

	raw, ok, err := s.blobs.Get(ctx, key)
	if err != nil {
		slog.Warn("preference read failed, using default layout", "key", key, "error", err)
		return core.ReconcileLayout(core.ColumnLayout{}, registry.IDs(), registry.ShowBuiltins)
	}
	if !ok {
		return core.ReconcileLayout(core.ColumnLayout{}, registry.IDs(), registry.ShowBuiltins)
	}

	var stored core.ColumnLayout
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		slog.Warn("corrupt preference blob, using default layout", "key", key, "error", err)
		return core.ReconcileLayout(core.ColumnLayout{}, registry.IDs(), registry.ShowBuiltins)
	}

	return core.ReconcileLayout(stored, registry.IDs(), core.ShowNone)
}

// Save persists the layout for key. Idempotent; called after every
// reorder or visibility toggle. Returns ErrNotLoaded if Load has not
// completed for this key.
func (s *Store) Save(ctx context.Context, key string, layout core.ColumnLayout) error {
	s.mu.Lock()
	loaded := s.loaded[key]
	s.mu.Unlock()
	if !loaded {
		return ErrNotLoaded
	}

	b, err := json.Marshal(layout)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	if err := s.blobs.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("persist layout: %w", err)
	}
	return nil
}

// Remove deletes the persisted layout for key, resetting the view to
// defaults on next load.
func (s *Store) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.loaded, key)
	s.mu.Unlock()

	if err := s.blobs.Remove(ctx, key); err != nil {
		return fmt.Errorf("remove layout: %w", err)
	}
	return nil
}
