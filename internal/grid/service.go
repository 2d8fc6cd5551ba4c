// Package grid ties the record-grid engine to persistence: it owns the
// current field-registry snapshot, refreshes it from custom-field
// metadata, and serves filtered listings, exports, imports, and column
// layouts for one module.
package grid

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jordanshaw/crmgrid/internal/core"
	"github.com/jordanshaw/crmgrid/internal/prefs"
	"github.com/jordanshaw/crmgrid/internal/store"
)

// lookupKinds maps relationship field ids to their backend option-list
// kinds.
var lookupKinds = map[string]string{
	core.FieldLeadSource: "lead_source",
	core.FieldOwner:      "user",
	core.FieldBrand:      "brand",
}

// Service serves the record grid for one module.
type Service struct {
	store  *store.Store
	prefs  *prefs.Store
	module string

	// The registry and resolver are immutable snapshots replaced
	// wholesale on every metadata refresh; the lock only guards the
	// pointer swap.
	mu       sync.RWMutex
	registry *core.Registry
	resolver *core.Resolver
}

// NewService creates a grid service for module. The initial registry
// holds built-ins only; call RefreshMetadata to pick up custom fields.
func NewService(st *store.Store, pf *prefs.Store, module string) *Service {
	registry := core.BuildRegistry(core.LeadBuiltins, nil)
	return &Service{
		store:    st,
		prefs:    pf,
		module:   module,
		registry: registry,
		resolver: core.NewResolver(registry, nil),
	}
}

// RefreshMetadata rebuilds the registry and resolver from the current
// custom-field metadata and lookup lists. On fetch failure the previous
// snapshot stays in place (built-ins only on first failure) and the
// error is returned for the caller to surface.
func (s *Service) RefreshMetadata(ctx context.Context) error {
	meta, err := s.store.ListCustomFields(ctx, s.module)
	if err != nil {
		return fmt.Errorf("custom-field metadata: %w", err)
	}

	lookups := make(map[string]map[string]string, len(lookupKinds))
	for fieldID, kind := range lookupKinds {
		entries, err := s.store.ListLookup(ctx, kind)
		if err != nil {
			// A missing option list degrades that field to raw ids, it
			// does not block the refresh.
			slog.Warn("lookup fetch failed", "kind", kind, "error", err)
			continue
		}
		lookups[fieldID] = store.LookupMap(entries)
	}

	registry := core.BuildRegistry(core.LeadBuiltins, meta)
	resolver := core.NewResolver(registry, lookups)

	s.mu.Lock()
	s.registry = registry
	s.resolver = resolver
	s.mu.Unlock()

	slog.Info("field registry refreshed", "module", s.module,
		"fields", registry.Len(), "custom", registry.Len()-len(core.LeadBuiltins))
	return nil
}

// Snapshot returns the current registry and resolver pair. The returned
// values are immutable; callers may use them without locking.
func (s *Service) Snapshot() (*core.Registry, *core.Resolver) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry, s.resolver
}

// ListLeads returns the module's records, filtered by criteria.
func (s *Service) ListLeads(ctx context.Context, criteria core.FilterCriteria) ([]core.Record, error) {
	records, err := s.store.ListLeads(ctx)
	if err != nil {
		return nil, err
	}

	registry, resolver := s.Snapshot()

	filtered := make([]core.Record, 0, len(records))
	for _, rec := range records {
		if core.Matches(rec, criteria, registry, resolver) {
			filtered = append(filtered, rec)
		}
	}
	return filtered, nil
}

// Export serializes the module's full record set to a CSV document over
// the fixed export column set.
func (s *Service) Export(ctx context.Context) (string, error) {
	records, err := s.store.ListLeads(ctx)
	if err != nil {
		return "", err
	}

	registry, resolver := s.Snapshot()
	return core.ExportRecords(records, core.ExportColumns, registry, resolver), nil
}

// importNameKeys maps the *_name payload keys produced by the import
// alias table to the relationship field and id column they belong to.
var importNameKeys = []struct {
	nameKey string
	fieldID string
	idKey   string
}{
	{"lead_source_name", core.FieldLeadSource, "lead_source_id"},
	{"owner_name", core.FieldOwner, "owner_id"},
	{"brand_name", core.FieldBrand, "brand_id"},
}

// resolveImportNames rewrites imported relationship names to option ids
// under the id keys the store persists. A name the lookup lists do not
// know is kept verbatim under the id key so the value still survives
// the insert; it renders as-is through the raw-id fallback.
func resolveImportNames(payload map[string]any, resolver *core.Resolver) {
	for _, k := range importNameKeys {
		v, ok := payload[k.nameKey]
		if !ok {
			continue
		}
		delete(payload, k.nameKey)
		name, _ := v.(string)
		if name == "" {
			continue
		}
		if id, ok := resolver.ReverseLookup(k.fieldID, name); ok {
			payload[k.idKey] = id
		} else {
			payload[k.idKey] = name
		}
	}
}

// importCreate wraps create so every payload has its relationship
// names resolved before it reaches the store.
func importCreate(resolver *core.Resolver, create core.CreateFunc) core.CreateFunc {
	return func(ctx context.Context, payload map[string]any) error {
		resolveImportNames(payload, resolver)
		return create(ctx, payload)
	}
}

// Import bulk-creates records from a CSV document, one sequential
// create per surviving row.
func (s *Service) Import(ctx context.Context, documentText string) core.ImportResult {
	_, resolver := s.Snapshot()
	return core.ImportRecords(ctx, documentText, importCreate(resolver, s.store.CreateLead))
}

// LoadLayout loads and reconciles the column layout stored under key.
func (s *Service) LoadLayout(ctx context.Context, key string) core.ColumnLayout {
	registry, _ := s.Snapshot()
	return s.prefs.Load(ctx, key, registry)
}

// SaveLayout reconciles the submitted layout against the live registry
// and persists it. The reconciled form is returned so callers see what
// was actually stored.
func (s *Service) SaveLayout(ctx context.Context, key string, layout core.ColumnLayout) (core.ColumnLayout, error) {
	registry, _ := s.Snapshot()
	reconciled := core.ReconcileLayout(layout, registry.IDs(), core.ShowNone)

	if err := s.prefs.Save(ctx, key, reconciled); err != nil {
		return core.ColumnLayout{}, err
	}
	return reconciled, nil
}

// ResetLayout removes the stored layout for key.
func (s *Service) ResetLayout(ctx context.Context, key string) error {
	return s.prefs.Remove(ctx, key)
}
