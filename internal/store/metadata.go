package store

import (
	"context"
	"fmt"

	"github.com/jordanshaw/crmgrid/internal/core"
)

const listCustomFieldsQuery = `
SELECT id::text, label, field_type, COALESCE(options, '{}')
FROM custom_fields
WHERE module = $1
ORDER BY position, id`

// ListCustomFields returns the custom-field definitions for a module,
// in declared order.
func (s *Store) ListCustomFields(ctx context.Context, module string) ([]core.CustomFieldMeta, error) {
	rows, err := s.db.Query(ctx, listCustomFieldsQuery, module)
	if err != nil {
		return nil, fmt.Errorf("list custom fields: %w", err)
	}
	defer rows.Close()

	var meta []core.CustomFieldMeta
	for rows.Next() {
		var m core.CustomFieldMeta
		if err := rows.Scan(&m.ID, &m.Label, &m.FieldType, &m.Options); err != nil {
			return nil, fmt.Errorf("scan custom field: %w", err)
		}
		meta = append(meta, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list custom fields: %w", err)
	}
	return meta, nil
}

const listLookupQuery = `
SELECT id::text, name
FROM lookup_options
WHERE kind = $1
ORDER BY position, name`

// ListLookup returns the id/name option list of the given kind
// (brand, lead_source, user), in declared order.
func (s *Store) ListLookup(ctx context.Context, kind string) ([]core.LookupEntry, error) {
	rows, err := s.db.Query(ctx, listLookupQuery, kind)
	if err != nil {
		return nil, fmt.Errorf("list %s lookup: %w", kind, err)
	}
	defer rows.Close()

	var entries []core.LookupEntry
	for rows.Next() {
		var e core.LookupEntry
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, fmt.Errorf("scan %s lookup: %w", kind, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s lookup: %w", kind, err)
	}
	return entries, nil
}

// LookupMap flattens a lookup list to an id-to-name map for the resolver.
func LookupMap(entries []core.LookupEntry) map[string]string {
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		m[e.ID] = e.Name
	}
	return m
}
