package core

// resolve.go extracts and formats field values from opaque backend
// records. Backend payloads are inconsistent: legacy key spellings,
// denormalized relationship names next to nested objects next to bare
// ids, custom values buried under custom_data. Every path here degrades
// to an empty or placeholder value; nothing panics on malformed data.

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DisplayPlaceholder is rendered for absent or unparseable values.
const DisplayPlaceholder = "-"

// dateLayouts are tried in order when parsing date values out of
// records. ISO forms first since that is what the backend emits.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"20060102",
}

// displayDateLayout is the table-presentation date format.
const displayDateLayout = "Jan 2, 2006"

// Resolver extracts field values from records using a registry's
// descriptors plus id-to-label lookup maps for relationship fields.
type Resolver struct {
	registry *Registry
	lookups  map[string]map[string]string // field id -> record id -> label
}

// NewResolver creates a Resolver. lookups may be nil; relationship
// fields then fall back to their raw ids.
func NewResolver(registry *Registry, lookups map[string]map[string]string) *Resolver {
	return &Resolver{registry: registry, lookups: lookups}
}

// RawValue extracts and normalizes the field's raw value from a record.
// Custom fields read through custom_data; built-ins try their legacy
// alias keys in precedence order. Returns nil when nothing is present.
func (r *Resolver) RawValue(rec Record, fieldID string) any {
	d, ok := r.registry.Lookup(fieldID)
	if !ok {
		return nil
	}

	if d.Custom {
		return nonNullish(rec.CustomData()[d.backendID])
	}

	if d.relationship() {
		return r.resolveRelationship(rec, d)
	}

	for _, key := range d.Aliases {
		if v := nonNullish(rec[key]); v != nil {
			return v
		}
	}
	return nil
}

// resolveRelationship applies the relationship precedence chain:
// denormalized name, then nested object's name, then id mapped through
// the lookup table, then the raw id itself.
func (r *Resolver) resolveRelationship(rec Record, d FieldDescriptor) any {
	for _, key := range d.Aliases {
		switch v := rec[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case map[string]any:
			if name, ok := v["name"].(string); ok && name != "" {
				return name
			}
		}
	}

	for _, key := range d.IDKeys {
		id := stringify(rec[key])
		if id == "" {
			continue
		}
		if label := r.lookups[d.ID][id]; label != "" {
			return label
		}
		return id
	}
	return nil
}

// ReverseLookup maps a relationship field's display label back to its
// option id, matching case-insensitively. It is the inverse of the
// lookup step in resolveRelationship, for import rows that carry names
// instead of ids.
func (r *Resolver) ReverseLookup(fieldID, label string) (string, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", false
	}
	for id, l := range r.lookups[fieldID] {
		if strings.EqualFold(l, label) {
			return id, true
		}
	}
	return "", false
}

// DisplayValue formats a field for table presentation. The synthetic
// row-number field renders rowIndex+1; dates render in display form or
// the placeholder; booleans render Yes/No; arrays join with ", ";
// objects serialize compactly; absent values render the placeholder.
func (r *Resolver) DisplayValue(rec Record, fieldID string, rowIndex int) string {
	if fieldID == FieldRowNumber {
		return strconv.Itoa(rowIndex + 1)
	}

	d, ok := r.registry.Lookup(fieldID)
	if !ok {
		return DisplayPlaceholder
	}

	raw := r.RawValue(rec, fieldID)
	if raw == nil {
		return DisplayPlaceholder
	}

	if d.Type == TypeDate {
		t, ok := parseTime(raw)
		if !ok {
			return DisplayPlaceholder
		}
		return t.Format(displayDateLayout)
	}

	s := stringify(raw)
	if s == "" {
		return DisplayPlaceholder
	}
	return s
}

// ExportValue formats a field for CSV export: like DisplayValue but an
// empty string instead of the placeholder, and dates in YYYY-MM-DD form.
func (r *Resolver) ExportValue(rec Record, fieldID string) string {
	d, ok := r.registry.Lookup(fieldID)
	if !ok {
		return ""
	}

	raw := r.RawValue(rec, fieldID)
	if raw == nil {
		return ""
	}

	if d.Type == TypeDate {
		return DateOnly(raw)
	}
	return stringify(raw)
}

// DateOnly reduces a value to its YYYY-MM-DD form, or empty for
// unparseable input. Used for exact-day filter comparisons.
func DateOnly(v any) string {
	t, ok := parseTime(v)
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}

func parseTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

// nonNullish filters out absent values: nil and the empty string.
func nonNullish(v any) any {
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok && s == "" {
		return nil
	}
	return v
}

// stringify flattens a raw value to text. Booleans normalize to Yes/No,
// arrays join with ", ", plain objects serialize to compact JSON.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "Yes"
		}
		return "No"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case []string:
		return strings.Join(t, ", ")
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = stringify(e)
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", t)
	}
}
