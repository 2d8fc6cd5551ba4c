// Package core implements the dynamic record-grid engine for
// schema-extensible CRM entity lists: field registry, value resolution,
// filtering, column-layout reconciliation, and CSV import/export.
// This package has no transport or storage dependencies.
package core

import "context"

// ValueType represents the data type of a grid field.
type ValueType int

const (
	TypeText ValueType = iota
	TypeDate
	TypeNumber
	TypeSelect
	TypeBool
)

// String returns the wire name of the value type.
func (t ValueType) String() string {
	switch t {
	case TypeDate:
		return "date"
	case TypeNumber:
		return "number"
	case TypeSelect:
		return "select"
	case TypeBool:
		return "boolean"
	default:
		return "text"
	}
}

// FieldDescriptor describes one inspectable, filterable, displayable
// attribute of a record. Built-in descriptors are static; custom
// descriptors are derived from backend metadata and rebuilt on every
// metadata refresh.
type FieldDescriptor struct {
	ID      string    // Unique within the registry; custom ids carry CustomFieldPrefix
	Label   string    // Display name
	Type    ValueType // Drives filter and display semantics
	Options []string  // Choices for TypeSelect fields

	// Aliases lists the record keys tried, in precedence order, when
	// resolving this field's value. Name-bearing keys come before raw
	// objects. Empty for custom fields (resolved through custom_data).
	Aliases []string

	// IDKeys lists record keys holding a relationship id, resolved
	// through the field's id-to-label lookup map when Aliases yield
	// nothing. Only set on relationship fields (lead source, owner, brand).
	IDKeys []string

	// Custom is true for descriptors derived from custom-field metadata.
	Custom bool

	// backendID is the unprefixed custom-field id used for custom_data
	// lookups. Empty for built-ins.
	backendID string
}

// CustomFieldMeta is one custom-field definition as returned by the
// backend for a module.
type CustomFieldMeta struct {
	ID        string   `json:"id"`
	Label     string   `json:"label"`
	FieldType string   `json:"field_type"` // date, number, dropdown, radio, checkbox, else text
	Options   []string `json:"options,omitempty"`
}

// Record is an opaque record as delivered by the backend: a mapping of
// field names to values, with custom-field values nested under
// "custom_data". Every read path tolerates missing keys.
type Record map[string]any

// CustomDataKey is the record key holding the nested custom-field map.
const CustomDataKey = "custom_data"

// CustomData returns the record's nested custom-field map, or nil.
// Both map[string]any (decoded JSON) and map[string]string are accepted.
func (r Record) CustomData() map[string]any {
	switch m := r[CustomDataKey].(type) {
	case map[string]any:
		return m
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out
	default:
		return nil
	}
}

// FilterCriteria maps a field id to its active criterion value.
// A blank criterion is inert; all active criteria are ANDed.
type FilterCriteria map[string]string

// ColumnLayout is a user's persisted column order and visibility for a
// grid view. After reconciliation ColumnOrder is exactly the live
// registry's id set with no duplicates, and VisibleColumns has an entry
// for every id in ColumnOrder and no others.
type ColumnLayout struct {
	ColumnOrder    []string        `json:"columnOrder"`
	VisibleColumns map[string]bool `json:"visibleColumns"`
}

// LookupEntry is one id/name pair from a backend option list
// (brands, lead sources, owners).
type LookupEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateFunc persists one imported record. Called once per surviving
// row, strictly sequentially in file order.
type CreateFunc func(ctx context.Context, payload map[string]any) error

// ImportError describes one row that could not be imported.
type ImportError struct {
	Line   int    `json:"line"` // 1-indexed line in the source file
	Reason string `json:"reason"`
}

// ImportResult is the summary of a best-effort batch import.
type ImportResult struct {
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"` // rows lacking every required field
	Errors   []ImportError `json:"errors,omitempty"`
}
