package core

import "strings"

// CustomFieldPrefix namespaces custom-field descriptor ids, guaranteeing
// no collision with built-in ids.
const CustomFieldPrefix = "cf_"

// Registry is an ordered, id-indexed catalog of field descriptors for
// one module. A Registry is an immutable snapshot: when custom-field
// metadata is refreshed, callers build a new Registry and replace the
// old one wholesale.
type Registry struct {
	descriptors []FieldDescriptor
	byID        map[string]int
}

// BuildRegistry merges the fixed built-in descriptors with one derived
// descriptor per custom-field metadata entry. Backend field types map as
// date, number, dropdown, radio, checkbox, else text; checkbox degrades
// to a Yes/No select so it can participate in select filtering.
func BuildRegistry(builtins []FieldDescriptor, meta []CustomFieldMeta) *Registry {
	descriptors := make([]FieldDescriptor, 0, len(builtins)+len(meta))
	descriptors = append(descriptors, builtins...)

	for _, m := range meta {
		descriptors = append(descriptors, customDescriptor(m))
	}

	byID := make(map[string]int, len(descriptors))
	for i, d := range descriptors {
		byID[d.ID] = i
	}

	return &Registry{descriptors: descriptors, byID: byID}
}

// customDescriptor derives a FieldDescriptor from backend metadata.
func customDescriptor(m CustomFieldMeta) FieldDescriptor {
	d := FieldDescriptor{
		ID:        CustomFieldPrefix + m.ID,
		Label:     m.Label,
		Custom:    true,
		backendID: m.ID,
	}

	switch strings.ToLower(strings.TrimSpace(m.FieldType)) {
	case "date":
		d.Type = TypeDate
	case "number":
		d.Type = TypeNumber
	case "dropdown", "radio":
		d.Type = TypeSelect
		d.Options = m.Options
	case "checkbox":
		d.Type = TypeSelect
		d.Options = []string{"Yes", "No"}
	default:
		d.Type = TypeText
	}

	return d
}

// Lookup returns the descriptor for id.
func (r *Registry) Lookup(id string) (FieldDescriptor, bool) {
	i, ok := r.byID[id]
	if !ok {
		return FieldDescriptor{}, false
	}
	return r.descriptors[i], true
}

// Descriptors returns the ordered descriptor list. Callers must not
// mutate the returned slice.
func (r *Registry) Descriptors() []FieldDescriptor {
	return r.descriptors
}

// IDs returns the registry's field ids in catalog order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.descriptors))
	for i, d := range r.descriptors {
		ids[i] = d.ID
	}
	return ids
}

// Len returns the number of descriptors in the registry.
func (r *Registry) Len() int {
	return len(r.descriptors)
}
