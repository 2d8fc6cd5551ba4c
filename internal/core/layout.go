package core

// layout.go reconciles persisted column layouts against the live field
// registry. The registry is always ground truth: the stored layout is
// patched toward it, never the reverse, so a layout saved before fields
// were added or removed still loads cleanly.

// VisibleFunc decides the default visibility for a field id that is
// newly appearing in a layout.
type VisibleFunc func(id string) bool

// ShowNone hides every newly appearing field.
func ShowNone(string) bool { return false }

// ShowBuiltins shows newly appearing built-in fields and hides custom
// fields. Used for a first-ever load, when nothing was persisted.
func (r *Registry) ShowBuiltins(id string) bool {
	d, ok := r.Lookup(id)
	return ok && !d.Custom
}

// ReconcileLayout repairs a stored layout against the current registry
// id set: stale ids are dropped, missing ids are appended in registry
// order, persisted visibility is kept for surviving ids, and newly
// appearing ids get their visibility from visible. The result's order
// is exactly a permutation of registryIDs with no duplicates.
func ReconcileLayout(stored ColumnLayout, registryIDs []string, visible VisibleFunc) ColumnLayout {
	live := make(map[string]bool, len(registryIDs))
	for _, id := range registryIDs {
		live[id] = true
	}

	out := ColumnLayout{
		ColumnOrder:    make([]string, 0, len(registryIDs)),
		VisibleColumns: make(map[string]bool, len(registryIDs)),
	}

	seen := make(map[string]bool, len(registryIDs))
	for _, id := range stored.ColumnOrder {
		if !live[id] || seen[id] {
			continue
		}
		seen[id] = true
		out.ColumnOrder = append(out.ColumnOrder, id)
	}

	for _, id := range registryIDs {
		if !seen[id] {
			seen[id] = true
			out.ColumnOrder = append(out.ColumnOrder, id)
		}
	}

	for _, id := range out.ColumnOrder {
		if v, ok := stored.VisibleColumns[id]; ok {
			out.VisibleColumns[id] = v
		} else {
			out.VisibleColumns[id] = visible(id)
		}
	}

	return out
}

// MoveColumn removes movedID from its current position and reinserts it
// at targetID's position (drag-and-drop semantics). Returns a new slice;
// the input is never mutated. No-op if either id is absent or they are
// equal.
func MoveColumn(order []string, movedID, targetID string) []string {
	if movedID == targetID {
		return append([]string(nil), order...)
	}

	movedIdx, targetIdx := -1, -1
	for i, id := range order {
		switch id {
		case movedID:
			movedIdx = i
		case targetID:
			targetIdx = i
		}
	}
	if movedIdx < 0 || targetIdx < 0 {
		return append([]string(nil), order...)
	}

	out := make([]string, 0, len(order))
	for i, id := range order {
		if i == movedIdx {
			continue
		}
		out = append(out, id)
	}

	// Recompute target position after the removal shift.
	insertAt := targetIdx
	if movedIdx < targetIdx {
		insertAt--
	}

	out = append(out, "")
	copy(out[insertAt+1:], out[insertAt:])
	out[insertAt] = movedID
	return out
}
