package core

import "testing"

func sliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestReconcileLayout_SchemaDrift(t *testing.T) {
	stored := ColumnLayout{
		ColumnOrder:    []string{"A", "B", "C"},
		VisibleColumns: map[string]bool{"A": true, "B": true, "C": false},
	}

	got := ReconcileLayout(stored, []string{"A", "C", "D"}, ShowNone)

	// B dropped, D appended at the end.
	if !sliceEqual(got.ColumnOrder, []string{"A", "C", "D"}) {
		t.Errorf("expected order [A C D], got %v", got.ColumnOrder)
	}

	// Persisted visibility preserved; new id defaults hidden.
	if !got.VisibleColumns["A"] || got.VisibleColumns["C"] {
		t.Errorf("expected A visible and C hidden, got %v", got.VisibleColumns)
	}
	if got.VisibleColumns["D"] {
		t.Error("expected newly appearing D to default hidden")
	}

	// No visibility entries for ids outside the order.
	if _, ok := got.VisibleColumns["B"]; ok {
		t.Error("expected stale id B to have no visibility entry")
	}
	if len(got.VisibleColumns) != len(got.ColumnOrder) {
		t.Errorf("expected one visibility entry per ordered id, got %v", got.VisibleColumns)
	}
}

func TestReconcileLayout_EmptyStored(t *testing.T) {
	reg := BuildRegistry(LeadBuiltins, []CustomFieldMeta{{ID: "1", Label: "X", FieldType: "text"}})

	got := ReconcileLayout(ColumnLayout{}, reg.IDs(), reg.ShowBuiltins)

	if !sliceEqual(got.ColumnOrder, reg.IDs()) {
		t.Errorf("expected registry order, got %v", got.ColumnOrder)
	}
	if !got.VisibleColumns[FieldCompanyName] {
		t.Error("expected built-ins shown on first-ever load")
	}
	if got.VisibleColumns["cf_1"] {
		t.Error("expected custom fields hidden on first-ever load")
	}
}

func TestReconcileLayout_DropsDuplicates(t *testing.T) {
	stored := ColumnLayout{ColumnOrder: []string{"A", "A", "B"}}
	got := ReconcileLayout(stored, []string{"A", "B"}, ShowNone)

	if !sliceEqual(got.ColumnOrder, []string{"A", "B"}) {
		t.Errorf("expected deduplicated order [A B], got %v", got.ColumnOrder)
	}
}

func TestMoveColumn(t *testing.T) {
	tests := []struct {
		name   string
		order  []string
		moved  string
		target string
		want   []string
	}{
		{"move back to front", []string{"A", "B", "C"}, "C", "A", []string{"C", "A", "B"}},
		{"move front to back", []string{"A", "B", "C"}, "A", "C", []string{"B", "A", "C"}},
		{"adjacent swap", []string{"A", "B", "C"}, "B", "A", []string{"B", "A", "C"}},
		{"same id no-op", []string{"A", "B", "C"}, "B", "B", []string{"A", "B", "C"}},
		{"absent moved id no-op", []string{"A", "B", "C"}, "X", "A", []string{"A", "B", "C"}},
		{"absent target id no-op", []string{"A", "B", "C"}, "A", "X", []string{"A", "B", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := append([]string(nil), tt.order...)
			got := MoveColumn(tt.order, tt.moved, tt.target)

			if !sliceEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if !sliceEqual(tt.order, orig) {
				t.Errorf("input order mutated: %v", tt.order)
			}
		})
	}
}
