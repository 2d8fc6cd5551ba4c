package core

import (
	"testing"
	"time"
)

func testResolver(meta []CustomFieldMeta, lookups map[string]map[string]string) (*Registry, *Resolver) {
	reg := BuildRegistry(LeadBuiltins, meta)
	return reg, NewResolver(reg, lookups)
}

func TestRawValue_AliasPrecedence(t *testing.T) {
	_, res := testResolver(nil, nil)

	tests := []struct {
		name string
		rec  Record
		want any
	}{
		{"primary key", Record{"company_name": "Acme"}, "Acme"},
		{"legacy company key", Record{"company": "Acme"}, "Acme"},
		{"oldest name key", Record{"name": "Acme"}, "Acme"},
		{"primary wins over legacy", Record{"company_name": "New", "name": "Old"}, "New"},
		{"empty string treated as absent", Record{"company_name": "", "company": "Fallback"}, "Fallback"},
		{"nil treated as absent", Record{"company_name": nil, "name": "Acme"}, "Acme"},
		{"nothing present", Record{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := res.RawValue(tt.rec, FieldCompanyName); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRawValue_CustomData(t *testing.T) {
	_, res := testResolver([]CustomFieldMeta{{ID: "55", Label: "Region", FieldType: "text"}}, nil)

	rec := Record{CustomDataKey: map[string]any{"55": "EMEA"}}
	if got := res.RawValue(rec, "cf_55"); got != "EMEA" {
		t.Errorf("expected EMEA, got %v", got)
	}

	// Missing custom_data, missing key, empty value all resolve to nil.
	for _, rec := range []Record{{}, {CustomDataKey: map[string]any{}}, {CustomDataKey: map[string]any{"55": ""}}} {
		if got := res.RawValue(rec, "cf_55"); got != nil {
			t.Errorf("expected nil for %v, got %v", rec, got)
		}
	}
}

func TestRawValue_RelationshipPrecedence(t *testing.T) {
	lookups := map[string]map[string]string{
		FieldOwner: {"u1": "Dana Reyes"},
	}
	_, res := testResolver(nil, lookups)

	tests := []struct {
		name string
		rec  Record
		want any
	}{
		{"denormalized name wins", Record{"owner_name": "Sam Cole", "owner": map[string]any{"name": "Nested"}, "owner_id": "u1"}, "Sam Cole"},
		{"nested object name", Record{"owner": map[string]any{"name": "Nested Owner"}, "owner_id": "u1"}, "Nested Owner"},
		{"lookup map resolves id", Record{"owner_id": "u1"}, "Dana Reyes"},
		{"unknown id falls back raw", Record{"owner_id": "u9"}, "u9"},
		{"numeric id stringified", Record{"owner_id": float64(7)}, "7"},
		{"nested object without name skipped", Record{"owner": map[string]any{"id": "u1"}, "owner_id": "u1"}, "Dana Reyes"},
		{"nothing present", Record{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := res.RawValue(tt.rec, FieldOwner); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestReverseLookup(t *testing.T) {
	lookups := map[string]map[string]string{
		FieldOwner:      {"u1": "Dana Reyes", "u2": "Sam Cole"},
		FieldLeadSource: {"2": "Referral"},
	}
	_, res := testResolver(nil, lookups)

	tests := []struct {
		name    string
		fieldID string
		label   string
		wantID  string
		wantOK  bool
	}{
		{"exact match", FieldOwner, "Dana Reyes", "u1", true},
		{"case insensitive", FieldLeadSource, "referral", "2", true},
		{"surrounding whitespace", FieldOwner, "  Sam Cole ", "u2", true},
		{"unknown label", FieldOwner, "Nobody", "", false},
		{"empty label", FieldOwner, "", "", false},
		{"field without lookups", FieldBrand, "Northwind", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := res.ReverseLookup(tt.fieldID, tt.label)
			if id != tt.wantID || ok != tt.wantOK {
				t.Errorf("expected (%q, %v), got (%q, %v)", tt.wantID, tt.wantOK, id, ok)
			}
		})
	}
}

func TestDisplayValue(t *testing.T) {
	_, res := testResolver([]CustomFieldMeta{
		{ID: "9", Label: "Signed", FieldType: "date"},
	}, nil)

	tests := []struct {
		name    string
		rec     Record
		fieldID string
		want    string
	}{
		{"row number", Record{}, FieldRowNumber, "3"},
		{"plain text", Record{"company_name": "Acme"}, FieldCompanyName, "Acme"},
		{"absent renders placeholder", Record{}, FieldCompanyName, "-"},
		{"date formatted", Record{"created_at": "2024-03-05T10:00:00Z"}, FieldCreatedAt, "Mar 5, 2024"},
		{"bad date renders placeholder", Record{"created_at": "soon"}, FieldCreatedAt, "-"},
		{"custom date formatted", Record{CustomDataKey: map[string]any{"9": "2024-01-15"}}, "cf_9", "Jan 15, 2024"},
		{"number trims float artifacts", Record{"deal_value": float64(12500)}, FieldDealValue, "12500"},
		{"array joins", Record{"notes": []any{"a", "b"}}, FieldNotes, "a, b"},
		{"unknown field", Record{}, "bogus", "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := res.DisplayValue(tt.rec, tt.fieldID, 2); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDisplayValue_Booleans(t *testing.T) {
	_, res := testResolver([]CustomFieldMeta{{ID: "3", Label: "Active", FieldType: "checkbox"}}, nil)

	rec := Record{CustomDataKey: map[string]any{"3": true}}
	if got := res.DisplayValue(rec, "cf_3", 0); got != "Yes" {
		t.Errorf("expected Yes, got %q", got)
	}

	rec = Record{CustomDataKey: map[string]any{"3": false}}
	if got := res.DisplayValue(rec, "cf_3", 0); got != "No" {
		t.Errorf("expected No, got %q", got)
	}
}

func TestDateOnly(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"rfc3339", "2024-03-05T10:00:00Z", "2024-03-05"},
		{"date only", "2024-03-05", "2024-03-05"},
		{"us format", "03/05/2024", "2024-03-05"},
		{"time value", time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), "2024-03-05"},
		{"unparseable", "not-a-date", ""},
		{"empty", "", ""},
		{"nil", nil, ""},
		{"non-temporal type", 42, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateOnly(tt.in); got != tt.want {
				t.Errorf("DateOnly(%v): expected %q, got %q", tt.in, tt.want, got)
			}
		})
	}
}

func TestExportValue(t *testing.T) {
	_, res := testResolver(nil, nil)

	rec := Record{"created_at": "2024-03-05T10:00:00Z"}
	if got := res.ExportValue(rec, FieldCreatedAt); got != "2024-03-05" {
		t.Errorf("expected 2024-03-05, got %q", got)
	}

	// Absent values export as empty, not the display placeholder.
	if got := res.ExportValue(Record{}, FieldCompanyName); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
