package core

import "testing"

func TestMatches_NoCriteria(t *testing.T) {
	reg, res := testResolver(nil, nil)

	rec := Record{"company_name": "Acme"}
	if !Matches(rec, FilterCriteria{}, reg, res) {
		t.Error("expected match with no active criteria")
	}
	if !Matches(rec, FilterCriteria{FieldStatus: "   "}, reg, res) {
		t.Error("expected blank criterion to be inert")
	}
}

func TestMatches_SelectCaseInsensitive(t *testing.T) {
	reg, res := testResolver(nil, nil)
	criteria := FilterCriteria{FieldStatus: "qualified"}

	records := []Record{
		{"status": "New"},
		{"status": "Qualified"},
		{"status": "Lost"},
	}

	var matched []string
	for _, rec := range records {
		if Matches(rec, criteria, reg, res) {
			matched = append(matched, rec["status"].(string))
		}
	}

	if len(matched) != 1 || matched[0] != "Qualified" {
		t.Errorf("expected only the Qualified record, got %v", matched)
	}
}

func TestMatches_SelectAllSentinel(t *testing.T) {
	reg, res := testResolver(nil, nil)

	rec := Record{"status": "Lost"}
	for _, sentinel := range []string{"all", "All", "ALL"} {
		if !Matches(rec, FilterCriteria{FieldStatus: sentinel}, reg, res) {
			t.Errorf("expected %q sentinel to skip the field", sentinel)
		}
	}
}

func TestMatches_DateExactDay(t *testing.T) {
	reg, res := testResolver(nil, nil)
	criteria := FilterCriteria{FieldCreatedAt: "2024-03-05"}

	tests := []struct {
		name string
		rec  Record
		want bool
	}{
		{"same day different time", Record{"created_at": "2024-03-05T23:59:00Z"}, true},
		{"different day", Record{"created_at": "2024-03-06T00:00:00Z"}, false},
		{"unparseable fails", Record{"created_at": "soon"}, false},
		{"absent fails", Record{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.rec, criteria, reg, res); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestMatches_TextSubstring(t *testing.T) {
	reg, res := testResolver(nil, nil)

	rec := Record{"company_name": "Acme Industrial"}
	if !Matches(rec, FilterCriteria{FieldCompanyName: "indus"}, reg, res) {
		t.Error("expected substring match")
	}
	if Matches(rec, FilterCriteria{FieldCompanyName: "globex"}, reg, res) {
		t.Error("expected non-matching substring to fail")
	}
}

func TestMatches_BooleanNormalized(t *testing.T) {
	reg, res := testResolver([]CustomFieldMeta{{ID: "3", Label: "Active", FieldType: "checkbox"}}, nil)

	rec := Record{CustomDataKey: map[string]any{"3": true}}
	if !Matches(rec, FilterCriteria{"cf_3": "yes"}, reg, res) {
		t.Error("expected true to match 'yes'")
	}
	if Matches(rec, FilterCriteria{"cf_3": "no"}, reg, res) {
		t.Error("expected true not to match 'no'")
	}
}

func TestMatches_CriteriaAreANDed(t *testing.T) {
	reg, res := testResolver(nil, nil)

	rec := Record{"company_name": "Acme", "status": "Qualified"}

	both := FilterCriteria{FieldCompanyName: "acme", FieldStatus: "qualified"}
	if !Matches(rec, both, reg, res) {
		t.Error("expected record to satisfy both criteria")
	}

	oneFails := FilterCriteria{FieldCompanyName: "acme", FieldStatus: "lost"}
	if Matches(rec, oneFails, reg, res) {
		t.Error("expected one failing criterion to reject the record")
	}
}

func TestMatches_RelationshipThroughLookup(t *testing.T) {
	lookups := map[string]map[string]string{FieldOwner: {"u1": "Dana Reyes"}}
	reg, res := testResolver(nil, lookups)

	rec := Record{"owner_id": "u1"}
	if !Matches(rec, FilterCriteria{FieldOwner: "dana"}, reg, res) {
		t.Error("expected filter to match the resolved owner label")
	}
}
