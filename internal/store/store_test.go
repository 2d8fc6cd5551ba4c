package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// execRecorder captures the last Exec call; Query paths are unused by
// the tests that need it.
type execRecorder struct {
	sql  string
	args []any
}

func (e *execRecorder) Exec(_ context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	e.sql = sql
	e.args = args
	return pgconn.CommandTag{}, nil
}

func (e *execRecorder) Query(context.Context, string, ...interface{}) (pgx.Rows, error) {
	return nil, nil
}

func (e *execRecorder) QueryRow(context.Context, string, ...interface{}) pgx.Row {
	return nil
}

func TestCreateLead_BindsRelationshipIDsAndDate(t *testing.T) {
	rec := &execRecorder{}
	s := New(rec)

	err := s.CreateLead(context.Background(), map[string]any{
		"company_name":   "Acme",
		"lead_source_id": "2",
		"owner_id":       "u7",
		"brand_id":       "b1",
		"created_at":     "2024-03-05",
	})
	if err != nil {
		t.Fatalf("CreateLead: %v", err)
	}
	if len(rec.args) != 15 {
		t.Fatalf("expected 15 insert parameters, got %d", len(rec.args))
	}

	// Parameter order follows the insert column list.
	wantText := map[int]string{
		6: "2",  // lead_source_id
		7: "u7", // owner_id
		8: "b1", // brand_id
	}
	for idx, want := range wantText {
		v, ok := rec.args[idx].(pgtype.Text)
		if !ok || !v.Valid || v.String != want {
			t.Errorf("parameter %d: expected text %q, got %#v", idx, want, rec.args[idx])
		}
	}

	d, ok := rec.args[14].(pgtype.Date)
	if !ok || !d.Valid {
		t.Fatalf("expected a valid created_at date, got %#v", rec.args[14])
	}
	if want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC); !d.Time.Equal(want) {
		t.Errorf("expected created_at %v, got %v", want, d.Time)
	}
}

func TestCreateLead_NoDateStoresNull(t *testing.T) {
	rec := &execRecorder{}
	s := New(rec)

	if err := s.CreateLead(context.Background(), map[string]any{"company_name": "Acme"}); err != nil {
		t.Fatalf("CreateLead: %v", err)
	}

	d, ok := rec.args[14].(pgtype.Date)
	if !ok || d.Valid {
		t.Errorf("expected NULL created_at so the insert defaults to now(), got %#v", rec.args[14])
	}
}
