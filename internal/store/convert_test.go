package store

import (
	"math/big"
	"testing"
)

func TestToPgText(t *testing.T) {
	if v := ToPgText("  Acme  "); !v.Valid || v.String != "Acme" {
		t.Errorf("expected trimmed valid text, got %+v", v)
	}
	if v := ToPgText(""); v.Valid {
		t.Error("expected blank input to be invalid")
	}
	if v := ToPgText(nil); v.Valid {
		t.Error("expected nil input to be invalid")
	}
	if v := ToPgText(42); v.Valid {
		t.Error("expected non-string input to be invalid")
	}
}

func TestToPgDate(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"2024-03-05", true},
		{"2024-03-05T10:00:00Z", true},
		{"03/05/2024", true},
		{"Jan 2, 2024", true},
		{"20240305", true},
		{"not-a-date", false},
		{"", false},
	}

	for _, tt := range tests {
		if v := ToPgDate(tt.in); v.Valid != tt.valid {
			t.Errorf("ToPgDate(%q): expected valid=%v, got %+v", tt.in, tt.valid, v)
		}
	}
}

func TestToPgNumeric(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
		want  string
	}{
		{"1234.56", true, "123456"},
		{"$1,234.56", true, "123456"},
		{"(500)", true, "-500"},
		{"€99", true, "99"},
		{"abc", false, ""},
		{"", false, ""},
	}

	for _, tt := range tests {
		v := ToPgNumeric(tt.in)
		if v.Valid != tt.valid {
			t.Errorf("ToPgNumeric(%q): expected valid=%v, got %+v", tt.in, tt.valid, v)
			continue
		}
		if !tt.valid {
			continue
		}
		want, _ := new(big.Int).SetString(tt.want, 10)
		if v.Int.Cmp(want) != 0 {
			t.Errorf("ToPgNumeric(%q): expected coefficient %s, got %s", tt.in, tt.want, v.Int)
		}
	}
}
