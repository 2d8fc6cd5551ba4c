package store

// convert.go maps loosely-typed record payloads to pgtype values.
// Import payloads come from user CSV files, so numeric and date fields
// arrive in whatever shape the source system produced. All To* helpers
// return Valid=false for empty or unusable input so the database stores
// NULL instead of garbage.

import (
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

var numericPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006/01/02",
	"1/2/2006",
	"01/02/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"20060102",
}

// ToPgText converts a string to pgtype.Text, NULL for blank input.
func ToPgText(v any) pgtype.Text {
	s := strings.TrimSpace(asString(v))
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// ToPgDate parses a date value in any of the accepted layouts.
func ToPgDate(v any) pgtype.Date {
	if t, ok := v.(time.Time); ok {
		return pgtype.Date{Time: t, Valid: true}
	}

	s := strings.TrimSpace(asString(v))
	if s == "" {
		return pgtype.Date{Valid: false}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return pgtype.Date{Time: t, Valid: true}
		}
	}
	return pgtype.Date{Valid: false}
}

// ToPgNumeric parses a numeric value, tolerating currency symbols,
// thousands separators, and accounting-style negatives "(123.45)".
func ToPgNumeric(v any) pgtype.Numeric {
	s := strings.TrimSpace(asString(v))
	if s == "" {
		return pgtype.Numeric{Valid: false}
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	for _, sym := range []string{"$", "€", "£", ","} {
		s = strings.ReplaceAll(s, sym, "")
	}
	s = strings.TrimSpace(s)
	if negative {
		s = "-" + s
	}

	if !numericPattern.MatchString(s) {
		return pgtype.Numeric{Valid: false}
	}

	var n pgtype.Numeric
	if err := n.Scan(s); err != nil {
		return pgtype.Numeric{Valid: false}
	}
	return n
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
