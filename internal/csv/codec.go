// Package csv implements the quoted-CSV codec used for bulk lead
// import and export.
//
// The codec is deliberately permissive: real-world CRM exports contain
// unterminated quotes, short rows, and mixed line endings, and a bulk
// import should salvage what it can rather than reject the file. Parsing
// never returns an error; malformed quoting terminates at end of line.
package csv

import "strings"

// ParseRow splits a single CSV line into fields.
//
// Double-quoted fields may contain commas and doubled quotes ("" becomes
// a literal "). Unquoted fields are read verbatim up to the next comma.
// An unterminated quote consumes the rest of the line.
func ParseRow(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case inQuotes:
			if c == '"' {
				if i+1 < len(line) && line[i+1] == '"' {
					cur.WriteByte('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				cur.WriteByte(c)
			}
		case c == '"':
			inQuotes = true
		case c == ',':
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}

	fields = append(fields, cur.String())
	return fields
}

// NormalizeHeader converts a header cell to its canonical key form:
// lower-cased, trimmed, internal whitespace replaced with underscores.
func NormalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.Join(strings.Fields(h), "_")
}

// Row is one parsed data row: field values keyed by normalized header
// name, plus the physical 1-based line number the row came from. Blank
// lines yield no Row but still count toward Line, so reported numbers
// match what the user sees in the source file.
type Row struct {
	Line   int
	Fields map[string]string
}

// ParseDocument parses a full CSV document into one Row per data line.
//
// The first non-blank line is the header row. Rows shorter than the
// header leave the trailing keys absent. A document with fewer than two
// non-blank lines yields no rows.
func ParseDocument(text string) []Row {
	type srcLine struct {
		number int
		text   string
	}
	var lines []srcLine
	for i, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, srcLine{number: i + 1, text: line})
		}
	}
	if len(lines) < 2 {
		return nil
	}

	rawHeader := ParseRow(lines[0].text)
	headers := make([]string, len(rawHeader))
	for i, h := range rawHeader {
		headers[i] = NormalizeHeader(h)
	}

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := ParseRow(line.text)
		rec := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(fields) {
				rec[h] = fields[i]
			}
		}
		rows = append(rows, Row{Line: line.number, Fields: rec})
	}
	return rows
}

// SerializeField escapes a single field value. Values containing a
// comma, quote, or newline are wrapped in double quotes with internal
// quotes doubled; everything else passes through untouched.
func SerializeField(value string) string {
	if strings.ContainsAny(value, ",\"\n\r") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}

// SerializeDocument builds a CSV document from header labels and rows.
// Lines are joined with \n; ParseDocument round-trips the result.
func SerializeDocument(headerLabels []string, rows [][]string) string {
	var b strings.Builder
	writeLine(&b, headerLabels)
	for _, row := range rows {
		b.WriteByte('\n')
		writeLine(&b, row)
	}
	return b.String()
}

func writeLine(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(SerializeField(f))
	}
}
