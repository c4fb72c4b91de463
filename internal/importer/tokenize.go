package importer

import "strings"

// SplitLine splits one statement line into trimmed fields on commas that are
// outside double quotes. A doubled quote inside a quoted span is a literal
// quote. Quote characters themselves are not kept, and a quote may open or
// close a span anywhere in a field. An unterminated quote keeps the rest of
// the line in the current field. SplitLine never fails.
func SplitLine(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}

	return append(fields, strings.TrimSpace(cur.String()))
}
