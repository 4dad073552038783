package export

import (
	"fmt"
	"strings"
)

// Column maps a row key to its header label, in output order.
type Column struct {
	Key   string
	Label string
}

// Delimited renders rows as comma-separated text. Every cell — header labels
// included — is wrapped in quotes unconditionally, with embedded quotes
// doubled, so consumers never need to guess at quoting rules.
func Delimited(rows []map[string]any, columns []Column) string {
	var b strings.Builder

	for i, c := range columns {
		if i > 0 {
			b.WriteByte(',')
		}
		writeCell(&b, c.Label)
	}
	b.WriteByte('\n')

	for _, row := range rows {
		for i, c := range columns {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCell(&b, cellString(row[c.Key]))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func cellString(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func writeCell(b *strings.Builder, s string) {
	b.WriteByte('"')
	b.WriteString(strings.ReplaceAll(s, `"`, `""`))
	b.WriteByte('"')
}
