package statblock

import "strings"

// Render formats r as one "<Field>: <value>" line per field, in canonical
// order, empty values included.
func Render(r Record) string {
	var sb strings.Builder
	for _, f := range Fields {
		sb.WriteString(string(f))
		sb.WriteString(": ")
		sb.WriteString(r[f])
		sb.WriteString("\n")
	}
	return sb.String()
}

// Entry is one field/value pair in canonical order.
type Entry struct {
	Field Field  `json:"field"`
	Value string `json:"value"`
}

// Entries lists r in canonical order, for encoders that lose map order.
func Entries(r Record) []Entry {
	entries := make([]Entry, 0, len(Fields))
	for _, f := range Fields {
		entries = append(entries, Entry{Field: f, Value: r[f]})
	}
	return entries
}
