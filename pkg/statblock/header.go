package statblock

import (
	"regexp"
	"strings"
)

var (
	crPattern = regexp.MustCompile(`(?i)\bCR\s+([\d/]+)`)
	xpPattern = regexp.MustCompile(`(?i)\bXP\s+([\d,]+)`)
)

// extractHeader fills Name from the first line and CR/XP from their first
// occurrence anywhere in the text. Name keeps the whole first line, trailing
// "CR n" included.
func extractHeader(doc *document, r Record) {
	if len(doc.lines) > 0 {
		r.set(FieldName, strings.TrimSpace(doc.lines[0]))
	}
	if m := crPattern.FindStringSubmatch(doc.text); m != nil {
		r.set(FieldCR, "CR "+m[1])
	}
	if m := xpPattern.FindStringSubmatch(doc.text); m != nil {
		r.set(FieldXP, m[1])
	}
}
