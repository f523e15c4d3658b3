package statblock

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Alignments is the closed set of alignment codes that mark the trait line.
var Alignments = []string{"LG", "NG", "CG", "LN", "N", "CN", "LE", "NE", "CE"}

// Sizes is the closed set of size words recognized after the alignment.
var Sizes = []string{"Fine", "Diminutive", "Tiny", "Small", "Medium", "Large", "Huge", "Gargantuan", "Colossal"}

var (
	alignmentTokenPattern = regexp.MustCompile(`(?i)\b(?:` + strings.Join(Alignments, "|") + `)\b`)

	traitPattern = regexp.MustCompile(`(?i)^([LNCEG]{1,2})\s+(?:(` + strings.Join(Sizes, "|") + `)\s+)?(\S.*)$`)

	initPattern   = regexp.MustCompile(`(?i)Init\s+([^\n;]+)`)
	sensesPattern = regexp.MustCompile(`(?i)Senses\s+([^;\n]+(?:;\s*Perception\s+[+\-]?\d+)?)`)
	auraPattern   = regexp.MustCompile(`(?i)Aura\s+([^\n]+)`)
)

// findTraitLine returns the index of the first line holding a standalone
// alignment code and the text of that line from the code onward.
func findTraitLine(lines []string) (int, string, bool) {
	for i, line := range lines {
		if loc := alignmentTokenPattern.FindStringIndex(line); loc != nil {
			return i, line[loc[0]:], true
		}
	}
	return -1, "", false
}

// extractTraits fills Alignment, Size, Type/(sub-type), Class, Init-derived
// Align Type Init, Senses and Aura. Nothing is set unless a trait line exists.
func extractTraits(doc *document, r Record) {
	idx, line, ok := findTraitLine(doc.lines)
	if !ok {
		return
	}

	if m := traitPattern.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
		r.set(FieldAlignment, strings.ToUpper(m[1]))
		r.set(FieldSize, m[2])
		r.set(FieldType, titleCase(strings.TrimSpace(m[3])))
	}

	if idx > 1 {
		prev := strings.TrimSpace(doc.lines[idx-1])
		if prev != "" && !xpPattern.MatchString(prev) && !crPattern.MatchString(prev) {
			r.set(FieldClass, prev)
		}
	}

	var initValue string
	if m := initPattern.FindStringSubmatch(doc.text); m != nil {
		initValue = strings.TrimSpace(m[1])
	}
	r.set(FieldAlignTypeInit, joinNonEmpty(r[FieldAlignment], r[FieldSize], r[FieldType], initValue))

	if m := sensesPattern.FindStringSubmatch(doc.text); m != nil {
		r.set(FieldSenses, capitalizeClauses(m[1]))
	}
	if m := auraPattern.FindStringSubmatch(doc.text); m != nil {
		r.set(FieldAura, capitalizeClauses(m[1]))
	}
}

// titleCase upper-cases the first letter of every word and lower-cases the
// rest. A Caser is stateful, so each call gets its own.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// capitalizeClauses splits s on commas, trims each clause and upper-cases its
// first letter, then rejoins with ", ".
func capitalizeClauses(s string) string {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if first, size := utf8.DecodeRuneInString(p); size > 0 {
			p = string(unicode.ToUpper(first)) + p[size:]
		}
		parts[i] = p
	}
	return strings.Join(parts, ", ")
}

func joinNonEmpty(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
