package statblock

import (
	"regexp"
	"strings"
)

// FieldStartLabels are the labels that begin a new field. A multi-line
// capture stops at the first line opening with one of them. Matching is
// case-insensitive and needs whitespace after the label.
var FieldStartLabels = []string{
	"AC", "HP", "Speed", "Melee",
	"Spell-Like Abilities", "Spells Known", "Spells Prepared",
	"STR", "Dex", "Con", "Int", "Wis", "Cha",
	"Feats", "Skills", "Languages",
}

// colonLabelPattern matches a generic "Label:" line.
var colonLabelPattern = regexp.MustCompile(`^\w+\s*:`)

// Capturer gathers a labeled field whose value wraps over several lines.
type Capturer struct {
	stop *regexp.Regexp
}

// NewCapturer builds a Capturer that stops at any of stopLabels.
func NewCapturer(stopLabels []string) *Capturer {
	quoted := make([]string, 0, len(stopLabels))
	for _, l := range stopLabels {
		if l = strings.TrimSpace(l); l != "" {
			quoted = append(quoted, regexp.QuoteMeta(l))
		}
	}
	c := &Capturer{}
	if len(quoted) > 0 {
		c.stop = regexp.MustCompile(`(?i)^(?:` + strings.Join(quoted, "|") + `)\s`)
	}
	return c
}

// DefaultCapturer stops at FieldStartLabels.
var DefaultCapturer = NewCapturer(FieldStartLabels)

func (c *Capturer) stopsAt(line string) bool {
	if colonLabelPattern.MatchString(line) {
		return true
	}
	return c.stop != nil && c.stop.MatchString(line)
}

// Capture finds the first case-insensitive occurrence of label in body and
// joins the trimmed lines after it with single spaces, stopping before the
// first line that starts another field. It returns "" if label is absent.
func (c *Capturer) Capture(body, label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return ""
	}
	pattern := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(label) + `\s*`)
	loc := pattern.FindStringIndex(body)
	if loc == nil {
		return ""
	}

	var captured []string
	for _, line := range strings.Split(body[loc[1]:], "\n") {
		if c.stopsAt(line) {
			break
		}
		captured = append(captured, strings.TrimSpace(line))
	}
	return strings.TrimSpace(strings.Join(captured, " "))
}
