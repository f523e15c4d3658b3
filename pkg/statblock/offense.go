package statblock

import (
	"regexp"
	"strings"
)

// lineField captures "<label> <rest of line>" into field. Labels are matched
// case-sensitively: stat blocks write them title-cased, while lower-case
// occurrences ("with reach") are prose inside other values.
type lineField struct {
	field   Field
	pattern *regexp.Regexp
}

func newLineField(label string, field Field) lineField {
	return lineField{
		field:   field,
		pattern: regexp.MustCompile(regexp.QuoteMeta(label) + `\s+(.+)`),
	}
}

func (lf lineField) apply(body string, r Record) {
	if m := lf.pattern.FindStringSubmatch(body); m != nil {
		r.set(lf.field, strings.TrimSpace(m[1]))
	}
}

var offenseLineFields = []lineField{
	newLineField("Speed", FieldSpeed),
	newLineField("Space", FieldSpace),
	newLineField("Reach", FieldReach),
	newLineField("Melee", FieldMelee),
	newLineField("Ranged", FieldRanged),
	newLineField("Special Attacks", FieldSpecialAttacks),
}

var offenseMultilineFields = []Field{
	FieldSpellLikeAbilities,
	FieldSpellsKnown,
	FieldSpellsPrepared,
}

// extractOffense fills the single-line offense fields and captures the
// spell blocks, whose labels equal their field names.
func extractOffense(body string, r Record, c *Capturer) {
	for _, lf := range offenseLineFields {
		lf.apply(body, r)
	}
	for _, f := range offenseMultilineFields {
		r.set(f, c.Capture(body, string(f)))
	}
}
