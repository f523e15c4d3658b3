package statblock

import "strings"

var ecologyLineFields = []lineField{
	newLineField("Environment", FieldEnvironment),
	newLineField("Organization", FieldOrganization),
	newLineField("Treasure", FieldTreasure),
}

var ecologyLabels = []string{"Environment", "Organization", "Treasure"}

// extractEcology fills the labeled ecology fields; every other line of the
// body lands in Special Abilities and Content.
func extractEcology(body string, r Record) {
	for _, lf := range ecologyLineFields {
		lf.apply(body, r)
	}

	var rest []string
	for _, line := range strings.Split(body, "\n") {
		if hasAnyPrefix(line, ecologyLabels) {
			continue
		}
		rest = append(rest, strings.TrimSpace(line))
	}
	r.set(FieldSpecialAbilities, strings.TrimSpace(strings.Join(rest, "\n")))
}

// extractSpecialAbilities is the fallback for blocks that carry a SPECIAL
// ABILITIES section but no ECOLOGY section.
func extractSpecialAbilities(body string, r Record) {
	var lines []string
	for _, line := range strings.Split(body, "\n") {
		lines = append(lines, strings.TrimSpace(line))
	}
	r.set(FieldSpecialAbilities, strings.TrimSpace(strings.Join(lines, "\n")))
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
