package statblock

import (
	"regexp"
	"strings"
)

// clauseRule classifies one DEFENSE clause. Rules are tried in order and
// the first whose keyword prefixes the clause claims it.
type clauseRule struct {
	keyword string // upper-case prefix
	field   Field
	// spaced rules need whitespace between keyword and value ("DR 5/magic");
	// a clause that has the prefix but not the space is consumed unset.
	spaced bool
}

var defenseRules = []clauseRule{
	{keyword: "DR", field: FieldDR, spaced: true},
	{keyword: "SR", field: FieldSR, spaced: true},
	{keyword: "IMMUNE", field: FieldImmunities},
	{keyword: "RESISTANCES", field: FieldResistances},
	{keyword: "RESIST", field: FieldResistances},
	{keyword: "WEAKNESSES", field: FieldWeaknesses},
	{keyword: "DEFENSIVE ABILITIES", field: FieldDefensiveAbilities},
	{keyword: "AC", field: FieldAC},
	{keyword: "HP", field: FieldHP},
}

var saveFields = map[string]Field{
	"fort": FieldFort,
	"ref":  FieldRef,
	"will": FieldWill,
}

var savePattern = regexp.MustCompile(`(?i)(Fort|Ref|Will)\s*([+\-]?\d+)`)

// extractDefense splits the DEFENSE body into semicolon clauses and applies
// defenseRules; unclaimed clauses are scanned for Fort/Ref/Will. Later
// values overwrite earlier ones.
func extractDefense(body string, r Record) {
	for _, line := range strings.Split(body, "\n") {
		for _, clause := range strings.Split(line, ";") {
			clause = strings.TrimSpace(clause)
			if clause == "" {
				continue
			}
			if applyDefenseRule(clause, r) {
				continue
			}
			for _, m := range savePattern.FindAllStringSubmatch(clause, -1) {
				r.set(saveFields[strings.ToLower(m[1])], m[2])
			}
		}
	}
}

// applyDefenseRule reports whether a rule claimed the clause.
func applyDefenseRule(clause string, r Record) bool {
	for _, rule := range defenseRules {
		n := len(rule.keyword)
		if len(clause) < n || !strings.EqualFold(clause[:n], rule.keyword) {
			continue
		}
		rest := clause[n:]
		if rule.spaced {
			trimmed := strings.TrimLeft(rest, " \t")
			if len(trimmed) == len(rest) || trimmed == "" {
				return true
			}
		}
		r.set(rule.field, strings.TrimSpace(rest))
		return true
	}
	return false
}
