package statblock

import "regexp"

var (
	abilityScoresPattern = regexp.MustCompile(`Str (\d+), Dex (\d+), Con (\d+), Int (\d+), Wis (\d+), Cha (\d+)`)
	combatPattern        = regexp.MustCompile(`Base Atk \+(\d+); CMB \+(\d+); CMD (\d+)`)
)

var abilityFields = []Field{FieldSTR, FieldDEX, FieldCON, FieldINT, FieldWIS, FieldCHA}

var combatFields = []Field{FieldBAB, FieldCMB, FieldCMD}

var statisticsLineFields = []lineField{
	newLineField("Feats", FieldFeats),
	newLineField("Skills", FieldSkills),
	newLineField("Racial Modifiers", FieldRacialModifiers),
	newLineField("Languages", FieldLanguages),
	newLineField("SQ", FieldSpecialQualities),
}

// extractStatistics matches the ability score and attack lines as fixed
// literal patterns (all fields or none), then the independent line fields.
func extractStatistics(body string, r Record) {
	if m := abilityScoresPattern.FindStringSubmatch(body); m != nil {
		for i, f := range abilityFields {
			r.set(f, m[i+1])
		}
	}
	if m := combatPattern.FindStringSubmatch(body); m != nil {
		for i, f := range combatFields {
			r.set(f, m[i+1])
		}
	}
	for _, lf := range statisticsLineFields {
		lf.apply(body, r)
	}
}
