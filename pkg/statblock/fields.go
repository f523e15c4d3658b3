package statblock

// Field names one slot of a Record.
type Field string

const (
	FieldName               Field = "Name"
	FieldCR                 Field = "CR"
	FieldXP                 Field = "XP"
	FieldAlignment          Field = "Alignment"
	FieldSize               Field = "Size"
	FieldType               Field = "Type/(sub-type)"
	FieldClass              Field = "Class"
	FieldAlignTypeInit      Field = "Align Type Init"
	FieldSenses             Field = "Senses"
	FieldAura               Field = "Aura"
	FieldAC                 Field = "AC"
	FieldHP                 Field = "HP"
	FieldFort               Field = "Fort"
	FieldRef                Field = "Ref"
	FieldWill               Field = "Will"
	FieldDR                 Field = "DR"
	FieldSR                 Field = "SR"
	FieldImmunities         Field = "Immunities"
	FieldResistances        Field = "Resistances"
	FieldWeaknesses         Field = "Weaknesses"
	FieldDefensiveAbilities Field = "Defensive Abilities"
	FieldSpeed              Field = "Speed"
	FieldSpace              Field = "Space"
	FieldReach              Field = "Reach"
	FieldMelee              Field = "Melee"
	FieldRanged             Field = "Ranged"
	FieldSpecialAttacks     Field = "Special Attacks"
	FieldSpellLikeAbilities Field = "Spell-Like Abilities"
	FieldSpellsKnown        Field = "Spells Known"
	FieldSpellsPrepared     Field = "Spells Prepared"
	FieldSTR                Field = "STR"
	FieldDEX                Field = "DEX"
	FieldCON                Field = "CON"
	FieldINT                Field = "INT"
	FieldWIS                Field = "WIS"
	FieldCHA                Field = "CHA"
	FieldBAB                Field = "BAB"
	FieldCMB                Field = "CMB"
	FieldCMD                Field = "CMD"
	FieldFeats              Field = "Feats"
	FieldSkills             Field = "Skills"
	FieldRacialModifiers    Field = "Racial Modifiers"
	FieldLanguages          Field = "Languages"
	FieldSpecialQualities   Field = "Special Qualities"
	FieldEnvironment        Field = "Environment"
	FieldOrganization       Field = "Organization"
	FieldTreasure           Field = "Treasure"
	FieldSpecialAbilities   Field = "Special Abilities and Content"
)

// Fields is the canonical field order. Every Record carries exactly these
// keys and Render emits them in this order.
var Fields = []Field{
	FieldName,
	FieldCR,
	FieldXP,
	FieldAlignment,
	FieldSize,
	FieldType,
	FieldClass,
	FieldAlignTypeInit,
	FieldSenses,
	FieldAura,
	FieldAC,
	FieldHP,
	FieldFort,
	FieldRef,
	FieldWill,
	FieldDR,
	FieldSR,
	FieldImmunities,
	FieldResistances,
	FieldWeaknesses,
	FieldDefensiveAbilities,
	FieldSpeed,
	FieldSpace,
	FieldReach,
	FieldMelee,
	FieldRanged,
	FieldSpecialAttacks,
	FieldSpellLikeAbilities,
	FieldSpellsKnown,
	FieldSpellsPrepared,
	FieldSTR,
	FieldDEX,
	FieldCON,
	FieldINT,
	FieldWIS,
	FieldCHA,
	FieldBAB,
	FieldCMB,
	FieldCMD,
	FieldFeats,
	FieldSkills,
	FieldRacialModifiers,
	FieldLanguages,
	FieldSpecialQualities,
	FieldEnvironment,
	FieldOrganization,
	FieldTreasure,
	FieldSpecialAbilities,
}

var knownFields = func() map[Field]bool {
	m := make(map[Field]bool, len(Fields))
	for _, f := range Fields {
		m[f] = true
	}
	return m
}()

// IsField reports whether f belongs to the fixed field set.
func IsField(f Field) bool {
	return knownFields[f]
}

// Record is the extracted stat block: one string per Field, empty when the
// source text did not provide a value.
type Record map[Field]string

// NewRecord returns a Record with every field present and empty.
func NewRecord() Record {
	r := make(Record, len(Fields))
	for _, f := range Fields {
		r[f] = ""
	}
	return r
}

// Get returns the value of f, or "" for an unset or unknown field.
func (r Record) Get(f Field) string {
	return r[f]
}

// Complete reports whether r holds exactly the fixed field set.
func (r Record) Complete() bool {
	if len(r) != len(Fields) {
		return false
	}
	for f := range r {
		if !knownFields[f] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of r.
func (r Record) Clone() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// set writes v into f when f is part of the fixed set. Extractors only ever
// use the Field constants, so unknown keys are dropped rather than added.
func (r Record) set(f Field, v string) {
	if knownFields[f] {
		r[f] = v
	}
}
