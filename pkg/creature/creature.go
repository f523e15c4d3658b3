// Package creature maps an extracted stat block onto a typed Creature:
// numeric scores, list-valued fields split into items, and a d20 combat
// actor.
package creature

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jwebster45206/creature-barn/pkg/statblock"
	"github.com/jwebster45206/d20"
)

// Namespace scopes creature IDs. The same stat block text always yields the
// same ID, so re-importing a block replaces it.
var Namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/jwebster45206/creature-barn/creature"))

// ListKind names a list-valued field stored one item per row.
type ListKind string

const (
	ListSenses             ListKind = "senses"
	ListAuras              ListKind = "auras"
	ListDefensiveAbilities ListKind = "defensive_abilities"
	ListImmunities         ListKind = "immunities"
	ListResistances        ListKind = "resistances"
	ListWeaknesses         ListKind = "weaknesses"
	ListMelee              ListKind = "melee"
	ListRanged             ListKind = "ranged"
	ListSpecialAttacks     ListKind = "special_attacks"
	ListSpellLikeAbilities ListKind = "spell_like_abilities"
	ListSpellsKnown        ListKind = "spells_known"
	ListSpellsPrepared     ListKind = "spells_prepared"
	ListFeats              ListKind = "feats"
	ListSkills             ListKind = "skills"
	ListLanguages          ListKind = "languages"
	ListSpecialQualities   ListKind = "special_qualities"
)

// listSources maps each list kind to the record field it is split from, in
// storage order.
var listSources = []struct {
	kind  ListKind
	field statblock.Field
}{
	{ListSenses, statblock.FieldSenses},
	{ListAuras, statblock.FieldAura},
	{ListDefensiveAbilities, statblock.FieldDefensiveAbilities},
	{ListImmunities, statblock.FieldImmunities},
	{ListResistances, statblock.FieldResistances},
	{ListWeaknesses, statblock.FieldWeaknesses},
	{ListMelee, statblock.FieldMelee},
	{ListRanged, statblock.FieldRanged},
	{ListSpecialAttacks, statblock.FieldSpecialAttacks},
	{ListSpellLikeAbilities, statblock.FieldSpellLikeAbilities},
	{ListSpellsKnown, statblock.FieldSpellsKnown},
	{ListSpellsPrepared, statblock.FieldSpellsPrepared},
	{ListFeats, statblock.FieldFeats},
	{ListSkills, statblock.FieldSkills},
	{ListLanguages, statblock.FieldLanguages},
	{ListSpecialQualities, statblock.FieldSpecialQualities},
}

// ListKinds returns every list kind in storage order.
func ListKinds() []ListKind {
	kinds := make([]ListKind, 0, len(listSources))
	for _, s := range listSources {
		kinds = append(kinds, s.kind)
	}
	return kinds
}

// abilityKeys are the d20 attribute names for the six ability scores.
var abilityKeys = []struct {
	key   string
	field statblock.Field
}{
	{"strength", statblock.FieldSTR},
	{"dexterity", statblock.FieldDEX},
	{"constitution", statblock.FieldCON},
	{"intelligence", statblock.FieldINT},
	{"wisdom", statblock.FieldWIS},
	{"charisma", statblock.FieldCHA},
}

// Creature is the typed view of one stat block.
type Creature struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CR        string `json:"cr,omitempty"`
	XP        string `json:"xp,omitempty"`
	Alignment string `json:"alignment,omitempty"`
	Size      string `json:"size,omitempty"`
	Type      string `json:"type,omitempty"`
	Class     string `json:"class,omitempty"`

	AC           int    `json:"ac"`
	TouchAC      int    `json:"touch_ac"`
	FlatFootedAC int    `json:"flat_footed_ac"`
	HP           int    `json:"hp"`
	HitDice      string `json:"hit_dice,omitempty"`
	Fort         int    `json:"fort"`
	Ref          int    `json:"ref"`
	Will         int    `json:"will"`

	Abilities map[string]int `json:"abilities,omitempty"` // "strength": 11
	BAB       int            `json:"bab"`
	CMB       int            `json:"cmb"`
	CMD       int            `json:"cmd"`

	Speed        string `json:"speed,omitempty"`
	Environment  string `json:"environment,omitempty"`
	Organization string `json:"organization,omitempty"`
	Treasure     string `json:"treasure,omitempty"`
	Content      string `json:"content,omitempty"`

	Lists  map[ListKind][]string `json:"lists,omitempty"`
	Record statblock.Record      `json:"record"`
}

// IDFor returns the creature ID for a raw stat block text.
func IDFor(text string) string {
	return uuid.NewSHA1(Namespace, []byte(statblock.Normalize(text))).String()
}

// FromText extracts text and maps the result.
func FromText(text string) *Creature {
	return FromRecord(IDFor(text), statblock.Extract(text))
}

var (
	touchPattern      = regexp.MustCompile(`(?i)touch\s+([+\-]?\d+)`)
	flatFootedPattern = regexp.MustCompile(`(?i)flat-footed\s+([+\-]?\d+)`)
	hitDicePattern    = regexp.MustCompile(`\(([^)]*)\)`)
	attackPattern     = regexp.MustCompile(`^(.*?)\s+([+\-]\d+)`)
)

// FromRecord maps rec onto a Creature with the given ID. Values that do not
// parse as numbers map to zero; the raw text stays in Record.
func FromRecord(id string, rec statblock.Record) *Creature {
	c := &Creature{
		ID:           id,
		Name:         rec.Get(statblock.FieldName),
		CR:           rec.Get(statblock.FieldCR),
		XP:           rec.Get(statblock.FieldXP),
		Alignment:    rec.Get(statblock.FieldAlignment),
		Size:         rec.Get(statblock.FieldSize),
		Type:         rec.Get(statblock.FieldType),
		Class:        rec.Get(statblock.FieldClass),
		AC:           leadingInt(rec.Get(statblock.FieldAC)),
		HP:           leadingInt(rec.Get(statblock.FieldHP)),
		Fort:         leadingInt(rec.Get(statblock.FieldFort)),
		Ref:          leadingInt(rec.Get(statblock.FieldRef)),
		Will:         leadingInt(rec.Get(statblock.FieldWill)),
		BAB:          leadingInt(rec.Get(statblock.FieldBAB)),
		CMB:          leadingInt(rec.Get(statblock.FieldCMB)),
		CMD:          leadingInt(rec.Get(statblock.FieldCMD)),
		Speed:        rec.Get(statblock.FieldSpeed),
		Environment:  rec.Get(statblock.FieldEnvironment),
		Organization: rec.Get(statblock.FieldOrganization),
		Treasure:     rec.Get(statblock.FieldTreasure),
		Content:      rec.Get(statblock.FieldSpecialAbilities),
		Lists:        make(map[ListKind][]string),
		Record:       rec.Clone(),
	}

	if m := touchPattern.FindStringSubmatch(rec.Get(statblock.FieldAC)); m != nil {
		c.TouchAC = leadingInt(m[1])
	}
	if m := flatFootedPattern.FindStringSubmatch(rec.Get(statblock.FieldAC)); m != nil {
		c.FlatFootedAC = leadingInt(m[1])
	}
	if m := hitDicePattern.FindStringSubmatch(rec.Get(statblock.FieldHP)); m != nil {
		c.HitDice = strings.TrimSpace(m[1])
	}

	for _, a := range abilityKeys {
		v := rec.Get(a.field)
		if v == "" {
			continue
		}
		if c.Abilities == nil {
			c.Abilities = make(map[string]int)
		}
		c.Abilities[a.key] = leadingInt(v)
	}

	for _, s := range listSources {
		if items := SplitList(rec.Get(s.field)); len(items) > 0 {
			c.Lists[s.kind] = items
		}
	}
	return c
}

// AttackBonuses returns the first attack bonus of each melee and ranged
// entry, keyed by attack name ("longsword": 9).
func (c *Creature) AttackBonuses() map[string]int {
	mods := make(map[string]int)
	for _, kind := range []ListKind{ListMelee, ListRanged} {
		for _, item := range c.Lists[kind] {
			m := attackPattern.FindStringSubmatch(item)
			if m == nil {
				continue
			}
			name := strings.ToLower(strings.TrimSpace(m[1]))
			if _, seen := mods[name]; !seen {
				mods[name] = leadingInt(m[2])
			}
		}
	}
	return mods
}

// Actor builds a d20 combat actor from the creature's HP, AC, ability
// scores and attack bonuses.
func (c *Creature) Actor() (*d20.Actor, error) {
	if c == nil {
		return nil, fmt.Errorf("creature cannot be nil")
	}
	attrs := make(map[string]int, len(c.Abilities))
	for k, v := range c.Abilities {
		attrs[k] = v
	}
	actor, err := d20.NewActor(c.ID).
		WithHP(c.HP).
		WithAC(c.AC).
		WithAttributes(attrs).
		WithCombatModifiers(c.AttackBonuses()).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build actor for %q: %w", c.Name, err)
	}
	return actor, nil
}

// SplitList splits a field value into items on commas and semicolons that
// sit outside parentheses. Items are trimmed and empty items dropped.
func SplitList(s string) []string {
	var (
		items []string
		depth int
		start int
	)
	flush := func(end int) {
		if item := strings.TrimSpace(s[start:end]); item != "" {
			items = append(items, item)
		}
	}
	for i, r := range s {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		case ',', ';':
			if depth == 0 {
				flush(i)
				start = i + 1
			}
		}
	}
	flush(len(s))
	return items
}

// leadingInt parses the signed integer at the start of s, ignoring a
// leading "+" and any text after the digits. It returns 0 when s does not
// start with a number.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(s[:end], "+"))
	if err != nil {
		return 0
	}
	return n
}
