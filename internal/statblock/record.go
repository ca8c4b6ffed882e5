// Package statblock parses prose monster stat blocks into typed records.
//
// A stat block is a contiguous run of semi-structured text with four
// sections (basic info, DEFENSE, OFFENSE, STATISTICS). Every field is
// extracted by an independent pattern; a pattern that does not match
// leaves the field at its default instead of failing the record.
package statblock

import "strings"

// Record is one fully parsed monster. Pointer fields are absent when the
// source text carried no recognizable value for them.
type Record struct {
	// identity
	Name string
	Link string

	// basic info
	CR         *float64
	XP         *int
	Alignment  *string
	Size       *string
	Type       *string
	Init       *int
	Senses     int
	Perception *int

	// defense
	AC         *int
	Touch      *int
	FlatFooted *int
	HP         *int
	HD         *int
	Fortitude  *int
	Reflex     *int
	Will       *int

	// offense
	Speed              int
	Burrow             int
	Climb              int
	Fly                int
	Swim               int
	HighestAttackBonus *int
	MeleeAttacksNum    int
	MeleeDmg           float64
	RangedAttacksNum   int
	RangedDmg          float64
	Space              float64
	Reach              int

	// statistics
	Strength     *int
	Dexterity    *int
	Constitution *int
	Intelligence *int
	Wisdom       *int
	Charisma     *int
	BAB          *int
	CMB          *int
	CMD          *int
	FeatsNum     int
	SkillsNum    int
}

// NewRecord returns a record with rulebook defaults applied. Creatures
// without an explicit space/reach entry occupy the standard 5 ft.
func NewRecord() Record {
	return Record{Space: 5, Reach: 5}
}

// NormalizeText rewrites source-text quirks so the extraction patterns
// only have to deal with one spelling of each construct.
func NormalizeText(text string) string {
	// non-standard dash used throughout the site
	text = strings.ReplaceAll(text, "–", "-")
	// the site writes 0.5 as "-1/2"
	text = strings.ReplaceAll(text, "-1/2", ".5")
	// recurring typo
	text = strings.ReplaceAll(text, "Xp", "XP")
	return text
}
