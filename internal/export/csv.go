// Package export writes parsed records to a tabular dataset.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/bestiarydata/scraper/internal/statblock"
)

// Null is the representation of absent values in the output.
const Null = "NULL"

// Columns is the output column order.
var Columns = []string{
	"name", "link",
	"cr", "xp", "alignment", "size", "type", "init", "senses", "perception",
	"ac", "touch", "flat_footed", "hp", "hd", "fortitude", "reflex", "will",
	"speed", "burrow", "climb", "fly", "swim",
	"highest_attack_bonus",
	"melee_attacks_num", "ranged_attacks_num", "melee_dmg", "ranged_dmg",
	"space", "reach",
	"strength", "dexterity", "constitution", "intelligence", "wisdom", "charisma",
	"bab", "cmb", "cmd", "feats_num", "skills_num",
}

// WriteCSV writes a header plus one row per record.
func WriteCSV(w io.Writer, records []statblock.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range records {
		if err := cw.Write(Row(&records[i])); err != nil {
			return fmt.Errorf("write record %q: %w", records[i].Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Row renders one record in Columns order, with Null for absent fields.
func Row(r *statblock.Record) []string {
	return []string{
		r.Name, r.Link,
		fmtFloatPtr(r.CR), fmtIntPtr(r.XP), fmtStrPtr(r.Alignment),
		fmtStrPtr(r.Size), fmtStrPtr(r.Type), fmtIntPtr(r.Init),
		strconv.Itoa(r.Senses), fmtIntPtr(r.Perception),
		fmtIntPtr(r.AC), fmtIntPtr(r.Touch), fmtIntPtr(r.FlatFooted),
		fmtIntPtr(r.HP), fmtIntPtr(r.HD),
		fmtIntPtr(r.Fortitude), fmtIntPtr(r.Reflex), fmtIntPtr(r.Will),
		strconv.Itoa(r.Speed), strconv.Itoa(r.Burrow), strconv.Itoa(r.Climb),
		strconv.Itoa(r.Fly), strconv.Itoa(r.Swim),
		fmtIntPtr(r.HighestAttackBonus),
		strconv.Itoa(r.MeleeAttacksNum), strconv.Itoa(r.RangedAttacksNum),
		fmtFloat(r.MeleeDmg), fmtFloat(r.RangedDmg),
		fmtFloat(r.Space), strconv.Itoa(r.Reach),
		fmtIntPtr(r.Strength), fmtIntPtr(r.Dexterity), fmtIntPtr(r.Constitution),
		fmtIntPtr(r.Intelligence), fmtIntPtr(r.Wisdom), fmtIntPtr(r.Charisma),
		fmtIntPtr(r.BAB), fmtIntPtr(r.CMB), fmtIntPtr(r.CMD),
		strconv.Itoa(r.FeatsNum), strconv.Itoa(r.SkillsNum),
	}
}

func fmtIntPtr(v *int) string {
	if v == nil {
		return Null
	}
	return strconv.Itoa(*v)
}

func fmtFloatPtr(v *float64) string {
	if v == nil {
		return Null
	}
	return fmtFloat(*v)
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func fmtStrPtr(v *string) string {
	if v == nil {
		return Null
	}
	return *v
}
