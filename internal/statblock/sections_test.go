package statblock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bestiarydata/scraper/internal/feats"
)

func TestParseBasicInfo(t *testing.T) {
	text := "CR 1/2 (XP 200)\nNE Medium outsider (native)\n" +
		"Init +3; Senses darkvision 60 ft.; Perception +5\n"

	info := ParseBasicInfo(text)

	require.NotNil(t, info.CR)
	assert.InDelta(t, 0.5, *info.CR, 1e-9)
	require.NotNil(t, info.XP)
	assert.Equal(t, 200, *info.XP)
	require.NotNil(t, info.Alignment)
	assert.Equal(t, "NE", *info.Alignment)
	require.NotNil(t, info.Size)
	assert.Equal(t, "Medium", *info.Size)
	require.NotNil(t, info.Type)
	assert.Equal(t, "Outsider", *info.Type)
	require.NotNil(t, info.Init)
	assert.Equal(t, 3, *info.Init)
	assert.Equal(t, 1, info.Senses)
	require.NotNil(t, info.Perception)
	assert.Equal(t, 5, *info.Perception)
}

func TestParseBasicInfoFractionalCR(t *testing.T) {
	info := ParseBasicInfo("CR 1/8 (XP 50)\nN Diminutive animal\nInit +2\n")
	require.NotNil(t, info.CR)
	assert.InDelta(t, 0.125, *info.CR, 1e-9)
	require.NotNil(t, info.Type)
	assert.Equal(t, "Animal", *info.Type)
}

func TestParseBasicInfoLargeXP(t *testing.T) {
	info := ParseBasicInfo("CR 16 (XP 76,800)\nNG Large outsider\n")
	require.NotNil(t, info.CR)
	assert.InDelta(t, 16.0, *info.CR, 1e-9)
	require.NotNil(t, info.XP)
	assert.Equal(t, 76800, *info.XP)
}

func TestParseBasicInfoSensesClause(t *testing.T) {
	text := "CR 16 (XP 76,800)\nNG Large outsider\nInit +8; " +
		"Senses darkvision 60 ft., detect evil, detect snares and pits, " +
		"low-light vision, true seeing; Perception +27\n"
	info := ParseBasicInfo(text)
	assert.Equal(t, 5, info.Senses)
}

func TestParseBasicInfoSizeTypo(t *testing.T) {
	info := ParseBasicInfo("CR 1/8 (XP 50)\nN Diminuitive animal\n")
	require.NotNil(t, info.Size)
	assert.Equal(t, "Diminutive", *info.Size)
}

func TestParseBasicInfoEmpty(t *testing.T) {
	info := ParseBasicInfo("no markers here")
	assert.Nil(t, info.CR)
	assert.Nil(t, info.XP)
	assert.Nil(t, info.Init)
	assert.Zero(t, info.Senses)
}

func TestSumFractions(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"3", 3, true},
		{"1/2", 0.5, true},
		{"1/8", 0.125, true},
		{".5", 0.5, true},
		{"10 1/2", 10.5, true},
		{"", 0, false},
		{"beyond", 0, false},
		{"1/0", 0, false},
	}
	for _, tt := range tests {
		got, ok := sumFractions(tt.raw)
		assert.Equal(t, tt.ok, ok, "raw %q", tt.raw)
		if tt.ok {
			assert.InDelta(t, tt.want, got, 1e-9, "raw %q", tt.raw)
		}
	}
}

func TestParseDefense(t *testing.T) {
	text := "\nAC 16, touch 13, flat-footed 13 (+3 armor, +3 Dex)\n" +
		"hp 10 (1d8+2)\nFort +2, Ref +5, Will +1\n" +
		"Resist cold 5, electricity 5, fire 5\n"

	def := ParseDefense(text)

	require.NotNil(t, def.AC)
	assert.Equal(t, 16, *def.AC)
	require.NotNil(t, def.Touch)
	assert.Equal(t, 13, *def.Touch)
	require.NotNil(t, def.FlatFooted)
	assert.Equal(t, 13, *def.FlatFooted)
	require.NotNil(t, def.HP)
	assert.Equal(t, 10, *def.HP)
	require.NotNil(t, def.HD)
	assert.Equal(t, 1, *def.HD)
	require.NotNil(t, def.Fortitude)
	assert.Equal(t, 2, *def.Fortitude)
	require.NotNil(t, def.Reflex)
	assert.Equal(t, 5, *def.Reflex)
	require.NotNil(t, def.Will)
	assert.Equal(t, 1, *def.Will)
}

func TestParseDefenseNegativeSaves(t *testing.T) {
	def := ParseDefense("AC 16, touch 16, flat-footed 14\nhp 2 (1d8-2)\nFort 0, Ref +4, Will -2\n")
	require.NotNil(t, def.Fortitude)
	assert.Equal(t, 0, *def.Fortitude)
	require.NotNil(t, def.Will)
	assert.Equal(t, -2, *def.Will)
}

func TestParseDefenseEmpty(t *testing.T) {
	def := ParseDefense("nothing defensive")
	assert.Nil(t, def.AC)
	assert.Nil(t, def.HP)
	assert.Nil(t, def.Will)
}

func TestParseOffense(t *testing.T) {
	text := "\nSpeed 30 ft.\n" +
		"Melee short sword +3 (1d6+1/19-20)\n" +
		"Ranged light crossbow +3 (1d8/19-20)\n" +
		"Spell-Like Abilities (CL 1st)\n"

	off := ParseOffense(text)

	assert.Equal(t, 30, off.Speed)
	require.NotNil(t, off.HighestAttackBonus)
	assert.Equal(t, 3, *off.HighestAttackBonus)
	assert.Equal(t, 1, off.MeleeAttacksNum)
	assert.InDelta(t, 5.0, off.MeleeDmg, 1e-9)
	assert.Equal(t, 1, off.RangedAttacksNum)
	assert.InDelta(t, 5.0, off.RangedDmg, 1e-9)
	assert.Nil(t, off.Space)
	assert.Nil(t, off.Reach)
}

func TestParseOffenseMovementModes(t *testing.T) {
	off := ParseOffense("Speed 5 ft., burrow 10 ft., climb 20 ft., fly 40 ft. (good), swim 30 ft.\nSpace 1 ft.; Reach 0 ft.\n")
	assert.Equal(t, 5, off.Speed)
	assert.Equal(t, 10, off.Burrow)
	assert.Equal(t, 20, off.Climb)
	assert.Equal(t, 40, off.Fly)
	assert.Equal(t, 30, off.Swim)
	require.NotNil(t, off.Space)
	assert.InDelta(t, 1.0, *off.Space, 1e-9)
	require.NotNil(t, off.Reach)
	assert.Equal(t, 0, *off.Reach)
}

func TestParseOffenseAndRoutesMerge(t *testing.T) {
	text := "Speed 40 ft.\nMelee bite +6 (1d6+3) and 2 claws +6 (1d4+3)\nSpace 5 ft.; Reach 5 ft.\n"
	off := ParseOffense(text)

	require.NotNil(t, off.HighestAttackBonus)
	assert.Equal(t, 6, *off.HighestAttackBonus)
	assert.Equal(t, 3, off.MeleeAttacksNum)
	// merged routine: 7.0 bite + 2*6.0 claws full damage
	assert.InDelta(t, 19.0, off.MeleeDmg, 1e-9)
}

func TestParseOffenseOrRoutesKeepDominant(t *testing.T) {
	text := "Speed 30 ft.\nMelee greatsword +7 (2d6+4) or 2 slams +5 (1d4+3)\nSpace 5 ft.; Reach 5 ft.\n"
	off := ParseOffense(text)

	// the slam routine deals 12.0 against the greatsword's 11.5 and wins,
	// but the discarded route still holds the best bonus
	require.NotNil(t, off.HighestAttackBonus)
	assert.Equal(t, 7, *off.HighestAttackBonus)
	assert.Equal(t, 2, off.MeleeAttacksNum)
	assert.InDelta(t, 12.0, off.MeleeDmg, 1e-9)
}

func TestParseOffenseDamageClampedAtZero(t *testing.T) {
	off := ParseOffense("Speed 5 ft., fly 40 ft. (good)\nMelee bite +6 (1d3-4)\nSpace 1 ft.; Reach 0 ft.\n")
	assert.Equal(t, 1, off.MeleeAttacksNum)
	assert.Zero(t, off.MeleeDmg)
}

func TestParseOffenseNoAttacks(t *testing.T) {
	off := ParseOffense("Speed 20 ft.\nMelee constrict (grab)\nSpace 5 ft.; Reach 5 ft.\n")
	assert.Nil(t, off.HighestAttackBonus)
	assert.Zero(t, off.MeleeAttacksNum)
	assert.Zero(t, off.RangedAttacksNum)
}

func TestParseStatistics(t *testing.T) {
	catalog := feats.New([]string{"Weapon Finesse", "Dodge"})
	text := "\nStr 13, Dex 17, Con 14, Int 12, Wis 12, Cha 6\n" +
		"Base Atk +0; CMB +1; CMD 14\n" +
		"Feats Weapon Finesse\n" +
		"Skills Bluff +2, Diplomacy +2, Perception +5, Stealth +7\n" +
		"Languages Common, Infernal\n"

	stats := ParseStatistics(text, catalog)

	require.NotNil(t, stats.Strength)
	assert.Equal(t, 13, *stats.Strength)
	require.NotNil(t, stats.Dexterity)
	assert.Equal(t, 17, *stats.Dexterity)
	require.NotNil(t, stats.Constitution)
	assert.Equal(t, 14, *stats.Constitution)
	require.NotNil(t, stats.Intelligence)
	assert.Equal(t, 12, *stats.Intelligence)
	require.NotNil(t, stats.Wisdom)
	assert.Equal(t, 12, *stats.Wisdom)
	require.NotNil(t, stats.Charisma)
	assert.Equal(t, 6, *stats.Charisma)
	require.NotNil(t, stats.BAB)
	assert.Equal(t, 0, *stats.BAB)
	require.NotNil(t, stats.CMB)
	assert.Equal(t, 1, *stats.CMB)
	require.NotNil(t, stats.CMD)
	assert.Equal(t, 14, *stats.CMD)
	assert.Equal(t, 1, stats.FeatsNum)
	assert.Equal(t, 4, stats.SkillsNum)
}

func TestParseStatisticsNegativeCMB(t *testing.T) {
	stats := ParseStatistics("Str 1, Dex 15, Con 6, Int 2, Wis 14, Cha 5\nBase Atk +0; CMB -2; CMD 3\n", nil)
	require.NotNil(t, stats.CMB)
	assert.Equal(t, -2, *stats.CMB)
	require.NotNil(t, stats.CMD)
	assert.Equal(t, 3, *stats.CMD)
}

func TestParseStatisticsKnowledgeAndCraftSubSkills(t *testing.T) {
	catalog := feats.New(nil)
	text := "Str 10\nBase Atk +1; CMB +1; CMD 11\nFeats Toughness\n" +
		"Skills Craft (alchemy) +8, Craft (traps) +8, Knowledge (arcana) +10, " +
		"Knowledge (planes) +10, Spellcraft +9\n"
	stats := ParseStatistics(text, catalog)
	assert.Equal(t, 5, stats.SkillsNum)
}

func TestCountFeatsGreedyWindow(t *testing.T) {
	catalog := feats.New([]string{
		"Blind-Fight", "Cleave", "Great Cleave", "Great Fortitude", "Iron Will",
	})

	tests := []struct {
		name  string
		words []string
		want  int
	}{
		{
			name:  "short names before long ones",
			words: []string{"Blind-Fight", "Cleave", "Great", "Fortitude"},
			want:  3,
		},
		{
			name:  "two word name matched as a window",
			words: []string{"Iron", "Will"},
			want:  1,
		},
		{
			name:  "shorter name consumes a word of a longer one",
			words: []string{"Great", "Cleave", "Iron", "Will"},
			want:  2,
		},
		{
			name:  "annotations ignored",
			words: []string{"Cleave", "B", "Iron", "Will"},
			want:  2,
		},
		{
			name:  "nothing known",
			words: []string{"Run", "Endurance"},
			want:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountFeats(tt.words, catalog))
		})
	}
}

func TestCountFeatsNilCatalog(t *testing.T) {
	assert.Zero(t, CountFeats([]string{"Dodge"}, nil))
}
