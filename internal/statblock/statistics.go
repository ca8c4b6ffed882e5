package statblock

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bestiarydata/scraper/internal/feats"
)

// Statistics is the field patch produced from the STATISTICS section.
type Statistics struct {
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

var (
	abilityRes = [6]*regexp.Regexp{
		regexp.MustCompile(`Str\s*([0-9]+)`),
		regexp.MustCompile(`Dex\s*([0-9]+)`),
		regexp.MustCompile(`Con\s*([0-9]+)`),
		regexp.MustCompile(`Int\s*([0-9]+)`),
		regexp.MustCompile(`Wis\s*([0-9]+)`),
		regexp.MustCompile(`Cha\s*([0-9]+)`),
	}

	babRe = regexp.MustCompile(`Base\s*Atk\s*(0|\+[0-9]+|-[0-9]+)`)
	cmbRe = regexp.MustCompile(`CMB\s*(0|\+[0-9]+|-[0-9]+)`)
	cmdRe = regexp.MustCompile(`CMD\s*[-+]?(0|[0-9]+)`)

	featsClauseRe  = regexp.MustCompile(`(?s)Feats(.+?)Skills`)
	skillsClauseRe = regexp.MustCompile(`(?s)Skills(.+)`)
)

// maxFeatNameWords is the longest feat name in the catalog, in words.
const maxFeatNameWords = 6

// skillNames are the fixed skills counted once each when present.
// Knowledge and Craft are handled separately since every parenthesised
// variant ("Knowledge (nature)") is a distinct sub-skill instance.
var skillNames = []string{
	"Acrobatics", "Appraise", "Bluff", "Climb", "Diplomacy",
	"Disable Device", "Disguise", "Escape Artist", "Fly",
	"Handle Animal", "Heal", "Intimidate", "Linguistics",
	"Perception", "Perform", "Profession", "Ride",
	"Sense Motive", "Sleight of Hand", "Spellcraft",
	"Stealth", "Survival", "Swim", "Use Magic Device",
}

// ParseStatistics extracts ability scores, combat maneuver numbers and
// the feat/skill counts from the section text.
func ParseStatistics(text string, catalog *feats.Catalog) Statistics {
	var stats Statistics

	targets := [6]**int{
		&stats.Strength, &stats.Dexterity, &stats.Constitution,
		&stats.Intelligence, &stats.Wisdom, &stats.Charisma,
	}
	for i, re := range abilityRes {
		if m := re.FindStringSubmatch(text); m != nil {
			*targets[i] = atoiPtr(m[1])
		}
	}

	if m := babRe.FindStringSubmatch(text); m != nil {
		bab, _ := strconv.Atoi(m[1])
		stats.BAB = &bab
	}
	if m := cmbRe.FindStringSubmatch(text); m != nil {
		cmb, _ := strconv.Atoi(m[1])
		stats.CMB = &cmb
	}
	if m := cmdRe.FindStringSubmatch(text); m != nil {
		cmd, _ := strconv.Atoi(m[1])
		stats.CMD = &cmd
	}

	if m := featsClauseRe.FindStringSubmatch(text); m != nil {
		words := strings.Fields(strings.ReplaceAll(strings.TrimSpace(m[1]), ",", ""))
		stats.FeatsNum = CountFeats(words, catalog)
	}

	if m := skillsClauseRe.FindStringSubmatch(text); m != nil {
		clause := m[1]
		// every Knowledge/Craft occurrence is its own sub-skill
		stats.SkillsNum = strings.Count(clause, "Knowledge")
		stats.SkillsNum += strings.Count(clause, "Craft")
		for _, skill := range skillNames {
			if strings.Contains(clause, skill) {
				stats.SkillsNum++
			}
		}
	}

	return stats
}

// CountFeats greedily matches a run-on word list against the catalog,
// trying window lengths 1 through maxFeatNameWords. Matched words are
// consumed so a longer feat name cannot be re-counted through its parts.
// Words that never match (annotations, qualifiers) are ignored.
func CountFeats(words []string, catalog *feats.Catalog) int {
	if catalog == nil {
		return 0
	}
	remaining := append([]string(nil), words...)
	count := 0
	for length := 1; length <= maxFeatNameWords; length++ {
		var kept []string
		i := 0
		for i < len(remaining) {
			if i+length <= len(remaining) {
				candidate := strings.Join(remaining[i:i+length], " ")
				if catalog.Contains(candidate) {
					count++
					i += length
					continue
				}
			}
			kept = append(kept, remaining[i])
			i++
		}
		remaining = kept
	}
	return count
}

func (s Statistics) apply(r *Record) {
	r.Strength = s.Strength
	r.Dexterity = s.Dexterity
	r.Constitution = s.Constitution
	r.Intelligence = s.Intelligence
	r.Wisdom = s.Wisdom
	r.Charisma = s.Charisma
	r.BAB = s.BAB
	r.CMB = s.CMB
	r.CMD = s.CMD
	r.FeatsNum = s.FeatsNum
	r.SkillsNum = s.SkillsNum
}
