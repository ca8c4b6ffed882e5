package statblock

import (
	"math"
	"regexp"
	"strconv"
)

// AttackRoute is one parsed attack string, e.g. "bite +6 (1d4+2/19-20)".
// AvgDmg is the expected damage of a single attack with critical hits
// folded in proportionally to their chance; FullDmg is AvgDmg times the
// number of attacks in the routine.
type AttackRoute struct {
	AttacksNum   int
	HighestBonus int
	AvgDmg       float64
	FullDmg      float64
}

var (
	attackLabelRe = regexp.MustCompile(`melee|Melee|ranged|Ranged|touch`)

	// slash-separated bonus run directly before the damage parenthetical
	bonusRunRe = regexp.MustCompile(`([0-9+\-/]+)\s+\(`)
	// fallback for misordered strings like "+1 longsword +6/+1 (...)" where
	// the run sits before a trailing name token instead of the parenthesis
	bonusRunLooseRe = regexp.MustCompile(`([0-9+\-/]+)\s*[a-zA-Z\-]+\s*\(`)
	signedBonusRe   = regexp.MustCompile(`\+[0-9]+|-[0-9]+`)
	leadingCountRe  = regexp.MustCompile(`^[0-9]+`)

	parentheticalRe = regexp.MustCompile(`(?s)\((.+)`)
	damageSpecRe    = regexp.MustCompile(`(?s)([0-9]+d[0-9]+[+\-][0-9]+)(.*)|([0-9]+d[0-9]+)(.*)`)
	diceRe          = regexp.MustCompile(`([0-9]+)d([0-9]+)([+\-][0-9]+|)`)
	bonusDiceRe     = regexp.MustCompile(`(\+|plus)\s*([0-9]+)d([0-9]+)`)

	critRangeRe      = regexp.MustCompile(`(1[0-9])-20`)
	critMultiplierRe = regexp.MustCompile(`x[0-9]`)
)

// critInfo parses a critical annotation like "19-20/x3" into a hit chance
// and damage multiplier. A bare threat range of 20 has a 5% chance; wider
// ranges add 5% per point. Absent pieces default to 20 and x2.
func critInfo(text string) (chance float64, multiplier int) {
	chance, multiplier = 0.05, 2
	if text == "" {
		return chance, multiplier
	}

	if m := critRangeRe.FindStringSubmatch(text); m != nil {
		lower, _ := strconv.Atoi(m[1])
		chance = math.Round(float64(20-lower+1)*0.05*100) / 100
	}
	if m := critMultiplierRe.FindString(text); m != "" {
		multiplier, _ = strconv.Atoi(m[1:])
	}
	return chance, multiplier
}

// ParseAttack parses a single cleaned attack-route string of the form
// "NAME +X/+Y/... (NdM+B/crit)". A string in which no bonus run can be
// located at all yields a zeroed route that contributes nothing.
func ParseAttack(text string) AttackRoute {
	var route AttackRoute

	text = attackLabelRe.ReplaceAllString(text, "")

	bonuses := bonusRunRe.FindStringSubmatch(text)
	if bonuses == nil {
		bonuses = bonusRunLooseRe.FindStringSubmatch(text)
	}
	if bonuses == nil {
		return route
	}

	run := bonuses[1]
	route.AttacksNum = 1
	for _, c := range run {
		if c == '/' {
			route.AttacksNum++
		}
	}
	// bonus runs are pre-sorted descending, so the first value is the best
	if first := signedBonusRe.FindString(run); first != "" {
		route.HighestBonus, _ = strconv.Atoi(first)
	}

	if route.AttacksNum == 1 {
		// natural attacks denote multiplicity by a count before the name,
		// e.g. "2 claws +4 (1d6+1)"
		if count := leadingCountRe.FindString(text); count != "" {
			route.AttacksNum, _ = strconv.Atoi(count)
		}
	}

	if par := parentheticalRe.FindStringSubmatch(text); par != nil {
		effects := par[1]
		if spec := damageSpecRe.FindStringSubmatch(effects); spec != nil {
			damage, remainder := spec[1], spec[2]
			if damage == "" {
				damage, remainder = spec[3], spec[4]
			}

			dice := diceRe.FindStringSubmatch(damage)
			dieNum, _ := strconv.Atoi(dice[1])
			dieSize, _ := strconv.Atoi(dice[2])
			dmgBonus := 0
			if dice[3] != "" {
				dmgBonus, _ = strconv.Atoi(dice[3])
			}

			// expectation of NdM+B: dice are uniform on [1, M]
			avgDmg := float64(dieNum)*(1+float64(dieSize))/2 + float64(dmgBonus)

			// critical hits behave like extra attacks that land with the
			// threat-range probability
			chance, multiplier := critInfo(remainder)
			avgDmg += chance * avgDmg * float64(multiplier-1)
			// nearest 0.5, ties to even like the upstream dataset
			avgDmg = math.RoundToEven(avgDmg*2) / 2

			// rider damage ("+1d6" / "plus 2d6") is flat bonus damage and
			// is not multiplied on a critical hit
			for _, m := range bonusDiceRe.FindAllStringSubmatch(effects, -1) {
				n, _ := strconv.Atoi(m[2])
				size, _ := strconv.Atoi(m[3])
				avgDmg += float64(n) * (1 + float64(size)) / 2
			}

			route.AvgDmg = avgDmg
		}
	}

	route.FullDmg = float64(route.AttacksNum) * route.AvgDmg
	return route
}
