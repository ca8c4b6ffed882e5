package statblock

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Offense is the field patch produced from the OFFENSE section.
type Offense struct {
	Speed  int
	Burrow int
	Climb  int
	Fly    int
	Swim   int

	HighestAttackBonus *int
	MeleeAttacksNum    int
	MeleeDmg           float64
	RangedAttacksNum   int
	RangedDmg          float64

	Space *float64
	Reach *int
}

var (
	speedRe = regexp.MustCompile(`Speed\s+([0-9]+)`)
	spaceRe = regexp.MustCompile(`Space\s+([0-9.]+)`)
	reachRe = regexp.MustCompile(`Reach\s+([0-9]+)`)

	movementRes = map[string]*regexp.Regexp{
		"burrow": regexp.MustCompile(`burrow\s+([0-9]+)`),
		"climb":  regexp.MustCompile(`climb\s+([0-9]+)`),
		"fly":    regexp.MustCompile(`fly\s+([0-9]+)`),
		"swim":   regexp.MustCompile(`swim\s+([0-9]+)`),
	}

	// the attack clause runs from the first Melee/Ranged label to the next
	// section-introducing keyword
	attackClauseRe = regexp.MustCompile(`(?s)(Melee|Ranged)(.*)(Space|Reach|Special Attacks|Spell-Like Abilities)`)
	// candidate routes must carry a dice expression
	routeDiceRe  = regexp.MustCompile(`(?s).+\([0-9]+d.`)
	routeCleanRe = regexp.MustCompile(`Melee |Ranged | and | or `)
)

// ParseOffense extracts movement speeds, the attack aggregates and the
// space/reach entries from the section text.
func ParseOffense(text string) Offense {
	var off Offense

	if m := speedRe.FindStringSubmatch(text); m != nil {
		off.Speed, _ = strconv.Atoi(m[1])
	}
	for name, re := range movementRes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, _ := strconv.Atoi(m[1])
		switch name {
		case "burrow":
			off.Burrow = v
		case "climb":
			off.Climb = v
		case "fly":
			off.Fly = v
		case "swim":
			off.Swim = v
		}
	}

	parseAttackClause(text, &off)

	if m := spaceRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			space := math.Round(v*10) / 10
			off.Space = &space
		}
	}
	if m := reachRe.FindStringSubmatch(text); m != nil {
		off.Reach = atoiPtr(m[1])
	}

	return off
}

// parseAttackClause splits the melee/ranged clause into candidate attack
// routes, records the AND/OR connective of each route to its predecessor,
// resolves the connectives per group and fills the attack aggregates.
func parseAttackClause(text string, off *Offense) {
	clause := attackClauseRe.FindString(text)
	if clause == "" {
		return
	}

	var candidates []string
	for _, part := range strings.Split(clause, ")") {
		if routeDiceRe.MatchString(part) {
			candidates = append(candidates, part)
		}
	}
	// creatures with only non-standard attacks produce no candidates
	if len(candidates) == 0 {
		return
	}

	// routes are melee until the first one labelled Ranged
	rangedStart := len(candidates)
	for i, c := range candidates {
		if strings.Contains(c, "Ranged") {
			rangedStart = i
			break
		}
	}

	meleeRoutes, meleeLogic := parseRouteGroup(candidates[:rangedStart])
	rangedRoutes, rangedLogic := parseRouteGroup(candidates[rangedStart:])

	// highest bonus across every route, melee and ranged, before AND/OR
	// resolution; an OR-ed alternative that loses on damage may still
	// carry the best bonus
	highest := math.MinInt32
	for _, r := range meleeRoutes {
		if r.HighestBonus > highest {
			highest = r.HighestBonus
		}
	}
	for _, r := range rangedRoutes {
		if r.HighestBonus > highest {
			highest = r.HighestBonus
		}
	}
	off.HighestAttackBonus = &highest

	meleeRoutes = ResolveAttackLogic(meleeRoutes, meleeLogic)
	rangedRoutes = ResolveAttackLogic(rangedRoutes, rangedLogic)

	var meleeFull []float64
	for _, r := range meleeRoutes {
		off.MeleeAttacksNum += r.AttacksNum
		meleeFull = append(meleeFull, r.FullDmg)
	}
	off.MeleeDmg = math.Max(median(meleeFull), 0)

	var rangedPerAttack []float64
	for _, r := range rangedRoutes {
		off.RangedAttacksNum += r.AttacksNum
		for i := 0; i < r.AttacksNum; i++ {
			rangedPerAttack = append(rangedPerAttack, r.AvgDmg)
		}
	}
	off.RangedDmg = math.Max(median(rangedPerAttack), 0)
}

// parseRouteGroup detects each candidate's connective, strips the labels
// and connective words, and parses the remaining route strings.
func parseRouteGroup(candidates []string) ([]AttackRoute, []string) {
	if len(candidates) == 0 {
		return nil, nil
	}
	routes := make([]AttackRoute, 0, len(candidates))
	logic := make([]string, 0, len(candidates))
	for _, c := range candidates {
		switch {
		case strings.Contains(c, "or "):
			logic = append(logic, ConnectiveOr)
		case strings.Contains(c, "and "):
			logic = append(logic, ConnectiveAnd)
		default:
			logic = append(logic, ConnectiveNone)
		}
		cleaned := strings.TrimSpace(routeCleanRe.ReplaceAllString(c, ""))
		routes = append(routes, ParseAttack(cleaned))
	}
	return routes, logic
}

func (o Offense) apply(r *Record) {
	r.Speed = o.Speed
	r.Burrow = o.Burrow
	r.Climb = o.Climb
	r.Fly = o.Fly
	r.Swim = o.Swim
	r.HighestAttackBonus = o.HighestAttackBonus
	r.MeleeAttacksNum = o.MeleeAttacksNum
	r.MeleeDmg = o.MeleeDmg
	r.RangedAttacksNum = o.RangedAttacksNum
	r.RangedDmg = o.RangedDmg
	if o.Space != nil {
		r.Space = *o.Space
	}
	if o.Reach != nil {
		r.Reach = *o.Reach
	}
}

// median returns the middle value of the list, averaging the two central
// values for even lengths. Empty lists yield 0.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
