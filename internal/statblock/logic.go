package statblock

// Connectives relating an attack route to its predecessor in the same
// melee/ranged group.
const (
	ConnectiveAnd  = "and"
	ConnectiveOr   = "or"
	ConnectiveNone = ""
)

// ResolveAttackLogic reduces a list of attack routes by the AND/OR
// connectives between them. AND-ed routes are all part of one routine and
// merge into a single route; OR-ed routes are alternatives of which the
// dominant one survives. AND binds tighter than OR, so the AND pass has
// to fully reduce before alternatives are compared.
//
// logic[i] is the connective between routes[i-1] and routes[i]. Both
// passes walk right to left so deletions never shift a not-yet-visited
// index.
func ResolveAttackLogic(routes []AttackRoute, logic []string) []AttackRoute {
	if len(routes) == 0 {
		return nil
	}
	routes = append([]AttackRoute(nil), routes...)
	logic = append([]string(nil), logic...)

	for i := len(routes) - 1; i > 0; i-- {
		if logic[i] != ConnectiveAnd {
			continue
		}
		prev := &routes[i-1]
		curr := routes[i]
		if curr.HighestBonus > prev.HighestBonus {
			prev.HighestBonus = curr.HighestBonus
		}
		prev.AvgDmg += curr.AvgDmg
		prev.AttacksNum += curr.AttacksNum
		prev.FullDmg += curr.FullDmg

		routes = append(routes[:i], routes[i+1:]...)
		logic = append(logic[:i], logic[i+1:]...)
	}

	for i := len(routes) - 1; i > 0 && i < len(routes); i-- {
		if logic[i] != ConnectiveOr {
			continue
		}
		drop := chooseWeaker(routes[i-1], routes[i], i-1, i)
		routes = append(routes[:drop], routes[drop+1:]...)
		// the consumed connective is logic[i]; a survivor inherits the
		// connective of a dropped predecessor
		logic = append(logic[:i], logic[i+1:]...)
	}

	return routes
}

// chooseWeaker picks the index of the route to discard between two OR-ed
// alternatives, comparing FullDmg, AvgDmg, AttacksNum and HighestBonus in
// that priority order. A full tie discards the later route.
func chooseWeaker(prev, curr AttackRoute, prevIdx, currIdx int) int {
	comparisons := [][2]float64{
		{prev.FullDmg, curr.FullDmg},
		{prev.AvgDmg, curr.AvgDmg},
		{float64(prev.AttacksNum), float64(curr.AttacksNum)},
		{float64(prev.HighestBonus), float64(curr.HighestBonus)},
	}
	for _, c := range comparisons {
		if c[0] < c[1] {
			return prevIdx
		}
		if c[0] > c[1] {
			return currIdx
		}
	}
	return currIdx
}
