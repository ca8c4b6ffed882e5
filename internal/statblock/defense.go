package statblock

import (
	"regexp"
	"strconv"
)

// Defense is the field patch produced from the DEFENSE section.
type Defense struct {
	AC         *int
	Touch      *int
	FlatFooted *int
	HP         *int
	HD         *int
	Fortitude  *int
	Reflex     *int
	Will       *int
}

var (
	armorRe = regexp.MustCompile(`(?s)AC\s+([0-9]+).+touch\s+([0-9]+).+flat-footed\s+([0-9]+)`)
	hpRe    = regexp.MustCompile(`hp\s+([0-9]+)\s+\(([0-9]+)d`)
	savesRe = regexp.MustCompile(`(?s)Fort\s+(0|\+[0-9]+|-[0-9]+).+Ref\s+(0|\+[0-9]+|-[0-9]+).+Will\s+(0|\+[0-9]+|-[0-9]+)`)
)

// ParseDefense extracts armor classes, hit points, hit dice and the three
// saving throws from the section text.
func ParseDefense(text string) Defense {
	var def Defense

	if m := armorRe.FindStringSubmatch(text); m != nil {
		def.AC = atoiPtr(m[1])
		def.Touch = atoiPtr(m[2])
		def.FlatFooted = atoiPtr(m[3])
	}

	if m := hpRe.FindStringSubmatch(text); m != nil {
		def.HP = atoiPtr(m[1])
		def.HD = atoiPtr(m[2])
	}

	if m := savesRe.FindStringSubmatch(text); m != nil {
		def.Fortitude = atoiPtr(m[1])
		def.Reflex = atoiPtr(m[2])
		def.Will = atoiPtr(m[3])
	}

	return def
}

func (d Defense) apply(r *Record) {
	r.AC = d.AC
	r.Touch = d.Touch
	r.FlatFooted = d.FlatFooted
	r.HP = d.HP
	r.HD = d.HD
	r.Fortitude = d.Fortitude
	r.Reflex = d.Reflex
	r.Will = d.Will
}

func atoiPtr(s string) *int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}
