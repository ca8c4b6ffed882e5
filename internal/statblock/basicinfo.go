package statblock

import (
	"regexp"
	"strconv"
	"strings"
)

// BasicInfo is the field patch produced from the first stat-block section.
type BasicInfo struct {
	CR         *float64
	XP         *int
	Alignment  *string
	Size       *string
	Type       *string
	Init       *int
	Senses     int
	Perception *int
}

var (
	crRe = regexp.MustCompile(`CR\s+\(?(.+?)\)?\s`)
	xpRe = regexp.MustCompile(`XP\s+([0-9]+,[0-9]+)\)?|XP\s+([0-9]+)\)?`)

	alignmentRe = regexp.MustCompile(`(LG|NG|CG|LN|CN|LE|NE|CE|N)`)
	sizeRe      = regexp.MustCompile(`(Fine|Diminutive|Tiny|Small|Medium|Large|Huge|Gargantuan|Colossal)`)
	typeRe      = regexp.MustCompile(`(aberration|animal|construct|dragon|fey|humanoid|magical beast|monstrous humanoid|ooze|outsider|plant|undead|vermin)`)

	initRe       = regexp.MustCompile(`Init\s+(0|\+[0-9]+|-[0-9]+)`)
	sensesRe     = regexp.MustCompile(`(?s)Senses(.+?);`)
	perceptionRe = regexp.MustCompile(`Perception\s+(0|\+[0-9]+|-[0-9]+)`)
)

// senseKeywords are the named special senses counted in the senses clause.
// Generic "detect X" abilities are counted separately, one per occurrence.
var senseKeywords = []*regexp.Regexp{
	wordRe("blindsense"),
	wordRe("blindsight"),
	wordRe("greensight"),
	wordRe("darkvision"),
	wordRe("lifesense"),
	wordRe("low-light vision"),
	wordRe("mistsight"),
	wordRe("scent"),
	wordRe("thoughtsense"),
	wordRe("tremorsense"),
	wordRe("true seeing"),
}

func wordRe(keyword string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
}

// ParseBasicInfo extracts challenge rating, XP, alignment, size, creature
// type, initiative, sense count and perception from the section text.
func ParseBasicInfo(text string) BasicInfo {
	var info BasicInfo

	if m := crRe.FindStringSubmatch(text); m != nil {
		// fractional ratings appear as "1/8" or as space-separated
		// partial fractions; interpret every token as a rational and sum
		if cr, ok := sumFractions(m[1]); ok {
			info.CR = &cr
		}
	}

	if m := xpRe.FindStringSubmatch(text); m != nil {
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		raw = strings.ReplaceAll(raw, ",", "")
		if xp, err := strconv.Atoi(raw); err == nil {
			info.XP = &xp
		}
	}

	if m := alignmentRe.FindStringSubmatch(text); m != nil {
		info.Alignment = &m[1]
	}

	// recurring typo in some entries
	text = strings.ReplaceAll(text, "Diminuitive", "Diminutive")

	if m := sizeRe.FindStringSubmatch(text); m != nil {
		info.Size = &m[1]
	}

	if m := typeRe.FindStringSubmatch(text); m != nil {
		name := capitalize(m[1])
		info.Type = &name
	}

	if m := initRe.FindStringSubmatch(text); m != nil {
		init, _ := strconv.Atoi(m[1])
		info.Init = &init
	}

	if m := sensesRe.FindStringSubmatch(text); m != nil {
		clause := strings.NewReplacer(",", "", ".", "").Replace(m[1])
		info.Senses = strings.Count(clause, "detect")
		for _, re := range senseKeywords {
			if re.MatchString(clause) {
				info.Senses++
			}
		}
	}

	if m := perceptionRe.FindStringSubmatch(text); m != nil {
		perception, _ := strconv.Atoi(m[1])
		info.Perception = &perception
	}

	return info
}

func (b BasicInfo) apply(r *Record) {
	r.CR = b.CR
	r.XP = b.XP
	r.Alignment = b.Alignment
	r.Size = b.Size
	r.Type = b.Type
	r.Init = b.Init
	r.Senses = b.Senses
	r.Perception = b.Perception
}

// sumFractions interprets a whitespace-separated run of numbers, plain or
// fractional ("1/8", ".5", "10 1/2"), and returns their sum.
func sumFractions(raw string) (float64, bool) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return 0, false
	}
	var sum float64
	for _, field := range fields {
		if num, den, ok := strings.Cut(field, "/"); ok {
			n, errN := strconv.ParseFloat(num, 64)
			d, errD := strconv.ParseFloat(den, 64)
			if errN != nil || errD != nil || d == 0 {
				return 0, false
			}
			sum += n / d
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return 0, false
		}
		sum += v
	}
	return sum, true
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
