package statblock

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoStatBlock reports that no challenge-rating marker was found. This
// is the expected signal for index pages that only link to sub-records.
var ErrNoStatBlock = errors.New("no stat block found")

// ErrMalformedSections reports missing, duplicated or out-of-order
// section headings. The record is unusable but linked subpages are not.
var ErrMalformedSections = errors.New("malformed stat block sections")

// Sections holds the four canonical slices of a stat block.
type Sections struct {
	BasicInfo  string
	Defense    string
	Offense    string
	Statistics string
}

// crMarkerRe locates the start of a stat block: a CR value, optionally
// parenthesised, followed by the XP entry.
var crMarkerRe = regexp.MustCompile(`CR\s*[0-9/]+\)?\s*\(?XP`)

const (
	headingDefense    = "DEFENSE"
	headingOffense    = "OFFENSE"
	headingStatistics = "STATISTICS"
	headingTactics    = "TACTICS"
	headingSpecial    = "SPECIAL ABILITIES"
)

// Segment locates the stat block inside raw page text and splits it into
// its four sections. The block runs from the first CR marker to the
// SPECIAL ABILITIES heading, or to the first blank line after STATISTICS
// when that heading is absent, or to the end of the text.
func Segment(text string) (Sections, error) {
	loc := crMarkerRe.FindStringIndex(text)
	if loc == nil {
		return Sections{}, ErrNoStatBlock
	}
	block := text[loc[0]:]

	if end := strings.Index(block, headingSpecial); end >= 0 {
		block = block[:end]
	} else if stats := strings.Index(block, headingStatistics); stats >= 0 {
		if blank := strings.Index(block[stats:], "\n\n"); blank >= 0 {
			block = block[:stats+blank]
		}
	}

	iDef := strings.Index(block, headingDefense)
	iOff := strings.Index(block, headingOffense)
	iStat := strings.Index(block, headingStatistics)
	if iDef < 0 || iOff < 0 || iStat < 0 {
		return Sections{}, ErrMalformedSections
	}
	if iDef > iOff || iOff > iStat {
		return Sections{}, ErrMalformedSections
	}
	// a heading appearing twice means the page glued several blocks together
	if strings.Count(block, headingDefense) > 1 ||
		strings.Count(block, headingOffense) > 1 ||
		strings.Count(block, headingStatistics) > 1 {
		return Sections{}, ErrMalformedSections
	}

	// OFFENSE ends at TACTICS when a tactics section is wedged in before
	// STATISTICS
	offEnd := iStat
	if iTac := strings.Index(block, headingTactics); iTac > iOff && iTac < iStat {
		offEnd = iTac
	}

	return Sections{
		BasicInfo:  block[:iDef],
		Defense:    block[iDef+len(headingDefense) : iOff],
		Offense:    block[iOff+len(headingOffense) : offEnd],
		Statistics: block[iStat+len(headingStatistics):],
	}, nil
}
