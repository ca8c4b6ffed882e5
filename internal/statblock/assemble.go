package statblock

import (
	"regexp"
	"strings"

	"github.com/bestiarydata/scraper/internal/feats"
)

// nameRe finds the line immediately preceding the CR marker, which
// carries the monster name.
var nameRe = regexp.MustCompile(`\n(.+)\s*\(?\s*CR\s*[0-9/]*\s*\)?\s*\(?XP`)

// nonCanonicalMarker tags third-party content that slipped through the
// link filters; such records are discarded.
const nonCanonicalMarker = "3pp"

// ExtractName pulls the monster name out of the full page text. The
// empty string means no name was found and the record must be dropped.
func ExtractName(text string) string {
	m := nameRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	name := strings.TrimSpace(m[1])
	if strings.HasSuffix(name, "(") {
		name = capitalize(strings.TrimRight(strings.TrimSuffix(name, "("), " "))
	}
	return name
}

// Canonical reports whether a name belongs to canonical content.
func Canonical(name string) bool {
	return !strings.Contains(name, nonCanonicalMarker)
}

// Assemble merges the four section patches into a finished record. The
// record is complete once this returns; nothing mutates it afterwards.
func Assemble(name, link string, sections Sections, catalog *feats.Catalog) Record {
	record := NewRecord()
	record.Name = name
	record.Link = link

	ParseBasicInfo(sections.BasicInfo).apply(&record)
	ParseDefense(sections.Defense).apply(&record)
	ParseOffense(sections.Offense).apply(&record)
	ParseStatistics(sections.Statistics, catalog).apply(&record)

	return record
}
