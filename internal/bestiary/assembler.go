// Package bestiary orchestrates fetching, segmenting and extracting
// monster records across pages.
package bestiary

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/bestiarydata/scraper/internal/feats"
	"github.com/bestiarydata/scraper/internal/logging"
	"github.com/bestiarydata/scraper/internal/page"
	"github.com/bestiarydata/scraper/internal/statblock"
)

// Fetcher retrieves raw page bytes.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Assembler parses pages into records, recursing into linked subpages.
type Assembler struct {
	fetcher  Fetcher
	catalog  *feats.Catalog
	log      *logging.Logger
	pageOpts []page.Option
}

// New creates an assembler. The catalog must be fully built before any
// call to Parse; it is only ever read afterwards.
func New(fetcher Fetcher, catalog *feats.Catalog, log *logging.Logger, pageOpts ...page.Option) *Assembler {
	if log == nil {
		log = logging.NewNop()
	}
	return &Assembler{fetcher: fetcher, catalog: catalog, log: log, pageOpts: pageOpts}
}

// Parse fetches a page and returns every record reachable from it: the
// page's own stat block, if it has a usable one, plus all records from
// linked subpages, flattened. Failures never propagate; a broken page
// contributes nothing beyond a log line.
func (a *Assembler) Parse(ctx context.Context, url string) []statblock.Record {
	return a.parsePage(ctx, url, false)
}

func (a *Assembler) parsePage(ctx context.Context, url string, followedSuggestion bool) []statblock.Record {
	data, err := a.fetcher.Get(ctx, url)
	if err != nil {
		a.log.Warn("page fetch failed", zap.String("url", url), zap.Error(err))
		return nil
	}

	pg, err := page.New(data, a.pageOpts...)
	if err != nil {
		a.log.Warn("page parse failed", zap.String("url", url), zap.Error(err))
		return nil
	}

	// subpages are collected for every page; some pages carry both a
	// stat block and links to variant sub-records
	var subRecords []statblock.Record
	for _, link := range pg.SubpageLinks() {
		// summoned creatures have non-standard blocks and are not
		// monsters living out in the game world
		if strings.Contains(link, "summon") {
			continue
		}
		// the one-hop cap on suggestions is per redirect chain; a
		// subpage starts a chain of its own
		subRecords = append(subRecords, a.parsePage(ctx, link, false)...)
	}

	text := statblock.NormalizeText(pg.Text())

	sections, err := statblock.Segment(text)
	switch {
	case errors.Is(err, statblock.ErrNoStatBlock):
		// an index page, or a malformed URL answered with a suggestion
		// page; follow the suggested link at most one hop
		if !followedSuggestion {
			if suggested := pg.SuggestionLink(); suggested != "" {
				a.log.Debug("following suggestion", zap.String("url", url), zap.String("suggested", suggested))
				return append(a.parsePage(ctx, suggested, true), subRecords...)
			}
		}
		return subRecords
	case errors.Is(err, statblock.ErrMalformedSections):
		a.log.Warn("malformed stat block", zap.String("url", url))
		return subRecords
	case err != nil:
		a.log.Warn("segmentation failed", zap.String("url", url), zap.Error(err))
		return subRecords
	}

	name := statblock.ExtractName(text)
	if name == "" {
		a.log.Debug("unnamed record dropped", zap.String("url", url))
		return subRecords
	}
	if !statblock.Canonical(name) {
		a.log.Debug("non-canonical record dropped", zap.String("url", url), zap.String("name", name))
		return subRecords
	}

	record := statblock.Assemble(name, url, sections, a.catalog)
	return append([]statblock.Record{record}, subRecords...)
}
