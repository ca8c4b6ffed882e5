// Package feats maintains the catalog of known feat names used to count
// feats inside a run-on word list.
package feats

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher retrieves raw page bytes.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Catalog is a read-only set of feat names. It is built once before any
// parsing starts and is safe for concurrent reads.
type Catalog struct {
	names map[string]struct{}
}

// New builds a catalog from a literal list of names.
func New(names []string) *Catalog {
	c := &Catalog{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		c.names[name] = struct{}{}
	}
	return c
}

// Load fetches the canonical feats listing page and collects every feat
// name linked from it. Trailing parenthetical qualifiers are stripped, so
// "Weapon Focus (Ranged)" is cataloged as "Weapon Focus".
func Load(ctx context.Context, fetcher Fetcher, url string) (*Catalog, error) {
	data, err := fetcher.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("load feat catalog: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse feat listing: %w", err)
	}

	c := &Catalog{names: make(map[string]struct{})}
	doc.Find(`a[href*="/feats/"]`).Each(func(_ int, s *goquery.Selection) {
		name := CleanName(s.Text())
		if name != "" {
			c.names[name] = struct{}{}
		}
	})

	if len(c.names) == 0 {
		return nil, fmt.Errorf("load feat catalog: no feat names found at %s", url)
	}
	return c, nil
}

// CleanName strips a trailing parenthetical qualifier from a feat name.
func CleanName(name string) string {
	if idx := strings.Index(name, "("); idx >= 0 {
		name = name[:idx]
	}
	return strings.TrimSpace(name)
}

// Contains reports whether the exact name is a known feat.
func (c *Catalog) Contains(name string) bool {
	_, ok := c.names[name]
	return ok
}

// Len returns the number of cataloged feats.
func (c *Catalog) Len() int {
	return len(c.names)
}
