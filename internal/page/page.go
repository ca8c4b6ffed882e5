// Package page turns fetched HTML bytes into plain text and link sets.
package page

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

// DefaultListingPrefix is the canonical monster-listing URL prefix; only
// links under it are followed.
const DefaultListingPrefix = "https://www.d20pfsrd.com/bestiary/monster-listings/"

// suggestionMarker identifies the "did you mean" blurb on
// redirect-suggestion pages served for malformed URLs.
const suggestionMarker = "found at least one possible match for the page you really want"

// denyTokens mark third-party or non-canonical content anywhere in a link.
var denyTokens = []string{"3pp", "3PP", "tohc", "TOHC"}

var sanitizer = newPolicy()

func newPolicy() *bluemonday.Policy {
	// UGC policy plus class attributes, which the subpage-container
	// lookup depends on
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	return p
}

// Page is a decoded, sanitized HTML page.
type Page struct {
	html          string
	doc           *goquery.Document
	listingPrefix string
}

// Option adjusts page construction.
type Option func(*Page)

// WithListingPrefix overrides the monster-listing URL prefix. Tests use
// it to point the filters at a local server.
func WithListingPrefix(prefix string) Option {
	return func(p *Page) { p.listingPrefix = prefix }
}

// New decodes the raw bytes (detecting the source charset), sanitizes
// away scripts and styles, and parses the result.
func New(data []byte, opts ...Option) (*Page, error) {
	html := sanitizer.Sanitize(decode(data))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	p := &Page{html: html, doc: doc, listingPrefix: DefaultListingPrefix}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// decode converts page bytes to UTF-8 using the detected charset,
// falling back to the raw bytes when detection or conversion fails.
func decode(data []byte) string {
	detected := "utf-8"
	if result, err := chardet.NewTextDetector().DetectBest(data); err == nil && result != nil {
		detected = strings.ToLower(result.Charset)
	}

	reader, err := charset.NewReader(bytes.NewReader(data), detected)
	if err != nil {
		return string(data)
	}
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}

// Text returns the plain text of the page.
func (p *Page) Text() string {
	return p.doc.Text()
}

// MonsterLinks returns the canonical monster-listing links on the page,
// deduplicated in document order. Third-party content is filtered out.
func (p *Page) MonsterLinks() []string {
	var links []string
	p.doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if link, ok := p.keepLink(href, s.Text()); ok {
			links = append(links, link)
		}
	})
	return deduplicate(links)
}

// SubpageLinks returns monster links from the child-pages container,
// present on pages that index variant sub-records. Trailing slashes are
// stripped so duplicated links collapse.
func (p *Page) SubpageLinks() []string {
	root, err := htmlquery.Parse(strings.NewReader(p.html))
	if err != nil {
		return nil
	}
	nodes, err := htmlquery.QueryAll(root, `//div[contains(@class,"ogn-childpages")]//a[@href]`)
	if err != nil {
		return nil
	}

	var links []string
	for _, node := range nodes {
		href := htmlquery.SelectAttr(node, "href")
		if link, ok := p.keepLink(href, htmlquery.InnerText(node)); ok {
			links = append(links, strings.TrimSuffix(link, "/"))
		}
	}
	return deduplicate(links)
}

// SuggestionLink returns the redirect target of a "did you mean" page,
// or the empty string when the page is not a suggestion page.
func (p *Page) SuggestionLink() string {
	idx := strings.Index(p.html, suggestionMarker)
	if idx < 0 {
		return ""
	}
	// re-parse the fragment after the marker; the first link in it is
	// the suggested record
	frag, err := goquery.NewDocumentFromReader(strings.NewReader(p.html[idx:]))
	if err != nil {
		return ""
	}
	href, _ := frag.Find("a[href]").First().Attr("href")
	return strings.TrimSpace(href)
}

func (p *Page) keepLink(href, text string) (string, bool) {
	href = strings.TrimSpace(href)
	if !strings.HasPrefix(href, p.listingPrefix) {
		return "", false
	}
	for _, token := range denyTokens {
		if strings.Contains(href, token) || strings.Contains(text, token) {
			return "", false
		}
	}
	return href, true
}

func deduplicate(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}
	return result
}
