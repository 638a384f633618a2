package resolver

import (
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/rksxox-coder/broken-link-resolver/urlutil"
)

// PageInfo holds what the resolver cares about in a fetched HTML page.
type PageInfo struct {
	Title        string
	Canonical    string // absolute canonical URL, empty if none
	MetaRefresh  string // absolute meta-refresh target, empty if none
	SoftNotFound bool
}

// metaRefreshContent matches the URL part of a meta-refresh content
// attribute, e.g. `5; url=/new-location`.
var metaRefreshContent = regexp.MustCompile(`(?i)url\s*=\s*['"]?([^'";]+)`)

// softNotFoundMarkers are phrases that identify an error page served with
// status 200.
var softNotFoundMarkers = []string{
	"page not found",
	"404 not found",
	"the page you requested could not be found",
	"does not exist",
	"not found on this server",
	"we could not find",
	"no results found",
	"sorry, we couldn't find",
	"requested url was not found",
}

// InspectPage parses an HTML body and extracts the canonical link,
// meta-refresh target, title, and soft-404 markers. contentType drives
// charset conversion; base resolves relative targets.
func InspectPage(body io.Reader, contentType string, base *url.URL) (*PageInfo, error) {
	reader, err := charset.NewReader(body, contentType)
	if err != nil {
		// Unknown charset: fall back to the raw bytes.
		reader = body
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	info := &PageInfo{}
	info.Title = strings.TrimSpace(doc.Find("title").First().Text())

	if href, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok {
		info.Canonical = resolveAgainst(base, href)
	}

	doc.Find("meta[http-equiv]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		equiv, _ := sel.Attr("http-equiv")
		if !strings.EqualFold(equiv, "refresh") {
			return true
		}
		content, _ := sel.Attr("content")
		if m := metaRefreshContent.FindStringSubmatch(content); m != nil {
			info.MetaRefresh = resolveAgainst(base, strings.TrimSpace(m[1]))
		}
		return false
	})

	info.SoftNotFound = looksLikeSoftNotFound(doc)
	return info, nil
}

// looksLikeSoftNotFound applies the soft-404 heuristics: known error
// phrases in the body text, or a near-empty page.
func looksLikeSoftNotFound(doc *goquery.Document) bool {
	text := strings.ToLower(squashSpace(doc.Find("body").Text()))
	if text == "" {
		// No body element at all; an empty 200 is suspicious but some
		// valid endpoints serve bodyless responses.
		return false
	}

	for _, marker := range softNotFoundMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return len(text) < 60
}

func resolveAgainst(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if base == nil {
		if !urlutil.IsHTTPScheme(ref) {
			return ""
		}
		return ref
	}
	resolved, err := urlutil.ResolveReference(base.String(), ref)
	if err != nil || !urlutil.IsHTTPScheme(resolved) {
		return ""
	}
	return resolved
}

func squashSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
