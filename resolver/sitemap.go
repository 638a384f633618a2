package resolver

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/rksxox-coder/broken-link-resolver/urlutil"
)

// sitemapPaths are tried in order; the first one that yields entries wins.
var sitemapPaths = []string{"sitemap.xml", "sitemap_index.xml"}

// maxSitemapEntries bounds how many <loc> entries are considered per site.
const maxSitemapEntries = 500

// attemptSitemap fetches the site's sitemap, ranks its entries against the
// original path, and confirms the best match live.
func (r *Resolver) attemptSitemap(ctx context.Context, orig *url.URL, _ *Outcome) (candidate, bool) {
	entries := r.fetchSitemapEntries(ctx, orig)
	if len(entries) == 0 {
		return candidate{}, false
	}

	links := make([]CrawlLink, 0, len(entries))
	for _, entry := range entries {
		if urlutil.Equivalent(entry, orig.String()) {
			continue
		}
		if !urlutil.IsSameHost(entry, orig.Host) {
			continue
		}
		links = append(links, CrawlLink{URL: entry})
	}

	match, score, ok := BestMatch(orig, links, r.cfg.MinMatchScore)
	if !ok {
		return candidate{}, false
	}

	check := r.fetcher.Check(ctx, match.URL)
	if !check.Live {
		return candidate{}, false
	}

	return candidate{
		url:        check.FinalURL,
		confidence: score,
		note:       fmt.Sprintf("closest match among %d sitemap entries", len(links)),
	}, true
}

// fetchSitemapEntries retrieves and parses the first sitemap that responds
// with entries. Sub-sitemaps listed in an index are not recursed into; the
// index's own <loc> values rarely score and keep the stage bounded.
func (r *Resolver) fetchSitemapEntries(ctx context.Context, orig *url.URL) []string {
	root := urlutil.SiteRoot(orig)

	for _, path := range sitemapPaths {
		if ctx.Err() != nil {
			return nil
		}

		body, out := r.fetcher.FetchBody(ctx, root+path)
		if out.Err != nil || out.StatusCode != 200 || len(body) == 0 {
			continue
		}

		entries, err := parseSitemapLocs(bytes.NewReader(body), maxSitemapEntries)
		if err != nil {
			r.log.WithField("url", root+path).WithError(err).Debug("sitemap parse failed")
			continue
		}
		if len(entries) > 0 {
			return entries
		}
	}
	return nil
}

// parseSitemapLocs streams <loc> elements out of a sitemap or sitemap
// index document, up to limit entries. It tolerates the usual namespace
// variations by matching on the local element name only.
func parseSitemapLocs(body io.Reader, limit int) ([]string, error) {
	decoder := xml.NewDecoder(body)
	var entries []string
	inLoc := false

	for len(entries) < limit {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return entries, fmt.Errorf("decode sitemap: %w", err)
		}

		switch tok := token.(type) {
		case xml.StartElement:
			inLoc = tok.Name.Local == "loc"
		case xml.CharData:
			if inLoc {
				if loc := strings.TrimSpace(string(tok)); loc != "" {
					entries = append(entries, loc)
				}
			}
		case xml.EndElement:
			inLoc = false
		}
	}

	return entries, nil
}
