package resolver

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/rksxox-coder/broken-link-resolver/urlutil"
)

// attemptHomepage fetches the site root, walks a bounded set of internal
// pages collecting links, and fuzzy-matches them against the original
// URL's path. The best-scoring candidate is confirmed live before being
// returned.
func (r *Resolver) attemptHomepage(ctx context.Context, orig *url.URL, _ *Outcome) (candidate, bool) {
	links, err := r.crawlSite(ctx, orig)
	if err != nil {
		r.log.WithField("url", orig.String()).WithError(err).Debug("homepage crawl failed")
		return candidate{}, false
	}
	if len(links) == 0 {
		return candidate{}, false
	}

	// The original URL itself may appear among the site's links; it is
	// known broken, so keep it out of the ranking.
	filtered := links[:0]
	for _, link := range links {
		if !urlutil.Equivalent(link.URL, orig.String()) {
			filtered = append(filtered, link)
		}
	}

	match, score, ok := BestMatch(orig, filtered, r.cfg.MinMatchScore)
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
		note:       fmt.Sprintf("closest match among %d links found on site", len(filtered)),
	}, true
}

// crawlSite runs a small BFS from the site root, bounded by
// cfg.MaxCrawlPages, and returns the deduplicated internal links it saw.
// A failure to fetch the root aborts the crawl entirely; failures on
// deeper pages just end that branch.
func (r *Resolver) crawlSite(ctx context.Context, orig *url.URL) ([]CrawlLink, error) {
	root := urlutil.SiteRoot(orig)

	if !r.robots.Allowed(ctx, root, r.cfg.UserAgent) {
		r.log.WithField("host", orig.Host).Debug("crawl disallowed by robots.txt")
		return nil, nil
	}

	visited, err := newCrawlVisited(uint(r.cfg.MaxCrawlPages) * 64)
	if err != nil {
		return nil, fmt.Errorf("visited tracker: %w", err)
	}
	defer func() {
		if err := visited.close(); err != nil {
			r.log.WithError(err).Debug("visited tracker close")
		}
	}()

	var collected []CrawlLink
	seenLink := make(map[string]bool)

	queue := []string{root}
	visited.visitIfNew(root)
	pages := 0

	for len(queue) > 0 && pages < r.cfg.MaxCrawlPages {
		if ctx.Err() != nil {
			break
		}

		pageURL := queue[0]
		queue = queue[1:]

		body, out := r.fetcher.FetchBody(ctx, pageURL)
		pages++
		if out.Err != nil || !out.Live {
			if pageURL == root {
				// No homepage, no crawl.
				return nil, nil
			}
			continue
		}

		base, err := url.Parse(out.FinalURL)
		if err != nil {
			continue
		}

		links, err := ExtractLinks(bytes.NewReader(body), base)
		if err != nil {
			r.log.WithField("url", pageURL).WithError(err).Debug("link extraction failed")
			if pageURL == root {
				return nil, fmt.Errorf("parse homepage: %w", err)
			}
			continue
		}

		for _, link := range links {
			if !urlutil.IsSameHost(link.URL, orig.Host) {
				continue
			}
			if !seenLink[link.URL] {
				seenLink[link.URL] = true
				collected = append(collected, link)
			}
			if len(queue) < r.cfg.MaxCrawlPages*3 && visited.visitIfNew(link.URL) {
				queue = append(queue, link.URL)
			}
		}
	}

	return collected, nil
}

// ExtractLinks parses HTML and extracts anchor hrefs with their anchor
// text. Relative hrefs are resolved against baseURL, non-HTTP schemes are
// dropped, fragments are stripped, and duplicates are removed.
func ExtractLinks(body io.Reader, baseURL *url.URL) ([]CrawlLink, error) {
	tokenizer := html.NewTokenizer(body)
	seen := make(map[string]bool)
	var links []CrawlLink

	// Anchor currently being read; text accumulates until the close tag.
	var open *CrawlLink

	flush := func() {
		if open == nil {
			return
		}
		open.Text = squashSpace(open.Text)
		if !seen[open.URL] {
			seen[open.URL] = true
			links = append(links, *open)
		}
		open = nil
	}

	for {
		tokenType := tokenizer.Next()
		switch tokenType {
		case html.ErrorToken:
			flush()
			if tokenizer.Err() == io.EOF {
				return links, nil
			}
			return links, fmt.Errorf("tokenize html: %w", tokenizer.Err())

		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			if token.Data != "a" {
				continue
			}
			flush()
			for _, attr := range token.Attr {
				if attr.Key != "href" {
					continue
				}
				resolved := resolveHref(baseURL, attr.Val)
				if resolved == "" {
					break
				}
				open = &CrawlLink{URL: resolved}
				break
			}

		case html.TextToken:
			if open != nil {
				open.Text += string(tokenizer.Text()) + " "
			}

		case html.EndTagToken:
			token := tokenizer.Token()
			if token.Data == "a" {
				flush()
			}
		}
	}
}

// resolveHref turns an href attribute into an absolute, fragment-free
// HTTP(S) URL, or "" if it is not a crawlable link.
func resolveHref(baseURL *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	lower := strings.ToLower(href)
	if strings.HasPrefix(lower, "mailto:") || strings.HasPrefix(lower, "tel:") || strings.HasPrefix(lower, "javascript:") {
		return ""
	}

	hrefURL, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := baseURL.ResolveReference(hrefURL)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	resolved.Fragment = ""
	return resolved.String()
}
