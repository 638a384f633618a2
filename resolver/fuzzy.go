package resolver

import (
	"net/url"
	"sort"
	"strings"

	"github.com/xrash/smetrics"
)

// CrawlLink is a URL discovered during the homepage crawl, with the anchor
// text it was found under.
type CrawlLink struct {
	URL  string
	Text string
}

// tokenMatchThreshold is the Jaro-Winkler score above which two path
// tokens are considered the same word ("artcle" matches "article").
const tokenMatchThreshold = 0.9

// PathTokens tokenizes a URL path on '/', '-', '_', and '.', lowercased,
// dropping single-character fragments and common file extensions' noise.
func PathTokens(path string) []string {
	fields := strings.FieldsFunc(strings.ToLower(path), func(r rune) bool {
		return r == '/' || r == '-' || r == '_' || r == '.'
	})
	tokens := fields[:0]
	for _, tok := range fields {
		if len(tok) > 1 {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// Similarity computes a normalized [0, 1] score between the original URL's
// path tokens and a candidate link. The base metric is a token-set Jaccard
// index where tokens also match fuzzily via Jaro-Winkler; anchor-text
// overlap adds a small bonus. Identical paths score 1.
func Similarity(origTokens []string, link CrawlLink) float64 {
	candURL, err := url.Parse(link.URL)
	if err != nil {
		return 0
	}

	candTokens := PathTokens(candURL.Path)
	score := fuzzyJaccard(origTokens, candTokens)

	if link.Text != "" && score < 1 {
		anchorTokens := PathTokens(strings.ReplaceAll(link.Text, " ", "/"))
		if overlap(origTokens, anchorTokens) > 0 {
			score += 0.1
			if score > 1 {
				score = 1
			}
		}
	}

	return score
}

// fuzzyJaccard is |intersection| / |union| over two token sets, where
// membership in the intersection allows near-matches.
func fuzzyJaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	matchedB := make([]bool, len(b))
	intersect := 0
	for _, tokA := range a {
		for i, tokB := range b {
			if matchedB[i] {
				continue
			}
			if tokensMatch(tokA, tokB) {
				matchedB[i] = true
				intersect++
				break
			}
		}
	}

	union := len(a) + len(b) - intersect
	if union == 0 {
		return 0
	}
	return float64(intersect) / float64(union)
}

func tokensMatch(a, b string) bool {
	if a == b {
		return true
	}
	if len(a) < 3 || len(b) < 3 {
		return false
	}
	return smetrics.JaroWinkler(a, b, 0.7, 4) >= tokenMatchThreshold
}

func overlap(a, b []string) int {
	count := 0
	for _, tokA := range a {
		for _, tokB := range b {
			if tokensMatch(tokA, tokB) {
				count++
				break
			}
		}
	}
	return count
}

// BestMatch scores each discovered link against the original URL's path
// and returns the highest-scoring one at or above minScore. Ties break to
// the shorter path depth, then lexicographic order, so output is
// deterministic regardless of discovery order.
func BestMatch(orig *url.URL, links []CrawlLink, minScore float64) (CrawlLink, float64, bool) {
	origTokens := PathTokens(orig.Path)

	type scored struct {
		link  CrawlLink
		score float64
		depth int
	}

	ranked := make([]scored, 0, len(links))
	for _, link := range links {
		s := Similarity(origTokens, link)
		if s < minScore {
			continue
		}
		ranked = append(ranked, scored{link: link, score: s, depth: pathDepth(link.URL)})
	}

	if len(ranked) == 0 {
		return CrawlLink{}, 0, false
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		if ranked[i].depth != ranked[j].depth {
			return ranked[i].depth < ranked[j].depth
		}
		return ranked[i].link.URL < ranked[j].link.URL
	})

	best := ranked[0]
	return best.link, best.score, true
}

func pathDepth(rawURL string) int {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0
	}
	return len(splitPathSegments(u.Path))
}
