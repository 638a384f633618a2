package resolver

import (
	"net/url"
	"strings"
)

// Variant is a lightly-modified form of the original URL, differing along
// exactly one axis.
type Variant struct {
	URL  string
	Axis string // "scheme", "www", or "trailing-slash"
}

// Variants generates the ordered candidate set for a URL: scheme toggle
// first, then www toggle, then trailing-slash toggle. Output is
// deterministic, contains no duplicates, never includes the original, and
// is limited to single-axis changes to bound the search space.
func Variants(orig *url.URL) []Variant {
	variants := make([]Variant, 0, 3)

	// Dedupe on the exact string: the trailing-slash axis is meaningful
	// here even though Normalize treats "/a" and "/a/" as one URL.
	seen := map[string]bool{orig.String(): true}

	add := func(u *url.URL, axis string) {
		s := u.String()
		if seen[s] {
			return
		}
		seen[s] = true
		variants = append(variants, Variant{URL: s, Axis: axis})
	}

	// Scheme toggle.
	schemeVar := cloneURL(orig)
	if schemeVar.Scheme == "https" {
		schemeVar.Scheme = "http"
	} else {
		schemeVar.Scheme = "https"
	}
	add(schemeVar, "scheme")

	// www toggle.
	wwwVar := cloneURL(orig)
	host := wwwVar.Host
	if strings.HasPrefix(host, "www.") {
		wwwVar.Host = strings.TrimPrefix(host, "www.")
	} else {
		wwwVar.Host = "www." + host
	}
	add(wwwVar, "www")

	// Trailing-slash toggle. The root path has no meaningful toggle: "" and
	// "/" are the same resource.
	slashVar := cloneURL(orig)
	switch {
	case slashVar.Path == "" || slashVar.Path == "/":
		// skip
	case strings.HasSuffix(slashVar.Path, "/"):
		slashVar.Path = strings.TrimSuffix(slashVar.Path, "/")
		add(slashVar, "trailing-slash")
	default:
		slashVar.Path += "/"
		add(slashVar, "trailing-slash")
	}

	return variants
}

func cloneURL(u *url.URL) *url.URL {
	clone := *u
	return &clone
}
