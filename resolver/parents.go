package resolver

import (
	"net/url"
	"strings"

	"github.com/rksxox-coder/broken-link-resolver/urlutil"
)

// ParentPaths returns the ancestor URLs of orig, from the immediate parent
// path down to the site root, in that order. Query and fragment are
// stripped before walking. A URL already at the root yields nothing.
//
// For https://a.com/x/y/z the result is:
//
//	https://a.com/x/y/
//	https://a.com/x/
//	https://a.com/
func ParentPaths(orig *url.URL) []string {
	segments := splitPathSegments(orig.Path)
	if len(segments) == 0 {
		return nil
	}

	root := urlutil.SiteRoot(orig)
	parents := make([]string, 0, len(segments))
	for cut := len(segments) - 1; cut > 0; cut-- {
		parents = append(parents, root+strings.Join(segments[:cut], "/")+"/")
	}
	parents = append(parents, root)
	return parents
}

// splitPathSegments returns the non-empty path segments. A trailing slash
// does not count as a segment, so "/x/y/" has the same ancestry as "/x/y".
func splitPathSegments(path string) []string {
	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}
