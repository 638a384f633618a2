// Package urlutil provides URL parsing, normalization, and comparison
// helpers shared by the resolver and the CLI.
package urlutil

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rksxox-coder/broken-link-resolver/result"
)

// ParseAbsolute parses a raw string as an absolute http or https URL.
// Anything else (empty input, relative references, other schemes) is
// rejected with result.ErrInvalidURL before any network call happens.
func ParseAbsolute(rawURL string) (*url.URL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, fmt.Errorf("%w: empty input", result.ErrInvalidURL)
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", result.ErrInvalidURL, err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("%w: scheme %q", result.ErrInvalidURL, parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("%w: missing host", result.ErrInvalidURL)
	}

	parsed.Scheme = scheme
	parsed.Host = strings.ToLower(parsed.Host)
	return parsed, nil
}

// Normalize takes a raw URL string and returns a canonical form used for
// deduplication:
//   - scheme and host lowercased
//   - fragment stripped
//   - default ports (:80 for http, :443 for https) stripped
//   - trailing slash stripped, except for the root path "/"
//
// Returns an error if the input is empty or not an absolute URL.
func Normalize(rawURL string) (string, error) {
	if rawURL == "" {
		return "", errors.New("cannot normalize empty URL")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("normalize URL %q: %w", rawURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", errors.New("URL must have both scheme and host")
	}

	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	parsed.Fragment = ""

	if port := parsed.Port(); port != "" {
		if (parsed.Scheme == "http" && port == "80") || (parsed.Scheme == "https" && port == "443") {
			parsed.Host = parsed.Hostname()
		}
	}

	if parsed.Path != "/" && strings.HasSuffix(parsed.Path, "/") {
		parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	}

	return parsed.String(), nil
}

// Equivalent reports whether two URL strings normalize to the same URL.
func Equivalent(a, b string) bool {
	na, errA := Normalize(a)
	nb, errB := Normalize(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return na == nb
}
