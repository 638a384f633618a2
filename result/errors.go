package result

import (
	"context"
	"errors"
	"net"
)

// ErrInvalidURL is returned when an input cannot be parsed as an absolute
// http or https URL. It is rejected before any network call is made.
var ErrInvalidURL = errors.New("invalid URL: must be absolute http or https")

// ErrorCategory classifies why a URL check failed.
type ErrorCategory string

const (
	// CategoryInvalidURL marks malformed input rejected up front.
	CategoryInvalidURL ErrorCategory = "invalid_url"
	// CategoryUnreachable covers DNS, connection, and timeout failures.
	CategoryUnreachable ErrorCategory = "unreachable"
	// CategoryHTTPError covers terminal non-2xx statuses, including 3xx
	// chains that were still redirecting when the hop limit was reached.
	CategoryHTTPError ErrorCategory = "http_error"
	// CategoryCrawlParse marks an unparseable page body during the homepage
	// crawl. It is never fatal; the crawl simply finds no match.
	CategoryCrawlParse ErrorCategory = "crawl_parse"
	// CategoryBudgetExceeded means the per-URL resolution budget ran out
	// before all stages were attempted.
	CategoryBudgetExceeded ErrorCategory = "budget_exceeded"
)

// Classify maps a fetch error and HTTP status to an ErrorCategory.
func Classify(err error, statusCode int) ErrorCategory {
	if errors.Is(err, ErrInvalidURL) {
		return CategoryInvalidURL
	}

	if statusCode >= 300 {
		return CategoryHTTPError
	}

	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return CategoryUnreachable
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return CategoryUnreachable
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return CategoryUnreachable
	}

	// url.Error wrapping something we did not recognize still means the
	// request never produced a usable response.
	return CategoryUnreachable
}

// FormatCategory returns a human-readable label for an error category.
func FormatCategory(cat ErrorCategory) string {
	switch cat {
	case CategoryInvalidURL:
		return "Invalid URLs"
	case CategoryUnreachable:
		return "Unreachable"
	case CategoryHTTPError:
		return "HTTP Errors"
	case CategoryCrawlParse:
		return "Unparseable Pages"
	case CategoryBudgetExceeded:
		return "Budget Exceeded"
	default:
		return "Other"
	}
}
