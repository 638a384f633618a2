package result

import "time"

// Status is the resolved state of a checked URL.
type Status string

const (
	// StatusOK means the original URL responded with a 2xx status.
	StatusOK Status = "ok"
	// StatusBroken means the original URL returned a terminal non-2xx status.
	StatusBroken Status = "broken"
	// StatusError means the URL was invalid or could not be reached at all.
	StatusError Status = "error"
)

// Reason identifies how (or whether) an alternative URL was found.
type Reason string

const (
	ReasonDirect        Reason = "direct"
	ReasonCanonical     Reason = "canonical"
	ReasonVariant       Reason = "variant"
	ReasonParentPath    Reason = "parent-path"
	ReasonSitemap       Reason = "sitemap"
	ReasonHomepageFuzzy Reason = "homepage-fuzzy"
	ReasonNoneFound     Reason = "none-found"
)

// CheckResult is the outcome of resolving a single URL.
// Alternative is non-empty exactly when Reason is not none-found, and a
// StatusOK result never carries an alternative (the original itself worked).
type CheckResult struct {
	URL           string        `json:"url"`
	Status        Status        `json:"status"`
	HTTPStatus    int           `json:"http_status,omitempty"`
	Alternative   string        `json:"alternative,omitempty"`
	Reason        Reason        `json:"reason"`
	Confidence    float64       `json:"confidence,omitempty"`
	Note          string        `json:"note,omitempty"`
	ErrorCategory ErrorCategory `json:"error_category,omitempty"`
}

// Recovered reports whether a working alternative was found for a URL that
// was not itself live.
func (r CheckResult) Recovered() bool {
	return r.Status != StatusOK && r.Alternative != ""
}

// BatchStats contains aggregate statistics for a bulk resolution.
type BatchStats struct {
	TotalChecked int           `json:"total_checked"`
	OKCount      int           `json:"ok_count"`
	Recovered    int           `json:"recovered"`
	Unrecovered  int           `json:"unrecovered"`
	Errored      int           `json:"errored"`
	Duration     time.Duration `json:"duration"`
}

// BatchResult is the complete output of a bulk resolution, order-preserving
// relative to the input URL list.
type BatchResult struct {
	Results []CheckResult `json:"results"`
	Stats   BatchStats    `json:"stats"`
}

// Summarize recomputes Stats from Results, keeping duration.
func (b *BatchResult) Summarize() {
	stats := BatchStats{TotalChecked: len(b.Results), Duration: b.Stats.Duration}
	for _, res := range b.Results {
		switch {
		case res.Status == StatusOK:
			stats.OKCount++
		case res.Recovered():
			stats.Recovered++
		case res.Status == StatusError:
			stats.Errored++
		default:
			stats.Unrecovered++
		}
	}
	b.Stats = stats
}
