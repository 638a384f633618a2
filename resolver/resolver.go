// Package resolver implements the URL resolution engine: it determines
// whether a URL is live and, when it is not, searches a bounded space of
// alternatives (canonical targets, scheme/www/slash variants, parent paths,
// sitemap entries, homepage links ranked by fuzzy path similarity) and
// returns the single best working replacement.
package resolver

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rksxox-coder/broken-link-resolver/result"
	"github.com/rksxox-coder/broken-link-resolver/urlutil"
)

// Config holds resolver configuration.
type Config struct {
	Timeout       time.Duration // Per-fetch timeout (default 6s)
	Budget        time.Duration // Overall per-URL resolution budget (default 10s)
	Concurrency   int           // Worker count for bulk resolution (default 8)
	MaxRedirects  int           // Redirect hops followed per fetch (default 5)
	MaxCrawlPages int           // Pages fetched during the homepage crawl (default 10)
	MinMatchScore float64       // Fuzzy-match acceptance threshold (default 0.3)
	MaxBodySize   int64         // Response body read cap in bytes (default 2 MiB)
	UserAgent     string
	MemoryLimitMB int64 // Soft memory limit for large batches; 0 disables
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:       6 * time.Second,
		Budget:        10 * time.Second,
		Concurrency:   8,
		MaxRedirects:  5,
		MaxCrawlPages: 10,
		MinMatchScore: 0.3,
		MaxBodySize:   2 << 20,
		UserAgent:     "broken-link-resolver/1.0 (+https://github.com/rksxox-coder/broken-link-resolver)",
	}
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.Budget <= 0 {
		c.Budget = def.Budget
	}
	if c.Concurrency <= 0 {
		c.Concurrency = def.Concurrency
	}
	if c.MaxRedirects <= 0 {
		c.MaxRedirects = def.MaxRedirects
	}
	if c.MaxCrawlPages <= 0 {
		c.MaxCrawlPages = def.MaxCrawlPages
	}
	if c.MinMatchScore <= 0 {
		c.MinMatchScore = def.MinMatchScore
	}
	if c.MaxBodySize <= 0 {
		c.MaxBodySize = def.MaxBodySize
	}
	if c.UserAgent == "" {
		c.UserAgent = def.UserAgent
	}
}

// candidate is a potential replacement URL produced by a stage.
type candidate struct {
	url        string
	confidence float64
	note       string
}

// stage is one strategy in the resolution chain. Stages are attempted in
// order and the chain short-circuits at the first stage that produces a
// live candidate.
type stage struct {
	reason  result.Reason
	attempt func(ctx context.Context, orig *url.URL, probe *Outcome) (candidate, bool)
}

// Resolver coordinates the resolution stages. It is safe for concurrent
// use; each resolution owns its own request and response data.
type Resolver struct {
	cfg        Config
	fetcher    *Fetcher
	robots     *RobotsChecker
	log        *logrus.Logger
	progressCh chan<- Event
}

// New creates a Resolver. The log parameter may be nil, in which case a
// discard-level logger is used. progressCh is optional; pass nil to disable
// progress events during bulk resolution.
func New(cfg Config, log *logrus.Logger, progressCh chan<- Event) *Resolver {
	cfg.applyDefaults()
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.ErrorLevel)
	}

	fetcher := newFetcher(cfg, log)
	return &Resolver{
		cfg:        cfg,
		fetcher:    fetcher,
		robots:     NewRobotsChecker(fetcher.robotsClient(), log),
		log:        log,
		progressCh: progressCh,
	}
}

// Resolve checks a single URL and, if it is not live, walks the stage chain
// looking for the closest working alternative. It always returns exactly
// one CheckResult and never panics or fails the caller; per-URL errors are
// captured in the result.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) result.CheckResult {
	res := result.CheckResult{URL: rawURL, Reason: result.ReasonNoneFound}

	orig, err := urlutil.ParseAbsolute(rawURL)
	if err != nil {
		res.Status = result.StatusError
		res.ErrorCategory = result.CategoryInvalidURL
		res.Note = err.Error()
		return res
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.Budget)
	defer cancel()

	probe := r.fetcher.Probe(ctx, orig.String())
	res.HTTPStatus = probe.StatusCode

	if probe.Live {
		res.Status = result.StatusOK
		res.Reason = result.ReasonDirect
		res.Confidence = 1
		res.Note = liveNote(probe, orig.String())
		return res
	}

	if probe.StatusCode == 0 {
		res.Status = result.StatusError
	} else {
		res.Status = result.StatusBroken
	}
	res.ErrorCategory = result.Classify(probe.Err, probe.StatusCode)
	if probe.SoftNotFound() {
		// A 200 that reads like an error page counts as broken.
		res.ErrorCategory = result.CategoryHTTPError
	}

	for _, st := range r.stages() {
		if ctx.Err() != nil {
			res.ErrorCategory = result.CategoryBudgetExceeded
			res.Note = "resolution budget exhausted"
			r.log.WithField("url", rawURL).Debug("budget exhausted before all stages ran")
			return res
		}
		if cand, ok := st.attempt(ctx, orig, probe); ok {
			res.Alternative = cand.url
			res.Reason = st.reason
			res.Confidence = cand.confidence
			res.Note = cand.note
			r.log.WithFields(logrus.Fields{
				"url":         rawURL,
				"alternative": cand.url,
				"reason":      st.reason,
			}).Debug("alternative found")
			return res
		}
	}

	res.Note = "no working alternative found"
	return res
}

// stages returns the ordered strategy chain. Adding or reordering a stage
// here is the only change needed to alter resolution priority.
func (r *Resolver) stages() []stage {
	return []stage{
		{reason: result.ReasonCanonical, attempt: r.attemptCanonical},
		{reason: result.ReasonVariant, attempt: r.attemptVariants},
		{reason: result.ReasonParentPath, attempt: r.attemptParents},
		{reason: result.ReasonSitemap, attempt: r.attemptSitemap},
		{reason: result.ReasonHomepageFuzzy, attempt: r.attemptHomepage},
	}
}

// attemptCanonical follows a canonical link or meta-refresh target found
// while probing the original URL. The target must differ from the original
// and must itself be live.
func (r *Resolver) attemptCanonical(ctx context.Context, orig *url.URL, probe *Outcome) (candidate, bool) {
	if probe.Page == nil {
		return candidate{}, false
	}

	targets := []struct {
		url  string
		note string
		conf float64
	}{
		{probe.Page.Canonical, "canonical link on original page", 0.95},
		{probe.Page.MetaRefresh, "meta-refresh redirect on original page", 0.9},
	}

	for _, t := range targets {
		if t.url == "" || urlutil.Equivalent(t.url, orig.String()) {
			continue
		}
		check := r.fetcher.Check(ctx, t.url)
		if check.Live {
			return candidate{url: check.FinalURL, confidence: t.conf, note: t.note}, true
		}
	}
	return candidate{}, false
}

// attemptVariants tries each generated scheme/www/slash variant in order.
func (r *Resolver) attemptVariants(ctx context.Context, orig *url.URL, _ *Outcome) (candidate, bool) {
	for _, v := range Variants(orig) {
		if ctx.Err() != nil {
			return candidate{}, false
		}
		check := r.fetcher.Check(ctx, v.URL)
		if check.Live {
			return candidate{
				url:        check.FinalURL,
				confidence: 0.9,
				note:       fmt.Sprintf("%s variant of original URL", v.Axis),
			}, true
		}
	}
	return candidate{}, false
}

// attemptParents walks ancestor paths from most-specific to the site root.
func (r *Resolver) attemptParents(ctx context.Context, orig *url.URL, _ *Outcome) (candidate, bool) {
	parents := ParentPaths(orig)
	for i, parent := range parents {
		if ctx.Err() != nil {
			return candidate{}, false
		}
		check := r.fetcher.Check(ctx, parent)
		if check.Live {
			conf := 0.8 - 0.1*float64(i)
			if conf < 0.4 {
				conf = 0.4
			}
			return candidate{
				url:        check.FinalURL,
				confidence: conf,
				note:       fmt.Sprintf("parent path %d level(s) up", i+1),
			}, true
		}
	}
	return candidate{}, false
}

func liveNote(probe *Outcome, original string) string {
	if probe.FinalURL != "" && !urlutil.Equivalent(probe.FinalURL, original) {
		return fmt.Sprintf("redirected to %s", probe.FinalURL)
	}
	return "original URL is reachable"
}
