package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/temoto/robotstxt"
)

// cachedRobots stores parsed robots.txt data with its fetch timestamp.
// A nil data field means allow-all (missing file, server error, or fetch
// failure).
type cachedRobots struct {
	data      *robotstxt.RobotsData
	fetchedAt time.Time
}

// RobotsChecker fetches and caches robots.txt rules per host. Errors fail
// open: the homepage crawl proceeds unless robots.txt explicitly
// disallows it.
type RobotsChecker struct {
	client   *http.Client
	log      *logrus.Logger
	cache    sync.Map // host string -> *cachedRobots
	cacheTTL time.Duration
}

// NewRobotsChecker creates a RobotsChecker with the given HTTP client.
func NewRobotsChecker(client *http.Client, log *logrus.Logger) *RobotsChecker {
	return &RobotsChecker{
		client:   client,
		log:      log,
		cacheTTL: time.Hour,
	}
}

// Allowed checks whether the given URL may be crawled by the user agent.
func (r *RobotsChecker) Allowed(ctx context.Context, rawURL, userAgent string) bool {
	parsedURL, err := url.Parse(rawURL)
	if err != nil || parsedURL.Host == "" {
		return true
	}
	host := parsedURL.Host

	if cached, ok := r.cache.Load(host); ok {
		entry, ok := cached.(*cachedRobots)
		if ok && entry != nil && time.Since(entry.fetchedAt) < r.cacheTTL {
			if entry.data == nil {
				return true
			}
			return entry.data.TestAgent(parsedURL.Path, userAgent)
		}
		r.cache.Delete(host)
	}

	data := r.fetchRobots(ctx, parsedURL.Scheme, host, userAgent)
	r.cache.Store(host, &cachedRobots{data: data, fetchedAt: time.Now()})

	if data == nil {
		return true
	}
	return data.TestAgent(parsedURL.Path, userAgent)
}

// fetchRobots retrieves and parses robots.txt for a host. Any failure
// returns nil, which callers treat as allow-all.
func (r *RobotsChecker) fetchRobots(ctx context.Context, scheme, host, userAgent string) *robotstxt.RobotsData {
	robotsURL := fmt.Sprintf("%s://%s/robots.txt", scheme, host)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		r.log.WithField("host", host).WithError(err).Debug("robots.txt fetch failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode >= 500 {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512<<10))
	if err != nil {
		r.log.WithField("host", host).WithError(err).Debug("robots.txt read failed")
		return nil
	}

	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		r.log.WithField("host", host).WithError(err).Debug("robots.txt parse failed")
		return nil
	}
	return data
}
