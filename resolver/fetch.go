package resolver

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Outcome reports the result of fetching a single URL.
type Outcome struct {
	StatusCode int    // Terminal HTTP status, 0 if the request never completed
	FinalURL   string // URL after following redirects
	Live       bool   // Terminal status was 2xx and the page is not a soft 404
	Err        error  // Network-level error, if any
	Page       *PageInfo
}

// SoftNotFound reports whether the response was a 2xx that looks like an
// error page ("page not found" placeholder served with status 200).
func (o *Outcome) SoftNotFound() bool {
	return o.Page != nil && o.Page.SoftNotFound
}

// Fetcher issues HTTP requests with bounded redirects and per-host
// politeness limiting. It is stateless apart from the shared connection
// pool and limiter, so a single Fetcher serves concurrent resolutions.
type Fetcher struct {
	client  *http.Client
	limiter *hostLimiter
	cfg     Config
	log     *logrus.Logger
}

func newFetcher(cfg Config, log *logrus.Logger) *Fetcher {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: cfg.Timeout,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   cfg.Concurrency,
		IdleConnTimeout:       90 * time.Second,
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// Stop following past the hop limit but keep the last 3xx
			// response so the caller can record the terminal status.
			if len(via) >= cfg.MaxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	return &Fetcher{
		client:  client,
		limiter: newHostLimiter(),
		cfg:     cfg,
		log:     log,
	}
}

// robotsClient returns a client suitable for robots.txt fetches: same
// transport, shorter timeout.
func (f *Fetcher) robotsClient() *http.Client {
	return &http.Client{Transport: f.client.Transport, Timeout: 5 * time.Second}
}

// Probe fetches a URL with GET and inspects any HTML body for canonical
// links, meta-refresh targets, and soft-404 markers. Used for the original
// URL, where the body informs later stages.
func (f *Fetcher) Probe(ctx context.Context, rawURL string) *Outcome {
	out := f.fetch(ctx, http.MethodGet, rawURL, f.inspectBody(rawURL))
	return &out
}

// Check determines liveness of a candidate URL: HEAD first, falling back
// to GET on error or any non-2xx status. A 2xx HEAD is confirmed with a
// GET so soft-404 pages are not reported as working alternatives.
func (f *Fetcher) Check(ctx context.Context, rawURL string) Outcome {
	out := f.fetch(ctx, http.MethodHead, rawURL, nil)
	if out.Err == nil && out.StatusCode >= 200 && out.StatusCode < 300 {
		confirm := f.fetch(ctx, http.MethodGet, rawURL, f.inspectBody(rawURL))
		if confirm.Err == nil {
			return confirm
		}
		return out
	}
	return f.fetch(ctx, http.MethodGet, rawURL, f.inspectBody(rawURL))
}

// FetchBody fetches a page for the homepage crawl, returning the raw body
// alongside the outcome. The body is capped at cfg.MaxBodySize.
func (f *Fetcher) FetchBody(ctx context.Context, rawURL string) ([]byte, Outcome) {
	var body []byte
	out := f.fetch(ctx, http.MethodGet, rawURL, func(resp *http.Response) *PageInfo {
		data, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBodySize))
		if err != nil {
			f.log.WithField("url", rawURL).WithError(err).Debug("partial body read")
		}
		body = data
		return nil
	})
	return body, out
}

// inspectBody returns an onBody callback that parses HTML responses into
// a PageInfo. Non-HTML bodies are skipped.
func (f *Fetcher) inspectBody(rawURL string) func(*http.Response) *PageInfo {
	return func(resp *http.Response) *PageInfo {
		ct := resp.Header.Get("Content-Type")
		if ct != "" && !strings.Contains(ct, "html") {
			return nil
		}
		limited := io.LimitReader(resp.Body, f.cfg.MaxBodySize)
		page, err := InspectPage(limited, ct, resp.Request.URL)
		if err != nil {
			f.log.WithField("url", rawURL).WithError(err).Debug("page inspection failed")
			return nil
		}
		return page
	}
}

func (f *Fetcher) fetch(ctx context.Context, method, rawURL string, onBody func(*http.Response) *PageInfo) Outcome {
	out := Outcome{FinalURL: rawURL}

	reqCtx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, rawURL, nil)
	if err != nil {
		out.Err = err
		return out
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	host := req.URL.Hostname()
	if host != "" {
		if err := f.limiter.Wait(reqCtx, host); err != nil {
			out.Err = err
			return out
		}
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if host != "" {
		f.limiter.ObserveRTT(host, time.Since(start))
	}
	if err != nil {
		out.Err = err
		return out
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
	}()

	out.StatusCode = resp.StatusCode
	out.FinalURL = resp.Request.URL.String()
	out.Live = resp.StatusCode >= 200 && resp.StatusCode < 300

	if onBody != nil && method != http.MethodHead {
		out.Page = onBody(resp)
		if out.Live && out.Page != nil && out.Page.SoftNotFound {
			out.Live = false
		}
	}

	return out
}
