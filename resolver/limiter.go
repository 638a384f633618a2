package resolver

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// defaultHostRPS is the starting politeness rate per host.
	defaultHostRPS = 4.0

	// minHostRPS / maxHostRPS bound how far the adaptive adjustment can
	// push an individual host's rate.
	minHostRPS = 0.5
	maxHostRPS = 8.0

	// hostTargetRTT is the response time we aim for; hosts responding
	// slower than this get fewer requests per second.
	hostTargetRTT = 500 * time.Millisecond

	// rttAlpha is the EMA smoothing factor: ~20% weight to the newest
	// observation, so a single slow response does not crash the rate.
	rttAlpha = 0.2

	// rttRecoveryFactor is the per-observation rate increase once a host
	// speeds back up.
	rttRecoveryFactor = 1.1

	// rttBackoffFloor caps how much of the current rate a single bad
	// observation may remove.
	rttBackoffFloor = 0.5
)

// hostEntry tracks one host's limiter and its smoothed response time.
type hostEntry struct {
	limiter *rate.Limiter
	emaRTT  time.Duration
	rps     float64
}

// hostLimiter enforces per-host politeness, adjusting each host's rate
// from observed response times. All resolutions share one instance so
// bulk batches do not hammer a single slow host.
type hostLimiter struct {
	mu    sync.Mutex
	hosts map[string]*hostEntry
}

func newHostLimiter() *hostLimiter {
	return &hostLimiter{hosts: make(map[string]*hostEntry)}
}

func (h *hostLimiter) entry(host string) *hostEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	entry, ok := h.hosts[host]
	if !ok {
		entry = &hostEntry{
			limiter: rate.NewLimiter(rate.Limit(defaultHostRPS), int(defaultHostRPS)),
			emaRTT:  hostTargetRTT,
			rps:     defaultHostRPS,
		}
		h.hosts[host] = entry
	}
	return entry
}

// Wait blocks until the host's limiter admits the next request or the
// context is cancelled.
func (h *hostLimiter) Wait(ctx context.Context, host string) error {
	return h.entry(host).limiter.Wait(ctx)
}

// ObserveRTT feeds a response-time observation back into the host's rate.
func (h *hostLimiter) ObserveRTT(host string, rtt time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()

	entry, ok := h.hosts[host]
	if !ok {
		return
	}

	entry.emaRTT = time.Duration(rttAlpha*float64(rtt) + (1-rttAlpha)*float64(entry.emaRTT))

	ratio := float64(hostTargetRTT) / float64(entry.emaRTT)
	var newRPS float64
	if ratio < 1 {
		newRPS = math.Max(entry.rps*ratio, entry.rps*rttBackoffFloor)
	} else {
		newRPS = entry.rps * rttRecoveryFactor
	}
	newRPS = math.Min(math.Max(newRPS, minHostRPS), maxHostRPS)

	if math.Abs(newRPS-entry.rps) > 0.05 {
		entry.rps = newRPS
		entry.limiter.SetLimit(rate.Limit(newRPS))
		entry.limiter.SetBurst(int(math.Ceil(newRPS)))
	}
}
