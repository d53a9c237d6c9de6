package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type refreshStats struct {
	cycles       int
	errors       int
	pages        int
	lastDuration time.Duration
}

// Recorder captures lightweight, in-memory metrics about provider calls,
// refresh cycles and lookups, and forwards them to OpenTelemetry when configured.
type Recorder struct {
	mu      sync.Mutex
	stats   map[string]*providerStats
	refresh refreshStats
	lookups map[string]int
	catalog atomic.Int64
	otel    *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	r := &Recorder{
		stats:   make(map[string]*providerStats),
		lookups: make(map[string]int),
		otel:    otel,
	}
	if otel != nil {
		otel.catalogSize = r.CatalogSize
	}
	return r
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot is a copy of the current stats for one provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordRefreshCycle tracks one ingest-and-swap cycle. err is the transport
// error that ended pagination early, if any.
func (r *Recorder) RecordRefreshCycle(duration time.Duration, pages int, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.refresh.cycles++
	r.refresh.pages += pages
	r.refresh.lastDuration = duration
	if err != nil {
		r.refresh.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRefresh(duration, pages, err)
	}
}

// RefreshStats is a copy of the refresh counters.
type RefreshStats struct {
	Cycles       int
	Errors       int
	Pages        int
	LastDuration time.Duration
}

// Refresh returns the refresh counters recorded so far.
func (r *Recorder) Refresh() RefreshStats {
	if r == nil {
		return RefreshStats{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return RefreshStats{
		Cycles:       r.refresh.cycles,
		Errors:       r.refresh.errors,
		Pages:        r.refresh.pages,
		LastDuration: r.refresh.lastDuration,
	}
}

// RecordLookup counts a lookup by outcome (LookupExact, LookupFuzzy, LookupMiss).
func (r *Recorder) RecordLookup(result string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.lookups[result]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordLookup(result)
	}
}

// Lookups returns how many lookups ended with the given outcome.
func (r *Recorder) Lookups(result string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookups[result]
}

// SetCatalogSize stores the record count of the active catalog.
func (r *Recorder) SetCatalogSize(n int) {
	if r == nil {
		return
	}
	r.catalog.Store(int64(n))
}

// CatalogSize returns the last stored catalog record count.
func (r *Recorder) CatalogSize() int64 {
	if r == nil {
		return 0
	}
	return r.catalog.Load()
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}
