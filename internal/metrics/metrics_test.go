package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestRecorderTracksProviderAttemptsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordProviderAttempt("metacritic", 10*time.Millisecond, nil)
	rec.RecordProviderAttempt("metacritic", 15*time.Millisecond, errors.New("boom"))

	if got := rec.ProviderCalls("metacritic"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := rec.ProviderErrors("metacritic"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
	if got := rec.LastCallLatency("metacritic"); got != 15*time.Millisecond {
		t.Fatalf("expected last latency to be 15ms, got %s", got)
	}

	snap := rec.Snapshot("metacritic")
	if snap.Calls != 2 || snap.Errors != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestRecorderTracksRateLimits(t *testing.T) {
	rec := NewRecorder()
	rec.RecordRateLimit("metacritic", 5*time.Second)
	rec.RecordRateLimit("metacritic", 0)

	if got := rec.RateLimitHits("metacritic"); got != 2 {
		t.Fatalf("expected 2 rate limit hits, got %d", got)
	}
	if got := rec.LastRetryAfter("metacritic"); got != 5*time.Second {
		t.Fatalf("expected last retry-after to be 5s, got %s", got)
	}
}

func TestRecorderTracksRefreshCycles(t *testing.T) {
	rec := NewRecorder()
	rec.RecordRefreshCycle(20*time.Millisecond, 3, nil)
	rec.RecordRefreshCycle(5*time.Millisecond, 1, errors.New("page 1 failed"))

	stats := rec.Refresh()
	if stats.Cycles != 2 || stats.Errors != 1 || stats.Pages != 4 {
		t.Fatalf("unexpected refresh stats %+v", stats)
	}
	if stats.LastDuration != 5*time.Millisecond {
		t.Fatalf("expected last duration 5ms, got %s", stats.LastDuration)
	}
}

func TestRecorderTracksLookupsAndCatalogSize(t *testing.T) {
	rec := NewRecorder()
	rec.RecordLookup(LookupExact)
	rec.RecordLookup(LookupExact)
	rec.RecordLookup(LookupMiss)
	rec.SetCatalogSize(42)

	if got := rec.Lookups(LookupExact); got != 2 {
		t.Fatalf("expected 2 exact lookups, got %d", got)
	}
	if got := rec.Lookups(LookupFuzzy); got != 0 {
		t.Fatalf("expected 0 fuzzy lookups, got %d", got)
	}
	if got := rec.CatalogSize(); got != 42 {
		t.Fatalf("expected catalog size 42, got %d", got)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordProviderAttempt("p", time.Millisecond, nil)
	rec.RecordRateLimit("p", time.Second)
	rec.RecordRefreshCycle(time.Millisecond, 1, nil)
	rec.RecordLookup(LookupMiss)
	rec.RecordHTTPRequest("GET", "/lookup", 200, time.Millisecond)
	rec.SetCatalogSize(1)
	if rec.ProviderCalls("p") != 0 || rec.Lookups(LookupMiss) != 0 || rec.CatalogSize() != 0 {
		t.Fatalf("expected zero values from nil recorder")
	}
}

func TestRecorderIsSafeForConcurrentUse(t *testing.T) {
	rec := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				rec.RecordProviderAttempt("metacritic", time.Millisecond, nil)
				rec.RecordLookup(LookupFuzzy)
			}
		}()
	}
	wg.Wait()
	if got := rec.ProviderCalls("metacritic"); got != 1600 {
		t.Fatalf("expected 1600 calls, got %d", got)
	}
	if got := rec.Lookups(LookupFuzzy); got != 1600 {
		t.Fatalf("expected 1600 fuzzy lookups, got %d", got)
	}
}
