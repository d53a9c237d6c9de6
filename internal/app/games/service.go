package games

import (
	"github.com/preston-bernstein/metascore-lookup-service/internal/catalog"
	domaingames "github.com/preston-bernstein/metascore-lookup-service/internal/domain/games"
	"github.com/preston-bernstein/metascore-lookup-service/internal/metrics"
)

// Store holds the current catalog snapshot and swaps in replacements.
type Store interface {
	Current() *catalog.Snapshot
	Replace(snap *catalog.Snapshot) *catalog.Snapshot
	Version() uint64
}

// Service coordinates catalog lookups and refreshes using a Store.
type Service struct {
	store   Store
	matcher *catalog.Matcher
	metrics *metrics.Recorder
}

// NewService constructs a Service with the provided Store. A nil matcher
// uses the default Jaro matcher.
func NewService(store Store, matcher *catalog.Matcher, recorder *metrics.Recorder) *Service {
	if matcher == nil {
		matcher = catalog.NewMatcher()
	}
	return &Service{store: store, matcher: matcher, metrics: recorder}
}

// Lookup resolves a free-form game name against the current catalog.
func (s *Service) Lookup(query string) (catalog.Match, bool) {
	match, ok := s.matcher.Lookup(query, s.store.Current())
	switch {
	case !ok:
		s.metrics.RecordLookup(metrics.LookupMiss)
	case match.Kind == catalog.MatchExact:
		s.metrics.RecordLookup(metrics.LookupExact)
	default:
		s.metrics.RecordLookup(metrics.LookupFuzzy)
	}
	return match, ok
}

// ReplaceEntries builds a snapshot from raw entries and installs it. The
// build happens before the store is touched, so readers keep the old
// snapshot until the swap.
func (s *Service) ReplaceEntries(entries []domaingames.RawEntry) catalog.BuildResult {
	snap := catalog.Build(entries)
	s.store.Replace(snap)
	s.metrics.SetCatalogSize(snap.Len())
	return snap.Result()
}

// Size returns the number of records in the current catalog.
func (s *Service) Size() int {
	return s.store.Current().Len()
}

// Version counts catalog installs since startup.
func (s *Service) Version() uint64 {
	return s.store.Version()
}

// Snapshot returns the current catalog snapshot.
func (s *Service) Snapshot() *catalog.Snapshot {
	return s.store.Current()
}
