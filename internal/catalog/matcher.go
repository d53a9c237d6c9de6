package catalog

import (
	"github.com/adrg/strutil/metrics"

	domaingames "github.com/preston-bernstein/metascore-lookup-service/internal/domain/games"
)

// DefaultThreshold is the similarity a fuzzy candidate must strictly exceed.
const DefaultThreshold = 0.85

// MatchKind tells callers which path produced a match.
type MatchKind string

const (
	MatchExact MatchKind = "exact"
	MatchFuzzy MatchKind = "fuzzy"
)

// Similarity scores two stems in [0,1]; it must be symmetric.
type Similarity func(a, b string) float64

// Match is a record returned by a lookup along with how it was found.
type Match struct {
	Record     domaingames.Record
	Kind       MatchKind
	Similarity float64
}

// Matcher resolves free-form names against a Snapshot.
type Matcher struct {
	similarity Similarity
	threshold  float64
}

// NewMatcher returns a Matcher using Jaro similarity and DefaultThreshold.
func NewMatcher() *Matcher {
	return NewMatcherWith(jaroSimilarity(), DefaultThreshold)
}

// NewMatcherWith builds a Matcher with a custom similarity and threshold.
// A nil similarity falls back to case-insensitive Jaro.
func NewMatcherWith(similarity Similarity, threshold float64) *Matcher {
	if similarity == nil {
		similarity = jaroSimilarity()
	}
	return &Matcher{similarity: similarity, threshold: threshold}
}

// Lookup normalizes query and returns the exact stem hit if there is one.
// Otherwise it scans every record and returns the most similar one whose score
// is strictly above the threshold; on ties the last candidate scanned wins.
func (m *Matcher) Lookup(query string, snap *Snapshot) (Match, bool) {
	stem := domaingames.Stem(query)
	if stem == "" || snap == nil {
		return Match{}, false
	}
	if rec, ok := snap.Exact(stem); ok {
		return Match{Record: rec, Kind: MatchExact, Similarity: 1}, true
	}

	var (
		best  Match
		found bool
	)
	for _, rec := range snap.records {
		score := m.similarity(rec.Stem, stem)
		if score <= m.threshold {
			continue
		}
		if !found || score >= best.Similarity {
			best = Match{Record: rec, Kind: MatchFuzzy, Similarity: score}
			found = true
		}
	}
	return best, found
}

func jaroSimilarity() Similarity {
	jaro := metrics.NewJaro()
	jaro.CaseSensitive = false
	return jaro.Compare
}
