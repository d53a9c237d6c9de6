package catalog

import (
	"strings"
	"time"

	domaingames "github.com/preston-bernstein/metascore-lookup-service/internal/domain/games"
)

// Snapshot is an immutable catalog: records in ingestion order plus a stem index.
// A Snapshot is never modified after construction; refreshes build a new one.
type Snapshot struct {
	records []domaingames.Record
	index   map[string]int
	builtAt time.Time
	skipped int
}

// BuildResult summarizes what Build did with its input.
type BuildResult struct {
	Records int
	Keys    int
	Skipped int
}

// Empty returns a snapshot with no records.
func Empty() *Snapshot {
	return NewSnapshot(nil)
}

// Build turns raw upstream entries into a Snapshot. Entries that cannot form a
// record (empty name) are skipped and counted; they never fail the build.
func Build(entries []domaingames.RawEntry) *Snapshot {
	records := make([]domaingames.Record, 0, len(entries))
	skipped := 0
	for _, raw := range entries {
		rec, err := domaingames.NewRecord(raw)
		if err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	snap := NewSnapshot(records)
	snap.skipped = skipped
	return snap
}

// NewSnapshot indexes already-built records. Each record is keyed by its stem
// and, when its name contains a colon, by the stem of the text before the first
// colon. Later keys overwrite earlier ones.
func NewSnapshot(records []domaingames.Record) *Snapshot {
	owned := make([]domaingames.Record, len(records))
	copy(owned, records)

	index := make(map[string]int, len(owned))
	for i, rec := range owned {
		for _, key := range indexKeys(rec) {
			index[key] = i
		}
	}
	return &Snapshot{
		records: owned,
		index:   index,
		builtAt: time.Now().UTC(),
	}
}

func indexKeys(rec domaingames.Record) []string {
	keys := make([]string, 0, 2)
	if rec.Stem != "" {
		keys = append(keys, rec.Stem)
	}
	if head, _, ok := strings.Cut(rec.Name, ":"); ok {
		if alias := domaingames.Stem(head); alias != "" {
			keys = append(keys, alias)
		}
	}
	return keys
}

// Exact returns the record indexed under stem, if any.
func (s *Snapshot) Exact(stem string) (domaingames.Record, bool) {
	if s == nil || stem == "" {
		return domaingames.Record{}, false
	}
	i, ok := s.index[stem]
	if !ok {
		return domaingames.Record{}, false
	}
	return s.records[i], true
}

// Len returns the number of records.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// Keys returns the number of distinct index keys, aliases included.
func (s *Snapshot) Keys() int {
	if s == nil {
		return 0
	}
	return len(s.index)
}

// Records returns a copy of the records in ingestion order.
func (s *Snapshot) Records() []domaingames.Record {
	if s == nil {
		return nil
	}
	out := make([]domaingames.Record, len(s.records))
	copy(out, s.records)
	return out
}

// BuiltAt reports when the snapshot was constructed.
func (s *Snapshot) BuiltAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.builtAt
}

// Result reports record, key and skip counts for logging and admin responses.
func (s *Snapshot) Result() BuildResult {
	if s == nil {
		return BuildResult{}
	}
	return BuildResult{
		Records: len(s.records),
		Keys:    len(s.index),
		Skipped: s.skipped,
	}
}
