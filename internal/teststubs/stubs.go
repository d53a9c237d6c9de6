package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/metascore-lookup-service/internal/catalog"
	domaingames "github.com/preston-bernstein/metascore-lookup-service/internal/domain/games"
)

// StubSource is a test double for providers.PageSource. Pages are served by
// index; any page past the end is empty.
type StubSource struct {
	Pages  [][]domaingames.RawEntry
	Errs   map[int]error
	Calls  atomic.Int32
	Notify chan struct{}

	mu        sync.Mutex
	requested []int
}

// FetchPage returns the configured page or error while tracking calls.
func (s *StubSource) FetchPage(ctx context.Context, page int) ([]domaingames.RawEntry, error) {
	_ = ctx
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)

	s.mu.Lock()
	s.requested = append(s.requested, page)
	s.mu.Unlock()

	if err, ok := s.Errs[page]; ok && err != nil {
		return nil, err
	}
	if page < 0 || page >= len(s.Pages) {
		return nil, nil
	}
	return s.Pages[page], nil
}

// Requested returns the page numbers asked for, in call order.
func (s *StubSource) Requested() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.requested))
	copy(out, s.requested)
	return out
}

// StubCatalogWriter is a test double for poller.CatalogWriter.
type StubCatalogWriter struct {
	mu       sync.Mutex
	replaced [][]domaingames.RawEntry
	size     int
}

// ReplaceEntries records the entries and reports every one as a record.
func (w *StubCatalogWriter) ReplaceEntries(entries []domaingames.RawEntry) catalog.BuildResult {
	w.mu.Lock()
	defer w.mu.Unlock()
	cp := make([]domaingames.RawEntry, len(entries))
	copy(cp, entries)
	w.replaced = append(w.replaced, cp)
	w.size = len(entries)
	return catalog.BuildResult{Records: len(entries), Keys: len(entries)}
}

// Size returns the entry count of the last replacement.
func (w *StubCatalogWriter) Size() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// SetSize seeds the reported catalog size.
func (w *StubCatalogWriter) SetSize(n int) {
	w.mu.Lock()
	w.size = n
	w.mu.Unlock()
}

// Replaced returns every batch handed to ReplaceEntries.
func (w *StubCatalogWriter) Replaced() [][]domaingames.RawEntry {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([][]domaingames.RawEntry, len(w.replaced))
	copy(out, w.replaced)
	return out
}
