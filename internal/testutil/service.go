package testutil

import (
	"github.com/preston-bernstein/metascore-lookup-service/internal/app/games"
	domaingames "github.com/preston-bernstein/metascore-lookup-service/internal/domain/games"
	"github.com/preston-bernstein/metascore-lookup-service/internal/store"
)

// NewServiceWithEntries builds a games service backed by an in-memory store preloaded with entries.
func NewServiceWithEntries(entries []domaingames.RawEntry) *games.Service {
	svc := games.NewService(store.NewMemoryStore(), nil, nil)
	if len(entries) > 0 {
		svc.ReplaceEntries(entries)
	}
	return svc
}
