package testutil

import (
	"context"

	domaingames "github.com/preston-bernstein/metascore-lookup-service/internal/domain/games"
	"github.com/preston-bernstein/metascore-lookup-service/internal/providers"
)

// GoodSource serves the provided entries as a single page.
type GoodSource struct {
	Entries []domaingames.RawEntry
}

func (p GoodSource) FetchPage(ctx context.Context, page int) ([]domaingames.RawEntry, error) {
	_ = ctx
	if page == 0 {
		return p.Entries, nil
	}
	return nil, nil
}

// ErrSource always returns the provided error.
type ErrSource struct {
	Err error
}

func (p ErrSource) FetchPage(ctx context.Context, page int) ([]domaingames.RawEntry, error) {
	return nil, p.Err
}

// EmptySource returns no entries, no error.
type EmptySource struct{}

func (EmptySource) FetchPage(ctx context.Context, page int) ([]domaingames.RawEntry, error) {
	return []domaingames.RawEntry{}, nil
}

// UnavailableSource returns ErrProviderUnavailable.
type UnavailableSource struct{}

func (UnavailableSource) FetchPage(ctx context.Context, page int) ([]domaingames.RawEntry, error) {
	return nil, providers.ErrProviderUnavailable
}
