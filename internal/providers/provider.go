package providers

import (
	"context"

	domaingames "github.com/preston-bernstein/metascore-lookup-service/internal/domain/games"
)

// PageSource fetches one page of the upstream catalog listing. Pages are
// zero-indexed; an empty page (with a nil error) means the listing is exhausted.
type PageSource interface {
	FetchPage(ctx context.Context, page int) ([]domaingames.RawEntry, error)
}
