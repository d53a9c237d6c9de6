package server

import (
	"context"

	"github.com/preston-bernstein/metascore-lookup-service/internal/poller"
)

// Poller defines the refresh scheduler behavior the server drives.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
	Refresh(ctx context.Context) poller.Result
}
