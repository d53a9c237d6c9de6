package providers

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	domaingames "github.com/preston-bernstein/metascore-lookup-service/internal/domain/games"
)

const defaultRequestInterval = time.Second

// rateLimitedProvider wraps a PageSource and enforces a minimum interval between calls.
type rateLimitedProvider struct {
	next     PageSource
	interval time.Duration
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// NewRateLimitedProvider returns a PageSource that allows one call per interval.
// The first call goes straight through; later calls block until the interval
// elapses so a paging run never hammers the upstream.
func NewRateLimitedProvider(next PageSource, interval time.Duration, logger *slog.Logger) PageSource {
	if interval <= 0 {
		interval = defaultRequestInterval
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		logger:   logger,
	}
}

func (p *rateLimitedProvider) FetchPage(ctx context.Context, page int) ([]domaingames.RawEntry, error) {
	if p == nil || p.next == nil {
		if p != nil {
			logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "provider unavailable")
		}
		return nil, ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "rate-limited fetch canceled", slog.Any("err", err))
		return nil, err
	}
	logWithProvider(ctx, p.logger, slog.LevelDebug, "rate-limited", "rate-limited provider fetch", slog.Int("page", page))
	return p.next.FetchPage(ctx, page)
}
