package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	domaingames "github.com/preston-bernstein/metascore-lookup-service/internal/domain/games"
	"github.com/preston-bernstein/metascore-lookup-service/internal/logging"
	"github.com/preston-bernstein/metascore-lookup-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxBackoff           = 30 * time.Second
)

// retryingProvider wraps a PageSource with retry/backoff behavior.
type retryingProvider struct {
	inner       PageSource
	logger      *slog.Logger
	metrics     *metrics.Recorder
	provider    string
	maxAttempts int
	newBackOff  func() backoff.BackOff
}

// NewRetryingProvider wraps the given source with exponential-backoff retries.
// If maxAttempts/backoff are <= 0, defaults are used. Every attempt is recorded
// on recorder; client errors other than 429 are not retried, and a 429 waits at
// least as long as the upstream's Retry-After. A Retry-After beyond the maximum
// backoff ends the fetch instead of waiting.
func NewRetryingProvider(inner PageSource, logger *slog.Logger, recorder *metrics.Recorder, provider string, maxAttempts int, initial time.Duration) PageSource {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger,
		metrics:     recorder,
		provider:    provider,
		maxAttempts: maxAttempts,
		newBackOff: func() backoff.BackOff {
			exp := backoff.NewExponentialBackOff()
			exp.InitialInterval = initial
			exp.MaxInterval = maxBackoff
			exp.MaxElapsedTime = 0
			return exp
		},
	}
}

func (r *retryingProvider) FetchPage(ctx context.Context, page int) ([]domaingames.RawEntry, error) {
	if r == nil || r.inner == nil {
		return nil, ErrProviderUnavailable
	}
	logger := logging.FromContext(ctx, r.logger)

	attempt := 0
	var lastErr error
	operation := func() ([]domaingames.RawEntry, error) {
		attempt++
		start := time.Now()
		entries, err := r.inner.FetchPage(ctx, page)
		r.metrics.RecordProviderAttempt(r.provider, time.Since(start), err)
		lastErr = err
		if err == nil {
			return entries, nil
		}
		if rl, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.provider, rl.RetryAfter)
			// Waiting longer than a backoff step would stall the refresh cycle.
			if rl.RetryAfter > maxBackoff {
				return nil, backoff.Permanent(err)
			}
		}
		if IsPermanent(err) {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	notify := func(err error, delay time.Duration) {
		logWithProvider(ctx, logger, slog.LevelWarn, r.provider, "provider fetch retry",
			slog.Int(logging.FieldPage, page),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", r.maxAttempts),
			slog.Duration("delay", delay),
			slog.Any("err", err),
		)
	}

	policy := backoff.WithContext(&retryAfterBackOff{
		BackOff:    backoff.WithMaxRetries(r.newBackOff(), uint64(r.maxAttempts-1)),
		retryAfter: func() time.Duration { return retryAfterOf(lastErr) },
	}, ctx)

	entries, err := backoff.RetryNotifyWithData(operation, policy, notify)
	if err != nil {
		logWithProvider(ctx, logger, slog.LevelWarn, r.provider, "provider fetch failed",
			slog.Int(logging.FieldPage, page),
			slog.Int("attempts", attempt),
			slog.Any("err", err),
		)
		return nil, err
	}
	return entries, nil
}

// retryAfterBackOff stretches the wrapped policy's delay to honor an upstream
// Retry-After. The wrapped policy still decides when to stop.
type retryAfterBackOff struct {
	backoff.BackOff
	retryAfter func() time.Duration
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	next := b.BackOff.NextBackOff()
	if next == backoff.Stop {
		return next
	}
	if wait := b.retryAfter(); wait > next {
		return min(wait, maxBackoff)
	}
	return next
}

func retryAfterOf(err error) time.Duration {
	if rl, ok := AsRateLimitError(err); ok {
		return rl.RetryAfter
	}
	return 0
}
