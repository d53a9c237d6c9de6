package server

import (
	"log/slog"

	"github.com/preston-bernstein/metascore-lookup-service/internal/config"
	"github.com/preston-bernstein/metascore-lookup-service/internal/metrics"
	"github.com/preston-bernstein/metascore-lookup-service/internal/providers"
)

// providerFactory assembles the page source with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.PageSource {
	base := selectProvider(cfg, f.logger)
	name := normalizeProviderName(cfg.Provider, base)

	source := base
	// Only the live upstream needs request spacing.
	if name == providerMetacritic {
		source = providers.NewRateLimitedProvider(base, cfg.Source.RequestInterval, f.logger)
	}
	return providers.NewRetryingProvider(source, f.logger, f.metrics, name, cfg.Source.RetryAttempts, 0)
}
