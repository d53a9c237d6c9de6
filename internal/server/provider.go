package server

import (
	"log/slog"

	"github.com/preston-bernstein/metascore-lookup-service/internal/config"
	"github.com/preston-bernstein/metascore-lookup-service/internal/logging"
	"github.com/preston-bernstein/metascore-lookup-service/internal/providers"
	"github.com/preston-bernstein/metascore-lookup-service/internal/providers/fixture"
	"github.com/preston-bernstein/metascore-lookup-service/internal/providers/metacritic"
)

const (
	providerFixture    = "fixture"
	providerMetacritic = "metacritic"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.PageSource {
	switch normalizeProviderName(cfg.Provider, nil) {
	case providerFixture, "provider":
		return fixture.New()
	case providerMetacritic:
		return metacritic.NewClient(metacritic.Config{
			BaseURL:   cfg.Source.BaseURL,
			Platform:  cfg.Source.Platform,
			UserAgent: cfg.Source.UserAgent,
			Timeout:   cfg.Source.Timeout,
		})
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture", logging.FieldProvider, cfg.Provider)
		return fixture.New()
	}
}
