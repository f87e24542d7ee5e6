package di

import (
	"fmt"

	"Stockle/internal/catalog"
	"Stockle/internal/daily"
	drepo "Stockle/internal/domain/repository"
	"Stockle/internal/handler/api"
	"Stockle/internal/service/yahoo"
	"Stockle/internal/session"
	"Stockle/internal/usecase"
	"Stockle/pkg/cache"
	"Stockle/pkg/config"
	xhttp "Stockle/pkg/http"
	"Stockle/pkg/logger"
	"Stockle/pkg/metrics"
	"Stockle/pkg/server"
)

// ProvideCache creates the configured cache backend.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if cfg.Cache.Backend == "redis" {
		rc, err := cache.NewRedisCache(
			cache.WithRedisAddr(cfg.Cache.Redis.Addr),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
			cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return rc, nil
	}
	return cache.NewMemoryCache(), nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(cfg *config.Config) drepo.Metrics {
	if !cfg.Metrics.Enabled {
		return drepo.NopMetrics{}
	}
	return metrics.New()
}

// ProvideSelector builds the daily answer selector from the catalog resource.
func ProvideSelector(cfg *config.Config) (*daily.Selector, error) {
	symbols, err := catalog.Load(cfg.Game.TickersFile)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	sel, err := daily.New(cfg.Game.SecretKey, symbols, cfg.Game.AnchorDate, cfg.Game.Timezone)
	if err != nil {
		return nil, err
	}
	return sel, nil
}

// ProvideQuoteProvider creates the Yahoo-backed quote provider.
func ProvideQuoteProvider(cfg *config.Config) drepo.QuoteProvider {
	client := xhttp.NewClient(xhttp.WithTimeout(cfg.Quotes.Timeout))
	return yahoo.New(cfg.Quotes.BaseURL, cfg.Quotes.ChartURL, client)
}

// InitializeApp wires up all dependencies and returns the application.
func InitializeApp(cfg *config.Config, l *logger.Logger) (*server.App, error) {
	c, err := ProvideCache(cfg)
	if err != nil {
		return nil, err
	}

	sel, err := ProvideSelector(cfg)
	if err != nil {
		return nil, err
	}

	m := ProvideMetrics(cfg)
	provider := ProvideQuoteProvider(cfg)
	quotes := usecase.NewCachedQuotes(provider, c, cfg.Quotes.CacheTTL, m, l)
	sessions := session.NewStore(c, cfg.Game.SessionTTL)
	game := usecase.NewGame(sel, quotes, provider, sessions, cfg.Game.MaxGuesses, m, l)

	handler := api.NewGameHandler(l, game, api.RateLimitConfig{
		Enabled:      cfg.RateLimit.Enabled,
		Burst:        cfg.RateLimit.Burst,
		RefillPerSec: cfg.RateLimit.RefillPerSec,
	})

	return server.New(cfg, l, handler, c), nil
}
