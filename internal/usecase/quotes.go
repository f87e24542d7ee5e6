package usecase

import (
	"context"
	"errors"
	"time"

	"Stockle/internal/domain/models"
	drepo "Stockle/internal/domain/repository"
	"Stockle/pkg/cache"
	xlogger "Stockle/pkg/logger"
)

// CachedQuotes is a TTL read-through cache in front of a live QuoteProvider.
// The cache is best-effort: any cache failure falls through to a live fetch,
// and failed fetches are never cached.
type CachedQuotes struct {
	provider drepo.QuoteProvider
	cache    cache.Service
	ttl      time.Duration
	metrics  drepo.Metrics
	logger   *xlogger.Logger
}

// NewCachedQuotes creates the cached quote source.
func NewCachedQuotes(provider drepo.QuoteProvider, c cache.Service, ttl time.Duration, m drepo.Metrics, l *xlogger.Logger) *CachedQuotes {
	if m == nil {
		m = drepo.NopMetrics{}
	}
	return &CachedQuotes{
		provider: provider,
		cache:    c,
		ttl:      ttl,
		metrics:  m,
		logger:   l,
	}
}

func metaKey(symbol string) string {
	return "meta:" + symbol
}

// GetMeta returns the snapshot for a symbol, serving from cache while fresh.
func (q *CachedQuotes) GetMeta(ctx context.Context, symbol string) (*models.TickerMeta, error) {
	start := time.Now()

	var cached models.TickerMeta
	err := q.cache.Get(ctx, metaKey(symbol), &cached)
	if err == nil {
		q.metrics.RecordCacheLookup("hit")
		q.metrics.RecordQuoteFetch("cache", time.Since(start))
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) && q.logger != nil {
		q.logger.Warn("quote cache read failed", xlogger.String("symbol", symbol), xlogger.Error(err))
	}
	q.metrics.RecordCacheLookup("miss")

	meta, err := q.provider.GetMeta(ctx, symbol)
	if err != nil {
		q.metrics.RecordError("quote_fetch")
		return nil, err
	}
	q.metrics.RecordQuoteFetch("live", time.Since(start))

	if err := q.cache.Set(ctx, metaKey(symbol), meta, q.ttl); err != nil && q.logger != nil {
		q.logger.Warn("quote cache write failed", xlogger.String("symbol", symbol), xlogger.Error(err))
	}

	return meta, nil
}
