package repository

import (
	"context"
	"errors"
	"time"

	"Stockle/internal/domain/models"
)

var (
	// ErrNoData means the upstream source has no usable record for a symbol.
	ErrNoData = errors.New("quotes: no data for symbol")
	// ErrSessionNotFound means no session exists for the given id.
	ErrSessionNotFound = errors.New("session: not found")
)

// QuoteProvider fetches live market data for a symbol. Chart reports the
// upstream content type alongside the image bytes.
type QuoteProvider interface {
	GetMeta(ctx context.Context, symbol string) (*models.TickerMeta, error)
	Chart(ctx context.Context, symbol, rng string) ([]byte, string, error)
}

// QuoteSource serves (possibly cached) market data lookups.
type QuoteSource interface {
	GetMeta(ctx context.Context, symbol string) (*models.TickerMeta, error)
}

// SessionStore persists per-player game sessions behind an opaque id.
type SessionStore interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Put(ctx context.Context, id string, s *models.Session) error
	Clear(ctx context.Context, id string) error
}

// Metrics records application metrics.
type Metrics interface {
	RecordGuess(result string)
	RecordGameFinished(outcome string)
	RecordQuoteFetch(source string, d time.Duration)
	RecordCacheLookup(result string)
	RecordError(kind string)
}

// NopMetrics is a Metrics that records nothing.
type NopMetrics struct{}

func (NopMetrics) RecordGuess(string)                     {}
func (NopMetrics) RecordGameFinished(string)              {}
func (NopMetrics) RecordQuoteFetch(string, time.Duration) {}
func (NopMetrics) RecordCacheLookup(string)               {}
func (NopMetrics) RecordError(string)                     {}
