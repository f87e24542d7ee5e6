package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	guessesTotal  *prometheus.CounterVec
	gamesTotal    *prometheus.CounterVec
	quoteDuration *prometheus.HistogramVec
	quoteCache    *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		guessesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockle_guesses_total",
				Help: "Total number of guesses by result",
			},
			[]string{"result"},
		),
		gamesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockle_games_total",
				Help: "Total number of finished games by outcome",
			},
			[]string{"outcome"},
		),
		quoteDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockle_quote_fetch_duration_seconds",
				Help:    "Duration of quote lookups in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		quoteCache: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockle_quote_cache_total",
				Help: "Quote cache lookups by result",
			},
			[]string{"result"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockle_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
	}
}

// RecordGuess records a guess attempt result (win, wrong, empty, invalid, incomplete).
func (r *Recorder) RecordGuess(result string) {
	r.guessesTotal.WithLabelValues(result).Inc()
}

// RecordGameFinished records a finished game outcome (won or lost).
func (r *Recorder) RecordGameFinished(outcome string) {
	r.gamesTotal.WithLabelValues(outcome).Inc()
}

// RecordQuoteFetch records the duration of a quote lookup from a source (cache or live).
func (r *Recorder) RecordQuoteFetch(source string, d time.Duration) {
	r.quoteDuration.WithLabelValues(source).Observe(d.Seconds())
}

// RecordCacheLookup records a quote cache lookup result (hit or miss).
func (r *Recorder) RecordCacheLookup(result string) {
	r.quoteCache.WithLabelValues(result).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}
