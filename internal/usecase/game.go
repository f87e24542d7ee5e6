package usecase

import (
	"context"
	"errors"
	"fmt"

	"Stockle/internal/daily"
	"Stockle/internal/domain/models"
	drepo "Stockle/internal/domain/repository"
	xlogger "Stockle/pkg/logger"
	"Stockle/pkg/util"
)

var (
	// ErrEmptyTicker means the guess was blank after normalization.
	ErrEmptyTicker = errors.New("game: empty ticker")
	// ErrInvalidTicker means the guessed symbol does not resolve to a security.
	ErrInvalidTicker = errors.New("game: ticker does not resolve")
)

// Game drives the per-session state machine. A guess only costs a turn when it
// is correct or fully scored; malformed, unresolvable, and data-incomplete
// guesses are free.
type Game struct {
	selector   *daily.Selector
	quotes     drepo.QuoteSource
	charts     ChartSource
	sessions   drepo.SessionStore
	maxGuesses int
	metrics    drepo.Metrics
	logger     *xlogger.Logger
}

// ChartSource fetches chart image bytes and their content type for a symbol.
type ChartSource interface {
	Chart(ctx context.Context, symbol, rng string) ([]byte, string, error)
}

// NewGame creates the game usecase.
func NewGame(selector *daily.Selector, quotes drepo.QuoteSource, charts ChartSource, sessions drepo.SessionStore, maxGuesses int, m drepo.Metrics, l *xlogger.Logger) *Game {
	if m == nil {
		m = drepo.NopMetrics{}
	}
	return &Game{
		selector:   selector,
		quotes:     quotes,
		charts:     charts,
		sessions:   sessions,
		maxGuesses: maxGuesses,
		metrics:    m,
		logger:     l,
	}
}

// MaxGuesses returns the configured guess budget.
func (g *Game) MaxGuesses() int {
	return g.maxGuesses
}

// Start begins (or restarts) a game with today's answer. Idempotent.
func (g *Game) Start(ctx context.Context, sid string) (*models.StartResult, error) {
	sess := &models.Session{Answer: g.selector.Today()}
	if err := g.sessions.Put(ctx, sid, sess); err != nil {
		return nil, err
	}
	return &models.StartResult{Guesses: 0, MaxGuesses: g.maxGuesses}, nil
}

// ensure returns the session for sid, lazily creating one with today's answer
// and zero guesses when absent.
func (g *Game) ensure(ctx context.Context, sid string) (*models.Session, error) {
	sess, err := g.sessions.Get(ctx, sid)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, drepo.ErrSessionNotFound) {
		return nil, err
	}

	sess = &models.Session{Answer: g.selector.Today()}
	if err := g.sessions.Put(ctx, sid, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Guess scores one guess against the session's answer.
func (g *Game) Guess(ctx context.Context, sid, raw string) (*models.GuessResult, error) {
	ticker := util.NormalizeTicker(raw)
	if ticker == "" {
		g.metrics.RecordGuess("empty")
		return nil, ErrEmptyTicker
	}

	sess, err := g.ensure(ctx, sid)
	if err != nil {
		return nil, err
	}

	// Finished sessions are frozen until reset or restart.
	if sess.Finished {
		return g.result(sess, nil), nil
	}

	// Existence check, independent of the hint engine's field checks.
	guessMeta, err := g.quotes.GetMeta(ctx, ticker)
	if err != nil {
		if errors.Is(err, drepo.ErrNoData) {
			g.metrics.RecordGuess("invalid")
			return nil, fmt.Errorf("%w: %s", ErrInvalidTicker, ticker)
		}
		return nil, err
	}

	if ticker == sess.Answer {
		sess.Guesses++
		sess.Won = true
		sess.Finished = true
		if err := g.sessions.Put(ctx, sid, sess); err != nil {
			return nil, err
		}
		g.metrics.RecordGuess("win")
		g.metrics.RecordGameFinished("won")
		if g.logger != nil {
			g.logger.Info("game won", xlogger.String("sid", sid), xlogger.Int("guesses", sess.Guesses))
		}
		return g.result(sess, nil), nil
	}

	answerMeta, err := g.quotes.GetMeta(ctx, sess.Answer)
	if err != nil {
		// The answer comes from the catalog; a lookup failure here is an
		// upstream problem, not a bad guess.
		return nil, fmt.Errorf("answer lookup: %w", err)
	}

	hints, err := ComputeHints(guessMeta, answerMeta)
	if err != nil {
		// No mutation: an unusable snapshot must not cost the player a turn.
		var incomplete *IncompleteDataError
		if errors.As(err, &incomplete) {
			g.metrics.RecordGuess("incomplete")
		}
		return nil, err
	}

	sess.Guesses++
	if sess.Guesses >= g.maxGuesses {
		sess.Finished = true
		g.metrics.RecordGameFinished("lost")
	}
	if err := g.sessions.Put(ctx, sid, sess); err != nil {
		return nil, err
	}
	g.metrics.RecordGuess("wrong")

	return g.result(sess, hints), nil
}

// End reports the session summary without consuming anything.
func (g *Game) End(ctx context.Context, sid string) (*models.EndResult, error) {
	sess, err := g.ensure(ctx, sid)
	if err != nil {
		return nil, err
	}
	return &models.EndResult{
		Win:         sess.Won,
		Guesses:     sess.Guesses,
		GuessesLeft: g.guessesLeft(sess),
	}, nil
}

// Reset clears the session unconditionally.
func (g *Game) Reset(ctx context.Context, sid string) error {
	return g.sessions.Clear(ctx, sid)
}

// Chart proxies the chart image for the session's answer so the client never
// learns the symbol. It never mutates game state.
func (g *Game) Chart(ctx context.Context, sid, rng string) ([]byte, string, error) {
	sess, err := g.ensure(ctx, sid)
	if err != nil {
		return nil, "", err
	}
	b, contentType, err := g.charts.Chart(ctx, sess.Answer, rng)
	if err != nil {
		g.metrics.RecordError("chart_fetch")
		return nil, "", err
	}
	return b, contentType, nil
}

func (g *Game) guessesLeft(sess *models.Session) int {
	left := g.maxGuesses - sess.Guesses
	if left < 0 {
		left = 0
	}
	return left
}

func (g *Game) result(sess *models.Session, hints *models.Hints) *models.GuessResult {
	return &models.GuessResult{
		Win:         sess.Won,
		Finished:    sess.Finished,
		Guesses:     sess.Guesses,
		GuessesLeft: g.guessesLeft(sess),
		Hints:       hints,
	}
}
