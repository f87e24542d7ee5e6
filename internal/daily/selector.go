// Package daily derives the answer ticker for a calendar day.
//
// The answer is never stored: a secret-keyed shuffle of the catalog gives a
// fixed permutation, and the day count since a configured anchor date indexes
// into it. Any replica with the same secret and catalog computes the same
// answer for the same day, across restarts.
package daily

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"Stockle/pkg/util"
)

// Selector picks the daily answer from a catalog.
type Selector struct {
	perm   []string
	anchor time.Time
	loc    *time.Location
	now    func() time.Time
}

// Option configures a Selector.
type Option func(*Selector)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Selector) {
		s.now = now
	}
}

// New builds a Selector. The permutation is computed once and is fully
// determined by the secret and the catalog contents and order.
func New(secret string, symbols []string, anchorDate, timezone string, opts ...Option) (*Selector, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("daily selector: catalog is empty")
	}
	if secret == "" {
		return nil, fmt.Errorf("daily selector: secret is empty")
	}

	anchor, err := util.ParseDate(anchorDate)
	if err != nil {
		return nil, fmt.Errorf("daily selector: parse anchor date: %w", err)
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("daily selector: load timezone: %w", err)
	}

	s := &Selector{
		perm:   shuffledCatalog(secret, symbols),
		anchor: anchor,
		loc:    loc,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// shuffledCatalog derives a deterministic permutation of the catalog from the
// secret. The seed string is order-sensitive so editing the catalog reshuffles.
func shuffledCatalog(secret string, symbols []string) []string {
	seedStr := secret + "|" + strings.Join(symbols, "|")
	hash := sha256.Sum256([]byte(seedStr))
	seed := int64(binary.BigEndian.Uint32(hash[:4]))

	rng := rand.New(rand.NewSource(seed))
	perm := make([]string, len(symbols))
	copy(perm, symbols)
	rng.Shuffle(len(perm), func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})
	return perm
}

// DaysSinceAnchor counts whole calendar days from the anchor date to t,
// evaluated in the configured zone.
func (s *Selector) DaysSinceAnchor(t time.Time) int {
	return util.DaysBetween(s.anchor, t.In(s.loc))
}

// PickForDate returns the answer for the calendar day containing t.
func (s *Selector) PickForDate(t time.Time) string {
	n := len(s.perm)
	idx := s.DaysSinceAnchor(t) % n
	if idx < 0 {
		idx += n
	}
	return s.perm[idx]
}

// Today returns the answer for the current calendar day in the configured zone.
func (s *Selector) Today() string {
	return s.PickForDate(s.now())
}

// Permutation returns a copy of the shuffled catalog.
func (s *Selector) Permutation() []string {
	out := make([]string, len(s.perm))
	copy(out, s.perm)
	return out
}
