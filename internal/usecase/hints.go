package usecase

import (
	"fmt"

	"Stockle/internal/domain/models"
)

// IncompleteDataError reports a symbol whose snapshot is missing a hint field.
// Either side of the comparison can trigger it; the guess is never charged.
type IncompleteDataError struct {
	Symbol string
	Field  string
}

func (e *IncompleteDataError) Error() string {
	return fmt.Sprintf("incomplete data for %s: missing %s", e.Symbol, e.Field)
}

// ComputeHints returns the five signed guess-minus-answer deltas.
// Both snapshots must be complete; a missing field on either side is an
// IncompleteDataError, never a silent zero. Values are raw, unrounded.
func ComputeHints(guess, answer *models.TickerMeta) (*models.Hints, error) {
	if field, ok := guess.Complete(); !ok {
		return nil, &IncompleteDataError{Symbol: guess.Symbol, Field: field}
	}
	if field, ok := answer.Complete(); !ok {
		return nil, &IncompleteDataError{Symbol: answer.Symbol, Field: field}
	}

	return &models.Hints{
		PriceDiff:     *guess.Price - *answer.Price,
		DayHighDiff:   *guess.DayHigh - *answer.DayHigh,
		DayLowDiff:    *guess.DayLow - *answer.DayLow,
		AvgVolumeDiff: *guess.AvgVolume - *answer.AvgVolume,
		MarketCapDiff: *guess.MarketCap - *answer.MarketCap,
	}, nil
}
