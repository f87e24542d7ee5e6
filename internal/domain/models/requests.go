package models

// Requests for game HTTP endpoints. Defined in domain for consistency and reuse.

type GuessRequest struct {
	Ticker string `json:"ticker" validate:"required"`
}

type ChartRequest struct {
	Range string `query:"range" json:"range" default:"1mo" validate:"oneof=1d 5d 1mo 3mo 6mo 1y"`
}
