package models

// TickerMeta is a point-in-time snapshot of a security's metrics.
// Fields are pointers because the upstream provider may omit any of them.
type TickerMeta struct {
	Symbol    string   `json:"symbol"`
	Price     *float64 `json:"price"`
	DayHigh   *float64 `json:"day_high"`
	DayLow    *float64 `json:"day_low"`
	AvgVolume *float64 `json:"avg_volume"`
	MarketCap *float64 `json:"market_cap"`
}

// Complete reports whether every hint field is present, and names the first
// missing field when not.
func (m *TickerMeta) Complete() (string, bool) {
	switch {
	case m.Price == nil:
		return "price", false
	case m.DayHigh == nil:
		return "day_high", false
	case m.DayLow == nil:
		return "day_low", false
	case m.AvgVolume == nil:
		return "avg_volume", false
	case m.MarketCap == nil:
		return "market_cap", false
	}
	return "", true
}

// Hints holds the signed guess-minus-answer deltas for one guess.
// Positive means the guessed ticker's value exceeds the answer's.
type Hints struct {
	PriceDiff     float64 `json:"price"`
	DayHighDiff   float64 `json:"day_high"`
	DayLowDiff    float64 `json:"day_low"`
	AvgVolumeDiff float64 `json:"avg_volume"`
	MarketCapDiff float64 `json:"market_cap"`
}
