// Package catalog loads the static list of guessable ticker symbols.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"Stockle/pkg/util"
)

type row struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name,omitempty"`
}

// Load reads the ticker catalog from a JSON resource. The catalog is ordered,
// case-normalized, and must be non-empty and free of duplicates. The order is
// part of the daily permutation seed, so it is preserved as written.
func Load(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tickers file: %w", err)
	}

	var rows []row
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, fmt.Errorf("parse tickers file: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("tickers file '%s' is empty", path)
	}

	symbols := make([]string, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for i, r := range rows {
		s := util.NormalizeTicker(r.Ticker)
		if s == "" {
			return nil, fmt.Errorf("tickers file entry %d has no ticker", i)
		}
		if _, dup := seen[s]; dup {
			return nil, fmt.Errorf("tickers file has duplicate entry '%s'", s)
		}
		seen[s] = struct{}{}
		symbols = append(symbols, s)
	}

	return symbols, nil
}
