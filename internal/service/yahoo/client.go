// Package yahoo implements the market data provider against Yahoo Finance.
package yahoo

import (
	"context"
	"fmt"
	"io"

	"Stockle/internal/domain/models"
	drepo "Stockle/internal/domain/repository"
	xhttp "Stockle/pkg/http"
)

// Yahoo rejects requests without a browser-ish User-Agent.
const userAgent = "Mozilla/5.0 (compatible; stockle/1.0)"

// Client implements a QuoteProvider backed by the Yahoo Finance quote API.
type Client struct {
	baseURL  string
	chartURL string
	http     *xhttp.Client
}

// New creates a new Yahoo quote provider.
func New(baseURL, chartURL string, httpClient *xhttp.Client) drepo.QuoteProvider {
	return &Client{
		baseURL:  baseURL,
		chartURL: chartURL,
		http:     httpClient,
	}
}

type quoteResult struct {
	Symbol                   string   `json:"symbol"`
	RegularMarketPrice       *float64 `json:"regularMarketPrice"`
	RegularMarketDayHigh     *float64 `json:"regularMarketDayHigh"`
	RegularMarketDayLow      *float64 `json:"regularMarketDayLow"`
	AverageDailyVolume3Month *float64 `json:"averageDailyVolume3Month"`
	MarketCap                *float64 `json:"marketCap"`
}

type quoteResponse struct {
	QuoteResponse struct {
		Result []quoteResult `json:"result"`
		Error  interface{}   `json:"error"`
	} `json:"quoteResponse"`
}

// GetMeta fetches the metadata snapshot for one symbol.
// Returns repository.ErrNoData when the symbol does not resolve.
func (c *Client) GetMeta(ctx context.Context, symbol string) (*models.TickerMeta, error) {
	var res quoteResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/v7/finance/quote",
		Headers: map[string]string{
			"User-Agent": userAgent,
		},
		QueryParams: map[string][]string{
			"symbols": {symbol},
		},
	}, &res)
	if err != nil {
		return nil, fmt.Errorf("yahoo quote %s: %w", symbol, err)
	}

	if len(res.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("yahoo quote %s: %w", symbol, drepo.ErrNoData)
	}

	q := res.QuoteResponse.Result[0]
	return &models.TickerMeta{
		Symbol:    symbol,
		Price:     q.RegularMarketPrice,
		DayHigh:   q.RegularMarketDayHigh,
		DayLow:    q.RegularMarketDayLow,
		AvgVolume: q.AverageDailyVolume3Month,
		MarketCap: q.MarketCap,
	}, nil
}

// Chart fetches the raw chart image bytes for a symbol and range, along with
// the upstream content type.
func (c *Client) Chart(ctx context.Context, symbol, rng string) ([]byte, string, error) {
	resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.chartURL,
		Headers: map[string]string{
			"User-Agent": userAgent,
		},
		QueryParams: map[string][]string{
			"s": {symbol},
			"t": {rng},
		},
	})
	if err != nil {
		return nil, "", fmt.Errorf("yahoo chart %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("yahoo chart %s: unexpected status %d", symbol, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("yahoo chart %s: read body: %w", symbol, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}
	return body, contentType, nil
}
