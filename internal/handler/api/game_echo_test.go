package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Stockle/internal/daily"
	"Stockle/internal/domain/models"
	drepo "Stockle/internal/domain/repository"
	"Stockle/internal/session"
	"Stockle/internal/usecase"
	"Stockle/pkg/cache"
	xlogger "Stockle/pkg/logger"

	"github.com/labstack/echo/v4"
)

type stubQuotes struct {
	metas     map[string]*models.TickerMeta
	chart     []byte
	chartType string
}

func (s *stubQuotes) GetMeta(_ context.Context, symbol string) (*models.TickerMeta, error) {
	if m, ok := s.metas[symbol]; ok {
		return m, nil
	}
	return nil, drepo.ErrNoData
}

func (s *stubQuotes) Chart(context.Context, string, string) ([]byte, string, error) {
	ct := s.chartType
	if ct == "" {
		ct = "image/png"
	}
	return s.chart, ct, nil
}

func meta(symbol string, base float64) *models.TickerMeta {
	price := base
	high := base + 1
	low := base - 1
	vol := base * 1000
	mcap := base * 1e9
	return &models.TickerMeta{
		Symbol: symbol, Price: &price, DayHigh: &high, DayLow: &low,
		AvgVolume: &vol, MarketCap: &mcap,
	}
}

type fixture struct {
	e      *echo.Echo
	answer string
	other  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	catalog := []string{"AAPL", "MSFT"}
	sel, err := daily.New("handler-secret", catalog, "2025-01-01", "UTC")
	if err != nil {
		t.Fatalf("selector: %v", err)
	}

	quotes := &stubQuotes{
		metas: map[string]*models.TickerMeta{
			"AAPL": meta("AAPL", 100),
			"MSFT": meta("MSFT", 150),
		},
		chart:     []byte("chart-bytes"),
		chartType: "image/gif",
	}

	mc := cache.NewMemoryCache()
	t.Cleanup(func() { _ = mc.Close() })
	sessions := session.NewStore(mc, time.Hour)

	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	game := usecase.NewGame(sel, quotes, quotes, sessions, 6, nil, l)
	h := NewGameHandler(l, game, RateLimitConfig{})

	e := echo.New()
	h.RegisterRoutes(e)

	answer := sel.Today()
	other := "AAPL"
	if answer == "AAPL" {
		other = "MSFT"
	}
	return &fixture{e: e, answer: answer, other: other}
}

func (f *fixture) request(t *testing.T, method, target, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode(t, rec)
	if ok, _ := body["ok"].(bool); ok {
		t.Fatalf("expected ok=false body, got %v", body)
	}
	errObj, _ := body["error"].(map[string]interface{})
	code, _ := errObj["code"].(string)
	return code
}

func TestStartSetsCookieAndResets(t *testing.T) {
	f := newFixture(t)

	rec := f.request(t, http.MethodPost, "/api/start", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	body := decode(t, rec)
	if body["ok"] != true || body["guesses"] != float64(0) || body["max_guesses"] != float64(6) {
		t.Fatalf("unexpected body %v", body)
	}

	found := false
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == sessionCookie && ck.Value != "" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected session cookie to be set")
	}
}

func TestGuessWrongReturnsHints(t *testing.T) {
	f := newFixture(t)

	rec := f.request(t, http.MethodPost, "/api/guess", `{"ticker":"`+f.other+`"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	body := decode(t, rec)
	if body["guesses_left"] != float64(5) {
		t.Fatalf("unexpected guesses_left %v", body["guesses_left"])
	}
	data, _ := body["data"].(map[string]interface{})
	if data == nil || data["price"] == nil {
		t.Fatalf("expected hint data, got %v", body)
	}
}

func TestGuessWin(t *testing.T) {
	f := newFixture(t)

	rec := f.request(t, http.MethodPost, "/api/guess", `{"ticker":"`+f.answer+`"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	body := decode(t, rec)
	if body["win"] != true || body["guesses"] != float64(1) {
		t.Fatalf("unexpected win body %v", body)
	}
}

func TestGuessEmptyTicker(t *testing.T) {
	f := newFixture(t)

	rec := f.request(t, http.MethodPost, "/api/guess", `{"ticker":"   "}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "EMPTY_TICKER" {
		t.Fatalf("unexpected code %s", code)
	}
}

func TestGuessMissingBody(t *testing.T) {
	f := newFixture(t)

	rec := f.request(t, http.MethodPost, "/api/guess", `{}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "EMPTY_TICKER" {
		t.Fatalf("unexpected code %s", code)
	}
}

func TestGuessInvalidTicker(t *testing.T) {
	f := newFixture(t)

	rec := f.request(t, http.MethodPost, "/api/guess", `{"ticker":"ZZZZ"}`, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "INVALID_TICKER" {
		t.Fatalf("unexpected code %s", code)
	}
}

func TestSessionContinuityViaCookie(t *testing.T) {
	f := newFixture(t)

	first := f.request(t, http.MethodPost, "/api/guess", `{"ticker":"`+f.other+`"}`, nil)
	cookies := first.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("expected session cookie")
	}

	second := f.request(t, http.MethodPost, "/api/guess", `{"ticker":"`+f.other+`"}`, cookies)
	body := decode(t, second)
	if body["guesses"] != float64(2) {
		t.Fatalf("cookie did not carry session: %v", body)
	}
}

func TestEndAndReset(t *testing.T) {
	f := newFixture(t)

	win := f.request(t, http.MethodPost, "/api/guess", `{"ticker":"`+f.answer+`"}`, nil)
	cookies := win.Result().Cookies()

	end := f.request(t, http.MethodGet, "/api/end", "", cookies)
	body := decode(t, end)
	if body["win"] != true || body["guesses"] != float64(1) {
		t.Fatalf("unexpected end body %v", body)
	}

	reset := f.request(t, http.MethodPost, "/api/reset", "", cookies)
	if decode(t, reset)["ok"] != true {
		t.Fatalf("unexpected reset body")
	}

	end = f.request(t, http.MethodGet, "/api/end", "", cookies)
	body = decode(t, end)
	if body["win"] != false || body["guesses"] != float64(0) {
		t.Fatalf("reset did not clear state: %v", body)
	}
}

func TestChartProxy(t *testing.T) {
	f := newFixture(t)

	rec := f.request(t, http.MethodGet, "/api/chart?range=1mo", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "chart-bytes" {
		t.Fatalf("unexpected chart body %q", rec.Body.String())
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "image/gif" {
		t.Fatalf("upstream content type not propagated, got %q", ct)
	}
}

func TestGuessRateLimited(t *testing.T) {
	f := newFixture(t)

	// Rebuild the handler with a tight limit over the same kind of fixture.
	l, _ := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	sel, _ := daily.New("handler-secret", []string{"AAPL", "MSFT"}, "2025-01-01", "UTC")
	quotes := &stubQuotes{metas: map[string]*models.TickerMeta{
		"AAPL": meta("AAPL", 100),
		"MSFT": meta("MSFT", 150),
	}}
	mc := cache.NewMemoryCache()
	t.Cleanup(func() { _ = mc.Close() })
	game := usecase.NewGame(sel, quotes, quotes, session.NewStore(mc, time.Hour), 6, nil, l)
	h := NewGameHandler(l, game, RateLimitConfig{Enabled: true, Burst: 1, RefillPerSec: 0.001})
	e := echo.New()
	h.RegisterRoutes(e)
	f.e = e

	first := f.request(t, http.MethodPost, "/api/guess", `{"ticker":"`+f.other+`"}`, nil)
	cookies := first.Result().Cookies()

	second := f.request(t, http.MethodPost, "/api/guess", `{"ticker":"`+f.other+`"}`, cookies)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", second.Code)
	}
	if code := errorCode(t, second); code != "RATE_LIMITED" {
		t.Fatalf("unexpected code %s", code)
	}
}
