package api

import (
	"errors"
	"net/http"

	"Stockle/internal/domain/models"
	"Stockle/internal/service/ratelimit"
	"Stockle/internal/usecase"
	xhttp "Stockle/pkg/http"
	xlogger "Stockle/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const sessionCookie = "stockle_sid"

// RateLimitConfig throttles guess spam per session.
type RateLimitConfig struct {
	Enabled      bool
	Burst        float64
	RefillPerSec float64
}

// GameHandler implements the Echo-based HTTP surface of the game.
type GameHandler struct {
	logger    *xlogger.Logger
	game      *usecase.Game
	limiter   *ratelimit.Limiter
	rateLimit RateLimitConfig
}

func NewGameHandler(logger *xlogger.Logger, game *usecase.Game, rl RateLimitConfig) *GameHandler {
	return &GameHandler{
		logger:    logger,
		game:      game,
		limiter:   ratelimit.New(),
		rateLimit: rl,
	}
}

func (h *GameHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/start", h.Start)
	g.POST("/guess", h.Guess)
	g.GET("/end", h.End)
	g.POST("/end", h.End)
	g.POST("/reset", h.Reset)
	g.GET("/chart", h.Chart)
}

// sessionID returns the opaque session id from the cookie, minting one and
// setting the cookie when absent.
func (h *GameHandler) sessionID(c echo.Context) string {
	if ck, err := c.Cookie(sessionCookie); err == nil && ck.Value != "" {
		return ck.Value
	}

	sid := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sid
}

type startResponse struct {
	OK         bool `json:"ok"`
	Guesses    int  `json:"guesses"`
	MaxGuesses int  `json:"max_guesses"`
}

func (h *GameHandler) Start(c echo.Context) error {
	sid := h.sessionID(c)

	res, err := h.game.Start(c.Request().Context(), sid)
	if err != nil {
		h.logger.Error("start failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError(xhttp.CodeInternal, "could not start game").WithError(err))
	}
	return xhttp.SuccessResponse(c, startResponse{
		OK:         true,
		Guesses:    res.Guesses,
		MaxGuesses: res.MaxGuesses,
	})
}

type guessResponse struct {
	OK          bool          `json:"ok"`
	Win         *bool         `json:"win,omitempty"`
	Guesses     int           `json:"guesses"`
	GuessesLeft int           `json:"guesses_left"`
	Data        *models.Hints `json:"data,omitempty"`
}

func (h *GameHandler) Guess(c echo.Context) error {
	sid := h.sessionID(c)

	if h.rateLimit.Enabled && !h.limiter.Allow(sid, h.rateLimit.Burst, h.rateLimit.RefillPerSec) {
		return xhttp.AppErrorResponse(c, xhttp.NewAppError(xhttp.CodeRateLimited, "too many guesses, slow down", http.StatusTooManyRequests))
	}

	req := &models.GuessRequest{}
	if verrs := xhttp.ReadAndValidateRequest(c, req); verrs != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(xhttp.CodeEmptyTicker, "ticker is required"))
	}

	res, err := h.game.Guess(c.Request().Context(), sid, req.Ticker)
	if err != nil {
		return h.guessError(c, err)
	}

	resp := guessResponse{
		OK:          true,
		Guesses:     res.Guesses,
		GuessesLeft: res.GuessesLeft,
		Data:        res.Hints,
	}
	if res.Finished {
		win := res.Win
		resp.Win = &win
	}
	return xhttp.SuccessResponse(c, resp)
}

// guessError translates usecase errors into wire-level AppErrors.
func (h *GameHandler) guessError(c echo.Context, err error) error {
	var appErr *xhttp.AppError
	var incomplete *usecase.IncompleteDataError
	switch {
	case errors.Is(err, usecase.ErrEmptyTicker):
		appErr = xhttp.BadRequestError(xhttp.CodeEmptyTicker, "ticker is required")
	case errors.Is(err, usecase.ErrInvalidTicker):
		appErr = xhttp.UnprocessableError(xhttp.CodeInvalidTicker, "ticker does not resolve to a security")
	case errors.As(err, &incomplete):
		appErr = xhttp.UnprocessableError(xhttp.CodeIncompleteData, incomplete.Error())
	default:
		h.logger.Error("guess failed", xlogger.Error(err))
		appErr = xhttp.InternalError(xhttp.CodeNoHints, "could not compute hints").WithError(err)
	}
	return xhttp.AppErrorResponse(c, appErr)
}

type endResponse struct {
	OK          bool `json:"ok"`
	Win         bool `json:"win"`
	Guesses     int  `json:"guesses"`
	GuessesLeft int  `json:"guesses_left"`
}

func (h *GameHandler) End(c echo.Context) error {
	sid := h.sessionID(c)

	res, err := h.game.End(c.Request().Context(), sid)
	if err != nil {
		h.logger.Error("end failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError(xhttp.CodeInternal, "could not read game state").WithError(err))
	}
	return xhttp.SuccessResponse(c, endResponse{
		OK:          true,
		Win:         res.Win,
		Guesses:     res.Guesses,
		GuessesLeft: res.GuessesLeft,
	})
}

func (h *GameHandler) Reset(c echo.Context) error {
	sid := h.sessionID(c)

	if err := h.game.Reset(c.Request().Context(), sid); err != nil {
		h.logger.Error("reset failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError(xhttp.CodeInternal, "could not reset game").WithError(err))
	}
	return xhttp.SuccessResponse(c, map[string]bool{"ok": true})
}

func (h *GameHandler) Chart(c echo.Context) error {
	sid := h.sessionID(c)

	req := &models.ChartRequest{}
	if verrs := xhttp.ReadAndValidateRequest(c, req); verrs != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(xhttp.CodeChartFailed, "invalid chart range"))
	}

	b, contentType, err := h.game.Chart(c.Request().Context(), sid, req.Range)
	if err != nil {
		h.logger.Error("chart proxy failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError(xhttp.CodeChartFailed, "could not fetch chart").WithError(err))
	}
	return c.Blob(http.StatusOK, contentType, b)
}
