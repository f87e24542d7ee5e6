package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return e.NewContext(req, rec), rec
}

func TestAppErrorResponse(t *testing.T) {
	c, rec := newTestContext()

	appErr := UnprocessableError(CodeInvalidTicker, "no such security").WithError(errors.New("upstream said no"))
	if err := AppErrorResponse(c, appErr); err != nil {
		t.Fatalf("respond: %v", err)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	if body.OK || body.Error.Code != CodeInvalidTicker || body.Error.Message != "no such security" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestAppErrorResponseWrapped(t *testing.T) {
	c, rec := newTestContext()

	// AppError found through a wrapping chain still dictates status and code.
	wrapped := errors.Join(errors.New("context"), BadRequestError(CodeEmptyTicker, "ticker is required"))
	if err := AppErrorResponse(c, wrapped); err != nil {
		t.Fatalf("respond: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", rec.Code)
	}
}

func TestAppErrorResponseUnknownError(t *testing.T) {
	c, rec := newTestContext()

	if err := AppErrorResponse(c, errors.New("boom")); err != nil {
		t.Fatalf("respond: %v", err)
	}

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error.Code != CodeInternal {
		t.Fatalf("unexpected code %s", body.Error.Code)
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("redis down")
	appErr := InternalError(CodeInternal, "could not start game").WithError(cause)
	if !errors.Is(appErr, cause) {
		t.Fatalf("expected wrapped cause to survive errors.Is")
	}
	if appErr.Error() != "could not start game: redis down" {
		t.Fatalf("unexpected error string %q", appErr.Error())
	}
}
