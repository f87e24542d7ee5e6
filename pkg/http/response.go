package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// SuccessResponse writes a success payload. The payload carries its own ok flag.
func SuccessResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

// ErrorResponseWith writes an {ok:false, error:{code,message}} body with the given status.
func ErrorResponseWith(c echo.Context, status int, code, message string) error {
	return c.JSON(status, ErrorResponse{
		OK:    false,
		Error: ErrorBody{Code: code, Message: message},
	})
}

// AppErrorResponse writes an application error response.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return ErrorResponseWith(c, appErr.Status, appErr.Code, appErr.Message)
	}
	return ErrorResponseWith(c, http.StatusInternalServerError, CodeInternal, "something went wrong")
}
