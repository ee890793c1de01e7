package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/schema"
	boardservice "github.com/thenoetrevino/tablero/internal/services/board"
	cardservice "github.com/thenoetrevino/tablero/internal/services/card"
	columnservice "github.com/thenoetrevino/tablero/internal/services/column"
	userservice "github.com/thenoetrevino/tablero/internal/services/user"
	"github.com/thenoetrevino/tablero/internal/types"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	StatusCode int                     `json:"statusCode"`
	Message    string                  `json:"message"`
	Errors     []schema.FieldViolation `json:"errors,omitempty"`
}

var (
	badRequestErrors = []error{
		database.ErrInvalidArgument,
		types.ErrInvalidID,
		boardservice.ErrInvalidOwner,
		cardservice.ErrColumnMismatch,
	}
	notFoundErrors = []error{
		boardservice.ErrBoardNotFound,
		boardservice.ErrUserNotFound,
		columnservice.ErrColumnNotFound,
		columnservice.ErrBoardNotFound,
		cardservice.ErrCardNotFound,
		cardservice.ErrColumnNotFound,
		userservice.ErrUserNotFound,
		userservice.ErrBoardNotFound,
	}
	conflictErrors = []error{
		userservice.ErrEmailTaken,
		userservice.ErrUsernameTaken,
	}
)

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// statusFor classifies err. Validation wins over persistence because create
// failures carry the validation error inside a PersistenceError.
func statusFor(err error) int {
	var verr *schema.ValidationError
	var herr *echo.HTTPError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &herr):
		return herr.Code
	case isAny(err, badRequestErrors):
		return http.StatusBadRequest
	case isAny(err, notFoundErrors):
		return http.StatusNotFound
	case isAny(err, conflictErrors):
		return http.StatusConflict
	case errors.Is(err, userservice.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// errorHandler renders errors returned by handlers as errorResponse.
// Internal errors are logged and their details withheld from the client.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := statusFor(err)
		resp := errorResponse{StatusCode: status, Message: err.Error()}

		var verr *schema.ValidationError
		var herr *echo.HTTPError
		switch {
		case errors.As(err, &verr):
			resp.Message = verr.Error()
			resp.Errors = verr.Violations
		case errors.As(err, &herr):
			if msg, ok := herr.Message.(string); ok {
				resp.Message = msg
			} else {
				resp.Message = http.StatusText(status)
			}
		case status == http.StatusInternalServerError:
			logger.Error("request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err)
			resp.Message = http.StatusText(status)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, resp)
		}
		if writeErr != nil {
			logger.Error("failed to write error response", "error", writeErr)
		}
	}
}
