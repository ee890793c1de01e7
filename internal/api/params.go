package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thenoetrevino/tablero/internal/schema"
	"github.com/thenoetrevino/tablero/internal/types"
)

// pathID parses a path parameter as an identifier. Malformed values map to 400.
func pathID(c echo.Context, name string) (types.ID, error) {
	return types.ParseID(c.Param(name))
}

// userIDHeader returns the acting user named by HeaderUserID.
func userIDHeader(c echo.Context) (types.ID, error) {
	v := c.Request().Header.Get(HeaderUserID)
	if v == "" {
		return types.NilID, echo.NewHTTPError(http.StatusBadRequest, HeaderUserID+" header is required")
	}
	return types.ParseID(v)
}

// bindPatch decodes a partial update into dst. Keys naming immutable fields
// are dropped before decoding and logged at debug.
func bindPatch(c echo.Context, logger *slog.Logger, dst any) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable request body")
	}
	if len(body) == 0 {
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "request body must be a JSON object")
	}
	kept, dropped := schema.StripImmutable(raw)
	if len(dropped) > 0 {
		logger.Debug("ignoring immutable fields", "route", c.Path(), "fields", dropped)
	}

	clean, err := json.Marshal(kept)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(clean, dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
