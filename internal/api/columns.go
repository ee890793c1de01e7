package api

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thenoetrevino/tablero/internal/models"
	columnservice "github.com/thenoetrevino/tablero/internal/services/column"
)

func createColumn(svc columnservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var in models.ColumnInput
		if err := c.Bind(&in); err != nil {
			return err
		}
		column, err := svc.CreateColumn(c.Request().Context(), in)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, column)
	}
}

// updateColumn also serves card reordering through cardOrderIds.
func updateColumn(svc columnservice.Service, logger *slog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}
		var patch models.ColumnUpdate
		if err := bindPatch(c, logger, &patch); err != nil {
			return err
		}
		column, err := svc.UpdateColumn(c.Request().Context(), id, patch)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, column)
	}
}

func deleteColumn(svc columnservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}
		if err := svc.DeleteColumn(c.Request().Context(), id); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, deleteResponse{DeleteResult: "Column and its Cards deleted successfully!"})
	}
}

func archiveColumn(svc columnservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}
		column, err := svc.ArchiveColumn(c.Request().Context(), id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, column)
	}
}

func getArchivedColumns(svc columnservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		boardID, err := pathID(c, "id")
		if err != nil {
			return err
		}
		columns, err := svc.GetArchivedColumns(c.Request().Context(), boardID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, columns)
	}
}
