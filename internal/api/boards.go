package api

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thenoetrevino/tablero/internal/models"
	boardservice "github.com/thenoetrevino/tablero/internal/services/board"
	"github.com/thenoetrevino/tablero/internal/types"
)

type memberRequest struct {
	UserID string `json:"userId"`
}

func createBoard(svc boardservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		creator, err := userIDHeader(c)
		if err != nil {
			return err
		}
		var in models.BoardInput
		if err := c.Bind(&in); err != nil {
			return err
		}
		board, err := svc.CreateBoard(c.Request().Context(), creator, in)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, board)
	}
}

func getBoard(svc boardservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}
		details, err := svc.GetBoardDetails(c.Request().Context(), id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, details)
	}
}

func updateBoard(svc boardservice.Service, logger *slog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}
		var patch models.BoardUpdate
		if err := bindPatch(c, logger, &patch); err != nil {
			return err
		}
		board, err := svc.UpdateBoard(c.Request().Context(), id, patch)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, board)
	}
}

func deleteBoard(svc boardservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}
		if err := svc.DeleteBoard(c.Request().Context(), id); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, deleteResponse{DeleteResult: "Board and its Columns deleted successfully!"})
	}
}

func addBoardMember(svc boardservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		boardID, err := pathID(c, "id")
		if err != nil {
			return err
		}
		var req memberRequest
		if err := c.Bind(&req); err != nil {
			return err
		}
		userID, err := types.ParseID(req.UserID)
		if err != nil {
			return err
		}
		board, err := svc.AddMember(c.Request().Context(), boardID, userID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, board)
	}
}

func getUserBoards(svc boardservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := pathID(c, "id")
		if err != nil {
			return err
		}
		boards, err := svc.GetBoardsForUser(c.Request().Context(), userID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, boards)
	}
}
