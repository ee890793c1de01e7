package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thenoetrevino/tablero/internal/models"
	userservice "github.com/thenoetrevino/tablero/internal/services/user"
	"github.com/thenoetrevino/tablero/internal/types"
)

type membersRequest struct {
	IDs []string `json:"ids"`
}

func registerUser(svc userservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var in models.UserInput
		if err := c.Bind(&in); err != nil {
			return err
		}
		user, err := svc.Register(c.Request().Context(), in)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, user)
	}
}

func login(svc userservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var creds models.Credentials
		if err := c.Bind(&creds); err != nil {
			return err
		}
		user, err := svc.Authenticate(c.Request().Context(), creds)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, user)
	}
}

// listUsers searches by email substring when the email query is present.
func listUsers(svc userservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		var (
			users []*models.User
			err   error
		)
		if c.QueryParams().Has("email") {
			users, err = svc.SearchByEmail(ctx, c.QueryParam("email"))
		} else {
			users, err = svc.ListUsers(ctx)
		}
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, users)
	}
}

func getMembers(svc userservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req membersRequest
		if err := c.Bind(&req); err != nil {
			return err
		}
		users, err := svc.GetMembers(c.Request().Context(), req.IDs)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, users)
	}
}

func getUser(svc userservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}
		user, err := svc.GetUser(c.Request().Context(), id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, user)
	}
}

func updateUser(svc userservice.Service, logger *slog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}
		var patch models.UserUpdate
		if err := bindPatch(c, logger, &patch); err != nil {
			return err
		}
		user, err := svc.UpdateUser(c.Request().Context(), id, patch)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, user)
	}
}

func starBoard(svc userservice.Service) echo.HandlerFunc {
	return starHandler(svc.StarBoard)
}

func unstarBoard(svc userservice.Service) echo.HandlerFunc {
	return starHandler(svc.UnstarBoard)
}

type starFunc func(ctx context.Context, userID, boardID types.ID) (*models.User, error)

func starHandler(op starFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := pathID(c, "id")
		if err != nil {
			return err
		}
		boardID, err := pathID(c, "boardId")
		if err != nil {
			return err
		}
		user, err := op(c.Request().Context(), userID, boardID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, user)
	}
}
