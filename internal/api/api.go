// Package api maps the HTTP routes onto the services.
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/thenoetrevino/tablero/internal/app"
	"github.com/thenoetrevino/tablero/internal/config"
)

// NewServer builds an Echo instance with the middleware chain and every
// route registered.
func NewServer(a *app.App, cfg config.ServerConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(a.Logger)

	e.Use(RequestLogger(a.Logger))
	e.Use(Metrics(a.Metrics))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, HeaderUserID},
	}))

	Register(e, a)
	return e
}

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, a *app.App) {
	e.GET("/healthz", healthz(a))
	e.GET("/metrics", echo.WrapHandler(a.Metrics.Handler()))

	v1 := e.Group("/v1")

	v1.POST("/boards", createBoard(a.BoardService))
	v1.GET("/boards/:id", getBoard(a.BoardService))
	v1.PUT("/boards/:id", updateBoard(a.BoardService, a.Logger))
	v1.DELETE("/boards/:id", deleteBoard(a.BoardService))
	v1.POST("/boards/:id/members", addBoardMember(a.BoardService))
	v1.GET("/boards/:id/archived-columns", getArchivedColumns(a.ColumnService))
	v1.GET("/users/:id/boards", getUserBoards(a.BoardService))

	v1.POST("/columns", createColumn(a.ColumnService))
	v1.PUT("/columns/:id", updateColumn(a.ColumnService, a.Logger))
	v1.DELETE("/columns/:id", deleteColumn(a.ColumnService))
	v1.PUT("/columns/archive/:id", archiveColumn(a.ColumnService))

	v1.POST("/cards", createCard(a.CardService))
	v1.GET("/cards/:id", getCard(a.CardService))
	v1.PUT("/cards/:id", updateCard(a.CardService, a.Logger))
	v1.DELETE("/cards/:id", deleteCard(a.CardService))
	v1.DELETE("/cards/:id/cover", removeCardCover(a.CardService))
	v1.POST("/cards/:id/attachments", addCardAttachment(a.CardService))

	v1.POST("/users", registerUser(a.UserService))
	v1.GET("/users", listUsers(a.UserService))
	v1.POST("/users/login", login(a.UserService))
	v1.POST("/users/members", getMembers(a.UserService))
	v1.GET("/users/:id", getUser(a.UserService))
	v1.PUT("/users/:id", updateUser(a.UserService, a.Logger))
	v1.PUT("/users/:id/starred/:boardId", starBoard(a.UserService))
	v1.DELETE("/users/:id/starred/:boardId", unstarBoard(a.UserService))
}

type healthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
	Error  string `json:"error,omitempty"`
}

func healthz(a *app.App) echo.HandlerFunc {
	return func(c echo.Context) error {
		uptime := a.Metrics.GetSnapshot().Uptime
		if err := a.Store().Ping(c.Request().Context()); err != nil {
			a.Logger.Error("health check failed", "error", err)
			return c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Uptime: uptime, Error: err.Error()})
		}
		return c.JSON(http.StatusOK, healthResponse{Status: "ok", Uptime: uptime})
	}
}

// deleteResponse is the body returned by hard deletes.
type deleteResponse struct {
	DeleteResult string `json:"deleteResult"`
}
