package api

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thenoetrevino/tablero/internal/models"
	cardservice "github.com/thenoetrevino/tablero/internal/services/card"
)

func createCard(svc cardservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var in models.CardInput
		if err := c.Bind(&in); err != nil {
			return err
		}
		card, err := svc.CreateCard(c.Request().Context(), in)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, card)
	}
}

func getCard(svc cardservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}
		card, err := svc.GetCardByID(c.Request().Context(), id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, card)
	}
}

// updateCard moves the card when columnId names a different column.
func updateCard(svc cardservice.Service, logger *slog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}
		var patch models.CardUpdate
		if err := bindPatch(c, logger, &patch); err != nil {
			return err
		}
		card, err := svc.UpdateCard(c.Request().Context(), id, patch)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, card)
	}
}

func deleteCard(svc cardservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}
		if err := svc.DeleteCard(c.Request().Context(), id); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, deleteResponse{DeleteResult: "Card deleted successfully!"})
	}
}

func removeCardCover(svc cardservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}
		card, err := svc.RemoveCover(c.Request().Context(), id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, card)
	}
}

func addCardAttachment(svc cardservice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}
		var in models.AttachmentInput
		if err := c.Bind(&in); err != nil {
			return err
		}
		card, err := svc.AddAttachment(c.Request().Context(), id, in)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, card)
	}
}
