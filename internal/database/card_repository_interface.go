package database

import (
	"context"

	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/types"
)

// CardReader defines read operations for cards.
type CardReader interface {
	GetCardByID(ctx context.Context, id types.ID) (*models.Card, error)
	GetCardsByBoardID(ctx context.Context, boardID types.ID) ([]*models.Card, error)
}

// CardWriter defines write operations for cards.
type CardWriter interface {
	CreateCard(ctx context.Context, in models.CardInput) (*models.Card, error)
	UpdateCard(ctx context.Context, id types.ID, patch models.CardUpdate) (*models.Card, error)
	// RemoveCardCover unsets the cover field. Calling it on a card without a
	// cover is a no-op that still returns the card.
	RemoveCardCover(ctx context.Context, id types.ID) (*models.Card, error)
	PushCardAttachment(ctx context.Context, id types.ID, attachment models.Attachment) (*models.Card, error)
	DeleteCardsByColumnID(ctx context.Context, columnID types.ID) (int64, error)
	DeleteCardByID(ctx context.Context, id types.ID) (int64, error)
}

// CardRepository combines all card-related operations.
type CardRepository interface {
	CardReader
	CardWriter
}
