package models

import (
	"time"

	"github.com/thenoetrevino/tablero/internal/types"
)

// Card is a task unit. BoardID never changes; ColumnID changes when the card
// moves between columns.
type Card struct {
	ID          types.ID     `bson:"_id" json:"_id"`
	BoardID     types.ID     `bson:"boardId" json:"boardId"`
	ColumnID    types.ID     `bson:"columnId" json:"columnId"`
	Title       string       `bson:"title" json:"title"`
	Description string       `bson:"description,omitempty" json:"description,omitempty"`
	Attachment  []Attachment `bson:"attachment" json:"attachment"`
	Cover       string       `bson:"cover,omitempty" json:"cover,omitempty"`
	CreatedAt   time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt   *time.Time   `bson:"updatedAt" json:"updatedAt"`
	Destroy     bool         `bson:"_destroy" json:"_destroy"`
}

// Attachment is one file record on a card.
type Attachment struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	URL         string    `bson:"url" json:"url"`
	ContentType string    `bson:"contentType,omitempty" json:"contentType,omitempty"`
	Size        int64     `bson:"size" json:"size"`
	UploadedAt  time.Time `bson:"uploadedAt" json:"uploadedAt"`
}

// CardInput is a candidate card as received from a client.
type CardInput struct {
	BoardID     string       `json:"boardId"`
	ColumnID    string       `json:"columnId"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Cover       string       `json:"cover,omitempty"`
	Attachment  []Attachment `json:"attachment,omitempty"`
}

// CardUpdate is a partial update. There is no BoardID or CreatedAt field, so
// clients sending them have those keys dropped during decoding.
type CardUpdate struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	ColumnID    *string    `json:"columnId,omitempty"`
	Cover       *string    `json:"cover,omitempty"`
	Destroy     *bool      `json:"_destroy,omitempty"`
	UpdatedAt   *time.Time `json:"-"`
}

// AttachmentInput describes a file to attach to a card.
type AttachmentInput struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	ContentType string `json:"contentType,omitempty"`
	Size        int64  `json:"size"`
}
