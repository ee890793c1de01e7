package models

import (
	"time"

	"github.com/thenoetrevino/tablero/internal/types"
)

// User is an account. Password holds whatever the caller stored; the user
// service stores a bcrypt hash.
type User struct {
	ID          types.ID   `bson:"_id" json:"_id"`
	Email       string     `bson:"email" json:"email"`
	Username    string     `bson:"username" json:"username"`
	FullName    string     `bson:"fullName" json:"fullName"`
	Password    string     `bson:"password" json:"-"`
	AvatarColor string     `bson:"avatarColor" json:"avatarColor"`
	StarredIDs  []types.ID `bson:"starredIds" json:"starredIds"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   *time.Time `bson:"updatedAt" json:"updatedAt"`
	Destroy     bool       `bson:"_destroy" json:"_destroy"`
}

// UserInput is a candidate user as received from a client.
type UserInput struct {
	Email       string   `json:"email"`
	Username    string   `json:"username"`
	FullName    string   `json:"fullName"`
	Password    string   `json:"password"`
	AvatarColor string   `json:"avatarColor"`
	StarredIDs  []string `json:"starredIds,omitempty"`
}

// UserUpdate is a partial update.
type UserUpdate struct {
	Username    *string    `json:"username,omitempty"`
	FullName    *string    `json:"fullName,omitempty"`
	Password    *string    `json:"password,omitempty"`
	AvatarColor *string    `json:"avatarColor,omitempty"`
	Destroy     *bool      `json:"_destroy,omitempty"`
	UpdatedAt   *time.Time `json:"-"`
}

// Credentials is a login attempt.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
