package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	MaxPostLength     = 140
	MaxLanguageLength = 5
)

type Post struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Body      string    `json:"body"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}

// FullPost is a post joined with the fields of its author needed for rendering.
type FullPost struct {
	Post
	Username    string `json:"username"`
	AuthorEmail string `json:"-"`
}
