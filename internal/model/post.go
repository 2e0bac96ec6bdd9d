package model

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID `json:"id"`
	ProfileID uuid.UUID `json:"profile_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FeedPost is a post row joined with its author's profile, as the feed
// queries return it.
type FeedPost struct {
	Post
	AuthorUserID    uuid.UUID `json:"-"`
	AuthorUsername  string    `json:"username"`
	AuthorFirstName string    `json:"first_name"`
	AuthorLastName  string    `json:"last_name"`
}
