package dto

import (
	"time"

	"github.com/MicroblogApp/social-service/internal/model"
	"github.com/google/uuid"
)

type CreatePostDto struct {
	Message string `json:"message" binding:"required,max=2000"`
}

type UpdatePostDto struct {
	Message string `json:"message" binding:"required,max=2000"`
}

// GetPostDto is the write (create/update) shape: the raw row, no
// denormalized author fields.
type GetPostDto struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Message   string    `json:"message"`
	ProfileID uuid.UUID `json:"profile_id"`
}

// GetPostListItemDto is the feed list shape: the row plus the author's
// username.
type GetPostListItemDto struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Message   string    `json:"message"`
	ProfileID uuid.UUID `json:"profile_id"`
	Username  string    `json:"username"`
}

// GetPostDetailsDto is the single-resource shape: author name fields instead
// of the raw profile reference.
type GetPostDetailsDto struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Message   string    `json:"message"`
	Username  string    `json:"username"`
	FirstName string    `json:"user_first_name"`
	LastName  string    `json:"user_last_name"`
}

func GetPostDtoFromPost(post model.Post) *GetPostDto {
	return &GetPostDto{
		ID: post.ID,
		CreatedAt: post.CreatedAt,
		Message: post.Message,
		ProfileID: post.ProfileID,
	}
}

func GetPostListItemDtoFromFeedPost(post model.FeedPost) *GetPostListItemDto {
	return &GetPostListItemDto{
		ID: post.ID,
		CreatedAt: post.CreatedAt,
		Message: post.Message,
		ProfileID: post.ProfileID,
		Username: post.AuthorUsername,
	}
}

func GetPostDetailsDtoFromFeedPost(post model.FeedPost) *GetPostDetailsDto {
	return &GetPostDetailsDto{
		ID: post.ID,
		CreatedAt: post.CreatedAt,
		Message: post.Message,
		Username: post.AuthorUsername,
		FirstName: post.AuthorFirstName,
		LastName: post.AuthorLastName,
	}
}

type RabbitMQNewPostDto struct {
	PostID    string `json:"post_id"`
	ProfileID string `json:"profile_id"`
	Message   string `json:"message"`
}
