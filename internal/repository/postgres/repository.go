package postgres

import (
	"context"

	"github.com/MicroblogApp/social-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type User interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type Profile interface {
	Create(ctx context.Context, profile model.Profile) (*model.Profile, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.ProfileWithEmail, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	SearchByUsername(ctx context.Context, username string) ([]*model.Profile, error)
	UpdateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type Subscription interface {
	Create(ctx context.Context, sub model.Subscription) (*model.Subscription, error)
	FindBySubscriber(ctx context.Context, subscriberID uuid.UUID) ([]*model.Subscription, error)
	FindByTarget(ctx context.Context, targetID uuid.UUID) ([]*model.Subscription, error)
	DeleteBySubscriber(ctx context.Context, id uuid.UUID, subscriberID uuid.UUID) (bool, error)
	DeleteByTarget(ctx context.Context, id uuid.UUID, targetID uuid.UUID) (bool, error)
}

type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	FindVisible(ctx context.Context, viewerID uuid.UUID, messagePart string) ([]*model.FeedPost, error)
	FindVisibleByID(ctx context.Context, viewerID uuid.UUID, id uuid.UUID) (*model.FeedPost, error)
	UpdateByID(ctx context.Context, id uuid.UUID, message string) (*model.Post, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type PostgresRepository struct {
	User
	Profile
	Subscription
	Post
}

func New(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		User: newUserRepo(db),
		Profile: newProfileRepo(db),
		Subscription: newSubscriptionRepo(db),
		Post: newPostRepo(db),
	}
}
