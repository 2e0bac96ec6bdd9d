package service

import (
	"context"

	"github.com/MicroblogApp/social-service/internal/dto"
	"github.com/MicroblogApp/social-service/internal/model"
	"github.com/MicroblogApp/social-service/internal/rabbitmq"
	"github.com/MicroblogApp/social-service/internal/repository"
	"github.com/MicroblogApp/social-service/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Auth interface {
	SignUp(ctx context.Context, createUserDto dto.CreateUserDto) (*utils.JWTPair, error)
	SignIn(ctx context.Context, signInDto dto.SignInDto) (*utils.JWTPair, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*utils.JWTPair, error)
	Logout(ctx context.Context, refreshToken string) error
	FindUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type Profile interface {
	Search(ctx context.Context, usernamePart string) ([]*dto.GetProfileDto, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.GetProfileDetailsDto, error)
	Create(ctx context.Context, userID uuid.UUID, createProfileDto dto.CreateProfileDto) (*dto.GetProfileDto, error)
	Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}

type Subscription interface {
	Subscriptions(ctx context.Context, userID uuid.UUID) ([]*model.Subscription, error)
	Subscribers(ctx context.Context, userID uuid.UUID) ([]*model.Subscription, error)
	Subscribe(ctx context.Context, subscriberID uuid.UUID, targetID uuid.UUID) (*model.Subscription, error)
	Unsubscribe(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
	RemoveSubscriber(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}

type Post interface {
	Feed(ctx context.Context, userID uuid.UUID, messagePart string) ([]*dto.GetPostListItemDto, error)
	GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*dto.GetPostDetailsDto, error)
	Create(ctx context.Context, userID uuid.UUID, createPostDto dto.CreatePostDto) (*dto.GetPostDto, error)
	Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, updatePostDto dto.UpdatePostDto) (*dto.GetPostDto, error)
	Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}

type Service struct {
	Auth
	Profile
	Subscription
	Post
}

func New(logger *zap.Logger, repo *repository.Repository, mq rabbitmq.Publisher) *Service {
	return &Service{
		Auth: newAuthService(logger, repo, mq),
		Profile: newProfileService(logger, repo),
		Subscription: newSubscriptionService(logger, repo, mq),
		Post: newPostService(logger, repo, mq),
	}
}
