package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/MicroblogApp/social-service/internal/dto"
	"github.com/MicroblogApp/social-service/internal/model"
	"github.com/MicroblogApp/social-service/internal/rabbitmq"
	"github.com/MicroblogApp/social-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type postService struct {
	logger *zap.Logger
	repo *repository.Repository
	mq rabbitmq.Publisher
}

func newPostService(logger *zap.Logger, repo *repository.Repository, mq rabbitmq.Publisher) Post {
	return &postService{
		logger: logger,
		repo: repo,
		mq: mq,
	}
}

// Feed composes the caller's visible post set: posts authored by profiles
// the caller follows, optionally narrowed by a case-insensitive message
// substring. The scope comes first; the filter can only narrow it.
func (s *postService) Feed(ctx context.Context, userID uuid.UUID, messagePart string) ([]*dto.GetPostListItemDto, error) {
	messagePart = strings.TrimSpace(messagePart)

	posts, err := s.repo.Postgres.Post.FindVisible(ctx, userID, messagePart)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find feed of user(%s) from postgres: %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	result := make([]*dto.GetPostListItemDto, 0, len(posts))
	for _, post := range posts {
		result = append(result, dto.GetPostListItemDtoFromFeedPost(*post))
	}

	return result, nil
}

// GetByID resolves a post through the same visibility scope as Feed, so a
// post outside the caller's feed is indistinguishable from one that does
// not exist.
func (s *postService) GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*dto.GetPostDetailsDto, error) {
	post, err := s.repo.Postgres.Post.FindVisibleByID(ctx, userID, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to find post(%s) from postgres: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	return dto.GetPostDetailsDtoFromFeedPost(*post), nil
}

func (s *postService) Create(ctx context.Context, userID uuid.UUID, createPostDto dto.CreatePostDto) (*dto.GetPostDto, error) {
	profile, err := s.authorProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := model.Post{
		ProfileID: profile.ID,
		Message: createPostDto.Message,
	}
	createdPost, err := s.repo.Postgres.Post.Create(ctx, post)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create post in postgres: %s", err.Error())
		return nil, ErrInternal
	}

	queueData, err := json.Marshal(&dto.RabbitMQNewPostDto{
		PostID: createdPost.ID.String(),
		ProfileID: createdPost.ProfileID.String(),
		Message: createdPost.Message,
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to marshal json: %s", err.Error())
	} else if err := s.mq.Publish(rabbitmq.NEW_POST_NOTIFICATIONS_QUEUE, queueData); err != nil {
		s.logger.Sugar().Errorf("failed to publish to rabbitmq queue(%s): %s", rabbitmq.NEW_POST_NOTIFICATIONS_QUEUE, err.Error())
	}

	return dto.GetPostDtoFromPost(*createdPost), nil
}

func (s *postService) Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, updatePostDto dto.UpdatePostDto) (*dto.GetPostDto, error) {
	if err := s.checkAuthorship(ctx, userID, id); err != nil {
		return nil, err
	}

	updatedPost, err := s.repo.Postgres.Post.UpdateByID(ctx, id, updatePostDto.Message)
	if err != nil {
		s.logger.Sugar().Errorf("failed to update post(%s) in postgres: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	return dto.GetPostDtoFromPost(*updatedPost), nil
}

func (s *postService) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	if err := s.checkAuthorship(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.Postgres.Post.DeleteByID(ctx, id); err != nil {
		s.logger.Sugar().Errorf("failed to delete post(%s) from postgres: %s", id.String(), err.Error())
		return ErrInternal
	}

	return nil
}

func (s *postService) authorProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	profile, err := s.repo.Postgres.Profile.FindByUserID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrProfileNotFound
		}

		s.logger.Sugar().Errorf("failed to find profile by user(%s) from postgres: %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	return profile, nil
}

func (s *postService) checkAuthorship(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	post, err := s.repo.Postgres.Post.FindByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to find post(%s) from postgres: %s", id.String(), err.Error())
		return ErrInternal
	}

	profile, err := s.authorProfile(ctx, userID)
	if err != nil {
		return err
	}

	if post.ProfileID != profile.ID {
		return ErrForbidden
	}

	return nil
}
