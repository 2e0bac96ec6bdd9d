package service

import (
	"context"
	"encoding/json"

	"github.com/MicroblogApp/social-service/internal/dto"
	"github.com/MicroblogApp/social-service/internal/model"
	"github.com/MicroblogApp/social-service/internal/rabbitmq"
	"github.com/MicroblogApp/social-service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type subscriptionService struct {
	logger *zap.Logger
	repo *repository.Repository
	mq rabbitmq.Publisher
}

func newSubscriptionService(logger *zap.Logger, repo *repository.Repository, mq rabbitmq.Publisher) Subscription {
	return &subscriptionService{
		logger: logger,
		repo: repo,
		mq: mq,
	}
}

// Subscriptions is the outgoing view: only edges where the caller is the
// subscriber, regardless of store contents.
func (s *subscriptionService) Subscriptions(ctx context.Context, userID uuid.UUID) ([]*model.Subscription, error) {
	subs, err := s.repo.Postgres.Subscription.FindBySubscriber(ctx, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find subscriptions of user(%s) from postgres: %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	// Non-nil so an empty view encodes as a JSON array.
	return append(make([]*model.Subscription, 0, len(subs)), subs...), nil
}

// Subscribers is the incoming view: only edges where the caller is the
// target.
func (s *subscriptionService) Subscribers(ctx context.Context, userID uuid.UUID) ([]*model.Subscription, error) {
	subs, err := s.repo.Postgres.Subscription.FindByTarget(ctx, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find subscribers of user(%s) from postgres: %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	return append(make([]*model.Subscription, 0, len(subs)), subs...), nil
}

func (s *subscriptionService) Subscribe(ctx context.Context, subscriberID uuid.UUID, targetID uuid.UUID) (*model.Subscription, error) {
	if subscriberID == targetID {
		return nil, ErrSelfSubscription
	}

	sub := model.Subscription{
		SubscriberID: subscriberID,
		TargetID: targetID,
	}
	createdSub, err := s.repo.Postgres.Subscription.Create(ctx, sub)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadySubscribed
		}
		if isForeignKeyViolation(err) {
			return nil, ErrTargetNotFound
		}

		s.logger.Sugar().Errorf("failed to create subscription(%s -> %s) in postgres: %s", subscriberID.String(), targetID.String(), err.Error())
		return nil, ErrInternal
	}

	queueData, err := json.Marshal(&dto.RabbitMQFollowDto{
		SubscriberID: subscriberID.String(),
		TargetID: targetID.String(),
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to marshal json: %s", err.Error())
	} else if err := s.mq.Publish(rabbitmq.FOLLOWS_QUEUE, queueData); err != nil {
		s.logger.Sugar().Errorf("failed to publish to rabbitmq queue(%s): %s", rabbitmq.FOLLOWS_QUEUE, err.Error())
	}

	return createdSub, nil
}

// Unsubscribe deletes an edge from the outgoing view. An edge outside that
// view is reported as missing, not as forbidden.
func (s *subscriptionService) Unsubscribe(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	deleted, err := s.repo.Postgres.Subscription.DeleteBySubscriber(ctx, id, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to delete subscription(%s) from postgres: %s", id.String(), err.Error())
		return ErrInternal
	}
	if !deleted {
		return ErrSubscriptionNotFound
	}

	return nil
}

// RemoveSubscriber deletes an edge from the incoming view ("remove
// follower").
func (s *subscriptionService) RemoveSubscriber(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	deleted, err := s.repo.Postgres.Subscription.DeleteByTarget(ctx, id, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to delete subscription(%s) from postgres: %s", id.String(), err.Error())
		return ErrInternal
	}
	if !deleted {
		return ErrSubscriptionNotFound
	}

	return nil
}
