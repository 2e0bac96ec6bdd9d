package postgres

import (
	"context"
	"time"

	"github.com/MicroblogApp/social-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type subscriptionRepo struct {
	db *pgxpool.Pool
}

func newSubscriptionRepo(db *pgxpool.Pool) Subscription {
	return &subscriptionRepo{
		db: db,
	}
}

func (r *subscriptionRepo) Create(ctx context.Context, sub model.Subscription) (*model.Subscription, error) {
	sub.ID = uuid.New()
	sub.CreatedAt = time.Now()
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO subscriptions(id, subscriber_id, target_id, created_at) VALUES($1, $2, $3, $4)",
		sub.ID,
		sub.SubscriberID,
		sub.TargetID,
		sub.CreatedAt,
	)
	return &sub, err
}

func (r *subscriptionRepo) FindBySubscriber(ctx context.Context, subscriberID uuid.UUID) ([]*model.Subscription, error) {
	return r.find(ctx, "s.subscriber_id", subscriberID)
}

func (r *subscriptionRepo) FindByTarget(ctx context.Context, targetID uuid.UUID) ([]*model.Subscription, error) {
	return r.find(ctx, "s.target_id", targetID)
}

func (r *subscriptionRepo) find(ctx context.Context, column string, id uuid.UUID) ([]*model.Subscription, error) {
	rows, err := r.db.Query(
		ctx,
		`
		SELECT s.id, s.subscriber_id, s.target_id, s.created_at
		FROM subscriptions s
		WHERE `+column+` = $1
		ORDER BY s.created_at DESC
		`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*model.Subscription
	for rows.Next() {
		var sub model.Subscription
		if err := rows.Scan(
			&sub.ID,
			&sub.SubscriberID,
			&sub.TargetID,
			&sub.CreatedAt,
		); err != nil {
			return nil, err
		}

		subs = append(subs, &sub)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subs, nil
}

func (r *subscriptionRepo) DeleteBySubscriber(ctx context.Context, id uuid.UUID, subscriberID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM subscriptions WHERE id = $1 AND subscriber_id = $2", id, subscriberID)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (r *subscriptionRepo) DeleteByTarget(ctx context.Context, id uuid.UUID, targetID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM subscriptions WHERE id = $1 AND target_id = $2", id, targetID)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}
