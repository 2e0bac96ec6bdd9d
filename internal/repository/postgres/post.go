package postgres

import (
	"context"
	"time"

	"github.com/MicroblogApp/social-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postRepo struct {
	db *pgxpool.Pool
}

func newPostRepo(db *pgxpool.Pool) Post {
	return &postRepo{
		db: db,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	post.ID = uuid.New()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO posts(id, profile_id, message, created_at, updated_at) VALUES($1, $2, $3, $4, $5)",
		post.ID,
		post.ProfileID,
		post.Message,
		post.CreatedAt,
		post.UpdatedAt,
	)
	return &post, err
}

func (r *postRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.QueryRow(ctx, `
	SELECT p.id, p.profile_id, p.message, p.created_at, p.updated_at
	FROM posts p
	WHERE p.id = $1
	`, id).Scan(
		&post.ID,
		&post.ProfileID,
		&post.Message,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &post, nil
}

// FindVisible returns the posts authored by profiles the viewer follows.
// The followed-authors scope is part of the query itself; the optional
// message filter only ever narrows it further.
func (r *postRepo) FindVisible(ctx context.Context, viewerID uuid.UUID, messagePart string) ([]*model.FeedPost, error) {
	rows, err := r.db.Query(
		ctx,
		`
		SELECT DISTINCT po.id, po.profile_id, po.message, po.created_at, po.updated_at, pr.user_id, pr.username, pr.first_name, pr.last_name
		FROM posts po
		JOIN profiles pr ON po.profile_id = pr.id
		JOIN subscriptions s ON s.target_id = pr.user_id
		WHERE s.subscriber_id = $1
		AND ($2 = '' OR po.message ILIKE '%' || $2 || '%' ESCAPE '\')
		ORDER BY po.created_at DESC
		`,
		viewerID,
		escapeLike(messagePart),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*model.FeedPost
	for rows.Next() {
		var post model.FeedPost
		if err := rows.Scan(
			&post.ID,
			&post.ProfileID,
			&post.Message,
			&post.CreatedAt,
			&post.UpdatedAt,
			&post.AuthorUserID,
			&post.AuthorUsername,
			&post.AuthorFirstName,
			&post.AuthorLastName,
		); err != nil {
			return nil, err
		}

		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

// FindVisibleByID applies the same followed-authors scope as FindVisible, so
// a hidden post and a missing post are the same pgx.ErrNoRows.
func (r *postRepo) FindVisibleByID(ctx context.Context, viewerID uuid.UUID, id uuid.UUID) (*model.FeedPost, error) {
	var post model.FeedPost
	if err := r.db.QueryRow(ctx, `
	SELECT po.id, po.profile_id, po.message, po.created_at, po.updated_at, pr.user_id, pr.username, pr.first_name, pr.last_name
	FROM posts po
	JOIN profiles pr ON po.profile_id = pr.id
	JOIN subscriptions s ON s.target_id = pr.user_id
	WHERE s.subscriber_id = $1 AND po.id = $2
	`, viewerID, id).Scan(
		&post.ID,
		&post.ProfileID,
		&post.Message,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.AuthorUserID,
		&post.AuthorUsername,
		&post.AuthorFirstName,
		&post.AuthorLastName,
	); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) UpdateByID(ctx context.Context, id uuid.UUID, message string) (*model.Post, error) {
	var post model.Post
	if err := r.db.QueryRow(ctx, `
	UPDATE posts SET message = $1, updated_at = $2
	WHERE id = $3
	RETURNING id, profile_id, message, created_at, updated_at
	`, message, time.Now(), id).Scan(
		&post.ID,
		&post.ProfileID,
		&post.Message,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	return err
}
