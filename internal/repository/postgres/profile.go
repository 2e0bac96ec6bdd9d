package postgres

import (
	"context"
	"strconv"
	"time"

	"github.com/MicroblogApp/social-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type profileRepo struct {
	db *pgxpool.Pool
}

func newProfileRepo(db *pgxpool.Pool) Profile {
	return &profileRepo{
		db: db,
	}
}

func (r *profileRepo) Create(ctx context.Context, profile model.Profile) (*model.Profile, error) {
	profile.ID = uuid.New()
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO profiles(id, user_id, username, first_name, last_name, created_at, updated_at) VALUES($1, $2, $3, $4, $5, $6, $7)",
		profile.ID,
		profile.UserID,
		profile.Username,
		profile.FirstName,
		profile.LastName,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	return &profile, err
}

func (r *profileRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ProfileWithEmail, error) {
	var profile model.ProfileWithEmail
	if err := r.db.QueryRow(ctx, `
	SELECT p.id, p.user_id, p.username, p.first_name, p.last_name, p.created_at, p.updated_at, u.email
	FROM profiles p
	JOIN users u ON p.user_id = u.id
	WHERE p.id = $1
	`, id).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Username,
		&profile.FirstName,
		&profile.LastName,
		&profile.CreatedAt,
		&profile.UpdatedAt,
		&profile.Email,
	); err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.QueryRow(ctx, `
	SELECT p.id, p.user_id, p.username, p.first_name, p.last_name, p.created_at, p.updated_at
	FROM profiles p
	WHERE p.user_id = $1
	`, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Username,
		&profile.FirstName,
		&profile.LastName,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileRepo) SearchByUsername(ctx context.Context, username string) ([]*model.Profile, error) {
	rows, err := r.db.Query(
		ctx,
		`
		SELECT DISTINCT p.id, p.user_id, p.username, p.first_name, p.last_name, p.created_at, p.updated_at
		FROM profiles p
		WHERE p.username ILIKE '%' || $1 || '%' ESCAPE '\'
		ORDER BY p.username
		`,
		escapeLike(username),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*model.Profile
	for rows.Next() {
		var profile model.Profile
		if err := rows.Scan(
			&profile.ID,
			&profile.UserID,
			&profile.Username,
			&profile.FirstName,
			&profile.LastName,
			&profile.CreatedAt,
			&profile.UpdatedAt,
		); err != nil {
			return nil, err
		}

		profiles = append(profiles, &profile)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}

func (r *profileRepo) UpdateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	allowedFields := []string{"username", "first_name", "last_name"}
	allowedFieldsSet := make(map[string]struct{}, len(allowedFields))
	for _, field := range allowedFields {
		allowedFieldsSet[field] = struct{}{}
	}

	for field := range updates {
		if _, ok := allowedFieldsSet[field]; !ok {
			delete(updates, field)
		}
	}

	if len(updates) == 0 {
		return nil
	}

	query := "UPDATE profiles SET "
	args := []interface{}{}
	i := 1

	for column, value := range updates {
		query += (column + " = $" + strconv.Itoa(i) + ", ")
		args = append(args, value)
		i++
	}

	query += "updated_at = $" + strconv.Itoa(i) + " WHERE id = $" + strconv.Itoa(i+1)
	args = append(args, time.Now(), id)

	_, err := r.db.Exec(ctx, query, args...)
	return err
}

func (r *profileRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, "DELETE FROM profiles WHERE id = $1", id)
	return err
}
