package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/MicroblogApp/social-service/internal/dto"
	"github.com/MicroblogApp/social-service/internal/model"
	"github.com/MicroblogApp/social-service/internal/repository"
	"github.com/MicroblogApp/social-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const PROFILE_CACHE_TTL = time.Minute * 10

type profileService struct {
	logger *zap.Logger
	repo *repository.Repository
}

func newProfileService(logger *zap.Logger, repo *repository.Repository) Profile {
	return &profileService{
		logger: logger,
		repo: repo,
	}
}

// Search returns the summary shape only: the owning account's email is
// reserved for GetByID.
func (s *profileService) Search(ctx context.Context, usernamePart string) ([]*dto.GetProfileDto, error) {
	usernamePart = strings.TrimSpace(strings.ToLower(usernamePart))

	// Cached results are keyed by the current search generation; mutations
	// bump it, so entries written before a mutation are never served again.
	key := redisrepo.ProfileSearchResultsKey(s.searchGeneration(ctx), usernamePart)

	cached, err := redisrepo.GetMany[dto.GetProfileDto](s.repo.Redis.Default, ctx, key)
	if err == nil {
		return cached, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get profile search results(%s) from redis: %s", usernamePart, err.Error())
	}

	profiles, err := s.repo.Postgres.Profile.SearchByUsername(ctx, usernamePart)
	if err != nil {
		s.logger.Sugar().Errorf("failed to search profiles(%s) in postgres: %s", usernamePart, err.Error())
		return nil, ErrInternal
	}

	result := make([]*dto.GetProfileDto, 0, len(profiles))
	for _, profile := range profiles {
		result = append(result, dto.GetProfileDtoFromProfile(*profile))
	}

	if err := s.repo.Redis.SetJSON(ctx, key, result, PROFILE_CACHE_TTL); err != nil {
		s.logger.Sugar().Errorf("failed to set profile search results(%s) in redis: %s", usernamePart, err.Error())
	}

	return result, nil
}

func (s *profileService) GetByID(ctx context.Context, id uuid.UUID) (*dto.GetProfileDetailsDto, error) {
	cached, err := redisrepo.Get[dto.GetProfileDetailsDto](s.repo.Redis.Default, ctx, redisrepo.ProfileKey(id.String()))
	if err == nil && cached != nil {
		return cached, nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get profile(%s) from redis: %s", id.String(), err.Error())
	}

	profile, err := s.repo.Postgres.Profile.FindByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrProfileNotFound
		}

		s.logger.Sugar().Errorf("failed to find profile(%s) from postgres: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	details := dto.GetProfileDetailsDtoFromProfile(*profile)

	if err := s.repo.Redis.SetJSON(ctx, redisrepo.ProfileKey(id.String()), details, PROFILE_CACHE_TTL); err != nil {
		s.logger.Sugar().Errorf("failed to set profile(%s) in redis: %s", id.String(), err.Error())
	}

	return details, nil
}

func (s *profileService) Create(ctx context.Context, userID uuid.UUID, createProfileDto dto.CreateProfileDto) (*dto.GetProfileDto, error) {
	createProfileDto.Username = strings.TrimSpace(strings.ToLower(createProfileDto.Username))

	if strings.ContainsAny(createProfileDto.Username, "!@#№$;%^:&?*()-/\\|,<>`~+= ") {
		return nil, ErrUsernameCannotContainSpecialCharacters
	}

	existing, err := s.repo.Postgres.Profile.FindByUserID(ctx, userID)
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to find profile by user(%s) from postgres: %s", userID.String(), err.Error())
		return nil, ErrInternal
	}
	if existing != nil {
		return nil, ErrProfileAlreadyExists
	}

	profile := model.Profile{
		UserID: userID,
		Username: createProfileDto.Username,
		FirstName: createProfileDto.FirstName,
		LastName: createProfileDto.LastName,
	}
	createdProfile, err := s.repo.Postgres.Profile.Create(ctx, profile)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}

		s.logger.Sugar().Errorf("failed to create profile in postgres: %s", err.Error())
		return nil, ErrInternal
	}

	s.invalidateSearchCache(ctx)
	return dto.GetProfileDtoFromProfile(*createdProfile), nil
}

func (s *profileService) Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, updates map[string]interface{}) error {
	if err := s.checkOwnership(ctx, userID, id); err != nil {
		return err
	}

	if username, ok := updates["username"].(string); ok {
		username = strings.TrimSpace(strings.ToLower(username))
		if strings.ContainsAny(username, "!@#№$;%^:&?*()-/\\|,<>`~+= ") {
			return ErrUsernameCannotContainSpecialCharacters
		}
		updates["username"] = username
	}

	if err := s.repo.Postgres.Profile.UpdateByID(ctx, id, updates); err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}

		s.logger.Sugar().Errorf("failed to update profile(%s) in postgres: %s", id.String(), err.Error())
		return ErrInternal
	}

	s.invalidateCache(ctx, id)
	return nil
}

func (s *profileService) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	if err := s.checkOwnership(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.Postgres.Profile.DeleteByID(ctx, id); err != nil {
		s.logger.Sugar().Errorf("failed to delete profile(%s) from postgres: %s", id.String(), err.Error())
		return ErrInternal
	}

	s.invalidateCache(ctx, id)
	return nil
}

func (s *profileService) checkOwnership(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	profile, err := s.repo.Postgres.Profile.FindByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrProfileNotFound
		}

		s.logger.Sugar().Errorf("failed to find profile(%s) from postgres: %s", id.String(), err.Error())
		return ErrInternal
	}

	if profile.UserID != userID {
		return ErrForbidden
	}

	return nil
}

func (s *profileService) invalidateCache(ctx context.Context, id uuid.UUID) {
	if err := s.repo.Redis.Del(ctx, redisrepo.ProfileKey(id.String())).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete profile(%s) from redis: %s", id.String(), err.Error())
	}

	s.invalidateSearchCache(ctx)
}

func (s *profileService) invalidateSearchCache(ctx context.Context) {
	if err := s.repo.Redis.Incr(ctx, redisrepo.PROFILE_SEARCH_GENERATION_KEY).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to bump profile search generation in redis: %s", err.Error())
	}
}

func (s *profileService) searchGeneration(ctx context.Context) int64 {
	value, err := s.repo.Redis.Get(ctx, redisrepo.PROFILE_SEARCH_GENERATION_KEY).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Sugar().Errorf("failed to get profile search generation from redis: %s", err.Error())
		}
		return 0
	}

	generation, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}

	return generation
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
