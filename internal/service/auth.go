package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/MicroblogApp/social-service/internal/dto"
	"github.com/MicroblogApp/social-service/internal/model"
	"github.com/MicroblogApp/social-service/internal/rabbitmq"
	"github.com/MicroblogApp/social-service/internal/repository"
	"github.com/MicroblogApp/social-service/internal/repository/redisrepo"
	"github.com/MicroblogApp/social-service/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	ACCESS_TOKEN_EXPIRY  = time.Hour * 3
	REFRESH_TOKEN_EXPIRY = time.Hour * 24 * 7 * 2
)

type authService struct {
	logger *zap.Logger
	repo *repository.Repository
	mq rabbitmq.Publisher
}

func newAuthService(logger *zap.Logger, repo *repository.Repository, mq rabbitmq.Publisher) Auth {
	return &authService{
		logger: logger,
		repo: repo,
		mq: mq,
	}
}

func (s *authService) SignUp(ctx context.Context, createUserDto dto.CreateUserDto) (*utils.JWTPair, error) {
	createUserDto.Email = strings.TrimSpace(strings.ToLower(createUserDto.Email))

	existing, err := s.repo.Postgres.User.FindByEmail(ctx, createUserDto.Email)
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to get user(email: %s) from postgres: %s", createUserDto.Email, err.Error())
		return nil, ErrInternal
	}
	if existing != nil {
		return nil, ErrUserWithEmailAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(createUserDto.Password), 10)
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate password hash: %s", err.Error())
		return nil, ErrInternal
	}

	newUser := model.User{
		Email: createUserDto.Email,
		PasswordHash: string(passwordHash),
	}
	createdUser, err := s.repo.Postgres.User.Create(ctx, newUser)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user in postgres: %s", err.Error())
		return nil, ErrInternal
	}

	queueData, err := json.Marshal(&dto.RabbitMQUserRegisteredDto{
		UserID: createdUser.ID.String(),
		Email: createdUser.Email,
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to marshal json: %s", err.Error())
	} else if err := s.mq.Publish(rabbitmq.USER_REGISTERED_QUEUE, queueData); err != nil {
		s.logger.Sugar().Errorf("failed to publish to rabbitmq queue(%s): %s", rabbitmq.USER_REGISTERED_QUEUE, err.Error())
	}

	return s.generateJWTPair(createdUser.ID)
}

func (s *authService) SignIn(ctx context.Context, signInDto dto.SignInDto) (*utils.JWTPair, error) {
	signInDto.Email = strings.TrimSpace(strings.ToLower(signInDto.Email))

	user, err := s.repo.Postgres.User.FindByEmail(ctx, signInDto.Email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrInvalidCredentials
		}

		s.logger.Sugar().Errorf("failed to get user(email: %s) from postgres: %s", signInDto.Email, err.Error())
		return nil, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(signInDto.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.generateJWTPair(user.ID)
}

func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*utils.JWTPair, error) {
	decodedToken, err := utils.DecodeJWT(refreshToken, []byte(os.Getenv("REFRESH_SECRET")))
	if err != nil {
		return nil, ErrUnauthorized
	}

	// Revoked tokens can never be redeemed again.
	revoked, err := s.isRefreshTokenRevoked(ctx, refreshToken)
	if err != nil {
		return nil, ErrInternal
	}
	if revoked {
		return nil, ErrUnauthorized
	}

	id, exists := decodedToken["id"].(string)
	if !exists {
		return nil, ErrUnauthorized
	}

	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.generateJWTPair(user.ID)
}

// Logout revokes the presented refresh token. The caller only ever learns
// that the request failed, never why: any failure inside the revoke path is
// collapsed into ErrInvalidRefreshToken so token validity cannot be probed.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.revokeRefreshToken(ctx, refreshToken); err != nil {
		if !errors.Is(err, ErrInvalidRefreshToken) {
			s.logger.Sugar().Errorf("failed to revoke refresh token: %s", err.Error())
		}
		return ErrInvalidRefreshToken
	}

	return nil
}

func (s *authService) revokeRefreshToken(ctx context.Context, refreshToken string) error {
	decodedToken, err := utils.DecodeJWT(refreshToken, []byte(os.Getenv("REFRESH_SECRET")))
	if err != nil {
		return ErrInvalidRefreshToken
	}

	revoked, err := s.isRefreshTokenRevoked(ctx, refreshToken)
	if err != nil {
		return err
	}
	if revoked {
		return ErrInvalidRefreshToken
	}

	exp, exists := decodedToken["exp"].(float64)
	if !exists {
		return ErrInvalidRefreshToken
	}

	ttl := time.Until(time.Unix(int64(exp), 0))
	if ttl <= 0 {
		return ErrInvalidRefreshToken
	}

	return s.repo.Redis.Default.Set(ctx, redisrepo.RevokedRefreshTokenKey(refreshToken), true, ttl)
}

func (s *authService) isRefreshTokenRevoked(ctx context.Context, refreshToken string) (bool, error) {
	revoked, err := s.repo.Redis.Default.Get(ctx, redisrepo.RevokedRefreshTokenKey(refreshToken)).Bool()
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get revoked refresh token from redis: %s", err.Error())
		return false, err
	}

	return revoked, nil
}

func (s *authService) FindUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	userCache, err := redisrepo.Get[model.User](s.repo.Redis.Default, ctx, redisrepo.UserKey(id.String()))
	if err == nil && userCache != nil {
		return userCache, nil
	}

	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get user(%s) from redis: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	user, err := s.repo.Postgres.User.FindByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to find user(%s) from postgres: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.SetJSON(ctx, redisrepo.UserKey(id.String()), user, time.Hour*3); err != nil {
		s.logger.Sugar().Errorf("failed to set user(%s) in redis: %s", id.String(), err.Error())
	}

	return user, nil
}

func (s *authService) generateJWTPair(userID uuid.UUID) (*utils.JWTPair, error) {
	jwtPair, err := utils.GenerateJWTPair(utils.GenerateJWTPairDto{
		Method: jwt.SigningMethodHS256,
		AccessSecret: []byte(os.Getenv("ACCESS_SECRET")),
		AccessClaims: jwt.MapClaims{
			"id": userID.String(),
		},
		AccessExpiry: ACCESS_TOKEN_EXPIRY,
		RefreshSecret: []byte(os.Getenv("REFRESH_SECRET")),
		RefreshClaims: jwt.MapClaims{
			"id": userID.String(),
		},
		RefreshExpiry: REFRESH_TOKEN_EXPIRY,
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate jwt pair: %s", err.Error())
		return nil, ErrInternal
	}

	return jwtPair, nil
}
