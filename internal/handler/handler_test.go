package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MicroblogApp/social-service/internal/dto"
	"github.com/MicroblogApp/social-service/internal/model"
	"github.com/MicroblogApp/social-service/internal/service"
	"github.com/MicroblogApp/social-service/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	user      *model.User
	logoutErr error

	loggedOutToken string
}

func (f *fakeAuthService) SignUp(ctx context.Context, createUserDto dto.CreateUserDto) (*utils.JWTPair, error) {
	return &utils.JWTPair{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (f *fakeAuthService) SignIn(ctx context.Context, signInDto dto.SignInDto) (*utils.JWTPair, error) {
	return &utils.JWTPair{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (f *fakeAuthService) RefreshTokens(ctx context.Context, refreshToken string) (*utils.JWTPair, error) {
	return &utils.JWTPair{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (f *fakeAuthService) Logout(ctx context.Context, refreshToken string) error {
	f.loggedOutToken = refreshToken
	return f.logoutErr
}

func (f *fakeAuthService) FindUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, service.ErrUserNotFound
	}
	return f.user, nil
}

type fakeProfileService struct {
	summaries []*dto.GetProfileDto
	details   *dto.GetProfileDetailsDto

	searchedPart string
}

func (f *fakeProfileService) Search(ctx context.Context, usernamePart string) ([]*dto.GetProfileDto, error) {
	f.searchedPart = usernamePart
	return f.summaries, nil
}

func (f *fakeProfileService) GetByID(ctx context.Context, id uuid.UUID) (*dto.GetProfileDetailsDto, error) {
	if f.details == nil {
		return nil, service.ErrProfileNotFound
	}
	return f.details, nil
}

func (f *fakeProfileService) Create(ctx context.Context, userID uuid.UUID, createProfileDto dto.CreateProfileDto) (*dto.GetProfileDto, error) {
	return &dto.GetProfileDto{ID: uuid.New(), UserID: userID, Username: createProfileDto.Username}, nil
}

func (f *fakeProfileService) Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, updates map[string]interface{}) error {
	return nil
}

func (f *fakeProfileService) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	return nil
}

type fakeSubscriptionService struct{}

func (f *fakeSubscriptionService) Subscriptions(ctx context.Context, userID uuid.UUID) ([]*model.Subscription, error) {
	return nil, nil
}

func (f *fakeSubscriptionService) Subscribers(ctx context.Context, userID uuid.UUID) ([]*model.Subscription, error) {
	return nil, nil
}

func (f *fakeSubscriptionService) Subscribe(ctx context.Context, subscriberID uuid.UUID, targetID uuid.UUID) (*model.Subscription, error) {
	return &model.Subscription{ID: uuid.New(), SubscriberID: subscriberID, TargetID: targetID}, nil
}

func (f *fakeSubscriptionService) Unsubscribe(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	return nil
}

func (f *fakeSubscriptionService) RemoveSubscriber(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	return nil
}

type fakePostService struct {
	listItems []*dto.GetPostListItemDto
	details   *dto.GetPostDetailsDto

	feedMessagePart string
}

func (f *fakePostService) Feed(ctx context.Context, userID uuid.UUID, messagePart string) ([]*dto.GetPostListItemDto, error) {
	f.feedMessagePart = messagePart
	return f.listItems, nil
}

func (f *fakePostService) GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*dto.GetPostDetailsDto, error) {
	if f.details == nil {
		return nil, service.ErrPostNotFound
	}
	return f.details, nil
}

func (f *fakePostService) Create(ctx context.Context, userID uuid.UUID, createPostDto dto.CreatePostDto) (*dto.GetPostDto, error) {
	return &dto.GetPostDto{ID: uuid.New(), Message: createPostDto.Message}, nil
}

func (f *fakePostService) Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, updatePostDto dto.UpdatePostDto) (*dto.GetPostDto, error) {
	return &dto.GetPostDto{ID: id, Message: updatePostDto.Message}, nil
}

func (f *fakePostService) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	return nil
}

type testEnv struct {
	router *gin.Engine
	user   *model.User
	token  string

	auth     *fakeAuthService
	profiles *fakeProfileService
	posts    *fakePostService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("ACCESS_SECRET", "test-access-secret")
	t.Setenv("REFRESH_SECRET", "test-refresh-secret")
	viper.Set("client.origin", "http://localhost:3000")
	viper.Set("client.domain", "localhost")

	user := &model.User{ID: uuid.New(), Email: "alice@example.com"}

	pair, err := utils.GenerateJWTPair(utils.GenerateJWTPairDto{
		Method: jwt.SigningMethodHS256,
		AccessSecret: []byte("test-access-secret"),
		AccessClaims: jwt.MapClaims{"id": user.ID.String()},
		AccessExpiry: time.Hour,
		RefreshSecret: []byte("test-refresh-secret"),
		RefreshClaims: jwt.MapClaims{"id": user.ID.String()},
		RefreshExpiry: time.Hour,
	})
	require.NoError(t, err)

	auth := &fakeAuthService{user: user}
	profiles := &fakeProfileService{}
	posts := &fakePostService{}

	h := New(&service.Service{
		Auth: auth,
		Profile: profiles,
		Subscription: &fakeSubscriptionService{},
		Post: posts,
	})

	return &testEnv{
		router: h.InitRoutes(),
		user: user,
		token: pair.AccessToken,
		auth: auth,
		profiles: profiles,
		posts: posts,
	}
}

func (e *testEnv) do(method, target, body string, authenticated bool) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestProfileListNeverIncludesEmail(t *testing.T) {
	env := newTestEnv(t)
	env.profiles.summaries = []*dto.GetProfileDto{
		{ID: uuid.New(), UserID: uuid.New(), Username: "alice", FullName: "Alice A"},
	}

	w := env.do(http.MethodGet, "/api/v1/profiles", "", false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "email")
	assert.Contains(t, w.Body.String(), "alice")
}

func TestProfileRetrieveIncludesEmail(t *testing.T) {
	env := newTestEnv(t)
	env.profiles.details = &dto.GetProfileDetailsDto{
		ID: uuid.New(), Email: "alice@example.com", Username: "alice", FullName: "Alice A",
	}

	w := env.do(http.MethodGet, "/api/v1/profiles/"+uuid.NewString(), "", false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"alice@example.com"`)
}

func TestProfileSearchPassesUsernameFilter(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/profiles?username=al", "", false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "al", env.profiles.searchedPart)
}

func TestPostsAndSubscriptionsRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	for _, target := range []string{"/api/v1/posts", "/api/v1/subscriptions", "/api/v1/subscribers"} {
		w := env.do(http.MethodGet, target, "", false)
		assert.Equal(t, http.StatusUnauthorized, w.Code, target)
	}
}

func TestProfilesReadableWithoutAuth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/profiles", "", false)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProfileCreateRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/v1/profiles", `{"username":"alice","first_name":"A","last_name":"B"}`, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodPost, "/api/v1/profiles", `{"username":"alice","first_name":"A","last_name":"B"}`, true)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestFeedPassesMessageFilter(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/posts?message=hello", "", true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello", env.posts.feedMessagePart)
}

func TestPostDetailOmitsProfileRef(t *testing.T) {
	env := newTestEnv(t)
	env.posts.details = &dto.GetPostDetailsDto{
		ID: uuid.New(), Message: "hello", Username: "alice", FirstName: "Alice", LastName: "A",
	}

	w := env.do(http.MethodGet, "/api/v1/posts/"+uuid.NewString(), "", true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "profile_id")
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
}

func TestPostListCarriesProfileRefAndUsername(t *testing.T) {
	env := newTestEnv(t)
	env.posts.listItems = []*dto.GetPostListItemDto{
		{ID: uuid.New(), Message: "hello", ProfileID: uuid.New(), Username: "alice"},
	}

	w := env.do(http.MethodGet, "/api/v1/posts", "", true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "profile_id")
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
}

func TestLogoutSuccessIsNoContent(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/v1/auth/logout", `{"refresh_token":"some-token"}`, true)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "some-token", env.auth.loggedOutToken)
	assert.Empty(t, w.Body.String())
}

func TestLogoutFailureIsGenericBadRequest(t *testing.T) {
	env := newTestEnv(t)
	env.auth.logoutErr = service.ErrInvalidRefreshToken

	w := env.do(http.MethodPost, "/api/v1/auth/logout", `{"refresh_token":"revoked"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	// The body never explains what was wrong with the token.
	assert.NotContains(t, w.Body.String(), "token")
	assert.NotContains(t, w.Body.String(), "revoked")
}

func TestLogoutMalformedBodyIsGenericBadRequest(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/v1/auth/logout", `{}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotContains(t, w.Body.String(), "RefreshToken")
}

func TestLogoutRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/v1/auth/logout", `{"refresh_token":"some-token"}`, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPostGetInvalidID(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/posts/not-a-uuid", "", true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHiddenPostIsNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/posts/"+uuid.NewString(), "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
