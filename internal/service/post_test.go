package service

import (
	"context"
	"strings"
	"testing"

	"github.com/MicroblogApp/social-service/internal/dto"
	"github.com/MicroblogApp/social-service/internal/model"
	"github.com/MicroblogApp/social-service/internal/repository/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePostRepo struct {
	posts   []*model.FeedPost
	follows map[uuid.UUID][]uuid.UUID // viewer -> followed user ids

	deletedID *uuid.UUID
}

func (f *fakePostRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	post.ID = uuid.New()
	f.posts = append(f.posts, &model.FeedPost{Post: post})
	return &post, nil
}

func (f *fakePostRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	for _, post := range f.posts {
		if post.ID == id {
			return &post.Post, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakePostRepo) visible(viewerID uuid.UUID, post *model.FeedPost) bool {
	for _, target := range f.follows[viewerID] {
		if post.AuthorUserID == target {
			return true
		}
	}
	return false
}

func (f *fakePostRepo) FindVisible(ctx context.Context, viewerID uuid.UUID, messagePart string) ([]*model.FeedPost, error) {
	var result []*model.FeedPost
	for _, post := range f.posts {
		if !f.visible(viewerID, post) {
			continue
		}
		if messagePart != "" && !strings.Contains(strings.ToLower(post.Message), strings.ToLower(messagePart)) {
			continue
		}
		result = append(result, post)
	}
	return result, nil
}

func (f *fakePostRepo) FindVisibleByID(ctx context.Context, viewerID uuid.UUID, id uuid.UUID) (*model.FeedPost, error) {
	for _, post := range f.posts {
		if post.ID == id && f.visible(viewerID, post) {
			return post, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakePostRepo) UpdateByID(ctx context.Context, id uuid.UUID, message string) (*model.Post, error) {
	for _, post := range f.posts {
		if post.ID == id {
			post.Message = message
			return &post.Post, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakePostRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	f.deletedID = &id
	return nil
}

func newTestPostService(posts *fakePostRepo, profiles *fakeProfileRepo, mq *fakeMQ) Post {
	repo := newTestRepo(postgres.PostgresRepository{Post: posts, Profile: profiles}, newFakeCache())
	return newPostService(zap.NewNop(), repo, mq)
}

type feedAuthor struct {
	userID    uuid.UUID
	profileID uuid.UUID
	username  string
}

func newFeedAuthor(username string) feedAuthor {
	return feedAuthor{userID: uuid.New(), profileID: uuid.New(), username: username}
}

func (a feedAuthor) post(message string) *model.FeedPost {
	return &model.FeedPost{
		Post: model.Post{ID: uuid.New(), ProfileID: a.profileID, Message: message},
		AuthorUserID: a.userID,
		AuthorUsername: a.username,
		AuthorFirstName: "First",
		AuthorLastName: "Last",
	}
}

func TestFeedContainsOnlyFollowedAuthorsFilteredByMessage(t *testing.T) {
	viewer := uuid.New()
	a := newFeedAuthor("alice")
	b := newFeedAuthor("bob")
	c := newFeedAuthor("carol")

	posts := &fakePostRepo{
		posts: []*model.FeedPost{
			a.post("hello world"),
			a.post("bye"),
			b.post("Hello again"),
			c.post("hello from an unfollowed author"),
		},
		follows: map[uuid.UUID][]uuid.UUID{viewer: {a.userID, b.userID}},
	}
	s := newTestPostService(posts, &fakeProfileRepo{}, newFakeMQ())

	feed, err := s.Feed(context.Background(), viewer, "hello")
	require.NoError(t, err)

	messages := make([]string, 0, len(feed))
	for _, item := range feed {
		messages = append(messages, item.Message)
	}
	assert.ElementsMatch(t, []string{"hello world", "Hello again"}, messages)
}

func TestFeedListShapeCarriesUsername(t *testing.T) {
	viewer := uuid.New()
	a := newFeedAuthor("alice")
	posts := &fakePostRepo{
		posts: []*model.FeedPost{a.post("hello")},
		follows: map[uuid.UUID][]uuid.UUID{viewer: {a.userID}},
	}
	s := newTestPostService(posts, &fakeProfileRepo{}, newFakeMQ())

	feed, err := s.Feed(context.Background(), viewer, "")
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "alice", feed[0].Username)
	assert.Equal(t, a.profileID, feed[0].ProfileID)
}

func TestGetByIDHiddenPostIsNotFound(t *testing.T) {
	viewer := uuid.New()
	a := newFeedAuthor("alice")
	hidden := a.post("secret")
	posts := &fakePostRepo{
		posts: []*model.FeedPost{hidden},
		follows: map[uuid.UUID][]uuid.UUID{},
	}
	s := newTestPostService(posts, &fakeProfileRepo{}, newFakeMQ())

	// The post exists, but the viewer follows nobody: same answer as a
	// missing id.
	_, err := s.GetByID(context.Background(), viewer, hidden.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = s.GetByID(context.Background(), viewer, uuid.New())
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestGetByIDDetailShape(t *testing.T) {
	viewer := uuid.New()
	a := newFeedAuthor("alice")
	post := a.post("hello")
	posts := &fakePostRepo{
		posts: []*model.FeedPost{post},
		follows: map[uuid.UUID][]uuid.UUID{viewer: {a.userID}},
	}
	s := newTestPostService(posts, &fakeProfileRepo{}, newFakeMQ())

	details, err := s.GetByID(context.Background(), viewer, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", details.Username)
	assert.Equal(t, "First", details.FirstName)
	assert.Equal(t, "Last", details.LastName)
}

func TestCreateRequiresProfile(t *testing.T) {
	s := newTestPostService(&fakePostRepo{}, &fakeProfileRepo{}, newFakeMQ())

	_, err := s.Create(context.Background(), uuid.New(), dto.CreatePostDto{Message: "hello"})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestCreatePublishesNewPostEvent(t *testing.T) {
	author := profileFixture("alice", "alice@example.com")
	profiles := &fakeProfileRepo{profiles: []*model.ProfileWithEmail{author}}
	mq := newFakeMQ()
	s := newTestPostService(&fakePostRepo{}, profiles, mq)

	post, err := s.Create(context.Background(), author.UserID, dto.CreatePostDto{Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, author.ID, post.ProfileID)
	assert.Len(t, mq.published["followers-new-post-notifications"], 1)
}

func TestUpdateForeignPostForbidden(t *testing.T) {
	author := profileFixture("alice", "alice@example.com")
	stranger := profileFixture("bob", "bob@example.com")
	profiles := &fakeProfileRepo{profiles: []*model.ProfileWithEmail{author, stranger}}

	post := &model.FeedPost{Post: model.Post{ID: uuid.New(), ProfileID: author.ID, Message: "hello"}}
	posts := &fakePostRepo{posts: []*model.FeedPost{post}}
	s := newTestPostService(posts, profiles, newFakeMQ())

	_, err := s.Update(context.Background(), stranger.UserID, post.ID, dto.UpdatePostDto{Message: "edited"})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, "hello", post.Message)
}

func TestDeleteOwnPost(t *testing.T) {
	author := profileFixture("alice", "alice@example.com")
	profiles := &fakeProfileRepo{profiles: []*model.ProfileWithEmail{author}}

	post := &model.FeedPost{Post: model.Post{ID: uuid.New(), ProfileID: author.ID, Message: "hello"}}
	posts := &fakePostRepo{posts: []*model.FeedPost{post}}
	s := newTestPostService(posts, profiles, newFakeMQ())

	require.NoError(t, s.Delete(context.Background(), author.UserID, post.ID))
	require.NotNil(t, posts.deletedID)
	assert.Equal(t, post.ID, *posts.deletedID)
}
