package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careconnect/careconnect/internal/authz"
	"github.com/careconnect/careconnect/internal/model"
	"github.com/careconnect/careconnect/internal/repository"
)

func newFeedFixture(t *testing.T) (*FeedService, *authz.Principal, *authz.Principal) {
	t.Helper()

	users := &fakeUserRepo{}
	require.NoError(t, users.Create(&model.User{ID: "ngo-1", Role: model.RoleNGO}))
	require.NoError(t, users.Create(&model.User{ID: "vol-1", Role: model.RoleVolunteer}))

	service := NewFeedService(newFakePostRepo(), newFakeFollowRepo(), users)
	ngo := &authz.Principal{ID: "ngo-1", Role: model.RoleNGO}
	volunteer := &authz.Principal{ID: "vol-1", Role: model.RoleVolunteer}
	return service, ngo, volunteer
}

func TestCreatePost(t *testing.T) {
	service, ngo, _ := newFeedFixture(t)

	post, err := service.CreatePost(ngo, "  We planted 40 trees today.  ", nil)
	require.NoError(t, err)
	assert.Equal(t, "We planted 40 trees today.", post.Content)
	assert.Equal(t, "ngo-1", post.AuthorID)

	_, err = service.CreatePost(ngo, "   ", nil)
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = service.CreatePost(nil, "hello", nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestToggleLike(t *testing.T) {
	service, ngo, volunteer := newFeedFixture(t)

	post, err := service.CreatePost(ngo, "Volunteers needed this weekend.", nil)
	require.NoError(t, err)

	liked, count, err := service.ToggleLike(volunteer, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, count)

	// Same action again undoes it.
	liked, count, err = service.ToggleLike(volunteer, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 0, count)

	// Two different users like independently.
	_, _, err = service.ToggleLike(volunteer, post.ID)
	require.NoError(t, err)
	liked, count, err = service.ToggleLike(ngo, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 2, count)

	_, _, err = service.ToggleLike(volunteer, "missing")
	assert.ErrorIs(t, err, repository.ErrPostNotFound)
}

func TestFeedLikeStatePerViewer(t *testing.T) {
	service, ngo, volunteer := newFeedFixture(t)

	post, err := service.CreatePost(ngo, "Hello", nil)
	require.NoError(t, err)

	_, _, err = service.ToggleLike(volunteer, post.ID)
	require.NoError(t, err)

	feed, err := service.Feed(volunteer)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.True(t, feed[0].IsLiked)
	assert.Equal(t, 1, feed[0].LikeCount)

	// Anonymous viewers see counts but never a like state.
	feed, err = service.Feed(nil)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.False(t, feed[0].IsLiked)
	assert.Equal(t, 1, feed[0].LikeCount)
}

func TestComments(t *testing.T) {
	service, ngo, volunteer := newFeedFixture(t)

	post, err := service.CreatePost(ngo, "Harvest day photos", nil)
	require.NoError(t, err)

	comment, err := service.AddComment(volunteer, post.ID, "Count me in!")
	require.NoError(t, err)
	assert.Equal(t, "vol-1", comment.AuthorID)

	_, err = service.AddComment(volunteer, post.ID, "  ")
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = service.AddComment(volunteer, "missing", "hi")
	assert.ErrorIs(t, err, repository.ErrPostNotFound)

	comments, err := service.Comments(post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Count me in!", comments[0].Content)

	_, err = service.Comments("missing")
	assert.ErrorIs(t, err, repository.ErrPostNotFound)
}

func TestToggleFollow(t *testing.T) {
	service, _, volunteer := newFeedFixture(t)

	following, err := service.ToggleFollow(volunteer, "ngo-1")
	require.NoError(t, err)
	assert.True(t, following)

	count, err := service.FollowerCount("ngo-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	is, err := service.IsFollowing("vol-1", "ngo-1")
	require.NoError(t, err)
	assert.True(t, is)

	// Toggle back off.
	following, err = service.ToggleFollow(volunteer, "ngo-1")
	require.NoError(t, err)
	assert.False(t, following)

	count, err = service.FollowerCount("ngo-1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestToggleFollowRejectsSelfAndUnknownTarget(t *testing.T) {
	service, _, volunteer := newFeedFixture(t)

	_, err := service.ToggleFollow(volunteer, "vol-1")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = service.ToggleFollow(volunteer, "missing")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = service.ToggleFollow(nil, "ngo-1")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
