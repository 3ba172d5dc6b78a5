package routes

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/db/sqldb/sqldbtest"
	"github.com/navbryce/yatube/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (ts *testServer) isFollowing(user, author *model.User) bool {
	ts.t.Helper()
	following, err := ts.db.IsFollowing(context.Background(), &model.Follow{UserId: user.Id, AuthorId: author.Id})
	require.NoError(ts.t, err)
	return following
}

func TestFollow(t *testing.T) {
	ts := newTestServer(t)
	leo := ts.user("leo")
	bob := ts.user("bob")

	assertRedirect(t, ts.post("/leo/follow/", nil, nil), "/auth/login/?next=%2Fleo%2Ffollow%2F")
	assert.False(t, ts.isFollowing(bob, leo))

	assertRedirect(t, ts.post("/leo/follow/", nil, bob), "/leo/")
	assert.True(t, ts.isFollowing(bob, leo))
	assertRedirect(t, ts.get("/leo/follow/", bob), "/leo/")

	followers, err := ts.db.CountFollowers(context.Background(), leo.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, followers, "following twice keeps one follow")

	assertRedirect(t, ts.post("/leo/follow/", nil, leo), "/leo/")
	assert.False(t, ts.isFollowing(leo, leo), "nobody follows themselves")

	w := ts.post("/ghost/follow/", nil, bob)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// staleFollows answers as if a concurrent follow had not landed yet
type staleFollows struct {
	db.Database
}

func (sf staleFollows) IsFollowing(ctx context.Context, follow *model.Follow) (bool, error) {
	return false, nil
}

func TestFollowLosingTheRace(t *testing.T) {
	ts := newTestServer(t, func(env *Env) {
		env.DB = staleFollows{env.DB}
	})
	leo := ts.user("leo")
	bob := ts.user("bob")

	assertRedirect(t, ts.post("/leo/follow/", nil, bob), "/leo/")
	assertRedirect(t, ts.post("/leo/follow/", nil, bob), "/leo/")
	assert.True(t, ts.isFollowing(bob, leo))

	assertRedirect(t, ts.post("/leo/unfollow/", nil, bob), "/leo/")
	assert.False(t, ts.isFollowing(bob, leo), "the store still takes writes")
	assertRedirect(t, ts.post("/new/", url.Values{"text": {"Пишу дальше"}}, bob), "/")
	assert.Equal(t, 1, ts.countPosts(&db.PostsFilter{AuthorId: bob.Id}))
}

func TestUnfollow(t *testing.T) {
	ts := newTestServer(t)
	leo := ts.user("leo")
	bob := ts.user("bob")
	require.NoError(t, ts.db.CreateFollow(context.Background(), &model.Follow{UserId: bob.Id, AuthorId: leo.Id}))

	assertRedirect(t, ts.post("/leo/unfollow/", nil, bob), "/leo/")
	assert.False(t, ts.isFollowing(bob, leo))
	assertRedirect(t, ts.post("/leo/unfollow/", nil, bob), "/leo/")

	w := ts.post("/ghost/unfollow/", nil, bob)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfile(t *testing.T) {
	ts := newTestServer(t)
	leo := ts.user("leo")
	bob := ts.user("bob")
	carol := ts.user("carol")
	sqldbtest.CreatePosts(t, ts.db, leo, nil, 12)
	sqldbtest.CreatePosts(t, ts.db, bob, nil, 1)
	ctx := context.Background()
	require.NoError(t, ts.db.CreateFollow(ctx, &model.Follow{UserId: bob.Id, AuthorId: leo.Id}))
	require.NoError(t, ts.db.CreateFollow(ctx, &model.Follow{UserId: leo.Id, AuthorId: carol.Id}))

	w := ts.get("/leo/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "posts/profile.html", ts.render.name)
	assert.Equal(t, "leo", ts.render.data["author"].(*model.User).Username)
	assert.Equal(t, 12, ts.render.data["count_posts"])
	assert.Equal(t, 10, ts.page().Len())
	assert.Equal(t, 1, ts.render.data["followers"])
	assert.Equal(t, 1, ts.render.data["follows"])
	assert.Equal(t, false, ts.render.data["following"])
	for _, post := range ts.page().Items {
		assert.Equal(t, leo.Id, post.Author.Id)
	}

	ts.get("/leo/", bob)
	assert.Equal(t, true, ts.render.data["following"])
	assert.Equal(t, false, ts.render.data["is_self"])

	ts.get("/leo/", leo)
	assert.Equal(t, false, ts.render.data["following"])
	assert.Equal(t, true, ts.render.data["is_self"])

	w = ts.get("/ghost/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "misc/404.html", ts.render.name)
}
