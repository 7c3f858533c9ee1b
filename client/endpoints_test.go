package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/atpstorages/gotumblr/api/tumblr"
	"github.com/atpstorages/gotumblr/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  map[string]string
	Body   map[string]any
}

// Records every request and answers with an empty successful envelope, or the canned response for the path.
func recordingServer(t *testing.T, canned map[string]string) (*httptest.Server, func() []recordedRequest) {
	var lk sync.Mutex
	var reqs []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token1" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		rec := recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  map[string]string{},
		}
		for k := range r.URL.Query() {
			rec.Query[k] = r.URL.Query().Get(k)
		}
		b, _ := io.ReadAll(r.Body)
		if len(b) > 0 {
			if err := json.Unmarshal(b, &rec.Body); err != nil {
				t.Errorf("request body: %v", err)
			}
		}
		lk.Lock()
		reqs = append(reqs, rec)
		lk.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if resp, ok := canned[r.URL.Path]; ok {
			fmt.Fprintf(w, `{"meta": {"status": 200, "msg": "OK"}, "response": %s}`, resp)
			return
		}
		fmt.Fprintln(w, `{"meta": {"status": 200, "msg": "OK"}, "response": {}}`)
	}))
	return srv, func() []recordedRequest {
		lk.Lock()
		defer lk.Unlock()
		return append([]recordedRequest{}, reqs...)
	}
}

func testOAuthClient(srv *httptest.Server) *OAuthClient {
	return ResumeOAuthSession(OAuthConfig{
		ConsumerKey:    "consumer1",
		ConsumerSecret: "secret1",
		Host:           srv.URL,
		Client:         &http.Client{CheckRedirect: util.NoRedirect},
	}, OAuthSession{
		AccessToken: "token1",
		ExpiresAt:   time.Now().Add(time.Hour),
		Scope:       []string{"basic", "write"},
	}, nil)
}

func TestBlocks(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	srv, recorded := recordingServer(t, map[string]string{
		"/v2/blog/mine/blocks": `{"blocked_tumblelogs": [{"name": "spam"}]}`,
	})
	defer srv.Close()
	c := testOAuthClient(srv)

	out, err := c.BlogBlocks(ctx, tumblr.BlogName("mine"), 0, 0)
	require.NoError(err)
	require.Len(out.Blocked, 1)
	assert.Equal("spam", out.Blocked[0].Name)

	require.NoError(c.AddBlogBlock(ctx, tumblr.BlogName("mine"), out.Blocked[0]))
	require.NoError(c.AddBlogBlockByPost(ctx, tumblr.BlogName("mine"), 12345))
	require.NoError(c.AddBlogBlocks(ctx, tumblr.BlogName("mine"), true, tumblr.BlogName("a"), tumblr.BlogName("b")))
	require.NoError(c.RemoveBlogBlock(ctx, tumblr.BlogName("mine"), tumblr.BlogName("spam")))
	require.NoError(c.RemoveAnonymousBlogBlocks(ctx, tumblr.BlogName("mine")))
	assert.Error(c.AddBlogBlocks(ctx, tumblr.BlogName("mine"), false))

	reqs := recorded()
	require.Len(reqs, 6)

	assert.Equal("GET", reqs[0].Method)
	assert.Equal("20", reqs[0].Query["limit"])

	assert.Equal("POST", reqs[1].Method)
	assert.Equal("spam", reqs[1].Body["blocked_tumblelog"])

	assert.Equal(float64(12345), reqs[2].Body["post_id"])

	assert.Equal("/v2/blog/mine/blocks/bulk", reqs[3].Path)
	assert.Equal("a,b", reqs[3].Body["blocked_tumblelogs"])
	assert.Equal(true, reqs[3].Body["force"])

	assert.Equal("DELETE", reqs[4].Method)
	assert.Equal("spam", reqs[4].Query["blocked_tumblelog"])
	assert.Equal("false", reqs[4].Query["anonymous_only"])
	assert.Nil(reqs[4].Body)

	assert.Equal("true", reqs[5].Query["anonymous_only"])
	_, ok := reqs[5].Query["blocked_tumblelog"]
	assert.False(ok)
}

func TestFollows(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	srv, recorded := recordingServer(t, map[string]string{
		"/v2/blog/mine/following":   `{"total_blogs": 1, "blogs": [{"name": "staff"}]}`,
		"/v2/blog/mine/followers":   `{"total_users": 2, "users": [{"name": "a"}, {"name": "b"}]}`,
		"/v2/blog/mine/followed_by": `{"followed_by": true}`,
	})
	defer srv.Close()
	c := testOAuthClient(srv)

	following, err := c.BlogFollowing(ctx, tumblr.BlogName("mine"), 10, 5)
	require.NoError(err)
	assert.Equal(int64(1), following.TotalBlogs)

	followers, err := c.BlogFollowers(ctx, tumblr.BlogName("mine"), 0, 0)
	require.NoError(err)
	assert.Len(followers.Users, 2)

	ok, err := c.FollowedBy(ctx, tumblr.BlogName("mine"), tumblr.BlogName("staff"))
	require.NoError(err)
	assert.True(ok)

	reqs := recorded()
	require.Len(reqs, 3)
	assert.Equal("10", reqs[0].Query["offset"])
	assert.Equal("5", reqs[0].Query["limit"])
	assert.Equal("staff", reqs[2].Query["query"])
}

func TestQueue(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	srv, recorded := recordingServer(t, map[string]string{
		"/v2/blog/mine/posts/queue": `{"posts": [{"id": 9, "reblog_key": "k", "post_url": "https://mine.tumblr.com/post/9", "state": "queued", "content": []}]}`,
		"/v2/user/info":             `{"user": {"name": "me", "blogs": [{"name": "mine"}]}}`,
	})
	defer srv.Close()
	c := testOAuthClient(srv)

	queued, err := c.BlogQueuedPosts(ctx, tumblr.BlogName("mine"), 0, 0, tumblr.TextFilterText)
	require.NoError(err)
	require.Len(queued.Posts, 1)

	require.NoError(c.ReorderQueuedPost(ctx, tumblr.BlogName("mine"), 9, 0))
	require.NoError(c.ShuffleQueuedPosts(ctx, tumblr.BlogName("mine")))

	_, err = c.BlogDraftPosts(ctx, tumblr.BlogName("mine"), 100, "")
	require.NoError(err)
	_, err = c.BlogSubmissionPosts(ctx, tumblr.BlogName("mine"), 0, "")
	require.NoError(err)

	info, err := c.UserInfo(ctx)
	require.NoError(err)
	assert.Equal("me", info.Name)

	require.NoError(c.LikePost(ctx, queued.Posts[0]))
	require.NoError(c.UnlikePost(ctx, queued.Posts[0]))

	reqs := recorded()
	require.Len(reqs, 8)
	assert.Equal("text", reqs[0].Query["filter"])
	assert.Equal("/v2/blog/mine/posts/queue/reorder", reqs[1].Path)
	assert.Equal(float64(9), reqs[1].Body["post_id"])
	assert.Equal(float64(0), reqs[1].Body["insert_after"])
	assert.Equal("/v2/blog/mine/posts/queue/shuffle", reqs[2].Path)
	assert.Nil(reqs[2].Body)
	assert.Equal("100", reqs[3].Query["before_id"])
	assert.Equal("/v2/blog/mine/posts/submission", reqs[4].Path)
	assert.Equal("/v2/user/like", reqs[6].Path)
	assert.Equal("k", reqs[6].Body["reblog_key"])
	assert.Equal("/v2/user/unlike", reqs[7].Path)
	assert.Equal(float64(9), reqs[7].Body["id"])
}
