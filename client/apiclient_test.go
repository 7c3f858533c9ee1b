package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/atpstorages/gotumblr/api/tumblr"
	"github.com/atpstorages/gotumblr/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postsPage = `{
	"meta": {"status": 200, "msg": "OK"},
	"response": {
		"blog": {"name": "staff", "uuid": "t:staff"},
		"total_posts": 4,
		"posts": [
			{"id": 4, "timestamp": 400, "reblog_key": "k4", "post_url": "https://staff.tumblr.com/post/4", "tags": [], "content": [{"type": "text", "text": "four"}]},
			{"id": 3, "timestamp": 300, "reblog_key": "k3", "post_url": "https://staff.tumblr.com/post/3", "tags": [], "content": [{"type": "text", "text": "three"}, {"type": "image", "media": [{"url": "https://x/3.png"}]}]},
			{"id": 2, "timestamp": 200, "reblog_key": "k2", "post_url": "https://staff.tumblr.com/post/2", "tags": [], "content": [{"type": "image", "media": [{"url": "https://x/2.png"}]}]},
			{"id": 1, "timestamp": 100, "reblog_key": "k1", "post_url": "https://staff.tumblr.com/post/1", "tags": [], "content": [{"type": "text", "text": "one"}]}
		],
		"_links": {"next": {"href": "/v2/blog/staff/posts?offset=4", "method": "GET", "query_params": {"offset": "4"}}}
	}
}`

func apiHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("npf") != "true" || r.URL.Query().Get("api_key") != "consumer1" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	switch r.URL.Path {
	case "/v2/blog/staff/avatar/512":
		w.Header().Set("Location", "https://x/y.png")
		w.WriteHeader(http.StatusFound)
	case "/v2/blog/staff/avatar/64":
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"meta": {"status": 200, "msg": "OK"}, "response": {"avatar_url": "https://x/z.png"}}`)
	case "/v2/blog/staff/info":
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"meta": {"status": 200, "msg": "OK"}, "response": {"blog": {"name": "staff", "uuid": "t:staff", "title": "Tumblr Staff", "posts": 4, "theme": {"avatar_shape": "square"}}}}`)
	case "/v2/blog/staff/posts":
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("id") == "99" {
			fmt.Fprintln(w, `{"meta": {"status": 200, "msg": "OK"}, "response": {"posts": []}}`)
			return
		}
		if r.URL.Query().Get("id") == "3" {
			fmt.Fprintln(w, `{"meta": {"status": 200, "msg": "OK"}, "response": {"posts": [{"id": 3, "timestamp": 300, "reblog_key": "k3", "post_url": "https://staff.tumblr.com/post/3", "tags": [], "content": []}]}}`)
			return
		}
		fmt.Fprintln(w, postsPage)
	case "/v2/tagged":
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"meta": {"status": 200, "msg": "OK"}, "response": [
			{"id": 7, "timestamp": 700, "reblog_key": "k7", "post_url": "https://a.tumblr.com/post/7", "tags": ["cats"], "content": [{"type": "text", "text": "x"}]},
			{"id": 6, "timestamp": 600, "reblog_key": "k6", "post_url": "https://a.tumblr.com/post/6", "tags": ["cats"], "content": [{"type": "text", "text": "y"}]},
			{"id": 5, "timestamp": 500, "reblog_key": "k5", "post_url": "https://a.tumblr.com/post/5", "tags": ["cats"], "content": [{"type": "text", "text": "z"}]}
		]}`)
	case "/v2/blog/staff/likes":
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"meta": {"status": 200, "msg": "OK"}, "response": {"liked_count": 1, "liked_posts": [], "_links": {"next": {"href": "/v2/blog/staff/likes?%s"}}}}`, r.URL.RawQuery)
	case "/v2/blog/staff/notes":
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"meta": {"status": 200, "msg": "OK"}, "response": {"notes": [{"type": "like", "timestamp": 1, "blog_name": "a", "blog_uuid": "t:a", "blog_url": "https://a.tumblr.com/", "followed": false}], "total_likes": 1, "total_reblogs": 0}}`)
	case "/v2/blog/private/info":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Ratelimit-Perhour-Limit", "1000")
		w.Header().Set("X-Ratelimit-Perhour-Remaining", "917")
		w.Header().Set("X-Ratelimit-Perhour-Reset", "3263")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintln(w, `{"meta": {"status": 404, "msg": "Not Found"}, "response": [], "errors": [{"title": "Not Found", "code": 0, "detail": "This blog is private."}]}`)
	default:
		http.NotFound(w, r)
	}
}

func testClient(srv *httptest.Server) *APIClient {
	c := NewAPIClient("consumer1")
	c.Host = srv.URL
	c.Client = &http.Client{CheckRedirect: util.NoRedirect}
	return c
}

func TestBlogAvatar(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(apiHandler))
	defer srv.Close()
	c := testClient(srv)

	u, err := c.BlogAvatar(ctx, tumblr.BlogName("staff"), 0)
	require.NoError(err)
	assert.Equal("https://x/y.png", u)

	u, err = c.BlogAvatar(ctx, &tumblr.Blog{Name: "staff"}, tumblr.AvatarSize64)
	require.NoError(err)
	assert.Equal("https://x/z.png", u)

	_, err = c.BlogAvatar(ctx, tumblr.BlogName("staff"), tumblr.AvatarSize(100))
	assert.Error(err)
}

func TestBlogInfo(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(apiHandler))
	defer srv.Close()
	c := testClient(srv)

	blog, err := c.BlogInfo(ctx, tumblr.BlogName("staff"))
	require.NoError(err)
	assert.Equal("t:staff", blog.UUID)
	require.NotNil(blog.Theme)
	assert.Equal(tumblr.AvatarShapeSquare, *blog.Theme.AvatarShape)

	_, err = c.BlogInfo(ctx, tumblr.BlogName("private"))
	var apierr *APIError
	require.True(errors.As(err, &apierr))
	assert.Equal(http.StatusNotFound, apierr.StatusCode)
	assert.Equal("Not Found: This blog is private.", apierr.Errors[0].Title+": "+apierr.Errors[0].Detail)
	require.NotNil(apierr.Ratelimit)
	assert.Equal(917, apierr.Ratelimit.PerHour.Remaining)
	assert.Nil(apierr.Ratelimit.PerDay)

	_, err = c.BlogInfo(ctx, tumblr.BlogName("a/b"))
	assert.Error(err)
}

func TestDefaultHeaders(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(r.Header.Get("User-Agent"), "gotumblr/")
		assert.Equal("application/json", r.Header.Get("Content-Type"))
		assert.Empty(r.Header.Get("Authorization"))
		assert.Equal("true", r.URL.Query().Get("npf"))
		// api_key is always sent, even when empty
		assert.True(r.URL.Query().Has("api_key"))
		fmt.Fprintln(w, `{"meta": {"status": 200, "msg": "OK"}, "response": {"blog": {"name": "staff"}}}`)
	}))
	defer srv.Close()

	c := NewAPIClient("")
	c.Host = srv.URL
	c.Client = &http.Client{CheckRedirect: util.NoRedirect}
	_, err := c.BlogInfo(ctx, tumblr.BlogName("staff"))
	require.NoError(err)
}

func TestBlogPosts(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	var lk sync.Mutex
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lk.Lock()
		seen = append(seen, r.URL.RawQuery)
		lk.Unlock()
		apiHandler(w, r)
	}))
	defer srv.Close()
	c := testClient(srv)

	out, err := c.BlogPosts(ctx, tumblr.BlogName("staff"), nil)
	require.NoError(err)
	assert.Len(out.Posts, 4)
	assert.Equal(int64(4), out.TotalPosts)
	assert.Equal("staff", out.Blog.Name)
	require.NotNil(out.Links)
	assert.Equal("4", out.Links.Next.QueryParams["offset"])

	out, err = c.BlogPosts(ctx, tumblr.BlogName("staff"), &BlogPostsOptions{
		After:        150,
		ContentTypes: []tumblr.ContentType{tumblr.ContentTypeText},
		Strict:       true,
		TextFilter:   tumblr.TextFilterRaw,
		Tags:         []string{"a", "b"},
	})
	require.NoError(err)
	var ids []int64
	for _, p := range out.Posts {
		ids = append(ids, p.ID)
	}
	// post 3 is mixed, post 2 has no text, post 1 is before the cutoff
	assert.Equal([]int64{4}, ids)

	out, err = c.BlogPosts(ctx, tumblr.BlogName("staff"), &BlogPostsOptions{
		ContentTypes: []tumblr.ContentType{tumblr.ContentTypeText},
	})
	require.NoError(err)
	assert.Len(out.Posts, 4)
	assert.Empty(out.Posts[2].Content)

	lk.Lock()
	defer lk.Unlock()
	require.Len(seen, 3)
	assert.Equal("api_key=consumer1&limit=20&npf=true&offset=0", seen[0])
	assert.Contains(seen[1], "filter=raw")
	assert.Contains(seen[1], "tag%5B0%5D=a")
	assert.Contains(seen[1], "tag%5B1%5D=b")
	assert.NotContains(seen[2], "filter=")
}

func TestBlogPost(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(apiHandler))
	defer srv.Close()
	c := testClient(srv)

	p, err := c.BlogPost(ctx, tumblr.BlogName("staff"), 3, "")
	require.NoError(err)
	assert.Equal(int64(3), p.ID)

	_, err = c.BlogPost(ctx, tumblr.BlogName("staff"), 99, "")
	var decErr *DecodeError
	assert.True(errors.As(err, &decErr))
	assert.True(errors.Is(err, ErrNotFound))
}

func TestReadTagAfter(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(apiHandler))
	defer srv.Close()
	c := testClient(srv)

	posts, err := c.ReadTag(ctx, "cats", &ReadTagOptions{After: 600})
	require.NoError(err)
	require.Len(posts, 1)
	for _, p := range posts {
		assert.Greater(p.Timestamp, int64(600))
	}

	posts, err = c.ReadTag(ctx, "cats", nil)
	require.NoError(err)
	assert.Len(posts, 3)

	_, err = c.ReadTag(ctx, "", nil)
	assert.Error(err)
}

func TestBlogLikesCursors(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(apiHandler))
	defer srv.Close()
	c := testClient(srv)

	out, err := c.BlogLikesBefore(ctx, tumblr.BlogName("staff"), 1000, nil)
	require.NoError(err)
	assert.Equal(int64(1), out.Count)
	assert.Contains(out.Links.Next.Href, "before=1000")
	assert.NotContains(out.Links.Next.Href, "after=")
	assert.NotContains(out.Links.Next.Href, "offset=")

	out, err = c.BlogLikesAfter(ctx, tumblr.BlogName("staff"), 1000, &LikesOptions{Limit: 5})
	require.NoError(err)
	assert.Contains(out.Links.Next.Href, "after=1000")
	assert.Contains(out.Links.Next.Href, "limit=5")
	assert.NotContains(out.Links.Next.Href, "before=")

	out, err = c.BlogLikes(ctx, tumblr.BlogName("staff"), 40, nil)
	require.NoError(err)
	assert.Contains(out.Links.Next.Href, "offset=40")
	assert.Contains(out.Links.Next.Href, "limit=20")
}

func TestBlogPostNotes(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(apiHandler))
	defer srv.Close()
	c := testClient(srv)

	notes, err := c.BlogPostNotes(ctx, tumblr.BlogName("staff"), 3, 0, tumblr.NotesModeConversation)
	require.NoError(err)
	require.NotNil(notes.Conversation)
	assert.Equal(int64(1), notes.Conversation.TotalLikes)
	assert.Len(notes.Notes(), 1)
}

func TestTransportError(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(apiHandler))
	c := testClient(srv)
	srv.Close()

	_, err := c.BlogInfo(ctx, tumblr.BlogName("staff"))
	var terr *TransportError
	assert.True(errors.As(err, &terr))
}
