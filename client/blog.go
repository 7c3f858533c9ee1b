package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/atpstorages/gotumblr/api/tumblr"
)

const defaultLimit = 20

// Returns the URL of a blog's avatar image at the given size (zero means [tumblr.DefaultAvatarSize]).
//
// The API answers with either a redirect to the image, in which case the Location header is returned verbatim, or a JSON envelope with an "avatar_url" field.
func (c *APIClient) BlogAvatar(ctx context.Context, blog tumblr.Identifier, size tumblr.AvatarSize) (string, error) {
	if size == 0 {
		size = tumblr.DefaultAvatarSize
	}
	if !size.Valid() {
		return "", fmt.Errorf("unsupported avatar size: %d", size)
	}
	endpoint, err := blogEndpoint(blog.BlogIdentifier(), "avatar", size.String())
	if err != nil {
		return "", err
	}

	req := NewAPIRequest(http.MethodGet, endpoint, nil)
	resp, err := c.Do(ctx, req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if loc := resp.Header.Get("Location"); loc != "" && resp.StatusCode >= 300 && resp.StatusCode < 400 {
		return loc, nil
	}
	if !(resp.StatusCode >= 200 && resp.StatusCode < 300) {
		return "", apiErrorFromResponse(resp)
	}

	var env tumblr.Response[struct {
		AvatarURL string `json:"avatar_url"`
	}]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return "", &DecodeError{Endpoint: endpoint, Err: err}
	}
	if env.Response.AvatarURL == "" {
		return "", &DecodeError{Endpoint: endpoint, Err: fmt.Errorf("%w: avatar_url", tumblr.ErrMissingField)}
	}
	return env.Response.AvatarURL, nil
}

// Fetches a blog's public metadata.
func (c *APIClient) BlogInfo(ctx context.Context, blog tumblr.Identifier) (*tumblr.Blog, error) {
	endpoint, err := blogEndpoint(blog.BlogIdentifier(), "info")
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := c.Get(ctx, endpoint, nil, &raw); err != nil {
		return nil, err
	}

	// documented as {"blog": {...}}, but some hosts return the blog object directly
	var wrapped struct {
		Blog *tumblr.Blog `json:"blog"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, &DecodeError{Endpoint: endpoint, Err: err}
	}
	if wrapped.Blog != nil {
		return wrapped.Blog, nil
	}
	var out tumblr.Blog
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &DecodeError{Endpoint: endpoint, Err: err}
	}
	if out.Name == "" && out.UUID == "" {
		return nil, &DecodeError{Endpoint: endpoint, Err: fmt.Errorf("%w: blog", ErrNotFound)}
	}
	return &out, nil
}

// Fetches notes for a post. before (unix seconds, zero for none) pages backwards; mode selects which variant of [tumblr.BlogPostNotes] is populated.
func (c *APIClient) BlogPostNotes(ctx context.Context, blog tumblr.Identifier, id int64, before int64, mode tumblr.NotesMode) (*tumblr.BlogPostNotes, error) {
	endpoint, err := blogEndpoint(blog.BlogIdentifier(), "notes")
	if err != nil {
		return nil, err
	}
	params := struct {
		ID              int64  `url:"id"`
		Mode            string `url:"mode"`
		BeforeTimestamp int64  `url:"before_timestamp,omitempty"`
	}{
		ID:              id,
		Mode:            mode.String(),
		BeforeTimestamp: before,
	}

	var raw json.RawMessage
	if err := c.Get(ctx, endpoint, &params, &raw); err != nil {
		return nil, err
	}
	out, err := tumblr.DecodePostNotes(mode, raw)
	if err != nil {
		return nil, &DecodeError{Endpoint: endpoint, Err: err}
	}
	return out, nil
}

type BlogPostsOptions struct {
	// page size; zero means 20
	Limit  int
	Offset int
	// unix seconds; server-side cursor
	Before int64
	// unix seconds; posts at or before this are dropped locally from the fetched page. Does not page forward.
	After int64
	// zero value means HTML, the server default
	TextFilter tumblr.TextFilter
	// only posts carrying all of these tags
	Tags []string

	// local content narrowing, see [tumblr.FilterContent]
	ContentTypes []tumblr.ContentType
	Strict       bool
}

type BlogPostsOutput struct {
	Blog       *tumblr.Blog   `json:"blog,omitempty"`
	Posts      []*tumblr.Post `json:"posts"`
	TotalPosts int64          `json:"total_posts"`
	Links      *tumblr.Links  `json:"_links,omitempty"`
}

// Fetches one page of a blog's published posts, then applies the local content filter and After cutoff (in that order) to that page.
func (c *APIClient) BlogPosts(ctx context.Context, blog tumblr.Identifier, opts *BlogPostsOptions) (*BlogPostsOutput, error) {
	if opts == nil {
		opts = &BlogPostsOptions{}
	}
	endpoint, err := blogEndpoint(blog.BlogIdentifier(), "posts")
	if err != nil {
		return nil, err
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	qp, err := ParseParams(&struct {
		Filter string `url:"filter,omitempty"`
		Before int64  `url:"before,omitempty"`
		Offset int    `url:"offset"`
		Limit  int    `url:"limit"`
	}{
		Filter: textFilterParam(opts.TextFilter),
		Before: opts.Before,
		Offset: opts.Offset,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}
	for i, tag := range opts.Tags {
		qp.Set("tag["+strconv.Itoa(i)+"]", tag)
	}

	var out BlogPostsOutput
	if err := c.Get(ctx, endpoint, qp, &out); err != nil {
		return nil, err
	}
	out.Posts = narrowPosts(out.Posts, opts.ContentTypes, opts.Strict, opts.After)
	return &out, nil
}

// Fetches a single post by id. A response with no posts fails with a [DecodeError] wrapping [ErrNotFound].
func (c *APIClient) BlogPost(ctx context.Context, blog tumblr.Identifier, id int64, textFilter tumblr.TextFilter) (*tumblr.Post, error) {
	endpoint, err := blogEndpoint(blog.BlogIdentifier(), "posts")
	if err != nil {
		return nil, err
	}
	params := struct {
		ID     int64  `url:"id"`
		Filter string `url:"filter,omitempty"`
	}{
		ID:     id,
		Filter: textFilterParam(textFilter),
	}

	var raw json.RawMessage
	if err := c.Get(ctx, endpoint, &params, &raw); err != nil {
		return nil, err
	}
	posts, err := decodePosts(raw)
	if err != nil {
		return nil, &DecodeError{Endpoint: endpoint, Err: err}
	}
	if len(posts) == 0 {
		return nil, &DecodeError{Endpoint: endpoint, Err: fmt.Errorf("post %d: %w", id, ErrNotFound)}
	}
	return posts[0], nil
}

func textFilterParam(f tumblr.TextFilter) string {
	if f == tumblr.TextFilterHTML {
		return ""
	}
	return string(f)
}

// Applies the optional content filter, then the optional After cutoff.
func narrowPosts(posts []*tumblr.Post, types []tumblr.ContentType, strict bool, after int64) []*tumblr.Post {
	if len(types) > 0 {
		posts = tumblr.FilterContent(posts, types, strict)
	}
	return tumblr.AfterCutoff(posts, after)
}

// Decodes a post listing which may be a bare array or an object with a "posts" array.
func decodePosts(raw json.RawMessage) ([]*tumblr.Post, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '[' {
		var posts []*tumblr.Post
		if err := json.Unmarshal(raw, &posts); err != nil {
			return nil, err
		}
		return posts, nil
	}
	var wrapped struct {
		Posts []*tumblr.Post `json:"posts"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Posts, nil
}
