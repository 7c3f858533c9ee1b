package client

import (
	"context"

	"github.com/atpstorages/gotumblr/api/tumblr"
)

type LikesOptions struct {
	// page size; zero means 20
	Limit int

	ContentTypes []tumblr.ContentType
	Strict       bool
}

type LikedPosts struct {
	Posts []*tumblr.Post `json:"liked_posts"`
	Count int64          `json:"liked_count"`
	Links *tumblr.Links  `json:"_links,omitempty"`
}

// The API accepts exactly one of before, offset or after. The public entry points each set one.
type likesCursor struct {
	Before int64 `url:"before,omitempty"`
	Offset int   `url:"offset,omitempty"`
	After  int64 `url:"after,omitempty"`
	Limit  int   `url:"limit"`
}

func (c *APIClient) blogLikes(ctx context.Context, blog tumblr.Identifier, cursor likesCursor, opts *LikesOptions) (*LikedPosts, error) {
	if opts == nil {
		opts = &LikesOptions{}
	}
	endpoint, err := blogEndpoint(blog.BlogIdentifier(), "likes")
	if err != nil {
		return nil, err
	}
	cursor.Limit = opts.Limit
	if cursor.Limit <= 0 {
		cursor.Limit = defaultLimit
	}

	var out LikedPosts
	if err := c.Get(ctx, endpoint, &cursor, &out); err != nil {
		return nil, err
	}
	out.Posts = narrowPosts(out.Posts, opts.ContentTypes, opts.Strict, 0)
	return &out, nil
}

// Pages through a blog's likes by offset from the most recent.
func (c *APIClient) BlogLikes(ctx context.Context, blog tumblr.Identifier, offset int, opts *LikesOptions) (*LikedPosts, error) {
	return c.blogLikes(ctx, blog, likesCursor{Offset: offset}, opts)
}

// Likes made before the given instant (unix seconds).
func (c *APIClient) BlogLikesBefore(ctx context.Context, blog tumblr.Identifier, before int64, opts *LikesOptions) (*LikedPosts, error) {
	return c.blogLikes(ctx, blog, likesCursor{Before: before}, opts)
}

// Likes made after the given instant (unix seconds). Unlike [BlogPostsOptions.After], this is a server-side cursor.
func (c *APIClient) BlogLikesAfter(ctx context.Context, blog tumblr.Identifier, after int64, opts *LikesOptions) (*LikedPosts, error) {
	return c.blogLikes(ctx, blog, likesCursor{After: after}, opts)
}
