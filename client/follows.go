package client

import (
	"context"

	"github.com/atpstorages/gotumblr/api/tumblr"
)

type pageParams struct {
	Offset int `url:"offset"`
	Limit  int `url:"limit"`
}

func newPageParams(offset, limit int) *pageParams {
	if limit <= 0 {
		limit = defaultLimit
	}
	return &pageParams{Offset: offset, Limit: limit}
}

type BlogFollowingOutput struct {
	Blogs      []*tumblr.Blog `json:"blogs"`
	TotalBlogs int64          `json:"total_blogs"`
	Links      *tumblr.Links  `json:"_links,omitempty"`
}

// Lists blogs followed by one of the authenticated user's blogs.
func (c *OAuthClient) BlogFollowing(ctx context.Context, blog tumblr.Identifier, offset, limit int) (*BlogFollowingOutput, error) {
	endpoint, err := blogEndpoint(blog.BlogIdentifier(), "following")
	if err != nil {
		return nil, err
	}
	var out BlogFollowingOutput
	if err := c.Get(ctx, endpoint, newPageParams(offset, limit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type BlogFollowersOutput struct {
	Users      []*tumblr.Blog `json:"users"`
	TotalUsers int64          `json:"total_users"`
	Links      *tumblr.Links  `json:"_links,omitempty"`
}

// Lists followers of one of the authenticated user's blogs.
func (c *OAuthClient) BlogFollowers(ctx context.Context, blog tumblr.Identifier, offset, limit int) (*BlogFollowersOutput, error) {
	endpoint, err := blogEndpoint(blog.BlogIdentifier(), "followers")
	if err != nil {
		return nil, err
	}
	var out BlogFollowersOutput
	if err := c.Get(ctx, endpoint, newPageParams(offset, limit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reports whether who follows blog.
func (c *OAuthClient) FollowedBy(ctx context.Context, blog, who tumblr.Identifier) (bool, error) {
	endpoint, err := blogEndpoint(blog.BlogIdentifier(), "followed_by")
	if err != nil {
		return false, err
	}
	params := map[string]any{
		"query": who.BlogIdentifier(),
	}
	var out struct {
		FollowedBy bool `json:"followed_by"`
	}
	if err := c.Get(ctx, endpoint, params, &out); err != nil {
		return false, err
	}
	return out.FollowedBy, nil
}
