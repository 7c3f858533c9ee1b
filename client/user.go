package client

import (
	"context"
	"fmt"

	"github.com/atpstorages/gotumblr/api/tumblr"
)

type UserInfo struct {
	Name      string         `json:"name"`
	Likes     int64          `json:"likes"`
	Following int64          `json:"following"`
	Blogs     []*tumblr.Blog `json:"blogs"`
}

// Returns the authenticated user's account and blogs.
func (c *OAuthClient) UserInfo(ctx context.Context) (*UserInfo, error) {
	var out struct {
		User *UserInfo `json:"user"`
	}
	if err := c.Get(ctx, "user/info", nil, &out); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, &DecodeError{Endpoint: "user/info", Err: fmt.Errorf("%w: user", tumblr.ErrMissingField)}
	}
	return out.User, nil
}

type likeParams struct {
	ID        int64  `json:"id"`
	ReblogKey string `json:"reblog_key"`
}

// Likes a post as the authenticated user.
func (c *OAuthClient) LikePost(ctx context.Context, post *tumblr.Post) error {
	return c.Post(ctx, "user/like", &likeParams{ID: post.ID, ReblogKey: post.ReblogKey}, nil)
}

func (c *OAuthClient) UnlikePost(ctx context.Context, post *tumblr.Post) error {
	return c.Post(ctx, "user/unlike", &likeParams{ID: post.ID, ReblogKey: post.ReblogKey}, nil)
}
