package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/atpstorages/gotumblr/api/tumblr"
)

type BlogBlocksOutput struct {
	Blocked []*tumblr.Blog `json:"blocked_tumblelogs"`
	Links   *tumblr.Links  `json:"_links,omitempty"`
}

// Lists blogs blocked by one of the authenticated user's blogs. A zero limit means 20.
func (c *OAuthClient) BlogBlocks(ctx context.Context, blog tumblr.Identifier, offset, limit int) (*BlogBlocksOutput, error) {
	endpoint, err := blogEndpoint(blog.BlogIdentifier(), "blocks")
	if err != nil {
		return nil, err
	}
	var out BlogBlocksOutput
	if err := c.Get(ctx, endpoint, newPageParams(offset, limit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Blocks a blog.
func (c *OAuthClient) AddBlogBlock(ctx context.Context, blog, blocked tumblr.Identifier) error {
	endpoint, err := blogEndpoint(blog.BlogIdentifier(), "blocks")
	if err != nil {
		return err
	}
	body := map[string]any{
		"blocked_tumblelog": blocked.BlogIdentifier(),
	}
	return c.Post(ctx, endpoint, body, nil)
}

// Blocks the (possibly anonymous) author of a post, such as an anonymous ask.
func (c *OAuthClient) AddBlogBlockByPost(ctx context.Context, blog tumblr.Identifier, postID int64) error {
	endpoint, err := blogEndpoint(blog.BlogIdentifier(), "blocks")
	if err != nil {
		return err
	}
	body := map[string]any{
		"post_id": postID,
	}
	return c.Post(ctx, endpoint, body, nil)
}

// Blocks several blogs at once. With force, existing follow relationships are removed rather than failing the request.
func (c *OAuthClient) AddBlogBlocks(ctx context.Context, blog tumblr.Identifier, force bool, blocked ...tumblr.Identifier) error {
	if len(blocked) == 0 {
		return fmt.Errorf("no blogs to block")
	}
	endpoint, err := blogEndpoint(blog.BlogIdentifier(), "blocks", "bulk")
	if err != nil {
		return err
	}
	ids := make([]string, len(blocked))
	for i, b := range blocked {
		ids[i] = b.BlogIdentifier()
	}
	body := map[string]any{
		"force":              force,
		"blocked_tumblelogs": strings.Join(ids, ","),
	}
	return c.Post(ctx, endpoint, body, nil)
}

type removeBlockParams struct {
	AnonymousOnly bool   `url:"anonymous_only"`
	Blocked       string `url:"blocked_tumblelog,omitempty"`
}

// Unblocks a blog.
func (c *OAuthClient) RemoveBlogBlock(ctx context.Context, blog, blocked tumblr.Identifier) error {
	endpoint, err := blogEndpoint(blog.BlogIdentifier(), "blocks")
	if err != nil {
		return err
	}
	return c.Delete(ctx, endpoint, &removeBlockParams{Blocked: blocked.BlogIdentifier()}, nil)
}

// Removes every anonymous block (IP blocks from anonymous asks) for the blog.
func (c *OAuthClient) RemoveAnonymousBlogBlocks(ctx context.Context, blog tumblr.Identifier) error {
	endpoint, err := blogEndpoint(blog.BlogIdentifier(), "blocks")
	if err != nil {
		return err
	}
	return c.Delete(ctx, endpoint, &removeBlockParams{AnonymousOnly: true}, nil)
}
