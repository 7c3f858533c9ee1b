package client

import (
	"context"
	"encoding/json"

	"github.com/atpstorages/gotumblr/api/tumblr"
)

type QueuedPosts struct {
	// undocumented; passed through as-is
	State json.RawMessage `json:"state,omitempty"`
	Posts []*tumblr.Post  `json:"posts"`
	Links *tumblr.Links   `json:"_links,omitempty"`
}

// Lists a blog's queued posts. A zero limit means 20.
func (c *OAuthClient) BlogQueuedPosts(ctx context.Context, blog tumblr.Identifier, offset, limit int, textFilter tumblr.TextFilter) (*QueuedPosts, error) {
	endpoint, err := blogEndpoint(blog.BlogIdentifier(), "posts", "queue")
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	params := struct {
		Offset int    `url:"offset"`
		Limit  int    `url:"limit"`
		Filter string `url:"filter,omitempty"`
	}{offset, limit, textFilterParam(textFilter)}

	var out QueuedPosts
	if err := c.Get(ctx, endpoint, &params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Moves a queued post to just after another queued post. An insertAfter of zero moves it to the top of the queue.
func (c *OAuthClient) ReorderQueuedPost(ctx context.Context, blog tumblr.Identifier, postID, insertAfter int64) error {
	endpoint, err := blogEndpoint(blog.BlogIdentifier(), "posts", "queue", "reorder")
	if err != nil {
		return err
	}
	body := map[string]any{
		"post_id":      postID,
		"insert_after": insertAfter,
	}
	return c.Post(ctx, endpoint, body, nil)
}

// Randomizes the order of a blog's queue.
func (c *OAuthClient) ShuffleQueuedPosts(ctx context.Context, blog tumblr.Identifier) error {
	endpoint, err := blogEndpoint(blog.BlogIdentifier(), "posts", "queue", "shuffle")
	if err != nil {
		return err
	}
	return c.Post(ctx, endpoint, nil, nil)
}

type DraftPosts struct {
	Posts []*tumblr.Post `json:"posts"`
	Links *tumblr.Links  `json:"_links,omitempty"`
}

// Lists a blog's drafts. beforeID (zero for none) pages backwards by post id.
func (c *OAuthClient) BlogDraftPosts(ctx context.Context, blog tumblr.Identifier, beforeID int64, textFilter tumblr.TextFilter) (*DraftPosts, error) {
	endpoint, err := blogEndpoint(blog.BlogIdentifier(), "posts", "draft")
	if err != nil {
		return nil, err
	}
	params := struct {
		BeforeID int64  `url:"before_id,omitempty"`
		Filter   string `url:"filter,omitempty"`
	}{beforeID, textFilterParam(textFilter)}

	var out DraftPosts
	if err := c.Get(ctx, endpoint, &params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type SubmissionPosts struct {
	Posts []*tumblr.Post `json:"posts"`
	Links *tumblr.Links  `json:"_links,omitempty"`
}

// Lists posts submitted to a blog and awaiting review.
func (c *OAuthClient) BlogSubmissionPosts(ctx context.Context, blog tumblr.Identifier, offset int, textFilter tumblr.TextFilter) (*SubmissionPosts, error) {
	endpoint, err := blogEndpoint(blog.BlogIdentifier(), "posts", "submission")
	if err != nil {
		return nil, err
	}
	params := struct {
		Offset int    `url:"offset"`
		Filter string `url:"filter,omitempty"`
	}{offset, textFilterParam(textFilter)}

	var out SubmissionPosts
	if err := c.Get(ctx, endpoint, &params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
