package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/atpstorages/gotumblr/api/tumblr"
)

type ReadTagOptions struct {
	// unix seconds; server-side cursor
	Before int64
	// unix seconds; local cutoff over the fetched page only
	After int64
	// page size; zero means 20
	Limit int

	ContentTypes []tumblr.ContentType
	Strict       bool
}

// Searches public posts by tag. The local content filter and After cutoff apply to the fetched page, as with [APIClient.BlogPosts].
func (c *APIClient) ReadTag(ctx context.Context, tag string, opts *ReadTagOptions) ([]*tumblr.Post, error) {
	if tag == "" {
		return nil, fmt.Errorf("empty tag")
	}
	if opts == nil {
		opts = &ReadTagOptions{}
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	params := struct {
		Tag    string `url:"tag"`
		Limit  int    `url:"limit"`
		Before int64  `url:"before,omitempty"`
	}{
		Tag:    tag,
		Limit:  limit,
		Before: opts.Before,
	}

	var raw json.RawMessage
	if err := c.Get(ctx, "tagged", &params, &raw); err != nil {
		return nil, err
	}
	posts, err := decodePosts(raw)
	if err != nil {
		return nil, &DecodeError{Endpoint: "tagged", Err: err}
	}
	return narrowPosts(posts, opts.ContentTypes, opts.Strict, opts.After), nil
}
