package tumblr

import (
	"encoding/json"
	"fmt"
)

// Text format for legacy caption/body fields. HTML is the server default and is never sent explicitly.
type TextFilter string

const (
	TextFilterHTML TextFilter = "html"
	TextFilterText TextFilter = "text"
	TextFilterRaw  TextFilter = "raw"
)

// schema: https://www.tumblr.com/docs/en/api/v2#posts--retrieve-published-posts
type Post struct {
	ID        int64      `json:"id"`
	IDString  string     `json:"id_string,omitempty"`
	Timestamp int64      `json:"timestamp"`
	Content   []*Content `json:"content"`
	Tags      []string   `json:"tags"`
	Blog      *Blog      `json:"blog,omitempty"`
	BlogName  string     `json:"blog_name,omitempty"`

	Slug    *string `json:"slug,omitempty"`
	Summary *string `json:"summary,omitempty"`
	State   *string `json:"state,omitempty"`

	ShouldOpenInLegacy *bool `json:"should_open_in_legacy,omitempty"`
	CanLike            *bool `json:"can_like,omitempty"`
	CanReblog          *bool `json:"can_reblog,omitempty"`
	CanSendInMessage   *bool `json:"can_send_in_message,omitempty"`
	CanReply           *bool `json:"can_reply,omitempty"`
	DisplayAvatar      *bool `json:"display_avatar,omitempty"`

	NoteCount     *int64  `json:"note_count,omitempty"`
	GenesisPostID *string `json:"genesis_post_id,omitempty"`
	ShortURL      *string `json:"short_url,omitempty"`

	// required
	ReblogKey string `json:"reblog_key"`
	// required
	PostURL string `json:"post_url"`
}

type postAlias Post

type postRequired struct {
	ReblogKey *string `json:"reblog_key"`
	PostURL   *string `json:"post_url"`
}

// Decodes a post, failing with [ErrMissingField] if reblog_key or post_url is absent.
func (p *Post) UnmarshalJSON(b []byte) error {
	var req postRequired
	if err := json.Unmarshal(b, &req); err != nil {
		return err
	}
	if req.ReblogKey == nil {
		return fmt.Errorf("decoding post: %w: reblog_key", ErrMissingField)
	}
	if req.PostURL == nil {
		return fmt.Errorf("decoding post: %w: post_url", ErrMissingField)
	}
	return json.Unmarshal(b, (*postAlias)(p))
}

// Content types present in the post body, in block order. Unknown blocks report their raw tag.
func (p *Post) ContentTypes() []ContentType {
	out := make([]ContentType, 0, len(p.Content))
	for _, c := range p.Content {
		if c == nil {
			continue
		}
		out = append(out, c.Type())
	}
	return out
}
