package tumblr

import (
	"encoding/json"
	"fmt"
)

// Shape of the notes collection to request. Sent lower-cased as the "mode" query parameter.
type NotesMode string

const (
	NotesModeAll             NotesMode = "all"
	NotesModeLikes           NotesMode = "likes"
	NotesModeConversation    NotesMode = "conversation"
	NotesModeRollup          NotesMode = "rollup"
	NotesModeReblogsWithTags NotesMode = "reblogs_with_tags"
)

func (m NotesMode) String() string {
	if m == "" {
		return string(NotesModeAll)
	}
	return string(m)
}

type PostNoteType string

const (
	PostNoteTypeLike   PostNoteType = "like"
	PostNoteTypeReply  PostNoteType = "reply"
	PostNoteTypePosted PostNoteType = "posted"
	PostNoteTypeReblog PostNoteType = "reblog"
)

// Fields shared by every note variant.
type NoteBase struct {
	Type        string       `json:"type"`
	Timestamp   int64        `json:"timestamp"`
	BlogName    string       `json:"blog_name"`
	BlogUUID    string       `json:"blog_uuid"`
	BlogURL     string       `json:"blog_url"`
	Followed    bool         `json:"followed"`
	AvatarShape *AvatarShape `json:"avatar_shape,omitempty"`
}

func (n *NoteBase) Common() *NoteBase {
	return n
}

// Capability set shared by all note variants.
type BasePostNote interface {
	Common() *NoteBase
}

var (
	_ BasePostNote = (*LikeNote)(nil)
	_ BasePostNote = (*ReplyNote)(nil)
	_ BasePostNote = (*PostedNote)(nil)
	_ BasePostNote = (*ReblogNote)(nil)
)

type LikeNote struct {
	NoteBase
}

type PostedNote struct {
	NoteBase
}

type ReplyNote struct {
	NoteBase
	ReplyText  string            `json:"reply_text"`
	Formatting []*TextFormatting `json:"formatting,omitempty"`
	CanBlock   *bool             `json:"can_block,omitempty"`
}

type ReblogNote struct {
	NoteBase
	PostID               string   `json:"post_id"`
	ReblogParentBlogName *string  `json:"reblog_parent_blog_name,omitempty"`
	Tags                 []string `json:"tags,omitempty"`
	AddedText            *string  `json:"added_text,omitempty"`
}

// One entry in a post's notes. Notes of an unrecognized type are kept as raw JSON and re-encode verbatim.
type PostNote struct {
	Like   *LikeNote
	Reply  *ReplyNote
	Posted *PostedNote
	Reblog *ReblogNote

	unknownType string
	unknown     json.RawMessage
}

func (t *PostNote) Type() PostNoteType {
	switch {
	case t.Like != nil:
		return PostNoteTypeLike
	case t.Reply != nil:
		return PostNoteTypeReply
	case t.Posted != nil:
		return PostNoteTypePosted
	case t.Reblog != nil:
		return PostNoteTypeReblog
	}
	return PostNoteType(t.unknownType)
}

// Returns the shared note fields, or nil for an empty or unrecognized note.
func (t *PostNote) Base() BasePostNote {
	switch {
	case t.Like != nil:
		return t.Like
	case t.Reply != nil:
		return t.Reply
	case t.Posted != nil:
		return t.Posted
	case t.Reblog != nil:
		return t.Reblog
	}
	return nil
}

func (t *PostNote) MarshalJSON() ([]byte, error) {
	if t.Like != nil {
		t.Like.Type = string(PostNoteTypeLike)
		return json.Marshal(t.Like)
	}
	if t.Reply != nil {
		t.Reply.Type = string(PostNoteTypeReply)
		return json.Marshal(t.Reply)
	}
	if t.Posted != nil {
		t.Posted.Type = string(PostNoteTypePosted)
		return json.Marshal(t.Posted)
	}
	if t.Reblog != nil {
		t.Reblog.Type = string(PostNoteTypeReblog)
		return json.Marshal(t.Reblog)
	}
	if t.unknown != nil {
		return t.unknown, nil
	}
	return nil, fmt.Errorf("cannot marshal empty enum")
}

func (t *PostNote) UnmarshalJSON(b []byte) error {
	typ, err := typeExtract(b)
	if err != nil {
		return err
	}

	switch PostNoteType(typ) {
	case PostNoteTypeLike:
		t.Like = new(LikeNote)
		return json.Unmarshal(b, t.Like)
	case PostNoteTypeReply:
		t.Reply = new(ReplyNote)
		return json.Unmarshal(b, t.Reply)
	case PostNoteTypePosted:
		t.Posted = new(PostedNote)
		return json.Unmarshal(b, t.Posted)
	case PostNoteTypeReblog:
		t.Reblog = new(ReblogNote)
		return json.Unmarshal(b, t.Reblog)

	default:
		t.unknownType = typ
		t.unknown = append(json.RawMessage(nil), b...)
		return nil
	}
}

// Response shape for modes all, likes and rollup.
type NotesNormal struct {
	Notes      []*PostNote `json:"notes"`
	TotalNotes int64       `json:"total_notes"`
	Links      *Links      `json:"_links,omitempty"`
}

type NotesConversation struct {
	Notes        []*PostNote `json:"notes"`
	TotalLikes   int64       `json:"total_likes"`
	TotalReblogs int64       `json:"total_reblogs"`
	RollupNotes  []*PostNote `json:"rollup_notes,omitempty"`
	Links        *Links      `json:"_links,omitempty"`
}

type NotesWithTags struct {
	Notes []*PostNote `json:"notes"`
	Links *Links      `json:"_links,omitempty"`
}

// Notes response. Which variant is set depends on the requested [NotesMode], not on the payload.
type BlogPostNotes struct {
	Normal       *NotesNormal
	Conversation *NotesConversation
	WithTags     *NotesWithTags
}

// Notes in the populated variant.
func (n *BlogPostNotes) Notes() []*PostNote {
	switch {
	case n.Normal != nil:
		return n.Normal.Notes
	case n.Conversation != nil:
		return n.Conversation.Notes
	case n.WithTags != nil:
		return n.WithTags.Notes
	}
	return nil
}

// Pagination links in the populated variant, if any.
func (n *BlogPostNotes) Links() *Links {
	switch {
	case n.Normal != nil:
		return n.Normal.Links
	case n.Conversation != nil:
		return n.Conversation.Links
	case n.WithTags != nil:
		return n.WithTags.Links
	}
	return nil
}

func (n *BlogPostNotes) MarshalJSON() ([]byte, error) {
	switch {
	case n.Normal != nil:
		return json.Marshal(n.Normal)
	case n.Conversation != nil:
		return json.Marshal(n.Conversation)
	case n.WithTags != nil:
		return json.Marshal(n.WithTags)
	}
	return nil, fmt.Errorf("cannot marshal empty enum")
}

// Decodes a notes payload into the variant selected by mode.
func DecodePostNotes(mode NotesMode, raw json.RawMessage) (*BlogPostNotes, error) {
	var out BlogPostNotes
	switch mode {
	case NotesModeConversation:
		out.Conversation = new(NotesConversation)
		if err := json.Unmarshal(raw, out.Conversation); err != nil {
			return nil, err
		}
	case NotesModeReblogsWithTags:
		out.WithTags = new(NotesWithTags)
		if err := json.Unmarshal(raw, out.WithTags); err != nil {
			return nil, err
		}
	default:
		out.Normal = new(NotesNormal)
		if err := json.Unmarshal(raw, out.Normal); err != nil {
			return nil, err
		}
	}
	return &out, nil
}
