package tumblr

import (
	"encoding/json"
	"fmt"
	"strings"
)

// schema: https://www.tumblr.com/docs/npf#content-blocks

type ContentType string

const (
	ContentTypeText    ContentType = "text"
	ContentTypeImage   ContentType = "image"
	ContentTypeLink    ContentType = "link"
	ContentTypeAudio   ContentType = "audio"
	ContentTypeVideo   ContentType = "video"
	ContentTypePaywall ContentType = "paywall"
)

var contentTypes = []ContentType{
	ContentTypeText,
	ContentTypeImage,
	ContentTypeLink,
	ContentTypeAudio,
	ContentTypeVideo,
	ContentTypePaywall,
}

// Parses a content block type name (case-insensitive).
func ParseContentType(raw string) (ContentType, error) {
	for _, ct := range contentTypes {
		if strings.EqualFold(raw, string(ct)) {
			return ct, nil
		}
	}
	return "", fmt.Errorf("unknown content type: %q", raw)
}

// A single NPF content block. Exactly one of the variant fields is non-nil.
//
// Blocks with a type this package does not know about are kept as raw JSON: they re-encode verbatim, and report their wire tag from [Content.Type].
type Content struct {
	Text    *TextContent
	Image   *ImageContent
	Link    *LinkContent
	Audio   *AudioContent
	Video   *VideoContent
	Paywall *PaywallContent

	unknownType string
	unknown     json.RawMessage
}

// Capability set shared by audio and video blocks.
type AudioVideoContent interface {
	GetMedia() *Media
	GetURL() *string
	GetProvider() *string
	GetPoster() []*Media
	GetMetadata() json.RawMessage
	GetAttribution() *Attribution
}

var (
	_ AudioVideoContent = (*AudioContent)(nil)
	_ AudioVideoContent = (*VideoContent)(nil)
)

type TextContent struct {
	Type        string            `json:"type"`
	Text        string            `json:"text"`
	Subtype     *string           `json:"subtype,omitempty"`
	IndentLevel *int64            `json:"indent_level,omitempty"`
	Formatting  []*TextFormatting `json:"formatting,omitempty"`
}

// Inline formatting range within a text block. Offsets are in Unicode code points.
type TextFormatting struct {
	Type  string  `json:"type"`
	Start int64   `json:"start"`
	End   int64   `json:"end"`
	URL   *string `json:"url,omitempty"`
	Hex   *string `json:"hex,omitempty"`
	Blog  *Blog   `json:"blog,omitempty"`
}

type ImageContent struct {
	Type          string            `json:"type"`
	Media         []*Media          `json:"media"`
	Colors        map[string]string `json:"colors,omitempty"`
	FeedbackToken *string           `json:"feedback_token,omitempty"`
	Poster        *Media            `json:"poster,omitempty"`
	Attribution   *Attribution      `json:"attribution,omitempty"`
	AltText       *string           `json:"alt_text,omitempty"`
	Caption       *string           `json:"caption,omitempty"`
}

type LinkContent struct {
	Type        string   `json:"type"`
	URL         string   `json:"url"`
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Author      *string  `json:"author,omitempty"`
	SiteName    *string  `json:"site_name,omitempty"`
	DisplayURL  *string  `json:"display_url,omitempty"`
	Poster      []*Media `json:"poster,omitempty"`
}

type AudioContent struct {
	Type        string          `json:"type"`
	Media       *Media          `json:"media,omitempty"`
	URL         *string         `json:"url,omitempty"`
	Provider    *string         `json:"provider,omitempty"`
	Title       *string         `json:"title,omitempty"`
	Artist      *string         `json:"artist,omitempty"`
	Album       *string         `json:"album,omitempty"`
	Poster      []*Media        `json:"poster,omitempty"`
	EmbedHTML   *string         `json:"embed_html,omitempty"`
	EmbedURL    *string         `json:"embed_url,omitempty"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	Attribution *Attribution    `json:"attribution,omitempty"`
}

func (a *AudioContent) GetMedia() *Media             { return a.Media }
func (a *AudioContent) GetURL() *string              { return a.URL }
func (a *AudioContent) GetProvider() *string         { return a.Provider }
func (a *AudioContent) GetPoster() []*Media          { return a.Poster }
func (a *AudioContent) GetMetadata() json.RawMessage { return a.Metadata }
func (a *AudioContent) GetAttribution() *Attribution { return a.Attribution }

type VideoContent struct {
	Type                  string          `json:"type"`
	Media                 *Media          `json:"media,omitempty"`
	URL                   *string         `json:"url,omitempty"`
	Provider              *string         `json:"provider,omitempty"`
	Poster                []*Media        `json:"poster,omitempty"`
	EmbedHTML             *string         `json:"embed_html,omitempty"`
	EmbedIFrame           *EmbedIFrame    `json:"embed_iframe,omitempty"`
	EmbedURL              *string         `json:"embed_url,omitempty"`
	Metadata              json.RawMessage `json:"metadata,omitempty"`
	CanAutoplayOnCellular *bool           `json:"can_autoplay_on_cellular,omitempty"`
	Attribution           *Attribution    `json:"attribution,omitempty"`
}

func (v *VideoContent) GetMedia() *Media             { return v.Media }
func (v *VideoContent) GetURL() *string              { return v.URL }
func (v *VideoContent) GetProvider() *string         { return v.Provider }
func (v *VideoContent) GetPoster() []*Media          { return v.Poster }
func (v *VideoContent) GetMetadata() json.RawMessage { return v.Metadata }
func (v *VideoContent) GetAttribution() *Attribution { return v.Attribution }

// Paywall block; subtype is one of "cta", "divider" or "disabled".
type PaywallContent struct {
	Type    string  `json:"type"`
	Subtype string  `json:"subtype"`
	URL     string  `json:"url"`
	Title   *string `json:"title,omitempty"`
	Text    *string `json:"text,omitempty"`
	Color   *string `json:"color,omitempty"`
	IsValid *bool   `json:"is_valid,omitempty"`
}

// Returns the block's type tag. For unrecognized blocks this is the raw wire tag.
func (t *Content) Type() ContentType {
	switch {
	case t.Text != nil:
		return ContentTypeText
	case t.Image != nil:
		return ContentTypeImage
	case t.Link != nil:
		return ContentTypeLink
	case t.Audio != nil:
		return ContentTypeAudio
	case t.Video != nil:
		return ContentTypeVideo
	case t.Paywall != nil:
		return ContentTypePaywall
	}
	return ContentType(t.unknownType)
}

// Returns the audio or video variant through its shared capability set.
func (t *Content) AudioVideo() (AudioVideoContent, bool) {
	if t.Audio != nil {
		return t.Audio, true
	}
	if t.Video != nil {
		return t.Video, true
	}
	return nil, false
}

func (t *Content) MarshalJSON() ([]byte, error) {
	if t.Text != nil {
		t.Text.Type = string(ContentTypeText)
		return json.Marshal(t.Text)
	}
	if t.Image != nil {
		t.Image.Type = string(ContentTypeImage)
		return json.Marshal(t.Image)
	}
	if t.Link != nil {
		t.Link.Type = string(ContentTypeLink)
		return json.Marshal(t.Link)
	}
	if t.Audio != nil {
		t.Audio.Type = string(ContentTypeAudio)
		return json.Marshal(t.Audio)
	}
	if t.Video != nil {
		t.Video.Type = string(ContentTypeVideo)
		return json.Marshal(t.Video)
	}
	if t.Paywall != nil {
		t.Paywall.Type = string(ContentTypePaywall)
		return json.Marshal(t.Paywall)
	}
	if t.unknown != nil {
		return t.unknown, nil
	}
	return nil, fmt.Errorf("cannot marshal empty enum")
}

func (t *Content) UnmarshalJSON(b []byte) error {
	typ, err := typeExtract(b)
	if err != nil {
		return err
	}

	switch ContentType(typ) {
	case ContentTypeText:
		t.Text = new(TextContent)
		return json.Unmarshal(b, t.Text)
	case ContentTypeImage:
		t.Image = new(ImageContent)
		return json.Unmarshal(b, t.Image)
	case ContentTypeLink:
		t.Link = new(LinkContent)
		return json.Unmarshal(b, t.Link)
	case ContentTypeAudio:
		t.Audio = new(AudioContent)
		return json.Unmarshal(b, t.Audio)
	case ContentTypeVideo:
		t.Video = new(VideoContent)
		return json.Unmarshal(b, t.Video)
	case ContentTypePaywall:
		t.Paywall = new(PaywallContent)
		return json.Unmarshal(b, t.Paywall)

	default:
		t.unknownType = typ
		t.unknown = append(json.RawMessage(nil), b...)
		return nil
	}
}
