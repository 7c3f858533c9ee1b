package tumblr

import (
	"fmt"
)

// Anything that can name a blog in an endpoint path: a raw blog name or hostname ([BlogName]), or a decoded [Blog].
type Identifier interface {
	BlogIdentifier() string
}

// Raw blog identifier: a blog name ("staff"), hostname ("staff.tumblr.com") or "t:"-prefixed UUID.
type BlogName string

func (n BlogName) BlogIdentifier() string {
	return string(n)
}

func (n BlogName) String() string {
	return string(n)
}

type AvatarShape string

const (
	AvatarShapeCircle AvatarShape = "circle"
	AvatarShapeSquare AvatarShape = "square"
)

// Square avatar edge length in pixels.
type AvatarSize int

const (
	AvatarSize16  AvatarSize = 16
	AvatarSize24  AvatarSize = 24
	AvatarSize30  AvatarSize = 30
	AvatarSize40  AvatarSize = 40
	AvatarSize48  AvatarSize = 48
	AvatarSize64  AvatarSize = 64
	AvatarSize96  AvatarSize = 96
	AvatarSize128 AvatarSize = 128
	AvatarSize512 AvatarSize = 512

	DefaultAvatarSize = AvatarSize512
)

func (s AvatarSize) Valid() bool {
	switch s {
	case AvatarSize16, AvatarSize24, AvatarSize30, AvatarSize40, AvatarSize48,
		AvatarSize64, AvatarSize96, AvatarSize128, AvatarSize512:
		return true
	}
	return false
}

func (s AvatarSize) String() string {
	return fmt.Sprintf("%d", int(s))
}

// Snapshot of a blog as returned by the API. Never mutated locally.
type Blog struct {
	UUID        string  `json:"uuid,omitempty"`
	Name        string  `json:"name,omitempty"`
	URL         string  `json:"url,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`

	Followed             *bool `json:"followed,omitempty"`
	IsBlockedFromPrimary *bool `json:"is_blocked_from_primary,omitempty"`
	Ask                  *bool `json:"ask,omitempty"`
	AskAnon              *bool `json:"ask_anon,omitempty"`

	// unix seconds
	Updated *int64 `json:"updated,omitempty"`
	Posts   *int64 `json:"posts,omitempty"`
	Likes   *int64 `json:"likes,omitempty"`

	Avatar []*Media   `json:"avatar,omitempty"`
	Theme  *BlogTheme `json:"theme,omitempty"`
}

// Prefers the blog name, falling back to the "t:" UUID.
func (b *Blog) BlogIdentifier() string {
	if b.Name != "" {
		return b.Name
	}
	return b.UUID
}

type BlogTheme struct {
	AvatarShape     *AvatarShape `json:"avatar_shape,omitempty"`
	BackgroundColor *string      `json:"background_color,omitempty"`
	BodyFont        *string      `json:"body_font,omitempty"`
	HeaderBounds    *string      `json:"header_bounds,omitempty"`
	HeaderImage     *string      `json:"header_image,omitempty"`
	// header image as an NPF image block
	HeaderImageNPF     *Content `json:"header_image_npf,omitempty"`
	HeaderImageFocused *string  `json:"header_image_focused,omitempty"`
	HeaderImagePoster  *string  `json:"header_image_poster,omitempty"`
	HeaderImageScaled  *string  `json:"header_image_scaled,omitempty"`
	HeaderStretch      *bool    `json:"header_stretch,omitempty"`
	LinkColor          *string  `json:"link_color,omitempty"`
	ShowAvatar         *bool    `json:"show_avatar,omitempty"`
	ShowDescription    *bool    `json:"show_description,omitempty"`
	ShowHeaderImage    *bool    `json:"show_header_image,omitempty"`
	ShowTitle          *bool    `json:"show_title,omitempty"`
	TitleColor         *string  `json:"title_color,omitempty"`
	TitleFont          *string  `json:"title_font,omitempty"`
	TitleFontWeight    *string  `json:"title_font_weight,omitempty"`
}
