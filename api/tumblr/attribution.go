package tumblr

import (
	"encoding/json"
	"fmt"
)

// schema: https://www.tumblr.com/docs/npf#attributions

type AttributionType string

const (
	AttributionTypeLink AttributionType = "link"
	AttributionTypeBlog AttributionType = "blog"
	AttributionTypePost AttributionType = "post"
	AttributionTypeApp  AttributionType = "app"
)

// Credit for the source of an image, audio or video block. Exactly one variant is non-nil.
//
// Attributions of an unrecognized type are kept as raw JSON and report their wire tag from [Attribution.Type].
type Attribution struct {
	Link *LinkAttribution
	Blog *BlogAttribution
	Post *PostAttribution
	App  *AppAttribution

	unknownType string
	unknown     json.RawMessage
}

type LinkAttribution struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

type BlogAttribution struct {
	Type string `json:"type"`
	Blog *Blog  `json:"blog"`
}

type PostAttribution struct {
	Type string   `json:"type"`
	URL  string   `json:"url"`
	Post *PostRef `json:"post"`
	Blog *Blog    `json:"blog"`
}

// Reference to a post by id, as used inside attributions.
type PostRef struct {
	ID string `json:"id"`
}

type AppAttribution struct {
	Type        string  `json:"type"`
	URL         string  `json:"url"`
	AppName     *string `json:"app_name,omitempty"`
	DisplayText *string `json:"display_text,omitempty"`
	Logo        *Media  `json:"logo,omitempty"`
}

func (t *Attribution) Type() AttributionType {
	switch {
	case t.Link != nil:
		return AttributionTypeLink
	case t.Blog != nil:
		return AttributionTypeBlog
	case t.Post != nil:
		return AttributionTypePost
	case t.App != nil:
		return AttributionTypeApp
	}
	return AttributionType(t.unknownType)
}

func (t *Attribution) MarshalJSON() ([]byte, error) {
	if t.Link != nil {
		t.Link.Type = string(AttributionTypeLink)
		return json.Marshal(t.Link)
	}
	if t.Blog != nil {
		t.Blog.Type = string(AttributionTypeBlog)
		return json.Marshal(t.Blog)
	}
	if t.Post != nil {
		t.Post.Type = string(AttributionTypePost)
		return json.Marshal(t.Post)
	}
	if t.App != nil {
		t.App.Type = string(AttributionTypeApp)
		return json.Marshal(t.App)
	}
	if t.unknown != nil {
		return t.unknown, nil
	}
	return nil, fmt.Errorf("cannot marshal empty enum")
}

func (t *Attribution) UnmarshalJSON(b []byte) error {
	typ, err := typeExtract(b)
	if err != nil {
		return err
	}

	switch AttributionType(typ) {
	case AttributionTypeLink:
		t.Link = new(LinkAttribution)
		return json.Unmarshal(b, t.Link)
	case AttributionTypeBlog:
		t.Blog = new(BlogAttribution)
		return json.Unmarshal(b, t.Blog)
	case AttributionTypePost:
		t.Post = new(PostAttribution)
		return json.Unmarshal(b, t.Post)
	case AttributionTypeApp:
		t.App = new(AppAttribution)
		return json.Unmarshal(b, t.App)

	default:
		t.unknownType = typ
		t.unknown = append(json.RawMessage(nil), b...)
		return nil
	}
}
