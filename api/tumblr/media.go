package tumblr

// Capability set shared by [Media] and [EmbedIFrame].
type BaseMedia interface {
	GetURL() string
	GetWidth() *int64
	GetHeight() *int64
}

var (
	_ BaseMedia = (*Media)(nil)
	_ BaseMedia = (*EmbedIFrame)(nil)
)

// NPF media object: https://www.tumblr.com/docs/npf#media-objects
type Media struct {
	URL    string  `json:"url"`
	Type   *string `json:"type,omitempty"`
	Width  *int64  `json:"width,omitempty"`
	Height *int64  `json:"height,omitempty"`

	Cropped                   *bool `json:"cropped,omitempty"`
	HasOriginalDimensions     *bool `json:"has_original_dimensions,omitempty"`
	OriginalDimensionsMissing *bool `json:"original_dimensions_missing,omitempty"`
}

func (m *Media) GetURL() string    { return m.URL }
func (m *Media) GetWidth() *int64  { return m.Width }
func (m *Media) GetHeight() *int64 { return m.Height }

type EmbedIFrame struct {
	URL    string `json:"url"`
	Width  *int64 `json:"width,omitempty"`
	Height *int64 `json:"height,omitempty"`
}

func (e *EmbedIFrame) GetURL() string    { return e.URL }
func (e *EmbedIFrame) GetWidth() *int64  { return e.Width }
func (e *EmbedIFrame) GetHeight() *int64 { return e.Height }
