package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// API version path prefix.
const apiVersion = "v2"

type APIRequest struct {
	// HTTP method as a string (eg "GET") (required)
	Method string

	// API endpoint path below the version prefix, eg "blog/staff/posts" (required)
	Endpoint string

	// Optional request body (may be nil). If this is provided, then 'Content-Type' header should be specified
	Body io.Reader

	// Optional function to return new reader for request body; used for retries. Strongly recommended if Body is defined. Body still needs to be defined, even if this function is provided.
	GetBody func() (io.ReadCloser, error)

	// Optional query parameters (field may be nil). These will be encoded as provided.
	QueryParams url.Values

	// Optional HTTP headers (field may be nil). Only the first value will be included for each header key ("Set" behavior).
	Headers http.Header
}

// Initializes a new request struct. Initializes Headers and QueryParams so they can be manipulated immediately.
//
// If body is provided (it can be nil), will try to turn it in to the most retry-able form (and wrap as [io.ReadCloser]).
func NewAPIRequest(method string, endpoint string, body io.Reader) *APIRequest {
	req := APIRequest{
		Method:      method,
		Endpoint:    endpoint,
		Headers:     map[string][]string{},
		QueryParams: map[string][]string{},
	}

	if body != nil {
		// NOTE: http.NewRequestWithContext already handles GetBody() as well as ContentLength for specific types like bytes.Buffer and strings.Reader. We just want to add io.Seeker here, for things like files-on-disk.
		switch v := body.(type) {
		case io.Seeker:
			req.Body = io.NopCloser(body)
			req.GetBody = func() (io.ReadCloser, error) {
				v.Seek(0, 0)
				return io.NopCloser(body), nil
			}
		default:
			req.Body = body
		}
	}
	return &req
}

// Creates an [http.Request] for this API request.
//
// `host` parameter should be a URL prefix: schema, hostname, port (required)
//
// `clientHeaders`, if provided, is treated as client-level defaults. Only a single value is allowed per key ("Set" behavior), and will be clobbered by any request-level header values. (optional; may be nil)
func (r *APIRequest) HTTPRequest(ctx context.Context, host string, clientHeaders http.Header) (*http.Request, error) {
	u, err := url.Parse(host)
	if err != nil {
		return nil, err
	}
	if u.Host == "" {
		return nil, fmt.Errorf("empty hostname in host URL")
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("empty scheme in host URL")
	}
	if r.Endpoint == "" {
		return nil, fmt.Errorf("empty request endpoint")
	}
	u.Path = "/" + apiVersion + "/" + strings.TrimPrefix(r.Endpoint, "/")
	u.RawQuery = ""
	if len(r.QueryParams) > 0 {
		u.RawQuery = r.QueryParams.Encode()
	}
	httpReq, err := http.NewRequestWithContext(ctx, r.Method, u.String(), r.Body)
	if err != nil {
		return nil, err
	}

	if r.GetBody != nil {
		httpReq.GetBody = r.GetBody
	}

	// first set default headers...
	for k := range clientHeaders {
		httpReq.Header.Set(k, clientHeaders.Get(k))
	}

	// ... then request-specific take priority (overwrite)
	for k := range r.Headers {
		httpReq.Header.Set(k, r.Headers.Get(k))
	}

	return httpReq, nil
}

// Builds an endpoint path for a blog-scoped method, eg blogEndpoint("staff", "posts", "queue").
func blogEndpoint(id string, segments ...string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("empty blog identifier")
	}
	if strings.ContainsAny(id, "/?#") {
		return "", fmt.Errorf("invalid blog identifier: %q", id)
	}
	return strings.Join(append([]string{"blog", id}, segments...), "/"), nil
}

// Low-cardinality name for an endpoint path, with the blog identifier and numeric segments collapsed. Used as a metrics label.
func routeName(endpoint string) string {
	parts := strings.Split(strings.Trim(endpoint, "/"), "/")
	for i, p := range parts {
		if i == 1 && parts[0] == "blog" {
			parts[i] = "{blog}"
			continue
		}
		if p != "" && strings.Trim(p, "0123456789") == "" {
			parts[i] = "{n}"
		}
	}
	return strings.Join(parts, "/")
}
