package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/atpstorages/gotumblr/api/tumblr"
	"github.com/atpstorages/gotumblr/util"

	"github.com/carlmjohnson/versioninfo"
)

const DefaultHost = "https://api.tumblr.com"

// cap on how much of an error response body is kept on [APIError]
const maxErrorBody = 64 * 1024

// Interface for auth implementations which can be used with [APIClient].
type AuthMethod interface {
	// Endpoint parameter is the API path below the version prefix, for logging and metrics
	DoWithAuth(c *http.Client, req *http.Request, endpoint string) (*http.Response, error)
}

// General purpose client for the Tumblr v2 API.
//
// Every request carries the "npf=true" and "api_key" query parameters, and the client-level headers.
type APIClient struct {
	// Inner HTTP client. May be customized after the overall [APIClient] struct is created; for example to set a default request timeout. It should not follow redirects.
	Client *http.Client

	// Host URL prefix: scheme, hostname, and port. This field is required.
	Host string

	// OAuth consumer key, sent as the "api_key" parameter. May be empty for public endpoints.
	ConsumerKey string

	// Optional auth client "middleware".
	Auth AuthMethod

	// Optional HTTP headers which will be included in all requests. Only a single value per key is included; request-level headers will override any client-level defaults.
	Headers http.Header

	// Optional logger; defaults to [slog.Default].
	Logger *slog.Logger
}

// Creates an APIClient for api.tumblr.com, identified by the given consumer key. This is appropriate for public endpoints, or to use as a base client to add authentication.
//
// Uses [util.RobustHTTPClient], which retries 429/500/503 responses and does not follow redirects.
func NewAPIClient(consumerKey string) *APIClient {
	return &APIClient{
		Client:      util.RobustHTTPClient(nil),
		Host:        DefaultHost,
		ConsumerKey: consumerKey,
		Headers: map[string][]string{
			"User-Agent":   []string{"gotumblr/" + versioninfo.Short()},
			"Content-Type": []string{"application/json"},
		},
	}
}

func (c *APIClient) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// High-level helper for JSON GET calls. Params are parsed with [ParseParams].
//
// Non-successful responses are returned as [APIError]; on success the envelope "response" object is decoded in to out (if non-nil).
func (c *APIClient) Get(ctx context.Context, endpoint string, params any, out any) error {
	req := NewAPIRequest(http.MethodGet, endpoint, nil)
	req.Headers.Set("Accept", "application/json")

	qp, err := ParseParams(params)
	if err != nil {
		return err
	}
	req.QueryParams = qp

	return c.DoJSON(ctx, req, out)
}

// High-level helper for JSON-to-JSON POST calls, with no query params. A nil body sends an empty request body.
func (c *APIClient) Post(ctx context.Context, endpoint string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		bodyJSON, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(bodyJSON)
	}

	req := NewAPIRequest(http.MethodPost, endpoint, reader)
	req.Headers.Set("Accept", "application/json")
	req.Headers.Set("Content-Type", "application/json")

	return c.DoJSON(ctx, req, out)
}

// High-level helper for DELETE calls, with parameters in the query string.
func (c *APIClient) Delete(ctx context.Context, endpoint string, params any, out any) error {
	req := NewAPIRequest(http.MethodDelete, endpoint, nil)
	req.Headers.Set("Accept", "application/json")

	qp, err := ParseParams(params)
	if err != nil {
		return err
	}
	req.QueryParams = qp

	return c.DoJSON(ctx, req, out)
}

// Sends the request and decodes the envelope "response" object in to out (if non-nil).
func (c *APIClient) DoJSON(ctx context.Context, req *APIRequest, out any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !(resp.StatusCode >= 200 && resp.StatusCode < 300) {
		return apiErrorFromResponse(resp)
	}

	var env tumblr.Response[json.RawMessage]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &DecodeError{Endpoint: req.Endpoint, Err: fmt.Errorf("expected JSON envelope: %w", err)}
	}
	if out == nil || len(env.Response) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Response, out); err != nil {
		return &DecodeError{Endpoint: req.Endpoint, Err: err}
	}
	return nil
}

// Full-featured method for Tumblr API requests. Adds the "npf" and "api_key" query parameters and client headers, and runs the request through the auth method, if any.
//
// The caller is responsible for closing the response body. Non-2xx responses are returned without error; use [APIClient.DoJSON] for parsed errors.
func (c *APIClient) Do(ctx context.Context, req *APIRequest) (*http.Response, error) {

	if c.Client == nil {
		c.Client = http.DefaultClient
	}

	if req.QueryParams == nil {
		req.QueryParams = make(map[string][]string)
	}
	req.QueryParams.Set("npf", "true")
	req.QueryParams.Set("api_key", c.ConsumerKey)

	httpReq, err := req.HTTPRequest(ctx, c.Host, c.Headers)
	if err != nil {
		return nil, err
	}

	route := routeName(req.Endpoint)
	start := time.Now()

	var resp *http.Response
	if c.Auth != nil {
		resp, err = c.Auth.DoWithAuth(c.Client, httpReq, req.Endpoint)
	} else {
		resp, err = c.Client.Do(httpReq)
	}

	status := "error"
	if resp != nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	apiRequests.WithLabelValues(req.Method, route, status).Inc()
	apiRequestDuration.WithLabelValues(req.Method, route, status).Observe(time.Since(start).Seconds())

	if err != nil {
		var refreshErr *OAuthRefreshError
		if errors.As(err, &refreshErr) {
			return nil, err
		}
		c.logger().Debug("tumblr request failed", "method", req.Method, "route", route, "err", err)
		return nil, &TransportError{Endpoint: req.Endpoint, Err: err}
	}
	c.logger().Debug("tumblr request", "method", req.Method, "route", route, "statusCode", resp.StatusCode, "duration", time.Since(start))
	return resp, nil
}

// Reads a non-2xx response in to an [APIError]. Consumes the body, but does not close it.
func apiErrorFromResponse(resp *http.Response) *APIError {
	ae := &APIError{
		StatusCode: resp.StatusCode,
		Ratelimit:  ratelimitFromHeaders(resp.Header, time.Now()),
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	ae.Body = body

	var env tumblr.Response[json.RawMessage]
	if err := json.Unmarshal(body, &env); err == nil {
		ae.Message = env.Meta.Msg
		ae.Errors = env.Errors
	}
	return ae
}
