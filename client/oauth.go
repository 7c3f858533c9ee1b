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
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/carlmjohnson/versioninfo"
	"github.com/google/go-querystring/query"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

const (
	// scope required for the server to issue refresh tokens
	ScopeOfflineAccess = "offline_access"

	// subtracted from the server-reported lifetime, so a token is refreshed slightly before it really expires
	expiryMargin = 5 * time.Second
)

type RefreshCallback = func(ctx context.Context, data OAuthSession)

// Data about an OAuth2 session which can be persisted and then used to resume the session later.
type OAuthSession struct {
	AccessToken  string    `json:"access_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	TokenType    string    `json:"token_type"`
	Scope        []string  `json:"scope"`
	RefreshToken string    `json:"refresh_token,omitempty"`
}

// Creates a deep copy of the session data.
func (s *OAuthSession) Clone() OAuthSession {
	return OAuthSession{
		AccessToken:  s.AccessToken,
		ExpiresAt:    s.ExpiresAt,
		TokenType:    s.TokenType,
		Scope:        slices.Clone(s.Scope),
		RefreshToken: s.RefreshToken,
	}
}

func (s *OAuthSession) HasScope(scope string) bool {
	return slices.Contains(s.Scope, scope)
}

func (s *OAuthSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Token endpoint response body, for both code exchange and refresh.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

func (tr *tokenResponse) session(issued time.Time) OAuthSession {
	return OAuthSession{
		AccessToken:  tr.AccessToken,
		ExpiresAt:    issued.Add(time.Duration(tr.ExpiresIn)*time.Second - expiryMargin),
		TokenType:    tr.TokenType,
		Scope:        strings.Fields(tr.Scope),
		RefreshToken: tr.RefreshToken,
	}
}

type codeGrantRequest struct {
	GrantType    string `url:"grant_type"`
	Code         string `url:"code"`
	ClientID     string `url:"client_id"`
	ClientSecret string `url:"client_secret"`
	RedirectURI  string `url:"redirect_uri,omitempty"`
}

type refreshTokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RefreshToken string `json:"refresh_token"`
	GrantType    string `json:"grant_type"`
}

// Implementation of [AuthMethod] for OAuth2 authorization-code sessions. Before every request the access token expiry is checked, and an expired token is refreshed (if the session has the "offline_access" scope) before the request is sent.
//
// It is safe to use this auth method concurrently from multiple goroutines. Concurrent requests which observe the same expired token share a single refresh.
type OAuthAuth struct {
	ConsumerKey    string
	ConsumerSecret string

	// Full URL of the token endpoint.
	TokenURL string

	// Optional client for token requests made outside of [OAuthAuth.DoWithAuth] (eg, from [OAuthAuth.Token]). Defaults to [http.DefaultClient].
	Client *http.Client

	// Optional callback function which gets called with updated session data whenever a successful token refresh happens.
	//
	// This is never called concurrently for a single OAuthAuth. The callback should either return quickly, or spawn a goroutine.
	RefreshCallback RefreshCallback

	Logger *slog.Logger

	// protects session and invalid
	lk      sync.RWMutex
	session *OAuthSession
	// set once a refresh has failed permanently
	invalid error

	refreshGroup singleflight.Group

	// for tests
	now func() time.Time
}

var _ oauth2.TokenSource = (*OAuthAuth)(nil)

func (a *OAuthAuth) clock() time.Time {
	if a.now != nil {
		return a.now()
	}
	return time.Now()
}

func (a *OAuthAuth) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

// Returns a snapshot of the current session, or false if there is none.
func (a *OAuthAuth) Session() (OAuthSession, bool) {
	a.lk.RLock()
	defer a.lk.RUnlock()
	if a.session == nil {
		return OAuthSession{}, false
	}
	return a.session.Clone(), true
}

func (a *OAuthAuth) DoWithAuth(c *http.Client, req *http.Request, endpoint string) (*http.Response, error) {
	token, err := a.accessToken(req.Context(), c)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.Do(req)
}

// Implements [oauth2.TokenSource], running the same expiry check and refresh as regular requests.
func (a *OAuthAuth) Token() (*oauth2.Token, error) {
	if _, err := a.accessToken(context.Background(), a.tokenClient(nil)); err != nil {
		return nil, err
	}
	sess, ok := a.Session()
	if !ok {
		return nil, fmt.Errorf("no active oauth session")
	}
	tok := &oauth2.Token{
		AccessToken:  sess.AccessToken,
		TokenType:    sess.TokenType,
		RefreshToken: sess.RefreshToken,
		Expiry:       sess.ExpiresAt,
	}
	return tok.WithExtra(map[string]any{"scope": strings.Join(sess.Scope, " ")}), nil
}

func (a *OAuthAuth) tokenClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	if a.Client != nil {
		return a.Client
	}
	return http.DefaultClient
}

// Pre-flight check. Returns the access token to use, or an empty string if there is no session.
func (a *OAuthAuth) accessToken(ctx context.Context, c *http.Client) (string, error) {
	a.lk.RLock()
	sess, invalid := a.session, a.invalid
	a.lk.RUnlock()

	if invalid != nil {
		return "", invalid
	}
	if sess == nil {
		return "", nil
	}
	if !sess.Expired(a.clock()) {
		return sess.AccessToken, nil
	}
	return a.refreshShared(ctx, c, sess.AccessToken)
}

// Forces a token refresh, regardless of expiry.
func (a *OAuthAuth) Refresh(ctx context.Context, c *http.Client) error {
	a.lk.RLock()
	sess, invalid := a.session, a.invalid
	a.lk.RUnlock()
	if invalid != nil {
		return invalid
	}
	if sess == nil {
		return fmt.Errorf("no active oauth session")
	}
	_, err := a.refreshShared(ctx, a.tokenClient(c), sess.AccessToken)
	return err
}

// Runs at most one refresh at a time. The shared refresh is not tied to any single caller's cancellation, but each caller stops waiting when its own context is done.
func (a *OAuthAuth) refreshShared(ctx context.Context, c *http.Client, priorAccessToken string) (string, error) {
	ch := a.refreshGroup.DoChan("refresh", func() (any, error) {
		return a.refresh(context.WithoutCancel(ctx), c, priorAccessToken)
	})
	select {
	case <-ctx.Done():
		return "", &OAuthRefreshError{Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (a *OAuthAuth) refresh(ctx context.Context, c *http.Client, priorAccessToken string) (string, error) {
	a.lk.RLock()
	sess, invalid := a.session, a.invalid
	a.lk.RUnlock()

	if invalid != nil {
		return "", invalid
	}
	// basic concurrency check: a refresh already completed since the caller looked
	if sess.AccessToken != priorAccessToken {
		return sess.AccessToken, nil
	}

	if !sess.HasScope(ScopeOfflineAccess) {
		oauthRefreshes.WithLabelValues("no_offline_access").Inc()
		return "", a.invalidate(&OAuthRefreshError{Err: ErrOfflineAccessRequired})
	}

	body := refreshTokenRequest{
		ClientID:     a.ConsumerKey,
		ClientSecret: a.ConsumerSecret,
		RefreshToken: sess.RefreshToken,
		GrantType:    "refresh_token",
	}
	bodyJSON, err := json.Marshal(&body)
	if err != nil {
		return "", err
	}

	a.logger().Info("refreshing oauth access token", "expiredAt", sess.ExpiresAt)
	issued := a.clock()
	tr, status, respBody, err := postTokenRequest(ctx, c, a.TokenURL, "application/json", bodyJSON)
	if err != nil {
		oauthRefreshes.WithLabelValues("error").Inc()
		a.logger().Warn("token refresh request failed", "err", err)
		// transport failures leave the session as-is, so a later call may retry
		return "", &OAuthRefreshError{Err: err}
	}
	if status != http.StatusOK {
		oauthRefreshes.WithLabelValues("rejected").Inc()
		a.logger().Warn("token refresh request failed", "statusCode", status)
		return "", a.invalidate(&OAuthRefreshError{
			StatusCode:  status,
			Description: http.StatusText(status),
			Body:        string(respBody),
		})
	}
	if tr == nil || tr.AccessToken == "" {
		oauthRefreshes.WithLabelValues("rejected").Inc()
		return "", a.invalidate(&OAuthRefreshError{Err: fmt.Errorf("token response missing access_token")})
	}

	next := tr.session(issued)
	if next.RefreshToken == "" {
		next.RefreshToken = sess.RefreshToken
	}
	if len(next.Scope) == 0 {
		next.Scope = slices.Clone(sess.Scope)
	}

	a.lk.Lock()
	a.session = &next
	a.lk.Unlock()
	oauthRefreshes.WithLabelValues("ok").Inc()

	if a.RefreshCallback != nil {
		a.RefreshCallback(ctx, next.Clone())
	}
	return next.AccessToken, nil
}

// Moves the session to the terminal invalid state. Returns err for convenience.
func (a *OAuthAuth) invalidate(err *OAuthRefreshError) error {
	a.lk.Lock()
	defer a.lk.Unlock()
	a.invalid = &OAuthRefreshError{
		StatusCode:  err.StatusCode,
		Description: err.Description,
		Body:        err.Body,
		Err:         errors.Join(ErrSessionInvalid, err.Err),
	}
	return err
}

// Exchanges an authorization code for a new session, via a form-encoded POST to the token endpoint.
func exchangeCode(ctx context.Context, c *http.Client, tokenURL string, body codeGrantRequest, logger *slog.Logger) (*OAuthSession, error) {
	vals, err := query.Values(body)
	if err != nil {
		return nil, &OAuthInitError{Err: err}
	}

	issued := time.Now()
	tr, status, respBody, err := postTokenRequest(ctx, c, tokenURL, "application/x-www-form-urlencoded", []byte(vals.Encode()))
	if err != nil {
		logger.Warn("initial token request failed", "tokenURL", tokenURL, "err", err)
		return nil, &OAuthInitError{Err: err}
	}
	if status != http.StatusOK {
		logger.Warn("initial token request failed", "tokenURL", tokenURL, "statusCode", status)
		return nil, &OAuthInitError{
			StatusCode:  status,
			Description: http.StatusText(status),
			Body:        string(respBody),
		}
	}
	if tr == nil || tr.AccessToken == "" {
		return nil, &OAuthInitError{Err: fmt.Errorf("token response missing access_token")}
	}
	sess := tr.session(issued)
	return &sess, nil
}

// POSTs to the token endpoint. Returns the decoded token response only for HTTP 200; otherwise the status and (truncated) body.
func postTokenRequest(ctx context.Context, c *http.Client, tokenURL, contentType string, body []byte) (*tokenResponse, int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, bytes.NewReader(body))
	if err != nil {
		return nil, 0, nil, err
	}
	req.Header.Set("User-Agent", "gotumblr/"+versioninfo.Short())
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.Do(req)
	if err != nil {
		return nil, 0, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, resp.StatusCode, respBody, nil
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, resp.StatusCode, nil, fmt.Errorf("token response failed to decode: %w", err)
	}
	return &tr, resp.StatusCode, nil, nil
}
