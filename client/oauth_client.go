package client

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

const (
	AuthorizeEndpoint = "https://www.tumblr.com/oauth2/authorize"

	tokenPath = "/v2/oauth2/token"
)

var DefaultScopes = []string{"basic", "write", ScopeOfflineAccess}

type OAuthConfig struct {
	ConsumerKey    string
	ConsumerSecret string

	// Authorization code from the redirect after user consent. Only used by [NewOAuthClient].
	Code string

	// Must match the redirect URI used for the authorization request, if one was sent.
	RedirectURI string

	// Optional API host; defaults to [DefaultHost]. The token endpoint lives on the same host.
	Host string

	// Optional HTTP client for both API and token requests; defaults to [util.RobustHTTPClient].
	Client *http.Client

	Logger *slog.Logger
}

// [APIClient] with an [OAuthAuth] session, plus the endpoints which require authorization.
type OAuthClient struct {
	*APIClient

	OAuth *OAuthAuth
}

func (cfg *OAuthConfig) apiClient() *APIClient {
	c := NewAPIClient(cfg.ConsumerKey)
	if cfg.Host != "" {
		c.Host = strings.TrimSuffix(cfg.Host, "/")
	}
	if cfg.Client != nil {
		c.Client = cfg.Client
	}
	c.Logger = cfg.Logger
	return c
}

func (cfg *OAuthConfig) auth(c *APIClient) *OAuthAuth {
	return &OAuthAuth{
		ConsumerKey:    cfg.ConsumerKey,
		ConsumerSecret: cfg.ConsumerSecret,
		TokenURL:       c.Host + tokenPath,
		Client:         c.Client,
		Logger:         cfg.Logger,
	}
}

// Exchanges the authorization code in cfg for an access token, and returns a client using the resulting session.
//
// Any failure (transport error or non-200 response) is returned as an [OAuthInitError], and no client is created.
func NewOAuthClient(ctx context.Context, cfg OAuthConfig, cb RefreshCallback) (*OAuthClient, error) {
	c := cfg.apiClient()
	auth := cfg.auth(c)
	auth.RefreshCallback = cb

	sess, err := exchangeCode(ctx, c.Client, auth.TokenURL, codeGrantRequest{
		GrantType:    "authorization_code",
		Code:         cfg.Code,
		ClientID:     cfg.ConsumerKey,
		ClientSecret: cfg.ConsumerSecret,
		RedirectURI:  cfg.RedirectURI,
	}, auth.logger())
	if err != nil {
		return nil, err
	}

	auth.session = sess
	c.Auth = auth
	return &OAuthClient{APIClient: c, OAuth: auth}, nil
}

// Creates an [OAuthClient] based on existing session data. cfg.Code is ignored.
//
// `cb` is an optional callback which will be called with updated session data after any token refresh.
func ResumeOAuthSession(cfg OAuthConfig, data OAuthSession, cb RefreshCallback) *OAuthClient {
	c := cfg.apiClient()
	auth := cfg.auth(c)
	auth.RefreshCallback = cb
	sess := data.Clone()
	auth.session = &sess
	c.Auth = auth
	return &OAuthClient{APIClient: c, OAuth: auth}
}

// Builds the URL to send a user to for consent. The user is redirected back to redirectURI with "code" and "state" query parameters. With no scopes, [DefaultScopes] are requested.
func AuthorizeURL(consumerKey, redirectURI, state string, scopes ...string) string {
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}
	conf := oauth2.Config{
		ClientID:    consumerKey,
		RedirectURL: redirectURI,
		Scopes:      scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  AuthorizeEndpoint,
			TokenURL: DefaultHost + tokenPath,
		},
	}
	return conf.AuthCodeURL(state)
}
