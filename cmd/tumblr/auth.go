package main

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/atpstorages/gotumblr/client"
	"github.com/atpstorages/gotumblr/util"

	"github.com/adrg/xdg"
	"github.com/urfave/cli/v2"
)

var ErrNoAuthSession = errors.New("no auth session found")

const sessionPath = "gotumblr/auth-session.json"

// Holds the state value of a login in progress, between the consent URL and the --code run.
const loginStatePath = "gotumblr/login-state"

// Persisted login state. The consumer secret is not stored; it is read from the environment on every run.
type AuthSession struct {
	ConsumerKey string              `json:"consumer_key"`
	Host        string              `json:"host"`
	RedirectURI string              `json:"redirect_uri,omitempty"`
	OAuth       client.OAuthSession `json:"oauth"`
}

var secretFlag = &cli.StringFlag{
	Name:    "consumer-secret",
	Usage:   "OAuth consumer secret of the registered application",
	EnvVars: []string{"TUMBLR_CONSUMER_SECRET"},
}

var cmdLogin = &cli.Command{
	Name:        "login",
	Usage:       "authorize this tool with a Tumblr account",
	Description: "Without --code, prints the URL to visit for consent. Then run again with the code and state from the redirect.",
	Flags: []cli.Flag{
		secretFlag,
		&cli.StringFlag{
			Name:    "redirect-uri",
			Usage:   "redirect URI registered for the application",
			EnvVars: []string{"TUMBLR_REDIRECT_URI"},
		},
		&cli.StringFlag{
			Name:  "code",
			Usage: "authorization code from the redirect after consent",
		},
		&cli.StringFlag{
			Name:  "state",
			Usage: "state value from the redirect after consent; must match the one issued with the URL",
		},
		&cli.StringSliceFlag{
			Name:  "scope",
			Usage: "scopes to request (default: basic, write, offline_access)",
		},
	},
	Action: runLogin,
}

var cmdLogout = &cli.Command{
	Name:   "logout",
	Usage:  "delete any current session",
	Action: runLogout,
}

var cmdWhoami = &cli.Command{
	Name:   "whoami",
	Usage:  "show the logged-in account and its blogs",
	Flags:  []cli.Flag{secretFlag},
	Action: runWhoami,
}

func oauthConfig(cctx *cli.Context, logger *slog.Logger) client.OAuthConfig {
	return client.OAuthConfig{
		ConsumerKey:    cctx.String("consumer-key"),
		ConsumerSecret: cctx.String("consumer-secret"),
		RedirectURI:    cctx.String("redirect-uri"),
		Host:           strings.TrimSuffix(cctx.String("api-host"), "/"),
		Client:         util.RobustHTTPClient(logger),
		Logger:         logger,
	}
}

func runLogin(cctx *cli.Context) error {
	ctx := context.Background()
	logger := configLogger(cctx, os.Stderr)

	if cctx.String("consumer-key") == "" {
		return fmt.Errorf("consumer key is required (--consumer-key or TUMBLR_CONSUMER_KEY)")
	}

	code := cctx.String("code")
	if code == "" {
		buf := make([]byte, 16)
		if _, err := rand.Read(buf); err != nil {
			return err
		}
		state := hex.EncodeToString(buf)
		if err := persistLoginState(state); err != nil {
			return err
		}
		u := client.AuthorizeURL(cctx.String("consumer-key"), cctx.String("redirect-uri"), state, cctx.StringSlice("scope")...)
		fmt.Println("visit this URL to authorize, then re-run with --code and --state:")
		fmt.Println(u)
		return nil
	}

	if err := checkLoginState(cctx.String("state")); err != nil {
		return err
	}

	cfg := oauthConfig(cctx, logger)
	cfg.Code = code
	c, err := client.NewOAuthClient(ctx, cfg, nil)
	if err != nil {
		return err
	}
	sess, _ := c.OAuth.Session()
	if !sess.HasScope(client.ScopeOfflineAccess) {
		fmt.Fprintln(os.Stderr, "warning: session lacks offline_access scope; it can not be refreshed once expired")
	}

	if err := persistAuthSession(&AuthSession{
		ConsumerKey: cfg.ConsumerKey,
		Host:        cfg.Host,
		RedirectURI: cfg.RedirectURI,
		OAuth:       sess,
	}); err != nil {
		return err
	}
	fmt.Printf("logged in (token expires %s)\n", sess.ExpiresAt.Local().Format("2006-01-02 15:04:05"))
	return nil
}

func runLogout(cctx *cli.Context) error {
	return wipeAuthSession()
}

func runWhoami(cctx *cli.Context) error {
	ctx := context.Background()

	c, err := loadAuthClient(cctx)
	if err == ErrNoAuthSession {
		return fmt.Errorf("auth required, but not logged in")
	} else if err != nil {
		return err
	}

	info, err := c.UserInfo(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("name: %s\n", info.Name)
	fmt.Printf("likes: %d\n", info.Likes)
	fmt.Printf("following: %d\n", info.Following)
	for _, b := range info.Blogs {
		fmt.Printf("blog: %s\t%s\n", b.Name, b.URL)
	}
	return nil
}

func persistAuthSession(sess *AuthSession) error {

	fPath, err := xdg.StateFile(sessionPath)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(fPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	authBytes, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	_, err = f.Write(authBytes)
	return err
}

func persistLoginState(state string) error {
	fPath, err := xdg.StateFile(loginStatePath)
	if err != nil {
		return err
	}
	return os.WriteFile(fPath, []byte(state), 0600)
}

// Compares the state returned by the redirect against the one issued with the consent URL. The issued state is single use.
func checkLoginState(got string) error {
	if got == "" {
		return fmt.Errorf("--state is required with --code")
	}
	fPath, err := xdg.SearchStateFile(loginStatePath)
	if err != nil {
		return fmt.Errorf("no login in progress (run login without --code first)")
	}
	want, err := os.ReadFile(fPath)
	if err != nil {
		return err
	}
	if err := os.Remove(fPath); err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(got), bytes.TrimSpace(want)) != 1 {
		return fmt.Errorf("login state mismatch: the redirect does not belong to the login started here")
	}
	return nil
}

// Resumes the persisted session. Refreshed tokens are written back to the state file.
func loadAuthClient(cctx *cli.Context) (*client.OAuthClient, error) {
	logger := configLogger(cctx, os.Stderr)

	fPath, err := xdg.SearchStateFile(sessionPath)
	if err != nil {
		return nil, ErrNoAuthSession
	}

	fBytes, err := os.ReadFile(fPath)
	if err != nil {
		return nil, err
	}

	var sess AuthSession
	if err := json.Unmarshal(fBytes, &sess); err != nil {
		return nil, err
	}

	cfg := oauthConfig(cctx, logger)
	cfg.ConsumerKey = sess.ConsumerKey
	cfg.Host = sess.Host
	cfg.RedirectURI = sess.RedirectURI

	cb := func(ctx context.Context, data client.OAuthSession) {
		next := sess
		next.OAuth = data
		if err := persistAuthSession(&next); err != nil {
			logger.Error("failed to persist refreshed session", "err", err)
		}
	}
	return client.ResumeOAuthSession(cfg, sess.OAuth, cb), nil
}

func wipeAuthSession() error {

	fPath, err := xdg.SearchStateFile(sessionPath)
	if err != nil {
		fmt.Println("no auth session found (already logged out)")
		return nil
	}
	return os.Remove(fPath)
}
