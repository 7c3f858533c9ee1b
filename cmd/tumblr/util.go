package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/atpstorages/gotumblr/api/tumblr"
	"github.com/atpstorages/gotumblr/client"
	"github.com/atpstorages/gotumblr/util"

	"github.com/urfave/cli/v2"
)

func configLogger(cctx *cli.Context, writer io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cctx.String("log-level")) {
	case "error":
		level = slog.LevelError
	case "warn":
		level = slog.LevelWarn
	case "info":
		level = slog.LevelInfo
	case "debug":
		level = slog.LevelDebug
	default:
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// Unauthenticated client, for the public read endpoints.
func publicClient(cctx *cli.Context) *client.APIClient {
	logger := configLogger(cctx, os.Stderr)
	c := client.NewAPIClient(cctx.String("consumer-key"))
	c.Host = strings.TrimSuffix(cctx.String("api-host"), "/")
	c.Client = util.RobustHTTPClient(logger)
	c.Logger = logger
	return c
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func blogArg(cctx *cli.Context) (tumblr.BlogName, error) {
	name := cctx.Args().First()
	if name == "" {
		return "", fmt.Errorf("need to provide blog name as an argument")
	}
	return tumblr.BlogName(name), nil
}

var contentFlags = []cli.Flag{
	&cli.StringSliceFlag{
		Name:  "content",
		Usage: "only keep content blocks of these types (text, image, link, audio, video, paywall)",
	},
	&cli.BoolFlag{
		Name:  "strict",
		Usage: "with --content, drop posts having any other block type",
	},
}

func contentTypes(cctx *cli.Context) ([]tumblr.ContentType, error) {
	var out []tumblr.ContentType
	for _, s := range cctx.StringSlice("content") {
		for _, part := range strings.Split(s, ",") {
			ct, err := tumblr.ParseContentType(strings.TrimSpace(part))
			if err != nil {
				return nil, err
			}
			out = append(out, ct)
		}
	}
	return out, nil
}

func textFilter(cctx *cli.Context) (tumblr.TextFilter, error) {
	switch f := tumblr.TextFilter(cctx.String("text-filter")); f {
	case "", tumblr.TextFilterHTML, tumblr.TextFilterText, tumblr.TextFilterRaw:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported text filter: %s", f)
	}
}

var textFilterFlag = &cli.StringFlag{
	Name:  "text-filter",
	Usage: "format of legacy text fields: html, text, or raw",
}

// Reads the optional --before and --after time flags as unix seconds.
func timeCursors(cctx *cli.Context) (before, after int64, err error) {
	before, err = util.ParseUnixCursor(cctx.String("before"))
	if err != nil {
		return 0, 0, fmt.Errorf("--before: %w", err)
	}
	after, err = util.ParseUnixCursor(cctx.String("after"))
	if err != nil {
		return 0, 0, fmt.Errorf("--after: %w", err)
	}
	return before, after, nil
}
