package main

import (
	"context"
	"fmt"

	"github.com/atpstorages/gotumblr/client"

	"github.com/urfave/cli/v2"
)

var cmdTag = &cli.Command{
	Name:      "tag",
	Usage:     "search public posts by tag",
	ArgsUsage: `<tag>`,
	Flags: append([]cli.Flag{
		&cli.IntFlag{
			Name:  "limit",
			Value: 20,
		},
		&cli.StringFlag{
			Name:  "before",
			Usage: "only posts before this time (unix seconds, RFC 3339, or date)",
		},
		&cli.StringFlag{
			Name:  "after",
			Usage: "drop posts at or before this time (unix seconds, RFC 3339, or date) from the fetched page",
		},
	}, contentFlags...),
	Action: runTag,
}

func runTag(cctx *cli.Context) error {
	ctx := context.Background()
	tag := cctx.Args().First()
	if tag == "" {
		return fmt.Errorf("need to provide tag as an argument")
	}
	types, err := contentTypes(cctx)
	if err != nil {
		return err
	}
	before, after, err := timeCursors(cctx)
	if err != nil {
		return err
	}

	posts, err := publicClient(cctx).ReadTag(ctx, tag, &client.ReadTagOptions{
		Before:       before,
		After:        after,
		Limit:        cctx.Int("limit"),
		ContentTypes: types,
		Strict:       cctx.Bool("strict"),
	})
	if err != nil {
		return err
	}
	printPostLines(posts)
	return nil
}
