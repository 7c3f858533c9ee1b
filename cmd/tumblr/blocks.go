package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/atpstorages/gotumblr/api/tumblr"

	"github.com/urfave/cli/v2"
)

var cmdBlocks = &cli.Command{
	Name:  "blocks",
	Usage: "sub-commands for managing a blog's blocks (auth required)",
	Flags: []cli.Flag{secretFlag},
	Subcommands: []*cli.Command{
		&cli.Command{
			Name:      "list",
			Usage:     "list blocked blogs",
			ArgsUsage: `<blog>`,
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name: "offset",
				},
				&cli.IntFlag{
					Name:  "limit",
					Value: 20,
				},
			},
			Action: runBlocksList,
		},
		&cli.Command{
			Name:      "add",
			Usage:     "block one or more blogs",
			ArgsUsage: `<blog> <blocked-blog>...`,
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "force",
					Usage: "with multiple blogs, remove existing follow relationships instead of failing",
				},
				&cli.Int64Flag{
					Name:  "post",
					Usage: "block the author of this post (eg, an anonymous ask) instead of named blogs",
				},
			},
			Action: runBlocksAdd,
		},
		&cli.Command{
			Name:      "remove",
			Usage:     "unblock a blog",
			ArgsUsage: `<blog> [<blocked-blog>]`,
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "anonymous",
					Usage: "remove all anonymous (IP) blocks",
				},
			},
			Action: runBlocksRemove,
		},
	},
}

func runBlocksList(cctx *cli.Context) error {
	ctx := context.Background()
	blog, err := blogArg(cctx)
	if err != nil {
		return err
	}
	c, err := loadAuthClient(cctx)
	if err == ErrNoAuthSession {
		return fmt.Errorf("auth required, but not logged in")
	} else if err != nil {
		return err
	}

	out, err := c.BlogBlocks(ctx, blog, cctx.Int("offset"), cctx.Int("limit"))
	if err != nil {
		return err
	}
	for _, b := range out.Blocked {
		fmt.Println(b.BlogIdentifier())
	}
	return nil
}

func runBlocksAdd(cctx *cli.Context) error {
	ctx := context.Background()
	blog, err := blogArg(cctx)
	if err != nil {
		return err
	}
	c, err := loadAuthClient(cctx)
	if err == ErrNoAuthSession {
		return fmt.Errorf("auth required, but not logged in")
	} else if err != nil {
		return err
	}

	if cctx.IsSet("post") {
		return c.AddBlogBlockByPost(ctx, blog, cctx.Int64("post"))
	}

	args := cctx.Args().Tail()
	switch len(args) {
	case 0:
		return fmt.Errorf("need to provide at least one blog to block")
	case 1:
		return c.AddBlogBlock(ctx, blog, tumblr.BlogName(args[0]))
	}
	blocked := make([]tumblr.Identifier, len(args))
	for i, a := range args {
		blocked[i] = tumblr.BlogName(a)
	}
	return c.AddBlogBlocks(ctx, blog, cctx.Bool("force"), blocked...)
}

func runBlocksRemove(cctx *cli.Context) error {
	ctx := context.Background()
	blog, err := blogArg(cctx)
	if err != nil {
		return err
	}
	c, err := loadAuthClient(cctx)
	if err == ErrNoAuthSession {
		return fmt.Errorf("auth required, but not logged in")
	} else if err != nil {
		return err
	}

	if cctx.Bool("anonymous") {
		return c.RemoveAnonymousBlogBlocks(ctx, blog)
	}
	blocked := cctx.Args().Get(1)
	if blocked == "" {
		return fmt.Errorf("need to provide blog to unblock (or --anonymous)")
	}
	return c.RemoveBlogBlock(ctx, blog, tumblr.BlogName(blocked))
}

func parsePostID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid post id %q: %w", s, err)
	}
	return id, nil
}
