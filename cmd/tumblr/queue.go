package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var cmdQueue = &cli.Command{
	Name:  "queue",
	Usage: "sub-commands for a blog's queued, draft, and submitted posts (auth required)",
	Flags: []cli.Flag{secretFlag},
	Subcommands: []*cli.Command{
		&cli.Command{
			Name:      "list",
			Usage:     "list queued posts",
			ArgsUsage: `<blog>`,
			Flags:     append([]cli.Flag{textFilterFlag}, pageFlags...),
			Action:    runQueueList,
		},
		&cli.Command{
			Name:      "reorder",
			Usage:     "move a queued post after another (or to the top, with no second id)",
			ArgsUsage: `<blog> <post-id> [<insert-after-id>]`,
			Action:    runQueueReorder,
		},
		&cli.Command{
			Name:      "shuffle",
			Usage:     "randomize the order of the queue",
			ArgsUsage: `<blog>`,
			Action:    runQueueShuffle,
		},
		&cli.Command{
			Name:      "drafts",
			Usage:     "list draft posts",
			ArgsUsage: `<blog>`,
			Flags: []cli.Flag{
				textFilterFlag,
				&cli.Int64Flag{
					Name:  "before-id",
					Usage: "only drafts with a lower post id",
				},
			},
			Action: runQueueDrafts,
		},
		&cli.Command{
			Name:      "submissions",
			Usage:     "list posts submitted to the blog",
			ArgsUsage: `<blog>`,
			Flags: []cli.Flag{
				textFilterFlag,
				&cli.IntFlag{
					Name: "offset",
				},
			},
			Action: runQueueSubmissions,
		},
	},
}

func runQueueList(cctx *cli.Context) error {
	ctx := context.Background()
	blog, err := blogArg(cctx)
	if err != nil {
		return err
	}
	tf, err := textFilter(cctx)
	if err != nil {
		return err
	}
	c, err := loadAuthClient(cctx)
	if err == ErrNoAuthSession {
		return fmt.Errorf("auth required, but not logged in")
	} else if err != nil {
		return err
	}

	out, err := c.BlogQueuedPosts(ctx, blog, cctx.Int("offset"), cctx.Int("limit"), tf)
	if err != nil {
		return err
	}
	printPostLines(out.Posts)
	return nil
}

func runQueueReorder(cctx *cli.Context) error {
	ctx := context.Background()
	blog, err := blogArg(cctx)
	if err != nil {
		return err
	}
	postID, err := parsePostID(cctx.Args().Get(1))
	if err != nil {
		return err
	}
	var after int64
	if s := cctx.Args().Get(2); s != "" {
		after, err = parsePostID(s)
		if err != nil {
			return err
		}
	}
	c, err := loadAuthClient(cctx)
	if err == ErrNoAuthSession {
		return fmt.Errorf("auth required, but not logged in")
	} else if err != nil {
		return err
	}

	return c.ReorderQueuedPost(ctx, blog, postID, after)
}

func runQueueShuffle(cctx *cli.Context) error {
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

	return c.ShuffleQueuedPosts(ctx, blog)
}

func runQueueDrafts(cctx *cli.Context) error {
	ctx := context.Background()
	blog, err := blogArg(cctx)
	if err != nil {
		return err
	}
	tf, err := textFilter(cctx)
	if err != nil {
		return err
	}
	c, err := loadAuthClient(cctx)
	if err == ErrNoAuthSession {
		return fmt.Errorf("auth required, but not logged in")
	} else if err != nil {
		return err
	}

	out, err := c.BlogDraftPosts(ctx, blog, cctx.Int64("before-id"), tf)
	if err != nil {
		return err
	}
	printPostLines(out.Posts)
	return nil
}

func runQueueSubmissions(cctx *cli.Context) error {
	ctx := context.Background()
	blog, err := blogArg(cctx)
	if err != nil {
		return err
	}
	tf, err := textFilter(cctx)
	if err != nil {
		return err
	}
	c, err := loadAuthClient(cctx)
	if err == ErrNoAuthSession {
		return fmt.Errorf("auth required, but not logged in")
	} else if err != nil {
		return err
	}

	out, err := c.BlogSubmissionPosts(ctx, blog, cctx.Int("offset"), tf)
	if err != nil {
		return err
	}
	printPostLines(out.Posts)
	return nil
}
