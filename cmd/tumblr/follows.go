package main

import (
	"context"
	"fmt"

	"github.com/atpstorages/gotumblr/api/tumblr"

	"github.com/urfave/cli/v2"
)

var pageFlags = []cli.Flag{
	&cli.IntFlag{
		Name: "offset",
	},
	&cli.IntFlag{
		Name:  "limit",
		Value: 20,
	},
}

var cmdFollows = &cli.Command{
	Name:  "follows",
	Usage: "sub-commands for a blog's follow graph (auth required)",
	Flags: []cli.Flag{secretFlag},
	Subcommands: []*cli.Command{
		&cli.Command{
			Name:      "following",
			Usage:     "list blogs followed by a blog",
			ArgsUsage: `<blog>`,
			Flags:     pageFlags,
			Action:    runFollowsFollowing,
		},
		&cli.Command{
			Name:      "followers",
			Usage:     "list followers of a blog",
			ArgsUsage: `<blog>`,
			Flags:     pageFlags,
			Action:    runFollowsFollowers,
		},
		&cli.Command{
			Name:      "followed-by",
			Usage:     "check whether another blog follows a blog",
			ArgsUsage: `<blog> <other-blog>`,
			Action:    runFollowsFollowedBy,
		},
	},
}

func runFollowsFollowing(cctx *cli.Context) error {
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

	out, err := c.BlogFollowing(ctx, blog, cctx.Int("offset"), cctx.Int("limit"))
	if err != nil {
		return err
	}
	fmt.Printf("total: %d\n", out.TotalBlogs)
	for _, b := range out.Blogs {
		fmt.Printf("%s\t%s\n", b.BlogIdentifier(), b.URL)
	}
	return nil
}

func runFollowsFollowers(cctx *cli.Context) error {
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

	out, err := c.BlogFollowers(ctx, blog, cctx.Int("offset"), cctx.Int("limit"))
	if err != nil {
		return err
	}
	fmt.Printf("total: %d\n", out.TotalUsers)
	for _, b := range out.Users {
		fmt.Println(b.BlogIdentifier())
	}
	return nil
}

func runFollowsFollowedBy(cctx *cli.Context) error {
	ctx := context.Background()
	blog, err := blogArg(cctx)
	if err != nil {
		return err
	}
	other := cctx.Args().Get(1)
	if other == "" {
		return fmt.Errorf("need to provide other blog as second argument")
	}
	c, err := loadAuthClient(cctx)
	if err == ErrNoAuthSession {
		return fmt.Errorf("auth required, but not logged in")
	} else if err != nil {
		return err
	}

	ok, err := c.FollowedBy(ctx, blog, tumblr.BlogName(other))
	if err != nil {
		return err
	}
	fmt.Println(ok)
	return nil
}
