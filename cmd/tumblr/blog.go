package main

import (
	"context"
	"fmt"

	"github.com/atpstorages/gotumblr/api/tumblr"
	"github.com/atpstorages/gotumblr/client"

	"github.com/urfave/cli/v2"
)

var cmdBlog = &cli.Command{
	Name:  "blog",
	Usage: "sub-commands for public blog data",
	Subcommands: []*cli.Command{
		&cli.Command{
			Name:      "info",
			Usage:     "show blog metadata",
			ArgsUsage: `<blog>`,
			Action:    runBlogInfo,
		},
		&cli.Command{
			Name:      "avatar",
			Usage:     "print the URL of a blog's avatar",
			ArgsUsage: `<blog>`,
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "size",
					Usage: "square size in pixels (16, 24, 30, 40, 48, 64, 96, 128 or 512)",
					Value: int(tumblr.DefaultAvatarSize),
				},
			},
			Action: runBlogAvatar,
		},
		&cli.Command{
			Name:      "posts",
			Usage:     "list a page of published posts",
			ArgsUsage: `<blog>`,
			Flags: append([]cli.Flag{
				&cli.IntFlag{
					Name:  "limit",
					Value: 20,
				},
				&cli.IntFlag{
					Name: "offset",
				},
				&cli.StringFlag{
					Name:  "before",
					Usage: "only posts before this time (unix seconds, RFC 3339, or date)",
				},
				&cli.StringFlag{
					Name:  "after",
					Usage: "drop posts at or before this time (unix seconds, RFC 3339, or date) from the fetched page",
				},
				&cli.StringSliceFlag{
					Name:  "tag",
					Usage: "only posts with all of these tags",
				},
				textFilterFlag,
			}, contentFlags...),
			Action: runBlogPosts,
		},
		&cli.Command{
			Name:      "post",
			Usage:     "show a single post",
			ArgsUsage: `<blog> <post-id>`,
			Flags:     []cli.Flag{textFilterFlag},
			Action:    runBlogPost,
		},
		&cli.Command{
			Name:      "notes",
			Usage:     "list notes on a post",
			ArgsUsage: `<blog> <post-id>`,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "mode",
					Usage: "all, likes, conversation, rollup, or reblogs_with_tags",
					Value: "all",
				},
				&cli.StringFlag{
					Name:  "before",
					Usage: "only notes before this time (unix seconds, RFC 3339, or date)",
				},
			},
			Action: runBlogNotes,
		},
		&cli.Command{
			Name:      "likes",
			Usage:     "list a blog's (public) likes",
			ArgsUsage: `<blog>`,
			Flags: append([]cli.Flag{
				&cli.IntFlag{
					Name:  "limit",
					Value: 20,
				},
				&cli.IntFlag{
					Name: "offset",
				},
				&cli.StringFlag{
					Name:  "before",
					Usage: "likes before this time (unix seconds, RFC 3339, or date)",
				},
				&cli.StringFlag{
					Name:  "after",
					Usage: "likes after this time (unix seconds, RFC 3339, or date)",
				},
			}, contentFlags...),
			Action: runBlogLikes,
		},
	},
}

func runBlogInfo(cctx *cli.Context) error {
	ctx := context.Background()
	blog, err := blogArg(cctx)
	if err != nil {
		return err
	}

	info, err := publicClient(cctx).BlogInfo(ctx, blog)
	if err != nil {
		return err
	}
	return printJSON(info)
}

func runBlogAvatar(cctx *cli.Context) error {
	ctx := context.Background()
	blog, err := blogArg(cctx)
	if err != nil {
		return err
	}

	u, err := publicClient(cctx).BlogAvatar(ctx, blog, tumblr.AvatarSize(cctx.Int("size")))
	if err != nil {
		return err
	}
	fmt.Println(u)
	return nil
}

func runBlogPosts(cctx *cli.Context) error {
	ctx := context.Background()
	blog, err := blogArg(cctx)
	if err != nil {
		return err
	}
	types, err := contentTypes(cctx)
	if err != nil {
		return err
	}
	tf, err := textFilter(cctx)
	if err != nil {
		return err
	}
	before, after, err := timeCursors(cctx)
	if err != nil {
		return err
	}

	out, err := publicClient(cctx).BlogPosts(ctx, blog, &client.BlogPostsOptions{
		Limit:        cctx.Int("limit"),
		Offset:       cctx.Int("offset"),
		Before:       before,
		After:        after,
		TextFilter:   tf,
		Tags:         cctx.StringSlice("tag"),
		ContentTypes: types,
		Strict:       cctx.Bool("strict"),
	})
	if err != nil {
		return err
	}
	printPostLines(out.Posts)
	return nil
}

func runBlogPost(cctx *cli.Context) error {
	ctx := context.Background()
	blog, err := blogArg(cctx)
	if err != nil {
		return err
	}
	id, err := parsePostID(cctx.Args().Get(1))
	if err != nil {
		return err
	}
	tf, err := textFilter(cctx)
	if err != nil {
		return err
	}

	post, err := publicClient(cctx).BlogPost(ctx, blog, id, tf)
	if err != nil {
		return err
	}
	return printJSON(post)
}

func runBlogNotes(cctx *cli.Context) error {
	ctx := context.Background()
	blog, err := blogArg(cctx)
	if err != nil {
		return err
	}
	id, err := parsePostID(cctx.Args().Get(1))
	if err != nil {
		return err
	}

	before, _, err := timeCursors(cctx)
	if err != nil {
		return err
	}

	notes, err := publicClient(cctx).BlogPostNotes(ctx, blog, id, before, tumblr.NotesMode(cctx.String("mode")))
	if err != nil {
		return err
	}
	for _, n := range notes.Notes() {
		b := n.Base()
		if b == nil {
			continue
		}
		base := b.Common()
		fmt.Printf("%d\t%s\t%s\n", base.Timestamp, n.Type(), base.BlogName)
	}
	return nil
}

func runBlogLikes(cctx *cli.Context) error {
	ctx := context.Background()
	blog, err := blogArg(cctx)
	if err != nil {
		return err
	}
	types, err := contentTypes(cctx)
	if err != nil {
		return err
	}
	before, after, err := timeCursors(cctx)
	if err != nil {
		return err
	}
	opts := &client.LikesOptions{
		Limit:        cctx.Int("limit"),
		ContentTypes: types,
		Strict:       cctx.Bool("strict"),
	}

	c := publicClient(cctx)
	var out *client.LikedPosts
	switch {
	case before != 0:
		out, err = c.BlogLikesBefore(ctx, blog, before, opts)
	case after != 0:
		out, err = c.BlogLikesAfter(ctx, blog, after, opts)
	default:
		out, err = c.BlogLikes(ctx, blog, cctx.Int("offset"), opts)
	}
	if err != nil {
		return err
	}
	fmt.Printf("liked posts: %d\n", out.Count)
	printPostLines(out.Posts)
	return nil
}

func printPostLines(posts []*tumblr.Post) {
	for _, p := range posts {
		types := make([]string, 0, len(p.Content))
		for _, ct := range p.ContentTypes() {
			types = append(types, string(ct))
		}
		fmt.Printf("%d\t%d\t%s\t%v\n", p.ID, p.Timestamp, p.PostURL, types)
	}
}
