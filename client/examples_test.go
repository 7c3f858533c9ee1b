package client

import (
	"context"
	"fmt"
	"os"

	"github.com/atpstorages/gotumblr/api/tumblr"
)

func ExampleAPIClient_BlogPosts() {

	ctx := context.Background()

	c := NewAPIClient(os.Getenv("TUMBLR_CONSUMER_KEY"))

	out, err := c.BlogPosts(ctx, tumblr.BlogName("staff"), &BlogPostsOptions{
		Limit:        5,
		ContentTypes: []tumblr.ContentType{tumblr.ContentTypeText},
	})
	if err != nil {
		panic(err)
	}

	for _, p := range out.Posts {
		fmt.Println(p.PostURL)
	}
}

func ExampleResumeOAuthSession() {

	ctx := context.Background()

	cfg := OAuthConfig{
		ConsumerKey:    os.Getenv("TUMBLR_CONSUMER_KEY"),
		ConsumerSecret: os.Getenv("TUMBLR_CONSUMER_SECRET"),
	}
	var saved OAuthSession
	c := ResumeOAuthSession(cfg, saved, func(ctx context.Context, data OAuthSession) {
		// persist data somewhere
	})

	info, err := c.UserInfo(ctx)
	if err != nil {
		panic(err)
	}
	fmt.Println(info.Name)
}
