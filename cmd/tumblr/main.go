package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/carlmjohnson/versioninfo"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(-1)
	}
}

func run(args []string) error {

	app := cli.App{
		Name:    "tumblr",
		Usage:   "command-line client for the Tumblr v2 API",
		Version: versioninfo.Short(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-host",
				Usage:   "method, hostname, and port of the API",
				Value:   "https://api.tumblr.com",
				EnvVars: []string{"TUMBLR_API_HOST"},
			},
			&cli.StringFlag{
				Name:    "consumer-key",
				Usage:   "OAuth consumer key (client id) of the registered application",
				EnvVars: []string{"TUMBLR_CONSUMER_KEY"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log verbosity level (eg: warn, info, debug)",
				Value:   "warn",
				EnvVars: []string{"TUMBLR_LOG_LEVEL", "GO_LOG_LEVEL", "LOG_LEVEL"},
			},
		},
	}
	app.Commands = []*cli.Command{
		cmdLogin,
		cmdLogout,
		cmdWhoami,
		cmdBlog,
		cmdTag,
		cmdBlocks,
		cmdFollows,
		cmdQueue,
	}
	return app.Run(args)
}
