package main

import (
	"context"
	"errors"

	"github.com/urfave/cli/v3"

	"chartview/internal/webview"
)

// viewCmd is the target of the launcher script: a standalone process that
// shows one URL in an embedded web view and exits when the window closes.
func viewCmd() *cli.Command {
	return &cli.Command{
		Name:  "view",
		Usage: "Show a URL in an embedded web view window",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "url",
				Usage:    "Address to load",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "width",
				Usage: "Window width in pixels",
			},
			&cli.IntFlag{
				Name:  "height",
				Usage: "Window height in pixels",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			env := envFrom(ctx)

			width, height := env.cfg.ViewWidth, env.cfg.ViewHeight
			if cmd.IsSet("width") {
				width = int(cmd.Int("width"))
			}
			if cmd.IsSet("height") {
				height = int(cmd.Int("height"))
			}

			v := webview.New(width, height, env.log)
			err := v.Open(ctx, cmd.String("url"))
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
