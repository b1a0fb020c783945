package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"chartview/internal/chart"
)

func renderCmd() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Render a built-in dataset to an HTML file without opening a window",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dataset",
				Usage: "Built-in dataset: " + strings.Join(chart.Builtins(), ", "),
				Value: "iris",
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "Output file (defaults to the configured artifact path)",
			},
			&cli.IntFlag{
				Name:  "width",
				Usage: "Chart width in pixels",
			},
			&cli.IntFlag{
				Name:  "height",
				Usage: "Chart height in pixels",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			env := envFrom(ctx)

			out := cmd.String("out")
			if out == "" {
				p, err := env.cfg.ArtifactPath()
				if err != nil {
					return err
				}
				out = p
			}

			ds, err := chart.LoadBuiltin(cmd.String("dataset"))
			if err != nil {
				return err
			}
			r, err := chart.NewRenderer(env.log)
			if err != nil {
				return err
			}
			if cmd.IsSet("width") || cmd.IsSet("height") {
				r.SetSize(int(cmd.Int("width")), int(cmd.Int("height")))
			}
			if err := r.RenderFile(ds, out); err != nil {
				return err
			}

			fmt.Fprintln(cmd.Root().Writer, out)
			return nil
		},
	}
}
