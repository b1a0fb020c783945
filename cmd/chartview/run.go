package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"chartview/internal/app"
	"chartview/internal/config"
	"chartview/internal/logger"
)

func runCmd() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Open the main window (default)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "mode",
				Usage: "Initial presentation mode: browser, webview_process, webview_separate",
			},
			&cli.StringFlag{
				Name:  "output-dir",
				Usage: "Directory for the chart artifact and launcher script",
			},
			&cli.DurationFlag{
				Name:  "ready-timeout",
				Usage: "How long to wait for the local file server to accept connections",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			env := envFrom(ctx)
			cfg, err := applyRunFlags(env.cfg, cmd)
			if err != nil {
				return err
			}
			return runGUI(ctx, cfg, env.log)
		},
	}
}

func applyRunFlags(cfg config.Config, cmd *cli.Command) (config.Config, error) {
	if cmd.IsSet("mode") {
		cfg.Mode = cmd.String("mode")
	}
	if cmd.IsSet("output-dir") {
		cfg.OutputDir = cmd.String("output-dir")
	}
	if cmd.IsSet("ready-timeout") {
		cfg.ReadyTimeout = cmd.Duration("ready-timeout")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

func runGUI(ctx context.Context, cfg config.Config, log logger.Logger) error {
	application, err := app.NewApplication(cfg, log)
	if err != nil {
		log.Error("Main", err, map[string]interface{}{"stage": "initialization"})
		return err
	}
	return application.Run(ctx)
}
