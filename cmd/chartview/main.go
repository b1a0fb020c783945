package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"chartview/internal/config"
	"chartview/internal/logger"
)

type ctxKey struct{}

type runtimeEnv struct {
	cfg    config.Config
	log    logger.Logger
	closer func() error
}

func main() {
	root := &cli.Command{
		Name:  "chartview",
		Usage: "Render a chart and show it in a browser or an embedded web view",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Optional .env file with CHARTVIEW_* settings",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:  "log",
				Usage: "Log level: debug, info, warn, error (overrides CHARTVIEW_LOG_LEVEL)",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			cfg, err := config.Load(cmd.String("env-file"))
			if err != nil {
				return ctx, err
			}
			if lvl := cmd.String("log"); lvl != "" {
				cfg.LogLevel = logger.ParseLevel(lvl)
			}

			log, closer := logger.New(logger.Config{
				Level: cfg.LogLevel,
				JSON:  cfg.JSONLogs,
				File:  cfg.LogFile,
			})
			return context.WithValue(ctx, ctxKey{}, &runtimeEnv{
				cfg:    cfg,
				log:    log,
				closer: closer.Close,
			}), nil
		},
		After: func(ctx context.Context, cmd *cli.Command) error {
			if env, ok := ctx.Value(ctxKey{}).(*runtimeEnv); ok {
				return env.closer()
			}
			return nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			env := envFrom(ctx)
			return runGUI(ctx, env.cfg, env.log)
		},
		Commands: []*cli.Command{
			runCmd(),
			viewCmd(),
			renderCmd(),
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "chartview:", err)
		os.Exit(1)
	}
}

func envFrom(ctx context.Context) *runtimeEnv {
	if env, ok := ctx.Value(ctxKey{}).(*runtimeEnv); ok {
		return env
	}
	return &runtimeEnv{cfg: config.Default(), log: logger.Nop(), closer: func() error { return nil }}
}
