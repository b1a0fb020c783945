package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"chartview/internal/config"
)

func TestRenderCommandWritesArtifact(t *testing.T) {
	out := filepath.Join(t.TempDir(), "tips.html")

	cmd := renderCmd()
	var stdout bytes.Buffer
	cmd.Writer = &stdout

	err := cmd.Run(context.Background(), []string{"render", "--dataset", "tips", "--out", out})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
	assert.Contains(t, string(data), "Tips by Total Bill")
	assert.Equal(t, out, strings.TrimSpace(stdout.String()))
}

func TestRenderCommandRejectsUnknownDataset(t *testing.T) {
	cmd := renderCmd()
	cmd.Writer = &bytes.Buffer{}

	err := cmd.Run(context.Background(), []string{"render", "--dataset", "nope", "--out", filepath.Join(t.TempDir(), "x.html")})
	assert.Error(t, err)
}

func TestRunFlagsOverrideEnvironment(t *testing.T) {
	var got config.Config
	cmd := runCmd()
	cmd.Action = func(ctx context.Context, c *cli.Command) error {
		var err error
		got, err = applyRunFlags(config.Default(), c)
		return err
	}

	err := cmd.Run(context.Background(), []string{"run", "--mode", "webview_process", "--ready-timeout", "3s"})
	require.NoError(t, err)

	assert.Equal(t, "webview_process", got.Mode)
	assert.Equal(t, 3*time.Second, got.ReadyTimeout)
	assert.Equal(t, ".", got.OutputDir, "unset flags keep the configured value")
}

func TestEnvFromFallsBackToDefaults(t *testing.T) {
	env := envFrom(context.Background())
	assert.Equal(t, config.Default(), env.cfg)
	assert.NoError(t, env.closer())
}
