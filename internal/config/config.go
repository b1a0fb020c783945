// Package config resolves runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"chartview/internal/logger"
)

const (
	DefaultArtifactName = "chart.html"
	DefaultMode         = "browser"
	DefaultReadyTimeout = 2 * time.Second
	DefaultViewWidth    = 800
	DefaultViewHeight   = 600
)

type Config struct {
	// OutputDir holds the chart artifact and the launcher script. It is also
	// the root served over HTTP.
	OutputDir    string
	ArtifactName string
	LauncherName string
	Mode         string

	ReadyTimeout time.Duration
	ViewWidth    int
	ViewHeight   int

	LogLevel logger.LogLevel
	JSONLogs bool
	LogFile  string
}

func Default() Config {
	return Config{
		OutputDir:    ".",
		ArtifactName: DefaultArtifactName,
		LauncherName: DefaultLauncherName(),
		Mode:         DefaultMode,
		ReadyTimeout: DefaultReadyTimeout,
		ViewWidth:    DefaultViewWidth,
		ViewHeight:   DefaultViewHeight,
		LogLevel:     logger.InfoLevel,
	}
}

func DefaultLauncherName() string {
	if runtime.GOOS == "windows" {
		return "chartview_webview.cmd"
	}
	return "chartview_webview.sh"
}

// Load reads the optional env files and then the CHARTVIEW_* variables on top
// of the defaults. A missing env file is not an error.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()

	if v := getenv("CHARTVIEW_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := getenv("CHARTVIEW_ARTIFACT"); v != "" {
		cfg.ArtifactName = v
	}
	if v := getenv("CHARTVIEW_LAUNCHER"); v != "" {
		cfg.LauncherName = v
	}
	if v := getenv("CHARTVIEW_MODE"); v != "" {
		cfg.Mode = v
	}
	if v := getenv("CHARTVIEW_READY_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("CHARTVIEW_READY_TIMEOUT: %w", err)
		}
		cfg.ReadyTimeout = d
	}
	if v := getenv("CHARTVIEW_VIEW_WIDTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("CHARTVIEW_VIEW_WIDTH: %w", err)
		}
		cfg.ViewWidth = n
	}
	if v := getenv("CHARTVIEW_VIEW_HEIGHT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("CHARTVIEW_VIEW_HEIGHT: %w", err)
		}
		cfg.ViewHeight = n
	}
	if v := getenv("CHARTVIEW_LOG_LEVEL"); v != "" {
		cfg.LogLevel = logger.ParseLevel(v)
	}
	if v := getenv("CHARTVIEW_JSON_LOGS"); v != "" {
		cfg.JSONLogs = strings.EqualFold(v, "true") || v == "1"
	}
	cfg.LogFile = getenv("CHARTVIEW_LOG_FILE")

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.ArtifactName == "" || strings.ContainsAny(c.ArtifactName, `/\`) {
		return fmt.Errorf("artifact name %q must be a bare file name", c.ArtifactName)
	}
	if c.LauncherName == "" {
		return fmt.Errorf("launcher name must not be empty")
	}
	if c.ReadyTimeout <= 0 {
		return fmt.Errorf("ready timeout must be positive, got %s", c.ReadyTimeout)
	}
	if c.ViewWidth <= 0 || c.ViewHeight <= 0 {
		return fmt.Errorf("view size must be positive, got %dx%d", c.ViewWidth, c.ViewHeight)
	}
	return nil
}

// ArtifactPath is the absolute path of the rendered chart.
func (c Config) ArtifactPath() (string, error) {
	dir, err := filepath.Abs(c.OutputDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, c.ArtifactName), nil
}

// LauncherPath is where the EmbeddedProcess launcher script is written. A
// relative launcher name is placed in the output directory.
func (c Config) LauncherPath() (string, error) {
	if filepath.IsAbs(c.LauncherName) {
		return c.LauncherName, nil
	}
	dir, err := filepath.Abs(c.OutputDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, c.LauncherName), nil
}
