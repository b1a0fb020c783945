package app

import (
	"context"
	"fmt"
	"os"

	"chartview/internal/chart"
	"chartview/internal/config"
	"chartview/internal/fileserver"
	"chartview/internal/gui"
	"chartview/internal/launcher"
	"chartview/internal/logger"
	"chartview/internal/presenter"
	"chartview/internal/webview"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppName         = "Chart Viewer - multiple presentation methods"
	AppID           = "com.chartview.desktop"
	AppVersion      = "1.0.0"
	MinWindowWidth  = 500
	MinWindowHeight = 450
	InitialDataset  = "iris"
)

type Application struct {
	fyneApp    fyne.App
	window     fyne.Window
	guiManager *gui.Manager
	dispatcher *presenter.Dispatcher
	server     *fileserver.Server
	launcher   *launcher.Launcher
	source     *chart.Source
	handlers   *Handlers
	lifecycle  *Lifecycle
	logger     logger.Logger
}

func NewApplication(cfg config.Config, log logger.Logger) (*Application, error) {
	mode, err := presenter.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}

	artifactPath, err := cfg.ArtifactPath()
	if err != nil {
		return nil, fmt.Errorf("resolve artifact path: %w", err)
	}
	launcherPath, err := cfg.LauncherPath()
	if err != nil {
		return nil, fmt.Errorf("resolve launcher path: %w", err)
	}
	executable, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}

	fyneApp := app.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(MinWindowWidth, MinWindowHeight))
	window.CenterOnScreen()
	window.SetMaster()

	log.Info("Application", "starting application", map[string]interface{}{
		"version":  AppVersion,
		"artifact": artifactPath,
		"mode":     mode.String(),
	})

	renderer, err := chart.NewRenderer(log)
	if err != nil {
		return nil, err
	}
	source := chart.NewSource(renderer, artifactPath, InitialDataset)

	server, err := fileserver.New(
		cfg.OutputDir,
		fileserver.WithArtifact(cfg.ArtifactName),
		fileserver.WithReadyTimeout(cfg.ReadyTimeout),
		fileserver.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	procLauncher := launcher.New(
		launcherPath,
		executable,
		launcher.WithSize(cfg.ViewWidth, cfg.ViewHeight),
		launcher.WithLogger(log),
	)

	guiManager := gui.NewManager(window, log, mode)

	dispatcher := presenter.New(presenter.Deps{
		Artifact: source,
		Server:   server,
		Opener:   presenter.SystemOpener{},
		Launcher: procLauncher,
		Viewer:   webview.New(cfg.ViewWidth, cfg.ViewHeight, log),
		Window:   guiManager,
		Logger:   log,
	})

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		guiManager: guiManager,
		dispatcher: dispatcher,
		server:     server,
		launcher:   procLauncher,
		source:     source,
		handlers:   NewHandlers(dispatcher, source, guiManager, log, mode, chart.Builtins()),
		lifecycle:  NewLifecycle(log, dispatcher, server, procLauncher),
		logger:     log,
	}

	application.setupHandlers()

	log.Info("Application", "initialization complete", map[string]interface{}{
		"port": server.Port(),
	})
	return application, nil
}

func (a *Application) setupHandlers() {
	a.guiManager.SetModeChangeHandler(a.handlers.HandleModeChange)
	a.guiManager.SetShowChartHandler(a.handlers.HandleShowChart)
	a.guiManager.SetGenerateHandler(a.handlers.HandleGenerateNew)
	a.guiManager.SetResponsivenessHandler(a.handlers.HandleResponsivenessCheck)
}

// Run renders the initial chart, shows the main window and blocks until the
// application quits.
func (a *Application) Run(ctx context.Context) error {
	if err := a.source.Generate(); err != nil {
		a.guiManager.ShowError("Initial chart", err)
		a.guiManager.UpdateStatus("Error generating initial chart")
	} else {
		a.guiManager.UpdateStatus("Ready - select a mode and click 'Show Chart'")
	}

	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "shutdown requested", nil)
		a.guiManager.Shutdown()
		a.lifecycle.Shutdown()
		a.window.Close()
	})

	a.lifecycle.Listen(func() {
		fyne.Do(a.fyneApp.Quit)
	})

	go func() {
		select {
		case <-ctx.Done():
			a.logger.Info("Application", "context cancelled, initiating shutdown", nil)
			a.lifecycle.Shutdown()
			fyne.Do(a.fyneApp.Quit)
		case <-a.lifecycle.Done():
		}
	}()

	a.window.SetContent(a.guiManager.GetMainContainer())
	a.window.Show()

	a.logger.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	// Quit paths that bypass the close intercept still clean up.
	a.lifecycle.Shutdown()
	return nil
}
