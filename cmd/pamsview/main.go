package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zappabad/pamsview/internal/app"
	"github.com/zappabad/pamsview/internal/config"
	"github.com/zappabad/pamsview/internal/playback"
	"github.com/zappabad/pamsview/internal/scene"
	"github.com/zappabad/pamsview/internal/session"
	"github.com/zappabad/pamsview/internal/slogx"
	"github.com/zappabad/pamsview/tui"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Startup logs go to stderr; once the TUI owns the terminal they go to
	// the log panel instead.
	startup := slogx.NewDefault(cfg.Log.Level)
	store, err := app.LoadDatasets(context.Background(), cfg, startup)
	if err != nil {
		startup.Error("failed to load datasets", "error", err)
		os.Exit(1)
	}
	sc, err := app.ProvideScene(cfg)
	if err != nil {
		startup.Error("failed to build scene", "error", err)
		os.Exit(1)
	}

	logCh := make(chan string, 256)
	logger := slogx.NewChanLogger(logCh, cfg.Log.Level)
	slog.SetDefault(logger)

	sess := session.New(store, playback.NewClock(nil), logger)
	builder := scene.NewBuilder(sc, app.ProvideFrameConfig(cfg), logger)
	model := tui.NewModel(sess, builder, sc.Camera(), logCh, tui.Config{
		Refresh: cfg.Playback.RefreshInterval,
	}, logger)

	logger.Info("pamsview started", "datasets", store.Len(), "default", store.Fallback())

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
