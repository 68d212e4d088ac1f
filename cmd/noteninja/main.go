package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/noteninja/noteninja/internal/analysis"
	"github.com/noteninja/noteninja/internal/app"
	"github.com/noteninja/noteninja/internal/capture"
	"github.com/noteninja/noteninja/internal/config"
	"github.com/noteninja/noteninja/internal/db"
	"github.com/noteninja/noteninja/internal/observability"
	"github.com/noteninja/noteninja/internal/playback"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "noteninja: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, closer, err := observability.NewLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	history, err := db.Open()
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer history.Close()

	deps := app.Deps{
		Analyzer:  analysis.New(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL, log),
		Recorder:  capture.New(capture.NewFFmpegSource(cfg.CaptureBinary, cfg.CaptureDevice), log),
		Player:    playback.New(cfg.PlayerBinary),
		History:   history,
		ExportDir: cfg.ExportDir,
		Log:       log,
	}

	log.Info().Str("model", cfg.GeminiModel).Msg("starting noteninja")

	p := tea.NewProgram(app.New(deps), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
