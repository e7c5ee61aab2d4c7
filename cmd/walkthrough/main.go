// Package main is the entry point for the interactive gallery walkthrough.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/gallery-walk/internal/config"
	"github.com/Faultbox/gallery-walk/internal/game"
	"github.com/Faultbox/gallery-walk/internal/logger"
	"github.com/Faultbox/gallery-walk/internal/overlay"
	"github.com/Faultbox/gallery-walk/internal/scene"
	"github.com/Faultbox/gallery-walk/internal/session"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Gallery Walk ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("walkthrough failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("game closed normally")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lvl, err := scene.LoadLevel(cfg.Level.Path)
	if err != nil {
		return err
	}

	var pub session.Publisher
	if cfg.Overlay.Enabled {
		hub := overlay.NewHub()
		pub = hub
		go func() {
			if err := hub.ListenAndServe(ctx, cfg.Overlay.Listen); err != nil {
				logger.Error("overlay stopped", zap.Error(err))
			}
		}()
	}

	g, err := game.New(cfg, pub)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	defer g.Close()

	if err := g.Load(lvl); err != nil {
		return fmt.Errorf("loading level: %w", err)
	}
	if err := g.Run(ctx); err != nil {
		return fmt.Errorf("game loop: %w", err)
	}

	// Persist display preferences changed in-game.
	if err := cfg.Save(); err != nil {
		logger.Warn("failed to save settings", zap.Error(err))
	}
	return nil
}
