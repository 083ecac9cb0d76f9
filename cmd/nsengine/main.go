// Package main runs the engine with the material demo scene.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/nsengine/internal/app"
	"github.com/Faultbox/nsengine/internal/assets"
	"github.com/Faultbox/nsengine/internal/config"
	"github.com/Faultbox/nsengine/internal/game/scenes"
	"github.com/Faultbox/nsengine/internal/game/scenes/shaders"
	"github.com/Faultbox/nsengine/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()
	defer printLastError()

	logger.Info("=== Not Serious Engine ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	files := newAssetManager(cfg)
	defer files.Close()

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to create app", zap.Error(err))
		return 1
	}
	defer a.Close()

	demo := scenes.NewMaterialDemo(a.Device(), files.Load, *cfg, a.Aspect())
	if err := a.Scenes().Push(demo); err != nil {
		logger.Error("failed to start scene", zap.Error(err))
		return 1
	}

	if err := a.Run(); err != nil {
		logger.Error("main loop error", zap.Error(err))
		return 1
	}

	logger.Info("app closed normally")
	return 0
}

// newAssetManager searches the configured directories first, then the
// embedded shaders.
func newAssetManager(cfg *config.Config) *assets.Manager {
	m := assets.NewManager()
	m.Mount("embedded shaders", shaders.Files)
	for _, dir := range cfg.Scene.AssetDirs {
		if err := m.AddDir(dir); err != nil {
			logger.Debug("asset dir skipped", zap.String("dir", dir), zap.Error(err))
		}
	}
	return m
}

// printLastError reports the most recent warning or error on exit.
func printLastError() {
	if e, ok := logger.LastError(); ok {
		fmt.Fprintln(os.Stderr, "last error:", e)
	}
}
