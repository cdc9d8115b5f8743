// Package main is the entry point for the arena map viewer.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/birbbrains/arenaview/internal/app"
	"github.com/birbbrains/arenaview/internal/config"
	"github.com/birbbrains/arenaview/internal/logger"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred teardown finishes first.
func run() int {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	if config.WriteRequested() {
		if err := cfg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Config write error: %v\n", err)
			return 1
		}
		fmt.Println(filepath.Join(config.ConfigDir(), "config.yaml"))
		return 0
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Info("=== ArenaView ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		return 1
	}
	return serve(a)
}

type program interface {
	Run() error
	Close()
}

// serve runs p and always closes it.
func serve(p program) int {
	defer p.Close()

	if err := p.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		return 1
	}
	logger.Info("viewer closed normally")
	return 0
}
