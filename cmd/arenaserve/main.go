// Command arenaserve serves map, team summary and sprite files in the
// shape of the betting bot's HTTP service, for running the viewer locally.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/birbbrains/arenaview/internal/logger"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:5000", "Listen address")
	maps := flag.String("maps", "data/arena", "Directory of {id}.json map files")
	summary := flag.String("summary", "data/team-summary.json", "Team summary JSON file")
	sprites := flag.String("sprites", "data/sprites", "Directory of unit sprite GIFs")
	assetPath := flag.String("asset-path", "/static.1/", "URL prefix for sprites")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	level := "info"
	if *debug {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.Named("arenaserve")
	router := newRouter(serverConfig{
		MapDir:      *maps,
		SummaryFile: *summary,
		SpriteDir:   *sprites,
		AssetPath:   *assetPath,
	}, log)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("shutdown", zap.Error(err))
		}
	}()

	log.Info("serving",
		zap.String("addr", *addr),
		zap.String("maps", *maps),
		zap.String("summary", *summary),
		zap.String("sprites", *sprites))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server failed", zap.Error(err))
		os.Exit(1)
	}
	log.Info("server stopped")
}
