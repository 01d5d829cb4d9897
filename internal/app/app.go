package app

import (
	"context"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"bord/internal/command"
	"bord/internal/config"
	"bord/internal/console"
	"bord/internal/engine"
	"bord/internal/repository"
)

type App struct {
	Store  repository.Store
	Engine *engine.Engine
	Config *config.Config
}

// ConfigureLogging sends logs to stderr at the configured level so that
// stdout only carries the rendered boards.
func ConfigureLogging(cfg *config.Config) {
	log.SetOutput(os.Stderr)
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("invalid BORD_LOG_LEVEL %q, using warn", cfg.LogLevel)
		level = log.WarnLevel
	}
	log.SetLevel(level)
}

func Init(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := repository.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Storage, err)
	}

	return New(store, cfg), nil
}

// New wires an already opened store.
func New(store repository.Store, cfg *config.Config) *App {
	return &App{
		Store:  store,
		Engine: engine.New(store, cfg.DefaultBoard),
		Config: cfg,
	}
}

// Run executes a single command and returns the exit status.
func (a *App) Run(ctx context.Context, args []string, stdout, stderr io.Writer) (int, error) {
	printer := console.New(stdout, !a.Config.NoColor)
	dispatcher := command.NewDispatcher(a.Engine, printer, stderr)

	log.WithField("args", args).Debug("running command")
	return dispatcher.Run(ctx, args)
}

func (a *App) Close() error {
	return a.Store.Close()
}
