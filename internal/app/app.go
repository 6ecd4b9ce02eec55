package app

import (
	"context"
	"fmt"

	"github.com/bunchhieng/bark/internal/commands"
	"github.com/bunchhieng/bark/internal/config"
	"github.com/bunchhieng/bark/internal/github"
	"github.com/bunchhieng/bark/internal/logger"
	"github.com/bunchhieng/bark/internal/storage"
)

// App owns the storage handle and the command set built on it for the
// lifetime of one process.
type App struct {
	Config   *config.Config
	Log      logger.Logger
	Storage  storage.Storage
	Commands *commands.Set
}

// New opens storage at cfg.DBPath, wires the commands and creates the
// bookmarks table.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	s, err := storage.NewSQLiteStorage(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize storage: %w", err)
	}

	gh, err := github.NewClient(github.Options{
		BaseURL: cfg.GitHub.BaseURL,
		Token:   cfg.GitHub.Token,
		PerPage: cfg.GitHub.PerPage,
		Timeout: cfg.GitHub.Timeout,
	})
	if err != nil {
		s.Close()
		return nil, err
	}

	set := commands.NewSet(s, gh, log)
	if _, err := set.CreateTable.Execute(ctx); err != nil {
		s.Close()
		return nil, err
	}

	log.Debug("storage ready", logger.String("db_path", cfg.DBPath))
	return &App{
		Config:   cfg,
		Log:      log,
		Storage:  s,
		Commands: set,
	}, nil
}

// Close releases the storage handle and flushes logs.
func (a *App) Close() error {
	err := a.Storage.Close()
	_ = a.Log.Sync()
	return err
}
