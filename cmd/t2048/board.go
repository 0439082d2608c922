package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/scoreboard"
	"github.com/vovakirdan/tui-2048/internal/scores"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// openBoard returns the score board selected by cfg.Scores.Backend and a
// function releasing it.
func openBoard(cfg config.Config, logger *log.Logger) (scores.Board, func(), error) {
	switch cfg.Scores.Backend {
	case config.BackendRemote:
		client, err := scoreboard.NewClient(cfg.Scores.RemoteURL, scoreboard.ClientOptions{
			Secret:  cfg.Scores.Secret,
			Timeout: cfg.Scores.Timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("using remote score board", "url", cfg.Scores.RemoteURL)

		// An unreachable board is not fatal; every finished game submits anew.
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Scores.Timeout)
		defer cancel()
		if err := client.Health(ctx); err != nil {
			logger.Warn("score board is not reachable", "url", cfg.Scores.RemoteURL, "error", err)
		}
		return client, func() {}, nil

	case config.BackendLocal:
		store, err := storage.Open(cfg.Scores.DBPath)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("using local score board", "path", cfg.Scores.DBPath)
		return store, func() { store.Close() }, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Scores.Backend)
}
