package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/scoreboard"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

func TestOpenBoard(t *testing.T) {
	logger, _, err := newLogger(config.Default(), false)
	if err != nil {
		t.Fatalf("newLogger() failed: %v", err)
	}

	local := config.Default()
	local.Scores.DBPath = filepath.Join(t.TempDir(), "scores.db")

	remote := config.Default()
	remote.Scores.Backend = config.BackendRemote
	remote.Scores.RemoteURL = "http://localhost:8048"

	bad := config.Default()
	bad.Scores.Backend = "carrier-pigeon"

	board, closeBoard, err := openBoard(local, logger)
	if err != nil {
		t.Fatalf("openBoard(local) failed: %v", err)
	}
	if _, ok := board.(*storage.Store); !ok {
		t.Errorf("local board = %T, want *storage.Store", board)
	}
	closeBoard()

	board, closeBoard, err = openBoard(remote, logger)
	if err != nil {
		t.Fatalf("openBoard(remote) failed: %v", err)
	}
	if _, ok := board.(*scoreboard.Client); !ok {
		t.Errorf("remote board = %T, want *scoreboard.Client", board)
	}
	closeBoard()

	if _, _, err := openBoard(bad, logger); !errors.Is(err, config.ErrUnknownBackend) {
		t.Errorf("openBoard(bad) = %v, want ErrUnknownBackend", err)
	}
}

func TestInteractiveLoggerWritesToFile(t *testing.T) {
	cfg := config.Default()
	cfg.Log.File = filepath.Join(t.TempDir(), "logs", "t2048.log")

	logger, closeLog, err := newLogger(cfg, true)
	if err != nil {
		t.Fatalf("newLogger() failed: %v", err)
	}
	logger.Info("hello", "score", 2048)
	closeLog()

	data, err := os.ReadFile(cfg.Log.File)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if !strings.Contains(string(data), "hello") || !strings.Contains(string(data), "score=2048") {
		t.Errorf("log file = %q, want the logged line", data)
	}
}
