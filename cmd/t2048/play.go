package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/history"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/scores"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a game right away",
	Long: `Skip the home screen and start playing.

Controls:
  Arrows/WASD/hjkl  - Slide the tiles
  Mouse drag        - Swipe
  R                 - Restart
  M/Esc             - Home screen
  Ctrl+S            - Save a text screenshot
  Q/Ctrl+C          - Quit

Examples:
  t2048 play
  t2048 play --nickname ada
  t2048 play --seed 42`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runInteractive(tui.ScreenGame)
	},
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start on the home screen",
	Long: `Start on the home screen: type a nickname, see the local and global
top scores, press Enter to play or Tab for the full scoreboard.

This is also what plain 't2048' does.`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	return runInteractive(tui.ScreenHome)
}

// runInteractive runs the TUI on the local terminal, starting on start.
func runInteractive(start tui.Screen) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	opts := tui.Options{
		Config: cfg,
		Logger: logger,
		Seed:   flagSeed,
		Start:  start,
		Width:  80,
		Height: 24,
	}
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		opts.Width = w
		opts.Height = h
	}

	// The game still works without a score board or history.
	board, closeBoard, err := openBoard(cfg, logger)
	if err != nil {
		logger.Warn("score board unavailable, playing offline", "error", err)
	} else {
		defer closeBoard()
		opts.Ranker = board
	}

	sink := scores.NewAsyncSubmitter(board, cfg.Scores.Timeout, logger)
	opts.Sink = sink

	hist, err := history.Load(cfg.History.Path, cfg.History.Keep)
	if err != nil {
		logger.Warn("could not load local history", "error", err)
	} else {
		opts.History = hist
	}

	runErr := tui.Run(opts)

	// Let the last submission finish before the board is closed.
	sink.Wait()
	return runErr
}
