// t2048 is the 2048 sliding-tile game for the terminal, with a shared
// high-score board.
//
// Usage:
//
//	t2048                    - Home screen: nickname, rankings, start
//	t2048 play               - Start a game right away
//	t2048 menu               - Same as no command
//	t2048 scores             - Print the top scores
//	t2048 serve              - Host the game over SSH
//	t2048 scoreboard         - Run the HTTP score board service
//	t2048 replay <moves>     - Apply moves to a seeded game and print it
//
// Global flags:
//
//	--config <path>     - Configuration file (default: ~/.t2048/config.yaml)
//	--db <path>         - Local scores database (default: ~/.t2048/scores.db)
//	--seed <value>      - Set RNG seed for reproducible games
//	--nickname <name>   - Nickname submitted with final scores
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSeed     int64
	flagNickname string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 in your terminal",
	Long: `t2048 is the 2048 sliding-tile puzzle for the terminal.

Slide the board with the arrow keys, WASD, hjkl or a mouse drag. Equal
tiles merge and add their value to your score; the game ends when no move
is left. Final scores are kept locally and submitted to the score board
under your nickname.

Available commands:
  play        - Start a game directly
  menu        - Home screen (the default)
  scores      - View high scores
  serve       - Start SSH server for remote play
  scoreboard  - Run the HTTP score board
  replay      - Apply moves to a seeded game without the UI

Examples:
  t2048
  t2048 play --nickname ada
  t2048 scores --limit 20
  t2048 serve --ssh :2222
  t2048 scoreboard --addr :8048`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMenu,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to configuration YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to local scores database")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagNickname, "nickname", "", "Nickname for submitted scores")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoreboardCmd)
	rootCmd.AddCommand(replayCmd)
}

// loadConfig loads the configuration and applies the global flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagDBPath != "" {
		cfg.Scores.DBPath = flagDBPath
	}
	if flagNickname != "" {
		cfg.Game.Nickname = flagNickname
	}
	return cfg, nil
}

// newLogger builds the process logger. Interactive sessions own the terminal,
// so they log to cfg.Log.File; servers log to stderr.
func newLogger(cfg config.Config, interactive bool) (*log.Logger, func(), error) {
	var w io.Writer = os.Stderr
	closeFn := func() {}

	if interactive {
		w = io.Discard
		if cfg.Log.File != "" {
			path := config.ExpandHome(cfg.Log.File)
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
			}
			f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
			if err != nil {
				return nil, nil, fmt.Errorf("cannot open log file: %w", err)
			}
			w = f
			closeFn = func() { f.Close() }
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048",
		Level:           cfg.LogLevel(),
	})
	return logger, closeFn, nil
}
