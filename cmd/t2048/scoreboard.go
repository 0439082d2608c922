package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/scoreboard"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagBoardAddr   string
	flagBoardSecret string
)

var scoreboardCmd = &cobra.Command{
	Use:   "scoreboard",
	Short: "Run the HTTP score board service",
	Long: `Serve the shared score board over HTTP, backed by the local scores
database.

Endpoints:
  GET  /health          - Liveness check
  GET  /scores?limit=K  - Top K scores (default 10, max 100)
  POST /scores          - Submit a final score

When a secret is set (--secret, scores.secret or T2048_SCOREBOARD_SECRET),
submissions need a bearer token signed with it.

Examples:
  t2048 scoreboard
  t2048 scoreboard --addr :9000 --db ./scores.db
  t2048 scoreboard --secret s3cret

Point players at it with:
  T2048_SCORES_BACKEND=remote T2048_SCOREBOARD_URL=http://host:8048 t2048`,
	Args: cobra.NoArgs,
	RunE: runScoreboard,
}

func init() {
	scoreboardCmd.Flags().StringVar(&flagBoardAddr, "addr", "", "HTTP listen address (default: scoreboard.address)")
	scoreboardCmd.Flags().StringVar(&flagBoardSecret, "secret", "", "Token signing secret (default: scores.secret)")
}

func runScoreboard(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, _, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	logger.SetPrefix("t2048-board")

	addr := cfg.Scoreboard.Address
	if flagBoardAddr != "" {
		addr = flagBoardAddr
	}
	secret := cfg.Scores.Secret
	if flagBoardSecret != "" {
		secret = flagBoardSecret
	}

	store, err := storage.Open(cfg.Scores.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := scoreboard.New(store, scoreboard.Options{
		Secret:         secret,
		RequestTimeout: cfg.Scores.Timeout,
		Logger:         logger,
	})

	fmt.Printf("Score board listening on %s\n", addr)
	return srv.ListenAndServe(cmd.Context(), addr)
}
