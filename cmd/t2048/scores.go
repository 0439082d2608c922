package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/history"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagScoresLimit int
	flagLocal       bool
	flagStats       bool
	flagPlayer      string
	flagYes         bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top scores from the configured score board.

With --local, show the best scores played on this device instead.
--stats and --player read the local scores database.

Examples:
  t2048 scores
  t2048 scores --limit 50
  t2048 scores --local
  t2048 scores --stats
  t2048 scores --player ada`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

var scoresClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all scores from the local database",
	Args:  cobra.NoArgs,
	RunE:  runScoresClear,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 0, "Number of scores to show (default: scores.ranking_limit)")
	scoresCmd.Flags().BoolVar(&flagLocal, "local", false, "Show this device's best scores")
	scoresCmd.Flags().BoolVar(&flagStats, "stats", false, "Show statistics of the local database")
	scoresCmd.Flags().StringVar(&flagPlayer, "player", "", "Show the best local score of a nickname")
	scoresClearCmd.Flags().BoolVar(&flagYes, "yes", false, "Confirm deleting all scores")
	scoresCmd.AddCommand(scoresClearCmd)
}

func runScores(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	switch {
	case flagLocal:
		return printLocal(cfg)
	case flagStats, flagPlayer != "":
		return printStats(cmd.Context(), cfg)
	}

	logger, _, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	board, closeBoard, err := openBoard(cfg, logger)
	if err != nil {
		return err
	}
	defer closeBoard()

	limit := flagScoresLimit
	if limit <= 0 {
		limit = cfg.Scores.RankingLimit
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Scores.Timeout)
	defer cancel()

	records, err := board.Top(ctx, limit)
	if err != nil {
		return fmt.Errorf("cannot retrieve scores: %w", err)
	}

	fmt.Println("High Scores")
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 't2048 play --nickname <name>' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-24s  %-10s  %s\n", "Rank", "Nickname", "Score", "Date")
	fmt.Printf("  %-4s  %-24s  %-10s  %s\n", "----", "--------", "-----", "----")

	for i, r := range records {
		date := "-"
		if !r.CreatedAt.IsZero() {
			date = r.CreatedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-4d  %-24s  %-10d  %s\n", i+1, r.Nickname, r.Score, date)
	}
	return nil
}

func printLocal(cfg config.Config) error {
	hist, err := history.Load(cfg.History.Path, cfg.History.Keep)
	if err != nil {
		return err
	}

	fmt.Println("Your Best Scores")
	if hist.Path() != "" {
		fmt.Printf("(%s)\n", hist.Path())
	}
	fmt.Println()

	list := hist.Scores()
	if len(list) == 0 {
		fmt.Println("No games finished on this device yet.")
		return nil
	}
	for i, s := range list {
		fmt.Printf("  %d. %d\n", i+1, s)
	}
	return nil
}

func printStats(ctx context.Context, cfg config.Config) error {
	store, err := storage.Open(cfg.Scores.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagPlayer != "" {
		best, err := store.PlayerBest(ctx, flagPlayer)
		if err != nil {
			return err
		}
		fmt.Printf("Best score for %s: %d\n", flagPlayer, best)
		if !flagStats {
			return nil
		}
		fmt.Println()
	}

	stats, err := store.GetStats(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Games:       %d\n", stats.GamesCount)
	fmt.Printf("Players:     %d\n", stats.Players)
	fmt.Printf("High score:  %d\n", stats.HighScore)
	fmt.Printf("Average:     %.0f\n", stats.AvgScore)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("Last played: %s\n", stats.LastPlayed.Local().Format(time.DateTime))
	}
	return nil
}

func runScoresClear(cmd *cobra.Command, _ []string) error {
	if !flagYes {
		return errors.New("refusing to delete scores without --yes")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Scores.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ClearScores(cmd.Context()); err != nil {
		return err
	}
	fmt.Printf("Deleted all scores from %s\n", cfg.Scores.DBPath)
	return nil
}
