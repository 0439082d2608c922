package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var flagReplayJSON bool

var replayCmd = &cobra.Command{
	Use:   "replay <direction>...",
	Short: "Play a sequence of moves without the UI",
	Long: `Start a game from --seed, apply the given moves and print the final
state. Scores are not submitted.

Directions are up, down, left and right (or ArrowUp, ArrowDown, ...).

Examples:
  t2048 replay --seed 42 left up right down
  t2048 replay --seed 42 --json left left up`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayJSON, "json", false, "Print the final state as JSON")
}

func runReplay(cmd *cobra.Command, args []string) error {
	dirs := make([]t2048.Direction, len(args))
	for i, arg := range args {
		dir, ok := t2048.ParseDirection(arg)
		if !ok {
			return fmt.Errorf("unknown direction %q", arg)
		}
		dirs[i] = dir
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	game := t2048.NewGame(core.RuntimeConfig{Seed: flagSeed}, t2048.Options{
		Spawn4Prob:   cfg.Game.Spawn4Prob,
		InitialTiles: cfg.Game.InitialTiles,
		Nickname:     cfg.Game.Nickname,
	})
	session := game.Session()
	for _, dir := range dirs {
		if out := session.Move(dir); out.Ignored {
			break
		}
	}

	snap := session.Snapshot()
	out := cmd.OutOrStdout()
	if flagReplayJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	fmt.Fprintf(out, "Score: %d  Moves: %d  Max: %d  (%s)\n\n", snap.Score, snap.Moves, snap.MaxTile, snap.Phase)
	_, err = fmt.Fprint(out, snap.Grid.String())
	return err
}
