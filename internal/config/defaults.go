package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches the embedded
// defaults/t2048.yaml and is used when that file cannot be parsed.
func Default() Config {
	return Config{
		Game: GameConfig{
			Spawn4Prob:   0.1,
			InitialTiles: 2,
		},
		Input: InputConfig{
			SwipeThreshold: 30,
			CellPxW:        8,
			CellPxH:        16,
		},
		Scores: ScoresConfig{
			Backend:      BackendLocal,
			DBPath:       "~/.t2048/scores.db",
			Timeout:      5 * time.Second,
			RankingLimit: 10,
		},
		History: HistoryConfig{
			Path: "~/.t2048/history.yaml",
			Keep: 5,
		},
		SSH: SSHConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
		Scoreboard: ScoreboardConfig{
			Address: ":8048",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.t2048/t2048.log",
		},
	}
}
