// Package config provides YAML-based configuration loading for t2048.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Score backends.
const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

// ErrUnknownBackend is returned for a scores.backend other than local or remote.
var ErrUnknownBackend = errors.New("config: unknown score backend")

// Config is the complete application configuration.
type Config struct {
	Game       GameConfig       `yaml:"game"`
	Input      InputConfig      `yaml:"input"`
	Scores     ScoresConfig     `yaml:"scores"`
	History    HistoryConfig    `yaml:"history"`
	SSH        SSHConfig        `yaml:"ssh"`
	Scoreboard ScoreboardConfig `yaml:"scoreboard"`
	Log        LogConfig        `yaml:"log"`

	// Source is where the configuration was read from.
	Source string `yaml:"-"`
}

// GameConfig defines engine parameters.
type GameConfig struct {
	Spawn4Prob   float64 `yaml:"spawn4_prob"`
	InitialTiles int     `yaml:"initial_tiles"`
	// Nickname is the default name for score submission. Empty disables it.
	Nickname string `yaml:"nickname"`
}

// InputConfig defines swipe detection. Terminal cells are converted to
// pixels using the cell size before the threshold is applied.
type InputConfig struct {
	SwipeThreshold float64 `yaml:"swipe_threshold"`
	CellPxW        float64 `yaml:"cell_px_w"`
	CellPxH        float64 `yaml:"cell_px_h"`
}

// ScoresConfig selects and configures the high-score board.
type ScoresConfig struct {
	Backend      string        `yaml:"backend"`
	DBPath       string        `yaml:"db_path"`
	RemoteURL    string        `yaml:"remote_url"`
	Secret       string        `yaml:"secret"`
	Timeout      time.Duration `yaml:"timeout"`
	RankingLimit int           `yaml:"ranking_limit"`
}

// HistoryConfig defines the device-local top scores file.
type HistoryConfig struct {
	Path string `yaml:"path"`
	Keep int    `yaml:"keep"`
}

// SSHConfig defines the SSH server.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// ScoreboardConfig defines the HTTP score board service.
type ScoreboardConfig struct {
	Address string `yaml:"address"`
}

// LogConfig defines logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Validate checks value ranges and cross-field requirements.
func (c Config) Validate() error {
	var errs []error

	if c.Game.Spawn4Prob <= 0 || c.Game.Spawn4Prob > 1 {
		errs = append(errs, fmt.Errorf("game.spawn4_prob must be in (0, 1], got %v", c.Game.Spawn4Prob))
	}
	if c.Game.InitialTiles < 1 || c.Game.InitialTiles > 16 {
		errs = append(errs, fmt.Errorf("game.initial_tiles must be in [1, 16], got %d", c.Game.InitialTiles))
	}
	if c.Input.SwipeThreshold < 0 {
		errs = append(errs, fmt.Errorf("input.swipe_threshold must not be negative, got %v", c.Input.SwipeThreshold))
	}
	if c.Input.CellPxW <= 0 || c.Input.CellPxH <= 0 {
		errs = append(errs, errors.New("input.cell_px_w and input.cell_px_h must be positive"))
	}

	switch c.Scores.Backend {
	case BackendLocal:
		if c.Scores.DBPath == "" {
			errs = append(errs, errors.New("scores.db_path is required for the local backend"))
		}
	case BackendRemote:
		if c.Scores.RemoteURL == "" {
			errs = append(errs, errors.New("scores.remote_url is required for the remote backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownBackend, c.Scores.Backend))
	}
	if c.Scores.RankingLimit < 1 || c.Scores.RankingLimit > 100 {
		errs = append(errs, fmt.Errorf("scores.ranking_limit must be in [1, 100], got %d", c.Scores.RankingLimit))
	}
	if c.History.Keep < 1 {
		errs = append(errs, fmt.Errorf("history.keep must be positive, got %d", c.History.Keep))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// LogLevel returns the parsed log level, info if unparseable.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(strings.TrimSpace(c.Log.Level))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
