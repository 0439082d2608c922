package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EmbeddedSource is the Source of a configuration built from the embedded
// defaults only.
const EmbeddedSource = "embedded"

// Load reads the configuration, applies .env and T2048_* environment
// overrides, and validates the result.
// Search order: customPath -> ~/.t2048/config.yaml -> ./configs/t2048.yaml -> embedded default
// Files only need to set the keys they change.
func Load(customPath string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: failed to read .env: %w", err)
	}
	return load(customPath, os.Getenv)
}

func load(customPath string, getenv func(string) string) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		cfg = Default() // Fallback to hardcoded if embed fails
	}
	cfg.Source = EmbeddedSource

	if err := readFile(&cfg, customPath, getenv); err != nil {
		return cfg, err
	}

	if err := applyEnv(&cfg, getenv); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// readFile overlays the first configuration file found onto cfg.
func readFile(cfg *Config, customPath string, getenv func(string) string) error {
	// A custom path must exist and parse
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		cfg.Source = customPath
		return nil
	}

	if path := getenv("T2048_CONFIG"); path != "" {
		return readFile(cfg, path, getenv)
	}

	candidates := []string{filepath.Join("configs", "t2048.yaml")}
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		candidates = append([]string{userCfgPath}, candidates...)
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		// Parse into a copy so a broken file does not leave cfg half-applied
		next := *cfg
		if err := yaml.Unmarshal(data, &next); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		next.Source = path
		*cfg = next
		return nil
	}
	return nil
}

// applyEnv applies T2048_* environment overrides.
func applyEnv(cfg *Config, getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}

	str("T2048_NICKNAME", &cfg.Game.Nickname)
	str("T2048_SCORES_BACKEND", &cfg.Scores.Backend)
	str("T2048_DB_PATH", &cfg.Scores.DBPath)
	str("T2048_SCOREBOARD_URL", &cfg.Scores.RemoteURL)
	str("T2048_SCOREBOARD_SECRET", &cfg.Scores.Secret)
	str("T2048_HISTORY_PATH", &cfg.History.Path)
	str("T2048_SSH_ADDRESS", &cfg.SSH.Address)
	str("T2048_SCOREBOARD_ADDRESS", &cfg.Scoreboard.Address)
	str("T2048_LOG_LEVEL", &cfg.Log.Level)
	str("T2048_LOG_FILE", &cfg.Log.File)

	if v := strings.TrimSpace(getenv("T2048_SCORES_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: T2048_SCORES_TIMEOUT: %w", err)
		}
		cfg.Scores.Timeout = d
	}
	if v := strings.TrimSpace(getenv("T2048_SPAWN4_PROB")); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: T2048_SPAWN4_PROB: %w", err)
		}
		cfg.Game.Spawn4Prob = p
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".t2048", filename)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
