package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sam-maryland/nfl-standings/internal/tiebreak"
	"gopkg.in/yaml.v3"
)

// Settings represents the standings tool configuration
type Settings struct {
	Logging     LoggingSettings    `yaml:"logging"`
	Tiebreakers TiebreakerSettings `yaml:"tiebreakers"`
}

// LoggingSettings controls the logger built by the command
type LoggingSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json|text
}

// TiebreakerSettings tunes the tiebreak resolver
type TiebreakerSettings struct {
	CommonGamesMinimum int `yaml:"common_games_minimum"`
	// CoinFlipSeed makes coin flips repeatable. 0 seeds from the clock.
	CoinFlipSeed int64 `yaml:"coin_flip_seed"`
}

// searchPaths are tried in order when no settings file is named
var searchPaths = []string{
	"configs/standings.yaml",
	"../configs/standings.yaml",
	"../../configs/standings.yaml",
}

// Default returns the settings used when no file is found
func Default() *Settings {
	return &Settings{
		Logging: LoggingSettings{
			Level:  "info",
			Format: "json",
		},
		Tiebreakers: TiebreakerSettings{
			CommonGamesMinimum: tiebreak.DefaultCommonGamesMinimum,
		},
	}
}

// Load reads settings from path. An empty path searches the usual locations
// and falls back to the defaults when nothing is found. Environment
// variables override whatever the file sets.
func Load(path string) (*Settings, error) {
	settings := Default()

	if path == "" {
		path = find()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("failed to parse settings from %s: %w", path, err)
		}
	}

	if err := applyEnv(settings); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func find() string {
	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func applyEnv(s *Settings) error {
	if v := os.Getenv("STANDINGS_LOG_LEVEL"); v != "" {
		s.Logging.Level = v
	}
	if v := os.Getenv("STANDINGS_LOG_FORMAT"); v != "" {
		s.Logging.Format = v
	}
	if v := os.Getenv("STANDINGS_COIN_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid STANDINGS_COIN_SEED %q: %w", v, err)
		}
		s.Tiebreakers.CoinFlipSeed = seed
	}
	if v := os.Getenv("STANDINGS_COMMON_GAMES_MIN"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid STANDINGS_COMMON_GAMES_MIN %q: %w", v, err)
		}
		s.Tiebreakers.CommonGamesMinimum = n
	}
	return nil
}

// Validate checks the settings can be used to build a logger and resolver
func (s *Settings) Validate() error {
	switch s.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unsupported log format %q", s.Logging.Format)
	}
	if s.Tiebreakers.CommonGamesMinimum < 0 {
		return fmt.Errorf("common_games_minimum must not be negative, got %d", s.Tiebreakers.CommonGamesMinimum)
	}
	return nil
}
