package cmd

import (
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	envLogLevel    = "DNF_LOG_LEVEL"
	envHistoryFile = "DNF_HISTORY_FILE"
)

// Config holds the settings that can come from the environment.
// Flags take precedence over it.
type Config struct {
	LogLevel    slog.Level
	HistoryFile string
}

func defaultConfig() Config {
	return Config{
		LogLevel:    slog.LevelWarn,
		HistoryFile: filepath.Join(os.TempDir(), ".dnf-history"),
	}
}

// LoadConfig reads the configuration from the environment, after loading
// envFile into it. A missing envFile is not an error.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, errors.Wrapf(err, "could not load env file %s", envFile)
		}
	}

	cfg := defaultConfig()
	if level := os.Getenv(envLogLevel); level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return Config{}, errors.Wrapf(err, "invalid %s", envLogLevel)
		}
	}
	if history := os.Getenv(envHistoryFile); history != "" {
		cfg.HistoryFile = history
	}
	return cfg, nil
}
