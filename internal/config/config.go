// Package config loads desktop-dnd settings from a YAML file, the
// environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Density   float32 `yaml:"density"   env:"DND_DENSITY"    env-default:"1"`
	LogLevel  string  `yaml:"logLevel"  env:"DND_LOG_LEVEL"  env-default:"info"`
	LogFormat string  `yaml:"logFormat" env:"DND_LOG_FORMAT" env-default:"text"`
	Host      string  `yaml:"host"      env:"DND_HOST"       env-default:"script"`
	Preview   Preview `yaml:"preview"`
	Discord   Discord `yaml:"discord"`
}

type Preview struct {
	MaxEdge int `yaml:"maxEdge" env:"DND_PREVIEW_MAX_EDGE" env-default:"256"`
}

type Discord struct {
	Token     string `yaml:"token"     env:"DISCORD_TOKEN"`
	ChannelID string `yaml:"channelId" env:"DISCORD_CHANNEL_ID"`
}

// Load reads the config file at path, or only the environment when path is
// empty. A .env file in the working directory is applied first; variables
// already set win over it.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("read environment: %w", err)
		}
	} else if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges cleanenv cannot express.
func (c Config) Validate() error {
	if c.Density <= 0 {
		return fmt.Errorf("density must be positive, got %g", c.Density)
	}
	if c.Preview.MaxEdge <= 0 {
		return fmt.Errorf("preview.maxEdge must be positive, got %d", c.Preview.MaxEdge)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q: use text or json", c.LogFormat)
	}
	return nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}

// Logger returns a logger writing to stderr in the configured format.
func (c Config) Logger() *slog.Logger {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
