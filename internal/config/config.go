// Package config loads process settings from the environment.
//
// Variables carry the AUTOMATA_ prefix. An optional .env file in the working
// directory is read first; variables already set in the environment win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/automata/internal/logging"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Prefix is prepended to every variable name.
const Prefix = "AUTOMATA_"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrInvalidConfig is returned when a parsed value is out of range
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config holds the process settings.
type Config struct {
	Addr           string      `env:"ADDR" envDefault:":8080"`
	LogLevel       string      `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string      `env:"LOG_FORMAT" envDefault:"text"`
	MaxInputSize   int         `env:"MAX_INPUT_SIZE" envDefault:"4096"`
	DefinitionsDir string      `env:"DEFINITIONS_DIR"`
	StoreDir       string      `env:"STORE_DIR"`
	Redis          RedisConfig `envPrefix:"REDIS_"`
}

// RedisConfig selects the Redis definition store. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `env:"ADDR"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB" envDefault:"0"`
	Prefix   string        `env:"PREFIX" envDefault:"automata:definition:"`
	TTL      time.Duration `env:"TTL" envDefault:"0s"`
}

// Load reads the given dotenv files (".env" when none are named), then parses
// the environment. Missing dotenv files are ignored.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load dotenv: %w", err)
	}
	return parse(env.Options{Prefix: Prefix})
}

// FromMap parses settings from environ instead of the process environment.
// Keys include the prefix.
func FromMap(environ map[string]string) (Config, error) {
	return parse(env.Options{Prefix: Prefix, Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the parser cannot.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q (want text or json)", ErrInvalidConfig, c.LogFormat)
	}
	if c.MaxInputSize < 0 {
		return fmt.Errorf("%w: max input size %d", ErrInvalidConfig, c.MaxInputSize)
	}
	if c.Redis.TTL < 0 {
		return fmt.Errorf("%w: redis ttl %s", ErrInvalidConfig, c.Redis.TTL)
	}
	return nil
}

// Level returns the parsed log level. Call after Validate.
func (c Config) Level() slog.Level {
	level, _ := logging.ParseLevel(c.LogLevel)
	return level
}
