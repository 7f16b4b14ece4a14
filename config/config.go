// Package config loads service settings from an optional TOML file, a .env
// file and SVGCANVAS_* environment variables, in that order of precedence
// (later wins).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "svgcanvas"

// DefaultFile is read when no explicit path is given.
const DefaultFile = "svgcanvas.toml"

type App struct {
	Listen    string `toml:"listen" envconfig:"LISTEN"`
	BodyLimit int    `toml:"body_limit" envconfig:"BODY_LIMIT"`
	Migrate   bool   `toml:"migrate" envconfig:"MIGRATE"`
	Seed      bool   `toml:"seed" envconfig:"SEED"`
}

type Database struct {
	// Connection is one of postgres, mysql, sqlserver or sqlite.
	Connection string `toml:"connection" envconfig:"CONNECTION"`
	DSN        string `toml:"dsn" envconfig:"DSN"`
}

type Canvas struct {
	DefaultWidth      int    `toml:"default_width" envconfig:"DEFAULT_WIDTH"`
	DefaultHeight     int    `toml:"default_height" envconfig:"DEFAULT_HEIGHT"`
	DefaultBackground string `toml:"default_background" envconfig:"DEFAULT_BACKGROUND"`
	MaxDimension      int    `toml:"max_dimension" envconfig:"MAX_DIMENSION"`
}

type Cache struct {
	PresetTTL time.Duration `toml:"preset_ttl" envconfig:"PRESET_TTL"`
}

type Configuration struct {
	App      App      `toml:"app" envconfig:"APP"`
	Database Database `toml:"database" envconfig:"DB"`
	Canvas   Canvas   `toml:"canvas" envconfig:"CANVAS"`
	Cache    Cache    `toml:"cache" envconfig:"CACHE"`
}

// Config is the process wide configuration, replaced by Load.
var Config = Default()

func Default() Configuration {
	return Configuration{
		App: App{
			Listen:    ":8080",
			BodyLimit: 10 << 20,
			Migrate:   true,
			Seed:      true,
		},
		Database: Database{
			Connection: "sqlite",
			DSN:        "svgcanvas.db",
		},
		Canvas: Canvas{
			DefaultWidth:      1080,
			DefaultHeight:     1080,
			DefaultBackground: "#000000",
			MaxDimension:      8192,
		},
		Cache: Cache{
			PresetTTL: 60 * time.Minute,
		},
	}
}

// Load builds a Configuration from defaults, the TOML file at path (skipped
// when missing), .env and the environment, and stores it in Config.
func Load(path string) (Configuration, error) {
	cfg := Default()

	if path == "" {
		path = DefaultFile
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		slog.Debug("config file not found, using defaults", "path", path)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("read .env: %w", err)
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	Config = cfg
	return cfg, nil
}

func (c Configuration) Validate() error {
	if c.Canvas.DefaultWidth <= 0 || c.Canvas.DefaultHeight <= 0 {
		return fmt.Errorf("canvas default size %dx%d must be positive", c.Canvas.DefaultWidth, c.Canvas.DefaultHeight)
	}
	if c.Canvas.MaxDimension <= 0 {
		return fmt.Errorf("canvas max_dimension must be positive")
	}
	if c.App.BodyLimit <= 0 {
		return fmt.Errorf("app body_limit must be positive")
	}
	return nil
}
