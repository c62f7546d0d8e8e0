package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/pace-rs/pace/internal/app"
	"github.com/pace-rs/pace/internal/domain"
)

// Config is the on-disk TOML configuration.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Delete   DeleteConfig   `toml:"delete"`
	Time     TimeConfig     `toml:"time"`
}

// DatabaseConfig locates the SQLite store.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// DeleteConfig holds the single referential-integrity switch for tag
// deletion.
type DeleteConfig struct {
	TagPolicy app.TagDeletePolicy `toml:"tag_policy"`
}

// TimeConfig controls timestamp interpretation for user-supplied times.
type TimeConfig struct {
	// DefaultZone is an IANA zone name; empty means the local zone.
	DefaultZone string `toml:"default_zone"`
}

// Default returns the configuration used when no file exists.
func Default(dbPath string) Config {
	return Config{
		Database: DatabaseConfig{
			Path: dbPath,
		},
		Delete: DeleteConfig{
			TagPolicy: app.TagDeleteCascade,
		},
		Time: TimeConfig{
			DefaultZone: "",
		},
	}
}

// Load reads the TOML file at path over defaults. A missing or empty file
// yields the defaults unchanged.
func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Save writes the configuration as TOML, creating the parent directory.
func Save(path string, cfg Config) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("config path is required")
	}
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	content, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	return os.WriteFile(path, content, 0o644)
}

// Validate checks field values, normalizing in place where harmless.
func (c Config) Validate() error {
	c.Database.Path = strings.TrimSpace(c.Database.Path)
	if c.Database.Path == "" {
		return errors.New("database path is required")
	}

	if c.Delete.TagPolicy != "" && !c.Delete.TagPolicy.Valid() {
		return fmt.Errorf("delete.tag_policy %q: %w", c.Delete.TagPolicy, app.ErrInvalidTagPolicy)
	}

	if _, err := domain.LoadTimeZone(c.Time.DefaultZone); err != nil {
		return fmt.Errorf("time.default_zone: %w", err)
	}

	return nil
}

// TagPolicy returns the configured policy with its default applied.
func (c Config) TagPolicy() app.TagDeletePolicy {
	if c.Delete.TagPolicy == "" {
		return app.TagDeleteCascade
	}
	return c.Delete.TagPolicy
}

// EnsureConfigDir creates the directory holding the config file.
func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
