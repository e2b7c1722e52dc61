package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/treykane/infiniscroll/internal/engine"
	"github.com/treykane/infiniscroll/internal/logging"
)

const (
	configDirName  = ".infiniscroll"
	configFileName = "config.yaml"
)

// Defaults applied before the config file is read.
const (
	DefaultOrientation   = "vertical"
	DefaultSpacing       = 1
	DefaultMultiplier    = engine.DefaultContentMultiplier
	DefaultMonthRange    = 1200
	DefaultWatchInterval = 2 * time.Second
	DefaultGlamourStyle  = "dark"
)

var ErrNotConfigured = errors.New("infiniscroll is not configured")

var log = logging.New("config")

// Config stores the carousel and demo settings.
type Config struct {
	Orientation           string   `yaml:"orientation"`
	Spacing               float64  `yaml:"spacing"`
	ContentMultiplier     float64  `yaml:"content_multiplier"`
	SuspendScrollOnUpdate bool     `yaml:"suspend_scroll_on_update"`
	ScrollsToTop          bool     `yaml:"scrolls_to_top"`
	NotesDir              string   `yaml:"notes_dir"`
	MonthRange            int      `yaml:"month_range"`
	WatchInterval         Duration `yaml:"watch_interval"`
	GlamourStyle          string   `yaml:"glamour_style"`
	// Keybindings overrides app actions, e.g. {"month.today": "T"}.
	Keybindings map[string]string `yaml:"keybindings,omitempty"`
}

// Duration is a time.Duration written as "2s" rather than nanoseconds.
type Duration time.Duration

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(value.Value))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Default returns the configuration used when no file exists.
func Default() (Config, error) {
	notesDir, err := DefaultNotesDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		Orientation:           DefaultOrientation,
		Spacing:               DefaultSpacing,
		ContentMultiplier:     DefaultMultiplier,
		SuspendScrollOnUpdate: true,
		ScrollsToTop:          true,
		NotesDir:              notesDir,
		MonthRange:            DefaultMonthRange,
		WatchInterval:         Duration(DefaultWatchInterval),
		GlamourStyle:          DefaultGlamourStyle,
	}, nil
}

// DefaultNotesDir returns the directory month notes are read from by default.
func DefaultNotesDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, "journal"), nil
}

// ConfigPath returns the configuration file path.
func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

// Exists reports whether the config file exists.
func Exists() (bool, error) {
	path, err := ConfigPath()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat config path %q: %w", path, err)
}

// Load reads the saved configuration on top of the defaults. A missing file
// returns the defaults together with ErrNotConfigured.
func Load() (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, ErrNotConfigured
		}
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Normalize(); err != nil {
		return Config{}, err
	}
	log.Debug("config loaded", "path", path)
	return cfg, nil
}

// Save normalizes cfg and writes it to disk.
func Save(cfg Config) error {
	if err := cfg.Normalize(); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %q: %w", path, err)
	}
	log.Info("saved config", "path", path)
	return nil
}

// Normalize validates and clamps the settings in place.
func (c *Config) Normalize() error {
	o, err := engine.ParseOrientation(c.Orientation)
	if err != nil {
		return fmt.Errorf("invalid orientation: %w", err)
	}
	c.Orientation = o.String()

	if !isFinite(c.ContentMultiplier) {
		return fmt.Errorf("invalid content_multiplier: %v is not finite", c.ContentMultiplier)
	}
	if !isFinite(c.Spacing) {
		return fmt.Errorf("invalid spacing: %v is not finite", c.Spacing)
	}
	if c.ContentMultiplier == 0 {
		c.ContentMultiplier = DefaultMultiplier
	}
	if c.ContentMultiplier < engine.MinContentMultiplier {
		c.ContentMultiplier = engine.MinContentMultiplier
	}
	if c.Spacing < 0 {
		c.Spacing = 0
	}
	if c.MonthRange <= 0 {
		c.MonthRange = DefaultMonthRange
	}
	if c.WatchInterval <= 0 {
		c.WatchInterval = Duration(DefaultWatchInterval)
	}
	c.GlamourStyle = strings.ToLower(strings.TrimSpace(c.GlamourStyle))
	if c.GlamourStyle == "" {
		c.GlamourStyle = DefaultGlamourStyle
	}

	notesDir, err := NormalizeNotesDir(c.NotesDir)
	if err != nil {
		return fmt.Errorf("invalid notes_dir: %w", err)
	}
	c.NotesDir = notesDir
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// OrientationValue returns the parsed orientation. Call after Normalize.
func (c Config) OrientationValue() engine.Orientation {
	o, _ := engine.ParseOrientation(c.Orientation)
	return o
}

// NormalizeNotesDir expands and normalizes a notes directory path.
func NormalizeNotesDir(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is required")
	}

	expanded, err := expandHome(trimmed)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", err
	}

	return filepath.Clean(abs), nil
}

func expandHome(path string) (string, error) {
	if path == "~" {
		return os.UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
	}
	return path, nil
}
