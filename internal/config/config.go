// Package config loads focus settings from defaults, config files, FOCUS_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/squorange/focus-tools-sub000/internal/orbit"
)

const envPrefix = "FOCUS"

type Config struct {
	Dir      string       `mapstructure:"dir"`
	Format   string       `mapstructure:"format"`
	Pretty   bool         `mapstructure:"pretty"`
	LogLevel string       `mapstructure:"log_level"`
	Layout   LayoutConfig `mapstructure:"layout"`
}

// LayoutConfig mirrors orbit.Geometry so ring sizes can be tuned per user.
type LayoutConfig struct {
	MinRadius         float64 `mapstructure:"min_radius"`
	RingSpacing       float64 `mapstructure:"ring_spacing"`
	BeltBuffer        float64 `mapstructure:"belt_buffer"`
	CelebrationRadius float64 `mapstructure:"celebration_radius"`
}

func (c Config) Geometry() orbit.Geometry {
	return orbit.Geometry{
		MinRadius:         c.Layout.MinRadius,
		RingSpacing:       c.Layout.RingSpacing,
		BeltBuffer:        c.Layout.BeltBuffer,
		CelebrationRadius: c.Layout.CelebrationRadius,
	}
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"dir":       "dir",
	"format":    "format",
	"pretty":    "pretty",
	"log-level": "log_level",
}

// Load reads the user config (<ConfigDir>/config.yaml), merges a project
// config (.focus/config.yaml found from the working directory upward),
// then applies FOCUS_* env vars and any flags in fs that were set.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	if path := findProjectConfig(); path != "" {
		pv := viper.New()
		pv.SetConfigFile(path)
		if err := pv.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading project config %s: %w", path, err)
		}
		if err := v.MergeConfigMap(pv.AllSettings()); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	return decode(v)
}

// LoadFromPath reads a single config file on top of the defaults.
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return decode(v)
}

func Default() *Config {
	g := orbit.DefaultGeometry()
	return &Config{
		Format:   "json",
		LogLevel: "warn",
		Layout: LayoutConfig{
			MinRadius:         g.MinRadius,
			RingSpacing:       g.RingSpacing,
			BeltBuffer:        g.BeltBuffer,
			CelebrationRadius: g.CelebrationRadius,
		},
	}
}

// ConfigDir is FOCUS_CONFIG_DIR when set (keeps tests away from ~/.focus),
// otherwise ~/.focus.
func ConfigDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("FOCUS_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".focus"), nil
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if err := cfg.Geometry().Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("dir", "")
	v.SetDefault("format", d.Format)
	v.SetDefault("pretty", d.Pretty)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("layout.min_radius", d.Layout.MinRadius)
	v.SetDefault("layout.ring_spacing", d.Layout.RingSpacing)
	v.SetDefault("layout.belt_buffer", d.Layout.BeltBuffer)
	v.SetDefault("layout.celebration_radius", d.Layout.CelebrationRadius)
}

func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		path := filepath.Join(cwd, ".focus", "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(cwd)
		if parent == cwd {
			return ""
		}
		cwd = parent
	}
}
