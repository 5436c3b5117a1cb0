// Package config loads svgextrude settings from a YAML file. Environment
// variables are treated as read-only overrides at runtime.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chazu/svgextrude/pkg/extrude"
	"github.com/chazu/svgextrude/pkg/logging"
	"github.com/chazu/svgextrude/pkg/outline"
)

// CurrentVersion is the config_version written by Save. Bump it when the
// structure changes in a backward-incompatible way.
const CurrentVersion = 1

type OutlineConfig struct {
	Normalize     bool    `yaml:"normalize"`
	Scale         float64 `yaml:"scale"`
	CurveSegments int     `yaml:"curve_segments"`
	PathID        string  `yaml:"path_id"`
	CommandPolicy string  `yaml:"command_policy"` // "flatten" | "line" | "reject"
	RequireClose  bool    `yaml:"require_close"`
}

type CacheConfig struct {
	Size int `yaml:"size"` // 0 disables the build cache
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" | "json"
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type Config struct {
	ConfigVersion int             `yaml:"config_version"`
	Outline       OutlineConfig   `yaml:"outline"`
	Extrude       extrude.Options `yaml:"extrude"`
	Cache         CacheConfig     `yaml:"cache"`
	Logging       LoggingConfig   `yaml:"logging"`
}

// Defaults returns the built-in settings.
func Defaults() Config {
	oc := outline.DefaultConfig()
	return Config{
		ConfigVersion: CurrentVersion,
		Outline: OutlineConfig{
			Normalize:     oc.Normalize,
			Scale:         oc.Scale,
			CurveSegments: oc.CurveSegments,
			CommandPolicy: oc.Policy.String(),
			RequireClose:  oc.RequireClose,
		},
		Cache:   CacheConfig{Size: extrude.DefaultCacheSize},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// Env var names used as overrides.
const (
	EnvNormalize     = "SVGX_NORMALIZE"
	EnvScale         = "SVGX_SCALE"
	EnvCurveSegments = "SVGX_CURVE_SEGMENTS"
	EnvPathID        = "SVGX_PATH_ID"
	EnvCommandPolicy = "SVGX_COMMAND_POLICY"
	EnvRequireClose  = "SVGX_REQUIRE_CLOSE"
	EnvInvertTop     = "SVGX_INVERT_TOP"
	EnvInvertBottom  = "SVGX_INVERT_BOTTOM"
	EnvInvertSides   = "SVGX_INVERT_SIDES"
	EnvCacheSize     = "SVGX_CACHE_SIZE"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "SVGX_LOG_LEVEL"
	EnvLogFormat = "SVGX_LOG_FORMAT"
	EnvLogSource = "SVGX_LOG_SOURCE"
	EnvLogFile   = "SVGX_LOG_FILE"
)

// Load reads the YAML file at path over the defaults and then applies
// environment overrides. An empty path skips the file. Keys missing from
// the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	tidy(&cfg)
	applyEnvOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg as YAML, creating the parent directory if needed.
func Save(path string, cfg Config) error {
	if path == "" {
		return errors.New("config: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if cfg.ConfigVersion == 0 {
		cfg.ConfigVersion = CurrentVersion
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	if c.Outline.CurveSegments < 1 {
		return fmt.Errorf("config: outline.curve_segments must be at least 1, got %d", c.Outline.CurveSegments)
	}
	if c.Outline.Scale == 0 {
		return errors.New("config: outline.scale must not be zero")
	}
	if _, err := outline.ParseCommandPolicy(c.Outline.CommandPolicy); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("config: cache.size must not be negative, got %d", c.Cache.Size)
	}
	return nil
}

// OutlineConfig converts the outline section to parse settings.
func (c Config) OutlineConfig() (outline.Config, error) {
	p, err := outline.ParseCommandPolicy(c.Outline.CommandPolicy)
	if err != nil {
		return outline.Config{}, fmt.Errorf("config: %w", err)
	}
	return outline.Config{
		Normalize:     c.Outline.Normalize,
		Scale:         c.Outline.Scale,
		CurveSegments: c.Outline.CurveSegments,
		PathID:        c.Outline.PathID,
		Policy:        p,
		RequireClose:  c.Outline.RequireClose,
	}, nil
}

// ExtrudeOptions returns the winding options.
func (c Config) ExtrudeOptions() extrude.Options {
	return c.Extrude
}

// LoggingOptions converts the logging section for logging.Init.
func (c Config) LoggingOptions() logging.Options {
	return logging.Options{
		Level:     c.Logging.Level,
		Format:    c.Logging.Format,
		AddSource: c.Logging.Source,
		File:      c.Logging.File,
	}
}

// NewCache returns a build cache sized by the cache section, or nil when
// caching is disabled.
func (c Config) NewCache() *extrude.Cache {
	if c.Cache.Size <= 0 {
		return nil
	}
	return extrude.NewCache(c.Cache.Size)
}

func tidy(cfg *Config) {
	cfg.Outline.PathID = strings.TrimSpace(cfg.Outline.PathID)
	cfg.Outline.CommandPolicy = strings.ToLower(strings.TrimSpace(cfg.Outline.CommandPolicy))
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
	cfg.Logging.File = strings.TrimSpace(cfg.Logging.File)
}

func parseBool(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func applyEnvOverrides(cfg *Config) {
	env := func(name string) (string, bool) {
		v := strings.TrimSpace(os.Getenv(name))
		return v, v != ""
	}

	if v, ok := env(EnvNormalize); ok {
		cfg.Outline.Normalize = parseBool(v)
	}
	if v, ok := env(EnvScale); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Outline.Scale = f
		}
	}
	if v, ok := env(EnvCurveSegments); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Outline.CurveSegments = n
		}
	}
	if v, ok := env(EnvPathID); ok {
		cfg.Outline.PathID = v
	}
	if v, ok := env(EnvCommandPolicy); ok {
		cfg.Outline.CommandPolicy = strings.ToLower(v)
	}
	if v, ok := env(EnvRequireClose); ok {
		cfg.Outline.RequireClose = parseBool(v)
	}
	if v, ok := env(EnvInvertTop); ok {
		cfg.Extrude.InvertTop = parseBool(v)
	}
	if v, ok := env(EnvInvertBottom); ok {
		cfg.Extrude.InvertBottom = parseBool(v)
	}
	if v, ok := env(EnvInvertSides); ok {
		cfg.Extrude.InvertSides = parseBool(v)
	}
	if v, ok := env(EnvCacheSize); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.Size = n
		}
	}
	// logging overrides
	if v, ok := env(EnvLogLevel); ok {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v, ok := env(EnvLogFormat); ok {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v, ok := env(EnvLogSource); ok {
		cfg.Logging.Source = parseBool(v)
	}
	if v, ok := env(EnvLogFile); ok {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by
// an environment variable.
func EnvOverrideFor(key string) (string, bool) {
	names := map[string]string{
		"outline.normalize":      EnvNormalize,
		"outline.scale":          EnvScale,
		"outline.curve_segments": EnvCurveSegments,
		"outline.path_id":        EnvPathID,
		"outline.command_policy": EnvCommandPolicy,
		"outline.require_close":  EnvRequireClose,
		"extrude.invert_top":     EnvInvertTop,
		"extrude.invert_bottom":  EnvInvertBottom,
		"extrude.invert_sides":   EnvInvertSides,
		"cache.size":             EnvCacheSize,
		"logging.level":          EnvLogLevel,
		"logging.format":         EnvLogFormat,
		"logging.source":         EnvLogSource,
		"logging.file":           EnvLogFile,
	}
	name, ok := names[key]
	if !ok || os.Getenv(name) == "" {
		return "", false
	}
	return name, true
}
