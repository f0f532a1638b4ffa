// Package config loads tagcloud settings from TOML or YAML files.
//
// A config file mirrors the pipeline options, grouped by concern:
//
//	[canvas]
//	width = 1024
//	height = 768
//
//	[spiral]
//	angle_step = 0.05
//	coefficient = 0.8
//
//	[render]
//	formats = ["svg", "png"]
//	style = "filled"
//
//	[sessions]
//	store = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "24h"
//
// The file format is chosen by extension (.toml, .yaml, .yml). Unknown keys
// are rejected so typos do not silently fall back to defaults.
package config

import (
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Session stores.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMongo  = "mongo"
)

// Config is the root of a config file.
type Config struct {
	Canvas   CanvasConfig   `toml:"canvas" yaml:"canvas"`
	Spiral   SpiralConfig   `toml:"spiral" yaml:"spiral"`
	Sizes    SizesConfig    `toml:"sizes" yaml:"sizes"`
	Render   RenderConfig   `toml:"render" yaml:"render"`
	Cache    CacheConfig    `toml:"cache" yaml:"cache"`
	Server   ServerConfig   `toml:"server" yaml:"server"`
	Sessions SessionsConfig `toml:"sessions" yaml:"sessions"`
}

// CanvasConfig sets the canvas and, optionally, an off-center origin.
type CanvasConfig struct {
	Width   int  `toml:"width" yaml:"width"`
	Height  int  `toml:"height" yaml:"height"`
	CenterX *int `toml:"center_x" yaml:"center_x"`
	CenterY *int `toml:"center_y" yaml:"center_y"`
}

// SpiralConfig sets the candidate distribution.
type SpiralConfig struct {
	Distribution string  `toml:"distribution" yaml:"distribution"`
	AngleStep    float64 `toml:"angle_step" yaml:"angle_step"`
	Coefficient  float64 `toml:"coefficient" yaml:"coefficient"`
	Stride       int     `toml:"stride" yaml:"stride"`
	MaxSteps     int     `toml:"max_steps" yaml:"max_steps"`
}

// SizesConfig sets random size generation and word measurement.
type SizesConfig struct {
	Count         int     `toml:"count" yaml:"count"`
	MinWidth      int     `toml:"min_width" yaml:"min_width"`
	MinHeight     int     `toml:"min_height" yaml:"min_height"`
	MaxWidth      int     `toml:"max_width" yaml:"max_width"`
	MaxHeight     int     `toml:"max_height" yaml:"max_height"`
	Seed          uint64  `toml:"seed" yaml:"seed"`
	MinWordLength int     `toml:"min_word_length" yaml:"min_word_length"`
	WordLimit     int     `toml:"word_limit" yaml:"word_limit"`
	MinScale      float64 `toml:"min_scale" yaml:"min_scale"`
	MaxScale      float64 `toml:"max_scale" yaml:"max_scale"`
}

// RenderConfig sets output formats and appearance.
type RenderConfig struct {
	Formats []string `toml:"formats" yaml:"formats"`
	Style   string   `toml:"style" yaml:"style"`
	Engine  string   `toml:"engine" yaml:"engine"`
	Labels  bool     `toml:"labels" yaml:"labels"`
	Center  bool     `toml:"center" yaml:"center"`
	Probes  int      `toml:"probes" yaml:"probes"`
	Margin  int      `toml:"margin" yaml:"margin"`
	Scale   float64  `toml:"scale" yaml:"scale"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend" yaml:"backend"`
	Dir      string `toml:"dir" yaml:"dir"`
	RedisURL string `toml:"redis_url" yaml:"redis_url"`
	Prefix   string `toml:"prefix" yaml:"prefix"`
}

// ServerConfig sets HTTP server parameters.
type ServerConfig struct {
	Addr         string        `toml:"addr" yaml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout" yaml:"write_timeout"`
	MaxBodyBytes int64         `toml:"max_body_bytes" yaml:"max_body_bytes"`
}

// SessionsConfig selects the session store.
type SessionsConfig struct {
	Store           string        `toml:"store" yaml:"store"`
	Dir             string        `toml:"dir" yaml:"dir"`
	RedisURL        string        `toml:"redis_url" yaml:"redis_url"`
	MongoURI        string        `toml:"mongo_uri" yaml:"mongo_uri"`
	MongoDatabase   string        `toml:"mongo_database" yaml:"mongo_database"`
	MongoCollection string        `toml:"mongo_collection" yaml:"mongo_collection"`
	TTL             time.Duration `toml:"ttl" yaml:"ttl"`
	CleanupInterval time.Duration `toml:"cleanup_interval" yaml:"cleanup_interval"`
}

// Default returns the configuration used when no file is given. Layout and
// render defaults are left zero so the pipeline's defaults apply.
func Default() Config {
	return Config{
		Cache: CacheConfig{
			Backend:  CacheFile,
			RedisURL: "redis://localhost:6379/0",
			Prefix:   "tagcloud:",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			MaxBodyBytes: 1 << 20,
		},
		Sessions: SessionsConfig{
			Store:           StoreMemory,
			RedisURL:        "redis://localhost:6379/0",
			MongoURI:        "mongodb://localhost:27017",
			MongoDatabase:   "tagcloud",
			MongoCollection: "sessions",
			TTL:             24 * time.Hour,
			CleanupInterval: 10 * time.Minute,
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tagcloud", "config.toml"), nil
}

// Load reads the file at path over [Default] and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, wrapLoad(path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
		}
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return Config{}, wrapLoad(path, err)
		}
		defer f.Close()
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
			return Config{}, wrapLoad(path, err)
		}
	default:
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unsupported config format %q (use .toml, .yaml or .yml)", path, ext)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func wrapLoad(path string, err error) error {
	if stderrors.Is(err, os.ErrNotExist) {
		return errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
	}
	return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
}

// Validate checks enumerations and ranges that do not need the pipeline's
// defaults to be meaningful.
func (c Config) Validate() error {
	if c.Canvas.Width < 0 || c.Canvas.Height < 0 {
		return invalid("canvas: width and height must be non-negative")
	}
	if c.Spiral.Distribution != "" {
		if err := pipeline.ValidateDistribution(c.Spiral.Distribution); err != nil {
			return invalid("spiral: %s", errors.UserMessage(err))
		}
	}
	if c.Spiral.AngleStep < 0 || c.Spiral.Coefficient < 0 || c.Spiral.Stride < 0 || c.Spiral.MaxSteps < 0 {
		return invalid("spiral: values must be non-negative")
	}
	if c.Sizes.Count < 0 {
		return invalid("sizes: count must be non-negative")
	}
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return invalid("render: %s", errors.UserMessage(err))
	}
	if c.Render.Style != "" {
		if err := pipeline.ValidateStyle(c.Render.Style); err != nil {
			return invalid("render: %s", errors.UserMessage(err))
		}
	}
	if c.Render.Engine != "" {
		if err := pipeline.ValidateEngine(c.Render.Engine); err != nil {
			return invalid("render: %s", errors.UserMessage(err))
		}
	}
	if !slices.Contains([]string{CacheFile, CacheRedis, CacheNone}, c.Cache.Backend) {
		return invalid("cache: backend %q must be one of file, redis, none", c.Cache.Backend)
	}
	if !slices.Contains([]string{StoreMemory, StoreFile, StoreRedis, StoreMongo}, c.Sessions.Store) {
		return invalid("sessions: store %q must be one of memory, file, redis, mongo", c.Sessions.Store)
	}
	if c.Sessions.TTL < 0 {
		return invalid("sessions: ttl must be non-negative")
	}
	return nil
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidConfig, format, args...)
}

// ApplyTo copies every configured (non-zero) value into opts.
func (c Config) ApplyTo(opts *pipeline.Options) {
	setInt(&opts.Width, c.Canvas.Width)
	setInt(&opts.Height, c.Canvas.Height)
	if c.Canvas.CenterX != nil || c.Canvas.CenterY != nil {
		var p geom.Point
		if c.Canvas.CenterX != nil {
			p.X = *c.Canvas.CenterX
		}
		if c.Canvas.CenterY != nil {
			p.Y = *c.Canvas.CenterY
		}
		opts.Center = &p
	}

	setString(&opts.Distribution, c.Spiral.Distribution)
	setFloat(&opts.AngleStep, c.Spiral.AngleStep)
	setFloat(&opts.Coefficient, c.Spiral.Coefficient)
	setInt(&opts.Stride, c.Spiral.Stride)
	setInt(&opts.MaxSteps, c.Spiral.MaxSteps)

	setInt(&opts.Count, c.Sizes.Count)
	setInt(&opts.MinWidth, c.Sizes.MinWidth)
	setInt(&opts.MinHeight, c.Sizes.MinHeight)
	setInt(&opts.MaxWidth, c.Sizes.MaxWidth)
	setInt(&opts.MaxHeight, c.Sizes.MaxHeight)
	if c.Sizes.Seed != 0 {
		opts.Seed = c.Sizes.Seed
	}
	setInt(&opts.MinWordLength, c.Sizes.MinWordLength)
	setInt(&opts.WordLimit, c.Sizes.WordLimit)
	setFloat(&opts.MinScale, c.Sizes.MinScale)
	setFloat(&opts.MaxScale, c.Sizes.MaxScale)

	if len(c.Render.Formats) > 0 {
		opts.Formats = slices.Clone(c.Render.Formats)
	}
	setString(&opts.Style, c.Render.Style)
	setString(&opts.Engine, c.Render.Engine)
	opts.ShowLabels = opts.ShowLabels || c.Render.Labels
	opts.ShowCenter = opts.ShowCenter || c.Render.Center
	setInt(&opts.Probes, c.Render.Probes)
	setInt(&opts.Margin, c.Render.Margin)
	setFloat(&opts.Scale, c.Render.Scale)
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setFloat(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
