// Package config loads blogsmith.yaml from a content root.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/blogsmith/internal/foundation/errors"
)

// FileName is the configuration file looked up in the content root.
const FileName = "blogsmith.yaml"

// Config is the site configuration.
type Config struct {
	Site         SiteConfig    `yaml:"site"`
	Content      ContentConfig `yaml:"content"`
	Slugs        SlugConfig    `yaml:"slugs"`
	ExcerptWords int           `yaml:"excerpt_words"`
	Output       OutputConfig  `yaml:"output"`
	Logging      LoggingConfig `yaml:"logging"`
}

// SiteConfig describes the site as a whole.
type SiteConfig struct {
	Title   string `yaml:"title"`
	BaseURL string `yaml:"base_url"`
	// DateFormat is a Go time layout used for displayed dates.
	DateFormat string `yaml:"date_format"`
	IndexTitle string `yaml:"index_title"`
	// Pages lists static pages in navigation order. When empty every page in
	// the pages directory is published, ordered by slug.
	Pages []PageConfig `yaml:"pages,omitempty"`
}

// PageConfig names one static page.
type PageConfig struct {
	File  string `yaml:"file"`
	Title string `yaml:"title,omitempty"`
}

// ContentConfig holds directory names relative to the content root.
type ContentConfig struct {
	PostsDir  string `yaml:"posts_dir"`
	PagesDir  string `yaml:"pages_dir"`
	ThemeDir  string `yaml:"theme_dir"`
	StaticDir string `yaml:"static_dir"`
}

// SlugConfig controls slug assignment.
type SlugConfig struct {
	Mode SlugMode `yaml:"mode"`
	// MaxLength truncates slugs; 0 means unlimited.
	MaxLength int `yaml:"max_length"`
}

// OutputConfig controls optional output artifacts.
type OutputConfig struct {
	Manifest *bool `yaml:"manifest,omitempty"`
}

// ManifestEnabled reports whether manifest.json is written (default true).
func (o OutputConfig) ManifestEnabled() bool {
	return o.Manifest == nil || *o.Manifest
}

// LoggingConfig selects the log level and format.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// Load reads name from fsys. A missing file yields Default(). Environment
// variables are expanded before parsing and unknown keys are rejected.
func Load(fsys fs.FS, name string) (*Config, error) {
	data, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read config file").
			WithContext("path", name).
			Build()
	}
	return Parse(data)
}

// Parse decodes, defaults, normalises and validates configuration YAML.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse config").Build()
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return buf.Bytes(), nil
}
