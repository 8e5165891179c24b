package config

import (
	"log/slog"
	"path"

	ferrors "git.home.luguber.info/inful/blogsmith/internal/foundation/errors"
	"git.home.luguber.info/inful/blogsmith/internal/foundation/normalization"
)

// SlugMode selects whether posts, tags and pages share one slug namespace.
type SlugMode string

const (
	SlugModeSeparate SlugMode = "separate"
	SlugModeShared   SlugMode = "shared"
)

var slugModeNormalizer = normalization.NewNormalizer(map[string]SlugMode{
	"separate": SlugModeSeparate,
	"shared":   SlugModeShared,
}, SlugModeSeparate)

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevelNormalizer = normalization.NewNormalizer(map[string]LogLevel{
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
	"warn":    LogLevelWarn,
	"warning": LogLevelWarn,
	"error":   LogLevelError,
}, LogLevelInfo)

// NormalizeLogLevel maps raw onto a LogLevel, defaulting to info.
func NormalizeLogLevel(raw string) LogLevel {
	return logLevelNormalizer.Normalize(raw)
}

// SlogLevel converts the level for log/slog.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormatNormalizer = normalization.NewNormalizer(map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}, LogFormatText)

// NormalizeLogFormat maps raw onto a LogFormat, defaulting to text.
func NormalizeLogFormat(raw string) LogFormat {
	return logFormatNormalizer.Normalize(raw)
}

// normalize canonicalises enum fields. Unrecognised slug modes are errors;
// unrecognised logging values fall back to their defaults.
func (c *Config) normalize() error {
	mode, err := slugModeNormalizer.NormalizeWithError(string(c.Slugs.Mode))
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "invalid slugs.mode").Build()
	}
	c.Slugs.Mode = mode
	for _, dir := range []*string{&c.Content.PostsDir, &c.Content.PagesDir, &c.Content.ThemeDir, &c.Content.StaticDir} {
		if *dir != "" {
			*dir = path.Clean(*dir)
		}
	}
	if c.Logging.Level != "" {
		c.Logging.Level = NormalizeLogLevel(string(c.Logging.Level))
	}
	if c.Logging.Format != "" {
		c.Logging.Format = NormalizeLogFormat(string(c.Logging.Format))
	}
	return nil
}
