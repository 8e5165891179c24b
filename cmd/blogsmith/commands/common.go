package commands

import (
	"io"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/blogsmith/internal/config"
	"github.com/alecthomas/kong"
)

// EnvLogLevel overrides the configured log level when set.
const EnvLogLevel = "BLOGSMITH_LOG_LEVEL"

// Global carries the writers shared by every subcommand.
type Global struct {
	Stdout io.Writer
	Stderr io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log output format (text|json). Defaults to the configured format."`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" help:"Build the blog into an output directory"`
	Init  InitCmd  `cmd:"" help:"Create a new blog with configuration, theme and a sample post"`
	Slugs SlugsCmd `cmd:"" help:"Print the slugs and output paths a build would assign"`
}

// AfterApply runs after flag parsing; sets up logging from flags and environment.
func (c *CLI) AfterApply(g *Global) error {
	c.configureLogging(g, nil)
	return nil
}

// configureLogging installs the default logger. Precedence for the level is
// --verbose, then BLOGSMITH_LOG_LEVEL, then the config file; for the format
// --log-format, then the config file.
func (c *CLI) configureLogging(g *Global, cfg *config.Config) {
	level := config.LogLevelInfo
	format := config.LogFormatText
	if cfg != nil {
		level = config.NormalizeLogLevel(string(cfg.Logging.Level))
		format = config.NormalizeLogFormat(string(cfg.Logging.Format))
	}
	if env := os.Getenv(EnvLogLevel); env != "" {
		level = config.NormalizeLogLevel(env)
	}
	if c.Verbose {
		level = config.LogLevelDebug
	}
	if c.LogFormat != "" {
		format = config.NormalizeLogFormat(c.LogFormat)
	}

	w := g.Stderr
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level.SlogLevel()}
	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// loadContentConfig reads .env files and the config file from the content
// root, then reapplies logging with the configured values.
func (c *CLI) loadContentConfig(g *Global, contentRoot string) (*config.Config, error) {
	loaded, err := config.LoadEnvFiles(contentRoot)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(os.DirFS(contentRoot), config.FileName)
	if err != nil {
		return nil, err
	}
	c.configureLogging(g, cfg)
	for _, f := range loaded {
		slog.Debug("Loaded environment file", "file", f)
	}
	return cfg, nil
}
