package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/blogsmith/internal/build"
	"git.home.luguber.info/inful/blogsmith/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Content     string `short:"C" help:"Content root holding blogsmith.yaml, posts, pages and theme" default:"." type:"existingdir"`
	Output      string `short:"o" help:"Output directory for the generated site" default:"./public"`
	MetricsFile string `name:"metrics-file" help:"Write build metrics in Prometheus text format to this file"`
	Report      string `name:"report" help:"Write the JSON build report to this file"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	if _, err := root.loadContentConfig(g, b.Content); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		reg      *prometheus.Registry
		recorder metrics.Recorder = metrics.NoopRecorder{}
	)
	if b.MetricsFile != "" {
		reg = prometheus.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
	}

	res := build.NewBuilder(build.WithRecorder(recorder)).Build(ctx, b.Content, b.Output)

	if b.Report != "" && res.Report != nil {
		if err := res.Report.Persist(b.Report); err != nil {
			slog.Warn("Failed to write build report", "path", b.Report, "error", err)
		}
	}
	if reg != nil {
		if err := metrics.WriteTextfile(reg, b.MetricsFile); err != nil {
			slog.Warn("Failed to write metrics file", "path", b.MetricsFile, "error", err)
		}
	}
	if !res.Success {
		return res.Err
	}
	fmt.Fprintf(g.Stdout, "Built %d pages from %d posts into %s\n", res.Report.Pages, res.Report.Posts, b.Output)
	return nil
}
