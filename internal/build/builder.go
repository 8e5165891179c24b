package build

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/blogsmith/internal/logfields"
	"git.home.luguber.info/inful/blogsmith/internal/markdown"
	"git.home.luguber.info/inful/blogsmith/internal/metrics"
	"git.home.luguber.info/inful/blogsmith/internal/output"
	"git.home.luguber.info/inful/blogsmith/internal/site"
)

// Result is the outcome of Build. Err is a *StageError when Success is false.
type Result struct {
	Success bool
	Err     error
	Report  *Report
}

// Builder runs builds. A Builder holds no per-build state and may run several
// builds concurrently.
type Builder struct {
	recorder metrics.Recorder
	conv     markdown.Converter
}

// Option configures a Builder.
type Option func(*Builder)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(b *Builder) {
		if r != nil {
			b.recorder = r
		}
	}
}

// WithConverter replaces the goldmark Markdown converter.
func WithConverter(c markdown.Converter) Option {
	return func(b *Builder) {
		if c != nil {
			b.conv = c
		}
	}
}

// NewBuilder returns a Builder with a no-op recorder and the goldmark converter.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{recorder: metrics.NoopRecorder{}, conv: markdown.NewGoldmark()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build generates the site in contentRoot into outputRoot.
func (b *Builder) Build(ctx context.Context, contentRoot, outputRoot string) Result {
	return b.Run(ctx, os.DirFS(contentRoot), output.NewStagedDir(outputRoot))
}

// Run builds the site read from fsys and hands every output file to w.
func (b *Builder) Run(ctx context.Context, fsys fs.FS, w output.Writer) Result {
	bs := b.newState(fsys, w)
	slog.Info("Build started", logfields.BuildID(bs.report.ID))

	err := runStages(ctx, bs, []stageDef{
		{StateInit, stageInit},
		{StateLoadTemplates, stageLoadTemplates},
		{StateIndexPosts, stageIndexPosts},
		{StateAssignSlugs, stageAssignSlugs},
		{StateRenderPages, stageRenderPages},
		{StateWritePages, stageWritePages},
	})
	return b.finish(bs, err)
}

// Plan runs the build up to slug assignment and returns the resulting site
// without rendering or writing anything.
func (b *Builder) Plan(ctx context.Context, fsys fs.FS) (*site.Context, error) {
	bs := b.newState(fsys, nil)
	err := runStages(ctx, bs, []stageDef{
		{StateInit, stageInit},
		{StateLoadTemplates, stageLoadTemplates},
		{StateIndexPosts, stageIndexPosts},
		{StateAssignSlugs, stageAssignSlugs},
	})
	if err != nil {
		return nil, err
	}
	return bs.site, nil
}

func (b *Builder) newState(fsys fs.FS, w output.Writer) *buildState {
	return &buildState{
		fsys:     fsys,
		writer:   w,
		recorder: b.recorder,
		conv:     b.conv,
		report:   newReport(),
	}
}

func (b *Builder) finish(bs *buildState, err error) Result {
	r := bs.report
	r.finish(err)
	b.recorder.ObserveBuildDuration(r.Duration())
	b.recorder.IncBuildOutcome(metrics.BuildOutcomeLabel(r.Outcome))

	if err != nil {
		slog.Error("Build failed",
			logfields.BuildID(r.ID),
			logfields.Stage(stageOf(err)),
			logfields.Error(err))
		return Result{Err: err, Report: r}
	}
	slog.Info("Build completed",
		logfields.BuildID(r.ID),
		logfields.Count(r.Pages),
		logfields.DurationMS(float64(r.Duration().Microseconds())/1000))
	return Result{Success: true, Report: r}
}

func stageOf(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return string(se.Stage)
	}
	return ""
}
