package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/blogsmith/internal/logfields"
	"git.home.luguber.info/inful/blogsmith/internal/metrics"
)

// State is a position in the build state machine. Every non-terminal state is
// also the name of the stage that runs in it.
type State string

const (
	StateInit          State = "init"
	StateLoadTemplates State = "load_templates"
	StateIndexPosts    State = "index_posts"
	StateAssignSlugs   State = "assign_slugs"
	StateRenderPages   State = "render_pages"
	StateWritePages    State = "write_pages"
	StateDone          State = "done"
	StateFailed        State = "failed"
)

// StageErrorKind classifies how a stage failed.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"
	StageErrorCanceled StageErrorKind = "canceled"
)

// StageError wraps the error that stopped a build with the stage it came from.
type StageError struct {
	Kind  StageErrorKind
	Stage State
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

type stageFunc func(ctx context.Context, bs *buildState) error

type stageDef struct {
	State State
	Fn    stageFunc
}

// runStages executes stages in order, checking for cancellation before each
// one and stopping at the first error.
func runStages(ctx context.Context, bs *buildState, stages []stageDef) error {
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			bs.report.recordStage(st.State, 0, metrics.ResultCanceled, bs.recorder)
			return &StageError{Kind: StageErrorCanceled, Stage: st.State, Err: err}
		}

		bs.report.State = st.State
		slog.Debug("Build stage started", logfields.BuildID(bs.report.ID), logfields.Stage(string(st.State)))

		t0 := time.Now()
		err := st.Fn(ctx, bs)
		dur := time.Since(t0)

		if err != nil {
			kind := StageErrorFatal
			result := metrics.ResultFatal
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				kind = StageErrorCanceled
				result = metrics.ResultCanceled
			}
			bs.report.recordStage(st.State, dur, result, bs.recorder)
			return &StageError{Kind: kind, Stage: st.State, Err: err}
		}
		bs.report.recordStage(st.State, dur, metrics.ResultSuccess, bs.recorder)
		slog.Debug("Build stage completed",
			logfields.BuildID(bs.report.ID),
			logfields.Stage(string(st.State)),
			logfields.DurationMS(float64(dur.Microseconds())/1000))
	}
	return nil
}
