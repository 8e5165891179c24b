package build

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/blogsmith/internal/metrics"
)

// Outcome is the final status of a build.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// StageRecord is the timing and result of one executed stage.
type StageRecord struct {
	Stage    State               `json:"stage"`
	Duration time.Duration       `json:"duration_ns"`
	Result   metrics.ResultLabel `json:"result"`
}

// Report describes one build run. It is never written into the site output.
type Report struct {
	ID          string        `json:"id"`
	Start       time.Time     `json:"start"`
	End         time.Time     `json:"end"`
	State       State         `json:"state"`
	Outcome     Outcome       `json:"outcome"`
	Stages      []StageRecord `json:"stages"`
	Posts       int           `json:"posts"`
	Tags        int           `json:"tags"`
	Pages       int           `json:"pages"`
	StaticFiles int           `json:"static_files"`
	Error       string        `json:"error,omitempty"`
}

func newReport() *Report {
	return &Report{ID: uuid.NewString(), Start: time.Now(), State: StateInit, Stages: []StageRecord{}}
}

func (r *Report) recordStage(s State, d time.Duration, res metrics.ResultLabel, rec metrics.Recorder) {
	r.Stages = append(r.Stages, StageRecord{Stage: s, Duration: d, Result: res})
	rec.ObserveStageDuration(string(s), d)
	rec.IncStageResult(string(s), res)
}

func (r *Report) finish(err error) {
	r.End = time.Now()
	if err == nil {
		r.State = StateDone
		r.Outcome = OutcomeSuccess
		return
	}
	r.State = StateFailed
	r.Error = err.Error()
	r.Outcome = OutcomeFailed
	var se *StageError
	if errors.As(err, &se) && se.Kind == StageErrorCanceled {
		r.Outcome = OutcomeCanceled
	}
}

// Duration is the wall time of the build.
func (r *Report) Duration() time.Duration { return r.End.Sub(r.Start) }

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("posts=%d tags=%d pages=%d static=%d stages=%d duration=%s outcome=%s",
		r.Posts, r.Tags, r.Pages, r.StaticFiles, len(r.Stages), r.Duration().Truncate(time.Millisecond), r.Outcome)
}

// Persist writes the report as JSON to path, replacing it atomically.
func (r *Report) Persist(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report json: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("ensure directory for report: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("write temp report json: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("atomic rename report json: %w", err)
	}
	return nil
}
