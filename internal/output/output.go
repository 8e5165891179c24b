// Package output writes a generated site so that it appears all at once or
// not at all.
package output

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"git.home.luguber.info/inful/blogsmith/internal/logfields"
)

// Writer receives the files of one build. Nothing is visible at the final
// location until Commit succeeds; Abort discards everything written since
// Begin.
type Writer interface {
	Begin() error
	WriteFile(name string, data []byte) error
	// CopyFS copies every regular file below root in fsys, keeping paths
	// relative to root.
	CopyFS(fsys fs.FS, root string) error
	Commit() error
	Abort()
}

// ErrNotStarted is returned when files are written before Begin.
var ErrNotStarted = errors.New("output: staging not started")

// StagedDir writes into a sibling "<dir>_stage" directory and promotes it to
// dir with renames on Commit. The previous output is kept as "<dir>.prev"
// until the promotion has succeeded.
type StagedDir struct {
	dir    string
	stage  string
	rename func(oldpath, newpath string) error
}

// NewStagedDir returns a Writer for the output directory dir.
func NewStagedDir(dir string) *StagedDir {
	return &StagedDir{dir: filepath.Clean(dir), rename: os.Rename}
}

// Dir is the final output directory.
func (s *StagedDir) Dir() string { return s.dir }

// Begin creates an empty staging directory, removing one left by an earlier
// interrupted build.
func (s *StagedDir) Begin() error {
	stage := s.dir + "_stage"
	if err := os.RemoveAll(stage); err != nil {
		return fmt.Errorf("remove stale staging directory: %w", err)
	}
	if err := os.MkdirAll(stage, 0o755); err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}
	s.stage = stage
	slog.Debug("Initialized staging directory", "staging", stage, "final", s.dir)
	return nil
}

func (s *StagedDir) target(name string) (string, error) {
	if s.stage == "" {
		return "", ErrNotStarted
	}
	if !fs.ValidPath(name) || name == "." {
		return "", fmt.Errorf("output: invalid path %q", name)
	}
	return filepath.Join(s.stage, filepath.FromSlash(name)), nil
}

// WriteFile writes data to name, a slash separated path relative to the
// output root.
func (s *StagedDir) WriteFile(name string, data []byte) error {
	dst, err := s.target(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", name, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// CopyFS copies the regular files below root into the staging directory.
func (s *StagedDir) CopyFS(fsys fs.FS, root string) error {
	return fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel := p
		if root != "." {
			rel = p[len(root)+1:]
		}
		dst, err := s.target(rel)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return fmt.Errorf("create directory for %s: %w", rel, err)
		}
		return copyFile(fsys, p, dst)
	})
}

func copyFile(fsys fs.FS, src, dst string) error {
	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy %s: %w", path.Base(src), err)
	}
	return out.Close()
}

// Commit promotes the staging directory to the output directory.
//  1. Remove a leftover "<dir>.prev".
//  2. Move the existing output to "<dir>.prev".
//  3. Rename staging to the output directory, restoring the backup on failure.
//  4. Remove the backup.
func (s *StagedDir) Commit() error {
	if s.stage == "" {
		return ErrNotStarted
	}
	if _, err := os.Stat(s.stage); err != nil {
		return fmt.Errorf("staging directory missing: %w", err)
	}

	prev := s.dir + ".prev"
	if err := os.RemoveAll(prev); err != nil {
		return fmt.Errorf("remove previous backup: %w", err)
	}
	hadOutput := false
	if _, err := os.Stat(s.dir); err == nil {
		if err := s.rename(s.dir, prev); err != nil {
			return fmt.Errorf("backup existing output: %w", err)
		}
		hadOutput = true
	}
	if err := s.rename(s.stage, s.dir); err != nil {
		if hadOutput {
			if rerr := s.rename(prev, s.dir); rerr != nil {
				slog.Error("Failed to restore previous output", logfields.Path(prev), logfields.Error(rerr))
			}
		}
		return fmt.Errorf("promote staging: %w", err)
	}
	s.stage = ""
	if hadOutput {
		if err := os.RemoveAll(prev); err != nil {
			slog.Warn("Failed to remove previous backup", logfields.Path(prev), logfields.Error(err))
		}
	}
	slog.Info("Promoted staging directory", logfields.Path(s.dir))
	return nil
}

// Abort removes the staging directory. The output directory is not touched.
func (s *StagedDir) Abort() {
	if s.stage == "" {
		return
	}
	dir := s.stage
	s.stage = ""
	if err := os.RemoveAll(dir); err != nil {
		slog.Warn("Failed to remove staging directory after abort", "staging", dir, logfields.Error(err))
		return
	}
	slog.Debug("Removed staging directory after abort", "staging", dir)
}
