// Package output places generated files on a filesystem.
package output

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"

	"github.com/conduit-lang/ontogen/internal/errors"
	"github.com/conduit-lang/ontogen/internal/logger"
	"github.com/conduit-lang/ontogen/internal/plan"
	ustrings "github.com/conduit-lang/ontogen/internal/util/strings"
)

// Layout maps artifacts to paths relative to the output root. Every file of
// a run lives in one package directory.
type Layout struct {
	Package string
}

// FileName returns the file name for an artifact declaring the type name.
// Generated files end in _gen.go; user-owned files in _ext.go.
func (l Layout) FileName(kind plan.ArtifactKind, name string) string {
	switch kind {
	case plan.Vocabulary:
		return "vocabulary_gen.go"
	case plan.UserInterface, plan.UserImplementation:
		return ustrings.ToSnakeCase(name) + "_ext.go"
	default:
		return ustrings.ToSnakeCase(name) + "_gen.go"
	}
}

// Path returns the slash-free relative path of an artifact.
func (l Layout) Path(kind plan.ArtifactKind, name string) string {
	return filepath.Join(l.Package, l.FileName(kind, name))
}

// Sink writes files below a root directory.
type Sink struct {
	fs     afero.Fs
	root   string
	layout Layout
}

// NewSink creates a sink rooted at root.
func NewSink(fs afero.Fs, root string, layout Layout) *Sink {
	return &Sink{fs: fs, root: root, layout: layout}
}

// Layout returns the sink's layout.
func (s *Sink) Layout() Layout { return s.layout }

// Exists reports whether the artifact's file is already present.
func (s *Sink) Exists(kind plan.ArtifactKind, name string) bool {
	ok, err := afero.Exists(s.fs, filepath.Join(s.root, s.layout.Path(kind, name)))
	return err == nil && ok
}

// Write writes files, keyed by relative path, in path order and returns the
// full paths written. The first failure aborts the write; files already
// written stay in place.
func (s *Sink) Write(files map[string]string) ([]string, error) {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	written := make([]string, 0, len(paths))
	for _, rel := range paths {
		full := filepath.Join(s.root, rel)
		if err := s.fs.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return written, errors.Mark(errors.Wrapf(err, "creating directory for %s", full), errors.ErrSink)
		}
		if err := afero.WriteFile(s.fs, full, []byte(files[rel]), os.FileMode(0o644)); err != nil {
			return written, errors.Mark(errors.Wrapf(err, "writing %s", full), errors.ErrSink)
		}
		logger.Debugw("Wrote generated file", "path", full, "bytes", len(files[rel]))
		written = append(written, full)
	}
	return written, nil
}
