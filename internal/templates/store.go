package templates

import (
	"errors"
	"io/fs"
	"log/slog"
	"path"

	ferrors "git.home.luguber.info/inful/blogsmith/internal/foundation/errors"
	"git.home.luguber.info/inful/blogsmith/internal/logfields"
)

// Renderer renders a fragment kind with bindings. *Store implements it.
type Renderer interface {
	Render(kind Kind, b Bindings) (string, error)
}

// Store holds the fragments of one theme. It is read-only after Load.
type Store struct {
	fragments map[Kind]*Fragment
}

// Load reads every required fragment from dir within fsys.
func Load(fsys fs.FS, dir string) (*Store, error) {
	raw := make(map[Kind]string, len(schemas))
	for _, kind := range Kinds() {
		p := path.Join(dir, kind.FileName())
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, &MissingTemplateError{Name: string(kind), Path: p}
			}
			return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "read template fragment").
				WithContext("path", p).
				Build()
		}
		raw[kind] = string(data)
		slog.Debug("Loaded template fragment", logfields.Fragment(string(kind)), logfields.Path(p))
	}
	return NewStore(raw)
}

// NewStore parses fragments from memory. Every kind returned by Kinds must be present.
func NewStore(raw map[Kind]string) (*Store, error) {
	s := &Store{fragments: make(map[Kind]*Fragment, len(raw))}
	for _, kind := range Kinds() {
		text, ok := raw[kind]
		if !ok {
			return nil, &MissingTemplateError{Name: string(kind)}
		}
		f, err := ParseFragment(kind, text)
		if err != nil {
			return nil, err
		}
		s.fragments[kind] = f
	}
	return s, nil
}

// Fragment returns the parsed fragment for kind.
func (s *Store) Fragment(kind Kind) (*Fragment, bool) {
	f, ok := s.fragments[kind]
	return f, ok
}

// Render renders the named fragment with b.
func (s *Store) Render(kind Kind, b Bindings) (string, error) {
	f, ok := s.fragments[kind]
	if !ok {
		return "", &MissingTemplateError{Name: string(kind)}
	}
	return f.Render(b)
}
