package slug

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	ferrors "git.home.luguber.info/inful/blogsmith/internal/foundation/errors"
)

// Namespace scopes slugs by the kind of page they name.
type Namespace string

const (
	NamespacePost Namespace = "post"
	NamespaceTag  Namespace = "tag"
	NamespacePage Namespace = "page"
	// NamespaceURL is the namespace reported for output path collisions.
	NamespaceURL Namespace = "url"
)

// Mode selects whether namespaces share one key space.
type Mode string

const (
	// ModeSeparate keeps post, tag and page slugs in independent key spaces.
	ModeSeparate Mode = "separate"
	// ModeShared puts every namespace in one key space.
	ModeShared Mode = "shared"
)

// ErrEmptySlug is returned when a candidate normalises to nothing.
var ErrEmptySlug = errors.New("candidate text produces an empty slug")

// DuplicateSlugError reports a slug (or output path) that was already taken.
type DuplicateSlugError struct {
	Slug              string
	Namespace         Namespace
	ExistingNamespace Namespace
	Existing          string // source that registered the slug first
	Conflicting       string // source that attempted to register it again
}

func (e *DuplicateSlugError) Error() string {
	if e.ExistingNamespace != "" && e.ExistingNamespace != e.Namespace {
		return fmt.Sprintf("duplicate %s slug %q: %s conflicts with %s %s",
			e.Namespace, e.Slug, e.Conflicting, e.ExistingNamespace, e.Existing)
	}
	return fmt.Sprintf("duplicate %s slug %q: %s conflicts with %s", e.Namespace, e.Slug, e.Conflicting, e.Existing)
}

// Category routes the error to the slug category.
func (e *DuplicateSlugError) Category() ferrors.ErrorCategory { return ferrors.CategorySlug }

type entry struct {
	ns     Namespace
	source string
}

// Registry hands out unique slugs for one build. It is safe for concurrent
// use, though assignment order determines which source is reported as the
// original owner, so builds call it from a single goroutine in a stable order.
type Registry struct {
	mu     sync.Mutex
	mode   Mode
	maxLen int
	spaces map[Namespace]map[string]entry
	paths  map[string]string
}

// Option configures a Registry.
type Option func(*Registry)

// WithMaxLength caps every assigned slug at n bytes (0 disables the cap).
func WithMaxLength(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.maxLen = n
		}
	}
}

// NewRegistry creates an empty registry. Unknown modes behave as ModeSeparate.
func NewRegistry(mode Mode, opts ...Option) *Registry {
	if mode != ModeShared {
		mode = ModeSeparate
	}
	r := &Registry{
		mode:   mode,
		spaces: make(map[Namespace]map[string]entry),
		paths:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Normalize applies the registry's length cap to Normalize without
// registering anything.
func (r *Registry) Normalize(candidate string) string {
	return Normalize(candidate, r.maxLen)
}

// Mode reports the namespace mode.
func (r *Registry) Mode() Mode { return r.mode }

func (r *Registry) space(ns Namespace) map[string]entry {
	key := ns
	if r.mode == ModeShared {
		key = ""
	}
	s, ok := r.spaces[key]
	if !ok {
		s = make(map[string]entry)
		r.spaces[key] = s
	}
	return s
}

// Assign normalises candidate and registers it under ns on behalf of source.
func (r *Registry) Assign(ns Namespace, candidate, source string) (string, error) {
	s := r.Normalize(candidate)
	if s == "" {
		return "", fmt.Errorf("%w: %q", ErrEmptySlug, candidate)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	space := r.space(ns)
	if prev, taken := space[s]; taken {
		return "", &DuplicateSlugError{
			Slug:              s,
			Namespace:         ns,
			ExistingNamespace: prev.ns,
			Existing:          prev.source,
			Conflicting:       source,
		}
	}
	space[s] = entry{ns: ns, source: source}
	return s, nil
}

// Lookup returns the source that owns slug in ns.
func (r *Registry) Lookup(ns Namespace, slug string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.space(ns)[slug]
	if !ok || e.ns != ns {
		return "", false
	}
	return e.source, true
}

// Slugs lists the slugs registered under ns in lexical order.
func (r *Registry) Slugs(ns Namespace) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for s, e := range r.space(ns) {
		if e.ns == ns {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// ClaimPath reserves an output path for source. Output paths form a single
// namespace regardless of Mode, which catches collisions between kinds, such
// as a static page that would overwrite the index.
func (r *Registry) ClaimPath(path, source string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, taken := r.paths[path]; taken {
		return &DuplicateSlugError{
			Slug:        path,
			Namespace:   NamespaceURL,
			Existing:    prev,
			Conflicting: source,
		}
	}
	r.paths[path] = source
	return nil
}
