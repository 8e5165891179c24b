package post

import (
	"cmp"
	"slices"
	"sync"

	"git.home.luguber.info/inful/blogsmith/internal/slug"
)

// Tag groups the posts that share a tag slug.
type Tag struct {
	Name  string
	Slug  string
	Posts []*Post
}

// TagIndex collects tags across a build. Tags whose names normalise to the
// same slug are one tag; the first name seen is its display name.
type TagIndex struct {
	mu       sync.Mutex
	registry *slug.Registry
	tags     map[string]*Tag
}

// NewTagIndex returns an index that claims tag slugs from registry.
func NewTagIndex(registry *slug.Registry) *TagIndex {
	return &TagIndex{registry: registry, tags: make(map[string]*Tag)}
}

// Resolve returns the slug and display name for a tag name, registering the
// tag on first use.
func (ix *TagIndex) Resolve(name, source string) (string, string, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if t, ok := ix.tags[ix.registry.Normalize(name)]; ok {
		return t.Slug, t.Name, nil
	}
	s, err := ix.registry.Assign(slug.NamespaceTag, name, source)
	if err != nil {
		return "", "", err
	}
	ix.tags[s] = &Tag{Name: name, Slug: s}
	return s, name, nil
}

// Add records p as a member of each of its tags. Tags must have been
// resolved first.
func (ix *TagIndex) Add(p *Post) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	for _, s := range p.Tags {
		if t, ok := ix.tags[s]; ok {
			t.Posts = append(t.Posts, p)
		}
	}
}

// Tags returns every tag ordered by slug, members newest first.
func (ix *TagIndex) Tags() []*Tag {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	out := make([]*Tag, 0, len(ix.tags))
	for _, t := range ix.tags {
		cp := &Tag{Name: t.Name, Slug: t.Slug, Posts: Sorted(t.Posts)}
		out = append(out, cp)
	}
	slices.SortFunc(out, func(a, b *Tag) int { return cmp.Compare(a.Slug, b.Slug) })
	return out
}

// Len reports the number of distinct tags.
func (ix *TagIndex) Len() int {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return len(ix.tags)
}
