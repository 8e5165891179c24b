package post

import (
	"errors"
	"fmt"
	"slices"

	"git.home.luguber.info/inful/blogsmith/internal/markdown"
	"git.home.luguber.info/inful/blogsmith/internal/slug"
)

// Builder turns Markdown sources into Posts, assigning slugs and tags as it
// goes. One Builder serves one build.
type Builder struct {
	conv         markdown.Converter
	registry     *slug.Registry
	tags         *TagIndex
	excerptWords int
}

// NewBuilder returns a Builder that claims slugs from registry.
func NewBuilder(conv markdown.Converter, registry *slug.Registry, excerptWords int) *Builder {
	return &Builder{
		conv:         conv,
		registry:     registry,
		tags:         NewTagIndex(registry),
		excerptWords: excerptWords,
	}
}

// Tags exposes the tag index filled by Assign.
func (b *Builder) Tags() *TagIndex { return b.tags }

// Parse converts a source into a Draft using the builder's converter.
func (b *Builder) Parse(sourcePath string, raw []byte, info FileInfo) (*Draft, error) {
	return Parse(sourcePath, raw, info, b.conv, WithExcerptWords(b.excerptWords))
}

// Assign gives a Draft its slug and registers its tags. Slug collisions are
// returned as *slug.DuplicateSlugError.
func (b *Builder) Assign(d *Draft) (*Post, error) {
	s, err := b.registry.Assign(slug.NamespacePost, d.Title, d.SourcePath)
	if err != nil {
		if errors.Is(err, slug.ErrEmptySlug) {
			return nil, &InvalidPostError{Path: d.SourcePath, Reason: fmt.Sprintf("title %q has no usable slug", d.Title), Err: err}
		}
		return nil, err
	}

	names := make(map[string]string, len(d.TagNames))
	for _, name := range d.TagNames {
		ts, display, err := b.tags.Resolve(name, d.SourcePath)
		if err != nil {
			if errors.Is(err, slug.ErrEmptySlug) {
				return nil, &InvalidPostError{Path: d.SourcePath, Reason: fmt.Sprintf("tag %q has no usable slug", name), Err: err}
			}
			return nil, err
		}
		names[ts] = display
	}

	p := &Post{
		Title:       d.Title,
		Slug:        s,
		Date:        d.Date,
		BodyHTML:    d.BodyHTML,
		Excerpt:     d.Excerpt,
		SourcePath:  d.SourcePath,
		Fingerprint: d.Fingerprint,
		Meta:        d.Meta,
	}
	for ts := range names {
		p.Tags = append(p.Tags, ts)
	}
	slices.Sort(p.Tags)
	for _, ts := range p.Tags {
		p.TagNames = append(p.TagNames, names[ts])
	}
	b.tags.Add(p)
	return p, nil
}

// Build parses and assigns in one step.
func (b *Builder) Build(sourcePath string, raw []byte, info FileInfo) (*Post, error) {
	d, err := b.Parse(sourcePath, raw, info)
	if err != nil {
		return nil, err
	}
	return b.Assign(d)
}
