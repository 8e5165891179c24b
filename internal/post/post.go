// Package post builds the Post entities of a blog from Markdown sources.
package post

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	ferrors "git.home.luguber.info/inful/blogsmith/internal/foundation/errors"
)

// FileInfo carries the file system facts a post falls back on when its source
// declares no metadata.
type FileInfo struct {
	Name    string
	ModTime time.Time
}

// Metadata is where a post's title, date and tags came from. It is either
// Explicit or Derived and is resolved once, when the post is parsed.
type Metadata interface {
	isMetadata()
}

// Explicit metadata was declared by the source, as front matter or as a
// legacy header. Zero fields were not declared.
type Explicit struct {
	Title   string
	Date    time.Time
	Tags    []string
	Summary string
	Format  string
}

// Derived metadata was inferred from the file name and modification time.
type Derived struct {
	FileName string
	ModTime  time.Time
}

func (Explicit) isMetadata() {}
func (Derived) isMetadata()  {}

// Post is one rendered article. A Post is never modified after the builder
// returns it.
type Post struct {
	Title string
	Slug  string
	Date  time.Time
	// Tags holds tag slugs, sorted and unique; TagNames holds the matching
	// display names.
	Tags        []string
	TagNames    []string
	BodyHTML    string
	Excerpt     string
	SourcePath  string
	Fingerprint string
	Meta        Metadata
}

// InvalidPostError reports a source that cannot become a Post.
type InvalidPostError struct {
	Path   string
	Reason string
	Err    error
}

func (e *InvalidPostError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid post %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid post %s: %s", e.Path, e.Reason)
}

func (e *InvalidPostError) Unwrap() error { return e.Err }

// Category routes the error to the content category.
func (e *InvalidPostError) Category() ferrors.ErrorCategory { return ferrors.CategoryContent }

// Compare orders posts newest first, breaking ties by ascending slug.
func Compare(a, b *Post) int {
	if c := b.Date.Compare(a.Date); c != 0 {
		return c
	}
	return cmp.Compare(a.Slug, b.Slug)
}

// Sort orders posts in place with Compare.
func Sort(posts []*Post) {
	slices.SortFunc(posts, Compare)
}

// Sorted returns a sorted copy of posts.
func Sorted(posts []*Post) []*Post {
	out := slices.Clone(posts)
	Sort(out)
	return out
}
