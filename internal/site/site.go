// Package site holds the state of one build: configuration, templates, posts,
// tags, static pages and month archives.
package site

import (
	"fmt"
	"time"

	"git.home.luguber.info/inful/blogsmith/internal/config"
	ferrors "git.home.luguber.info/inful/blogsmith/internal/foundation/errors"
	"git.home.luguber.info/inful/blogsmith/internal/post"
	"git.home.luguber.info/inful/blogsmith/internal/templates"
)

// Context is created at the start of a build and discarded at its end. It is
// passed to each step explicitly and is read-only once populated.
type Context struct {
	Config    *config.Config
	Templates templates.Renderer
	// Posts are ordered newest first, ties by slug.
	Posts []*post.Post
	// Tags are ordered by slug.
	Tags []*post.Tag
	// Pages are ordered by slug.
	Pages []*StaticPage
	// Archives are ordered newest month first.
	Archives []*Archive
}

// StaticPage is a hand written HTML page wrapped in the site chrome.
type StaticPage struct {
	Title      string
	Slug       string
	HTML       string
	SourcePath string
}

// Archive lists the posts of one calendar month.
type Archive struct {
	Year  int
	Month time.Month
	Posts []*post.Post
}

// Key is the archive's "yyyy/mm" path segment.
func (a *Archive) Key() string { return fmt.Sprintf("%04d/%02d", a.Year, int(a.Month)) }

// Title is the human readable month, for example "February 2024".
func (a *Archive) Title() string { return fmt.Sprintf("%s %d", a.Month, a.Year) }

// MissingStaticPageError reports a configured static page whose source file
// does not exist.
type MissingStaticPageError struct {
	Name string
	Path string
}

func (e *MissingStaticPageError) Error() string {
	return fmt.Sprintf("static page %q not found at %s", e.Name, e.Path)
}

// Category routes the error to the not found category.
func (e *MissingStaticPageError) Category() ferrors.ErrorCategory { return ferrors.CategoryNotFound }

// Archives groups posts by the UTC year and month of their date. posts must
// already be sorted; each archive keeps that order.
func Archives(posts []*post.Post) []*Archive {
	var out []*Archive
	index := make(map[[2]int]*Archive)
	for _, p := range posts {
		d := p.Date.UTC()
		key := [2]int{d.Year(), int(d.Month())}
		a, ok := index[key]
		if !ok {
			a = &Archive{Year: d.Year(), Month: d.Month()}
			index[key] = a
			out = append(out, a)
		}
		a.Posts = append(a.Posts, p)
	}
	return out
}

// IndexPath is the output path of the post listing.
const IndexPath = "index.html"

// PostPath is the output path of a post.
func PostPath(slug string) string { return "posts/" + slug + ".html" }

// TagPath is the output path of a tag listing.
func TagPath(slug string) string { return "tags/" + slug + ".html" }

// ArchivePath is the output path of a month listing.
func ArchivePath(a *Archive) string { return "archive/" + a.Key() + ".html" }

// PagePath is the output path of a static page.
func PagePath(slug string) string { return slug + ".html" }
