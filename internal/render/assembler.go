// Package render composes complete HTML documents from theme fragments.
//
// Every page nests the same way: the header fragment, rendered once per
// build, is bound into the body fragment together with the page content.
// Post pages wrap the post in the card fragment; listing pages render the
// post_list_title_card fragment once followed by one post_list_card per post.
package render

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/blogsmith/internal/post"
	"git.home.luguber.info/inful/blogsmith/internal/site"
	"git.home.luguber.info/inful/blogsmith/internal/templates"
)

// Page kinds.
const (
	KindIndex   = "index"
	KindPost    = "post"
	KindTag     = "tag"
	KindArchive = "archive"
	KindStatic  = "page"
)

// Page is one rendered output document.
type Page struct {
	Path string
	Kind string
	HTML string
}

// Assembler renders the pages of one build.
type Assembler struct {
	ctx    *site.Context
	base   string
	header string
}

// NewAssembler renders the site header and returns an Assembler for ctx.
func NewAssembler(ctx *site.Context) (*Assembler, error) {
	a := &Assembler{
		ctx:  ctx,
		base: strings.TrimSuffix(ctx.Config.Site.BaseURL, "/"),
	}
	header, err := ctx.Templates.Render(templates.Header, templates.Bindings{
		"site_title":    html.EscapeString(ctx.Config.Site.Title),
		"base_url":      a.base,
		"nav_links":     a.navLinks(),
		"tag_links":     a.tagLinks(),
		"archive_links": a.archiveLinks(),
	})
	if err != nil {
		return nil, err
	}
	a.header = header
	return a, nil
}

// URL returns the link to an output path.
func (a *Assembler) URL(path string) string { return a.base + "/" + path }

// PostPage renders a single post.
func (a *Assembler) PostPage(p *post.Post) (Page, error) {
	path := site.PostPath(p.Slug)
	card, err := a.ctx.Templates.Render(templates.Card, templates.Bindings{
		"title":   html.EscapeString(p.Title),
		"slug":    p.Slug,
		"url":     a.URL(path),
		"date":    a.date(p),
		"tags":    a.postTags(p),
		"content": p.BodyHTML,
	})
	if err != nil {
		return Page{}, err
	}
	return a.page(KindPost, path, p.Title, card)
}

// IndexPage renders the listing of every post.
func (a *Assembler) IndexPage() (Page, error) {
	title := a.ctx.Config.Site.IndexTitle
	return a.listing(KindIndex, site.IndexPath, title, a.ctx.Posts)
}

// TagPage renders the listing of one tag.
func (a *Assembler) TagPage(t *post.Tag) (Page, error) {
	return a.listing(KindTag, site.TagPath(t.Slug), "Tag: "+t.Name, t.Posts)
}

// ArchivePage renders the listing of one month.
func (a *Assembler) ArchivePage(ar *site.Archive) (Page, error) {
	return a.listing(KindArchive, site.ArchivePath(ar), ar.Title(), ar.Posts)
}

// StaticPage wraps a static page's own HTML in the site chrome.
func (a *Assembler) StaticPage(sp *site.StaticPage) (Page, error) {
	return a.page(KindStatic, site.PagePath(sp.Slug), sp.Title, sp.HTML)
}

// All renders every page of the site ordered by output path. Either every
// page renders or the first error is returned with no pages.
func (a *Assembler) All() ([]Page, error) {
	var pages []Page
	add := func(p Page, err error) error {
		if err != nil {
			return err
		}
		pages = append(pages, p)
		return nil
	}

	if err := add(a.IndexPage()); err != nil {
		return nil, err
	}
	for _, p := range a.ctx.Posts {
		if err := add(a.PostPage(p)); err != nil {
			return nil, err
		}
	}
	for _, t := range a.ctx.Tags {
		if err := add(a.TagPage(t)); err != nil {
			return nil, err
		}
	}
	for _, ar := range a.ctx.Archives {
		if err := add(a.ArchivePage(ar)); err != nil {
			return nil, err
		}
	}
	for _, sp := range a.ctx.Pages {
		if err := add(a.StaticPage(sp)); err != nil {
			return nil, err
		}
	}

	slices.SortFunc(pages, func(x, y Page) int { return cmp.Compare(x.Path, y.Path) })
	return pages, nil
}

func (a *Assembler) listing(kind, path, title string, posts []*post.Post) (Page, error) {
	var b strings.Builder
	head, err := a.ctx.Templates.Render(templates.PostListTitleCard, templates.Bindings{
		"title": html.EscapeString(title),
		"count": strconv.Itoa(len(posts)),
	})
	if err != nil {
		return Page{}, err
	}
	b.WriteString(head)

	for _, p := range posts {
		card, err := a.ctx.Templates.Render(templates.PostListCard, templates.Bindings{
			"title":   html.EscapeString(p.Title),
			"slug":    p.Slug,
			"url":     a.URL(site.PostPath(p.Slug)),
			"date":    a.date(p),
			"excerpt": html.EscapeString(p.Excerpt),
			"tags":    a.postTags(p),
		})
		if err != nil {
			return Page{}, err
		}
		b.WriteString(card)
	}
	return a.page(kind, path, title, b.String())
}

func (a *Assembler) page(kind, path, title, content string) (Page, error) {
	doc, err := a.ctx.Templates.Render(templates.Body, templates.Bindings{
		"page_title": html.EscapeString(title),
		"site_title": html.EscapeString(a.ctx.Config.Site.Title),
		"base_url":   a.base,
		"header":     a.header,
		"content":    content,
	})
	if err != nil {
		return Page{}, err
	}
	return Page{Path: path, Kind: kind, HTML: doc}, nil
}

func (a *Assembler) date(p *post.Post) string {
	return html.EscapeString(p.Date.Format(a.ctx.Config.Site.DateFormat))
}

func (a *Assembler) postTags(p *post.Post) string {
	var b strings.Builder
	for i, s := range p.Tags {
		fmt.Fprintf(&b, `<li class="tag"><a href="%s">%s</a></li>`, a.URL(site.TagPath(s)), html.EscapeString(p.TagNames[i]))
	}
	return b.String()
}

func (a *Assembler) navLinks() string {
	var b strings.Builder
	for _, sp := range a.ctx.Pages {
		fmt.Fprintf(&b, `<li class="nav-item"><a class="nav-link" href="%s">%s</a></li>`, a.URL(site.PagePath(sp.Slug)), html.EscapeString(sp.Title))
	}
	return b.String()
}

func (a *Assembler) tagLinks() string {
	var b strings.Builder
	for _, t := range a.ctx.Tags {
		fmt.Fprintf(&b, `<a class="dropdown-item" href="%s">%s</a>`, a.URL(site.TagPath(t.Slug)), html.EscapeString(t.Name))
	}
	return b.String()
}

func (a *Assembler) archiveLinks() string {
	var b strings.Builder
	for _, ar := range a.ctx.Archives {
		fmt.Fprintf(&b, `<a class="dropdown-item" href="%s">%s</a>`, a.URL(site.ArchivePath(ar)), ar.Title())
	}
	return b.String()
}
