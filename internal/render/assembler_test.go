package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogsmith/internal/config"
	"git.home.luguber.info/inful/blogsmith/internal/post"
	"git.home.luguber.info/inful/blogsmith/internal/site"
	"git.home.luguber.info/inful/blogsmith/internal/templates"
)

func plainTheme() map[templates.Kind]string {
	return map[templates.Kind]string{
		templates.Header:            "[nav {{ nav_links }}|{{ tag_links }}|{{ archive_links }}]",
		templates.Body:              "<title>{{ page_title }}</title>{{ header }}<main>{{ content }}</main>",
		templates.Card:              "<article><h1>{{ title }}</h1><time>{{ date }}</time>{{ tags }}{{ content }}</article>",
		templates.PostListTitleCard: "<h2>{{ title }} ({{ count }})</h2>",
		templates.PostListCard:      "<li><a href=\"{{ url }}\">{{ title }}</a> {{ excerpt }}</li>\n",
	}
}

func newContext(t *testing.T, theme map[templates.Kind]string, posts ...*post.Post) *site.Context {
	t.Helper()
	store, err := templates.NewStore(theme)
	require.NoError(t, err)
	return &site.Context{
		Config:    config.Default(),
		Templates: store,
		Posts:     post.Sorted(posts),
	}
}

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func TestIndexPage_NewestFirst(t *testing.T) {
	ctx := newContext(t, plainTheme(),
		&post.Post{Title: "Hello World", Slug: "hello-world", Date: day(2024, 1, 1)},
		&post.Post{Title: "Second Post", Slug: "second-post", Date: day(2024, 2, 1)},
	)
	a, err := NewAssembler(ctx)
	require.NoError(t, err)

	page, err := a.IndexPage()
	require.NoError(t, err)
	require.Equal(t, "index.html", page.Path)
	require.Equal(t, KindIndex, page.Kind)
	require.Contains(t, page.HTML, "<h2>Latest posts (2)</h2>")

	second := strings.Index(page.HTML, "Second Post")
	hello := strings.Index(page.HTML, "Hello World")
	require.Positive(t, second)
	require.Less(t, second, hello)
	require.Contains(t, page.HTML, `<a href="/posts/second-post.html">`)
}

func TestIndexPage_TiesOrderedBySlug(t *testing.T) {
	same := day(2024, 3, 3)
	ctx := newContext(t, plainTheme(),
		&post.Post{Title: "Zebra", Slug: "zebra", Date: same},
		&post.Post{Title: "Apple", Slug: "apple", Date: same},
		&post.Post{Title: "Mango", Slug: "mango", Date: same},
	)
	a, err := NewAssembler(ctx)
	require.NoError(t, err)
	page, err := a.IndexPage()
	require.NoError(t, err)

	apple := strings.Index(page.HTML, "Apple")
	mango := strings.Index(page.HTML, "Mango")
	zebra := strings.Index(page.HTML, "Zebra")
	require.True(t, apple < mango && mango < zebra, page.HTML)
}

func TestPostPage_EscapesMetadataButNotBody(t *testing.T) {
	p := &post.Post{
		Title:    "Fish & <Chips>",
		Slug:     "fish-chips",
		Date:     day(2024, 2, 1),
		Tags:     []string{"food"},
		TagNames: []string{"Food & Drink"},
		BodyHTML: "<p>raw <b>html</b></p>",
	}
	a, err := NewAssembler(newContext(t, plainTheme(), p))
	require.NoError(t, err)

	page, err := a.PostPage(p)
	require.NoError(t, err)
	require.Equal(t, "posts/fish-chips.html", page.Path)
	require.Contains(t, page.HTML, "<title>Fish &amp; &lt;Chips&gt;</title>")
	require.Contains(t, page.HTML, "<h1>Fish &amp; &lt;Chips&gt;</h1>")
	require.Contains(t, page.HTML, "<time>February 01 2024</time>")
	require.Contains(t, page.HTML, `<a href="/tags/food.html">Food &amp; Drink</a>`)
	require.Contains(t, page.HTML, "<p>raw <b>html</b></p>")
}

func TestStaticPage_PassThrough(t *testing.T) {
	ctx := newContext(t, plainTheme())
	ctx.Pages = []*site.StaticPage{{Title: "About", Slug: "about", HTML: "<p>{{ not_a_slot }}</p>"}}
	a, err := NewAssembler(ctx)
	require.NoError(t, err)

	page, err := a.StaticPage(ctx.Pages[0])
	require.NoError(t, err)
	require.Equal(t, "about.html", page.Path)
	require.Contains(t, page.HTML, "<main><p>{{ not_a_slot }}</p></main>")
	require.Contains(t, page.HTML, `<a class="nav-link" href="/about.html">About</a>`)
}

func TestAll_SortedByPath(t *testing.T) {
	p1 := &post.Post{Title: "A", Slug: "a", Date: day(2024, 1, 5), Tags: []string{"go"}, TagNames: []string{"Go"}}
	p2 := &post.Post{Title: "B", Slug: "b", Date: day(2023, 12, 5)}
	ctx := newContext(t, plainTheme(), p1, p2)
	ctx.Tags = []*post.Tag{{Name: "Go", Slug: "go", Posts: []*post.Post{p1}}}
	ctx.Archives = site.Archives(ctx.Posts)
	ctx.Pages = []*site.StaticPage{{Title: "About", Slug: "about", HTML: "<p>hi</p>"}}

	a, err := NewAssembler(ctx)
	require.NoError(t, err)
	pages, err := a.All()
	require.NoError(t, err)

	var paths []string
	for _, p := range pages {
		paths = append(paths, p.Path)
	}
	require.Equal(t, []string{
		"about.html",
		"archive/2023/12.html",
		"archive/2024/01.html",
		"index.html",
		"posts/a.html",
		"posts/b.html",
		"tags/go.html",
	}, paths)

	for _, p := range pages {
		require.Contains(t, p.HTML, `<a class="dropdown-item" href="/tags/go.html">Go</a>`)
		require.Contains(t, p.HTML, `<a class="dropdown-item" href="/archive/2024/01.html">January 2024</a>`)
	}
}

type failOn struct {
	templates.Renderer
	kind templates.Kind
}

func (f failOn) Render(kind templates.Kind, b templates.Bindings) (string, error) {
	if kind == f.kind {
		return "", &templates.UnresolvedPlaceholderError{Fragment: kind, Placeholder: "title", Unbound: true}
	}
	return f.Renderer.Render(kind, b)
}

func TestAll_FailsWithoutPartialOutput(t *testing.T) {
	ctx := newContext(t, plainTheme(), &post.Post{Title: "A", Slug: "a", Date: day(2024, 1, 1)})
	ctx.Templates = failOn{Renderer: ctx.Templates, kind: templates.Card}
	a, err := NewAssembler(ctx)
	require.NoError(t, err)

	pages, err := a.All()
	var unresolved *templates.UnresolvedPlaceholderError
	require.ErrorAs(t, err, &unresolved)
	require.Nil(t, pages)
}

func TestNewAssembler_HeaderErrorPropagates(t *testing.T) {
	ctx := newContext(t, plainTheme())
	ctx.Templates = failOn{Renderer: ctx.Templates, kind: templates.Header}
	_, err := NewAssembler(ctx)
	var unresolved *templates.UnresolvedPlaceholderError
	require.ErrorAs(t, err, &unresolved)
	require.Equal(t, templates.Header, unresolved.Fragment)
}

func TestNewAssembler_BaseURL(t *testing.T) {
	ctx := newContext(t, plainTheme(), &post.Post{Title: "A", Slug: "a", Date: day(2024, 1, 1)})
	ctx.Config.Site.BaseURL = "https://blog.example.com/"
	a, err := NewAssembler(ctx)
	require.NoError(t, err)
	require.Equal(t, "https://blog.example.com/posts/a.html", a.URL(site.PostPath("a")))
}
