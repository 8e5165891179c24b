package site

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/blogsmith/internal/foundation/errors"
	"git.home.luguber.info/inful/blogsmith/internal/post"
)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func TestArchives_GroupsByMonthInOrder(t *testing.T) {
	posts := post.Sorted([]*post.Post{
		{Slug: "jan", Date: day(2024, time.January, 3)},
		{Slug: "feb-b", Date: day(2024, time.February, 1)},
		{Slug: "feb-a", Date: day(2024, time.February, 1)},
		{Slug: "dec", Date: day(2023, time.December, 31)},
	})

	archives := Archives(posts)
	require.Len(t, archives, 3)
	require.Equal(t, "2024/02", archives[0].Key())
	require.Equal(t, "February 2024", archives[0].Title())
	require.Equal(t, "feb-a", archives[0].Posts[0].Slug)
	require.Equal(t, "feb-b", archives[0].Posts[1].Slug)
	require.Equal(t, "2024/01", archives[1].Key())
	require.Equal(t, "2023/12", archives[2].Key())
}

func TestMissingStaticPageError(t *testing.T) {
	err := &MissingStaticPageError{Name: "about", Path: "pages/about.html"}
	require.EqualError(t, err, `static page "about" not found at pages/about.html`)
	require.Equal(t, ferrors.CategoryNotFound, ferrors.GetCategory(err))
}

func TestOutputPaths(t *testing.T) {
	require.Equal(t, "posts/hello-world.html", PostPath("hello-world"))
	require.Equal(t, "tags/go.html", TagPath("go"))
	require.Equal(t, "archive/2024/02.html", ArchivePath(&Archive{Year: 2024, Month: time.February}))
	require.Equal(t, "about.html", PagePath("about"))
}
