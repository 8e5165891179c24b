package slug

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "simple title", input: "Hello World", want: "hello-world"},
		{name: "whitespace runs", input: "  Second \t  Post\n", want: "second-post"},
		{name: "punctuation dropped", input: "Don't Panic!", want: "dont-panic"},
		{name: "separators collapse", input: "go -- _ tips", want: "go-tips"},
		{name: "accents folded", input: "Café Crème", want: "cafe-creme"},
		{name: "digits kept", input: "Top 10 of 2024", want: "top-10-of-2024"},
		{name: "symbols only", input: "!!! ???", want: ""},
		{name: "non latin dropped", input: "日本 go", want: "go"},
		{name: "capped", input: "A Very Long Title Indeed", maxLen: 14, want: "a-very-long-ti"},
		{name: "cap trims separator", input: "Hello World Again", maxLen: 6, want: "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Normalize(tt.input, tt.maxLen))
		})
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	titles := []string{"Hello World", "Second Post", "Ünïcödé Tïtle", "C++ & Go"}
	for _, title := range titles {
		require.Equal(t, Normalize(title, 0), Normalize(title, 0), title)
	}
}

func TestRegistry_AssignUnique(t *testing.T) {
	r := NewRegistry(ModeSeparate)

	a, err := r.Assign(NamespacePost, "Hello World", "posts/hello.md")
	require.NoError(t, err)
	require.Equal(t, "hello-world", a)

	b, err := r.Assign(NamespacePost, "Second Post", "posts/second.md")
	require.NoError(t, err)
	require.Equal(t, "second-post", b)

	require.Equal(t, []string{"hello-world", "second-post"}, r.Slugs(NamespacePost))
	src, ok := r.Lookup(NamespacePost, "hello-world")
	require.True(t, ok)
	require.Equal(t, "posts/hello.md", src)
}

func TestRegistry_DuplicateIsError(t *testing.T) {
	r := NewRegistry(ModeSeparate)

	_, err := r.Assign(NamespacePost, "Hello World", "posts/a.md")
	require.NoError(t, err)

	_, err = r.Assign(NamespacePost, "hello,   world!", "posts/b.md")
	var dup *DuplicateSlugError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, "hello-world", dup.Slug)
	require.Equal(t, NamespacePost, dup.Namespace)
	require.Equal(t, "posts/a.md", dup.Existing)
	require.Equal(t, "posts/b.md", dup.Conflicting)
	require.Contains(t, err.Error(), "posts/b.md conflicts with posts/a.md")

	// The first owner is kept; nothing was renamed.
	require.Equal(t, []string{"hello-world"}, r.Slugs(NamespacePost))
}

func TestRegistry_NamespaceModes(t *testing.T) {
	separate := NewRegistry(ModeSeparate)
	_, err := separate.Assign(NamespacePost, "Go", "posts/go.md")
	require.NoError(t, err)
	_, err = separate.Assign(NamespaceTag, "go", "tag go")
	require.NoError(t, err)

	shared := NewRegistry(ModeShared)
	_, err = shared.Assign(NamespacePost, "Go", "posts/go.md")
	require.NoError(t, err)
	_, err = shared.Assign(NamespaceTag, "go", "tag go")
	var dup *DuplicateSlugError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, NamespaceTag, dup.Namespace)
	require.Equal(t, NamespacePost, dup.ExistingNamespace)
	require.Contains(t, err.Error(), "conflicts with post posts/go.md")

	_, ok := shared.Lookup(NamespaceTag, "go")
	require.False(t, ok)
}

func TestRegistry_EmptySlug(t *testing.T) {
	r := NewRegistry(ModeSeparate)
	_, err := r.Assign(NamespacePost, "???", "posts/q.md")
	require.ErrorIs(t, err, ErrEmptySlug)
}

func TestRegistry_MaxLength(t *testing.T) {
	r := NewRegistry(ModeSeparate, WithMaxLength(5))
	s, err := r.Assign(NamespacePost, "Hello World", "a")
	require.NoError(t, err)
	require.Equal(t, "hello", s)

	_, err = r.Assign(NamespacePost, "Hello There", "b")
	require.Error(t, err, "truncation must not hide collisions")
}

func TestRegistry_ClaimPath(t *testing.T) {
	r := NewRegistry(ModeSeparate)
	require.NoError(t, r.ClaimPath("index.html", "index"))
	require.NoError(t, r.ClaimPath("posts/index.html", "post index"))

	err := r.ClaimPath("index.html", "pages/index.html")
	var dup *DuplicateSlugError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, NamespaceURL, dup.Namespace)
	require.Equal(t, "index", dup.Existing)
}
