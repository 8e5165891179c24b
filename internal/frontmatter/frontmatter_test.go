package frontmatter

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\ntitle: Hello\n---\n# Title\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: Hello\n"), fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	_, _, had, err := Split([]byte("---\ntitle: Hello\n# Title\n"))
	require.False(t, had)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestSplit_CRLF(t *testing.T) {
	fm, body, had, err := Split([]byte("---\r\ntitle: x\r\n---\r\nbody\r\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: x\r\n"), fm)
	require.Equal(t, []byte("body\r\n"), body)
}

func TestSplit_EmptyBlockAndClosingAtEOF(t *testing.T) {
	fm, body, had, err := Split([]byte("---\n---\nbody\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Empty(t, fm)
	require.Equal(t, []byte("body\n"), body)

	fm, body, had, err = Split([]byte("---\ntitle: x\n---"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: x\n"), fm)
	require.Empty(t, body)
}

func TestDecode_Fields(t *testing.T) {
	m, err := Decode([]byte("title: ' Hello World '\ndate: 2024-01-01\ntags: [go, Web Dev]\nsummary: short\nlayout: ignored\n"))
	require.NoError(t, err)
	require.Equal(t, "Hello World", m.Title)
	require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), m.Date.Time)
	require.Equal(t, TagList{"go", "Web Dev"}, m.Tags)
	require.Equal(t, "short", m.Summary)
}

func TestDecode_DateForms(t *testing.T) {
	cases := map[string]time.Time{
		"date: 2024/02/01":             time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		"date: \"2024-02-01\"":         time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		"date: 2024-02-01T10:30:00Z":   time.Date(2024, 2, 1, 10, 30, 0, 0, time.UTC),
		"date: 2024-02-01T10:30:00+02:00": time.Date(2024, 2, 1, 8, 30, 0, 0, time.UTC),
	}
	for in, want := range cases {
		m, err := Decode([]byte(in))
		require.NoError(t, err, in)
		require.True(t, want.Equal(m.Date.Time), "%s: got %s", in, m.Date.Time)
	}
}

func TestDecode_CommaSeparatedTags(t *testing.T) {
	m, err := Decode([]byte("tags: go, testing , ,yaml"))
	require.NoError(t, err)
	require.Equal(t, TagList{"go", "testing", "yaml"}, m.Tags)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode([]byte("date: next tuesday"))
	require.ErrorContains(t, err, "unrecognised date")

	_, err = Decode([]byte("title: [unterminated"))
	require.Error(t, err)

	_, err = Decode([]byte("tags: {a: b}"))
	require.ErrorContains(t, err, "tags must be")
}

func TestDecode_Empty(t *testing.T) {
	m, err := Decode(nil)
	require.NoError(t, err)
	require.True(t, m.Date.IsZero())
	require.Empty(t, m.Title)
}
