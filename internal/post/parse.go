package post

import (
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"github.com/inful/mdfp"
	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/blogsmith/internal/markdown"
)

// DefaultExcerptWords is the excerpt length used when none is configured.
const DefaultExcerptWords = 40

const excerptEllipsis = "…"

// Draft is a parsed post that has not been given a slug yet.
type Draft struct {
	SourcePath  string
	Title       string
	Date        time.Time
	TagNames    []string
	BodyHTML    string
	Excerpt     string
	Fingerprint string
	Meta        Metadata
}

type parseOptions struct {
	excerptWords int
}

// ParseOption configures Parse.
type ParseOption func(*parseOptions)

// WithExcerptWords sets how many words of body text make up a generated
// excerpt. Values below one keep the default.
func WithExcerptWords(n int) ParseOption {
	return func(o *parseOptions) {
		if n > 0 {
			o.excerptWords = n
		}
	}
}

// Parse converts one Markdown source into a Draft, resolving its metadata.
func Parse(sourcePath string, raw []byte, info FileInfo, conv markdown.Converter, opts ...ParseOption) (*Draft, error) {
	o := parseOptions{excerptWords: DefaultExcerptWords}
	for _, opt := range opts {
		opt(&o)
	}

	doc, err := conv.Convert(raw)
	if err != nil {
		return nil, &InvalidPostError{Path: sourcePath, Reason: "markdown conversion failed", Err: err}
	}

	name := info.Name
	if name == "" {
		name = path.Base(sourcePath)
	}
	d := &Draft{
		SourcePath:  sourcePath,
		BodyHTML:    doc.HTML,
		Fingerprint: mdfp.CalculateFingerprintFromParts(strings.TrimSuffix(string(doc.FrontMatter), "\n"), string(doc.Body)),
	}

	var summary string
	if doc.Meta != nil {
		m := doc.Meta
		d.Meta = Explicit{
			Title:   m.Title,
			Date:    m.Date.Time,
			Tags:    []string(m.Tags),
			Summary: m.Summary,
			Format:  string(doc.Source),
		}
		d.Title = m.Title
		d.Date = m.Date.Time
		d.TagNames = []string(m.Tags)
		summary = m.Summary
	} else {
		d.Meta = Derived{FileName: name, ModTime: info.ModTime}
	}

	if d.Title == "" {
		d.Title = TitleFromFileName(name)
	}
	if d.Title == "" {
		return nil, &InvalidPostError{Path: sourcePath, Reason: "title cannot be derived"}
	}
	if d.Date.IsZero() {
		d.Date = info.ModTime.UTC()
	}

	if summary != "" {
		d.Excerpt = summary
	} else {
		excerpt, err := Excerpt(d.BodyHTML, o.excerptWords)
		if err != nil {
			return nil, &InvalidPostError{Path: sourcePath, Reason: "excerpt extraction failed", Err: err}
		}
		d.Excerpt = excerpt
	}
	return d, nil
}

// TitleFromFileName turns "my-first_post.md" into "My First Post".
func TitleFromFileName(name string) string {
	base := strings.TrimSuffix(path.Base(name), path.Ext(name))
	base = strings.Map(func(r rune) rune {
		if r == '-' || r == '_' {
			return ' '
		}
		return r
	}, base)
	words := strings.Fields(base)
	if len(words) == 0 {
		return ""
	}
	return cases.Title(language.Und).String(strings.Join(words, " "))
}

// Excerpt returns the first n words of the text content of an HTML fragment.
// Text inside script, style and pre elements is ignored.
func Excerpt(fragment string, n int) (string, error) {
	if n <= 0 {
		n = DefaultExcerptWords
	}
	z := html.NewTokenizer(strings.NewReader(fragment))
	var text strings.Builder
	skip := 0
	for done := false; !done; {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return "", err
			}
			done = true
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			tt := z.Token()
			if hiddenElements[tt.Data] {
				if tt.Type == html.StartTagToken {
					skip++
				} else if tt.Type == html.EndTagToken && skip > 0 {
					skip--
				}
			}
			if !inlineElements[tt.Data] {
				text.WriteByte(' ')
			}
		case html.TextToken:
			if skip == 0 {
				text.Write(z.Text())
			}
		}
	}

	words := strings.Fields(text.String())
	if len(words) <= n {
		return strings.Join(words, " "), nil
	}
	return strings.Join(words[:n], " ") + excerptEllipsis, nil
}

var hiddenElements = map[string]bool{"script": true, "style": true, "pre": true}

var inlineElements = map[string]bool{
	"a": true, "abbr": true, "b": true, "code": true, "del": true, "em": true,
	"i": true, "mark": true, "s": true, "small": true, "span": true,
	"strong": true, "sub": true, "sup": true,
}
