// Package markdown converts a post's Markdown source into an HTML fragment and
// extracts the metadata the source declares about itself.
package markdown

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"git.home.luguber.info/inful/blogsmith/internal/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// MetaSource records where a document's metadata came from.
type MetaSource string

const (
	MetaNone         MetaSource = ""
	MetaFrontMatter  MetaSource = "front_matter"
	MetaLegacyHeader MetaSource = "legacy_header"
)

// Document is the result of converting one Markdown source.
type Document struct {
	HTML string
	// Meta is nil when the source declares no metadata.
	Meta   *frontmatter.Meta
	Source MetaSource
	// FrontMatter is the raw metadata block and Body the Markdown that follows
	// it; together they identify the content for fingerprinting.
	FrontMatter []byte
	Body        []byte
}

// Converter turns Markdown into HTML plus metadata.
type Converter interface {
	Convert(src []byte) (*Document, error)
}

// Goldmark is the Converter backed by github.com/yuin/goldmark.
type Goldmark struct {
	md goldmark.Markdown
}

// NewGoldmark returns a converter with GitHub flavoured Markdown, footnotes and
// typographic punctuation. Heading IDs are generated and raw HTML is kept.
func NewGoldmark() *Goldmark {
	return &Goldmark{md: goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Footnote, extension.Typographer),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)}
}

// Convert extracts metadata (YAML front matter or the legacy "# " header) and
// renders the remaining body.
func (g *Goldmark) Convert(src []byte) (*Document, error) {
	doc, err := extractMeta(src)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := g.md.Convert(doc.Body, &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	doc.HTML = buf.String()
	return doc, nil
}

func extractMeta(src []byte) (*Document, error) {
	fm, body, had, err := frontmatter.Split(src)
	if err != nil {
		return nil, err
	}
	if had {
		meta, err := frontmatter.Decode(fm)
		if err != nil {
			return nil, err
		}
		return &Document{Meta: &meta, Source: MetaFrontMatter, FrontMatter: fm, Body: body}, nil
	}

	if meta, header, rest, ok := parseLegacyHeader(src); ok {
		return &Document{Meta: meta, Source: MetaLegacyHeader, FrontMatter: header, Body: rest}, nil
	}
	return &Document{Body: src}, nil
}

const legacyDateLayout = "2006/01/02"

// parseLegacyHeader recognises the four-line header of older posts:
//
//	# Title
//	# tag one, tag two
//	# 2024/01/31
//	# preview text
//
// It only matches when all four lines carry the "# " mark and the third parses
// as a date, so an ordinary post that opens with a heading is left alone.
func parseLegacyHeader(src []byte) (*frontmatter.Meta, []byte, []byte, bool) {
	text := strings.ReplaceAll(string(src), "\r\n", "\n")
	lines := strings.SplitN(text, "\n", 5)
	if len(lines) < 4 {
		return nil, nil, nil, false
	}
	fields := make([]string, 4)
	for i := range fields {
		v, ok := strings.CutPrefix(lines[i], "# ")
		if !ok {
			return nil, nil, nil, false
		}
		fields[i] = strings.TrimSpace(v)
	}
	date, err := time.Parse(legacyDateLayout, fields[2])
	if err != nil {
		return nil, nil, nil, false
	}

	var tags frontmatter.TagList
	for _, t := range strings.Split(fields[1], ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	meta := &frontmatter.Meta{
		Title:   fields[0],
		Date:    frontmatter.Date{Time: date.UTC()},
		Tags:    tags,
		Summary: fields[3],
	}

	header := strings.Join(lines[:4], "\n") + "\n"
	rest := ""
	if len(lines) == 5 {
		rest = strings.Trim(lines[4], "\n")
	}
	return meta, []byte(header), []byte(rest), true
}
