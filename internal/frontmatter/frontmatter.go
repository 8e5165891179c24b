// Package frontmatter separates YAML front matter from a Markdown post and
// decodes the fields blogsmith understands.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// front matter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml front matter start delimiter found but closing delimiter is missing")

// Split separates YAML front matter (`---` delimited) from the Markdown body.
//
// If the document does not start with a delimiter, had is false and body is
// the full input. Both LF and CRLF documents are accepted.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter on the last line without a trailing newline.
		if bytes.HasSuffix(content, []byte(nl+"---")) {
			end := len(content) - len("---")
			return content[start:end], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	end := start + idx + len(nl)
	return content[start:end], content[start+idx+len(closeSeq):], true, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// Meta holds the front matter fields used to build a post. Unknown fields are ignored.
type Meta struct {
	Title   string  `yaml:"title"`
	Date    Date    `yaml:"date"`
	Tags    TagList `yaml:"tags"`
	Summary string  `yaml:"summary"`
}

// Decode parses raw YAML front matter (without delimiters).
func Decode(raw []byte) (Meta, error) {
	var m Meta
	if len(bytes.TrimSpace(raw)) == 0 {
		return m, nil
	}
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return Meta{}, fmt.Errorf("decode front matter: %w", err)
	}
	m.Title = strings.TrimSpace(m.Title)
	m.Summary = strings.TrimSpace(m.Summary)
	return m, nil
}

// DateLayouts are tried in order when parsing a front matter date.
var DateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

// Date is a publish date read from YAML. The zero value means "not set".
type Date struct {
	time.Time
}

// ParseDate parses s with the first matching layout in DateLayouts. Dates
// without a zone are interpreted as UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q (use YYYY-MM-DD, YYYY/MM/DD or RFC 3339)", s)
}

// UnmarshalYAML reads the scalar's source text so that YAML timestamp
// resolution does not depend on how the value was quoted.
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: date must be a scalar", value.Line)
	}
	if strings.TrimSpace(value.Value) == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := ParseDate(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	d.Time = t
	return nil
}

// TagList accepts either a YAML sequence or a comma separated string.
type TagList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *TagList) UnmarshalYAML(value *yaml.Node) error {
	var raw []string
	switch value.Kind {
	case yaml.ScalarNode:
		raw = strings.Split(value.Value, ",")
	case yaml.SequenceNode:
		if err := value.Decode(&raw); err != nil {
			return err
		}
	default:
		return fmt.Errorf("line %d: tags must be a list or a comma separated string", value.Line)
	}
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	*l = out
	return nil
}
