package templates

import (
	"regexp"
	"slices"
	"sort"
	"strings"
)

// Kind names one of the fragments a theme must provide.
type Kind string

const (
	Header            Kind = "header"
	Body              Kind = "body"
	Card              Kind = "card"
	PostListTitleCard Kind = "post_list_title_card"
	PostListCard      Kind = "post_list_card"
)

// Kinds returns every required fragment kind in load order.
func Kinds() []Kind {
	return []Kind{Header, Body, Card, PostListTitleCard, PostListCard}
}

// FileName is the file a theme stores the fragment in.
func (k Kind) FileName() string { return string(k) + ".html" }

var schemas = map[Kind][]string{
	Header:            {"site_title", "base_url", "nav_links", "tag_links", "archive_links"},
	Body:              {"page_title", "site_title", "base_url", "header", "content"},
	Card:              {"title", "slug", "url", "date", "tags", "content"},
	PostListTitleCard: {"title", "count"},
	PostListCard:      {"title", "slug", "url", "date", "excerpt", "tags"},
}

// Schema lists the placeholders a fragment kind may use.
func Schema(k Kind) []string {
	return slices.Clone(schemas[k])
}

// placeholderPattern matches anything shaped like a placeholder so malformed
// names are rejected instead of leaking into the output as literal text.
var (
	placeholderPattern = regexp.MustCompile(`\{\{\s*([^{}]*?)\s*\}\}`)
	placeholderName    = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// Bindings maps placeholder names to the text substituted for them.
type Bindings map[string]string

type segment struct {
	literal string
	slot    string
}

// Fragment is a parsed theme fragment. It is immutable after parsing and safe
// to share between renders.
type Fragment struct {
	Name         Kind
	Raw          string
	Placeholders []string // sorted, unique

	segments []segment
}

// ParseFragment splits raw into literal text and slots and checks every slot
// against the kind's schema.
func ParseFragment(kind Kind, raw string) (*Fragment, error) {
	allowed, ok := schemas[kind]
	if !ok {
		return nil, &MissingTemplateError{Name: string(kind)}
	}

	f := &Fragment{Name: kind, Raw: raw}
	seen := map[string]bool{}
	last := 0
	for _, m := range placeholderPattern.FindAllStringSubmatchIndex(raw, -1) {
		name := raw[m[2]:m[3]]
		if !placeholderName.MatchString(name) || !slices.Contains(allowed, name) {
			return nil, &UnresolvedPlaceholderError{Fragment: kind, Placeholder: name}
		}
		if m[0] > last {
			f.segments = append(f.segments, segment{literal: raw[last:m[0]]})
		}
		f.segments = append(f.segments, segment{slot: name})
		last = m[1]
		if !seen[name] {
			seen[name] = true
			f.Placeholders = append(f.Placeholders, name)
		}
	}
	if last < len(raw) {
		f.segments = append(f.segments, segment{literal: raw[last:]})
	}
	sort.Strings(f.Placeholders)
	return f, nil
}

// Render substitutes bindings into the fragment in a single pass. Bound values
// are emitted as-is and never scanned for further placeholders.
func (f *Fragment) Render(b Bindings) (string, error) {
	for _, name := range f.Placeholders {
		if _, ok := b[name]; !ok {
			return "", &UnresolvedPlaceholderError{Fragment: f.Name, Placeholder: name, Unbound: true}
		}
	}
	var sb strings.Builder
	sb.Grow(len(f.Raw))
	for _, seg := range f.segments {
		if seg.slot == "" {
			sb.WriteString(seg.literal)
			continue
		}
		sb.WriteString(b[seg.slot])
	}
	return sb.String(), nil
}
