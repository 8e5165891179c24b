package build

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"git.home.luguber.info/inful/blogsmith/internal/post"
	"git.home.luguber.info/inful/blogsmith/internal/render"
)

// ManifestFile is the manifest's path in the output.
const ManifestFile = "manifest.json"

// Manifest lists what a build wrote. It holds no timestamps of the build
// itself so that identical input yields an identical file.
type Manifest struct {
	Generator string         `json:"generator"`
	Pages     []ManifestPage `json:"pages"`
	Posts     []ManifestPost `json:"posts"`
	Static    []string       `json:"static"`
}

// ManifestPage is one rendered page.
type ManifestPage struct {
	Path   string `json:"path"`
	Kind   string `json:"kind"`
	SHA256 string `json:"sha256"`
}

// ManifestPost links a post's slug to its source and content fingerprint.
type ManifestPost struct {
	Slug        string `json:"slug"`
	Source      string `json:"source"`
	Date        string `json:"date"`
	Fingerprint string `json:"fingerprint"`
}

func newManifest(pages []render.Page, posts []*post.Post, static []string) *Manifest {
	m := &Manifest{
		Generator: "blogsmith",
		Pages:     make([]ManifestPage, 0, len(pages)),
		Posts:     make([]ManifestPost, 0, len(posts)),
		Static:    append([]string{}, static...),
	}
	for _, p := range pages {
		sum := sha256.Sum256([]byte(p.HTML))
		m.Pages = append(m.Pages, ManifestPage{Path: p.Path, Kind: p.Kind, SHA256: hex.EncodeToString(sum[:])})
	}
	for _, p := range posts {
		m.Posts = append(m.Posts, ManifestPost{
			Slug:        p.Slug,
			Source:      p.SourcePath,
			Date:        p.Date.UTC().Format(time.RFC3339),
			Fingerprint: p.Fingerprint,
		})
	}
	return m
}

// Marshal encodes the manifest as indented JSON.
func (m *Manifest) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return append(data, '\n'), nil
}
