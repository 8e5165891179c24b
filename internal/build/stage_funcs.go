package build

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"

	"git.home.luguber.info/inful/blogsmith/internal/config"
	ferrors "git.home.luguber.info/inful/blogsmith/internal/foundation/errors"
	"git.home.luguber.info/inful/blogsmith/internal/logfields"
	"git.home.luguber.info/inful/blogsmith/internal/markdown"
	"git.home.luguber.info/inful/blogsmith/internal/metrics"
	"git.home.luguber.info/inful/blogsmith/internal/output"
	"git.home.luguber.info/inful/blogsmith/internal/post"
	"git.home.luguber.info/inful/blogsmith/internal/render"
	"git.home.luguber.info/inful/blogsmith/internal/site"
	"git.home.luguber.info/inful/blogsmith/internal/slug"
	"git.home.luguber.info/inful/blogsmith/internal/templates"
)

// buildState is owned by exactly one build.
type buildState struct {
	fsys     fs.FS
	writer   output.Writer
	recorder metrics.Recorder
	conv     markdown.Converter
	report   *Report

	cfg      *config.Config
	store    *templates.Store
	registry *slug.Registry
	posts    *post.Builder

	drafts      []*post.Draft
	pageSources []pageSource
	static      []string

	site  *site.Context
	pages []render.Page
}

type pageSource struct {
	file  string
	path  string
	title string
	html  string
}

var postExtensions = []string{".md", ".markdown"}

func stageInit(_ context.Context, bs *buildState) error {
	cfg, err := config.Load(bs.fsys, config.FileName)
	if err != nil {
		return err
	}
	bs.cfg = cfg
	bs.registry = slug.NewRegistry(slug.Mode(cfg.Slugs.Mode), slug.WithMaxLength(cfg.Slugs.MaxLength))
	bs.posts = post.NewBuilder(bs.conv, bs.registry, cfg.ExcerptWords)
	slog.Debug("Configuration loaded",
		logfields.BuildID(bs.report.ID),
		slog.String("slug_mode", string(cfg.Slugs.Mode)),
		slog.String("theme_dir", cfg.Content.ThemeDir))
	return nil
}

func stageLoadTemplates(_ context.Context, bs *buildState) error {
	store, err := templates.Load(bs.fsys, bs.cfg.Content.ThemeDir)
	if err != nil {
		return err
	}
	bs.store = store
	return nil
}

func stageIndexPosts(_ context.Context, bs *buildState) error {
	dir := bs.cfg.Content.PostsDir
	entries, found, err := readDirIfExists(bs.fsys, dir)
	if err != nil {
		return err
	}
	if !found {
		slog.Warn("Posts directory not found; building without posts", logfields.Path(dir))
	}
	for _, e := range entries {
		if e.IsDir() || !slices.Contains(postExtensions, path.Ext(e.Name())) {
			continue
		}
		p := path.Join(dir, e.Name())
		raw, err := fs.ReadFile(bs.fsys, p)
		if err != nil {
			return readError(err, p)
		}
		info, err := e.Info()
		if err != nil {
			return readError(err, p)
		}
		d, err := bs.posts.Parse(p, raw, post.FileInfo{Name: e.Name(), ModTime: info.ModTime()})
		if err != nil {
			return err
		}
		bs.drafts = append(bs.drafts, d)
	}

	if err := bs.indexPages(); err != nil {
		return err
	}
	if err := bs.indexStatic(); err != nil {
		return err
	}
	slog.Info("Indexed content",
		logfields.BuildID(bs.report.ID),
		slog.Int("posts", len(bs.drafts)),
		slog.Int("pages", len(bs.pageSources)),
		slog.Int("static", len(bs.static)))
	return nil
}

func (bs *buildState) indexPages() error {
	dir := bs.cfg.Content.PagesDir
	if configured := bs.cfg.Site.Pages; len(configured) > 0 {
		for _, pc := range configured {
			p := path.Join(dir, pc.File)
			data, err := fs.ReadFile(bs.fsys, p)
			if errors.Is(err, fs.ErrNotExist) {
				return &site.MissingStaticPageError{Name: strings.TrimSuffix(pc.File, path.Ext(pc.File)), Path: p}
			}
			if err != nil {
				return readError(err, p)
			}
			bs.pageSources = append(bs.pageSources, pageSource{file: pc.File, path: p, title: pc.Title, html: string(data)})
		}
		return nil
	}

	entries, _, err := readDirIfExists(bs.fsys, dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".html" {
			continue
		}
		p := path.Join(dir, e.Name())
		data, err := fs.ReadFile(bs.fsys, p)
		if err != nil {
			return readError(err, p)
		}
		bs.pageSources = append(bs.pageSources, pageSource{file: e.Name(), path: p, html: string(data)})
	}
	return nil
}

func (bs *buildState) indexStatic() error {
	dir := bs.cfg.Content.StaticDir
	if _, err := fs.Stat(bs.fsys, dir); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fs.WalkDir(bs.fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return readError(err, p)
		}
		if d.Type().IsRegular() {
			bs.static = append(bs.static, strings.TrimPrefix(p, dir+"/"))
		}
		return nil
	})
}

func stageAssignSlugs(_ context.Context, bs *buildState) error {
	posts := make([]*post.Post, 0, len(bs.drafts))
	for _, d := range bs.drafts {
		p, err := bs.posts.Assign(d)
		if err != nil {
			return err
		}
		slog.Debug("Assigned post slug", logfields.Slug(p.Slug), logfields.Path(p.SourcePath))
		posts = append(posts, p)
	}
	post.Sort(posts)

	pages := make([]*site.StaticPage, 0, len(bs.pageSources))
	for _, src := range bs.pageSources {
		name := strings.TrimSuffix(src.file, path.Ext(src.file))
		s, err := bs.registry.Assign(slug.NamespacePage, name, src.path)
		if err != nil {
			return err
		}
		title := src.title
		if title == "" {
			title = post.TitleFromFileName(src.file)
		}
		pages = append(pages, &site.StaticPage{Title: title, Slug: s, HTML: src.html, SourcePath: src.path})
	}
	if len(bs.cfg.Site.Pages) == 0 {
		slices.SortFunc(pages, func(a, b *site.StaticPage) int { return strings.Compare(a.Slug, b.Slug) })
	}

	bs.site = &site.Context{
		Config:    bs.cfg,
		Templates: bs.store,
		Posts:     posts,
		Tags:      bs.posts.Tags().Tags(),
		Pages:     pages,
		Archives:  site.Archives(posts),
	}
	if err := bs.claimPaths(); err != nil {
		return err
	}

	bs.report.Posts = len(posts)
	bs.report.Tags = len(bs.site.Tags)
	bs.report.StaticFiles = len(bs.static)
	bs.recorder.SetPosts(len(posts))
	return nil
}

type claim struct{ path, source string }

// claimPaths reserves every output path so that pages, listings and static
// files can never overwrite each other.
func (bs *buildState) claimPaths() error {
	r := bs.registry
	claims := []claim{{site.IndexPath, "index"}}
	for _, p := range bs.site.Posts {
		claims = append(claims, claim{site.PostPath(p.Slug), p.SourcePath})
	}
	for _, t := range bs.site.Tags {
		claims = append(claims, claim{site.TagPath(t.Slug), "tag " + t.Name})
	}
	for _, a := range bs.site.Archives {
		claims = append(claims, claim{site.ArchivePath(a), "archive " + a.Key()})
	}
	for _, sp := range bs.site.Pages {
		claims = append(claims, claim{site.PagePath(sp.Slug), sp.SourcePath})
	}
	for _, s := range bs.static {
		claims = append(claims, claim{s, path.Join(bs.cfg.Content.StaticDir, s)})
	}
	if bs.cfg.Output.ManifestEnabled() {
		claims = append(claims, claim{ManifestFile, "manifest"})
	}
	for _, c := range claims {
		if err := r.ClaimPath(c.path, c.source); err != nil {
			return err
		}
	}
	return nil
}

func stageRenderPages(_ context.Context, bs *buildState) error {
	a, err := render.NewAssembler(bs.site)
	if err != nil {
		return err
	}
	pages, err := a.All()
	if err != nil {
		return err
	}
	bs.pages = pages

	counts := map[string]int{}
	for _, p := range pages {
		counts[p.Kind]++
	}
	for _, kind := range []string{render.KindIndex, render.KindPost, render.KindTag, render.KindArchive, render.KindStatic} {
		bs.recorder.SetPages(kind, counts[kind])
	}
	bs.report.Pages = len(pages)
	return nil
}

func stageWritePages(_ context.Context, bs *buildState) (err error) {
	w := bs.writer
	if err := w.Begin(); err != nil {
		return writeError(err)
	}
	defer func() {
		if err != nil {
			w.Abort()
		}
	}()

	for _, p := range bs.pages {
		if err := w.WriteFile(p.Path, []byte(p.HTML)); err != nil {
			return writeError(err)
		}
		slog.Debug("Wrote page", logfields.Page(p.Path))
	}
	if len(bs.static) > 0 {
		if err := w.CopyFS(bs.fsys, bs.cfg.Content.StaticDir); err != nil {
			return writeError(err)
		}
	}
	if bs.cfg.Output.ManifestEnabled() {
		data, err := newManifest(bs.pages, bs.site.Posts, bs.static).Marshal()
		if err != nil {
			return err
		}
		if err := w.WriteFile(ManifestFile, data); err != nil {
			return writeError(err)
		}
	}
	if err := w.Commit(); err != nil {
		return writeError(err)
	}
	return nil
}

func readDirIfExists(fsys fs.FS, dir string) ([]fs.DirEntry, bool, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, readError(err, dir)
	}
	return entries, true, nil
}

func readError(err error, p string) error {
	return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read content").
		WithContext("path", p).
		Build()
}

func writeError(err error) error {
	return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write output").Build()
}
