package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"git.home.luguber.info/inful/blogsmith/internal/build"
	"git.home.luguber.info/inful/blogsmith/internal/site"
)

// SlugsCmd implements the 'slugs' command.
type SlugsCmd struct {
	Content string `short:"C" help:"Content root holding blogsmith.yaml, posts, pages and theme" default:"." type:"existingdir"`
}

func (s *SlugsCmd) Run(g *Global, root *CLI) error {
	if _, err := root.loadContentConfig(g, s.Content); err != nil {
		return err
	}
	sc, err := build.NewBuilder().Plan(context.Background(), os.DirFS(s.Content))
	if err != nil {
		return err
	}
	return printPlan(g, sc)
}

func printPlan(g *Global, sc *site.Context) error {
	tw := tabwriter.NewWriter(g.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tSLUG\tPATH\tSOURCE")
	for _, p := range sc.Posts {
		fmt.Fprintf(tw, "post\t%s\t%s\t%s\n", p.Slug, site.PostPath(p.Slug), p.SourcePath)
	}
	for _, t := range sc.Tags {
		fmt.Fprintf(tw, "tag\t%s\t%s\t%s\n", t.Slug, site.TagPath(t.Slug), t.Name)
	}
	for _, p := range sc.Pages {
		fmt.Fprintf(tw, "page\t%s\t%s\t%s\n", p.Slug, site.PagePath(p.Slug), p.SourcePath)
	}
	for _, a := range sc.Archives {
		fmt.Fprintf(tw, "archive\t%s\t%s\t%s\n", a.Key(), site.ArchivePath(a), a.Title())
	}
	return tw.Flush()
}
