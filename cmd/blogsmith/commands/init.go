package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/blogsmith/internal/config"
	ferrors "git.home.luguber.info/inful/blogsmith/internal/foundation/errors"
	"git.home.luguber.info/inful/blogsmith/internal/templates"
)

const samplePost = `---
title: Hello World
date: 2024-01-01
tags: [welcome]
---
This is the first post. Edit or delete it, then run ` + "`blogsmith build`" + `.
`

const sampleAbout = `<p>Tell readers about this blog.</p>
`

// InitCmd implements the 'init' command.
type InitCmd struct {
	Dir   string `arg:"" optional:"" help:"Directory to initialize" default:"."`
	Force bool   `help:"Overwrite existing files"`
}

func (i *InitCmd) Run(g *Global, _ *CLI) error {
	fmt.Fprintf(g.Stdout, "Initializing blog in %s\n", i.Dir)
	files, err := i.scaffold()
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := writeScaffoldFile(filepath.Join(i.Dir, f.name), f.data, i.Force); err != nil {
			fmt.Fprintln(g.Stdout, "Initialization failed")
			return err
		}
		fmt.Fprintf(g.Stdout, "  wrote %s\n", f.name)
	}
	fmt.Fprintln(g.Stdout, "initialized successfully")
	return nil
}

type scaffoldFile struct {
	name string
	data []byte
}

func (i *InitCmd) scaffold() ([]scaffoldFile, error) {
	cfg := config.Default()
	cfg.Site.Pages = []config.PageConfig{{File: "about.html", Title: "About"}}
	cfgData, err := config.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	files := []scaffoldFile{{name: config.FileName, data: cfgData}}

	for _, kind := range templates.Kinds() {
		data, err := fs.ReadFile(templates.BuiltinFS(), templates.BuiltinDir+"/"+kind.FileName())
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "read built-in theme").
				WithContext("fragment", string(kind)).Build()
		}
		files = append(files, scaffoldFile{name: filepath.Join(cfg.Content.ThemeDir, kind.FileName()), data: data})
	}
	files = append(files,
		scaffoldFile{name: filepath.Join(cfg.Content.PostsDir, "hello-world.md"), data: []byte(samplePost)},
		scaffoldFile{name: filepath.Join(cfg.Content.PagesDir, "about.html"), data: []byte(sampleAbout)},
	)
	return files, nil
}

func writeScaffoldFile(path string, data []byte, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ValidationError("file already exists (use --force to overwrite)").
			WithContext("path", path).Build()
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "stat scaffold file").
			WithContext("path", path).Build()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "create directory").
			WithContext("path", filepath.Dir(path)).Build()
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "write scaffold file").
			WithContext("path", path).Build()
	}
	return nil
}
