package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/dgallion1/doctor/internal/generator"
	"github.com/dgallion1/doctor/internal/parser"
	"github.com/dgallion1/doctor/internal/scaffold"
	"github.com/dgallion1/doctor/internal/traverse"
)

type genFlags struct {
	destDir    string
	recurse    bool
	readme     bool
	docType    string
	configType string
	jobs       int
	keepGoing  bool
}

func (a *app) runGen(ctx context.Context, sourceDir string, f genFlags) error {
	p, err := parser.ForType(parser.Type(f.configType), a.fs)
	if err != nil {
		return err
	}
	g, err := generator.ForType(generator.Type(f.docType))
	if err != nil {
		return err
	}

	eng := traverse.New(a.fs, p, g, a.log, traverse.Options{
		SourceDir: sourceDir,
		DestDir:   f.destDir,
		Recurse:   f.recurse,
		Index:     f.readme,
		IndexName: a.cfg.IndexName,
		Jobs:      f.jobs,
		KeepGoing: f.keepGoing,
	})

	res, err := eng.Run(ctx)
	if res != nil {
		a.printSummary(res)
	}
	return err
}

func (a *app) printSummary(res *traverse.Result) {
	for _, name := range res.Generated {
		fmt.Fprintf(a.stdout, "Created doc for %s\n", name)
	}
	if res.IndexPath != "" {
		fmt.Fprintf(a.stdout, "Created index %s\n", res.IndexPath)
	}
	fmt.Fprintf(a.stdout, "Read %d files in %d directories in %s\n", res.FilesRead, res.DirsRead, res.Duration)
	if len(res.Generated) > 0 {
		fmt.Fprintf(a.stdout, "Generated documentation for: %s\n", strings.Join(res.Generated, ", "))
	}
}

func (a *app) runInit(dir, name string, force bool) error {
	path, err := scaffold.Write(a.fs, dir, name, force)
	if err != nil {
		if scaffold.ErrExists(err) {
			a.log.Info("config already exists, use --force to replace it", "node", name)
		}
		return err
	}
	a.log.Debug("wrote template", "path", path)
	fmt.Fprintf(a.stdout, "Created %s\n", path)
	return nil
}
