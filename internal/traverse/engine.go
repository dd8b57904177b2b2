// Package traverse walks a source tree, turns every matching config into
// documents, and writes them to the destination directory.
package traverse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/dgallion1/doctor/internal/docerr"
	"github.com/dgallion1/doctor/internal/doctypes"
	"github.com/dgallion1/doctor/internal/generator"
	"github.com/dgallion1/doctor/internal/index"
	"github.com/dgallion1/doctor/internal/parser"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// Options controls a generation run.
type Options struct {
	SourceDir string
	DestDir   string
	Recurse   bool   // Descend into subdirectories
	Index     bool   // Write an index of all processed nodes
	IndexName string // Index file stem, index.DefaultName when empty

	// Jobs bounds how many configs of one directory are processed at once.
	// Values below 2 process configs one at a time.
	Jobs int

	// KeepGoing skips configs that fail instead of aborting the run. The
	// failures are returned together once the run completes.
	KeepGoing bool
}

// Result summarizes a completed run.
type Result struct {
	FilesRead int // Directory entries visited
	DirsRead  int
	Duration  time.Duration
	Documents []*doctypes.Document // Processed documents in discovery order
	Generated []string             // Node names that received a document
	IndexPath string               // Empty when no index was written
}

// Engine drives parsing and rendering over a directory tree.
type Engine struct {
	fs     afero.Fs
	parser parser.Parser
	gen    generator.Generator
	log    *slog.Logger
	opts   Options
}

func New(fs afero.Fs, p parser.Parser, g generator.Generator, log *slog.Logger, opts Options) *Engine {
	if opts.DestDir == "" {
		opts.DestDir = "."
	}
	if opts.IndexName == "" {
		opts.IndexName = index.DefaultName
	}
	return &Engine{
		fs:     fs,
		parser: p,
		gen:    g,
		log:    log,
		opts:   opts,
	}
}

// runState is the mutable state of one run. It is owned by Run and passed
// to each step.
type runState struct {
	queue    []string
	files    int
	dirs     int
	docs     []*doctypes.Document
	names    []string
	failures []error
}

// Run processes the source tree breadth first. Without KeepGoing the first
// error aborts the run and no Result is returned; outputs written before the
// failure stay on disk. With KeepGoing the Result is returned together with
// the joined per-file failures.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	e.log.Debug("starting traversal", "source", e.opts.SourceDir, "dest", e.opts.DestDir, "recurse", e.opts.Recurse, "jobs", e.opts.Jobs)

	ok, err := afero.DirExists(e.fs, e.opts.DestDir)
	if err != nil {
		return nil, &docerr.IOError{Op: "stat", Path: e.opts.DestDir, Err: err}
	}
	if !ok {
		if err := e.fs.MkdirAll(e.opts.DestDir, 0o755); err != nil {
			return nil, &docerr.IOError{Op: "create", Path: e.opts.DestDir, Err: err}
		}
	}

	st := &runState{queue: []string{e.opts.SourceDir}}
	for len(st.queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dir := st.queue[0]
		st.queue = st.queue[1:]
		st.dirs++

		if err := e.visitDir(ctx, st, dir); err != nil {
			return nil, err
		}
	}

	res := &Result{
		FilesRead: st.files,
		DirsRead:  st.dirs,
		Documents: st.docs,
		Generated: st.names,
	}

	if e.opts.Index {
		path, err := index.Write(e.fs, e.gen, e.opts.DestDir, e.opts.IndexName, st.docs)
		if err != nil {
			return nil, err
		}
		if path != "" {
			e.log.Info("wrote index", "path", path)
		}
		res.IndexPath = path
	}

	res.Duration = time.Since(start)
	if len(st.failures) > 0 {
		return res, errors.Join(st.failures...)
	}
	return res, nil
}

// visitDir lists one directory, queues subdirectories when recursing, and
// processes the configs it contains.
func (e *Engine) visitDir(ctx context.Context, st *runState, dir string) error {
	e.log.Debug("visiting directory", "dir", dir)

	entries, err := afero.ReadDir(e.fs, dir)
	if err != nil {
		return &docerr.IOError{Op: "list", Path: dir, Err: err}
	}

	var configs []string
	for _, entry := range entries {
		st.files++
		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() && e.opts.Recurse {
			e.log.Debug("queueing directory", "dir", path)
			st.queue = append(st.queue, path)
			continue
		}
		if !utf8.ValidString(entry.Name()) {
			return &docerr.InvalidInputError{Name: path, Reason: "file name contains invalid characters"}
		}
		if !e.parser.MatchesFilename(entry.Name()) {
			continue
		}
		configs = append(configs, path)
	}

	return e.processAll(ctx, st, configs)
}

// prepared is a config that has been parsed and rendered but not written.
type prepared struct {
	doc      *doctypes.Document
	rendered []generator.Rendered
	err      error
}

// processAll handles the configs of one directory. With Jobs above one the
// configs are parsed and rendered concurrently, then written in listing
// order, so a failure stops output at the same config a sequential run
// would.
func (e *Engine) processAll(ctx context.Context, st *runState, configs []string) error {
	if e.opts.Jobs < 2 {
		for _, path := range configs {
			if err := e.commit(st, path, e.prepare(path)); err != nil {
				return err
			}
		}
		return nil
	}

	results := make([]prepared, len(configs))
	// Lowest index that failed. Without KeepGoing nothing after it is
	// committed, so later configs are not prepared.
	var firstFailed atomic.Int64
	firstFailed.Store(int64(len(configs)))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Jobs)
	for i, path := range configs {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if !e.opts.KeepGoing && int64(i) > firstFailed.Load() {
				return nil
			}
			results[i] = e.prepare(path)
			if results[i].err != nil {
				for {
					cur := firstFailed.Load()
					if int64(i) >= cur || firstFailed.CompareAndSwap(cur, int64(i)) {
						break
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, path := range configs {
		if err := e.commit(st, path, results[i]); err != nil {
			return err
		}
	}
	return nil
}

// prepare parses one config and renders its nodes.
func (e *Engine) prepare(path string) prepared {
	log := e.log.With("path", path)
	log.Debug("reading config")

	doc, err := e.parser.ParsePath(path)
	if err != nil {
		return prepared{err: err}
	}

	rendered, err := e.gen.RenderNodes(doc)
	if err != nil {
		return prepared{err: fmt.Errorf("generate %s: %w", path, err)}
	}
	log.Debug("generated documents", "nodes", len(rendered))
	return prepared{doc: doc, rendered: rendered}
}

// commit writes the outputs of a prepared config and records it. A failure
// is returned unless KeepGoing is set, in which case it is logged and kept
// for the end of the run.
func (e *Engine) commit(st *runState, path string, p prepared) error {
	err := p.err
	var names []string
	if err == nil {
		names, err = e.writeOutputs(path, p.rendered)
	}
	if err != nil {
		if !e.opts.KeepGoing {
			return err
		}
		e.log.Error("skipping config", "path", path, "error", err)
		st.failures = append(st.failures, err)
		return nil
	}
	st.docs = append(st.docs, p.doc)
	st.names = append(st.names, names...)
	return nil
}

// writeOutputs writes each rendered node to the destination directory,
// replacing existing files.
func (e *Engine) writeOutputs(path string, rendered []generator.Rendered) ([]string, error) {
	log := e.log.With("path", path)
	names := make([]string, 0, len(rendered))
	for _, r := range rendered {
		dest := filepath.Join(e.opts.DestDir, e.gen.AddExtension(r.Name))
		log.Debug("writing document", "dest", dest)
		if err := afero.WriteFile(e.fs, dest, []byte(r.Text), 0o644); err != nil {
			return nil, &docerr.IOError{Op: "write", Path: dest, Err: err}
		}
		log.Info("created doc", "node", r.Name, "dest", dest)
		names = append(names, r.Name)
	}
	return names, nil
}
