// Package index aggregates processed documents into a single table of
// contents grouped by package.
package index

import (
	"fmt"
	"path/filepath"

	"github.com/dgallion1/doctor/internal/docerr"
	"github.com/dgallion1/doctor/internal/doctypes"
	"github.com/spf13/afero"
)

// DefaultName is the index file stem used when none is configured.
const DefaultName = "NODES_README"

// Group holds every node that belongs to one package.
type Group struct {
	Package string
	Nodes   []doctypes.NodeRef
}

// GroupByPackage groups the nodes of docs by package name. Groups appear in
// order of first appearance; within a group nodes keep document order and
// then node order.
func GroupByPackage(docs []*doctypes.Document) []Group {
	var groups []Group
	pos := make(map[string]int)

	for _, doc := range docs {
		if doc == nil {
			continue
		}
		for i := range doc.Nodes {
			idx, ok := pos[doc.PackageName]
			if !ok {
				idx = len(groups)
				pos[doc.PackageName] = idx
				groups = append(groups, Group{Package: doc.PackageName})
			}
			groups[idx].Nodes = append(groups[idx].Nodes, doctypes.NodeRef{Doc: doc, Node: &doc.Nodes[i]})
		}
	}
	return groups
}

// Renderer is the part of a generator needed to build the index.
type Renderer interface {
	AddExtension(name string) string
	RenderIndex(docs []*doctypes.Document, destDir string) (string, error)
}

// Write renders the index for docs and writes it to destDir, replacing any
// existing file. It returns the written path, or "" when docs is empty.
func Write(fs afero.Fs, r Renderer, destDir, name string, docs []*doctypes.Document) (string, error) {
	if len(docs) == 0 {
		return "", nil
	}
	if name == "" {
		name = DefaultName
	}

	text, err := r.RenderIndex(docs, destDir)
	if err != nil {
		return "", fmt.Errorf("render index: %w", err)
	}

	path := filepath.Join(destDir, r.AddExtension(name))
	if err := afero.WriteFile(fs, path, []byte(text), 0o644); err != nil {
		return "", &docerr.IOError{Op: "write", Path: path, Err: err}
	}
	return path, nil
}
