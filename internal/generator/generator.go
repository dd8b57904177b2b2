// Package generator renders parsed documents into output text.
//
// A Generator produces one output per node, in document order, and an index
// page that links to those outputs. The same AddExtension is used for output
// filenames and index link targets so the two always agree.
package generator

import (
	"fmt"

	"github.com/dgallion1/doctor/internal/doctypes"
)

// Rendered is the output for a single node.
type Rendered struct {
	Name string // Node name, the output filename stem
	Text string
}

// Generator converts documents into one output format.
type Generator interface {
	// RenderNodes renders every node of doc in doc.Nodes order.
	RenderNodes(doc *doctypes.Document) ([]Rendered, error)
	// AddExtension appends the format's file extension to name.
	AddExtension(name string) string
	// RenderIndex renders a table of contents for docs, grouped by package,
	// linking each node to its output under destDir.
	RenderIndex(docs []*doctypes.Document, destDir string) (string, error)
}

// Type selects an output format.
type Type string

const (
	TypeMarkdown Type = "markdown"
	TypeHTML     Type = "html"
)

// Types lists every supported output format.
var Types = []Type{TypeMarkdown, TypeHTML}

// ForType returns the generator for an output format.
func ForType(t Type) (Generator, error) {
	switch t {
	case TypeMarkdown:
		return &MarkdownGenerator{}, nil
	case TypeHTML:
		return NewHTMLGenerator(), nil
	default:
		return nil, fmt.Errorf("unsupported document type: %s", t)
	}
}
