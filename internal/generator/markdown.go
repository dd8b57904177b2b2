package generator

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/doctor/internal/docerr"
	"github.com/dgallion1/doctor/internal/doctypes"
	"github.com/dgallion1/doctor/internal/index"
)

// MarkdownGenerator renders nodes as Markdown (.md) documents.
type MarkdownGenerator struct{}

func (g *MarkdownGenerator) RenderNodes(doc *doctypes.Document) ([]Rendered, error) {
	out := make([]Rendered, 0, len(doc.Nodes))
	for i := range doc.Nodes {
		node := &doc.Nodes[i]
		var sb strings.Builder
		if err := writeNodeMarkdown(&sb, doc, node); err != nil {
			return nil, &docerr.RenderError{Node: node.NodeName, Err: err}
		}
		out = append(out, Rendered{Name: node.NodeName, Text: sb.String()})
	}
	return out, nil
}

func (g *MarkdownGenerator) AddExtension(name string) string {
	return name + ".md"
}

func (g *MarkdownGenerator) RenderIndex(docs []*doctypes.Document, destDir string) (string, error) {
	return renderIndexMarkdown(docs, destDir, g.AddExtension)
}

// checkNodeName rejects names that cannot be used as a single path element.
func checkNodeName(name string) error {
	switch {
	case name == "":
		return errors.New("node name is empty")
	case name == "." || name == "..":
		return fmt.Errorf("node name %q is not a file name", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("node name %q contains a path separator", name)
	case !utf8.ValidString(name):
		return errors.New("node name is not valid UTF-8")
	}
	return nil
}

// mdWriter keeps the first write error so sections can be written without
// checking each line.
type mdWriter struct {
	w   io.Writer
	err error
}

func (m *mdWriter) line(format string, args ...any) {
	if m.err != nil {
		return
	}
	_, m.err = fmt.Fprintf(m.w, format+"\n", args...)
}

func (m *mdWriter) blank() { m.line("") }

// writeNodeMarkdown writes the document for a single node. Heading levels,
// section order and spacing are part of the output format.
func writeNodeMarkdown(w io.Writer, doc *doctypes.Document, node *doctypes.Node) error {
	if err := checkNodeName(node.NodeName); err != nil {
		return err
	}
	m := &mdWriter{w: w}

	m.line("# %s", node.NodeName)
	if doc.Repo != nil {
		m.line("From package '[%s](%s)'", doc.PackageName, *doc.Repo)
	} else {
		m.line("From package '%s'", doc.PackageName)
	}

	m.line("# File")
	for _, src := range node.SourceFile {
		m.line("`%s`", src)
	}
	m.blank()

	m.line("## Summary \n %s", node.Summary)

	// Sections are gated on presence: an explicitly empty list still
	// produces its heading.
	if node.Subscribes != nil || node.Publishes != nil {
		m.line("## Topics\n")
		if node.Publishes != nil {
			m.line("### Publishes")
			writeTopics(m, *node.Publishes)
			m.blank()
		}
		if node.Subscribes != nil {
			m.line("### Subscribes")
			writeTopics(m, *node.Subscribes)
			m.blank()
		}
	}

	if node.Params != nil {
		m.line("## Params")
		writeParams(m, *node.Params)
		m.blank()
	}

	if node.PotentialImprovements != nil {
		m.line("## Potential Improvements")
		m.line("%s \n", *node.PotentialImprovements)
	}

	if node.Launch != nil {
		m.line("# Launch")
		for _, launch := range *node.Launch {
			m.line("## File \n %s \n \n %s \n", launch.FilePath, launch.Usage)

			if launch.Remap != nil {
				m.line("### Remappings")
				for _, r := range *launch.Remap {
					m.line("- from `%s` to `%s`", r.From, r.To)
				}
				m.blank()
			}

			if launch.Args != nil {
				m.line("### Args")
				writeParams(m, *launch.Args)
				m.blank()
			}
		}
	}

	if node.Misc != nil {
		m.line("# Misc \n %s ", *node.Misc)
	}
	return m.err
}

func writeTopics(m *mdWriter, topics []doctypes.Topic) {
	for _, t := range topics {
		m.line("- `%s`: %s", t.Name, t.Description)
	}
}

func writeParams(m *mdWriter, params []doctypes.Param) {
	for _, p := range params {
		m.line("- `%s`: %s", p.Name, p.Description)
	}
}

// IndexLink returns the link target for a node's output under destDir. It
// is built from the same AddExtension used to name the output file.
func IndexLink(destDir, nodeName string, addExt func(string) string) (string, error) {
	if !utf8.ValidString(destDir) {
		return "", &docerr.IOError{Op: "link", Path: destDir, Err: errors.New("path is not valid UTF-8")}
	}
	file := addExt(nodeName)
	if !utf8.ValidString(file) {
		return "", &docerr.IOError{Op: "link", Path: file, Err: errors.New("file name is not valid UTF-8")}
	}
	return filepath.ToSlash(filepath.Join(destDir, file)), nil
}

func renderIndexMarkdown(docs []*doctypes.Document, destDir string, addExt func(string) string) (string, error) {
	var sb strings.Builder
	m := &mdWriter{w: &sb}

	for _, group := range index.GroupByPackage(docs) {
		m.line("# %s", group.Package)
		for _, ref := range group.Nodes {
			link, err := IndexLink(destDir, ref.Node.NodeName, addExt)
			if err != nil {
				return "", err
			}
			m.line("- [%s](%s)", ref.Node.NodeName, link)
		}
		m.blank()
	}
	if m.err != nil {
		return "", fmt.Errorf("render index: %w", m.err)
	}
	return sb.String(), nil
}
