package generator

import (
	"bytes"
	"fmt"
	"html"

	"github.com/dgallion1/doctor/internal/docerr"
	"github.com/dgallion1/doctor/internal/doctypes"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// HTMLGenerator renders the Markdown form of each node and converts it to a
// standalone HTML page.
type HTMLGenerator struct {
	md goldmark.Markdown
}

func NewHTMLGenerator() *HTMLGenerator {
	return &HTMLGenerator{
		md: goldmark.New(goldmark.WithExtensions(extension.Linkify)),
	}
}

func (g *HTMLGenerator) RenderNodes(doc *doctypes.Document) ([]Rendered, error) {
	out := make([]Rendered, 0, len(doc.Nodes))
	for i := range doc.Nodes {
		node := &doc.Nodes[i]
		var src bytes.Buffer
		if err := writeNodeMarkdown(&src, doc, node); err != nil {
			return nil, &docerr.RenderError{Node: node.NodeName, Err: err}
		}
		page, err := g.page(node.NodeName, src.Bytes())
		if err != nil {
			return nil, &docerr.RenderError{Node: node.NodeName, Err: err}
		}
		out = append(out, Rendered{Name: node.NodeName, Text: page})
	}
	return out, nil
}

func (g *HTMLGenerator) AddExtension(name string) string {
	return name + ".html"
}

func (g *HTMLGenerator) RenderIndex(docs []*doctypes.Document, destDir string) (string, error) {
	src, err := renderIndexMarkdown(docs, destDir, g.AddExtension)
	if err != nil {
		return "", err
	}
	page, err := g.page("Nodes", []byte(src))
	if err != nil {
		return "", fmt.Errorf("render index: %w", err)
	}
	return page, nil
}

// page converts Markdown source into a complete HTML document.
func (g *HTMLGenerator) page(title string, src []byte) (string, error) {
	var body bytes.Buffer
	if err := g.md.Convert(src, &body); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(title))
	buf.WriteString("</head>\n<body>\n")
	buf.Write(body.Bytes())
	buf.WriteString("</body>\n</html>\n")
	return buf.String(), nil
}
