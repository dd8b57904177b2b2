// Package docerr defines the error kinds surfaced by a generation run.
//
// The wrapping kinds unwrap to their cause so callers can use errors.Is on
// the underlying fs or decode error and errors.As on the kind itself.
package docerr

import "fmt"

// IOError reports a filesystem resource that could not be opened, read,
// listed, or written, or a path that is not valid text.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseError reports config text that does not fit the document schema.
// Path is empty when the text did not come from a file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse config: %v", e.Err)
	}
	return fmt.Sprintf("parse config %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// RenderError reports a node that could not be rendered.
type RenderError struct {
	Node string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to generate document for node %q: %v", e.Node, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// InvalidInputError reports a name whose bytes cannot be read as text.
type InvalidInputError struct {
	Name   string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Name, e.Reason)
}
