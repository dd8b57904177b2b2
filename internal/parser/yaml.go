package parser

import (
	"io"
	"strings"

	"github.com/dgallion1/doctor/internal/docerr"
	"github.com/dgallion1/doctor/internal/doctypes"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// YAMLSuffix marks a file as a YAML node config.
const YAMLSuffix = "doctor.yaml"

// YAMLParser handles *doctor.yaml files. The schema and validation rules
// are the same as for TOML configs.
type YAMLParser struct {
	fs afero.Fs
}

func NewYAMLParser(fs afero.Fs) *YAMLParser {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &YAMLParser{fs: fs}
}

func (p *YAMLParser) ParseText(raw string) (*doctypes.Document, error) {
	var rd rawDocument
	if err := yaml.Unmarshal([]byte(raw), &rd); err != nil {
		return nil, &docerr.ParseError{Err: err}
	}
	doc, err := decodeDocument(&rd)
	if err != nil {
		return nil, &docerr.ParseError{Err: err}
	}
	return doc, nil
}

func (p *YAMLParser) ParsePath(path string) (*doctypes.Document, error) {
	return parsePath(p.fs, path, p.ParseFile)
}

func (p *YAMLParser) ParseFile(r io.Reader) (*doctypes.Document, error) {
	text, err := readText(r)
	if err != nil {
		return nil, err
	}
	return p.ParseText(text)
}

func (p *YAMLParser) MatchesFilename(name string) bool {
	return strings.HasSuffix(name, YAMLSuffix)
}
