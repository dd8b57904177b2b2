package parser

import (
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dgallion1/doctor/internal/docerr"
	"github.com/dgallion1/doctor/internal/doctypes"
	"github.com/spf13/afero"
)

// TOMLSuffix marks a file as a TOML node config.
const TOMLSuffix = "doctor.toml"

// TOMLParser handles *doctor.toml files.
type TOMLParser struct {
	fs afero.Fs
}

func NewTOMLParser(fs afero.Fs) *TOMLParser {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &TOMLParser{fs: fs}
}

func (p *TOMLParser) ParseText(raw string) (*doctypes.Document, error) {
	var rd rawDocument
	if _, err := toml.Decode(raw, &rd); err != nil {
		return nil, &docerr.ParseError{Err: err}
	}
	doc, err := decodeDocument(&rd)
	if err != nil {
		return nil, &docerr.ParseError{Err: err}
	}
	return doc, nil
}

func (p *TOMLParser) ParsePath(path string) (*doctypes.Document, error) {
	return parsePath(p.fs, path, p.ParseFile)
}

func (p *TOMLParser) ParseFile(r io.Reader) (*doctypes.Document, error) {
	text, err := readText(r)
	if err != nil {
		return nil, err
	}
	return p.ParseText(text)
}

// MatchesFilename is a literal, case-sensitive suffix test.
func (p *TOMLParser) MatchesFilename(name string) bool {
	return strings.HasSuffix(name, TOMLSuffix)
}
