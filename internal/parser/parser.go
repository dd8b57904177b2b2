package parser

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/doctor/internal/docerr"
	"github.com/dgallion1/doctor/internal/doctypes"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
)

// Parser converts config text into a Document.
type Parser interface {
	// ParseText decodes raw config text.
	ParseText(raw string) (*doctypes.Document, error)
	// ParsePath opens the file at path and parses it.
	ParsePath(path string) (*doctypes.Document, error)
	// ParseFile reads r to the end and parses the contents.
	ParseFile(r io.Reader) (*doctypes.Document, error)
	// MatchesFilename reports whether name is a config for this parser.
	MatchesFilename(name string) bool
}

// Type selects a config format.
type Type string

const (
	TypeTOML Type = "toml"
	TypeYAML Type = "yaml"
)

// Types lists every supported config format.
var Types = []Type{TypeTOML, TypeYAML}

// ForType returns the parser for a config format. Files are opened through fs.
func ForType(t Type, fs afero.Fs) (Parser, error) {
	switch t {
	case TypeTOML:
		return NewTOMLParser(fs), nil
	case TypeYAML:
		return NewYAMLParser(fs), nil
	default:
		return nil, fmt.Errorf("unsupported config type: %s", t)
	}
}

var errInvalidUTF8 = errors.New("contents are not valid UTF-8")

var docValidate *validator.Validate

func init() {
	docValidate = validator.New(validator.WithRequiredStructEnabled())

	// Report config keys rather than Go field names.
	docValidate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("toml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// validateDocument checks that every required key of a decoded config is
// present. Empty values are accepted.
func validateDocument(doc *rawDocument) error {
	err := docValidate.Struct(doc)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		if fe.Tag() == "required" {
			msgs = append(msgs, "missing required field "+field)
		} else {
			msgs = append(msgs, fmt.Sprintf("field %s failed %q check", field, fe.Tag()))
		}
	}
	return fmt.Errorf("invalid document: %s", strings.Join(msgs, "; "))
}

// readText reads all of r and rejects contents that are not UTF-8.
func readText(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", &docerr.IOError{Op: "read", Err: err}
	}
	if !utf8.Valid(data) {
		return "", &docerr.IOError{Op: "read", Err: errInvalidUTF8}
	}
	return string(data), nil
}

// parsePath opens path on fs and hands the file to parseFile. Errors from
// parseFile gain the path so the offending config can be located.
func parsePath(fs afero.Fs, path string, parseFile func(io.Reader) (*doctypes.Document, error)) (*doctypes.Document, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, &docerr.IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	doc, err := parseFile(f)
	if err != nil {
		var ioErr *docerr.IOError
		if errors.As(err, &ioErr) && ioErr.Path == "" {
			ioErr.Path = path
		}
		var parseErr *docerr.ParseError
		if errors.As(err, &parseErr) && parseErr.Path == "" {
			parseErr.Path = path
		}
		return nil, err
	}
	return doc, nil
}
