// Package scaffold writes starter config files for new nodes.
package scaffold

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dgallion1/doctor/internal/docerr"
	"github.com/dgallion1/doctor/internal/doctypes"
	"github.com/dgallion1/doctor/internal/parser"
	"github.com/spf13/afero"
)

const header = `# Node documentation config.
# Generate documents with: doctor gen <dir>
# Optional sections (publishes, subscribes, params, launch, misc,
# potential_improvements) can be removed to leave them out of the output.

`

// Demo returns the template document for a node called name.
func Demo(name string) *doctypes.Document {
	str := func(s string) *string { return &s }
	return &doctypes.Document{
		PackageName: "my_package",
		Repo:        str("https://github.com/example/my_package"),
		Nodes: []doctypes.Node{{
			NodeName:              name,
			SourceFile:            []string{"src/" + name + ".cpp"},
			Summary:               "Describe what " + name + " does.",
			PotentialImprovements: str("Known limitations and ideas for future work."),
			Misc:                  str("Anything else worth knowing."),
			Publishes:             &[]doctypes.Topic{{Name: "/" + name + "/output", Description: "What is published here."}},
			Subscribes:            &[]doctypes.Topic{{Name: "/" + name + "/input", Description: "What is consumed here."}},
			Params:                &[]doctypes.Param{{Name: "rate", Description: "Update rate in Hz."}},
			Launch: &[]doctypes.LaunchInfo{{
				FilePath: "launch/" + name + ".launch.py",
				Usage:    "ros2 launch my_package " + name + ".launch.py",
				Args:     &[]doctypes.Param{{Name: "use_sim_time", Description: "Use the simulation clock."}},
				Remap:    &[]doctypes.Remap{{From: "/input", To: "/" + name + "/input"}},
			}},
		}},
	}
}

// Render encodes the template for name as TOML.
func Render(name string) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(header)
	if err := toml.NewEncoder(&buf).Encode(Demo(name)); err != nil {
		return "", fmt.Errorf("encode template: %w", err)
	}
	return buf.String(), nil
}

// Write creates <dir>/<name>.doctor.toml. An existing file is only replaced
// when force is set.
func Write(fs afero.Fs, dir, name string, force bool) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", &docerr.InvalidInputError{Name: name, Reason: "node name must be a plain file name"}
	}

	path := filepath.Join(dir, name+"."+parser.TOMLSuffix)
	if !force {
		if ok, err := afero.Exists(fs, path); err != nil {
			return "", &docerr.IOError{Op: "stat", Path: path, Err: err}
		} else if ok {
			return "", &docerr.IOError{Op: "create", Path: path, Err: os.ErrExist}
		}
	}

	text, err := Render(name)
	if err != nil {
		return "", err
	}
	ok, err := afero.DirExists(fs, dir)
	if err != nil {
		return "", &docerr.IOError{Op: "stat", Path: dir, Err: err}
	}
	if !ok {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return "", &docerr.IOError{Op: "create", Path: dir, Err: err}
		}
	}
	if err := afero.WriteFile(fs, path, []byte(text), 0o644); err != nil {
		return "", &docerr.IOError{Op: "write", Path: path, Err: err}
	}
	return path, nil
}

// ErrExists reports whether err came from refusing to overwrite a config.
func ErrExists(err error) bool {
	return errors.Is(err, os.ErrExist)
}
