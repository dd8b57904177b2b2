package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dgallion1/doctor/internal/config"
	"github.com/dgallion1/doctor/internal/docerr"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `package_name = "cv"

[[nodes]]
node_name = "white_line_detection"
source_file = ["src/wld.cpp"]
summary = "Finds white lines."
`

func newTestApp(fs afero.Fs) (*app, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &app{
		cfg: config.Config{
			LogLevel:  "info",
			LogFormat: "text",
			Jobs:      1,
			IndexName: "NODES_README",
		},
		fs:     fs,
		stdout: &out,
		stderr: &errOut,
	}, &out
}

func execute(a *app, args ...string) error {
	return a.execute(context.Background(), args)
}

func TestGenCommand(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/nested/cv.doctor.toml", []byte(testConfig), 0o644))

	a, out := newTestApp(fs)
	require.NoError(t, execute(a, "gen", "/src", "-d", "/out", "-r", "--readme"))

	assert.Contains(t, out.String(), "Created doc for white_line_detection")
	assert.Contains(t, out.String(), "Created index /out/NODES_README.md")
	assert.Contains(t, out.String(), "Read 2 files in 2 directories")

	for _, path := range []string{"/out/white_line_detection.md", "/out/NODES_README.md"} {
		ok, err := afero.Exists(fs, path)
		require.NoError(t, err)
		assert.True(t, ok, "missing %s", path)
	}
}

func TestGenCommand_HTML(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/cv.doctor.toml", []byte(testConfig), 0o644))

	a, _ := newTestApp(fs)
	require.NoError(t, execute(a, "gen", "/src", "--dest-dir", "/out", "--doc-type", "html", "-j", "2"))

	ok, err := afero.Exists(fs, "/out/white_line_detection.html")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGenCommand_UnknownTypes(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/src", 0o755))

	a, _ := newTestApp(fs)
	assert.ErrorContains(t, execute(a, "gen", "/src", "--doc-type", "pdf"), "unsupported document type")

	a, _ = newTestApp(fs)
	assert.ErrorContains(t, execute(a, "gen", "/src", "--config-type", "ini"), "unsupported config type")
}

func TestGenCommand_ParseFailure(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/bad.doctor.toml", []byte("package_name = "), 0o644))

	a, out := newTestApp(fs)
	err := execute(a, "gen", "/src", "-d", "/out")

	var parseErr *docerr.ParseError
	require.True(t, errors.As(err, &parseErr), "expected ParseError, got %T: %v", err, err)
	assert.Equal(t, "/src/bad.doctor.toml", parseErr.Path)
	assert.Empty(t, out.String())
}

func TestGenCommand_ReportsFailureOnce(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/bad.doctor.toml", []byte("package_name = "), 0o644))

	a, _ := newTestApp(fs)
	require.Error(t, execute(a, "gen", "/src", "-d", "/out"))

	stderr := a.stderr.(*bytes.Buffer).String()
	assert.Equal(t, 1, strings.Count(stderr, "/src/bad.doctor.toml"), stderr)
	assert.Equal(t, 1, strings.Count(stderr, "level=ERROR"), stderr)
	assert.NotContains(t, stderr, "Error:")
}

func TestFlagErrorIsLogged(t *testing.T) {
	a, _ := newTestApp(afero.NewMemMapFs())
	require.Error(t, execute(a, "gen", "/src", "--no-such-flag"))

	stderr := a.stderr.(*bytes.Buffer).String()
	assert.Contains(t, stderr, "no-such-flag")
	assert.Equal(t, 1, strings.Count(stderr, "level=ERROR"), stderr)
}

func TestGenCommand_KeepGoingPrintsSummary(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/a.doctor.toml", []byte(testConfig), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/src/b.doctor.toml", []byte("package_name = "), 0o644))

	a, out := newTestApp(fs)
	err := execute(a, "gen", "/src", "-d", "/out", "--keep-going")
	require.Error(t, err)
	assert.Contains(t, out.String(), "Created doc for white_line_detection")
}

func TestGenCommand_RequiresSource(t *testing.T) {
	a, _ := newTestApp(afero.NewMemMapFs())
	assert.Error(t, execute(a, "gen"))
}

func TestInitCommand(t *testing.T) {
	fs := afero.NewMemMapFs()
	a, out := newTestApp(fs)

	require.NoError(t, execute(a, "init", "lidar_filter", "--dir", "/work"))
	assert.Contains(t, out.String(), "Created /work/lidar_filter.doctor.toml")

	ok, err := afero.Exists(fs, "/work/lidar_filter.doctor.toml")
	require.NoError(t, err)
	assert.True(t, ok)

	a, _ = newTestApp(fs)
	assert.Error(t, execute(a, "init", "lidar_filter", "--dir", "/work"))

	a, _ = newTestApp(fs)
	assert.NoError(t, execute(a, "init", "lidar_filter", "--dir", "/work", "--force"))
}

func TestVerifyCommand(t *testing.T) {
	a, _ := newTestApp(afero.NewMemMapFs())
	err := execute(a, "verify")
	assert.ErrorIs(t, err, errNotImplemented)
}

func TestVerboseAndQuietConflict(t *testing.T) {
	a, _ := newTestApp(afero.NewMemMapFs())
	assert.Error(t, execute(a, "verify", "-v", "-q"))
}
