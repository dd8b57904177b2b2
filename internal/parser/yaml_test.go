package parser

import (
	"errors"
	"testing"

	"github.com/dgallion1/doctor/internal/docerr"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLParser_ParsePath(t *testing.T) {
	fs := afero.NewOsFs()
	p := NewYAMLParser(fs)

	doc, err := p.ParsePath("testdata/white_line_detection.doctor.yaml")
	require.NoError(t, err)

	assert.Equal(t, "cv", doc.PackageName)
	assert.Nil(t, doc.Repo)
	require.Len(t, doc.Nodes, 1)

	node := doc.Nodes[0]
	require.NotNil(t, node.Publishes)
	assert.Empty(t, *node.Publishes)
	assert.Nil(t, node.Subscribes)
	require.NotNil(t, node.Launch)
	launch := (*node.Launch)[0]
	assert.Nil(t, launch.Args)
	require.NotNil(t, launch.Remap)
	assert.Equal(t, "/camera/image_raw", (*launch.Remap)[0].To)
}

func TestYAMLParser_SchemaErrors(t *testing.T) {
	p := NewYAMLParser(nil)

	for name, raw := range map[string]string{
		"Empty":          "",
		"MissingSummary": "package_name: p\nnodes:\n  - node_name: n\n    source_file: []\n",
		"MissingSource":  "package_name: p\nnodes:\n  - node_name: n\n    summary: s\n",
		"MissingNodes":   "package_name: p\n",
		"WrongShape":     "package_name: p\nnodes: 3\n",
		"Malformed":      "package_name: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := p.ParseText(raw)
			var parseErr *docerr.ParseError
			require.True(t, errors.As(err, &parseErr), "expected ParseError, got %T", err)
		})
	}
}

func TestYAMLParser_EmptyStringsArePresent(t *testing.T) {
	raw := "package_name: p\n" +
		"nodes:\n" +
		"  - node_name: n\n" +
		"    source_file: []\n" +
		"    summary: \"\"\n" +
		"    params:\n" +
		"      - name: rate\n" +
		"        description: \"\"\n"

	doc, err := NewYAMLParser(nil).ParseText(raw)
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 1)
	assert.Empty(t, doc.Nodes[0].Summary)
	assert.Empty(t, doc.Nodes[0].SourceFile)
	require.NotNil(t, doc.Nodes[0].Params)
	assert.Equal(t, "rate", (*doc.Nodes[0].Params)[0].Name)
	assert.Empty(t, (*doc.Nodes[0].Params)[0].Description)
}

func TestYAMLParser_MatchesFilename(t *testing.T) {
	p := NewYAMLParser(nil)
	assert.True(t, p.MatchesFilename("a.doctor.yaml"))
	assert.False(t, p.MatchesFilename("a.doctor.yml"))
	assert.False(t, p.MatchesFilename("a.doctor.toml"))
}

func TestForType(t *testing.T) {
	fs := afero.NewMemMapFs()

	p, err := ForType(TypeTOML, fs)
	require.NoError(t, err)
	assert.IsType(t, &TOMLParser{}, p)

	p, err = ForType(TypeYAML, fs)
	require.NoError(t, err)
	assert.IsType(t, &YAMLParser{}, p)

	_, err = ForType("ini", fs)
	assert.Error(t, err)
}
