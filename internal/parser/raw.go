package parser

import "github.com/dgallion1/doctor/internal/doctypes"

// The raw* types are what configs decode into. Required strings are
// pointers and required lists are plain slices, so validator's required tag
// checks that a key is present without rejecting empty values. Decoders
// allocate a non-nil slice for an empty list.

type rawDocument struct {
	PackageName *string   `toml:"package_name" yaml:"package_name" validate:"required"`
	Repo        *string   `toml:"repo" yaml:"repo"`
	Nodes       []rawNode `toml:"nodes" yaml:"nodes" validate:"required,dive"`
}

type rawNode struct {
	NodeName              *string      `toml:"node_name" yaml:"node_name" validate:"required"`
	SourceFile            []string     `toml:"source_file" yaml:"source_file" validate:"required"`
	Summary               *string      `toml:"summary" yaml:"summary" validate:"required"`
	PotentialImprovements *string      `toml:"potential_improvements" yaml:"potential_improvements"`
	Misc                  *string      `toml:"misc" yaml:"misc"`
	Publishes             *[]rawEntry  `toml:"publishes" yaml:"publishes" validate:"omitempty,dive"`
	Subscribes            *[]rawEntry  `toml:"subscribes" yaml:"subscribes" validate:"omitempty,dive"`
	Params                *[]rawEntry  `toml:"params" yaml:"params" validate:"omitempty,dive"`
	Launch                *[]rawLaunch `toml:"launch" yaml:"launch" validate:"omitempty,dive"`
}

// rawEntry is the shared shape of topics, params and launch args.
type rawEntry struct {
	Name        *string `toml:"name" yaml:"name" validate:"required"`
	Description *string `toml:"description" yaml:"description" validate:"required"`
}

type rawLaunch struct {
	FilePath *string     `toml:"file_path" yaml:"file_path" validate:"required"`
	Usage    *string     `toml:"usage" yaml:"usage" validate:"required"`
	Args     *[]rawEntry `toml:"args" yaml:"args" validate:"omitempty,dive"`
	Remap    *[]rawRemap `toml:"remap" yaml:"remap" validate:"omitempty,dive"`
}

type rawRemap struct {
	From *string `toml:"from" yaml:"from" validate:"required"`
	To   *string `toml:"to" yaml:"to" validate:"required"`
}

// decodeDocument validates raw and converts it into the document model.
func decodeDocument(raw *rawDocument) (*doctypes.Document, error) {
	if err := validateDocument(raw); err != nil {
		return nil, err
	}

	doc := &doctypes.Document{
		PackageName: *raw.PackageName,
		Repo:        raw.Repo,
		Nodes:       make([]doctypes.Node, 0, len(raw.Nodes)),
	}
	for _, n := range raw.Nodes {
		doc.Nodes = append(doc.Nodes, doctypes.Node{
			NodeName:              *n.NodeName,
			SourceFile:            n.SourceFile,
			Summary:               *n.Summary,
			PotentialImprovements: n.PotentialImprovements,
			Misc:                  n.Misc,
			Publishes:             convertList(n.Publishes, toTopic),
			Subscribes:            convertList(n.Subscribes, toTopic),
			Params:                convertList(n.Params, toParam),
			Launch:                convertList(n.Launch, toLaunch),
		})
	}
	return doc, nil
}

// convertList maps an optional list, keeping nil for an absent one.
func convertList[R, T any](in *[]R, conv func(R) T) *[]T {
	if in == nil {
		return nil
	}
	out := make([]T, 0, len(*in))
	for _, r := range *in {
		out = append(out, conv(r))
	}
	return &out
}

func toTopic(e rawEntry) doctypes.Topic {
	return doctypes.Topic{Name: *e.Name, Description: *e.Description}
}

func toParam(e rawEntry) doctypes.Param {
	return doctypes.Param{Name: *e.Name, Description: *e.Description}
}

func toRemap(r rawRemap) doctypes.Remap {
	return doctypes.Remap{From: *r.From, To: *r.To}
}

func toLaunch(l rawLaunch) doctypes.LaunchInfo {
	return doctypes.LaunchInfo{
		FilePath: *l.FilePath,
		Usage:    *l.Usage,
		Args:     convertList(l.Args, toParam),
		Remap:    convertList(l.Remap, toRemap),
	}
}
