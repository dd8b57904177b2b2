package doctypes

// Document is the parsed form of one config file.
type Document struct {
	PackageName string  `toml:"package_name"`
	Repo        *string `toml:"repo,omitempty"` // Link rendered on the package line
	Nodes       []Node  `toml:"nodes"`
}

// Node documents a single software component within a package.
//
// Optional lists are pointers so that an explicitly empty list can be told
// apart from an absent one; renderers gate sections on presence.
type Node struct {
	NodeName              string        `toml:"node_name"` // Output filename stem
	SourceFile            []string      `toml:"source_file"`
	Summary               string        `toml:"summary"`
	PotentialImprovements *string       `toml:"potential_improvements,omitempty"`
	Misc                  *string       `toml:"misc,omitempty"`
	Publishes             *[]Topic      `toml:"publishes,omitempty"`
	Subscribes            *[]Topic      `toml:"subscribes,omitempty"`
	Params                *[]Param      `toml:"params,omitempty"`
	Launch                *[]LaunchInfo `toml:"launch,omitempty"`
}

// Topic is a publish or subscribe channel.
type Topic struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
}

// Param is a configurable value. Launch arguments share the same shape.
type Param struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
}

// LaunchInfo describes how a node is started.
type LaunchInfo struct {
	FilePath string   `toml:"file_path"`
	Usage    string   `toml:"usage"`
	Args     *[]Param `toml:"args,omitempty"`
	Remap    *[]Remap `toml:"remap,omitempty"`
}

// Remap is a single topic remapping applied at launch.
type Remap struct {
	From string `toml:"from"`
	To   string `toml:"to"`
}

// NodeRef pairs a node with the document that owns it.
type NodeRef struct {
	Doc  *Document
	Node *Node
}
