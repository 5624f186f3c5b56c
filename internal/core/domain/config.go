// Package domain contains the core types for conbuild.
package domain

import (
	"encoding/json"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// BuildConfig describes one console build. The tracked fields (TagName,
// ThemeFile, IndexFile, AppTitle, Attributes) are the only ones that
// participate in cache-key computation; everything else can change without
// invalidating a cached build.
type BuildConfig struct {
	// TagName is the upstream release tag the console is built from.
	TagName string `yaml:"tagName"`
	// ThemeFile is an optional stylesheet copied over the default theme.
	ThemeFile string `yaml:"themeFile"`
	// IndexFile is an optional replacement for the generated index page.
	IndexFile string `yaml:"indexFile"`
	// AppTitle overrides the page title of the built console.
	AppTitle string `yaml:"appTitle"`
	// Attributes is an ordered list of scalar flags and key/value pairs
	// forwarded to the bundler.
	Attributes []Attribute `yaml:"attributes"`
	// NoCache disables the build cache entirely.
	NoCache bool `yaml:"noCache"`

	// SourceDir holds the unpacked console sources the bundler operates on.
	SourceDir string `yaml:"sourceDir"`
	// OutputDir receives the bundled static output.
	OutputDir string `yaml:"outputDir"`
	// BundleCommand is the external bundler invocation, argv style.
	BundleCommand []string `yaml:"bundleCommand"`
}

// Attribute is one element of the ordered attributes sequence. Exactly one of
// Value or Pairs is set: a YAML scalar decodes into Value, a YAML mapping
// decodes into Pairs.
type Attribute struct {
	Value string
	Pairs map[string]string
}

// UnmarshalYAML decodes a scalar or mapping node into the Attribute.
func (a *Attribute) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&a.Value)
	case yaml.MappingNode:
		return node.Decode(&a.Pairs)
	default:
		return zerr.With(zerr.New("attribute must be a scalar or a mapping"), "line", node.Line)
	}
}

// MarshalJSON renders the attribute as either a JSON string or a JSON object,
// mirroring the YAML shape it was decoded from. Object keys are emitted in
// sorted order, so the encoding is deterministic.
func (a Attribute) MarshalJSON() ([]byte, error) {
	if a.Pairs != nil {
		return json.Marshal(a.Pairs)
	}
	return json.Marshal(a.Value)
}

// IsScalar reports whether the attribute carries a plain string value.
func (a Attribute) IsScalar() bool {
	return a.Pairs == nil
}
