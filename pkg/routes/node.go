package routes

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"
)

// Node is one entry of a route tree.
// Children paths may be relative to their parent.
type Node struct {
	Name     string         `yaml:"name,omitempty" json:"name,omitempty"`
	Path     string         `yaml:"path" json:"path"`
	Children []Node         `yaml:"children,omitempty" json:"children,omitempty"`
	Alias    Aliases        `yaml:"alias,omitempty" json:"alias,omitempty"`
	Redirect any            `yaml:"redirect,omitempty" json:"redirect,omitempty"`
	File     string         `yaml:"file,omitempty" json:"file,omitempty"`
	Meta     map[string]any `yaml:"meta,omitempty" json:"meta,omitempty"`
}

// Aliases is a list of alternative paths. In YAML it may be written as a
// single string or a list.
type Aliases []string

// UnmarshalYAML accepts a scalar or a sequence.
func (a *Aliases) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*a = Aliases{s}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*a = list
		return nil
	default:
		return fmt.Errorf("routes: alias must be a string or a list, got line %d", value.Line)
	}
}

// clone returns a shallow copy with its own alias and children slices.
func (n Node) clone() Node {
	c := n
	c.Alias = slices.Clone(n.Alias)
	c.Children = slices.Clone(n.Children)
	return c
}

// LoadNodes decodes a route tree from YAML (or JSON, which is valid YAML).
func LoadNodes(r io.Reader) ([]Node, error) {
	var nodes []Node
	if err := yaml.NewDecoder(r).Decode(&nodes); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("routes: decode nodes: %w", err)
	}
	return nodes, nil
}

// Walk calls fn for every node in depth-first order with the node depth.
func Walk(nodes []Node, fn func(n Node, depth int)) {
	walk(nodes, 0, fn)
}

func walk(nodes []Node, depth int, fn func(Node, int)) {
	for _, n := range nodes {
		fn(n, depth)
		walk(n.Children, depth+1, fn)
	}
}
