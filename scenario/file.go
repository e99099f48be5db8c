// Package scenario loads declarative linking scenarios:
// class declarations, candidate features, and call sites to link,
// written in YAML or TOML.
package scenario

import (
	"fmt"

	"github.com/eaburns/link/loc"
	"gopkg.in/yaml.v3"
)

// A File is a decoded scenario file.
type File struct {
	// Include are the paths of scenario files, relative to the loader root,
	// whose classes and features are in scope in this file.
	Include  []string      `yaml:"include" toml:"include"`
	Classes  []ClassDecl   `yaml:"classes" toml:"classes"`
	Features []FeatureDecl `yaml:"features" toml:"features"`
	Calls    []CallDecl    `yaml:"calls" toml:"calls"`

	Path     string  `yaml:"-" toml:"-"`
	FullPath string  `yaml:"-" toml:"-"`
	Deps     []*File `yaml:"-" toml:"-"`
	src      *loc.Source
	pos      positions
}

// A ClassDecl declares a class.
type ClassDecl struct {
	Name string `yaml:"name" toml:"name"`
	// Parms are type parameters, each "T" or "T extends Bound".
	Parms     []string `yaml:"parms" toml:"parms"`
	Super     []string `yaml:"super" toml:"super"`
	Interface bool     `yaml:"interface" toml:"interface"`
	Final     bool     `yaml:"final" toml:"final"`
}

// A FeatureDecl declares a candidate feature by its signature.
type FeatureDecl struct {
	Sig string `yaml:"sig" toml:"sig"`
	// Declarator is the name of the declaring class, if any.
	Declarator string `yaml:"declarator" toml:"declarator"`
	// Hidden features are found by lookup but not visible.
	Hidden bool `yaml:"hidden" toml:"hidden"`
}

// A CallDecl is a call site.
type CallDecl struct {
	Name string `yaml:"name" toml:"name"`
	// Kind is call (the default), assign, or new.
	Kind     string   `yaml:"kind" toml:"kind"`
	Receiver *Expr    `yaml:"receiver" toml:"receiver"`
	Args     []Expr   `yaml:"args" toml:"args"`
	TypeArgs []string `yaml:"type-args" toml:"type-args"`
	// Want is the expected type of the call, if any.
	Want   string  `yaml:"want" toml:"want"`
	Expect *Expect `yaml:"expect" toml:"expect"`
}

// An Expr is an argument or receiver expression.
// Exactly one of its fields is set.
type Expr struct {
	// Type is the static type of an expression of known type.
	Type string    `yaml:"type" toml:"type"`
	Null bool      `yaml:"null" toml:"null"`
	Call *CallDecl `yaml:"call" toml:"call"`
}

// UnmarshalYAML decodes a call site.
// Null arguments are kept as null literals.
func (d *CallDecl) UnmarshalYAML(n *yaml.Node) error {
	type callDecl CallDecl
	var x callDecl
	if err := n.Decode(&x); err != nil {
		return err
	}
	if args := mappingValue(n, "args"); args != nil && args.Kind == yaml.SequenceNode {
		x.Args = make([]Expr, len(args.Content))
		for i, a := range args.Content {
			if err := x.Args[i].UnmarshalYAML(a); err != nil {
				return err
			}
		}
	}
	*d = CallDecl(x)
	return nil
}

// UnmarshalYAML accepts a scalar as shorthand:
// null for a null literal, and any other scalar for a type.
func (e *Expr) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		if isNull(n) || n.Value == "null" {
			*e = Expr{Null: true}
		} else {
			*e = Expr{Type: n.Value}
		}
		return nil
	case yaml.MappingNode:
		var x Expr
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			var err error
			switch {
			case isNull(k) || k.Value == "null":
				err = v.Decode(&x.Null)
			case k.Value == "type":
				err = v.Decode(&x.Type)
			case k.Value == "call":
				err = v.Decode(&x.Call)
			}
			if err != nil {
				return err
			}
		}
		*e = x
		return nil
	default:
		return fmt.Errorf("line %d: expression must be a scalar or a mapping", n.Line)
	}
}

// isNull returns whether a node is an untagged or explicit YAML null.
func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

// mappingValue returns the value of a key of a mapping node, or nil.
func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

func (e *Expr) validate() error {
	var n int
	if e.Type != "" {
		n++
	}
	if e.Null {
		n++
	}
	if e.Call != nil {
		n++
	}
	if n != 1 {
		return fmt.Errorf("expression must have exactly one of type, null, or call")
	}
	return nil
}

// Expect is the expected outcome of linking a call.
// Empty fields are not checked.
type Expect struct {
	// Winner is the string of the selected feature, or "none".
	Winner string `yaml:"winner" toml:"winner"`
	// Type is the string of the type of the call.
	Type string `yaml:"type" toml:"type"`
	// Ties are the strings of the features tied with the winner.
	Ties []string `yaml:"ties" toml:"ties"`
	// Bindings are the inferred type arguments of the winner, as "T=Type".
	Bindings []string `yaml:"bindings" toml:"bindings"`
	// Errors are substrings of the reported errors, in order.
	Errors []string `yaml:"errors" toml:"errors"`
}

// positions are the source offsets of the declarations of a File.
type positions struct {
	features []int
	calls    []int
}

func (p positions) at(offs []int, i int) (int, bool) {
	if i >= len(offs) || offs[i] < 0 {
		return 0, false
	}
	return offs[i], true
}
