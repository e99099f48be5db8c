// Package types implements the type references consumed by the linker:
// the type model, substitution, bounds, and conformance with hints.
package types

import (
	"strings"
)

// Type is a reference to a type.
type Type interface {
	// String returns a human-readable string representation
	// appropriate for error messages.
	String() string
	buildString(w *strings.Builder) *strings.Builder
}

// Kind is the kind of a primitive type.
type Kind int

const (
	Boolean Kind = iota + 1
	Char
	Byte
	Short
	Int
	Long
	Float
	Double
	Void
)

var kindNames = map[Kind]string{
	Boolean: "boolean",
	Char:    "char",
	Byte:    "byte",
	Short:   "short",
	Int:     "int",
	Long:    "long",
	Float:   "float",
	Double:  "double",
	Void:    "void",
}

func (k Kind) String() string { return kindNames[k] }

// Primitive is a primitive, non-reference type.
type Primitive struct {
	Kind Kind
}

var prims = map[Kind]*Primitive{}

func init() {
	for k := range kindNames {
		prims[k] = &Primitive{Kind: k}
	}
}

// Prim returns the primitive type of the given kind.
func Prim(k Kind) *Primitive { return prims[k] }

// TypeParm is a declared type parameter.
type TypeParm struct {
	Name string
	// Bounds are the declared upper bounds.
	// If empty, the bound is Object.
	Bounds []Type
	// Declarator is the name of the class or feature
	// that declares the parameter; it is used only for printing.
	Declarator string
}

// ClassDef is a class or interface definition.
type ClassDef struct {
	Name  string
	Parms []*TypeParm
	// Super are the direct supertypes
	// in terms of the definition's own Parms.
	Super     []Type
	Interface bool
	Final     bool
	// Boxes is the primitive kind wrapped by this class,
	// or zero if the class is not a wrapper.
	Boxes Kind
}

// Class is a reference to a class, possibly parameterized.
// A Class with no Args whose Def has Parms is a raw type.
type Class struct {
	Def  *ClassDef
	Args []Type
}

// IsRaw returns whether the class is a raw reference to a generic class.
func (c *Class) IsRaw() bool { return len(c.Args) == 0 && len(c.Def.Parms) > 0 }

// Array is an array type.
type Array struct {
	Elem Type
}

// Var is an occurrence of a type parameter.
type Var struct {
	Parm *TypeParm
}

// Wildcard is a wildcard type argument.
type Wildcard struct {
	// Upper are the upper bounds.
	// If empty, the upper bound is Object.
	Upper []Type
	// Lower is the lower bound or nil.
	Lower Type
}

// Compound is an intersection or union type.
type Compound struct {
	Union bool
	Types []Type
}

// Unbound is a placeholder standing for one type parameter
// at one call site until its value is known.
// Placeholders are compared by identity.
type Unbound struct {
	Parm *TypeParm
	ID   int
}

// Any is the type of the null literal.
type Any struct{}

// Unknown is the type of an expression whose type could not be determined.
type Unknown struct{}

// A Resolver reports the current value of placeholders.
type Resolver interface {
	// Resolved returns the type that the placeholder stands for,
	// or nil if it is not yet resolved.
	Resolved(*Unbound) Type
}

// resolved returns typ with any leading resolved placeholders replaced.
func resolved(r Resolver, typ Type) Type {
	for r != nil {
		u, ok := typ.(*Unbound)
		if !ok {
			return typ
		}
		t := r.Resolved(u)
		if t == nil || t == typ {
			return typ
		}
		typ = t
	}
	return typ
}

// IsUnresolved returns whether the type is a placeholder without a value.
func IsUnresolved(r Resolver, typ Type) bool {
	_, ok := resolved(r, typ).(*Unbound)
	return ok
}

// IsPrimitive returns whether the type is a primitive type.
func IsPrimitive(typ Type) bool {
	_, ok := typ.(*Primitive)
	return ok
}

// IsVoid returns whether the type is the void type.
func IsVoid(typ Type) bool {
	p, ok := typ.(*Primitive)
	return ok && p.Kind == Void
}

// IsUnknown returns whether the type is nil or Unknown.
func IsUnknown(typ Type) bool {
	if typ == nil {
		return true
	}
	_, ok := typ.(*Unknown)
	return ok
}

// Component returns the component type of an array type, or nil.
func Component(typ Type) Type {
	if a, ok := typ.(*Array); ok {
		return a.Elem
	}
	return nil
}

// WildcardBounds returns the constituent bounds of a wildcard or compound type.
func WildcardBounds(typ Type) []Type {
	switch typ := typ.(type) {
	case *Wildcard:
		ts := append([]Type{}, typ.Upper...)
		if typ.Lower != nil {
			ts = append(ts, typ.Lower)
		}
		return ts
	case *Compound:
		return typ.Types
	default:
		return nil
	}
}

// ParmOf returns the type parameter governing a type reference, or nil.
// It finds the parameter even when it is nested under a wildcard
// or is a component of a compound type.
func ParmOf(r Resolver, typ Type) *TypeParm {
	switch typ := resolved(r, typ).(type) {
	case *Unbound:
		return typ.Parm
	case *Var:
		return typ.Parm
	case *Wildcard:
		for _, u := range typ.Upper {
			if p := ParmOf(r, u); p != nil {
				return p
			}
		}
		if typ.Lower != nil {
			return ParmOf(r, typ.Lower)
		}
	case *Compound:
		for _, c := range typ.Types {
			if p := ParmOf(r, c); p != nil {
				return p
			}
		}
	}
	return nil
}
