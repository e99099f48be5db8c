package types

import (
	"strings"
)

// A Hint classifies the conversion that an actual type
// underwent to conform to an expected type.
type Hint uint16

const (
	// Exact is conformance without conversion,
	// including reference subtyping.
	Exact Hint = 1 << iota
	PrimitiveWidening
	Boxing
	Unboxing
	// VarArg marks an argument packed into a variable-arity array.
	VarArg
	// DemandConversion is a conversion of a collection to an array.
	DemandConversion
	// Synonym is the use of an array as a collection.
	Synonym
	// Unchecked is a conversion from a raw type
	// to a parameterized type, or an unchecked result.
	Unchecked
	// Incompatible marks a failed conformance.
	Incompatible
)

var hintNames = []struct {
	h    Hint
	name string
}{
	{Exact, "exact"},
	{PrimitiveWidening, "widening"},
	{Boxing, "boxing"},
	{Unboxing, "unboxing"},
	{VarArg, "vararg"},
	{DemandConversion, "demand"},
	{Synonym, "synonym"},
	{Unchecked, "unchecked"},
	{Incompatible, "incompatible"},
}

func (h Hint) String() string {
	for _, n := range hintNames {
		if n.h == h {
			return n.name
		}
	}
	return "hint?"
}

// ParseHint returns the Hint with the given name.
func ParseHint(name string) (Hint, bool) {
	for _, n := range hintNames {
		if n.name == name {
			return n.h, true
		}
	}
	return 0, false
}

// Hints is an unordered set of Hints.
type Hints uint16

// NewHints returns a set of the given hints.
func NewHints(hs ...Hint) Hints {
	var s Hints
	for _, h := range hs {
		s |= Hints(h)
	}
	return s
}

// Has returns whether the set contains the hint.
func (s Hints) Has(h Hint) bool { return s&Hints(h) != 0 }

// With returns the set with the hint added.
func (s Hints) With(h Hint) Hints { return s | Hints(h) }

// Union returns the union of two sets.
func (s Hints) Union(o Hints) Hints { return s | o }

// OK returns whether the set describes a successful conformance.
func (s Hints) OK() bool { return !s.Has(Incompatible) }

// Slice returns the hints in the set, in declaration order.
func (s Hints) Slice() []Hint {
	var hs []Hint
	for _, n := range hintNames {
		if s.Has(n.h) {
			hs = append(hs, n.h)
		}
	}
	return hs
}

func (s Hints) String() string {
	var b strings.Builder
	b.WriteRune('{')
	for i, h := range s.Slice() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(h.String())
	}
	b.WriteRune('}')
	return b.String()
}

var incompatible = NewHints(Incompatible)

// convert adds a conversion hint to a successful conformance.
func convert(s Hints, h Hint) Hints {
	if !s.OK() {
		return s
	}
	return (s &^ Hints(Exact)).With(h)
}

// IsAssignableFrom returns whether src conforms to dst.
func (u *Universe) IsAssignableFrom(dst, src Type, r Resolver) bool {
	return u.Conform(dst, src, r).OK()
}

// Conform returns the hints describing how src conforms to dst.
// A nil dst is no expectation and conforms exactly.
// A placeholder without a value conforms to and from anything.
func (u *Universe) Conform(dst, src Type, r Resolver) Hints {
	if dst == nil {
		return NewHints(Exact)
	}
	dst, src = resolved(r, dst), resolved(r, src)
	if IsUnknown(src) || IsUnknown(dst) {
		return incompatible
	}
	if _, ok := dst.(*Unbound); ok {
		return NewHints(Exact)
	}
	if _, ok := src.(*Unbound); ok {
		return NewHints(Exact)
	}
	if Eq(dst, src) {
		return NewHints(Exact)
	}
	if d, ok := dst.(*Primitive); ok {
		return u.conformPrimitive(d, src, r)
	}

	switch d := dst.(type) {
	case *Wildcard:
		return u.Conform(u.UpperBound(d), src, r)
	case *Compound:
		if d.Union {
			return u.conformAny(d.Types, src, r, true)
		}
		var hs Hints
		for _, t := range d.Types {
			h := u.Conform(t, src, r)
			if !h.OK() {
				return incompatible
			}
			hs |= h
		}
		return hs
	}

	switch s := src.(type) {
	case *Any:
		return NewHints(Exact)
	case *Primitive:
		box := u.Box(s)
		if box == nil {
			return incompatible
		}
		return convert(u.Conform(dst, box, r), Boxing)
	case *Wildcard:
		return u.Conform(dst, u.UpperBound(s), r)
	case *Compound:
		if s.Union {
			var hs Hints
			for _, t := range s.Types {
				h := u.Conform(dst, t, r)
				if !h.OK() {
					return incompatible
				}
				hs |= h
			}
			return hs
		}
		return u.conformAny(s.Types, dst, r, false)
	case *Var:
		if len(s.Parm.Bounds) == 0 {
			return u.Conform(dst, u.ObjectType(), r)
		}
		return u.conformAny(s.Parm.Bounds, dst, r, false)
	}

	switch d := dst.(type) {
	case *Class:
		switch s := src.(type) {
		case *Class:
			return u.conformClass(d, s, r)
		case *Array:
			return u.conformArrayToClass(d, s, r)
		}
	case *Array:
		switch s := src.(type) {
		case *Array:
			return u.conformArray(d, s, r)
		case *Class:
			return u.conformClassToArray(d, s, r)
		}
	}
	return incompatible
}

// conformAny returns the least severe successful conformance
// between the fixed type and any of ts.
// If dstFirst, ts are the destinations; otherwise they are the sources.
func (u *Universe) conformAny(ts []Type, fixed Type, r Resolver, dstFirst bool) Hints {
	best := incompatible
	for _, t := range ts {
		var h Hints
		if dstFirst {
			h = u.Conform(t, fixed, r)
		} else {
			h = u.Conform(fixed, t, r)
		}
		if h.OK() && (!best.OK() || Severity(h) < Severity(best)) {
			best = h
		}
	}
	return best
}

func (u *Universe) conformPrimitive(d *Primitive, src Type, r Resolver) Hints {
	switch s := src.(type) {
	case *Primitive:
		if widens(s.Kind, d.Kind) {
			return NewHints(PrimitiveWidening)
		}
	case *Class:
		p := u.Unbox(s)
		switch {
		case p == nil:
			return incompatible
		case p.Kind == d.Kind:
			return NewHints(Unboxing)
		case widens(p.Kind, d.Kind):
			return NewHints(Unboxing, PrimitiveWidening)
		}
	case *Var:
		return u.conformAny(append([]Type{}, s.Parm.Bounds...), d, r, false)
	case *Wildcard:
		return u.conformPrimitive(d, u.UpperBound(s), r)
	}
	return incompatible
}

var widening = map[Kind][]Kind{
	Byte:  {Short, Int, Long, Float, Double},
	Short: {Int, Long, Float, Double},
	Char:  {Int, Long, Float, Double},
	Int:   {Long, Float, Double},
	Long:  {Float, Double},
	Float: {Double},
}

func widens(src, dst Kind) bool {
	for _, k := range widening[src] {
		if k == dst {
			return true
		}
	}
	return false
}

func (u *Universe) conformClass(d, s *Class, r Resolver) Hints {
	if d.Def == u.Object {
		return NewHints(Exact)
	}
	sup := AsSuper(s, d.Def)
	switch {
	case sup == nil:
		return incompatible
	case len(d.Args) == 0:
		return NewHints(Exact)
	case len(sup.Args) == 0:
		return NewHints(Unchecked)
	case len(sup.Args) != len(d.Args):
		return incompatible
	}
	for i := range d.Args {
		if !u.contains(d.Args[i], sup.Args[i], r) {
			return incompatible
		}
	}
	return NewHints(Exact)
}

// contains returns whether the type argument dst contains the type argument src.
func (u *Universe) contains(dst, src Type, r Resolver) bool {
	dst, src = resolved(r, dst), resolved(r, src)
	if IsUnresolved(r, dst) || IsUnresolved(r, src) {
		return true
	}
	w, ok := dst.(*Wildcard)
	if !ok {
		if _, ok := src.(*Wildcard); ok {
			return false
		}
		return eqLoose(r, dst, src)
	}
	srcUpper, srcLower := src, src
	if sw, ok := src.(*Wildcard); ok {
		srcUpper = u.UpperBound(sw)
		srcLower = sw.Lower
	}
	for _, b := range w.Upper {
		h := u.Conform(b, srcUpper, r)
		if !h.OK() || h.Has(Boxing) || h.Has(Synonym) {
			return false
		}
	}
	if w.Lower != nil {
		if srcLower == nil {
			return false
		}
		h := u.Conform(srcLower, w.Lower, r)
		if !h.OK() || h.Has(Boxing) || h.Has(Synonym) {
			return false
		}
	}
	return true
}

// eqLoose is Eq, but a placeholder without a value equals anything.
func eqLoose(r Resolver, a, b Type) bool {
	a, b = resolved(r, a), resolved(r, b)
	if IsUnresolved(r, a) || IsUnresolved(r, b) {
		return true
	}
	switch a := a.(type) {
	case *Class:
		b, ok := b.(*Class)
		if !ok || a.Def != b.Def || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !eqLoose(r, a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	case *Array:
		b, ok := b.(*Array)
		return ok && eqLoose(r, a.Elem, b.Elem)
	default:
		return Eq(a, b)
	}
}

func (u *Universe) conformArray(d, s *Array, r Resolver) Hints {
	de, se := resolved(r, d.Elem), resolved(r, s.Elem)
	if IsPrimitive(de) || IsPrimitive(se) {
		if Eq(de, se) {
			return NewHints(Exact)
		}
		return incompatible
	}
	h := u.Conform(de, se, r)
	if !h.OK() || h.Has(Synonym) || h.Has(DemandConversion) {
		return incompatible
	}
	return h
}

func (u *Universe) isCollectionDef(def *ClassDef) bool {
	return def == u.Iterable || def == u.Collection || def == u.List
}

func (u *Universe) conformArrayToClass(d *Class, s *Array, r Resolver) Hints {
	switch {
	case d.Def == u.Object || d.Def == u.Serializable:
		return NewHints(Exact)
	case !u.isCollectionDef(d.Def):
		return incompatible
	case len(d.Args) == 0:
		return NewHints(Synonym)
	}
	elem := resolved(r, s.Elem)
	if p, ok := elem.(*Primitive); ok {
		if elem = u.Box(p); elem == nil {
			return incompatible
		}
	}
	if !u.contains(d.Args[0], elem, r) {
		return incompatible
	}
	return NewHints(Synonym)
}

func (u *Universe) conformClassToArray(d *Array, s *Class, r Resolver) Hints {
	var elem Type
	for _, def := range []*ClassDef{u.List, u.Collection, u.Iterable} {
		if sup := AsSuper(s, def); sup != nil {
			if len(sup.Args) == 0 {
				return NewHints(DemandConversion, Unchecked)
			}
			elem = u.UpperBound(sup.Args[0])
			break
		}
	}
	if elem == nil {
		return incompatible
	}
	h := u.Conform(d.Elem, elem, r)
	if !h.OK() {
		return incompatible
	}
	return convert(h, DemandConversion)
}

// Severity orders hint sets by their most severe hint.
// A larger result is more severe.
func Severity(s Hints) int {
	for i, h := range severityOrder {
		if s.Has(h) {
			return len(severityOrder) - i
		}
	}
	return 0
}

// severityOrder lists hints from most to least severe.
var severityOrder = []Hint{
	Incompatible,
	DemandConversion,
	Synonym,
	VarArg,
	Boxing,
	Unboxing,
	PrimitiveWidening,
}
