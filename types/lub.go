package types

import (
	"sort"
)

// Lub returns the least upper bound of two types:
// the most specific type to which both conform without conversion.
// Primitive types are boxed first. Lub is commutative.
func (u *Universe) Lub(a, b Type, r Resolver) Type {
	a, b = u.boxed(Resolve(r, a)), u.boxed(Resolve(r, b))
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case isAny(a):
		return b
	case isAny(b):
		return a
	case Eq(a, b):
		return a
	case IsUnknown(a) || IsUnknown(b):
		return &Unknown{}
	}
	if _, ok := a.(*Unbound); ok {
		return b
	}
	if _, ok := b.(*Unbound); ok {
		return a
	}
	if subtype(u, b, a, r) {
		return a
	}
	if subtype(u, a, b, r) {
		return b
	}
	if aa, ok := a.(*Array); ok {
		if ba, ok := b.(*Array); ok && !IsPrimitive(aa.Elem) && !IsPrimitive(ba.Elem) {
			return &Array{Elem: u.Lub(aa.Elem, ba.Elem, r)}
		}
		return u.ObjectType()
	}
	ac, aok := a.(*Class)
	bc, bok := b.(*Class)
	if !aok || !bok {
		return u.ObjectType()
	}
	return u.commonSuper(ac, bc)
}

// Glb returns the most specific of two upper bounds.
// If neither conforms to the other, the one that prints first is chosen
// so that the result does not depend on argument order.
func (u *Universe) Glb(a, b Type, r Resolver) Type {
	a, b = u.boxed(Resolve(r, a)), u.boxed(Resolve(r, b))
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case subtype(u, a, b, r):
		return a
	case subtype(u, b, a, r):
		return b
	case a.String() <= b.String():
		return a
	default:
		return b
	}
}

func isAny(t Type) bool {
	_, ok := t.(*Any)
	return ok
}

func (u *Universe) boxed(t Type) Type {
	if p, ok := t.(*Primitive); ok {
		if c := u.Box(p); c != nil {
			return c
		}
	}
	return t
}

// subtype returns whether sub conforms to sup without conversion.
func subtype(u *Universe, sub, sup Type, r Resolver) bool {
	h := u.Conform(sup, sub, r)
	return h.OK() && (h == NewHints(Exact) || h == NewHints(Unchecked))
}

// commonSuper returns the most specific common supertype of two classes.
// Among several minimal common supertypes, a class is chosen over
// an interface, then the lesser name.
// Object is a supertype of every class, interfaces included.
func (u *Universe) commonSuper(a, b *Class) Type {
	var common []*ClassDef
	for _, def := range supers(a.Def) {
		if def != u.Object && AsSuper(b, def) != nil {
			common = append(common, def)
		}
	}
	var minimal []*ClassDef
	for _, c := range common {
		isMin := true
		for _, d := range common {
			if d != c && AsSuper(&Class{Def: d}, c) != nil {
				isMin = false
				break
			}
		}
		if isMin {
			minimal = append(minimal, c)
		}
	}
	if len(minimal) == 0 {
		return u.ObjectType()
	}
	sort.Slice(minimal, func(i, j int) bool {
		if minimal[i].Interface != minimal[j].Interface {
			return !minimal[i].Interface
		}
		return minimal[i].Name < minimal[j].Name
	})
	def := minimal[0]
	as, bs := AsSuper(a, def), AsSuper(b, def)
	if as.IsRaw() || bs.IsRaw() {
		return &Class{Def: def}
	}
	args := make([]Type, len(as.Args))
	for i := range as.Args {
		if Eq(as.Args[i], bs.Args[i]) {
			args[i] = as.Args[i]
		} else {
			args[i] = &Wildcard{}
		}
	}
	return &Class{Def: def, Args: args}
}

// supers returns def and all of its transitive supertype definitions.
func supers(def *ClassDef) []*ClassDef {
	var defs []*ClassDef
	seen := make(map[*ClassDef]bool)
	var walk func(*ClassDef)
	walk = func(d *ClassDef) {
		if seen[d] {
			return
		}
		seen[d] = true
		defs = append(defs, d)
		for _, s := range d.Super {
			if c, ok := s.(*Class); ok {
				walk(c.Def)
			}
		}
	}
	walk(def)
	return defs
}
