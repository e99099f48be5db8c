package types

// Rewrite returns a copy of typ with nodes replaced by f.
// f is called on each node before its children;
// if it returns non-nil, that is used in place of the node
// and the node's children are not visited.
// Nodes without changes are returned as is.
func Rewrite(typ Type, f func(Type) Type) Type {
	if typ == nil {
		return nil
	}
	if t := f(typ); t != nil {
		return t
	}
	switch typ := typ.(type) {
	case *Class:
		args, changed := rewriteAll(typ.Args, f)
		if !changed {
			return typ
		}
		return &Class{Def: typ.Def, Args: args}
	case *Array:
		elem := Rewrite(typ.Elem, f)
		if elem == typ.Elem {
			return typ
		}
		return &Array{Elem: elem}
	case *Wildcard:
		upper, changed := rewriteAll(typ.Upper, f)
		lower := Rewrite(typ.Lower, f)
		if !changed && lower == typ.Lower {
			return typ
		}
		return &Wildcard{Upper: upper, Lower: lower}
	case *Compound:
		ts, changed := rewriteAll(typ.Types, f)
		if !changed {
			return typ
		}
		return &Compound{Union: typ.Union, Types: ts}
	default:
		return typ
	}
}

func rewriteAll(ts []Type, f func(Type) Type) ([]Type, bool) {
	var changed bool
	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = Rewrite(t, f)
		changed = changed || out[i] != t
	}
	return out, changed
}

// Subst returns typ with occurrences of type parameters
// replaced by their binding in sub.
// Parameters without a binding are left as is.
func Subst(sub map[*TypeParm]Type, typ Type) Type {
	if len(sub) == 0 {
		return typ
	}
	return Rewrite(typ, func(t Type) Type {
		if v, ok := t.(*Var); ok {
			if b, ok := sub[v.Parm]; ok {
				return b
			}
		}
		return nil
	})
}

// Resolve returns typ with all resolved placeholders replaced by their values.
func Resolve(r Resolver, typ Type) Type {
	if r == nil {
		return typ
	}
	return resolveAll(r, typ, map[*Unbound]bool{})
}

func resolveAll(r Resolver, typ Type, onPath map[*Unbound]bool) Type {
	return Rewrite(typ, func(t Type) Type {
		u, ok := t.(*Unbound)
		if !ok {
			return nil
		}
		v := resolved(r, u)
		if v == u || onPath[u] {
			return u
		}
		onPath[u] = true
		defer delete(onPath, u)
		return resolveAll(r, v, onPath)
	})
}

// Vars returns a Var for each of the type parameters.
func Vars(parms []*TypeParm) []Type {
	vars := make([]Type, len(parms))
	for i, p := range parms {
		vars[i] = &Var{Parm: p}
	}
	return vars
}

// Binding returns the substitution from the class definition's
// type parameters to the class's type arguments.
// A raw class binds nothing.
func Binding(c *Class) map[*TypeParm]Type {
	if len(c.Args) != len(c.Def.Parms) {
		return nil
	}
	sub := make(map[*TypeParm]Type, len(c.Args))
	for i, p := range c.Def.Parms {
		sub[p] = c.Args[i]
	}
	return sub
}

// AsSuper returns the class type viewed as the given supertype definition,
// with the supertype's arguments substituted through the hierarchy.
// It returns nil if def is not a supertype of c.
// A raw c yields a raw supertype.
func AsSuper(c *Class, def *ClassDef) *Class {
	return asSuper(c, def, map[*ClassDef]bool{})
}

func asSuper(c *Class, def *ClassDef, seen map[*ClassDef]bool) *Class {
	if c.Def == def {
		return c
	}
	if seen[c.Def] {
		return nil
	}
	seen[c.Def] = true
	sub := Binding(c)
	for _, s := range c.Def.Super {
		sc, ok := s.(*Class)
		if !ok {
			continue
		}
		if c.IsRaw() {
			sc = &Class{Def: sc.Def}
		} else {
			sc = Subst(sub, sc).(*Class)
		}
		if r := asSuper(sc, def, seen); r != nil {
			return r
		}
	}
	return nil
}

// Eq returns whether two types are structurally equal.
// Placeholders are equal only to themselves.
func Eq(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch a := a.(type) {
	case *Primitive:
		b, ok := b.(*Primitive)
		return ok && a.Kind == b.Kind
	case *Class:
		b, ok := b.(*Class)
		return ok && a.Def == b.Def && eqAll(a.Args, b.Args)
	case *Array:
		b, ok := b.(*Array)
		return ok && Eq(a.Elem, b.Elem)
	case *Var:
		b, ok := b.(*Var)
		return ok && a.Parm == b.Parm
	case *Wildcard:
		b, ok := b.(*Wildcard)
		return ok && eqAll(a.Upper, b.Upper) && Eq(a.Lower, b.Lower)
	case *Compound:
		b, ok := b.(*Compound)
		return ok && a.Union == b.Union && eqAll(a.Types, b.Types)
	case *Unbound:
		b, ok := b.(*Unbound)
		return ok && a == b
	case *Any:
		_, ok := b.(*Any)
		return ok
	case *Unknown:
		_, ok := b.(*Unknown)
		return ok
	default:
		panic("impossible")
	}
}

func eqAll(as, bs []Type) bool {
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if !Eq(as[i], bs[i]) {
			return false
		}
	}
	return true
}
