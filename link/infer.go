package link

import (
	"github.com/eaburns/link/types"
)

// A binding is the placeholder standing for one declared type parameter
// of a candidate.
type binding struct {
	parm     *types.TypeParm
	ref      *types.Unbound
	explicit bool
}

// A Binding is the inferred value of a declared type parameter.
type Binding struct {
	Parm *types.TypeParm
	// Type is the inferred type, or nil if nothing constrains it.
	Type types.Type
	// Explicit is whether Type is an explicit type argument.
	Explicit bool
}

// initTypeParameterMapping creates a placeholder for each declared
// type parameter and seeds it with the explicit type arguments.
// Explicit arguments are invariant; inference never overrides them.
func (c *Candidate) initTypeParameterMapping() {
	c.byParm = make(map[*types.TypeParm]*binding)
	explicit := c.call.TypeArgs
	for i, p := range c.declaredTypeParameters() {
		b := &binding{parm: p, ref: c.x.newUnbound(p)}
		if i < len(explicit) {
			b.explicit = true
			c.x.addBound(b.ref, bound{
				typ:      c.linker.u.UpperBound(explicit[i]),
				source:   explicitBound,
				variance: Invariant,
			})
		}
		c.mapping = append(c.mapping, b)
		c.byParm[p] = b
	}
	c.declarator = c.declaratorBinding()
}

// declaratorBinding returns the type arguments of the feature's declarator
// as seen through the receiver type, or nil.
func (c *Candidate) declaratorBinding() map[*types.TypeParm]types.Type {
	f := c.desc.Feature
	if f.Declarator == nil || f.Static || f.Kind == Constructor || c.desc.ReceiverType == nil {
		return nil
	}
	recv, ok := types.Resolve(c.x, c.desc.ReceiverType).(*types.Class)
	if !ok {
		return nil
	}
	sup := types.AsSuper(recv, f.Declarator)
	if sup == nil {
		return nil
	}
	return types.Binding(sup)
}

// substitute replaces the type parameters in a declared type:
// declarator parameters by the receiver's bindings,
// the candidate's own parameters by their placeholders,
// and any others by a fresh placeholder that is stable for this candidate.
func (c *Candidate) substitute(t types.Type) types.Type {
	return types.Rewrite(t, func(t types.Type) types.Type {
		v, ok := t.(*types.Var)
		if !ok {
			return nil
		}
		if b, ok := c.declarator[v.Parm]; ok {
			return b
		}
		if b, ok := c.byParm[v.Parm]; ok {
			return b.ref
		}
		if c.unmapped == nil {
			c.unmapped = make(map[*types.TypeParm]*types.Unbound)
		}
		u, ok := c.unmapped[v.Parm]
		if !ok {
			u = c.x.newUnbound(v.Parm)
			c.unmapped[v.Parm] = u
		}
		return u
	})
}

// substituteByConstraint replaces the candidate's placeholders
// and type parameters by their declared bounds,
// or by their explicit type argument.
// It is used to compare declared parameter types between candidates.
func (c *Candidate) substituteByConstraint(t types.Type) types.Type {
	return c.byConstraint(t, map[*types.TypeParm]bool{})
}

func (c *Candidate) byConstraint(t types.Type, seen map[*types.TypeParm]bool) types.Type {
	u := c.linker.u
	return types.Rewrite(t, func(t types.Type) types.Type {
		var p *types.TypeParm
		switch t := t.(type) {
		case *types.Unbound:
			if b, ok := c.byParm[t.Parm]; ok && b.ref == t && b.explicit {
				return types.Resolve(c.x, t)
			}
			p = t.Parm
		case *types.Var:
			p = t.Parm
		default:
			return nil
		}
		if seen[p] {
			return u.ObjectType()
		}
		seen[p] = true
		defer delete(seen, p)
		return c.byConstraint(u.ParmBound(p), seen)
	})
}

// hintCollector matches a type containing placeholders
// against a type without and adds the resulting bounds.
type hintCollector struct {
	u      *types.Universe
	x      *Context
	source boundSource
}

// collect matches the placeholders in declared against actual.
func (h *hintCollector) collect(declared, actual types.Type, v Variance) {
	actual = types.Resolve(h.x, actual)
	switch actual.(type) {
	case nil, *types.Any, *types.Unknown:
		return
	}
	if p, ok := actual.(*types.Primitive); ok {
		if types.IsVoid(p) {
			return
		}
		if _, ok := declared.(*types.Unbound); ok {
			actual = h.u.Box(p)
		}
	}
	switch d := declared.(type) {
	case *types.Unbound:
		if w, ok := actual.(*types.Wildcard); ok {
			if w.Lower != nil {
				h.x.addBound(d, bound{typ: w.Lower, source: h.source, variance: Contravariant})
				return
			}
			actual = h.u.UpperBound(w)
			v = Covariant
		}
		h.x.addBound(d, bound{typ: actual, source: h.source, variance: v})

	case *types.Array:
		if a, ok := actual.(*types.Array); ok {
			h.collect(d.Elem, a.Elem, v)
		}

	case *types.Class:
		h.collectClass(d, actual, v)

	case *types.Wildcard:
		for _, up := range d.Upper {
			h.collect(up, h.u.UpperBound(actual), Covariant)
		}
		if d.Lower != nil {
			h.collect(d.Lower, h.u.LowerBound(actual), Contravariant)
		}

	case *types.Compound:
		for _, t := range d.Types {
			h.collect(t, actual, v)
		}
	}
}

func (h *hintCollector) collectClass(d *types.Class, actual types.Type, v Variance) {
	if len(d.Args) == 0 {
		return
	}
	switch a := actual.(type) {
	case *types.Primitive:
		if box := h.u.Box(a); box != nil {
			h.collectClass(d, box, v)
		}
	case *types.Wildcard:
		h.collectClass(d, h.u.UpperBound(a), v)
	case *types.Var:
		for _, b := range a.Parm.Bounds {
			h.collectClass(d, b, v)
		}
	case *types.Compound:
		for _, t := range a.Types {
			h.collectClass(d, t, v)
		}
	case *types.Array:
		if (d.Def == h.u.Iterable || d.Def == h.u.Collection || d.Def == h.u.List) && len(d.Args) == 1 {
			elem := a.Elem
			if p, ok := elem.(*types.Primitive); ok {
				elem = h.u.Box(p)
			}
			h.collect(d.Args[0], elem, Covariant)
		}
	case *types.Class:
		if sup := types.AsSuper(a, d.Def); sup != nil && len(sup.Args) == len(d.Args) {
			for i := range d.Args {
				h.collect(d.Args[i], sup.Args[i], Invariant)
			}
			return
		}
		// An expected type may be a supertype of the result.
		if sub := types.AsSuper(d, a.Def); sub != nil && len(sub.Args) == len(a.Args) {
			for i := range a.Args {
				h.collect(sub.Args[i], a.Args[i], Invariant)
			}
		}
	}
}

// openResolver resolves placeholders except the candidate's own
// inferred ones, which are still open while its arguments are checked.
type openResolver struct {
	c *Candidate
	x *Context
}

func (r openResolver) Resolved(u *types.Unbound) types.Type {
	if b, ok := r.c.byParm[u.Parm]; ok && b.ref == u && !b.explicit {
		return nil
	}
	if v, ok := r.c.unmapped[u.Parm]; ok && v == u {
		return nil
	}
	return r.x.Resolved(u)
}

// resolveAgainstActualType infers the candidate's type parameters
// from the actual type of an argument checked against its expected type.
func (c *Candidate) resolveAgainstActualType(x *Context, expected, actual types.Type) {
	if len(c.declaredTypeParameters()) == 0 && len(c.unmapped) == 0 {
		return
	}
	h := hintCollector{u: c.linker.u, x: x, source: argumentBound}
	h.collect(expected, actual, Invariant)
}

// A deferredHint is a match of a result type against an expected type.
// It is applied on commit.
type deferredHint struct {
	result   types.Type
	expected types.Type
}

// deferredBindTypeArgument buffers the match of the substituted result type
// against an expected type. Only a committed candidate applies it.
func (c *Candidate) deferredBindTypeArgument(expected, result types.Type) {
	if expected == nil {
		return
	}
	c.deferred = append(c.deferred, deferredHint{result: result, expected: expected})
}

func (c *Candidate) applyDeferredHints() {
	h := hintCollector{u: c.linker.u, x: c.x, source: expectationBound}
	for _, d := range c.deferred {
		h.collect(d.result, d.expected, Invariant)
	}
	c.deferred = nil
}

// Bindings returns the inferred values of the declared type parameters.
func (c *Candidate) Bindings() []Binding {
	var bs []Binding
	for _, b := range c.mapping {
		t := types.Resolve(c.x, b.ref)
		if types.IsUnresolved(c.x, t) {
			t = nil
		}
		bs = append(bs, Binding{Parm: b.parm, Type: t, Explicit: b.explicit})
	}
	return bs
}
