package link

import (
	"fmt"

	"github.com/eaburns/link/types"
)

// A Context records the results of type computation and inference:
// the actual and expected types of expressions, their conformance hints,
// the bounds on placeholders, and the candidates linked to call sites.
//
// Contexts form a tree. Each candidate computes in its own child context.
// A child sees the records of its ancestors. Its own records become
// visible to its parent only when the child is merged on commit;
// a child that is dropped leaves no trace.
type Context struct {
	parent *Context
	u      *types.Universe
	// nextID is shared by the whole tree.
	nextID *int

	actual   map[Expr]types.Type
	expected map[Expr]types.Type
	hints    map[Expr]types.Hints
	bounds   map[*types.Unbound][]bound
	linked   map[*Call]*Candidate
	// pending are calls linked in this context
	// whose references are not yet resolved.
	pending []*Call
	merged  bool

	// resolving guards against cycles among placeholder bounds.
	resolving map[*types.Unbound]bool

	// tr is the trace state; it is only used on the root.
	tr *traceState
}

// boundSource is where a bound on a placeholder came from.
type boundSource int

const (
	// explicitBound is an explicit type argument.
	explicitBound boundSource = iota
	// argumentBound is inferred from an argument type.
	argumentBound
	// expectationBound is inferred from an expected result type.
	expectationBound
)

func (s boundSource) String() string {
	switch s {
	case explicitBound:
		return "explicit"
	case argumentBound:
		return "argument"
	case expectationBound:
		return "expectation"
	default:
		return "source?"
	}
}

// Variance is the position in which a placeholder was matched.
type Variance int

const (
	Invariant Variance = iota
	Covariant
	Contravariant
)

func (v Variance) String() string {
	switch v {
	case Invariant:
		return "invariant"
	case Covariant:
		return "covariant"
	case Contravariant:
		return "contravariant"
	default:
		return "variance?"
	}
}

type bound struct {
	typ      types.Type
	source   boundSource
	variance Variance
}

// NewContext returns a new root Context.
func NewContext(u *types.Universe) *Context {
	return &Context{u: u, nextID: new(int)}
}

// Universe returns the Universe of the context.
func (x *Context) Universe() *types.Universe { return x.u }

// Child returns a new child context.
func (x *Context) Child() *Context {
	return &Context{parent: x, u: x.u, nextID: x.nextID}
}

func (x *Context) root() *Context {
	for x.parent != nil {
		x = x.parent
	}
	return x
}

func (x *Context) newUnbound(p *types.TypeParm) *types.Unbound {
	*x.nextID++
	return &types.Unbound{Parm: p, ID: *x.nextID}
}

// record records the actual type of an expression,
// the expected type it was checked against, and the hints.
func (x *Context) record(expr Expr, actual, expected types.Type, hints types.Hints) {
	if x.actual == nil {
		x.actual = make(map[Expr]types.Type)
		x.expected = make(map[Expr]types.Type)
		x.hints = make(map[Expr]types.Hints)
	}
	x.actual[expr] = actual
	x.expected[expr] = expected
	x.hints[expr] = hints
}

func (x *Context) addBound(u *types.Unbound, b bound) {
	if x.bounds == nil {
		x.bounds = make(map[*types.Unbound][]bound)
	}
	x.bounds[u] = append(x.bounds[u], b)
}

func (x *Context) link(call *Call, c *Candidate) {
	if x.linked == nil {
		x.linked = make(map[*Call]*Candidate)
	}
	x.linked[call] = c
	x.pending = append(x.pending, call)
}

// lookup returns the innermost record of an expression.
func (x *Context) lookup(expr Expr) (actual, expected types.Type, hints types.Hints, ok bool) {
	for ; x != nil; x = x.parent {
		if a, ok := x.actual[expr]; ok {
			return a, x.expected[expr], x.hints[expr], true
		}
	}
	return nil, nil, 0, false
}

// ActualType returns the actual type of an expression
// with resolved placeholders replaced, or nil if it has no record.
func (x *Context) ActualType(expr Expr) types.Type {
	a, _, _, ok := x.lookup(expr)
	if !ok {
		return nil
	}
	return types.Resolve(x, a)
}

// ExpectedType returns the type that an expression was checked against,
// with resolved placeholders replaced, or nil if there was none.
func (x *Context) ExpectedType(expr Expr) types.Type {
	_, e, _, _ := x.lookup(expr)
	return types.Resolve(x, e)
}

// Hints returns the conformance hints recorded for an expression.
func (x *Context) Hints(expr Expr) (types.Hints, bool) {
	_, _, h, ok := x.lookup(expr)
	return h, ok
}

// Linked returns the candidate linked to a call site, or nil.
func (x *Context) Linked(call *Call) *Candidate {
	for ; x != nil; x = x.parent {
		if c, ok := x.linked[call]; ok {
			return c
		}
	}
	return nil
}

func (x *Context) boundsOf(u *types.Unbound) []bound {
	var bs []bound
	for ; x != nil; x = x.parent {
		bs = append(x.bounds[u], bs...)
	}
	return bs
}

// Resolved implements types.Resolver.
// An explicit bound wins.
// Otherwise the argument-side lower bounds are merged by their least upper bound.
// Otherwise the most specific upper bound is used,
// whether from a contravariant argument position or from an expectation.
func (x *Context) Resolved(u *types.Unbound) types.Type {
	if x.resolving[u] {
		return nil
	}
	if x.resolving == nil {
		x.resolving = make(map[*types.Unbound]bool)
	}
	x.resolving[u] = true
	defer delete(x.resolving, u)

	bs := x.boundsOf(u)
	for _, b := range bs {
		if b.source == explicitBound {
			return b.typ
		}
	}
	var lower types.Type
	for _, b := range bs {
		if b.source == argumentBound && b.variance != Contravariant {
			lower = x.u.Lub(lower, b.typ, x)
		}
	}
	if lower != nil && !types.IsUnresolved(x, lower) {
		return lower
	}
	var upper types.Type
	for _, b := range bs {
		if b.source == expectationBound || b.variance == Contravariant {
			upper = x.u.Glb(upper, b.typ, x)
		}
	}
	if upper != nil {
		return upper
	}
	return lower
}

// mergeIntoParent makes the records of x visible in its parent.
func (x *Context) mergeIntoParent() {
	if x.merged {
		violation("context merged twice")
	}
	x.merged = true
	p := x.parent
	if p == nil {
		violation("merging the root context")
	}
	for e, a := range x.actual {
		p.record(e, a, x.expected[e], x.hints[e])
	}
	for u, bs := range x.bounds {
		for _, b := range bs {
			p.addBound(u, b)
		}
	}
	for call, c := range x.linked {
		if p.linked == nil {
			p.linked = make(map[*Call]*Candidate)
		}
		p.linked[call] = c
	}
	p.pending = append(p.pending, x.pending...)
	x.pending = nil
}

// resolveReferences resolves the references of all calls
// linked into the root context since the last call.
func (x *Context) resolveReferences() {
	if x.parent != nil {
		return
	}
	pending := x.pending
	x.pending = nil
	for _, call := range pending {
		c := x.linked[call]
		if err := call.Ref.Resolve(c.Feature()); err != nil {
			panic(&ContractViolation{Msg: fmt.Sprintf("linking %s: %v", call, err)})
		}
	}
}
