package link

import (
	"github.com/eaburns/link/types"
)

// An expectation is a type that an expression is checked against.
type expectation struct {
	// typ is the expected type; nil is no expectation.
	typ types.Type
	// hint is added to every conformance against this expectation.
	hint types.Hint
	// nonVoid rejects void when there is no expected type.
	nonVoid bool
	// observer, if non-nil, infers its type parameters
	// from the actual types accepted against this expectation.
	observer *Candidate
}

func (e *expectation) conform(x *Context, actual types.Type) types.Hints {
	if e.typ == nil {
		if types.IsUnknown(actual) || e.nonVoid && types.IsVoid(actual) {
			return types.NewHints(types.Incompatible)
		}
		return types.NewHints(types.Exact)
	}
	var r types.Resolver = x
	if e.observer != nil {
		r = openResolver{c: e.observer, x: x}
	}
	h := x.u.Conform(e.typ, actual, r)
	if e.hint != 0 {
		h = h.With(e.hint)
	}
	return h
}

// better returns whether a conformance is preferred to another:
// success is better than failure, then less severe is better.
func better(h, than types.Hints) bool {
	if h.OK() != than.OK() {
		return h.OK()
	}
	return types.Severity(h) < types.Severity(than)
}

// accept records the actual type of an expression
// checked against the best of several expectations.
// The first of equally good expectations is chosen.
// The observer of the chosen expectation is notified.
// It returns the chosen expectation, or nil if there were none.
func (x *Context) accept(expr Expr, exps []*expectation, actual types.Type, extra types.Hint) *expectation {
	if len(exps) == 0 {
		hs := types.NewHints(types.Exact)
		if types.IsUnknown(actual) {
			hs = types.NewHints(types.Incompatible)
		}
		x.record(expr, actual, nil, hs.With(extra))
		return nil
	}
	var best *expectation
	var bestHints types.Hints
	for _, e := range exps {
		h := e.conform(x, actual)
		if best == nil || better(h, bestHints) {
			best, bestHints = e, h
		}
	}
	if extra != 0 {
		bestHints = bestHints.With(extra)
	}
	x.record(expr, actual, best.typ, bestHints)
	if best.observer != nil && best.typ != nil {
		best.observer.resolveAgainstActualType(x, best.typ, actual)
	}
	return best
}

// computeTypes computes the type of an expression in x
// against a set of expectations.
// Call sites are linked; a call that is already linked
// in an enclosing context is not linked again.
func (l *Linker) computeTypes(x *Context, expr Expr, exps []*expectation) {
	switch expr := expr.(type) {
	case *Lit:
		x.accept(expr, exps, expr.T, 0)
	case *Null:
		x.accept(expr, exps, &types.Any{}, 0)
	case *Call:
		if x.Linked(expr) != nil {
			a, _, _, _ := x.lookup(expr)
			x.accept(expr, exps, a, 0)
			return
		}
		l.link(x, expr, exps)
	default:
		panic("impossible")
	}
}
