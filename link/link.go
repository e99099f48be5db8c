// Package link links call sites to the features they invoke.
// It selects among overloaded candidates,
// infers generic type arguments,
// and computes argument and result types in a tree of contexts
// so that the work of losing candidates is dropped.
package link

import (
	"github.com/eaburns/link/types"
)

// A Scope finds the candidate features of a call site.
type Scope interface {
	// Lookup returns the candidates for a call in the order they are considered.
	// The receiver type is the type of the call's receiver, or nil.
	Lookup(call *Call, receiverType types.Type) []Description
}

// A Linker links call sites.
type Linker struct {
	u     *types.Universe
	scope Scope
}

// New returns a new Linker.
func New(u *types.Universe, scope Scope) *Linker {
	return &Linker{u: u, scope: scope}
}

// Universe returns the Universe of the linker.
func (l *Linker) Universe() *types.Universe { return l.u }

// A Selection is the outcome of linking one call site.
type Selection struct {
	Call *Call
	// Candidates are all candidates in lookup order.
	Candidates []*Candidate
	// Winner is the committed candidate, or nil if there were no candidates.
	Winner *Candidate
	// Ties are the other candidates that were equally preferred to Winner.
	Ties []*Candidate
}

// Type returns the type of the call site, or Unknown if nothing was linked.
func (s *Selection) Type() types.Type {
	if s.Winner == nil {
		return &types.Unknown{}
	}
	return s.Winner.ResultType()
}

// Link links a call site and the call sites nested in it, committing into x.
// If want is non-nil, it is the expected type of the call.
// When x is a root context, the references of all calls linked
// are resolved to their features.
//
// Link panics with a *ContractViolation if a call to be resolved
// has a reference that is already resolved.
func (l *Linker) Link(x *Context, call *Call, want types.Type) *Selection {
	var exps []*expectation
	if want != nil {
		exps = append(exps, &expectation{typ: want})
	}
	sel := l.link(x, call, exps)
	x.resolveReferences()
	return sel
}

func (l *Linker) link(x *Context, call *Call, exps []*expectation) *Selection {
	tr := trItem(x, "linking %s", call)
	defer tr.done()

	var recv types.Type
	if call.Receiver != nil {
		recv = l.receiverType(x, call.Receiver)
	}
	sel := &Selection{Call: call}
	for _, d := range l.scope.Lookup(call, recv) {
		sel.Candidates = append(sel.Candidates, newCandidate(l, x, call, d, exps))
	}
	if len(sel.Candidates) == 0 {
		tr.add("not found")
		y := x.Child()
		y.accept(call, exps, &types.Unknown{}, 0)
		y.mergeIntoParent()
		return sel
	}
	for _, c := range sel.Candidates {
		c.computeArgumentTypes()
		c.bindResult()
		tr.add("%s: %s", c.desc.Feature, c.traceHints())
	}

	best := sel.Candidates[0]
	for _, c := range sel.Candidates[1:] {
		if !best.IsPreferredOver(c) {
			best = c
		}
	}
	for _, c := range sel.Candidates {
		if c != best && c.IsPreferredOver(best) && best.IsPreferredOver(c) {
			sel.Ties = append(sel.Ties, c)
		}
	}
	for _, c := range sel.Candidates {
		if c != best {
			c.discard()
		}
	}
	best.commit()
	sel.Winner = best
	tr.add("selected %s", best.desc.Feature)
	return sel
}

// receiverType links the receiver if it is a call and returns its type.
func (l *Linker) receiverType(x *Context, recv Expr) types.Type {
	switch recv := recv.(type) {
	case *Lit:
		return recv.T
	case *Null:
		return &types.Any{}
	case *Call:
		if x.Linked(recv) == nil {
			l.link(x, recv, nil)
		}
		return x.ActualType(recv)
	default:
		panic("impossible")
	}
}
