package link

import (
	"fmt"

	"github.com/eaburns/link/types"
)

// candidateKind is the shape of a call site.
// It selects how arguments are bound and which type parameters
// a candidate declares. It is chosen once per call site.
type candidateKind int

const (
	featureCallCandidate candidateKind = iota
	assignmentCandidate
	constructorCallCandidate
)

func kindOf(call *Call) candidateKind {
	switch call.Kind {
	case Assignment:
		return assignmentCandidate
	case ConstructorCall:
		return constructorCallCandidate
	default:
		return featureCallCandidate
	}
}

// State is the lifecycle state of a Candidate.
type State int

const (
	Created State = iota
	ArgumentsBound
	ArgumentsTyped
	ResultBound
	Committed
	Discarded
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case ArgumentsBound:
		return "arguments bound"
	case ArgumentsTyped:
		return "arguments typed"
	case ResultBound:
		return "result bound"
	case Committed:
		return "committed"
	case Discarded:
		return "discarded"
	default:
		return "state?"
	}
}

// LinkingCandidate is a candidate that can be ranked against others.
type LinkingCandidate interface {
	Feature() *Feature
	IsPreferredOver(LinkingCandidate) bool
}

// A Candidate is one feature considered for a call site,
// with its argument types and inferred type parameters
// computed speculatively in a child context.
type Candidate struct {
	kind   candidateKind
	linker *Linker
	call   *Call
	desc   Description
	// x is the candidate's own child context.
	x     *Context
	exps  []*expectation
	state State

	mapping    []*binding
	byParm     map[*types.TypeParm]*binding
	declarator map[*types.TypeParm]types.Type
	unmapped   map[*types.TypeParm]*types.Unbound
	deferred   []deferredHint

	args   *arguments
	result types.Type
}

var _ LinkingCandidate = (*Candidate)(nil)

func newCandidate(l *Linker, x *Context, call *Call, desc Description, exps []*expectation) *Candidate {
	c := &Candidate{
		kind:   kindOf(call),
		linker: l,
		call:   call,
		desc:   desc,
		x:      x.Child(),
		exps:   exps,
	}
	c.initTypeParameterMapping()
	return c
}

func (c *Candidate) String() string {
	return fmt.Sprintf("%s for %s", c.desc.Feature, c.call)
}

// Feature returns the candidate feature.
func (c *Candidate) Feature() *Feature { return c.desc.Feature }

// Description returns the lookup result for the candidate.
func (c *Candidate) Description() Description { return c.desc }

// Visible returns whether the feature is visible at the call site.
func (c *Candidate) Visible() bool { return c.desc.Visible }

// State returns the lifecycle state.
func (c *Candidate) State() State { return c.state }

// Context returns the candidate's context.
func (c *Candidate) Context() *Context { return c.x }

// declaredTypeParameters returns the type parameters that the candidate infers.
// For a constructor call those of the constructed class come first.
func (c *Candidate) declaredTypeParameters() []*types.TypeParm {
	f := c.desc.Feature
	if c.kind == constructorCallCandidate && f.Declarator != nil {
		return append(append([]*types.TypeParm{}, f.Declarator.Parms...), f.TypeParms...)
	}
	return f.TypeParms
}

// Arguments returns the arguments of the call as bound to this candidate:
// the syntactic arguments, preceded by the receiver of a static feature
// invoked on an explicit receiver.
func (c *Candidate) Arguments() []Expr {
	args := c.call.Args
	recv := c.desc.Receiver
	if c.kind != featureCallCandidate || recv == nil || !c.desc.Feature.Static {
		return args
	}
	for _, a := range args {
		if a == recv {
			return args
		}
	}
	return append([]Expr{recv}, args...)
}

func (c *Candidate) isExecutable() bool { return c.desc.Feature.Kind != Field }

func (c *Candidate) initArguments() {
	if c.args != nil {
		return
	}
	if c.kind == assignmentCandidate && !c.isExecutable() {
		c.args = newAssignmentArguments(c.Arguments(), c.desc.Feature)
	} else {
		c.args = newFeatureCallArguments(c.Arguments(), c.desc.Feature)
	}
	if c.state == Created {
		c.state = ArgumentsBound
	}
}

// ArityMismatch returns the difference between the number of arguments
// and the number of declared parameters.
// It is negative if there are too few arguments
// and positive if there are too many.
// A variable-arity feature matches any number of arguments
// at least the number of its fixed parameters.
// A field read takes no arguments; a field assignment takes one.
func (c *Candidate) ArityMismatch() int {
	f := c.desc.Feature
	n := len(c.Arguments())
	switch {
	case c.isExecutable():
		fixed := len(f.Parms)
		if f.VarArgs && fixed > 0 {
			fixed--
			if n >= fixed {
				return 0
			}
		}
		return n - fixed
	case c.kind == assignmentCandidate:
		return n - 1
	default:
		return n
	}
}

// TypeArityMismatch returns the number of declared type parameters
// minus the number of explicit type arguments.
// It is zero if there are no explicit type arguments.
func (c *Candidate) TypeArityMismatch() int {
	n := len(c.call.TypeArgs)
	if n == 0 {
		return 0
	}
	return len(c.declaredTypeParameters()) - n
}

// computeArgumentTypes computes the types of all arguments.
func (c *Candidate) computeArgumentTypes() {
	c.initArguments()
	for c.args.hasUnprocessed() {
		c.computeArgumentType(c.args.nextUnprocessed())
	}
	if c.state < ArgumentsTyped {
		c.state = ArgumentsTyped
	}
}

// computeArgumentType computes the type of the ith argument,
// or of all variable-arity arguments if i is one of them.
// An argument that is already computed is not computed again.
func (c *Candidate) computeArgumentType(i int) {
	c.initArguments()
	if c.args.isProcessed(i) {
		return
	}
	tr := trItem(c.x, "argument %d %s", i, c.args.expr(i))
	defer tr.done()

	if i < c.args.fixedArityCount() {
		t := c.substitute(c.args.declaredType(i))
		c.linker.computeTypes(c.x, c.args.expr(i), []*expectation{c.expect(t, 0)})
		c.args.markProcessed(i)
		return
	}
	if c.args.isVarArgs() {
		comp := c.substitute(c.args.varArgComponent())
		exps := []*expectation{c.expect(comp, types.VarArg)}
		if c.args.isExactArity() {
			exps = append(exps, c.expect(&types.Array{Elem: comp}, 0))
		}
		for j := c.args.fixedArityCount(); j < c.args.size(); j++ {
			if c.args.isProcessed(j) {
				continue
			}
			c.linker.computeTypes(c.x, c.args.expr(j), exps)
			c.args.markProcessed(j)
		}
		return
	}
	exp := &expectation{nonVoid: true}
	c.linker.computeTypes(c.x, c.args.expr(i), []*expectation{exp})
	c.args.markProcessed(i)
}

// expect returns an expectation of a declared parameter type
// observed by the candidate for inference.
func (c *Candidate) expect(t types.Type, h types.Hint) *expectation {
	return &expectation{typ: c.linker.u.LowerBound(t), hint: h, observer: c}
}

// bindResult offers the substituted result type to the expectations
// of the call site and buffers the resulting inference hints.
func (c *Candidate) bindResult() {
	tr := trItem(c.x, "result of %s", c.desc.Feature)
	defer tr.done()

	t := c.linker.u.UpperBound(c.substitute(c.desc.Feature.declaredType()))
	c.result = t
	if e := c.x.accept(c.call, c.exps, t, types.Unchecked); e != nil {
		c.deferredBindTypeArgument(e.typ, t)
	}
	c.state = ResultBound
}

// commit applies the buffered inference hints,
// links the call site, and merges the candidate's context
// into the context of the call site.
func (c *Candidate) commit() {
	if c.state != ResultBound {
		violation("committing %s in state %s", c, c.state)
	}
	c.applyDeferredHints()
	c.x.link(c.call, c)
	c.x.mergeIntoParent()
	c.state = Committed
}

// discard drops the candidate's context.
func (c *Candidate) discard() {
	if c.state == Committed {
		violation("discarding committed %s", c)
	}
	c.deferred = nil
	c.state = Discarded
}

// typeArgumentsThrough computes argument types in binding order
// until the ith argument is computed.
// Fixed-arity arguments are computed before variable-arity ones.
func (c *Candidate) typeArgumentsThrough(i int) {
	c.initArguments()
	for !c.args.isProcessed(i) {
		c.computeArgumentType(c.args.nextUnprocessed())
	}
}

// Hints returns the conformance hints of the ith argument,
// computing its type if needed.
func (c *Candidate) Hints(i int) types.Hints {
	c.typeArgumentsThrough(i)
	h, _ := c.x.Hints(c.args.expr(i))
	return h
}

// ArgumentCount returns the number of arguments bound to the candidate.
func (c *Candidate) ArgumentCount() int {
	c.initArguments()
	return c.args.size()
}

// ResultType returns the type of the call site if linked to this candidate.
func (c *Candidate) ResultType() types.Type {
	if c.result == nil {
		return nil
	}
	return types.Resolve(c.x, c.result)
}

// substitutedExpectedType returns the type that the ith argument
// was checked against, with type parameters replaced by their bounds.
func (c *Candidate) substitutedExpectedType(i int) types.Type {
	c.typeArgumentsThrough(i)
	_, e, _, _ := c.x.lookup(c.args.expr(i))
	if e == nil {
		return nil
	}
	return c.substituteByConstraint(e)
}
