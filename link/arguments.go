package link

import (
	"github.com/eaburns/link/types"
)

// arguments binds the arguments of a call to the declared parameters
// of one candidate feature and tracks which have been type-computed.
type arguments struct {
	exprs []Expr
	parms []types.Type
	// varArgs is whether the feature is variable-arity.
	varArgs   bool
	processed []bool
}

// newFeatureCallArguments binds the arguments of an operation,
// constructor, or field read.
func newFeatureCallArguments(exprs []Expr, f *Feature) *arguments {
	parms := make([]types.Type, len(f.Parms))
	for i, p := range f.Parms {
		parms[i] = p.T
	}
	return &arguments{
		exprs:     exprs,
		parms:     parms,
		varArgs:   f.VarArgs && len(parms) > 0,
		processed: make([]bool, len(exprs)),
	}
}

// newAssignmentArguments binds the assigned value of a field assignment
// to the type of the field.
func newAssignmentArguments(exprs []Expr, f *Feature) *arguments {
	var parms []types.Type
	if f.Type != nil {
		parms = []types.Type{f.Type}
	}
	return &arguments{
		exprs:     exprs,
		parms:     parms,
		processed: make([]bool, len(exprs)),
	}
}

func (a *arguments) size() int { return len(a.exprs) }

func (a *arguments) expr(i int) Expr { return a.exprs[i] }

// fixedArityCount returns the number of arguments
// that bind one-to-one to declared parameters.
func (a *arguments) fixedArityCount() int {
	n := len(a.parms)
	if a.varArgs {
		n--
	}
	if len(a.exprs) < n {
		return len(a.exprs)
	}
	return n
}

// isVarArgs returns whether arguments bind to the variable-arity parameter.
func (a *arguments) isVarArgs() bool {
	return a.varArgs && len(a.exprs) >= len(a.parms)
}

// isExactArity returns whether exactly one argument
// binds to the variable-arity parameter;
// it may be an element or an already-built array.
func (a *arguments) isExactArity() bool {
	return a.varArgs && len(a.exprs) == len(a.parms)
}

// declaredType returns the declared type of the ith fixed-arity parameter.
func (a *arguments) declaredType(i int) types.Type { return a.parms[i] }

// varArgType returns the declared type of the variable-arity parameter.
func (a *arguments) varArgType() types.Type { return a.parms[len(a.parms)-1] }

// varArgComponent returns the element type of the variable-arity parameter.
func (a *arguments) varArgComponent() types.Type {
	t := a.varArgType()
	if c := types.Component(t); c != nil {
		return c
	}
	return t
}

func (a *arguments) hasUnprocessed() bool {
	return a.nextUnprocessed() >= 0
}

// nextUnprocessed returns the lowest unprocessed index or -1.
func (a *arguments) nextUnprocessed() int {
	for i, p := range a.processed {
		if !p {
			return i
		}
	}
	return -1
}

func (a *arguments) isProcessed(i int) bool { return a.processed[i] }

func (a *arguments) markProcessed(i int) { a.processed[i] = true }
