package link

import (
	"github.com/eaburns/link/loc"
	"github.com/eaburns/link/types"
)

// FeatureKind is the kind of a declared feature.
type FeatureKind int

const (
	// Operation is a method.
	Operation FeatureKind = iota
	// Constructor is a constructor of its Declarator.
	Constructor
	// Field is a field or property; it is not callable.
	Field
)

func (k FeatureKind) String() string {
	switch k {
	case Operation:
		return "operation"
	case Constructor:
		return "constructor"
	case Field:
		return "field"
	default:
		return "kind?"
	}
}

// A Feature is a declared callable, or a field used as one.
// Features are immutable once looked up.
type Feature struct {
	Name string
	Kind FeatureKind
	// Parms are the declared parameters.
	// If VarArgs, the last parameter is variable-arity
	// and its type is an array type.
	Parms   []Parm
	VarArgs bool
	// TypeParms are the feature's own type parameters.
	TypeParms []*types.TypeParm
	// Declarator is the class that declares the feature, or nil.
	// Its type parameters are bound by the receiver type.
	Declarator *types.ClassDef
	// Type is the result type of an Operation or the type of a Field.
	// A nil Type is void.
	Type   types.Type
	Static bool
	L      loc.Loc
}

func (*Feature) isTarget() {}

func (f *Feature) Loc() loc.Loc { return f.L }

// A Parm is a declared parameter.
type Parm struct {
	Name string
	T    types.Type
}

// declaredType returns the type of the feature seen as an expression:
// the result type of an operation, the type of a field,
// or the constructed type of a constructor.
func (f *Feature) declaredType() types.Type {
	switch {
	case f.Kind == Constructor && f.Declarator != nil:
		return &types.Class{Def: f.Declarator, Args: types.Vars(f.Declarator.Parms)}
	case f.Type == nil:
		return types.Prim(types.Void)
	default:
		return f.Type
	}
}

// A Description is one result of looking up the features of a call site.
type Description struct {
	Feature *Feature
	// Visible is whether the feature is reachable and not shadowed.
	Visible bool
	// Receiver is the receiver expression of a static feature
	// that is invoked with an explicit receiver; it is prepended
	// to the arguments. It is nil for other features.
	Receiver Expr
	// ReceiverType is the type of the receiver of an instance feature;
	// it binds the type parameters of the feature's Declarator.
	ReceiverType types.Type
}

// Expr is an expression at a call site.
type Expr interface {
	loc.Locer
	String() string
	isExpr()
}

// Lit is an expression with a known static type.
type Lit struct {
	// Text is the source text; if empty, the type is printed.
	Text string
	T    types.Type
	L    loc.Loc
}

func (*Lit) isExpr()        {}
func (l *Lit) Loc() loc.Loc { return l.L }

// Null is the null literal.
type Null struct {
	L loc.Loc
}

func (*Null) isExpr()        {}
func (n *Null) Loc() loc.Loc { return n.L }

// CallKind is the syntactic shape of a call site.
type CallKind int

const (
	// FeatureCall is a method call or a field access.
	FeatureCall CallKind = iota
	// Assignment is an assignment desugared to a call;
	// its single argument is the assigned value.
	Assignment
	// ConstructorCall is an instance creation.
	ConstructorCall
)

// A Call is a call site: the expression being linked.
type Call struct {
	Name string
	Kind CallKind
	// Receiver is the explicit receiver or nil.
	Receiver Expr
	Args     []Expr
	// TypeArgs are the explicit type arguments.
	TypeArgs []types.Type
	// Ref is the reference to the called feature.
	// It holds a *Proxy until the call is linked.
	Ref *Ref
	L   loc.Loc
}

// NewCall returns a new call site with an unresolved feature reference.
func NewCall(name string, kind CallKind, receiver Expr, args ...Expr) *Call {
	return &Call{
		Name:     name,
		Kind:     kind,
		Receiver: receiver,
		Args:     args,
		Ref:      NewRef(name),
	}
}

func (*Call) isExpr()        {}
func (c *Call) Loc() loc.Loc { return c.L }
