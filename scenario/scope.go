package scenario

import (
	"github.com/eaburns/link/link"
	"github.com/eaburns/link/types"
)

// A Scope finds candidate features among the declared features
// in declaration order.
type Scope struct {
	features []*link.Feature
	hidden   map[*link.Feature]bool
}

var _ link.Scope = (*Scope)(nil)

func (s *Scope) add(f *link.Feature, hidden bool) {
	s.features = append(s.features, f)
	if hidden {
		s.hidden[f] = true
	}
}

// Features returns the declared features.
func (s *Scope) Features() []*link.Feature { return s.features }

// Lookup implements link.Scope.
// A constructor call finds the constructors declared by the named class.
// Other calls find the features with the call's name
// whose declarator, if any, is a supertype of the receiver type.
// A static feature without a declarator called on a receiver
// takes the receiver as its first argument.
func (s *Scope) Lookup(call *link.Call, recv types.Type) []link.Description {
	var ds []link.Description
	for _, f := range s.features {
		if !matches(f, call, recv) {
			continue
		}
		d := link.Description{
			Feature:      f,
			Visible:      !s.hidden[f],
			ReceiverType: recv,
		}
		if f.Static && f.Declarator == nil && call.Receiver != nil {
			d.Receiver = call.Receiver
		}
		ds = append(ds, d)
	}
	return ds
}

func matches(f *link.Feature, call *link.Call, recv types.Type) bool {
	if call.Kind == link.ConstructorCall {
		return f.Kind == link.Constructor && f.Declarator != nil && f.Declarator.Name == call.Name
	}
	if f.Kind == link.Constructor || f.Name != call.Name {
		return false
	}
	if call.Kind == link.Assignment && f.Kind == link.Operation && len(f.Parms) != 1 {
		return false
	}
	if recv == nil || f.Declarator == nil {
		return true
	}
	switch r := recv.(type) {
	case *types.Class:
		return types.AsSuper(r, f.Declarator) != nil
	case *types.Any, *types.Unknown:
		return true
	default:
		return false
	}
}
