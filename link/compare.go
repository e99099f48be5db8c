package link

import (
	"github.com/eaburns/link/types"
)

// IsPreferredOver returns whether c is at least as good a match
// for the call site as other.
// Both candidates must be for the same call site.
//
// The comparison is a cascade; the first decisive rule wins:
//
//  1. a visible feature beats an invisible one;
//  2. the lesser arity mismatch wins;
//  3. the lesser type arity mismatch wins;
//  4. argument by argument, the less severe conformance wins;
//  5. fewer boxing or unboxing conversions win;
//  6. more specific declared parameter types win.
//
// If no rule decides, each candidate is preferred over the other.
func (c *Candidate) IsPreferredOver(other LinkingCandidate) bool {
	o, ok := other.(*Candidate)
	if !ok {
		violation("comparing %s to a candidate of unknown kind %T", c, other)
	}
	if o.kind != c.kind || o.call != c.call {
		violation("comparing %s to %s of a different call site", c, o)
	}
	if c.desc.Visible != o.desc.Visible {
		return c.desc.Visible
	}
	if r := compareByArity(c.ArityMismatch(), o.ArityMismatch()); r != 0 {
		return r < 0
	}
	if r := compareByArity(c.TypeArityMismatch(), o.TypeArityMismatch()); r != 0 {
		return r < 0
	}
	return c.compareByArgumentTypes(o) <= 0
}

// compareByArity compares two arity mismatches.
// It returns a negative number if a is preferred,
// a positive number if b is preferred, and 0 if they are equal.
// No mismatch beats any mismatch;
// a smaller mismatch beats a larger one;
// of mismatches of equal size, too few beats too many.
func compareByArity(a, b int) int {
	switch {
	case a == b:
		return 0
	case a == 0:
		return -1
	case b == 0:
		return 1
	case abs(a) != abs(b):
		return abs(a) - abs(b)
	case a < 0:
		return -1
	default:
		return 1
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// hintOrder lists the hints compared between arguments, most severe first.
// Boxing and unboxing are one tier.
var hintOrder = [][]types.Hint{
	{types.Incompatible},
	{types.DemandConversion},
	{types.Synonym},
	{types.VarArg},
	{types.Boxing, types.Unboxing},
	{types.PrimitiveWidening},
}

func hasAny(hs types.Hints, tier []types.Hint) bool {
	for _, h := range tier {
		if hs.Has(h) {
			return true
		}
	}
	return false
}

// compareHints returns a negative number if the conformance a is preferred
// and a positive number if b is preferred.
// The side with the first severe hint that the other lacks loses.
func compareHints(a, b types.Hints) int {
	for _, tier := range hintOrder {
		ha, hb := hasAny(a, tier), hasAny(b, tier)
		switch {
		case ha && !hb:
			return 1
		case hb && !ha:
			return -1
		}
	}
	return 0
}

// compareByArgumentTypes compares the candidates argument by argument
// up to the shorter argument list.
// It returns a value less than or equal to zero if c is preferred.
func (c *Candidate) compareByArgumentTypes(o *Candidate) int {
	n := c.ArgumentCount()
	if m := o.ArgumentCount(); m < n {
		n = m
	}
	var cBoxing, oBoxing int
	for i := 0; i < n; i++ {
		ch, oh := c.Hints(i), o.Hints(i)
		if r := compareHints(ch, oh); r != 0 {
			return r
		}
		if ch.Has(types.Boxing) || ch.Has(types.Unboxing) {
			cBoxing++
		}
		if oh.Has(types.Boxing) || oh.Has(types.Unboxing) {
			oBoxing++
		}
	}
	if cBoxing != oBoxing {
		return cBoxing - oBoxing
	}
	return c.compareDeclaredArgumentTypes(o, n)
}

// compareDeclaredArgumentTypes sums, over the first n arguments,
// which candidate declares the more specific parameter type.
// A parameter type that is assignable from the other candidate's
// is less specific and counts against its candidate.
// The first argument that has an expected type for only one candidate
// decides for that candidate.
func (c *Candidate) compareDeclaredArgumentTypes(o *Candidate, n int) int {
	u := c.linker.u
	var r int
	for i := 0; i < n; i++ {
		ct, ot := c.substitutedExpectedType(i), o.substitutedExpectedType(i)
		switch {
		case ct == nil && ot == nil:
		case ct == nil:
			return 1
		case ot == nil:
			return -1
		default:
			cFromO := u.IsAssignableFrom(ct, ot, c.x)
			oFromC := u.IsAssignableFrom(ot, ct, o.x)
			switch {
			case cFromO && !oFromC:
				r++
			case oFromC && !cFromO:
				r--
			}
		}
	}
	return r
}
