package link

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/eaburns/link/types"
)

// ParseFeature parses a feature signature:
//
//	[static] [<T [extends B & C], ...>] name(Type, ..., Type...) [Result]
//	[static] name Type
//
// The first form is an operation, or a constructor if the name is new;
// the second is a field.
// The declarator, if non-nil, declares the feature
// and its type parameters are in scope.
func ParseFeature(u *types.Universe, declarator *types.ClassDef, sig string) (*Feature, error) {
	f := &Feature{Declarator: declarator}
	s := strings.TrimSpace(sig)
	if strings.HasPrefix(s, "static ") {
		f.Static = true
		s = strings.TrimSpace(strings.TrimPrefix(s, "static"))
	}

	var tparms string
	if strings.HasPrefix(s, "<") {
		end := matching(s, 0)
		if end < 0 {
			return nil, fmt.Errorf("%s: unclosed <", sig)
		}
		tparms, s = s[1:end], strings.TrimSpace(s[end+1:])
	}

	i := strings.IndexFunc(s, func(r rune) bool { return r == '(' || unicode.IsSpace(r) })
	if i < 0 {
		i = len(s)
	}
	f.Name, s = s[:i], strings.TrimSpace(s[i:])
	if f.Name == "" {
		return nil, fmt.Errorf("%s: missing name", sig)
	}

	inScope := []*types.TypeParm{}
	if declarator != nil {
		inScope = append(inScope, declarator.Parms...)
	}
	var bounds []string
	for _, tp := range splitTop(tparms) {
		name, bound := tp, ""
		if j := strings.Index(tp, " extends "); j >= 0 {
			name, bound = strings.TrimSpace(tp[:j]), strings.TrimSpace(tp[j+len(" extends "):])
		}
		p := &types.TypeParm{Name: name, Declarator: f.Name}
		f.TypeParms = append(f.TypeParms, p)
		bounds = append(bounds, bound)
	}
	inScope = append(inScope, f.TypeParms...)
	for j, b := range bounds {
		if b == "" {
			continue
		}
		for _, bs := range strings.Split(b, "&") {
			t, err := u.Parse(sig, strings.TrimSpace(bs), inScope)
			if err != nil {
				return nil, err
			}
			f.TypeParms[j].Bounds = append(f.TypeParms[j].Bounds, t)
		}
	}

	if !strings.HasPrefix(s, "(") {
		f.Kind = Field
		if s == "" {
			return nil, fmt.Errorf("%s: missing field type", sig)
		}
		t, err := u.Parse(sig, s, inScope)
		if err != nil {
			return nil, err
		}
		f.Type = t
		return f, nil
	}

	f.Kind = Operation
	if f.Name == "new" {
		f.Kind = Constructor
	}
	end := matching(s, 0)
	if end < 0 {
		return nil, fmt.Errorf("%s: unclosed (", sig)
	}
	parms, ret := s[1:end], strings.TrimSpace(s[end+1:])
	for j, p := range splitTop(parms) {
		if strings.HasSuffix(p, "...") {
			if j != len(splitTop(parms))-1 {
				return nil, fmt.Errorf("%s: ... must be on the last parameter", sig)
			}
			f.VarArgs = true
			p = strings.TrimSpace(strings.TrimSuffix(p, "...")) + "[]"
		}
		t, err := u.Parse(sig, p, inScope)
		if err != nil {
			return nil, err
		}
		f.Parms = append(f.Parms, Parm{Name: fmt.Sprintf("p%d", j), T: t})
	}
	if ret != "" {
		if f.Kind == Constructor {
			return nil, fmt.Errorf("%s: constructor with a result type", sig)
		}
		t, err := u.Parse(sig, ret, inScope)
		if err != nil {
			return nil, err
		}
		f.Type = t
	}
	return f, nil
}

// MustParseFeature is like ParseFeature, but panics on error.
func MustParseFeature(u *types.Universe, declarator *types.ClassDef, sig string) *Feature {
	f, err := ParseFeature(u, declarator, sig)
	if err != nil {
		panic(err)
	}
	return f
}

// matching returns the index of the bracket closing the one at s[i], or -1.
func matching(s string, i int) int {
	depth := 0
	for j := i; j < len(s); j++ {
		switch s[j] {
		case '<', '(':
			depth++
		case '>', ')':
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

// splitTop splits s at the commas not nested in brackets.
func splitTop(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<', '(':
			depth++
		case '>', ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(parts, strings.TrimSpace(s[start:]))
}
