package types

import (
	"testing"
)

func TestConform(t *testing.T) {
	tests := []struct {
		dst, src string
		want     string
	}{
		{dst: "int", src: "int", want: "{exact}"},
		{dst: "long", src: "int", want: "{widening}"},
		{dst: "double", src: "char", want: "{widening}"},
		{dst: "int", src: "long", want: "{incompatible}"},
		{dst: "boolean", src: "int", want: "{incompatible}"},

		{dst: "Integer", src: "int", want: "{boxing}"},
		{dst: "Object", src: "int", want: "{boxing}"},
		{dst: "Number", src: "int", want: "{boxing}"},
		{dst: "Comparable<Integer>", src: "int", want: "{boxing}"},
		{dst: "Long", src: "int", want: "{incompatible}"},
		{dst: "int", src: "Integer", want: "{unboxing}"},
		{dst: "long", src: "Integer", want: "{widening, unboxing}"},
		{dst: "int", src: "Long", want: "{incompatible}"},
		{dst: "int", src: "null", want: "{incompatible}"},

		{dst: "Object", src: "String", want: "{exact}"},
		{dst: "Number", src: "Integer", want: "{exact}"},
		{dst: "CharSequence", src: "String", want: "{exact}"},
		{dst: "Serializable", src: "String", want: "{exact}"},
		{dst: "String", src: "Integer", want: "{incompatible}"},
		{dst: "Integer", src: "Number", want: "{incompatible}"},
		{dst: "String", src: "null", want: "{exact}"},
		{dst: "Comparable<Integer>", src: "Integer", want: "{exact}"},
		{dst: "Comparable<Long>", src: "Integer", want: "{incompatible}"},

		{dst: "List<String>", src: "ArrayList<String>", want: "{exact}"},
		{dst: "Iterable<String>", src: "ArrayList<String>", want: "{exact}"},
		{dst: "List<Object>", src: "List<String>", want: "{incompatible}"},
		{dst: "List<? extends Object>", src: "List<String>", want: "{exact}"},
		{dst: "List<? extends Number>", src: "List<Integer>", want: "{exact}"},
		{dst: "List<? extends Number>", src: "List<String>", want: "{incompatible}"},
		{dst: "List<? super Integer>", src: "List<Number>", want: "{exact}"},
		{dst: "List<? super Number>", src: "List<Integer>", want: "{incompatible}"},
		{dst: "List<?>", src: "List<String>", want: "{exact}"},
		{dst: "List", src: "List<String>", want: "{exact}"},
		{dst: "List<String>", src: "ArrayList", want: "{unchecked}"},

		{dst: "Object[]", src: "String[]", want: "{exact}"},
		{dst: "String[]", src: "Object[]", want: "{incompatible}"},
		{dst: "int[]", src: "int[]", want: "{exact}"},
		{dst: "long[]", src: "int[]", want: "{incompatible}"},
		{dst: "Integer[]", src: "int[]", want: "{incompatible}"},
		{dst: "Object", src: "int[]", want: "{exact}"},
		{dst: "Serializable", src: "String[]", want: "{exact}"},
		{dst: "String[]", src: "null", want: "{exact}"},

		{dst: "List<String>", src: "String[]", want: "{synonym}"},
		{dst: "Iterable<Integer>", src: "int[]", want: "{synonym}"},
		{dst: "List<Integer>", src: "String[]", want: "{incompatible}"},
		{dst: "String[]", src: "List<String>", want: "{demand}"},
		{dst: "Object[]", src: "ArrayList<String>", want: "{demand}"},
		{dst: "String[]", src: "List", want: "{demand, unchecked}"},
		{dst: "String[]", src: "Map<String, String>", want: "{incompatible}"},

		{dst: "CharSequence | Integer", src: "String", want: "{exact}"},
		{dst: "CharSequence | Integer", src: "int", want: "{boxing}"},
		{dst: "Number & Comparable<Integer>", src: "Integer", want: "{exact}"},
		{dst: "Number & Comparable<Long>", src: "Integer", want: "{incompatible}"},
		{dst: "Object", src: "String | Integer", want: "{exact}"},
		{dst: "Number", src: "String | Integer", want: "{incompatible}"},
		{dst: "CharSequence", src: "Serializable & CharSequence", want: "{exact}"},
	}
	for _, test := range tests {
		test := test
		t.Run(test.dst+" <- "+test.src, func(t *testing.T) {
			u := NewUniverse()
			dst := u.MustParse(test.dst)
			src := u.MustParse(test.src)
			if got := u.Conform(dst, src, nil).String(); got != test.want {
				t.Errorf("Conform(%s, %s)=%s, want %s", dst, src, got, test.want)
			}
		})
	}
}

func TestConformTypeVariable(t *testing.T) {
	u := NewUniverse()
	n := &TypeParm{Name: "N", Bounds: []Type{&Class{Def: u.Number}}}
	tests := []struct {
		dst, src string
		want     string
	}{
		{dst: "Number", src: "N", want: "{exact}"},
		{dst: "Object", src: "N", want: "{exact}"},
		{dst: "Integer", src: "N", want: "{incompatible}"},
		{dst: "N", src: "N", want: "{exact}"},
		{dst: "List<N>", src: "List<N>", want: "{exact}"},
	}
	for _, test := range tests {
		dst := u.MustParse(test.dst, n)
		src := u.MustParse(test.src, n)
		if got := u.Conform(dst, src, nil).String(); got != test.want {
			t.Errorf("Conform(%s, %s)=%s, want %s", dst, src, got, test.want)
		}
	}
}

type testResolver map[*Unbound]Type

func (r testResolver) Resolved(u *Unbound) Type { return r[u] }

func TestConformUnbound(t *testing.T) {
	u := NewUniverse()
	parm := &TypeParm{Name: "T"}
	free := &Unbound{Parm: parm, ID: 1}
	bound := &Unbound{Parm: parm, ID: 2}
	r := testResolver{bound: u.MustParse("String")}

	tests := []struct {
		dst, src Type
		want     string
	}{
		{dst: free, src: u.MustParse("int"), want: "{exact}"},
		{dst: u.MustParse("String"), src: free, want: "{exact}"},
		{dst: &Class{Def: u.List, Args: []Type{free}}, src: u.MustParse("List<String>"), want: "{exact}"},
		{dst: bound, src: u.MustParse("String"), want: "{exact}"},
		{dst: bound, src: u.MustParse("Integer"), want: "{incompatible}"},
		{dst: &Class{Def: u.List, Args: []Type{bound}}, src: u.MustParse("List<Integer>"), want: "{incompatible}"},
		{dst: &Class{Def: u.List, Args: []Type{bound}}, src: u.MustParse("List<String>"), want: "{exact}"},
	}
	for _, test := range tests {
		if got := u.Conform(test.dst, test.src, r).String(); got != test.want {
			t.Errorf("Conform(%s, %s)=%s, want %s", test.dst, test.src, got, test.want)
		}
	}
}

func TestConformUnknown(t *testing.T) {
	u := NewUniverse()
	if got := u.Conform(u.ObjectType(), &Unknown{}, nil); got.OK() {
		t.Errorf("Conform(Object, <unknown>)=%s, want incompatible", got)
	}
	if got := u.Conform(nil, &Unknown{}, nil); !got.Has(Exact) {
		t.Errorf("Conform(nil, <unknown>)=%s, want exact", got)
	}
}

func TestSeverity(t *testing.T) {
	order := []Hints{
		NewHints(Exact),
		NewHints(PrimitiveWidening),
		NewHints(Unboxing),
		NewHints(Boxing),
		NewHints(Exact, VarArg),
		NewHints(Synonym),
		NewHints(DemandConversion, Unchecked),
		NewHints(Incompatible, VarArg),
	}
	for i := 1; i < len(order); i++ {
		if Severity(order[i-1]) >= Severity(order[i]) {
			t.Errorf("Severity(%s)=%d >= Severity(%s)=%d",
				order[i-1], Severity(order[i-1]), order[i], Severity(order[i]))
		}
	}
}

func TestParseHint(t *testing.T) {
	for _, n := range hintNames {
		h, ok := ParseHint(n.name)
		if !ok || h != n.h {
			t.Errorf("ParseHint(%q)=%s,%v, want %s,true", n.name, h, ok, n.h)
		}
	}
	if _, ok := ParseHint("nope"); ok {
		t.Errorf(`ParseHint("nope") succeeded`)
	}
}
