package types

import (
	"strings"
	"testing"

	"github.com/eaburns/peggy/peg"
)

func TestParse(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{src: "int", want: "int"},
		{src: "  void ", want: "void"},
		{src: "null", want: "null"},
		{src: "String", want: "String"},
		{src: "String[]", want: "String[]"},
		{src: "int[][]", want: "int[][]"},
		{src: "List<String>", want: "List<String>"},
		{src: "Map<String,List<Integer>>", want: "Map<String, List<Integer>>"},
		{src: "List<?>", want: "List<?>"},
		{src: "List<? extends Number>", want: "List<? extends Number>"},
		{src: "List<? super Integer>", want: "List<? super Integer>"},
		{src: "List<? extends Number & Comparable<Integer>>", want: "List<? extends Number & Comparable<Integer>>"},
		{src: "Number & Serializable", want: "Number & Serializable"},
		{src: "String | Integer", want: "String | Integer"},
		{src: "(String | Integer)[]", want: "(String | Integer)[]"},
		{src: "T", want: "T"},
		{src: "List<T>[]", want: "List<T>[]"},
	}
	for _, test := range tests {
		test := test
		t.Run(test.src, func(t *testing.T) {
			u := NewUniverse()
			typ, err := u.Parse("", test.src, []*TypeParm{{Name: "T"}})
			if err != nil {
				t.Fatalf("Parse(%q) failed: %s", test.src, err)
			}
			if got := typ.String(); got != test.want {
				t.Errorf("Parse(%q)=%s, want %s", test.src, got, test.want)
			}
		})
	}
}

func TestParseTypeParm(t *testing.T) {
	u := NewUniverse()
	parm := &TypeParm{Name: "E"}
	typ, err := u.Parse("", "List<E>", []*TypeParm{parm})
	if err != nil {
		t.Fatalf("Parse failed: %s", err)
	}
	c, ok := typ.(*Class)
	if !ok || len(c.Args) != 1 {
		t.Fatalf("Parse(List<E>)=%s, want a class with one argument", typ)
	}
	if v, ok := c.Args[0].(*Var); !ok || v.Parm != parm {
		t.Errorf("Parse(List<E>) argument is %#v, want a Var of E", c.Args[0])
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	for _, src := range []string{"", "List<String", "String]", "List<,>", "? super"} {
		src := src
		t.Run(src, func(t *testing.T) {
			u := NewUniverse()
			_, err := u.Parse("test.type", src, nil)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", src)
			}
			if _, ok := err.(parseError); !ok {
				t.Errorf("Parse(%q) error is %T, want parseError", src, err)
			}
			if !strings.HasPrefix(err.Error(), "test.type:") {
				t.Errorf("Parse(%q) error=%q, want the path prefix", src, err)
			}
		})
	}
}

func TestParseNameErrors(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{src: "Strin", want: "test.type:1.1-1.6: type Strin not found"},
		{src: "List< Foo >", want: "test.type:1.7-1.10: type Foo not found"},
		{src: "List<String,\n Bar>", want: "test.type:2.2-2.5: type Bar not found"},
	}
	for _, test := range tests {
		test := test
		t.Run(test.src, func(t *testing.T) {
			u := NewUniverse()
			_, err := u.Parse("test.type", test.src, nil)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", test.src)
			}
			if err.Error() != test.want {
				t.Errorf("Parse(%q) error=%q, want %q", test.src, err, test.want)
			}
		})
	}
}

func TestParseErrorTree(t *testing.T) {
	u := NewUniverse()
	_, err := u.Parse("", "List<", nil)
	tr, ok := err.(interface{ Tree() *peg.Fail })
	if !ok {
		t.Fatalf("Parse error %T has no failure tree", err)
	}
	if tr.Tree().Name != "Type" {
		t.Errorf("failure tree root is %q, want Type", tr.Tree().Name)
	}
}
