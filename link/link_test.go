package link

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/eaburns/link/types"
	"github.com/google/go-cmp/cmp"
)

type testScope struct {
	features  []*Feature
	invisible map[*Feature]bool
}

func (s *testScope) Lookup(call *Call, recv types.Type) []Description {
	var ds []Description
	for _, f := range s.features {
		name := f.Name
		if f.Kind == Constructor && f.Declarator != nil {
			name = f.Declarator.Name
		}
		if name != call.Name || (call.Kind == ConstructorCall) != (f.Kind == Constructor) {
			continue
		}
		d := Description{Feature: f, Visible: !s.invisible[f], ReceiverType: recv}
		if f.Static && call.Receiver != nil {
			d.Receiver = call.Receiver
		}
		ds = append(ds, d)
	}
	return ds
}

// testLinker returns a linker over features parsed from signatures.
// Signatures prefixed by "-" are invisible.
func testLinker(u *types.Universe, sigs ...string) (*Linker, []*Feature) {
	s := &testScope{invisible: make(map[*Feature]bool)}
	for _, sig := range sigs {
		invisible := strings.HasPrefix(sig, "-")
		f := MustParseFeature(u, nil, strings.TrimPrefix(sig, "-"))
		s.features = append(s.features, f)
		s.invisible[f] = invisible
	}
	return New(u, s), s.features
}

func lit(u *types.Universe, typ string) *Lit {
	return &Lit{T: u.MustParse(typ)}
}

func featureString(f *Feature) string {
	if f == nil {
		return "<nil>"
	}
	return f.String()
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name string
		sigs []string
		args []string
		want string
		ties []string
	}{
		{
			name: "visible beats invisible",
			sigs: []string{"-f(int)", "f(String)"},
			args: []string{"int"},
			want: "f(String)",
		},
		{
			name: "invisible wins alone",
			sigs: []string{"-f(int)"},
			args: []string{"int"},
			want: "f(int)",
		},
		{
			name: "no arity mismatch beats mismatch",
			sigs: []string{"f(int, int)", "f(int)"},
			args: []string{"int"},
			want: "f(int)",
		},
		{
			name: "smaller arity mismatch",
			sigs: []string{"f(int, int, int)", "f(int, int)"},
			args: []string{"int"},
			want: "f(int, int)",
		},
		{
			name: "too few beats too many",
			sigs: []string{"f()", "f(int, int)"},
			args: []string{"int"},
			want: "f(int, int)",
		},
		{
			name: "vararg arity",
			sigs: []string{"f(int, int)", "f(int, String...)"},
			args: []string{"int", "String", "String"},
			want: "f(int, String...)",
		},
		{
			name: "exact beats boxing",
			sigs: []string{"f(Integer)", "f(int)"},
			args: []string{"int"},
			want: "f(int)",
		},
		{
			name: "widening beats boxing",
			sigs: []string{"f(Integer)", "f(long)"},
			args: []string{"int"},
			want: "f(long)",
		},
		{
			name: "exact beats widening",
			sigs: []string{"f(long)", "f(int)"},
			args: []string{"int"},
			want: "f(int)",
		},
		{
			name: "unboxing beats vararg",
			sigs: []string{"f(int...)", "f(int)"},
			args: []string{"Integer"},
			want: "f(int)",
		},
		{
			name: "compatible beats incompatible",
			sigs: []string{"f(String)", "f(Integer)"},
			args: []string{"Integer"},
			want: "f(Integer)",
		},
		{
			name: "exact beats synonym",
			sigs: []string{"f(String[])", "f(List<String>)"},
			args: []string{"String[]"},
			want: "f(String[])",
		},
		{
			name: "array as collection",
			sigs: []string{"f(Integer)", "f(List<String>)"},
			args: []string{"String[]"},
			want: "f(List<String>)",
		},
		{
			name: "fewer boxings",
			sigs: []string{"f(Integer, Integer)", "f(Integer, int)"},
			args: []string{"int", "int"},
			want: "f(Integer, int)",
		},
		{
			name: "more specific",
			sigs: []string{"f(Object)", "f(String)"},
			args: []string{"String"},
			want: "f(String)",
		},
		{
			name: "more specific with null",
			sigs: []string{"f(CharSequence)", "f(String)"},
			args: []string{"null"},
			want: "f(String)",
		},
		{
			name: "more specific generic",
			sigs: []string{"<T> f(T)", "f(String)"},
			args: []string{"String"},
			want: "f(String)",
		},
		{
			name: "bounded generic is more specific",
			sigs: []string{"<T> f(T)", "<N extends Number> f(N)"},
			args: []string{"Integer"},
			want: "f<N extends Number>(N)",
		},
		{
			name: "ambiguous",
			sigs: []string{"f(Object, String)", "f(String, Object)"},
			args: []string{"String", "String"},
			want: "f(Object, String)",
			ties: []string{"f(String, Object)"},
		},
		{
			name: "identical",
			sigs: []string{"f(int)", "f(int)"},
			args: []string{"int"},
			want: "f(int)",
			ties: []string{"f(int)"},
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			u := types.NewUniverse()
			l, _ := testLinker(u, test.sigs...)
			var args []Expr
			for _, a := range test.args {
				if a == "null" {
					args = append(args, &Null{})
					continue
				}
				args = append(args, lit(u, a))
			}
			call := NewCall("f", FeatureCall, nil, args...)
			sel := l.Link(NewContext(u), call, nil)
			if got := featureString(sel.Winner.Feature()); got != test.want {
				t.Errorf("got %s, want %s", got, test.want)
			}
			var ties []string
			for _, c := range sel.Ties {
				ties = append(ties, c.Feature().String())
			}
			if diff := cmp.Diff(test.ties, ties); diff != "" {
				t.Errorf("ties: %s", diff)
			}
			if call.Ref.Feature() != sel.Winner.Feature() {
				t.Errorf("reference is %v, want %s", call.Ref.Get(), sel.Winner.Feature())
			}
		})
	}
}

func TestSelectStates(t *testing.T) {
	u := types.NewUniverse()
	l, _ := testLinker(u, "f(Object)", "f(String)")
	sel := l.Link(NewContext(u), NewCall("f", FeatureCall, nil, lit(u, "String")), nil)
	var got []string
	for _, c := range sel.Candidates {
		got = append(got, c.State().String())
	}
	want := []string{"discarded", "committed"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("states: %s", diff)
	}
}

func TestNotFound(t *testing.T) {
	u := types.NewUniverse()
	l, _ := testLinker(u, "g(int)")
	x := NewContext(u)
	call := NewCall("f", FeatureCall, nil, lit(u, "int"))
	sel := l.Link(x, call, nil)
	if sel.Winner != nil {
		t.Fatalf("winner is %s, want none", sel.Winner)
	}
	if !types.IsUnknown(sel.Type()) {
		t.Errorf("type is %s, want unknown", sel.Type())
	}
	if !types.IsUnknown(x.ActualType(call)) {
		t.Errorf("recorded type is %s, want unknown", x.ActualType(call))
	}
	if !call.Ref.IsProxy() {
		t.Errorf("reference resolved to %v", call.Ref.Get())
	}
}

func TestLoserLeavesNoTrace(t *testing.T) {
	u := types.NewUniverse()
	l, _ := testLinker(u, "f(Object)", "f(String)")
	x := NewContext(u)
	arg := lit(u, "String")
	l.Link(x, NewCall("f", FeatureCall, nil, arg), nil)
	if got := x.ExpectedType(arg).String(); got != "String" {
		t.Errorf("expected type of the argument is %s, want String", got)
	}
}

func TestNestedCall(t *testing.T) {
	u := types.NewUniverse()
	l, _ := testLinker(u, "g(String)", "g(Integer)", "<T> id(T) T")
	x := NewContext(u)
	inner := NewCall("id", FeatureCall, nil, lit(u, "String"))
	outer := NewCall("g", FeatureCall, nil, inner)
	sel := l.Link(x, outer, nil)

	if got := featureString(sel.Winner.Feature()); got != "g(String)" {
		t.Errorf("outer linked to %s, want g(String)", got)
	}
	if got := featureString(inner.Ref.Feature()); got != "id<T>(T) T" {
		t.Errorf("inner linked to %s, want id<T>(T) T", got)
	}
	if got := x.ActualType(inner).String(); got != "String" {
		t.Errorf("inner type is %s, want String", got)
	}
	c := x.Linked(inner)
	if c == nil {
		t.Fatalf("inner call has no linked candidate")
	}
	if diff := cmp.Diff([]string{"T=String"}, bindingStrings(c)); diff != "" {
		t.Errorf("bindings: %s", diff)
	}
}

func TestNestedCallInferredFromExpectation(t *testing.T) {
	u := types.NewUniverse()
	l, _ := testLinker(u, "g(List<String>)", "g(String)", "<T> empty() List<T>")
	x := NewContext(u)
	inner := NewCall("empty", FeatureCall, nil)
	sel := l.Link(x, NewCall("g", FeatureCall, nil, inner), nil)
	if got := featureString(sel.Winner.Feature()); got != "g(List<String>)" {
		t.Errorf("linked to %s, want g(List<String>)", got)
	}
	if got := x.ActualType(inner).String(); got != "List<String>" {
		t.Errorf("inner type is %s, want List<String>", got)
	}
}

func TestReceiverLinkedOnce(t *testing.T) {
	u := types.NewUniverse()
	l, _ := testLinker(u, "s() String", "static ext(String, int) int")
	x := NewContext(u)
	recv := NewCall("s", FeatureCall, nil)
	call := NewCall("ext", FeatureCall, recv, lit(u, "int"))
	sel := l.Link(x, call, nil)
	if sel.Winner == nil {
		t.Fatalf("not linked")
	}
	if got := sel.Winner.ArityMismatch(); got != 0 {
		t.Errorf("arity mismatch %d, want 0", got)
	}
	if got := featureString(recv.Ref.Feature()); got != "s() String" {
		t.Errorf("receiver linked to %s", got)
	}
	if got := sel.Type().String(); got != "int" {
		t.Errorf("type %s, want int", got)
	}
}

func TestLinkTwice(t *testing.T) {
	u := types.NewUniverse()
	l, _ := testLinker(u, "f(int)")
	x := NewContext(u)
	call := NewCall("f", FeatureCall, nil, lit(u, "int"))
	l.Link(x, call, nil)
	defer func() {
		r := recover()
		if _, ok := r.(*ContractViolation); !ok {
			t.Errorf("recovered %v, want a contract violation", r)
		}
	}()
	l.Link(x, call, nil)
}

func TestLinkInChildContext(t *testing.T) {
	u := types.NewUniverse()
	l, _ := testLinker(u, "f(int)")
	x := NewContext(u).Child()
	call := NewCall("f", FeatureCall, nil, lit(u, "int"))
	l.Link(x, call, nil)
	if !call.Ref.IsProxy() {
		t.Errorf("reference resolved below the root")
	}
	if x.Linked(call) == nil {
		t.Errorf("call not linked in the context")
	}
}

func TestTrace(t *testing.T) {
	var b bytes.Buffer
	SetTraceOutput(&b)
	SetTraceDepth(-1)
	defer func() {
		SetTraceDepth(0)
		SetTraceOutput(os.Stdout)
	}()

	u := types.NewUniverse()
	l, _ := testLinker(u, "f(Object)", "f(String)")
	l.Link(NewContext(u), NewCall("f", FeatureCall, nil, lit(u, "String")), nil)
	for _, want := range []string{
		"• linking f(String)",
		"f(Object): arity 0, {exact}",
		"selected f(String)",
	} {
		if !strings.Contains(b.String(), want) {
			t.Errorf("trace does not contain %q:\n%s", want, b.String())
		}
	}
}

func bindingStrings(c *Candidate) []string {
	var ss []string
	for _, b := range c.Bindings() {
		t := "<nil>"
		if b.Type != nil {
			t = b.Type.String()
		}
		ss = append(ss, b.Parm.Name+"="+t)
	}
	return ss
}
