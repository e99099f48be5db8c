package scenario

import (
	"testing"

	"github.com/eaburns/link/link"
	"github.com/eaburns/link/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linkAll(t *testing.T, s *Scenario) {
	t.Helper()
	d := &link.Diagnoser{Files: s.Files}
	for _, c := range s.Cases {
		sel, _ := s.Link(c)
		diffs := c.Verify(sel, d.Check(sel))
		assert.Empty(t, diffs, "%s", c.Call)
	}
}

func TestLoadYAML(t *testing.T) {
	s, err := Load("testdata", "overloads.yaml")
	require.NoError(t, err)
	assert.Equal(t, "overloads.yaml", s.Path)
	require.Len(t, s.Files, 2)
	assert.Equal(t, "testdata/lib.yaml", s.Files[0].Path())
	assert.Equal(t, "testdata/overloads.yaml", s.Files[1].Path())
	assert.Len(t, s.Cases, 6)
	assert.Len(t, s.Scope.Features(), 8)

	numBox := s.Universe.Lookup("NumBox")
	require.NotNil(t, numBox)
	require.Len(t, numBox.Parms, 1)
	assert.Equal(t, "N extends Number", numBox.Parms[0].String())
	require.Len(t, numBox.Super, 1)
	assert.Equal(t, "Box<N>", numBox.Super[0].String())

	circle := s.Universe.Lookup("Circle")
	require.NotNil(t, circle)
	assert.NotNil(t, types.AsSuper(&types.Class{Def: circle}, s.Universe.Lookup("Shape")))

	linkAll(t, s)
}

func TestLoadTOML(t *testing.T) {
	s, err := Load("testdata", "overloads.toml")
	require.NoError(t, err)
	require.Len(t, s.Cases, 3)
	assert.Equal(t, "double", s.Cases[0].Want.String())
	assert.Nil(t, s.Cases[1].Want)
	_, ok := s.Cases[1].Call.Args[0].(*link.Null)
	assert.True(t, ok, "argument is %T, want *link.Null", s.Cases[1].Call.Args[0])
	linkAll(t, s)
}

func TestLoadIncludeOnce(t *testing.T) {
	ld := NewLoader("testdata")
	a, err := ld.Load("overloads.yaml")
	require.NoError(t, err)
	b, err := ld.Load("lib.yaml")
	require.NoError(t, err)
	require.Len(t, a.Deps, 1)
	assert.Same(t, b, a.Deps[0])
	assert.Len(t, a.Files(), 2)
}

func TestLoadIncludeCycle(t *testing.T) {
	_, err := Load("testdata", "cycle_a.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "include cycle: [cycle_a.yaml cycle_b.yaml cycle_a.yaml]")
}

func TestLoadMissing(t *testing.T) {
	_, err := Load("testdata", "missing.yaml")
	assert.Error(t, err)
}

func TestLoadLocation(t *testing.T) {
	_, err := Load("testdata", "bad.yaml")
	require.Error(t, err)
	assert.Equal(t, "testdata/bad.yaml:3.5: call 1: missing name", err.Error())
}

func TestDecodeUnknownFormat(t *testing.T) {
	_, err := Decode("x.json", []byte("{}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown scenario format ".json"`)
}

func TestDecodeSyntaxError(t *testing.T) {
	_, err := Decode("x.yaml", []byte("calls: [\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "x.yaml: ")

	_, err = Decode("x.toml", []byte("[[calls]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "x.toml: ")
}

func TestDecodeExprShorthand(t *testing.T) {
	f, err := Decode("x.yaml", []byte(`
calls:
  - name: f
    receiver: String
    args:
      - int
      - null
      - type: List<String>
      - call: {name: g, args: [long]}
`))
	require.NoError(t, err)
	require.Len(t, f.Calls, 1)
	c := f.Calls[0]
	require.NotNil(t, c.Receiver)
	assert.Equal(t, Expr{Type: "String"}, *c.Receiver)
	require.Len(t, c.Args, 4)
	assert.Equal(t, Expr{Type: "int"}, c.Args[0])
	assert.Equal(t, Expr{Null: true}, c.Args[1])
	assert.Equal(t, Expr{Type: "List<String>"}, c.Args[2])
	require.NotNil(t, c.Args[3].Call)
	assert.Equal(t, "g", c.Args[3].Call.Name)
	assert.Equal(t, []Expr{{Type: "long"}}, c.Args[3].Call.Args)
}

func TestDecodeNullArguments(t *testing.T) {
	f, err := Decode("x.yaml", []byte(`
calls:
  - name: f
    args: [null, ~, {null: true}, "null"]
  - name: g
    args:
      - call: {name: h, args: [null, int]}
`))
	require.NoError(t, err)
	require.Len(t, f.Calls, 2)
	null := Expr{Null: true}
	assert.Equal(t, []Expr{null, null, null, null}, f.Calls[0].Args)
	require.Len(t, f.Calls[1].Args, 1)
	require.NotNil(t, f.Calls[1].Args[0].Call)
	assert.Equal(t, []Expr{null, {Type: "int"}}, f.Calls[1].Args[0].Call.Args)
}

func TestDecodeAmbiguousExpr(t *testing.T) {
	f, err := Decode("x.yaml", []byte("calls: [{name: f, args: [{type: int, null: true}]}]"))
	require.NoError(t, err)
	require.Len(t, f.Calls[0].Args, 1)
	assert.Equal(t, Expr{Type: "int", Null: true}, f.Calls[0].Args[0])
	assert.Error(t, f.Calls[0].Args[0].validate())
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "duplicate class",
			src:  "classes: [{name: A}, {name: A}]",
			want: "class A: already defined",
		},
		{
			name: "built-in class",
			src:  "classes: [{name: String}]",
			want: "class String: already defined",
		},
		{
			name: "unnamed class",
			src:  "classes: [{interface: true}]",
			want: "class 0: missing name",
		},
		{
			name: "bad supertype",
			src:  "classes: [{name: A, super: [int]}]",
			want: "supertype int is not a class",
		},
		{
			name: "unknown supertype",
			src:  "classes: [{name: A, super: [B]}]",
			want: "type B not found",
		},
		{
			name: "missing signature",
			src:  "features: [{declarator: String}]",
			want: "feature 0: missing signature",
		},
		{
			name: "unknown declarator",
			src:  "features: [{sig: f(), declarator: Nope}]",
			want: "class Nope not found",
		},
		{
			name: "constructor without declarator",
			src:  "features: [{sig: new()}]",
			want: "constructor without a declarator",
		},
		{
			name: "bad signature",
			src:  "features: [{sig: f(int}]",
			want: "unclosed (",
		},
		{
			name: "unknown kind",
			src:  "calls: [{name: f, kind: invoke}]",
			want: `f: unknown kind "invoke"`,
		},
		{
			name: "assignment without value",
			src:  "calls: [{name: f, kind: assign}]",
			want: "f: assignment needs one value, got 0",
		},
		{
			name: "empty expression",
			src:  "calls: [{name: f, args: [{}]}]",
			want: "exactly one of type, null, or call",
		},
		{
			name: "ambiguous expression",
			src:  "calls: [{name: f, args: [{type: int, null: true}]}]",
			want: "exactly one of type, null, or call",
		},
		{
			name: "bad argument type",
			src:  "calls: [{name: f, args: [Strin]}]",
			want: "type Strin not found",
		},
		{
			name: "bad want",
			src:  "calls: [{name: f, want: Strin}]",
			want: "type Strin not found",
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			f, err := Decode("test.yaml", []byte(test.src))
			require.NoError(t, err)
			_, err = Build(f)
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.want)
		})
	}
}

func TestScopeLookup(t *testing.T) {
	f, err := Decode("test.yaml", []byte(`
classes:
  - name: Box
    parms: [T]
  - name: Other
features:
  - sig: size() int
    declarator: Box
  - sig: size() int
    declarator: Other
  - sig: static size(Object) int
  - sig: new()
    declarator: Box
  - sig: size int
    hidden: true
`))
	require.NoError(t, err)
	s, err := Build(f)
	require.NoError(t, err)
	u := s.Universe

	names := func(ds []link.Description) []string {
		var ss []string
		for _, d := range ds {
			ss = append(ss, d.Feature.String())
		}
		return ss
	}

	recv := &link.Lit{T: u.MustParse("Box<String>")}
	call := link.NewCall("size", link.FeatureCall, recv)
	ds := s.Scope.Lookup(call, recv.T)
	assert.Equal(t, []string{"Box.size() int", "static size(Object) int", "size int"}, names(ds))
	assert.Nil(t, ds[0].Receiver)
	assert.Same(t, recv, ds[1].Receiver)
	assert.True(t, ds[0].Visible)
	assert.False(t, ds[2].Visible)

	call = link.NewCall("size", link.FeatureCall, nil)
	assert.Len(t, s.Scope.Lookup(call, nil), 4)

	call = link.NewCall("Box", link.ConstructorCall, nil)
	assert.Equal(t, []string{"new Box()"}, names(s.Scope.Lookup(call, nil)))

	call = link.NewCall("size", link.FeatureCall, recv)
	assert.Equal(t, []string{"static size(Object) int", "size int"},
		names(s.Scope.Lookup(call, u.MustParse("int[]"))))
}

func TestVerify(t *testing.T) {
	f, err := Decode("test.yaml", []byte(`
features:
  - sig: f(Object, String)
  - sig: f(String, Object)
calls:
  - name: f
    args: [String, String]
    expect:
      winner: f(String, Object)
      type: int
      ties: []
      bindings: [T=String]
      errors: [not found]
`))
	require.NoError(t, err)
	s, err := Build(f)
	require.NoError(t, err)
	c := s.Cases[0]
	sel, _ := s.Link(c)
	d := &link.Diagnoser{}
	diffs := c.Verify(sel, d.Check(sel))
	assert.Equal(t, []string{
		"winner f(Object, String), want f(String, Object)",
		"type void, want int",
		"ties [f(String, Object)], want []",
		"bindings [], want [T=String]",
		`error "ambiguous call f(String, String)\n\tf(Object, String)\n\tf(String, Object)" does not contain "not found"`,
	}, diffs)
}
