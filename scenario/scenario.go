package scenario

import (
	"fmt"
	"strings"

	"github.com/eaburns/link/link"
	"github.com/eaburns/link/loc"
	"github.com/eaburns/link/types"
)

// A Scenario is a built scenario:
// a Universe with the declared classes,
// a Scope with the declared features,
// and the call sites to link.
type Scenario struct {
	// Path is the path of the main file.
	Path     string
	Files    loc.Files
	Universe *types.Universe
	Scope    *Scope
	Cases    []*Case
}

// A Case is one call site to link.
type Case struct {
	Call *link.Call
	// Want is the expected type of the call, or nil.
	Want   types.Type
	Expect *Expect
}

// Build builds the scenario of a file.
// Classes and features of included files are in scope;
// only the calls of the main file become Cases.
func Build(f *File) (*Scenario, error) {
	files := f.Files()
	s := &Scenario{
		Path:     f.Path,
		Universe: types.NewUniverse(),
		Scope:    &Scope{hidden: make(map[*link.Feature]bool)},
	}
	for _, file := range files {
		s.Files = append(s.Files, file.src)
	}
	b := &builder{s: s, bases: make(map[*File]int)}
	offs := 0
	for _, file := range files {
		b.bases[file] = offs
		offs += file.src.Len()
	}
	if err := b.classes(files); err != nil {
		return nil, err
	}
	for _, file := range files {
		if err := b.features(file); err != nil {
			return nil, err
		}
	}
	for i := range f.Calls {
		c, err := b.call(f, i)
		if err != nil {
			return nil, err
		}
		s.Cases = append(s.Cases, c)
	}
	return s, nil
}

// Link links a case in a new root context.
// A case can be linked only once,
// since linking resolves the references of its calls.
func (s *Scenario) Link(c *Case) (*link.Selection, *link.Context) {
	x := link.NewContext(s.Universe)
	link.SetTraceFiles(x, s.Files)
	sel := link.New(s.Universe, s.Scope).Link(x, c.Call, c.Want)
	return sel, x
}

// Load loads and builds the scenario file at a path relative to rootDir.
func Load(rootDir, path string) (*Scenario, error) {
	f, err := NewLoader(rootDir).Load(path)
	if err != nil {
		return nil, err
	}
	return Build(f)
}

type builder struct {
	s     *Scenario
	bases map[*File]int
}

func (b *builder) loc(f *File, offs []int, i int) loc.Loc {
	o, ok := f.pos.at(offs, i)
	if !ok {
		return loc.Loc{}
	}
	return loc.Span(b.bases[f], o, o)
}

func (b *builder) errorf(l loc.Loc, f string, vs ...interface{}) error {
	msg := fmt.Sprintf(f, vs...)
	if l == (loc.Loc{}) {
		return fmt.Errorf("%s", msg)
	}
	return fmt.Errorf("%s: %s", b.s.Files.Location(l), msg)
}

// classes adds the class definitions in two passes
// so that supertypes may refer to classes declared later.
func (b *builder) classes(files []*File) error {
	u := b.s.Universe
	type decl struct {
		file *File
		d    *ClassDecl
		def  *types.ClassDef
	}
	var decls []decl
	for _, f := range files {
		for i := range f.Classes {
			d := &f.Classes[i]
			if d.Name == "" {
				return fmt.Errorf("%s: class %d: missing name", f.FullPath, i)
			}
			if u.Lookup(d.Name) != nil {
				return fmt.Errorf("%s: class %s: already defined", f.FullPath, d.Name)
			}
			def := &types.ClassDef{Name: d.Name, Interface: d.Interface, Final: d.Final}
			for _, p := range d.Parms {
				name := p
				if j := strings.Index(p, " extends "); j >= 0 {
					name = p[:j]
				}
				def.Parms = append(def.Parms, &types.TypeParm{Name: strings.TrimSpace(name), Declarator: d.Name})
			}
			u.Add(def)
			decls = append(decls, decl{file: f, d: d, def: def})
		}
	}
	for _, x := range decls {
		for j, p := range x.d.Parms {
			k := strings.Index(p, " extends ")
			if k < 0 {
				continue
			}
			for _, bs := range strings.Split(p[k+len(" extends "):], "&") {
				t, err := u.Parse(x.file.FullPath, strings.TrimSpace(bs), x.def.Parms)
				if err != nil {
					return err
				}
				x.def.Parms[j].Bounds = append(x.def.Parms[j].Bounds, t)
			}
		}
		for _, sup := range x.d.Super {
			t, err := u.Parse(x.file.FullPath, sup, x.def.Parms)
			if err != nil {
				return err
			}
			if _, ok := t.(*types.Class); !ok {
				return fmt.Errorf("%s: class %s: supertype %s is not a class", x.file.FullPath, x.d.Name, t)
			}
			x.def.Super = append(x.def.Super, t)
		}
		if len(x.def.Super) == 0 && !x.def.Interface {
			x.def.Super = []types.Type{u.ObjectType()}
		}
	}
	return nil
}

func (b *builder) features(f *File) error {
	u := b.s.Universe
	for i, d := range f.Features {
		l := b.loc(f, f.pos.features, i)
		if d.Sig == "" {
			return b.errorf(l, "feature %d: missing signature", i)
		}
		var declarator *types.ClassDef
		if d.Declarator != "" {
			if declarator = u.Lookup(d.Declarator); declarator == nil {
				return b.errorf(l, "feature %s: class %s not found", d.Sig, d.Declarator)
			}
		}
		feat, err := link.ParseFeature(u, declarator, d.Sig)
		if err != nil {
			return b.errorf(l, "%s", err)
		}
		if feat.Kind == link.Constructor && declarator == nil {
			return b.errorf(l, "feature %s: constructor without a declarator", d.Sig)
		}
		feat.L = l
		b.s.Scope.add(feat, d.Hidden)
	}
	return nil
}

func (b *builder) call(f *File, i int) (*Case, error) {
	d := &f.Calls[i]
	l := b.loc(f, f.pos.calls, i)
	call, err := b.callExpr(d, l)
	if err != nil {
		return nil, b.errorf(l, "call %d: %s", i, err)
	}
	c := &Case{Call: call, Expect: d.Expect}
	if d.Want != "" {
		if c.Want, err = b.s.Universe.Parse(f.FullPath, d.Want, nil); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (b *builder) callExpr(d *CallDecl, l loc.Loc) (*link.Call, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("missing name")
	}
	var kind link.CallKind
	switch d.Kind {
	case "", "call":
		kind = link.FeatureCall
	case "assign":
		kind = link.Assignment
	case "new":
		kind = link.ConstructorCall
	default:
		return nil, fmt.Errorf("%s: unknown kind %q", d.Name, d.Kind)
	}
	var recv link.Expr
	if d.Receiver != nil {
		var err error
		if recv, err = b.expr(d.Receiver, l); err != nil {
			return nil, err
		}
	}
	var args []link.Expr
	for i := range d.Args {
		a, err := b.expr(&d.Args[i], l)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	if kind == link.Assignment && len(args) != 1 {
		return nil, fmt.Errorf("%s: assignment needs one value, got %d", d.Name, len(args))
	}
	call := link.NewCall(d.Name, kind, recv, args...)
	call.L = l
	for _, ta := range d.TypeArgs {
		t, err := b.s.Universe.Parse(b.s.Path, ta, nil)
		if err != nil {
			return nil, err
		}
		call.TypeArgs = append(call.TypeArgs, t)
	}
	return call, nil
}

func (b *builder) expr(e *Expr, l loc.Loc) (link.Expr, error) {
	if err := e.validate(); err != nil {
		return nil, err
	}
	switch {
	case e.Null:
		return &link.Null{L: l}, nil
	case e.Call != nil:
		return b.callExpr(e.Call, l)
	default:
		t, err := b.s.Universe.Parse(b.s.Path, e.Type, nil)
		if err != nil {
			return nil, err
		}
		return &link.Lit{T: t, L: l}, nil
	}
}
