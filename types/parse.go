package types

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/eaburns/link/loc"
	"github.com/eaburns/peggy/peg"
)

// Parse parses a type written in Java-like syntax:
//
//	Type     <- Inter ('|' Inter)*
//	Inter    <- Array ('&' Array)*
//	Array    <- Atom ('[' ']')*
//	Atom     <- '?' (('extends' Inter) / ('super' Array))? / Name TypeArgs? / '(' Type ')'
//	TypeArgs <- '<' Type (',' Type)* '>'
//
// Names are resolved first to the given type parameters,
// then to primitive types and null, then to classes of the Universe.
// The path is used only for error messages.
func (u *Universe) Parse(path, text string, parms []*TypeParm) (typ Type, err error) {
	p := &parser{u: u, path: path, text: text, parms: parms}
	defer func() {
		r := recover()
		switch r := r.(type) {
		case nil:
		case *peg.Fail:
			fail := &peg.Fail{Name: "Type", Kids: []*peg.Fail{r}}
			typ, err = nil, parseError{path: path, text: text, fail: fail}
		case nameError:
			typ, err = nil, r
		default:
			panic(r)
		}
	}()
	typ = p.union()
	p.space()
	if p.pos < len(p.text) {
		p.fail("end of input")
	}
	return typ, nil
}

// MustParse is like Parse, but panics on error.
func (u *Universe) MustParse(text string, parms ...*TypeParm) Type {
	typ, err := u.Parse("", text, parms)
	if err != nil {
		panic(err)
	}
	return typ
}

type parseError struct {
	path string
	text string
	fail *peg.Fail
}

func (err parseError) Tree() *peg.Fail { return err.fail }

func (err parseError) Error() string {
	e := peg.SimpleError(err.text, err.fail)
	e.FilePath = err.path
	return e.Error()
}

type nameError struct {
	location loc.Location
	name     string
}

func (e nameError) Error() string {
	return fmt.Sprintf("%s: type %s not found", e.location, e.name)
}

type parser struct {
	u     *Universe
	path  string
	text  string
	pos   int
	parms []*TypeParm
}

func (p *parser) fail(want string) {
	panic(&peg.Fail{Pos: p.pos, Want: want})
}

func (p *parser) space() {
	for p.pos < len(p.text) {
		r, w := utf8.DecodeRuneInString(p.text[p.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += w
	}
}

func (p *parser) peek(s string) bool {
	p.space()
	return len(p.text)-p.pos >= len(s) && p.text[p.pos:p.pos+len(s)] == s
}

func (p *parser) accept(s string) bool {
	if !p.peek(s) {
		return false
	}
	p.pos += len(s)
	return true
}

func (p *parser) expect(s string) {
	if !p.accept(s) {
		p.fail(`"` + s + `"`)
	}
}

// keyword accepts a word not followed by a name rune.
func (p *parser) keyword(s string) bool {
	start := p.pos
	if !p.accept(s) {
		return false
	}
	if r, _ := utf8.DecodeRuneInString(p.text[p.pos:]); p.pos < len(p.text) && isNameRune(r) {
		p.pos = start
		return false
	}
	return true
}

func (p *parser) union() Type {
	t := p.inter()
	if !p.peek("|") {
		return t
	}
	ts := []Type{t}
	for p.accept("|") {
		ts = append(ts, p.inter())
	}
	return &Compound{Union: true, Types: ts}
}

func (p *parser) inter() Type {
	t := p.array()
	if !p.peek("&") {
		return t
	}
	ts := []Type{t}
	for p.accept("&") {
		ts = append(ts, p.array())
	}
	return &Compound{Types: ts}
}

func (p *parser) array() Type {
	t := p.atom()
	for p.accept("[") {
		p.expect("]")
		t = &Array{Elem: t}
	}
	return t
}

func (p *parser) atom() Type {
	switch {
	case p.accept("?"):
		w := &Wildcard{}
		switch {
		case p.keyword("extends"):
			t := p.inter()
			if c, ok := t.(*Compound); ok && !c.Union {
				w.Upper = c.Types
			} else {
				w.Upper = []Type{t}
			}
		case p.keyword("super"):
			w.Lower = p.array()
		}
		return w
	case p.accept("("):
		t := p.union()
		p.expect(")")
		return t
	}
	p.space()
	start := p.pos
	name := p.name()
	return p.resolve(name, start)
}

func (p *parser) name() string {
	p.space()
	start := p.pos
	for p.pos < len(p.text) {
		r, w := utf8.DecodeRuneInString(p.text[p.pos:])
		if !isNameRune(r) || p.pos == start && unicode.IsDigit(r) {
			break
		}
		p.pos += w
	}
	if p.pos == start {
		p.fail("Name")
	}
	return p.text[start:p.pos]
}

func isNameRune(r rune) bool {
	return r == '_' || r == '$' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (p *parser) resolve(name string, start int) Type {
	for _, parm := range p.parms {
		if parm.Name == name {
			return &Var{Parm: parm}
		}
	}
	for k, n := range kindNames {
		if n == name {
			return Prim(k)
		}
	}
	if name == "null" {
		return &Any{}
	}
	def := p.u.Lookup(name)
	if def == nil {
		files := loc.Files{loc.NewSource(p.path, p.text)}
		panic(nameError{location: files.Location(loc.Span(0, start, start+len(name))), name: name})
	}
	c := &Class{Def: def}
	if p.accept("<") {
		c.Args = append(c.Args, p.union())
		for p.accept(",") {
			c.Args = append(c.Args, p.union())
		}
		p.expect(">")
	}
	return c
}
