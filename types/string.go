package types

import (
	"strconv"
	"strings"
)

func (p *Primitive) String() string { return p.buildString(new(strings.Builder)).String() }
func (c *Class) String() string     { return c.buildString(new(strings.Builder)).String() }
func (a *Array) String() string     { return a.buildString(new(strings.Builder)).String() }
func (v *Var) String() string       { return v.buildString(new(strings.Builder)).String() }
func (w *Wildcard) String() string  { return w.buildString(new(strings.Builder)).String() }
func (c *Compound) String() string  { return c.buildString(new(strings.Builder)).String() }
func (u *Unbound) String() string   { return u.buildString(new(strings.Builder)).String() }
func (*Any) String() string         { return "null" }
func (*Unknown) String() string     { return "<unknown>" }

func (p *Primitive) buildString(w *strings.Builder) *strings.Builder {
	w.WriteString(p.Kind.String())
	return w
}

func (c *Class) buildString(w *strings.Builder) *strings.Builder {
	w.WriteString(c.Def.Name)
	if len(c.Args) == 0 {
		return w
	}
	w.WriteRune('<')
	for i, a := range c.Args {
		if i > 0 {
			w.WriteString(", ")
		}
		a.buildString(w)
	}
	w.WriteRune('>')
	return w
}

func (a *Array) buildString(w *strings.Builder) *strings.Builder {
	if _, ok := a.Elem.(*Compound); ok {
		w.WriteRune('(')
		a.Elem.buildString(w)
		w.WriteRune(')')
	} else {
		a.Elem.buildString(w)
	}
	w.WriteString("[]")
	return w
}

func (v *Var) buildString(w *strings.Builder) *strings.Builder {
	w.WriteString(v.Parm.Name)
	return w
}

func (wc *Wildcard) buildString(w *strings.Builder) *strings.Builder {
	w.WriteRune('?')
	if len(wc.Upper) > 0 {
		w.WriteString(" extends ")
		for i, u := range wc.Upper {
			if i > 0 {
				w.WriteString(" & ")
			}
			u.buildString(w)
		}
	}
	if wc.Lower != nil {
		w.WriteString(" super ")
		wc.Lower.buildString(w)
	}
	return w
}

func (c *Compound) buildString(w *strings.Builder) *strings.Builder {
	sep := " & "
	if c.Union {
		sep = " | "
	}
	for i, t := range c.Types {
		if i > 0 {
			w.WriteString(sep)
		}
		t.buildString(w)
	}
	return w
}

func (u *Unbound) buildString(w *strings.Builder) *strings.Builder {
	w.WriteString("Unbound[")
	w.WriteString(u.Parm.Name)
	w.WriteRune('#')
	w.WriteString(strconv.Itoa(u.ID))
	w.WriteRune(']')
	return w
}

func (a *Any) buildString(w *strings.Builder) *strings.Builder {
	w.WriteString(a.String())
	return w
}

func (u *Unknown) buildString(w *strings.Builder) *strings.Builder {
	w.WriteString(u.String())
	return w
}

func (p *TypeParm) String() string {
	var s strings.Builder
	s.WriteString(p.Name)
	if len(p.Bounds) > 0 {
		s.WriteString(" extends ")
		for i, b := range p.Bounds {
			if i > 0 {
				s.WriteString(" & ")
			}
			b.buildString(&s)
		}
	}
	return s.String()
}
