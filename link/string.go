package link

import (
	"strings"

	"github.com/eaburns/link/types"
)

func (f *Feature) String() string { return f.buildString(&strings.Builder{}).String() }

func (f *Feature) buildString(s *strings.Builder) *strings.Builder {
	if f.Static {
		s.WriteString("static ")
	}
	if f.Kind == Constructor {
		s.WriteString("new ")
	}
	if f.Declarator != nil {
		s.WriteString(f.Declarator.Name)
		if f.Kind != Constructor {
			s.WriteRune('.')
		}
	}
	if f.Kind != Constructor || f.Declarator == nil {
		s.WriteString(f.Name)
	}
	if len(f.TypeParms) > 0 {
		s.WriteRune('<')
		for i, p := range f.TypeParms {
			if i > 0 {
				s.WriteString(", ")
			}
			s.WriteString(p.String())
		}
		s.WriteRune('>')
	}
	if f.Kind == Field {
		if f.Type != nil {
			s.WriteRune(' ')
			s.WriteString(f.Type.String())
		}
		return s
	}
	s.WriteRune('(')
	for i, p := range f.Parms {
		if i > 0 {
			s.WriteString(", ")
		}
		if f.VarArgs && i == len(f.Parms)-1 {
			if e := types.Component(p.T); e != nil {
				s.WriteString(e.String())
				s.WriteString("...")
				continue
			}
		}
		s.WriteString(p.T.String())
	}
	s.WriteRune(')')
	if f.Kind == Operation && f.Type != nil && !types.IsVoid(f.Type) {
		s.WriteRune(' ')
		s.WriteString(f.Type.String())
	}
	return s
}

func (l *Lit) String() string {
	if l.Text != "" {
		return l.Text
	}
	return l.T.String()
}

func (*Null) String() string { return "null" }

func (c *Call) String() string { return c.buildString(&strings.Builder{}).String() }

func (c *Call) buildString(s *strings.Builder) *strings.Builder {
	if c.Kind == ConstructorCall {
		s.WriteString("new ")
	}
	if c.Receiver != nil {
		s.WriteString(c.Receiver.String())
		s.WriteRune('.')
	}
	s.WriteString(c.Name)
	if len(c.TypeArgs) > 0 {
		s.WriteRune('<')
		for i, t := range c.TypeArgs {
			if i > 0 {
				s.WriteString(", ")
			}
			s.WriteString(t.String())
		}
		s.WriteRune('>')
	}
	if c.Kind == Assignment {
		for _, a := range c.Args {
			s.WriteString(" = ")
			s.WriteString(a.String())
		}
		return s
	}
	s.WriteRune('(')
	for i, a := range c.Args {
		if i > 0 {
			s.WriteString(", ")
		}
		s.WriteString(a.String())
	}
	s.WriteRune(')')
	return s
}
