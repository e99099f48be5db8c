package link

import (
	"fmt"
	"strings"

	"github.com/eaburns/link/loc"
	"github.com/eaburns/link/types"
)

// Error is a diagnostic about a linked call site.
type Error interface {
	error
	loc.Locer

	setNotes([]note)
	note(string, ...interface{}) note
	done(*Diagnoser)
}

// ContractViolation is the panic value of misuse of the linker:
// resolving a resolved reference, comparing candidates
// of different call sites, or committing a candidate twice.
type ContractViolation struct {
	Msg string
}

func (c *ContractViolation) Error() string { return "contract violation: " + c.Msg }

func violation(f string, vs ...interface{}) {
	panic(&ContractViolation{Msg: fmt.Sprintf(f, vs...)})
}

func newError(locer loc.Locer, f string, vs ...interface{}) Error {
	return &_error{msg: fmt.Sprintf(f, vs...), loc: locer.Loc()}
}

func notFound(call *Call) Error {
	return newError(call, "%s: not found", call.Name)
}

func ambiguousCall(sel *Selection) Error {
	err := newError(sel.Call, "ambiguous call %s", sel.Call)
	for _, c := range append([]*Candidate{sel.Winner}, sel.Ties...) {
		err.note("%s", c.Feature()).setLoc(c.Feature())
	}
	return err
}

type note interface {
	verbose(bool)
	isVerbose() bool
	setNotes([]note)
	setLoc(x interface{}) note
	buildString(d *Diagnoser, mustIdent bool, depth int, s *strings.Builder)
}

func newNote(f string, vs ...interface{}) note {
	return &_error{msg: fmt.Sprintf(f, vs...)}
}

type _error struct {
	msg   string
	loc   loc.Loc
	notes []note

	// v is whether this note should be displayed
	// only in verbose mode.
	v bool
}

func (e *_error) Error() string   { return e.msg }
func (e *_error) Loc() loc.Loc    { return e.loc }
func (e *_error) verbose(b bool)  { e.v = b }
func (e *_error) isVerbose() bool { return e.v }

func (e *_error) setNotes(ns []note) {
	for _, n := range ns {
		if n == nil {
			panic("nil note")
		}
	}
	e.notes = ns
}

func (e *_error) setLoc(x interface{}) note {
	if locer, ok := x.(loc.Locer); ok {
		e.loc = locer.Loc()
	}
	return e
}

func (e *_error) note(f string, vs ...interface{}) note {
	e.notes = append(e.notes, newNote(f, vs...))
	return e.notes[len(e.notes)-1]
}

func (e *_error) done(d *Diagnoser) {
	var s strings.Builder
	if l := d.location(e.loc); l != (loc.Location{}) {
		s.WriteString(l.String())
		s.WriteString(": ")
	}
	s.WriteString(e.msg)
	i := 0
	for _, n := range e.notes {
		if n.isVerbose() && !d.Verbose {
			continue
		}
		s.WriteRune('\n')
		n.buildString(d, true, 1, &s)
		e.notes[i] = n
		i++
	}
	e.notes = e.notes[:i]
	e.msg = s.String()
}

func (e *_error) buildString(d *Diagnoser, mustIdent bool, depth int, s *strings.Builder) {
	s.WriteString(strings.Repeat("\t", depth))
	s.WriteString(e.msg)
	if l := d.location(e.loc); l != (loc.Location{}) {
		s.WriteString(" (")
		s.WriteString(l.String())
		s.WriteRune(')')
	}
	mustIdent = mustIdent || len(e.notes) > 1
	for _, n := range e.notes {
		if n.isVerbose() && !d.Verbose {
			continue
		}
		s.WriteRune('\n')
		if mustIdent {
			n.buildString(d, false, depth+1, s)
		} else {
			n.buildString(d, true, depth, s)
		}
	}
}

// A Diagnoser reports errors for linked call sites.
// Linking itself never fails; whether a selection is an error
// is decided by the Diagnoser.
type Diagnoser struct {
	// Files are the source files used to print locations.
	Files loc.Files
	// TrimPrefix is trimmed from the path of printed locations.
	TrimPrefix string
	// Verbose is whether to include notes about the rejected candidates.
	Verbose bool
}

func (d *Diagnoser) location(l loc.Loc) loc.Location {
	if l == (loc.Loc{}) || len(d.Files) == 0 {
		return loc.Location{}
	}
	return loc.TrimPrefix(d.Files.Location(l), d.TrimPrefix)
}

// Check returns the errors of a selection:
// no candidates, an ambiguous winner, an invisible winner,
// a winner with the wrong number of arguments or type arguments,
// and arguments that do not conform.
func (d *Diagnoser) Check(sel *Selection) []Error {
	var errs []Error
	c := sel.Winner
	switch {
	case c == nil:
		errs = append(errs, notFound(sel.Call))
	case len(sel.Ties) > 0:
		errs = append(errs, ambiguousCall(sel))
	default:
		errs = append(errs, d.checkWinner(sel)...)
	}
	for _, err := range errs {
		err.done(d)
	}
	return errs
}

func (d *Diagnoser) checkWinner(sel *Selection) []Error {
	var errs []Error
	c := sel.Winner
	f := c.Feature()
	if !c.Visible() {
		err := newError(sel.Call, "%s is not visible", f)
		d.noteRejected(err, sel)
		errs = append(errs, err)
	}
	switch n := c.ArityMismatch(); {
	case n < 0:
		err := newError(sel.Call, "too few arguments to %s", f)
		d.noteRejected(err, sel)
		errs = append(errs, err)
	case n > 0:
		err := newError(sel.Call, "too many arguments to %s", f)
		d.noteRejected(err, sel)
		errs = append(errs, err)
	}
	if n := c.TypeArityMismatch(); n != 0 {
		errs = append(errs, newError(sel.Call, "%s expects %d type arguments, got %d",
			f, len(c.declaredTypeParameters()), len(sel.Call.TypeArgs)))
	}
	for i := 0; i < c.ArgumentCount(); i++ {
		if c.Hints(i).OK() {
			continue
		}
		arg := c.args.expr(i)
		x := c.Context()
		want := x.ExpectedType(arg)
		got := x.ActualType(arg)
		var err Error
		if want == nil {
			err = newError(arg, "argument %d has no type", i)
		} else {
			err = newError(arg, "argument %d: %s is not assignable to %s", i, typeString(got), want)
		}
		d.noteRejected(err, sel)
		errs = append(errs, err)
	}
	return errs
}

// noteRejected adds verbose notes for the candidates that lost.
func (d *Diagnoser) noteRejected(err Error, sel *Selection) {
	for _, c := range sel.Candidates {
		if c == sel.Winner {
			continue
		}
		n := err.note("%s", c.Feature()).setLoc(c.Feature())
		n.verbose(true)
	}
}

func typeString(t types.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
