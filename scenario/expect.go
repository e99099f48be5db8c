package scenario

import (
	"fmt"
	"strings"

	"github.com/eaburns/link/link"
)

// Verify returns the differences between the outcome of linking the case
// and its expectation. It returns nil if there is no expectation.
func (c *Case) Verify(sel *link.Selection, errs []link.Error) []string {
	e := c.Expect
	if e == nil {
		return nil
	}
	var diffs []string
	if e.Winner != "" {
		got := "none"
		if sel.Winner != nil {
			got = sel.Winner.Feature().String()
		}
		if got != e.Winner {
			diffs = append(diffs, fmt.Sprintf("winner %s, want %s", got, e.Winner))
		}
	}
	if e.Type != "" {
		if got := sel.Type().String(); got != e.Type {
			diffs = append(diffs, fmt.Sprintf("type %s, want %s", got, e.Type))
		}
	}
	if e.Ties != nil {
		var got []string
		for _, t := range sel.Ties {
			got = append(got, t.Feature().String())
		}
		if !equal(got, e.Ties) {
			diffs = append(diffs, fmt.Sprintf("ties [%s], want [%s]",
				strings.Join(got, "; "), strings.Join(e.Ties, "; ")))
		}
	}
	if e.Bindings != nil {
		got := BindingStrings(sel.Winner)
		if !equal(got, e.Bindings) {
			diffs = append(diffs, fmt.Sprintf("bindings [%s], want [%s]",
				strings.Join(got, ", "), strings.Join(e.Bindings, ", ")))
		}
	}
	if e.Errors != nil {
		if len(errs) != len(e.Errors) {
			diffs = append(diffs, fmt.Sprintf("%d errors, want %d", len(errs), len(e.Errors)))
		} else {
			for i, err := range errs {
				if !strings.Contains(err.Error(), e.Errors[i]) {
					diffs = append(diffs, fmt.Sprintf("error %q does not contain %q", err, e.Errors[i]))
				}
			}
		}
	}
	return diffs
}

// BindingStrings returns the inferred type arguments of a candidate as "T=Type".
// An unconstrained type parameter is "T=?".
func BindingStrings(c *link.Candidate) []string {
	if c == nil {
		return nil
	}
	var ss []string
	for _, b := range c.Bindings() {
		t := "?"
		if b.Type != nil {
			t = b.Type.String()
		}
		ss = append(ss, b.Parm.Name+"="+t)
	}
	return ss
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
