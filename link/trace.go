package link

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/eaburns/link/loc"
	"github.com/eaburns/link/types"
)

var (
	traceDepth = flag.Int("link.trace.depth", 0, "max depth for linking trace (0 = no trace; -1 = infinite)")

	traceOut io.Writer = os.Stdout
)

// SetTraceDepth sets the maximum depth of the linking trace.
// 0 disables the trace; -1 is unlimited.
func SetTraceDepth(d int) { *traceDepth = d }

// SetTraceOutput sets the writer of the linking trace.
func SetTraceOutput(w io.Writer) { traceOut = w }

const traceIndent = "\t"

var bullets = []string{"•", "◦", "▪", "▫"}

type traceState struct {
	indent     string
	nextBullet int
	files      loc.Files
}

type traceItem struct {
	st     *traceState
	indent string
	bullet int
}

func traceStateOf(x *Context) *traceState {
	r := x.root()
	if r.tr == nil {
		r.tr = &traceState{}
	}
	return r.tr
}

func trItem(x *Context, f string, vs ...interface{}) *traceItem {
	st := traceStateOf(x)
	tr := &traceItem{st: st, indent: st.indent, bullet: st.nextBullet}
	st.indent += traceIndent
	st.nextBullet++
	tr.trace(f, vs...)
	return tr
}

func (tr *traceItem) done() {
	tr.st.indent = strings.TrimSuffix(tr.st.indent, traceIndent)
	tr.st.nextBullet--
}

// add traces a line under the item.
func (tr *traceItem) add(f string, vs ...interface{}) {
	tr.trace(f, vs...)
}

func (tr *traceItem) trace(f string, vs ...interface{}) {
	if *traceDepth == 0 {
		return
	}
	depth := strings.Count(tr.indent, traceIndent) + 1
	if *traceDepth > 0 && depth > *traceDepth {
		return
	}
	for i := range vs {
		l, ok := vs[i].(loc.Loc)
		if !ok || len(tr.st.files) == 0 {
			continue
		}
		vs[i] = tr.st.files.Location(l)
	}
	s := fmt.Sprintf(f, vs...)
	s = strings.TrimSuffix(s, "\n")
	s = strings.ReplaceAll(s, "\n", "\n"+tr.indent+"  ")
	if tr.bullet >= 0 {
		s = bullets[tr.bullet%len(bullets)] + " " + s
		tr.bullet = -1
	} else {
		s = "  " + s
	}
	fmt.Fprintln(traceOut, tr.indent+s)
}

// SetTraceFiles sets the files used to print locations in the trace
// of linking in the context tree of x.
func SetTraceFiles(x *Context, files loc.Files) {
	traceStateOf(x).files = files
}

func (c *Candidate) traceHints() string {
	var s strings.Builder
	s.WriteString("arity ")
	s.WriteString(fmt.Sprint(c.ArityMismatch()))
	for i := 0; i < c.ArgumentCount(); i++ {
		s.WriteString(", ")
		s.WriteString(c.Hints(i).String())
	}
	if t := c.ResultType(); t != nil && !types.IsVoid(t) {
		s.WriteString(" -> ")
		s.WriteString(t.String())
	}
	return s.String()
}
