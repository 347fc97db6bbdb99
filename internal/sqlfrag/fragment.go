package sqlfrag

import "strings"

// Fragment is SQL text interleaved with bound values. Placeholders are
// numbered only when the fragment is rendered, so fragments compose in any
// order and still number their arguments left to right.
type Fragment struct {
	text []string
	args []any
}

// Args returns a copy of the bound values in order.
func (f Fragment) Args() []any {
	out := make([]any, len(f.args))
	copy(out, f.args)
	return out
}

// Render writes the fragment with placeholders numbered from startArg.
func (f Fragment) Render(placeholder func(n int) string, startArg int) (sql string, args []any, nextArg int) {
	var sb strings.Builder
	next := startArg
	for i, text := range f.text {
		sb.WriteString(text)
		if i < len(f.args) {
			sb.WriteString(placeholder(next))
			next++
		}
	}
	return sb.String(), f.Args(), next
}

type fragmentWriter struct {
	text []string
	args []any
}

func (w *fragmentWriter) write(s string) *fragmentWriter {
	if len(w.text) == 0 {
		w.text = append(w.text, "")
	}
	w.text[len(w.text)-1] += s
	return w
}

func (w *fragmentWriter) bind(v any) *fragmentWriter {
	w.write("")
	w.args = append(w.args, v)
	w.text = append(w.text, "")
	return w
}

func (w *fragmentWriter) fragment(f Fragment) *fragmentWriter {
	for i, text := range f.text {
		w.write(text)
		if i < len(f.args) {
			w.bind(f.args[i])
		}
	}
	return w
}

func (w *fragmentWriter) done() Fragment {
	w.write("")
	return Fragment{text: w.text, args: w.args}
}
