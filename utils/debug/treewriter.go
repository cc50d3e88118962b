// Package debug renders diagnostic trees for the value command.
package debug

import (
	"fmt"
	"strconv"
	"strings"

	"cssmin/values"
	"cssmin/values/matrix"
)

// TreeWriter accumulates indented lines, two spaces per depth level.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes label and quoted text.
func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Value writes both serializations of v, pretty first.
func (tw TreeWriter) Value(depth int, label string, v values.Value) {
	pretty, err := values.ToCSSString(v, false)
	if err != nil {
		tw.Line(depth, "%s: <error: %v>", label, err)
		return
	}
	minified, err := values.ToCSSString(v, true)
	if err != nil {
		tw.Line(depth, "%s: %s <error: %v>", label, pretty, err)
		return
	}
	if pretty == minified {
		tw.Line(depth, "%s: %s", label, pretty)
		return
	}
	tw.Line(depth, "%s: %s | %s", label, pretty, minified)
}

// Matrix writes m one row per line under label.
func (tw TreeWriter) Matrix(depth int, label string, m matrix.Matrix3D) {
	tw.Line(depth, "%s:", label)
	rows := [4][4]float64{
		{m.M11, m.M12, m.M13, m.M14},
		{m.M21, m.M22, m.M23, m.M24},
		{m.M31, m.M32, m.M33, m.M34},
		{m.M41, m.M42, m.M43, m.M44},
	}
	for _, r := range rows {
		cells := make([]string, len(r))
		for i, v := range r {
			cells[i] = values.FormatNumber(v, false)
		}
		tw.Line(depth+1, "[%s]", strings.Join(cells, ", "))
	}
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
