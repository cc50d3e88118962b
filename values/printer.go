package values

import (
	"io"
	"math"
	"strconv"
	"strings"
)

// Printer is the text sink for ToCSS. The first write error is kept and
// every following call returns it without writing.
type Printer struct {
	Minify bool

	w      io.Writer
	indent int
	err    error
}

func NewPrinter(w io.Writer, minify bool) *Printer {
	return &Printer{w: w, Minify: minify}
}

// Err returns the first write error, if any.
func (p *Printer) Err() error {
	return p.err
}

func (p *Printer) WriteString(s string) error {
	if p.err != nil {
		return p.err
	}
	_, p.err = io.WriteString(p.w, s)
	return p.err
}

func (p *Printer) WriteByte(b byte) error {
	return p.WriteString(string(b))
}

// Delim writes a delimiter. In pretty mode it is followed by a space and,
// when spaceBefore is set, preceded by one.
func (p *Printer) Delim(ch byte, spaceBefore bool) error {
	if p.Minify {
		return p.WriteByte(ch)
	}
	if spaceBefore {
		if err := p.WriteByte(' '); err != nil {
			return err
		}
	}
	if err := p.WriteByte(ch); err != nil {
		return err
	}
	return p.WriteByte(' ')
}

// Whitespace writes optional whitespace, omitted when minifying.
func (p *Printer) Whitespace() error {
	if p.Minify {
		return p.err
	}
	return p.WriteByte(' ')
}

// Newline starts a new indented line, nothing when minifying.
func (p *Printer) Newline() error {
	if p.Minify {
		return p.err
	}
	return p.WriteString("\n" + strings.Repeat("  ", p.indent))
}

func (p *Printer) Indent() {
	p.indent++
}

func (p *Printer) Dedent() {
	if p.indent > 0 {
		p.indent--
	}
}

// Number writes v using FormatNumber.
func (p *Printer) Number(v float64) error {
	return p.WriteString(FormatNumber(v, p.Minify))
}

// FormatNumber prints v rounded to six decimal places without exponent.
// Negative zero becomes 0. When minifying the leading zero of fractions is
// dropped (.5, -.25).
func FormatNumber(v float64, minify bool) string {
	v = RoundTo(v, 6)
	if v == 0 || math.IsNaN(v) {
		return "0"
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if minify {
		switch {
		case strings.HasPrefix(s, "0."):
			s = s[1:]
		case strings.HasPrefix(s, "-0."):
			s = "-" + s[2:]
		}
	}
	return s
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	r := math.Round(v*scale) / scale
	if r == 0 {
		// drop sign of negative zero
		return 0
	}
	return r
}
