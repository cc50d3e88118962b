package css

import (
	"io"
	"strings"

	"go.uber.org/multierr"

	"cssmin/properties"
	"cssmin/rules"
	"cssmin/values"
)

// cssEscapeDoubleQuoted escapes a string for use inside CSS double quotes.
// Backslashes and double quotes are escaped per CSS syntax: \" and \\.
func cssEscapeDoubleQuoted(s string) string {
	// Fast path: nothing to escape.
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Rule is a style rule. The selector list is kept as written.
type Rule struct {
	Selector     string
	Declarations properties.DeclarationBlock
}

func (r *Rule) ToCSS(p *values.Printer) error {
	if err := p.WriteString(selectorText(r.Selector, p.Minify)); err != nil {
		return err
	}
	if err := p.Whitespace(); err != nil {
		return err
	}
	return r.Declarations.ToCSS(p)
}

// selectorText collapses whitespace runs, minified output also drops the
// whitespace around commas.
func selectorText(sel string, minify bool) string {
	sel = strings.Join(strings.Fields(sel), " ")
	if !minify {
		return sel
	}
	parts := strings.Split(sel, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, ",")
}

// GroupBlock is a conditional group rule (@media, @supports, ...) holding
// style rules.
type GroupBlock struct {
	Name    string // at-keyword without @, lower case
	Prelude string
	Rules   []Rule
}

func (g *GroupBlock) ToCSS(p *values.Printer) error {
	if err := p.WriteString("@" + g.Name + " " + g.Prelude); err != nil {
		return err
	}
	if err := p.Whitespace(); err != nil {
		return err
	}
	if err := p.WriteByte('{'); err != nil {
		return err
	}
	p.Indent()
	for i := range g.Rules {
		if err := p.Newline(); err != nil {
			return err
		}
		if err := g.Rules[i].ToCSS(p); err != nil {
			return err
		}
	}
	p.Dedent()
	if err := p.Newline(); err != nil {
		return err
	}
	return p.WriteByte('}')
}

// DescriptorBlock is an at-rule with a declaration block such as
// @font-face or @page.
type DescriptorBlock struct {
	Name         string
	Prelude      string
	Declarations properties.DeclarationBlock
}

func (d *DescriptorBlock) ToCSS(p *values.Printer) error {
	head := "@" + d.Name
	if d.Prelude != "" {
		head += " " + d.Prelude
	}
	if err := p.WriteString(head); err != nil {
		return err
	}
	if err := p.Whitespace(); err != nil {
		return err
	}
	return d.Declarations.ToCSS(p)
}

// Statement is a block-less at-rule: @import, @charset, @namespace.
type Statement struct {
	Name    string
	Prelude string
	URL     string // @import target, unquoted
}

func (s *Statement) ToCSS(p *values.Printer) error {
	text := "@" + s.Name + " " + s.Prelude
	if s.Name == "import" && s.URL != "" {
		text = `@import url("` + cssEscapeDoubleQuoted(s.URL) + `")`
		if rest := importConditions(s.Prelude); rest != "" {
			text += " " + rest
		}
	}
	return p.WriteString(text + ";")
}

// StylesheetItem is a single top-level item in a stylesheet.
// Exactly one field is non-nil.
type StylesheetItem struct {
	Rule       *Rule
	Group      *GroupBlock
	Descriptor *DescriptorBlock
	Keyframes  *rules.KeyframesRule
	Statement  *Statement
}

func (it StylesheetItem) value() values.Value {
	switch {
	case it.Rule != nil:
		return it.Rule
	case it.Group != nil:
		return it.Group
	case it.Descriptor != nil:
		return it.Descriptor
	case it.Keyframes != nil:
		return it.Keyframes
	case it.Statement != nil:
		return it.Statement
	}
	return nil
}

// Stylesheet represents a parsed CSS stylesheet.
type Stylesheet struct {
	Items    []StylesheetItem // All top-level items in source order
	Warnings []string         // Declarations and rules which were kept verbatim or dropped

	errs error
}

// Err returns every declaration value error found while parsing, combined.
// Such declarations are kept unparsed in the stylesheet.
func (s *Stylesheet) Err() error {
	return s.errs
}

func (s *Stylesheet) addError(err error) {
	s.errs = multierr.Append(s.errs, err)
	s.Warnings = append(s.Warnings, err.Error())
}

// Imports returns all @import URLs from the stylesheet in source order.
func (s *Stylesheet) Imports() []string {
	var urls []string
	for _, item := range s.Items {
		if item.Statement != nil && item.Statement.Name == "import" && item.Statement.URL != "" {
			urls = append(urls, item.Statement.URL)
		}
	}
	return urls
}

// RulesBySelector returns all top-level rules with the given selector text,
// whitespace is not significant.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	want := selectorText(selector, true)
	var matches []Rule
	for _, item := range s.Items {
		if item.Rule != nil && selectorText(item.Rule.Selector, true) == want {
			matches = append(matches, *item.Rule)
		}
	}
	return matches
}

// Keyframes returns the @keyframes rules named name.
func (s *Stylesheet) Keyframes(name string) []*rules.KeyframesRule {
	var found []*rules.KeyframesRule
	for _, item := range s.Items {
		if item.Keyframes != nil && item.Keyframes.Name == name {
			found = append(found, item.Keyframes)
		}
	}
	return found
}

// ToCSS prints items in source order. Pretty output puts an empty line
// between items.
func (s *Stylesheet) ToCSS(p *values.Printer) error {
	first := true
	for _, item := range s.Items {
		v := item.value()
		if v == nil {
			continue
		}
		if !first && !p.Minify {
			if err := p.WriteString("\n\n"); err != nil {
				return err
			}
		}
		first = false
		if err := v.ToCSS(p); err != nil {
			return err
		}
	}
	if !first && !p.Minify {
		return p.WriteByte('\n')
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}

// Print writes the stylesheet to w, returning the number of bytes written.
func (s *Stylesheet) Print(w io.Writer, minify bool) (int64, error) {
	cw := &countingWriter{w: w}
	err := values.WriteCSS(cw, s, minify)
	return cw.n, err
}

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	return s.Print(w, false)
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}
