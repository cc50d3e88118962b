// Package rules holds at-rules whose structure matters to minification.
package rules

import (
	"strings"

	"go.uber.org/zap"

	"cssmin/prefixes"
	"cssmin/properties"
	"cssmin/values"
)

type SelectorKind uint8

const (
	SelectorPercentage SelectorKind = iota
	SelectorFrom
	SelectorTo
)

// KeyframeSelector is one entry of a keyframe prelude: from, to or a
// percentage.
type KeyframeSelector struct {
	Kind    SelectorKind
	Percent values.Percentage
}

func ParseKeyframeSelector(c *values.Cursor) (KeyframeSelector, error) {
	if pc, err := values.TryParse(c, values.ParsePercentage); err == nil {
		return KeyframeSelector{Kind: SelectorPercentage, Percent: pc}, nil
	}
	t, _ := c.Peek()
	ident, err := c.ExpectIdent()
	if err != nil {
		return KeyframeSelector{}, err
	}
	switch strings.ToLower(ident) {
	case "from":
		return KeyframeSelector{Kind: SelectorFrom}, nil
	case "to":
		return KeyframeSelector{Kind: SelectorTo}, nil
	}
	return KeyframeSelector{}, c.UnexpectedToken(t)
}

// ParseKeyframeSelectors reads a comma separated selector list.
func ParseKeyframeSelectors(c *values.Cursor) ([]KeyframeSelector, error) {
	var list []KeyframeSelector
	for {
		s, err := ParseKeyframeSelector(c)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
		if c.IsExhausted() {
			return list, nil
		}
		if err := c.ExpectComma(); err != nil {
			return nil, err
		}
	}
}

// ToCSS writes the selector. Minified output uses the shorter spelling:
// from becomes 0% and 100% becomes to.
func (s KeyframeSelector) ToCSS(p *values.Printer) error {
	switch s.Kind {
	case SelectorFrom:
		if p.Minify {
			return p.WriteString("0%")
		}
		return p.WriteString("from")
	case SelectorTo:
		return p.WriteString("to")
	default:
		if p.Minify && s.Percent == 1 {
			return p.WriteString("to")
		}
		return s.Percent.ToCSS(p)
	}
}

type Keyframe struct {
	Selectors    []KeyframeSelector
	Declarations properties.DeclarationBlock
}

func (k Keyframe) ToCSS(p *values.Printer) error {
	for i, s := range k.Selectors {
		if i > 0 {
			if err := p.Delim(',', false); err != nil {
				return err
			}
		}
		if err := s.ToCSS(p); err != nil {
			return err
		}
	}
	if err := p.Whitespace(); err != nil {
		return err
	}
	return k.Declarations.ToCSS(p)
}

// KeyframesRule is @keyframes declared under every prefix in Prefix.
type KeyframesRule struct {
	Name      string
	Keyframes []Keyframe
	Prefix    prefixes.VendorPrefix
}

// keyframes blocks are never written with -ms-
var keyframesOrder = []prefixes.VendorPrefix{prefixes.WebKit, prefixes.Moz, prefixes.O, prefixes.None}

// ToCSS writes one block per prefix. Pretty output separates blocks and
// keyframes with an empty line.
func (r KeyframesRule) ToCSS(p *values.Printer) error {
	first := true
	for _, vp := range keyframesOrder {
		if !r.Prefix.Contains(vp) {
			continue
		}
		if !first {
			if err := blankLine(p); err != nil {
				return err
			}
		}
		first = false
		if err := r.writeBlock(p, vp); err != nil {
			return err
		}
	}
	return nil
}

func blankLine(p *values.Printer) error {
	if !p.Minify {
		if err := p.WriteByte('\n'); err != nil {
			return err
		}
	}
	return p.Newline()
}

func (r KeyframesRule) writeBlock(p *values.Printer, vp prefixes.VendorPrefix) error {
	if err := p.WriteString("@" + vp.Prefix() + "keyframes " + r.Name); err != nil {
		return err
	}
	if err := p.Whitespace(); err != nil {
		return err
	}
	if err := p.WriteByte('{'); err != nil {
		return err
	}
	p.Indent()
	for i, k := range r.Keyframes {
		if i > 0 && !p.Minify {
			if err := p.WriteByte('\n'); err != nil {
				return err
			}
		}
		if err := p.Newline(); err != nil {
			return err
		}
		if err := k.ToCSS(p); err != nil {
			return err
		}
	}
	p.Dedent()
	if err := p.Newline(); err != nil {
		return err
	}
	return p.WriteByte('}')
}

// ApplyTargets replaces the unprefixed bit with the prefixes targets need
// for @keyframes.
func (r *KeyframesRule) ApplyTargets(targets properties.Targets) {
	r.Prefix = targets.Resolve(prefixes.AtKeyframes, r.Prefix)
}

// Merge runs the declaration merge over every keyframe.
func (r *KeyframesRule) Merge(targets properties.Targets, log *zap.Logger) {
	log = log.Named("keyframes").With(zap.String("name", r.Name))
	for i := range r.Keyframes {
		r.Keyframes[i].Declarations = properties.Merge(r.Keyframes[i].Declarations, targets, log)
	}
}
