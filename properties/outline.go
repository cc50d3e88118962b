package properties

import (
	"go.uber.org/zap"

	"cssmin/prefixes"
	"cssmin/values"
)

// OutlineStyle is auto or a border style.
type OutlineStyle struct {
	Auto  bool
	Style BorderStyle
}

func ParseOutlineStyle(c *values.Cursor) (OutlineStyle, error) {
	if s, err := values.TryParse(c, ParseBorderStyle); err == nil {
		return OutlineStyle{Style: s}, nil
	}
	if err := c.ExpectIdentMatching("auto"); err != nil {
		return OutlineStyle{}, err
	}
	return OutlineStyle{Auto: true}, nil
}

func (s OutlineStyle) ToCSS(p *values.Printer) error {
	if s.Auto {
		return p.WriteString("auto")
	}
	return s.Style.ToCSS(p)
}

// Outline is the outline shorthand.
type Outline struct {
	Width BorderSideWidth
	Style OutlineStyle
	Color values.Color
}

// initial values, used when a part is missing from the shorthand
var (
	initialOutlineWidth = BorderSideWidth{Kind: WidthMedium}
	initialOutlineStyle = OutlineStyle{Style: BorderStyleNone}
)

// ParseOutline reads width, style and color in any order, each at most
// once.
func ParseOutline(c *values.Cursor) (Outline, error) {
	var (
		width *BorderSideWidth
		style *OutlineStyle
		color *values.Color
	)
	for !c.IsExhausted() {
		if color == nil {
			if v, err := values.TryParse(c, values.ParseColor); err == nil {
				color = &v
				continue
			}
		}
		if style == nil {
			if v, err := values.TryParse(c, ParseOutlineStyle); err == nil {
				style = &v
				continue
			}
		}
		if width == nil {
			if v, err := values.TryParse(c, ParseBorderSideWidth); err == nil {
				width = &v
				continue
			}
		}
		break
	}
	if width == nil && style == nil && color == nil {
		t, err := c.Next()
		if err != nil {
			return Outline{}, err
		}
		return Outline{}, c.UnexpectedToken(t)
	}

	o := Outline{Width: initialOutlineWidth, Style: initialOutlineStyle, Color: values.CurrentColor}
	if width != nil {
		o.Width = *width
	}
	if style != nil {
		o.Style = *style
	}
	if color != nil {
		o.Color = *color
	}
	return o, nil
}

// ToCSS writes "width style color". Minified output leaves out parts which
// are at their initial value, keeping at least one.
func (o Outline) ToCSS(p *values.Printer) error {
	parts := make([]values.Value, 0, 3)
	if !p.Minify || o.Width != initialOutlineWidth {
		parts = append(parts, o.Width)
	}
	if !p.Minify || o.Style != initialOutlineStyle {
		parts = append(parts, o.Style)
	}
	if !p.Minify || o.Color != values.CurrentColor {
		parts = append(parts, o.Color)
	}
	if len(parts) == 0 {
		parts = append(parts, o.Style)
	}
	for i, v := range parts {
		if i > 0 {
			if err := p.WriteByte(' '); err != nil {
				return err
			}
		}
		if err := v.ToCSS(p); err != nil {
			return err
		}
	}
	return nil
}

// outline slots, singles are emitted in this order
const (
	outlineColor = iota
	outlineStyle
	outlineWidth
	outlineSlots
)

var outlineLonghands = [outlineSlots]PropertyID{
	outlineColor: PropOutlineColor,
	outlineStyle: PropOutlineStyle,
	outlineWidth: PropOutlineWidth,
}

// OutlineHandler merges outline longhands into the shorthand. Outline is
// never prefixed.
type OutlineHandler struct {
	engine *mergeEngine[values.Value]
}

func NewOutlineHandler(log *zap.Logger) *OutlineHandler {
	h := &OutlineHandler{}
	h.engine = newMergeEngine(mergeRules[values.Value]{
		slots: outlineSlots,
		equal: valuesEqual,
		combine: func(vals []values.Value, vp prefixes.VendorPrefix) Property {
			return Property{ID: PropOutline, Prefix: vp, Value: Outline{
				Width: vals[outlineWidth].(BorderSideWidth),
				Style: vals[outlineStyle].(OutlineStyle),
				Color: vals[outlineColor].(values.Color),
			}}
		},
		single: func(slot int, v values.Value, vp prefixes.VendorPrefix) Property {
			return Property{ID: outlineLonghands[slot], Prefix: vp, Value: v}
		},
	}, Targets{}, log.Named("outline"))
	return h
}

func (h *OutlineHandler) HandleProperty(p Property) bool {
	switch p.ID {
	case PropOutlineColor:
		h.engine.update(outlineColor, p.Value, p.Prefix)
	case PropOutlineStyle:
		h.engine.update(outlineStyle, p.Value, p.Prefix)
	case PropOutlineWidth:
		h.engine.update(outlineWidth, p.Value, p.Prefix)
	case PropOutline:
		o := p.Value.(Outline)
		vals := make([]values.Value, outlineSlots)
		vals[outlineColor], vals[outlineStyle], vals[outlineWidth] = o.Color, o.Style, o.Width
		h.engine.updateAll(vals, p.Prefix)
	default:
		return false
	}
	return true
}

func (h *OutlineHandler) Finalize() []Property {
	return h.engine.finalize()
}
