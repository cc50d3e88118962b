package properties

import (
	"cssmin/values"
)

// TransformOrigin is a position with optional z offset.
type TransformOrigin struct {
	Position values.Position
	Z        values.Length
}

func ParseTransformOrigin(c *values.Cursor) (TransformOrigin, error) {
	pos, err := values.ParsePosition(c)
	if err != nil {
		return TransformOrigin{}, err
	}
	o := TransformOrigin{Position: pos}
	if z, err := values.TryParse(c, values.ParseLength); err == nil {
		o.Z = z
	}
	return o, nil
}

func (o TransformOrigin) ToCSS(p *values.Printer) error {
	if o.Z.IsZero() {
		return o.Position.ToCSS(p)
	}
	// with a z offset both axes have to be spelled out
	if err := o.Position.X.ToCSS(p); err != nil {
		return err
	}
	if err := p.WriteByte(' '); err != nil {
		return err
	}
	if err := o.Position.Y.ToCSS(p); err != nil {
		return err
	}
	if err := p.WriteByte(' '); err != nil {
		return err
	}
	return o.Z.ToCSS(p)
}

type TransformStyle uint8

const (
	TransformStyleFlat TransformStyle = iota
	TransformStylePreserve3D
)

var transformStyleNames = []string{"flat", "preserve-3d"}

func ParseTransformStyle(c *values.Cursor) (TransformStyle, error) {
	return values.ParseKeyword[TransformStyle](c, transformStyleNames)
}

func (s TransformStyle) ToCSS(p *values.Printer) error {
	return p.WriteString(values.KeywordName(s, transformStyleNames))
}

type TransformBox uint8

const (
	TransformBoxContentBox TransformBox = iota
	TransformBoxBorderBox
	TransformBoxFillBox
	TransformBoxStrokeBox
	TransformBoxViewBox
)

var transformBoxNames = []string{"content-box", "border-box", "fill-box", "stroke-box", "view-box"}

func ParseTransformBox(c *values.Cursor) (TransformBox, error) {
	return values.ParseKeyword[TransformBox](c, transformBoxNames)
}

func (b TransformBox) ToCSS(p *values.Printer) error {
	return p.WriteString(values.KeywordName(b, transformBoxNames))
}

type BackfaceVisibility uint8

const (
	BackfaceVisible BackfaceVisibility = iota
	BackfaceHidden
)

var backfaceNames = []string{"visible", "hidden"}

func ParseBackfaceVisibility(c *values.Cursor) (BackfaceVisibility, error) {
	return values.ParseKeyword[BackfaceVisibility](c, backfaceNames)
}

func (v BackfaceVisibility) ToCSS(p *values.Printer) error {
	return p.WriteString(values.KeywordName(v, backfaceNames))
}

// Perspective is the perspective property: none or a length.
type Perspective struct {
	None   bool
	Length values.Length
}

func ParsePerspective(c *values.Cursor) (Perspective, error) {
	if values.TryIdent(c, "none") {
		return Perspective{None: true}, nil
	}
	l, err := values.ParseLength(c)
	if err != nil {
		return Perspective{}, err
	}
	return Perspective{Length: l}, nil
}

func (v Perspective) ToCSS(p *values.Printer) error {
	if v.None {
		return p.WriteString("none")
	}
	return v.Length.ToCSS(p)
}
