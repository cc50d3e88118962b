package properties

import (
	"cssmin/values"
)

// BorderStyle is a <line-style> keyword.
type BorderStyle uint8

const (
	BorderStyleNone BorderStyle = iota
	BorderStyleHidden
	BorderStyleDotted
	BorderStyleDashed
	BorderStyleSolid
	BorderStyleDouble
	BorderStyleGroove
	BorderStyleRidge
	BorderStyleInset
	BorderStyleOutset
)

var borderStyleNames = []string{
	"none", "hidden", "dotted", "dashed", "solid",
	"double", "groove", "ridge", "inset", "outset",
}

func ParseBorderStyle(c *values.Cursor) (BorderStyle, error) {
	return values.ParseKeyword[BorderStyle](c, borderStyleNames)
}

func (s BorderStyle) ToCSS(p *values.Printer) error {
	return p.WriteString(values.KeywordName(s, borderStyleNames))
}

// WidthKind tells keyword widths from explicit lengths.
type WidthKind uint8

const (
	WidthThin WidthKind = iota
	WidthMedium
	WidthThick
	WidthLength
)

var widthNames = []string{"thin", "medium", "thick"}

// BorderSideWidth is thin | medium | thick | <length>.
type BorderSideWidth struct {
	Kind   WidthKind
	Length values.Length
}

func ParseBorderSideWidth(c *values.Cursor) (BorderSideWidth, error) {
	if l, err := values.TryParse(c, values.ParseLength); err == nil {
		return BorderSideWidth{Kind: WidthLength, Length: l}, nil
	}
	k, err := values.ParseKeyword[WidthKind](c, widthNames)
	if err != nil {
		return BorderSideWidth{}, err
	}
	return BorderSideWidth{Kind: k}, nil
}

func (w BorderSideWidth) ToCSS(p *values.Printer) error {
	if w.Kind == WidthLength {
		return w.Length.ToCSS(p)
	}
	return p.WriteString(values.KeywordName(w.Kind, widthNames))
}

// Corner is one border radius corner: horizontal and vertical radius.
type Corner = values.Size2D[values.LengthPercentage]

func ParseCorner(c *values.Cursor) (Corner, error) {
	return values.ParseSize2D(c, values.ParseLengthPercentage)
}

// BorderRadius is the border-radius shorthand. Corners follow the shorthand
// order: top-left, top-right, bottom-right, bottom-left.
type BorderRadius struct {
	TopLeft, TopRight, BottomRight, BottomLeft Corner
}

// Corners returns the four corners in shorthand order.
func (br BorderRadius) Corners() [4]Corner {
	return [4]Corner{br.TopLeft, br.TopRight, br.BottomRight, br.BottomLeft}
}

func borderRadiusFromCorners(c [4]Corner) BorderRadius {
	return BorderRadius{TopLeft: c[0], TopRight: c[1], BottomRight: c[2], BottomLeft: c[3]}
}

// ParseBorderRadius reads "<widths> [ / <heights> ]", each side list
// using the one to four value quad convention.
func ParseBorderRadius(c *values.Cursor) (BorderRadius, error) {
	widths, err := values.ParseQuad(c, values.ParseLengthPercentage)
	if err != nil {
		return BorderRadius{}, err
	}
	heights := widths
	if _, err := values.TryParse(c, slash); err == nil {
		if heights, err = values.ParseQuad(c, values.ParseLengthPercentage); err != nil {
			return BorderRadius{}, err
		}
	}
	return BorderRadius{
		TopLeft:     Corner{A: widths.Top, B: heights.Top},
		TopRight:    Corner{A: widths.Right, B: heights.Right},
		BottomRight: Corner{A: widths.Bottom, B: heights.Bottom},
		BottomLeft:  Corner{A: widths.Left, B: heights.Left},
	}, nil
}

func slash(c *values.Cursor) (struct{}, error) {
	return struct{}{}, c.ExpectDelim('/')
}

func (br BorderRadius) ToCSS(p *values.Printer) error {
	widths := values.Quad[values.LengthPercentage]{
		Top: br.TopLeft.A, Right: br.TopRight.A, Bottom: br.BottomRight.A, Left: br.BottomLeft.A,
	}
	heights := values.Quad[values.LengthPercentage]{
		Top: br.TopLeft.B, Right: br.TopRight.B, Bottom: br.BottomRight.B, Left: br.BottomLeft.B,
	}
	if err := widths.ToCSS(p); err != nil {
		return err
	}
	if widths != heights {
		if err := p.Delim('/', true); err != nil {
			return err
		}
		return heights.ToCSS(p)
	}
	return nil
}
