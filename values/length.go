package values

import (
	"fmt"

	"github.com/tdewolff/parse/v2/css"
)

// LengthUnit enumerates supported length units.
type LengthUnit uint8

const (
	Px LengthUnit = iota
	In
	Cm
	Mm
	Q
	Pt
	Pc
	Em
	Rem
	Ex
	Ch
	Vw
	Vh
	Vmin
	Vmax
)

var lengthUnitNames = [...]string{
	Px: "px", In: "in", Cm: "cm", Mm: "mm", Q: "q", Pt: "pt", Pc: "pc",
	Em: "em", Rem: "rem", Ex: "ex", Ch: "ch",
	Vw: "vw", Vh: "vh", Vmin: "vmin", Vmax: "vmax",
}

// pixels per unit for absolute units
var pxPerUnit = map[LengthUnit]float64{
	Px: 1,
	In: 96,
	Cm: 96 / 2.54,
	Mm: 96 / 25.4,
	Q:  96 / 101.6,
	Pt: 96.0 / 72.0,
	Pc: 16,
}

func (u LengthUnit) String() string {
	if int(u) < len(lengthUnitNames) {
		return lengthUnitNames[u]
	}
	return fmt.Sprintf("LengthUnit(%d)", int(u))
}

func lengthUnitByName(name string) (LengthUnit, bool) {
	for i, n := range lengthUnitNames {
		if n == name {
			return LengthUnit(i), true
		}
	}
	return 0, false
}

// Length is a <length> with unit.
type Length struct {
	Value float64
	Unit  LengthUnit
}

// PxLength returns length in pixels.
func PxLength(v float64) Length {
	return Length{Value: v, Unit: Px}
}

// ToPx converts absolute lengths to pixels. Relative units do not convert.
func (l Length) ToPx() (float64, bool) {
	f, ok := pxPerUnit[l.Unit]
	if !ok {
		return 0, false
	}
	return l.Value * f, true
}

func (l Length) IsZero() bool {
	return l.Value == 0
}

// ParseLength accepts a dimension with length unit or unitless zero.
func ParseLength(c *Cursor) (Length, error) {
	t, ok := c.Peek()
	if !ok {
		_, err := c.Next()
		return Length{}, err
	}
	switch t.Type {
	case css.NumberToken:
		v, err := c.ExpectNumber()
		if err != nil {
			return Length{}, err
		}
		if v != 0 {
			return Length{}, c.InvalidValue(t)
		}
		return PxLength(0), nil
	case css.DimensionToken:
		v, unit, err := c.ExpectDimension()
		if err != nil {
			return Length{}, err
		}
		u, ok := lengthUnitByName(unit)
		if !ok {
			return Length{}, c.InvalidValue(t)
		}
		return Length{Value: v, Unit: u}, nil
	default:
		_, _ = c.Next()
		return Length{}, c.UnexpectedToken(t)
	}
}

func (l Length) ToCSS(p *Printer) error {
	if p.Minify && l.IsZero() {
		return p.WriteByte('0')
	}
	if err := p.Number(l.Value); err != nil {
		return err
	}
	return p.WriteString(l.Unit.String())
}

// Percentage is stored as a fraction: 50% is 0.5.
type Percentage float64

func ParsePercentage(c *Cursor) (Percentage, error) {
	v, err := c.ExpectPercentage()
	return Percentage(v), err
}

func (pc Percentage) ToCSS(p *Printer) error {
	if err := p.Number(float64(pc) * 100); err != nil {
		return err
	}
	return p.WriteByte('%')
}

// LengthPercentage is <length-percentage> without calc().
type LengthPercentage struct {
	Length    Length
	Percent   Percentage
	IsPercent bool
}

func LengthValue(l Length) LengthPercentage {
	return LengthPercentage{Length: l}
}

func PercentValue(v Percentage) LengthPercentage {
	return LengthPercentage{Percent: v, IsPercent: true}
}

// ZeroLength is "0" in any unit.
var ZeroLength = LengthValue(PxLength(0))

func (lp LengthPercentage) IsZero() bool {
	if lp.IsPercent {
		return lp.Percent == 0
	}
	return lp.Length.IsZero()
}

// ToPx converts absolute lengths to pixels; percentages never convert.
func (lp LengthPercentage) ToPx() (float64, bool) {
	if lp.IsPercent {
		return 0, false
	}
	return lp.Length.ToPx()
}

func ParseLengthPercentage(c *Cursor) (LengthPercentage, error) {
	if pc, err := TryParse(c, ParsePercentage); err == nil {
		return PercentValue(pc), nil
	}
	l, err := ParseLength(c)
	if err != nil {
		return LengthPercentage{}, err
	}
	return LengthValue(l), nil
}

func (lp LengthPercentage) ToCSS(p *Printer) error {
	if lp.IsPercent {
		return lp.Percent.ToCSS(p)
	}
	return lp.Length.ToCSS(p)
}

// LengthPercentageOrAuto is <length-percentage> | auto.
type LengthPercentageOrAuto struct {
	Auto  bool
	Value LengthPercentage
}

func ParseLengthPercentageOrAuto(c *Cursor) (LengthPercentageOrAuto, error) {
	if TryIdent(c, "auto") {
		return LengthPercentageOrAuto{Auto: true}, nil
	}
	lp, err := ParseLengthPercentage(c)
	if err != nil {
		return LengthPercentageOrAuto{}, err
	}
	return LengthPercentageOrAuto{Value: lp}, nil
}

func (v LengthPercentageOrAuto) ToCSS(p *Printer) error {
	if v.Auto {
		return p.WriteString("auto")
	}
	return v.Value.ToCSS(p)
}

// Number is a plain <number>.
type Number float64

func ParseNumber(c *Cursor) (Number, error) {
	v, err := c.ExpectNumber()
	return Number(v), err
}

func (n Number) ToCSS(p *Printer) error {
	return p.Number(float64(n))
}

// NumberOrPercentage is <number> | <percentage>.
type NumberOrPercentage struct {
	Value   float64
	Percent bool
}

func NumberValue(v float64) NumberOrPercentage {
	return NumberOrPercentage{Value: v}
}

// Float returns the value as a plain number, percentages as fractions.
func (n NumberOrPercentage) Float() float64 {
	return n.Value
}

func ParseNumberOrPercentage(c *Cursor) (NumberOrPercentage, error) {
	if pc, err := TryParse(c, ParsePercentage); err == nil {
		return NumberOrPercentage{Value: float64(pc), Percent: true}, nil
	}
	v, err := c.ExpectNumber()
	if err != nil {
		return NumberOrPercentage{}, err
	}
	return NumberValue(v), nil
}

func (n NumberOrPercentage) ToCSS(p *Printer) error {
	if n.Percent {
		return Percentage(n.Value).ToCSS(p)
	}
	return p.Number(n.Value)
}

// identMatcher turns ExpectIdentMatching into a ParseFunc for TryParse.
func identMatcher(name string) ParseFunc[struct{}] {
	return func(c *Cursor) (struct{}, error) {
		return struct{}{}, c.ExpectIdentMatching(name)
	}
}

// TryIdent consumes the identifier name if it is next, otherwise leaves the
// cursor untouched.
func TryIdent(c *Cursor, name string) bool {
	_, err := TryParse(c, identMatcher(name))
	return err == nil
}
