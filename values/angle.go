package values

import (
	"math"
	"strconv"

	"github.com/tdewolff/parse/v2/css"
)

type AngleUnit uint8

const (
	Deg AngleUnit = iota
	Rad
	Grad
	Turn
)

func (u AngleUnit) String() string {
	switch u {
	case Rad:
		return "rad"
	case Grad:
		return "grad"
	case Turn:
		return "turn"
	default:
		return "deg"
	}
}

// Angle is an <angle>.
type Angle struct {
	Value float64
	Unit  AngleUnit
}

func Degrees(v float64) Angle {
	return Angle{Value: v, Unit: Deg}
}

func (a Angle) ToRadians() float64 {
	switch a.Unit {
	case Rad:
		return a.Value
	case Grad:
		return a.Value * math.Pi / 200
	case Turn:
		return a.Value * 2 * math.Pi
	default:
		return a.Value * math.Pi / 180
	}
}

func (a Angle) ToDegrees() float64 {
	if a.Unit == Deg {
		return a.Value
	}
	return a.ToRadians() * 180 / math.Pi
}

func (a Angle) IsZero() bool {
	return a.Value == 0
}

// ParseAngle accepts an angle dimension. Unitless zero is allowed as in
// transform functions.
func ParseAngle(c *Cursor) (Angle, error) {
	t, err := c.Next()
	if err != nil {
		return Angle{}, err
	}
	switch t.Type {
	case css.NumberToken:
		if v, err := strconv.ParseFloat(t.Data, 64); err == nil && v == 0 {
			return Degrees(0), nil
		}
		return Angle{}, c.InvalidValue(t)
	case css.DimensionToken:
		c.pos--
		v, unit, err := c.ExpectDimension()
		if err != nil {
			return Angle{}, err
		}
		switch unit {
		case "deg":
			return Angle{Value: v, Unit: Deg}, nil
		case "rad":
			return Angle{Value: v, Unit: Rad}, nil
		case "grad":
			return Angle{Value: v, Unit: Grad}, nil
		case "turn":
			return Angle{Value: v, Unit: Turn}, nil
		}
		return Angle{}, c.InvalidValue(t)
	default:
		return Angle{}, c.UnexpectedToken(t)
	}
}

func (a Angle) ToCSS(p *Printer) error {
	if err := p.Number(a.Value); err != nil {
		return err
	}
	return p.WriteString(a.Unit.String())
}
