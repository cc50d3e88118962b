package values

// ComponentKind tells which form a position component takes.
type ComponentKind uint8

const (
	ComponentCenter ComponentKind = iota // center
	ComponentLength                      // <length-percentage>
	ComponentSide                        // <side> <length-percentage>?
)

type side interface {
	~uint8
	keywords() []string
}

type HorizontalSide uint8

const (
	Left HorizontalSide = iota
	Right
)

func (HorizontalSide) keywords() []string {
	return []string{"left", "right"}
}

func (s HorizontalSide) String() string {
	return KeywordName(s, s.keywords())
}

type VerticalSide uint8

const (
	Top VerticalSide = iota
	Bottom
)

func (VerticalSide) keywords() []string {
	return []string{"top", "bottom"}
}

func (s VerticalSide) String() string {
	return KeywordName(s, s.keywords())
}

// PositionComponent is one axis of a <position>. Offset is meaningful for
// ComponentLength, and for ComponentSide when HasOffset is set.
type PositionComponent[S side] struct {
	Kind      ComponentKind
	Side      S
	Offset    LengthPercentage
	HasOffset bool
}

type (
	HorizontalPosition = PositionComponent[HorizontalSide]
	VerticalPosition   = PositionComponent[VerticalSide]
)

func CenterComponent[S side]() PositionComponent[S] {
	return PositionComponent[S]{Kind: ComponentCenter}
}

func LengthComponent[S side](lp LengthPercentage) PositionComponent[S] {
	return PositionComponent[S]{Kind: ComponentLength, Offset: lp}
}

func SideComponent[S side](s S) PositionComponent[S] {
	return PositionComponent[S]{Kind: ComponentSide, Side: s}
}

func SideOffsetComponent[S side](s S, lp LengthPercentage) PositionComponent[S] {
	return PositionComponent[S]{Kind: ComponentSide, Side: s, Offset: lp, HasOffset: true}
}

// isHalf reports a bare 50% offset, which is equivalent to center.
func (pc PositionComponent[S]) isHalf() bool {
	return pc.Kind == ComponentLength && pc.Offset.IsPercent && pc.Offset.Percent == 0.5
}

func (pc PositionComponent[S]) sideWithOffset() bool {
	return pc.Kind == ComponentSide && pc.HasOffset
}

func (pc PositionComponent[S]) sideOnly() bool {
	return pc.Kind == ComponentSide && !pc.HasOffset
}

func parseSide[S side](c *Cursor) (S, error) {
	var zero S
	return ParseKeyword[S](c, zero.keywords())
}

func parseComponent[S side](c *Cursor) (PositionComponent[S], error) {
	if TryIdent(c, "center") {
		return CenterComponent[S](), nil
	}
	if lp, err := TryParse(c, ParseLengthPercentage); err == nil {
		return LengthComponent[S](lp), nil
	}
	s, err := parseSide[S](c)
	if err != nil {
		return PositionComponent[S]{}, err
	}
	if lp, err := TryParse(c, ParseLengthPercentage); err == nil {
		return SideOffsetComponent(s, lp), nil
	}
	return SideComponent(s), nil
}

func (pc PositionComponent[S]) ToCSS(p *Printer) error {
	switch pc.Kind {
	case ComponentCenter:
		if p.Minify {
			return p.WriteString("50%")
		}
		return p.WriteString("center")
	case ComponentLength:
		return pc.Offset.ToCSS(p)
	default:
		var zero S
		if err := p.WriteString(KeywordName(pc.Side, zero.keywords())); err != nil {
			return err
		}
		if pc.HasOffset {
			if err := p.WriteByte(' '); err != nil {
				return err
			}
			return pc.Offset.ToCSS(p)
		}
		return nil
	}
}

// Position is a <position> value.
type Position struct {
	X HorizontalPosition
	Y VerticalPosition
}

func CenterPosition() Position {
	return Position{X: CenterComponent[HorizontalSide](), Y: CenterComponent[VerticalSide]()}
}

// IsCenter reports a position equal to "center center", each axis being
// either center or 50%.
func (pos Position) IsCenter() bool {
	return (pos.X.Kind == ComponentCenter || pos.X.isHalf()) &&
		(pos.Y.Kind == ComponentCenter || pos.Y.isHalf())
}

// ParsePosition reads a position where the axes may come in either order.
// Ambiguous first components (center, bare offsets) are tried as horizontal
// first and reinterpreted as vertical when what follows does not fit.
func ParsePosition(c *Cursor) (Position, error) {
	if x, err := TryParse(c, parseComponent[HorizontalSide]); err == nil {
		switch x.Kind {
		case ComponentCenter:
			if y, err := TryParse(c, parseComponent[VerticalSide]); err == nil {
				return Position{X: x, Y: y}, nil
			}
			// "center left": the first value was the vertical one
			hx, err := TryParse(c, parseComponent[HorizontalSide])
			if err != nil {
				hx = CenterComponent[HorizontalSide]()
			}
			return Position{X: hx, Y: CenterComponent[VerticalSide]()}, nil

		case ComponentLength:
			// offset first, second must be a keyword or an offset
			if kw, err := TryParse(c, parseSide[VerticalSide]); err == nil {
				return Position{X: x, Y: SideComponent(kw)}, nil
			}
			if lp, err := TryParse(c, ParseLengthPercentage); err == nil {
				return Position{X: x, Y: LengthComponent[VerticalSide](lp)}, nil
			}
			TryIdent(c, "center")
			return Position{X: x, Y: CenterComponent[VerticalSide]()}, nil

		default:
			if TryIdent(c, "center") {
				return Position{X: x, Y: CenterComponent[VerticalSide]()}, nil
			}
			if kw, err := TryParse(c, parseSide[VerticalSide]); err == nil {
				if lp, err := TryParse(c, ParseLengthPercentage); err == nil {
					return Position{X: x, Y: SideOffsetComponent(kw, lp)}, nil
				}
				return Position{X: x, Y: SideComponent(kw)}, nil
			}
			// "left 20px": the offset belongs to the vertical axis
			y := CenterComponent[VerticalSide]()
			if x.HasOffset {
				y = LengthComponent[VerticalSide](x.Offset)
			}
			return Position{X: SideComponent(x.Side), Y: y}, nil
		}
	}

	// vertical keyword first
	ykw, err := parseSide[VerticalSide](c)
	if err != nil {
		return Position{}, err
	}

	type rest struct {
		y VerticalPosition
		x HorizontalPosition
	}
	r, err := TryParse(c, func(c *Cursor) (rest, error) {
		y := SideComponent(ykw)
		if lp, err := TryParse(c, ParseLengthPercentage); err == nil {
			y = SideOffsetComponent(ykw, lp)
		}
		if xkw, err := TryParse(c, parseSide[HorizontalSide]); err == nil {
			x := SideComponent(xkw)
			if lp, err := TryParse(c, ParseLengthPercentage); err == nil {
				x = SideOffsetComponent(xkw, lp)
			}
			return rest{y: y, x: x}, nil
		}
		if err := c.ExpectIdentMatching("center"); err != nil {
			return rest{}, err
		}
		return rest{y: y, x: CenterComponent[HorizontalSide]()}, nil
	})
	if err == nil {
		return Position{X: r.x, Y: r.y}, nil
	}
	return Position{X: CenterComponent[HorizontalSide](), Y: SideComponent(ykw)}, nil
}

func (pos Position) ToCSS(p *Printer) error {
	x, y := pos.X, pos.Y
	switch {
	case x.sideWithOffset() && y.Kind == ComponentLength:
		// a bare vertical offset after "left 10px" would be read as part
		// of the horizontal axis, anchor it to top
		if err := x.ToCSS(p); err != nil {
			return err
		}
		if err := p.WriteString(" top "); err != nil {
			return err
		}
		return y.Offset.ToCSS(p)
	case x.Kind == ComponentLength && y.sideWithOffset():
		if err := p.WriteString("left "); err != nil {
			return err
		}
		if err := x.Offset.ToCSS(p); err != nil {
			return err
		}
		if err := p.WriteByte(' '); err != nil {
			return err
		}
		return y.ToCSS(p)
	case x.Kind == ComponentCenter && (y.Kind == ComponentCenter || y.isHalf()):
		return x.ToCSS(p)
	case x.Kind == ComponentLength && y.Kind == ComponentCenter:
		return x.ToCSS(p)
	case x.sideOnly() && y.Kind == ComponentCenter:
		return x.ToCSS(p)
	case x.Kind == ComponentCenter && y.sideOnly():
		return y.ToCSS(p)
	case x.Kind == ComponentLength && y.isHalf():
		return x.ToCSS(p)
	case x.sideOnly() && y.isHalf():
		return x.ToCSS(p)
	case x.isHalf() && y.sideOnly():
		return y.ToCSS(p)
	default:
		// next to a keyword with offset center has to stay a keyword, a
		// percentage there does not parse
		if err := writeAxis(p, x, y.sideWithOffset()); err != nil {
			return err
		}
		if err := p.WriteByte(' '); err != nil {
			return err
		}
		return writeAxis(p, y, x.sideWithOffset())
	}
}

func writeAxis[S side](p *Printer, pc PositionComponent[S], keyword bool) error {
	if keyword && pc.Kind == ComponentCenter {
		return p.WriteString("center")
	}
	return pc.ToCSS(p)
}
