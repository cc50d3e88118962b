package values

import "fmt"

// Quad holds four values in top, right, bottom, left order using the 1 to 4
// value shorthand convention.
type Quad[T interface {
	comparable
	Value
}] struct {
	Top, Right, Bottom, Left T
}

// QuadAll returns a quad with every side set to v.
func QuadAll[T interface {
	comparable
	Value
}](v T) Quad[T] {
	return Quad[T]{Top: v, Right: v, Bottom: v, Left: v}
}

// ExpandQuad builds a quad from one to four leading values.
func ExpandQuad[T interface {
	comparable
	Value
}](vals ...T) (Quad[T], error) {
	switch len(vals) {
	case 1:
		return Quad[T]{vals[0], vals[0], vals[0], vals[0]}, nil
	case 2:
		return Quad[T]{vals[0], vals[1], vals[0], vals[1]}, nil
	case 3:
		return Quad[T]{vals[0], vals[1], vals[2], vals[1]}, nil
	case 4:
		return Quad[T]{vals[0], vals[1], vals[2], vals[3]}, nil
	default:
		return Quad[T]{}, fmt.Errorf("quad needs 1 to 4 values, got %d", len(vals))
	}
}

// ParseQuad parses up to four values with fn, stopping at the first value
// which does not parse.
func ParseQuad[T interface {
	comparable
	Value
}](c *Cursor, fn ParseFunc[T]) (Quad[T], error) {
	first, err := fn(c)
	if err != nil {
		return Quad[T]{}, err
	}
	vals := []T{first}
	for len(vals) < 4 {
		v, err := TryParse(c, fn)
		if err != nil {
			break
		}
		vals = append(vals, v)
	}
	return ExpandQuad(vals...)
}

// Collapse returns the fewest leading values which expand back to q.
func (q Quad[T]) Collapse() []T {
	sameVertical := q.Top == q.Bottom
	sameHorizontal := q.Right == q.Left
	switch {
	case sameVertical && sameHorizontal && q.Top == q.Right:
		return []T{q.Top}
	case sameVertical && sameHorizontal:
		return []T{q.Top, q.Right}
	case sameHorizontal:
		return []T{q.Top, q.Right, q.Bottom}
	default:
		return []T{q.Top, q.Right, q.Bottom, q.Left}
	}
}

func (q Quad[T]) ToCSS(p *Printer) error {
	for i, v := range q.Collapse() {
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
