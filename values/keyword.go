package values

import (
	"strings"

	"github.com/tdewolff/parse/v2/css"
)

// ParseKeyword reads an identifier and maps it to an index into names,
// ASCII case insensitive. Enum types built on uint8 use their declaration
// order as index.
func ParseKeyword[T ~uint8](c *Cursor, names []string) (T, error) {
	t, err := c.Next()
	if err != nil {
		return 0, err
	}
	if t.Type == css.IdentToken {
		for i, n := range names {
			if strings.EqualFold(t.Data, n) {
				return T(i), nil
			}
		}
	}
	return 0, c.UnexpectedToken(t)
}

// KeywordName returns printable name of enum value v.
func KeywordName[T ~uint8](v T, names []string) string {
	if int(v) < len(names) {
		return names[v]
	}
	return ""
}

// Size2D is a pair of values where the second one may be omitted when
// equal to the first.
type Size2D[T interface {
	comparable
	Value
}] struct {
	A, B T
}

// ParseSize2D parses one or two instances of a value.
func ParseSize2D[T interface {
	comparable
	Value
}](c *Cursor, fn ParseFunc[T]) (Size2D[T], error) {
	a, err := fn(c)
	if err != nil {
		return Size2D[T]{}, err
	}
	if b, err := TryParse(c, fn); err == nil {
		return Size2D[T]{A: a, B: b}, nil
	}
	return Size2D[T]{A: a, B: a}, nil
}

func (s Size2D[T]) ToCSS(p *Printer) error {
	if err := s.A.ToCSS(p); err != nil {
		return err
	}
	if s.B != s.A {
		if err := p.WriteByte(' '); err != nil {
			return err
		}
		return s.B.ToCSS(p)
	}
	return nil
}
