package values

import "fmt"

// ErrorKind classifies value parsing failures.
type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota // token of the wrong type or value
	UnexpectedEnd                    // input ended before the value was complete
	InvalidValue                     // token shape is right, value is out of range
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case UnexpectedEnd:
		return "unexpected end of input"
	case InvalidValue:
		return "invalid value"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// SyntaxError is returned by every value parser. Line and Column are 1-based
// and point at the offending token inside the parsed text.
type SyntaxError struct {
	Kind   ErrorKind
	Token  string
	Line   int
	Column int
}

func (e *SyntaxError) Error() string {
	if e.Kind == UnexpectedEnd {
		return fmt.Sprintf("%s at %d:%d", e.Kind, e.Line, e.Column)
	}
	return fmt.Sprintf("%s %q at %d:%d", e.Kind, e.Token, e.Line, e.Column)
}
