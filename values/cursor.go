// Package values implements typed CSS property values and the shared
// parse/print contract every value kind follows.
package values

import (
	"io"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Token is a single lexed CSS token with its byte offset in the source.
type Token struct {
	Type   css.TokenType
	Data   string
	Offset int
}

// Cursor walks a token stream produced by the tdewolff CSS lexer. Comments
// are dropped at lexing time, whitespace is kept so callers that care about
// adjacency can see it, but Next skips it.
type Cursor struct {
	src    string
	tokens []Token
	pos    int
	end    int
}

// CursorState is an opaque checkpoint returned by State.
type CursorState struct {
	pos int
}

// NewCursor lexes src and returns a cursor positioned at the first token.
func NewCursor(src string) *Cursor {
	l := css.NewLexer(parse.NewInputString(src))

	tokens := make([]Token, 0, 16)
	offset := 0
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			break
		}
		if tt != css.CommentToken {
			tokens = append(tokens, Token{Type: tt, Data: string(data), Offset: offset})
		}
		offset += len(data)
	}
	return &Cursor{src: src, tokens: tokens, end: len(tokens)}
}

// State returns a checkpoint which can be passed to Reset.
func (c *Cursor) State() CursorState {
	return CursorState{pos: c.pos}
}

// Reset rewinds the cursor to a previously taken checkpoint.
func (c *Cursor) Reset(s CursorState) {
	c.pos = s.pos
}

// TryParse runs fn speculatively: on failure the cursor is restored to where
// it was before the call, so no partial consumption is visible.
func TryParse[T any](c *Cursor, fn ParseFunc[T]) (T, error) {
	state := c.State()
	v, err := fn(c)
	if err != nil {
		c.Reset(state)
	}
	return v, err
}

func (c *Cursor) skipWhitespace() {
	for c.pos < c.end && c.tokens[c.pos].Type == css.WhitespaceToken {
		c.pos++
	}
}

// IsExhausted reports whether only whitespace remains in the current block.
func (c *Cursor) IsExhausted() bool {
	c.skipWhitespace()
	return c.pos >= c.end
}

// Peek returns the next non-whitespace token without consuming it.
func (c *Cursor) Peek() (Token, bool) {
	state := c.State()
	defer c.Reset(state)

	c.skipWhitespace()
	if c.pos >= c.end {
		return Token{}, false
	}
	return c.tokens[c.pos], true
}

// Next consumes and returns the next non-whitespace token.
func (c *Cursor) Next() (Token, error) {
	c.skipWhitespace()
	if c.pos >= c.end {
		return Token{}, c.endError()
	}
	t := c.tokens[c.pos]
	c.pos++
	return t, nil
}

// ExpectExhausted fails unless the current block has been fully consumed.
func (c *Cursor) ExpectExhausted() error {
	c.skipWhitespace()
	if c.pos < c.end {
		return c.UnexpectedToken(c.tokens[c.pos])
	}
	return nil
}

// ExpectIdent consumes an identifier and returns it as written.
func (c *Cursor) ExpectIdent() (string, error) {
	t, err := c.Next()
	if err != nil {
		return "", err
	}
	if t.Type != css.IdentToken {
		return "", c.UnexpectedToken(t)
	}
	return t.Data, nil
}

// ExpectIdentMatching consumes an identifier equal to name, ASCII case
// insensitive.
func (c *Cursor) ExpectIdentMatching(name string) error {
	t, err := c.Next()
	if err != nil {
		return err
	}
	if t.Type != css.IdentToken || !strings.EqualFold(t.Data, name) {
		return c.UnexpectedToken(t)
	}
	return nil
}

// ExpectComma consumes a comma.
func (c *Cursor) ExpectComma() error {
	t, err := c.Next()
	if err != nil {
		return err
	}
	if t.Type != css.CommaToken {
		return c.UnexpectedToken(t)
	}
	return nil
}

// ExpectDelim consumes the delimiter ch.
func (c *Cursor) ExpectDelim(ch byte) error {
	t, err := c.Next()
	if err != nil {
		return err
	}
	if t.Type != css.DelimToken || len(t.Data) != 1 || t.Data[0] != ch {
		return c.UnexpectedToken(t)
	}
	return nil
}

// ExpectFunction consumes a function token and returns its lower-cased
// name without the opening parenthesis. Arguments are read with
// ParseNestedBlock.
func (c *Cursor) ExpectFunction() (string, error) {
	t, err := c.Next()
	if err != nil {
		return "", err
	}
	if t.Type != css.FunctionToken {
		return "", c.UnexpectedToken(t)
	}
	return strings.ToLower(strings.TrimSuffix(t.Data, "(")), nil
}

// ExpectNumber consumes a plain number.
func (c *Cursor) ExpectNumber() (float64, error) {
	t, err := c.Next()
	if err != nil {
		return 0, err
	}
	if t.Type != css.NumberToken {
		return 0, c.UnexpectedToken(t)
	}
	v, err := strconv.ParseFloat(t.Data, 64)
	if err != nil {
		return 0, c.InvalidValue(t)
	}
	return v, nil
}

// ExpectPercentage consumes a percentage and returns it as a fraction
// (50% is 0.5).
func (c *Cursor) ExpectPercentage() (float64, error) {
	t, err := c.Next()
	if err != nil {
		return 0, err
	}
	if t.Type != css.PercentageToken {
		return 0, c.UnexpectedToken(t)
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(t.Data, "%"), 64)
	if err != nil {
		return 0, c.InvalidValue(t)
	}
	return v / 100, nil
}

// ExpectDimension consumes a dimension and returns its numeric part and
// lower-cased unit.
func (c *Cursor) ExpectDimension() (float64, string, error) {
	t, err := c.Next()
	if err != nil {
		return 0, "", err
	}
	if t.Type != css.DimensionToken {
		return 0, "", c.UnexpectedToken(t)
	}
	num, unit := splitDimension(t.Data)
	v, err := strconv.ParseFloat(num, 64)
	if err != nil || unit == "" {
		return 0, "", c.InvalidValue(t)
	}
	return v, strings.ToLower(unit), nil
}

// ParseNestedBlock runs fn over the tokens up to the parenthesis closing the
// function or block which was just consumed. fn must consume everything up
// to that parenthesis. On return the cursor is positioned after it.
func (c *Cursor) ParseNestedBlock(fn func(c *Cursor) error) error {
	closing := c.matchingParen(c.pos)

	block := &Cursor{src: c.src, tokens: c.tokens, pos: c.pos, end: closing}
	if err := fn(block); err != nil {
		return err
	}
	if err := block.ExpectExhausted(); err != nil {
		return err
	}

	c.pos = closing
	if c.pos < c.end {
		// closing parenthesis
		c.pos++
	}
	return nil
}

// matchingParen returns index of the parenthesis closing the block which
// starts at from, or the block end when input ends early.
func (c *Cursor) matchingParen(from int) int {
	depth := 1
	for i := from; i < c.end; i++ {
		switch c.tokens[i].Type {
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return c.end
}

// RawBlock consumes the current function or parenthesised block and returns
// its text, including the closing parenthesis, exactly as written. The
// opening token must have been consumed already.
func (c *Cursor) RawBlock() string {
	closing := c.matchingParen(c.pos)

	var sb strings.Builder
	for i := c.pos; i < closing; i++ {
		sb.WriteString(c.tokens[i].Data)
	}
	c.pos = closing
	if c.pos < c.end {
		sb.WriteString(c.tokens[c.pos].Data)
		c.pos++
	} else {
		sb.WriteByte(')')
	}
	return sb.String()
}

// Remaining returns text of all not yet consumed tokens of the current block
// and consumes them.
func (c *Cursor) Remaining() string {
	var sb strings.Builder
	for ; c.pos < c.end; c.pos++ {
		sb.WriteString(c.tokens[c.pos].Data)
	}
	return strings.TrimSpace(sb.String())
}

func (c *Cursor) location(offset int) (int, int) {
	line, col, _ := parse.Position(strings.NewReader(c.src), offset)
	return line, col
}

func (c *Cursor) endError() error {
	line, col := c.location(len(c.src))
	if c.end < len(c.tokens) {
		line, col = c.location(c.tokens[c.end].Offset)
	}
	return &SyntaxError{Kind: UnexpectedEnd, Line: line, Column: col}
}

// UnexpectedToken builds a located error for t.
func (c *Cursor) UnexpectedToken(t Token) error {
	line, col := c.location(t.Offset)
	return &SyntaxError{Kind: UnexpectedToken, Token: t.Data, Line: line, Column: col}
}

// InvalidValue builds a located error for a token which has the right shape
// but an unacceptable value.
func (c *Cursor) InvalidValue(t Token) error {
	line, col := c.location(t.Offset)
	return &SyntaxError{Kind: InvalidValue, Token: t.Data, Line: line, Column: col}
}

// splitDimension separates the numeric prefix of a dimension token from its
// unit. "1e3px" is a number with exponent, "1em" is one em.
func splitDimension(s string) (string, string) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i+1 < len(s) && s[i] == '.' && isDigit(s[i+1]) {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	return s[:i], s[i:]
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

// ParseFunc is the shape of every value parser.
type ParseFunc[T any] func(c *Cursor) (T, error)

// ParseString parses the whole of src with fn. Trailing tokens are an error.
func ParseString[T any](src string, fn ParseFunc[T]) (T, error) {
	c := NewCursor(src)
	v, err := fn(c)
	if err != nil {
		var zero T
		return zero, err
	}
	if err := c.ExpectExhausted(); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Value is implemented by every typed CSS value.
type Value interface {
	ToCSS(p *Printer) error
}

// ToCSSString prints v into a string.
func ToCSSString(v Value, minify bool) (string, error) {
	var sb strings.Builder
	if err := WriteCSS(&sb, v, minify); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// WriteCSS prints v to w.
func WriteCSS(w io.Writer, v Value, minify bool) error {
	p := NewPrinter(w, minify)
	if err := v.ToCSS(p); err != nil {
		return err
	}
	return p.Err()
}
