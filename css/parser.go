package css

import (
	"bytes"
	"errors"
	"io"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"

	"cssmin/prefixes"
	"cssmin/properties"
	"cssmin/rules"
	"cssmin/values"
)

// at-rules holding style rules
var groupRules = map[string]bool{
	"media": true, "supports": true, "document": true, "-moz-document": true,
	"layer": true, "container": true,
}

// at-rules holding declarations
var descriptorRules = map[string]bool{
	"font-face": true, "page": true, "counter-style": true, "property": true,
	"font-palette-values": true, "viewport": true,
}

type declKey struct {
	name, value string
}

type cachedDecl struct {
	prop properties.Property
	err  error
}

// Parser parses CSS stylesheets into typed rules and declarations.
type Parser struct {
	log   *zap.Logger
	cache *lru.Cache[declKey, cachedDecl]
}

type ParserOption func(*Parser)

// WithValueCache memoises parsed declaration values, size is the number
// of distinct (name, value) pairs kept. Sizes below 1 disable the cache.
func WithValueCache(size int) ParserOption {
	return func(p *Parser) {
		if size < 1 {
			return
		}
		if c, err := lru.New[declKey, cachedDecl](size); err == nil {
			p.cache = c
		}
	}
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger, opts ...ParserOption) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Parser{log: log.Named("css-parser")}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{
		Items:    make([]StylesheetItem, 0),
		Warnings: make([]string, 0),
	}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				p.log.Debug("CSS parse error", zap.Error(err))
				sheet.addError(err)
			}
			return sheet

		case css.BeginAtRuleGrammar:
			name := atKeyword(data)
			prelude := preludeText(parser.Values())
			if base, vp := prefixes.ParsePropertyName(name); base == "keyframes" {
				kf := p.parseKeyframes(parser, sheet, prelude, vp)
				p.log.Debug("Parsed @keyframes", zap.String("name", kf.Name), zap.Stringer("prefix", vp), zap.Int("keyframes", len(kf.Keyframes)))
				sheet.Items = append(sheet.Items, StylesheetItem{Keyframes: kf})
				continue
			}
			switch {
			case groupRules[name]:
				grouped := p.parseGroupRules(parser, sheet)
				p.log.Debug("Parsed group rule", zap.String("rule", name), zap.String("prelude", prelude), zap.Int("rules", len(grouped)))
				sheet.Items = append(sheet.Items, StylesheetItem{
					Group: &GroupBlock{Name: name, Prelude: prelude, Rules: grouped},
				})
			case descriptorRules[name]:
				decls := p.parseDeclarations(parser, sheet)
				sheet.Items = append(sheet.Items, StylesheetItem{
					Descriptor: &DescriptorBlock{Name: name, Prelude: prelude, Declarations: decls},
				})
			default:
				p.skipAtRuleBlock(parser)
				sheet.Warnings = append(sheet.Warnings, "unsupported at-rule dropped: @"+name)
				p.log.Debug("Skipping @-rule", zap.String("rule", name))
			}

		case css.AtRuleGrammar:
			name := atKeyword(data)
			tokens := parser.Values()
			st := &Statement{Name: name, Prelude: tokensText(tokens)}
			if name == "import" {
				st.URL = extractImportURL(tokens)
				p.log.Debug("Parsed @import", zap.String("url", st.URL))
			}
			sheet.Items = append(sheet.Items, StylesheetItem{Statement: st})

		case css.BeginRulesetGrammar:
			rule := p.parseRule(parser, sheet, data)
			sheet.Items = append(sheet.Items, StylesheetItem{Rule: &rule})

		case css.QualifiedRuleGrammar:
			// selector list without a block
			sheet.Warnings = append(sheet.Warnings, "rule without block dropped: "+selectorOf(data, parser.Values()))
		}
	}
}

func (p *Parser) parseRule(parser *css.Parser, sheet *Stylesheet, data []byte) Rule {
	sel := selectorOf(data, parser.Values())
	return Rule{Selector: sel, Declarations: p.parseDeclarations(parser, sheet)}
}

// atKeyword lower-cases an at-keyword and drops the @.
func atKeyword(data []byte) string {
	return strings.ToLower(strings.TrimPrefix(string(data), "@"))
}

// selectorOf builds the selector text from token data and values. Commas
// between selectors are written as ", " whatever whitespace the lexer kept.
func selectorOf(data []byte, toks []css.Token) string {
	var sb strings.Builder
	sb.Write(data)
	writeTokens(&sb, toks, false)
	return strings.TrimSpace(sb.String())
}

// tokensText joins tokens collapsing whitespace runs into one space.
func tokensText(tokens []css.Token) string {
	var sb strings.Builder
	space := false
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			space = sb.Len() > 0
			continue
		}
		if space {
			sb.WriteByte(' ')
			space = false
		}
		sb.Write(t.Data)
	}
	return sb.String()
}

// preludeText is tokensText for group rule preludes: list commas become
// ", " and media feature colons ": ", so "(min-width:600px)" reads as
// "(min-width: 600px)".
func preludeText(tokens []css.Token) string {
	var sb strings.Builder
	writeTokens(&sb, tokens, true)
	return strings.TrimSpace(sb.String())
}

func writeTokens(sb *strings.Builder, tokens []css.Token, features bool) {
	// open blocks, true for a plain parenthesis
	var open []bool
	space, glue := false, false
	for _, t := range tokens {
		switch t.TokenType {
		case css.WhitespaceToken:
			space = sb.Len() > 0 && !glue
			continue
		case css.CommaToken:
			if len(open) == 0 {
				sb.WriteString(", ")
				space, glue = false, true
				continue
			}
		case css.ColonToken:
			if features && len(open) > 0 && open[len(open)-1] {
				sb.WriteString(": ")
				space, glue = false, true
				continue
			}
		case css.LeftParenthesisToken:
			open = append(open, true)
		case css.FunctionToken, css.LeftBracketToken:
			open = append(open, false)
		case css.RightParenthesisToken, css.RightBracketToken:
			if len(open) > 0 {
				open = open[:len(open)-1]
			}
		}
		if space {
			sb.WriteByte(' ')
		}
		space, glue = false, false
		sb.Write(t.Data)
	}
}

// extractImportURL extracts the URL from @import tokens.
// Handles: @import "url"; @import url("url"); @import url(url);
func extractImportURL(tokens []css.Token) string {
	for _, t := range tokens {
		switch t.TokenType {
		case css.StringToken:
			return unquote(string(t.Data))
		case css.URLToken:
			// url(something) - the token data is the full url(...) string
			s := string(t.Data)
			s = strings.TrimPrefix(s, "url(")
			s = strings.TrimSuffix(s, ")")
			return unquote(strings.TrimSpace(s))
		}
	}
	return ""
}

// importConditions returns what follows the URL of an @import prelude:
// layer, supports and media conditions.
func importConditions(prelude string) string {
	c := values.NewCursor(prelude)
	if _, err := c.Next(); err != nil {
		return ""
	}
	return c.Remaining()
}

// splitImportant cuts a trailing "!important" off declaration tokens.
func splitImportant(tokens []css.Token) ([]css.Token, bool) {
	end := len(tokens)
	for end > 0 && tokens[end-1].TokenType == css.WhitespaceToken {
		end--
	}
	if end < 2 || tokens[end-1].TokenType != css.IdentToken || !strings.EqualFold(string(tokens[end-1].Data), "important") {
		return tokens, false
	}
	i := end - 2
	for i >= 0 && tokens[i].TokenType == css.WhitespaceToken {
		i--
	}
	if i < 0 || tokens[i].TokenType != css.DelimToken || string(tokens[i].Data) != "!" {
		return tokens, false
	}
	return tokens[:i], true
}

func (p *Parser) property(name, value string) (properties.Property, error) {
	key := declKey{name: name, value: value}
	if p.cache != nil {
		if c, ok := p.cache.Get(key); ok {
			return c.prop, c.err
		}
	}
	prop, err := properties.ParseProperty(name, value)
	if p.cache != nil {
		p.cache.Add(key, cachedDecl{prop: prop, err: err})
	}
	return prop, err
}

// parseDeclarations reads declarations until the end of the current block.
// Values which fail to parse are kept verbatim and reported.
func (p *Parser) parseDeclarations(parser *css.Parser, sheet *Stylesheet) properties.DeclarationBlock {
	var decls properties.DeclarationBlock
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar, css.EndAtRuleGrammar:
			return decls

		case css.DeclarationGrammar:
			name := string(data)
			tokens, important := splitImportant(parser.Values())
			value := tokensText(tokens)
			if value == "" {
				continue
			}
			prop, err := p.property(name, value)
			if err != nil {
				p.log.Debug("Declaration kept verbatim", zap.String("property", name), zap.String("value", value), zap.Error(err))
				sheet.addError(err)
			}
			prop.Important = important
			decls = append(decls, prop)

		case css.CustomPropertyGrammar:
			decls = append(decls, properties.Property{
				ID:    properties.PropUnparsed,
				Name:  string(data),
				Value: properties.Unparsed(tokensText(parser.Values())),
			})

		case css.BeginRulesetGrammar, css.BeginAtRuleGrammar:
			// nested rules are not supported inside declaration blocks
			p.skipAtRuleBlock(parser)
			sheet.Warnings = append(sheet.Warnings, "nested rule dropped")
		}
	}
}

// parseGroupRules parses style rules inside a group at-rule.
func (p *Parser) parseGroupRules(parser *css.Parser, sheet *Stylesheet) []Rule {
	var list []Rule
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return list

		case css.BeginRulesetGrammar:
			list = append(list, p.parseRule(parser, sheet, data))

		case css.BeginAtRuleGrammar:
			p.skipAtRuleBlock(parser)
			sheet.Warnings = append(sheet.Warnings, "nested at-rule dropped: @"+atKeyword(data))
		}
	}
}

// parseKeyframes parses the keyframe blocks of a @keyframes rule.
func (p *Parser) parseKeyframes(parser *css.Parser, sheet *Stylesheet, prelude string, vp prefixes.VendorPrefix) *rules.KeyframesRule {
	kf := &rules.KeyframesRule{Name: prelude, Prefix: vp}
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return kf

		case css.BeginRulesetGrammar:
			text := selectorOf(data, parser.Values())
			decls := p.parseDeclarations(parser, sheet)
			sels, err := values.ParseString(text, rules.ParseKeyframeSelectors)
			if err != nil {
				sheet.addError(err)
				p.log.Debug("Keyframe dropped", zap.String("selector", text), zap.Error(err))
				continue
			}
			kf.Keyframes = append(kf.Keyframes, rules.Keyframe{Selectors: sels, Declarations: decls})

		case css.BeginAtRuleGrammar:
			p.skipAtRuleBlock(parser)
		}
	}
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
