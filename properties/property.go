// Package properties implements typed property declarations for the
// supported property families and the handlers which merge them.
package properties

import (
	"fmt"
	"strings"

	"cssmin/prefixes"
	"cssmin/values"
)

// PropertyID identifies a supported property.
type PropertyID uint8

const (
	PropUnparsed PropertyID = iota

	PropBorderRadius
	PropBorderTopLeftRadius
	PropBorderTopRightRadius
	PropBorderBottomRightRadius
	PropBorderBottomLeftRadius
	PropBorderStartStartRadius
	PropBorderStartEndRadius
	PropBorderEndStartRadius
	PropBorderEndEndRadius

	PropOutline
	PropOutlineWidth
	PropOutlineStyle
	PropOutlineColor

	PropTransform
	PropTransformOrigin
	PropTransformStyle
	PropTransformBox
	PropBackfaceVisibility
	PropPerspective
	PropPerspectiveOrigin

	PropObjectPosition
	PropBackgroundPosition
	PropMargin
	PropPadding
	PropInset
	PropBorderWidth

	propertyCount
)

type propertyInfo struct {
	name  string
	parse func(c *values.Cursor) (values.Value, error)
	// prefixable properties accept vendor prefixed names
	prefixable bool
}

func parser[T values.Value](fn values.ParseFunc[T]) func(c *values.Cursor) (values.Value, error) {
	return func(c *values.Cursor) (values.Value, error) {
		v, err := fn(c)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

func quadParser[T interface {
	comparable
	values.Value
}](fn values.ParseFunc[T]) func(c *values.Cursor) (values.Value, error) {
	return parser(func(c *values.Cursor) (values.Quad[T], error) {
		return values.ParseQuad(c, fn)
	})
}

var propertyTable [propertyCount]propertyInfo

func init() {
	propertyTable = [propertyCount]propertyInfo{
		PropUnparsed: {name: ""},

		PropBorderRadius:            {"border-radius", parser(ParseBorderRadius), true},
		PropBorderTopLeftRadius:     {"border-top-left-radius", parser(ParseCorner), true},
		PropBorderTopRightRadius:    {"border-top-right-radius", parser(ParseCorner), true},
		PropBorderBottomRightRadius: {"border-bottom-right-radius", parser(ParseCorner), true},
		PropBorderBottomLeftRadius:  {"border-bottom-left-radius", parser(ParseCorner), true},
		PropBorderStartStartRadius:  {"border-start-start-radius", parser(ParseCorner), false},
		PropBorderStartEndRadius:    {"border-start-end-radius", parser(ParseCorner), false},
		PropBorderEndStartRadius:    {"border-end-start-radius", parser(ParseCorner), false},
		PropBorderEndEndRadius:      {"border-end-end-radius", parser(ParseCorner), false},

		PropOutline:      {"outline", parser(ParseOutline), false},
		PropOutlineWidth: {"outline-width", parser(ParseBorderSideWidth), false},
		PropOutlineStyle: {"outline-style", parser(ParseOutlineStyle), false},
		PropOutlineColor: {"outline-color", parser(values.ParseColor), false},

		PropTransform:          {"transform", parser(ParseTransformList), true},
		PropTransformOrigin:    {"transform-origin", parser(ParseTransformOrigin), true},
		PropTransformStyle:     {"transform-style", parser(ParseTransformStyle), true},
		PropTransformBox:       {"transform-box", parser(ParseTransformBox), false},
		PropBackfaceVisibility: {"backface-visibility", parser(ParseBackfaceVisibility), true},
		PropPerspective:        {"perspective", parser(ParsePerspective), true},
		PropPerspectiveOrigin:  {"perspective-origin", parser(values.ParsePosition), true},

		PropObjectPosition:     {"object-position", parser(values.ParsePosition), false},
		PropBackgroundPosition: {"background-position", parser(values.ParsePosition), false},
		PropMargin:             {"margin", quadParser(values.ParseLengthPercentageOrAuto), false},
		PropPadding:            {"padding", quadParser(values.ParseLengthPercentage), false},
		PropInset:              {"inset", quadParser(values.ParseLengthPercentageOrAuto), false},
		PropBorderWidth:        {"border-width", quadParser(ParseBorderSideWidth), false},
	}
}

func (id PropertyID) String() string {
	if id < propertyCount && id != PropUnparsed {
		return propertyTable[id].name
	}
	if id == PropUnparsed {
		return "unparsed"
	}
	return fmt.Sprintf("PropertyID(%d)", int(id))
}

// PropertyByName looks up an unprefixed property name.
func PropertyByName(name string) (PropertyID, bool) {
	for i := PropUnparsed + 1; i < propertyCount; i++ {
		if propertyTable[i].name == name {
			return i, true
		}
	}
	return PropUnparsed, false
}

// Unparsed is raw value text kept as written.
type Unparsed string

func (u Unparsed) ToCSS(p *values.Printer) error {
	return p.WriteString(strings.TrimSpace(string(u)))
}

// Property is one declaration. Prefix holds every vendor prefix the value
// is declared with, a property with several prefixes prints as several
// declarations. For unparsed properties Name is the name as written and
// Prefix is ignored.
type Property struct {
	ID        PropertyID
	Prefix    prefixes.VendorPrefix
	Value     values.Value
	Important bool
	Name      string
}

// ParseProperty parses a declaration value for name. Unknown properties,
// vendor prefixes on properties which do not take them and values which
// fail to parse give an unparsed property; in the last case the parse error
// is returned alongside.
func ParseProperty(name, value string) (Property, error) {
	unparsed := Property{ID: PropUnparsed, Prefix: prefixes.None, Value: Unparsed(value), Name: name}

	base, vp := prefixes.ParsePropertyName(name)
	id, ok := PropertyByName(base)
	if !ok || (vp != prefixes.None && !propertyTable[id].prefixable) {
		return unparsed, nil
	}

	v, err := values.ParseString(value, propertyTable[id].parse)
	if err != nil {
		return unparsed, fmt.Errorf("property %s: %w", name, err)
	}
	return Property{ID: id, Prefix: vp, Value: v}, nil
}

// Names returns declared names in output order, one per prefix.
func (p Property) Names() []string {
	if p.ID == PropUnparsed {
		return []string{p.Name}
	}
	base := p.ID.String()
	each := p.Prefix.Each()
	if len(each) == 0 {
		return []string{base}
	}
	names := make([]string, 0, len(each))
	for _, vp := range each {
		names = append(names, vp.Prefix()+base)
	}
	return names
}

// ValueString prints value alone.
func (p Property) ValueString(minify bool) (string, error) {
	return values.ToCSSString(p.Value, minify)
}

// writeDeclaration writes "name: value" with importance, no terminator.
func (p Property) writeDeclaration(pr *values.Printer, name string) error {
	if err := pr.WriteString(name); err != nil {
		return err
	}
	if err := pr.WriteByte(':'); err != nil {
		return err
	}
	if err := pr.Whitespace(); err != nil {
		return err
	}
	if err := p.Value.ToCSS(pr); err != nil {
		return err
	}
	if p.Important {
		if err := pr.Whitespace(); err != nil {
			return err
		}
		return pr.WriteString("!important")
	}
	return nil
}

// ToCSS writes all declarations of p separated by semicolons.
func (p Property) ToCSS(pr *values.Printer) error {
	for i, name := range p.Names() {
		if i > 0 {
			if err := pr.Delim(';', false); err != nil {
				return err
			}
		}
		if err := p.writeDeclaration(pr, name); err != nil {
			return err
		}
	}
	return nil
}

// DeclarationBlock is an ordered list of declarations printed in braces.
type DeclarationBlock []Property

type declaration struct {
	prop Property
	name string
}

func (b DeclarationBlock) ToCSS(pr *values.Printer) error {
	var decls []declaration
	for _, p := range b {
		for _, n := range p.Names() {
			decls = append(decls, declaration{prop: p, name: n})
		}
	}
	if len(decls) == 0 {
		return pr.WriteString("{}")
	}

	if err := pr.WriteByte('{'); err != nil {
		return err
	}
	pr.Indent()
	for i, d := range decls {
		if err := pr.Newline(); err != nil {
			return err
		}
		if err := d.prop.writeDeclaration(pr, d.name); err != nil {
			return err
		}
		if !pr.Minify || i < len(decls)-1 {
			if err := pr.WriteByte(';'); err != nil {
				return err
			}
		}
	}
	pr.Dedent()
	if err := pr.Newline(); err != nil {
		return err
	}
	return pr.WriteByte('}')
}
