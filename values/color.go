package values

import (
	"strings"

	"github.com/tdewolff/parse/v2/css"
)

// Color is kept opaque: no color space conversion is done, only the textual
// form is normalized when minifying.
type Color struct {
	raw string
}

// CurrentColor is the initial value of most color properties.
var CurrentColor = Color{raw: "currentcolor"}

func (c Color) String() string {
	return c.raw
}

var colorFunctions = map[string]bool{
	"rgb": true, "rgba": true, "hsl": true, "hsla": true, "hwb": true,
	"lab": true, "lch": true, "oklab": true, "oklch": true, "color": true,
	"color-mix": true, "light-dark": true,
}

// ParseColor accepts hex colors, named colors, currentcolor, transparent and
// color functions captured verbatim.
func ParseColor(c *Cursor) (Color, error) {
	t, err := c.Next()
	if err != nil {
		return Color{}, err
	}
	switch t.Type {
	case css.HashToken:
		hex := t.Data[1:]
		if !isHexColor(hex) {
			return Color{}, c.InvalidValue(t)
		}
		return Color{raw: t.Data}, nil
	case css.IdentToken:
		name := strings.ToLower(t.Data)
		if name == "currentcolor" {
			return CurrentColor, nil
		}
		if name == "transparent" || namedColors[name] {
			return Color{raw: t.Data}, nil
		}
		return Color{}, c.UnexpectedToken(t)
	case css.FunctionToken:
		name := strings.ToLower(strings.TrimSuffix(t.Data, "("))
		if !colorFunctions[name] {
			return Color{}, c.UnexpectedToken(t)
		}
		return Color{raw: t.Data + c.RawBlock()}, nil
	default:
		return Color{}, c.UnexpectedToken(t)
	}
}

func (c Color) ToCSS(p *Printer) error {
	if !p.Minify {
		return p.WriteString(c.raw)
	}
	return p.WriteString(minifyColor(c.raw))
}

func minifyColor(raw string) string {
	if !strings.HasPrefix(raw, "#") {
		if strings.HasSuffix(raw, ")") {
			return raw
		}
		return strings.ToLower(raw)
	}
	hex := strings.ToLower(raw[1:])
	switch len(hex) {
	case 6, 8:
		short := make([]byte, 0, len(hex)/2)
		for i := 0; i < len(hex); i += 2 {
			if hex[i] != hex[i+1] {
				return "#" + hex
			}
			short = append(short, hex[i])
		}
		return "#" + string(short)
	}
	return "#" + hex
}

func isHexColor(s string) bool {
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		if !isDigit(b) && !('a' <= b && b <= 'f') && !('A' <= b && b <= 'F') {
			return false
		}
	}
	return true
}

var namedColors = func() map[string]bool {
	names := strings.Fields(`aliceblue antiquewhite aqua aquamarine azure beige bisque black
	blanchedalmond blue blueviolet brown burlywood cadetblue chartreuse chocolate coral
	cornflowerblue cornsilk crimson cyan darkblue darkcyan darkgoldenrod darkgray darkgreen
	darkgrey darkkhaki darkmagenta darkolivegreen darkorange darkorchid darkred darksalmon
	darkseagreen darkslateblue darkslategray darkslategrey darkturquoise darkviolet deeppink
	deepskyblue dimgray dimgrey dodgerblue firebrick floralwhite forestgreen fuchsia gainsboro
	ghostwhite gold goldenrod gray green greenyellow grey honeydew hotpink indianred indigo
	ivory khaki lavender lavenderblush lawngreen lemonchiffon lightblue lightcoral lightcyan
	lightgoldenrodyellow lightgray lightgreen lightgrey lightpink lightsalmon lightseagreen
	lightskyblue lightslategray lightslategrey lightsteelblue lightyellow lime limegreen linen
	magenta maroon mediumaquamarine mediumblue mediumorchid mediumpurple mediumseagreen
	mediumslateblue mediumspringgreen mediumturquoise mediumvioletred midnightblue mintcream
	mistyrose moccasin navajowhite navy oldlace olive olivedrab orange orangered orchid
	palegoldenrod palegreen paleturquoise palevioletred papayawhip peachpuff peru pink plum
	powderblue purple rebeccapurple red rosybrown royalblue saddlebrown salmon sandybrown
	seagreen seashell sienna silver skyblue slateblue slategray slategrey snow springgreen
	steelblue tan teal thistle tomato turquoise violet wheat white whitesmoke yellow
	yellowgreen`)
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}()
