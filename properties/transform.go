package properties

import (
	"errors"
	"slices"
	"strings"

	"cssmin/values"
	"cssmin/values/matrix"
)

// Transform is one transform function.
type Transform interface {
	values.Value
	// ToMatrix returns matrix of the function, false when an operand does
	// not resolve to an absolute length.
	ToMatrix() (matrix.Matrix3D, bool)
	transform()
}

type (
	Translate struct {
		X, Y values.LengthPercentage
	}
	TranslateX struct {
		X values.LengthPercentage
	}
	TranslateY struct {
		Y values.LengthPercentage
	}
	TranslateZ struct {
		Z values.Length
	}
	Translate3D struct {
		X, Y values.LengthPercentage
		Z    values.Length
	}
	Scale struct {
		X, Y values.NumberOrPercentage
	}
	ScaleX struct {
		X values.NumberOrPercentage
	}
	ScaleY struct {
		Y values.NumberOrPercentage
	}
	ScaleZ struct {
		Z values.NumberOrPercentage
	}
	Scale3D struct {
		X, Y, Z values.NumberOrPercentage
	}
	Rotate struct {
		Angle values.Angle
	}
	RotateX struct {
		Angle values.Angle
	}
	RotateY struct {
		Angle values.Angle
	}
	RotateZ struct {
		Angle values.Angle
	}
	Rotate3D struct {
		X, Y, Z float64
		Angle   values.Angle
	}
	Skew struct {
		X, Y values.Angle
	}
	SkewX struct {
		Angle values.Angle
	}
	SkewY struct {
		Angle values.Angle
	}
	PerspectiveFunction struct {
		Length values.Length
	}
	MatrixFunction struct {
		M matrix.Matrix2D
	}
	Matrix3DFunction struct {
		M matrix.Matrix3D
	}
)

func (Translate) transform()           {}
func (TranslateX) transform()          {}
func (TranslateY) transform()          {}
func (TranslateZ) transform()          {}
func (Translate3D) transform()         {}
func (Scale) transform()               {}
func (ScaleX) transform()              {}
func (ScaleY) transform()              {}
func (ScaleZ) transform()              {}
func (Scale3D) transform()             {}
func (Rotate) transform()              {}
func (RotateX) transform()             {}
func (RotateY) transform()             {}
func (RotateZ) transform()             {}
func (Rotate3D) transform()            {}
func (Skew) transform()                {}
func (SkewX) transform()               {}
func (SkewY) transform()               {}
func (PerspectiveFunction) transform() {}
func (MatrixFunction) transform()      {}
func (Matrix3DFunction) transform()    {}

// numbers reads n comma separated numbers.
func numbers(c *values.Cursor, n int) ([]float64, error) {
	out := make([]float64, 0, n)
	for i := range n {
		if i > 0 {
			if err := c.ExpectComma(); err != nil {
				return nil, err
			}
		}
		v, err := c.ExpectNumber()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func comma(c *values.Cursor) (struct{}, error) {
	return struct{}{}, c.ExpectComma()
}

// ParseTransform reads a single transform function.
func ParseTransform(c *values.Cursor) (Transform, error) {
	start, _ := c.Peek()
	name, err := c.ExpectFunction()
	if err != nil {
		return nil, err
	}

	var t Transform
	err = c.ParseNestedBlock(func(c *values.Cursor) error {
		var err error
		t, err = parseTransformArgs(c, name)
		if errors.Is(err, errUnknownFunction) {
			return c.UnexpectedToken(start)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

var errUnknownFunction = errors.New("unknown transform function")

func parseTransformArgs(c *values.Cursor, name string) (Transform, error) {
	switch name {
	case "matrix":
		n, err := numbers(c, 6)
		if err != nil {
			return nil, err
		}
		return MatrixFunction{M: matrix.Matrix2D{A: n[0], B: n[1], C: n[2], D: n[3], E: n[4], F: n[5]}}, nil

	case "matrix3d":
		n, err := numbers(c, 16)
		if err != nil {
			return nil, err
		}
		return Matrix3DFunction{M: matrix.Matrix3D{
			M11: n[0], M12: n[1], M13: n[2], M14: n[3],
			M21: n[4], M22: n[5], M23: n[6], M24: n[7],
			M31: n[8], M32: n[9], M33: n[10], M34: n[11],
			M41: n[12], M42: n[13], M43: n[14], M44: n[15],
		}}, nil

	case "translate":
		x, err := values.ParseLengthPercentage(c)
		if err != nil {
			return nil, err
		}
		if _, err := values.TryParse(c, comma); err == nil {
			y, err := values.ParseLengthPercentage(c)
			if err != nil {
				return nil, err
			}
			return Translate{X: x, Y: y}, nil
		}
		return Translate{X: x, Y: values.ZeroLength}, nil

	case "translatex":
		x, err := values.ParseLengthPercentage(c)
		return TranslateX{X: x}, err

	case "translatey":
		y, err := values.ParseLengthPercentage(c)
		return TranslateY{Y: y}, err

	case "translatez":
		z, err := values.ParseLength(c)
		return TranslateZ{Z: z}, err

	case "translate3d":
		x, err := values.ParseLengthPercentage(c)
		if err != nil {
			return nil, err
		}
		if err := c.ExpectComma(); err != nil {
			return nil, err
		}
		y, err := values.ParseLengthPercentage(c)
		if err != nil {
			return nil, err
		}
		if err := c.ExpectComma(); err != nil {
			return nil, err
		}
		z, err := values.ParseLength(c)
		if err != nil {
			return nil, err
		}
		return Translate3D{X: x, Y: y, Z: z}, nil

	case "scale":
		x, err := values.ParseNumberOrPercentage(c)
		if err != nil {
			return nil, err
		}
		if _, err := values.TryParse(c, comma); err == nil {
			y, err := values.ParseNumberOrPercentage(c)
			if err != nil {
				return nil, err
			}
			return Scale{X: x, Y: y}, nil
		}
		return Scale{X: x, Y: x}, nil

	case "scalex":
		x, err := values.ParseNumberOrPercentage(c)
		return ScaleX{X: x}, err

	case "scaley":
		y, err := values.ParseNumberOrPercentage(c)
		return ScaleY{Y: y}, err

	case "scalez":
		z, err := values.ParseNumberOrPercentage(c)
		return ScaleZ{Z: z}, err

	case "scale3d":
		var s [3]values.NumberOrPercentage
		for i := range s {
			if i > 0 {
				if err := c.ExpectComma(); err != nil {
					return nil, err
				}
			}
			v, err := values.ParseNumberOrPercentage(c)
			if err != nil {
				return nil, err
			}
			s[i] = v
		}
		return Scale3D{X: s[0], Y: s[1], Z: s[2]}, nil

	case "rotate":
		a, err := values.ParseAngle(c)
		return Rotate{Angle: a}, err

	case "rotatex":
		a, err := values.ParseAngle(c)
		return RotateX{Angle: a}, err

	case "rotatey":
		a, err := values.ParseAngle(c)
		return RotateY{Angle: a}, err

	case "rotatez":
		a, err := values.ParseAngle(c)
		return RotateZ{Angle: a}, err

	case "rotate3d":
		n, err := numbers(c, 3)
		if err != nil {
			return nil, err
		}
		if err := c.ExpectComma(); err != nil {
			return nil, err
		}
		a, err := values.ParseAngle(c)
		if err != nil {
			return nil, err
		}
		return Rotate3D{X: n[0], Y: n[1], Z: n[2], Angle: a}, nil

	case "skew":
		x, err := values.ParseAngle(c)
		if err != nil {
			return nil, err
		}
		if _, err := values.TryParse(c, comma); err == nil {
			y, err := values.ParseAngle(c)
			if err != nil {
				return nil, err
			}
			return Skew{X: x, Y: y}, nil
		}
		return Skew{X: x, Y: values.Degrees(0)}, nil

	case "skewx":
		a, err := values.ParseAngle(c)
		return SkewX{Angle: a}, err

	case "skewy":
		a, err := values.ParseAngle(c)
		return SkewY{Angle: a}, err

	case "perspective":
		l, err := values.ParseLength(c)
		return PerspectiveFunction{Length: l}, err
	}
	return nil, errUnknownFunction
}

// function writes name(arg, arg, ...).
func function(p *values.Printer, name string, args ...values.Value) error {
	if err := p.WriteString(name); err != nil {
		return err
	}
	if err := p.WriteByte('('); err != nil {
		return err
	}
	for i, a := range args {
		if i > 0 {
			if err := p.Delim(',', false); err != nil {
				return err
			}
		}
		if err := a.ToCSS(p); err != nil {
			return err
		}
	}
	return p.WriteByte(')')
}

func isOne(n values.NumberOrPercentage) bool {
	return n.Float() == 1
}

func (t Translate) ToCSS(p *values.Printer) error {
	if p.Minify && t.X.IsZero() && !t.Y.IsZero() {
		return function(p, "translateY", t.Y)
	}
	if t.Y.IsZero() {
		return function(p, "translate", t.X)
	}
	return function(p, "translate", t.X, t.Y)
}

func (t TranslateX) ToCSS(p *values.Printer) error {
	if p.Minify {
		return function(p, "translate", t.X)
	}
	return function(p, "translateX", t.X)
}

func (t TranslateY) ToCSS(p *values.Printer) error {
	return function(p, "translateY", t.Y)
}

func (t TranslateZ) ToCSS(p *values.Printer) error {
	return function(p, "translateZ", t.Z)
}

func (t Translate3D) ToCSS(p *values.Printer) error {
	x, y, z := !t.X.IsZero(), !t.Y.IsZero(), !t.Z.IsZero()
	switch {
	case p.Minify && !y && !z:
		return function(p, "translate", t.X)
	case p.Minify && !x && y && !z:
		return function(p, "translateY", t.Y)
	case p.Minify && !x && !y && z:
		return function(p, "translateZ", t.Z)
	case p.Minify && !z:
		return function(p, "translate", t.X, t.Y)
	default:
		return function(p, "translate3d", t.X, t.Y, t.Z)
	}
}

func (s Scale) ToCSS(p *values.Printer) error {
	switch {
	case p.Minify && isOne(s.X) && !isOne(s.Y):
		return function(p, "scaleY", s.Y)
	case p.Minify && !isOne(s.X) && isOne(s.Y):
		return function(p, "scaleX", s.X)
	case s.X == s.Y:
		return function(p, "scale", s.X)
	default:
		return function(p, "scale", s.X, s.Y)
	}
}

func (s ScaleX) ToCSS(p *values.Printer) error {
	return function(p, "scaleX", s.X)
}

func (s ScaleY) ToCSS(p *values.Printer) error {
	return function(p, "scaleY", s.Y)
}

func (s ScaleZ) ToCSS(p *values.Printer) error {
	return function(p, "scaleZ", s.Z)
}

func (s Scale3D) ToCSS(p *values.Printer) error {
	x, y, z := isOne(s.X), isOne(s.Y), isOne(s.Z)
	switch {
	case p.Minify && z && s.X == s.Y:
		return function(p, "scale", s.X)
	case p.Minify && !x && y && z:
		return function(p, "scaleX", s.X)
	case p.Minify && x && !y && z:
		return function(p, "scaleY", s.Y)
	case p.Minify && x && y && !z:
		return function(p, "scaleZ", s.Z)
	case p.Minify && z:
		return function(p, "scale", s.X, s.Y)
	default:
		return function(p, "scale3d", s.X, s.Y, s.Z)
	}
}

func (r Rotate) ToCSS(p *values.Printer) error {
	return function(p, "rotate", r.Angle)
}

func (r RotateX) ToCSS(p *values.Printer) error {
	return function(p, "rotateX", r.Angle)
}

func (r RotateY) ToCSS(p *values.Printer) error {
	return function(p, "rotateY", r.Angle)
}

func (r RotateZ) ToCSS(p *values.Printer) error {
	if p.Minify {
		return function(p, "rotate", r.Angle)
	}
	return function(p, "rotateZ", r.Angle)
}

func (r Rotate3D) ToCSS(p *values.Printer) error {
	// the axis length does not matter, only its direction
	switch {
	case p.Minify && r.X > 0 && r.Y == 0 && r.Z == 0:
		return function(p, "rotateX", r.Angle)
	case p.Minify && r.X == 0 && r.Y > 0 && r.Z == 0:
		return function(p, "rotateY", r.Angle)
	case p.Minify && r.X == 0 && r.Y == 0 && r.Z > 0:
		return function(p, "rotate", r.Angle)
	default:
		return function(p, "rotate3d", values.Number(r.X), values.Number(r.Y), values.Number(r.Z), r.Angle)
	}
}

func (s Skew) ToCSS(p *values.Printer) error {
	switch {
	case p.Minify && s.X.IsZero() && !s.Y.IsZero():
		return function(p, "skewY", s.Y)
	case s.Y.IsZero():
		return function(p, "skew", s.X)
	default:
		return function(p, "skew", s.X, s.Y)
	}
}

func (s SkewX) ToCSS(p *values.Printer) error {
	if p.Minify {
		return function(p, "skew", s.Angle)
	}
	return function(p, "skewX", s.Angle)
}

func (s SkewY) ToCSS(p *values.Printer) error {
	return function(p, "skewY", s.Angle)
}

func (f PerspectiveFunction) ToCSS(p *values.Printer) error {
	return function(p, "perspective", f.Length)
}

func (f MatrixFunction) ToCSS(p *values.Printer) error {
	m := f.M
	return function(p, "matrix",
		values.Number(m.A), values.Number(m.B), values.Number(m.C),
		values.Number(m.D), values.Number(m.E), values.Number(m.F))
}

func (f Matrix3DFunction) ToCSS(p *values.Printer) error {
	m := f.M
	return function(p, "matrix3d",
		values.Number(m.M11), values.Number(m.M12), values.Number(m.M13), values.Number(m.M14),
		values.Number(m.M21), values.Number(m.M22), values.Number(m.M23), values.Number(m.M24),
		values.Number(m.M31), values.Number(m.M32), values.Number(m.M33), values.Number(m.M34),
		values.Number(m.M41), values.Number(m.M42), values.Number(m.M43), values.Number(m.M44))
}

func px(lp values.LengthPercentage) (float64, bool) {
	return lp.ToPx()
}

func (t Translate) ToMatrix() (matrix.Matrix3D, bool) {
	x, okx := px(t.X)
	y, oky := px(t.Y)
	if !okx || !oky {
		return matrix.Matrix3D{}, false
	}
	return matrix.Translate(x, y, 0), true
}

func (t TranslateX) ToMatrix() (matrix.Matrix3D, bool) {
	x, ok := px(t.X)
	if !ok {
		return matrix.Matrix3D{}, false
	}
	return matrix.Translate(x, 0, 0), true
}

func (t TranslateY) ToMatrix() (matrix.Matrix3D, bool) {
	y, ok := px(t.Y)
	if !ok {
		return matrix.Matrix3D{}, false
	}
	return matrix.Translate(0, y, 0), true
}

func (t TranslateZ) ToMatrix() (matrix.Matrix3D, bool) {
	z, ok := t.Z.ToPx()
	if !ok {
		return matrix.Matrix3D{}, false
	}
	return matrix.Translate(0, 0, z), true
}

func (t Translate3D) ToMatrix() (matrix.Matrix3D, bool) {
	x, okx := px(t.X)
	y, oky := px(t.Y)
	z, okz := t.Z.ToPx()
	if !okx || !oky || !okz {
		return matrix.Matrix3D{}, false
	}
	return matrix.Translate(x, y, z), true
}

func (s Scale) ToMatrix() (matrix.Matrix3D, bool) {
	return matrix.Scale(s.X.Float(), s.Y.Float(), 1), true
}

func (s ScaleX) ToMatrix() (matrix.Matrix3D, bool) {
	return matrix.Scale(s.X.Float(), 1, 1), true
}

func (s ScaleY) ToMatrix() (matrix.Matrix3D, bool) {
	return matrix.Scale(1, s.Y.Float(), 1), true
}

func (s ScaleZ) ToMatrix() (matrix.Matrix3D, bool) {
	return matrix.Scale(1, 1, s.Z.Float()), true
}

func (s Scale3D) ToMatrix() (matrix.Matrix3D, bool) {
	return matrix.Scale(s.X.Float(), s.Y.Float(), s.Z.Float()), true
}

func (r Rotate) ToMatrix() (matrix.Matrix3D, bool) {
	return matrix.Rotate(0, 0, 1, r.Angle.ToRadians()), true
}

func (r RotateX) ToMatrix() (matrix.Matrix3D, bool) {
	return matrix.Rotate(1, 0, 0, r.Angle.ToRadians()), true
}

func (r RotateY) ToMatrix() (matrix.Matrix3D, bool) {
	return matrix.Rotate(0, 1, 0, r.Angle.ToRadians()), true
}

func (r RotateZ) ToMatrix() (matrix.Matrix3D, bool) {
	return matrix.Rotate(0, 0, 1, r.Angle.ToRadians()), true
}

func (r Rotate3D) ToMatrix() (matrix.Matrix3D, bool) {
	return matrix.Rotate(r.X, r.Y, r.Z, r.Angle.ToRadians()), true
}

func (s Skew) ToMatrix() (matrix.Matrix3D, bool) {
	return matrix.Skew(s.X.ToRadians(), s.Y.ToRadians()), true
}

func (s SkewX) ToMatrix() (matrix.Matrix3D, bool) {
	return matrix.Skew(s.Angle.ToRadians(), 0), true
}

func (s SkewY) ToMatrix() (matrix.Matrix3D, bool) {
	return matrix.Skew(0, s.Angle.ToRadians()), true
}

func (f PerspectiveFunction) ToMatrix() (matrix.Matrix3D, bool) {
	d, ok := f.Length.ToPx()
	if !ok || d == 0 {
		return matrix.Matrix3D{}, false
	}
	return matrix.Perspective(d), true
}

func (f MatrixFunction) ToMatrix() (matrix.Matrix3D, bool) {
	return f.M.To3D(), true
}

func (f Matrix3DFunction) ToMatrix() (matrix.Matrix3D, bool) {
	return f.M, true
}

// TransformList is a <transform-list>, empty for none.
type TransformList []Transform

// ParseTransformList reads none or one or more transform functions.
func ParseTransformList(c *values.Cursor) (TransformList, error) {
	if values.TryIdent(c, "none") {
		return TransformList{}, nil
	}
	first, err := ParseTransform(c)
	if err != nil {
		return nil, err
	}
	list := TransformList{first}
	for {
		t, err := values.TryParse(c, ParseTransform)
		if err != nil {
			return list, nil
		}
		list = append(list, t)
	}
}

func (l TransformList) Equal(o values.Value) bool {
	ol, ok := o.(TransformList)
	return ok && slices.Equal(l, ol)
}

// ToMatrix folds the list into one matrix. Each function in turn is
// multiplied on the left of the running total, so the list reads in the
// order functions are written.
func (l TransformList) ToMatrix() (matrix.Matrix3D, bool) {
	total := matrix.Identity()
	for _, t := range l {
		m, ok := t.ToMatrix()
		if !ok {
			return matrix.Matrix3D{}, false
		}
		total = m.Multiply(total)
	}
	return total, true
}

// FromSteps converts decomposed steps into transform functions.
func FromSteps(steps []matrix.Step) TransformList {
	list := make(TransformList, 0, len(steps))
	for _, s := range steps {
		switch s.Kind {
		case matrix.StepPerspective:
			list = append(list, PerspectiveFunction{Length: values.PxLength(s.Distance)})
		case matrix.StepTranslate:
			list = append(list, Translate3D{
				X: values.LengthValue(values.PxLength(s.X)),
				Y: values.LengthValue(values.PxLength(s.Y)),
				Z: values.PxLength(s.Z),
			})
		case matrix.StepRotate:
			list = append(list, Rotate3D{X: s.X, Y: s.Y, Z: s.Z, Angle: values.Degrees(s.Angle)})
		case matrix.StepSkew:
			list = append(list, SkewX{Angle: values.Degrees(s.Angle)})
		case matrix.StepScale:
			list = append(list, Scale3D{
				X: values.NumberValue(s.X),
				Y: values.NumberValue(s.Y),
				Z: values.NumberValue(s.Z),
			})
		}
	}
	return list
}

// Candidates are minified encodings considered for a foldable list.
type Candidates struct {
	Folded matrix.Matrix3D
	// Steps is nil when the folded matrix does not decompose.
	Steps      []matrix.Step
	Base       string
	Decomposed string
	Matrix     string
}

// Best is the shortest candidate. The function list wins ties over the
// decomposition, and both win ties over the matrix literal.
func (c Candidates) Best() string {
	best := c.Base
	if c.Decomposed != "" && len(c.Decomposed) < len(best) {
		best = c.Decomposed
	}
	if len(c.Matrix) < len(best) {
		best = c.Matrix
	}
	return best
}

// Candidates computes minified encodings of l. It returns false when l does
// not fold into a matrix.
func (l TransformList) Candidates() (Candidates, bool) {
	m, ok := l.ToMatrix()
	if !ok || len(l) == 0 {
		return Candidates{}, false
	}
	c := Candidates{Folded: m}

	var err error
	if c.Base, err = minified(l.writeFunctions); err != nil {
		return Candidates{}, false
	}
	if steps, ok := matrix.Decompose(m); ok {
		c.Steps = steps
		if c.Decomposed, err = minified(FromSteps(steps).writeFunctions); err != nil {
			return Candidates{}, false
		}
	}

	var literal Transform = Matrix3DFunction{M: m}
	if m2, ok := m.To2D(); ok {
		literal = MatrixFunction{M: m2}
	}
	if c.Matrix, err = values.ToCSSString(literal, true); err != nil {
		return Candidates{}, false
	}
	return c, true
}

func minified(write func(p *values.Printer) error) (string, error) {
	var sb strings.Builder
	p := values.NewPrinter(&sb, true)
	if err := write(p); err != nil {
		return "", err
	}
	return sb.String(), p.Err()
}

func (l TransformList) writeFunctions(p *values.Printer) error {
	for i, t := range l {
		if i > 0 {
			if err := p.Whitespace(); err != nil {
				return err
			}
		}
		if err := t.ToCSS(p); err != nil {
			return err
		}
	}
	return nil
}

func (l TransformList) ToCSS(p *values.Printer) error {
	if len(l) == 0 {
		return p.WriteString("none")
	}
	if p.Minify {
		if c, ok := l.Candidates(); ok {
			return p.WriteString(c.Best())
		}
	}
	return l.writeFunctions(p)
}
