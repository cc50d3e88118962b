package matrix

import "math"

// StepKind identifies an operation produced by Decompose.
type StepKind uint8

const (
	StepPerspective StepKind = iota
	StepTranslate
	StepRotate
	StepSkew
	StepScale
)

func (k StepKind) String() string {
	switch k {
	case StepPerspective:
		return "perspective"
	case StepTranslate:
		return "translate"
	case StepRotate:
		return "rotate"
	case StepSkew:
		return "skew"
	case StepScale:
		return "scale"
	default:
		return "unknown"
	}
}

// Step is one decomposed operation. Translate uses X, Y, Z as pixels, Scale
// uses them as factors, Rotate uses them as axis with Angle in degrees, Skew
// is a skew along x by Angle degrees, Perspective uses Distance in pixels.
type Step struct {
	Kind     StepKind
	X, Y, Z  float64
	Angle    float64
	Distance float64
}

// Matrix returns the matrix of a single step.
func (s Step) Matrix() Matrix3D {
	switch s.Kind {
	case StepPerspective:
		return Perspective(s.Distance)
	case StepTranslate:
		return Translate(s.X, s.Y, s.Z)
	case StepRotate:
		return Rotate(s.X, s.Y, s.Z, s.Angle*math.Pi/180)
	case StepSkew:
		return Skew(s.Angle*math.Pi/180, 0)
	case StepScale:
		return Scale(s.X, s.Y, s.Z)
	default:
		return Identity()
	}
}

// Compose folds steps applied in list order into one matrix. Each following
// step is multiplied on the left of the running total.
func Compose(steps []Step) Matrix3D {
	total := Identity()
	for _, s := range steps {
		total = s.Matrix().Multiply(total)
	}
	return total
}

const (
	roundPlaces = 5
	tolerance   = 1e-9
)

func round5(v float64) float64 {
	scale := math.Pow(10, roundPlaces)
	r := math.Round(v*scale) / scale
	if r == 0 {
		return 0
	}
	return r
}

type vec3 [3]float64

func (a vec3) dot(b vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (a vec3) cross(b vec3) vec3 {
	return vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// combine returns a*as + b*bs.
func (a vec3) combine(b vec3, as, bs float64) vec3 {
	return vec3{as*a[0] + bs*b[0], as*a[1] + bs*b[1], as*a[2] + bs*b[2]}
}

func (a vec3) length() float64 {
	return math.Sqrt(a.dot(a))
}

func (a vec3) scaled(f float64) vec3 {
	return vec3{a[0] * f, a[1] * f, a[2] * f}
}

// Decompose recovers perspective, translate, rotate, skew and scale steps
// from m. It fails when m is singular, when its perspective is not
// representable by a single perspective step or when a shear other than
// x/y remains. An identity matrix yields no steps and false.
func Decompose(m Matrix3D) ([]Step, bool) {
	if m.M44 == 0 {
		return nil, false
	}
	m = m.ScaleBy(1 / m.M44)

	// perspective matrix also tests singularity of the upper 3x3 block
	pm := m
	pm.M14, pm.M24, pm.M34, pm.M44 = 0, 0, 0, 1
	if pm.Determinant() == 0 {
		return nil, false
	}

	var steps []Step

	if m.M14 != 0 || m.M24 != 0 || m.M34 != 0 {
		inv, ok := pm.Inverse()
		if !ok {
			return nil, false
		}
		p := inv.Transpose().MultiplyVector([4]float64{m.M14, m.M24, m.M34, m.M44})
		if math.Abs(p[0]) > tolerance || math.Abs(p[1]) > tolerance ||
			math.Abs(p[3]-1) > tolerance || p[2] == 0 {
			return nil, false
		}
		steps = append(steps, Step{Kind: StepPerspective, Distance: round5(-1 / p[2])})
	}

	tx, ty, tz := round5(m.M41), round5(m.M42), round5(m.M43)
	if tx != 0 || ty != 0 || tz != 0 {
		steps = append(steps, Step{Kind: StepTranslate, X: tx, Y: ty, Z: tz})
	}

	row := [3]vec3{
		{m.M11, m.M12, m.M13},
		{m.M21, m.M22, m.M23},
		{m.M31, m.M32, m.M33},
	}

	scaleX := row[0].length()
	row[0] = row[0].scaled(1 / scaleX)

	skewXY := row[0].dot(row[1])
	row[1] = row[1].combine(row[0], 1, -skewXY)

	scaleY := row[1].length()
	row[1] = row[1].scaled(1 / scaleY)
	skewXY /= scaleY

	skewXZ := row[0].dot(row[2])
	row[2] = row[2].combine(row[0], 1, -skewXZ)
	skewYZ := row[1].dot(row[2])
	row[2] = row[2].combine(row[1], 1, -skewYZ)

	scaleZ := row[2].length()
	row[2] = row[2].scaled(1 / scaleZ)
	skewXZ /= scaleZ
	skewYZ /= scaleZ

	// skew angle is rounded in degrees, rounding the tangent drifts
	skewAngle := round5(math.Atan(skewXY) * 180 / math.Pi)
	skewXZ, skewYZ = round5(skewXZ), round5(skewYZ)
	if skewXZ != 0 || skewYZ != 0 {
		// only a x/y shear has a transform function
		return nil, false
	}

	// rows are orthonormal now, negative triple product means a flip
	if row[0].dot(row[1].cross(row[2])) < 0 {
		scaleX, scaleY, scaleZ = -scaleX, -scaleY, -scaleZ
		for i := range row {
			row[i] = row[i].scaled(-1)
		}
	}
	scaleX, scaleY, scaleZ = round5(scaleX), round5(scaleY), round5(scaleZ)

	if rot, ok := rotation(row); ok {
		steps = append(steps, rot)
	}
	if skewAngle != 0 {
		steps = append(steps, Step{Kind: StepSkew, Angle: skewAngle})
	}
	if scaleX != 1 || scaleY != 1 || scaleZ != 1 {
		steps = append(steps, Step{Kind: StepScale, X: scaleX, Y: scaleY, Z: scaleZ})
	}

	if len(steps) == 0 {
		return nil, false
	}
	return steps, true
}

// rotation extracts axis and angle from an orthonormal row matrix using the
// quaternion derivation.
func rotation(row [3]vec3) (Step, bool) {
	x := 0.5 * math.Sqrt(math.Max(1+row[0][0]-row[1][1]-row[2][2], 0))
	y := 0.5 * math.Sqrt(math.Max(1-row[0][0]+row[1][1]-row[2][2], 0))
	z := 0.5 * math.Sqrt(math.Max(1-row[0][0]-row[1][1]+row[2][2], 0))
	w := 0.5 * math.Sqrt(math.Max(1+row[0][0]+row[1][1]+row[2][2], 0))

	if row[2][1] > row[1][2] {
		x = -x
	}
	if row[0][2] > row[2][0] {
		y = -y
	}
	if row[1][0] > row[0][1] {
		z = -z
	}

	l := math.Sqrt(x*x + y*y + z*z)
	if l != 0 {
		x, y, z = x/l, y/l, z/l
	}
	angle := 2 * math.Atan2(l, w) * 180 / math.Pi

	// scale the axis so its component of largest magnitude becomes 1, a
	// negative divisor reverses the axis so the angle changes sign
	dominant := x
	if math.Abs(y) > math.Abs(dominant) {
		dominant = y
	}
	if math.Abs(z) > math.Abs(dominant) {
		dominant = z
	}
	if dominant != 0 {
		x, y, z = x/math.Abs(dominant), y/math.Abs(dominant), z/math.Abs(dominant)
		if dominant < 0 {
			x, y, z, angle = -x, -y, -z, -angle
		}
	}

	angle = round5(angle)
	if angle == 0 {
		return Step{}, false
	}
	return Step{Kind: StepRotate, X: round5(x), Y: round5(y), Z: round5(z), Angle: angle}, true
}
