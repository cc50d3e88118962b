// Package matrix implements 4x4 homogeneous transform matrices in the row
// vector convention used by CSS transforms: points are row vectors
// multiplied on the left and translation lives in m41..m43.
package matrix

import "math"

// Matrix3D is a 4x4 matrix, Mij is row i column j.
type Matrix3D struct {
	M11, M12, M13, M14 float64
	M21, M22, M23, M24 float64
	M31, M32, M33, M34 float64
	M41, M42, M43, M44 float64
}

// Matrix2D is an affine 2D matrix as written in matrix(a, b, c, d, e, f).
type Matrix2D struct {
	A, B, C, D, E, F float64
}

func (m Matrix2D) To3D() Matrix3D {
	return Matrix3D{
		M11: m.A, M12: m.B, M13: 0, M14: 0,
		M21: m.C, M22: m.D, M23: 0, M24: 0,
		M31: 0, M32: 0, M33: 1, M34: 0,
		M41: m.E, M42: m.F, M43: 0, M44: 1,
	}
}

func Identity() Matrix3D {
	return Matrix3D{M11: 1, M22: 1, M33: 1, M44: 1}
}

func Translate(x, y, z float64) Matrix3D {
	m := Identity()
	m.M41, m.M42, m.M43 = x, y, z
	return m
}

func Scale(x, y, z float64) Matrix3D {
	return Matrix3D{M11: x, M22: y, M33: z, M44: 1}
}

// Rotate returns rotation by angle radians around axis (x, y, z). An axis
// which cannot be normalized yields identity.
func Rotate(x, y, z, angle float64) Matrix3D {
	length := math.Sqrt(x*x + y*y + z*z)
	if length == 0 {
		return Identity()
	}
	x, y, z = x/length, y/length, z/length

	half := angle / 2
	sin := math.Sin(half)
	sc := sin * math.Cos(half)
	sq := sin * sin

	return Matrix3D{
		M11: 1 - 2*(y*y+z*z)*sq,
		M12: 2 * (x*y*sq + z*sc),
		M13: 2 * (x*z*sq - y*sc),
		M21: 2 * (x*y*sq - z*sc),
		M22: 1 - 2*(x*x+z*z)*sq,
		M23: 2 * (y*z*sq + x*sc),
		M31: 2 * (x*z*sq + y*sc),
		M32: 2 * (y*z*sq - x*sc),
		M33: 1 - 2*(x*x+y*y)*sq,
		M44: 1,
	}
}

// Skew returns skew by a radians along x and b radians along y.
func Skew(a, b float64) Matrix3D {
	m := Identity()
	m.M12 = math.Tan(b)
	m.M21 = math.Tan(a)
	return m
}

// Perspective returns perspective projection for distance d.
func Perspective(d float64) Matrix3D {
	m := Identity()
	m.M34 = -1 / d
	return m
}

func (m Matrix3D) rows() [4][4]float64 {
	return [4][4]float64{
		{m.M11, m.M12, m.M13, m.M14},
		{m.M21, m.M22, m.M23, m.M24},
		{m.M31, m.M32, m.M33, m.M34},
		{m.M41, m.M42, m.M43, m.M44},
	}
}

func fromRows(r [4][4]float64) Matrix3D {
	return Matrix3D{
		M11: r[0][0], M12: r[0][1], M13: r[0][2], M14: r[0][3],
		M21: r[1][0], M22: r[1][1], M23: r[1][2], M24: r[1][3],
		M31: r[2][0], M32: r[2][1], M33: r[2][2], M34: r[2][3],
		M41: r[3][0], M42: r[3][1], M43: r[3][2], M44: r[3][3],
	}
}

// Multiply returns m * o.
func (m Matrix3D) Multiply(o Matrix3D) Matrix3D {
	a, b := m.rows(), o.rows()
	var r [4][4]float64
	for i := range 4 {
		for j := range 4 {
			r[i][j] = a[i][0]*b[0][j] + a[i][1]*b[1][j] + a[i][2]*b[2][j] + a[i][3]*b[3][j]
		}
	}
	return fromRows(r)
}

func (m Matrix3D) Transpose() Matrix3D {
	r := m.rows()
	var t [4][4]float64
	for i := range 4 {
		for j := range 4 {
			t[i][j] = r[j][i]
		}
	}
	return fromRows(t)
}

// MultiplyVector returns row vector v multiplied by m.
func (m Matrix3D) MultiplyVector(v [4]float64) [4]float64 {
	r := m.rows()
	var out [4]float64
	for j := range 4 {
		out[j] = v[0]*r[0][j] + v[1]*r[1][j] + v[2]*r[2][j] + v[3]*r[3][j]
	}
	return out
}

// ScaleBy multiplies every element by f.
func (m Matrix3D) ScaleBy(f float64) Matrix3D {
	r := m.rows()
	for i := range 4 {
		for j := range 4 {
			r[i][j] *= f
		}
	}
	return fromRows(r)
}

// Is2D reports whether m has no out of plane components.
func (m Matrix3D) Is2D() bool {
	return m.M31 == 0 && m.M32 == 0 &&
		m.M13 == 0 && m.M23 == 0 &&
		m.M43 == 0 && m.M14 == 0 &&
		m.M24 == 0 && m.M34 == 0 &&
		m.M33 == 1 && m.M44 == 1
}

// To2D returns the affine form when m is 2D.
func (m Matrix3D) To2D() (Matrix2D, bool) {
	if !m.Is2D() {
		return Matrix2D{}, false
	}
	return Matrix2D{A: m.M11, B: m.M12, C: m.M21, D: m.M22, E: m.M41, F: m.M42}, true
}

// Determinant is computed by cofactor expansion along the first row.
func (m Matrix3D) Determinant() float64 {
	r := m.rows()
	var det float64
	for j := range 4 {
		det += r[0][j] * cofactor(r, 0, j)
	}
	return det
}

// Inverse is the adjugate divided by the determinant. It fails when the
// determinant is exactly zero.
func (m Matrix3D) Inverse() (Matrix3D, bool) {
	det := m.Determinant()
	if det == 0 {
		return Matrix3D{}, false
	}
	r := m.rows()
	var inv [4][4]float64
	for i := range 4 {
		for j := range 4 {
			// adjugate is the transposed cofactor matrix
			inv[j][i] = cofactor(r, i, j) / det
		}
	}
	return fromRows(inv), true
}

// cofactor returns signed 3x3 minor of r without row i and column j.
func cofactor(r [4][4]float64, i, j int) float64 {
	var sub [3][3]float64
	si := 0
	for row := range 4 {
		if row == i {
			continue
		}
		sj := 0
		for col := range 4 {
			if col == j {
				continue
			}
			sub[si][sj] = r[row][col]
			sj++
		}
		si++
	}
	minor := sub[0][0]*(sub[1][1]*sub[2][2]-sub[1][2]*sub[2][1]) -
		sub[0][1]*(sub[1][0]*sub[2][2]-sub[1][2]*sub[2][0]) +
		sub[0][2]*(sub[1][0]*sub[2][1]-sub[1][1]*sub[2][0])
	if (i+j)%2 == 1 {
		return -minor
	}
	return minor
}
