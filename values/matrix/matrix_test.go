package matrix_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"cssmin/values/matrix"
)

func approxEqual(a, b matrix.Matrix3D, eps float64) bool {
	av := [16]float64{
		a.M11, a.M12, a.M13, a.M14, a.M21, a.M22, a.M23, a.M24,
		a.M31, a.M32, a.M33, a.M34, a.M41, a.M42, a.M43, a.M44,
	}
	bv := [16]float64{
		b.M11, b.M12, b.M13, b.M14, b.M21, b.M22, b.M23, b.M24,
		b.M31, b.M32, b.M33, b.M34, b.M41, b.M42, b.M43, b.M44,
	}
	for i := range av {
		if math.Abs(av[i]-bv[i]) > eps {
			return false
		}
	}
	return true
}

func randomInvertible(r *rand.Rand) matrix.Matrix3D {
	for {
		m := matrix.Matrix3D{
			M11: r.Float64()*4 - 2, M12: r.Float64()*4 - 2, M13: r.Float64()*4 - 2, M14: r.Float64()*4 - 2,
			M21: r.Float64()*4 - 2, M22: r.Float64()*4 - 2, M23: r.Float64()*4 - 2, M24: r.Float64()*4 - 2,
			M31: r.Float64()*4 - 2, M32: r.Float64()*4 - 2, M33: r.Float64()*4 - 2, M34: r.Float64()*4 - 2,
			M41: r.Float64()*4 - 2, M42: r.Float64()*4 - 2, M43: r.Float64()*4 - 2, M44: r.Float64()*4 - 2,
		}
		if math.Abs(m.Determinant()) > 0.1 {
			return m
		}
	}
}

func TestMultiplyAssociative(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := range 50 {
		a, b, c := randomInvertible(r), randomInvertible(r), randomInvertible(r)
		left := a.Multiply(b).Multiply(c)
		right := a.Multiply(b.Multiply(c))
		if !approxEqual(left, right, 1e-9) {
			t.Fatalf("iteration %d: (A*B)*C = %+v, A*(B*C) = %+v", i, left, right)
		}
	}
}

func TestInverse(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for i := range 50 {
		m := randomInvertible(r)
		inv, ok := m.Inverse()
		if !ok {
			t.Fatalf("iteration %d: Inverse() failed for invertible matrix", i)
		}
		if got := m.Multiply(inv); !approxEqual(got, matrix.Identity(), 1e-9) {
			t.Fatalf("iteration %d: M*inv(M) = %+v, want identity", i, got)
		}
	}
}

func TestDeterminant(t *testing.T) {
	tests := []struct {
		name string
		m    matrix.Matrix3D
		want float64
	}{
		{"identity", matrix.Identity(), 1},
		{"scale", matrix.Scale(2, 3, 4), 24},
		{"translate", matrix.Translate(10, 20, 30), 1},
		{"rotate", matrix.Rotate(1, 2, 3, 0.7), 1},
		{"flat", matrix.Scale(1, 0, 1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Determinant(); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Determinant() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSingular(t *testing.T) {
	m := matrix.Matrix3D{
		M11: 1, M12: 2, M13: 3, M14: 4,
		M21: 2, M22: 4, M23: 6, M24: 8,
		M31: 0, M32: 1, M33: 0, M34: 0,
		M41: 0, M42: 0, M43: 0, M44: 1,
	}
	if det := m.Determinant(); det != 0 {
		t.Fatalf("Determinant() = %v, want 0", det)
	}
	if _, ok := m.Inverse(); ok {
		t.Error("Inverse() succeeded for singular matrix")
	}
	if _, ok := matrix.Decompose(m); ok {
		t.Error("Decompose() succeeded for singular matrix")
	}
	if _, ok := matrix.Decompose(matrix.Scale(0, 1, 1)); ok {
		t.Error("Decompose() succeeded for zero scale")
	}
}

func TestRotateZeroAxis(t *testing.T) {
	if got := matrix.Rotate(0, 0, 0, 1); got != matrix.Identity() {
		t.Errorf("Rotate(0, 0, 0) = %+v, want identity", got)
	}
}

func TestTo2D(t *testing.T) {
	m := matrix.Matrix2D{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}
	got, ok := m.To3D().To2D()
	if !ok || got != m {
		t.Errorf("To2D() = %+v, %v, want %+v", got, ok, m)
	}
	if _, ok := matrix.Translate(0, 0, 1).To2D(); ok {
		t.Error("To2D() succeeded for 3D translation")
	}
}

func TestDecompose(t *testing.T) {
	tests := []struct {
		name string
		m    matrix.Matrix3D
		want []matrix.Step
	}{
		{
			name: "translate",
			m:    matrix.Matrix2D{A: 1, D: 1, E: 10, F: 20}.To3D(),
			want: []matrix.Step{{Kind: matrix.StepTranslate, X: 10, Y: 20}},
		},
		{
			name: "rotate",
			m:    matrix.Rotate(0, 0, 1, math.Pi/2),
			want: []matrix.Step{{Kind: matrix.StepRotate, Z: 1, Angle: 90}},
		},
		{
			name: "scale",
			m:    matrix.Scale(2, 2, 1),
			want: []matrix.Step{{Kind: matrix.StepScale, X: 2, Y: 2, Z: 1}},
		},
		{
			name: "perspective",
			m:    matrix.Perspective(100),
			want: []matrix.Step{{Kind: matrix.StepPerspective, Distance: 100}},
		},
		{
			name: "skew",
			m:    matrix.Skew(math.Pi/4, 0),
			want: []matrix.Step{{Kind: matrix.StepSkew, Angle: 45}},
		},
		{
			name: "skew 20deg",
			m:    matrix.Skew(20*math.Pi/180, 0),
			want: []matrix.Step{{Kind: matrix.StepSkew, Angle: 20}},
		},
		{
			name: "skew -35deg",
			m:    matrix.Skew(-35*math.Pi/180, 0),
			want: []matrix.Step{{Kind: matrix.StepSkew, Angle: -35}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := matrix.Decompose(tt.m)
			if !ok {
				t.Fatal("Decompose() failed")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Decompose() = %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("step %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDecomposeIdentity(t *testing.T) {
	if steps, ok := matrix.Decompose(matrix.Identity()); ok {
		t.Errorf("Decompose(identity) = %+v, want no result", steps)
	}
}

func TestDecomposeRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		steps []matrix.Step
	}{
		{"translate rotate", []matrix.Step{
			{Kind: matrix.StepTranslate, X: 5, Y: -6, Z: 7},
			{Kind: matrix.StepRotate, X: 1, Y: 2, Z: 3, Angle: 30},
		}},
		{"rotate skew scale", []matrix.Step{
			{Kind: matrix.StepRotate, Z: 1, Angle: -45},
			{Kind: matrix.StepSkew, Angle: 20},
			{Kind: matrix.StepScale, X: 2, Y: 3, Z: 4},
		}},
		{"perspective rotate", []matrix.Step{
			{Kind: matrix.StepPerspective, Distance: 500},
			{Kind: matrix.StepRotate, X: 1, Angle: 60},
		}},
		{"mirror", []matrix.Step{
			{Kind: matrix.StepScale, X: -1, Y: 1, Z: 1},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := matrix.Compose(tt.steps)
			steps, ok := matrix.Decompose(m)
			if !ok {
				t.Fatalf("Decompose() failed for %+v", m)
			}
			if got := matrix.Compose(steps); !approxEqual(got, m, 1e-4) {
				t.Errorf("Compose(Decompose(m)) = %+v, want %+v (steps %+v)", got, m, steps)
			}
		})
	}
}

func TestDecomposeRejectsSkewZ(t *testing.T) {
	m := matrix.Identity()
	m.M31 = 0.5
	if steps, ok := matrix.Decompose(m); ok {
		t.Errorf("Decompose() = %+v, want no result for z shear", steps)
	}
}
