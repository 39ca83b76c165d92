package decal

import (
	"math"
	"testing"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestMatrix_TransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		p    Vec3
		want Vec3
	}{
		{"identity", Identity(), V3(1, 2, 3), V3(1, 2, 3)},
		{"translate", Translate(1, 2, 3), V3(0, 0, 0), V3(1, 2, 3)},
		{"scale", Scale(2, 3, 4), V3(1, 1, 1), V3(2, 3, 4)},
		{"rotate x 90", RotateX(math.Pi / 2), V3(0, 1, 0), V3(0, 0, 1)},
		{"rotate y 90", RotateY(math.Pi / 2), V3(1, 0, 0), V3(0, 0, -1)},
		{"rotate z 90", RotateZ(math.Pi / 2), V3(1, 0, 0), V3(0, 1, 0)},
		{"translate after scale", Translate(1, 0, 0).Multiply(Scale(2, 2, 2)), V3(1, 1, 1), V3(3, 2, 2)},
		{"scale after translate", Scale(2, 2, 2).Multiply(Translate(1, 0, 0)), V3(1, 1, 1), V3(4, 2, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.p)
			if !got.Approx(tt.want, 1e-12) {
				t.Errorf("TransformPoint(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestMatrix_MultiplyIdentity(t *testing.T) {
	m := Translate(1, 2, 3).Multiply(RotateY(0.7)).Multiply(Scale(2, 1, 0.5))
	if got := m.Multiply(Identity()); got != m {
		t.Errorf("m * I = %v, want %v", got, m)
	}
	if got := Identity().Multiply(m); got != m {
		t.Errorf("I * m = %v, want %v", got, m)
	}
	if !Identity().IsIdentity() {
		t.Error("Identity().IsIdentity() = false")
	}
}

func TestMatrix_Invert(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
	}{
		{"identity", Identity()},
		{"translate", Translate(-3, 4, 10)},
		{"scale", Scale(2, 0.5, 4)},
		{"rotate", RotateX(0.3).Multiply(RotateY(1.1)).Multiply(RotateZ(-0.4))},
		{"trs", Translate(1, 2, 3).Multiply(RotateY(0.7)).Multiply(Scale(2, 1, 0.5))},
		{"perspective", Perspective(30, 1.5, 0.5, 3)},
		{"look at", LookAt(V3(3, 2, -2), V3(0, 1.5, 0), V3(0, 1, 0))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, ok := tt.m.Invert()
			if !ok {
				t.Fatal("Invert() reported singular matrix")
			}
			if got := tt.m.Multiply(inv); !got.Approx(Identity(), 1e-9) {
				t.Errorf("m * inv(m) = %v, want identity", got)
			}
			if got := inv.Multiply(tt.m); !got.Approx(Identity(), 1e-9) {
				t.Errorf("inv(m) * m = %v, want identity", got)
			}
		})
	}
}

func TestMatrix_InvertSingular(t *testing.T) {
	inv, ok := Scale(0, 1, 1).Invert()
	if ok {
		t.Error("Invert() of a singular matrix should report false")
	}
	if !inv.IsIdentity() {
		t.Errorf("Invert() of a singular matrix = %v, want identity", inv)
	}
}

func TestMatrix_InvertSmallScale(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
	}{
		{"uniform 1e-5", Scale(1e-5, 1e-5, 1e-5)},
		{"translated 1e-6", Translate(3, -2, 1).Multiply(Scale(1e-6, 1e-6, 1e-6))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, ok := tt.m.Invert()
			if !ok {
				t.Fatalf("Invert() reported a valid transform as singular (det %g)", tt.m.Determinant())
			}
			if got := tt.m.Multiply(inv); !got.Approx(Identity(), 1e-9) {
				t.Errorf("M * inv(M) = %v, want identity", got)
			}
		})
	}
}

func TestMatrix_InvertOverflow(t *testing.T) {
	// det is a non-zero subnormal, so 1/det overflows.
	if _, ok := Scale(1e-310, 1, 1).Invert(); ok {
		t.Error("Invert() of a matrix whose inverse overflows should report false")
	}
}

func TestMatrix_Determinant(t *testing.T) {
	if got := Scale(2, 3, 4).Determinant(); !almostEqual(got, 24, 1e-12) {
		t.Errorf("Determinant() = %v, want 24", got)
	}
	if got := RotateY(0.9).Determinant(); !almostEqual(got, 1, 1e-12) {
		t.Errorf("rotation Determinant() = %v, want 1", got)
	}
}

func TestPerspective_DepthRange(t *testing.T) {
	const near, far = 0.5, 3.0
	p := Perspective(30, 1, near, far)

	tests := []struct {
		name  string
		point Vec3
		want  Vec3
	}{
		{"near plane", V3(0, 0, -near), V3(0, 0, -1)},
		{"far plane", V3(0, 0, -far), V3(0, 0, 1)},
		{"top edge", V3(0, math.Tan(15*math.Pi/180), -1), V3(0, 1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.TransformPoint(tt.point)
			if !almostEqual(got.X, tt.want.X, 1e-9) || !almostEqual(got.Y, tt.want.Y, 1e-9) {
				t.Errorf("xy = (%v, %v), want (%v, %v)", got.X, got.Y, tt.want.X, tt.want.Y)
			}
			if tt.want.Z != 0 && !almostEqual(got.Z, tt.want.Z, 1e-9) {
				t.Errorf("z = %v, want %v", got.Z, tt.want.Z)
			}
		})
	}
}

func TestPerspective_Aspect(t *testing.T) {
	p := Perspective(90, 2, 1, 10)
	// tan(45°) = 1, so at depth 1 the right edge is at x = aspect.
	got := p.TransformPoint(V3(2, 0, -1))
	if !almostEqual(got.X, 1, 1e-9) {
		t.Errorf("right edge ndc.x = %v, want 1", got.X)
	}
}

func TestLookAt(t *testing.T) {
	t.Run("along z", func(t *testing.T) {
		m := LookAt(V3(0, 0, 5), V3(0, 0, 0), V3(0, 1, 0))
		if got := m.TransformPoint(V3(0, 0, -5)); !got.Approx(V3(0, 0, 0), 1e-12) {
			t.Errorf("point ahead = %v, want origin", got)
		}
		if got := m.Position(); got != V3(0, 0, 5) {
			t.Errorf("Position() = %v, want (0, 0, 5)", got)
		}
	})

	t.Run("straight down", func(t *testing.T) {
		m := LookAt(V3(0, 2, 0), V3(0, 0, 0), V3(0, 1, 0))
		if got := m.TransformPoint(V3(0, 0, -2)); !got.Approx(V3(0, 0, 0), 1e-12) {
			t.Errorf("point ahead = %v, want origin", got)
		}
		if back := V3(m[8], m[9], m[10]); !back.Approx(V3(0, 1, 0), 1e-12) {
			t.Errorf("view direction tilted: +Z axis = %v, want (0, 1, 0)", back)
		}
		if got := m.Determinant(); !almostEqual(got, 1, 1e-12) {
			t.Errorf("Determinant() = %v, want a proper rotation", got)
		}
		if _, ok := m.Invert(); !ok {
			t.Error("look-at matrix parallel to up should still be invertible")
		}
	})

	t.Run("eye equals target", func(t *testing.T) {
		m := LookAt(V3(1, 1, 1), V3(1, 1, 1), V3(0, 1, 0))
		if _, ok := m.Invert(); !ok {
			t.Error("degenerate look-at should fall back to an invertible basis")
		}
	})
}

func TestVec4_Divide(t *testing.T) {
	tests := []struct {
		name string
		v    Vec4
		want Vec3
		ok   bool
	}{
		{"unit w", Vec4{1, 2, 3, 1}, V3(1, 2, 3), true},
		{"w 2", Vec4{2, 4, 6, 2}, V3(1, 2, 3), true},
		{"negative w", Vec4{2, 4, 6, -2}, V3(-1, -2, -3), true},
		{"zero w", Vec4{1, 2, 3, 0}, Vec3{}, false},
		{"nan", Vec4{math.NaN(), 0, 0, 1}, Vec3{}, false},
		{"inf", Vec4{math.Inf(1), 0, 0, 1}, Vec3{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.v.Divide()
			if ok != tt.ok || got != tt.want {
				t.Errorf("Divide() = %v, %v; want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestVec3_Ops(t *testing.T) {
	a, b := V3(1, 0, 0), V3(0, 1, 0)
	if got := a.Cross(b); got != V3(0, 0, 1) {
		t.Errorf("x × y = %v, want z", got)
	}
	if got := a.Add(b).Sub(a); got != b {
		t.Errorf("a + b - a = %v, want %v", got, b)
	}
	if got := V3(3, 4, 0).Length(); got != 5 {
		t.Errorf("Length() = %v, want 5", got)
	}
	if got := V3(0, 0, 0).Normalize(); got != (Vec3{}) {
		t.Errorf("zero Normalize() = %v, want zero", got)
	}
	if got := V3(0, 0, 2).Normalize(); got != V3(0, 0, 1) {
		t.Errorf("Normalize() = %v, want (0, 0, 1)", got)
	}
}

func BenchmarkMatrix_Transform(b *testing.B) {
	m := Perspective(30, 1, 0.5, 3).Multiply(Translate(0, 0, -2))
	v := V3(0.1, 0.2, 0.3).Point()
	b.ReportAllocs()
	for b.Loop() {
		_ = m.Transform(v)
	}
}
