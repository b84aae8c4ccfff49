package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b float32) bool {
	return float32(math.Abs(float64(a-b))) < 1e-4
}

func assertMat(t *testing.T, name string, got Mat4, want mgl32.Mat4) {
	t.Helper()
	for i := 0; i < 16; i++ {
		if !near(got[i], want[i]) {
			t.Fatalf("%s element %d: got %f, want %f", name, i, got[i], want[i])
		}
	}
}

func TestIdentity(t *testing.T) {
	assertMat(t, "Identity", Identity(), mgl32.Ident4())
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())
	if result != m {
		t.Errorf("M * I should equal M, got %v", result)
	}
}

func TestMulMatchesMathGL(t *testing.T) {
	a := Translate(1, 2, 3).Mul(Scale(2, 3, 4))
	b := QuatFromAxisAngle(Vec3{0, 1, 0}, 0.7).ToMat4()

	want := mgl32.Translate3D(1, 2, 3).Mul4(mgl32.Scale3D(2, 3, 4)).Mul4(mgl32.HomogRotate3DY(0.7))
	assertMat(t, "Mul", a.Mul(b), want)
}

func TestPerspectiveMatchesMathGL(t *testing.T) {
	fov := Radians(45)
	assertMat(t, "Perspective", Perspective(fov, 4.0/3.0, 0.01, 1000), mgl32.Perspective(fov, 4.0/3.0, 0.01, 1000))
}

func TestLookAtMatchesMathGL(t *testing.T) {
	tests := []struct {
		name            string
		eye, center, up Vec3
	}{
		{"down -z", Vec3{0, 0, 5}, Vec3{0, 0, 0}, Vec3{0, 1, 0}},
		{"orbit", Vec3{5, 1, 0}, Vec3{0, 1, 0}, Vec3{0, 1, 0}},
		{"cube +x face", Vec3{0, 1.8, 0}, Vec3{1, 1.8, 0}, Vec3{0, -1, 0}},
		{"cube +y face", Vec3{0, 1.8, 0}, Vec3{0, 2.8, 0}, Vec3{0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := mgl32.LookAtV(
				mgl32.Vec3{tt.eye.X, tt.eye.Y, tt.eye.Z},
				mgl32.Vec3{tt.center.X, tt.center.Y, tt.center.Z},
				mgl32.Vec3{tt.up.X, tt.up.Y, tt.up.Z},
			)
			assertMat(t, "LookAt", LookAt(tt.eye, tt.center, tt.up), want)
		})
	}
}

func TestInverse(t *testing.T) {
	m := Perspective(Radians(60), 1.5, 0.1, 100).Mul(LookAt(Vec3{3, 2, 1}, Vec3{}, Vec3{0, 1, 0}))
	assertMat(t, "Inverse", m.Inverse(), mgl32.Mat4(m).Inv())

	id := m.Mul(m.Inverse())
	assertMat(t, "M * M^-1", id, mgl32.Ident4())
}

func TestInverseSingular(t *testing.T) {
	var zero Mat4
	if zero.Inverse() != Identity() {
		t.Error("singular matrix should invert to identity")
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformPoint(Vec3{1, 2, 3})
	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformPoint: got %v, want %v", got, want)
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(10, 20, 30).Mul(Scale(2, 2, 2))
	got := m.TransformDirection(Vec3{1, 0, 0})
	if got != (Vec3{2, 0, 0}) {
		t.Errorf("TransformDirection: got %v, want (2,0,0)", got)
	}
}

func TestNormalMatrixUndoesNonUniformScale(t *testing.T) {
	m := Scale(4, 1, 1)
	// A 45 degree surface in XY: stretched along X its normal tilts toward Y.
	n := m.NormalMatrix().TransformDirection(Vec3{1, 1, 0}).Normalize()
	if !(n.Y > n.X) {
		t.Errorf("normal should tilt toward Y after X stretch, got %v", n)
	}
}

func TestFromTRS(t *testing.T) {
	r := QuatFromAxisAngle(Vec3{0, 1, 0}, HalfPi)
	m := FromTRS(Vec3{1, 0, 0}, r, Vec3{2, 2, 2})
	got := m.TransformPoint(Vec3{1, 0, 0})
	// scale -> (2,0,0), rotate 90 about Y -> (0,0,-2), translate -> (1,0,-2)
	if !near(got.X, 1) || !near(got.Y, 0) || !near(got.Z, -2) {
		t.Errorf("FromTRS: got %v, want (1, 0, -2)", got)
	}
}
