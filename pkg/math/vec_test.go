package math

import (
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("Normalize(0) = %v, want zero vector", got)
	}
}

func TestVec3Lerp(t *testing.T) {
	got := Vec3{0, 0, 0}.Lerp(Vec3{10, 20, 30}, 0.5)
	want := Vec3{5, 10, 15}
	if got != want {
		t.Errorf("Lerp = %v, want %v", got, want)
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in   float32
		want float32
	}{
		{0, 0},
		{1, 1},
		{-0.5, TwoPi - 0.5},
		{TwoPi + 0.25, 0.25},
		{-Pi, Pi},
		{100, WrapAngle(100 - 15*TwoPi)},
	}
	for _, tt := range tests {
		got := WrapAngle(tt.in)
		if !near(got, tt.want) {
			t.Errorf("WrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got < 0 || got >= TwoPi {
			t.Errorf("WrapAngle(%v) = %v outside [0, 2π)", tt.in, got)
		}
	}
}

func TestWrapAngleNeverReturnsTwoPi(t *testing.T) {
	for _, a := range []float32{TwoPi, -1e-8, -TwoPi, 4 * TwoPi, TwoPi - 1e-7} {
		if got := WrapAngle(a); got < 0 || got >= TwoPi {
			t.Errorf("WrapAngle(%v) = %v outside [0, 2π)", a, got)
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-1, 0, 1) != 0 || Clamp(2, 0, 1) != 1 || Clamp(0.5, 0, 1) != 0.5 {
		t.Error("Clamp returned wrong value")
	}
}
