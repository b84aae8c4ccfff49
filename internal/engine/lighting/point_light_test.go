package lighting

import (
	"testing"

	"github.com/Faultbox/bounce/pkg/math"
)

func TestAttenuation(t *testing.T) {
	if Attenuation(0) != 1 {
		t.Errorf("Attenuation(0) = %v, want 1", Attenuation(0))
	}

	prev := Attenuation(0)
	for d := float32(0.5); d < 100; d += 0.5 {
		a := Attenuation(d)
		if a <= 0 || a >= prev {
			t.Fatalf("Attenuation(%v) = %v, want positive and below %v", d, a, prev)
		}
		prev = a
	}
}

func TestRadiance(t *testing.T) {
	l := PointLight{Color: math.Vec3{X: 1, Y: 0.5, Z: 0}, Intensity: 2}
	if got := l.Radiance(); got != (math.Vec3{X: 2, Y: 1, Z: 0}) {
		t.Errorf("Radiance = %v, want (2, 1, 0)", got)
	}
}
