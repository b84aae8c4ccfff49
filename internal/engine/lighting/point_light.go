// Package lighting provides the point light that drives capture and shading.
package lighting

import (
	"github.com/Faultbox/bounce/pkg/math"
)

// Attenuation coefficients (constant term is 1).
const (
	AttenuationLinear    = 0.09
	AttenuationQuadratic = 0.032
)

// PointLight is an omnidirectional light. It has no identity beyond a frame;
// the viewer builds one from control values each tick.
type PointLight struct {
	Position  math.Vec3
	Color     math.Vec3 // RGB color (0-1 range)
	Intensity float32   // Light intensity multiplier
}

// DefaultPointLight returns a white unit-intensity light at pos.
func DefaultPointLight(pos math.Vec3) PointLight {
	return PointLight{
		Position:  pos,
		Color:     math.Vec3{X: 1, Y: 1, Z: 1},
		Intensity: 1,
	}
}

// Radiance returns color scaled by intensity, the value uploaded as lightColor.
func (l PointLight) Radiance() math.Vec3 {
	return l.Color.Scale(l.Intensity)
}

// Attenuation returns the distance falloff factor for a surface d units away.
func Attenuation(d float32) float32 {
	return 1 / (1 + AttenuationLinear*d + AttenuationQuadratic*d*d)
}
