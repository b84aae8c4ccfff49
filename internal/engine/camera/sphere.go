package camera

import (
	"github.com/Faultbox/bounce/pkg/math"
)

// Sphere is a camera offset from its focus in spherical coordinates.
// Theta is the azimuth around +Y, Phi the elevation, Radius the distance.
type Sphere struct {
	Theta  float32
	Phi    float32
	Radius float32
}

// Normalize wraps Theta into [0, 2π) and clamps Phi to [-π/2, π/2].
func (s Sphere) Normalize() Sphere {
	s.Theta = math.WrapAngle(s.Theta)
	s.Phi = math.Clamp(s.Phi, -math.HalfPi, math.HalfPi)
	return s
}

// Direction returns the unit vector from the focus toward the camera.
func (s Sphere) Direction() math.Vec3 {
	cp := math.Cos(s.Phi)
	return math.Vec3{
		X: cp * math.Cos(s.Theta),
		Y: math.Sin(s.Phi),
		Z: cp * math.Sin(s.Theta),
	}
}

// Right returns the horizontal right vector derived from Theta.
func (s Sphere) Right() math.Vec3 {
	h := math.Vec3{X: math.Cos(s.Theta), Z: math.Sin(s.Theta)}
	return worldUp.Cross(h)
}

// Up returns the camera up vector, perpendicular to Direction and Right.
func (s Sphere) Up() math.Vec3 {
	return s.Direction().Cross(s.Right())
}

// Mix blends s toward other by t. Theta takes the shorter way around the
// circle, so blending 0.1 toward 6.2 passes through 0 rather than π.
func (s Sphere) Mix(other Sphere, t float32) Sphere {
	theta := s.Theta
	switch d := theta - other.Theta; {
	case d > math.Pi:
		theta -= math.TwoPi
	case d < -math.Pi:
		theta += math.TwoPi
	}

	return Sphere{
		Theta:  math.Lerp(theta, other.Theta, t),
		Phi:    math.Lerp(s.Phi, other.Phi, t),
		Radius: math.Lerp(s.Radius, other.Radius, t),
	}.Normalize()
}
