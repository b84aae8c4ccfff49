// Package camera provides the damped orbit camera used by the viewers.
package camera

import (
	gomath "math"

	"github.com/Faultbox/bounce/pkg/math"
)

// ScrollSensitivity is the fraction of the radius one wheel notch zooms.
const ScrollSensitivity = 0.1

var worldUp = math.Vec3{X: 0, Y: 1, Z: 0}

// KeyState is the per-frame state of the six pan keys.
type KeyState struct {
	Forward, Back bool // W, S
	Left, Right   bool // A, D
	Up, Down      bool // E, Q
}

// MoveDelta converts key state into a camera-relative pan delta.
// Z is negative forward, X positive right, Y positive up.
func MoveDelta(k KeyState) math.Vec3 {
	var d math.Vec3
	if k.Forward {
		d.Z--
	}
	if k.Back {
		d.Z++
	}
	if k.Right {
		d.X++
	}
	if k.Left {
		d.X--
	}
	if k.Up {
		d.Y++
	}
	if k.Down {
		d.Y--
	}
	return d
}

// OrbitCamera orbits a focus point. Input moves the goal pose (Target,
// TargetFocus); Update eases the settled pose (Current, Focus) toward it.
type OrbitCamera struct {
	Current     Sphere
	Target      Sphere
	Focus       math.Vec3
	TargetFocus math.Vec3

	// Enabled gates Rotate, Pan and Scroll. Update and Jump always apply.
	Enabled bool

	// Projection
	FovY  float32 // radians
	ZNear float32
	ZFar  float32

	// Sensitivity
	MoveSpeed   float32
	RotateSpeed float32
	ScrollSpeed float32
	JumpSpeed   float32 // blend factor per Update call
	MinRadius   float32

	// FrameRateIndependent scales JumpSpeed by elapsed time so easing
	// takes the same wall time at any frame rate. JumpSpeed then means the
	// blend factor of one 60 Hz frame.
	FrameRateIndependent bool
}

// NewOrbitCamera creates an orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	start := Sphere{Radius: 10}
	return &OrbitCamera{
		Current:     start,
		Target:      start,
		Enabled:     true,
		FovY:        math.Radians(45),
		ZNear:       0.01,
		ZFar:        1000,
		MoveSpeed:   1,
		RotateSpeed: 0.01,
		ScrollSpeed: 1,
		JumpSpeed:   0.01,
		MinRadius:   0.01,
	}
}

// Rotate turns the goal orbit by a pointer drag delta.
func (c *OrbitCamera) Rotate(dx, dy float32) {
	if !c.Enabled {
		return
	}
	c.Target.Theta += dx * c.RotateSpeed
	c.Target.Phi += dy * c.RotateSpeed
	c.Target = c.Target.Normalize()
}

// Pan moves the goal focus by a MoveDelta-style delta, in the basis of the
// settled orbit.
func (c *OrbitCamera) Pan(delta math.Vec3, dt float32) {
	if !c.Enabled {
		return
	}
	right := c.Current.Right()
	forward := worldUp.Cross(right)

	move := forward.Scale(-delta.Z).
		Add(right.Scale(delta.X)).
		Add(worldUp.Scale(delta.Y))
	c.TargetFocus = c.TargetFocus.Add(move.Scale(c.MoveSpeed * dt))
}

// Scroll zooms the goal orbit. Positive dy moves closer.
func (c *OrbitCamera) Scroll(dy float32) {
	if !c.Enabled {
		return
	}
	c.Target.Radius *= c.ScrollSpeed * (1 - dy*ScrollSensitivity)
	if c.Target.Radius < c.MinRadius {
		c.Target.Radius = c.MinRadius
	}
}

// Jump teleports the camera. Settled and goal poses are both set, so the
// next frame renders exactly from focus and offset.
func (c *OrbitCamera) Jump(focus math.Vec3, offset Sphere) {
	offset = offset.Normalize()
	if offset.Radius < c.MinRadius {
		offset.Radius = c.MinRadius
	}
	c.Focus, c.TargetFocus = focus, focus
	c.Current, c.Target = offset, offset
}

// Update advances the settled pose toward the goal pose.
func (c *OrbitCamera) Update(dt float32) {
	t := c.blendFactor(dt)
	c.Focus = c.Focus.Lerp(c.TargetFocus, t)
	c.Current = c.Current.Mix(c.Target, t)
}

func (c *OrbitCamera) blendFactor(dt float32) float32 {
	if !c.FrameRateIndependent {
		return c.JumpSpeed
	}
	keep := gomath.Pow(float64(1-c.JumpSpeed), float64(dt*60))
	return math.Clamp(float32(1-keep), 0, 1)
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	return c.Focus.Add(c.Current.Direction().Scale(c.Current.Radius))
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Focus, c.Current.Up())
}

// ProjectionMatrix returns the perspective projection for the given aspect.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(c.FovY, aspect, c.ZNear, c.ZFar)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection(aspect float32) math.Mat4 {
	return c.ProjectionMatrix(aspect).Mul(c.ViewMatrix())
}
