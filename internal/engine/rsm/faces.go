// Package rsm implements omnidirectional reflective shadow maps: a capture
// pass that renders depth, normal and flux from a point light into six cube
// faces, and a shading pass that samples them for direct light plus one
// bounce of indirect light.
//
// The GL stages and the software reference share the face table, the
// sample pattern and the shading kernel in this package.
package rsm

import (
	"github.com/Faultbox/bounce/pkg/math"
)

// Face is one cube face: the axis the camera looks along and its up vector.
type Face struct {
	Name   string
	Target math.Vec3
	Up     math.Vec3
}

// Faces lists the cube faces in GL layer order (+X, -X, +Y, -Y, +Z, -Z).
// The ±Y faces use a Z up vector since Y would be parallel to the view axis.
var Faces = [6]Face{
	{"+X", math.Vec3{X: 1}, math.Vec3{Y: -1}},
	{"-X", math.Vec3{X: -1}, math.Vec3{Y: -1}},
	{"+Y", math.Vec3{Y: 1}, math.Vec3{Z: 1}},
	{"-Y", math.Vec3{Y: -1}, math.Vec3{Z: -1}},
	{"+Z", math.Vec3{Z: 1}, math.Vec3{Y: -1}},
	{"-Z", math.Vec3{Z: -1}, math.Vec3{Y: -1}},
}

// Capture projection defaults.
const (
	DefaultNear = 0.1
	DefaultFar  = 500.0
	DefaultBias = 0.05
	DefaultSize = 1024
)

// FaceProjection returns the shared 90° square projection of every face.
func FaceProjection(near, far float32) math.Mat4 {
	return math.Perspective(math.Radians(90), 1, near, far)
}

// FaceView returns the view matrix of face i as seen from lightPos.
func FaceView(i int, lightPos math.Vec3) math.Mat4 {
	f := Faces[i]
	return math.LookAt(lightPos, lightPos.Add(f.Target), f.Up)
}

// FaceTransforms returns projection * view for all six faces.
func FaceTransforms(lightPos math.Vec3, near, far float32) [6]math.Mat4 {
	proj := FaceProjection(near, far)
	var out [6]math.Mat4
	for i := range Faces {
		out[i] = proj.Mul(FaceView(i, lightPos))
	}
	return out
}
