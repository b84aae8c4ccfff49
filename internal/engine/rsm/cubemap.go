package rsm

import (
	"github.com/Faultbox/bounce/pkg/math"
)

// Texel is one capture sample: linear depth (distance / far), world-space
// surface normal and reflected flux.
type Texel struct {
	Depth  float32
	Normal math.Vec3
	Flux   math.Vec3
}

// Sampler looks up capture data by direction from the light.
type Sampler interface {
	Sample(dir math.Vec3) Texel
}

// Cubemap is an in-memory capture target with GL cube face addressing.
type Cubemap struct {
	Size  int
	Faces [6][]Texel
}

// NewCubemap creates a cubemap cleared to the capture pass's clear values:
// depth 1 (the far plane), zero normal and zero flux.
func NewCubemap(size int) *Cubemap {
	c := &Cubemap{Size: size}
	for i := range c.Faces {
		c.Faces[i] = make([]Texel, size*size)
		for j := range c.Faces[i] {
			c.Faces[i][j].Depth = 1
		}
	}
	return c
}

// FaceCoords returns the face a direction selects and the face-local
// coordinates in [-1, 1], following the GL cube map selection rules.
func FaceCoords(dir math.Vec3) (face int, sc, tc float32) {
	ax, ay, az := math.Abs(dir.X), math.Abs(dir.Y), math.Abs(dir.Z)

	var ma float32
	switch {
	case ax >= ay && ax >= az:
		ma = ax
		if dir.X > 0 {
			face, sc, tc = 0, -dir.Z, -dir.Y
		} else {
			face, sc, tc = 1, dir.Z, -dir.Y
		}
	case ay >= az:
		ma = ay
		if dir.Y > 0 {
			face, sc, tc = 2, dir.X, dir.Z
		} else {
			face, sc, tc = 3, dir.X, -dir.Z
		}
	default:
		ma = az
		if dir.Z > 0 {
			face, sc, tc = 4, dir.X, -dir.Y
		} else {
			face, sc, tc = 5, -dir.X, -dir.Y
		}
	}

	if ma == 0 {
		return 0, 0, 0
	}
	return face, sc / ma, tc / ma
}

// DirectionToTexel returns the face and texel a direction samples.
func (c *Cubemap) DirectionToTexel(dir math.Vec3) (face, x, y int) {
	face, sc, tc := FaceCoords(dir)
	x = c.coord(sc)
	y = c.coord(tc)
	return face, x, y
}

func (c *Cubemap) coord(s float32) int {
	i := int((s + 1) / 2 * float32(c.Size))
	if i < 0 {
		return 0
	}
	if i >= c.Size {
		return c.Size - 1
	}
	return i
}

// TexelDirection returns the (unnormalized) direction through the center
// of texel (x, y) on face.
func (c *Cubemap) TexelDirection(face, x, y int) math.Vec3 {
	sc := 2*(float32(x)+0.5)/float32(c.Size) - 1
	tc := 2*(float32(y)+0.5)/float32(c.Size) - 1

	switch face {
	case 0:
		return math.Vec3{X: 1, Y: -tc, Z: -sc}
	case 1:
		return math.Vec3{X: -1, Y: -tc, Z: sc}
	case 2:
		return math.Vec3{X: sc, Y: 1, Z: tc}
	case 3:
		return math.Vec3{X: sc, Y: -1, Z: -tc}
	case 4:
		return math.Vec3{X: sc, Y: -tc, Z: 1}
	default:
		return math.Vec3{X: -sc, Y: -tc, Z: -1}
	}
}

// At returns the texel at (x, y) on face.
func (c *Cubemap) At(face, x, y int) Texel {
	return c.Faces[face][y*c.Size+x]
}

// Set stores a texel at (x, y) on face.
func (c *Cubemap) Set(face, x, y int, t Texel) {
	c.Faces[face][y*c.Size+x] = t
}

// Sample returns the nearest texel along dir.
func (c *Cubemap) Sample(dir math.Vec3) Texel {
	face, x, y := c.DirectionToTexel(dir)
	return c.At(face, x, y)
}
