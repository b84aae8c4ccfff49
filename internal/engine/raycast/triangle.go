package raycast

import (
	"github.com/Faultbox/bounce/pkg/math"
)

// Triangle is a world-space triangle with per-vertex normals and texture
// coordinates. Material indexes the owning scene's material table.
type Triangle struct {
	V0, V1, V2    math.Vec3
	N0, N1, N2    math.Vec3
	UV0, UV1, UV2 [2]float32
	Material      int
}

// Hit describes a ray/triangle intersection.
type Hit struct {
	T        float32
	Point    math.Vec3
	Normal   math.Vec3 // interpolated, normalized
	UV       [2]float32
	Material int
}

// FaceNormal returns the geometric normal from the winding order.
func (tri *Triangle) FaceNormal() math.Vec3 {
	return tri.V1.Sub(tri.V0).Cross(tri.V2.Sub(tri.V0)).Normalize()
}

// Bounds returns the triangle's bounding box.
func (tri *Triangle) Bounds() AABB {
	return EmptyAABB().Extend(tri.V0).Extend(tri.V1).Extend(tri.V2)
}

// Intersect tests the ray against the triangle using the Möller-Trumbore
// algorithm. Both faces are hit.
func (tri *Triangle) Intersect(r Ray, tMin, tMax float32) (Hit, bool) {
	const epsilon = 1e-8

	edge1 := tri.V1.Sub(tri.V0)
	edge2 := tri.V2.Sub(tri.V0)

	h := r.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray lies in the triangle's plane
	if a > -epsilon && a < epsilon {
		return Hit{}, false
	}

	f := 1 / a
	s := r.Origin.Sub(tri.V0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return Hit{}, false
	}

	q := s.Cross(edge1)
	v := f * r.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return Hit{}, false
	}

	t := f * edge2.Dot(q)
	if t < tMin || t > tMax {
		return Hit{}, false
	}

	w := 1 - u - v
	n := tri.N0.Scale(w).Add(tri.N1.Scale(u)).Add(tri.N2.Scale(v)).Normalize()
	if n == (math.Vec3{}) {
		n = tri.FaceNormal()
	}

	return Hit{
		T:      t,
		Point:  r.At(t),
		Normal: n,
		UV: [2]float32{
			w*tri.UV0[0] + u*tri.UV1[0] + v*tri.UV2[0],
			w*tri.UV0[1] + u*tri.UV1[1] + v*tri.UV2[1],
		},
		Material: tri.Material,
	}, true
}
