// Package mesh provides the vertex format shared by every pass and the
// indexed GPU mesh that draws it.
package mesh

import (
	"github.com/Faultbox/bounce/pkg/math"
)

// Vertex is the interleaved vertex layout: location 0 position, 1 normal,
// 2 texture coordinate.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Data is an indexed triangle list in model space.
type Data struct {
	Vertices []Vertex
	Indices  []uint32
}

// TriangleCount returns the number of indexed triangles.
func (d *Data) TriangleCount() int {
	return len(d.Indices) / 3
}

// Bounds returns the model-space bounding box as min and max corners.
func (d *Data) Bounds() (lo, hi math.Vec3) {
	if len(d.Vertices) == 0 {
		return lo, hi
	}
	lo = math.V3(d.Vertices[0].Position)
	hi = lo
	for _, v := range d.Vertices[1:] {
		p := math.V3(v.Position)
		lo = math.Vec3{X: min(lo.X, p.X), Y: min(lo.Y, p.Y), Z: min(lo.Z, p.Z)}
		hi = math.Vec3{X: max(hi.X, p.X), Y: max(hi.Y, p.Y), Z: max(hi.Z, p.Z)}
	}
	return lo, hi
}

// Unweld gives every triangle its own three vertices and sets each to the
// face normal. Used when a source mesh carries no normals.
func (d *Data) Unweld() {
	out := make([]Vertex, 0, len(d.Indices))
	indices := make([]uint32, 0, len(d.Indices))
	for t := 0; t+2 < len(d.Indices); t += 3 {
		a := d.Vertices[d.Indices[t]]
		b := d.Vertices[d.Indices[t+1]]
		c := d.Vertices[d.Indices[t+2]]

		pa, pb, pc := math.V3(a.Position), math.V3(b.Position), math.V3(c.Position)
		n := pb.Sub(pa).Cross(pc.Sub(pa)).Normalize().Array()
		a.Normal, b.Normal, c.Normal = n, n, n

		base := uint32(len(out))
		out = append(out, a, b, c)
		indices = append(indices, base, base+1, base+2)
	}
	d.Vertices = out
	d.Indices = indices
}

// SmoothNormals averages normals at shared vertex positions.
func (d *Data) SmoothNormals() {
	const epsilon float32 = 0.001

	// Group vertices by quantized position for O(n) lookup
	posMap := make(map[[3]int32][]int)
	for i := range d.Vertices {
		p := d.Vertices[i].Position
		key := [3]int32{int32(p[0] / epsilon), int32(p[1] / epsilon), int32(p[2] / epsilon)}
		posMap[key] = append(posMap[key], i)
	}

	for _, idxs := range posMap {
		if len(idxs) < 2 {
			continue
		}
		var sum math.Vec3
		for _, idx := range idxs {
			sum = sum.Add(math.V3(d.Vertices[idx].Normal))
		}
		avg := sum.Normalize().Array()
		for _, idx := range idxs {
			d.Vertices[idx].Normal = avg
		}
	}
}
