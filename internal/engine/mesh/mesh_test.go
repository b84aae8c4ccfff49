package mesh

import (
	"testing"

	"github.com/Faultbox/bounce/pkg/math"
)

func quadData() *Data {
	return &Data{
		Vertices: []Vertex{
			{Position: [3]float32{0, 0, 0}},
			{Position: [3]float32{1, 0, 0}},
			{Position: [3]float32{1, 0, -1}},
			{Position: [3]float32{0, 0, -1}},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

func TestUnwelds(t *testing.T) {
	d := quadData()
	d.Unweld()

	if len(d.Vertices) != 6 || d.TriangleCount() != 2 {
		t.Fatalf("got %d vertices, %d triangles; want 6, 2", len(d.Vertices), d.TriangleCount())
	}
	for i, v := range d.Vertices {
		if v.Normal != [3]float32{0, 1, 0} {
			t.Errorf("vertex %d normal = %v, want (0, 1, 0)", i, v.Normal)
		}
	}
}

func TestSmoothNormals(t *testing.T) {
	d := &Data{Vertices: []Vertex{
		{Position: [3]float32{0, 0, 0}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{0, 0, 0}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{5, 0, 0}, Normal: [3]float32{0, 0, 1}},
	}}
	d.SmoothNormals()

	want := math.Vec3{X: 1, Y: 1}.Normalize().Array()
	if d.Vertices[0].Normal != want || d.Vertices[1].Normal != want {
		t.Errorf("shared normals = %v, %v; want %v", d.Vertices[0].Normal, d.Vertices[1].Normal, want)
	}
	if d.Vertices[2].Normal != [3]float32{0, 0, 1} {
		t.Errorf("lone vertex normal changed to %v", d.Vertices[2].Normal)
	}
}

func TestBounds(t *testing.T) {
	lo, hi := quadData().Bounds()
	if lo != (math.Vec3{X: 0, Y: 0, Z: -1}) || hi != (math.Vec3{X: 1, Y: 0, Z: 0}) {
		t.Errorf("bounds = %v %v", lo, hi)
	}
}
