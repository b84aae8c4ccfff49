package raycast

import (
	gomath "math"
	"math/rand"
	"testing"

	"github.com/Faultbox/bounce/pkg/math"
)

func unitTriangle(z float32) Triangle {
	n := math.Vec3{Z: 1}
	return Triangle{
		V0: math.Vec3{X: -1, Y: -1, Z: z},
		V1: math.Vec3{X: 1, Y: -1, Z: z},
		V2: math.Vec3{X: -1, Y: 1, Z: z},
		N0: n, N1: n, N2: n,
		UV1: [2]float32{1, 0},
		UV2: [2]float32{0, 1},
	}
}

func TestTriangleIntersect(t *testing.T) {
	tri := unitTriangle(0)

	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		wantT float32
	}{
		{"straight on", Ray{Origin: math.Vec3{X: -0.5, Y: -0.5, Z: 5}, Direction: math.Vec3{Z: -1}}, true, 5},
		{"from behind", Ray{Origin: math.Vec3{X: -0.5, Y: -0.5, Z: -2}, Direction: math.Vec3{Z: 1}}, true, 2},
		{"outside", Ray{Origin: math.Vec3{X: 0.9, Y: 0.9, Z: 5}, Direction: math.Vec3{Z: -1}}, false, 0},
		{"parallel", Ray{Origin: math.Vec3{X: -5, Y: 0, Z: 0}, Direction: math.Vec3{X: 1}}, false, 0},
		{"pointing away", Ray{Origin: math.Vec3{X: -0.5, Y: -0.5, Z: 5}, Direction: math.Vec3{Z: 1}}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := tri.Intersect(tt.ray, 0, gomath.MaxFloat32)
			if ok != tt.hit {
				t.Fatalf("hit = %v, want %v", ok, tt.hit)
			}
			if ok && gomath.Abs(float64(h.T-tt.wantT)) > 1e-5 {
				t.Errorf("t = %v, want %v", h.T, tt.wantT)
			}
		})
	}
}

func TestTriangleInterpolatesUV(t *testing.T) {
	tri := unitTriangle(0)
	h, ok := tri.Intersect(Ray{Origin: math.Vec3{X: 0, Y: -1, Z: 1}, Direction: math.Vec3{Z: -1}}, 0, 10)
	if !ok {
		t.Fatal("expected hit on edge midpoint")
	}
	if gomath.Abs(float64(h.UV[0]-0.5)) > 1e-5 || gomath.Abs(float64(h.UV[1])) > 1e-5 {
		t.Errorf("uv = %v, want (0.5, 0)", h.UV)
	}
	if h.Normal != (math.Vec3{Z: 1}) {
		t.Errorf("normal = %v, want (0, 0, 1)", h.Normal)
	}
}

func TestAABBIntersect(t *testing.T) {
	box := AABB{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}

	if d, ok := box.Intersect(Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: -1}}, 0, 100); !ok || d != 4 {
		t.Errorf("outside ray: t = %v hit = %v, want 4 true", d, ok)
	}
	if d, ok := box.Intersect(Ray{Origin: math.Vec3{}, Direction: math.Vec3{X: 1}}, 0, 100); !ok || d != 1 {
		t.Errorf("inside ray: t = %v hit = %v, want exit 1", d, ok)
	}
	if _, ok := box.Intersect(Ray{Origin: math.Vec3{X: 5, Z: 5}, Direction: math.Vec3{Z: -1}}, 0, 100); ok {
		t.Error("miss reported as hit")
	}
	if _, ok := box.Intersect(Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: -1}}, 0, 3); ok {
		t.Error("hit beyond tMax reported")
	}
}

func TestScreenToRayCenter(t *testing.T) {
	eye := math.Vec3{Z: 5}
	view := math.LookAt(eye, math.Vec3{}, math.Vec3{Y: 1})
	proj := math.Perspective(math.Radians(60), 1, 0.1, 100)
	inv := proj.Mul(view).Inverse()

	r := ScreenToRay(50, 50, 100, 100, inv)
	if gomath.Abs(float64(r.Direction.Z+1)) > 1e-4 {
		t.Errorf("center ray direction = %v, want (0, 0, -1)", r.Direction)
	}
	if r.Origin.Distance(eye) > 0.2 {
		t.Errorf("center ray origin = %v, want near the eye", r.Origin)
	}
}

func randomTriangles(rng *rand.Rand, n int) []Triangle {
	tris := make([]Triangle, n)
	for i := range tris {
		c := math.Vec3{X: rng.Float32()*20 - 10, Y: rng.Float32()*20 - 10, Z: rng.Float32()*20 - 10}
		jitter := func() math.Vec3 {
			return math.Vec3{X: rng.Float32() - 0.5, Y: rng.Float32() - 0.5, Z: rng.Float32() - 0.5}
		}
		tris[i] = Triangle{V0: c.Add(jitter()), V1: c.Add(jitter()), V2: c.Add(jitter()), Material: i}
	}
	return tris
}

func TestBVHMatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tris := randomTriangles(rng, 500)
	bvh := NewBVH(tris)

	if bvh.Len() != 500 {
		t.Fatalf("Len = %d, want 500", bvh.Len())
	}

	for i := 0; i < 2000; i++ {
		r := Ray{
			Origin:    math.Vec3{X: rng.Float32()*30 - 15, Y: rng.Float32()*30 - 15, Z: rng.Float32()*30 - 15},
			Direction: math.Vec3{X: rng.Float32() - 0.5, Y: rng.Float32() - 0.5, Z: rng.Float32() - 0.5}.Normalize(),
		}
		want, wantOK := Nearest(tris, r, 1e-4)
		got, gotOK := bvh.Nearest(r, 1e-4)
		if wantOK != gotOK {
			t.Fatalf("ray %d: bvh hit = %v, linear hit = %v", i, gotOK, wantOK)
		}
		if wantOK && (got.Material != want.Material || got.T != want.T) {
			t.Fatalf("ray %d: bvh hit tri %d at %v, linear hit tri %d at %v", i, got.Material, got.T, want.Material, want.T)
		}
	}
}

func TestBVHEmpty(t *testing.T) {
	bvh := NewBVH(nil)
	if _, ok := bvh.Nearest(Ray{Direction: math.Vec3{Z: 1}}, 0); ok {
		t.Error("empty BVH reported a hit")
	}
	if !bvh.Bounds().Empty() {
		t.Error("empty BVH bounds should be empty")
	}
}
