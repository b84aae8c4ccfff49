package scene

import (
	"path/filepath"
	"testing"

	"github.com/Faultbox/bounce/internal/engine/raycast"
	"github.com/Faultbox/bounce/pkg/math"
)

func TestCornellBoxDocument(t *testing.T) {
	s, err := FromDocument(CornellBoxDocument(), "")
	if err != nil {
		t.Fatalf("FromDocument: %v", err)
	}
	if len(s.Draws) != 5 || len(s.Materials) != 3 {
		t.Fatalf("got %d draws, %d materials; want 5, 3", len(s.Draws), len(s.Materials))
	}
	// Room: 3 + 1 + 1 quads; blocks: 5 quads each.
	if got := s.TriangleCount(); got != 2*(5+5+5) {
		t.Errorf("TriangleCount() = %d, want 30", got)
	}

	box := s.Bounds()
	if !near(box.Min.X, -1) || !near(box.Min.Y, 0) || !near(box.Min.Z, -1) ||
		!near(box.Max.X, 1) || !near(box.Max.Y, 2) || !near(box.Max.Z, 1) {
		t.Errorf("bounds = %v..%v, want (-1,0,-1)..(1,2,1)", box.Min, box.Max)
	}
}

func TestCornellBoxWindingMatchesNormals(t *testing.T) {
	s, err := FromDocument(CornellBoxDocument(), "")
	if err != nil {
		t.Fatalf("FromDocument: %v", err)
	}
	for i, tri := range s.Triangles() {
		if tri.FaceNormal().Dot(tri.N0) < 0.99 {
			t.Errorf("triangle %d: face normal %v disagrees with vertex normal %v", i, tri.FaceNormal(), tri.N0)
		}
	}
}

func TestCornellBoxWalls(t *testing.T) {
	s, err := FromDocument(CornellBoxDocument(), "")
	if err != nil {
		t.Fatalf("FromDocument: %v", err)
	}
	geom := s.Geometry()

	// Above both blocks, so the rays reach the walls.
	origin := math.Vec3{X: 0, Y: 1.5, Z: 0}
	tests := []struct {
		name string
		dir  math.Vec3
		want string
	}{
		{"left", math.Vec3{X: -1}, "red"},
		{"right", math.Vec3{X: 1}, "green"},
		{"back", math.Vec3{Z: -1}, "white"},
		{"ceiling", math.Vec3{Y: 1}, "white"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := geom.Nearest(raycast.Ray{Origin: origin, Direction: tt.dir}, 1e-4)
			if !ok {
				t.Fatal("ray missed the room")
			}
			if !near(hit.T, 1) && tt.name != "ceiling" {
				t.Errorf("hit at t=%v, want 1", hit.T)
			}
			if got := s.Materials[hit.Material].Name; got != tt.want {
				t.Errorf("hit material %q, want %q", got, tt.want)
			}
			if hit.Normal.Dot(tt.dir) >= 0 {
				t.Errorf("wall normal %v faces away from the room", hit.Normal)
			}
		})
	}

	// The front is open.
	if _, ok := geom.Nearest(raycast.Ray{Origin: origin, Direction: math.Vec3{Z: 1}}, 1e-4); ok {
		t.Error("ray towards +Z hit geometry, want open front")
	}
}

func TestFileProviderFallsBackToBuiltinCornellBox(t *testing.T) {
	p := &FileProvider{DataDir: filepath.Join(t.TempDir(), "empty")}

	desc, err := Lookup(CornellBox)
	if err != nil {
		t.Fatal(err)
	}
	s, err := p.Load(desc)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Name != desc.Name || len(s.Draws) != 5 {
		t.Errorf("got scene %q with %d draws, want built-in %q", s.Name, len(s.Draws), desc.Name)
	}

	helmet, err := Lookup(FlightHelmet)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Load(helmet); err == nil {
		t.Error("missing flight helmet asset loaded without error")
	}
}

func TestCornellBoxBlocksAreTurned(t *testing.T) {
	doc := CornellBoxDocument()
	want := map[string]float32{"short_block": -17, "tall_block": 17}
	for _, n := range doc.Nodes {
		yaw, ok := want[n.Name]
		if !ok {
			continue
		}
		delete(want, n.Name)
		half := math.Radians(yaw) / 2
		r := n.Rotation
		if !near(float32(r[0]), 0) || !near(float32(r[1]), math.Sin(half)) ||
			!near(float32(r[2]), 0) || !near(float32(r[3]), math.Cos(half)) {
			t.Errorf("%s rotation = %v, want %v degrees about +Y", n.Name, r, yaw)
		}
	}
	if len(want) != 0 {
		t.Errorf("missing block nodes: %v", want)
	}
}
