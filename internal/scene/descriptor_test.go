package scene

import (
	"errors"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/Faultbox/bounce/pkg/math"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		want    ID
		wantErr bool
	}{
		{"cornell_box", CornellBox, false},
		{"Cornell Box", CornellBox, false},
		{"flight-helmet", FlightHelmet, false},
		{"sponza", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseID(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownScene) {
					t.Errorf("err = %v, want ErrUnknownScene", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseID(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestLookupCornellBox(t *testing.T) {
	d, err := Lookup(CornellBox)
	if err != nil {
		t.Fatal(err)
	}
	if d.AssetPath != "cornell_box/scene.gltf" {
		t.Errorf("AssetPath = %q", d.AssetPath)
	}
	if d.DefaultFocus != (math.Vec3{X: 0, Y: 1, Z: 0}) {
		t.Errorf("DefaultFocus = %+v", d.DefaultFocus)
	}
	if d.DefaultOffset.Radius != 5 || d.DefaultOffset.Phi != 0 || d.DefaultOffset.Theta != math.HalfPi {
		t.Errorf("DefaultOffset = %+v", d.DefaultOffset)
	}
	if d.DefaultLightPosition != (math.Vec3{X: 0, Y: 1.8, Z: 0}) {
		t.Errorf("DefaultLightPosition = %+v", d.DefaultLightPosition)
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup(Custom); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("err = %v, want ErrUnknownScene", err)
	}
}

func TestIDsRoundTrip(t *testing.T) {
	ids := IDs()
	if len(ids) != 2 || ids[0] != CornellBox {
		t.Fatalf("IDs = %v", ids)
	}
	for _, id := range ids {
		got, err := ParseID(id.String())
		if err != nil || got != id {
			t.Errorf("ParseID(%q) = %v, %v", id.String(), got, err)
		}
	}
}

func TestCustomDescriptorFramesBounds(t *testing.T) {
	doc := gltf.NewDocument()
	m := addQuad(doc, true, nil)
	doc.Scenes[0].Nodes = []int{addNode(doc, &gltf.Node{Mesh: gltf.Index(m)})}
	s, err := FromDocument(doc, "")
	if err != nil {
		t.Fatal(err)
	}

	d := CustomDescriptor("quad.gltf", s)
	if d.ID != Custom {
		t.Errorf("ID = %v, want Custom", d.ID)
	}
	if !near(d.DefaultFocus.X, 0.5) || !near(d.DefaultFocus.Z, 0.5) {
		t.Errorf("DefaultFocus = %+v, want quad center", d.DefaultFocus)
	}
	if d.DefaultOffset.Radius <= 0 {
		t.Errorf("radius = %v, want > 0", d.DefaultOffset.Radius)
	}
	if d.DefaultLightPosition.Y <= d.DefaultFocus.Y {
		t.Errorf("light %+v should sit above focus %+v", d.DefaultLightPosition, d.DefaultFocus)
	}
}
