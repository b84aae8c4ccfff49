package scene

import (
	"fmt"
	"strings"

	"github.com/Faultbox/bounce/internal/engine/camera"
	"github.com/Faultbox/bounce/pkg/math"
)

// ID identifies a built-in scene.
type ID int

const (
	CornellBox ID = iota
	FlightHelmet
	// Custom is a scene opened from an arbitrary path.
	Custom
)

// String returns the scene's config name.
func (id ID) String() string {
	switch id {
	case CornellBox:
		return "cornell_box"
	case FlightHelmet:
		return "flight_helmet"
	case Custom:
		return "custom"
	default:
		return fmt.Sprintf("ID(%d)", int(id))
	}
}

// Descriptor pairs an asset with the camera pose and light position set
// when the scene becomes active.
type Descriptor struct {
	ID                   ID
	Name                 string
	AssetPath            string // relative to the data directory unless absolute
	DefaultFocus         math.Vec3
	DefaultOffset        camera.Sphere
	DefaultLightPosition math.Vec3
}

var descriptors = []Descriptor{
	{
		ID:                   CornellBox,
		Name:                 "Cornell Box",
		AssetPath:            "cornell_box/scene.gltf",
		DefaultFocus:         math.Vec3{X: 0, Y: 1, Z: 0},
		DefaultOffset:        camera.Sphere{Theta: math.HalfPi, Phi: 0, Radius: 5},
		DefaultLightPosition: math.Vec3{X: 0, Y: 1.8, Z: 0},
	},
	{
		ID:                   FlightHelmet,
		Name:                 "Flight Helmet",
		AssetPath:            "FlightHelmet/FlightHelmet.gltf",
		DefaultFocus:         math.Vec3{X: 0, Y: 0.3, Z: 0},
		DefaultOffset:        camera.Sphere{Theta: math.HalfPi, Phi: 0, Radius: 1.2},
		DefaultLightPosition: math.Vec3{X: 0.5, Y: 0.8, Z: 0.5},
	},
}

// IDs lists the built-in scenes in hotkey order.
func IDs() []ID {
	ids := make([]ID, len(descriptors))
	for i, d := range descriptors {
		ids[i] = d.ID
	}
	return ids
}

// Lookup returns the descriptor of a built-in scene.
func Lookup(id ID) (Descriptor, error) {
	for _, d := range descriptors {
		if d.ID == id {
			return d, nil
		}
	}
	return Descriptor{}, fmt.Errorf("%w: %v", ErrUnknownScene, id)
}

// ParseID maps a config name ("cornell_box", "flight_helmet") to an ID.
func ParseID(name string) (ID, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer("-", "_", " ", "_").Replace(n)
	for _, d := range descriptors {
		if d.ID.String() == n {
			return d.ID, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// CustomDescriptor frames an already loaded scene: focus at the bounds
// center, radius twice the bounds diagonal, light above the center.
func CustomDescriptor(path string, s *Scene) Descriptor {
	box := s.Bounds()
	center := box.Center()
	extent := box.Max.Distance(box.Min)
	if extent <= 0 {
		extent = 1
	}
	return Descriptor{
		ID:                   Custom,
		Name:                 s.Name,
		AssetPath:            path,
		DefaultFocus:         center,
		DefaultOffset:        camera.Sphere{Theta: math.HalfPi, Phi: 0.3, Radius: extent * 2},
		DefaultLightPosition: center.Add(math.Vec3{Y: extent * 0.4}),
	}
}
