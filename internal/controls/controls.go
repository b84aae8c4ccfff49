// Package controls is the control surface: named tunables with declared
// ranges, toggles, scene selection and the hotkey table the window viewer
// maps key presses through. Every value written here is clamped; nothing
// downstream re-validates.
package controls

import (
	"errors"
	"fmt"

	"github.com/Faultbox/bounce/internal/engine/lighting"
	"github.com/Faultbox/bounce/internal/engine/rsm"
	"github.com/Faultbox/bounce/internal/scene"
	"github.com/Faultbox/bounce/pkg/math"
)

// Control names.
const (
	SampleCount     = "sample_count"
	SampleRadius    = "sample_radius"
	DirectFactor    = "direct_factor"
	IndirectFactor  = "indirect_factor"
	LightIntensity  = "light_intensity"
	DisableDirect   = "disable_direct"
	DisableIndirect = "disable_indirect"
	CameraLocked    = "camera_locked"
)

// ErrUnknownControl is returned for names outside the control table.
var ErrUnknownControl = errors.New("controls: unknown control")

// Spec declares a numeric control's range and step.
type Spec struct {
	Name     string
	Label    string
	Min, Max float32
	Step     float32
	Integer  bool
}

// Clamp limits v to the declared range, rounding integer controls.
func (s Spec) Clamp(v float32) float32 {
	if v != v { // NaN
		v = s.Min
	}
	v = math.Clamp(v, s.Min, s.Max)
	if s.Integer {
		v = float32(int(v + 0.5))
	}
	return v
}

// Specs lists the numeric controls in panel order.
var Specs = []Spec{
	{Name: SampleCount, Label: "Sample Count", Min: 0, Max: rsm.MaxSamples, Step: 10, Integer: true},
	{Name: SampleRadius, Label: "Sample Radius", Min: 0, Max: 1.6, Step: 0.05},
	{Name: DirectFactor, Label: "Direct Light Factor", Min: 0, Max: 4, Step: 0.1},
	{Name: IndirectFactor, Label: "Indirect Light Factor", Min: 0, Max: 10, Step: 0.5},
	{Name: LightIntensity, Label: "Light Intensity", Min: 0, Max: 10, Step: 0.1},
}

// Lookup returns the spec of a numeric control.
func Lookup(name string) (Spec, bool) {
	for _, s := range Specs {
		if s.Name == name {
			return s, true
		}
	}
	return Spec{}, false
}

// Surface reads and writes the live renderer state. The pointers are owned
// by the viewer; SelectScene is called on the frame thread.
type Surface struct {
	Tunables *rsm.Tunables
	Light    *lighting.PointLight
	Locked   *bool

	// OnSelectScene performs the scene switch.
	OnSelectScene func(id scene.ID) error
}

func (s *Surface) field(name string) (*float32, error) {
	switch name {
	case SampleRadius:
		return &s.Tunables.SampleRadius, nil
	case DirectFactor:
		return &s.Tunables.DirectLightFactor, nil
	case IndirectFactor:
		return &s.Tunables.IndirectLightFactor, nil
	case LightIntensity:
		return &s.Light.Intensity, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownControl, name)
}

// Get returns the current value of a numeric control.
func (s *Surface) Get(name string) (float32, error) {
	if name == SampleCount {
		return float32(s.Tunables.SampleCount), nil
	}
	f, err := s.field(name)
	if err != nil {
		return 0, err
	}
	return *f, nil
}

// Set clamps v to the control's range, stores it and returns the stored value.
func (s *Surface) Set(name string, v float32) (float32, error) {
	spec, ok := Lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownControl, name)
	}
	v = spec.Clamp(v)
	if name == SampleCount {
		s.Tunables.SampleCount = int(v)
		return v, nil
	}
	f, err := s.field(name)
	if err != nil {
		return 0, err
	}
	*f = v
	return v, nil
}

// Step moves a control by n steps and returns the stored value.
func (s *Surface) Step(name string, n int) (float32, error) {
	spec, ok := Lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownControl, name)
	}
	cur, err := s.Get(name)
	if err != nil {
		return 0, err
	}
	return s.Set(name, cur+float32(n)*spec.Step)
}

func (s *Surface) flag(name string) (*bool, error) {
	switch name {
	case DisableDirect:
		return &s.Tunables.DisableDirect, nil
	case DisableIndirect:
		return &s.Tunables.DisableIndirect, nil
	case CameraLocked:
		if s.Locked == nil {
			return nil, fmt.Errorf("%w: %q not bound", ErrUnknownControl, name)
		}
		return s.Locked, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownControl, name)
}

// Toggle flips a boolean control and returns its new value.
func (s *Surface) Toggle(name string) (bool, error) {
	b, err := s.flag(name)
	if err != nil {
		return false, err
	}
	*b = !*b
	return *b, nil
}

// Flag returns the value of a boolean control.
func (s *Surface) Flag(name string) (bool, error) {
	b, err := s.flag(name)
	if err != nil {
		return false, err
	}
	return *b, nil
}

// SelectScene requests a switch to a built-in scene.
func (s *Surface) SelectScene(id scene.ID) error {
	if _, err := scene.Lookup(id); err != nil {
		return err
	}
	if s.OnSelectScene == nil {
		return nil
	}
	return s.OnSelectScene(id)
}

// MoveLight offsets the light position.
func (s *Surface) MoveLight(delta math.Vec3) {
	s.Light.Position = s.Light.Position.Add(delta)
}
