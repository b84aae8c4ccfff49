package controls

import (
	"github.com/Faultbox/bounce/internal/scene"
	"github.com/Faultbox/bounce/pkg/math"
)

// LightStep is how far one key press moves the light.
const LightStep = 0.1

// Hotkey binds a key, by its SDL key name, to a control action.
type Hotkey struct {
	Key  string
	Help string
	Run  func(s *Surface) error
}

func step(name string, n int) func(*Surface) error {
	return func(s *Surface) error {
		_, err := s.Step(name, n)
		return err
	}
}

func toggle(name string) func(*Surface) error {
	return func(s *Surface) error {
		_, err := s.Toggle(name)
		return err
	}
}

func selectScene(id scene.ID) func(*Surface) error {
	return func(s *Surface) error {
		return s.SelectScene(id)
	}
}

func moveLight(x, y, z float32) func(*Surface) error {
	return func(s *Surface) error {
		s.MoveLight(math.Vec3{X: x, Y: y, Z: z}.Scale(LightStep))
		return nil
	}
}

// Hotkeys is the window viewer's key map.
var Hotkeys = []Hotkey{
	{Key: "1", Help: "Cornell box", Run: selectScene(scene.CornellBox)},
	{Key: "2", Help: "Flight helmet", Run: selectScene(scene.FlightHelmet)},
	{Key: "[", Help: "fewer samples", Run: step(SampleCount, -1)},
	{Key: "]", Help: "more samples", Run: step(SampleCount, 1)},
	{Key: "-", Help: "smaller sample radius", Run: step(SampleRadius, -1)},
	{Key: "=", Help: "larger sample radius", Run: step(SampleRadius, 1)},
	{Key: "F1", Help: "toggle direct light", Run: toggle(DisableDirect)},
	{Key: "F2", Help: "toggle indirect light", Run: toggle(DisableIndirect)},
	{Key: "L", Help: "lock camera", Run: toggle(CameraLocked)},
	{Key: "Left", Help: "light -X", Run: moveLight(-1, 0, 0)},
	{Key: "Right", Help: "light +X", Run: moveLight(1, 0, 0)},
	{Key: "Up", Help: "light -Z", Run: moveLight(0, 0, -1)},
	{Key: "Down", Help: "light +Z", Run: moveLight(0, 0, 1)},
	{Key: "PageUp", Help: "light +Y", Run: moveLight(0, 1, 0)},
	{Key: "PageDown", Help: "light -Y", Run: moveLight(0, -1, 0)},
}

// HandleKey runs the hotkey bound to key. handled is false for unbound keys.
func (s *Surface) HandleKey(key string) (handled bool, err error) {
	for _, h := range Hotkeys {
		if h.Key == key {
			return true, h.Run(s)
		}
	}
	return false, nil
}
