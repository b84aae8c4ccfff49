// Package viewer runs the per-frame loop: camera update, capture pass,
// shading pass. State is shared by the GL viewer and the software one.
package viewer

import (
	"github.com/Faultbox/bounce/internal/config"
	"github.com/Faultbox/bounce/internal/controls"
	"github.com/Faultbox/bounce/internal/engine/camera"
	"github.com/Faultbox/bounce/internal/engine/lighting"
	"github.com/Faultbox/bounce/internal/engine/rsm"
	"github.com/Faultbox/bounce/internal/scene"
	"github.com/Faultbox/bounce/pkg/math"
)

// FrameInput is the input gathered since the previous frame.
type FrameInput struct {
	Dt             float32 // seconds
	DragDX, DragDY float32 // pointer delta while the rotate button is held
	Scroll         float32
	Keys           camera.KeyState
}

// State is everything a frame reads that outlives the frame.
type State struct {
	Camera       *camera.OrbitCamera
	Tunables     rsm.Tunables
	Light        lighting.PointLight
	Active       scene.Descriptor
	CameraLocked bool
}

// NewCamera builds an orbit camera from config.
func NewCamera(cfg config.CameraConfig) *camera.OrbitCamera {
	cam := camera.NewOrbitCamera()
	cam.FovY = math.Radians(cfg.FovYDeg)
	cam.ZNear = cfg.ZNear
	cam.ZFar = cfg.ZFar
	cam.MoveSpeed = cfg.MoveSpeed
	cam.RotateSpeed = cfg.RotateSpeed
	cam.ScrollSpeed = cfg.ScrollSpeed
	cam.JumpSpeed = cfg.JumpSpeed
	cam.MinRadius = cfg.MinRadius
	cam.FrameRateIndependent = cfg.FrameRateIndependent
	return cam
}

// NewState builds the starting state. No scene is active until SwitchScene.
func NewState(cfg *config.Config) *State {
	r := cfg.Render
	c := cfg.Scene.LightColor
	return &State{
		Camera: NewCamera(cfg.Camera),
		Tunables: rsm.Tunables{
			SampleCount:         int(clampControl(controls.SampleCount, float32(r.SampleCount))),
			SampleRadius:        clampControl(controls.SampleRadius, r.SampleRadius),
			DirectLightFactor:   clampControl(controls.DirectFactor, r.DirectFactor),
			IndirectLightFactor: clampControl(controls.IndirectFactor, r.IndirectFactor),
			DisableDirect:       r.DisableDirect,
			DisableIndirect:     r.DisableIndirect,
		},
		Light: lighting.PointLight{
			Color:     math.Vec3{X: c[0], Y: c[1], Z: c[2]},
			Intensity: clampControl(controls.LightIntensity, cfg.Scene.LightIntensity),
		},
	}
}

// clampControl limits a configured starting value to the control's range,
// the same range the panel and hotkeys enforce.
func clampControl(name string, v float32) float32 {
	spec, ok := controls.Lookup(name)
	if !ok {
		return v
	}
	return spec.Clamp(v)
}

// SwitchScene moves the light to the scene's default and jumps the camera
// to its default pose. Tunables are left alone.
func (s *State) SwitchScene(desc scene.Descriptor) {
	s.Active = desc
	s.Light.Position = desc.DefaultLightPosition
	s.Camera.Jump(desc.DefaultFocus, desc.DefaultOffset)
}

// Step applies one frame of input and eases the camera. Input is ignored
// while the camera is locked.
func (s *State) Step(in FrameInput) {
	cam := s.Camera
	cam.Enabled = !s.CameraLocked
	if in.DragDX != 0 || in.DragDY != 0 {
		cam.Rotate(in.DragDX, in.DragDY)
	}
	if in.Scroll != 0 {
		cam.Scroll(in.Scroll)
	}
	if d := camera.MoveDelta(in.Keys); d != (math.Vec3{}) {
		cam.Pan(d, in.Dt)
	}
	cam.Update(in.Dt)
}

// Store writes the live tunables and light intensity back into cfg so they
// become the next run's starting values. A custom scene is not recorded as
// the initial scene.
func (s *State) Store(cfg *config.Config) {
	t := s.Tunables
	cfg.Render.SampleCount = t.SampleCount
	cfg.Render.SampleRadius = t.SampleRadius
	cfg.Render.DirectFactor = t.DirectLightFactor
	cfg.Render.IndirectFactor = t.IndirectLightFactor
	cfg.Render.DisableDirect = t.DisableDirect
	cfg.Render.DisableIndirect = t.DisableIndirect
	cfg.Scene.LightIntensity = s.Light.Intensity
	if s.Active.ID != scene.Custom {
		cfg.Scene.Initial = s.Active.ID.String()
	}
}

// Surface binds a control surface to this state. onSelect performs scene
// switches requested through it.
func (s *State) Surface(onSelect func(scene.ID) error) *controls.Surface {
	return &controls.Surface{
		Tunables:      &s.Tunables,
		Light:         &s.Light,
		Locked:        &s.CameraLocked,
		OnSelectScene: onSelect,
	}
}

// Options are the fixed renderer settings.
type Options struct {
	CaptureSize int32
	CaptureNear float32
	CaptureFar  float32
	ShadowBias  float32
	RandomSeed  int64
	Workers     int
}

// OptionsFromConfig extracts the renderer settings from cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	r := cfg.Render
	return Options{
		CaptureSize: int32(r.ShadowSize),
		CaptureNear: r.CaptureNear,
		CaptureFar:  r.CaptureFar,
		ShadowBias:  r.ShadowBias,
		RandomSeed:  r.RandomSeed,
		Workers:     r.Workers,
	}
}

// fpsCounter reports the frame rate at most once per second.
type fpsCounter struct {
	frames  int
	elapsed float32
}

// tick adds one frame and returns the rate when a second has passed.
func (f *fpsCounter) tick(dt float32) (fps float32, ok bool) {
	f.frames++
	f.elapsed += dt
	if f.elapsed < 1 {
		return 0, false
	}
	fps = float32(f.frames) / f.elapsed
	f.frames, f.elapsed = 0, 0
	return fps, true
}
