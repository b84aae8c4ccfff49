package viewer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/bounce/internal/config"
	"github.com/Faultbox/bounce/internal/controls"
	"github.com/Faultbox/bounce/internal/engine/raycast"
	"github.com/Faultbox/bounce/internal/engine/rsm"
	"github.com/Faultbox/bounce/internal/logger"
	"github.com/Faultbox/bounce/internal/scene"
)

// MaxSoftwareCaptureSize caps the software capture resolution; each texel
// is a ray cast.
const MaxSoftwareCaptureSize = 256

// Headless renders frames on the CPU with the same state, kernel and scene
// switch protocol as Viewer. Frames stay in memory.
type Headless struct {
	State   *State
	Surface *controls.Surface

	opts     Options
	provider scene.Provider
	samples  *rsm.SampleMap
	ref      rsm.Reference

	scene *scene.Scene
	geom  *raycast.BVH

	log *zap.Logger
}

// NewHeadless creates a software viewer.
func NewHeadless(cfg *config.Config, provider scene.Provider) *Headless {
	opts := OptionsFromConfig(cfg)
	opts.CaptureSize = min(opts.CaptureSize, MaxSoftwareCaptureSize)
	h := &Headless{
		State:    NewState(cfg),
		opts:     opts,
		provider: provider,
		samples:  rsm.NewSampleMap(opts.RandomSeed),
		ref:      rsm.Reference{Workers: opts.Workers},
		log:      logger.Named("viewer.headless"),
	}
	h.Surface = h.State.Surface(h.SwitchScene)
	return h
}

// SwitchScene loads a built-in scene and makes it active.
func (h *Headless) SwitchScene(id scene.ID) error {
	desc, err := scene.Lookup(id)
	if err != nil {
		return err
	}
	s, err := h.provider.Load(desc)
	if err != nil {
		return fmt.Errorf("switch to %s: %w", desc.Name, err)
	}
	h.Install(desc, s)
	return nil
}

// Install makes an already loaded scene active.
func (h *Headless) Install(desc scene.Descriptor, s *scene.Scene) {
	h.scene = s
	h.geom = s.Geometry()
	h.State.SwitchScene(desc)
	h.log.Info("scene active",
		zap.String("scene", desc.Name),
		zap.Int("triangles", h.geom.Len()))
}

// Frame steps the state, captures from the light and shades width x height
// pixels. It returns nil when no scene is active.
func (h *Headless) Frame(in FrameInput, width, height int) *rsm.Frame {
	h.State.Step(in)
	if h.scene == nil || width <= 0 || height <= 0 {
		return nil
	}

	st := h.State
	capture := h.ref.Capture(h.geom, st.Light, int(h.opts.CaptureSize),
		h.opts.CaptureNear, h.opts.CaptureFar, h.scene.BaseColorRGB)

	kernel := &rsm.Kernel{
		Light:    st.Light,
		Far:      h.opts.CaptureFar,
		Bias:     h.opts.ShadowBias,
		Samples:  h.samples,
		Tunables: st.Tunables,
	}
	viewProj := st.Camera.ViewProjection(float32(width) / float32(height))
	return h.ref.Render(h.geom, capture, kernel, viewProj, width, height, h.scene.BaseColorRGB)
}
