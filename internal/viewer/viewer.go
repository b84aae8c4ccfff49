package viewer

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/bounce/internal/config"
	"github.com/Faultbox/bounce/internal/controls"
	"github.com/Faultbox/bounce/internal/engine/framebuffer"
	"github.com/Faultbox/bounce/internal/engine/rsm"
	"github.com/Faultbox/bounce/internal/logger"
	"github.com/Faultbox/bounce/internal/scene"
)

// ErrCustomScene wraps load failures of a scene file opened at runtime.
var ErrCustomScene = errors.New("viewer: cannot open scene file")

// Fatal reports whether a scene switch error must end the program. A
// registered scene that cannot be loaded and capture targets the driver
// rejects are setup failures; only a runtime-opened file that does not load
// leaves the viewer running with its previous scene.
func Fatal(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, rsm.ErrFramebufferIncomplete) {
		return true
	}
	return !errors.Is(err, ErrCustomScene)
}

// Viewer is the GL renderer. Every method must run on the thread that owns
// the GL context.
type Viewer struct {
	State   *State
	Surface *controls.Surface

	opts     Options
	provider scene.Provider

	scene   *scene.Scene
	gpu     *scene.GPUScene
	targets *rsm.CaptureTargets
	capture *rsm.CaptureStage
	shading *rsm.ShadingStage

	fps fpsCounter
	log *zap.Logger
}

// New compiles the stages and allocates capture targets. Errors are fatal
// configuration errors; nothing is left allocated when New fails.
func New(cfg *config.Config, provider scene.Provider) (*Viewer, error) {
	v := &Viewer{
		State:    NewState(cfg),
		opts:     OptionsFromConfig(cfg),
		provider: provider,
		log:      logger.Named("viewer"),
	}
	v.Surface = v.State.Surface(v.SwitchScene)

	var err error
	v.capture, err = rsm.NewCaptureStage(v.opts.CaptureNear, v.opts.CaptureFar, logger.Named("rsm.capture"))
	if err != nil {
		return nil, err
	}
	samples := rsm.NewSampleMap(v.opts.RandomSeed)
	v.shading, err = rsm.NewShadingStage(v.opts.CaptureFar, v.opts.ShadowBias, samples, logger.Named("rsm.shading"))
	if err != nil {
		v.capture.Release()
		return nil, err
	}
	v.targets, err = rsm.NewCaptureTargets(v.opts.CaptureSize)
	if err != nil {
		v.shading.Release()
		v.capture.Release()
		return nil, err
	}

	v.log.Info("renderer ready",
		zap.Int32("captureSize", v.opts.CaptureSize),
		zap.Float32("captureFar", v.opts.CaptureFar),
		zap.Int64("seed", v.opts.RandomSeed))
	return v, nil
}

// SwitchScene loads a built-in scene and makes it active.
func (v *Viewer) SwitchScene(id scene.ID) error {
	desc, err := scene.Lookup(id)
	if err != nil {
		return err
	}
	s, err := v.provider.Load(desc)
	if err != nil {
		return fmt.Errorf("switch to %s: %w", desc.Name, err)
	}
	return v.install(desc, s)
}

// OpenFile loads an arbitrary glTF file and frames it.
func (v *Viewer) OpenFile(path string) error {
	s, err := scene.Load(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCustomScene, err)
	}
	return v.install(scene.CustomDescriptor(path, s), s)
}

// install uploads s, releases the previous scene, recreates the capture
// targets and resets light and camera. The switch completes before the next
// frame's capture.
func (v *Viewer) install(desc scene.Descriptor, s *scene.Scene) error {
	targets, err := rsm.NewCaptureTargets(v.opts.CaptureSize)
	if err != nil {
		return err
	}
	gpu := scene.Upload(s)

	if v.gpu != nil {
		v.gpu.Release()
	}
	v.targets.Release()
	v.scene, v.gpu, v.targets = s, gpu, targets

	v.State.SwitchScene(desc)
	v.log.Info("scene active",
		zap.String("scene", desc.Name),
		zap.Int("triangles", s.TriangleCount()))
	return nil
}

// Scene returns the active scene, nil before the first switch.
func (v *Viewer) Scene() *scene.Scene {
	return v.scene
}

// Frame steps the state and renders capture then shading. target nil means
// the default framebuffer at width x height; otherwise the target's size wins.
func (v *Viewer) Frame(in FrameInput, target *framebuffer.Framebuffer, width, height int32) {
	v.State.Step(in)
	if fps, ok := v.fps.tick(in.Dt); ok {
		v.log.Debug("frame", zap.Float32("fps", fps), zap.Int("samples", v.State.Tunables.SampleCount))
	}

	if v.gpu != nil {
		v.capture.Render(v.State.Light, v.targets, v.gpu)
	}

	if target != nil {
		target.Bind()
		width, height = target.Size()
	} else {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.Viewport(0, 0, width, height)
	}
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if v.gpu == nil || width <= 0 || height <= 0 {
		return
	}
	aspect := float32(width) / float32(height)
	cam := v.State.Camera
	view := rsm.View{
		View:       cam.ViewMatrix(),
		Projection: cam.ProjectionMatrix(aspect),
		Eye:        cam.Position(),
	}
	v.shading.Render(view, v.State.Light, v.targets, v.State.Tunables, v.gpu)

	if target != nil {
		target.Unbind()
	}
}

// Close releases every GL resource.
func (v *Viewer) Close() {
	if v.gpu != nil {
		v.gpu.Release()
		v.gpu = nil
	}
	v.targets.Release()
	v.shading.Release()
	v.capture.Release()
}
