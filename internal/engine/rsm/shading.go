package rsm

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/bounce/internal/engine/lighting"
	"github.com/Faultbox/bounce/internal/engine/rsm/shaders"
	"github.com/Faultbox/bounce/internal/engine/shader"
	"github.com/Faultbox/bounce/internal/engine/texture"
	"github.com/Faultbox/bounce/internal/scene"
	"github.com/Faultbox/bounce/pkg/math"
)

// Shading texture units. 0-2 are the capture targets.
const (
	randomMapUnit      = 3
	shadeBaseColorUnit = 4
)

// View is the camera state the shading pass needs for one frame.
type View struct {
	View       math.Mat4
	Projection math.Mat4
	Eye        math.Vec3
}

// ShadingStage draws the scene from the camera, lighting each fragment with
// the shadow-tested point light and the one-bounce gather over the capture.
type ShadingStage struct {
	Far  float32
	Bias float32

	program   *shader.Program
	randomMap *texture.Texture2D
	log       *zap.Logger
}

// NewShadingStage compiles the shading program and uploads the sample pattern.
func NewShadingStage(far, bias float32, samples *SampleMap, log *zap.Logger) (*ShadingStage, error) {
	id, err := shader.CompileProgram(shaders.ShadeVertexShader, shaders.ShadeFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("shading program: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &ShadingStage{
		Far:       far,
		Bias:      bias,
		program:   shader.NewProgram(id),
		randomMap: texture.FromRG32F(samples.Texels(), int32(len(samples.Raw)), 1),
		log:       log,
	}
	log.Debug("shading program linked", zap.Uint32("program", id), zap.Int("samples", len(samples.Raw)))
	return s, nil
}

// Render draws into the currently bound framebuffer. The caller sets the
// viewport and clears.
func (s *ShadingStage) Render(view View, light lighting.PointLight, targets *CaptureTargets, tun Tunables, gpu *scene.GPUScene) {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)

	p := s.program
	p.Use()
	p.SetMat4("view", view.View)
	p.SetMat4("projection", view.Projection)
	p.SetVec3("viewPos", view.Eye)

	p.SetVec3("lightPos", light.Position)
	p.SetVec3("lightColor", light.Radiance())
	p.SetFloat("far_plane", s.Far)
	p.SetFloat("shadowBias", s.Bias)

	p.SetInt("sampleCount", int32(tun.SampleCount))
	p.SetFloat("sampleRadius", tun.SampleRadius)
	p.SetFloat("directFactor", tun.DirectLightFactor)
	p.SetFloat("indirectFactor", tun.IndirectLightFactor)
	p.SetBool("disableDirect", tun.DisableDirect)
	p.SetBool("disableIndirect", tun.DisableIndirect)

	targets.Bind()
	p.SetInt("depthMap", 0)
	p.SetInt("normalMap", 1)
	p.SetInt("fluxMap", 2)
	s.randomMap.Bind(randomMapUnit)
	p.SetInt("randomMap", randomMapUnit)
	p.SetInt("baseColorTexture", shadeBaseColorUnit)

	gpu.Draws(func(d scene.DrawCall) {
		p.SetMat4("model", d.Model)
		p.SetMat4("normalMatrix", d.NormalMatrix)
		setMaterial(p, d, shadeBaseColorUnit)
		d.Mesh.Draw()
	})
}

// Release deletes the program and the sample texture.
func (s *ShadingStage) Release() {
	s.program.Release()
	s.randomMap.Release()
}
