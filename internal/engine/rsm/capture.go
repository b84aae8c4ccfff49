package rsm

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/bounce/internal/engine/lighting"
	"github.com/Faultbox/bounce/internal/engine/rsm/shaders"
	"github.com/Faultbox/bounce/internal/engine/shader"
	"github.com/Faultbox/bounce/internal/scene"
)

// Capture texture units. Unit 0 carries the material texture here; the
// capture targets are not bound while they are being written.
const captureBaseColorUnit = 0

// CaptureStage renders the scene from the light into all six faces of the
// capture targets in a single layered pass.
type CaptureStage struct {
	Near, Far float32

	program *shader.Program
	log     *zap.Logger
}

// NewCaptureStage compiles the capture program.
func NewCaptureStage(near, far float32, log *zap.Logger) (*CaptureStage, error) {
	id, err := shader.CompileProgramWithGeometry(
		shaders.CaptureVertexShader,
		shaders.CaptureGeometryShader,
		shaders.CaptureFragmentShader,
	)
	if err != nil {
		return nil, fmt.Errorf("capture program: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	log.Debug("capture program linked", zap.Uint32("program", id))
	return &CaptureStage{Near: near, Far: far, program: shader.NewProgram(id), log: log}, nil
}

// Render clears the targets and overwrites every face with the scene as
// seen from light.
func (c *CaptureStage) Render(light lighting.PointLight, targets *CaptureTargets, gpu *scene.GPUScene) {
	targets.fbo.Bind()
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	p := c.program
	p.Use()
	transforms := FaceTransforms(light.Position, c.Near, c.Far)
	for i := range transforms {
		p.SetMat4(fmt.Sprintf("shadowMatrices[%d]", i), transforms[i])
	}
	p.SetVec3("lightPos", light.Position)
	p.SetVec3("lightColor", light.Radiance())
	p.SetFloat("far_plane", c.Far)
	p.SetInt("baseColorTexture", captureBaseColorUnit)

	gpu.Draws(func(d scene.DrawCall) {
		p.SetMat4("model", d.Model)
		p.SetMat4("normalMatrix", d.NormalMatrix)
		setMaterial(p, d, captureBaseColorUnit)
		d.Mesh.Draw()
	})

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Release deletes the program.
func (c *CaptureStage) Release() {
	c.program.Release()
}

// setMaterial uploads the base color factor and binds the material texture
// to unit when there is one.
func setMaterial(p *shader.Program, d scene.DrawCall, unit uint32) {
	p.SetVec4("baseColorFactor", d.BaseColorFactor)
	if d.BaseColorTexture != nil {
		d.BaseColorTexture.Bind(unit)
		p.SetBool("useBaseColorTexture", true)
		return
	}
	p.SetBool("useBaseColorTexture", false)
}
