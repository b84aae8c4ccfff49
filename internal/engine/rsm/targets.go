package rsm

import (
	"errors"
	"fmt"

	"github.com/Faultbox/bounce/internal/engine/framebuffer"
	"github.com/Faultbox/bounce/internal/engine/texture"
)

// ErrFramebufferIncomplete is returned when the capture framebuffer cannot
// be completed. It is fatal; the renderer has no fallback path.
var ErrFramebufferIncomplete = errors.New("rsm: capture framebuffer incomplete")

// CaptureTargets are the three cube maps the capture pass writes and the
// shading pass reads, plus the layered framebuffer binding them.
type CaptureTargets struct {
	Depth  *texture.Cubemap // dist/far per texel
	Normal *texture.Cubemap // world-space normal
	Flux   *texture.Cubemap // base color * light color
	Size   int32

	fbo *framebuffer.Layered
}

// NewCaptureTargets allocates size x size faces. On failure everything
// already allocated is released.
func NewCaptureTargets(size int32) (*CaptureTargets, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size %d", ErrFramebufferIncomplete, size)
	}
	t := &CaptureTargets{
		Depth:  texture.NewCubemap(size, texture.DepthFormat),
		Normal: texture.NewCubemap(size, texture.VectorFormat),
		Flux:   texture.NewCubemap(size, texture.VectorFormat),
		Size:   size,
	}

	fbo, err := framebuffer.NewLayered(size, t.Depth.ID, t.Normal.ID, t.Flux.ID)
	if err != nil {
		t.Release()
		return nil, fmt.Errorf("%w: %w", ErrFramebufferIncomplete, err)
	}
	t.fbo = fbo
	return t, nil
}

// Bind binds the three textures for sampling on units 0, 1 and 2.
func (t *CaptureTargets) Bind() {
	t.Depth.Bind(0)
	t.Normal.Bind(1)
	t.Flux.Bind(2)
}

// Release deletes the framebuffer and the cube maps.
func (t *CaptureTargets) Release() {
	if t.fbo != nil {
		t.fbo.Destroy()
		t.fbo = nil
	}
	t.Depth.Release()
	t.Normal.Release()
	t.Flux.Release()
}

// Resize replaces the targets with size x size faces. On failure the
// current targets are left intact.
func (t *CaptureTargets) Resize(size int32) error {
	if size == t.Size {
		return nil
	}
	next, err := NewCaptureTargets(size)
	if err != nil {
		return err
	}
	t.Release()
	*t = *next
	return nil
}
