package framebuffer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Layered renders into whole layered textures (cube maps) so a geometry
// shader can route each primitive to a face with gl_Layer.
type Layered struct {
	fbo  uint32
	size int32
}

// NewLayered attaches depth and every color texture at mip level 0, enables
// one draw buffer per color texture and checks completeness. The textures
// stay owned by the caller.
func NewLayered(size int32, depth uint32, colors ...uint32) (*Layered, error) {
	l := &Layered{size: size}

	gl.GenFramebuffers(1, &l.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, l.fbo)
	defer gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	gl.FramebufferTexture(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, depth, 0)

	buffers := make([]uint32, len(colors))
	for i, tex := range colors {
		attachment := uint32(gl.COLOR_ATTACHMENT0 + i)
		gl.FramebufferTexture(gl.FRAMEBUFFER, attachment, tex, 0)
		buffers[i] = attachment
	}
	if len(buffers) > 0 {
		gl.DrawBuffers(int32(len(buffers)), &buffers[0])
	} else {
		gl.DrawBuffer(gl.NONE)
	}
	gl.ReadBuffer(gl.NONE)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		l.Destroy()
		return nil, fmt.Errorf("%w: layered status 0x%x", ErrIncomplete, status)
	}
	return l, nil
}

// Bind makes the framebuffer current with a square viewport covering a face.
func (l *Layered) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, l.fbo)
	gl.Viewport(0, 0, l.size, l.size)
}

// Size returns the face edge length.
func (l *Layered) Size() int32 {
	return l.size
}

// Destroy deletes the framebuffer object. Attached textures are not touched.
func (l *Layered) Destroy() {
	if l.fbo != 0 {
		gl.DeleteFramebuffers(1, &l.fbo)
		l.fbo = 0
	}
}
