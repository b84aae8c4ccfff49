package texture

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Format describes how a texture's storage is allocated.
type Format struct {
	Internal int32  // e.g. gl.DEPTH_COMPONENT32F, gl.RGB16F
	Pixel    uint32 // e.g. gl.DEPTH_COMPONENT, gl.RGB
	Type     uint32 // e.g. gl.FLOAT
}

// Common capture formats.
var (
	DepthFormat  = Format{Internal: gl.DEPTH_COMPONENT32F, Pixel: gl.DEPTH_COMPONENT, Type: gl.FLOAT}
	VectorFormat = Format{Internal: gl.RGB16F, Pixel: gl.RGB, Type: gl.FLOAT}
)

// Cubemap owns a GL cube map texture with six square faces.
type Cubemap struct {
	ID   uint32
	Size int32
}

// NewCubemap allocates an uninitialized cube map with nearest filtering and
// edge clamping on all three axes.
func NewCubemap(size int32, f Format) *Cubemap {
	c := &Cubemap{Size: size}

	gl.GenTextures(1, &c.ID)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, c.ID)
	for face := uint32(0); face < 6; face++ {
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+face, 0, f.Internal, size, size, 0, f.Pixel, f.Type, nil)
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return c
}

// Bind binds the cube map to the given texture unit.
func (c *Cubemap) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, c.ID)
}

// Release deletes the texture.
func (c *Cubemap) Release() {
	if c.ID != 0 {
		gl.DeleteTextures(1, &c.ID)
		c.ID = 0
	}
}
