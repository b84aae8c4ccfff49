// Package scene is the scene provider: it loads glTF assets into draw
// instances, mesh groups and materials, describes the built-in scenes and
// uploads them for the GL stages.
package scene

import (
	"errors"
	"image"

	"github.com/Faultbox/bounce/internal/engine/mesh"
	"github.com/Faultbox/bounce/internal/engine/raycast"
	"github.com/Faultbox/bounce/internal/engine/texture"
	"github.com/Faultbox/bounce/pkg/math"
)

const (
	// NoTexture marks a material without a base color texture.
	NoTexture = -1
	// NoMaterial marks a primitive drawn with DefaultMaterial.
	NoMaterial = -1
)

var (
	// ErrNoGeometry is returned when an asset contains no drawable triangles.
	ErrNoGeometry = errors.New("scene: no drawable geometry")
	// ErrUnknownScene is returned for scene names or IDs with no descriptor.
	ErrUnknownScene = errors.New("scene: unknown scene")
)

// Material is the subset of a glTF PBR material the renderer reads.
type Material struct {
	Name             string
	BaseColorFactor  [4]float32
	BaseColorTexture int // index into Scene.Textures, NoTexture if none
}

// DefaultMaterial is used for primitives without a material.
func DefaultMaterial() Material {
	return Material{Name: "default", BaseColorFactor: [4]float32{1, 1, 1, 1}, BaseColorTexture: NoTexture}
}

// Primitive is one geometry with its material.
type Primitive struct {
	Geometry *mesh.Data
	Material int
}

// MeshGroup is the list of primitives a mesh node draws.
type MeshGroup []Primitive

// DrawInstance places a mesh group in the world.
type DrawInstance struct {
	Transform math.Mat4
	MeshGroup int
}

// Scene is a loaded asset ready for upload or ray casting.
type Scene struct {
	Name       string
	Draws      []DrawInstance
	MeshGroups []MeshGroup
	Materials  []Material
	Textures   []*image.RGBA
}

// material returns the material at ref, or the default material.
func (s *Scene) material(ref int) Material {
	if ref < 0 || ref >= len(s.Materials) {
		return DefaultMaterial()
	}
	return s.Materials[ref]
}

// UsesBaseColorTexture reports whether the material samples a texture.
func (s *Scene) UsesBaseColorTexture(ref int) bool {
	tex := s.material(ref).BaseColorTexture
	return tex >= 0 && tex < len(s.Textures) && s.Textures[tex] != nil
}

// BaseColor returns the material color at uv: the factor, multiplied by the
// nearest texel when the material has a texture.
func (s *Scene) BaseColor(ref int, uv [2]float32) [4]float32 {
	m := s.material(ref)
	c := m.BaseColorFactor
	if s.UsesBaseColorTexture(ref) {
		t := texture.SampleNearest(s.Textures[m.BaseColorTexture], uv)
		for i := range c {
			c[i] *= t[i]
		}
	}
	return c
}

// BaseColorRGB is BaseColor without alpha, the form the software path uses.
func (s *Scene) BaseColorRGB(ref int, uv [2]float32) math.Vec3 {
	c := s.BaseColor(ref, uv)
	return math.Vec3{X: c[0], Y: c[1], Z: c[2]}
}

// TriangleCount returns the number of triangles all draws emit.
func (s *Scene) TriangleCount() int {
	n := 0
	for _, d := range s.Draws {
		for _, p := range s.MeshGroups[d.MeshGroup] {
			n += p.Geometry.TriangleCount()
		}
	}
	return n
}

// Triangles flattens every draw into world-space triangles.
func (s *Scene) Triangles() []raycast.Triangle {
	tris := make([]raycast.Triangle, 0, s.TriangleCount())
	for _, d := range s.Draws {
		normalMat := d.Transform.NormalMatrix()
		for _, p := range s.MeshGroups[d.MeshGroup] {
			g := p.Geometry
			for t := 0; t+2 < len(g.Indices); t += 3 {
				a, b, c := g.Vertices[g.Indices[t]], g.Vertices[g.Indices[t+1]], g.Vertices[g.Indices[t+2]]
				tris = append(tris, raycast.Triangle{
					V0:       d.Transform.TransformPoint(math.V3(a.Position)),
					V1:       d.Transform.TransformPoint(math.V3(b.Position)),
					V2:       d.Transform.TransformPoint(math.V3(c.Position)),
					N0:       normalMat.TransformDirection(math.V3(a.Normal)).Normalize(),
					N1:       normalMat.TransformDirection(math.V3(b.Normal)).Normalize(),
					N2:       normalMat.TransformDirection(math.V3(c.Normal)).Normalize(),
					UV0:      a.TexCoord,
					UV1:      b.TexCoord,
					UV2:      c.TexCoord,
					Material: p.Material,
				})
			}
		}
	}
	return tris
}

// Geometry builds a ray-cast hierarchy over Triangles.
func (s *Scene) Geometry() *raycast.BVH {
	return raycast.NewBVH(s.Triangles())
}

// Bounds returns the world-space box around every draw.
func (s *Scene) Bounds() raycast.AABB {
	box := raycast.EmptyAABB()
	for _, d := range s.Draws {
		for _, p := range s.MeshGroups[d.MeshGroup] {
			for _, v := range p.Geometry.Vertices {
				box = box.Extend(d.Transform.TransformPoint(math.V3(v.Position)))
			}
		}
	}
	return box
}
