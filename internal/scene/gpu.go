package scene

import (
	"github.com/Faultbox/bounce/internal/engine/mesh"
	"github.com/Faultbox/bounce/internal/engine/texture"
	"github.com/Faultbox/bounce/pkg/math"
)

// DrawCall is one primitive ready to draw: world transform, material and
// uploaded mesh.
type DrawCall struct {
	Model            math.Mat4
	NormalMatrix     math.Mat4
	BaseColorFactor  [4]float32
	BaseColorTexture *texture.Texture2D // nil when the material has none
	Mesh             *mesh.GPUMesh
}

// GPUScene holds the GL copies of a Scene's meshes and textures.
type GPUScene struct {
	scene    *Scene
	meshes   [][]*mesh.GPUMesh // parallel to Scene.MeshGroups
	textures []*texture.Texture2D
	normals  []math.Mat4 // per draw
}

// Upload copies every primitive and texture of s to the GPU.
func Upload(s *Scene) *GPUScene {
	g := &GPUScene{scene: s}

	g.textures = make([]*texture.Texture2D, len(s.Textures))
	for i, img := range s.Textures {
		if img != nil {
			g.textures[i] = texture.FromRGBA(img)
		}
	}

	g.meshes = make([][]*mesh.GPUMesh, len(s.MeshGroups))
	for i, group := range s.MeshGroups {
		g.meshes[i] = make([]*mesh.GPUMesh, len(group))
		for j, p := range group {
			g.meshes[i][j] = mesh.Upload(p.Geometry)
		}
	}

	g.normals = make([]math.Mat4, len(s.Draws))
	for i, d := range s.Draws {
		g.normals[i] = d.Transform.NormalMatrix()
	}
	return g
}

// Scene returns the CPU scene this was uploaded from.
func (g *GPUScene) Scene() *Scene {
	return g.scene
}

// Draws calls fn for every primitive of every draw instance, in draw order.
func (g *GPUScene) Draws(fn func(DrawCall)) {
	for i, d := range g.scene.Draws {
		group := g.scene.MeshGroups[d.MeshGroup]
		for j, p := range group {
			m := g.scene.material(p.Material)
			call := DrawCall{
				Model:           d.Transform,
				NormalMatrix:    g.normals[i],
				BaseColorFactor: m.BaseColorFactor,
				Mesh:            g.meshes[d.MeshGroup][j],
			}
			if g.scene.UsesBaseColorTexture(p.Material) {
				call.BaseColorTexture = g.textures[m.BaseColorTexture]
			}
			fn(call)
		}
	}
}

// Release deletes every GL object. The CPU scene is kept.
func (g *GPUScene) Release() {
	for _, group := range g.meshes {
		for _, m := range group {
			m.Release()
		}
	}
	for _, t := range g.textures {
		if t != nil {
			t.Release()
		}
	}
	g.meshes = nil
	g.textures = nil
}
