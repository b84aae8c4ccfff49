package scene

import (
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/bounce/pkg/math"
)

// CornellBoxDocument builds the Cornell box as a glTF document: a 2x2x2 room
// on the floor plane, open towards +Z, with a red left wall, a green right
// wall and two white blocks. The light default (0, 1.8, 0) sits just under
// the ceiling.
func CornellBoxDocument() *gltf.Document {
	doc := gltf.NewDocument()
	white := addMaterial(doc, "white", [4]float64{0.73, 0.73, 0.73, 1})
	red := addMaterial(doc, "red", [4]float64{0.63, 0.065, 0.05, 1})
	green := addMaterial(doc, "green", [4]float64{0.14, 0.45, 0.091, 1})

	var room, left, right quadMesh
	room.quad([3]float32{-1, 0, -1}, [3]float32{0, 0, 2}, [3]float32{2, 0, 0}) // floor
	room.quad([3]float32{-1, 2, -1}, [3]float32{2, 0, 0}, [3]float32{0, 0, 2}) // ceiling
	room.quad([3]float32{-1, 0, -1}, [3]float32{2, 0, 0}, [3]float32{0, 2, 0}) // back
	left.quad([3]float32{-1, 0, -1}, [3]float32{0, 2, 0}, [3]float32{0, 0, 2})
	right.quad([3]float32{1, 0, -1}, [3]float32{0, 0, 2}, [3]float32{0, 2, 0})

	roots := []int{
		addMeshNode(doc, "room", room.write(doc, "room", white), [3]float64{}, 0),
		addMeshNode(doc, "left_wall", left.write(doc, "left_wall", red), [3]float64{}, 0),
		addMeshNode(doc, "right_wall", right.write(doc, "right_wall", green), [3]float64{}, 0),
	}

	short := block(0.6, 0.6, 0.6)
	tall := block(0.6, 1.2, 0.6)
	roots = append(roots,
		addMeshNode(doc, "short_block", short.write(doc, "short_block", white), [3]float64{0.35, 0, 0.35}, -17),
		addMeshNode(doc, "tall_block", tall.write(doc, "tall_block", white), [3]float64{-0.35, 0, -0.3}, 17),
	)

	doc.Scenes[0].Name = "Cornell Box"
	doc.Scenes[0].Nodes = roots
	return doc
}

// quadMesh accumulates flat-shaded quads into one primitive.
type quadMesh struct {
	positions [][3]float32
	normals   [][3]float32
	indices   []uint32
}

// quad adds the parallelogram corner, corner+u, corner+u+v, corner+v. Its
// front face, counter-clockwise, points along u x v.
func (m *quadMesh) quad(corner, u, v [3]float32) {
	c, du, dv := math.V3(corner), math.V3(u), math.V3(v)
	n := du.Cross(dv).Normalize().Array()
	base := uint32(len(m.positions))
	m.positions = append(m.positions,
		c.Array(),
		c.Add(du).Array(),
		c.Add(du).Add(dv).Array(),
		c.Add(dv).Array(),
	)
	m.normals = append(m.normals, n, n, n, n)
	m.indices = append(m.indices, base, base+1, base+2, base, base+2, base+3)
}

func (m *quadMesh) write(doc *gltf.Document, name string, material int) int {
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: name,
		Primitives: []*gltf.Primitive{{
			Attributes: map[string]int{
				gltf.POSITION: modeler.WritePosition(doc, m.positions),
				gltf.NORMAL:   modeler.WriteNormal(doc, m.normals),
			},
			Indices:  gltf.Index(modeler.WriteIndices(doc, m.indices)),
			Material: gltf.Index(material),
		}},
	})
	return len(doc.Meshes) - 1
}

// block returns an open-bottomed box of size w x h x d standing on y=0,
// centered on the Y axis, faces pointing outwards.
func block(w, h, d float32) *quadMesh {
	hx, hz := w/2, d/2
	var m quadMesh
	m.quad([3]float32{-hx, h, -hz}, [3]float32{0, 0, d}, [3]float32{w, 0, 0}) // top
	m.quad([3]float32{-hx, 0, hz}, [3]float32{w, 0, 0}, [3]float32{0, h, 0})  // front
	m.quad([3]float32{-hx, 0, -hz}, [3]float32{0, h, 0}, [3]float32{w, 0, 0}) // back
	m.quad([3]float32{hx, 0, -hz}, [3]float32{0, h, 0}, [3]float32{0, 0, d})  // right
	m.quad([3]float32{-hx, 0, -hz}, [3]float32{0, 0, d}, [3]float32{0, h, 0}) // left
	return &m
}

func addMaterial(doc *gltf.Document, name string, baseColor [4]float64) int {
	doc.Materials = append(doc.Materials, &gltf.Material{
		Name: name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &baseColor,
		},
	})
	return len(doc.Materials) - 1
}

// addMeshNode adds a node placing mesh at translation, turned yawDeg
// degrees about +Y.
func addMeshNode(doc *gltf.Document, name string, mesh int, translation [3]float64, yawDeg float32) int {
	q := math.QuatFromAxisAngle(math.Vec3{Y: 1}, math.Radians(yawDeg))
	doc.Nodes = append(doc.Nodes, &gltf.Node{
		Name:        name,
		Mesh:        gltf.Index(mesh),
		Translation: translation,
		Rotation:    [4]float64{float64(q.X), float64(q.Y), float64(q.Z), float64(q.W)},
		Scale:       [3]float64{1, 1, 1},
	})
	return len(doc.Nodes) - 1
}
