package scene

import (
	"fmt"
	"image"
	"net/url"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/bounce/internal/engine/mesh"
	"github.com/Faultbox/bounce/internal/engine/texture"
	"github.com/Faultbox/bounce/pkg/math"
)

// Load opens a .gltf or .glb file and builds a Scene from it.
// Image URIs resolve relative to the file.
func Load(path string) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf %s: %w", path, err)
	}
	s, err := FromDocument(doc, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = filepath.Base(path)
	}
	return s, nil
}

// FromDocument converts a decoded glTF document. dir is the base directory
// for external images; it may be empty when every image is embedded.
func FromDocument(doc *gltf.Document, dir string) (*Scene, error) {
	l := &loader{
		doc:      doc,
		dir:      dir,
		scene:    &Scene{},
		meshes:   make(map[int]int),
		textures: make(map[int]int),
	}

	if err := l.loadMaterials(); err != nil {
		return nil, err
	}
	for _, root := range l.roots() {
		if err := l.walk(root, math.Identity(), 0); err != nil {
			return nil, err
		}
	}
	if len(l.scene.Draws) == 0 {
		return nil, ErrNoGeometry
	}
	return l.scene, nil
}

// maxNodeDepth stops cyclic node graphs.
const maxNodeDepth = 64

type loader struct {
	doc   *gltf.Document
	dir   string
	scene *Scene

	meshes   map[int]int // glTF mesh index -> MeshGroup index
	textures map[int]int // glTF image index -> Scene.Textures index
}

// roots returns the node list of the default scene, or every parentless
// node when the document declares no scene.
func (l *loader) roots() []int {
	doc := l.doc
	if len(doc.Scenes) > 0 {
		idx := 0
		if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
			idx = *doc.Scene
		}
		return doc.Scenes[idx].Nodes
	}

	child := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c < len(child) {
				child[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !child[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func (l *loader) walk(nodeIdx int, parent math.Mat4, depth int) error {
	if depth > maxNodeDepth {
		return fmt.Errorf("node %d: hierarchy deeper than %d", nodeIdx, maxNodeDepth)
	}
	if nodeIdx < 0 || nodeIdx >= len(l.doc.Nodes) {
		return fmt.Errorf("node %d: index out of range", nodeIdx)
	}
	node := l.doc.Nodes[nodeIdx]
	world := parent.Mul(nodeTransform(node))

	if node.Mesh != nil {
		group, ok, err := l.meshGroup(*node.Mesh)
		if err != nil {
			return fmt.Errorf("node %d: %w", nodeIdx, err)
		}
		if ok {
			l.scene.Draws = append(l.scene.Draws, DrawInstance{Transform: world, MeshGroup: group})
		}
	}

	for _, c := range node.Children {
		if err := l.walk(c, world, depth+1); err != nil {
			return err
		}
	}
	return nil
}

var identityMatrix = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// nodeTransform prefers an explicit matrix; decoded nodes carry identity or
// zero there when only TRS is given.
func nodeTransform(n *gltf.Node) math.Mat4 {
	if n.Matrix != ([16]float64{}) && n.Matrix != identityMatrix {
		var m math.Mat4
		for i, v := range n.MatrixOrDefault() {
			m[i] = float32(v)
		}
		return m
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	return math.FromTRS(
		math.Vec3{X: float32(t[0]), Y: float32(t[1]), Z: float32(t[2])},
		math.Quat{X: float32(r[0]), Y: float32(r[1]), Z: float32(r[2]), W: float32(r[3])},
		math.Vec3{X: float32(s[0]), Y: float32(s[1]), Z: float32(s[2])},
	)
}

// meshGroup converts a glTF mesh once; ok is false when it holds no
// triangle primitives.
func (l *loader) meshGroup(meshIdx int) (int, bool, error) {
	if g, ok := l.meshes[meshIdx]; ok {
		return g, g >= 0, nil
	}
	if meshIdx < 0 || meshIdx >= len(l.doc.Meshes) {
		return 0, false, fmt.Errorf("mesh %d: index out of range", meshIdx)
	}

	var group MeshGroup
	for i, p := range l.doc.Meshes[meshIdx].Primitives {
		if p.Mode != gltf.PrimitiveTriangles {
			continue
		}
		data, err := l.primitive(p)
		if err != nil {
			return 0, false, fmt.Errorf("mesh %d primitive %d: %w", meshIdx, i, err)
		}
		if data == nil {
			continue
		}
		mat := NoMaterial
		if p.Material != nil && *p.Material < len(l.scene.Materials) {
			mat = *p.Material
		}
		group = append(group, Primitive{Geometry: data, Material: mat})
	}

	if len(group) == 0 {
		l.meshes[meshIdx] = -1
		return 0, false, nil
	}
	idx := len(l.scene.MeshGroups)
	l.scene.MeshGroups = append(l.scene.MeshGroups, group)
	l.meshes[meshIdx] = idx
	return idx, true, nil
}

func (l *loader) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(l.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d: index out of range", idx)
	}
	return l.doc.Accessors[idx], nil
}

// primitive reads one triangle primitive. A primitive without POSITION
// yields nil.
func (l *loader) primitive(p *gltf.Primitive) (*mesh.Data, error) {
	posIdx, ok := p.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}
	acc, err := l.accessor(posIdx)
	if err != nil {
		return nil, err
	}
	positions, err := modeler.ReadPosition(l.doc, acc, nil)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := p.Attributes[gltf.NORMAL]; ok {
		acc, err := l.accessor(idx)
		if err != nil {
			return nil, err
		}
		if normals, err = modeler.ReadNormal(l.doc, acc, nil); err != nil {
			return nil, fmt.Errorf("read normals: %w", err)
		}
	}

	var uvs [][2]float32
	if idx, ok := p.Attributes[gltf.TEXCOORD_0]; ok {
		acc, err := l.accessor(idx)
		if err != nil {
			return nil, err
		}
		if uvs, err = modeler.ReadTextureCoord(l.doc, acc, nil); err != nil {
			return nil, fmt.Errorf("read texcoords: %w", err)
		}
	}

	var indices []uint32
	if p.Indices != nil {
		acc, err := l.accessor(*p.Indices)
		if err != nil {
			return nil, err
		}
		if indices, err = modeler.ReadIndices(l.doc, acc, nil); err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	if len(indices) < 3 {
		return nil, nil
	}
	for _, i := range indices {
		if int(i) >= len(positions) {
			return nil, fmt.Errorf("index %d out of range (%d vertices)", i, len(positions))
		}
	}
	indices = indices[:len(indices)-len(indices)%3]

	d := &mesh.Data{Vertices: make([]mesh.Vertex, len(positions)), Indices: indices}
	for i, pos := range positions {
		v := mesh.Vertex{Position: pos}
		if i < len(normals) {
			v.Normal = normals[i]
		}
		if i < len(uvs) {
			v.TexCoord = uvs[i]
		}
		d.Vertices[i] = v
	}
	if normals == nil {
		d.Unweld()
	}
	return d, nil
}

// loadMaterials converts every material up front so primitives can refer to
// them by glTF index.
func (l *loader) loadMaterials() error {
	for i, m := range l.doc.Materials {
		mat := DefaultMaterial()
		mat.Name = m.Name
		if pbr := m.PBRMetallicRoughness; pbr != nil {
			f := pbr.BaseColorFactorOrDefault()
			mat.BaseColorFactor = [4]float32{float32(f[0]), float32(f[1]), float32(f[2]), float32(f[3])}
			if pbr.BaseColorTexture != nil {
				tex, err := l.texture(pbr.BaseColorTexture.Index)
				if err != nil {
					return fmt.Errorf("material %d (%s): %w", i, m.Name, err)
				}
				mat.BaseColorTexture = tex
			}
		}
		l.scene.Materials = append(l.scene.Materials, mat)
	}
	return nil
}

// texture resolves a glTF texture to a decoded image, sharing images that
// several textures reference.
func (l *loader) texture(texIdx int) (int, error) {
	if texIdx < 0 || texIdx >= len(l.doc.Textures) {
		return NoTexture, fmt.Errorf("texture %d: index out of range", texIdx)
	}
	src := l.doc.Textures[texIdx].Source
	if src == nil {
		return NoTexture, nil
	}
	if idx, ok := l.textures[*src]; ok {
		return idx, nil
	}
	img, err := l.image(*src)
	if err != nil {
		return NoTexture, fmt.Errorf("image %d: %w", *src, err)
	}
	idx := len(l.scene.Textures)
	l.scene.Textures = append(l.scene.Textures, img)
	l.textures[*src] = idx
	return idx, nil
}

func (l *loader) image(imgIdx int) (*image.RGBA, error) {
	if imgIdx < 0 || imgIdx >= len(l.doc.Images) {
		return nil, fmt.Errorf("index out of range")
	}
	img := l.doc.Images[imgIdx]

	var data []byte
	switch {
	case img.BufferView != nil:
		bv := *img.BufferView
		if bv < 0 || bv >= len(l.doc.BufferViews) {
			return nil, fmt.Errorf("buffer view %d out of range", bv)
		}
		view := l.doc.BufferViews[bv]
		if view.Buffer >= len(l.doc.Buffers) {
			return nil, fmt.Errorf("buffer %d out of range", view.Buffer)
		}
		buf := l.doc.Buffers[view.Buffer].Data
		end := view.ByteOffset + view.ByteLength
		if end > len(buf) {
			return nil, fmt.Errorf("buffer view %d exceeds buffer", bv)
		}
		data = buf[view.ByteOffset:end]
	case img.IsEmbeddedResource():
		var err error
		if data, err = img.MarshalData(); err != nil {
			return nil, fmt.Errorf("decode data uri: %w", err)
		}
	case img.URI != "":
		name, err := url.PathUnescape(img.URI)
		if err != nil {
			name = img.URI
		}
		if data, err = os.ReadFile(filepath.Join(l.dir, filepath.FromSlash(name))); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("image has no source")
	}

	return texture.Decode(data)
}
