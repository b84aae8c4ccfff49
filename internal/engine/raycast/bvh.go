package raycast

import (
	gomath "math"

	"github.com/Faultbox/bounce/pkg/math"
)

// leafSize is the triangle count at or below which a node stops splitting.
const leafSize = 8

// boundsPad widens node boxes so hits on a box face survive slab rounding.
const boundsPad = 1e-4

// BVH is a bounding volume hierarchy over a fixed triangle set.
type BVH struct {
	root *bvhNode
	tris []Triangle
}

type bvhNode struct {
	bounds      AABB
	left, right *bvhNode
	items       []int // triangle indices, leaves only
}

// NewBVH builds a hierarchy over tris using median splits on the longest axis.
// The slice is retained; callers must not modify it afterwards.
func NewBVH(tris []Triangle) *BVH {
	b := &BVH{tris: tris}
	if len(tris) == 0 {
		return b
	}
	items := make([]int, len(tris))
	for i := range items {
		items[i] = i
	}
	b.root = b.build(items)
	return b
}

func (b *BVH) build(items []int) *bvhNode {
	bounds := EmptyAABB()
	for _, i := range items {
		bounds = bounds.Union(b.tris[i].Bounds())
	}

	node := &bvhNode{bounds: bounds.Pad(boundsPad)}
	if len(items) <= leafSize {
		node.items = items
		return node
	}

	axis := bounds.LongestAxis()
	split := axisValue(bounds.Center(), axis)

	var left, right []int
	for _, i := range items {
		c := b.tris[i].Bounds().Center()
		if axisValue(c, axis) < split {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	// Degenerate split: all centroids on one side
	if len(left) == 0 || len(right) == 0 {
		node.items = items
		return node
	}

	node.left = b.build(left)
	node.right = b.build(right)
	return node
}

// Bounds returns the box around every triangle.
func (b *BVH) Bounds() AABB {
	if b.root == nil {
		return EmptyAABB()
	}
	return b.root.bounds
}

// Len returns the number of triangles in the hierarchy.
func (b *BVH) Len() int {
	return len(b.tris)
}

// Nearest returns the closest hit along r beyond tMin.
func (b *BVH) Nearest(r Ray, tMin float32) (Hit, bool) {
	if b.root == nil {
		return Hit{}, false
	}
	best := Hit{T: float32(gomath.MaxFloat32)}
	found := b.nearest(b.root, r, tMin, &best)
	return best, found
}

func (b *BVH) nearest(node *bvhNode, r Ray, tMin float32, best *Hit) bool {
	if _, ok := node.bounds.Intersect(r, tMin, best.T); !ok {
		return false
	}

	if node.items != nil {
		found := false
		for _, i := range node.items {
			if h, ok := b.tris[i].Intersect(r, tMin, best.T); ok {
				*best = h
				found = true
			}
		}
		return found
	}

	hitLeft := b.nearest(node.left, r, tMin, best)
	hitRight := b.nearest(node.right, r, tMin, best)
	return hitLeft || hitRight
}

// Nearest scans tris linearly for the closest hit along r beyond tMin.
func Nearest(tris []Triangle, r Ray, tMin float32) (Hit, bool) {
	best := Hit{T: float32(gomath.MaxFloat32)}
	found := false
	for i := range tris {
		if h, ok := tris[i].Intersect(r, tMin, best.T); ok {
			best = h
			found = true
		}
	}
	return best, found
}

func axisValue(v math.Vec3, axis int) float32 {
	return v.Array()[axis]
}
