package rsm

import (
	"runtime"
	"sync"

	"github.com/Faultbox/bounce/internal/engine/lighting"
	"github.com/Faultbox/bounce/internal/engine/raycast"
	"github.com/Faultbox/bounce/pkg/math"
)

// Geometry is the ray-traceable scene the software path renders.
type Geometry interface {
	Nearest(r raycast.Ray, tMin float32) (raycast.Hit, bool)
}

// BaseColorFunc resolves a material's base color at a texture coordinate.
type BaseColorFunc func(material int, uv [2]float32) math.Vec3

// Frame is an in-memory linear RGB image, row 0 at the top.
type Frame struct {
	Width, Height int
	Pix           []math.Vec3
}

// At returns the pixel at (x, y).
func (f *Frame) At(x, y int) math.Vec3 {
	return f.Pix[y*f.Width+x]
}

// Mean returns the average pixel color.
func (f *Frame) Mean() math.Vec3 {
	var sum math.Vec3
	for _, p := range f.Pix {
		sum = sum.Add(p)
	}
	if len(f.Pix) == 0 {
		return sum
	}
	return sum.Scale(1 / float32(len(f.Pix)))
}

// Reference is the software rendition of the capture and shading stages.
// Rows are split across Workers goroutines; every pixel is independent so
// the output does not depend on scheduling.
type Reference struct {
	Workers int // <= 0 means runtime.NumCPU()
}

// Capture ray casts every cube texel from the light and fills depth, normal
// and flux the way the capture shaders do.
func (r Reference) Capture(geom Geometry, light lighting.PointLight, size int, near, far float32, baseColor BaseColorFunc) *Cubemap {
	cube := NewCubemap(size)
	radiance := light.Radiance()

	for face := range Faces {
		r.parallelRows(size, func(y int) {
			for x := 0; x < size; x++ {
				dir := cube.TexelDirection(face, x, y).Normalize()
				hit, ok := geom.Nearest(raycast.Ray{Origin: light.Position, Direction: dir}, near)
				if !ok || hit.T > far {
					continue
				}
				cube.Set(face, x, y, Texel{
					Depth:  hit.T / far,
					Normal: hit.Normal,
					Flux:   baseColor(hit.Material, hit.UV).Mul(radiance),
				})
			}
		})
	}
	return cube
}

// Render casts one ray per pixel through viewProj and shades hits with the
// kernel. Misses stay black.
func (r Reference) Render(geom Geometry, capture Sampler, kernel *Kernel, viewProj math.Mat4, width, height int, baseColor BaseColorFunc) *Frame {
	frame := &Frame{Width: width, Height: height, Pix: make([]math.Vec3, width*height)}
	inv := viewProj.Inverse()
	w, h := float32(width), float32(height)

	r.parallelRows(height, func(y int) {
		for x := 0; x < width; x++ {
			ray := raycast.ScreenToRay(float32(x)+0.5, float32(y)+0.5, w, h, inv)
			hit, ok := geom.Nearest(ray, 0)
			if !ok {
				continue
			}
			base := baseColor(hit.Material, hit.UV)
			frame.Pix[y*width+x] = kernel.Shade(hit.Point, hit.Normal, base, capture)
		}
	})
	return frame
}

func (r Reference) parallelRows(rows int, fn func(y int)) {
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	jobs := make(chan int, rows)
	for y := 0; y < rows; y++ {
		jobs <- y
	}
	close(jobs)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range jobs {
				fn(y)
			}
		}()
	}
	wg.Wait()
}
