package rsm

import (
	gomath "math"
	"math/rand"
	"testing"

	"github.com/Faultbox/bounce/internal/engine/lighting"
	"github.com/Faultbox/bounce/internal/engine/raycast"
	"github.com/Faultbox/bounce/pkg/math"
)

func close32(a, b, tol float32) bool {
	return gomath.Abs(float64(a-b)) <= float64(tol)
}

func finite(v math.Vec3) bool {
	for _, c := range v.Array() {
		if gomath.IsNaN(float64(c)) || gomath.IsInf(float64(c), 0) {
			return false
		}
	}
	return true
}

// quad returns two triangles spanning corner, corner+u, corner+v, corner+u+v.
func quad(corner, u, v, normal math.Vec3, material int) []raycast.Triangle {
	p0, p1, p2, p3 := corner, corner.Add(u), corner.Add(u).Add(v), corner.Add(v)
	tri := func(a, b, c math.Vec3) raycast.Triangle {
		return raycast.Triangle{V0: a, V1: b, V2: c, N0: normal, N1: normal, N2: normal, Material: material}
	}
	return []raycast.Triangle{tri(p0, p1, p2), tri(p0, p2, p3)}
}

// testScene is a floor at y=0, a small occluder at y=1 over the origin and a
// wall at x=2 facing -X.
func testScene() *raycast.BVH {
	var tris []raycast.Triangle
	tris = append(tris, quad(math.Vec3{X: -4, Z: -4}, math.Vec3{X: 8}, math.Vec3{Z: 8}, math.Vec3{Y: 1}, 0)...)
	tris = append(tris, quad(math.Vec3{X: -0.5, Y: 1, Z: -0.5}, math.Vec3{X: 1}, math.Vec3{Z: 1}, math.Vec3{Y: -1}, 1)...)
	tris = append(tris, quad(math.Vec3{X: 2, Z: -3}, math.Vec3{Y: 3}, math.Vec3{Z: 6}, math.Vec3{X: -1}, 2)...)
	return raycast.NewBVH(tris)
}

var testColors = []math.Vec3{
	{X: 0.8, Y: 0.8, Z: 0.8},
	{X: 0.2, Y: 0.2, Z: 0.2},
	{X: 0.9, Y: 0.1, Z: 0.1},
}

func testBaseColor(material int, _ [2]float32) math.Vec3 {
	return testColors[material]
}

func testKernel(light lighting.PointLight, tun Tunables) *Kernel {
	return &Kernel{
		Light:    light,
		Far:      DefaultFar,
		Bias:     DefaultBias,
		Samples:  NewSampleMap(1),
		Tunables: tun,
	}
}

type constantSampler Texel

func (c constantSampler) Sample(math.Vec3) Texel { return Texel(c) }

func TestFaceTransformsMatchCubeAddressing(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	light := math.Vec3{X: 0.3, Y: 1.8, Z: -0.2}
	transforms := FaceTransforms(light, DefaultNear, DefaultFar)

	for i := 0; i < 5000; i++ {
		dir := math.Vec3{X: rng.Float32()*2 - 1, Y: rng.Float32()*2 - 1, Z: rng.Float32()*2 - 1}
		if dir.Length() < 0.1 {
			continue
		}
		face, sc, tc := FaceCoords(dir)

		ndc := transforms[face].TransformPoint(light.Add(dir.Normalize().Scale(5)))
		if !close32(ndc.X, sc, 1e-4) || !close32(ndc.Y, tc, 1e-4) {
			t.Fatalf("face %s dir %v: ndc (%v, %v), cube coords (%v, %v)", Faces[face].Name, dir, ndc.X, ndc.Y, sc, tc)
		}
		if ndc.Z < -1 || ndc.Z > 1 {
			t.Fatalf("face %s dir %v: depth %v outside clip range", Faces[face].Name, dir, ndc.Z)
		}
	}
}

func TestFaceUpVectorsNotParallel(t *testing.T) {
	for _, f := range Faces {
		if f.Target.Cross(f.Up).Length() < 0.99 {
			t.Errorf("face %s: up %v parallel to target %v", f.Name, f.Up, f.Target)
		}
	}
}

func TestCubemapTexelRoundTrip(t *testing.T) {
	c := NewCubemap(16)
	for face := 0; face < 6; face++ {
		for y := 0; y < c.Size; y++ {
			for x := 0; x < c.Size; x++ {
				gf, gx, gy := c.DirectionToTexel(c.TexelDirection(face, x, y))
				if gf != face || gx != x || gy != y {
					t.Fatalf("texel (%d, %d, %d) round-tripped to (%d, %d, %d)", face, x, y, gf, gx, gy)
				}
			}
		}
	}
}

func TestSampleMapDeterministic(t *testing.T) {
	a, b := NewSampleMap(7), NewSampleMap(7)
	for i := range a.Raw {
		if a.Raw[i] != b.Raw[i] {
			t.Fatalf("sample %d differs between equal seeds", i)
		}
		s := a.Samples[i]
		if s.U*s.U+s.V*s.V > 1+1e-5 {
			t.Fatalf("sample %d (%v, %v) outside the unit disk", i, s.U, s.V)
		}
		if s.Weight < 0 || s.Weight > 1 {
			t.Fatalf("sample %d weight %v outside [0, 1]", i, s.Weight)
		}
	}
	if len(a.Texels()) != 2*MaxSamples {
		t.Errorf("Texels length = %d, want %d", len(a.Texels()), 2*MaxSamples)
	}
	if a.Count(-3) != 0 || a.Count(10_000) != MaxSamples {
		t.Error("Count does not clamp to [0, MaxSamples]")
	}
}

func TestDirectShadowTest(t *testing.T) {
	light := lighting.DefaultPointLight(math.Vec3{Y: 2})
	k := testKernel(light, DefaultTunables())
	p := math.Vec3{}
	n := math.Vec3{Y: 1}
	dist := float32(2)

	tests := []struct {
		name   string
		stored float32 // world distance recorded in the depth cubemap
		lit    bool
	}{
		{"occluded", 1, false},
		{"just outside bias", dist - 2*DefaultBias, false},
		{"unoccluded", dist, true},
		{"within bias", dist - DefaultBias/2, true},
		{"nothing captured", DefaultFar, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := k.Direct(p, n, constantSampler{Depth: tt.stored / DefaultFar})
			if tt.lit && got.Max() <= 0 {
				t.Errorf("direct = %v, want lit", got)
			}
			if !tt.lit && got != (math.Vec3{}) {
				t.Errorf("direct = %v, want exactly zero", got)
			}
		})
	}
}

func TestDisableDirectIsExactlyZero(t *testing.T) {
	light := lighting.DefaultPointLight(math.Vec3{Y: 2})
	tun := DefaultTunables()
	tun.DisableDirect = true
	k := testKernel(light, tun)

	for _, depth := range []float32{0, 0.5 / DefaultFar, 2 / DefaultFar, 1} {
		if got := k.Direct(math.Vec3{}, math.Vec3{Y: 1}, constantSampler{Depth: depth}); got != (math.Vec3{}) {
			t.Errorf("depth %v: direct = %v, want zero", depth, got)
		}
	}
}

func TestZeroSampleCountIsExactlyZero(t *testing.T) {
	geom := testScene()
	light := lighting.DefaultPointLight(math.Vec3{Y: 1.8})
	cube := Reference{Workers: 2}.Capture(geom, light, 32, DefaultNear, DefaultFar, testBaseColor)

	tun := DefaultTunables()
	tun.SampleCount = 0
	tun.SampleRadius = 1.6
	tun.IndirectLightFactor = 10
	k := testKernel(light, tun)

	for _, p := range []math.Vec3{{X: 1.8}, {X: -3, Z: 2}, {X: 2, Y: 1, Z: 0.5}} {
		if got := k.Indirect(p, math.Vec3{Y: 1}, cube); got != (math.Vec3{}) {
			t.Errorf("point %v: indirect = %v, want exactly zero", p, got)
		}
	}
}

func TestIndirectGathersFromWall(t *testing.T) {
	geom := testScene()
	light := lighting.DefaultPointLight(math.Vec3{Y: 0.5})
	cube := Reference{Workers: 2}.Capture(geom, light, 64, DefaultNear, DefaultFar, testBaseColor)

	tun := DefaultTunables()
	tun.SampleCount = MaxSamples
	tun.SampleRadius = 1
	k := testKernel(light, tun)

	got := k.Indirect(math.Vec3{X: 1.8}, math.Vec3{Y: 1}, cube)
	if !finite(got) || got.X <= 0 {
		t.Fatalf("indirect next to the red wall = %v, want positive red", got)
	}
	if got.X <= got.Y {
		t.Errorf("indirect = %v, want red to dominate", got)
	}
}

func TestZeroRadiusStaysFinite(t *testing.T) {
	geom := testScene()
	light := lighting.DefaultPointLight(math.Vec3{Y: 1.8})
	cube := Reference{Workers: 2}.Capture(geom, light, 32, DefaultNear, DefaultFar, testBaseColor)

	tun := DefaultTunables()
	tun.SampleRadius = 0
	tun.SampleCount = MaxSamples
	k := testKernel(light, tun)

	for x := float32(-3.5); x <= 1.9; x += 0.25 {
		p := math.Vec3{X: x}
		if got := k.Shade(p, math.Vec3{Y: 1}, testColors[0], cube); !finite(got) {
			t.Fatalf("point %v: shade = %v, want finite", p, got)
		}
	}
}

func TestCapturedShadow(t *testing.T) {
	geom := testScene()
	light := lighting.DefaultPointLight(math.Vec3{Y: 2})
	cube := Reference{Workers: 2}.Capture(geom, light, 128, DefaultNear, DefaultFar, testBaseColor)
	k := testKernel(light, DefaultTunables())
	up := math.Vec3{Y: 1}

	if got := k.Direct(math.Vec3{}, up, cube); got != (math.Vec3{}) {
		t.Errorf("point under the occluder: direct = %v, want zero", got)
	}
	if got := k.Direct(math.Vec3{X: 1.5}, up, cube); got.Max() <= 0 {
		t.Errorf("point in the open: direct = %v, want lit", got)
	}
}

func TestCaptureStoresLinearDepthNormalFlux(t *testing.T) {
	geom := testScene()
	light := lighting.PointLight{Position: math.Vec3{Y: 2}, Color: math.Vec3{X: 1, Y: 1, Z: 1}, Intensity: 2}
	cube := Reference{Workers: 1}.Capture(geom, light, 16, DefaultNear, DefaultFar, testBaseColor)

	// Straight down from the light hits the occluder about one unit away.
	texel := cube.Sample(math.Vec3{Y: -1})
	if !close32(texel.Depth*DefaultFar, 1, 0.01) {
		t.Errorf("depth = %v, want 1/far", texel.Depth)
	}
	if !close32(texel.Normal.Y, -1, 1e-5) {
		t.Errorf("normal = %v, want occluder normal (0, -1, 0)", texel.Normal)
	}
	if want := testColors[1].Scale(2); texel.Flux != want {
		t.Errorf("flux = %v, want %v", texel.Flux, want)
	}

	// Straight up sees nothing and keeps the clear values.
	if sky := cube.Sample(math.Vec3{Y: 1}); sky.Depth != 1 || sky.Flux != (math.Vec3{}) {
		t.Errorf("empty direction = %+v, want depth 1 and zero flux", sky)
	}
}

func TestRenderDeterministic(t *testing.T) {
	geom := testScene()
	light := lighting.DefaultPointLight(math.Vec3{Y: 1.8})
	ref := Reference{Workers: 4}

	eye := math.Vec3{X: -3, Y: 3, Z: 3}
	viewProj := math.Perspective(math.Radians(45), 1, 0.01, 100).
		Mul(math.LookAt(eye, math.Vec3{}, math.Vec3{Y: 1}))

	render := func() *Frame {
		cube := ref.Capture(geom, light, 32, DefaultNear, DefaultFar, testBaseColor)
		k := testKernel(light, DefaultTunables())
		return ref.Render(geom, cube, k, viewProj, 48, 48, testBaseColor)
	}

	a, b := render(), render()
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("pixel %d differs: %v vs %v", i, a.Pix[i], b.Pix[i])
		}
	}
	if a.Mean().Max() <= 0 {
		t.Error("rendered frame is black")
	}
}
