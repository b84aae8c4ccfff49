package rsm

import (
	"github.com/Faultbox/bounce/internal/engine/lighting"
	"github.com/Faultbox/bounce/pkg/math"
)

// IndirectEpsilon floors the |s|⁴ falloff denominator of a virtual light.
const IndirectEpsilon = 1e-4

// Kernel evaluates the shading pass for one surface point. It mirrors the
// shading fragment shader so the software path and tests see the same math.
type Kernel struct {
	Light    lighting.PointLight
	Far      float32
	Bias     float32
	Samples  *SampleMap
	Tunables Tunables
}

// Direct returns the shadow-tested point light contribution at p with normal n.
func (k *Kernel) Direct(p, n math.Vec3, capture Sampler) math.Vec3 {
	if k.Tunables.DisableDirect {
		return math.Vec3{}
	}

	toSurface := p.Sub(k.Light.Position)
	dist := toSurface.Length()
	if dist == 0 {
		return math.Vec3{}
	}

	closest := capture.Sample(toSurface).Depth * k.Far
	if closest < dist-k.Bias {
		return math.Vec3{}
	}

	l := toSurface.Scale(-1 / dist)
	diffuse := max(0, n.Dot(l))
	scale := lighting.Attenuation(dist) * diffuse * k.Tunables.DirectLightFactor
	return k.Light.Radiance().Scale(scale)
}

// Indirect returns the one-bounce contribution gathered from SampleCount
// virtual point lights around the light-to-surface direction.
func (k *Kernel) Indirect(p, n math.Vec3, capture Sampler) math.Vec3 {
	if k.Tunables.DisableIndirect || k.Samples == nil {
		return math.Vec3{}
	}
	count := k.Samples.Count(k.Tunables.SampleCount)
	if count == 0 {
		return math.Vec3{}
	}

	d0 := p.Sub(k.Light.Position).Normalize()
	if d0 == (math.Vec3{}) {
		return math.Vec3{}
	}
	t, b := tangentBasis(d0)
	radius := k.Tunables.SampleRadius

	var sum math.Vec3
	for _, smp := range k.Samples.Samples[:count] {
		offset := t.Scale(smp.U).Add(b.Scale(smp.V)).Scale(radius)
		dir := d0.Add(offset).Normalize()

		texel := capture.Sample(dir)
		vpl := k.Light.Position.Add(dir.Scale(texel.Depth * k.Far))
		s := vpl.Sub(p)

		emit := max(0, texel.Normal.Dot(s.Negate()))
		receive := max(0, n.Dot(s))
		d2 := s.LengthSquared()
		falloff := max(IndirectEpsilon, d2*d2)

		sum = sum.Add(texel.Flux.Scale(emit * receive / falloff * smp.Weight))
	}

	return sum.Scale(k.Tunables.IndirectLightFactor / float32(count))
}

// Shade returns baseColor * (direct + indirect).
func (k *Kernel) Shade(p, n, baseColor math.Vec3, capture Sampler) math.Vec3 {
	light := k.Direct(p, n, capture).Add(k.Indirect(p, n, capture))
	return baseColor.Mul(light)
}

// tangentBasis returns two unit vectors perpendicular to d and each other.
func tangentBasis(d math.Vec3) (t, b math.Vec3) {
	ref := math.Vec3{Y: 1}
	if math.Abs(d.Y) > 0.999 {
		ref = math.Vec3{X: 1}
	}
	t = ref.Cross(d).Normalize()
	b = d.Cross(t)
	return t, b
}
