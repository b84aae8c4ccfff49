package rsm

import (
	"math/rand"

	"github.com/Faultbox/bounce/pkg/math"
)

// MaxSamples is the length of the sample pattern and the largest usable
// SampleCount.
const MaxSamples = 600

// Sample is one entry of the indirect sampling pattern: a point on the unit
// disk and the weight that compensates for its radial density.
type Sample struct {
	U, V   float32
	Weight float32
}

// SampleMap is the fixed pattern of random pairs the shading pass reads.
// Raw holds the (ξ1, ξ2) pairs uploaded to the GPU; Samples the decoded
// disk offsets the CPU kernel uses.
type SampleMap struct {
	Raw     [][2]float32
	Samples []Sample
}

// NewSampleMap generates MaxSamples pairs from seed. Equal seeds give equal maps.
func NewSampleMap(seed int64) *SampleMap {
	rng := rand.New(rand.NewSource(seed))
	m := &SampleMap{
		Raw:     make([][2]float32, MaxSamples),
		Samples: make([]Sample, MaxSamples),
	}
	for i := range m.Raw {
		m.Raw[i] = [2]float32{rng.Float32(), rng.Float32()}
		m.Samples[i] = decodeSample(m.Raw[i][0], m.Raw[i][1])
	}
	return m
}

// decodeSample maps (ξ1, ξ2) to the disk. Offsets cluster toward the center
// (radius ξ1), so outer samples get weight ξ1² to compensate.
func decodeSample(xi1, xi2 float32) Sample {
	a := math.TwoPi * xi2
	return Sample{
		U:      xi1 * math.Sin(a),
		V:      xi1 * math.Cos(a),
		Weight: xi1 * xi1,
	}
}

// Texels returns the pattern as interleaved RG floats for texture upload.
func (m *SampleMap) Texels() []float32 {
	out := make([]float32, 0, 2*len(m.Raw))
	for _, r := range m.Raw {
		out = append(out, r[0], r[1])
	}
	return out
}

// Count clamps n to the usable range [0, MaxSamples].
func (m *SampleMap) Count(n int) int {
	if n < 0 {
		return 0
	}
	if n > len(m.Samples) {
		return len(m.Samples)
	}
	return n
}
