package rsm

// Tunables are the per-frame render settings. They are read-only while a
// frame renders and are passed to each stage explicitly.
type Tunables struct {
	SampleCount         int     // indirect samples per pixel, 0 disables the term
	SampleRadius        float32 // disk radius around the light-to-surface direction
	DirectLightFactor   float32
	IndirectLightFactor float32
	DisableDirect       bool
	DisableIndirect     bool
}

// DefaultTunables returns the settings the viewers start with.
func DefaultTunables() Tunables {
	return Tunables{
		SampleCount:         100,
		SampleRadius:        0.3,
		DirectLightFactor:   1,
		IndirectLightFactor: 1,
	}
}
