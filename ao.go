package voxcore

import (
	"math"
	"math/rand"
)

// DefaultAOSampleCount is S = 12, the sample count SPEC_FULL's
// Supplemented Feature 5 fixes as the default (still overridable via
// NewAOSampler's parameter).
const DefaultAOSampleCount = 12

// AOSample is one precomputed disk sample: a 2D offset (x, y on the
// unit disk). Samples carry no per-sample weight; Normalize applies one
// shared constant to the whole kernel.
type AOSample struct {
	X, Y float32
}

// AOSampler is C12: a fixed kernel of disk samples for ambient
// occlusion, precomputed once and reused by the rendering collaborator.
// The core performs no rendering itself — this only precomputes the
// kernel and the normalization constant.
type AOSampler struct {
	samples []AOSample
}

// NewAOSampler precomputes sampleCount disk samples using a seeded RNG
// (never math/rand's global source, so results are reproducible across
// runs per §9's sampling-randomness note), with radius drawn as
// sqrt(U) and angle from U(0, 2π) for an area-uniform disk
// distribution.
func NewAOSampler(sampleCount int, seed int64) *AOSampler {
	if sampleCount <= 0 {
		sampleCount = DefaultAOSampleCount
	}
	rng := rand.New(rand.NewSource(seed))
	samples := make([]AOSample, sampleCount)
	for i := range samples {
		radius := float32(math.Sqrt(rng.Float64()))
		angle := float32(rng.Float64() * 2 * math.Pi)
		samples[i] = AOSample{
			X: radius * float32(math.Cos(float64(angle))),
			Y: radius * float32(math.Sin(float64(angle))),
		}
	}
	return &AOSampler{samples: samples}
}

// Samples returns the precomputed disk kernel.
func (s *AOSampler) Samples() []AOSample { return s.samples }

// SampleCount returns how many samples the kernel holds.
func (s *AOSampler) SampleCount() int { return len(s.samples) }

// Normalize scales a raw occluded-sample count (out of SampleCount())
// by intensity using the 2·intensity/(π·S) constant SPEC_FULL fixes
// from the original's ambient_occlusion shader template.
func (s *AOSampler) Normalize(intensity float32, occludedCount int) float32 {
	n := len(s.samples)
	if n == 0 {
		return 0
	}
	factor := 2 * intensity / (float32(math.Pi) * float32(n))
	return factor * float32(occludedCount)
}
