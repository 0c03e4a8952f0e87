package core

// Sampler provides sample values for rendering algorithms
// Can be swapped out for different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// mix64 is the SplitMix64 finalizer, used to decorrelate sequential seeds
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Hash01 maps a 64-bit seed to a float64 in [0, 1)
func Hash01(seed uint64) float64 {
	return float64(mix64(seed)>>11) / float64(uint64(1)<<53)
}

// PixelSeed combines pixel coordinates, a sample index and a salt into a
// single seed. The same inputs always produce the same seed, so every
// worker derives identical sample sequences for identical pixels.
func PixelSeed(x, y, sample int, salt uint64) uint64 {
	seed := uint64(x)<<40 ^ uint64(y)<<20 ^ uint64(sample)
	return mix64(seed ^ salt)
}

// HashSampler is a deterministic Sampler driven by a hash chain instead of
// a random generator. Identical seeds yield bit-identical sequences.
type HashSampler struct {
	state uint64
}

// NewHashSampler creates a sampler from a seed
func NewHashSampler(seed uint64) *HashSampler {
	return &HashSampler{state: mix64(seed)}
}

// Get1D returns the next value in [0, 1)
func (h *HashSampler) Get1D() float64 {
	h.state = mix64(h.state + 0x9e3779b97f4a7c15)
	return float64(h.state>>11) / float64(uint64(1)<<53)
}

// Get2D returns the next two values in [0, 1)
func (h *HashSampler) Get2D() Vec2 {
	return NewVec2(h.Get1D(), h.Get1D())
}
