package sdf

import (
	"math"

	"github.com/df07/go-sdf-raymarcher/pkg/core"
)

// hashNoise maps a lattice coordinate to a repeatable value in [0, 1)
func hashNoise(n float64) float64 {
	x := math.Sin(n) * 43758.5453
	return x - math.Floor(x)
}

// lerp interpolates between v0 and v1 by t clamped to [0, 1]
func lerp(v0, v1, t float64) float64 {
	return v0 + (v1-v0)*math.Max(0, math.Min(1, t))
}

// Noise returns smooth value noise in [0, 1) for the given point.
// Deterministic: the same point always produces the same value.
func Noise(x core.Vec3) float64 {
	p := core.NewVec3(math.Floor(x.X), math.Floor(x.Y), math.Floor(x.Z))
	f := x.Subtract(p)

	// Cubic smoothing of the cell-local fraction
	f = f.MultiplyVec(core.NewVec3(3, 3, 3).Subtract(f.Multiply(2)))
	n := p.Dot(core.NewVec3(1, 57, 113))

	return lerp(
		lerp(
			lerp(hashNoise(n+0), hashNoise(n+1), f.X),
			lerp(hashNoise(n+57), hashNoise(n+58), f.X), f.Y),
		lerp(
			lerp(hashNoise(n+113), hashNoise(n+114), f.X),
			lerp(hashNoise(n+170), hashNoise(n+171), f.X), f.Y), f.Z)
}

// rotateNoise decorrelates octaves with a fixed rotation
func rotateNoise(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		core.NewVec3(0.00, 0.80, 0.60).Dot(v),
		core.NewVec3(-0.80, 0.36, -0.48).Dot(v),
		core.NewVec3(-0.60, -0.48, 0.64).Dot(v),
	)
}

// FBM returns four octaves of fractal value noise in [0, 1)
func FBM(x core.Vec3) float64 {
	p := rotateNoise(x)
	f := 0.0
	f += 0.5000 * Noise(p)
	p = p.Multiply(2.32)
	f += 0.2500 * Noise(p)
	p = p.Multiply(3.03)
	f += 0.1250 * Noise(p)
	p = p.Multiply(2.61)
	f += 0.0625 * Noise(p)
	return f / 0.9375
}
