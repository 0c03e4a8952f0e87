package shading

import (
	"math"

	"github.com/df07/go-sdf-raymarcher/pkg/core"
)

// Texture provides a color for 2D surface coordinates. Implementations
// must be pure functions so frames stay reproducible; external image
// samplers plug in through this interface.
type Texture interface {
	Sample(u, v float64) core.Vec3
}

// CheckerTexture is a procedural checkerboard pattern
type CheckerTexture struct {
	Size           float64
	Color1, Color2 core.Vec3
}

// NewCheckerTexture creates a checkerboard with the given check size
func NewCheckerTexture(size float64, color1, color2 core.Vec3) *CheckerTexture {
	return &CheckerTexture{Size: size, Color1: color1, Color2: color2}
}

// Sample returns the check color at (u, v)
func (c *CheckerTexture) Sample(u, v float64) core.Vec3 {
	checkU := int(math.Floor(u / c.Size))
	checkV := int(math.Floor(v / c.Size))
	if (checkU+checkV)%2 == 0 {
		return c.Color1
	}
	return c.Color2
}

// StripeTexture is a procedural stripe pattern along u
type StripeTexture struct {
	Size           float64
	Color1, Color2 core.Vec3
}

// NewStripeTexture creates stripes with the given period
func NewStripeTexture(size float64, color1, color2 core.Vec3) *StripeTexture {
	return &StripeTexture{Size: size, Color1: color1, Color2: color2}
}

// Sample returns the stripe color at (u, v)
func (s *StripeTexture) Sample(u, v float64) core.Vec3 {
	if int(math.Floor(u/s.Size))%2 == 0 {
		return s.Color1
	}
	return s.Color2
}

// SampleTriplanar projects a texture along all three axes and sums the
// samples weighted by the corresponding absolute normal components. The
// weights are used un-normalized, which blends naturally at grazing
// angles without an extra normalization step.
func SampleTriplanar(tex Texture, point, normal core.Vec3, scale float64) core.Vec3 {
	w := normal.Abs()
	p := point.Multiply(1.0 / scale)

	xProj := tex.Sample(p.Y, p.Z).Multiply(w.X)
	yProj := tex.Sample(p.X, p.Z).Multiply(w.Y)
	zProj := tex.Sample(p.X, p.Y).Multiply(w.Z)

	return xProj.Add(yProj).Add(zProj)
}
