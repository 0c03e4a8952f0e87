package sdf

import (
	"fmt"
	"math"

	"github.com/df07/go-sdf-raymarcher/pkg/core"
)

// Sphere is a sphere centered at Center with the given radius
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material int
}

// NewSphere creates a new sphere field
func NewSphere(center core.Vec3, radius float64, material int) *Sphere {
	return &Sphere{Center: center, Radius: radius, Material: material}
}

// Evaluate returns the exact signed distance to the sphere surface
func (s *Sphere) Evaluate(p core.Vec3) Sample {
	return Sample{
		Distance: p.Subtract(s.Center).Length() - s.Radius,
		Material: s.Material,
	}
}

// Validate checks the sphere parameters
func (s *Sphere) Validate() error {
	if s.Radius <= 0 {
		return fmt.Errorf("sphere radius must be positive, got %f", s.Radius)
	}
	if !s.Center.IsFinite() {
		return fmt.Errorf("sphere center must be finite, got %v", s.Center)
	}
	return nil
}

// Box is an axis-aligned box centered at Center with the given half extents
type Box struct {
	Center   core.Vec3
	Half     core.Vec3
	Material int
}

// NewBox creates a new box field
func NewBox(center, half core.Vec3, material int) *Box {
	return &Box{Center: center, Half: half, Material: material}
}

// Evaluate returns the exact signed distance to the box surface
func (b *Box) Evaluate(p core.Vec3) Sample {
	q := p.Subtract(b.Center).Abs().Subtract(b.Half)
	outside := core.NewVec3(math.Max(q.X, 0), math.Max(q.Y, 0), math.Max(q.Z, 0)).Length()
	inside := math.Min(math.Max(q.X, math.Max(q.Y, q.Z)), 0)
	return Sample{Distance: outside + inside, Material: b.Material}
}

// Validate checks the box parameters
func (b *Box) Validate() error {
	if b.Half.X <= 0 || b.Half.Y <= 0 || b.Half.Z <= 0 {
		return fmt.Errorf("box half extents must be positive, got %v", b.Half)
	}
	if !b.Center.IsFinite() {
		return fmt.Errorf("box center must be finite, got %v", b.Center)
	}
	return nil
}

// RoundBox is a box with rounded edges of the given radius
type RoundBox struct {
	Center   core.Vec3
	Half     core.Vec3
	Round    float64
	Material int
}

// NewRoundBox creates a new rounded box field
func NewRoundBox(center, half core.Vec3, round float64, material int) *RoundBox {
	return &RoundBox{Center: center, Half: half, Round: round, Material: material}
}

// Evaluate returns the signed distance to the rounded box surface
func (b *RoundBox) Evaluate(p core.Vec3) Sample {
	inner := Box{Center: b.Center, Half: b.Half, Material: b.Material}
	sample := inner.Evaluate(p)
	sample.Distance -= b.Round
	return sample
}

// Validate checks the rounded box parameters
func (b *RoundBox) Validate() error {
	if b.Round < 0 {
		return fmt.Errorf("round box radius must be non-negative, got %f", b.Round)
	}
	inner := Box{Center: b.Center, Half: b.Half}
	return inner.Validate()
}

// Plane is an infinite plane with unit normal N satisfying dot(p, N) + Offset = 0
type Plane struct {
	Normal   core.Vec3
	Offset   float64
	Material int
}

// NewPlane creates a new plane field. The normal is normalized on construction.
func NewPlane(normal core.Vec3, offset float64, material int) *Plane {
	return &Plane{Normal: normal.Normalize(), Offset: offset, Material: material}
}

// Evaluate returns the exact signed distance to the plane
func (pl *Plane) Evaluate(p core.Vec3) Sample {
	return Sample{Distance: p.Dot(pl.Normal) + pl.Offset, Material: pl.Material}
}

// Validate checks the plane parameters
func (pl *Plane) Validate() error {
	if pl.Normal.LengthSquared() == 0 {
		return fmt.Errorf("plane normal must be non-zero")
	}
	if math.Abs(pl.Normal.Length()-1.0) > 1e-9 {
		return fmt.Errorf("plane normal must be unit length, got %v", pl.Normal)
	}
	return nil
}

// Torus is a torus centered at Center, lying in the XZ plane, with major
// radius Major and tube radius Minor
type Torus struct {
	Center   core.Vec3
	Major    float64
	Minor    float64
	Material int
}

// NewTorus creates a new torus field
func NewTorus(center core.Vec3, major, minor float64, material int) *Torus {
	return &Torus{Center: center, Major: major, Minor: minor, Material: material}
}

// Evaluate returns the exact signed distance to the torus surface
func (t *Torus) Evaluate(p core.Vec3) Sample {
	q := p.Subtract(t.Center)
	ring := math.Sqrt(q.X*q.X+q.Z*q.Z) - t.Major
	return Sample{
		Distance: math.Sqrt(ring*ring+q.Y*q.Y) - t.Minor,
		Material: t.Material,
	}
}

// Validate checks the torus parameters
func (t *Torus) Validate() error {
	if t.Major <= 0 || t.Minor <= 0 {
		return fmt.Errorf("torus radii must be positive, got major=%f minor=%f", t.Major, t.Minor)
	}
	return nil
}

// Capsule is a line segment from A to B swept by a sphere of the given radius
type Capsule struct {
	A, B     core.Vec3
	Radius   float64
	Material int
}

// NewCapsule creates a new capsule field
func NewCapsule(a, b core.Vec3, radius float64, material int) *Capsule {
	return &Capsule{A: a, B: b, Radius: radius, Material: material}
}

// Evaluate returns the exact signed distance to the capsule surface
func (c *Capsule) Evaluate(p core.Vec3) Sample {
	pa := p.Subtract(c.A)
	ba := c.B.Subtract(c.A)
	h := pa.Dot(ba) / ba.Dot(ba)
	h = math.Max(0, math.Min(1, h))
	return Sample{
		Distance: pa.Subtract(ba.Multiply(h)).Length() - c.Radius,
		Material: c.Material,
	}
}

// Validate checks the capsule parameters
func (c *Capsule) Validate() error {
	if c.Radius <= 0 {
		return fmt.Errorf("capsule radius must be positive, got %f", c.Radius)
	}
	if c.A.Subtract(c.B).LengthSquared() == 0 {
		return fmt.Errorf("capsule endpoints must be distinct")
	}
	return nil
}
