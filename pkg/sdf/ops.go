package sdf

import (
	"fmt"
	"math"

	"github.com/df07/go-sdf-raymarcher/pkg/core"
)

// Union combines two fields, keeping the nearer surface at every point.
// Ties prefer the first operand.
type Union struct {
	A, B Field
}

// NewUnion creates a union of the given fields, folding left to right
func NewUnion(fields ...Field) Field {
	if len(fields) == 0 {
		return nil
	}
	result := fields[0]
	for _, f := range fields[1:] {
		result = &Union{A: result, B: f}
	}
	return result
}

// Evaluate returns the minimum of both operand distances
func (u *Union) Evaluate(p core.Vec3) Sample {
	a := u.A.Evaluate(p)
	b := u.B.Evaluate(p)
	if a.Distance <= b.Distance {
		return a
	}
	return b
}

// Validate checks both operands
func (u *Union) Validate() error {
	return validateOperands(u.A, u.B)
}

// SmoothUnion blends two fields over a radius K using the polynomial
// smooth minimum. K = 0 degenerates to a hard union. The blended distance
// stays a lower bound within the blend radius; pair aggressive K values
// with a marcher step scale below 1.
type SmoothUnion struct {
	A, B Field
	K    float64
}

// NewSmoothUnion creates a smooth union with blend radius k
func NewSmoothUnion(a, b Field, k float64) *SmoothUnion {
	return &SmoothUnion{A: a, B: b, K: k}
}

// Evaluate returns the smooth minimum of both operand distances and
// carries a material blend weight across the seam
func (u *SmoothUnion) Evaluate(p core.Vec3) Sample {
	a := u.A.Evaluate(p)
	b := u.B.Evaluate(p)

	if u.K <= 0 {
		if a.Distance <= b.Distance {
			return a
		}
		return b
	}

	h := math.Max(u.K-math.Abs(a.Distance-b.Distance), 0)
	d := math.Min(a.Distance, b.Distance) - h*h*h/(6*u.K*u.K)

	// Weight of operand A across the blend region
	w := 0.5 + 0.5*(b.Distance-a.Distance)/u.K
	w = math.Max(0, math.Min(1, w))

	if w >= 0.5 {
		return Sample{Distance: d, Material: a.Material, Blend: 1 - w, BlendMaterial: b.Material}
	}
	return Sample{Distance: d, Material: b.Material, Blend: w, BlendMaterial: a.Material}
}

// Validate checks the blend radius and both operands
func (u *SmoothUnion) Validate() error {
	if u.K < 0 {
		return fmt.Errorf("smooth union blend radius must be non-negative, got %f", u.K)
	}
	return validateOperands(u.A, u.B)
}

// Subtraction removes the volume of B from A
type Subtraction struct {
	A, B Field
}

// NewSubtraction creates a field of A with B's volume carved out
func NewSubtraction(a, b Field) *Subtraction {
	return &Subtraction{A: a, B: b}
}

// Evaluate returns max(da, -db), keeping A's material on the cut surface
func (s *Subtraction) Evaluate(p core.Vec3) Sample {
	a := s.A.Evaluate(p)
	b := s.B.Evaluate(p)
	a.Distance = math.Max(a.Distance, -b.Distance)
	return a
}

// Validate checks both operands
func (s *Subtraction) Validate() error {
	return validateOperands(s.A, s.B)
}

// Intersection keeps only the volume common to both operands
type Intersection struct {
	A, B Field
}

// NewIntersection creates an intersection of two fields
func NewIntersection(a, b Field) *Intersection {
	return &Intersection{A: a, B: b}
}

// Evaluate returns the maximum of both operand distances; the material
// comes from the farther operand, ties prefer the first
func (i *Intersection) Evaluate(p core.Vec3) Sample {
	a := i.A.Evaluate(p)
	b := i.B.Evaluate(p)
	if a.Distance >= b.Distance {
		return a
	}
	return b
}

// Validate checks both operands
func (i *Intersection) Validate() error {
	return validateOperands(i.A, i.B)
}

// validateOperands validates child fields that implement Validator
func validateOperands(fields ...Field) error {
	for _, f := range fields {
		if f == nil {
			return fmt.Errorf("operator has a nil operand")
		}
		if v, ok := f.(Validator); ok {
			if err := v.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}
