package sdf

import (
	"github.com/df07/go-sdf-raymarcher/pkg/core"
)

// Sample is the result of evaluating a signed distance field at a point.
// Distance is negative inside a surface and must never overestimate the
// true distance to the nearest surface, or marching will overshoot.
type Sample struct {
	Distance      float64
	Material      int     // Material id of the dominant surface
	Blend         float64 // Weight of BlendMaterial in [0, 0.5], 0 for hard surfaces
	BlendMaterial int     // Secondary material across a smooth-union seam
}

// Field is a signed distance field. Evaluate must be a pure function of
// the point: finite inputs produce finite distances, and repeated calls
// with the same point return the same sample.
type Field interface {
	Evaluate(p core.Vec3) Sample
}

// Validator is an optional interface for fields that can check their own
// parameters before rendering begins
type Validator interface {
	Validate() error
}

// Distance evaluates the field and returns only the signed distance
func Distance(f Field, p core.Vec3) float64 {
	return f.Evaluate(p).Distance
}

// FieldFunc adapts a plain distance function into a Field with a fixed material
type FieldFunc struct {
	Func     func(p core.Vec3) float64
	Material int
}

// Evaluate calls the wrapped function
func (f FieldFunc) Evaluate(p core.Vec3) Sample {
	return Sample{Distance: f.Func(p), Material: f.Material}
}
