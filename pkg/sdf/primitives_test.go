package sdf

import (
	"math"
	"testing"

	"github.com/df07/go-sdf-raymarcher/pkg/core"
)

const tolerance = 1e-9

func TestSphereSurfaceDistance(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 2.0, 0)

	// Points exactly on the surface evaluate to ~0
	surfacePoints := []core.Vec3{
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, -2, 0),
		core.NewVec3(0, 0, 2),
		core.NewVec3(2, 0, 0).Normalize().Multiply(2),
	}
	for _, p := range surfacePoints {
		if d := sphere.Evaluate(p).Distance; math.Abs(d) > tolerance {
			t.Errorf("Surface point %v: expected distance 0, got %g", p, d)
		}
	}
}

func TestSphereSignInvariant(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), 1.5, 0)

	if d := sphere.Evaluate(core.NewVec3(1, 2, 3)).Distance; d >= 0 {
		t.Errorf("Center should be strictly inside, got %g", d)
	}
	if d := sphere.Evaluate(core.NewVec3(5, 2, 3)).Distance; d <= 0 {
		t.Errorf("Outside point should have positive distance, got %g", d)
	}
	if d := sphere.Evaluate(core.NewVec3(1, 2.5, 3)).Distance; d >= 0 {
		t.Errorf("Inside point should have negative distance, got %g", d)
	}
}

func TestBoxDistance(t *testing.T) {
	box := NewBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), 0)

	tests := []struct {
		name  string
		point core.Vec3
		want  float64
	}{
		{"face", core.NewVec3(3, 0, 0), 2.0},
		{"surface", core.NewVec3(1, 0, 0), 0.0},
		{"center", core.NewVec3(0, 0, 0), -1.0},
		{"corner", core.NewVec3(2, 2, 2), math.Sqrt(3)},
	}
	for _, tt := range tests {
		if d := box.Evaluate(tt.point).Distance; math.Abs(d-tt.want) > tolerance {
			t.Errorf("%s point %v: expected %g, got %g", tt.name, tt.point, tt.want, d)
		}
	}
}

func TestPlaneDistance(t *testing.T) {
	// Ground plane y = 0, normal up
	plane := NewPlane(core.NewVec3(0, 1, 0), 0, 0)

	if d := plane.Evaluate(core.NewVec3(5, 3, -2)).Distance; math.Abs(d-3) > tolerance {
		t.Errorf("Expected distance 3 above plane, got %g", d)
	}
	if d := plane.Evaluate(core.NewVec3(0, -1, 0)).Distance; math.Abs(d+1) > tolerance {
		t.Errorf("Expected distance -1 below plane, got %g", d)
	}

	// Constructor normalizes the normal
	skewed := NewPlane(core.NewVec3(0, 10, 0), 0, 0)
	if d := skewed.Evaluate(core.NewVec3(0, 2, 0)).Distance; math.Abs(d-2) > tolerance {
		t.Errorf("Plane with unnormalized input normal: expected 2, got %g", d)
	}
}

func TestTorusDistance(t *testing.T) {
	torus := NewTorus(core.NewVec3(0, 0, 0), 3.0, 0.5, 0)

	// On the outer equator
	if d := torus.Evaluate(core.NewVec3(3.5, 0, 0)).Distance; math.Abs(d) > tolerance {
		t.Errorf("Outer equator point: expected 0, got %g", d)
	}
	// Center of the tube
	if d := torus.Evaluate(core.NewVec3(3, 0, 0)).Distance; math.Abs(d+0.5) > tolerance {
		t.Errorf("Tube center: expected -0.5, got %g", d)
	}
	// Center of the hole
	if d := torus.Evaluate(core.NewVec3(0, 0, 0)).Distance; math.Abs(d-2.5) > tolerance {
		t.Errorf("Hole center: expected 2.5, got %g", d)
	}
}

func TestCapsuleDistance(t *testing.T) {
	capsule := NewCapsule(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 0.5, 0)

	// Beside the middle of the segment
	if d := capsule.Evaluate(core.NewVec3(1, 1, 0)).Distance; math.Abs(d-0.5) > tolerance {
		t.Errorf("Side point: expected 0.5, got %g", d)
	}
	// Beyond an endpoint
	if d := capsule.Evaluate(core.NewVec3(0, 3, 0)).Distance; math.Abs(d-0.5) > tolerance {
		t.Errorf("End cap point: expected 0.5, got %g", d)
	}
}

func TestPrimitiveMaterialTag(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, 7)
	if m := sphere.Evaluate(core.NewVec3(2, 0, 0)).Material; m != 7 {
		t.Errorf("Expected material 7, got %d", m)
	}
}

func TestPrimitiveValidation(t *testing.T) {
	tests := []struct {
		name  string
		field Validator
		valid bool
	}{
		{"good sphere", NewSphere(core.NewVec3(0, 0, 0), 1, 0), true},
		{"negative radius", NewSphere(core.NewVec3(0, 0, 0), -1, 0), false},
		{"nan center", NewSphere(core.NewVec3(math.NaN(), 0, 0), 1, 0), false},
		{"good box", NewBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 2, 3), 0), true},
		{"flat box", NewBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 3), 0), false},
		{"good torus", NewTorus(core.NewVec3(0, 0, 0), 2, 0.5, 0), true},
		{"bad torus", NewTorus(core.NewVec3(0, 0, 0), 2, 0, 0), false},
		{"degenerate capsule", NewCapsule(core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1), 0.5, 0), false},
	}
	for _, tt := range tests {
		err := tt.field.Validate()
		if tt.valid && err != nil {
			t.Errorf("%s: unexpected validation error: %v", tt.name, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("%s: expected validation error, got nil", tt.name)
		}
	}
}
